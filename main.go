package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"presensi_backend/internals/configs"
	database "presensi_backend/internals/databases"
	middlewares "presensi_backend/internals/middlewares"
	routes "presensi_backend/internals/route"
	"presensi_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()
	cfg := configs.Cfg

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		BodyLimit:             32 * 1024 * 1024, // unggahan log mesin absensi bisa besar
		ProxyHeader:           fiber.HeaderXForwardedFor,
	})

	middlewares.SetupMiddlewares(app, cfg)
	app.Use(etag.New()) // 304 caching

	// 🔌 DB connect + pool + migrate
	database.ConnectDB()
	database.TunePool()
	if err := database.Migrate(database.DB); err != nil {
		log.Fatalf("❌ Migrasi gagal: %v", err)
	}
	database.WarmUpQueries()

	if cfg.RunSeeds {
		seeds.RunAllSeeds(database.DB, cfg.SeedStaffFile)
	}

	// ✅ Routes
	routes.SetupRoutes(app, database.DB, cfg)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 60 * time.Second
	app.Server().WriteTimeout = 60 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", cfg.Port)
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
