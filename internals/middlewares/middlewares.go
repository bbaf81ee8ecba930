package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"

	"presensi_backend/internals/configs"
	"presensi_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware global sesuai urutan:
// recover → request ctx → logger → cors → compress → limiter.
func SetupMiddlewares(app *fiber.App, cfg configs.App) {
	app.Use(RecoveryMiddleware())
	app.Use(RequestContext(cfg.RequestTimeout))
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware(cfg.CorsAllowOrigins))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(GlobalRateLimiter())
}
