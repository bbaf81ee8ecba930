package routes

import (
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"presensi_backend/internals/configs"
	attendanceRoutes "presensi_backend/internals/features/attendance/logs/route"
	staffRoutes "presensi_backend/internals/features/staff/staff/route"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg configs.App) {
	startTime = time.Now()
	v := validator.New(validator.WithRequiredStructEnabled())

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db)

	api := app.Group("/api")

	log.Println("[INFO] Setting up StaffRoutes...")
	staffRoutes.StaffAdminRoutes(api, db, v)

	log.Println("[INFO] Setting up AttendanceRoutes...")
	attendanceRoutes.AttendanceRoutes(api, db, cfg)
}
