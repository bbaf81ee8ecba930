package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"presensi_backend/internals/configs"
	attendanceController "presensi_backend/internals/features/attendance/logs/controller"
	attendanceRepo "presensi_backend/internals/features/attendance/logs/repository"
	attendanceService "presensi_backend/internals/features/attendance/logs/service"
	staffRepo "presensi_backend/internals/features/staff/staff/repository"
	"presensi_backend/internals/helpers/dbtime"
	"presensi_backend/internals/middlewares"
)

// AttendanceRoutes: import (lenient/strict) + laporan bulanan.
func AttendanceRoutes(api fiber.Router, db *gorm.DB, cfg configs.App) {
	events := attendanceRepo.NewAttendanceLogRepo(db)
	roster := staffRepo.NewStaffRepo(db)

	importer := attendanceService.NewImporter(events, roster, attendanceService.OptionsFromConfig(cfg))
	aggregator := attendanceService.NewAggregator(events, roster, dbtime.Loc())

	importCtl := attendanceController.NewImportController(importer)
	attendanceCtl := attendanceController.NewAttendanceController(aggregator)

	// 📥 Import
	imp := api.Group("/import", middlewares.ImportRateLimiter())
	imp.Post("/", importCtl.ImportJSON)
	imp.Post("/file", importCtl.ImportFile)
	imp.Post("/csv", importCtl.ImportCSV)

	// 📊 Laporan
	att := api.Group("/attendance")
	att.Get("/", attendanceCtl.List)
	att.Get("/grid", attendanceCtl.Grid)
	att.Get("/export", attendanceCtl.Export)
}
