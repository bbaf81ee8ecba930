package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	staffController "presensi_backend/internals/features/staff/staff/controller"
)

func StaffAdminRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := staffController.NewStaffController(db, v)

	// 👥 Roster staff (key = id)
	staff := api.Group("/staff")
	staff.Get("/", ctl.List)
	staff.Post("/", ctl.Create)
	staff.Put("/", ctl.UpdateByBody)
	staff.Delete("/", ctl.DeleteByQuery)
	staff.Put("/:id", ctl.UpdateByParam)
	staff.Delete("/:id", ctl.DeleteByParam)
}
