package controller

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"presensi_backend/internals/features/staff/staff/dto"
	"presensi_backend/internals/features/staff/staff/repository"
	helper "presensi_backend/internals/helpers"
)

type StaffController struct {
	Repo     *repository.StaffRepo
	Validate *validator.Validate
}

func NewStaffController(db *gorm.DB, v *validator.Validate) *StaffController {
	if v == nil {
		v = validator.New(validator.WithRequiredStructEnabled())
	}
	return &StaffController{Repo: repository.NewStaffRepo(db), Validate: v}
}

// ambil context standar (kalau Fiber mendukung UserContext)
func reqCtx(c *fiber.Ctx) context.Context {
	if uc := c.UserContext(); uc != nil {
		return uc
	}
	return context.Background()
}

func parseIDParam(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Staff ID is required")
	}
	id, err := helper.ParseID(raw)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Staff ID must be numeric")
	}
	return id, nil
}

func (ctl *StaffController) writeRepoError(c *fiber.Ctx, op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrStaffExists):
		return helper.JsonError(c, fiber.StatusBadRequest, "Staff ID already exists")
	case errors.Is(err, repository.ErrStaffNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Staff not found")
	}
	log.Printf("[STAFF][%s] error: %v", op, err)
	code, msg := helper.MapStorageError(err)
	return helper.JsonError(c, code, msg)
}

/* ============================ LIST ============================ */

// GET /staff?active=true|false
func (ctl *StaffController) List(c *fiber.Ctx) error {
	var active *bool
	if v := strings.TrimSpace(c.Query("active")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "active must be true or false")
		}
		active = &b
	}

	rows, err := ctl.Repo.ListAll(reqCtx(c), active)
	if err != nil {
		return ctl.writeRepoError(c, "LIST", err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), nil)
}

/* ============================ CREATE ============================ */

// POST /staff
func (ctl *StaffController) Create(c *fiber.Ctx) error {
	var req dto.CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.StaffName = strings.TrimSpace(req.StaffName)
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := req.ToModel()
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"id": {err.Error()}})
	}

	if err := ctl.Repo.PutIfAbsent(reqCtx(c), &m); err != nil {
		return ctl.writeRepoError(c, "CREATE", err)
	}
	log.Printf("[STAFF][CREATE] id=%d name=%q", m.StaffID, m.StaffName)
	return helper.JsonCreated(c, "Staff member added successfully", dto.FromModel(m))
}

/* ============================ UPDATE ============================ */

// PUT /staff/:id
func (ctl *StaffController) UpdateByParam(c *fiber.Ctx) error {
	id, err := parseIDParam(c.Params("id"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return ctl.update(c, &id)
}

// PUT /staff (id di body)
func (ctl *StaffController) UpdateByBody(c *fiber.Ctx) error {
	return ctl.update(c, nil)
}

func (ctl *StaffController) update(c *fiber.Ctx, pathID *int64) error {
	var req dto.UpdateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.StaffName = strings.TrimSpace(req.StaffName)
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var id int64
	if pathID != nil {
		id = *pathID
	} else {
		parsed, err := parseIDParam(req.ID.String())
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		id = parsed
	}

	m, err := ctl.Repo.UpdateByKey(reqCtx(c), id, req.Updates())
	if err != nil {
		return ctl.writeRepoError(c, "UPDATE", err)
	}
	return helper.JsonUpdated(c, "Staff member updated successfully", dto.FromModel(*m))
}

/* ============================ DELETE ============================ */

// DELETE /staff/:id
func (ctl *StaffController) DeleteByParam(c *fiber.Ctx) error {
	return ctl.delete(c, c.Params("id"))
}

// DELETE /staff?id=
func (ctl *StaffController) DeleteByQuery(c *fiber.Ctx) error {
	return ctl.delete(c, c.Query("id"))
}

func (ctl *StaffController) delete(c *fiber.Ctx, raw string) error {
	id, err := parseIDParam(raw)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.Repo.DeleteByKey(reqCtx(c), id); err != nil {
		return ctl.writeRepoError(c, "DELETE", err)
	}
	log.Printf("[STAFF][DELETE] id=%d", id)
	return helper.JsonDeleted(c, "Staff member deleted successfully", fiber.Map{"id": id})
}
