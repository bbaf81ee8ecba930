package controller

import (
	"bytes"
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"presensi_backend/internals/features/attendance/logs/dto"
	"presensi_backend/internals/features/attendance/logs/service"
	helper "presensi_backend/internals/helpers"
)

type AttendanceController struct {
	Aggregator *service.Aggregator
}

func NewAttendanceController(agg *service.Aggregator) *AttendanceController {
	return &AttendanceController{Aggregator: agg}
}

// parseMonthYear: dua-duanya wajib; di luar jangkauan → 400.
func parseMonthYear(c *fiber.Ctx) (int, int, error) {
	ms, ys := strings.TrimSpace(c.Query("month")), strings.TrimSpace(c.Query("year"))
	if ms == "" || ys == "" {
		return 0, 0, service.ErrMonthYearRequired
	}
	m, err := strconv.Atoi(ms)
	if err != nil || m < 1 || m > 12 {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "month must be between 1 and 12")
	}
	y, err := strconv.Atoi(ys)
	if err != nil || y < 1970 || y > 9999 {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "year is invalid")
	}
	return m, y, nil
}

func (ctl *AttendanceController) writeError(c *fiber.Ctx, op string, err error) error {
	if errors.Is(err, service.ErrMonthYearRequired) {
		return helper.JsonError(c, fiber.StatusBadRequest, service.ErrMonthYearRequired.Error())
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return helper.FromFiberError(c, err)
	}
	log.Printf("[ATTENDANCE][%s] ❌ %v", op, err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch attendance logs")
}

// GET /api/attendance?month=&year=&staffId=
func (ctl *AttendanceController) List(c *fiber.Ctx) error {
	month, year, err := parseMonthYear(c)
	if err != nil {
		return ctl.writeError(c, "LIST", err)
	}
	q := service.AggregateQuery{Month: month, Year: year}
	if raw := strings.TrimSpace(c.Query("staffId")); raw != "" {
		id, err := helper.ParseID(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "staffId must be numeric")
		}
		q.StaffID = &id
	}

	rows, err := ctl.Aggregator.Aggregate(reqCtx(c), q)
	if err != nil {
		return ctl.writeError(c, "LIST", err)
	}
	return helper.JsonList(c, "ok", service.ToResponses(rows), nil)
}

// GET /api/attendance/grid?month=&year=&columnsPerPage=&page=
func (ctl *AttendanceController) Grid(c *fiber.Ctx) error {
	month, year, err := parseMonthYear(c)
	if err != nil {
		return ctl.writeError(c, "GRID", err)
	}
	grid, err := ctl.Aggregator.BuildMonthlyGrid(reqCtx(c), month, year)
	if err != nil {
		return ctl.writeError(c, "GRID", err)
	}

	p := helper.ResolvePaging(c, "columnsPerPage", service.DefaultColumnsPerPage, service.MaxColumnsPerPage)
	var page dto.MonthlyGridResponse
	page, p.Page = service.PageGrid(grid, p.Page, p.PerPage)
	pg := helper.BuildPaginationFromPage(int64(grid.DaysInMonth), p.Page, service.ClampColumnsPerPage(p.PerPage))
	return helper.JsonList(c, "ok", page, &pg)
}

// GET /api/attendance/export?month=&year= → .xlsx
func (ctl *AttendanceController) Export(c *fiber.Ctx) error {
	month, year, err := parseMonthYear(c)
	if err != nil {
		return ctl.writeError(c, "EXPORT", err)
	}
	grid, err := ctl.Aggregator.BuildMonthlyGrid(reqCtx(c), month, year)
	if err != nil {
		return ctl.writeError(c, "EXPORT", err)
	}

	var buf bytes.Buffer
	if err := service.WriteMonthlyGridXLSX(grid, &buf); err != nil {
		return ctl.writeError(c, "EXPORT", err)
	}
	c.Attachment(service.ExportFilename(month, year))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Send(buf.Bytes())
}
