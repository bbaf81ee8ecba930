package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"presensi_backend/internals/features/attendance/logs/dto"
	"presensi_backend/internals/features/attendance/logs/service"
	helper "presensi_backend/internals/helpers"
)

type ImportController struct {
	Importer service.Importer
}

func NewImportController(im service.Importer) *ImportController {
	return &ImportController{Importer: im}
}

func reqCtx(c *fiber.Ctx) context.Context {
	if uc := c.UserContext(); uc != nil {
		return uc
	}
	return context.Background()
}

// decodeRecords: {"records":[...]} atau array polos.
func decodeRecords(c *fiber.Ctx) ([]dto.ImportRecord, error) {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return nil, nil
	}
	unmarshal := c.App().Config().JSONDecoder
	if unmarshal == nil {
		unmarshal = json.Unmarshal
	}
	if body[0] == '[' {
		var recs []dto.ImportRecord
		if err := unmarshal(body, &recs); err != nil {
			return nil, err
		}
		return recs, nil
	}
	var req dto.ImportRequest
	if err := unmarshal(body, &req); err != nil {
		return nil, err
	}
	return req.Records, nil
}

/* ============================ LENIENT ============================ */

// POST /api/import
func (ctl *ImportController) ImportJSON(c *fiber.Ctx) error {
	recs, err := decodeRecords(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	return ctl.runLenient(c, recs)
}

// POST /api/import/file (multipart "file": .csv / .xlsx / .xls)
func (ctl *ImportController) ImportFile(c *fiber.Ctx) error {
	fh := helper.FirstUploadFile(c)
	if fh == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "cannot open uploaded file")
	}
	defer f.Close()

	recs, err := service.ParseRecordsFromFile(fh.Filename, f)
	if err != nil {
		return ctl.writeImportError(c, err, nil)
	}
	log.Printf("[IMPORT][FILE] %s → %d record", fh.Filename, len(recs))
	return ctl.runLenient(c, recs)
}

func (ctl *ImportController) runLenient(c *fiber.Ctx, recs []dto.ImportRecord) error {
	res, err := ctl.Importer.ImportLenient(reqCtx(c), recs)
	if err != nil {
		return ctl.writeImportError(c, err, &res)
	}
	return helper.JsonOK(c, "Import completed", res)
}

/* ============================ STRICT ============================ */

// POST /api/import/csv (body = teks CSV)
func (ctl *ImportController) ImportCSV(c *fiber.Ctx) error {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, service.ErrInvalidInput.Error())
	}
	res, err := ctl.Importer.ImportStrictCSV(reqCtx(c), bytes.NewReader(body))
	if err != nil {
		return ctl.writeImportError(c, err, nil)
	}
	return helper.JsonCreated(c, "CSV imported successfully", res)
}

func (ctl *ImportController) writeImportError(c *fiber.Ctx, err error, partial *dto.LenientImportResponse) error {
	var verr *service.CSVValidationError
	switch {
	case errors.As(err, &verr):
		return helper.JsonErrorWithDetails(c, fiber.StatusBadRequest, "CSV validation failed", fiber.Map{
			"errors":    verr.Errors,
			"validRows": verr.ValidRows,
		})
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrEmptyAfterValidation),
		errors.Is(err, service.ErrMissingColumns):
		return helper.JsonError(c, fiber.StatusBadRequest, rootMessage(err))
	case errors.Is(err, service.ErrMalformedFile):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrDuplicateEvent):
		return helper.JsonError(c, fiber.StatusConflict, "One or more records already exist; nothing was imported")
	}

	log.Printf("[IMPORT] ❌ %v", err)
	if partial != nil {
		return helper.JsonErrorWithDetails(c, fiber.StatusInternalServerError, "Failed to import records", fiber.Map{
			"data": partial,
		})
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to import records")
}

// rootMessage: pesan sentinel tanpa konteks wrap.
func rootMessage(err error) string {
	for _, s := range []error{service.ErrInvalidInput, service.ErrEmptyAfterValidation, service.ErrMissingColumns} {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return strings.TrimSpace(err.Error())
}
