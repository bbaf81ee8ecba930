package service

import (
	"errors"
	"fmt"

	"presensi_backend/internals/features/attendance/logs/dto"
	"presensi_backend/internals/features/attendance/logs/repository"
)

var (
	ErrInvalidInput         = errors.New("no records provided")
	ErrEmptyAfterValidation = errors.New("no valid records to import")
	ErrStorageUnavailable   = errors.New("attendance storage unavailable")
	ErrDuplicateEvent       = repository.ErrDuplicateEvent
	ErrMonthYearRequired    = errors.New("month and year are required")
	ErrMissingColumns       = errors.New("csv must contain staffId and timestamp columns")
	ErrMalformedFile        = errors.New("malformed import file")
)

// CSVValidationError: mode strict menolak seluruh batch kalau ada satu baris gagal.
type CSVValidationError struct {
	Errors    []dto.RowError
	ValidRows int
}

func (e *CSVValidationError) Error() string {
	return fmt.Sprintf("csv validation failed: %d invalid row(s), %d valid", len(e.Errors), e.ValidRows)
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, op, err)
}
