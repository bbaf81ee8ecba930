package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"presensi_backend/internals/features/attendance/logs/dto"
	helper "presensi_backend/internals/helpers"
)

type csvTable struct {
	rows []dto.ImportRecord
}

// normalizeHeader: "Staff ID", "staff_id", "staff-id" → "staffid".
func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(h)
}

type columnIndex struct {
	staff, user, ts, verify int
}

func indexColumns(header []string) (columnIndex, error) {
	idx := columnIndex{staff: -1, user: -1, ts: -1, verify: -1}
	for i, h := range header {
		switch normalizeHeader(h) {
		case "staffid", "id":
			if idx.staff < 0 {
				idx.staff = i
			}
		case "userid":
			idx.user = i
		case "timestamp", "datetime", "time":
			if idx.ts < 0 {
				idx.ts = i
			}
		case "verifymode":
			idx.verify = i
		}
	}
	if (idx.staff < 0 && idx.user < 0) || idx.ts < 0 {
		return idx, ErrMissingColumns
	}
	return idx, nil
}

func cell(row []string, i int) helper.FlexText {
	if i < 0 || i >= len(row) {
		return ""
	}
	return helper.FlexText(strings.TrimSpace(row[i]))
}

// recordsFromTable: baris pertama = header, baris kosong dilewati.
func recordsFromTable(table [][]string) (csvTable, error) {
	var out csvTable
	if len(table) == 0 {
		return out, ErrInvalidInput
	}
	idx, err := indexColumns(table[0])
	if err != nil {
		return out, err
	}
	for _, row := range table[1:] {
		if blankRow(row) {
			continue
		}
		out.rows = append(out.rows, dto.ImportRecord{
			StaffID:    cell(row, idx.staff),
			UserID:     cell(row, idx.user),
			Timestamp:  cell(row, idx.ts),
			VerifyMode: cell(row, idx.verify),
		})
	}
	return out, nil
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func readCSVTable(r io.Reader) (csvTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	table, err := cr.ReadAll()
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return csvTable{}, fmt.Errorf("%w: csv line %d: %v", ErrMalformedFile, pe.Line, pe.Err)
		}
		return csvTable{}, fmt.Errorf("%w: %v", ErrMalformedFile, err)
	}
	return recordsFromTable(table)
}

// ParseCSVRecords dipakai jalur lenient untuk unggahan .csv.
func ParseCSVRecords(r io.Reader) ([]dto.ImportRecord, error) {
	t, err := readCSVTable(r)
	if err != nil {
		return nil, err
	}
	return t.rows, nil
}
