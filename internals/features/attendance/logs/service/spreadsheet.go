package service

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"presensi_backend/internals/constants"
	"presensi_backend/internals/features/attendance/logs/dto"
	"presensi_backend/internals/helpers/dbtime"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

const maxSpreadsheetRows = 100000

// ParseRecordsFromFile membaca unggahan ekspor mesin absensi.
// .xls → extrame/xls, .xlsx → excelize, .csv/.txt → encoding/csv.
func ParseRecordsFromFile(filename string, r io.Reader) ([]dto.ImportRecord, error) {
	format := constants.DetectImportFormat(filename)
	switch format {
	case constants.ImportFormatCSV:
		return ParseCSVRecords(r)
	case constants.ImportFormatXLSX, constants.ImportFormatXLS:
	default:
		return nil, fmt.Errorf("%w: unsupported file type %q", ErrMalformedFile, filepath.Ext(filename))
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFile, err)
	}
	var rows [][]string
	if format == constants.ImportFormatXLS {
		rows, err = readXLSRows(data)
	} else {
		rows, err = readXLSXRows(data)
	}
	if err != nil {
		return nil, err
	}
	t, err := recordsFromTable(rows)
	if err != nil {
		return nil, err
	}
	return t.rows, nil
}

func readXLSRows(data []byte) (rows [][]string, err error) {
	defer func() {
		if r := recover(); r != nil {
			rows, err = nil, fmt.Errorf("%w: unreadable xls: %v", ErrMalformedFile, r)
		}
	}()
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFile, err)
	}
	if wb.NumSheets() == 0 {
		return nil, fmt.Errorf("%w: no worksheet found", ErrMalformedFile)
	}
	rows = wb.ReadAllCells(maxSpreadsheetRows)
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: worksheet is empty", ErrMalformedFile)
	}
	return rows, nil
}

func readXLSXRows(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFile, err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%w: no worksheet found", ErrMalformedFile)
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFile, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: worksheet is empty", ErrMalformedFile)
	}
	for i := 1; i < len(rows); i++ {
		for j, v := range rows[i] {
			rows[i][j] = serialToTimestamp(v)
		}
	}
	return rows, nil
}

// serialToTimestamp: sel tanggal Excel (raw) berupa serial float, mis. 45306.375.
// Angka bulat kecil (id staff) dibiarkan.
func serialToTimestamp(v string) string {
	v = strings.TrimSpace(v)
	if !strings.Contains(v, ".") {
		return v
	}
	serial, err := strconv.ParseFloat(v, 64)
	if err != nil || serial < 20000 || serial > 80000 {
		return v
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return v
	}
	return t.Round(1e9).Format(dbtime.Layout)
}
