package service

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"presensi_backend/internals/features/attendance/logs/dto"
)

// ExportFilename: attendance-2024-01.xlsx
func ExportFilename(month, year int) string {
	return fmt.Sprintf("attendance-%04d-%02d.xlsx", year, month)
}

// WriteMonthlyGridXLSX: kolom A = ID, B = nama, lalu satu kolom per hari berisi "first - last".
// Sel dengan shift pendek diberi warna merah.
func WriteMonthlyGridXLSX(grid dto.MonthlyGridResponse, w io.Writer) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := fmt.Sprintf("%04d-%02d", grid.Year, grid.Month)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	headStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	shortStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: "B91C1C"}})
	if err != nil {
		return err
	}

	set := func(col, row int, v any) error {
		name, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, name, v)
	}

	if err := set(1, 1, "Staff ID"); err != nil {
		return err
	}
	if err := set(2, 1, "Name"); err != nil {
		return err
	}
	for i, d := range grid.Days {
		if err := set(3+i, 1, d); err != nil {
			return err
		}
	}
	lastHead, _ := excelize.CoordinatesToCellName(2+len(grid.Days), 1)
	if err := f.SetCellStyle(sheet, "A1", lastHead, headStyle); err != nil {
		return err
	}

	for r, row := range grid.Rows {
		line := r + 2
		if err := set(1, line, row.StaffID); err != nil {
			return err
		}
		if err := set(2, line, row.StaffName); err != nil {
			return err
		}
		for i, c := range row.Cells {
			if c.Punches == 0 {
				continue
			}
			if err := set(3+i, line, c.FirstEntry+" - "+c.LastEntry); err != nil {
				return err
			}
			if c.ShortShift {
				name, _ := excelize.CoordinatesToCellName(3+i, line)
				if err := f.SetCellStyle(sheet, name, name, shortStyle); err != nil {
					return err
				}
			}
		}
	}

	if err := f.SetColWidth(sheet, "B", "B", 24); err != nil {
		return err
	}
	if len(grid.Days) > 0 {
		first, _ := excelize.ColumnNumberToName(3)
		last, _ := excelize.ColumnNumberToName(2 + len(grid.Days))
		if err := f.SetColWidth(sheet, first, last, 19); err != nil {
			return err
		}
	}

	_, err = f.WriteTo(w)
	return err
}
