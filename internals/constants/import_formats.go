package constants

import (
	"path/filepath"
	"strings"
)

// Jenis file ekspor mesin absensi yang bisa di-import.
const (
	ImportFormatCSV     = 1
	ImportFormatXLSX    = 2
	ImportFormatXLS     = 3
	ImportFormatUnknown = 99
)

func DetectImportFormat(filename string) int {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".csv", ".txt", "":
		return ImportFormatCSV
	case ".xlsx":
		return ImportFormatXLSX
	case ".xls":
		return ImportFormatXLS
	default:
		return ImportFormatUnknown // Tidak didukung
	}
}
