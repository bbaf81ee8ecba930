package dto

import (
	helper "presensi_backend/internals/helpers"
)

// ImportRecord: satu kandidat event dari JSON/CSV/spreadsheet.
// userId = nama kolom ekspor mesin absensi; staffId diutamakan bila keduanya ada.
type ImportRecord struct {
	StaffID    helper.FlexText `json:"staffId"`
	UserID     helper.FlexText `json:"userId,omitempty"`
	Timestamp  helper.FlexText `json:"timestamp"`
	VerifyMode helper.FlexText `json:"verifyMode,omitempty"` // diabaikan
}

// RawStaffID mengembalikan id mentah yang dipakai untuk normalisasi.
func (r ImportRecord) RawStaffID() string {
	if s := r.StaffID.String(); s != "" {
		return s
	}
	return r.UserID.String()
}

// ImportRequest: body {"records": [...]}; array polos juga diterima controller.
type ImportRequest struct {
	Records []ImportRecord `json:"records"`
}

// LenientImportResponse: semua hitungan agar "yang dikirim" bisa direkonsiliasi
// dengan "yang tersimpan":
// total = droppedAsInvalid + droppedAsUnknownStaff + skippedAsClientDuplicates + uniqueAfterClientDedupe
//
// skippedAsClientDuplicates hanya menghitung duplikat di antara record yang valid.
// Record invalid / staff tak dikenal ada di droppedAs*, jadi
// totalRecords - uniqueAfterClientDedupe = skippedAsClientDuplicates + droppedAsInvalid + droppedAsUnknownStaff
// (bukan skippedAsClientDuplicates saja).
// Saat chunk gagal, skippedAsExistingInDb hanya mencakup chunk yang sudah ter-commit.
type LenientImportResponse struct {
	TotalRecords              int   `json:"totalRecords"`
	UniqueAfterClientDedupe   int   `json:"uniqueAfterClientDedupe"`
	NewRecordsInserted        int64 `json:"newRecordsInserted"`
	SkippedAsClientDuplicates int   `json:"skippedAsClientDuplicates"`
	SkippedAsExistingInDb     int64 `json:"skippedAsExistingInDb"`
	DroppedAsInvalid          int   `json:"droppedAsInvalid"`
	DroppedAsUnknownStaff     int   `json:"droppedAsUnknownStaff"`
	ChunksWritten             int   `json:"chunksWritten"`
}

type StrictImportResponse struct {
	RecordsImported int64 `json:"recordsImported"`
}

// RowError: satu kegagalan validasi pada mode strict (row = baris data ke-n, mulai 1).
type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
}
