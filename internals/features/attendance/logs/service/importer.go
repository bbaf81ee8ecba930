package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"time"

	"presensi_backend/internals/configs"
	"presensi_backend/internals/features/attendance/logs/dto"
	"presensi_backend/internals/features/attendance/logs/model"
	helper "presensi_backend/internals/helpers"
	"presensi_backend/internals/helpers/dbtime"
)

const DefaultChunkSize = 1000

// EventStore: kontrak storage yang dipakai importer.
type EventStore interface {
	InsertIgnoringDuplicates(ctx context.Context, rows []model.AttendanceLogModel) (int64, error)
	InsertAll(ctx context.Context, rows []model.AttendanceLogModel, chunkSize int) (int64, error)
}

// RosterLookup dipakai hanya bila OrphanPolicy = enforce.
type RosterLookup interface {
	KnownIDs(ctx context.Context, ids []int64) (map[int64]bool, error)
}

// Importer punya dua mode dengan semantik kegagalan berbeda:
//   - Lenient: dedupe + insert-ignore per chunk, partial progress tetap ter-commit,
//     idempotent.
//   - Strict: validasi semua baris CSV, satu transaksi, gagal satu = tolak semua,
//     tidak idempotent (baris yang sudah ada → ErrDuplicateEvent).
type Importer interface {
	ImportLenient(ctx context.Context, records []dto.ImportRecord) (dto.LenientImportResponse, error)
	ImportStrictCSV(ctx context.Context, r io.Reader) (dto.StrictImportResponse, error)
}

type Options struct {
	Location     *time.Location
	ChunkSize    int
	OrphanPolicy string
	Now          func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = dbtime.Loc()
	}
	if o.ChunkSize <= 0 {
		o.ChunkSize = DefaultChunkSize
	}
	if o.OrphanPolicy == "" {
		o.OrphanPolicy = configs.OrphanAllow
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// OptionsFromConfig membangun Options dari konfigurasi global.
func OptionsFromConfig(cfg configs.App) Options {
	return Options{
		Location:     dbtime.Loc(),
		ChunkSize:    cfg.ImportChunkSize,
		OrphanPolicy: cfg.OrphanPolicy,
	}
}

type AttendanceImporter struct {
	store  EventStore
	roster RosterLookup
	opts   Options
}

var _ Importer = (*AttendanceImporter)(nil)

func NewImporter(store EventStore, roster RosterLookup, opts Options) *AttendanceImporter {
	opts = opts.withDefaults()
	if opts.OrphanPolicy == configs.OrphanEnforce && roster == nil {
		panic("attendance importer: enforce orphan policy needs a roster lookup")
	}
	return &AttendanceImporter{store: store, roster: roster, opts: opts}
}

func (im *AttendanceImporter) enforceRoster() bool {
	return im.opts.OrphanPolicy == configs.OrphanEnforce
}

/* =====================================================================
   LENIENT
   ===================================================================== */

// ImportLenient menulis hanya event baru. Chunk ditulis berurutan; chunk yang
// gagal menghentikan sisanya dan chunk sebelumnya tetap ter-commit.
// Saat gagal, hasil parsial tetap dikembalikan bersama error.
func (im *AttendanceImporter) ImportLenient(ctx context.Context, records []dto.ImportRecord) (dto.LenientImportResponse, error) {
	var res dto.LenientImportResponse
	if len(records) == 0 {
		return res, ErrInvalidInput
	}
	res.TotalRecords = len(records)

	unique, invalid, dups := dedupeBatch(records, im.opts.Location)
	res.DroppedAsInvalid = invalid
	res.SkippedAsClientDuplicates = dups

	if im.enforceRoster() && len(unique) > 0 {
		known, err := im.roster.KnownIDs(ctx, distinctStaffIDs(unique))
		if err != nil {
			return res, storageErr("roster lookup", err)
		}
		kept := unique[:0]
		for _, c := range unique {
			if !known[c.StaffID] {
				res.DroppedAsUnknownStaff++
				continue
			}
			kept = append(kept, c)
		}
		unique = kept
	}

	res.UniqueAfterClientDedupe = len(unique)
	if len(unique) == 0 {
		return res, ErrEmptyAfterValidation
	}

	rows := toModels(unique)
	size := im.opts.ChunkSize
	for start := 0; start < len(rows); start += size {
		end := start + size
		if end > len(rows) {
			end = len(rows)
		}
		n, err := im.store.InsertIgnoringDuplicates(ctx, rows[start:end])
		if err != nil {
			res.SkippedAsExistingInDb = int64(start) - res.NewRecordsInserted
			log.Printf("[IMPORT][LENIENT] ❌ chunk %d (%d-%d) gagal, %d chunk sudah ter-commit: %v",
				res.ChunksWritten+1, start, end, res.ChunksWritten, err)
			return res, storageErr(fmt.Sprintf("chunk %d", res.ChunksWritten+1), err)
		}
		res.NewRecordsInserted += n
		res.ChunksWritten++
	}
	res.SkippedAsExistingInDb = int64(res.UniqueAfterClientDedupe) - res.NewRecordsInserted

	log.Printf("[IMPORT][LENIENT] ✅ total=%d unique=%d inserted=%d clientDup=%d existing=%d invalid=%d unknown=%d chunks=%d",
		res.TotalRecords, res.UniqueAfterClientDedupe, res.NewRecordsInserted, res.SkippedAsClientDuplicates,
		res.SkippedAsExistingInDb, res.DroppedAsInvalid, res.DroppedAsUnknownStaff, res.ChunksWritten)
	return res, nil
}

/* =====================================================================
   STRICT (CSV)
   ===================================================================== */

// ImportStrictCSV: header wajib punya kolom staffId & timestamp. Semua baris
// divalidasi dulu; satu saja gagal → CSVValidationError dan tidak ada yang ditulis.
func (im *AttendanceImporter) ImportStrictCSV(ctx context.Context, r io.Reader) (dto.StrictImportResponse, error) {
	var res dto.StrictImportResponse

	table, err := readCSVTable(r)
	if err != nil {
		return res, err
	}
	if len(table.rows) == 0 {
		return res, ErrInvalidInput
	}

	now := im.opts.Now().In(im.opts.Location)
	var rowErrs []dto.RowError
	failed := map[int]bool{}
	fail := func(row int, field, value, msg string) {
		failed[row] = true
		rowErrs = append(rowErrs, dto.RowError{Row: row, Field: field, Value: value, Message: msg})
	}

	type strictRow struct {
		row int
		c   candidate
	}
	var valid []strictRow
	firstSeen := map[string]int{}

	for i, rec := range table.rows {
		rowNo := i + 1
		rawID := rec.RawStaffID()
		rawTS := rec.Timestamp.String()

		id, idErr := helper.ParseID(rawID)
		if idErr != nil {
			fail(rowNo, "staffId", rawID, "staffId must be numeric")
		} else if id <= 0 {
			fail(rowNo, "staffId", rawID, "staffId must be positive")
		}

		at, tsErr := dbtime.ParseStrict(rawTS, im.opts.Location)
		if tsErr != nil {
			fail(rowNo, "timestamp", rawTS, "timestamp must be YYYY-MM-DD HH:MM:SS")
		} else if at.After(now) {
			fail(rowNo, "timestamp", rawTS, "timestamp is in the future")
		}

		if failed[rowNo] {
			continue
		}
		c := candidate{StaffID: id, At: at}
		if prev, dup := firstSeen[c.key()]; dup {
			fail(rowNo, "timestamp", rawTS, fmt.Sprintf("duplicate of row %d", prev))
			continue
		}
		firstSeen[c.key()] = rowNo
		valid = append(valid, strictRow{row: rowNo, c: c})
	}

	if im.enforceRoster() && len(valid) > 0 {
		cands := make([]candidate, 0, len(valid))
		for _, v := range valid {
			cands = append(cands, v.c)
		}
		known, err := im.roster.KnownIDs(ctx, distinctStaffIDs(cands))
		if err != nil {
			return res, storageErr("roster lookup", err)
		}
		for _, v := range valid {
			if !known[v.c.StaffID] {
				fail(v.row, "staffId", fmt.Sprint(v.c.StaffID), "staffId not found in roster")
			}
		}
	}

	if len(rowErrs) > 0 {
		sort.SliceStable(rowErrs, func(a, b int) bool { return rowErrs[a].Row < rowErrs[b].Row })
		return res, &CSVValidationError{Errors: rowErrs, ValidRows: len(table.rows) - len(failed)}
	}

	cands := make([]candidate, 0, len(valid))
	for _, v := range valid {
		cands = append(cands, v.c)
	}
	n, err := im.store.InsertAll(ctx, toModels(cands), im.opts.ChunkSize)
	if err != nil {
		if errors.Is(err, ErrDuplicateEvent) {
			return res, err
		}
		return res, storageErr("strict insert", err)
	}
	res.RecordsImported = n
	log.Printf("[IMPORT][STRICT] ✅ rows=%d inserted=%d", len(table.rows), n)
	return res, nil
}
