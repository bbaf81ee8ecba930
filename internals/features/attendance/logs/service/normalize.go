package service

import (
	"fmt"
	"strings"
	"time"

	"presensi_backend/internals/features/attendance/logs/dto"
	"presensi_backend/internals/features/attendance/logs/model"
	helper "presensi_backend/internals/helpers"
	"presensi_backend/internals/helpers/dbtime"
)

// candidate: event hasil normalisasi, siap ditulis.
type candidate struct {
	StaffID int64
	At      time.Time
}

func (c candidate) key() string {
	return fmt.Sprintf("%d|%s", c.StaffID, c.At.Format(dbtime.Layout))
}

func (c candidate) toModel() model.AttendanceLogModel {
	return model.AttendanceLogModel{
		AttendanceLogStaffID:   c.StaffID,
		AttendanceLogTimestamp: dbtime.WallClock{Time: c.At},
	}
}

// normalizeLenient: id harus angka finite & bulat, timestamp tidak kosong dan bisa di-parse.
func normalizeLenient(r dto.ImportRecord, loc *time.Location) (candidate, bool) {
	id, err := helper.ParseID(r.RawStaffID())
	if err != nil {
		return candidate{}, false
	}
	ts := strings.TrimSpace(r.Timestamp.String())
	if ts == "" {
		return candidate{}, false
	}
	at, err := dbtime.Parse(ts, loc)
	if err != nil {
		return candidate{}, false
	}
	return candidate{StaffID: id, At: at}, true
}

// dedupeBatch: normalisasi + dedupe in-memory berdasarkan (staffId, timestamp).
// Kemunculan pertama dipertahankan, urutan input tetap.
func dedupeBatch(records []dto.ImportRecord, loc *time.Location) (unique []candidate, invalid, duplicates int) {
	seen := make(map[string]struct{}, len(records))
	unique = make([]candidate, 0, len(records))
	for _, r := range records {
		c, ok := normalizeLenient(r, loc)
		if !ok {
			invalid++
			continue
		}
		k := c.key()
		if _, dup := seen[k]; dup {
			duplicates++
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, c)
	}
	return unique, invalid, duplicates
}

func distinctStaffIDs(cands []candidate) []int64 {
	seen := map[int64]struct{}{}
	out := make([]int64, 0)
	for _, c := range cands {
		if _, ok := seen[c.StaffID]; ok {
			continue
		}
		seen[c.StaffID] = struct{}{}
		out = append(out, c.StaffID)
	}
	return out
}

func toModels(cands []candidate) []model.AttendanceLogModel {
	rows := make([]model.AttendanceLogModel, 0, len(cands))
	for _, c := range cands {
		rows = append(rows, c.toModel())
	}
	return rows
}
