// internals/features/attendance/logs/repository/attendance_log_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"presensi_backend/internals/features/attendance/logs/model"
	helper "presensi_backend/internals/helpers"
	"presensi_backend/internals/helpers/dbtime"
)

var ErrDuplicateEvent = errors.New("attendance event already exists")

type AttendanceLogRepo struct{ db *gorm.DB }

func NewAttendanceLogRepo(db *gorm.DB) *AttendanceLogRepo {
	return &AttendanceLogRepo{db: db}
}

// InsertIgnoringDuplicates: satu bulk INSERT ... ON CONFLICT DO NOTHING
// (INSERT IGNORE di MySQL). Return = jumlah baris yang benar-benar tertulis.
func (r *AttendanceLogRepo) InsertIgnoringDuplicates(ctx context.Context, rows []model.AttendanceLogModel) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Clauses(helper.IgnoreDuplicates(r.db)).
		Create(&rows)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// InsertAll: all-or-nothing dalam satu transaksi (mode strict).
// Baris yang sudah ada → ErrDuplicateEvent, seluruh batch di-rollback.
func (r *AttendanceLogRepo) InsertAll(ctx context.Context, rows []model.AttendanceLogModel, chunkSize int) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	var inserted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.CreateInBatches(&rows, chunkSize)
		if res.Error != nil {
			return res.Error
		}
		inserted = res.RowsAffected
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, fmt.Errorf("%w: %v", ErrDuplicateEvent, err)
		}
		return 0, err
	}
	return inserted, nil
}

// QueryInRange: start..end inklusif, filter staff opsional.
// Urut timestamp lalu staff_id (urutan "capture").
func (r *AttendanceLogRepo) QueryInRange(ctx context.Context, start, end dbtime.WallClock, staffID *int64) ([]model.AttendanceLogModel, error) {
	q := r.db.WithContext(ctx).
		Model(&model.AttendanceLogModel{}).
		Where("attendance_log_timestamp BETWEEN ? AND ?", start, end)
	if staffID != nil {
		q = q.Where("attendance_log_staff_id = ?", *staffID)
	}

	var rows []model.AttendanceLogModel
	if err := q.
		Order("attendance_log_timestamp ASC").
		Order("attendance_log_staff_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AttendanceLogRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.AttendanceLogModel{}).Count(&n).Error
	return n, err
}
