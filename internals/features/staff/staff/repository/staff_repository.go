// internals/features/staff/staff/repository/staff_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"presensi_backend/internals/features/staff/staff/model"
	helper "presensi_backend/internals/helpers"
)

var (
	ErrStaffExists   = errors.New("staff id already exists")
	ErrStaffNotFound = errors.New("staff not found")
)

// batas jumlah parameter IN per query (aman untuk sqlite/mysql/postgres)
const idLookupChunk = 500

type StaffRepo struct{ db *gorm.DB }

func NewStaffRepo(db *gorm.DB) *StaffRepo {
	return &StaffRepo{db: db}
}

// PutIfAbsent: insert; kalau id sudah ada → ErrStaffExists (atomic di level DB).
func (r *StaffRepo) PutIfAbsent(ctx context.Context, s *model.StaffModel) error {
	res := r.db.WithContext(ctx).
		Clauses(helper.IgnoreDuplicates(r.db)).
		Create(s)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ErrStaffExists
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaffExists
	}
	return nil
}

// ListAll diurutkan berdasarkan id; active=nil → semua.
func (r *StaffRepo) ListAll(ctx context.Context, active *bool) ([]model.StaffModel, error) {
	var rows []model.StaffModel
	q := r.db.WithContext(ctx).Model(&model.StaffModel{})
	if active != nil {
		q = q.Where("staff_active = ?", *active)
	}
	if err := q.Order("staff_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *StaffRepo) FindByID(ctx context.Context, id int64) (*model.StaffModel, error) {
	var m model.StaffModel
	if err := r.db.WithContext(ctx).First(&m, "staff_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *StaffRepo) UpdateByKey(ctx context.Context, id int64, updates map[string]any) (*model.StaffModel, error) {
	res := r.db.WithContext(ctx).
		Model(&model.StaffModel{}).
		Where("staff_id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrStaffNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *StaffRepo) DeleteByKey(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.StaffModel{}, "staff_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaffNotFound
	}
	return nil
}

// KnownIDs mengembalikan subset ids yang terdaftar di roster.
func (r *StaffRepo) KnownIDs(ctx context.Context, ids []int64) (map[int64]bool, error) {
	known := make(map[int64]bool, len(ids))
	for i := 0; i < len(ids); i += idLookupChunk {
		end := i + idLookupChunk
		if end > len(ids) {
			end = len(ids)
		}
		var found []int64
		if err := r.db.WithContext(ctx).
			Model(&model.StaffModel{}).
			Where("staff_id IN ?", ids[i:end]).
			Pluck("staff_id", &found).Error; err != nil {
			return nil, fmt.Errorf("lookup staff ids: %w", err)
		}
		for _, id := range found {
			known[id] = true
		}
	}
	return known, nil
}
