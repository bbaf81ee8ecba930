package dto

import (
	"fmt"
	"strings"

	"presensi_backend/internals/features/staff/staff/model"
	helper "presensi_backend/internals/helpers"
)

// ========== CREATE ==========

type CreateStaffRequest struct {
	ID        helper.FlexText `json:"id" validate:"required,numeric"`
	StaffName string          `json:"staffName" validate:"required,max=100"`
	Active    *bool           `json:"active" validate:"omitempty"`
}

func (r CreateStaffRequest) ToModel() (model.StaffModel, error) {
	id, err := r.ID.Int64()
	if err != nil {
		return model.StaffModel{}, err
	}
	if id <= 0 {
		return model.StaffModel{}, fmt.Errorf("id must be positive")
	}
	m := model.StaffModel{
		StaffID:     id,
		StaffName:   strings.TrimSpace(r.StaffName),
		StaffActive: true,
	}
	if r.Active != nil {
		m.StaffActive = *r.Active
	}
	return m, nil
}

// ========== UPDATE ==========

// ID hanya dipakai oleh PUT /staff (id di body); PUT /staff/:id mengabaikannya.
type UpdateStaffRequest struct {
	ID        helper.FlexText `json:"id" validate:"omitempty,numeric"`
	StaffName string          `json:"staffName" validate:"required,max=100"`
	Active    *bool           `json:"active" validate:"omitempty"`
}

// Updates: kolom yang diubah (map agar false tetap tersimpan).
func (r UpdateStaffRequest) Updates() map[string]any {
	u := map[string]any{
		"staff_name": strings.TrimSpace(r.StaffName),
	}
	if r.Active != nil {
		u["staff_active"] = *r.Active
	}
	return u
}

// ========== RESPONSE ==========

type StaffResponse struct {
	ID        int64  `json:"id"`
	StaffName string `json:"staffName"`
	Active    bool   `json:"active"`
}

func FromModel(m model.StaffModel) StaffResponse {
	return StaffResponse{
		ID:        m.StaffID,
		StaffName: m.StaffName,
		Active:    m.StaffActive,
	}
}

func FromModels(ms []model.StaffModel) []StaffResponse {
	out := make([]StaffResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromModel(m))
	}
	return out
}
