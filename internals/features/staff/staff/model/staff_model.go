package model

import "time"

// StaffModel: roster staff. ID diisi klien (nomor enroll di mesin absensi).
type StaffModel struct {
	StaffID     int64  `gorm:"column:staff_id;primaryKey;autoIncrement:false" json:"id"`
	StaffName   string `gorm:"column:staff_name;type:varchar(100);not null" json:"staffName"`
	StaffActive bool   `gorm:"column:staff_active;not null" json:"active"`

	StaffCreatedAt time.Time `gorm:"column:staff_created_at;autoCreateTime" json:"createdAt"`
	StaffUpdatedAt time.Time `gorm:"column:staff_updated_at;autoUpdateTime" json:"updatedAt"`
}

func (StaffModel) TableName() string {
	return "staff"
}
