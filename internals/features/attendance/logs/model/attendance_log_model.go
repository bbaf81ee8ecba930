package model

import (
	"time"

	"presensi_backend/internals/helpers/dbtime"
)

// AttendanceLogModel: satu punch mentah (clock-in/out) dari mesin absensi.
// Primary key komposit (staff_id, timestamp) = invariant unik di level storage.
type AttendanceLogModel struct {
	AttendanceLogStaffID   int64            `gorm:"column:attendance_log_staff_id;primaryKey;autoIncrement:false" json:"staffId"`
	AttendanceLogTimestamp dbtime.WallClock `gorm:"column:attendance_log_timestamp;primaryKey" json:"timestamp"`

	AttendanceLogCreatedAt time.Time `gorm:"column:attendance_log_created_at;autoCreateTime" json:"-"`
}

func (AttendanceLogModel) TableName() string {
	return "attendance_logs"
}
