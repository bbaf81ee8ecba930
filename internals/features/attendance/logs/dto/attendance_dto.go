package dto

import (
	"strings"
)

// DailyAttendanceResponse: satu baris (tanggal, staff).
// all_entries dipisah koma, urut capture.
type DailyAttendanceResponse struct {
	Date       string `json:"date"`
	StaffID    int64  `json:"staffId"`
	FirstEntry string `json:"first_entry"`
	LastEntry  string `json:"last_entry"`
	AllEntries string `json:"all_entries"`
}

const EntriesSeparator = ","

func JoinEntries(entries []string) string {
	return strings.Join(entries, EntriesSeparator)
}

/* ===================== Monthly grid ===================== */

type GridCell struct {
	Day           int    `json:"day"`
	Date          string `json:"date"`
	FirstEntry    string `json:"first_entry,omitempty"`
	LastEntry     string `json:"last_entry,omitempty"`
	Punches       int    `json:"punches"`
	WorkedMinutes int    `json:"worked_minutes"`
	ShortShift    bool   `json:"short_shift"` // first-last <= ShortShiftMinutes
}

const ShortShiftMinutes = 5

type GridRow struct {
	StaffID   int64      `json:"staffId"`
	StaffName string     `json:"staffName"`
	Active    bool       `json:"active"`
	InRoster  bool       `json:"inRoster"`
	Cells     []GridCell `json:"cells"`
}

type MonthlyGridResponse struct {
	Month       int       `json:"month"`
	Year        int       `json:"year"`
	DaysInMonth int       `json:"daysInMonth"`
	Days        []int     `json:"days"`
	Rows        []GridRow `json:"rows"`
}

