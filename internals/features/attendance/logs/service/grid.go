package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"presensi_backend/internals/features/attendance/logs/dto"
	"presensi_backend/internals/helpers/dbtime"
)

const (
	MinColumnsPerPage     = 8
	MaxColumnsPerPage     = 31
	DefaultColumnsPerPage = 15
)

// BuildMonthlyGrid: satu baris per staff (urut id roster, staff yatim di belakang),
// satu sel per hari. Hari tanpa event → sel kosong (punches=0).
func (a *Aggregator) BuildMonthlyGrid(ctx context.Context, month, year int) (dto.MonthlyGridResponse, error) {
	q := AggregateQuery{Month: month, Year: year}
	summaries, err := a.Aggregate(ctx, q)
	if err != nil {
		return dto.MonthlyGridResponse{}, err
	}
	var roster []rosterEntry
	if a.roster != nil {
		staff, err := a.roster.ListAll(ctx, nil)
		if err != nil {
			return dto.MonthlyGridResponse{}, storageErr("roster list", err)
		}
		for _, s := range staff {
			roster = append(roster, rosterEntry{id: s.StaffID, name: s.StaffName, active: s.StaffActive})
		}
	}
	return assembleGrid(month, year, a.loc, roster, summaries), nil
}

type rosterEntry struct {
	id     int64
	name   string
	active bool
}

func assembleGrid(month, year int, loc *time.Location, roster []rosterEntry, summaries []DailySummary) dto.MonthlyGridResponse {
	days := dbtime.DaysIn(month, year)
	grid := dto.MonthlyGridResponse{
		Month:       month,
		Year:        year,
		DaysInMonth: days,
		Days:        make([]int, days),
	}
	for d := 1; d <= days; d++ {
		grid.Days[d-1] = d
	}

	byStaff := map[int64]map[string]DailySummary{}
	var orphans []int64
	inRoster := map[int64]bool{}
	for _, s := range roster {
		inRoster[s.id] = true
	}
	for _, s := range summaries {
		m, ok := byStaff[s.StaffID]
		if !ok {
			m = map[string]DailySummary{}
			byStaff[s.StaffID] = m
			if !inRoster[s.StaffID] {
				orphans = append(orphans, s.StaffID)
			}
		}
		m[s.Date] = s
	}

	newRow := func(id int64, name string, active, known bool) dto.GridRow {
		row := dto.GridRow{StaffID: id, StaffName: name, Active: active, InRoster: known, Cells: make([]dto.GridCell, days)}
		for d := 1; d <= days; d++ {
			date := time.Date(year, time.Month(month), d, 0, 0, 0, 0, loc).Format(dbtime.DateLayout)
			cell := dto.GridCell{Day: d, Date: date}
			if s, ok := byStaff[id][date]; ok {
				cell.FirstEntry = s.FirstEntry.Clock()
				cell.LastEntry = s.LastEntry.Clock()
				cell.Punches = len(s.Entries)
				cell.WorkedMinutes = s.WorkedMinutes()
				cell.ShortShift = cell.WorkedMinutes <= dto.ShortShiftMinutes
			}
			row.Cells[d-1] = cell
		}
		return row
	}

	for _, s := range roster {
		grid.Rows = append(grid.Rows, newRow(s.id, s.name, s.active, true))
	}
	sort.Slice(orphans, func(i, j int) bool { return orphans[i] < orphans[j] })
	for _, id := range orphans {
		grid.Rows = append(grid.Rows, newRow(id, fmt.Sprintf("Unknown (%d)", id), false, false))
	}
	if grid.Rows == nil {
		grid.Rows = []dto.GridRow{}
	}
	return grid
}

// PageGrid memotong kolom hari: halaman ke-page (mulai 1) dengan perPage kolom.
// Halaman di luar jangkauan → halaman terakhir.
func PageGrid(grid dto.MonthlyGridResponse, page, perPage int) (dto.MonthlyGridResponse, int) {
	perPage = ClampColumnsPerPage(perPage)
	totalPages := (grid.DaysInMonth + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	from := (page - 1) * perPage
	to := from + perPage
	if to > grid.DaysInMonth {
		to = grid.DaysInMonth
	}

	out := grid
	out.Days = grid.Days[from:to]
	out.Rows = make([]dto.GridRow, len(grid.Rows))
	for i, r := range grid.Rows {
		r.Cells = r.Cells[from:to]
		out.Rows[i] = r
	}
	return out, page
}

func ClampColumnsPerPage(n int) int {
	switch {
	case n <= 0:
		return DefaultColumnsPerPage
	case n < MinColumnsPerPage:
		return MinColumnsPerPage
	case n > MaxColumnsPerPage:
		return MaxColumnsPerPage
	}
	return n
}
