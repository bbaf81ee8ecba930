package service

import (
	"context"
	"sort"
	"time"

	"presensi_backend/internals/features/attendance/logs/dto"
	"presensi_backend/internals/features/attendance/logs/model"
	staffModel "presensi_backend/internals/features/staff/staff/model"
	"presensi_backend/internals/helpers/dbtime"
)

// RangeReader: sisi baca Event Store.
type RangeReader interface {
	QueryInRange(ctx context.Context, start, end dbtime.WallClock, staffID *int64) ([]model.AttendanceLogModel, error)
}

// RosterReader dipakai grid untuk join nama/status staff.
type RosterReader interface {
	ListAll(ctx context.Context, active *bool) ([]staffModel.StaffModel, error)
}

type AggregateQuery struct {
	Month   int
	Year    int
	StaffID *int64
}

func (q AggregateQuery) validate() error {
	if q.Month < 1 || q.Month > 12 || q.Year < 1 {
		return ErrMonthYearRequired
	}
	return nil
}

// DailySummary: satu (tanggal, staff). Entries urut capture.
type DailySummary struct {
	Date       string
	StaffID    int64
	FirstEntry dbtime.WallClock
	LastEntry  dbtime.WallClock
	Entries    []dbtime.WallClock
}

func (s DailySummary) WorkedMinutes() int {
	return int(s.LastEntry.Sub(s.FirstEntry.Time) / time.Minute)
}

func (s DailySummary) ToResponse() dto.DailyAttendanceResponse {
	entries := make([]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		entries = append(entries, e.String())
	}
	return dto.DailyAttendanceResponse{
		Date:       s.Date,
		StaffID:    s.StaffID,
		FirstEntry: s.FirstEntry.String(),
		LastEntry:  s.LastEntry.String(),
		AllEntries: dto.JoinEntries(entries),
	}
}

func ToResponses(rows []DailySummary) []dto.DailyAttendanceResponse {
	out := make([]dto.DailyAttendanceResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ToResponse())
	}
	return out
}

type Aggregator struct {
	events RangeReader
	roster RosterReader
	loc    *time.Location
}

func NewAggregator(events RangeReader, roster RosterReader, loc *time.Location) *Aggregator {
	if loc == nil {
		loc = dbtime.Loc()
	}
	return &Aggregator{events: events, roster: roster, loc: loc}
}

// Aggregate: ringkasan sparse per (tanggal, staff) untuk satu bulan.
// Staff tanpa event tidak menghasilkan baris.
func (a *Aggregator) Aggregate(ctx context.Context, q AggregateQuery) ([]DailySummary, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}
	start, end := dbtime.MonthRange(q.Month, q.Year, a.loc)
	rows, err := a.events.QueryInRange(ctx, dbtime.WallClock{Time: start}, dbtime.WallClock{Time: end}, q.StaffID)
	if err != nil {
		return nil, storageErr("query range", err)
	}
	return groupDaily(rows, a.loc), nil
}

type dayKey struct {
	date    string
	staffID int64
}

// groupDaily: group by (DATE(ts), staff). Urutan grup mengikuti kemunculan pertama
// dari store, lalu diurutkan stabil berdasarkan tanggal.
func groupDaily(rows []model.AttendanceLogModel, loc *time.Location) []DailySummary {
	idx := map[dayKey]int{}
	out := make([]DailySummary, 0)
	for _, r := range rows {
		ts := r.AttendanceLogTimestamp
		k := dayKey{date: ts.In(loc).Format(dbtime.DateLayout), staffID: r.AttendanceLogStaffID}
		i, ok := idx[k]
		if !ok {
			idx[k] = len(out)
			out = append(out, DailySummary{
				Date:       k.date,
				StaffID:    k.staffID,
				FirstEntry: ts,
				LastEntry:  ts,
				Entries:    []dbtime.WallClock{ts},
			})
			continue
		}
		s := &out[i]
		if ts.Before(s.FirstEntry.Time) {
			s.FirstEntry = ts
		}
		if ts.After(s.LastEntry.Time) {
			s.LastEntry = ts
		}
		s.Entries = append(s.Entries, ts)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
