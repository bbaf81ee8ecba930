package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presensi_backend/internals/databases/dbtest"
	"presensi_backend/internals/features/attendance/logs/model"
	"presensi_backend/internals/helpers/dbtime"
)

func row(staff int64, ts string) model.AttendanceLogModel {
	return model.AttendanceLogModel{AttendanceLogStaffID: staff, AttendanceLogTimestamp: dbtime.MustParse(ts)}
}

func TestInsertIgnoringDuplicates_SkipsExistingPairs(t *testing.T) {
	repo := NewAttendanceLogRepo(dbtest.Open(t))
	ctx := context.Background()

	n, err := repo.InsertIgnoringDuplicates(ctx, []model.AttendanceLogModel{
		row(7, "2024-01-15 09:00:00"),
		row(7, "2024-01-15 18:30:00"),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = repo.InsertIgnoringDuplicates(ctx, []model.AttendanceLogModel{
		row(7, "2024-01-15 09:00:00"),
		row(8, "2024-01-15 09:00:00"),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	n, err = repo.InsertIgnoringDuplicates(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestInsertAll_RollsBackOnExistingRow(t *testing.T) {
	repo := NewAttendanceLogRepo(dbtest.Open(t))
	ctx := context.Background()

	_, err := repo.InsertIgnoringDuplicates(ctx, []model.AttendanceLogModel{row(7, "2024-01-15 09:00:00")})
	require.NoError(t, err)

	_, err = repo.InsertAll(ctx, []model.AttendanceLogModel{
		row(9, "2024-01-16 09:00:00"),
		row(7, "2024-01-15 09:00:00"),
	}, 1)
	assert.ErrorIs(t, err, ErrDuplicateEvent)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total, "nothing from the failed batch may remain")

	n, err := repo.InsertAll(ctx, []model.AttendanceLogModel{
		row(9, "2024-01-16 09:00:00"),
		row(9, "2024-01-16 17:00:00"),
	}, 1000)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestQueryInRange_InclusiveBoundsAndFilter(t *testing.T) {
	repo := NewAttendanceLogRepo(dbtest.Open(t))
	ctx := context.Background()

	_, err := repo.InsertIgnoringDuplicates(ctx, []model.AttendanceLogModel{
		row(1, "2024-01-31 23:59:59"),
		row(1, "2024-02-01 00:00:00"),
		row(2, "2024-02-29 23:59:59"),
		row(1, "2024-02-10 08:00:00"),
		row(1, "2024-03-01 00:00:00"),
	})
	require.NoError(t, err)

	start, end := dbtime.MonthRange(2, 2024, dbtime.Loc())
	rows, err := repo.QueryInRange(ctx, dbtime.From(start), dbtime.From(end), nil)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2024-02-01 00:00:00", rows[0].AttendanceLogTimestamp.String())
	assert.Equal(t, "2024-02-10 08:00:00", rows[1].AttendanceLogTimestamp.String())
	assert.Equal(t, "2024-02-29 23:59:59", rows[2].AttendanceLogTimestamp.String())

	staff := int64(2)
	rows, err = repo.QueryInRange(ctx, dbtime.From(start), dbtime.From(end), &staff)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.EqualValues(t, 2, rows[0].AttendanceLogStaffID)
}

func TestInsertIgnoringDuplicates_MySQLUsesInsertIgnore(t *testing.T) {
	db, lastSQL := dbtest.MySQLDryRun(t)

	_, err := NewAttendanceLogRepo(db).InsertIgnoringDuplicates(context.Background(), []model.AttendanceLogModel{
		row(7, "2024-01-15 09:00:00"),
	})
	require.NoError(t, err)

	sql := lastSQL()
	assert.True(t, strings.HasPrefix(sql, "INSERT IGNORE INTO `attendance_logs`"), sql)
	assert.NotContains(t, sql, "ON DUPLICATE KEY UPDATE")
}
