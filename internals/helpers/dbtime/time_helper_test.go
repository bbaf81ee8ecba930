package dbtime

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthRange_LeapFebruary(t *testing.T) {
	loc := time.FixedZone("+05:30", 19800)
	start, end := MonthRange(2, 2024, loc)

	assert.Equal(t, "2024-02-01 00:00:00", start.Format(Layout))
	assert.Equal(t, "2024-02-29 23:59:59", end.Format(Layout))

	feb29, _ := ParseStrict("2024-02-29 18:00:00", loc)
	mar1, _ := ParseStrict("2024-03-01 00:00:00", loc)
	assert.False(t, feb29.After(end), "Feb 29 must be inside the range")
	assert.True(t, mar1.After(end), "Mar 1 must be outside the range")
}

func TestMonthRange_NonLeapAndDecember(t *testing.T) {
	loc := time.UTC
	_, end := MonthRange(2, 2023, loc)
	assert.Equal(t, "2023-02-28 23:59:59", end.Format(Layout))

	start, end := MonthRange(12, 2023, loc)
	assert.Equal(t, "2023-12-01 00:00:00", start.Format(Layout))
	assert.Equal(t, "2023-12-31 23:59:59", end.Format(Layout))
}

func TestProperty_MonthRangeCoversExactlyOneMonth(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	loc := time.FixedZone("+05:30", 19800)

	properties.Property("end is the last second of the month", prop.ForAll(
		func(month, year int) bool {
			start, end := MonthRange(month, year, loc)
			next := end.Add(time.Second)
			return start.Day() == 1 &&
				int(start.Month()) == month &&
				int(end.Month()) == month &&
				end.Day() == DaysIn(month, year) &&
				next.Day() == 1 && next.Month() != end.Month()
		},
		gen.IntRange(1, 12),
		gen.IntRange(1970, 2400),
	))

	properties.TestingRun(t)
}

func TestParse_AcceptsDateValues(t *testing.T) {
	loc := time.FixedZone("+05:30", 19800)

	got, err := Parse("2024-01-15 09:00:00", loc)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15 09:00:00", got.Format(Layout))

	got, err = Parse("2024-01-15T03:30:00Z", loc)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15 09:00:00", got.In(loc).Format(Layout))

	got, err = Parse("2024-01-15T09:00:00", loc)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15 09:00:00", got.Format(Layout))

	_, err = Parse("", loc)
	assert.Error(t, err)
	_, err = Parse("15/01/2024", loc)
	assert.Error(t, err)
}

func TestParseStrict_RejectsOtherShapes(t *testing.T) {
	_, err := ParseStrict("2024-01-15T09:00:00", time.UTC)
	assert.Error(t, err)
	_, err = ParseStrict("2024-13-01 09:00:00", time.UTC)
	assert.Error(t, err)
	_, err = ParseStrict("2024-01-15 09:00:00.250", time.UTC)
	assert.Error(t, err)
	_, err = ParseStrict("2024-1-15 9:00:00", time.UTC)
	assert.Error(t, err)

	got, err := ParseStrict(" 2024-01-15 09:00:00 ", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15 09:00:00", got.Format(Layout))
}

func TestParse_LenientTruncatesFraction(t *testing.T) {
	got, err := Parse("2024-01-15 09:00:00.750", time.UTC)
	require.NoError(t, err)
	assert.Zero(t, got.Nanosecond())
	assert.Equal(t, "2024-01-15 09:00:00", got.Format(Layout))
}

func TestWallClock_ScanRebasesDriverTime(t *testing.T) {
	var w WallClock
	require.NoError(t, w.Scan(time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-01-15 09:00:00", w.String())
	assert.Equal(t, "2024-01-15", w.Date())
	assert.Equal(t, "09:00:00", w.Clock())

	require.NoError(t, w.Scan([]byte("2024-01-15 18:30:00")))
	assert.Equal(t, "18:30:00", w.Clock())

	v, err := w.Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15 18:30:00", v)

	assert.Error(t, w.Scan(42))
}

func TestWallClock_JSON(t *testing.T) {
	w := MustParse("2024-01-15 09:00:00")
	b, err := w.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-01-15 09:00:00"`, string(b))

	var back WallClock
	require.NoError(t, back.UnmarshalJSON(b))
	assert.True(t, back.Equal(w.Time))
}
