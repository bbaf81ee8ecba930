// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"fmt"
	"strings"
	"time"

	"presensi_backend/internals/configs"
)

// Layout tekstual timestamp di seluruh aplikasi (wall-clock, tanpa zona).
const (
	Layout     = "2006-01-02 15:04:05"
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// Loc: zona tetap dari APP_TZ_OFFSET (bukan zona runtime).
func Loc() *time.Location {
	if configs.Location == nil {
		return time.UTC
	}
	return configs.Location
}

// Now dalam zona aplikasi, dipotong ke detik.
func Now() time.Time {
	return time.Now().In(Loc()).Truncate(time.Second)
}

// ParseStrict hanya menerima "YYYY-MM-DD HH:MM:SS".
// time.Parse menerima pecahan detik walau tidak ada di layout, jadi panjang dicek dulu.
func ParseStrict(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) != len(Layout) {
		return time.Time{}, fmt.Errorf("timestamp %q is not %s", s, Layout)
	}
	t, err := time.ParseInLocation(Layout, s, loc)
	if err != nil {
		return time.Time{}, err
	}
	if t.Nanosecond() != 0 {
		return time.Time{}, fmt.Errorf("timestamp %q has fractional seconds", s)
	}
	return t, nil
}

// Parse menerima format utama plus bentuk "date value" yang umum
// (ISO dengan T, RFC3339 ber-offset). Nilai ber-offset dikonversi ke loc.
func Parse(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	if t, err := time.ParseInLocation(Layout, s, loc); err == nil {
		return t.Truncate(time.Second), nil
	}
	for _, l := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(l, s); err == nil {
			return t.In(loc).Truncate(time.Second), nil
		}
	}
	for _, l := range []string{"2006-01-02T15:04:05", "2006-01-02 15:04", "2006/01/02 15:04:05"} {
		if t, err := time.ParseInLocation(l, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

// MonthRange: awal hari ke-1 s/d detik terakhir "hari ke-0 bulan berikutnya" (inklusif).
func MonthRange(month, year int, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := time.Date(year, time.Month(month)+1, 0, 23, 59, 59, 0, loc)
	return start, end
}

// DaysIn jumlah hari pada bulan tsb.
func DaysIn(month, year int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Rebase mengambil komponen wall-clock t lalu menempelkannya ke loc
// (driver sering mengembalikan TIMESTAMP tanpa zona sebagai UTC).
func Rebase(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc)
}
