// file: internals/helpers/dbtime/wallclock.go
package dbtime

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// WallClock adalah timestamp "YYYY-MM-DD HH:MM:SS" di zona aplikasi.
// Disimpan ke kolom tanpa zona (TIMESTAMP / DATETIME di MySQL) sebagai teks apa adanya.
type WallClock struct{ time.Time }

// From: normalisasi time.Time ke zona aplikasi, presisi detik.
func From(t time.Time) WallClock {
	if t.IsZero() {
		return WallClock{}
	}
	return WallClock{Time: t.In(Loc()).Truncate(time.Second)}
}

// MustParse hanya untuk data statis/test.
func MustParse(s string) WallClock {
	t, err := ParseStrict(s, Loc())
	if err != nil {
		panic(err)
	}
	return WallClock{Time: t}
}

func (w WallClock) String() string {
	if w.Time.IsZero() {
		return ""
	}
	return w.Time.In(Loc()).Format(Layout)
}

// Date "YYYY-MM-DD" (bucket harian).
func (w WallClock) Date() string {
	return w.Time.In(Loc()).Format(DateLayout)
}

// Clock "HH:MM:SS".
func (w WallClock) Clock() string {
	return w.Time.In(Loc()).Format(TimeLayout)
}

// Scan: terima time.Time, string, atau []byte.
func (w *WallClock) Scan(v any) error {
	switch x := v.(type) {
	case time.Time:
		w.Time = Rebase(x, Loc())
		return nil
	case []byte:
		return w.parse(string(x))
	case string:
		return w.parse(x)
	case nil:
		w.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("wallclock: unsupported Scan type %T", v)
	}
}

func (w *WallClock) parse(s string) error {
	t, err := Parse(s, Loc())
	if err != nil {
		return err
	}
	w.Time = t
	return nil
}

// Value: kirim teks agar tidak ada konversi zona oleh driver.
func (w WallClock) Value() (driver.Value, error) {
	if w.Time.IsZero() {
		return nil, nil
	}
	return w.String(), nil
}

func (w WallClock) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.String())
}

func (w *WallClock) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return w.parse(s)
}

func (WallClock) GormDataType() string {
	return string(schema.Time)
}

// GormDBDataType: MySQL TIMESTAMP dikonversi lewat time_zone sesi dan berhenti di 2038,
// jadi di sana pakai DATETIME.
func (WallClock) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "mysql" {
		return "datetime"
	}
	return "timestamp"
}
