package helper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FlexText menerima nilai berupa string JSON maupun angka ("7", 7, "7.0") sebagai teks.
// Nilai selain string/angka disimpan mentah dan akan gagal di ParseID.
type FlexText string

func (f *FlexText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexText(strings.TrimSpace(s))
		return nil
	}
	*f = FlexText(string(b))
	return nil
}

func (f FlexText) String() string { return string(f) }

// ParseID: bentuk numerik kanonik. Harus angka finite, bulat, dan muat di int64.
func ParseID(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty id")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("id %q is not numeric", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("id %q is not finite", s)
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("id %q is not an integer", s)
	}
	if v < math.MinInt64 || v >= math.MaxInt64 {
		return 0, fmt.Errorf("id %q out of range", s)
	}
	return int64(v), nil
}

func (f FlexText) Int64() (int64, error) {
	return ParseID(string(f))
}
