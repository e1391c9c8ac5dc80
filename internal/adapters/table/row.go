package table

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Row gives typed access to one data row. Accessors treat NA-style tokens as
// null and report unparseable text as a ShapeError.
type Row struct {
	t     *Table
	n     int
	cells []string
}

// Number returns the 1-based data row number.
func (r Row) Number() int { return r.n }

func isNull(s string) bool {
	switch s {
	case "", "NA", "NaN", "nan", "null", "NULL", "None":
		return true
	}
	return false
}

func (r Row) raw(col string) string {
	i, ok := r.t.index[col]
	if !ok {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

func (r Row) invalid(col string) error {
	return &ShapeError{Dataset: r.t.name, Column: col, Row: r.n, Err: ErrInvalidValue}
}

// String returns the cell text, "" for null cells or absent columns.
func (r Row) String(col string) string {
	s := r.raw(col)
	if isNull(s) {
		return ""
	}
	return s
}

// Float returns the cell as a float, 0 for null.
func (r Row) Float(col string) (float64, error) {
	s := r.raw(col)
	if isNull(s) {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, r.invalid(col)
	}
	return v, nil
}

// NullInt returns the cell as an integer and whether it was present.
// Integral floats such as "3.0" are accepted.
func (r Row) NullInt(col string) (int, bool, error) {
	s := r.raw(col)
	if isNull(s) {
		return 0, false, nil
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, true, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false, r.invalid(col)
	}
	return int(f), true, nil
}

// Int returns the cell as an integer, 0 for null.
func (r Row) Int(col string) (int, error) {
	v, _, err := r.NullInt(col)
	return v, err
}

// Bool returns the cell as a flag. Numeric cells are true when non-zero.
func (r Row) Bool(col string) (bool, error) {
	s := r.raw(col)
	if isNull(s) {
		return false, nil
	}
	switch strings.ToLower(s) {
	case "true", "t", "yes":
		return true, nil
	case "false", "f", "no":
		return false, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false, r.invalid(col)
	}
	return f != 0, nil
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/06",
	"1/2/2006",
}

// Date returns the cell as a calendar date in UTC.
func (r Row) Date(col string) (time.Time, error) {
	s := r.raw(col)
	if isNull(s) {
		return time.Time{}, r.invalid(col)
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			y, m, day := d.Date()
			return time.Date(y, m, day, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, r.invalid(col)
}
