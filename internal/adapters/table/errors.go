package table

import (
	"errors"
	"fmt"
)

// Sentinel kinds for table errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported table format")
	ErrMissingColumn     = errors.New("missing required column")
	ErrInvalidValue      = errors.New("invalid cell value")
	ErrInvalidRow        = errors.New("invalid row")
	ErrEmptyTable        = errors.New("table has no header")
)

// ShapeError reports input that does not match a dataset's column contract.
type ShapeError struct {
	Dataset string
	Column  string
	Row     int // 1-based data row, 0 when the error is not row specific
	Err     error
}

func (e *ShapeError) Error() string {
	switch {
	case e.Row > 0 && e.Column != "":
		return fmt.Sprintf("%s: row %d, column %q: %v", e.Dataset, e.Row, e.Column, e.Err)
	case e.Row > 0:
		return fmt.Sprintf("%s: row %d: %v", e.Dataset, e.Row, e.Err)
	case e.Column != "":
		return fmt.Sprintf("%s: column %q: %v", e.Dataset, e.Column, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Dataset, e.Err)
	}
}

func (e *ShapeError) Unwrap() error { return e.Err }
