// Package types contains value types shared by the domain packages.
package types

import (
	"math"
	"strconv"
)

// NullFloat is a float64 that may be undefined, e.g. a ratio whose
// denominator is zero. The zero value is undefined.
type NullFloat struct {
	Float float64
	Valid bool
}

// Float wraps a defined value.
func Float(v float64) NullFloat { return NullFloat{Float: v, Valid: true} }

// Ratio returns num/den, undefined when den is zero.
func Ratio(num, den int) NullFloat {
	if den == 0 {
		return NullFloat{}
	}
	return Float(float64(num) / float64(den))
}

// OrZero returns a defined value, substituting 0 when undefined.
func (n NullFloat) OrZero() NullFloat {
	if !n.Valid {
		return Float(0)
	}
	return n
}

// Value returns the float, or NaN when undefined.
func (n NullFloat) Value() float64 {
	if !n.Valid {
		return math.NaN()
	}
	return n.Float
}

// MarshalJSON encodes undefined values as null.
func (n NullFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, n.Float, 'f', -1, 64), nil
}

// NullInt is an int that may be missing from the source row.
type NullInt struct {
	Int   int
	Valid bool
}

// Int wraps a present value.
func Int(v int) NullInt { return NullInt{Int: v, Valid: true} }

// MarshalJSON encodes missing values as null.
func (n NullInt) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, int64(n.Int), 10), nil
}
