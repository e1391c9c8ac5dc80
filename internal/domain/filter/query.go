package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidQuery is returned for a query failing validation.
var ErrInvalidQuery = errors.New("invalid query")

var validate = validator.New()

// Query narrows the plays a report runs over. Zero fields match everything.
type Query struct {
	GameID string `validate:"omitempty,max=64"`
	Team   string `validate:"omitempty,alphanum,max=4"`
	Week   int    `validate:"gte=0,lte=22"`
}

// Validate checks field constraints.
func (q Query) Validate() error {
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	return nil
}

// Predicate returns the filter matching q, or nil when q matches everything.
func (q Query) Predicate() Predicate {
	var preds []Predicate
	if q.GameID != "" {
		preds = append(preds, Game(q.GameID))
	}
	if q.Team != "" {
		preds = append(preds, Team(strings.ToUpper(q.Team)))
	}
	if q.Week > 0 {
		preds = append(preds, Week(q.Week))
	}
	if len(preds) == 0 {
		return nil
	}
	return All(preds...)
}
