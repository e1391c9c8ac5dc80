package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/nflstats/internal/adapters/pbp"
	"github.com/okian/nflstats/internal/adapters/schedule"
	"github.com/okian/nflstats/internal/domain/filter"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("not found")
)

// wrap tags err with the failing operation.
func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// statusFor maps an error to its HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, filter.ErrInvalidQuery):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, ErrNotFound), errors.Is(err, schedule.ErrNoCurrentWeek):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, pbp.ErrNotLoaded):
		return http.StatusServiceUnavailable, "not_loaded"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
