package schedule

import "errors"

// Sentinel kinds for schedule errors.
var (
	ErrLoadSchedule  = errors.New("load schedule failed")
	ErrNoCurrentWeek = errors.New("no week of the current season has started")
)
