package service

import (
	"time"

	"github.com/okian/nflstats/internal/adapters/schedule"
	"github.com/okian/nflstats/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithPlaysPath sets the play-by-play table loaded on Start. Glob patterns
// load every matching table, one per season for example.
func WithPlaysPath(path string) Option {
	return func(s *Service) {
		s.playsPath = path
	}
}

// WithPlaysTable sets the SQLite table read when the plays file is a database.
func WithPlaysTable(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.playsTable = name
		}
	}
}

// WithSchedule sets the schedule provider.
func WithSchedule(p schedule.Provider) Option {
	return func(s *Service) {
		if p != nil {
			s.schedule = p
		}
	}
}

// WithDedupe enables dropping repeated (game_id, play_id) rows at load.
// size bounds the dedupe window; 0 means unbounded.
func WithDedupe(enabled bool, size int) Option {
	return func(s *Service) {
		s.dedupe = enabled
		if size >= 0 {
			s.dedupeSize = size
		}
	}
}

// WithTouchdownLimit caps the number of touchdown rows returned.
func WithTouchdownLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.touchdownLimit = limit
		}
	}
}

// WithClock overrides the time source used for the current week.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
