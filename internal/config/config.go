// Package config defines service configuration and its layered loader.
package config

import (
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"omitempty,oneof=debug info warn warning error"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr" validate:"required"`

	// PlaysPath points at the play-by-play table (.csv, .xlsx or SQLite).
	PlaysPath string `koanf:"plays_path" validate:"required"`

	// PlaysTable names the SQLite table holding plays.
	PlaysTable string `koanf:"plays_table"`

	// SchedulePath points at the schedule table (.csv, .xlsx or SQLite).
	SchedulePath string `koanf:"schedule_path" validate:"required"`

	// ScheduleTable names the SQLite table holding the schedule.
	ScheduleTable string `koanf:"schedule_table"`

	// TouchdownLimit caps GET /reports/touchdowns?limit.
	TouchdownLimit int `koanf:"touchdown_limit" validate:"gt=0"`

	// Dedupe drops repeated (game_id, play_id) rows at load.
	Dedupe bool `koanf:"dedupe"`

	// DedupeSize bounds the dedupe window; 0 means unbounded.
	DedupeSize int `koanf:"dedupe_size" validate:"gte=0"`

	// ShutdownTimeout bounds graceful HTTP shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":9080",
		PlaysPath:       "data/pbp.csv",
		PlaysTable:      "plays",
		SchedulePath:    "data/schedule.csv",
		ScheduleTable:   "schedule",
		TouchdownLimit:  100,
		Dedupe:          true,
		DedupeSize:      0,
		ShutdownTimeout: 5 * time.Second,
	}
}
