package pbp

import "github.com/okian/nflstats/internal/domain/dedupe"

// Option applies a configuration option to the decoder.
type Option func(*decoder)

// WithDeduper drops rows whose (game_id, play_id) was already decoded.
func WithDeduper(d dedupe.Deduper) Option {
	return func(dec *decoder) {
		dec.deduper = d
	}
}

// WithSQLTable names the table to read when the source is a SQLite database.
func WithSQLTable(name string) Option {
	return func(dec *decoder) {
		if name != "" {
			dec.sqlTable = name
		}
	}
}
