// Package service provides the stats service that implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/nflstats/internal/adapters/pbp"
	"github.com/okian/nflstats/internal/adapters/schedule"
	"github.com/okian/nflstats/internal/adapters/table"
	"github.com/okian/nflstats/internal/domain/aggregate"
	"github.com/okian/nflstats/internal/domain/dedupe"
	"github.com/okian/nflstats/internal/domain/filter"
	"github.com/okian/nflstats/internal/domain/model"
	"github.com/okian/nflstats/internal/domain/rates"
	"github.com/okian/nflstats/internal/domain/reports"
	"github.com/okian/nflstats/pkg/logger"
	"github.com/okian/nflstats/pkg/metrics"
)

const (
	defaultTouchdownLimit = 100
	playsDataset          = "plays"
	scheduleStatusOK      = "ok"
	scheduleStatusError   = "error"
)

// Service serves the stats reports over an in-memory play table.
type Service struct {
	mu sync.RWMutex

	// Data
	plays      []model.Play
	duplicates int
	loadedAt   time.Time

	// Configuration
	playsPath      string
	playsTable     string
	schedule       schedule.Provider
	dedupe         bool
	dedupeSize     int
	touchdownLimit int
	now            func() time.Time

	// State
	started bool

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		playsTable:     playsDataset,
		touchdownLimit: defaultTouchdownLimit,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the play table. Calling Start on a started service is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.mu.Unlock()

	s.logger.Info(ctx, "starting stats service...", logger.String("plays", s.playsPath))
	if err := s.Reload(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.started = true
	s.mu.Unlock()
	return nil
}

// Stop releases the loaded plays.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.plays = nil
	s.started = false
	metrics.UpdatePlaysInMemory(0)
	s.log().Info(context.Background(), "stats service stopped")
}

// Reload reads the play tables again and swaps them in. The plays path may
// be a glob naming one table per season. On error the previously loaded
// plays stay in place.
func (s *Service) Reload(ctx context.Context) error {
	if s.playsPath == "" {
		return fmt.Errorf("%w: no plays path configured", pbp.ErrNotLoaded)
	}

	opts := []pbp.Option{pbp.WithSQLTable(s.playsTable)}
	if s.dedupe {
		opts = append(opts, pbp.WithDeduper(dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))))
	}

	start := time.Now()
	paths, err := pbp.Expand(s.playsPath)
	if err != nil {
		return err
	}
	res, err := pbp.LoadAll(ctx, paths, opts...)
	metrics.RecordDatasetLoadDuration(playsDataset, float64(time.Since(start).Microseconds())/1000)
	if err != nil {
		if errors.Is(err, table.ErrInvalidRow) || errors.Is(err, table.ErrInvalidValue) {
			metrics.RecordRowRejected(playsDataset)
		}
		metrics.RecordErrorByComponent("service", "load_plays")
		s.log().Error(ctx, "failed to load plays", logger.String("path", s.playsPath), logger.Error(err))
		return err
	}

	metrics.RecordRowsLoaded(playsDataset, len(res.Plays)+res.Duplicates)
	metrics.RecordPlaysDuplicate(res.Duplicates)
	metrics.UpdatePlaysInMemory(len(res.Plays))

	s.mu.Lock()
	s.plays = res.Plays
	s.duplicates = res.Duplicates
	s.loadedAt = s.now()
	s.mu.Unlock()

	s.log().Info(ctx, "plays loaded",
		logger.Int("files", len(paths)),
		logger.Int("plays", len(res.Plays)),
		logger.Int("duplicates", res.Duplicates),
		logger.Duration("took", time.Since(start)),
	)
	return nil
}

func (s *Service) log() logger.Logger {
	if s.logger == nil {
		return logger.Nop()
	}
	return s.logger
}

// snapshot returns the plays matching q. The returned slice is never mutated.
func (s *Service) snapshot(q filter.Query) ([]model.Play, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	plays := s.plays
	s.mu.RUnlock()
	if plays == nil {
		return nil, pbp.ErrNotLoaded
	}
	pred := q.Predicate()
	if pred == nil {
		return plays, nil
	}
	return filter.Apply(plays, pred), nil
}

func run[T any](ctx context.Context, s *Service, report string, q filter.Query, f func([]model.Play) []T) ([]T, error) {
	plays, err := s.snapshot(q)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	rows := f(plays)
	took := time.Since(start)
	metrics.RecordReport(report, len(rows), float64(took.Microseconds())/1000)
	s.log().Debug(ctx, "report computed",
		logger.String("report", report),
		logger.Int("plays", len(plays)),
		logger.Int("rows", len(rows)),
		logger.Duration("took", took),
	)
	return rows, nil
}

// Plays returns per-type play counts with time of possession per game and team.
func (s *Service) Plays(ctx context.Context, q filter.Query) ([]reports.PlaysRow, error) {
	return run(ctx, s, "plays", q, reports.Plays)
}

// Situation returns play counts split by score situation.
func (s *Service) Situation(ctx context.Context, q filter.Query) ([]reports.SituationRow, error) {
	return run(ctx, s, "situation", q, reports.Situation)
}

// Rushing returns rushing lines per game and player.
func (s *Service) Rushing(ctx context.Context, q filter.Query) ([]aggregate.RushingRow, error) {
	return run(ctx, s, "rushing", q, aggregate.Rushing)
}

// RushingWithSuccess returns rushing lines joined with success rates.
func (s *Service) RushingWithSuccess(ctx context.Context, q filter.Query) ([]reports.RushingSuccessRow, error) {
	return run(ctx, s, "rushing_success_joined", q, reports.RushingWithSuccess)
}

// RushingSuccessRate returns rushing success rates per game and player.
func (s *Service) RushingSuccessRate(ctx context.Context, q filter.Query) ([]rates.SuccessRow, error) {
	return run(ctx, s, "rushing_success", q, rates.RushingSuccessRate)
}

// Receiving returns receiving lines per game and player.
func (s *Service) Receiving(ctx context.Context, q filter.Query) ([]aggregate.ReceivingRow, error) {
	return run(ctx, s, "receiving", q, aggregate.Receiving)
}

// TimeOfPossession returns minutes of possession per game and team.
func (s *Service) TimeOfPossession(ctx context.Context, q filter.Query) ([]aggregate.Possession, error) {
	return run(ctx, s, "time_of_possession", q, aggregate.TimeOfPossession)
}

// Touchdowns returns the longest run and pass plays, at most limit rows.
// A limit outside (0, max] is clamped to the configured maximum.
func (s *Service) Touchdowns(ctx context.Context, q filter.Query, limit int) ([]reports.TouchdownRow, error) {
	if limit <= 0 || limit > s.touchdownLimit {
		limit = s.touchdownLimit
	}
	return run(ctx, s, "touchdowns", q, func(plays []model.Play) []reports.TouchdownRow {
		rows := reports.Touchdowns(plays)
		if len(rows) > limit {
			rows = rows[:limit]
		}
		return rows
	})
}

// Games returns the raw schedule.
func (s *Service) Games(ctx context.Context) ([]model.Game, error) {
	if s.schedule == nil {
		return nil, fmt.Errorf("%w: no schedule configured", schedule.ErrLoadSchedule)
	}
	games, err := s.schedule.Games(ctx)
	if err != nil {
		metrics.RecordScheduleLoad(scheduleStatusError)
		metrics.RecordErrorByComponent("service", "load_schedule")
		s.log().Error(ctx, "failed to load schedule", logger.Error(err))
		return nil, err
	}
	metrics.RecordScheduleLoad(scheduleStatusOK)
	return games, nil
}

// GamesMeta returns the schedule with one row per team and game.
func (s *Service) GamesMeta(ctx context.Context) ([]model.TeamGame, error) {
	games, err := s.Games(ctx)
	if err != nil {
		return nil, err
	}
	return schedule.GamesMeta(games), nil
}

// CurrentWeek returns the week in progress at the service clock.
func (s *Service) CurrentWeek(ctx context.Context) (model.SeasonWeek, error) {
	games, err := s.Games(ctx)
	if err != nil {
		return model.SeasonWeek{}, err
	}
	now := s.now()
	week, err := schedule.CurrentSeasonWeek(games, now)
	if err != nil {
		s.log().Warn(ctx, "no current week", logger.String("now", now.Format(time.DateOnly)))
		return model.SeasonWeek{}, err
	}
	return model.SeasonWeek{Season: schedule.CurrentSeason(now), Week: week}, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":        s.started,
		"playsPath":      s.playsPath,
		"dedupe":         s.dedupe,
		"touchdownLimit": s.touchdownLimit,
	}
	if s.plays != nil {
		stats["plays"] = len(s.plays)
		stats["duplicates"] = s.duplicates
		stats["loadedAt"] = s.loadedAt.UTC().Format(time.RFC3339)
	}
	return stats
}
