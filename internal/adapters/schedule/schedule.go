// Package schedule reads the static season schedule and derives team-centric
// and calendar views from it.
package schedule

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/okian/nflstats/internal/adapters/table"
	"github.com/okian/nflstats/internal/domain/model"
)

const datasetName = "schedule"

// RequiredColumns lists the columns every schedule table must carry.
var RequiredColumns = []string{"season", "week", "gameday", "home_team", "away_team", "game_id"}

// seasonStartMonth is the last month that still belongs to the previous
// season.
const seasonStartMonth = time.August

// Provider returns the full schedule.
type Provider interface {
	Games(ctx context.Context) ([]model.Game, error)
}

// FileProvider reads the schedule from a static file on every call.
type FileProvider struct {
	path     string
	sqlTable string
	validate *validator.Validate
}

// Option applies a configuration option to the FileProvider.
type Option func(*FileProvider)

// WithSQLTable names the table to read when the file is a SQLite database.
func WithSQLTable(name string) Option {
	return func(p *FileProvider) {
		if name != "" {
			p.sqlTable = name
		}
	}
}

// NewFileProvider creates a provider for the schedule stored at path.
func NewFileProvider(path string, opts ...Option) *FileProvider {
	p := &FileProvider{path: path, sqlTable: datasetName, validate: validator.New()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Games loads every game of the schedule.
func (p *FileProvider) Games(ctx context.Context) ([]model.Game, error) {
	t, err := table.Open(ctx, p.path, table.WithName(datasetName), table.WithSQLTable(p.sqlTable))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadSchedule, err)
	}
	return decode(t, p.validate)
}

func decode(t *table.Table, v *validator.Validate) ([]model.Game, error) {
	if err := t.Require(RequiredColumns...); err != nil {
		return nil, err
	}
	games := make([]model.Game, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		r := t.Row(i)
		g := model.Game{
			GameID:   r.String("game_id"),
			HomeTeam: r.String("home_team"),
			AwayTeam: r.String("away_team"),
		}
		var err error
		if g.Season, err = r.Int("season"); err != nil {
			return nil, err
		}
		if g.Week, err = r.Int("week"); err != nil {
			return nil, err
		}
		if g.Gameday, err = r.Date("gameday"); err != nil {
			return nil, err
		}
		if err := v.Struct(g); err != nil {
			return nil, &table.ShapeError{Dataset: t.Name(), Row: r.Number(), Err: fmt.Errorf("%w: %w", table.ErrInvalidRow, err)}
		}
		games = append(games, g)
	}
	return games, nil
}

// GamesMeta turns one row per game into one row per participant, away team
// first, ordered by game id.
func GamesMeta(games []model.Game) []model.TeamGame {
	out := make([]model.TeamGame, 0, 2*len(games))
	for _, g := range games {
		base := model.TeamGame{GameID: g.GameID, Season: g.Season, Week: g.Week, Gameday: g.Gameday}
		away, home := base, base
		away.Team, away.Opp = g.AwayTeam, g.HomeTeam
		home.Team, home.Opp, home.IsHome = g.HomeTeam, g.AwayTeam, true
		out = append(out, away, home)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].GameID < out[j].GameID })
	return out
}

// CurrentSeason returns the season in progress at now. A season starts in
// September and runs into the following calendar year.
func CurrentSeason(now time.Time) int {
	if now.Month() > seasonStartMonth {
		return now.Year()
	}
	return now.Year() - 1
}

// CurrentSeasonWeek returns the latest week of the current season whose
// first game is on or before the calendar date of now.
func CurrentSeasonWeek(games []model.Game, now time.Time) (int, error) {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	season := CurrentSeason(today)
	starts := make(map[int]time.Time)
	for _, g := range games {
		if g.Season != season {
			continue
		}
		if s, ok := starts[g.Week]; !ok || g.Gameday.Before(s) {
			starts[g.Week] = g.Gameday
		}
	}

	week := 0
	var latest time.Time
	for w, s := range starts {
		if s.After(today) {
			continue
		}
		if week == 0 || s.After(latest) || (s.Equal(latest) && w < week) {
			week, latest = w, s
		}
	}
	if week == 0 {
		return 0, fmt.Errorf("season %d: %w", season, ErrNoCurrentWeek)
	}
	return week, nil
}
