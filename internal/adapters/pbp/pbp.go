// Package pbp decodes play-by-play tables into validated plays.
package pbp

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/okian/nflstats/internal/adapters/table"
	"github.com/okian/nflstats/internal/domain/dedupe"
	"github.com/okian/nflstats/internal/domain/model"
	"github.com/okian/nflstats/internal/domain/types"
)

const datasetName = "plays"

// RequiredColumns lists the columns every play table must carry.
var RequiredColumns = []string{
	"game_id", "play_id", "posteam", "play_type",
	"down", "ydstogo", "yards_gained", "score_differential",
	"fixed_drive", "drive_time_of_possession",
	"complete_pass", "pass_touchdown", "rush_touchdown", "rush_attempt",
	"rusher_player_id", "rusher_player_name",
	"receiver_player_id", "receiver_player_name",
	"air_yards", "yards_after_catch",
}

// Result is a decoded play table.
type Result struct {
	Plays      []model.Play
	Duplicates int
}

type decoder struct {
	deduper  dedupe.Deduper
	validate *validator.Validate
	sqlTable string
}

func newDecoder(opts ...Option) *decoder {
	d := &decoder{sqlTable: datasetName}
	for _, opt := range opts {
		opt(d)
	}
	d.validate = validator.New()
	return d
}

// Load reads and decodes the play table at path.
func Load(ctx context.Context, path string, opts ...Option) (Result, error) {
	d := newDecoder(opts...)
	t, err := table.Open(ctx, path, table.WithName(datasetName), table.WithSQLTable(d.sqlTable))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrLoadPlays, err)
	}
	return d.decode(ctx, t)
}

func (d *decoder) decode(ctx context.Context, t *table.Table) (Result, error) {
	if err := t.Require(RequiredColumns...); err != nil {
		return Result{}, err
	}

	plays, err := d.decodeRows(t)
	if err != nil {
		return Result{}, err
	}
	return d.dropDuplicates(ctx, plays), nil
}

func (d *decoder) decodeRows(t *table.Table) ([]model.Play, error) {
	plays := make([]model.Play, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		p, err := decodePlay(row)
		if err != nil {
			return nil, err
		}
		if err := d.validate.Struct(p); err != nil {
			return nil, &table.ShapeError{
				Dataset: t.Name(), Row: row.Number(),
				Err: fmt.Errorf("%w: %w", table.ErrInvalidRow, err),
			}
		}
		plays = append(plays, p)
	}
	return plays, nil
}

// dropDuplicates keeps the first occurrence of every (game_id, play_id).
// Plays without a play id are always kept.
func (d *decoder) dropDuplicates(ctx context.Context, plays []model.Play) Result {
	if d.deduper == nil {
		return Result{Plays: plays}
	}
	res := Result{Plays: plays[:0]}
	for _, p := range plays {
		if p.PlayID != "" && d.deduper.SeenAndRecord(ctx, dedupe.Key(p.GameID, p.PlayID)) {
			res.Duplicates++
			continue
		}
		res.Plays = append(res.Plays, p)
	}
	return res
}

// decodePlay reads one row. Unparseable cells fail the whole load.
func decodePlay(r table.Row) (model.Play, error) {
	p := model.Play{
		GameID:                r.String("game_id"),
		PlayID:                r.String("play_id"),
		PosTeam:               r.String("posteam"),
		PlayType:              model.PlayType(r.String("play_type")),
		DriveTimeOfPossession: r.String("drive_time_of_possession"),
		RusherID:              r.String("rusher_player_id"),
		RusherName:            r.String("rusher_player_name"),
		ReceiverID:            r.String("receiver_player_id"),
		ReceiverName:          r.String("receiver_player_name"),
	}

	ints := []struct {
		col string
		dst *int
	}{
		{"season", &p.Season},
		{"week", &p.Week},
		{"down", &p.Down},
		{"ydstogo", &p.YardsToGo},
		{"yards_gained", &p.YardsGained},
		{"fixed_drive", &p.Drive},
	}
	for _, f := range ints {
		v, err := r.Int(f.col)
		if err != nil {
			return model.Play{}, err
		}
		*f.dst = v
	}

	diff, ok, err := r.NullInt("score_differential")
	if err != nil {
		return model.Play{}, err
	}
	if ok {
		p.ScoreDifferential = types.Int(diff)
	}

	flags := []struct {
		col string
		dst *bool
	}{
		{"complete_pass", &p.CompletePass},
		{"pass_touchdown", &p.PassTouchdown},
		{"rush_touchdown", &p.RushTouchdown},
		{"rush_attempt", &p.RushAttempt},
	}
	for _, f := range flags {
		v, err := r.Bool(f.col)
		if err != nil {
			return model.Play{}, err
		}
		*f.dst = v
	}

	if p.AirYards, err = r.Float("air_yards"); err != nil {
		return model.Play{}, err
	}
	if p.YardsAfterCatch, err = r.Float("yards_after_catch"); err != nil {
		return model.Play{}, err
	}
	return p, nil
}
