// Package reports combines aggregate tables and rates into the multi-column
// reports served to callers.
package reports

import (
	"sort"

	"github.com/okian/nflstats/internal/domain/aggregate"
	"github.com/okian/nflstats/internal/domain/filter"
	"github.com/okian/nflstats/internal/domain/model"
	"github.com/okian/nflstats/internal/domain/rates"
	"github.com/okian/nflstats/internal/domain/types"
)

// neutralMargin bounds the score differential of a one-score game.
const neutralMargin = 6

// Situation labels.
const (
	SituationNeutral = "Neutral"
	SituationAhead   = "Ahead"
	SituationBehind  = "Behind"
)

// PlaysRow is a pace row: snap counts plus time of possession.
type PlaysRow struct {
	aggregate.PlayCounts
	// TOP is the possession time in minutes, undefined when the team has no
	// recorded drive in the game.
	TOP types.NullFloat `json:"top"`
}

// Plays joins per-type snap counts with time of possession on game and team.
func Plays(plays []model.Play) []PlaysRow {
	top := make(map[model.TeamGameKey]float64)
	for _, p := range aggregate.TimeOfPossession(plays) {
		top[p.TeamGameKey] = p.Minutes
	}

	counts := aggregate.PlaysByType(plays)
	out := make([]PlaysRow, len(counts))
	for i, c := range counts {
		out[i] = PlaysRow{PlayCounts: c}
		if m, ok := top[c.TeamGameKey]; ok {
			out[i].TOP = types.Float(m)
		}
	}
	return out
}

// SituationRow is a pace row computed within one game-script bucket.
type SituationRow struct {
	PlaysRow
	SituationType string `json:"situation_type"`
}

type situation struct {
	label string
	pred  filter.Predicate
}

var situations = []situation{
	{SituationNeutral, filter.ScoreDiffBetween(-neutralMargin, neutralMargin)},
	{SituationAhead, filter.ScoreDiffAbove(neutralMargin)},
	{SituationBehind, filter.ScoreDiffBelow(-neutralMargin)},
}

// Situation computes Plays separately for neutral, ahead and behind score
// differentials and concatenates the results in that order. Undefined values
// are reported as zero. Plays with an unknown differential belong to no
// bucket.
func Situation(plays []model.Play) []SituationRow {
	var out []SituationRow
	for _, s := range situations {
		for _, r := range Plays(filter.Apply(plays, s.pred)) {
			r.RunPct = r.RunPct.OrZero()
			r.PassPct = r.PassPct.OrZero()
			r.TOP = r.TOP.OrZero()
			out = append(out, SituationRow{PlaysRow: r, SituationType: s.label})
		}
	}
	if out == nil {
		out = []SituationRow{}
	}
	return out
}

// RushingSuccessRow is a rushing line joined with its success figures.
type RushingSuccessRow struct {
	aggregate.RushingRow
	Successes   types.NullInt   `json:"successes"`
	SuccessRate types.NullFloat `json:"success_rate"`
}

// RushingWithSuccess joins the rushing table with rushing success on game and
// player. Rushers whose only plays were excluded from success rate get
// undefined success figures.
func RushingWithSuccess(plays []model.Play) []RushingSuccessRow {
	succ := make(map[rates.RushKey]rates.SuccessRow)
	for _, s := range rates.RushingSuccessRate(plays) {
		succ[rates.RushKey{GameID: s.GameID, PlayerKey: s.PlayerKey}] = s
	}

	rush := aggregate.Rushing(plays)
	out := make([]RushingSuccessRow, len(rush))
	for i, r := range rush {
		out[i] = RushingSuccessRow{RushingRow: r}
		if s, ok := succ[rates.RushKey{GameID: r.GameID, PlayerKey: r.PlayerKey}]; ok {
			out[i].Successes = types.Int(s.Successes)
			out[i].SuccessRate = s.SuccessRate
		}
	}
	return out
}

// TouchdownRow is one run or pass play credited to a single player.
type TouchdownRow struct {
	PlayID      string         `json:"play_id"`
	Player      string         `json:"player"`
	PlayType    model.PlayType `json:"play_type"`
	YardsGained int            `json:"yards_gained"`
}

// Touchdowns lists run and pass plays, credited to the receiver when there is
// one and to the rusher otherwise, longest gain first. Ties keep input order.
func Touchdowns(plays []model.Play) []TouchdownRow {
	out := make([]TouchdownRow, 0)
	for i := range plays {
		p := &plays[i]
		if !model.ImportantPlayTypes.Contains(p.PlayType) {
			continue
		}
		player := p.ReceiverName
		if player == "" {
			player = p.RusherName
		}
		out = append(out, TouchdownRow{
			PlayID:      p.PlayID,
			Player:      player,
			PlayType:    p.PlayType,
			YardsGained: p.YardsGained,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].YardsGained > out[j].YardsGained })
	return out
}
