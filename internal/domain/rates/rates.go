// Package rates derives per-play classifications and ratios from
// play-by-play rows.
package rates

import (
	"sort"
	"strconv"
	"strings"

	"github.com/okian/nflstats/internal/domain/model"
	"github.com/okian/nflstats/internal/domain/types"
)

// Success thresholds for rushing plays.
const (
	bigGainYards       = 6
	firstDownFraction  = 0.4
	secondDownFraction = 0.5
	// Plays on third or fourth down with more than this many yards to go
	// are excluded from success rate.
	garbageDistance = 5
)

// ConvertTOP parses a "minutes:seconds" possession string into seconds.
// Empty or malformed text yields 0.
func ConvertTOP(t string) int {
	m, s, ok := strings.Cut(t, ":")
	if !ok || strings.Contains(s, ":") {
		return 0
	}
	mins, err := strconv.Atoi(strings.TrimSpace(m))
	if err != nil {
		return 0
	}
	secs, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return mins*60 + secs
}

// RushingSuccess returns 1 when the rushing play met its down-and-distance
// gain threshold, 0 otherwise.
//
// Third down has no threshold and never counts as a success.
// TODO(stats): confirm the intended third-down rule with the analysts before adding one.
func RushingSuccess(p *model.Play) int {
	gain := float64(p.YardsGained)
	togo := float64(p.YardsToGo)
	switch {
	case p.Down == 1:
		if gain >= bigGainYards || gain >= togo*firstDownFraction {
			return 1
		}
	case p.Down == 2:
		if gain >= bigGainYards || gain >= togo*secondDownFraction {
			return 1
		}
	case p.Down > 3:
		if gain >= togo {
			return 1
		}
	}
	return 0
}

// IsGarbage reports whether a play is a long-yardage late down excluded from
// success rate.
func IsGarbage(p *model.Play) bool {
	return p.Down > 2 && p.YardsToGo > garbageDistance
}

// SuccessRow is the rushing success summary of one player in one game.
type SuccessRow struct {
	GameID string `json:"game_id"`
	model.PlayerKey
	Successes   int             `json:"successes"`
	Rushes      int             `json:"rushes"`
	SuccessRate types.NullFloat `json:"success_rate"`
}

// RushKey groups rows by game and rusher.
type RushKey struct {
	GameID string
	model.PlayerKey
}

// Less orders keys by game, player id, then player name.
func (k RushKey) Less(o RushKey) bool {
	if k.GameID != o.GameID {
		return k.GameID < o.GameID
	}
	if k.PlayerID != o.PlayerID {
		return k.PlayerID < o.PlayerID
	}
	return k.Player < o.Player
}

// RusherKey returns the grouping key of a play and whether it has a rusher.
func RusherKey(p *model.Play) (RushKey, bool) {
	if p.RusherID == "" || p.RusherName == "" {
		return RushKey{}, false
	}
	return RushKey{GameID: p.GameID, PlayerKey: model.PlayerKey{PlayerID: p.RusherID, Player: p.RusherName}}, true
}

// RushingSuccessRate computes per game and rusher success counts over every
// play with a rusher, skipping long-yardage late downs. Only rush attempts
// count toward successes and rushes; a rusher seen only on non-attempts gets
// a row with an undefined rate.
func RushingSuccessRate(plays []model.Play) []SuccessRow {
	acc := make(map[RushKey]*SuccessRow)
	for i := range plays {
		p := &plays[i]
		if IsGarbage(p) {
			continue
		}
		key, ok := RusherKey(p)
		if !ok {
			continue
		}
		row, ok := acc[key]
		if !ok {
			row = &SuccessRow{GameID: key.GameID, PlayerKey: key.PlayerKey}
			acc[key] = row
		}
		if p.RushAttempt {
			row.Rushes++
			row.Successes += RushingSuccess(p)
		}
	}

	keys := make([]RushKey, 0, len(acc))
	for k := range acc {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	out := make([]SuccessRow, 0, len(keys))
	for _, k := range keys {
		row := acc[k]
		row.SuccessRate = types.Ratio(row.Successes, row.Rushes)
		out = append(out, *row)
	}
	return out
}
