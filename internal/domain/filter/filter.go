// Package filter selects subsets of play-by-play rows.
package filter

import "github.com/okian/nflstats/internal/domain/model"

// Predicate reports whether a play belongs to the subset.
type Predicate func(p *model.Play) bool

// Apply returns the plays satisfying pred as a new slice. The input is not
// modified; a nil pred selects every row.
func Apply(plays []model.Play, pred Predicate) []model.Play {
	out := make([]model.Play, 0, len(plays))
	for i := range plays {
		if pred == nil || pred(&plays[i]) {
			out = append(out, plays[i])
		}
	}
	return out
}

// All matches plays satisfying every predicate. With no predicates it
// matches everything.
func All(preds ...Predicate) Predicate {
	return func(p *model.Play) bool {
		for _, pred := range preds {
			if pred != nil && !pred(p) {
				return false
			}
		}
		return true
	}
}

// Not negates pred.
func Not(pred Predicate) Predicate {
	return func(p *model.Play) bool { return !pred(p) }
}

// PlayTypeIn matches plays whose type is in set.
func PlayTypeIn(set model.PlayTypeSet) Predicate {
	return func(p *model.Play) bool { return set.Contains(p.PlayType) }
}

// PlayTypeIs matches a single play type.
func PlayTypeIs(t model.PlayType) Predicate {
	return func(p *model.Play) bool { return p.PlayType == t }
}

// ScoreDiffBetween matches a known score differential in [lo, hi].
func ScoreDiffBetween(lo, hi int) Predicate {
	return func(p *model.Play) bool {
		d := p.ScoreDifferential
		return d.Valid && d.Int >= lo && d.Int <= hi
	}
}

// ScoreDiffAbove matches a known score differential strictly above x.
func ScoreDiffAbove(x int) Predicate {
	return func(p *model.Play) bool {
		return p.ScoreDifferential.Valid && p.ScoreDifferential.Int > x
	}
}

// ScoreDiffBelow matches a known score differential strictly below x.
func ScoreDiffBelow(x int) Predicate {
	return func(p *model.Play) bool {
		return p.ScoreDifferential.Valid && p.ScoreDifferential.Int < x
	}
}

// DownBetween matches downs in [lo, hi].
func DownBetween(lo, hi int) Predicate {
	return func(p *model.Play) bool { return p.Down >= lo && p.Down <= hi }
}

// DistanceBetween matches yards-to-go in [lo, hi].
func DistanceBetween(lo, hi int) Predicate {
	return func(p *model.Play) bool { return p.YardsToGo >= lo && p.YardsToGo <= hi }
}

// Game matches one game id.
func Game(id string) Predicate {
	return func(p *model.Play) bool { return p.GameID == id }
}

// Team matches the possessing team.
func Team(team string) Predicate {
	return func(p *model.Play) bool { return p.PosTeam == team }
}

// Week matches one week of the season.
func Week(w int) Predicate {
	return func(p *model.Play) bool { return p.Week == w }
}
