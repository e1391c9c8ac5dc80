// Package model contains domain models passed between layers.
package model

import "github.com/okian/nflstats/internal/domain/types"

// PlayType is the play_type column of a play-by-play row. Values outside the
// known set are kept verbatim and count as "other".
type PlayType string

// Known play types.
const (
	PlayPass    PlayType = "pass"
	PlayRun     PlayType = "run"
	PlayQBSpike PlayType = "qb_spike"
	PlayQBKneel PlayType = "qb_kneel"
)

// PlayTypeSet is an immutable set of play types.
type PlayTypeSet struct {
	types []PlayType
}

// NewPlayTypeSet builds a set from the given members, in order.
func NewPlayTypeSet(members ...PlayType) PlayTypeSet {
	return PlayTypeSet{types: append([]PlayType(nil), members...)}
}

// Contains reports whether t is a member.
func (s PlayTypeSet) Contains(t PlayType) bool {
	for _, m := range s.types {
		if m == t {
			return true
		}
	}
	return false
}

// Members returns a copy of the members in declaration order.
func (s PlayTypeSet) Members() []PlayType {
	return append([]PlayType(nil), s.types...)
}

var (
	// OffensePlayTypes are the play types counted as offensive snaps.
	OffensePlayTypes = NewPlayTypeSet(PlayPass, PlayRun, PlayQBSpike, PlayQBKneel)
	// ImportantPlayTypes are the play types that carry a ball carrier or target.
	ImportantPlayTypes = NewPlayTypeSet(PlayPass, PlayRun)
)

// IsOther reports whether the play type falls outside the offensive set.
func (t PlayType) IsOther() bool { return !OffensePlayTypes.Contains(t) }

// Play is one row of a play-by-play table.
//
// Empty strings mean the column was null in the source. Down is 0 when
// unknown (kickoffs, extra points), Drive is 0 when the play has no drive.
type Play struct {
	GameID   string `validate:"required"`
	PlayID   string
	Season   int `validate:"gte=0"`
	Week     int `validate:"gte=0"`
	PosTeam  string
	PlayType PlayType

	Down              int `validate:"gte=0,lte=4"`
	YardsToGo         int `validate:"gte=0"`
	YardsGained       int
	ScoreDifferential types.NullInt

	Drive                 int `validate:"gte=0"`
	DriveTimeOfPossession string

	CompletePass  bool
	PassTouchdown bool
	RushTouchdown bool
	RushAttempt   bool

	RusherID     string
	RusherName   string
	ReceiverID   string
	ReceiverName string

	AirYards        float64
	YardsAfterCatch float64
}

// PlayerKey identifies a player in report rows.
type PlayerKey struct {
	PlayerID string `json:"player_id"`
	Player   string `json:"player"`
}

// TeamGameKey identifies a team within one game.
type TeamGameKey struct {
	GameID  string `json:"game_id"`
	PosTeam string `json:"posteam"`
}

// Less orders keys by game then team.
func (k TeamGameKey) Less(o TeamGameKey) bool {
	if k.GameID != o.GameID {
		return k.GameID < o.GameID
	}
	return k.PosTeam < o.PosTeam
}
