// Package aggregate groups play-by-play rows by game, team and player and
// reduces them to count and sum tables.
package aggregate

import (
	"sort"

	"github.com/okian/nflstats/internal/domain/model"
	"github.com/okian/nflstats/internal/domain/rates"
	"github.com/okian/nflstats/internal/domain/types"
)

const secondsPerMinute = 60

// PlayCounts is the per-type snap count of one team in one game.
type PlayCounts struct {
	model.TeamGameKey
	PassPlays    int             `json:"pass_plays"`
	RunPlays     int             `json:"run_plays"`
	QBSpikePlays int             `json:"qb_spike_plays"`
	QBKneelPlays int             `json:"qb_kneel_plays"`
	TotalPlays   int             `json:"tot_plays"`
	RunPct       types.NullFloat `json:"run_pct"`
	PassPct      types.NullFloat `json:"pass_pct"`
}

func (c *PlayCounts) add(t model.PlayType) {
	switch t {
	case model.PlayPass:
		c.PassPlays++
	case model.PlayRun:
		c.RunPlays++
	case model.PlayQBSpike:
		c.QBSpikePlays++
	case model.PlayQBKneel:
		c.QBKneelPlays++
	}
}

// PlaysByType counts offensive plays per game and possessing team.
// Combinations without any offensive play are absent; absent types within a
// present combination are zero.
func PlaysByType(plays []model.Play) []PlayCounts {
	acc := make(map[model.TeamGameKey]*PlayCounts)
	for i := range plays {
		p := &plays[i]
		if p.PosTeam == "" || !model.OffensePlayTypes.Contains(p.PlayType) {
			continue
		}
		key := model.TeamGameKey{GameID: p.GameID, PosTeam: p.PosTeam}
		row, ok := acc[key]
		if !ok {
			row = &PlayCounts{TeamGameKey: key}
			acc[key] = row
		}
		row.add(p.PlayType)
	}

	out := make([]PlayCounts, 0, len(acc))
	for _, row := range acc {
		row.TotalPlays = row.PassPlays + row.RunPlays + row.QBSpikePlays + row.QBKneelPlays
		row.RunPct = types.Ratio(row.RunPlays, row.RunPlays+row.PassPlays)
		row.PassPct = types.Ratio(row.PassPlays, row.RunPlays+row.PassPlays)
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamGameKey.Less(out[j].TeamGameKey) })
	return out
}

// RushingRow is the rushing line of one player in one game.
//
// Rows are identified by the player key; the game id is carried along but
// not part of the key, so a player appearing in several games yields several
// rows with the same key.
type RushingRow struct {
	GameID string `json:"game_id"`
	model.PlayerKey
	RushAtt   int `json:"rush_att"`
	RushYards int `json:"rush_yards"`
	RushTDs   int `json:"rush_tds"`
}

// Rushing sums attempts, yards and touchdowns on run plays per game and
// rusher.
func Rushing(plays []model.Play) []RushingRow {
	acc := make(map[rates.RushKey]*RushingRow)
	for i := range plays {
		p := &plays[i]
		if p.PlayType != model.PlayRun {
			continue
		}
		key, ok := rates.RusherKey(p)
		if !ok {
			continue
		}
		row, ok := acc[key]
		if !ok {
			row = &RushingRow{GameID: key.GameID, PlayerKey: key.PlayerKey}
			acc[key] = row
		}
		if p.RushAttempt {
			row.RushAtt++
		}
		row.RushYards += p.YardsGained
		if p.RushTouchdown {
			row.RushTDs++
		}
	}

	keys := make([]rates.RushKey, 0, len(acc))
	for k := range acc {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	out := make([]RushingRow, 0, len(keys))
	for _, k := range keys {
		out = append(out, *acc[k])
	}
	return out
}

// ReceivingRow is the receiving line of one player in one game.
type ReceivingRow struct {
	GameID        string `json:"game_id"`
	PlayerID      string `json:"player_id"`
	Player        string `json:"player"`
	Targets       int    `json:"targets"`
	Receptions    int    `json:"receptions"`
	RecYards      int    `json:"rec_yards"`
	RecTDs        int    `json:"rec_tds"`
	TotalAirYards int    `json:"total_air_yards"`
	IncAirYards   int    `json:"inc_air_yards"`
	YAC           int    `json:"yac"`
}

type receiverKey struct {
	gameID     string
	receiverID string
}

type receivingAcc struct {
	row      ReceivingRow
	airYards float64
	yac      float64
}

// Receiving sums targets, catches, yards, touchdowns and air yards on pass
// plays per game and receiver. The player name is the first non-empty
// receiver name recorded for the id anywhere in plays.
func Receiving(plays []model.Play) []ReceivingRow {
	names := make(map[string]string)
	acc := make(map[receiverKey]*receivingAcc)
	for i := range plays {
		p := &plays[i]
		if p.ReceiverID != "" && p.ReceiverName != "" {
			if _, ok := names[p.ReceiverID]; !ok {
				names[p.ReceiverID] = p.ReceiverName
			}
		}
		if p.PlayType != model.PlayPass || p.ReceiverID == "" {
			continue
		}
		key := receiverKey{gameID: p.GameID, receiverID: p.ReceiverID}
		a, ok := acc[key]
		if !ok {
			a = &receivingAcc{row: ReceivingRow{GameID: p.GameID, PlayerID: p.ReceiverID}}
			acc[key] = a
		}
		a.row.Targets++
		if p.CompletePass {
			a.row.Receptions++
		}
		a.row.RecYards += p.YardsGained
		if p.PassTouchdown {
			a.row.RecTDs++
		}
		a.airYards += p.AirYards
		a.yac += p.YardsAfterCatch
	}

	keys := make([]receiverKey, 0, len(acc))
	for k := range acc {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].gameID != keys[j].gameID {
			return keys[i].gameID < keys[j].gameID
		}
		return keys[i].receiverID < keys[j].receiverID
	})

	out := make([]ReceivingRow, 0, len(keys))
	for _, k := range keys {
		a := acc[k]
		row := a.row
		row.Player = names[k.receiverID]
		row.TotalAirYards = int(a.airYards)
		row.YAC = int(a.yac)
		row.IncAirYards = row.TotalAirYards + row.YAC - row.RecYards
		out = append(out, row)
	}
	return out
}

// Possession is the time of possession of one team in one game.
type Possession struct {
	model.TeamGameKey
	Minutes float64 `json:"top"`
}

type driveKey struct {
	model.TeamGameKey
	drive int
}

// TimeOfPossession sums drive possession times per game and team, taking the
// first recorded possession string of each drive. Unparseable strings count
// as zero seconds.
func TimeOfPossession(plays []model.Play) []Possession {
	first := make(map[driveKey]string)
	for i := range plays {
		p := &plays[i]
		if p.PosTeam == "" || p.Drive == 0 {
			continue
		}
		key := driveKey{TeamGameKey: model.TeamGameKey{GameID: p.GameID, PosTeam: p.PosTeam}, drive: p.Drive}
		// A drive with no recorded string still counts, as zero seconds.
		if top, ok := first[key]; !ok || top == "" {
			first[key] = p.DriveTimeOfPossession
		}
	}

	seconds := make(map[model.TeamGameKey]int)
	for k, top := range first {
		seconds[k.TeamGameKey] += rates.ConvertTOP(top)
	}

	out := make([]Possession, 0, len(seconds))
	for k, s := range seconds {
		out = append(out, Possession{TeamGameKey: k, Minutes: float64(s) / secondsPerMinute})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamGameKey.Less(out[j].TeamGameKey) })
	return out
}
