package aggregate_test

import (
	"testing"

	"github.com/okian/nflstats/internal/domain/aggregate"
	"github.com/okian/nflstats/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func play(game, team string, t model.PlayType) model.Play {
	return model.Play{GameID: game, PosTeam: team, PlayType: t}
}

func TestPlaysByType(t *testing.T) {
	Convey("Given plays across two games", t, func() {
		plays := []model.Play{
			play("g1", "ARI", model.PlayPass),
			play("g1", "ARI", model.PlayPass),
			play("g1", "ARI", model.PlayRun),
			play("g1", "ARI", model.PlayQBSpike),
			play("g1", "ARI", "punt"),
			play("g1", "SF", model.PlayQBKneel),
			play("g2", "BUF", model.PlayRun),
			play("g2", "", model.PlayRun),
		}

		rows := aggregate.PlaysByType(plays)

		Convey("Then one row per game and team with offensive plays is produced", func() {
			So(len(rows), ShouldEqual, 3)
			So(rows[0].TeamGameKey, ShouldResemble, model.TeamGameKey{GameID: "g1", PosTeam: "ARI"})
			So(rows[1].PosTeam, ShouldEqual, "SF")
			So(rows[2].GameID, ShouldEqual, "g2")
		})

		Convey("Then type counts are zero filled and sum to the total", func() {
			for _, r := range rows {
				So(r.TotalPlays, ShouldEqual, r.PassPlays+r.RunPlays+r.QBSpikePlays+r.QBKneelPlays)
			}
			So(rows[0].TotalPlays, ShouldEqual, 4)
			So(rows[1].PassPlays, ShouldEqual, 0)
			So(rows[1].QBKneelPlays, ShouldEqual, 1)
		})

		Convey("Then run and pass shares add up to one when defined", func() {
			So(rows[0].RunPct.Float+rows[0].PassPct.Float, ShouldAlmostEqual, 1)
			So(rows[0].PassPct.Float, ShouldAlmostEqual, 2.0/3.0)
			So(rows[2].RunPct.Float, ShouldEqual, 1)
		})

		Convey("Then shares are undefined without runs or passes", func() {
			So(rows[1].RunPct.Valid, ShouldBeFalse)
			So(rows[1].PassPct.Valid, ShouldBeFalse)
		})
	})

	Convey("Given no plays", t, func() {
		So(aggregate.PlaysByType(nil), ShouldBeEmpty)
	})
}

func TestRushing(t *testing.T) {
	Convey("Given run plays", t, func() {
		rush := func(game, id, name string, gain int, td bool) model.Play {
			return model.Play{
				GameID: game, PlayType: model.PlayRun, RushAttempt: true, YardsGained: gain,
				RushTouchdown: td, RusherID: id, RusherName: name,
			}
		}
		plays := []model.Play{
			rush("g1", "00-1", "J.Jacobs", 10, true),
			rush("g1", "00-1", "J.Jacobs", -2, false),
			rush("g2", "00-1", "J.Jacobs", 4, false),
			rush("g1", "00-5", "J.Mixon", 7, false),
			{GameID: "g1", PlayType: model.PlayPass, YardsGained: 30, RusherID: "00-5", RusherName: "J.Mixon"},
		}

		rows := aggregate.Rushing(plays)

		Convey("Then rows are per game and player, ordered by key", func() {
			So(len(rows), ShouldEqual, 3)
			So(rows[0].GameID, ShouldEqual, "g1")
			So(rows[0].PlayerKey, ShouldResemble, model.PlayerKey{PlayerID: "00-1", Player: "J.Jacobs"})
			So(rows[1].Player, ShouldEqual, "J.Mixon")
			So(rows[2].GameID, ShouldEqual, "g2")
		})

		Convey("Then attempts, yards and touchdowns are summed", func() {
			So(rows[0].RushAtt, ShouldEqual, 2)
			So(rows[0].RushYards, ShouldEqual, 8)
			So(rows[0].RushTDs, ShouldEqual, 1)
			So(rows[1].RushYards, ShouldEqual, 7)
		})
	})
}

func TestReceiving(t *testing.T) {
	Convey("Given pass plays", t, func() {
		target := func(game, id, name string, complete bool, gain int, air, yac float64, td bool) model.Play {
			return model.Play{
				GameID: game, PlayType: model.PlayPass, ReceiverID: id, ReceiverName: name,
				CompletePass: complete, YardsGained: gain, AirYards: air, YardsAfterCatch: yac, PassTouchdown: td,
			}
		}
		plays := []model.Play{
			{GameID: "g0", PlayType: model.PlayRun, ReceiverID: "00-7", ReceiverName: "D.Adams"},
			target("g1", "00-7", "", true, 20, 12, 8, true),
			target("g1", "00-7", "D.Adams", false, 0, 15, 0, false),
			target("g1", "00-8", "J.Jones", true, 5, -2, 7, false),
			{GameID: "g1", PlayType: model.PlayPass, YardsGained: -7},
		}

		rows := aggregate.Receiving(plays)

		Convey("Then one row per game and receiver is produced", func() {
			So(len(rows), ShouldEqual, 2)
		})

		Convey("Then names resolve from the first recorded name for the id", func() {
			So(rows[0].Player, ShouldEqual, "D.Adams")
			So(rows[1].Player, ShouldEqual, "J.Jones")
		})

		Convey("Then the counting stats are summed", func() {
			So(rows[0].Targets, ShouldEqual, 2)
			So(rows[0].Receptions, ShouldEqual, 1)
			So(rows[0].RecYards, ShouldEqual, 20)
			So(rows[0].RecTDs, ShouldEqual, 1)
			So(rows[0].TotalAirYards, ShouldEqual, 27)
			So(rows[0].YAC, ShouldEqual, 8)
		})

		Convey("Then incomplete air yards follow the identity", func() {
			for _, r := range rows {
				So(r.IncAirYards, ShouldEqual, r.TotalAirYards+r.YAC-r.RecYards)
			}
			So(rows[0].IncAirYards, ShouldEqual, 15)
			So(rows[1].IncAirYards, ShouldEqual, 0)
		})
	})
}

func TestTimeOfPossession(t *testing.T) {
	Convey("Given drives with possession strings", t, func() {
		drive := func(game, team string, d int, top string) model.Play {
			return model.Play{GameID: game, PosTeam: team, Drive: d, DriveTimeOfPossession: top}
		}
		plays := []model.Play{
			drive("g1", "ARI", 1, "1:30"),
			drive("g1", "ARI", 1, "9:59"),
			drive("g1", "ARI", 3, "4:30"),
			drive("g1", "SF", 2, ""),
			drive("g1", "SF", 2, "3:00"),
			drive("g1", "SF", 4, "bad"),
			drive("g2", "BUF", 1, ""),
			drive("g2", "BUF", 0, "5:00"),
		}

		rows := aggregate.TimeOfPossession(plays)

		Convey("Then the first string of each drive is summed in minutes", func() {
			So(len(rows), ShouldEqual, 3)
			So(rows[0].PosTeam, ShouldEqual, "ARI")
			So(rows[0].Minutes, ShouldEqual, 6.0)
			So(rows[1].PosTeam, ShouldEqual, "SF")
			So(rows[1].Minutes, ShouldEqual, 3.0)
		})

		Convey("Then drives without a string count as zero", func() {
			So(rows[2].TeamGameKey, ShouldResemble, model.TeamGameKey{GameID: "g2", PosTeam: "BUF"})
			So(rows[2].Minutes, ShouldEqual, 0)
		})
	})
}
