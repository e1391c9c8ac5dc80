package rates_test

import (
	"testing"

	"github.com/okian/nflstats/internal/domain/model"
	"github.com/okian/nflstats/internal/domain/rates"
	. "github.com/smartystreets/goconvey/convey"
)

func TestConvertTOP(t *testing.T) {
	Convey("Given possession strings", t, func() {
		cases := map[string]int{
			"1:30":  90,
			"":      0,
			"11:12": 672,
			"0:07":  7,
			"abc":   0,
			"1:xx":  0,
			"130":   0,
			"1:2:3": 0,
			" 2:05": 125,
		}

		for in, want := range cases {
			So(rates.ConvertTOP(in), ShouldEqual, want)
		}
	})
}

func TestRushingSuccess(t *testing.T) {
	Convey("Given rushing plays", t, func() {
		run := func(down, togo, gain int) *model.Play {
			return &model.Play{PlayType: model.PlayRun, Down: down, YardsToGo: togo, YardsGained: gain}
		}

		Convey("When it is first down", func() {
			So(rates.RushingSuccess(run(1, 10, 4)), ShouldEqual, 1)
			So(rates.RushingSuccess(run(1, 10, 3)), ShouldEqual, 0)
			So(rates.RushingSuccess(run(1, 20, 6)), ShouldEqual, 1)
		})

		Convey("When it is second down", func() {
			So(rates.RushingSuccess(run(2, 8, 4)), ShouldEqual, 1)
			So(rates.RushingSuccess(run(2, 8, 3)), ShouldEqual, 0)
			So(rates.RushingSuccess(run(2, 15, 6)), ShouldEqual, 1)
		})

		Convey("When it is third down", func() {
			Convey("Then no gain counts as a success", func() {
				So(rates.RushingSuccess(run(3, 1, 20)), ShouldEqual, 0)
			})
		})

		Convey("When it is fourth down", func() {
			So(rates.RushingSuccess(run(4, 2, 2)), ShouldEqual, 1)
			So(rates.RushingSuccess(run(4, 2, 1)), ShouldEqual, 0)
		})

		Convey("When the down is unknown", func() {
			So(rates.RushingSuccess(run(0, 0, 10)), ShouldEqual, 0)
		})
	})
}

func TestRushingSuccessRate(t *testing.T) {
	Convey("Given rushes by two players", t, func() {
		rb := func(game, id, name string, down, togo, gain int) model.Play {
			return model.Play{
				GameID: game, PlayType: model.PlayRun, Down: down, YardsToGo: togo, YardsGained: gain,
				RushAttempt: true, RusherID: id, RusherName: name,
			}
		}
		plays := []model.Play{
			rb("g1", "00-2", "H.Ruggs", 1, 10, 12),
			rb("g1", "00-1", "J.Jacobs", 1, 10, 2),
			rb("g1", "00-1", "J.Jacobs", 2, 8, 5),
			rb("g1", "00-1", "J.Jacobs", 3, 9, 20),  // long-yardage third down, excluded
			rb("g1", "00-1", "J.Jacobs", 4, 10, 20), // long-yardage fourth down, excluded
			{GameID: "g1", PlayType: model.PlayPass, Down: 1, YardsToGo: 10},
			{GameID: "g1", PlayType: model.PlayRun, Down: 1, YardsToGo: 10, RushAttempt: true, RusherID: "00-9"},
		}

		rows := rates.RushingSuccessRate(plays)

		Convey("Then one row per game and rusher is produced in key order", func() {
			So(len(rows), ShouldEqual, 2)
			So(rows[0].PlayerID, ShouldEqual, "00-1")
			So(rows[1].Player, ShouldEqual, "H.Ruggs")
		})

		Convey("Then excluded plays never contribute", func() {
			So(rows[0].Rushes, ShouldEqual, 2)
			So(rows[0].Successes, ShouldEqual, 1)
			So(rows[0].SuccessRate.Float, ShouldEqual, 0.5)
		})

		Convey("Then a perfect rusher has a rate of one", func() {
			So(rows[1].SuccessRate.Valid, ShouldBeTrue)
			So(rows[1].SuccessRate.Float, ShouldEqual, 1)
		})

		Convey("Then the input table is unchanged", func() {
			So(len(plays), ShouldEqual, 7)
			So(plays[3].Down, ShouldEqual, 3)
		})

		Convey("Then rates stay within [0, 1]", func() {
			for _, r := range rows {
				So(r.SuccessRate.Float, ShouldBeBetweenOrEqual, 0, 1)
			}
		})
	})

	Convey("Given a rusher with no recorded attempts", t, func() {
		rows := rates.RushingSuccessRate([]model.Play{
			{GameID: "g1", PlayType: model.PlayQBKneel, Down: 1, YardsToGo: 10, YardsGained: -1, RusherID: "00-3", RusherName: "D.Carr"},
		})

		Convey("Then the rate is undefined", func() {
			So(len(rows), ShouldEqual, 1)
			So(rows[0].Rushes, ShouldEqual, 0)
			So(rows[0].SuccessRate.Valid, ShouldBeFalse)
		})
	})

	Convey("Given a rusher credited on a play that was not a rush attempt", t, func() {
		rows := rates.RushingSuccessRate([]model.Play{
			{GameID: "g1", PlayType: model.PlayRun, Down: 1, YardsToGo: 10, YardsGained: 8, RushAttempt: true, RusherID: "00-1", RusherName: "J.Jacobs"},
			{GameID: "g1", Down: 1, YardsToGo: 10, YardsGained: 12, RusherID: "00-1", RusherName: "J.Jacobs"},
		})

		Convey("Then only the attempt counts toward the rate", func() {
			So(len(rows), ShouldEqual, 1)
			So(rows[0].Rushes, ShouldEqual, 1)
			So(rows[0].Successes, ShouldEqual, 1)
			So(rows[0].SuccessRate.Float, ShouldBeLessThanOrEqualTo, 1)
		})
	})
}
