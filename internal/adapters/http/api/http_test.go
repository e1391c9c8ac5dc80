package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/nflstats/internal/adapters/http/api"
	"github.com/okian/nflstats/internal/adapters/pbp"
	"github.com/okian/nflstats/internal/adapters/schedule"
	"github.com/okian/nflstats/internal/domain/aggregate"
	"github.com/okian/nflstats/internal/domain/filter"
	"github.com/okian/nflstats/internal/domain/model"
	"github.com/okian/nflstats/internal/domain/rates"
	"github.com/okian/nflstats/internal/domain/reports"
	"github.com/okian/nflstats/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

// mockDeps records the last query and returns canned rows or err.
type mockDeps struct {
	err       error
	lastQuery filter.Query
	lastLimit int
	success   bool
}

func (m *mockDeps) Plays(_ context.Context, q filter.Query) ([]reports.PlaysRow, error) {
	m.lastQuery = q
	if m.err != nil {
		return nil, m.err
	}
	row := reports.PlaysRow{TOP: types.NullFloat{}}
	row.GameID, row.PosTeam, row.PassPlays, row.TotalPlays = "g1", "ARI", 2, 2
	row.PassPct, row.RunPct = types.Float(1), types.Float(0)
	return []reports.PlaysRow{row}, nil
}

func (m *mockDeps) Situation(_ context.Context, q filter.Query) ([]reports.SituationRow, error) {
	m.lastQuery = q
	return nil, m.err
}

func (m *mockDeps) Rushing(_ context.Context, q filter.Query) ([]aggregate.RushingRow, error) {
	m.lastQuery = q
	return []aggregate.RushingRow{{GameID: "g1", PlayerKey: model.PlayerKey{PlayerID: "p1", Player: "A.Runner"}, RushAtt: 3}}, m.err
}

func (m *mockDeps) RushingWithSuccess(_ context.Context, q filter.Query) ([]reports.RushingSuccessRow, error) {
	m.lastQuery = q
	m.success = true
	return []reports.RushingSuccessRow{{Successes: types.Int(2), SuccessRate: types.Float(0.5)}}, m.err
}

func (m *mockDeps) RushingSuccessRate(_ context.Context, q filter.Query) ([]rates.SuccessRow, error) {
	m.lastQuery = q
	return []rates.SuccessRow{}, m.err
}

func (m *mockDeps) Receiving(_ context.Context, q filter.Query) ([]aggregate.ReceivingRow, error) {
	m.lastQuery = q
	return []aggregate.ReceivingRow{}, m.err
}

func (m *mockDeps) TimeOfPossession(_ context.Context, q filter.Query) ([]aggregate.Possession, error) {
	m.lastQuery = q
	return []aggregate.Possession{}, m.err
}

func (m *mockDeps) Touchdowns(_ context.Context, q filter.Query, limit int) ([]reports.TouchdownRow, error) {
	m.lastQuery = q
	m.lastLimit = limit
	return []reports.TouchdownRow{{PlayID: "130", Player: "J.Jones", PlayType: model.PlayPass, YardsGained: 58}}, m.err
}

func (m *mockDeps) Games(context.Context) ([]model.Game, error) {
	return []model.Game{{GameID: "g1", Season: 2020, Week: 1, HomeTeam: "KC", AwayTeam: "HOU"}}, m.err
}

func (m *mockDeps) GamesMeta(context.Context) ([]model.TeamGame, error) {
	return []model.TeamGame{{GameID: "g1", Team: "HOU", Opp: "KC"}, {GameID: "g1", Team: "KC", Opp: "HOU", IsHome: true}}, m.err
}

func (m *mockDeps) CurrentWeek(context.Context) (model.SeasonWeek, error) {
	if m.err != nil {
		return model.SeasonWeek{}, m.err
	}
	return model.SeasonWeek{Season: 2020, Week: 2}, nil
}

func (m *mockDeps) GetStats() map[string]any {
	return map[string]any{"started": true, "plays": 32}
}

func newMux(deps *mockDeps) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps).Register(mux)
	return mux
}

func do(mux http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

type listBody struct {
	Count int               `json:"count"`
	Rows  []json.RawMessage `json:"rows"`
}

func TestReports(t *testing.T) {
	Convey("Given the API over mock dependencies", t, func() {
		deps := &mockDeps{}
		mux := newMux(deps)

		Convey("When requesting the plays report with filters", func() {
			rec := do(mux, http.MethodGet, "/reports/plays?game_id=g1&team=ARI&week=1")

			Convey("Then the filters reach the service", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(deps.lastQuery, ShouldResemble, filter.Query{GameID: "g1", Team: "ARI", Week: 1})
			})

			Convey("Then rows are wrapped with their count and undefined ratios are null", func() {
				var body listBody
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body.Count, ShouldEqual, 1)
				So(string(body.Rows[0]), ShouldContainSubstring, `"top":null`)
				So(string(body.Rows[0]), ShouldContainSubstring, `"tot_plays":2`)
			})

			Convey("Then a request id is assigned", func() {
				So(rec.Header().Get(api.RequestIDHeader), ShouldNotBeEmpty)
			})
		})

		Convey("When a report has no rows", func() {
			rec := do(mux, http.MethodGet, "/reports/situation")

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(strings.TrimSpace(rec.Body.String()), ShouldEqual, `{"count":0,"rows":[]}`)
		})

		Convey("When asking for rushing with success", func() {
			rec := do(mux, http.MethodGet, "/reports/rushing?success=true")

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(deps.success, ShouldBeTrue)
			So(rec.Body.String(), ShouldContainSubstring, `"success_rate":0.5`)
		})

		Convey("When asking for plain rushing", func() {
			rec := do(mux, http.MethodGet, "/reports/rushing")

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(deps.success, ShouldBeFalse)
			So(rec.Body.String(), ShouldContainSubstring, `"player":"A.Runner"`)
		})

		Convey("When the remaining reports are requested", func() {
			for _, path := range []string{"/reports/rushing/success", "/reports/receiving", "/reports/time-of-possession"} {
				So(do(mux, http.MethodGet, path).Code, ShouldEqual, http.StatusOK)
			}
		})

		Convey("When listing touchdowns with a limit", func() {
			rec := do(mux, http.MethodGet, "/reports/touchdowns?limit=5")

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(deps.lastLimit, ShouldEqual, 5)
		})

		Convey("When listing touchdowns without a limit", func() {
			do(mux, http.MethodGet, "/reports/touchdowns")

			So(deps.lastLimit, ShouldEqual, 0)
		})

		Convey("When a filter is malformed", func() {
			for _, target := range []string{
				"/reports/plays?week=one",
				"/reports/plays?week=-3",
				"/reports/rushing?success=maybe",
				"/reports/touchdowns?limit=0",
				"/reports/receiving?team=NOT-A-TEAM",
			} {
				rec := do(mux, http.MethodGet, target)
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Body.String(), ShouldContainSubstring, `"code":"bad_request"`)
			}
		})

		Convey("When the method is not GET", func() {
			So(do(mux, http.MethodPost, "/reports/plays").Code, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("wrapped: %w", pbp.ErrNotLoaded), http.StatusServiceUnavailable, "not_loaded"},
		{fmt.Errorf("season 2020: %w", schedule.ErrNoCurrentWeek), http.StatusNotFound, "not_found"},
		{errors.New("disk on fire"), http.StatusInternalServerError, "internal_error"},
	}

	Convey("Given service errors", t, func() {
		for _, c := range cases {
			mux := newMux(&mockDeps{err: c.err})

			rec := do(mux, http.MethodGet, "/schedule/current-week")

			So(rec.Code, ShouldEqual, c.status)
			var body struct {
				Code      string `json:"code"`
				RequestID string `json:"request_id"`
			}
			So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
			So(body.Code, ShouldEqual, c.code)
			So(body.RequestID, ShouldEqual, rec.Header().Get(api.RequestIDHeader))
		}
	})
}

func TestSchedule(t *testing.T) {
	Convey("Given the API over mock dependencies", t, func() {
		mux := newMux(&mockDeps{})

		Convey("When listing games", func() {
			rec := do(mux, http.MethodGet, "/schedule/games")

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, `"home_team":"KC"`)
		})

		Convey("When listing the team view", func() {
			var body listBody
			rec := do(mux, http.MethodGet, "/schedule/games?view=teams")

			So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
			So(body.Count, ShouldEqual, 2)
		})

		Convey("When the view is unknown", func() {
			So(do(mux, http.MethodGet, "/schedule/games?view=calendar").Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When asking for the current week", func() {
			rec := do(mux, http.MethodGet, "/schedule/current-week")

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(strings.TrimSpace(rec.Body.String()), ShouldEqual, `{"season":2020,"week":2}`)
		})
	})
}

func TestRequestID(t *testing.T) {
	Convey("Given a caller supplied request id", t, func() {
		const id = "0b6f8e2c-3d2a-4b8e-9f1a-2c3d4e5f6a7b"
		mux := newMux(&mockDeps{})
		req := httptest.NewRequest(http.MethodGet, "/stats", nil)
		req.Header.Set(api.RequestIDHeader, id)
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		So(rec.Code, ShouldEqual, http.StatusOK)
		So(rec.Header().Get(api.RequestIDHeader), ShouldEqual, id)
		So(rec.Body.String(), ShouldContainSubstring, `"plays":32`)
	})

	Convey("Given a malformed request id", t, func() {
		mux := newMux(&mockDeps{})
		req := httptest.NewRequest(http.MethodGet, "/stats", nil)
		req.Header.Set(api.RequestIDHeader, "not-a-uuid")
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		So(rec.Header().Get(api.RequestIDHeader), ShouldNotEqual, "not-a-uuid")
	})
}

func TestHealth(t *testing.T) {
	Convey("Given a served request", t, func() {
		mux := newMux(&mockDeps{})
		do(mux, http.MethodGet, "/stats")

		Convey("Then /healthz exposes the HTTP metrics", func() {
			rec := do(mux, http.MethodGet, "/healthz")

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "nflstats_http_requests_total")
		})
	})
}
