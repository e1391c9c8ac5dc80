// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/nflstats/internal/domain/aggregate"
	"github.com/okian/nflstats/internal/domain/filter"
	"github.com/okian/nflstats/internal/domain/model"
	"github.com/okian/nflstats/internal/domain/rates"
	"github.com/okian/nflstats/internal/domain/reports"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ReportDependencies
	ScheduleDependencies
	StatsProvider
}

// ReportDependencies computes the stats reports.
type ReportDependencies interface {
	Plays(ctx context.Context, q filter.Query) ([]reports.PlaysRow, error)
	Situation(ctx context.Context, q filter.Query) ([]reports.SituationRow, error)
	Rushing(ctx context.Context, q filter.Query) ([]aggregate.RushingRow, error)
	RushingWithSuccess(ctx context.Context, q filter.Query) ([]reports.RushingSuccessRow, error)
	RushingSuccessRate(ctx context.Context, q filter.Query) ([]rates.SuccessRow, error)
	Receiving(ctx context.Context, q filter.Query) ([]aggregate.ReceivingRow, error)
	TimeOfPossession(ctx context.Context, q filter.Query) ([]aggregate.Possession, error)
	Touchdowns(ctx context.Context, q filter.Query, limit int) ([]reports.TouchdownRow, error)
}

// ScheduleDependencies reads the season schedule.
type ScheduleDependencies interface {
	Games(ctx context.Context) ([]model.Game, error)
	GamesMeta(ctx context.Context) ([]model.TeamGame, error)
	CurrentWeek(ctx context.Context) (model.SeasonWeek, error)
}

// Server wires HTTP routes for the stats API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	reportsHandler  *ReportsHandler
	scheduleHandler *ScheduleHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(deps),
		reportsHandler:  NewReportsHandler(deps),
		scheduleHandler: NewScheduleHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	route := func(pattern, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, RequestID(MetricsMiddleware(h, endpoint)))
	}

	route("GET /healthz", "healthz", s.healthHandler.HandleHealth)
	route("GET /stats", "stats", s.statsHandler.HandleStats)

	route("GET /reports/plays", "reports_plays", s.reportsHandler.HandlePlays)
	route("GET /reports/situation", "reports_situation", s.reportsHandler.HandleSituation)
	route("GET /reports/rushing", "reports_rushing", s.reportsHandler.HandleRushing)
	route("GET /reports/rushing/success", "reports_rushing_success", s.reportsHandler.HandleRushingSuccess)
	route("GET /reports/receiving", "reports_receiving", s.reportsHandler.HandleReceiving)
	route("GET /reports/time-of-possession", "reports_time_of_possession", s.reportsHandler.HandleTimeOfPossession)
	route("GET /reports/touchdowns", "reports_touchdowns", s.reportsHandler.HandleTouchdowns)

	route("GET /schedule/games", "schedule_games", s.scheduleHandler.HandleGames)
	route("GET /schedule/current-week", "schedule_current_week", s.scheduleHandler.HandleCurrentWeek)
}

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// listResponse wraps report rows with their count.
type listResponse[T any] struct {
	Count int `json:"count"`
	Rows  []T `json:"rows"`
}

func writeList[T any](w http.ResponseWriter, rows []T) {
	if rows == nil {
		rows = []T{}
	}
	writeJSON(w, http.StatusOK, listResponse[T]{Count: len(rows), Rows: rows})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes err with the status chosen by statusFor.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	writeJSON(w, status, errorResponse{
		Code:      code,
		Message:   err.Error(),
		RequestID: RequestIDFrom(r.Context()),
	})
}
