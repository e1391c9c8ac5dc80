package api

import (
	"net/http"
)

// ScheduleHandler serves the season schedule.
type ScheduleHandler struct {
	deps ScheduleDependencies
}

// NewScheduleHandler creates a new schedule handler.
func NewScheduleHandler(deps ScheduleDependencies) *ScheduleHandler {
	return &ScheduleHandler{deps: deps}
}

// HandleGames handles GET /schedule/games[?view=teams]. The teams view
// returns one row per team and game.
func (h *ScheduleHandler) HandleGames(w http.ResponseWriter, r *http.Request) {
	const op = "api.schedule_games"
	switch view := r.URL.Query().Get("view"); view {
	case "", "games":
		games, err := h.deps.Games(r.Context())
		if err != nil {
			writeError(w, r, wrap(op, err))
			return
		}
		writeList(w, games)
	case "teams":
		rows, err := h.deps.GamesMeta(r.Context())
		if err != nil {
			writeError(w, r, wrap(op, err))
			return
		}
		writeList(w, rows)
	default:
		writeError(w, r, wrap(op, ErrBadRequest))
	}
}

// HandleCurrentWeek handles GET /schedule/current-week.
func (h *ScheduleHandler) HandleCurrentWeek(w http.ResponseWriter, r *http.Request) {
	const op = "api.schedule_current_week"
	cw, err := h.deps.CurrentWeek(r.Context())
	if err != nil {
		writeError(w, r, wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, cw)
}
