package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/nflstats/internal/domain/filter"
)

// ReportsHandler serves the stats reports.
type ReportsHandler struct {
	deps ReportDependencies
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(deps ReportDependencies) *ReportsHandler {
	return &ReportsHandler{deps: deps}
}

// parseQuery reads the game_id, team and week filters.
func parseQuery(r *http.Request) (filter.Query, error) {
	v := r.URL.Query()
	q := filter.Query{GameID: v.Get("game_id"), Team: v.Get("team")}
	if s := v.Get("week"); s != "" {
		w, err := strconv.Atoi(s)
		if err != nil {
			return q, fmt.Errorf("%w: week %q", ErrBadRequest, s)
		}
		q.Week = w
	}
	if err := q.Validate(); err != nil {
		return q, err
	}
	return q, nil
}

// HandlePlays handles GET /reports/plays.
func (h *ReportsHandler) HandlePlays(w http.ResponseWriter, r *http.Request) {
	const op = "api.reports_plays"
	q, err := parseQuery(r)
	if err != nil {
		writeError(w, r, wrap(op, err))
		return
	}
	rows, err := h.deps.Plays(r.Context(), q)
	if err != nil {
		writeError(w, r, wrap(op, err))
		return
	}
	writeList(w, rows)
}

// HandleSituation handles GET /reports/situation.
func (h *ReportsHandler) HandleSituation(w http.ResponseWriter, r *http.Request) {
	const op = "api.reports_situation"
	q, err := parseQuery(r)
	if err != nil {
		writeError(w, r, wrap(op, err))
		return
	}
	rows, err := h.deps.Situation(r.Context(), q)
	if err != nil {
		writeError(w, r, wrap(op, err))
		return
	}
	writeList(w, rows)
}

// HandleRushing handles GET /reports/rushing[?success=true]. With success
// set the rows carry successes and success rate.
func (h *ReportsHandler) HandleRushing(w http.ResponseWriter, r *http.Request) {
	const op = "api.reports_rushing"
	q, err := parseQuery(r)
	if err != nil {
		writeError(w, r, wrap(op, err))
		return
	}
	withSuccess := false
	if s := r.URL.Query().Get("success"); s != "" {
		if withSuccess, err = strconv.ParseBool(s); err != nil {
			writeError(w, r, wrap(op, fmt.Errorf("%w: success %q", ErrBadRequest, s)))
			return
		}
	}
	if withSuccess {
		rows, err := h.deps.RushingWithSuccess(r.Context(), q)
		if err != nil {
			writeError(w, r, wrap(op, err))
			return
		}
		writeList(w, rows)
		return
	}
	rows, err := h.deps.Rushing(r.Context(), q)
	if err != nil {
		writeError(w, r, wrap(op, err))
		return
	}
	writeList(w, rows)
}

// HandleRushingSuccess handles GET /reports/rushing/success.
func (h *ReportsHandler) HandleRushingSuccess(w http.ResponseWriter, r *http.Request) {
	const op = "api.reports_rushing_success"
	q, err := parseQuery(r)
	if err != nil {
		writeError(w, r, wrap(op, err))
		return
	}
	rows, err := h.deps.RushingSuccessRate(r.Context(), q)
	if err != nil {
		writeError(w, r, wrap(op, err))
		return
	}
	writeList(w, rows)
}

// HandleReceiving handles GET /reports/receiving.
func (h *ReportsHandler) HandleReceiving(w http.ResponseWriter, r *http.Request) {
	const op = "api.reports_receiving"
	q, err := parseQuery(r)
	if err != nil {
		writeError(w, r, wrap(op, err))
		return
	}
	rows, err := h.deps.Receiving(r.Context(), q)
	if err != nil {
		writeError(w, r, wrap(op, err))
		return
	}
	writeList(w, rows)
}

// HandleTimeOfPossession handles GET /reports/time-of-possession.
func (h *ReportsHandler) HandleTimeOfPossession(w http.ResponseWriter, r *http.Request) {
	const op = "api.reports_time_of_possession"
	q, err := parseQuery(r)
	if err != nil {
		writeError(w, r, wrap(op, err))
		return
	}
	rows, err := h.deps.TimeOfPossession(r.Context(), q)
	if err != nil {
		writeError(w, r, wrap(op, err))
		return
	}
	writeList(w, rows)
}

// HandleTouchdowns handles GET /reports/touchdowns[?limit=N].
func (h *ReportsHandler) HandleTouchdowns(w http.ResponseWriter, r *http.Request) {
	const op = "api.reports_touchdowns"
	q, err := parseQuery(r)
	if err != nil {
		writeError(w, r, wrap(op, err))
		return
	}
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			writeError(w, r, wrap(op, fmt.Errorf("%w: limit %q", ErrBadRequest, s)))
			return
		}
		limit = n
	}
	rows, err := h.deps.Touchdowns(r.Context(), q, limit)
	if err != nil {
		writeError(w, r, wrap(op, err))
		return
	}
	writeList(w, rows)
}
