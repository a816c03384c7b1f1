package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	appscoreboard "github.com/preston-bernstein/hoopsboard-service/internal/app/scoreboard"
	"github.com/preston-bernstein/hoopsboard-service/internal/domain/scoreboard"
)

type deltaRequest struct {
	Delta *int `json:"delta"`
}

type nameRequest struct {
	Name string `json:"name"`
}

type possessionRequest struct {
	Side string `json:"side"`
}

// AdjustScore handles POST /api/teams/{side}/score.
func (h *Handler) AdjustScore(w http.ResponseWriter, r *http.Request) {
	h.teamDelta(w, r, h.svc.AdjustScore)
}

// AdjustFouls handles POST /api/teams/{side}/fouls.
func (h *Handler) AdjustFouls(w http.ResponseWriter, r *http.Request) {
	h.teamDelta(w, r, h.svc.AdjustFouls)
}

// AdjustTimeouts handles POST /api/teams/{side}/timeouts.
func (h *Handler) AdjustTimeouts(w http.ResponseWriter, r *http.Request) {
	h.teamDelta(w, r, h.svc.AdjustTimeouts)
}

// EditTeamName handles PUT /api/teams/{side}/name.
func (h *Handler) EditTeamName(w http.ResponseWriter, r *http.Request) {
	side, ok := teamSide(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, appscoreboard.ErrInvalidSide.Error(), h.logger)
		return
	}
	var req nameRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	st, err := h.svc.EditTeamName(side, req.Name)
	h.writeResult(w, r, st, err)
}

// SetPossession handles PUT /api/possession.
func (h *Handler) SetPossession(w http.ResponseWriter, r *http.Request) {
	var req possessionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	side, ok := scoreboard.ParseSide(req.Side)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "side must be home, away or none", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.SetPossession(side), h.logger)
}

func (h *Handler) teamDelta(w http.ResponseWriter, r *http.Request, apply func(scoreboard.Side, int) (scoreboard.GameState, error)) {
	side, ok := teamSide(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, appscoreboard.ErrInvalidSide.Error(), h.logger)
		return
	}
	delta, ok := h.readDelta(w, r)
	if !ok {
		return
	}
	st, err := apply(side, delta)
	h.writeResult(w, r, st, err)
}

// readDelta decodes a required integer delta, answering 400 itself on failure.
func (h *Handler) readDelta(w http.ResponseWriter, r *http.Request) (int, bool) {
	var req deltaRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return 0, false
	}
	if req.Delta == nil {
		writeError(w, r, http.StatusBadRequest, "delta is required", h.logger)
		return 0, false
	}
	return *req.Delta, true
}

func teamSide(r *http.Request) (scoreboard.Side, bool) {
	side, ok := scoreboard.ParseSide(chi.URLParam(r, "side"))
	return side, ok && side.IsTeam()
}
