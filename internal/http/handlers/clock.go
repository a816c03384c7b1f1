package handlers

import (
	"net/http"

	"github.com/preston-bernstein/hoopsboard-service/internal/timeutil"
)

type gameClockRequest struct {
	Delta *float64 `json:"delta"`
}

type shotClockRequest struct {
	Seconds *float64 `json:"seconds"`
	Short   bool     `json:"short"`
}

// ToggleClock handles POST /api/clock/toggle.
func (h *Handler) ToggleClock(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ToggleRunning(), h.logger)
}

// AdjustGameClock handles POST /api/clock/game with a delta in seconds.
func (h *Handler) AdjustGameClock(w http.ResponseWriter, r *http.Request) {
	var req gameClockRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	if req.Delta == nil {
		writeError(w, r, http.StatusBadRequest, "delta is required", h.logger)
		return
	}
	delta, err := timeutil.ParseSeconds(*req.Delta)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "delta out of range", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.AdjustGameClock(delta), h.logger)
}

// ResetShotClock handles POST /api/shot-clock/reset. An explicit seconds value
// wins over short; an empty body restores the full shot clock.
func (h *Handler) ResetShotClock(w http.ResponseWriter, r *http.Request) {
	var req shotClockRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	switch {
	case req.Seconds != nil:
		value, err := timeutil.ParseSeconds(*req.Seconds)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "seconds out of range", h.logger)
			return
		}
		st, err := h.svc.ResetShotClock(value)
		h.writeResult(w, r, st, err)
	case req.Short:
		writeJSON(w, http.StatusOK, h.svc.ResetShotClockShort(), h.logger)
	default:
		writeJSON(w, http.StatusOK, h.svc.ResetShotClockFull(), h.logger)
	}
}

// AdjustPeriod handles POST /api/period.
func (h *Handler) AdjustPeriod(w http.ResponseWriter, r *http.Request) {
	delta, ok := h.readDelta(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.AdjustPeriod(delta), h.logger)
}
