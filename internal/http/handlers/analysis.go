package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/preston-bernstein/hoopsboard-service/internal/analysis"
)

// AnalysisStatus handles GET /api/analysis.
func (h *Handler) AnalysisStatus(w http.ResponseWriter, r *http.Request) {
	if h.analysis == nil {
		writeJSON(w, http.StatusOK, analysis.Status{}, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.analysis.Status(), h.logger)
}

// RequestAnalysis handles POST /api/analysis. The call outlives a client that
// hangs up so the result still reaches the displays.
func (h *Handler) RequestAnalysis(w http.ResponseWriter, r *http.Request) {
	if h.analysis == nil {
		writeError(w, r, http.StatusServiceUnavailable, analysis.ErrGeneratorUnavailable.Error(), h.logger)
		return
	}
	res, err := h.analysis.Request(context.WithoutCancel(r.Context()))
	if errors.Is(err, analysis.ErrInProgress) {
		writeError(w, r, http.StatusConflict, err.Error(), h.logger)
		return
	}
	if err != nil {
		writeError(w, r, statusForError(err), err.Error(), h.logger)
		return
	}
	writeJSON(w, http.StatusOK, res, h.logger)
}
