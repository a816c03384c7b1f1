package handlers

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/hoopsboard-service/internal/analysis"
	appscoreboard "github.com/preston-bernstein/hoopsboard-service/internal/app/scoreboard"
	"github.com/preston-bernstein/hoopsboard-service/internal/broadcast"
	"github.com/preston-bernstein/hoopsboard-service/internal/display"
	"github.com/preston-bernstein/hoopsboard-service/internal/domain/scoreboard"
	"github.com/preston-bernstein/hoopsboard-service/internal/logging"
)

// Analyzer runs analysis requests and reports their status.
type Analyzer interface {
	Request(ctx context.Context) (analysis.Result, error)
	Status() analysis.Status
}

// Viewer derives the display view of the current board.
type Viewer interface {
	View() display.View
}

// Option customizes a Handler.
type Option func(*Handler)

// WithReady sets the readiness probe.
func WithReady(fn func() bool) Option {
	return func(h *Handler) { h.readyFn = fn }
}

// WithStreamContext bounds the lifetime of websocket pumps. It should be
// cancelled at shutdown; request contexts end as soon as the upgrade returns.
func WithStreamContext(ctx context.Context) Option {
	return func(h *Handler) {
		if ctx != nil {
			h.streamCtx = ctx
		}
	}
}

// WithAllowedOrigins restricts websocket upgrades to the listed origins.
// "*" or an empty list accepts any origin.
func WithAllowedOrigins(origins []string) Option {
	return func(h *Handler) { h.upgrader.CheckOrigin = originChecker(origins) }
}

// Handler wires HTTP routes to the scoreboard service.
type Handler struct {
	svc       *appscoreboard.Service
	analysis  Analyzer
	views     Viewer
	hub       *broadcast.Hub
	logger    *slog.Logger
	readyFn   func() bool
	streamCtx context.Context
	upgrader  websocket.Upgrader
}

// NewHandler constructs a Handler with defaults.
func NewHandler(svc *appscoreboard.Service, analyzer Analyzer, views Viewer, hub *broadcast.Hub, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		svc:       svc,
		analysis:  analyzer,
		views:     views,
		hub:       hub,
		logger:    logger,
		streamCtx: context.Background(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(nil),
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.readyFn == nil || h.readyFn() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	writeError(w, r, http.StatusServiceUnavailable, "not ready", h.logger)
}

// Index serves the scoreboard page rendered with the current view.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := display.RenderPage(&buf, h.views.View()); err != nil {
		logging.Error(loggerFromContext(r, h.logger), "failed to render page", err)
		writeError(w, r, http.StatusInternalServerError, "render failed", h.logger)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// State returns the raw game state.
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.State(), h.logger)
}

// View returns the display view.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.views.View(), h.logger)
}

// LogResponse lists event log entries, most recent first.
type LogResponse struct {
	Entries []scoreboard.LogEntry `json:"entries"`
}

// Log returns the event log, most recent first.
func (h *Handler) Log(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, LogResponse{Entries: scoreboard.Reversed(h.svc.Log())}, h.logger)
}

// ClearLog empties the event log.
func (h *Handler) ClearLog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ClearLog(), h.logger)
}

// Reset restores the initial board.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	st := h.svc.FullReset()
	logging.Info(loggerFromContext(r, h.logger), "operator reset game")
	writeJSON(w, http.StatusOK, st, h.logger)
}

// writeResult answers a mutation with the resulting state or maps its error.
func (h *Handler) writeResult(w http.ResponseWriter, r *http.Request, st scoreboard.GameState, err error) {
	if err != nil {
		writeError(w, r, statusForError(err), err.Error(), h.logger)
		return
	}
	writeJSON(w, http.StatusOK, st, h.logger)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, appscoreboard.ErrInvalidSide),
		errors.Is(err, appscoreboard.ErrInvalidName),
		errors.Is(err, appscoreboard.ErrInvalidValue):
		return http.StatusBadRequest
	case errors.Is(err, analysis.ErrInProgress):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
