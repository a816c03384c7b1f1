package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/preston-bernstein/hoopsboard-service/internal/broadcast"
	"github.com/preston-bernstein/hoopsboard-service/internal/logging"
)

// Stream upgrades GET /ws and attaches the connection to the broadcast hub.
// The first message is the current view.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		writeError(w, r, http.StatusServiceUnavailable, "display stream unavailable", h.logger)
		return
	}
	logger := loggerFromContext(r, h.logger)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already answered the client.
		logging.Warn(logger, "websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	initial := h.hub.NewMessage(broadcast.MessageTypeView, h.views.View())
	client := h.hub.Attach(h.streamCtx, conn, &initial)
	logging.Debug(logger, "websocket upgraded", slog.String(logging.FieldClientID, client.ID))
}

func originChecker(origins []string) func(*http.Request) bool {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		allowed[strings.TrimRight(strings.ToLower(o), "/")] = struct{}{}
	}
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if _, ok := allowed[strings.ToLower(origin)]; ok {
			return true
		}
		u, err := url.Parse(origin)
		return err == nil && strings.EqualFold(u.Host, r.Host)
	}
}
