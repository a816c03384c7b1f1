package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/hoopsboard-service/internal/http/requestutil"
	"github.com/preston-bernstein/hoopsboard-service/internal/logging"
)

// RequireOperator guards mutating routes with a bearer token. An empty token
// leaves the routes open.
func RequireOperator(token string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authorize(r, token) {
				logging.Warn(loggerFromContext(r, logger), "operator unauthorized",
					slog.String("client_ip", requestutil.ClientIP(r)),
				)
				writeError(w, r, http.StatusUnauthorized, "unauthorized", logger)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func authorize(r *http.Request, token string) bool {
	got, ok := requestutil.BearerToken(r)
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(token)) == 1
}
