package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/preston-bernstein/hoopsboard-service/internal/http/handlers"
	"github.com/preston-bernstein/hoopsboard-service/internal/http/middleware"
	"github.com/preston-bernstein/hoopsboard-service/internal/metrics"
)

// RouterConfig carries the cross-cutting settings of the router.
type RouterConfig struct {
	OperatorToken string
	CORSOrigins   []string
	Logger        *slog.Logger
	Metrics       *metrics.Recorder
}

// NewRouter registers the display, stream and operator routes on a chi router.
func NewRouter(h *handlers.Handler, cfg RouterConfig) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(func(next nethttp.Handler) nethttp.Handler {
		return middleware.LoggingMiddleware(cfg.Logger, cfg.Metrics, next)
	})
	r.Use(corsHandler(cfg.CORSOrigins))

	r.Get("/", h.Index)
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Get("/ws", h.Stream)

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", h.State)
		r.Get("/view", h.View)
		r.Get("/log", h.Log)
		r.Get("/analysis", h.AnalysisStatus)

		r.Group(func(r chi.Router) {
			r.Use(handlers.RequireOperator(cfg.OperatorToken, cfg.Logger))

			r.Delete("/log", h.ClearLog)
			r.Route("/teams/{side}", func(r chi.Router) {
				r.Post("/score", h.AdjustScore)
				r.Post("/fouls", h.AdjustFouls)
				r.Post("/timeouts", h.AdjustTimeouts)
				r.Put("/name", h.EditTeamName)
			})
			r.Put("/possession", h.SetPossession)
			r.Post("/clock/toggle", h.ToggleClock)
			r.Post("/clock/game", h.AdjustGameClock)
			r.Post("/shot-clock/reset", h.ResetShotClock)
			r.Post("/period", h.AdjustPeriod)
			r.Post("/reset", h.Reset)
			r.Post("/analysis", h.RequestAnalysis)
		})
	})

	return r
}

func corsHandler(origins []string) func(nethttp.Handler) nethttp.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			nethttp.MethodGet,
			nethttp.MethodPost,
			nethttp.MethodPut,
			nethttp.MethodDelete,
			nethttp.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}).Handler
}
