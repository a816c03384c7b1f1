package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/preston-bernstein/hoopsboard-service/internal/analysis"
	appscoreboard "github.com/preston-bernstein/hoopsboard-service/internal/app/scoreboard"
	"github.com/preston-bernstein/hoopsboard-service/internal/broadcast"
	"github.com/preston-bernstein/hoopsboard-service/internal/config"
	"github.com/preston-bernstein/hoopsboard-service/internal/display"
	httpserver "github.com/preston-bernstein/hoopsboard-service/internal/http"
	"github.com/preston-bernstein/hoopsboard-service/internal/http/handlers"
	"github.com/preston-bernstein/hoopsboard-service/internal/logging"
	"github.com/preston-bernstein/hoopsboard-service/internal/metrics"
	"github.com/preston-bernstein/hoopsboard-service/internal/store"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         *store.MemoryStore
	board         *appscoreboard.Service
	clock         Clock
	connector     *analysis.Connector
	hub           *broadcast.Hub
	presenter     *display.Presenter
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error

	// streamCtx outlives individual requests and ends the display streams at shutdown.
	streamCtx    context.Context
	streamCancel context.CancelFunc
	hubDone      <-chan struct{}
	ready        atomic.Bool
}

// New constructs a server with the configured analysis generator.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil, nil)
}

func newServerWithGenerator(cfg config.Config, logger *slog.Logger, gen analysis.Generator) *Server {
	return newServerWithMetrics(cfg, logger, gen, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, gen analysis.Generator, recorder *metrics.Recorder) *Server {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	provider := normalizeProviderName(cfg.Analysis.Provider, gen)
	if gen == nil {
		gen, provider = newGeneratorFactory(logger, nil).build(cfg.Analysis)
	}

	s := &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
	}
	s.streamCtx, s.streamCancel = context.WithCancel(context.Background())

	s.store = store.NewMemoryStore(cfg.Rules)
	s.hub = broadcast.NewHub(logger, recorder)
	s.connector = analysis.NewConnector(gen, s.store, analysis.Config{
		Provider: provider,
		Timeout:  cfg.Analysis.Timeout,
		Logger:   logger,
		Metrics:  recorder,
		OnChange: s.publish,
	})
	s.presenter = display.NewPresenter(s.store, s.connector, time.Local)
	s.board = appscoreboard.NewService(s.store, logger, recorder,
		appscoreboard.WithNotifier(appscoreboard.NotifierFunc(s.publish)),
	)
	s.clock = s.board
	s.httpServer = s.buildHTTPServer()
	return s
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, clock Clock) *Server {
	s := &Server{
		cfg:        cfg,
		logger:     logger,
		hub:        broadcast.NewHub(logger, nil),
		httpServer: httpSrv,
		clock:      clock,
	}
	s.streamCtx, s.streamCancel = context.WithCancel(context.Background())
	return s
}

func (s *Server) buildHTTPServer() httpServer {
	handler := handlers.NewHandler(s.board, s.connector, s.presenter, s.hub, s.logger,
		handlers.WithReady(s.ready.Load),
		handlers.WithStreamContext(s.streamCtx),
		handlers.WithAllowedOrigins(s.cfg.CORSOrigins),
	)
	router := httpserver.NewRouter(handler, httpserver.RouterConfig{
		OperatorToken: s.cfg.OperatorToken,
		CORSOrigins:   s.cfg.CORSOrigins,
		Logger:        s.logger,
		Metrics:       s.metrics,
	})
	return newNetHTTPServer(s.cfg.Port, router)
}

// publish pushes the current view to every connected display.
func (s *Server) publish() {
	s.hub.Publish(broadcast.MessageTypeView, s.presenter.View())
}

// Run starts the hub and HTTP servers, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startHub()
	s.startMetrics()
	s.startServer(stop)
	s.ready.Store(true)

	<-ctx.Done()
	s.ready.Store(false)
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startHub() {
	s.hubDone = s.hub.Done()
	go s.hub.Run(s.streamCtx)
}

func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if s.clock != nil {
		if err := s.clock.Shutdown(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop game clock", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	// Hijacked websocket connections are not tracked by http.Server.
	s.streamCancel()
	if s.hubDone != nil {
		select {
		case <-s.hubDone:
		case <-shutdownCtx.Done():
			logging.Warn(s.logger, "broadcast hub did not stop in time")
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

// Ready reports whether the server is accepting traffic.
func (s *Server) Ready() bool {
	return s.ready.Load()
}
