package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/preston-bernstein/hoopsboard-service/internal/config"
	"github.com/preston-bernstein/hoopsboard-service/internal/logging"
	"github.com/preston-bernstein/hoopsboard-service/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	// A missing .env is normal outside local development.
	envErr := godotenv.Load()

	cfg, rulesErr := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "hoopsboard-service",
		Version: appVersion,
	})
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		logger.Warn("failed to load .env file", "error", envErr)
	}
	if rulesErr != nil {
		logger.Warn("rules file rejected, using default rules",
			slog.String("file", cfg.RulesFile),
			slog.String("error", rulesErr.Error()),
		)
	}
	logger.Info("configuration loaded",
		slog.String("port", cfg.Port),
		slog.String(logging.FieldProvider, cfg.Analysis.Provider),
		slog.Bool("operator_token", cfg.OperatorToken != ""),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger)
	srv.Run(ctx, stop)
}
