package analysis

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

const defaultMinInterval = 5 * time.Second

// rateLimitedGenerator spaces upstream calls at least interval apart.
type rateLimitedGenerator struct {
	next    Generator
	limiter *rate.Limiter
	name    string
	logger  *slog.Logger
}

// NewRateLimited returns a Generator that allows one call per interval.
// Calls wait for their turn; a wait that would outlast ctx fails immediately.
func NewRateLimited(next Generator, name string, interval time.Duration, logger *slog.Logger) Generator {
	if interval <= 0 {
		interval = defaultMinInterval
	}
	return &rateLimitedGenerator{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		name:    name,
		logger:  logger,
	}
}

func (g *rateLimitedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.next == nil {
		logWithProvider(ctx, g.logger, slog.LevelWarn, g.name, "generator unavailable")
		return "", ErrGeneratorUnavailable
	}
	if err := g.limiter.Wait(ctx); err != nil {
		logWithProvider(ctx, g.logger, slog.LevelWarn, g.name, "rate-limited generate canceled", slog.String("error", err.Error()))
		return "", err
	}
	return g.next.Generate(ctx, prompt)
}
