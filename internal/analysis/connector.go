package analysis

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/preston-bernstein/hoopsboard-service/internal/domain/scoreboard"
	"github.com/preston-bernstein/hoopsboard-service/internal/logging"
	"github.com/preston-bernstein/hoopsboard-service/internal/metrics"
)

// FallbackText replaces the commentary whenever the provider fails for any reason.
const FallbackText = "The game is intense! Every possession matters in this matchup."

const defaultTimeout = 15 * time.Second

// Source supplies the board and newest log entries (oldest first) in one read.
type Source interface {
	Snapshot(recent int) (scoreboard.GameState, []scoreboard.LogEntry)
}

// Result is one completed analysis request.
type Result struct {
	Text        string    `json:"text"`
	Fallback    bool      `json:"fallback"`
	Provider    string    `json:"provider"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Status is what displays show about analysis.
type Status struct {
	InProgress bool    `json:"inProgress"`
	Last       *Result `json:"last,omitempty"`
}

// Config wires a Connector.
type Config struct {
	Provider string
	Timeout  time.Duration
	Logger   *slog.Logger
	Metrics  *metrics.Recorder
	Now      func() time.Time
	// OnChange runs when a request starts and when it completes.
	OnChange func()
}

// Connector serializes the board into a prompt, calls the generator and
// collapses every failure into FallbackText. At most one request is
// outstanding at a time.
type Connector struct {
	generator Generator
	source    Source
	provider  string
	timeout   time.Duration
	logger    *slog.Logger
	metrics   *metrics.Recorder
	now       func() time.Time
	onChange  func()

	inFlight atomic.Bool

	mu   sync.RWMutex
	last *Result
}

// NewConnector constructs a Connector reading from source.
func NewConnector(generator Generator, source Source, cfg Config) *Connector {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Provider == "" {
		cfg.Provider = "unknown"
	}
	return &Connector{
		generator: generator,
		source:    source,
		provider:  cfg.Provider,
		timeout:   cfg.Timeout,
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
		now:       cfg.Now,
		onChange:  cfg.OnChange,
	}
}

// Request runs one analysis. The only error is ErrInProgress; provider
// failures produce a Result carrying FallbackText.
func (c *Connector) Request(ctx context.Context) (Result, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return Result{}, ErrInProgress
	}
	c.changed()

	state, recent := c.source.Snapshot(RecentEvents)
	prompt := BuildPrompt(state, recent)

	text, err := c.generate(ctx, prompt)
	res := Result{
		Text:        text,
		Provider:    c.provider,
		GeneratedAt: c.now(),
	}
	if err != nil {
		res.Text = FallbackText
		res.Fallback = true
	}

	c.mu.Lock()
	c.last = &res
	c.mu.Unlock()
	c.inFlight.Store(false)
	c.changed()

	return res, nil
}

// Status reports whether a request is outstanding and the last result.
func (c *Connector) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	st := Status{InProgress: c.inFlight.Load()}
	if c.last != nil {
		last := *c.last
		st.Last = &last
	}
	return st
}

func (c *Connector) generate(ctx context.Context, prompt string) (string, error) {
	if c.generator == nil {
		return "", ErrGeneratorUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	text, err := c.generator.Generate(ctx, prompt)
	if err == nil && text == "" {
		err = ErrEmptyResponse
	}
	elapsed := time.Since(start)

	c.metrics.RecordAnalysisAttempt(c.provider, elapsed, err)
	if rl, ok := AsRateLimitError(err); ok {
		c.metrics.RecordRateLimit(c.provider, rl.RetryAfter)
	}
	if err != nil {
		logWithProvider(ctx, c.logger, slog.LevelWarn, c.provider, "analysis failed; using fallback",
			slog.String("error", err.Error()),
			slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
		)
		return "", err
	}
	logWithProvider(ctx, c.logger, slog.LevelInfo, c.provider, "analysis generated",
		slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
	)
	return text, nil
}

func (c *Connector) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}
