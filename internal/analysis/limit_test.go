package analysis

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func countingGenerator(calls *atomic.Int32) Generator {
	return GeneratorFunc(func(context.Context, string) (string, error) {
		calls.Add(1)
		return "ok", nil
	})
}

func TestRateLimitedAllowsFirstCallImmediately(t *testing.T) {
	var calls atomic.Int32
	g := NewRateLimited(countingGenerator(&calls), "test", time.Minute, nil)

	start := time.Now()
	got, err := g.Generate(context.Background(), "p")
	if err != nil || got != "ok" {
		t.Fatalf("expected ok, got %q %v", got, err)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Fatalf("expected first call without waiting")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected one call, got %d", calls.Load())
	}
}

func TestRateLimitedFailsWhenWaitExceedsDeadline(t *testing.T) {
	var calls atomic.Int32
	g := NewRateLimited(countingGenerator(&calls), "test", time.Minute, nil)
	_, _ = g.Generate(context.Background(), "p")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := g.Generate(ctx, "p"); err == nil {
		t.Fatalf("expected wait error")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected second call blocked, got %d calls", calls.Load())
	}
}

func TestRateLimitedWaitsForInterval(t *testing.T) {
	var calls atomic.Int32
	g := NewRateLimited(countingGenerator(&calls), "test", 20*time.Millisecond, nil)
	_, _ = g.Generate(context.Background(), "p")

	start := time.Now()
	if _, err := g.Generate(context.Background(), "p"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Fatalf("expected call to wait for limiter, elapsed %s", elapsed)
	}
}

func TestRateLimitedHandlesNilInner(t *testing.T) {
	g := NewRateLimited(nil, "", time.Millisecond, nil)
	if _, err := g.Generate(context.Background(), "p"); !errors.Is(err, ErrGeneratorUnavailable) {
		t.Fatalf("expected ErrGeneratorUnavailable, got %v", err)
	}
}

func TestRateLimitedDefaultsInterval(t *testing.T) {
	g := NewRateLimited(GeneratorFunc(nil), "", 0, nil).(*rateLimitedGenerator)
	if got := g.limiter.Limit(); got <= 0 {
		t.Fatalf("expected positive default limit, got %v", got)
	}
}
