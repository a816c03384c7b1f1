package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	fallbacks       int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about the scoreboard and
// its analysis provider, and forwards them to OpenTelemetry when configured.
type Recorder struct {
	mu       sync.Mutex
	stats    map[string]*providerStats
	actions  map[string]int
	ticks    int
	expiries map[string]int
	clients  int
	otel     *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:    make(map[string]*providerStats),
		actions:  make(map[string]int),
		expiries: make(map[string]int),
		otel:     otel,
	}
}

// RecordAnalysisAttempt increments counters for a provider call and stores the last observed latency.
// A failed attempt is one the caller answered with the fallback commentary.
func (r *Recorder) RecordAnalysisAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
		stats.fallbacks++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordAnalysisAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// RecordOperatorAction counts one applied operator command.
func (r *Recorder) RecordOperatorAction(action string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.actions[action]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordAction(action)
	}
}

// RecordClockTick counts one applied tick.
func (r *Recorder) RecordClockTick() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.ticks++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordTick()
	}
}

// RecordClockExpiry counts a clock reaching zero. clock is "game" or "shot".
func (r *Recorder) RecordClockExpiry(clock string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.expiries[clock]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordExpiry(clock)
	}
}

// RecordClientDelta tracks connected display clients.
func (r *Recorder) RecordClientDelta(delta int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.clients += delta
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordClients(int64(delta))
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// OperatorActions returns how many times action was applied.
func (r *Recorder) OperatorActions(action string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.actions[action]
}

// ClockTicks returns the number of applied ticks.
func (r *Recorder) ClockTicks() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ticks
}

// ClockExpiries returns how many times clock reached zero.
func (r *Recorder) ClockExpiries(clock string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.expiries[clock]
}

// Clients returns the current connected display count.
func (r *Recorder) Clients() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clients
}

// Snapshot returns a copy of the current stats for the provider.
type Snapshot struct {
	Calls           int
	Errors          int
	Fallbacks       int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		Fallbacks:       stats.fallbacks,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// ensureStats must be called with r.mu held.
func (r *Recorder) ensureStats(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}
