package ticker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/preston-bernstein/hoopsboard-service/internal/logging"
)

// DefaultInterval is the wall-clock spacing between game clock ticks.
const DefaultInterval = 100 * time.Millisecond

// Clock is the subset of clockwork.Clock the ticker needs.
// In production, use clockwork.NewRealClock(). In tests, a FakeClock.
type Clock interface {
	NewTicker(d time.Duration) clockwork.Ticker
}

// TickFunc runs once per interval while armed. Returning false disarms the
// ticker. It runs under the ticker's lock and must not call Arm or Disarm.
type TickFunc func() bool

// Ticker drives a TickFunc on a fixed interval. It is armed and disarmed
// explicitly; at most one loop runs at a time.
type Ticker struct {
	clock    Clock
	interval time.Duration
	onTick   TickFunc
	logger   *slog.Logger

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// New constructs a disarmed Ticker.
func New(clock Clock, interval time.Duration, onTick TickFunc, logger *slog.Logger) *Ticker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Ticker{
		clock:    clock,
		interval: interval,
		onTick:   onTick,
		logger:   logger,
	}
}

// Arm starts the loop. Arming an armed ticker is a no-op.
func (t *Ticker) Arm() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stop != nil {
		return
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	t.stop = stop
	t.done = done

	tk := t.clock.NewTicker(t.interval)
	go t.run(tk, stop, done)
	logging.Debug(t.logger, "ticker armed", slog.Int64(logging.FieldDurationMS, t.interval.Milliseconds()))
}

// Disarm stops the loop. No tick runs after Disarm returns.
func (t *Ticker) Disarm() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.disarmLocked()
}

// Armed reports whether a loop is running.
func (t *Ticker) Armed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stop != nil
}

// Stop disarms the ticker and waits for the loop goroutine to exit.
func (t *Ticker) Stop(ctx context.Context) error {
	t.mu.Lock()
	done := t.done
	t.disarmLocked()
	t.mu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *Ticker) disarmLocked() {
	if t.stop == nil {
		return
	}
	close(t.stop)
	t.stop = nil
	logging.Debug(t.logger, "ticker disarmed")
}

func (t *Ticker) run(tk clockwork.Ticker, stop, done chan struct{}) {
	defer close(done)
	defer tk.Stop()

	for {
		select {
		case <-stop:
			return
		case <-tk.Chan():
			if !t.fire(stop) {
				return
			}
		}
	}
}

// fire invokes onTick unless this loop was disarmed while the tick was pending.
func (t *Ticker) fire(stop chan struct{}) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stop != stop {
		return false
	}
	if t.onTick == nil || t.onTick() {
		return true
	}
	t.disarmLocked()
	return false
}
