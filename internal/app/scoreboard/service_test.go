package scoreboard

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	domain "github.com/preston-bernstein/hoopsboard-service/internal/domain/scoreboard"
	"github.com/preston-bernstein/hoopsboard-service/internal/metrics"
	"github.com/preston-bernstein/hoopsboard-service/internal/store"
	"github.com/preston-bernstein/hoopsboard-service/internal/ticker"
)

type harness struct {
	svc      *Service
	clock    *clockwork.FakeClock
	rec      *metrics.Recorder
	notified atomic.Int32
	changes  chan struct{}
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		clock:   clockwork.NewFakeClock(),
		rec:     metrics.NewRecorder(),
		changes: make(chan struct{}, 64),
	}
	notifier := NotifierFunc(func() {
		h.notified.Add(1)
		select {
		case h.changes <- struct{}{}:
		default:
		}
	})
	h.svc = NewService(store.NewMemoryStore(domain.DefaultRules()), nil, h.rec,
		WithClock(h.clock), WithNotifier(notifier))
	t.Cleanup(func() { _ = h.svc.Shutdown(context.Background()) })
	return h
}

func (h *harness) start(t *testing.T) {
	t.Helper()
	if st := h.svc.ToggleRunning(); !st.IsRunning {
		t.Fatalf("expected running after toggle")
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := h.clock.BlockUntilContext(ctx, 1); err != nil {
		t.Fatalf("ticker not armed: %v", err)
	}
	h.drain()
}

func (h *harness) drain() {
	for {
		select {
		case <-h.changes:
		default:
			return
		}
	}
}

// advance moves the fake clock one interval and waits for the tick to land.
func (h *harness) advance(t *testing.T) {
	t.Helper()
	h.clock.Advance(ticker.DefaultInterval)
	select {
	case <-h.changes:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for tick")
	}
}

func TestTenTicksFromResetShotClock(t *testing.T) {
	h := newHarness(t)
	h.svc.ResetShotClockFull()
	h.start(t)

	for i := 0; i < 10; i++ {
		h.advance(t)
	}

	st := h.svc.State()
	if st.ShotClock != 230 {
		t.Fatalf("expected shot clock 23.0, got %v", st.ShotClock.Seconds())
	}
	if st.GameClock != 7190 {
		t.Fatalf("expected game clock 719.0, got %v", st.GameClock.Seconds())
	}
	if !st.IsRunning || !h.svc.Running() {
		t.Fatalf("expected still running")
	}
	if got := h.rec.ClockTicks(); got != 10 {
		t.Fatalf("expected 10 ticks recorded, got %d", got)
	}
}

func TestShotClockExpiryStopsTicker(t *testing.T) {
	h := newHarness(t)
	if _, err := h.svc.ResetShotClock(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h.start(t)

	h.advance(t)
	h.advance(t)

	st := h.svc.State()
	if st.IsRunning || st.ShotClock != 0 {
		t.Fatalf("expected stopped at zero, got %+v", st)
	}
	if err := h.svc.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
	if h.svc.Running() {
		t.Fatalf("expected ticker disarmed on expiry")
	}
	if got := h.rec.ClockExpiries("shot"); got != 1 {
		t.Fatalf("expected one shot clock expiry, got %d", got)
	}

	log := h.svc.Log()
	if last := log[len(log)-1]; last.Event != domain.EventShotClock {
		t.Fatalf("expected violation logged, got %q", last.Event)
	}
}

func TestToggleRefusedWhileExpired(t *testing.T) {
	h := newHarness(t)
	h.svc.ResetShotClock(0)

	st := h.svc.ToggleRunning()
	if st.IsRunning || h.svc.Running() {
		t.Fatalf("expected start refused at zero")
	}
	if len(h.svc.Log()) != 0 {
		t.Fatalf("expected refused start not logged")
	}
}

func TestPauseDisarmsTicker(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	h.advance(t)

	st := h.svc.ToggleRunning()
	if st.IsRunning || h.svc.Running() {
		t.Fatalf("expected paused and disarmed")
	}
	before := h.svc.State()
	h.clock.Advance(5 * ticker.DefaultInterval)
	if after := h.svc.State(); after != before {
		t.Fatalf("expected clocks frozen while paused")
	}
	if got := len(h.svc.Log()); got != 2 {
		t.Fatalf("expected start and pause entries, got %d", got)
	}
}

func TestFullResetDisarmsAndRestores(t *testing.T) {
	h := newHarness(t)
	h.svc.AdjustScore(domain.SideHome, 3)
	h.start(t)
	h.advance(t)

	st := h.svc.FullReset()
	if st != domain.InitialState(domain.DefaultRules()) {
		t.Fatalf("expected initial state, got %+v", st)
	}
	if h.svc.Running() {
		t.Fatalf("expected ticker disarmed after reset")
	}
	if len(h.svc.Log()) != 0 {
		t.Fatalf("expected log cleared")
	}
}

func TestTeamOperationsRejectInvalidSide(t *testing.T) {
	h := newHarness(t)

	if _, err := h.svc.AdjustScore(domain.SideNone, 1); !errors.Is(err, ErrInvalidSide) {
		t.Fatalf("expected ErrInvalidSide, got %v", err)
	}
	if _, err := h.svc.AdjustFouls(domain.Side("bench"), 1); !errors.Is(err, ErrInvalidSide) {
		t.Fatalf("expected ErrInvalidSide, got %v", err)
	}
	if _, err := h.svc.AdjustTimeouts(domain.SideNone, -1); !errors.Is(err, ErrInvalidSide) {
		t.Fatalf("expected ErrInvalidSide, got %v", err)
	}
	if _, err := h.svc.EditTeamName(domain.SideNone, "x"); !errors.Is(err, ErrInvalidSide) {
		t.Fatalf("expected ErrInvalidSide, got %v", err)
	}
	if h.notified.Load() != 0 {
		t.Fatalf("expected no notifications for rejected operations")
	}
}

func TestEditTeamNameValidates(t *testing.T) {
	h := newHarness(t)

	if _, err := h.svc.EditTeamName(domain.SideHome, "   "); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	st, err := h.svc.EditTeamName(domain.SideHome, "  celtics ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Home.Name != "CELTICS" {
		t.Fatalf("expected CELTICS, got %s", st.Home.Name)
	}
}

func TestResetShotClockRejectsNegative(t *testing.T) {
	h := newHarness(t)
	if _, err := h.svc.ResetShotClock(-1); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
}

func TestShortShotClockUsesRules(t *testing.T) {
	h := newHarness(t)
	if st := h.svc.ResetShotClockShort(); st.ShotClock != domain.DefaultShortShotClock {
		t.Fatalf("expected short clock, got %d", st.ShotClock)
	}
}

func TestOperatorActionsAreCountedAndNotified(t *testing.T) {
	h := newHarness(t)
	h.svc.AdjustScore(domain.SideAway, 2)
	h.svc.AdjustFouls(domain.SideAway, 1)
	h.svc.SetPossession(domain.SideAway)
	h.svc.AdjustPeriod(1)
	h.svc.AdjustGameClock(-10)
	h.svc.ClearLog()

	if got := h.rec.OperatorActions("score"); got != 1 {
		t.Fatalf("expected 1 score action, got %d", got)
	}
	if got := h.notified.Load(); got != 6 {
		t.Fatalf("expected 6 notifications, got %d", got)
	}
	if len(h.svc.Log()) != 0 {
		t.Fatalf("expected log cleared")
	}
	st, recent := h.svc.Snapshot(5)
	if st.Away.Score != 2 || st.Period != 2 || len(recent) != 0 {
		t.Fatalf("unexpected snapshot %+v %+v", st, recent)
	}
}
