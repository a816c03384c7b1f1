package scoreboard

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	domain "github.com/preston-bernstein/hoopsboard-service/internal/domain/scoreboard"
	"github.com/preston-bernstein/hoopsboard-service/internal/logging"
	"github.com/preston-bernstein/hoopsboard-service/internal/metrics"
	"github.com/preston-bernstein/hoopsboard-service/internal/ticker"
	"github.com/preston-bernstein/hoopsboard-service/internal/timeutil"
)

// Quantum is the game time removed from each running clock per tick.
const Quantum timeutil.Tenths = 1

const maxNameLength = 24

var (
	ErrInvalidSide  = errors.New("side must be home or away")
	ErrInvalidValue = errors.New("value must not be negative")
	ErrInvalidName  = errors.New("name must be 1-24 characters")
)

// Store defines the state container the service drives.
type Store interface {
	Rules() domain.Rules
	State() domain.GameState
	Log() []domain.LogEntry
	Snapshot(recent int) (domain.GameState, []domain.LogEntry)
	Board() (domain.GameState, []domain.LogEntry)

	AdjustScore(side domain.Side, delta int) domain.GameState
	AdjustFouls(side domain.Side, delta int) domain.GameState
	AdjustTimeouts(side domain.Side, delta int) domain.GameState
	ToggleRunning() domain.GameState
	ResetShotClock(value timeutil.Tenths) domain.GameState
	SetPossession(side domain.Side) domain.GameState
	EditTeamName(side domain.Side, name string) domain.GameState
	AdjustPeriod(delta int) domain.GameState
	AdjustGameClock(delta timeutil.Tenths) domain.GameState
	Tick(quantum timeutil.Tenths) (domain.GameState, domain.Expiry)
	FullReset() domain.GameState
	ClearLog()
}

// Notifier is told whenever the board or log changes.
type Notifier interface {
	Notify()
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func()

func (f NotifierFunc) Notify() { f() }

// Option customizes a Service.
type Option func(*Service)

// WithClock sets the clock driving the ticker.
func WithClock(clock ticker.Clock) Option {
	return func(s *Service) { s.clock = clock }
}

// WithInterval sets the wall-clock tick interval.
func WithInterval(interval time.Duration) Option {
	return func(s *Service) { s.interval = interval }
}

// WithNotifier registers a change listener.
func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifiers = append(s.notifiers, n)
		}
	}
}

// Service applies operator actions to the store and keeps the ticker armed
// exactly while the game is running.
type Service struct {
	store     Store
	logger    *slog.Logger
	metrics   *metrics.Recorder
	notifiers []Notifier
	clock     ticker.Clock
	interval  time.Duration

	// lifeMu orders running-flag changes with arming and disarming.
	lifeMu sync.Mutex
	ticker *ticker.Ticker
}

// NewService constructs a Service around store.
func NewService(store Store, logger *slog.Logger, recorder *metrics.Recorder, opts ...Option) *Service {
	s := &Service{
		store:    store,
		logger:   logger,
		metrics:  recorder,
		interval: ticker.DefaultInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ticker = ticker.New(s.clock, s.interval, s.tick, logger)
	return s
}

// Rules returns the session constants.
func (s *Service) Rules() domain.Rules { return s.store.Rules() }

// State returns the current board.
func (s *Service) State() domain.GameState { return s.store.State() }

// Log returns the event log in append order.
func (s *Service) Log() []domain.LogEntry { return s.store.Log() }

// Snapshot returns the board and the newest recent log entries, oldest first.
func (s *Service) Snapshot(recent int) (domain.GameState, []domain.LogEntry) {
	return s.store.Snapshot(recent)
}

// Board returns the board and the whole log from one consistent read.
func (s *Service) Board() (domain.GameState, []domain.LogEntry) {
	return s.store.Board()
}

// Running reports whether the ticker is currently armed.
func (s *Service) Running() bool { return s.ticker.Armed() }

func (s *Service) AdjustScore(side domain.Side, delta int) (domain.GameState, error) {
	if !side.IsTeam() {
		return s.store.State(), ErrInvalidSide
	}
	return s.done("score", s.store.AdjustScore(side, delta), slog.String(logging.FieldSide, string(side))), nil
}

func (s *Service) AdjustFouls(side domain.Side, delta int) (domain.GameState, error) {
	if !side.IsTeam() {
		return s.store.State(), ErrInvalidSide
	}
	return s.done("fouls", s.store.AdjustFouls(side, delta), slog.String(logging.FieldSide, string(side))), nil
}

func (s *Service) AdjustTimeouts(side domain.Side, delta int) (domain.GameState, error) {
	if !side.IsTeam() {
		return s.store.State(), ErrInvalidSide
	}
	return s.done("timeouts", s.store.AdjustTimeouts(side, delta), slog.String(logging.FieldSide, string(side))), nil
}

// EditTeamName renames a team. Names are trimmed and stored upper case.
func (s *Service) EditTeamName(side domain.Side, name string) (domain.GameState, error) {
	if !side.IsTeam() {
		return s.store.State(), ErrInvalidSide
	}
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > maxNameLength {
		return s.store.State(), ErrInvalidName
	}
	return s.done("name", s.store.EditTeamName(side, name), slog.String(logging.FieldSide, string(side))), nil
}

// SetPossession assigns possession; SideNone clears it.
func (s *Service) SetPossession(side domain.Side) domain.GameState {
	return s.done("possession", s.store.SetPossession(side), slog.String(logging.FieldSide, string(side)))
}

// ToggleRunning starts or pauses play and arms or disarms the ticker to match.
func (s *Service) ToggleRunning() domain.GameState {
	s.lifeMu.Lock()
	st := s.store.ToggleRunning()
	if st.IsRunning {
		s.ticker.Arm()
	} else {
		s.ticker.Disarm()
	}
	s.lifeMu.Unlock()

	logging.Info(s.logger, "clock toggled",
		slog.Bool("running", st.IsRunning),
		slog.Float64(logging.FieldGameClock, st.GameClock.Seconds()),
		slog.Float64(logging.FieldShotClock, st.ShotClock.Seconds()),
	)
	return s.done("toggle", st)
}

// ResetShotClock sets the shot clock to value, which must lie in [0, timeutil.MaxTenths].
func (s *Service) ResetShotClock(value timeutil.Tenths) (domain.GameState, error) {
	if value < 0 || value > timeutil.MaxTenths {
		return s.store.State(), ErrInvalidValue
	}
	return s.done("shot_clock", s.store.ResetShotClock(value)), nil
}

// ResetShotClockFull restores the full shot clock.
func (s *Service) ResetShotClockFull() domain.GameState {
	st, _ := s.ResetShotClock(s.store.Rules().ShotClock)
	return st
}

// ResetShotClockShort restores the short (offensive rebound) shot clock.
func (s *Service) ResetShotClockShort() domain.GameState {
	st, _ := s.ResetShotClock(s.store.Rules().ShortShotClock)
	return st
}

func (s *Service) AdjustPeriod(delta int) domain.GameState {
	return s.done("period", s.store.AdjustPeriod(delta))
}

func (s *Service) AdjustGameClock(delta timeutil.Tenths) domain.GameState {
	return s.done("game_clock", s.store.AdjustGameClock(delta))
}

// FullReset stops play, restores the initial board and clears the log.
func (s *Service) FullReset() domain.GameState {
	s.lifeMu.Lock()
	s.ticker.Disarm()
	st := s.store.FullReset()
	s.lifeMu.Unlock()

	logging.Info(s.logger, "game reset")
	return s.done("reset", st)
}

// ClearLog empties the event log.
func (s *Service) ClearLog() domain.GameState {
	s.store.ClearLog()
	return s.done("clear_log", s.store.State())
}

// Shutdown stops the ticker and waits for its loop to exit.
func (s *Service) Shutdown(ctx context.Context) error {
	return s.ticker.Stop(ctx)
}

func (s *Service) tick() bool {
	st, exp := s.store.Tick(Quantum)
	s.metrics.RecordClockTick()

	if exp.Any() {
		if exp.ShotClock {
			s.metrics.RecordClockExpiry("shot")
		}
		if exp.GameClock {
			s.metrics.RecordClockExpiry("game")
		}
		logging.Info(s.logger, "clock expired",
			slog.Bool("game_clock_expired", exp.GameClock),
			slog.Bool("shot_clock_expired", exp.ShotClock),
			slog.Int(logging.FieldPeriod, st.Period),
		)
	}
	s.notify()
	return st.IsRunning
}

func (s *Service) done(action string, st domain.GameState, attrs ...any) domain.GameState {
	s.metrics.RecordOperatorAction(action)
	logging.Debug(s.logger, "operator action", append([]any{slog.String(logging.FieldAction, action)}, attrs...)...)
	s.notify()
	return st
}

func (s *Service) notify() {
	for _, n := range s.notifiers {
		n.Notify()
	}
}
