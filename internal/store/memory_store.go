package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/hoopsboard-service/internal/domain/scoreboard"
	"github.com/preston-bernstein/hoopsboard-service/internal/timeutil"
)

// MemoryStore owns the single game state and its event log. Every mutation
// runs under one lock so a transition and the log entries it produces are
// observed together.
type MemoryStore struct {
	mu    sync.RWMutex
	rules scoreboard.Rules
	state scoreboard.GameState
	log   scoreboard.EventLog
	now   func() time.Time
	newID func() string
}

// Option customizes a MemoryStore.
type Option func(*MemoryStore)

// WithClock overrides the timestamp source for log entries.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDs overrides the log entry id generator.
func WithIDs(newID func() string) Option {
	return func(s *MemoryStore) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// NewMemoryStore constructs a store holding the initial board for rules.
// Rules that fail validation are replaced by the defaults.
func NewMemoryStore(rules scoreboard.Rules, opts ...Option) *MemoryStore {
	rules = rules.Normalize()
	if rules.Validate() != nil {
		rules = scoreboard.DefaultRules()
	}
	s := &MemoryStore{
		rules: rules,
		state: scoreboard.InitialState(rules),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rules returns the session constants.
func (s *MemoryStore) Rules() scoreboard.Rules {
	return s.rules
}

// State returns the current snapshot.
func (s *MemoryStore) State() scoreboard.GameState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Log returns a copy of the log in append order.
func (s *MemoryStore) Log() []scoreboard.LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.log.Entries()
}

// Snapshot returns the state and up to recent of the newest log entries
// (oldest first) read under one lock.
func (s *MemoryStore) Snapshot(recent int) (scoreboard.GameState, []scoreboard.LogEntry) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, s.log.Recent(recent)
}

// Board returns the state and the whole log (append order) read under one lock.
func (s *MemoryStore) Board() (scoreboard.GameState, []scoreboard.LogEntry) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, s.log.Entries()
}

// AdjustScore applies a score delta and logs it.
func (s *MemoryStore) AdjustScore(side scoreboard.Side, delta int) scoreboard.GameState {
	return s.apply(func(st scoreboard.GameState) (scoreboard.GameState, []string) {
		next, event := scoreboard.AdjustScore(st, side, delta)
		return next, events(event)
	})
}

// AdjustFouls applies a foul delta.
func (s *MemoryStore) AdjustFouls(side scoreboard.Side, delta int) scoreboard.GameState {
	return s.apply(func(st scoreboard.GameState) (scoreboard.GameState, []string) {
		return scoreboard.AdjustFouls(st, s.rules, side, delta), nil
	})
}

// AdjustTimeouts applies a timeout delta, logging a timeout when one is used.
func (s *MemoryStore) AdjustTimeouts(side scoreboard.Side, delta int) scoreboard.GameState {
	return s.apply(func(st scoreboard.GameState) (scoreboard.GameState, []string) {
		next, event := scoreboard.AdjustTimeouts(st, side, delta)
		return next, events(event)
	})
}

// ToggleRunning flips the running flag and logs the action taken.
func (s *MemoryStore) ToggleRunning() scoreboard.GameState {
	return s.apply(func(st scoreboard.GameState) (scoreboard.GameState, []string) {
		next, event := scoreboard.ToggleRunning(st)
		return next, events(event)
	})
}

// ResetShotClock sets the shot clock to value.
func (s *MemoryStore) ResetShotClock(value timeutil.Tenths) scoreboard.GameState {
	return s.apply(func(st scoreboard.GameState) (scoreboard.GameState, []string) {
		return scoreboard.ResetShotClock(st, value), nil
	})
}

// SetPossession assigns possession.
func (s *MemoryStore) SetPossession(side scoreboard.Side) scoreboard.GameState {
	return s.apply(func(st scoreboard.GameState) (scoreboard.GameState, []string) {
		return scoreboard.SetPossession(st, side), nil
	})
}

// EditTeamName renames a team.
func (s *MemoryStore) EditTeamName(side scoreboard.Side, name string) scoreboard.GameState {
	return s.apply(func(st scoreboard.GameState) (scoreboard.GameState, []string) {
		return scoreboard.EditTeamName(st, side, name), nil
	})
}

// AdjustPeriod applies a period delta.
func (s *MemoryStore) AdjustPeriod(delta int) scoreboard.GameState {
	return s.apply(func(st scoreboard.GameState) (scoreboard.GameState, []string) {
		return scoreboard.AdjustPeriod(st, delta), nil
	})
}

// AdjustGameClock applies a game clock delta.
func (s *MemoryStore) AdjustGameClock(delta timeutil.Tenths) scoreboard.GameState {
	return s.apply(func(st scoreboard.GameState) (scoreboard.GameState, []string) {
		return scoreboard.AdjustGameClock(st, delta), nil
	})
}

// Tick advances the clocks by quantum and logs any expiry.
func (s *MemoryStore) Tick(quantum timeutil.Tenths) (scoreboard.GameState, scoreboard.Expiry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	period := s.state.Period
	next, exp := scoreboard.Tick(s.state, quantum)
	s.state = next
	s.appendLocked(exp.Events(period))
	return next, exp
}

// FullReset restores the initial board and clears the log.
func (s *MemoryStore) FullReset() scoreboard.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = scoreboard.InitialState(s.rules)
	s.log.Clear()
	return s.state
}

// ClearLog empties the event log without touching the board.
func (s *MemoryStore) ClearLog() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log.Clear()
}

func (s *MemoryStore) apply(fn func(scoreboard.GameState) (scoreboard.GameState, []string)) scoreboard.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, evs := fn(s.state)
	s.state = next
	s.appendLocked(evs)
	return next
}

// appendLocked logs events against the current state. Callers hold s.mu.
func (s *MemoryStore) appendLocked(evs []string) {
	at := s.now()
	for _, ev := range evs {
		s.log.Append(scoreboard.NewLogEntry(s.newID(), at, ev, s.state))
	}
}

func events(event string) []string {
	if event == "" {
		return nil
	}
	return []string{event}
}
