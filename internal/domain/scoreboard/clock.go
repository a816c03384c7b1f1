package scoreboard

import (
	"fmt"

	"github.com/preston-bernstein/hoopsboard-service/internal/timeutil"
)

// Expiry records which clocks ran out on a tick.
type Expiry struct {
	GameClock bool
	ShotClock bool
}

// Any reports whether the tick stopped play.
func (e Expiry) Any() bool {
	return e.GameClock || e.ShotClock
}

// Events returns the log lines for the expiry. period is the period that just ran out.
func (e Expiry) Events(period int) []string {
	var events []string
	if e.ShotClock {
		events = append(events, EventShotClock)
	}
	if e.GameClock {
		events = append(events, fmt.Sprintf("End of Period %d", period))
	}
	return events
}

// Tick advances both clocks by quantum while running. Reaching zero on either
// clock stops play; a stopped state is returned unchanged, so the expiry is
// reported exactly once.
func Tick(s GameState, quantum timeutil.Tenths) (GameState, Expiry) {
	if !s.IsRunning {
		return s, Expiry{}
	}
	s.GameClock = clampTenths(s.GameClock - quantum)
	s.ShotClock = clampTenths(s.ShotClock - quantum)

	exp := Expiry{
		GameClock: s.GameClock == 0,
		ShotClock: s.ShotClock == 0,
	}
	if exp.Any() {
		s.IsRunning = false
	}
	return s, exp
}
