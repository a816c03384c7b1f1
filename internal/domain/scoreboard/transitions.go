package scoreboard

import (
	"fmt"
	"math"
	"strings"

	"github.com/preston-bernstein/hoopsboard-service/internal/timeutil"
)

const (
	EventClockStarted = "Clock Started"
	EventClockPaused  = "Clock Paused"
	EventShotClock    = "Shot Clock Violation"
)

// Transitions are pure: they take a snapshot and return the next one along with
// the event text to log. An empty event means the transition is not logged.
// Operations addressed to a side other than home or away leave the state untouched.

// AdjustScore applies delta to a team's score, flooring at zero.
func AdjustScore(s GameState, side Side, delta int) (GameState, string) {
	if !side.IsTeam() {
		return s, ""
	}
	rec := s.Team(side)
	rec.Score = addClamped(rec.Score, delta, 0)
	return s.withTeam(side, rec), fmt.Sprintf("%s %s points", rec.Name, signed(delta))
}

// AdjustFouls applies delta to a team's fouls and recomputes the bonus flags.
func AdjustFouls(s GameState, r Rules, side Side, delta int) GameState {
	if !side.IsTeam() {
		return s
	}
	rec := s.Team(side)
	return s.withTeam(side, withFouls(rec, r, addClamped(rec.Fouls, delta, 0)))
}

func withFouls(rec TeamRecord, r Rules, fouls int) TeamRecord {
	rec.Fouls = fouls
	rec.Bonus = fouls >= r.BonusFouls
	rec.DoubleBonus = fouls >= r.DoubleBonusFouls
	return rec
}

// AdjustTimeouts applies delta to a team's remaining timeouts. Using one is logged.
func AdjustTimeouts(s GameState, side Side, delta int) (GameState, string) {
	if !side.IsTeam() {
		return s, ""
	}
	rec := s.Team(side)
	before := rec.Timeouts
	rec.Timeouts = addClamped(rec.Timeouts, delta, 0)
	if delta >= 0 || rec.Timeouts == before {
		return s.withTeam(side, rec), ""
	}
	return s.withTeam(side, rec), rec.Name + " Timeout"
}

// ToggleRunning starts or pauses play. The event names the action taken.
// Starting is refused while either clock reads zero.
func ToggleRunning(s GameState) (GameState, string) {
	if s.IsRunning {
		s.IsRunning = false
		return s, EventClockPaused
	}
	if s.ClockExpired() {
		return s, ""
	}
	s.IsRunning = true
	return s, EventClockStarted
}

// ResetShotClock sets the shot clock unconditionally.
func ResetShotClock(s GameState, value timeutil.Tenths) GameState {
	s.ShotClock = value
	return s
}

// SetPossession assigns the possession indicator.
func SetPossession(s GameState, side Side) GameState {
	if side != SideHome && side != SideAway {
		side = SideNone
	}
	s.Possession = side
	return s
}

// EditTeamName stores the name in upper case.
func EditTeamName(s GameState, side Side, name string) GameState {
	if !side.IsTeam() {
		return s
	}
	rec := s.Team(side)
	rec.Name = strings.ToUpper(name)
	return s.withTeam(side, rec)
}

// AdjustPeriod applies delta to the period, flooring at one.
func AdjustPeriod(s GameState, delta int) GameState {
	s.Period = addClamped(s.Period, delta, 1)
	return s
}

// AdjustGameClock applies delta to the game clock, flooring at zero and
// saturating at timeutil.MaxTenths.
func AdjustGameClock(s GameState, delta timeutil.Tenths) GameState {
	s.GameClock = addTenths(s.GameClock, delta)
	return s
}

// addClamped returns v+delta floored at lo. Counters start at lo or above,
// so only a positive delta can overflow; it saturates at math.MaxInt.
func addClamped(v, delta, lo int) int {
	if delta > 0 && v > math.MaxInt-delta {
		return math.MaxInt
	}
	if sum := v + delta; sum > lo {
		return sum
	}
	return lo
}

func clampTenths(v timeutil.Tenths) timeutil.Tenths {
	if v < 0 {
		return 0
	}
	return v
}

func addTenths(v, delta timeutil.Tenths) timeutil.Tenths {
	switch {
	case delta > 0 && v > timeutil.MaxTenths-delta:
		return timeutil.MaxTenths
	case delta < 0 && delta <= -v:
		return 0
	}
	return v + delta
}

func signed(delta int) string {
	if delta > 0 {
		return fmt.Sprintf("+%d", delta)
	}
	return fmt.Sprintf("%d", delta)
}
