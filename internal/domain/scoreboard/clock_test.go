package scoreboard

import (
	"testing"

	"github.com/preston-bernstein/hoopsboard-service/internal/timeutil"
)

func running(s GameState) GameState {
	s.IsRunning = true
	return s
}

func TestTickDecrementsBothClocks(t *testing.T) {
	s := running(InitialState(DefaultRules()))

	for i := 0; i < 37; i++ {
		s, _ = Tick(s, 1)
	}
	if s.GameClock != 7200-37 || s.ShotClock != 240-37 {
		t.Fatalf("unexpected clocks game=%d shot=%d", s.GameClock, s.ShotClock)
	}
	if !s.IsRunning {
		t.Fatalf("expected still running")
	}
}

func TestResetShotClockThenTenTicks(t *testing.T) {
	s := running(InitialState(DefaultRules()))
	s = ResetShotClock(s, timeutil.FromSeconds(24))

	for i := 0; i < 10; i++ {
		s, _ = Tick(s, 1)
	}
	if s.ShotClock.Seconds() != 23.0 {
		t.Fatalf("expected 23.0, got %v", s.ShotClock.Seconds())
	}
	if !s.IsRunning {
		t.Fatalf("expected running to be unaffected")
	}
}

func TestTickStopsOnFirstExpiryOnly(t *testing.T) {
	s := running(InitialState(DefaultRules()))
	s = ResetShotClock(s, 5)

	var expiries int
	var stoppedAt int
	for i := 1; i <= 20; i++ {
		var exp Expiry
		s, exp = Tick(s, 1)
		if exp.Any() {
			expiries++
			stoppedAt = i
		}
	}
	if expiries != 1 {
		t.Fatalf("expected exactly one expiry, got %d", expiries)
	}
	if stoppedAt != 5 {
		t.Fatalf("expected stop on tick 5, got %d", stoppedAt)
	}
	if s.IsRunning || s.ShotClock != 0 {
		t.Fatalf("expected stopped at zero, got %+v", s)
	}
	if s.GameClock != 7200-5 {
		t.Fatalf("expected game clock to stop with play, got %d", s.GameClock)
	}
}

func TestTickMatchesClosedForm(t *testing.T) {
	cases := []struct {
		game, shot timeutil.Tenths
		n          int
	}{
		{7200, 240, 100},
		{30, 240, 50},
		{240, 30, 50},
		{15, 15, 15},
	}
	for _, tc := range cases {
		s := running(InitialState(DefaultRules()))
		s.GameClock, s.ShotClock = tc.game, tc.shot
		firstZero := -1
		for i := 1; i <= tc.n; i++ {
			var exp Expiry
			wasRunning := s.IsRunning
			s, exp = Tick(s, 1)
			if wasRunning && exp.Any() && firstZero < 0 {
				firstZero = i
			}
		}
		minClock := tc.game
		if tc.shot < minClock {
			minClock = tc.shot
		}
		stopTick := int(minClock)
		ticks := timeutil.Tenths(tc.n)
		if stopTick <= tc.n {
			ticks = timeutil.Tenths(stopTick)
			if firstZero != stopTick {
				t.Fatalf("case %+v: expected stop at %d, got %d", tc, stopTick, firstZero)
			}
			if s.IsRunning {
				t.Fatalf("case %+v: expected stopped", tc)
			}
		}
		if want := clampTenths(tc.game - ticks); s.GameClock != want {
			t.Fatalf("case %+v: game clock %d want %d", tc, s.GameClock, want)
		}
		if want := clampTenths(tc.shot - ticks); s.ShotClock != want {
			t.Fatalf("case %+v: shot clock %d want %d", tc, s.ShotClock, want)
		}
	}
}

func TestTickWhileStoppedIsNoop(t *testing.T) {
	s := InitialState(DefaultRules())
	next, exp := Tick(s, 1)
	if next != s || exp.Any() {
		t.Fatalf("expected no change while stopped")
	}
}

func TestExpiryEvents(t *testing.T) {
	events := Expiry{GameClock: true, ShotClock: true}.Events(2)
	if len(events) != 2 || events[0] != EventShotClock || events[1] != "End of Period 2" {
		t.Fatalf("unexpected events %v", events)
	}
	if len(Expiry{}.Events(1)) != 0 {
		t.Fatalf("expected no events without expiry")
	}
}
