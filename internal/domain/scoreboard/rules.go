package scoreboard

import (
	"errors"

	"github.com/preston-bernstein/hoopsboard-service/internal/timeutil"
)

// ErrInvertedBonus rejects rules whose double bonus starts before the bonus.
var ErrInvertedBonus = errors.New("double bonus fouls below bonus fouls")

const (
	DefaultPeriodLength     = 720 * timeutil.TenthsPerSecond
	DefaultShotClock        = 24 * timeutil.TenthsPerSecond
	DefaultShortShotClock   = 14 * timeutil.TenthsPerSecond
	DefaultBonusFouls       = 5
	DefaultDoubleBonusFouls = 7
	DefaultTimeouts         = 7
)

// Rules are the fixed constants of a session. They are read once at startup.
type Rules struct {
	PeriodLength     timeutil.Tenths
	ShotClock        timeutil.Tenths
	ShortShotClock   timeutil.Tenths
	BonusFouls       int
	DoubleBonusFouls int
	InitialTimeouts  int
}

// DefaultRules returns the NBA-style constants.
func DefaultRules() Rules {
	return Rules{
		PeriodLength:     DefaultPeriodLength,
		ShotClock:        DefaultShotClock,
		ShortShotClock:   DefaultShortShotClock,
		BonusFouls:       DefaultBonusFouls,
		DoubleBonusFouls: DefaultDoubleBonusFouls,
		InitialTimeouts:  DefaultTimeouts,
	}
}

// Normalize replaces non-positive fields with defaults.
func (r Rules) Normalize() Rules {
	def := DefaultRules()
	if r.PeriodLength <= 0 {
		r.PeriodLength = def.PeriodLength
	}
	if r.ShotClock <= 0 {
		r.ShotClock = def.ShotClock
	}
	if r.ShortShotClock <= 0 {
		r.ShortShotClock = def.ShortShotClock
	}
	if r.BonusFouls <= 0 {
		r.BonusFouls = def.BonusFouls
	}
	if r.DoubleBonusFouls <= 0 {
		r.DoubleBonusFouls = def.DoubleBonusFouls
	}
	if r.InitialTimeouts <= 0 {
		r.InitialTimeouts = def.InitialTimeouts
	}
	return r
}

// Validate reports rules the board cannot display consistently.
func (r Rules) Validate() error {
	if r.DoubleBonusFouls < r.BonusFouls {
		return ErrInvertedBonus
	}
	return nil
}

// InitialState is the board at session start and after a full reset.
func InitialState(r Rules) GameState {
	return GameState{
		Home:       TeamRecord{Name: "HOME", Timeouts: r.InitialTimeouts},
		Away:       TeamRecord{Name: "AWAY", Timeouts: r.InitialTimeouts},
		Period:     1,
		GameClock:  r.PeriodLength,
		ShotClock:  r.ShotClock,
		IsRunning:  false,
		Possession: SideNone,
	}
}
