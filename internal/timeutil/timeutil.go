package timeutil

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// LogTimeLayout is the wall-clock layout used for event log timestamps (HH:MM:SS).
const LogTimeLayout = "15:04:05"

// TenthsPerSecond is the resolution of every game clock.
const TenthsPerSecond = 10

// Tenth is the tick quantum expressed as a duration.
const Tenth = time.Second / TenthsPerSecond

// Tenths counts tenths of a second. Clocks are stored as integers so repeated
// 0.1 s decrements never accumulate floating point error.
type Tenths int64

// MaxTenths bounds clock values and clock adjustments.
const MaxTenths Tenths = math.MaxInt32

// ErrOutOfRange reports a seconds value that is not finite or exceeds MaxTenths.
var ErrOutOfRange = errors.New("timeutil: seconds out of range")

// ParseSeconds converts fractional seconds to tenths, rounding to the nearest
// tenth. NaN, infinities and magnitudes beyond MaxTenths are rejected.
func ParseSeconds(seconds float64) (Tenths, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, ErrOutOfRange
	}
	t := math.Round(seconds * TenthsPerSecond)
	if math.Abs(t) > float64(MaxTenths) {
		return 0, ErrOutOfRange
	}
	return Tenths(t), nil
}

// FromSeconds converts fractional seconds to tenths, rounding to the nearest
// tenth and saturating at ±MaxTenths. NaN converts to zero.
func FromSeconds(seconds float64) Tenths {
	if math.IsNaN(seconds) {
		return 0
	}
	t := math.Round(seconds * TenthsPerSecond)
	switch {
	case t > float64(MaxTenths):
		return MaxTenths
	case t < -float64(MaxTenths):
		return -MaxTenths
	}
	return Tenths(t)
}

// FromDuration converts a duration to tenths, truncating anything finer.
func FromDuration(d time.Duration) Tenths {
	return Tenths(d / Tenth)
}

// Seconds returns the value as fractional seconds.
func (t Tenths) Seconds() float64 {
	return float64(t) / TenthsPerSecond
}

// WholeSeconds returns the value floored to whole seconds.
func (t Tenths) WholeSeconds() int64 {
	if t < 0 {
		return 0
	}
	return int64(t) / TenthsPerSecond
}

// Duration returns the value as a time.Duration.
func (t Tenths) Duration() time.Duration {
	return time.Duration(t) * Tenth
}

// MarshalJSON encodes the value as seconds with one decimal place.
func (t Tenths) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(t.Seconds(), 'f', 1, 64)), nil
}

// UnmarshalJSON decodes a seconds value.
func (t *Tenths) UnmarshalJSON(data []byte) error {
	seconds, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("timeutil: invalid seconds %q: %w", string(data), err)
	}
	v, err := ParseSeconds(seconds)
	if err != nil {
		return fmt.Errorf("timeutil: invalid seconds %q: %w", string(data), err)
	}
	*t = v
	return nil
}

// FormatMinSec renders the value as M:SS floored to whole seconds.
func FormatMinSec(t Tenths) string {
	whole := t.WholeSeconds()
	return fmt.Sprintf("%d:%02d", whole/60, whole%60)
}

// FormatGameClock renders a game clock the way a scoreboard shows it:
// M:SS for a minute or more, S.t (seconds and tenths) under a minute.
func FormatGameClock(t Tenths) string {
	if t < 0 {
		t = 0
	}
	if t < 60*TenthsPerSecond {
		return fmt.Sprintf("%d.%d", int64(t)/TenthsPerSecond, int64(t)%TenthsPerSecond)
	}
	return FormatMinSec(t)
}

// FormatLogTime formats an event timestamp as HH:MM:SS in its current location.
func FormatLogTime(t time.Time) string {
	return t.Format(LogTimeLayout)
}
