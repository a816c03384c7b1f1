package scoreboard

import (
	"strings"
	"time"

	"github.com/preston-bernstein/hoopsboard-service/internal/timeutil"
)

// Side identifies a team, or nobody when used for possession.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
	SideNone Side = "none"
)

// ParseSide accepts "home", "away" and "none" (case-insensitive); "" also means none.
func ParseSide(raw string) (Side, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(SideHome):
		return SideHome, true
	case string(SideAway):
		return SideAway, true
	case string(SideNone), "", "null":
		return SideNone, true
	default:
		return "", false
	}
}

// IsTeam reports whether the side names one of the two teams.
func (s Side) IsTeam() bool {
	return s == SideHome || s == SideAway
}

// TeamRecord is one team's line on the board. Bonus and DoubleBonus are derived
// from Fouls and only ever written together with it.
type TeamRecord struct {
	Name        string `json:"name"`
	Score       int    `json:"score"`
	Fouls       int    `json:"fouls"`
	Timeouts    int    `json:"timeouts"`
	Bonus       bool   `json:"bonus"`
	DoubleBonus bool   `json:"doubleBonus"`
}

// GameState is an immutable snapshot of the board. Transitions return a new value.
type GameState struct {
	Home       TeamRecord      `json:"home"`
	Away       TeamRecord      `json:"away"`
	Period     int             `json:"period"`
	GameClock  timeutil.Tenths `json:"gameClock"`
	ShotClock  timeutil.Tenths `json:"shotClock"`
	IsRunning  bool            `json:"isRunning"`
	Possession Side            `json:"possession"`
}

// Team returns the record for a team side. Any other side yields the zero record.
func (s GameState) Team(side Side) TeamRecord {
	switch side {
	case SideHome:
		return s.Home
	case SideAway:
		return s.Away
	default:
		return TeamRecord{}
	}
}

func (s GameState) withTeam(side Side, rec TeamRecord) GameState {
	switch side {
	case SideHome:
		s.Home = rec
	case SideAway:
		s.Away = rec
	}
	return s
}

// ClockExpired reports whether either clock has run out.
func (s GameState) ClockExpired() bool {
	return s.GameClock <= 0 || s.ShotClock <= 0
}

// LogEntry is one immutable line of the event log with the score when it happened.
type LogEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Event     string    `json:"event"`
	HomeScore int       `json:"homeScore"`
	AwayScore int       `json:"awayScore"`
}

// NewLogEntry snapshots the score of state alongside the event text.
func NewLogEntry(id string, at time.Time, event string, state GameState) LogEntry {
	return LogEntry{
		ID:        id,
		Timestamp: at,
		Event:     event,
		HomeScore: state.Home.Score,
		AwayScore: state.Away.Score,
	}
}
