package display

import (
	"fmt"
	"time"

	"github.com/preston-bernstein/hoopsboard-service/internal/analysis"
	"github.com/preston-bernstein/hoopsboard-service/internal/domain/scoreboard"
	"github.com/preston-bernstein/hoopsboard-service/internal/timeutil"
)

// ShotClockWarning is the threshold under which the shot clock is highlighted.
const ShotClockWarning timeutil.Tenths = 5 * timeutil.TenthsPerSecond

// TeamView is one side of the board as shown.
type TeamView struct {
	Name          string `json:"name"`
	Score         int    `json:"score"`
	Fouls         int    `json:"fouls"`
	Timeouts      int    `json:"timeouts"`
	Bonus         bool   `json:"bonus"`
	DoubleBonus   bool   `json:"doubleBonus"`
	HasPossession bool   `json:"hasPossession"`
}

// LogLine is a formatted event log entry.
type LogLine struct {
	ID    string `json:"id"`
	Time  string `json:"time"`
	Event string `json:"event"`
	Score string `json:"score"`
}

// AnalysisView is the commentary panel.
type AnalysisView struct {
	Text       string `json:"text"`
	InProgress bool   `json:"inProgress"`
	Fallback   bool   `json:"fallback"`
}

// View is everything a display renders. It is derived and holds no state of its own.
type View struct {
	Home             TeamView     `json:"home"`
	Away             TeamView     `json:"away"`
	Period           int          `json:"period"`
	PeriodLabel      string       `json:"periodLabel"`
	GameClock        string       `json:"gameClock"`
	ShotClock        int64        `json:"shotClock"`
	ShotClockWarning bool         `json:"shotClockWarning"`
	Running          bool         `json:"running"`
	Log              []LogLine    `json:"log"`
	Analysis         AnalysisView `json:"analysis"`
}

// Build derives a View. entries are in append order and are shown newest first;
// timestamps are rendered in loc (time.Local when nil).
func Build(state scoreboard.GameState, entries []scoreboard.LogEntry, status analysis.Status, loc *time.Location) View {
	if loc == nil {
		loc = time.Local
	}

	v := View{
		Home:             team(state.Home, state.Possession == scoreboard.SideHome),
		Away:             team(state.Away, state.Possession == scoreboard.SideAway),
		Period:           state.Period,
		PeriodLabel:      fmt.Sprintf("P%d", state.Period),
		GameClock:        timeutil.FormatGameClock(state.GameClock),
		ShotClock:        state.ShotClock.WholeSeconds(),
		ShotClockWarning: state.ShotClock < ShotClockWarning,
		Running:          state.IsRunning,
		Log:              make([]LogLine, 0, len(entries)),
		Analysis: AnalysisView{
			InProgress: status.InProgress,
		},
	}

	for _, e := range scoreboard.Reversed(entries) {
		v.Log = append(v.Log, LogLine{
			ID:    e.ID,
			Time:  timeutil.FormatLogTime(e.Timestamp.In(loc)),
			Event: e.Event,
			Score: fmt.Sprintf("%d - %d", e.HomeScore, e.AwayScore),
		})
	}

	if status.Last != nil {
		v.Analysis.Text = status.Last.Text
		v.Analysis.Fallback = status.Last.Fallback
	}
	return v
}

func team(rec scoreboard.TeamRecord, possession bool) TeamView {
	return TeamView{
		Name:          rec.Name,
		Score:         rec.Score,
		Fouls:         rec.Fouls,
		Timeouts:      rec.Timeouts,
		Bonus:         rec.Bonus,
		DoubleBonus:   rec.DoubleBonus,
		HasPossession: possession,
	}
}
