package analysis

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/hoopsboard-service/internal/domain/scoreboard"
	"github.com/preston-bernstein/hoopsboard-service/internal/timeutil"
)

// RecentEvents is how many log entries are shared with the provider.
const RecentEvents = 5

// BuildPrompt renders the commentary request for a board. recent is in
// append order; only the last RecentEvents entries are used. Nothing else
// about the session is included.
func BuildPrompt(state scoreboard.GameState, recent []scoreboard.LogEntry) string {
	if len(recent) > RecentEvents {
		recent = recent[len(recent)-RecentEvents:]
	}

	var b strings.Builder
	b.WriteString("As a basketball commentator, provide a 2-sentence expert analysis of the current game state.\n")
	fmt.Fprintf(&b, "Home Team (%s): %d\n", state.Home.Name, state.Home.Score)
	fmt.Fprintf(&b, "Away Team (%s): %d\n", state.Away.Name, state.Away.Score)
	fmt.Fprintf(&b, "Period: %d\n", state.Period)
	fmt.Fprintf(&b, "Time Remaining: %s\n", timeutil.FormatMinSec(state.GameClock))
	b.WriteString("Recent Events (Log):\n")
	for _, e := range recent {
		b.WriteString(e.Event)
		b.WriteByte('\n')
	}
	b.WriteString("\nMake the tone professional, like ESPN or TNT.")
	return b.String()
}
