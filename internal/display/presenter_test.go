package display

import (
	"testing"
	"time"

	"github.com/preston-bernstein/hoopsboard-service/internal/analysis"
	"github.com/preston-bernstein/hoopsboard-service/internal/domain/scoreboard"
)

type boardStub struct {
	state   scoreboard.GameState
	entries []scoreboard.LogEntry
}

func (b boardStub) Board() (scoreboard.GameState, []scoreboard.LogEntry) {
	return b.state, b.entries
}

type statusStub analysis.Status

func (s statusStub) Status() analysis.Status { return analysis.Status(s) }

func TestPresenterViewCombinesSources(t *testing.T) {
	at := time.Date(2024, 3, 1, 20, 15, 0, 0, time.UTC)
	state := scoreboard.InitialState(scoreboard.DefaultRules())
	state.Home.Score = 2
	first := scoreboard.NewLogEntry("a", at, "HOME +2 points", state)
	state.Home.Score = 4
	second := scoreboard.NewLogEntry("b", at, "HOME +2 points", state)
	board := boardStub{state: state, entries: []scoreboard.LogEntry{first, second}}
	p := NewPresenter(board, statusStub{InProgress: true}, time.UTC)

	v := p.View()
	if v.Home.Score != 4 {
		t.Fatalf("expected home score 4, got %d", v.Home.Score)
	}
	if len(v.Log) != 2 || v.Log[0].ID != "b" {
		t.Fatalf("expected newest log line first, got %+v", v.Log)
	}
	if !v.Analysis.InProgress {
		t.Fatalf("expected analysis in progress")
	}
}

func TestPresenterWithoutAnalysis(t *testing.T) {
	p := NewPresenter(boardStub{state: scoreboard.InitialState(scoreboard.DefaultRules())}, nil, nil)
	v := p.View()
	if v.Analysis.InProgress || v.Analysis.Text != "" {
		t.Fatalf("expected empty analysis panel, got %+v", v.Analysis)
	}
}
