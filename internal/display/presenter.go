package display

import (
	"time"

	"github.com/preston-bernstein/hoopsboard-service/internal/analysis"
	"github.com/preston-bernstein/hoopsboard-service/internal/domain/scoreboard"
)

// BoardReader supplies the board and its whole log in append order.
type BoardReader interface {
	Board() (scoreboard.GameState, []scoreboard.LogEntry)
}

// StatusReader supplies the analysis panel state.
type StatusReader interface {
	Status() analysis.Status
}

// Presenter derives Views from live sources.
type Presenter struct {
	board    BoardReader
	analysis StatusReader
	loc      *time.Location
}

// NewPresenter builds a Presenter. analysis may be nil.
func NewPresenter(board BoardReader, analysis StatusReader, loc *time.Location) *Presenter {
	return &Presenter{board: board, analysis: analysis, loc: loc}
}

// View renders the current board.
func (p *Presenter) View() View {
	state, entries := p.board.Board()
	var status analysis.Status
	if p.analysis != nil {
		status = p.analysis.Status()
	}
	return Build(state, entries, status, p.loc)
}
