package testutil

import (
	"time"

	"github.com/jonboulle/clockwork"

	appscoreboard "github.com/preston-bernstein/hoopsboard-service/internal/app/scoreboard"
	"github.com/preston-bernstein/hoopsboard-service/internal/domain/scoreboard"
	"github.com/preston-bernstein/hoopsboard-service/internal/store"
)

// GameStart is the wall-clock time stamped on log entries by NewBoard.
var GameStart = time.Date(2024, 3, 1, 19, 30, 0, 0, time.UTC)

// Board bundles a scoreboard service with its store and a fake ticker clock.
type Board struct {
	Store   *store.MemoryStore
	Service *appscoreboard.Service
	Clock   *clockwork.FakeClock
}

// NewBoard builds a scoreboard service on default rules, a fixed log clock,
// sequential log ids and a fake ticker clock.
func NewBoard(opts ...appscoreboard.Option) Board {
	clock := clockwork.NewFakeClock()
	ms := store.NewMemoryStore(scoreboard.DefaultRules(),
		store.WithClock(NowAt(GameStart)),
		store.WithIDs(SequentialIDs("e")),
	)
	opts = append([]appscoreboard.Option{appscoreboard.WithClock(clock)}, opts...)
	return Board{
		Store:   ms,
		Service: appscoreboard.NewService(ms, nil, nil, opts...),
		Clock:   clock,
	}
}
