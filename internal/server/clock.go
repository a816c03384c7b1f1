package server

import "context"

// Clock is the part of the scoreboard service the server manages: the game
// clock ticker must be stopped before the process exits.
type Clock interface {
	Running() bool
	Shutdown(ctx context.Context) error
}
