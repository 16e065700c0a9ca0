package agent

import (
	"fadetoe/searcher"
)

type Agent interface {
	// FindMove returns the move to play in state. state is left untouched.
	FindMove(state searcher.State) (searcher.Action, error)
	// Update tells the agent which move was actually played, by either side
	Update(action searcher.Action)
}
