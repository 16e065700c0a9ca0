package engine

import (
	"fadetoe/experiments/metrics"
	"fadetoe/searcher"
)

// Player is either side of a game: a search agent or a human
type Player interface {
	FindMove(state searcher.State) (searcher.Action, error)
	// Update is called with every move played, including the player's own
	Update(action searcher.Action)
}

type Engine interface {
	// Run plays the game till it ends and returns its metrics
	Run() (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}

// metered players expose the metrics of their last search
type metered interface {
	Metrics() metrics.SearchMetric
}
