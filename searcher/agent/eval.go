package agent

import (
	"fadetoe/experiments/metrics"
	"fadetoe/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns an agent that always plays the most visited move
func NewEvaluationAgent(mcts *searcher.MCTS) *evaluationAgent {
	return &evaluationAgent{mcts: mcts}
}

func (a *evaluationAgent) FindMove(state searcher.State) (searcher.Action, error) {
	return a.mcts.ChooseMove(state)
}

func (a *evaluationAgent) Update(action searcher.Action) {
	a.mcts.AdvanceRoot(action)
}

// Metrics returns the metrics of the last search
func (a *evaluationAgent) Metrics() metrics.SearchMetric {
	return a.mcts.LastMetrics()
}
