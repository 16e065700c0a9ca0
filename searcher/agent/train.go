package agent

import (
	"math"
	"slices"

	"fadetoe/experiments/metrics"
	"fadetoe/searcher"

	"github.com/samber/lo"
	"golang.org/x/exp/rand"
)

type trainingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	rng         *rand.Rand
}

// NewTrainingAgent returns an agent for self-play that samples its move from
// the root visit distribution sharpened by temperature. A temperature of 0
// plays the most visited move.
func NewTrainingAgent(mcts *searcher.MCTS, temperature float64, rng *rand.Rand) *trainingAgent {
	return &trainingAgent{mcts: mcts, temperature: temperature, rng: rng}
}

func (a *trainingAgent) FindMove(state searcher.State) (searcher.Action, error) {
	best, err := a.mcts.ChooseMove(state)
	if err != nil {
		return 0, err
	}
	if a.temperature <= 0 {
		return best, nil
	}
	policy := adjustTemperature(a.mcts.Policy(), a.temperature)
	return sample(policy, a.rng.Float64(), best), nil
}

func (a *trainingAgent) Update(action searcher.Action) {
	a.mcts.AdvanceRoot(action)
}

func (a *trainingAgent) Metrics() metrics.SearchMetric {
	return a.mcts.LastMetrics()
}

func adjustTemperature(policy map[searcher.Action]float64, temperature float64) map[searcher.Action]float64 {
	// Scale by the largest probability first so low temperatures cannot underflow
	// every weight to zero, the most visited move keeps weight 1
	maxProb := 0.0
	for _, prob := range policy {
		maxProb = max(maxProb, prob)
	}
	adjusted := make(map[searcher.Action]float64, len(policy))
	if maxProb == 0 {
		return adjusted
	}

	// Compute temperature-adjusted move probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	for action, visits := range policy {
		prob := math.Pow(visits/maxProb, exponent)
		sum += prob
		adjusted[action] = prob
	}
	// Normalize
	for action := range adjusted {
		adjusted[action] /= sum
	}
	return adjusted
}

// sample walks the actions in ascending order so that a given draw always
// picks the same move
func sample(policy map[searcher.Action]float64, draw float64, fallback searcher.Action) searcher.Action {
	actions := lo.Keys(policy)
	slices.Sort(actions)
	cumulative := 0.0
	for _, action := range actions {
		cumulative += policy[action]
		if draw < cumulative {
			return action
		}
	}
	if len(actions) == 0 {
		return fallback
	}
	return actions[len(actions)-1] // Fallback in case of rounding errors
}
