package searcher

import (
	"fmt"
	"math"

	"github.com/samber/lo"
	"golang.org/x/exp/rand"
)

// MaxCutoff bounds a random playout when no cutoff is configured
const MaxCutoff = 1000

// Evaluator supplies a prior for every legal action of a position, and an
// estimate in [-1, 1] of the outcome for the player to move.
type Evaluator interface {
	Evaluate(state State) (priors []Prior, value float64)
}

type EvaluatorFunc func(state State) ([]Prior, float64)

func (f EvaluatorFunc) Evaluate(state State) ([]Prior, float64) {
	return f(state)
}

// Uniform spreads probability evenly over the legal actions and always
// estimates a draw.
func Uniform() Evaluator {
	return EvaluatorFunc(uniformPriors)
}

func uniformPriors(state State) ([]Prior, float64) {
	actions := state.LegalActions()
	priors := make([]Prior, len(actions))
	for i, action := range actions {
		priors[i] = Prior{Action: action, Probability: 1.0 / float64(len(actions))}
	}
	return priors, Draw
}

// Randomized draws an independent prior in [0, 1) for every legal action, which
// varies the order actions are explored in from one search to the next.
func Randomized(rng *rand.Rand) Evaluator {
	return EvaluatorFunc(func(state State) ([]Prior, float64) {
		actions := state.LegalActions()
		priors := make([]Prior, len(actions))
		for i, action := range actions {
			priors[i] = Prior{Action: action, Probability: rng.Float64()}
		}
		return priors, Draw
	})
}

type rolloutEvaluator struct {
	rng    *rand.Rand
	cutoff int
}

// Rollout uses uniform priors and estimates the value with one random playout
// of at most cutoff moves. A cutoff of 0 or less means MaxCutoff.
func Rollout(rng *rand.Rand, cutoff int) Evaluator {
	if cutoff <= 0 {
		cutoff = MaxCutoff
	}
	return rolloutEvaluator{rng: rng, cutoff: cutoff}
}

func (r rolloutEvaluator) Evaluate(state State) ([]Prior, float64) {
	priors, _ := uniformPriors(state)
	return priors, rollout(state.Clone(), r.cutoff, r.rng)
}

// rollout plays random moves till the game is over or cutoff moves were
// played, and scores the result for the player to move at the start.
func rollout(state State, cutoff int, rng *rand.Rand) float64 {
	player := state.Player()
	depth := 0
	moves := state.LegalActions()
	for len(moves) > 0 && depth < cutoff {
		move := moves[rng.Intn(len(moves))] // Random rollout policy
		state.Play(move)
		moves = state.LegalActions()
		depth++
	}

	ended, winner := state.Outcome()
	if !ended { // Cut off before the game was decided
		return Draw
	}
	return rewarder(winner)(player)
}

// NewEvaluator builds one of the reference evaluators by name.
func NewEvaluator(name string, rng *rand.Rand, cutoff int) (Evaluator, error) {
	switch name {
	case "uniform":
		return Uniform(), nil
	case "random":
		return Randomized(rng), nil
	case "rollout":
		return Rollout(rng, cutoff), nil
	}
	return nil, fmt.Errorf("unknown evaluator %q", name)
}

// checkContract verifies the evaluator covered exactly the legal actions of
// the position with well-formed numbers.
func checkContract(state State, priors []Prior, value float64) error {
	if math.IsNaN(value) || value < Loss || value > Win {
		return fmt.Errorf("%w: value %v outside [%v, %v]", ErrContractViolation, value, Loss, Win)
	}
	for _, prior := range priors {
		if p := prior.Probability; math.IsNaN(p) || p < 0 || p > 1 {
			return fmt.Errorf("%w: prior %v for action %d outside [0, 1]", ErrContractViolation, p, prior.Action)
		}
	}

	actions := lo.Map(priors, func(prior Prior, _ int) Action { return prior.Action })
	if duplicates := lo.FindDuplicates(actions); len(duplicates) > 0 {
		return fmt.Errorf("%w: duplicate priors for actions %v", ErrContractViolation, duplicates)
	}
	illegal, missing := lo.Difference(actions, state.LegalActions())
	if len(illegal) > 0 {
		return fmt.Errorf("%w: priors for illegal actions %v", ErrContractViolation, illegal)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: no priors for legal actions %v", ErrContractViolation, missing)
	}
	return nil
}
