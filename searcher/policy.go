package searcher

import "math"

// Hyperparameters for MCTS

const DefaultExploration = 1.0 // c_puct, weight of the prior-driven exploration term

const DefaultPlayouts = 2000

type puct struct {
	numerator float64
}

func newPUCT(c float64, N int) *puct {
	if N < 0 {
		panic("N cannot be negative")
	}
	return &puct{numerator: c * math.Sqrt(float64(N))}
}

// exploration returns U = c*P*sqrt(N)/(1+n)
func (p puct) exploration(prior float64, n int) float64 {
	if n < 0 {
		panic("n cannot be negative")
	}
	return p.numerator * prior / (1 + float64(n))
}

// evaluate returns PUCT = q + U
func (p puct) evaluate(q float64, prior float64, n int) float64 {
	return q + p.exploration(prior, n)
}
