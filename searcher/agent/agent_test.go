package agent

import (
	"testing"

	"fadetoe/game"
	"fadetoe/searcher"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestEvaluationAgent(t *testing.T) {
	t.Run("plays the winning square", func(t *testing.T) {
		board := game.NewBoard()
		for _, action := range []searcher.Action{0, 3, 1, 4} {
			require.NoError(t, board.Apply(action))
		}

		a := NewEvaluationAgent(searcher.NewMCTS(searcher.WithMetrics()))
		action, err := a.FindMove(board)
		require.NoError(t, err)
		require.Equal(t, searcher.Action(2), action)
		require.Equal(t, searcher.DefaultPlayouts, a.Metrics().Episodes)
	})

	t.Run("update advances the tree", func(t *testing.T) {
		mcts := searcher.NewMCTS(searcher.WithPlayouts(300))
		a := NewEvaluationAgent(mcts)
		board := game.NewBoard()

		action, err := a.FindMove(board)
		require.NoError(t, err)
		visits := 0
		for _, stats := range mcts.Stats() {
			if stats.Action == action {
				visits = stats.Visits
			}
		}

		a.Update(action)
		require.Equal(t, visits, mcts.RootVisits())
	})
}

func TestTrainingAgent(t *testing.T) {
	t.Run("zero temperature plays the most visited move", func(t *testing.T) {
		board := game.NewBoard()
		for _, action := range []searcher.Action{0, 3, 1, 4} {
			require.NoError(t, board.Apply(action))
		}

		a := NewTrainingAgent(searcher.NewMCTS(), 0, rand.New(rand.NewSource(1)))
		action, err := a.FindMove(board)
		require.NoError(t, err)
		require.Equal(t, searcher.Action(2), action)
	})

	t.Run("samples a legal move", func(t *testing.T) {
		board := game.NewBoard()
		a := NewTrainingAgent(searcher.NewMCTS(searcher.WithPlayouts(100)), 1.0, rand.New(rand.NewSource(1)))

		action, err := a.FindMove(board)
		require.NoError(t, err)
		require.Contains(t, board.LegalActions(), action)
	})

	t.Run("propagates search errors", func(t *testing.T) {
		board := game.NewBoard()
		for _, action := range []searcher.Action{0, 3, 1, 4, 2} {
			require.NoError(t, board.Apply(action))
		}

		a := NewTrainingAgent(searcher.NewMCTS(), 1.0, rand.New(rand.NewSource(1)))
		_, err := a.FindMove(board)
		require.ErrorIs(t, err, searcher.ErrNoLegalMoves)
	})
}

func TestAdjustTemperature(t *testing.T) {
	policy := map[searcher.Action]float64{0: 0.6, 1: 0.3, 2: 0.1}

	t.Run("unit temperature keeps the distribution", func(t *testing.T) {
		adjusted := adjustTemperature(policy, 1.0)
		for action, p := range policy {
			require.InDelta(t, p, adjusted[action], 1e-9)
		}
	})

	t.Run("low temperature sharpens", func(t *testing.T) {
		adjusted := adjustTemperature(policy, 0.5)
		require.Greater(t, adjusted[0], policy[0])
		require.Less(t, adjusted[2], policy[2])

		sum := 0.0
		for _, p := range adjusted {
			sum += p
		}
		require.InDelta(t, 1.0, sum, 1e-9)
	})

	t.Run("tiny temperature keeps the most visited move", func(t *testing.T) {
		spread := map[searcher.Action]float64{0: 0.2, 1: 0.25, 2: 0.15, 3: 0.2, 4: 0.2}
		adjusted := adjustTemperature(spread, 0.001)

		require.InDelta(t, 1.0, adjusted[1], 1e-9)
		for _, draw := range []float64{0, 0.5, 0.999} {
			require.Equal(t, searcher.Action(1), sample(adjusted, draw, 0), "draw %v", draw)
		}
	})

	t.Run("empty policy", func(t *testing.T) {
		require.Empty(t, adjustTemperature(map[searcher.Action]float64{}, 0.5))
	})
}

func TestSample(t *testing.T) {
	policy := map[searcher.Action]float64{4: 0.5, 1: 0.25, 7: 0.25}

	tests := []struct {
		draw     float64
		expected searcher.Action
	}{
		{0.0, 1},
		{0.3, 4},
		{0.74, 4},
		{0.8, 7},
		{1.0, 7}, // Rounding fallback
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, sample(policy, tt.draw, 0), "draw %v", tt.draw)
	}

	require.Equal(t, searcher.Action(3), sample(nil, 0.5, 3))
}
