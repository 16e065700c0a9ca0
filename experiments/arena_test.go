package experiments

import (
	"context"
	"path/filepath"
	"testing"

	"fadetoe/experiments/metrics"
	"fadetoe/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func smallConfig(output string) Config {
	return Config{
		Name:    "test",
		Games:   4,
		Workers: 2,
		Seed:    1,
		Output:  output,
		Agents: [2]metrics.AgentConfig{
			{ID: 1, Evaluator: "random", Exploration: 1, Playouts: 30},
			{ID: 2, Evaluator: "uniform", Exploration: 1, Playouts: 30, Temperature: 1},
		},
		BoardOptions: []game.Option{game.WithMaxPlies(20)},
	}
}

func TestRunArena(t *testing.T) {
	t.Run("summary adds up", func(t *testing.T) {
		summary, err := RunArena(context.Background(), smallConfig(""))
		require.NoError(t, err)
		require.Equal(t, 4, summary.Games)
		require.Equal(t, summary.Games, summary.Wins[0]+summary.Wins[1]+summary.Draws)
		require.LessOrEqual(t, summary.FirstMoverWins, summary.Wins[0]+summary.Wins[1])
		require.Empty(t, summary.Dir)
	})

	t.Run("writes records", func(t *testing.T) {
		root := t.TempDir()
		summary, err := RunArena(context.Background(), smallConfig(root))
		require.NoError(t, err)
		require.Equal(t, filepath.Join(root, "test"), filepath.Dir(summary.Dir))
		for _, file := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv"} {
			require.FileExists(t, filepath.Join(summary.Dir, file))
		}
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := RunArena(ctx, smallConfig(""))
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("bad evaluator", func(t *testing.T) {
		config := smallConfig("")
		config.Agents[1].Evaluator = "neural"
		_, err := RunArena(context.Background(), config)
		require.Error(t, err)
	})

	t.Run("no games", func(t *testing.T) {
		config := smallConfig("")
		config.Games = 0
		_, err := RunArena(context.Background(), config)
		require.Error(t, err)
	})
}

func TestRunGameAlternatesFirstMover(t *testing.T) {
	config := smallConfig("")
	even, err := runGame(config, 0)
	require.NoError(t, err)
	odd, err := runGame(config, 1)
	require.NoError(t, err)

	require.Equal(t, "X", even.game.StartingPlayer)
	require.Equal(t, "O", odd.game.StartingPlayer)
	require.Len(t, odd.moves, odd.game.TotalMoves)
	require.NotEmpty(t, odd.game.ID)
}

func TestSummarize(t *testing.T) {
	record := func(starting, winner string) result {
		return result{game: metrics.GameRecord{GameMetric: metrics.GameMetric{StartingPlayer: starting, Winner: winner}}}
	}
	summary := summarize([]result{
		record("X", "X"),
		record("O", "X"),
		record("O", "O"),
		record("X", ""),
	})
	require.Equal(t, [2]int{2, 1}, summary.Wins)
	require.Equal(t, 1, summary.Draws)
	require.Equal(t, 2, summary.FirstMoverWins)
}

func TestNewAgent(t *testing.T) {
	a, err := NewAgent(metrics.AgentConfig{Evaluator: "rollout", Playouts: 20, RolloutCutoff: 5}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	board := game.NewBoard()
	action, err := a.FindMove(board)
	require.NoError(t, err)
	require.Contains(t, board.LegalActions(), action)
}
