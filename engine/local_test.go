package engine

import (
	"bytes"
	"errors"
	"testing"

	"fadetoe/game"
	"fadetoe/searcher"
	"fadetoe/searcher/agent"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

// scripted plays a fixed list of moves and records every update
type scripted struct {
	moves   []searcher.Action
	updates []searcher.Action
	err     error
}

func (s *scripted) FindMove(state searcher.State) (searcher.Action, error) {
	if s.err != nil {
		return 0, s.err
	}
	move := s.moves[0]
	s.moves = s.moves[1:]
	return move, nil
}

func (s *scripted) Update(action searcher.Action) {
	s.updates = append(s.updates, action)
}

func TestLocalEngineRun(t *testing.T) {
	t.Run("scripted win", func(t *testing.T) {
		x := &scripted{moves: []searcher.Action{0, 1, 2}}
		o := &scripted{moves: []searcher.Action{3, 4}}

		gameMetric, moveMetrics, err := LocalEngine([2]Player{x, o}, game.NewBoard(), WithID("g1")).Run()
		require.NoError(t, err)
		require.Equal(t, "g1", gameMetric.ID)
		require.Equal(t, "X", gameMetric.StartingPlayer)
		require.Equal(t, "X", gameMetric.Winner)
		require.Equal(t, 5, gameMetric.TotalMoves)
		require.Len(t, moveMetrics, 5)
		require.Equal(t, "O", moveMetrics[1].Player)
		require.Equal(t, 3, moveMetrics[1].Move)

		played := []searcher.Action{0, 3, 1, 4, 2}
		require.Equal(t, played, x.updates)
		require.Equal(t, played, o.updates)
	})

	t.Run("O moves first", func(t *testing.T) {
		x := &scripted{moves: []searcher.Action{3, 4}}
		o := &scripted{moves: []searcher.Action{0, 1, 2}}

		gameMetric, _, err := LocalEngine([2]Player{x, o}, game.NewBoard(game.WithFirstPlayer(game.O))).Run()
		require.NoError(t, err)
		require.Equal(t, "O", gameMetric.StartingPlayer)
		require.Equal(t, "O", gameMetric.Winner)
	})

	t.Run("illegal move", func(t *testing.T) {
		x := &scripted{moves: []searcher.Action{0}}
		o := &scripted{moves: []searcher.Action{0}}

		_, _, err := LocalEngine([2]Player{x, o}, game.NewBoard()).Run()
		require.ErrorIs(t, err, game.ErrIllegalMove)
	})

	t.Run("player error", func(t *testing.T) {
		failure := errors.New("resigned")
		x := &scripted{err: failure}
		o := &scripted{}

		_, _, err := LocalEngine([2]Player{x, o}, game.NewBoard()).Run()
		require.ErrorIs(t, err, failure)
	})

	t.Run("renders every position", func(t *testing.T) {
		var buf bytes.Buffer
		x := &scripted{moves: []searcher.Action{0, 1, 2}}
		o := &scripted{moves: []searcher.Action{3, 4}}
		renderer := game.NewRenderer(&buf, false, termenv.WithProfile(termenv.Ascii))

		_, _, err := LocalEngine([2]Player{x, o}, game.NewBoard(), WithRenderer(renderer)).Run()
		require.NoError(t, err)
		require.Equal(t, 6*2, bytes.Count(buf.Bytes(), []byte("---|---|---")))
	})

	t.Run("agents finish a game", func(t *testing.T) {
		players := [2]Player{
			agent.NewEvaluationAgent(searcher.NewMCTS(searcher.WithPlayouts(50), searcher.WithMetrics())),
			agent.NewEvaluationAgent(searcher.NewMCTS(searcher.WithPlayouts(50), searcher.WithMetrics())),
		}

		gameMetric, moveMetrics, err := LocalEngine(players, game.NewBoard()).Run()
		require.NoError(t, err)
		require.Equal(t, gameMetric.TotalMoves, len(moveMetrics))
		require.LessOrEqual(t, gameMetric.TotalMoves, game.DefaultMaxPlies)
		for _, mm := range moveMetrics {
			require.Equal(t, 50, mm.Episodes)
		}
	})

	t.Run("requires both players", func(t *testing.T) {
		require.Panics(t, func() {
			LocalEngine([2]Player{&scripted{}, nil}, game.NewBoard())
		})
	})
}
