package engine

import (
	"fmt"
	"time"

	"fadetoe/experiments/metrics"
	"fadetoe/game"

	"github.com/rs/zerolog/log"
)

type Option func(e *localEngine)

type localEngine struct {
	id       string
	players  [2]Player // X, O
	board    *game.Board
	renderer *game.Renderer
}

// WithRenderer draws the board before the first move and after every move
func WithRenderer(r *game.Renderer) Option {
	return func(e *localEngine) {
		e.renderer = r
	}
}

func WithID(id string) Option {
	return func(e *localEngine) {
		e.id = id
	}
}

// LocalEngine plays a game on board. players[0] plays X and players[1] plays O,
// whichever of them moves first.
func LocalEngine(players [2]Player, board *game.Board, options ...Option) *localEngine {
	if players[0] == nil || players[1] == nil {
		panic("both players are required")
	}
	e := &localEngine{
		players: players,
		board:   board,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *localEngine) player(mark game.Mark) Player {
	if mark == game.X {
		return e.players[0]
	}
	return e.players[1]
}

func (e *localEngine) Run() (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		ID:             e.id,
		StartingPlayer: e.board.Player(),
		StartTime:      time.Now(),
	}
	moveMetrics := []metrics.MoveMetric{}

	log.Info().Str("game", e.id).Msgf("player %s is starting", e.board.Player())
	if err := e.render(); err != nil {
		return gameMetric, moveMetrics, err
	}

	for !e.board.Ended() {
		mover := e.board.Turn()
		current := e.player(mover)

		action, err := current.FindMove(e.board.Copy())
		if err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("player %s on ply %d: %w", mover, e.board.Ply()+1, err)
		}
		if err := e.board.Apply(action); err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("player %s on ply %d: %w", mover, e.board.Ply()+1, err)
		}
		for _, p := range e.players {
			p.Update(action)
		}

		moveMetric := metrics.MoveMetric{
			Step:   e.board.Ply(),
			Player: mover.String(),
			Move:   int(action),
		}
		if m, ok := current.(metered); ok {
			moveMetric.SearchMetric = m.Metrics()
		}
		moveMetrics = append(moveMetrics, moveMetric)

		log.Debug().Str("game", e.id).Int("ply", e.board.Ply()).Msgf("%s plays %s", mover, game.FormatMove(action))
		if err := e.render(); err != nil {
			return gameMetric, moveMetrics, err
		}
	}

	_, winner := e.board.Outcome()
	gameMetric.Winner = winner
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = e.board.Ply()

	if winner == "" {
		log.Info().Str("game", e.id).Msgf("game drawn after %d moves", e.board.Ply())
	} else {
		log.Info().Str("game", e.id).Msgf("game won by %s after %d moves", winner, e.board.Ply())
	}
	return gameMetric, moveMetrics, nil
}

func (e *localEngine) render() error {
	if e.renderer == nil {
		return nil
	}
	return e.renderer.Render(e.board)
}
