package experiments

import (
	"context"
	"fmt"
	"slices"
	"sync/atomic"

	"fadetoe/engine"
	"fadetoe/experiments/metrics"
	"fadetoe/game"
	"fadetoe/searcher"
	"fadetoe/searcher/agent"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// Config describes a match between two agents. Agents[0] plays X and
// Agents[1] plays O, the side moving first alternates between games.
type Config struct {
	Name         string
	Games        int
	Workers      int
	Seed         uint64
	Output       string // CSV files are skipped when empty
	Agents       [2]metrics.AgentConfig
	BoardOptions []game.Option
}

type Summary struct {
	Games          int
	Wins           [2]int // Indexed like Config.Agents
	Draws          int
	FirstMoverWins int
	Dir            string // Where the records were written
}

type result struct {
	game  metrics.GameRecord
	moves []metrics.MoveRecord
}

func RunArena(ctx context.Context, config Config) (Summary, error) {
	if config.Games < 1 {
		return Summary{}, fmt.Errorf("arena needs at least one game, got %d", config.Games)
	}
	workers := max(config.Workers, 1)

	log.Info().Msgf("starting %s arena: %d games, agent1=%+v, agent2=%+v", config.Name, config.Games, config.Agents[0], config.Agents[1])

	results := make([]result, config.Games)
	var completed atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < config.Games; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := runGame(config, i)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			results[i] = r
			log.Info().Msgf("completed game %d of %d with winner: %q", completed.Add(1), config.Games, r.game.Winner)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	summary := summarize(results)
	log.Info().Msgf("completed %s arena: %+v", config.Name, summary)

	if config.Output == "" {
		return summary, nil
	}
	dir, err := write(config, results)
	if err != nil {
		return summary, err
	}
	summary.Dir = dir
	return summary, nil
}

// runGame plays game i. Odd games are opened by O so both agents move first
// equally often.
func runGame(config Config, i int) (result, error) {
	first := game.X
	if i%2 == 1 {
		first = game.O
	}
	seed := config.Seed + uint64(i)*2
	players := [2]engine.Player{}
	for j, agentConfig := range config.Agents {
		a, err := NewAgent(agentConfig, rand.New(rand.NewSource(seed+uint64(j))))
		if err != nil {
			return result{}, err
		}
		players[j] = a
	}

	board := game.NewBoard(append(slices.Clone(config.BoardOptions), game.WithFirstPlayer(first))...)
	id := uuid.NewString()
	gameMetric, moveMetrics, err := engine.LocalEngine(players, board, engine.WithID(id)).Run()
	if err != nil {
		return result{}, err
	}

	r := result{
		game: metrics.GameRecord{
			AgentX:     config.Agents[0].ID,
			AgentO:     config.Agents[1].ID,
			GameMetric: gameMetric,
		},
		moves: make([]metrics.MoveRecord, 0, len(moveMetrics)),
	}
	for _, mm := range moveMetrics {
		r.moves = append(r.moves, metrics.MoveRecord{Game: id, MoveMetric: mm})
	}
	return r, nil
}

// NewAgent builds the search agent described by config. rng drives the
// evaluator and, for a positive temperature, the move sampling.
func NewAgent(config metrics.AgentConfig, rng *rand.Rand) (agent.Agent, error) {
	evaluator, err := searcher.NewEvaluator(config.Evaluator, rng, config.RolloutCutoff)
	if err != nil {
		return nil, err
	}
	mcts := searcher.NewMCTS(
		searcher.WithExploration(config.Exploration),
		searcher.WithPlayouts(config.Playouts),
		searcher.WithEvaluator(evaluator),
		searcher.WithMetrics(),
	)
	if config.Temperature > 0 {
		return agent.NewTrainingAgent(mcts, config.Temperature, rng), nil
	}
	return agent.NewEvaluationAgent(mcts), nil
}

func summarize(results []result) Summary {
	summary := Summary{Games: len(results)}
	for _, r := range results {
		switch r.game.Winner {
		case "":
			summary.Draws++
			continue
		case game.X.String():
			summary.Wins[0]++
		case game.O.String():
			summary.Wins[1]++
		}
		if r.game.Winner == r.game.StartingPlayer {
			summary.FirstMoverWins++
		}
	}
	return summary
}

func write(config Config, results []result) (string, error) {
	writer, err := metrics.NewWriter(config.Output, config.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(config.Agents[:]); err != nil {
		return "", err
	}
	log.Info().Msg("stored agent configs")

	games := make([]metrics.GameRecord, 0, len(results))
	moves := []metrics.MoveRecord{}
	for _, r := range results {
		games = append(games, r.game)
		moves = append(moves, r.moves...)
	}
	if err := writer.WriteGameRecords(games); err != nil {
		return "", err
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moves); err != nil {
		return "", err
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}
