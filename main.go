package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"fadetoe/engine"
	"fadetoe/experiments"
	"fadetoe/experiments/metrics"
	"fadetoe/game"
	"fadetoe/meta"
	"fadetoe/player"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

func main() {
	mode := flag.String("mode", "play", "play, selfplay or arena")
	configPath := flag.String("config", "", "YAML config file")
	first := flag.String("first", "human", "who moves first in play mode: human, ai or random")
	playouts := flag.Int("playouts", 0, "playouts per move, overrides the config")
	exploration := flag.Float64("exploration", -1, "exploration constant, overrides the config")
	seed := flag.Uint64("seed", 0, "random seed, overrides the config")
	logLevel := flag.String("log-level", "", "log level, overrides the config")
	flag.Parse()

	config := meta.Default()
	if *configPath != "" {
		var err error
		if config, err = meta.Load(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
	if *playouts > 0 {
		config.Search.Playouts = *playouts
	}
	if *exploration >= 0 {
		config.Search.Exploration = *exploration
	}
	if *seed != 0 {
		config.Search.Seed = *seed
	}
	if *logLevel != "" {
		config.Log.Level = *logLevel
	}
	if err := config.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := setupLogging(config.Log); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	config.Search.Seed = config.ResolveSeed()
	log.Debug().Uint64("seed", config.Search.Seed).Msg("resolved seed")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch *mode {
	case "play":
		err = play(config, *first)
	case "selfplay":
		err = selfPlay(config)
	case "arena":
		err = arena(ctx, config)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", *mode)
	}
}

func setupLogging(config meta.LogConfig) error {
	level, err := zerolog.ParseLevel(config.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	if config.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return nil
}

func agentConfig(id int, search meta.SearchConfig) metrics.AgentConfig {
	return metrics.AgentConfig{
		ID:            id,
		Evaluator:     search.Evaluator,
		Exploration:   search.Exploration,
		Playouts:      search.Playouts,
		RolloutCutoff: search.RolloutCutoff,
		Temperature:   search.Temperature,
	}
}

// play lets a human playing X face the search playing O
func play(config meta.Config, first string) error {
	rng := rand.New(rand.NewSource(config.Search.Seed))
	firstMark := game.X
	switch first {
	case "human":
	case "ai":
		firstMark = game.O
	case "random":
		if rng.Intn(2) == 1 {
			firstMark = game.O
		}
	default:
		return fmt.Errorf("unknown first player %q", first)
	}

	ai, err := experiments.NewAgent(agentConfig(1, config.Search), rng)
	if err != nil {
		return err
	}
	human := player.NewConsole(os.Stdin, os.Stdout)
	board := game.NewBoard(append(config.BoardOptions(), game.WithFirstPlayer(firstMark))...)

	gameMetric, _, err := engine.LocalEngine(
		[2]engine.Player{human, ai},
		board,
		engine.WithRenderer(game.NewRenderer(os.Stdout, true)),
	).Run()
	if err != nil {
		return err
	}
	announce(gameMetric.Winner)
	return nil
}

func selfPlay(config meta.Config) error {
	players := [2]engine.Player{}
	for i := range players {
		a, err := experiments.NewAgent(agentConfig(i+1, config.Search), rand.New(rand.NewSource(config.Search.Seed+uint64(i))))
		if err != nil {
			return err
		}
		players[i] = a
	}
	gameMetric, moveMetrics, err := engine.LocalEngine(
		players,
		game.NewBoard(config.BoardOptions()...),
		engine.WithRenderer(game.NewRenderer(os.Stdout, false)),
	).Run()
	if err != nil {
		return err
	}
	for _, mm := range moveMetrics {
		log.Debug().Int("step", mm.Step).Str("player", mm.Player).Int("move", mm.Move).
			Int("root_visits", mm.RootVisits).Dur("duration", mm.Duration).Msg("move")
	}
	announce(gameMetric.Winner)
	return nil
}

// arena pits the configured search against a uniform-prior baseline
func arena(ctx context.Context, config meta.Config) error {
	baseline := config.Search
	baseline.Evaluator = "uniform"
	baseline.Temperature = 0

	summary, err := experiments.RunArena(ctx, experiments.Config{
		Name:         "arena",
		Games:        config.Arena.Games,
		Workers:      config.Arena.Workers,
		Seed:         config.Search.Seed,
		Output:       config.Arena.Output,
		Agents:       [2]metrics.AgentConfig{agentConfig(1, config.Search), agentConfig(2, baseline)},
		BoardOptions: config.BoardOptions(),
	})
	if errors.Is(err, context.Canceled) {
		log.Warn().Msg("arena interrupted")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("games: %d, %s wins: %d, baseline wins: %d, draws: %d, first mover wins: %d\n",
		summary.Games, config.Search.Evaluator, summary.Wins[0], summary.Wins[1], summary.Draws, summary.FirstMoverWins)
	if summary.Dir != "" {
		fmt.Printf("records written to %s\n", summary.Dir)
	}
	return nil
}

func announce(winner string) {
	if winner == "" {
		fmt.Println("Draw.")
		return
	}
	fmt.Printf("%s wins.\n", winner)
}
