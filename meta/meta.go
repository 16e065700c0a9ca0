package meta

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"fadetoe/game"
	"fadetoe/searcher"

	"gopkg.in/yaml.v3"
	"lukechampine.com/frand"
)

var Evaluators = []string{"uniform", "random", "rollout"}

type Config struct {
	Search SearchConfig `yaml:"search"`
	Rules  RulesConfig  `yaml:"rules"`
	Arena  ArenaConfig  `yaml:"arena"`
	Log    LogConfig    `yaml:"log"`
}

type SearchConfig struct {
	Exploration   float64 `yaml:"exploration"`
	Playouts      int     `yaml:"playouts"`
	Evaluator     string  `yaml:"evaluator"`
	RolloutCutoff int     `yaml:"rollout_cutoff"`
	Seed          uint64  `yaml:"seed"` // 0 draws a random seed
	Temperature   float64 `yaml:"temperature"`
}

type RulesConfig struct {
	Pieces   int `yaml:"pieces"`
	MaxPlies int `yaml:"max_plies"`
}

type ArenaConfig struct {
	Games   int    `yaml:"games"`
	Workers int    `yaml:"workers"`
	Output  string `yaml:"output"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

func Default() Config {
	return Config{
		Search: SearchConfig{
			Exploration:   searcher.DefaultExploration,
			Playouts:      searcher.DefaultPlayouts,
			Evaluator:     "random",
			RolloutCutoff: searcher.MaxCutoff,
		},
		Rules: RulesConfig{
			Pieces:   game.DefaultPieceLimit,
			MaxPlies: game.DefaultMaxPlies,
		},
		Arena: ArenaConfig{
			Games:   20,
			Workers: 4,
			Output:  "experiments",
		},
		Log: LogConfig{
			Level:  "info",
			Pretty: true,
		},
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (Config, error) {
	config := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Search.Exploration < 0 {
		errs = append(errs, fmt.Errorf("search.exploration must not be negative, got %v", c.Search.Exploration))
	}
	if c.Search.Playouts < 1 {
		errs = append(errs, fmt.Errorf("search.playouts must be at least 1, got %d", c.Search.Playouts))
	}
	if !slices.Contains(Evaluators, c.Search.Evaluator) {
		errs = append(errs, fmt.Errorf("search.evaluator must be one of %v, got %q", Evaluators, c.Search.Evaluator))
	}
	if c.Search.RolloutCutoff < 1 || c.Search.RolloutCutoff > searcher.MaxCutoff {
		errs = append(errs, fmt.Errorf("search.rollout_cutoff must be between 1 and %d, got %d", searcher.MaxCutoff, c.Search.RolloutCutoff))
	}
	if c.Search.Temperature < 0 {
		errs = append(errs, fmt.Errorf("search.temperature must not be negative, got %v", c.Search.Temperature))
	}
	if c.Rules.Pieces < 1 || c.Rules.Pieces > game.Cells {
		errs = append(errs, fmt.Errorf("rules.pieces must be between 1 and %d, got %d", game.Cells, c.Rules.Pieces))
	}
	if c.Rules.MaxPlies < 0 {
		errs = append(errs, fmt.Errorf("rules.max_plies must not be negative, got %d", c.Rules.MaxPlies))
	}
	if c.Arena.Games < 1 {
		errs = append(errs, fmt.Errorf("arena.games must be at least 1, got %d", c.Arena.Games))
	}
	if c.Arena.Workers < 1 {
		errs = append(errs, fmt.Errorf("arena.workers must be at least 1, got %d", c.Arena.Workers))
	}
	return errors.Join(errs...)
}

// ResolveSeed returns the configured seed, or a random one when it is 0
func (c Config) ResolveSeed() uint64 {
	if c.Search.Seed != 0 {
		return c.Search.Seed
	}
	return frand.Uint64n(1<<63-1) + 1
}

func (c Config) BoardOptions() []game.Option {
	return []game.Option{
		game.WithPieceLimit(c.Rules.Pieces),
		game.WithMaxPlies(c.Rules.MaxPlies),
	}
}
