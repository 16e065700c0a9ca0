package searcher

import (
	"fmt"
	"slices"

	"fadetoe/experiments/metrics"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

type Option func(mcts *MCTS)

// MCTS is a single-threaded tree search guided by evaluator priors (PUCT).
// The tree survives between searches and follows the game through AdvanceRoot.
// An MCTS must not be shared between goroutines.
type MCTS struct {
	exploration float64
	playouts    int
	evaluate    Evaluator
	root        *node
	metrics     metrics.Collector
	last        metrics.SearchMetric
}

type ChildStats struct {
	Action      Action
	Visits      int
	Q           float64
	Prior       float64
	Exploration float64
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

func WithPlayouts(playouts int) Option {
	return func(m *MCTS) {
		if playouts > 0 {
			m.playouts = playouts
		}
	}
}

func WithEvaluator(evaluate Evaluator) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		exploration: DefaultExploration,
		playouts:    DefaultPlayouts,
		evaluate:    Uniform(),
		root:        newNode(nil, 1.0),
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Configure replaces the exploration constant and the playout budget
func (m *MCTS) Configure(exploration float64, playouts int) error {
	if exploration < 0 {
		return fmt.Errorf("exploration constant must not be negative, got %v", exploration)
	}
	if playouts < 1 {
		return fmt.Errorf("playout budget must be at least 1, got %d", playouts)
	}
	m.exploration = exploration
	m.playouts = playouts
	return nil
}

// ChooseMove runs the configured number of playouts from state and returns the
// most visited action at the root. state itself is never modified.
func (m *MCTS) ChooseMove(state State) (Action, error) {
	legal := state.LegalActions()
	if len(legal) == 0 {
		return 0, ErrNoLegalMoves
	}
	m.checkRoot(legal)

	m.metrics.Start(m.playouts, m.exploration)
	m.metrics.SetTreeReset(m.root.visits == 0)
	for i := 0; i < m.playouts; i++ {
		if err := m.playout(state.Clone()); err != nil {
			m.last = m.metrics.Complete(m.root.visits)
			return 0, fmt.Errorf("playout %d: %w", i+1, err)
		}
	}
	m.last = m.metrics.Complete(m.root.visits)

	action, child, ok := m.root.mostVisited()
	if !ok {
		return 0, ErrNoLegalMoves
	}
	log.Debug().
		Str("player", state.Player()).
		Int("action", int(action)).
		Int("visits", child.visits).
		Float64("q", child.q).
		Int("root_visits", m.root.visits).
		Msg("search complete")
	return action, nil
}

// checkRoot drops a reused tree whose root does not match the position, which
// happens when a move was played without telling the search.
func (m *MCTS) checkRoot(legal []Action) {
	if m.root.isLeaf() {
		return
	}
	unknown, missing := lo.Difference(legal, m.root.order)
	if len(unknown) > 0 || len(missing) > 0 {
		log.Warn().Msgf("root actions %v do not match legal actions %v, discarding tree", m.root.order, legal)
		m.Reset()
	}
}

func (m *MCTS) playout(state State) error {
	// Selection
	node := m.root
	depth := 0
	for !node.isLeaf() {
		action, child, err := node.selects(m.exploration)
		if err != nil {
			return err
		}
		state.Play(action)
		node = child
		depth++
	}

	// Evaluation
	priors, value := m.evaluate.Evaluate(state)
	if err := checkContract(state, priors, value); err != nil {
		return err
	}

	// Expansion, unless the game is over
	if ended, winner := state.Outcome(); ended {
		value = rewarder(winner)(state.Player())
		m.metrics.AddTerminalPlayout()
	} else {
		node.expand(priors)
	}

	// Backpropagation: the leaf's statistics belong to the player who moved into it
	node.updateRecursive(-value)
	m.metrics.AddEpisode(depth)
	return nil
}

// AdvanceRoot moves the root to the child reached by a move actually played,
// keeping its statistics. An unexplored move starts a fresh tree.
func (m *MCTS) AdvanceRoot(action Action) {
	if child := m.root.promote(action); child != nil {
		m.root = child
		log.Debug().Int("action", int(action)).Int("visits", child.visits).Msg("reusing subtree")
		return
	}
	log.Debug().Int("action", int(action)).Msg("move not in tree, starting fresh")
	m.Reset()
}

// Reset discards the whole tree
func (m *MCTS) Reset() {
	m.root = newNode(nil, 1.0)
}

// RootVisits returns the number of playouts accumulated at the current root
func (m *MCTS) RootVisits() int {
	return m.root.visits
}

// Stats returns the statistics of the root's children, most visited first
func (m *MCTS) Stats() []ChildStats {
	stats := lo.Map(m.root.order, func(action Action, _ int) ChildStats {
		child := m.root.children[action]
		return ChildStats{
			Action:      action,
			Visits:      child.visits,
			Q:           child.q,
			Prior:       child.prior,
			Exploration: child.u,
		}
	})
	slices.SortStableFunc(stats, func(a, b ChildStats) int {
		return b.Visits - a.Visits
	})
	return stats
}

// Policy returns the visit distribution over the root's children
func (m *MCTS) Policy() map[Action]float64 {
	policy := make(map[Action]float64, len(m.root.order))
	total := 0
	for _, child := range m.root.children {
		total += child.visits
	}
	for action, child := range m.root.children {
		if total == 0 {
			policy[action] = 1.0 / float64(len(m.root.children))
		} else {
			policy[action] = float64(child.visits) / float64(total)
		}
	}
	return policy
}

// LastMetrics returns the metrics of the previous ChooseMove call. They are
// zero unless the search was created WithMetrics.
func (m *MCTS) LastMetrics() metrics.SearchMetric {
	return m.last
}
