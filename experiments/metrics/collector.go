package metrics

import (
	"time"
)

type SearchMetric struct {
	Playouts         int // Configured budget
	Exploration      float64
	Duration         time.Duration
	Episodes         int // Playouts actually completed
	TerminalPlayouts int // Playouts that ended on a finished game
	MaxDepth         int
	RootVisits       int
	IsTreeReset      bool
}

type MoveMetric struct {
	Step   int
	Player string
	Move   int
	SearchMetric
}

type GameMetric struct {
	ID             string
	StartingPlayer string
	Winner         string // "" for a draw
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Collector gathers the metrics of a single search. Searches are sequential,
// so implementations are not safe for concurrent use.
type Collector interface {
	Start(playouts int, exploration float64)
	SetTreeReset(value bool)
	AddEpisode(depth int)
	AddTerminalPlayout()
	Complete(rootVisits int) SearchMetric
}

type collector struct {
	playouts         int
	exploration      float64
	startTime        time.Time
	episodes         int
	terminalPlayouts int
	maxDepth         int
	isTreeReset      bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) SetTreeReset(value bool) {
	m.isTreeReset = value
}

func (m *collector) Start(playouts int, exploration float64) {
	m.startTime = time.Now()
	m.playouts = playouts
	m.exploration = exploration
	m.episodes = 0
	m.terminalPlayouts = 0
	m.maxDepth = 0
}

func (m *collector) AddEpisode(depth int) {
	m.episodes++
	m.maxDepth = max(m.maxDepth, depth)
}

func (m *collector) AddTerminalPlayout() {
	m.terminalPlayouts++
}

func (m *collector) Complete(rootVisits int) SearchMetric {
	return SearchMetric{
		Playouts:         m.playouts,
		Exploration:      m.exploration,
		Duration:         time.Since(m.startTime),
		Episodes:         m.episodes,
		TerminalPlayouts: m.terminalPlayouts,
		MaxDepth:         m.maxDepth,
		RootVisits:       rootVisits,
		IsTreeReset:      m.isTreeReset,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(playouts int, exploration float64) {}
func (m *dummyCollector) SetTreeReset(value bool)                 {}
func (m *dummyCollector) AddEpisode(depth int)                    {}
func (m *dummyCollector) AddTerminalPlayout()                     {}
func (m *dummyCollector) Complete(rootVisits int) SearchMetric    { return SearchMetric{} }
