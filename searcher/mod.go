package searcher

// Values backed up through the tree, from the perspective of the player to move
const (
	Win  = 1.0
	Loss = -Win
	Draw = 0.0
)

// Action identifies a move by id. Its meaning belongs to the State.
type Action int

// Prior pairs a legal action with the evaluator's probability of playing it.
type Prior struct {
	Action      Action
	Probability float64
}

// State is the position contract the search consumes. Play mutates the
// receiver, so the search only ever calls it on clones.
type State interface {
	// Player returns the side to move
	Player() string
	// LegalActions must return the same order for the same position
	LegalActions() []Action
	Play(Action)
	// Outcome reports whether the game is over, and the winner ("" for a draw)
	Outcome() (ended bool, winner string)
	// Clone returns a deep copy sharing no mutable state with the receiver
	Clone() State
}

func rewarder(winner string) func(player string) (reward float64) {
	return func(player string) float64 {
		switch winner {
		case "":
			return Draw
		case player:
			return Win
		}
		return Loss
	}
}
