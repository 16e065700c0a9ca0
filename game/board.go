package game

import (
	"fmt"

	"fadetoe/searcher"
)

type Option func(b *Board)

// Board is a 3x3 position where every player keeps at most pieceLimit pieces:
// placing one more removes that player's oldest piece. Actions are cell indices
// 0..8, row-major from the top-left corner.
//
// Board holds no references, so copying the struct is a deep copy.
type Board struct {
	cells     [Cells]Mark
	placed    [3][Cells + 1]searcher.Action // Cells per mark in placement order, indexed by Mark
	counts    [3]int
	toMove    Mark
	winner    Mark
	ply       int
	limit     int
	maxPlies  int
	firstMark Mark
}

func WithFirstPlayer(mark Mark) Option {
	return func(b *Board) {
		if mark == X || mark == O {
			b.toMove = mark
			b.firstMark = mark
		}
	}
}

// WithPieceLimit sets how many pieces a player keeps. A limit of 5 or more
// plays classic tic-tac-toe.
func WithPieceLimit(limit int) Option {
	return func(b *Board) {
		if limit >= 1 && limit <= Cells {
			b.limit = limit
		}
	}
}

// WithMaxPlies sets the number of moves after which the game is drawn, 0 disables the limit
func WithMaxPlies(plies int) Option {
	return func(b *Board) {
		if plies >= 0 {
			b.maxPlies = plies
		}
	}
}

func NewBoard(options ...Option) *Board {
	b := &Board{ // Default values
		toMove:    X,
		firstMark: X,
		limit:     DefaultPieceLimit,
		maxPlies:  DefaultMaxPlies,
	}
	for _, option := range options {
		option(b)
	}
	return b
}

func (b *Board) Player() string {
	return b.toMove.String()
}

// Turn returns the mark to move
func (b *Board) Turn() Mark {
	return b.toMove
}

// FirstPlayer returns the mark that moved first
func (b *Board) FirstPlayer() Mark {
	return b.firstMark
}

func (b *Board) LegalActions() []searcher.Action {
	if b.Ended() {
		return nil
	}
	actions := make([]searcher.Action, 0, Cells)
	for i, mark := range b.cells {
		if mark == Empty {
			actions = append(actions, searcher.Action(i))
		}
	}
	return actions
}

func (b *Board) IsLegal(action searcher.Action) bool {
	return !b.Ended() && action >= 0 && action < Cells && b.cells[action] == Empty
}

// Play places a piece for the side to move. It panics on an illegal action,
// use Apply for moves that were not generated by LegalActions.
func (b *Board) Play(action searcher.Action) {
	if !b.IsLegal(action) {
		panic(fmt.Sprintf("illegal move %d on ply %d", action, b.ply))
	}

	mover := b.toMove
	b.cells[action] = mover
	queue := &b.placed[mover]
	queue[b.counts[mover]] = action
	b.counts[mover]++

	// Oldest piece vanishes
	if b.counts[mover] > b.limit {
		b.cells[queue[0]] = Empty
		copy(queue[:], queue[1:b.counts[mover]])
		b.counts[mover]--
	}

	b.ply++
	if b.hasLine(mover) {
		b.winner = mover
	}
	b.toMove = mover.Opponent()
}

// Apply validates and plays an action
func (b *Board) Apply(action searcher.Action) error {
	if b.Ended() {
		return ErrGameOver
	}
	if !b.IsLegal(action) {
		return fmt.Errorf("%w: %s is not an empty square", ErrIllegalMove, FormatMove(action))
	}
	b.Play(action)
	return nil
}

func (b *Board) Outcome() (bool, string) {
	if !b.Ended() {
		return false, ""
	}
	if b.winner == Empty {
		return true, ""
	}
	return true, b.winner.String()
}

func (b *Board) Ended() bool {
	return b.winner != Empty || b.full() || (b.maxPlies > 0 && b.ply >= b.maxPlies)
}

// Winner returns the winning mark, Empty while undecided or drawn
func (b *Board) Winner() Mark {
	return b.winner
}

func (b *Board) Clone() searcher.State {
	return b.Copy()
}

func (b *Board) Copy() *Board {
	c := *b
	return &c
}

func (b *Board) Cell(action searcher.Action) Mark {
	return b.cells[action]
}

// Pieces returns the cells held by mark, oldest first
func (b *Board) Pieces(mark Mark) []searcher.Action {
	pieces := make([]searcher.Action, b.counts[mark])
	copy(pieces, b.placed[mark][:b.counts[mark]])
	return pieces
}

// Fading returns the pieces that disappear on their owner's next move
func (b *Board) Fading() []searcher.Action {
	var fading []searcher.Action
	for _, mark := range []Mark{X, O} {
		if b.counts[mark] == b.limit {
			fading = append(fading, b.placed[mark][0])
		}
	}
	return fading
}

func (b *Board) Ply() int {
	return b.ply
}

func (b *Board) PieceLimit() int {
	return b.limit
}

func (b *Board) hasLine(mark Mark) bool {
	for _, line := range lines {
		if b.cells[line[0]] == mark && b.cells[line[1]] == mark && b.cells[line[2]] == mark {
			return true
		}
	}
	return false
}

func (b *Board) full() bool {
	for _, mark := range b.cells {
		if mark == Empty {
			return false
		}
	}
	return true
}

func (b *Board) String() string {
	return fmt.Sprintf("%s|%s|%s/%s|%s|%s/%s|%s|%s %s",
		b.cells[0], b.cells[1], b.cells[2],
		b.cells[3], b.cells[4], b.cells[5],
		b.cells[6], b.cells[7], b.cells[8],
		b.toMove)
}
