package game

import (
	"errors"
	"fmt"
	"strings"
)

const (
	Size  = 3
	Cells = Size * Size

	DefaultPieceLimit = 3   // Pieces a player keeps on the board, placing one more removes the oldest
	DefaultMaxPlies   = 100 // Game is drawn once this many moves were played
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrGameOver    = errors.New("game is over")
	ErrBadNotation = errors.New("bad move notation")
)

// Mark is the content of a cell, and identifies the players
type Mark uint8

const (
	Empty Mark = iota
	X
	O
)

func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	}
	return " "
}

func (m Mark) Opponent() Mark {
	switch m {
	case X:
		return O
	case O:
		return X
	}
	return Empty
}

// ParseMark accepts "X" or "O" in either case
func ParseMark(s string) (Mark, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "X":
		return X, nil
	case "O":
		return O, nil
	}
	return Empty, fmt.Errorf("unknown player %q", s)
}

// horizontal, vertical and diagonal lines as cell indices
var lines = [8][Size]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}
