package game

import (
	"fmt"
	"strconv"
	"strings"

	"fadetoe/searcher"
)

// ParseMove reads a square as 1-based "row col", e.g. "2 3" is the middle row,
// right column.
func ParseMove(s string) (searcher.Action, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return 0, fmt.Errorf("%w: want \"row col\", got %q", ErrBadNotation, s)
	}
	row, err := parseCoordinate(fields[0])
	if err != nil {
		return 0, err
	}
	col, err := parseCoordinate(fields[1])
	if err != nil {
		return 0, err
	}
	return searcher.Action(row*Size + col), nil
}

func parseCoordinate(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > Size {
		return 0, fmt.Errorf("%w: coordinate %q must be between 1 and %d", ErrBadNotation, s, Size)
	}
	return n - 1, nil
}

// FormatMove is the inverse of ParseMove
func FormatMove(action searcher.Action) string {
	return fmt.Sprintf("%d %d", int(action)/Size+1, int(action)%Size+1)
}
