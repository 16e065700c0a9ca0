package player

import (
	"bufio"
	"fmt"
	"io"
	"slices"

	"fadetoe/game"
	"fadetoe/searcher"
)

// Console is a human player typing moves as "row col", both 1-based
type Console struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// FindMove prompts until a legal square is entered. It returns io.EOF when
// the input is exhausted.
func (c *Console) FindMove(state searcher.State) (searcher.Action, error) {
	legal := state.LegalActions()
	if len(legal) == 0 {
		return 0, searcher.ErrNoLegalMoves
	}
	for {
		fmt.Fprintf(c.out, "%s to move (row col): ", state.Player())
		if !c.scanner.Scan() {
			if err := c.scanner.Err(); err != nil {
				return 0, err
			}
			return 0, io.EOF
		}
		action, err := game.ParseMove(c.scanner.Text())
		if err != nil {
			fmt.Fprintln(c.out, err)
			continue
		}
		if !slices.Contains(legal, action) {
			fmt.Fprintf(c.out, "square %s is taken\n", game.FormatMove(action))
			continue
		}
		return action, nil
	}
}

func (c *Console) Update(action searcher.Action) {}
