package game

import (
	"io"
	"slices"
	"strings"

	"fadetoe/searcher"

	"github.com/muesli/termenv"
)

// ANSI colors of the two sides
const (
	colorX = "1"
	colorO = "4"
)

// Renderer draws boards on a terminal. Pieces about to vanish are drawn faint.
type Renderer struct {
	w     io.Writer
	out   *termenv.Output
	clear bool
}

func NewRenderer(w io.Writer, clear bool, options ...termenv.OutputOption) *Renderer {
	return &Renderer{
		w:     w,
		out:   termenv.NewOutput(w, options...),
		clear: clear,
	}
}

func (r *Renderer) Render(b *Board) error {
	if r.clear {
		r.out.ClearScreen()
	}

	fading := b.Fading()
	var sb strings.Builder
	for row := 0; row < Size; row++ {
		cells := make([]string, Size)
		for col := 0; col < Size; col++ {
			action := searcher.Action(row*Size + col)
			cells[col] = r.styled(b.Cell(action), slices.Contains(fading, action))
		}
		sb.WriteString(" " + strings.Join(cells, " | ") + " \n")
		if row < Size-1 {
			sb.WriteString("---|---|---\n")
		}
	}

	_, err := io.WriteString(r.w, sb.String())
	return err
}

func (r *Renderer) styled(mark Mark, fading bool) string {
	style := r.out.String(mark.String())
	switch mark {
	case X:
		style = style.Foreground(r.out.Color(colorX))
	case O:
		style = style.Foreground(r.out.Color(colorO))
	}
	if fading {
		style = style.Faint()
	}
	return style.String()
}
