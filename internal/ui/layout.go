package ui

import "image"

// GridLayout splits a rectangle into rows and columns using fractional weights.
type GridLayout struct {
	colPos []int
	rowPos []int
}

// NewGridLayout creates a layout for the given bounds.
func NewGridLayout(b image.Rectangle, cols, rows []float64) *GridLayout {
	return &GridLayout{
		colPos: splits(b.Min.X, b.Max.X, cols),
		rowPos: splits(b.Min.Y, b.Max.Y, rows),
	}
}

func splits(min, max int, weights []float64) []int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	pos := make([]int, len(weights)+1)
	x := min
	for i, w := range weights {
		pos[i] = x
		x += int(float64(max-min) * (w / total))
	}
	pos[len(weights)] = max
	return pos
}

// Cell returns the rectangle for the specified cell.
func (g *GridLayout) Cell(col, row int) image.Rectangle {
	return image.Rect(g.colPos[col], g.rowPos[row], g.colPos[col+1], g.rowPos[row+1])
}

// inset shrinks r by pad on every side.
func inset(r image.Rectangle, pad int) image.Rectangle {
	return image.Rect(r.Min.X+pad, r.Min.Y+pad, r.Max.X-pad, r.Max.Y-pad)
}
