package grid

import (
	"fmt"
	"math"

	"github.com/matzehuels/gridsketch/pkg/errors"
)

// ID addresses a dot. It is comparable and used as a map key.
type ID struct {
	Row, Col int
}

// String renders the id as "dot-<row>-<col>".
func (id ID) String() string {
	return fmt.Sprintf("dot-%d-%d", id.Row, id.Col)
}

// Dot is a lattice point with its content-space center.
type Dot struct {
	X, Y     float64
	Row, Col int
}

// ID returns the dot's address.
func (d Dot) ID() ID {
	return ID{Row: d.Row, Col: d.Col}
}

// Grid is an immutable lattice description: spacing plus canvas size.
// The zero value has no dots.
type Grid struct {
	spacing float64
	width   float64
	height  float64
}

// New returns a grid with the given spacing over a width x height canvas.
func New(spacing, width, height float64) (Grid, error) {
	if err := errors.ValidatePositive("spacing", spacing); err != nil {
		return Grid{}, errors.Wrap(errors.ErrCodeInvalidGrid, err, "invalid grid")
	}
	if err := errors.ValidateNonNegative("width", width); err != nil {
		return Grid{}, errors.Wrap(errors.ErrCodeInvalidGrid, err, "invalid grid")
	}
	if err := errors.ValidateNonNegative("height", height); err != nil {
		return Grid{}, errors.Wrap(errors.ErrCodeInvalidGrid, err, "invalid grid")
	}
	return Grid{spacing: spacing, width: width, height: height}, nil
}

// Resize returns a copy of g over a new canvas size. Negative sizes become 0.
func (g Grid) Resize(width, height float64) Grid {
	g.width = math.Max(0, width)
	g.height = math.Max(0, height)
	return g
}

func (g Grid) Spacing() float64 { return g.spacing }
func (g Grid) Width() float64   { return g.width }
func (g Grid) Height() float64  { return g.height }

// DotAt synthesizes the dot at (row, col). The address need not be in bounds.
func (g Grid) DotAt(row, col int) Dot {
	half := g.spacing / 2
	return Dot{
		X:   float64(col)*g.spacing + half,
		Y:   float64(row)*g.spacing + half,
		Row: row,
		Col: col,
	}
}

// MaxRow is the last row whose center lies on the canvas, or -1 if none does.
func (g Grid) MaxRow() int { return lastIndex(g.height, g.spacing) }

// MaxCol is the last column whose center lies on the canvas, or -1 if none does.
func (g Grid) MaxCol() int { return lastIndex(g.width, g.spacing) }

func lastIndex(extent, spacing float64) int {
	if spacing <= 0 || extent < spacing/2 {
		return -1
	}
	return int(math.Floor((extent - spacing/2) / spacing))
}

// InBounds reports whether (row, col) lies in [0, MaxRow] x [0, MaxCol].
func (g Grid) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row <= g.MaxRow() && col <= g.MaxCol()
}

// Clamp pulls (row, col) into the grid bounds. On an empty grid it returns (0, 0).
func (g Grid) Clamp(row, col int) (int, int) {
	return clampInt(row, 0, max(0, g.MaxRow())), clampInt(col, 0, max(0, g.MaxCol()))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Nearest rounds a content coordinate to the closest cell without clamping.
func (g Grid) Nearest(x, y float64) (row, col int) {
	if g.spacing <= 0 {
		return 0, 0
	}
	half := g.spacing / 2
	col = int(math.Round((x - half) / g.spacing))
	row = int(math.Round((y - half) / g.spacing))
	return row, col
}

// Snap maps a raw coordinate to a dot sharing a row or a column with last.
//
// The coordinate is rounded to its nearest cell and the residuals to that
// cell's center are compared. When the pointer sits closer to the column
// line than to the row line, the stroke keeps last's row and takes the new
// column; otherwise it keeps last's column and takes the new row. Ties keep
// the column. The result is clamped to the grid bounds.
func (g Grid) Snap(x, y float64, last Dot) Dot {
	row, col := g.Nearest(x, y)
	center := g.DotAt(row, col)
	dx := math.Abs(x - center.X)
	dy := math.Abs(y - center.Y)
	if dx < dy {
		row = last.Row
	} else {
		col = last.Col
	}
	row, col = g.Clamp(row, col)
	return g.DotAt(row, col)
}

// Aim returns a content coordinate over target that Snap, seen from last,
// resolves to target when the two share a row or a column. Moves along a
// row are offset a quarter spacing off the row line so Snap takes the new
// column.
func (g Grid) Aim(last, target Dot) (x, y float64) {
	if target.Row == last.Row && target.Col != last.Col {
		return target.X, target.Y + g.spacing/4
	}
	return target.X, target.Y
}
