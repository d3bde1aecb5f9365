package grid

import "math"

// Viewport is the visible rectangle in content coordinates.
type Viewport struct {
	Top, Left, Bottom, Right float64
}

// ViewportAt returns the width x height rectangle scrolled to (top, left).
func ViewportAt(top, left, width, height float64) Viewport {
	return Viewport{Top: top, Left: left, Bottom: top + height, Right: left + width}
}

func (v Viewport) Width() float64  { return v.Right - v.Left }
func (v Viewport) Height() float64 { return v.Bottom - v.Top }

// Extend grows v by margin on every side.
func (v Viewport) Extend(margin float64) Viewport {
	return Viewport{
		Top:    v.Top - margin,
		Left:   v.Left - margin,
		Bottom: v.Bottom + margin,
		Right:  v.Right + margin,
	}
}

// Contains reports whether (x, y) lies inside v, edges included.
func (v Viewport) Contains(x, y float64) bool {
	return x >= v.Left && x <= v.Right && y >= v.Top && y <= v.Bottom
}

// Range is an inclusive block of rows and columns. It is empty when a start
// exceeds its end.
type Range struct {
	StartRow, EndRow int
	StartCol, EndCol int
}

// Empty reports whether r holds no cells.
func (r Range) Empty() bool {
	return r.StartRow > r.EndRow || r.StartCol > r.EndCol
}

// Len is the number of cells in r.
func (r Range) Len() int {
	if r.Empty() {
		return 0
	}
	return (r.EndRow - r.StartRow + 1) * (r.EndCol - r.StartCol + 1)
}

// VisibleRange returns the cells whose centers lie in v extended by margin and
// clamped to the canvas.
func (g Grid) VisibleRange(v Viewport, margin float64) Range {
	if g.spacing <= 0 {
		return Range{StartRow: 0, EndRow: -1, StartCol: 0, EndCol: -1}
	}
	e := v.Extend(margin)
	top := math.Max(0, e.Top)
	left := math.Max(0, e.Left)
	bottom := math.Min(g.height, e.Bottom)
	right := math.Min(g.width, e.Right)

	half := g.spacing / 2
	return Range{
		StartRow: max(0, int(math.Ceil((top-half)/g.spacing))),
		EndRow:   min(g.MaxRow(), int(math.Floor((bottom-half)/g.spacing))),
		StartCol: max(0, int(math.Ceil((left-half)/g.spacing))),
		EndCol:   min(g.MaxCol(), int(math.Floor((right-half)/g.spacing))),
	}
}

// Visible enumerates the dots of [Grid.VisibleRange] in row-major order.
func (g Grid) Visible(v Viewport, margin float64) []Dot {
	r := g.VisibleRange(v, margin)
	if r.Empty() {
		return nil
	}
	dots := make([]Dot, 0, r.Len())
	for row := r.StartRow; row <= r.EndRow; row++ {
		for col := r.StartCol; col <= r.EndCol; col++ {
			dots = append(dots, g.DotAt(row, col))
		}
	}
	return dots
}
