package braille

import (
	"math"

	"github.com/matzehuels/gridsketch/pkg/surface"
)

// Size is the number of cells needed to show width x height content units.
func Size(width, height, unit float64) (cols, rows int) {
	if unit <= 0 {
		return 0, 0
	}
	return int(math.Ceil(width / (2 * unit))), int(math.Ceil(height / (4 * unit)))
}

// CellCenter maps a terminal cell to window coordinates at its center.
func CellCenter(col, row int, unit float64) (x, y float64) {
	return float64(2*col+1) * unit, float64(4*row+2) * unit
}

// Draw paints snap onto a cols x rows canvas. Dots go down first, then the
// shapes in paint order, each flattened to polylines.
func Draw(snap surface.Snapshot, cols, rows int, unit float64) *Canvas {
	c := NewCanvas(cols, rows)
	if unit <= 0 {
		return c
	}
	left, top := snap.Viewport.Left, snap.Viewport.Top

	for _, d := range snap.Dots {
		x := int(math.Floor((d.X - left) / unit))
		y := int(math.Floor((d.Y - top) / unit))
		c.Set(x, y, snap.DotColor, false)
	}
	for _, rec := range snap.Shapes {
		for _, line := range rec.Path.Flatten(unit / 2) {
			for i := 1; i < len(line); i++ {
				a, b := line[i-1], line[i]
				c.Line((a.X-left)/unit, (a.Y-top)/unit, (b.X-left)/unit, (b.Y-top)/unit, rec.Color)
			}
		}
	}
	return c
}
