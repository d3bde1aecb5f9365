// Package braille renders surface snapshots as Unicode braille text.
//
// Every terminal cell holds a 2x4 block of braille dots, so a terminal of
// cols x rows cells is a bitmap of 2*cols x 4*rows subpixels. A unit maps
// content coordinates onto subpixels: with unit = spacing/4 each grid dot
// lands one terminal row and two columns from its neighbours.
package braille

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// blank is the empty braille pattern.
const blank = '⠀'

// bit is the braille dot for subpixel (x, y) within a cell.
var bit = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

type layer uint8

const (
	layerNone layer = iota
	layerDot
	layerStroke
)

// Canvas is a braille bitmap with one color per cell.
type Canvas struct {
	cols, rows int
	mask       []uint8
	color      []string
	layer      []layer
}

// NewCanvas returns a blank canvas of cols x rows cells.
func NewCanvas(cols, rows int) *Canvas {
	cols, rows = max(0, cols), max(0, rows)
	n := cols * rows
	return &Canvas{
		cols:  cols,
		rows:  rows,
		mask:  make([]uint8, n),
		color: make([]string, n),
		layer: make([]layer, n),
	}
}

// Size returns the cell dimensions.
func (c *Canvas) Size() (cols, rows int) { return c.cols, c.rows }

// Set lights subpixel (x, y). Stroke pixels take over the cell's color;
// dot pixels only color cells no stroke has touched. Out of range pixels
// are ignored.
func (c *Canvas) Set(x, y int, color string, stroke bool) {
	if x < 0 || y < 0 || x >= c.cols*2 || y >= c.rows*4 {
		return
	}
	i := (y/4)*c.cols + x/2
	c.mask[i] |= bit[y%4][x%2]
	switch {
	case stroke:
		c.color[i] = color
		c.layer[i] = layerStroke
	case c.layer[i] == layerNone:
		c.color[i] = color
		c.layer[i] = layerDot
	}
}

// Line lights every subpixel between two subpixel-space points.
func (c *Canvas) Line(x0, y0, x1, y1 float64, color string) {
	steps := int(math.Ceil(max(math.Abs(x1-x0), math.Abs(y1-y0))))
	if steps == 0 {
		c.Set(int(math.Floor(x0)), int(math.Floor(y0)), color, true)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := x0 + (x1-x0)*t
		y := y0 + (y1-y0)*t
		c.Set(int(math.Floor(x)), int(math.Floor(y)), color, true)
	}
}

// Rune returns the braille character for a cell.
func (c *Canvas) Rune(col, row int) rune {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return blank
	}
	return blank + rune(c.mask[row*c.cols+col])
}

// String renders the canvas without colors, one line per row.
func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < c.cols; col++ {
			b.WriteRune(c.Rune(col, row))
		}
	}
	return b.String()
}

// Styled renders the canvas with lipgloss colors over background. Runs of
// cells sharing a color are styled together.
func (c *Canvas) Styled(background string) string {
	base := lipgloss.NewStyle().Background(lipgloss.Color(background))
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		runColor := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			st := base
			if runColor != "" {
				st = st.Foreground(lipgloss.Color(runColor))
			}
			b.WriteString(st.Render(run.String()))
			run.Reset()
		}
		for col := 0; col < c.cols; col++ {
			i := row*c.cols + col
			if c.color[i] != runColor {
				flush()
				runColor = c.color[i]
			}
			run.WriteRune(c.Rune(col, row))
		}
		flush()
	}
	return b.String()
}
