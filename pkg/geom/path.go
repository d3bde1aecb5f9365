package geom

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/gridsketch/pkg/grid"
)

// Point is a position in content coordinates.
type Point struct {
	X, Y float64
}

// Op is a path drawing operation.
type Op int

const (
	MoveTo Op = iota // Args: x, y
	LineTo           // Args: x, y
	QuadTo           // Args: cx, cy, x, y
)

// String returns the single-letter path notation of the operation.
func (o Op) String() string {
	switch o {
	case MoveTo:
		return "M"
	case LineTo:
		return "L"
	case QuadTo:
		return "Q"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// Command is a single path operation with its coordinate arguments.
type Command struct {
	Op   Op
	Args []float64
}

// End returns the point the command finishes at.
func (c Command) End() Point {
	n := len(c.Args)
	if n < 2 {
		return Point{}
	}
	return Point{X: c.Args[n-2], Y: c.Args[n-1]}
}

// Path is an ordered list of commands. The zero value is an empty path.
type Path struct {
	Commands []Command
}

func (p *Path) moveTo(x, y float64) {
	p.Commands = append(p.Commands, Command{Op: MoveTo, Args: []float64{x, y}})
}

func (p *Path) lineTo(x, y float64) {
	p.Commands = append(p.Commands, Command{Op: LineTo, Args: []float64{x, y}})
}

func (p *Path) quadTo(cx, cy, x, y float64) {
	p.Commands = append(p.Commands, Command{Op: QuadTo, Args: []float64{cx, cy, x, y}})
}

// Empty reports whether p has nothing to draw.
func (p Path) Empty() bool {
	return len(p.Commands) < 2
}

// HasCurves reports whether p contains a QuadTo.
func (p Path) HasCurves() bool {
	for _, c := range p.Commands {
		if c.Op == QuadTo {
			return true
		}
	}
	return false
}

// String renders p in compact "M x y L x y Q cx cy x y" notation.
func (p Path) String() string {
	var b strings.Builder
	for i, c := range p.Commands {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c.Op.String())
		for _, a := range c.Args {
			b.WriteByte(' ')
			b.WriteString(strconv.FormatFloat(a, 'f', -1, 64))
		}
	}
	return b.String()
}

// Build smooths a grid-aligned polyline.
//
// Interior points where the direction switches between horizontal and
// vertical become a line stopping radius short of the corner followed by a
// quadratic curve through the corner to radius past it. Other interior points
// are plain line joints. Fewer than two points, or any non-finite
// coordinate, yields an empty path.
func Build(points []grid.Dot, radius float64) Path {
	if len(points) < 2 {
		return Path{}
	}
	for _, pt := range points {
		if !finite(pt.X) || !finite(pt.Y) {
			return Path{}
		}
	}

	var p Path
	p.moveTo(points[0].X, points[0].Y)
	for i := 1; i < len(points)-1; i++ {
		prev, cur, next := points[i-1], points[i], points[i+1]
		inHorizontal := cur.X != prev.X
		outHorizontal := next.X != cur.X
		if inHorizontal == outHorizontal {
			p.lineTo(cur.X, cur.Y)
			continue
		}
		inX, inY := sign(cur.X-prev.X), sign(cur.Y-prev.Y)
		outX, outY := sign(next.X-cur.X), sign(next.Y-cur.Y)
		p.lineTo(cur.X-inX*radius, cur.Y-inY*radius)
		p.quadTo(cur.X, cur.Y, cur.X+outX*radius, cur.Y+outY*radius)
	}
	last := points[len(points)-1]
	p.lineTo(last.X, last.Y)
	return p
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
