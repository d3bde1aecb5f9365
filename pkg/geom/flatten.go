package geom

import "math"

const maxCurveSplits = 8

// Flatten converts p into polylines, one per MoveTo. Quadratic curves are
// split recursively until the control point lies within tolerance of the
// chord, or after 2^8 pieces.
func (p Path) Flatten(tolerance float64) [][]Point {
	var lines [][]Point
	var cur []Point
	for _, c := range p.Commands {
		switch c.Op {
		case MoveTo:
			if len(cur) > 1 {
				lines = append(lines, cur)
			}
			cur = []Point{c.End()}
		case LineTo:
			cur = append(cur, c.End())
		case QuadTo:
			if len(cur) == 0 {
				cur = []Point{c.End()}
				continue
			}
			from := cur[len(cur)-1]
			ctrl := Point{X: c.Args[0], Y: c.Args[1]}
			cur = traceQuad(cur, from, ctrl, c.End(), tolerance, 0)
		}
	}
	if len(cur) > 1 {
		lines = append(lines, cur)
	}
	return lines
}

func traceQuad(out []Point, from, ctrl, to Point, tolerance float64, depth int) []Point {
	if depth >= maxCurveSplits || withinTolerance(from, to, ctrl, tolerance) {
		return append(out, to)
	}
	a := lerp(from, ctrl, 0.5)
	b := lerp(ctrl, to, 0.5)
	mid := lerp(a, b, 0.5)
	out = traceQuad(out, from, a, mid, tolerance, depth+1)
	return traceQuad(out, mid, b, to, tolerance, depth+1)
}

// withinTolerance reports whether p is within tol of the line through a and b.
func withinTolerance(a, b, p Point, tol float64) bool {
	dx, dy := b.X-a.X, b.Y-a.Y
	n := dy*p.X - dx*p.Y + b.X*a.Y - b.Y*a.X
	d2 := dx*dx + dy*dy
	if d2 == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y) <= tol
	}
	return n*n <= tol*tol*d2
}

func lerp(a, b Point, t float64) Point {
	return Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// Length is the arc length of a polyline.
func Length(line []Point) float64 {
	var total float64
	for i := 1; i < len(line); i++ {
		total += math.Hypot(line[i].X-line[i-1].X, line[i].Y-line[i-1].Y)
	}
	return total
}
