package organic

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/gridsketch/pkg/geom"
)

// Path is one freeform walk.
type Path []geom.Point

// Rect is an axis-aligned rectangle. Containment is strict: points on an edge
// are outside.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Contains reports whether p lies strictly inside r.
func (r Rect) Contains(p geom.Point) bool {
	return p.X > r.Left && p.X < r.Right && p.Y > r.Top && p.Y < r.Bottom
}

// Crosses reports whether any part of the segment a-b lies strictly inside r.
func (r Rect) Crosses(a, b geom.Point) bool {
	dx, dy := b.X-a.X, b.Y-a.Y
	t0, t1 := 0.0, 1.0
	clip := func(p, q float64) bool {
		if p == 0 {
			return q > 0
		}
		t := q / p
		if p < 0 {
			if t >= t1 {
				return false
			}
			t0 = math.Max(t0, t)
		} else {
			if t <= t0 {
				return false
			}
			t1 = math.Min(t1, t)
		}
		return true
	}
	return clip(-dx, a.X-r.Left) &&
		clip(dx, r.Right-a.X) &&
		clip(-dy, a.Y-r.Top) &&
		clip(dy, r.Bottom-a.Y) &&
		t0 < t1
}

// Config sizes the canvas, the exclusion rectangle, and the walk.
type Config struct {
	Width, Height float64

	CenterPadding   float64 // added around the content rectangle
	CenterFraction  float64 // content rectangle size relative to the canvas
	MaxCenterWidth  float64
	MaxCenterHeight float64

	StepBase         float64 // nominal step length before complexity
	PerimeterSpacing float64 // one edge root per this much perimeter
	InnerFraction    float64 // inner roots relative to edge roots
	EdgeInset        float64 // walks stay this far inside the canvas
	MaxDepth         int     // branch nesting limit
}

// DefaultConfig returns the standard tuning for a width x height canvas.
func DefaultConfig(width, height float64) Config {
	return Config{
		Width:            width,
		Height:           height,
		CenterPadding:    100,
		CenterFraction:   0.4,
		MaxCenterWidth:   600,
		MaxCenterHeight:  400,
		StepBase:         15,
		PerimeterSpacing: 400,
		InnerFraction:    0.2,
		EdgeInset:        5,
		MaxDepth:         4,
	}
}

// Content is the unpadded rectangle reserved for page content.
func (c Config) Content() Rect {
	w := math.Min(c.MaxCenterWidth, c.Width*c.CenterFraction)
	h := math.Min(c.MaxCenterHeight, c.Height*c.CenterFraction)
	cx, cy := c.Width/2, c.Height/2
	return Rect{Left: cx - w/2, Top: cy - h/2, Right: cx + w/2, Bottom: cy + h/2}
}

// Exclusion is the padded rectangle no walk may enter.
func (c Config) Exclusion() Rect {
	r := c.Content()
	p := c.CenterPadding
	return Rect{Left: r.Left - p, Top: r.Top - p, Right: r.Right + p, Bottom: r.Bottom + p}
}

// root is the seed of one walk.
type root struct {
	start      geom.Point
	dir        geom.Point
	length     float64
	branchProb float64
	complexity float64
	depth      int
}

type grower struct {
	rng  *rand.Rand
	cfg  Config
	keep Rect
	out  []Path
}

// Generate grows every edge and inner root, including branches. Paths with
// fewer than two points are omitted.
func Generate(rng *rand.Rand, cfg Config) []Path {
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.StepBase <= 0 {
		return nil
	}
	g := &grower{rng: rng, cfg: cfg, keep: cfg.Exclusion()}
	for _, r := range g.edgeRoots() {
		g.grow(r)
	}
	for _, r := range g.innerRoots() {
		g.grow(r)
	}
	return g.out
}

func (g *grower) jitter(scale float64) float64 {
	return (g.rng.Float64() - 0.5) * scale
}

func (g *grower) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

// edgeRoots spaces roots evenly around the perimeter, clockwise from the top
// left corner, each pointing inward.
func (g *grower) edgeRoots() []root {
	w, h := g.cfg.Width, g.cfg.Height
	n := int(math.Floor(2 * (w + h) / g.cfg.PerimeterSpacing))
	roots := make([]root, 0, n)
	for i := 0; i < n; i++ {
		pos := float64(i) / float64(n)
		var start, dir geom.Point
		switch {
		case pos < 0.25:
			start, dir = geom.Point{X: w * pos * 4, Y: 0}, geom.Point{X: 0, Y: 1}
		case pos < 0.5:
			start, dir = geom.Point{X: w, Y: h * (pos - 0.25) * 4}, geom.Point{X: -1, Y: 0}
		case pos < 0.75:
			start, dir = geom.Point{X: w * (1 - (pos-0.5)*4), Y: h}, geom.Point{X: 0, Y: -1}
		default:
			start, dir = geom.Point{X: 0, Y: h * (1 - (pos-0.75)*4)}, geom.Point{X: 1, Y: 0}
		}
		start.X += g.jitter(30)
		start.Y += g.jitter(30)
		dir.X += g.jitter(0.4)
		dir.Y += g.jitter(0.4)

		toCenter := math.Hypot(w/2-start.X, h/2-start.Y)
		roots = append(roots, root{
			start:      start,
			dir:        dir,
			length:     toCenter * 0.5 * g.uniform(0.4, 0.8),
			branchProb: g.uniform(0.1, 0.2),
			complexity: g.uniform(0.8, 1.2),
		})
	}
	return roots
}

// innerRoots seeds the quadrants around the content rectangle so the
// whitespace between edge roots fills in.
func (g *grower) innerRoots() []root {
	w, h := g.cfg.Width, g.cfg.Height
	edges := int(math.Floor(2 * (w + h) / g.cfg.PerimeterSpacing))
	n := int(math.Floor(float64(edges) * g.cfg.InnerFraction))
	content := g.cfg.Content()

	roots := make([]root, 0, n)
	for i := 0; i < n; i++ {
		var start geom.Point
		left := g.rng.Float64() * content.Left * 0.8
		right := content.Right + g.rng.Float64()*(w-content.Right)*0.8
		top := g.rng.Float64() * content.Top * 0.8
		bottom := content.Bottom + g.rng.Float64()*(h-content.Bottom)*0.8
		switch g.rng.IntN(4) {
		case 0:
			start = geom.Point{X: left, Y: top}
		case 1:
			start = geom.Point{X: right, Y: top}
		case 2:
			start = geom.Point{X: right, Y: bottom}
		default:
			start = geom.Point{X: left, Y: bottom}
		}
		dir := geom.Point{
			X: towards(w/2-start.X, g.uniform(0.5, 1)),
			Y: towards(h/2-start.Y, g.uniform(0.5, 1)),
		}
		roots = append(roots, root{
			start:      start,
			dir:        dir,
			length:     math.Hypot(w, h) * g.uniform(0.1, 0.3),
			branchProb: g.uniform(0.2, 0.3),
			complexity: g.uniform(1.2, 1.5),
		})
	}
	return roots
}

func towards(delta, magnitude float64) float64 {
	if delta > 0 {
		return magnitude
	}
	return -magnitude
}

func normalize(p geom.Point) geom.Point {
	m := math.Hypot(p.X, p.Y)
	if m == 0 {
		return geom.Point{X: 1, Y: 0}
	}
	return geom.Point{X: p.X / m, Y: p.Y / m}
}

func (g *grower) clampToCanvas(p geom.Point) geom.Point {
	in := g.cfg.EdgeInset
	return geom.Point{
		X: math.Max(in, math.Min(g.cfg.Width-in, p.X)),
		Y: math.Max(in, math.Min(g.cfg.Height-in, p.Y)),
	}
}

// grow walks one root and, recursively, its branches.
func (g *grower) grow(r root) {
	pos := g.clampToCanvas(r.start)
	if g.keep.Contains(pos) || r.complexity <= 0 {
		return
	}
	path := Path{pos}
	idx := len(g.out)
	g.out = append(g.out, nil)

	heading := normalize(r.dir)
	curve := g.jitter(0.8)
	step := g.cfg.StepBase * r.complexity
	steps := int(math.Floor(r.length / step))

	for i := 0; i < steps; i++ {
		if g.rng.Float64() < 0.1 {
			curve = -math.Copysign(g.rng.Float64()*0.4, curve)
		}
		perp := geom.Point{X: -heading.Y, Y: heading.X}
		next := normalize(geom.Point{
			X: heading.X*0.8 + perp.X*curve + g.jitter(0.4),
			Y: heading.Y*0.8 + perp.Y*curve + g.jitter(0.4),
		})
		size := step * g.uniform(0.7, 1.3)

		cand := g.clampToCanvas(geom.Point{X: pos.X + next.X*size, Y: pos.Y + next.Y*size})
		if g.keep.Crosses(pos, cand) {
			heading = g.deflect(heading, cand)
			cand = g.clampToCanvas(geom.Point{X: pos.X + heading.X*size, Y: pos.Y + heading.Y*size})
		} else {
			heading = next
		}

		if cand != pos && !g.keep.Crosses(pos, cand) && !g.keep.Contains(cand) {
			pos = cand
			path = append(path, pos)
		}

		if i > 2 && r.depth < g.cfg.MaxDepth &&
			g.rng.Float64() < r.branchProb*(0.5+float64(i)/float64(steps)) {
			g.branch(r, pos, perp)
		}
	}

	if len(path) < 2 {
		g.out = append(g.out[:idx], g.out[idx+1:]...)
		return
	}
	g.out[idx] = path
}

// deflect bends heading toward the outward normal of the exclusion edge
// nearest to p.
func (g *grower) deflect(heading, p geom.Point) geom.Point {
	k := g.keep
	toLeft := p.X - k.Left
	toRight := k.Right - p.X
	toTop := p.Y - k.Top
	toBottom := k.Bottom - p.Y
	nearest := math.Min(math.Min(toLeft, toRight), math.Min(toTop, toBottom))

	switch nearest {
	case toLeft:
		heading.X = -math.Abs(heading.X) - 0.2
	case toRight:
		heading.X = math.Abs(heading.X) + 0.2
	case toTop:
		heading.Y = -math.Abs(heading.Y) - 0.2
	default:
		heading.Y = math.Abs(heading.Y) + 0.2
	}
	return normalize(heading)
}

func (g *grower) branch(parent root, at, perp geom.Point) {
	length := parent.length * g.uniform(0.2, 0.6)
	g.grow(root{
		start:      at,
		dir:        geom.Point{X: perp.X*0.8 + g.jitter(0.5), Y: perp.Y*0.8 + g.jitter(0.5)},
		length:     length,
		branchProb: parent.branchProb * 0.6,
		complexity: parent.complexity * 0.9,
		depth:      parent.depth + 1,
	})
	if g.rng.Float64() < 0.3 {
		g.grow(root{
			start:      at,
			dir:        geom.Point{X: -perp.X*0.8 + g.jitter(0.5), Y: -perp.Y*0.8 + g.jitter(0.5)},
			length:     length * 0.8,
			branchProb: parent.branchProb * 0.5,
			complexity: parent.complexity * 0.8,
			depth:      parent.depth + 1,
		})
	}
}
