package organic

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/gridsketch/pkg/geom"
	"github.com/matzehuels/gridsketch/pkg/grid"
	"github.com/matzehuels/gridsketch/pkg/palette"
	"github.com/matzehuels/gridsketch/pkg/stroke"
)

// Resample walks p at fixed arc-length intervals of step and snaps each
// sample to its nearest in-bounds dot. Consecutive repeats are dropped and an
// elbow dot (old row, new column) is inserted between samples that differ in
// both axes, so the result is grid-aligned. A non-positive step defaults to
// half the grid spacing.
func Resample(g grid.Grid, p Path, step float64) []grid.Dot {
	if len(p) == 0 || g.MaxRow() < 0 || g.MaxCol() < 0 {
		return nil
	}
	if step <= 0 {
		step = g.Spacing() / 2
	}

	var out []grid.Dot
	push := func(pt geom.Point) {
		row, col := g.Nearest(pt.X, pt.Y)
		row, col = g.Clamp(row, col)
		d := g.DotAt(row, col)
		if n := len(out); n > 0 {
			last := out[n-1]
			if last.ID() == d.ID() {
				return
			}
			if last.Row != d.Row && last.Col != d.Col {
				out = append(out, g.DotAt(last.Row, d.Col))
			}
		}
		out = append(out, d)
	}

	push(p[0])
	carry := 0.0 // distance walked since the last sample
	for i := 1; i < len(p); i++ {
		a, b := p[i-1], p[i]
		seg := math.Hypot(b.X-a.X, b.Y-a.Y)
		if seg == 0 {
			continue
		}
		t := step - carry
		for ; t <= seg; t += step {
			f := t / seg
			push(geom.Point{X: a.X + (b.X-a.X)*f, Y: a.Y + (b.Y-a.Y)*f})
		}
		carry = seg - (t - step)
	}
	push(p[len(p)-1])
	return out
}

// Segments grows roots on g's canvas and returns them as animatable dot
// sequences, each with a random palette color. Sequences shorter than two
// dots are dropped.
func Segments(rng *rand.Rand, g grid.Grid, pal palette.Palette, cfg Config) []stroke.Segment {
	var segs []stroke.Segment
	for _, p := range Generate(rng, cfg) {
		dots := Resample(g, p, 0)
		if len(dots) < 2 {
			continue
		}
		segs = append(segs, stroke.Segment{Points: dots, Color: pal.Random(rng)})
	}
	return segs
}
