// Package burst generates the "burst" intro: a handful of grid-aligned
// polylines that start near the middle of the canvas and zigzag outward.
package burst

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/gridsketch/pkg/grid"
	"github.com/matzehuels/gridsketch/pkg/palette"
	"github.com/matzehuels/gridsketch/pkg/stroke"
)

// Options bound the random shape of each line.
type Options struct {
	Lines   int // polylines to attempt
	MinRuns int // alternating horizontal/vertical runs per line
	MaxRuns int
	MinRun  int // cells per run
	MaxRun  int
}

// DefaultOptions returns 5 lines of 4-7 runs, each 5-11 cells long.
func DefaultOptions() Options {
	return Options{Lines: 5, MinRuns: 4, MaxRuns: 7, MinRun: 5, MaxRun: 11}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Lines <= 0 {
		o.Lines = d.Lines
	}
	if o.MinRuns <= 0 {
		o.MinRuns = d.MinRuns
	}
	if o.MaxRuns < o.MinRuns {
		o.MaxRuns = o.MinRuns
	}
	if o.MinRun <= 0 {
		o.MinRun = d.MinRun
	}
	if o.MaxRun < o.MinRun {
		o.MaxRun = o.MinRun
	}
	return o
}

// Generate builds up to opts.Lines segments on g. Lines that end up with
// fewer than 3 points are dropped, so the result may be shorter. An empty
// grid yields nil.
func Generate(rng *rand.Rand, g grid.Grid, pal palette.Palette, opts Options) []stroke.Segment {
	if g.MaxRow() < 0 || g.MaxCol() < 0 {
		return nil
	}
	opts = opts.withDefaults()
	centerX, centerY := g.Width()/2, g.Height()/2

	var segments []stroke.Segment
	for i := 0; i < opts.Lines; i++ {
		cur := startDot(rng, g)
		points := []grid.Dot{cur}
		runs := between(rng, opts.MinRuns, opts.MaxRuns)

		for j := 0; j < runs; j++ {
			horizontal := j%2 == 0
			length := between(rng, opts.MinRun, opts.MaxRun)

			dir := 1
			switch {
			case j < 2 && horizontal && cur.X < centerX:
				dir = -1
			case j < 2 && !horizontal && cur.Y < centerY:
				dir = -1
			case j >= 2 && rng.Float64() <= 0.5:
				dir = -1
			}

			for k := 0; k < length; k++ {
				row, col := cur.Row, cur.Col
				if horizontal {
					col += dir
				} else {
					row += dir
				}
				if !g.InBounds(row, col) {
					break
				}
				cur = g.DotAt(row, col)
				points = append(points, cur)
			}
		}

		if len(points) > 2 {
			segments = append(segments, stroke.Segment{Points: points, Color: pal.Random(rng)})
		}
	}
	return segments
}

// startDot picks the center cell shifted by up to a sixth of the canvas in
// each axis.
func startDot(rng *rand.Rand, g grid.Grid) grid.Dot {
	s := g.Spacing()
	w, h := g.Width(), g.Height()

	centerCol := int(math.Floor(w / 2 / s))
	centerRow := int(math.Floor(h / 2 / s))
	offCol := int(math.Floor(rng.Float64()*(w/6/s))) - int(math.Floor(w/12/s))
	offRow := int(math.Floor(rng.Float64()*(h/6/s))) - int(math.Floor(h/12/s))

	row, col := g.Clamp(centerRow+offRow, centerCol+offCol)
	return g.DotAt(row, col)
}

// between returns a uniform int in [lo, hi].
func between(rng *rand.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}
