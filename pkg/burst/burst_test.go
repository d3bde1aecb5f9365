package burst

import (
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/matzehuels/gridsketch/pkg/grid"
	"github.com/matzehuels/gridsketch/pkg/palette"
	"github.com/matzehuels/gridsketch/pkg/stroke"
)

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

func testGrid(t *testing.T, w, h float64) grid.Grid {
	t.Helper()
	g, err := grid.New(23, w, h)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestGenerateShape(t *testing.T) {
	g := testGrid(t, 1280, 800)
	pal := palette.Default()

	for seed := uint64(0); seed < 50; seed++ {
		segs := Generate(newRNG(seed), g, pal, DefaultOptions())
		if len(segs) > 5 {
			t.Fatalf("seed %d: %d segments, want at most 5", seed, len(segs))
		}
		for i, s := range segs {
			if len(s.Points) < 3 {
				t.Errorf("seed %d segment %d: %d points, want >= 3", seed, i, len(s.Points))
			}
			if !stroke.Aligned(s.Points) {
				t.Errorf("seed %d segment %d is not grid-aligned", seed, i)
			}
			for _, p := range s.Points {
				if !g.InBounds(p.Row, p.Col) {
					t.Errorf("seed %d segment %d: %v out of bounds", seed, i, p.ID())
				}
			}
			if !contains(pal, s.Color) {
				t.Errorf("seed %d segment %d: color %s not in palette", seed, i, s.Color)
			}
		}
	}
}

func TestGenerateRunLengths(t *testing.T) {
	g := testGrid(t, 5000, 5000)
	opts := DefaultOptions()

	for _, s := range Generate(newRNG(3), g, palette.Default(), opts) {
		runs := 1
		length := 1
		for i := 2; i < len(s.Points); i++ {
			a, b, c := s.Points[i-2], s.Points[i-1], s.Points[i]
			turned := (a.Row == b.Row) != (b.Row == c.Row)
			if !turned {
				length++
				continue
			}
			if length < opts.MinRun || length > opts.MaxRun {
				t.Errorf("run of %d cells, want %d..%d", length, opts.MinRun, opts.MaxRun)
			}
			runs++
			length = 1
		}
		if runs > opts.MaxRuns {
			t.Errorf("%d runs, want at most %d", runs, opts.MaxRuns)
		}
	}
}

func TestGenerateFirstRunPointsOutward(t *testing.T) {
	g := testGrid(t, 3000, 3000)
	centerX := g.Width() / 2

	for seed := uint64(0); seed < 30; seed++ {
		for _, s := range Generate(newRNG(seed), g, palette.Default(), DefaultOptions()) {
			a, b := s.Points[0], s.Points[1]
			if a.Row != b.Row {
				continue
			}
			outward := (a.X < centerX && b.X < a.X) || (a.X >= centerX && b.X > a.X)
			if !outward {
				t.Errorf("seed %d: first run %v -> %v heads toward the center", seed, a.ID(), b.ID())
			}
		}
	}
}

func TestGenerateIsReproducible(t *testing.T) {
	g := testGrid(t, 1024, 768)
	a := Generate(newRNG(99), g, palette.Default(), DefaultOptions())
	b := Generate(newRNG(99), g, palette.Default(), DefaultOptions())
	if !reflect.DeepEqual(a, b) {
		t.Error("Generate() with the same seed should be reproducible")
	}
}

func TestGenerateTinyGrid(t *testing.T) {
	var empty grid.Grid
	if segs := Generate(newRNG(1), empty, palette.Default(), DefaultOptions()); segs != nil {
		t.Errorf("Generate() on empty grid = %v, want nil", segs)
	}

	// A single dot cannot produce a 3 point line.
	g := testGrid(t, 23, 23)
	if segs := Generate(newRNG(1), g, palette.Default(), DefaultOptions()); len(segs) != 0 {
		t.Errorf("Generate() on 1x1 grid = %d segments, want 0", len(segs))
	}
}

func contains(p palette.Palette, c string) bool {
	for _, x := range p {
		if x == c {
			return true
		}
	}
	return false
}
