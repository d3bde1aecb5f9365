package surface

import (
	"github.com/matzehuels/gridsketch/pkg/anim"
	"github.com/matzehuels/gridsketch/pkg/grid"
	"github.com/matzehuels/gridsketch/pkg/palette"
	"github.com/matzehuels/gridsketch/pkg/stroke"
)

// Snapshot is an immutable copy of everything a renderer needs for one
// frame. Coordinates are in content space; renderers subtract the viewport
// origin.
type Snapshot struct {
	Width, Height  float64
	Viewport       grid.Viewport
	Dark           bool
	Background     string
	DotColor       string
	DotRadius      float64
	Dots           []grid.Dot
	Shapes         []stroke.Record
	Intro          anim.State
	DotRevision    uint64
	StrokeRevision uint64
}

// Snapshot captures the current frame.
func (s *Surface) Snapshot() Snapshot {
	dots := append([]grid.Dot(nil), s.Dots()...)
	return Snapshot{
		Width:          s.view.w,
		Height:         s.view.h,
		Viewport:       s.viewport,
		Dark:           s.dark,
		Background:     palette.Background(s.dark),
		DotColor:       palette.DotColor,
		DotRadius:      *s.opts.DotRadius,
		Dots:           dots,
		Shapes:         s.Shapes(),
		Intro:          s.IntroState(),
		DotRevision:    s.dotRev,
		StrokeRevision: s.StrokeRevision(),
	}
}

// Committed counts the committed strokes in the snapshot, leaving out the
// open session and the intro frame.
func (sn Snapshot) Committed() int {
	n := 0
	for _, r := range sn.Shapes {
		if r.Opacity == stroke.OpacityCommitted {
			n++
		}
	}
	return n
}
