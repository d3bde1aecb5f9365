package anim

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/gridsketch/pkg/grid"
	"github.com/matzehuels/gridsketch/pkg/stroke"
)

// Reveal is the visible prefix of one segment.
type Reveal struct {
	Segment int
	Points  []grid.Dot
}

// Policy decides what part of each segment shows at an eased progress.
type Policy interface {
	Name() string
	Segments() []stroke.Segment
	Reveal(eased float64) []Reveal
}

// =============================================================================
// Sequential
// =============================================================================

// SequentialPolicy reveals segments in order. At eased progress e over n
// segments, ceil(e*n) segments are visible; all but the last are complete and
// the last shows the fractional part of e*n of its points, never fewer than
// two.
type SequentialPolicy struct {
	segments []stroke.Segment
}

// NewSequentialPolicy wraps segments for sequential reveal.
func NewSequentialPolicy(segments []stroke.Segment) *SequentialPolicy {
	return &SequentialPolicy{segments: segments}
}

func (p *SequentialPolicy) Name() string               { return "sequential" }
func (p *SequentialPolicy) Segments() []stroke.Segment { return p.segments }

// Showing returns how many segments are at least partly visible.
func (p *SequentialPolicy) Showing(eased float64) int {
	n := len(p.segments)
	return min(n, max(0, int(math.Ceil(clamp01(eased)*float64(n)))))
}

func (p *SequentialPolicy) Reveal(eased float64) []Reveal {
	showing := p.Showing(eased)
	if showing == 0 {
		return nil
	}
	span := clamp01(eased) * float64(len(p.segments))
	local := span - math.Floor(span)
	if local == 0 {
		local = 1
	}

	out := make([]Reveal, 0, showing)
	for i := 0; i < showing; i++ {
		pts := p.segments[i].Points
		if i == showing-1 {
			pts = prefix(pts, max(2, int(math.Floor(float64(len(pts))*local))))
		}
		if len(pts) >= 2 {
			out = append(out, Reveal{Segment: i, Points: pts})
		}
	}
	return out
}

// =============================================================================
// Staggered
// =============================================================================

// Window is the slice of the eased timeline a segment grows in.
type Window struct {
	Delay    float64
	Duration float64
}

// Local maps eased progress into this window, clamped to [0, 1].
func (w Window) Local(eased float64) float64 {
	if w.Duration <= 0 {
		if eased >= w.Delay {
			return 1
		}
		return 0
	}
	return clamp01((eased - w.Delay) / w.Duration)
}

// StaggeredPolicy grows every segment within its own window. Delays fall in
// [0, 0.4) and durations cover 30-100% of what remains after the delay.
type StaggeredPolicy struct {
	segments []stroke.Segment
	windows  []Window
}

// NewStaggeredPolicy assigns each segment a random window drawn from rng.
func NewStaggeredPolicy(rng *rand.Rand, segments []stroke.Segment) *StaggeredPolicy {
	windows := make([]Window, len(segments))
	for i := range windows {
		delay := rng.Float64() * 0.4
		windows[i] = Window{Delay: delay, Duration: (1 - delay) * (0.3 + rng.Float64()*0.7)}
	}
	return &StaggeredPolicy{segments: segments, windows: windows}
}

func (p *StaggeredPolicy) Name() string               { return "staggered" }
func (p *StaggeredPolicy) Segments() []stroke.Segment { return p.segments }

// Windows returns the per-segment windows, parallel to Segments.
func (p *StaggeredPolicy) Windows() []Window { return p.windows }

func (p *StaggeredPolicy) Reveal(eased float64) []Reveal {
	var out []Reveal
	for i, seg := range p.segments {
		local := p.windows[i].Local(eased)
		n := int(math.Ceil(float64(len(seg.Points)) * local))
		if n < 2 {
			continue
		}
		out = append(out, Reveal{Segment: i, Points: prefix(seg.Points, n)})
	}
	return out
}

func prefix(pts []grid.Dot, n int) []grid.Dot {
	if n > len(pts) {
		n = len(pts)
	}
	return pts[:n]
}
