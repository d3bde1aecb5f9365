package anim

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/matzehuels/gridsketch/pkg/grid"
	"github.com/matzehuels/gridsketch/pkg/stroke"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// rows returns n horizontal segments of length points each, one per row.
func rows(t *testing.T, n, length int) []stroke.Segment {
	t.Helper()
	g, err := grid.New(23, 800, 600)
	if err != nil {
		t.Fatal(err)
	}
	segs := make([]stroke.Segment, n)
	for i := range segs {
		for c := 0; c < length; c++ {
			segs[i].Points = append(segs[i].Points, g.DotAt(i, c))
		}
		segs[i].Color = "#f24236"
	}
	return segs
}

type recorder struct {
	records []stroke.Record
	calls   int
}

func (r *recorder) Commit(records ...stroke.Record) {
	r.calls++
	r.records = append(r.records, records...)
}

type panicPolicy struct{ segs []stroke.Segment }

func (p panicPolicy) Name() string               { return "panic" }
func (p panicPolicy) Segments() []stroke.Segment { return p.segs }
func (p panicPolicy) Reveal(float64) []Reveal    { panic("boom") }

func TestEaseInOutQuart(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-1, 0},
		{0, 0},
		{0.25, 0.03125},
		{0.5, 0.5},
		{0.75, 0.96875},
		{1, 1},
		{2, 1},
	}
	for _, tt := range tests {
		if got := EaseInOutQuart(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("EaseInOutQuart(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSequentialReveal(t *testing.T) {
	p := NewSequentialPolicy(rows(t, 4, 10))

	if got := p.Reveal(0); got != nil {
		t.Errorf("Reveal(0) = %v, want nil", got)
	}

	// 0.375 * 4 = 1.5: first segment full, second half shown.
	got := p.Reveal(0.375)
	if len(got) != 2 {
		t.Fatalf("Reveal(0.375) returned %d segments, want 2", len(got))
	}
	if len(got[0].Points) != 10 || len(got[1].Points) != 5 {
		t.Errorf("Reveal(0.375) lengths = %d, %d, want 10, 5", len(got[0].Points), len(got[1].Points))
	}

	// An exact boundary shows the last segment fully.
	got = p.Reveal(0.5)
	if len(got) != 2 || len(got[1].Points) != 10 {
		t.Errorf("Reveal(0.5) = %d segments, want 2 full", len(got))
	}

	// Early partial reveal keeps at least two points.
	got = p.Reveal(0.01)
	if len(got) != 1 || len(got[0].Points) != 2 {
		t.Errorf("Reveal(0.01) = %v, want one segment with 2 points", got)
	}

	got = p.Reveal(1)
	if len(got) != 4 {
		t.Fatalf("Reveal(1) returned %d segments, want 4", len(got))
	}
	for _, r := range got {
		if len(r.Points) != 10 {
			t.Errorf("segment %d shows %d points at completion, want 10", r.Segment, len(r.Points))
		}
	}
}

func TestStaggeredWindows(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 3^0xdeadbeef))
	p := NewStaggeredPolicy(rng, rows(t, 20, 8))

	for i, w := range p.Windows() {
		if w.Delay < 0 || w.Delay >= 0.4 {
			t.Errorf("window %d delay = %v, want [0, 0.4)", i, w.Delay)
		}
		rest := 1 - w.Delay
		if w.Duration < 0.3*rest-1e-9 || w.Duration > rest+1e-9 {
			t.Errorf("window %d duration = %v, want within [%v, %v]", i, w.Duration, 0.3*rest, rest)
		}
	}
	if got := p.Reveal(0); len(got) != 0 {
		t.Errorf("Reveal(0) = %d segments, want 0", len(got))
	}
	got := p.Reveal(1)
	if len(got) != 20 {
		t.Fatalf("Reveal(1) = %d segments, want 20", len(got))
	}
	for _, r := range got {
		if len(r.Points) != 8 {
			t.Errorf("segment %d shows %d points at completion, want 8", r.Segment, len(r.Points))
		}
	}
}

func TestSchedulerSequentialRun(t *testing.T) {
	segs := rows(t, 5, 9)
	policy := NewSequentialPolicy(segs)
	rec := &recorder{}
	s := New(policy, 5*time.Second, rec)

	if s.State() != Idle {
		t.Fatalf("State() = %v, want idle", s.State())
	}
	if !s.Start(t0) {
		t.Fatal("Start() = false, want true")
	}

	prev := 0
	now := t0
	var last Frame
	for i := 0; i < 400 && s.Running(); i++ {
		now = now.Add(16 * time.Millisecond)
		last = s.Tick(now)
		if last.Done {
			break
		}
		showing := policy.Showing(last.Eased)
		if showing < prev {
			t.Fatalf("segments shown went from %d to %d at %v", prev, showing, now.Sub(t0))
		}
		prev = showing
		if len(last.Shapes) != showing {
			t.Errorf("frame has %d shapes, want %d", len(last.Shapes), showing)
		}
		for _, sh := range last.Shapes {
			if sh.Opacity != stroke.OpacityLive {
				t.Errorf("animated shape opacity = %v, want %v", sh.Opacity, stroke.OpacityLive)
			}
		}
	}

	if !last.Done || s.State() != Complete {
		t.Fatalf("after %v: state %v, done %v, want complete", now.Sub(t0), s.State(), last.Done)
	}
	if got := policy.Showing(last.Eased); got != len(segs) {
		t.Errorf("Showing at completion = %d, want %d", got, len(segs))
	}
	if rec.calls != 1 || len(rec.records) != len(segs) {
		t.Fatalf("committed %d records in %d calls, want %d in 1", len(rec.records), rec.calls, len(segs))
	}
	for _, r := range rec.records {
		if r.Opacity != stroke.OpacityCommitted || r.Origin != stroke.OriginIntro {
			t.Errorf("committed record = %+v, want committed intro", r)
		}
		if len(r.Points) != 9 {
			t.Errorf("committed record has %d points, want 9", len(r.Points))
		}
	}

	// Complete is terminal.
	if s.Start(now) {
		t.Error("Start() after completion = true, want false")
	}
	if f := s.Tick(now.Add(time.Second)); !f.Done || len(f.Shapes) != 0 {
		t.Errorf("Tick() after completion = %+v, want empty done frame", f)
	}
	if rec.calls != 1 {
		t.Errorf("committer called %d times, want 1", rec.calls)
	}
}

func TestSchedulerCancel(t *testing.T) {
	rec := &recorder{}
	s := New(NewSequentialPolicy(rows(t, 3, 6)), time.Second, rec)
	s.Start(t0)
	if f := s.Tick(t0.Add(600 * time.Millisecond)); len(f.Shapes) == 0 {
		t.Fatal("expected shapes mid-animation")
	}

	if !s.Cancel() {
		t.Error("Cancel() = false, want true while running")
	}
	if s.State() != Complete || !s.Cancelled() {
		t.Errorf("after Cancel: state %v cancelled %v", s.State(), s.Cancelled())
	}
	if len(s.Shapes()) != 0 {
		t.Error("Cancel() should drop animated shapes")
	}
	s.Tick(t0.Add(2 * time.Second))
	if len(rec.records) != 0 {
		t.Errorf("cancelled scheduler committed %d records", len(rec.records))
	}
	if s.Cancel() {
		t.Error("second Cancel() = true, want false")
	}
}

func TestSchedulerCancelBeforeStart(t *testing.T) {
	s := New(NewSequentialPolicy(rows(t, 2, 4)), time.Second, nil)
	if s.Cancel() {
		t.Error("Cancel() on idle scheduler = true, want false")
	}
	if s.Start(t0) {
		t.Error("Start() after Cancel() = true, want false")
	}
}

func TestSchedulerRecoversPanic(t *testing.T) {
	rec := &recorder{}
	s := New(panicPolicy{segs: rows(t, 2, 4)}, time.Second, rec)
	s.Start(t0)

	f := s.Tick(t0.Add(100 * time.Millisecond))
	if !f.Done {
		t.Error("Tick() after panic should report done")
	}
	if s.State() != Complete {
		t.Errorf("State() = %v, want complete", s.State())
	}
	if len(rec.records) != 0 {
		t.Errorf("faulted scheduler committed %d records", len(rec.records))
	}
}

func TestSchedulerEmptyPolicy(t *testing.T) {
	s := New(NewSequentialPolicy(nil), time.Second, nil)
	if s.Start(t0) {
		t.Error("Start() with no segments = true, want false")
	}
	if s.State() != Complete {
		t.Errorf("State() = %v, want complete", s.State())
	}
}

func TestSchedulerDropsInvalidSegments(t *testing.T) {
	segs := rows(t, 2, 5)
	segs = append(segs, stroke.Segment{Points: segs[0].Points[:1], Color: "#2e86ab"})
	rec := &recorder{}
	s := New(NewSequentialPolicy(segs), time.Second, rec, WithEasing(Linear))
	s.Start(t0)
	s.Tick(t0.Add(time.Second))
	if len(rec.records) != 2 {
		t.Errorf("committed %d records, want 2", len(rec.records))
	}
}
