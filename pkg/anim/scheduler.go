package anim

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridsketch/pkg/errors"
	"github.com/matzehuels/gridsketch/pkg/observability"
	"github.com/matzehuels/gridsketch/pkg/stroke"
)

// DefaultDuration is how long the intro takes from Start to commit.
const DefaultDuration = 5 * time.Second

// State is the scheduler lifecycle. Complete is terminal.
type State int

const (
	Idle State = iota
	Running
	Complete
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Complete:
		return "complete"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Frame is everything a host needs to draw one animation frame. Shapes is the
// complete animated set for this frame and replaces the previous one.
type Frame struct {
	Shapes   []stroke.Record
	Progress float64
	Eased    float64
	Done     bool
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger used for lifecycle and fault messages.
func WithLogger(l *log.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStyle sets the pen used for animated and committed strokes.
func WithStyle(st stroke.Style) Option {
	return func(s *Scheduler) { s.style = st }
}

// WithEasing replaces EaseInOutQuart.
func WithEasing(fn func(float64) float64) Option {
	return func(s *Scheduler) {
		if fn != nil {
			s.ease = fn
		}
	}
}

// WithVariant names the intro for logs and hooks.
func WithVariant(name string) Option {
	return func(s *Scheduler) { s.variant = name }
}

// Scheduler drives one intro animation. It is not safe for concurrent use;
// the surface calls it from a single goroutine.
type Scheduler struct {
	policy    Policy
	duration  time.Duration
	committer stroke.Committer
	logger    *log.Logger
	style     stroke.Style
	ease      func(float64) float64
	variant   string

	state     State
	cancelled bool
	start     time.Time
	progress  float64
	eased     float64
	shapes    []stroke.Record
}

// New returns an Idle scheduler. A non-positive duration falls back to
// DefaultDuration. committer may be nil, in which case finished strokes are
// dropped.
func New(policy Policy, duration time.Duration, committer stroke.Committer, opts ...Option) *Scheduler {
	if duration <= 0 {
		duration = DefaultDuration
	}
	s := &Scheduler{
		policy:    policy,
		duration:  duration,
		committer: committer,
		logger:    log.New(io.Discard),
		style:     stroke.DefaultStyle,
		ease:      EaseInOutQuart,
		variant:   "intro",
	}
	if policy != nil {
		s.variant = policy.Name()
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins the clock at now. It only has an effect from Idle. A scheduler
// with nothing to reveal goes straight to Complete.
func (s *Scheduler) Start(now time.Time) bool {
	if s.state != Idle {
		return false
	}
	if s.policy == nil || len(s.policy.Segments()) == 0 {
		s.logger.Debug("intro has no segments", "variant", s.variant)
		s.state = Complete
		return false
	}
	s.start = now
	s.state = Running
	s.logger.Debug("intro started", "variant", s.variant, "segments", len(s.policy.Segments()), "duration", s.duration)
	return true
}

// Tick advances the clock to now and returns the frame to draw. Outside
// Running it returns an empty frame. A panic raised by the policy or the
// committer is recovered and leaves the scheduler Complete.
func (s *Scheduler) Tick(now time.Time) (f Frame) {
	if s.state != Running {
		return Frame{Progress: s.progress, Eased: s.eased, Done: s.state == Complete}
	}
	defer func() {
		if r := recover(); r != nil {
			err := errors.Recovered("anim.Tick", r)
			s.logger.Error("intro aborted", "variant", s.variant, "err", err)
			observability.Surface().OnFault("anim.Tick", err)
			s.state = Complete
			s.shapes = nil
			f = Frame{Progress: s.progress, Eased: s.eased, Done: true}
		}
	}()

	elapsed := now.Sub(s.start)
	s.progress = clamp01(float64(elapsed) / float64(s.duration))
	s.eased = s.ease(s.progress)

	if s.progress >= 1 {
		s.finish(elapsed)
		return Frame{Progress: 1, Eased: s.eased, Done: true}
	}

	reveals := s.policy.Reveal(s.eased)
	segs := s.policy.Segments()
	shapes := make([]stroke.Record, 0, len(reveals))
	for _, r := range reveals {
		id := fmt.Sprintf("%s-%d", s.variant, r.Segment)
		shapes = append(shapes, stroke.Live(id, stroke.OriginIntro, segs[r.Segment].Color, s.style, r.Points))
	}
	s.shapes = shapes
	return Frame{Shapes: shapes, Progress: s.progress, Eased: s.eased}
}

func (s *Scheduler) finish(elapsed time.Duration) {
	s.state = Complete
	s.shapes = nil

	var records []stroke.Record
	for _, seg := range s.policy.Segments() {
		rec := stroke.New(stroke.OriginIntro, seg.Color, s.style, stroke.OpacityCommitted, seg.Points)
		if err := rec.Validate(); err != nil {
			s.logger.Warn("skipping intro segment", "err", err)
			continue
		}
		records = append(records, rec)
	}
	if s.committer != nil && len(records) > 0 {
		s.committer.Commit(records...)
	}
	s.logger.Debug("intro complete", "variant", s.variant, "strokes", len(records), "elapsed", elapsed)
	observability.Surface().OnIntroComplete(s.variant, len(records), elapsed)
}

// Cancel halts the clock without committing. It reports whether the
// scheduler was Running.
func (s *Scheduler) Cancel() bool {
	if s.state == Complete {
		return false
	}
	wasRunning := s.state == Running
	s.state = Complete
	s.cancelled = true
	s.shapes = nil
	if wasRunning {
		s.logger.Debug("intro cancelled", "variant", s.variant, "progress", s.progress)
	}
	return wasRunning
}

func (s *Scheduler) State() State      { return s.state }
func (s *Scheduler) Running() bool     { return s.state == Running }
func (s *Scheduler) Cancelled() bool   { return s.cancelled }
func (s *Scheduler) Progress() float64 { return s.progress }
func (s *Scheduler) Variant() string   { return s.variant }

// Shapes returns the animated shapes from the last Tick.
func (s *Scheduler) Shapes() []stroke.Record { return s.shapes }
