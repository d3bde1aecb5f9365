package surface

import (
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/matzehuels/gridsketch/pkg/anim"
	"github.com/matzehuels/gridsketch/pkg/coverage"
	"github.com/matzehuels/gridsketch/pkg/errors"
	"github.com/matzehuels/gridsketch/pkg/grid"
	"github.com/matzehuels/gridsketch/pkg/interact"
	"github.com/matzehuels/gridsketch/pkg/observability"
	"github.com/matzehuels/gridsketch/pkg/palette"
	"github.com/matzehuels/gridsketch/pkg/stroke"
)

// Option configures a Surface beyond its Options.
type Option func(*Surface)

// WithLogger overrides Options.Logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Surface) {
		if l != nil {
			s.logger = l
		}
	}
}

type size struct{ w, h float64 }

type dotKey struct {
	covered uint64
	view    grid.Viewport
	grid    grid.Grid
	margin  float64
	valid   bool
}

// Surface coordinates the dot layer, the stroke layer, the pointer machine
// and the intro. It is not safe for concurrent use: hosts drive it from one
// goroutine, which is what bubbletea's Update loop provides.
type Surface struct {
	opts    Options
	logger  *log.Logger
	palette palette.Palette
	dark    bool

	grid     grid.Grid
	view     size
	viewport grid.Viewport

	covered *coverage.Set
	strokes *Collection
	machine *interact.Machine
	intro   *anim.Scheduler

	introShapes []stroke.Record
	scroll      *rate.Limiter
	resizeToken uint64
	pending     *size

	dots      []grid.Dot
	dotKey    dotKey
	dotRev    uint64
	strokeRev uint64
	closed    bool
}

// New builds a surface from opts. The intro is generated immediately but
// does not play until Start.
func New(opts Options, o ...Option) (*Surface, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	pal, err := palette.Parse(opts.Palette)
	if err != nil {
		return nil, err
	}

	s := &Surface{
		opts:    opts,
		logger:  opts.Logger,
		palette: pal,
		dark:    opts.Dark,
		view:    size{opts.Width, opts.Height},
	}
	for _, fn := range o {
		fn(s)
	}

	s.grid, err = grid.New(opts.Spacing, opts.Width, opts.Height*opts.Pages)
	if err != nil {
		return nil, err
	}
	s.viewport = grid.ViewportAt(0, 0, opts.Width, opts.Height)
	s.scroll = rate.NewLimiter(rate.Every(opts.ScrollInterval), 1)

	seed := *opts.Seed
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	s.covered = coverage.New()
	s.strokes = NewCollection(s.covered, s.logger)
	s.machine = interact.New(s.grid, pal, s.covered, s.strokes,
		interact.WithLogger(s.logger),
		interact.WithStyle(opts.Style()),
		interact.WithRand(rng),
		interact.WithMoveInterval(opts.MoveInterval),
		interact.WithDoubleClick(opts.DoubleClick),
	)
	// The intro fills the first screen, not the whole scrollable canvas.
	s.intro = newIntro(&s.opts, rng, s.grid.Resize(opts.Width, opts.Height), pal, s.strokes, s.logger)

	s.logger.Debug("surface ready",
		"width", opts.Width,
		"height", opts.Height,
		"rows", s.grid.MaxRow()+1,
		"cols", s.grid.MaxCol()+1,
		"intro", opts.Intro)
	return s, nil
}

// Start plays the intro from now. It reports whether an intro began.
func (s *Surface) Start(now time.Time) bool {
	if s.closed || s.intro == nil {
		return false
	}
	return s.intro.Start(now)
}

// =============================================================================
// Input
// =============================================================================

// toContent shifts window coordinates by the scroll offset.
func (s *Surface) toContent(p interact.Pointer) interact.Pointer {
	p.X += s.viewport.Left
	p.Y += s.viewport.Top
	return p
}

// Press forwards a press in window coordinates. A double click clears the
// surface.
func (s *Surface) Press(p interact.Pointer) interact.PressResult {
	if s.closed {
		return interact.PressIgnored
	}
	res := s.machine.Press(s.toContent(p))
	switch res {
	case interact.PressDoubleClick:
		s.ClearAll()
	case interact.PressStarted:
		s.strokeRev++
	}
	return res
}

// Move forwards a move in window coordinates and reports whether the
// session grew.
func (s *Surface) Move(p interact.Pointer) bool {
	if s.closed || !s.machine.Move(s.toContent(p)) {
		return false
	}
	s.strokeRev++
	return true
}

// Release ends the session and reports whether a stroke was committed.
func (s *Surface) Release(p interact.Pointer) bool {
	if s.closed || s.machine.State() != interact.Drawing {
		return false
	}
	_, ok := s.machine.Release(s.toContent(p))
	s.strokeRev++
	return ok
}

// Key handles a key press. c and C clear the surface.
func (s *Surface) Key(r rune) bool {
	switch r {
	case 'c', 'C':
		s.ClearAll()
		return true
	}
	return false
}

// ClearAll empties the surface from any state: it cancels the intro if it
// has not finished, drops the open session, removes every committed stroke
// and uncovers every dot.
func (s *Surface) ClearAll() {
	cancelled := s.intro != nil && s.intro.Cancel()
	s.introShapes = nil
	s.machine.Reset()
	strokes := s.strokes.Clear()
	covered := s.covered.Len()
	s.covered.Clear()
	s.strokeRev++

	s.logger.Debug("cleared", "strokes", strokes, "covered", covered, "cancelled_intro", cancelled)
	observability.Surface().OnClear(strokes, covered, cancelled)
}

// Frame advances the intro to now. It reports whether the stroke layer
// changed.
func (s *Surface) Frame(now time.Time) bool {
	if s.closed || s.intro == nil || !s.intro.Running() {
		return false
	}
	f := s.intro.Tick(now)
	s.introShapes = f.Shapes
	s.strokeRev++
	return true
}

// Animating reports whether the intro is still playing.
func (s *Surface) Animating() bool {
	return s.intro != nil && s.intro.Running()
}

// =============================================================================
// Window
// =============================================================================

// RequestResize records a new window size and returns its token. Hosts wait
// Options.ResizeDebounce and then call ApplyResize with the token; only the
// latest request applies.
func (s *Surface) RequestResize(width, height float64) uint64 {
	s.resizeToken++
	s.pending = &size{width, height}
	return s.resizeToken
}

// ApplyResize applies the pending size if token is still the latest request.
func (s *Surface) ApplyResize(token uint64) bool {
	if s.closed || s.pending == nil || token != s.resizeToken {
		return false
	}
	next := *s.pending
	s.pending = nil
	s.resize(next.w, next.h)
	return true
}

func (s *Surface) resize(width, height float64) {
	s.view = size{max(0, width), max(0, height)}
	s.grid = s.grid.Resize(s.view.w, s.view.h*s.opts.Pages)
	s.machine.SetGrid(s.grid)
	s.setViewport(s.viewport.Top, s.viewport.Left)
	s.logger.Debug("resized", "width", s.view.w, "height", s.view.h,
		"rows", s.grid.MaxRow()+1, "cols", s.grid.MaxCol()+1)
}

// Scroll moves the viewport to the given content offset. Calls closer than
// Options.ScrollInterval to the last accepted one are dropped and return
// false.
func (s *Surface) Scroll(top, left float64, at time.Time) bool {
	if s.closed || !s.scroll.AllowN(at, 1) {
		return false
	}
	s.setViewport(top, left)
	return true
}

func (s *Surface) setViewport(top, left float64) {
	top = min(max(0, top), max(0, s.grid.Height()-s.view.h))
	left = min(max(0, left), max(0, s.grid.Width()-s.view.w))
	s.viewport = grid.ViewportAt(top, left, s.view.w, s.view.h)
}

// SetDark switches the theme.
func (s *Surface) SetDark(dark bool) {
	if s.dark == dark {
		return
	}
	s.dark = dark
	s.dotRev++
	s.strokeRev++
}

// SetPalette changes the colors used for new strokes.
func (s *Surface) SetPalette(colors []string) error {
	pal, err := palette.Parse(colors)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid palette")
	}
	s.palette = pal
	s.machine.SetPalette(pal)
	return nil
}

// Close tears the surface down. The intro stops and the open session is
// dropped; later input is ignored.
func (s *Surface) Close() {
	if s.closed {
		return
	}
	if s.intro != nil {
		s.intro.Cancel()
	}
	s.introShapes = nil
	s.machine.Reset()
	s.closed = true
}

// =============================================================================
// Read side
// =============================================================================

// Dots returns the visible dots that no stroke covers, row-major.
func (s *Surface) Dots() []grid.Dot {
	s.refreshDots()
	return s.dots
}

// DotRevision changes whenever Dots would return something different.
func (s *Surface) DotRevision() uint64 {
	s.refreshDots()
	return s.dotRev
}

func (s *Surface) refreshDots() {
	key := dotKey{
		covered: s.covered.Revision(),
		view:    s.viewport,
		grid:    s.grid,
		margin:  s.opts.ViewportMargin,
		valid:   true,
	}
	if key == s.dotKey {
		return
	}
	s.dotKey = key

	visible := s.grid.Visible(s.viewport, s.opts.ViewportMargin)
	dots := make([]grid.Dot, 0, len(visible))
	for _, d := range visible {
		if !s.covered.Has(d.ID()) {
			dots = append(dots, d)
		}
	}
	s.dots = dots
	s.dotRev++
}

// Shapes returns the full stroke layer in paint order: committed strokes,
// then the intro frame, then the open session.
func (s *Surface) Shapes() []stroke.Record {
	committed := s.strokes.Records()
	out := make([]stroke.Record, 0, len(committed)+len(s.introShapes)+1)
	out = append(out, committed...)
	out = append(out, s.introShapes...)
	if rec, ok := s.machine.Session(); ok {
		out = append(out, rec)
	}
	return out
}

// StrokeRevision changes whenever Shapes would return something different.
func (s *Surface) StrokeRevision() uint64 {
	return s.strokeRev + s.strokes.Revision()
}

// Strokes returns the committed strokes, oldest first.
func (s *Surface) Strokes() []stroke.Record {
	return append([]stroke.Record(nil), s.strokes.Records()...)
}

// Covered is the number of hidden dots.
func (s *Surface) Covered() int { return s.covered.Len() }

// IsCovered reports whether the dot id is hidden.
func (s *Surface) IsCovered(id grid.ID) bool { return s.covered.Has(id) }

func (s *Surface) Grid() grid.Grid          { return s.grid }
func (s *Surface) Viewport() grid.Viewport  { return s.viewport }
func (s *Surface) Dark() bool               { return s.dark }
func (s *Surface) Palette() palette.Palette { return s.palette }
func (s *Surface) Drawing() bool            { return s.machine.State() == interact.Drawing }
func (s *Surface) Options() Options         { return s.opts }
func (s *Surface) Closed() bool             { return s.closed }

// IntroState returns the intro lifecycle. A surface without an intro reports
// Complete.
func (s *Surface) IntroState() anim.State {
	if s.intro == nil {
		return anim.Complete
	}
	return s.intro.State()
}
