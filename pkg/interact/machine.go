package interact

import (
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/matzehuels/gridsketch/pkg/coverage"
	"github.com/matzehuels/gridsketch/pkg/errors"
	"github.com/matzehuels/gridsketch/pkg/grid"
	"github.com/matzehuels/gridsketch/pkg/observability"
	"github.com/matzehuels/gridsketch/pkg/palette"
	"github.com/matzehuels/gridsketch/pkg/stroke"
)

// Defaults for the move throttle and the double-click window.
const (
	DefaultMoveInterval = 16 * time.Millisecond
	DefaultDoubleClick  = 400 * time.Millisecond
)

// SessionID is the id of the live record returned by Machine.Session.
const SessionID = "session"

// State is the drawing state.
type State int

const (
	Idle State = iota
	Drawing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Drawing:
		return "drawing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonMiddle
	ButtonSecondary
	ButtonNone
)

// Pointer is one pointer event in content coordinates.
type Pointer struct {
	X, Y   float64
	Button Button
	At     time.Time
	// Interactive marks events whose target is a control rather than the
	// drawing surface.
	Interactive bool
}

// PressResult is the outcome of Machine.Press.
type PressResult int

const (
	PressIgnored PressResult = iota
	PressStarted
	PressDoubleClick
)

func (r PressResult) String() string {
	switch r {
	case PressIgnored:
		return "ignored"
	case PressStarted:
		return "started"
	case PressDoubleClick:
		return "double-click"
	default:
		return fmt.Sprintf("PressResult(%d)", int(r))
	}
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the logger for session and fault messages.
func WithLogger(l *log.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithStyle sets the pen for drawn strokes.
func WithStyle(st stroke.Style) Option {
	return func(m *Machine) { m.style = st }
}

// WithRand sets the source for stroke colors.
func WithRand(rng *rand.Rand) Option {
	return func(m *Machine) {
		if rng != nil {
			m.rng = rng
		}
	}
}

// WithMoveInterval sets the minimum gap between processed moves. Zero
// disables the throttle.
func WithMoveInterval(d time.Duration) Option {
	return func(m *Machine) { m.moveInterval = max(0, d) }
}

// WithDoubleClick sets the double-click window. Zero disables detection.
func WithDoubleClick(d time.Duration) Option {
	return func(m *Machine) { m.doubleClick = max(0, d) }
}

type session struct {
	color  string
	points []grid.Dot
	live   stroke.Record
}

type lastPress struct {
	id grid.ID
	at time.Time
	ok bool
}

// Machine is the pointer state machine. It is not safe for concurrent use.
type Machine struct {
	grid      grid.Grid
	palette   palette.Palette
	covered   *coverage.Set
	committer stroke.Committer
	logger    *log.Logger
	style     stroke.Style
	rng       *rand.Rand

	moveInterval time.Duration
	doubleClick  time.Duration

	state    State
	session  session
	limiter  *rate.Limiter
	previous lastPress
}

// New returns an Idle machine over g. Committed strokes go to committer;
// covered dots are recorded in covered.
func New(g grid.Grid, pal palette.Palette, covered *coverage.Set, committer stroke.Committer, opts ...Option) *Machine {
	m := &Machine{
		grid:         g,
		palette:      pal,
		covered:      covered,
		committer:    committer,
		logger:       log.New(io.Discard),
		style:        stroke.DefaultStyle,
		rng:          rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		moveInterval: DefaultMoveInterval,
		doubleClick:  DefaultDoubleClick,
	}
	if m.covered == nil {
		m.covered = coverage.New()
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetGrid swaps the grid after a resize. An open session keeps its points.
func (m *Machine) SetGrid(g grid.Grid) { m.grid = g }

// SetPalette changes the colors used for new sessions.
func (m *Machine) SetPalette(p palette.Palette) { m.palette = p }

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Press handles a button press. Only primary presses on the surface over an
// in-bounds cell start a session. A second press on the same cell within the
// double-click window reports PressDoubleClick instead and leaves the machine
// Idle.
func (m *Machine) Press(p Pointer) (result PressResult) {
	defer m.recover("Press", func() { result = PressIgnored })

	if p.Button != ButtonPrimary || p.Interactive {
		return PressIgnored
	}
	row, col := m.grid.Nearest(p.X, p.Y)
	if !m.grid.InBounds(row, col) {
		return PressIgnored
	}
	id := grid.ID{Row: row, Col: col}

	if m.isDoubleClick(id, p.At) {
		m.previous = lastPress{}
		m.Reset()
		return PressDoubleClick
	}
	m.previous = lastPress{id: id, at: p.At, ok: true}

	if m.state == Drawing {
		// A release went missing; finish the old stroke first.
		m.finish()
	}

	dot := m.grid.DotAt(row, col)
	m.session = session{
		color:  m.palette.Random(m.rng),
		points: []grid.Dot{dot},
	}
	m.rebuild()
	m.covered.Mark(m.session.points)
	m.limiter = m.newLimiter()
	m.state = Drawing
	m.logger.Debug("stroke started", "dot", id, "color", m.session.color)
	return PressStarted
}

func (m *Machine) isDoubleClick(id grid.ID, at time.Time) bool {
	if m.doubleClick <= 0 || !m.previous.ok || m.previous.id != id {
		return false
	}
	gap := at.Sub(m.previous.at)
	return gap >= 0 && gap <= m.doubleClick
}

func (m *Machine) newLimiter() *rate.Limiter {
	if m.moveInterval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(m.moveInterval), 1)
}

// Move extends the session. It reports whether a point was added. Samples
// arriving faster than the move interval are dropped, and coordinates off
// the canvas snap to the nearest edge cell.
func (m *Machine) Move(p Pointer) (added bool) {
	defer m.recover("Move", func() { added = false })

	if m.state != Drawing || len(m.session.points) == 0 {
		return false
	}
	if !m.limiter.AllowN(p.At, 1) {
		return false
	}
	last := m.session.points[len(m.session.points)-1]
	next := m.grid.Snap(p.X, p.Y, last)
	if next.ID() == last.ID() {
		return false
	}
	m.session.points = append(m.session.points, next)
	m.covered.MarkRun(last.ID(), next.ID())
	m.rebuild()
	return true
}

// Release ends the session. A session with two or more points is committed
// and returned; shorter sessions are dropped.
func (m *Machine) Release(p Pointer) (rec stroke.Record, committed bool) {
	defer m.recover("Release", func() { rec, committed = stroke.Record{}, false })

	if m.state != Drawing {
		return stroke.Record{}, false
	}
	return m.finish()
}

func (m *Machine) finish() (stroke.Record, bool) {
	s := m.session
	m.clearSession()
	if len(s.points) < 2 {
		m.logger.Debug("stroke discarded", "points", len(s.points))
		return stroke.Record{}, false
	}
	rec := stroke.New(stroke.OriginPointer, s.color, m.style, stroke.OpacityCommitted, s.points)
	if m.committer != nil {
		m.committer.Commit(rec)
	}
	m.logger.Debug("stroke committed", "id", rec.ID, "points", len(rec.Points))
	return rec, true
}

// Reset drops any open session without committing it and reports whether
// there was one.
func (m *Machine) Reset() bool {
	had := m.state == Drawing
	m.clearSession()
	return had
}

func (m *Machine) clearSession() {
	m.session = session{}
	m.limiter = nil
	m.state = Idle
}

// Session returns the in-progress stroke as a live record. ok is false when
// Idle.
func (m *Machine) Session() (rec stroke.Record, ok bool) {
	if m.state != Drawing {
		return stroke.Record{}, false
	}
	return m.session.live, true
}

// Points returns a copy of the session's points.
func (m *Machine) Points() []grid.Dot {
	return append([]grid.Dot(nil), m.session.points...)
}

func (m *Machine) rebuild() {
	m.session.live = stroke.Live(SessionID, stroke.OriginPointer, m.session.color, m.style, m.session.points)
}

// recover turns a panic in a handler into a logged fault and a reset
// session. fallback sets the handler's return values.
func (m *Machine) recover(where string, fallback func()) {
	r := recover()
	if r == nil {
		return
	}
	err := errors.Recovered("interact."+where, r)
	m.logger.Error("pointer handler failed", "err", err)
	observability.Surface().OnFault("interact."+where, err)
	m.clearSession()
	fallback()
}
