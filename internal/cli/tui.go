package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridsketch/pkg/grid"
	"github.com/matzehuels/gridsketch/pkg/interact"
	"github.com/matzehuels/gridsketch/pkg/render/braille"
	"github.com/matzehuels/gridsketch/pkg/surface"
)

const (
	// frameInterval is the redraw rate while something animates.
	frameInterval = 16 * time.Millisecond

	// wheelRows is how many terminal rows one wheel notch scrolls.
	wheelRows = 3

	// settle is the distance and speed below which the scroll spring stops.
	settle = 0.5

	// rowNudge shifts a sideways drag sample off its row line, in units.
	// Terminal rows sit exactly on dot rows.
	rowNudge = 1.5
)

// Status line buttons, left to right.
const (
	buttonClear = "[clear]"
	buttonTheme = "[theme]"
)

// =============================================================================
// Messages
// =============================================================================

// frameMsg is one animation frame.
type frameMsg time.Time

// resizeMsg fires once the resize debounce has elapsed.
type resizeMsg struct{ token uint64 }

// configMsg carries a reloaded config file.
type configMsg struct{ cfg *fileConfig }

// =============================================================================
// Model
// =============================================================================

type viewKey struct {
	dots, strokes uint64
	viewport      grid.Viewport
	cols, rows    int
}

// drawModel is the bubbletea model of the draw command. The terminal is a
// window onto the surface: each cell shows a 2x4 braille block of unit
// sized pixels, and the last row is the status line.
type drawModel struct {
	opts    surface.Options
	logger  *log.Logger
	now     func() time.Time
	surface *surface.Surface
	err     error

	unit       float64
	cols, rows int // canvas cells, status line excluded
	next       struct{ cols, rows int }
	// drag is the last pressed or dragged cell.
	drag struct{ x, y int }

	spring  harmonica.Spring
	scroll  float64 // eased viewport top
	speed   float64
	target  float64
	ticking bool

	cache    string
	cacheKey viewKey
}

func newDrawModel(opts surface.Options, logger *log.Logger, now func() time.Time) *drawModel {
	if now == nil {
		now = time.Now
	}
	opts.SetDefaults()
	return &drawModel{
		opts:   opts,
		logger: logger,
		now:    now,
		unit:   opts.Spacing / 4,
		spring: harmonica.NewSpring(harmonica.FPS(60), 6.0, 1.0),
	}
}

func (m *drawModel) Init() tea.Cmd {
	return nil
}

func (m *drawModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m, m.resize(msg.Width, msg.Height)
	case resizeMsg:
		if m.surface != nil && m.surface.ApplyResize(msg.token) {
			m.cols, m.rows = m.next.cols, m.next.rows
			m.target = m.clampTop(m.target)
			return m, m.tick()
		}
	case frameMsg:
		m.ticking = false
		m.frame(time.Time(msg))
		return m, m.tick()
	case tea.KeyMsg:
		return m, m.key(msg)
	case tea.MouseMsg:
		return m, m.mouse(msg)
	case configMsg:
		m.reload(msg.cfg)
	}
	return m, nil
}

// =============================================================================
// Window
// =============================================================================

func (m *drawModel) resize(width, height int) tea.Cmd {
	cols, rows := max(1, width), max(1, height-1)
	w, h := float64(cols)*2*m.unit, float64(rows)*4*m.unit

	if m.surface == nil {
		opts := m.opts
		opts.Width, opts.Height = w, h
		s, err := surface.New(opts, surface.WithLogger(m.logger))
		if err != nil {
			m.err = err
			return tea.Quit
		}
		m.surface, m.opts = s, s.Options()
		m.cols, m.rows = cols, rows
		s.Start(m.now())
		return m.tick()
	}

	m.next.cols, m.next.rows = cols, rows
	token := m.surface.RequestResize(w, h)
	return tea.Tick(m.opts.ResizeDebounce, func(time.Time) tea.Msg {
		return resizeMsg{token: token}
	})
}

// tick schedules the next frame while the intro plays or the scroll spring
// moves. At most one frame is pending at a time.
func (m *drawModel) tick() tea.Cmd {
	if m.ticking || m.surface == nil || !(m.surface.Animating() || m.scrolling()) {
		return nil
	}
	m.ticking = true
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *drawModel) frame(now time.Time) {
	if m.surface == nil {
		return
	}
	m.surface.Frame(now)
	if !m.scrolling() {
		return
	}

	m.scroll, m.speed = m.spring.Update(m.scroll, m.speed, m.target)
	if math.Abs(m.target-m.scroll) < settle && math.Abs(m.speed) < settle {
		m.scroll, m.speed = m.target, 0
	}
	// Rejected samples are retried on the next frame.
	m.surface.Scroll(m.scroll, 0, now)
}

// scrolling reports whether the viewport has not reached the target yet.
func (m *drawModel) scrolling() bool {
	return m.surface != nil && (m.surface.Viewport().Top != m.target || m.speed != 0)
}

func (m *drawModel) scrollBy(dy float64) tea.Cmd {
	if m.surface == nil {
		return nil
	}
	m.target = m.clampTop(m.target + dy)
	return m.tick()
}

func (m *drawModel) clampTop(top float64) float64 {
	limit := max(0, m.surface.Grid().Height()-float64(m.rows)*4*m.unit)
	return min(max(0, math.Round(top)), limit)
}

// =============================================================================
// Input
// =============================================================================

func (m *drawModel) key(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.surface != nil {
			m.surface.Close()
		}
		return tea.Quit
	}
	if m.surface == nil {
		return nil
	}

	page := float64(m.rows) * 4 * m.unit
	switch msg.String() {
	case "t":
		m.surface.SetDark(!m.surface.Dark())
	case "up", "k":
		return m.scrollBy(-4 * m.unit)
	case "down", "j":
		return m.scrollBy(4 * m.unit)
	case "pgup":
		return m.scrollBy(-page)
	case "pgdown", " ":
		return m.scrollBy(page)
	default:
		if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
			m.surface.Key(msg.Runes[0])
		}
	}
	return m.tick()
}

func (m *drawModel) mouse(msg tea.MouseMsg) tea.Cmd {
	if m.surface == nil {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return m.scrollBy(-wheelRows * 4 * m.unit)
	case tea.MouseButtonWheelDown:
		return m.scrollBy(wheelRows * 4 * m.unit)
	}

	interactive := msg.Y >= m.rows
	x, y := braille.CellCenter(msg.X, msg.Y, m.unit)
	if msg.Action == tea.MouseActionMotion && sideways(msg.X-m.drag.x, msg.Y-m.drag.y) {
		y += rowNudge * m.unit
	}
	if msg.Action != tea.MouseActionRelease {
		m.drag.x, m.drag.y = msg.X, msg.Y
	}
	p := interact.Pointer{
		X:           x,
		Y:           y,
		Button:      button(msg.Button),
		At:          m.now(),
		Interactive: interactive,
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if interactive && p.Button == interact.ButtonPrimary {
			m.click(msg.X)
		}
		m.surface.Press(p)
	case tea.MouseActionMotion:
		m.surface.Move(p)
	case tea.MouseActionRelease:
		m.surface.Release(p)
	}
	return m.tick()
}

// sideways reports whether a drag of dx cells by dy cells covers more
// content horizontally than vertically. Cells are 2 units wide and 4 tall.
func sideways(dx, dy int) bool {
	return 2*abs(dx) > 4*abs(dy)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// click presses the status line button under column x.
func (m *drawModel) click(x int) {
	switch statusButton(x) {
	case buttonClear:
		m.surface.ClearAll()
	case buttonTheme:
		m.surface.SetDark(!m.surface.Dark())
	}
}

// statusButton returns the button drawn at column x, or "".
func statusButton(x int) string {
	start := 0
	for _, b := range []string{buttonClear, buttonTheme} {
		if x >= start && x < start+len(b) {
			return b
		}
		start += len(b) + 1
	}
	return ""
}

func button(b tea.MouseButton) interact.Button {
	switch b {
	case tea.MouseButtonLeft:
		return interact.ButtonPrimary
	case tea.MouseButtonMiddle:
		return interact.ButtonMiddle
	case tea.MouseButtonRight:
		return interact.ButtonSecondary
	}
	return interact.ButtonNone
}

// reload applies the live settings of a changed config file.
func (m *drawModel) reload(cfg *fileConfig) {
	if m.surface == nil || cfg == nil {
		return
	}
	if len(cfg.Palette) > 0 {
		if err := m.surface.SetPalette(cfg.Palette); err != nil {
			m.logger.Warn("palette not applied", "err", err)
		}
	}
	if cfg.Dark != nil {
		m.surface.SetDark(*cfg.Dark)
	}
}

// =============================================================================
// View
// =============================================================================

func (m *drawModel) View() string {
	if m.surface == nil {
		return ""
	}
	key := viewKey{
		dots:     m.surface.DotRevision(),
		strokes:  m.surface.StrokeRevision(),
		viewport: m.surface.Viewport(),
		cols:     m.cols,
		rows:     m.rows,
	}
	if key != m.cacheKey || m.cache == "" {
		snap := m.surface.Snapshot()
		m.cache = braille.Draw(snap, m.cols, m.rows, m.unit).Styled(snap.Background)
		m.cacheKey = key
	}
	return m.cache + "\n" + m.status()
}

func (m *drawModel) status() string {
	var b strings.Builder
	b.WriteString(styleButton.Render(buttonClear))
	b.WriteString(" ")
	b.WriteString(styleButton.Render(buttonTheme))

	info := fmt.Sprintf("  %d strokes", len(m.surface.Strokes()))
	if m.surface.Animating() {
		info += " · intro"
	}
	if m.surface.Drawing() {
		info += " · drawing"
	}
	info += " · c clear · t theme · q quit"
	b.WriteString(styleStatus.Render(info))
	return b.String()
}
