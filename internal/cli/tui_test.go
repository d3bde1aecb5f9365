package cli

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/gridsketch/pkg/grid"
	"github.com/matzehuels/gridsketch/pkg/surface"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

// newTestModel returns a model already sized to a 40x21 terminal: a 40x20
// cell canvas, 460x460 content units at the default spacing.
func newTestModel(t *testing.T, opts surface.Options) (*drawModel, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := newDrawModel(opts, newLogger(io.Discard, LogInfo), clock.now)
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 21})
	if m.surface == nil {
		t.Fatalf("no surface after the first window size: %v", m.err)
	}
	return m, clock
}

func mouse(x, y int, action tea.MouseAction, button tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: button}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drawLine drags from cell column 0 to cell column 8 on the top row, which
// covers dots (0,0) through (0,4).
func drawLine(m *drawModel, clock *fakeClock) {
	m.Update(mouse(0, 0, tea.MouseActionPress, tea.MouseButtonLeft))
	clock.advance(20 * time.Millisecond)
	m.Update(mouse(8, 0, tea.MouseActionMotion, tea.MouseButtonLeft))
	clock.advance(20 * time.Millisecond)
	m.Update(mouse(8, 0, tea.MouseActionRelease, tea.MouseButtonLeft))
}

func TestDrawModelStartsOnFirstSize(t *testing.T) {
	m, _ := newTestModel(t, surface.Options{Intro: surface.IntroBurst})

	if m.cols != 40 || m.rows != 20 {
		t.Errorf("canvas = %dx%d cells, want 40x20", m.cols, m.rows)
	}
	if got := m.surface.Options().Width; got != 460 {
		t.Errorf("surface width = %v, want 460", got)
	}
	if !m.surface.Animating() {
		t.Error("the intro should start with the first frame")
	}
	if !m.ticking {
		t.Error("a frame should be scheduled while the intro plays")
	}
	if view := m.View(); !strings.Contains(view, buttonClear) || !strings.Contains(view, buttonTheme) {
		t.Error("view should end with the status line buttons")
	}
}

func TestDrawModelIntroFinishes(t *testing.T) {
	m, clock := newTestModel(t, surface.Options{Intro: surface.IntroBurst, IntroDuration: time.Second})

	for i := 0; i < 200 && m.surface.Animating(); i++ {
		clock.advance(frameInterval)
		m.Update(frameMsg(clock.now()))
	}
	if m.surface.Animating() {
		t.Fatal("intro still running after 200 frames of a 1s intro")
	}
	if len(m.surface.Strokes()) == 0 {
		t.Error("the finished intro should leave committed strokes")
	}
	if _, cmd := m.Update(frameMsg(clock.now())); cmd != nil {
		t.Error("no further frames should be scheduled once idle")
	}
}

func TestDrawModelDrawsStroke(t *testing.T) {
	m, clock := newTestModel(t, surface.Options{Intro: surface.IntroNone})
	drawLine(m, clock)

	strokes := m.surface.Strokes()
	if len(strokes) != 1 {
		t.Fatalf("got %d strokes, want 1", len(strokes))
	}
	last := strokes[0].Points[len(strokes[0].Points)-1]
	if last.Row != 0 || last.Col != 4 {
		t.Errorf("stroke ends at (%d,%d), want (0,4)", last.Row, last.Col)
	}
	if got := m.surface.Covered(); got != 5 {
		t.Errorf("Covered() = %d, want 5", got)
	}
}

func TestDrawModelDrawsCorner(t *testing.T) {
	m, clock := newTestModel(t, surface.Options{Intro: surface.IntroNone})

	m.Update(mouse(0, 0, tea.MouseActionPress, tea.MouseButtonLeft))
	clock.advance(20 * time.Millisecond)
	m.Update(mouse(8, 0, tea.MouseActionMotion, tea.MouseButtonLeft))
	clock.advance(20 * time.Millisecond)
	m.Update(mouse(9, 3, tea.MouseActionMotion, tea.MouseButtonLeft))
	clock.advance(20 * time.Millisecond)
	m.Update(mouse(9, 3, tea.MouseActionRelease, tea.MouseButtonLeft))

	strokes := m.surface.Strokes()
	if len(strokes) != 1 {
		t.Fatalf("got %d strokes, want 1", len(strokes))
	}
	var got []grid.ID
	for _, p := range strokes[0].Points {
		got = append(got, p.ID())
	}
	want := []grid.ID{{Row: 0, Col: 0}, {Row: 0, Col: 4}, {Row: 3, Col: 4}}
	if len(got) != len(want) {
		t.Fatalf("points = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSideways(t *testing.T) {
	tests := []struct {
		dx, dy int
		want   bool
	}{
		{1, 0, true},
		{-3, 1, true},
		{2, 1, false},
		{0, 1, false},
		{0, 0, false},
	}

	for _, tt := range tests {
		if got := sideways(tt.dx, tt.dy); got != tt.want {
			t.Errorf("sideways(%d, %d) = %v, want %v", tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestDrawModelStatusLine(t *testing.T) {
	m, clock := newTestModel(t, surface.Options{Intro: surface.IntroNone})
	drawLine(m, clock)

	clock.advance(time.Second)
	m.Update(mouse(9, 20, tea.MouseActionPress, tea.MouseButtonLeft))
	if !m.surface.Dark() {
		t.Error("[theme] should switch to the dark background")
	}
	if m.surface.Drawing() {
		t.Error("pressing a status line button must not start a stroke")
	}

	clock.advance(time.Second)
	m.Update(mouse(2, 20, tea.MouseActionPress, tea.MouseButtonLeft))
	if n := len(m.surface.Strokes()); n != 0 {
		t.Errorf("[clear] left %d strokes", n)
	}
	if m.surface.Drawing() {
		t.Error("pressing a status line button must not start a stroke")
	}
}

func TestStatusButton(t *testing.T) {
	tests := []struct {
		x    int
		want string
	}{
		{0, buttonClear},
		{6, buttonClear},
		{7, ""},
		{8, buttonTheme},
		{14, buttonTheme},
		{15, ""},
	}

	for _, tt := range tests {
		if got := statusButton(tt.x); got != tt.want {
			t.Errorf("statusButton(%d) = %q, want %q", tt.x, got, tt.want)
		}
	}
}

func TestDrawModelKeys(t *testing.T) {
	m, clock := newTestModel(t, surface.Options{Intro: surface.IntroNone})
	drawLine(m, clock)

	m.Update(keyRunes("t"))
	if !m.surface.Dark() {
		t.Error("t should toggle the theme")
	}

	m.Update(keyRunes("C"))
	if n := len(m.surface.Strokes()); n != 0 {
		t.Errorf("C left %d strokes", n)
	}

	if _, cmd := m.Update(keyRunes("q")); cmd == nil {
		t.Error("q should quit")
	}
	if !m.surface.Closed() {
		t.Error("quitting should close the surface")
	}
}

func TestDrawModelScroll(t *testing.T) {
	m, clock := newTestModel(t, surface.Options{Intro: surface.IntroNone, Pages: 3})

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyPgDown}); cmd == nil {
		t.Fatal("page down should schedule a frame")
	}
	for i := 0; i < 400 && m.scrolling(); i++ {
		clock.advance(frameInterval)
		m.Update(frameMsg(clock.now()))
	}
	if got := m.surface.Viewport().Top; got != 460 {
		t.Errorf("viewport top = %v, want 460", got)
	}

	// Presses land on the scrolled content.
	clock.advance(time.Second)
	drawLine(m, clock)
	strokes := m.surface.Strokes()
	if len(strokes) != 1 || strokes[0].Points[0].Row != 20 {
		t.Errorf("stroke after scrolling = %+v, want one stroke on row 20", strokes)
	}
}

func TestDrawModelWheelClamps(t *testing.T) {
	m, _ := newTestModel(t, surface.Options{Intro: surface.IntroNone})

	if _, cmd := m.Update(mouse(5, 5, tea.MouseActionPress, tea.MouseButtonWheelDown)); cmd != nil {
		t.Error("a canvas one page tall cannot scroll")
	}
	if got := m.surface.Viewport().Top; got != 0 {
		t.Errorf("viewport top = %v, want 0", got)
	}
}

func TestDrawModelResizeDebounce(t *testing.T) {
	m, _ := newTestModel(t, surface.Options{Intro: surface.IntroNone})

	if _, cmd := m.Update(tea.WindowSizeMsg{Width: 60, Height: 31}); cmd == nil {
		t.Fatal("a resize should schedule the debounce")
	}
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 41})

	m.Update(resizeMsg{token: 1})
	if m.cols != 40 {
		t.Errorf("superseded resize applied: cols = %d", m.cols)
	}
	m.Update(resizeMsg{token: 2})
	if m.cols != 80 || m.rows != 40 {
		t.Errorf("canvas = %dx%d cells, want 80x40", m.cols, m.rows)
	}
	if got := m.surface.Grid().Width(); got != 920 {
		t.Errorf("grid width = %v, want 920", got)
	}
}

func TestDrawModelReload(t *testing.T) {
	m, _ := newTestModel(t, surface.Options{Intro: surface.IntroNone})

	dark := true
	m.Update(configMsg{cfg: &fileConfig{Palette: []string{"#000000"}, Dark: &dark}})
	if got := m.surface.Palette(); len(got) != 1 || got[0] != "#000000" {
		t.Errorf("palette = %v, want [#000000]", got)
	}
	if !m.surface.Dark() {
		t.Error("reload should apply the dark flag")
	}

	m.Update(configMsg{cfg: &fileConfig{Palette: []string{"not-a-color"}}})
	if got := m.surface.Palette(); got[0] != "#000000" {
		t.Errorf("an invalid palette replaced the current one: %v", got)
	}
}

func TestDrawModelViewCache(t *testing.T) {
	m, _ := newTestModel(t, surface.Options{Intro: surface.IntroNone})

	first := m.View()
	if again := m.View(); again != first {
		t.Error("an unchanged surface should render the same view")
	}
	key := m.cacheKey
	m.Update(keyRunes("t"))
	m.View()
	if m.cacheKey == key {
		t.Error("toggling the theme should invalidate the cached view")
	}
}
