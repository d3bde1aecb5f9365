package surface

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridsketch/pkg/anim"
	"github.com/matzehuels/gridsketch/pkg/errors"
	"github.com/matzehuels/gridsketch/pkg/interact"
	"github.com/matzehuels/gridsketch/pkg/palette"
	"github.com/matzehuels/gridsketch/pkg/stroke"
)

// =============================================================================
// Default Values - Single Source of Truth for the TUI and snapshot hosts
// =============================================================================

const (
	// DefaultWidth is the default window width in content units.
	DefaultWidth = 1280.0

	// DefaultHeight is the default window height in content units.
	DefaultHeight = 800.0

	// DefaultPages is how many window heights the canvas spans.
	DefaultPages = 1.0

	// DefaultSpacing is the distance between neighbouring dots.
	DefaultSpacing = 23.0

	// DefaultDotRadius is the radius of a grid dot.
	DefaultDotRadius = 0.5

	// DefaultViewportMargin extends the visible dot range beyond the window.
	DefaultViewportMargin = 0.0

	// DefaultCenterPadding keeps roots away from the center content.
	DefaultCenterPadding = 100.0

	// DefaultSeed seeds every random choice on the surface.
	DefaultSeed = uint64(42)

	// DefaultIntroDuration is how long the intro animation plays.
	DefaultIntroDuration = anim.DefaultDuration

	// DefaultMoveInterval throttles pointer moves while drawing.
	DefaultMoveInterval = interact.DefaultMoveInterval

	// DefaultScrollInterval throttles viewport updates while scrolling.
	DefaultScrollInterval = 100 * time.Millisecond

	// DefaultResizeDebounce is the quiet period hosts wait before ApplyResize.
	DefaultResizeDebounce = 100 * time.Millisecond

	// DefaultDoubleClick is the window for a clearing double click.
	DefaultDoubleClick = interact.DefaultDoubleClick
)

// DefaultLineWidth and DefaultCornerRadius follow the default pen.
var (
	DefaultLineWidth    = stroke.DefaultStyle.Width
	DefaultCornerRadius = stroke.DefaultStyle.CornerRadius
)

// Intro variants.
const (
	IntroBurst = "burst"
	IntroRoots = "roots"
	IntroNone  = "none"
)

// DefaultIntro is the intro played when none is configured.
const DefaultIntro = IntroBurst

// ValidIntros is the set of supported intro variants.
var ValidIntros = map[string]bool{
	IntroBurst: true,
	IntroRoots: true,
	IntroNone:  true,
}

// =============================================================================
// Options - Surface Configuration
// =============================================================================

// Options configures a Surface. Zero values take the defaults above. Fields
// where zero is a meaningful setting are pointers; nil takes the default.
type Options struct {
	// Canvas
	Width          float64  `json:"width,omitempty"`
	Height         float64  `json:"height,omitempty"`
	Pages          float64  `json:"pages,omitempty"`
	Spacing        float64  `json:"spacing,omitempty"`
	DotRadius      *float64 `json:"dot_radius,omitempty"`
	ViewportMargin float64  `json:"viewport_margin,omitempty"`
	Dark           bool     `json:"dark,omitempty"`
	Palette        []string `json:"palette,omitempty"`

	// Strokes
	LineWidth    float64       `json:"line_width,omitempty"`
	CornerRadius *float64      `json:"corner_radius,omitempty"`
	MoveInterval time.Duration `json:"move_interval,omitempty"`
	DoubleClick  time.Duration `json:"double_click,omitempty"`

	// Intro
	Intro         string        `json:"intro,omitempty"`
	IntroDuration time.Duration `json:"intro_duration,omitempty"`
	CenterPadding *float64      `json:"center_padding,omitempty"`
	Seed          *uint64       `json:"seed,omitempty"`

	// Host timing
	ScrollInterval time.Duration `json:"scroll_interval,omitempty"`
	ResizeDebounce time.Duration `json:"resize_debounce,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateIntro checks that an intro variant is known.
func ValidateIntro(intro string) error {
	if !ValidIntros[intro] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid intro: %q (must be one of: burst, roots, none)", intro)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults fills zero values with defaults and rejects
// impossible settings. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()

	for _, check := range []struct {
		name string
		v    float64
	}{
		{"width", o.Width},
		{"height", o.Height},
		{"pages", o.Pages},
		{"spacing", o.Spacing},
		{"line_width", o.LineWidth},
	} {
		if err := errors.ValidatePositive(check.name, check.v); err != nil {
			return err
		}
	}
	for _, check := range []struct {
		name string
		v    float64
	}{
		{"dot_radius", *o.DotRadius},
		{"corner_radius", *o.CornerRadius},
		{"viewport_margin", o.ViewportMargin},
		{"center_padding", *o.CenterPadding},
	} {
		if err := errors.ValidateNonNegative(check.name, check.v); err != nil {
			return err
		}
	}
	if o.Pages < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "pages must be at least 1, got %v", o.Pages)
	}
	for name, d := range map[string]time.Duration{
		"move_interval":   o.MoveInterval,
		"scroll_interval": o.ScrollInterval,
		"resize_debounce": o.ResizeDebounce,
		"double_click":    o.DoubleClick,
	} {
		if d < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must not be negative, got %v", name, d)
		}
	}
	if err := ValidateIntro(o.Intro); err != nil {
		return err
	}
	if _, err := palette.Parse(o.Palette); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid palette")
	}

	o.validated = true
	return nil
}

// SetDefaults fills zero values without validating.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Pages == 0 {
		o.Pages = DefaultPages
	}
	if o.Spacing == 0 {
		o.Spacing = DefaultSpacing
	}
	if o.DotRadius == nil {
		o.DotRadius = Ptr(DefaultDotRadius)
	}
	if o.LineWidth == 0 {
		o.LineWidth = DefaultLineWidth
	}
	if o.CornerRadius == nil {
		o.CornerRadius = Ptr(DefaultCornerRadius)
	}
	if o.CenterPadding == nil {
		o.CenterPadding = Ptr(DefaultCenterPadding)
	}
	if o.Seed == nil {
		o.Seed = Ptr(DefaultSeed)
	}
	if o.Intro == "" {
		o.Intro = DefaultIntro
	}
	if o.IntroDuration == 0 {
		o.IntroDuration = DefaultIntroDuration
	}
	if o.MoveInterval == 0 {
		o.MoveInterval = DefaultMoveInterval
	}
	if o.ScrollInterval == 0 {
		o.ScrollInterval = DefaultScrollInterval
	}
	if o.ResizeDebounce == 0 {
		o.ResizeDebounce = DefaultResizeDebounce
	}
	if o.DoubleClick == 0 {
		o.DoubleClick = DefaultDoubleClick
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Style returns the pen described by the options. Call it after SetDefaults.
func (o *Options) Style() stroke.Style {
	return stroke.Style{Width: o.LineWidth, CornerRadius: *o.CornerRadius}
}

// Ptr returns a pointer to v, for the optional fields of Options.
func Ptr[T any](v T) *T { return &v }
