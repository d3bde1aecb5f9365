package cli

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/gridsketch/pkg/errors"
	"github.com/matzehuels/gridsketch/pkg/surface"
)

// =============================================================================
// Config File
// =============================================================================

// duration reads "250ms" style values from TOML and YAML.
type duration time.Duration

func (d *duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid duration %q", string(b))
	}
	*d = duration(v)
	return nil
}

// fileConfig is the on-disk form of surface.Options. Absent keys leave the
// option at its default. Pointer fields accept an explicit zero.
type fileConfig struct {
	Spacing        float64  `toml:"spacing" yaml:"spacing"`
	DotRadius      *float64 `toml:"dot_radius" yaml:"dot_radius"`
	LineWidth      float64  `toml:"line_width" yaml:"line_width"`
	CornerRadius   *float64 `toml:"corner_radius" yaml:"corner_radius"`
	ViewportMargin float64  `toml:"viewport_margin" yaml:"viewport_margin"`
	CenterPadding  *float64 `toml:"center_padding" yaml:"center_padding"`
	Pages          float64  `toml:"pages" yaml:"pages"`
	Intro          string   `toml:"intro" yaml:"intro"`
	IntroDuration  duration `toml:"intro_duration" yaml:"intro_duration"`
	Seed           *uint64  `toml:"seed" yaml:"seed"`
	Dark           *bool    `toml:"dark" yaml:"dark"`
	Palette        []string `toml:"palette" yaml:"palette"`
	MoveInterval   duration `toml:"move_interval" yaml:"move_interval"`
	ScrollInterval duration `toml:"scroll_interval" yaml:"scroll_interval"`
	ResizeDebounce duration `toml:"resize_debounce" yaml:"resize_debounce"`
	DoubleClick    duration `toml:"double_click" yaml:"double_click"`
}

// loadConfig reads a TOML or YAML config file, chosen by extension.
func loadConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read config %s", path)
	}

	var cfg fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q (use .toml, .yaml or .yml)", ext)
	}
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return &cfg, nil
}

// apply copies every set field onto opts.
func (c *fileConfig) apply(opts *surface.Options) {
	setFloat := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	setDuration := func(dst *time.Duration, v duration) {
		if v != 0 {
			*dst = time.Duration(v)
		}
	}

	setFloat(&opts.Spacing, c.Spacing)
	setFloat(&opts.LineWidth, c.LineWidth)
	setFloat(&opts.ViewportMargin, c.ViewportMargin)
	setFloat(&opts.Pages, c.Pages)
	setDuration(&opts.IntroDuration, c.IntroDuration)
	setDuration(&opts.MoveInterval, c.MoveInterval)
	setDuration(&opts.ScrollInterval, c.ScrollInterval)
	setDuration(&opts.ResizeDebounce, c.ResizeDebounce)
	setDuration(&opts.DoubleClick, c.DoubleClick)
	if c.Intro != "" {
		opts.Intro = c.Intro
	}
	if c.DotRadius != nil {
		opts.DotRadius = surface.Ptr(*c.DotRadius)
	}
	if c.CornerRadius != nil {
		opts.CornerRadius = surface.Ptr(*c.CornerRadius)
	}
	if c.CenterPadding != nil {
		opts.CenterPadding = surface.Ptr(*c.CenterPadding)
	}
	if c.Seed != nil {
		opts.Seed = surface.Ptr(*c.Seed)
	}
	if c.Dark != nil {
		opts.Dark = *c.Dark
	}
	if len(c.Palette) > 0 {
		opts.Palette = append([]string(nil), c.Palette...)
	}
}

// =============================================================================
// Theme
// =============================================================================

// Theme modes accepted by --dark.
const (
	themeAuto  = "auto"
	themeLight = "light"
	themeDark  = "dark"
)

// detectDark asks the terminal for its background color.
var detectDark = termenv.HasDarkBackground

// resolveDark turns a theme mode into the surface's dark flag.
func resolveDark(mode string) (bool, error) {
	switch strings.ToLower(mode) {
	case themeAuto:
		return detectDark(), nil
	case themeLight, "false":
		return false, nil
	case themeDark, "true":
		return true, nil
	}
	return false, errors.New(errors.ErrCodeInvalidConfig, "invalid theme: %q (must be one of: auto, light, dark)", mode)
}

// =============================================================================
// Surface Flags
// =============================================================================

// surfaceFlags are the surface settings shared by draw and snapshot.
type surfaceFlags struct {
	config        string
	spacing       float64
	lineWidth     float64
	cornerRadius  float64
	pages         float64
	intro         string
	introDuration time.Duration
	seed          uint64
	palette       []string
	theme         string
}

func (f *surfaceFlags) register(cmd *cobra.Command, theme string) {
	f.theme = theme
	flags := cmd.Flags()
	flags.StringVar(&f.config, "config", "", "config file (.toml, .yaml)")
	flags.Float64Var(&f.spacing, "spacing", surface.DefaultSpacing, "distance between grid dots")
	flags.Float64Var(&f.lineWidth, "line-width", surface.DefaultLineWidth, "stroke width")
	flags.Float64Var(&f.cornerRadius, "corner-radius", surface.DefaultCornerRadius, "radius of rounded corners")
	flags.Float64Var(&f.pages, "pages", surface.DefaultPages, "canvas height in window heights")
	flags.StringVar(&f.intro, "intro", surface.DefaultIntro, "intro animation: burst, roots, none")
	flags.DurationVar(&f.introDuration, "intro-duration", surface.DefaultIntroDuration, "intro animation length")
	flags.Uint64Var(&f.seed, "seed", surface.DefaultSeed, "random seed for colors and intro")
	flags.StringSliceVar(&f.palette, "palette", nil, "stroke colors as hex (comma-separated)")
	flags.StringVar(&f.theme, "dark", theme, "theme: auto, light, dark")

	_ = cmd.RegisterFlagCompletionFunc("intro", cobra.FixedCompletions(
		[]string{surface.IntroBurst, surface.IntroRoots, surface.IntroNone}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("dark", cobra.FixedCompletions(
		[]string{themeAuto, themeLight, themeDark}, cobra.ShellCompDirectiveNoFileComp))
}

// options layers the config file and explicitly set flags, in that order.
// Unset values stay zero so surface.Options supplies the defaults.
func (f *surfaceFlags) options(cmd *cobra.Command) (surface.Options, error) {
	var opts surface.Options
	var cfg *fileConfig
	if f.config != "" {
		var err error
		if cfg, err = loadConfig(f.config); err != nil {
			return opts, err
		}
		cfg.apply(&opts)
	}

	changed := cmd.Flags().Changed
	if changed("spacing") {
		opts.Spacing = f.spacing
	}
	if changed("line-width") {
		opts.LineWidth = f.lineWidth
	}
	if changed("corner-radius") {
		opts.CornerRadius = surface.Ptr(f.cornerRadius)
	}
	if changed("pages") {
		opts.Pages = f.pages
	}
	if changed("intro") {
		opts.Intro = f.intro
	}
	if changed("intro-duration") {
		opts.IntroDuration = f.introDuration
	}
	if changed("seed") {
		opts.Seed = surface.Ptr(f.seed)
	}
	if changed("palette") {
		opts.Palette = f.palette
	}
	if changed("dark") || cfg == nil || cfg.Dark == nil {
		dark, err := resolveDark(f.theme)
		if err != nil {
			return opts, err
		}
		opts.Dark = dark
	}
	return opts, nil
}
