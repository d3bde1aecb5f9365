// Package pipeline renders the drawing surface headlessly.
//
// The pipeline builds a surface, plays its intro against a simulated clock,
// replays scripted strokes, and renders the resulting snapshot into one or
// more artifacts. The CLI's snapshot command is a thin wrapper around it, and
// tests use it to exercise the whole stack end to end.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Simulate: Advance the intro in fixed frame steps up to a chosen instant
//  2. Replay: Feed scripted strokes through the pointer machine
//  3. Render: Generate outputs (PNG, braille text, thumbnail)
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Surface: surface.Options{Width: 1280, Height: 800, Intro: surface.IntroRoots},
//	    At:      2 * time.Second,
//	    Formats: []string{pipeline.FormatPNG},
//	    Scale:   2,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts[pipeline.FormatPNG]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridsketch/pkg/errors"
	"github.com/matzehuels/gridsketch/pkg/grid"
	"github.com/matzehuels/gridsketch/pkg/surface"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultFrameInterval is the simulated display refresh.
	DefaultFrameInterval = 16 * time.Millisecond

	// DefaultScale is the default device pixel ratio for PNG output.
	DefaultScale = 1.0

	// maxFrames bounds the simulation when the intro never finishes.
	maxFrames = 100_000
)

// Format constants for output formats.
const (
	FormatPNG = "png"
	FormatTXT = "txt"
)

// ArtifactThumbnail is the artifact key of the optional PNG thumbnail.
const ArtifactThumbnail = "thumbnail.png"

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG: true,
	FormatTXT: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a snapshot run.
type Options struct {
	// Surface configures the surface under test.
	Surface surface.Options

	// Simulation options
	At            time.Duration // Stop the intro here; zero runs it to completion
	FrameInterval time.Duration
	Strokes       [][]grid.ID // Scripted strokes, replayed after the intro

	// Render options
	Formats   []string
	Scale     float64 // Device pixel ratio for PNG output
	Thumbnail int     // Maximum thumbnail width; zero disables it

	// Runtime options
	Logger *log.Logger

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Snapshot is the frame that was rendered.
	Snapshot surface.Snapshot

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Frames       int
	Strokes      int
	Covered      int
	Dots         int
	Elapsed      time.Duration // Simulated time
	SimulateTime time.Duration
	RenderTime   time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: png, txt)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.FrameInterval == 0 {
		o.FrameInterval = DefaultFrameInterval
	}
	if o.FrameInterval < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "frame interval must be positive, got %v", o.FrameInterval)
	}
	if o.At < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "at must not be negative, got %v", o.At)
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if err := errors.ValidatePositive("scale", o.Scale); err != nil {
		return err
	}
	if o.Thumbnail < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "thumbnail width must not be negative, got %d", o.Thumbnail)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Surface.Logger == nil {
		o.Surface.Logger = o.Logger
	}
	if err := o.Surface.ValidateAndSetDefaults(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// Wants reports whether format is requested.
func (o *Options) Wants(format string) bool {
	for _, f := range o.Formats {
		if f == format {
			return true
		}
	}
	return false
}
