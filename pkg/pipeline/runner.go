package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridsketch/pkg/errors"
	"github.com/matzehuels/gridsketch/pkg/grid"
	"github.com/matzehuels/gridsketch/pkg/interact"
	"github.com/matzehuels/gridsketch/pkg/render/braille"
	"github.com/matzehuels/gridsketch/pkg/render/raster"
	"github.com/matzehuels/gridsketch/pkg/surface"
)

// epoch is the simulated clock's origin. Runs never read the wall clock, so
// the same options always give the same output.
var epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Runner executes snapshot runs.
//
// The Runner is stateless except for the logger. Multiple goroutines can
// safely use the same Runner with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete simulate → replay → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	// Stage 1 & 2: Simulate and replay
	simStart := time.Now()
	s, err := r.Simulate(ctx, opts, &result.Stats)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	result.Stats.SimulateTime = time.Since(simStart)
	result.Snapshot = s.Snapshot()
	result.Stats.Strokes = len(s.Strokes())
	result.Stats.Covered = s.Covered()
	result.Stats.Dots = len(result.Snapshot.Dots)

	r.Logger.Info("simulated surface",
		"frames", result.Stats.Frames,
		"elapsed", result.Stats.Elapsed,
		"strokes", result.Stats.Strokes,
		"intro", result.Snapshot.Intro,
		"duration", result.Stats.SimulateTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, result.Snapshot, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Simulate builds a surface, plays the intro up to opts.At (or to completion)
// in opts.FrameInterval steps, and replays the scripted strokes. stats may
// be nil.
func (r *Runner) Simulate(ctx context.Context, opts Options, stats *Stats) (*surface.Surface, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if stats == nil {
		stats = &Stats{}
	}

	s, err := surface.New(opts.Surface)
	if err != nil {
		return nil, err
	}

	now := epoch
	s.Start(now)
	for s.Animating() && stats.Frames < maxFrames {
		if opts.At > 0 && now.Sub(epoch) >= opts.At {
			break
		}
		if stats.Frames%64 == 0 {
			if err := ctx.Err(); err != nil {
				s.Close()
				return nil, err
			}
		}
		now = now.Add(opts.FrameInterval)
		if opts.At > 0 && now.Sub(epoch) > opts.At {
			now = epoch.Add(opts.At)
		}
		s.Frame(now)
		stats.Frames++
	}
	stats.Elapsed = now.Sub(epoch)

	for i, ids := range opts.Strokes {
		now = replay(s, ids, now.Add(time.Second), s.Options().MoveInterval)
		r.Logger.Debug("replayed stroke", "index", i, "cells", len(ids))
	}
	return s, nil
}

// replay draws one scripted stroke and returns the clock after the release.
func replay(s *surface.Surface, ids []grid.ID, at time.Time, step time.Duration) time.Time {
	if len(ids) == 0 {
		return at
	}
	step += time.Millisecond
	g := s.Grid()
	vp := s.Viewport()
	pointer := func(from, to grid.ID) interact.Pointer {
		x, y := g.Aim(g.DotAt(from.Row, from.Col), g.DotAt(to.Row, to.Col))
		return interact.Pointer{X: x - vp.Left, Y: y - vp.Top, At: at}
	}

	s.Press(pointer(ids[0], ids[0]))
	for i := 1; i < len(ids); i++ {
		at = at.Add(step)
		s.Move(pointer(ids[i-1], ids[i]))
	}
	at = at.Add(step)
	last := ids[len(ids)-1]
	s.Release(pointer(last, last))
	return at
}

// Render produces every requested artifact for snap.
func (r *Runner) Render(ctx context.Context, snap surface.Snapshot, opts Options) (map[string][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		switch format {
		case FormatPNG:
			img, err := raster.Render(snap, raster.WithScale(opts.Scale))
			if err != nil {
				return nil, err
			}
			data, err := raster.EncodePNG(img)
			if err != nil {
				return nil, err
			}
			artifacts[FormatPNG] = data
			if opts.Thumbnail > 0 {
				thumb, err := raster.EncodePNG(raster.Thumbnail(img, opts.Thumbnail))
				if err != nil {
					return nil, err
				}
				artifacts[ArtifactThumbnail] = thumb
			}
		case FormatTXT:
			unit := opts.Surface.Spacing / 4
			cols, rows := braille.Size(snap.Width, snap.Height, unit)
			artifacts[FormatTXT] = []byte(braille.Draw(snap, cols, rows, unit).String() + "\n")
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}
	}
	return artifacts, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
