package cli

import (
	"context"
	"errors"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	gserrors "github.com/matzehuels/gridsketch/pkg/errors"
	"github.com/matzehuels/gridsketch/pkg/observability"
	"github.com/matzehuels/gridsketch/pkg/surface"
)

// drawOpts holds the command-line flags for the draw command.
type drawOpts struct {
	surfaceFlags
	watch   bool   // reload palette and theme when the config file changes
	logFile string // log destination; the terminal belongs to the UI
}

// drawCommand creates the interactive draw command.
func (c *CLI) drawCommand() *cobra.Command {
	var opts drawOpts

	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Sketch on the dot grid in the terminal",
		Long: `Open the dot grid full screen and draw with the mouse.

Strokes snap to the grid and hide the dots they cross. Double click, the
[clear] button or c clears everything, t or [theme] toggles the background,
arrow keys, page keys and the wheel scroll, q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			surf, err := opts.options(cmd)
			if err != nil {
				return err
			}
			if opts.watch && opts.config == "" {
				return gserrors.New(gserrors.ErrCodeInvalidInput, "--watch needs --config")
			}
			return c.runDraw(cmd.Context(), surf, &opts)
		},
	}

	opts.register(cmd, themeAuto)
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "apply palette and theme changes from the config file live")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write logs to this file")

	return cmd
}

func (c *CLI) runDraw(ctx context.Context, surf surface.Options, opts *drawOpts) error {
	level := loggerFromContext(ctx).GetLevel()
	logger, closeLog, err := drawLogger(opts.logFile, level)
	if err != nil {
		return err
	}
	defer closeLog()
	surf.Logger = logger
	if level <= log.DebugLevel {
		observability.SetSurfaceHooks(newLogHooks(logger))
	}

	m := newDrawModel(surf, logger, nil)
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	if opts.watch {
		w, err := watchConfig(opts.config, logger, func(cfg *fileConfig) {
			p.Send(configMsg{cfg: cfg})
		})
		if err != nil {
			return err
		}
		defer w.Close()
	}

	logger.Info("draw started", "intro", m.opts.Intro, "seed", *m.opts.Seed)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return gserrors.Wrap(gserrors.ErrCodeInternal, err, "terminal ui")
	}
	if m.surface != nil {
		m.surface.Close()
		logger.Info("draw finished", "strokes", len(m.surface.Strokes()))
	}
	return m.err
}

// drawLogger opens --log-file, or discards logs when it is empty.
func drawLogger(path string, level log.Level) (*log.Logger, func(), error) {
	if path == "" {
		return newLogger(io.Discard, level), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, gserrors.Wrap(gserrors.ErrCodeIO, err, "open log file %s", path)
	}
	return newLogger(f, level), func() { f.Close() }, nil
}
