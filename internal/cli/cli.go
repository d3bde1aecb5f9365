package cli

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
	"github.com/gogpu/gg"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridsketch/pkg/buildinfo"
	"github.com/matzehuels/gridsketch/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display and completion.
	appName = "gridsketch"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{Logger: newLogger(w, level)}
	c.SetLogLevel(level)
	return c
}

// SetLogLevel updates the logger's level. At debug level the surface hooks
// and the rasterizer report through the same logger.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		observability.SetSurfaceHooks(newLogHooks(c.Logger))
		gg.SetLogger(slog.New(c.Logger))
		return
	}
	observability.Reset()
	gg.SetLogger(nil)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Gridsketch draws rounded strokes on a dot grid",
		Long:         `Gridsketch is a dot-grid sketchpad for the terminal. Strokes snap to the grid, hide the dots they cross, and an animated intro sketches the first screen.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.drawCommand())
	root.AddCommand(c.snapshotCommand())
	root.AddCommand(c.completionCommand())

	return root
}
