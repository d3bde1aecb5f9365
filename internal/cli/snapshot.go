package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridsketch/pkg/errors"
	"github.com/matzehuels/gridsketch/pkg/grid"
	"github.com/matzehuels/gridsketch/pkg/pipeline"
	"github.com/matzehuels/gridsketch/pkg/surface"
)

// defaultOutput is the base name used when -o is not given.
const defaultOutput = appName

// snapshotOpts holds the command-line flags for the snapshot command.
type snapshotOpts struct {
	surfaceFlags
	output    string        // output file (single format) or base path
	width     float64       // window width in content units
	height    float64       // window height in content units
	at        time.Duration // stop the intro here; zero runs it to completion
	strokes   []string      // scripted strokes, "r,c r,c ..."
	formats   []string      // png, txt
	scale     float64       // device pixel ratio for png
	thumbnail int           // thumbnail width; zero disables it
}

// snapshotCommand creates the headless snapshot command.
func (c *CLI) snapshotCommand() *cobra.Command {
	var opts snapshotOpts

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render the surface headlessly to PNG or braille text",
		Long: `Render the surface without a terminal UI.

The intro plays against a simulated 16ms clock up to --at (or to completion),
scripted strokes are replayed through the pointer machine, and the final frame
is written in every requested format.`,
		Example: `  gridsketch snapshot -o sketch.png
  gridsketch snapshot --intro roots --at 2s --scale 2 --thumbnail 320
  gridsketch snapshot --intro none --stroke "3,2 3,9 8,9" -f txt -o -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			surf, err := opts.options(cmd)
			if err != nil {
				return err
			}
			return c.runSnapshot(cmd.Context(), cmd, surf, &opts)
		},
	}

	opts.register(cmd, themeLight)
	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	flags.Float64Var(&opts.width, "width", surface.DefaultWidth, "window width")
	flags.Float64Var(&opts.height, "height", surface.DefaultHeight, "window height")
	flags.DurationVar(&opts.at, "at", 0, "stop the intro at this instant (default: run to completion)")
	flags.StringArrayVar(&opts.strokes, "stroke", nil, `scripted stroke as "row,col row,col ..." (repeatable)`)
	flags.StringSliceVarP(&opts.formats, "format", "f", []string{pipeline.FormatPNG}, "output format(s): png, txt")
	flags.Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "device pixel ratio for png output")
	flags.IntVar(&opts.thumbnail, "thumbnail", 0, "also write a png thumbnail at most this wide")

	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{pipeline.FormatPNG, pipeline.FormatTXT}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// pipelineOptions converts flags into a pipeline run.
func (o *snapshotOpts) pipelineOptions(surf surface.Options) (pipeline.Options, error) {
	surf.Width = o.width
	surf.Height = o.height

	strokes := make([][]grid.ID, 0, len(o.strokes))
	for _, s := range o.strokes {
		ids, err := pipeline.ParseStroke(s)
		if err != nil {
			return pipeline.Options{}, err
		}
		strokes = append(strokes, ids)
	}

	opts := pipeline.Options{
		Surface:   surf,
		At:        o.at,
		Strokes:   strokes,
		Formats:   o.formats,
		Scale:     o.scale,
		Thumbnail: o.thumbnail,
	}
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return pipeline.Options{}, err
	}
	if o.output == "-" && (len(opts.Formats) != 1 || opts.Thumbnail > 0) {
		return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "stdout output takes exactly one format and no thumbnail")
	}
	return opts, nil
}

func (c *CLI) runSnapshot(ctx context.Context, cmd *cobra.Command, surf surface.Options, o *snapshotOpts) error {
	logger := loggerFromContext(ctx)
	opts, err := o.pipelineOptions(surf)
	if err != nil {
		return err
	}
	opts.Logger = logger

	prog := newProgress(logger)
	spin := newSpinner(ctx, cmd.ErrOrStderr(), "Rendering snapshot...")
	spin.Start()
	result, err := pipeline.NewRunner(logger).Execute(ctx, opts)
	spin.Stop()
	if err != nil {
		return err
	}

	paths, err := writeArtifacts(cmd.OutOrStdout(), o.output, result.Artifacts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Wrote %d artifacts", len(result.Artifacts)))

	if o.output == "-" {
		return nil
	}
	out := cmd.OutOrStdout()
	printSuccess(out, "Snapshot at %s", result.Stats.Elapsed)
	printStats(out,
		fmt.Sprintf("%d frames", result.Stats.Frames),
		fmt.Sprintf("%d strokes", result.Stats.Strokes),
		fmt.Sprintf("%d dots covered", result.Stats.Covered),
		fmt.Sprintf("%d dots visible", result.Stats.Dots),
		fmt.Sprintf("intro %s", result.Snapshot.Intro))
	for _, p := range paths {
		printFile(out, p)
	}
	return nil
}

// =============================================================================
// Output Paths
// =============================================================================

// basePath strips a known format extension from output. An empty output
// falls back to defaultOutput.
func basePath(output string) string {
	if output == "" {
		return defaultOutput
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// artifactPath names the file for one artifact key.
func artifactPath(base, key string) string {
	if key == pipeline.ArtifactThumbnail {
		return base + "_thumb.png"
	}
	return base + "." + key
}

// writeArtifacts writes every artifact next to output and returns the paths
// in a stable order. An output of "-" writes the single artifact to stdout.
func writeArtifacts(stdout io.Writer, output string, artifacts map[string][]byte) ([]string, error) {
	if output == "-" {
		for _, data := range artifacts {
			if _, err := stdout.Write(data); err != nil {
				return nil, errors.Wrap(errors.ErrCodeIO, err, "write stdout")
			}
		}
		return nil, nil
	}

	keys := make([]string, 0, len(artifacts))
	for k := range artifacts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	base := basePath(output)
	paths := make([]string, 0, len(keys))
	for _, k := range keys {
		path := artifactPath(base, k)
		if err := os.WriteFile(path, artifacts[k], 0o644); err != nil {
			return paths, errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
