// Package pkg provides the core libraries for the gridsketch drawing surface.
//
// # Overview
//
// Gridsketch is a dot-grid sketchpad. Strokes snap to the grid, are drawn
// with rounded corners, and hide every dot they pass over. An intro
// animation sketches the first screen before the user takes over. The pkg
// directory is organized into four areas:
//
//  1. Geometry - [grid], [geom], [coverage] and [palette]
//  2. Generation - [burst], [organic] and [stroke]
//  3. Interaction - [anim], [interact] and [surface]
//  4. Output - [render], [pipeline]
//
// # Architecture
//
// The typical data flow through gridsketch:
//
//	pointer events / clock ticks
//	         ↓
//	    [interact] and [anim] (sessions and intro frames)
//	         ↓
//	    [surface] (committed strokes, covered dots, viewport)
//	         ↓
//	    [surface.Snapshot]
//	         ↓
//	    [render/raster] PNG or [render/braille] terminal text
//
// # Quick Start
//
// Play the intro headlessly and render a PNG:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/gridsketch/pkg/pipeline"
//	    "github.com/matzehuels/gridsketch/pkg/surface"
//	)
//
//	result, err := pipeline.NewRunner(nil).Execute(context.Background(), pipeline.Options{
//	    Surface: surface.Options{Width: 1280, Height: 800, Intro: surface.IntroRoots},
//	    Formats: []string{pipeline.FormatPNG},
//	})
//	png := result.Artifacts[pipeline.FormatPNG]
//
// # Main Packages
//
// [grid] - Dot positions, viewport queries and the row/column snap used
// while drawing.
//
// [geom] - Rounded-corner paths built from grid points, plus flattening
// for backends that only draw line segments.
//
// [coverage] - The set of dots hidden by strokes.
//
// [organic] - Procedural root-like polylines for the "roots" intro.
//
// [burst] - Grid-aligned segments radiating from the center for the
// "burst" intro.
//
// [anim] - The intro scheduler and its reveal policies.
//
// [interact] - The pointer state machine that turns presses and moves
// into strokes.
//
// [surface] - Coordinates the layers and owns all mutable drawing state.
//
// [pipeline] - Headless simulate, replay and render runs.
//
// # Error Handling
//
// Errors returned across package boundaries are [errors.Error] values with
// a machine-readable code. The drawing core itself never fails outward:
// faults inside animation frames and pointer callbacks are recovered,
// reported through [observability], and leave the surface idle.
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/gridsketch/pkg/grid
// [geom]: https://pkg.go.dev/github.com/matzehuels/gridsketch/pkg/geom
// [coverage]: https://pkg.go.dev/github.com/matzehuels/gridsketch/pkg/coverage
// [palette]: https://pkg.go.dev/github.com/matzehuels/gridsketch/pkg/palette
// [burst]: https://pkg.go.dev/github.com/matzehuels/gridsketch/pkg/burst
// [organic]: https://pkg.go.dev/github.com/matzehuels/gridsketch/pkg/organic
// [stroke]: https://pkg.go.dev/github.com/matzehuels/gridsketch/pkg/stroke
// [anim]: https://pkg.go.dev/github.com/matzehuels/gridsketch/pkg/anim
// [interact]: https://pkg.go.dev/github.com/matzehuels/gridsketch/pkg/interact
// [surface]: https://pkg.go.dev/github.com/matzehuels/gridsketch/pkg/surface
// [surface.Snapshot]: https://pkg.go.dev/github.com/matzehuels/gridsketch/pkg/surface#Snapshot
// [render]: https://pkg.go.dev/github.com/matzehuels/gridsketch/pkg/render
// [render/raster]: https://pkg.go.dev/github.com/matzehuels/gridsketch/pkg/render/raster
// [render/braille]: https://pkg.go.dev/github.com/matzehuels/gridsketch/pkg/render/braille
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/gridsketch/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/gridsketch/pkg/errors
// [errors.Error]: https://pkg.go.dev/github.com/matzehuels/gridsketch/pkg/errors#Error
// [observability]: https://pkg.go.dev/github.com/matzehuels/gridsketch/pkg/observability
package pkg
