// Package render groups the output backends for surface snapshots.
//
// # Overview
//
// Both backends consume an immutable [surface.Snapshot] and never touch the
// live surface:
//
//   - [raster]: paints dots and strokes with gogpu/gg and encodes PNG, with
//     device pixel ratio scaling and thumbnails
//   - [braille]: maps the same layers onto a 2x4 braille bitmap per terminal
//     cell, for the interactive TUI and plain-text dumps
//
//	snap := s.Snapshot()
//	png, err := raster.RenderPNG(snap, raster.WithScale(2))
//	txt := braille.Draw(snap, cols, rows, spacing/4).String()
//
// [surface.Snapshot]: github.com/matzehuels/gridsketch/pkg/surface#Snapshot
// [raster]: github.com/matzehuels/gridsketch/pkg/render/raster
// [braille]: github.com/matzehuels/gridsketch/pkg/render/braille
package render
