// Package geom turns grid-aligned point lists into stroke geometry.
//
// [Build] is the only smoothing rule in the program: every interior point
// where a stroke turns from horizontal to vertical (or back) is replaced by a
// quadratic corner of a fixed radius, and everything else is a straight line.
// Committed strokes, the stroke being drawn, and animation frames all go
// through it, so they look identical at every stage.
//
// A [Path] is a flat command list. Raster backends can replay it directly
// (MoveTo/LineTo/QuadTo) or call [Path.Flatten] when they only draw line
// segments.
package geom
