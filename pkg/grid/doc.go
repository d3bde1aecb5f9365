// Package grid maps a fixed-spacing dot lattice onto a canvas.
//
// A [Dot] is never stored: it is synthesized from its (row, col) address by
// [Grid.DotAt], or enumerated for a visible region by [Grid.Visible]. Row r
// sits at y = r*spacing + spacing/2 and column c at x = c*spacing + spacing/2,
// so two dots with the same address always agree on position and [ID].
//
// # Virtualization
//
// Visible converts the margin-extended viewport edges into row and column
// bounds with floor/ceil arithmetic and enumerates only that product. The
// cost is proportional to the number of dots on screen, not to the canvas.
//
// # Pointer Mapping
//
// [Grid.Nearest] rounds a content coordinate to the closest cell in O(1),
// and [Grid.Snap] constrains that cell to share a row or a column with the
// previous point of a stroke, which is how every drawn stroke stays
// axis-aligned.
package grid
