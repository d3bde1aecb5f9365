// Package interact turns pointer events into grid-aligned strokes.
//
// A [Machine] has two states. A primary press on an in-bounds cell opens a
// session in Drawing; moves extend it with points snapped to share a row or a
// column with the previous point; a release commits the session when it holds
// at least two points and drops it otherwise. Every event carries the host's
// timestamp, which drives both the move throttle and double-click detection,
// so the machine never reads a clock of its own.
//
// Dots under the session are marked in the shared [coverage.Set] as the
// stroke grows, not when it is committed.
package interact
