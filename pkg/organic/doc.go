// Package organic grows the "roots" intro: branching random walks that start
// at the canvas edges and creep inward without ever entering a padded
// rectangle around the page content.
//
// # Walk
//
// Each step blends the previous heading (weight 0.8), a perpendicular curve
// tendency that occasionally flips sign, and a small random jitter. When a
// step would cross into the exclusion rectangle the heading is bent toward
// the nearest edge's outward normal and stays bent; if even the bent step
// would enter, the walk holds still for that step. Every step may spawn
// shorter, less branchy children roughly perpendicular to the parent.
//
// # Grid Resampling
//
// Walks are freeform. [Resample] samples each one at a fixed arc length,
// snaps samples to the nearest dot, drops consecutive repeats, and inserts an
// elbow wherever two snapped dots differ in both row and column, so the
// result can be animated and committed like any other stroke.
//
// All randomness comes from the *rand.Rand passed in; the same seed always
// grows the same roots.
package organic
