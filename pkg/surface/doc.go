// Package surface is the drawing surface a host embeds.
//
// A [Surface] owns every piece of mutable state: the grid and viewport, the
// shared coverage set, the committed [Collection], the pointer
// [interact.Machine] and the intro [anim.Scheduler]. Hosts feed it input
// (Press, Move, Release, Key, Scroll, RequestResize/ApplyResize), call Frame
// once per display refresh while [Surface.Animating] is true, and read two
// layers back out:
//
//   - the dot layer, [Surface.Dots]: visible dots that no stroke covers.
//     [Surface.DotRevision] changes whenever the set changes so hosts can
//     skip redundant redraws.
//   - the stroke layer, [Surface.Shapes]: committed strokes, the current
//     intro frame and the open session, in paint order. It is rebuilt in
//     full; hosts replace what they drew before.
//
// [Surface.Snapshot] bundles both layers with theme colors for renderers.
//
// # Configuration
//
// [Options] is the single source of truth for defaults. Zero values are
// filled by [Options.ValidateAndSetDefaults]:
//
//	s, err := surface.New(surface.Options{Width: 1280, Height: 800, Intro: surface.IntroRoots})
//	if err != nil {
//	    return err
//	}
//	s.Start(time.Now())
package surface
