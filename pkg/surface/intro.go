package surface

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridsketch/pkg/anim"
	"github.com/matzehuels/gridsketch/pkg/burst"
	"github.com/matzehuels/gridsketch/pkg/grid"
	"github.com/matzehuels/gridsketch/pkg/organic"
	"github.com/matzehuels/gridsketch/pkg/palette"
	"github.com/matzehuels/gridsketch/pkg/stroke"
)

// introSegments generates the segments for an intro variant over g and
// returns the matching reveal policy. IntroNone yields a nil policy.
func introSegments(variant string, rng *rand.Rand, g grid.Grid, pal palette.Palette, centerPadding float64) anim.Policy {
	switch variant {
	case IntroBurst:
		return anim.NewSequentialPolicy(burst.Generate(rng, g, pal, burst.DefaultOptions()))
	case IntroRoots:
		cfg := organic.DefaultConfig(g.Width(), g.Height())
		cfg.CenterPadding = centerPadding
		return anim.NewStaggeredPolicy(rng, organic.Segments(rng, g, pal, cfg))
	default:
		return nil
	}
}

// newIntro builds the scheduler for the configured intro, or nil.
func newIntro(opts *Options, rng *rand.Rand, g grid.Grid, pal palette.Palette, committer stroke.Committer, logger *log.Logger) *anim.Scheduler {
	policy := introSegments(opts.Intro, rng, g, pal, *opts.CenterPadding)
	if policy == nil {
		return nil
	}
	logger.Debug("generated intro", "variant", opts.Intro, "segments", len(policy.Segments()))
	return anim.New(policy, opts.IntroDuration, committer,
		anim.WithLogger(logger),
		anim.WithStyle(opts.Style()),
		anim.WithVariant(opts.Intro),
	)
}
