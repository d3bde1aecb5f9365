package cli

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridsketch/pkg/observability"
)

// logHooks reports surface events at debug level.
type logHooks struct {
	logger *log.Logger
}

var _ observability.SurfaceHooks = (*logHooks)(nil)

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l.WithPrefix("surface")}
}

func (h *logHooks) OnStrokeCommitted(origin, id string, points int) {
	h.logger.Debug("stroke committed", "origin", origin, "id", id, "points", points)
}

func (h *logHooks) OnClear(strokes, covered int, cancelledIntro bool) {
	h.logger.Debug("cleared", "strokes", strokes, "covered", covered, "cancelled_intro", cancelledIntro)
}

func (h *logHooks) OnIntroComplete(variant string, strokes int, elapsed time.Duration) {
	h.logger.Debug("intro complete", "variant", variant, "strokes", strokes,
		"elapsed", elapsed.Round(time.Millisecond))
}

func (h *logHooks) OnFault(where string, err error) {
	h.logger.Error("recovered fault", "where", where, "err", err)
}
