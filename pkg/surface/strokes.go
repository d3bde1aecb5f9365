package surface

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridsketch/pkg/coverage"
	"github.com/matzehuels/gridsketch/pkg/observability"
	"github.com/matzehuels/gridsketch/pkg/stroke"
)

// Collection is the ordered set of committed strokes. Committing a record
// covers its dots.
type Collection struct {
	records  []stroke.Record
	covered  *coverage.Set
	logger   *log.Logger
	revision uint64
}

// NewCollection returns an empty collection that marks dots in covered.
func NewCollection(covered *coverage.Set, logger *log.Logger) *Collection {
	if covered == nil {
		covered = coverage.New()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Collection{covered: covered, logger: logger}
}

// Commit appends records in order. Records that fail validation are logged
// and skipped.
func (c *Collection) Commit(records ...stroke.Record) {
	added := 0
	for _, r := range records {
		if err := r.Validate(); err != nil {
			c.logger.Warn("rejecting stroke", "err", err)
			continue
		}
		c.records = append(c.records, r)
		c.covered.Mark(r.Points)
		observability.Surface().OnStrokeCommitted(r.Origin.String(), r.ID, len(r.Points))
		added++
	}
	if added > 0 {
		c.revision++
	}
}

// Len is the number of committed strokes.
func (c *Collection) Len() int { return len(c.records) }

// Records returns the committed strokes, oldest first. The slice is shared;
// callers must not modify it.
func (c *Collection) Records() []stroke.Record { return c.records }

// Clear drops every stroke and returns how many there were.
func (c *Collection) Clear() int {
	n := len(c.records)
	if n > 0 {
		c.records = nil
		c.revision++
	}
	return n
}

// Revision changes whenever the collection changes.
func (c *Collection) Revision() uint64 { return c.revision }
