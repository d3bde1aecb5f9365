// Package stroke defines the records shared by the drawing machine, the
// intro animation, and the surface that owns the committed collection.
package stroke

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/matzehuels/gridsketch/pkg/errors"
	"github.com/matzehuels/gridsketch/pkg/geom"
	"github.com/matzehuels/gridsketch/pkg/grid"
)

// Opacities for strokes that are still growing and for committed ones.
const (
	OpacityLive      = 0.8
	OpacityCommitted = 1.0
)

// Origin says which component produced a record.
type Origin int

const (
	OriginPointer Origin = iota
	OriginIntro
)

func (o Origin) String() string {
	switch o {
	case OriginPointer:
		return "pointer"
	case OriginIntro:
		return "intro"
	default:
		return fmt.Sprintf("Origin(%d)", int(o))
	}
}

// Style is the pen every stroke is drawn with.
type Style struct {
	Width        float64
	CornerRadius float64
}

// DefaultStyle is a 7 unit pen with 12 unit corners.
var DefaultStyle = Style{Width: 7, CornerRadius: 12}

// Record is one drawn or animated stroke.
type Record struct {
	ID      string
	Color   string
	Width   float64
	Opacity float64
	Origin  Origin
	Points  []grid.Dot
	Path    geom.Path
}

// New builds a record with a fresh id and geometry for points. The points
// slice is copied.
func New(origin Origin, color string, style Style, opacity float64, points []grid.Dot) Record {
	r := Record{
		ID:      uuid.NewString(),
		Color:   color,
		Width:   style.Width,
		Opacity: opacity,
		Origin:  origin,
		Points:  append([]grid.Dot(nil), points...),
	}
	r.Path = geom.Build(r.Points, style.CornerRadius)
	return r
}

// Live builds an uncommitted record under a caller-chosen id. Frames that are
// rebuilt many times per second reuse the same id, and the points slice is
// shared, not copied.
func Live(id string, origin Origin, color string, style Style, points []grid.Dot) Record {
	return Record{
		ID:      id,
		Color:   color,
		Width:   style.Width,
		Opacity: OpacityLive,
		Origin:  origin,
		Points:  points,
		Path:    geom.Build(points, style.CornerRadius),
	}
}

// Validate checks the committed-record invariant: at least two points, each
// consecutive pair sharing exactly one of row or column.
func (r Record) Validate() error {
	if len(r.Points) < 2 {
		return errors.New(errors.ErrCodeInvalidStroke, "stroke %s has %d points, want at least 2", r.ID, len(r.Points))
	}
	if i := misaligned(r.Points); i > 0 {
		return errors.New(errors.ErrCodeInvalidStroke, "stroke %s: %v -> %v is not axis-aligned",
			r.ID, r.Points[i-1].ID(), r.Points[i].ID())
	}
	return nil
}

// Aligned reports whether every consecutive pair differs in exactly one axis.
func Aligned(points []grid.Dot) bool {
	return misaligned(points) == 0
}

// misaligned returns the index of the first point that breaks alignment with
// its predecessor, or 0.
func misaligned(points []grid.Dot) int {
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		sameRow, sameCol := a.Row == b.Row, a.Col == b.Col
		if sameRow == sameCol {
			return i
		}
	}
	return 0
}

// Segment is an animation input: a dot sequence waiting to be revealed.
type Segment struct {
	Points []grid.Dot
	Color  string
}

// Committer receives finished records.
type Committer interface {
	Commit(records ...Record)
}

// CommitFunc adapts a function to Committer.
type CommitFunc func(records ...Record)

// Commit calls f.
func (f CommitFunc) Commit(records ...Record) { f(records...) }
