// Package coverage tracks which dots are hidden beneath strokes.
//
// A stroke only records the points where it changes direction, so marking
// those alone would leave dots visible under long straight runs. [Set.Mark]
// fills in every lattice point between consecutive points that share a row or
// a column. Marking is idempotent, and the set only grows until [Set.Clear].
package coverage

import "github.com/matzehuels/gridsketch/pkg/grid"

// Set is the collection of covered dot ids. The zero value is empty and ready
// to use.
type Set struct {
	ids      map[grid.ID]struct{}
	revision uint64
}

// New returns an empty set.
func New() *Set {
	return &Set{ids: make(map[grid.ID]struct{})}
}

// Mark covers every point of a stroke and every dot between consecutive
// points sharing a row or a column.
func (s *Set) Mark(points []grid.Dot) {
	for _, p := range points {
		s.add(p.ID())
	}
	for i := 1; i < len(points); i++ {
		s.MarkRun(points[i-1].ID(), points[i].ID())
	}
}

// MarkRun covers the straight run from a to b, both ends included. Pairs that
// share neither a row nor a column only cover their endpoints.
func (s *Set) MarkRun(a, b grid.ID) {
	s.add(a)
	s.add(b)
	switch {
	case a.Row == b.Row:
		for col := min(a.Col, b.Col); col <= max(a.Col, b.Col); col++ {
			s.add(grid.ID{Row: a.Row, Col: col})
		}
	case a.Col == b.Col:
		for row := min(a.Row, b.Row); row <= max(a.Row, b.Row); row++ {
			s.add(grid.ID{Row: row, Col: a.Col})
		}
	}
}

func (s *Set) add(id grid.ID) {
	if s.ids == nil {
		s.ids = make(map[grid.ID]struct{})
	}
	if _, ok := s.ids[id]; ok {
		return
	}
	s.ids[id] = struct{}{}
	s.revision++
}

// Has reports whether id is covered.
func (s *Set) Has(id grid.ID) bool {
	_, ok := s.ids[id]
	return ok
}

// Len is the number of covered dots.
func (s *Set) Len() int {
	return len(s.ids)
}

// Clear uncovers everything.
func (s *Set) Clear() {
	if len(s.ids) == 0 {
		return
	}
	clear(s.ids)
	s.revision++
}

// Revision changes whenever the contents change. Callers compare revisions
// to decide whether a redraw is due.
func (s *Set) Revision() uint64 {
	return s.revision
}
