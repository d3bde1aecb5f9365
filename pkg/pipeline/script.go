package pipeline

import (
	"strconv"
	"strings"

	"github.com/matzehuels/gridsketch/pkg/errors"
	"github.com/matzehuels/gridsketch/pkg/grid"
)

// ParseStroke parses a scripted stroke of space-separated "row,col" cells,
// for example "2,3 2,9 6,9".
func ParseStroke(s string) ([]grid.ID, error) {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "stroke %q needs at least two cells", s)
	}
	ids := make([]grid.ID, 0, len(fields))
	for _, f := range fields {
		rs, cs, ok := strings.Cut(f, ",")
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "cell %q is not row,col", f)
		}
		row, err := strconv.Atoi(strings.TrimSpace(rs))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "cell %q: bad row", f)
		}
		col, err := strconv.Atoi(strings.TrimSpace(cs))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "cell %q: bad column", f)
		}
		ids = append(ids, grid.ID{Row: row, Col: col})
	}
	return ids, nil
}
