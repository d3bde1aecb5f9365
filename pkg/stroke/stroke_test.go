package stroke

import (
	"testing"

	"github.com/matzehuels/gridsketch/pkg/errors"
	"github.com/matzehuels/gridsketch/pkg/grid"
)

func dots(t *testing.T, rc ...int) []grid.Dot {
	t.Helper()
	g, err := grid.New(23, 2000, 2000)
	if err != nil {
		t.Fatal(err)
	}
	var out []grid.Dot
	for i := 0; i+1 < len(rc); i += 2 {
		out = append(out, g.DotAt(rc[i], rc[i+1]))
	}
	return out
}

func TestNew(t *testing.T) {
	pts := dots(t, 0, 0, 0, 3, 2, 3)
	r := New(OriginPointer, "#f24236", DefaultStyle, OpacityCommitted, pts)

	if r.ID == "" {
		t.Error("New() should assign an id")
	}
	if r.Width != 7 || r.Opacity != 1 || r.Color != "#f24236" {
		t.Errorf("New() = %+v, want width 7, opacity 1, color #f24236", r)
	}
	if !r.Path.HasCurves() {
		t.Error("New() on an L shape should build a rounded corner")
	}

	pts[0] = grid.Dot{}
	if r.Points[0].X == 0 {
		t.Error("New() should copy the points slice")
	}

	other := New(OriginPointer, "#f24236", DefaultStyle, OpacityCommitted, pts)
	if other.ID == r.ID {
		t.Error("New() should assign unique ids")
	}
}

func TestLive(t *testing.T) {
	pts := dots(t, 0, 0, 0, 2)
	r := Live("intro-3", OriginIntro, "#2e86ab", DefaultStyle, pts)
	if r.ID != "intro-3" || r.Opacity != OpacityLive {
		t.Errorf("Live() = %+v, want id intro-3 with live opacity", r)
	}
	if r.Path.Empty() {
		t.Error("Live() should build geometry")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		points  []grid.Dot
		wantErr bool
	}{
		{"aligned", dots(t, 1, 1, 1, 4, 3, 4), false},
		{"single point", dots(t, 1, 1), true},
		{"diagonal", dots(t, 1, 1, 2, 2), true},
		{"duplicate", dots(t, 1, 1, 1, 1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(OriginIntro, "#000", DefaultStyle, 1, tt.points).Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidStroke) {
				t.Errorf("Validate() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidStroke)
			}
		})
	}
}

func TestOriginString(t *testing.T) {
	if OriginPointer.String() != "pointer" || OriginIntro.String() != "intro" {
		t.Error("Origin.String() mismatch")
	}
}

func TestCommitFunc(t *testing.T) {
	var got []Record
	var c Committer = CommitFunc(func(rs ...Record) { got = append(got, rs...) })
	c.Commit(Record{ID: "a"}, Record{ID: "b"})
	if len(got) != 2 {
		t.Errorf("CommitFunc received %d records, want 2", len(got))
	}
}
