package raster

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/matzehuels/gridsketch/pkg/errors"
	"github.com/matzehuels/gridsketch/pkg/grid"
	"github.com/matzehuels/gridsketch/pkg/palette"
	"github.com/matzehuels/gridsketch/pkg/stroke"
	"github.com/matzehuels/gridsketch/pkg/surface"
)

// snapshot returns a 200x100 light snapshot with one vermilion stroke along
// row 0 from column 0 to column 4 (x 11.5 to 103.5, y 11.5).
func snapshot(t *testing.T) surface.Snapshot {
	t.Helper()
	g, err := grid.New(23, 200, 100)
	if err != nil {
		t.Fatal(err)
	}
	rec := stroke.New(stroke.OriginPointer, palette.Vermilion, stroke.DefaultStyle, stroke.OpacityCommitted,
		[]grid.Dot{g.DotAt(0, 0), g.DotAt(0, 4)})
	return surface.Snapshot{
		Width:      200,
		Height:     100,
		Viewport:   grid.ViewportAt(0, 0, 200, 100),
		Background: palette.LightBackground,
		DotColor:   palette.DotColor,
		DotRadius:  0.5,
		Dots:       g.Visible(grid.ViewportAt(0, 0, 200, 100), 0),
		Shapes:     []stroke.Record{rec},
	}
}

func near(got, want uint8) bool {
	d := int(got) - int(want)
	return d >= -10 && d <= 10
}

func rgb(img image.Image, x, y int) (uint8, uint8, uint8) {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}

func TestRender(t *testing.T) {
	img, err := Render(snapshot(t))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Fatalf("bounds = %v, want 200x100", b)
	}

	// Middle of the stroke.
	if r, g, b := rgb(img, 50, 11); !near(r, 0xf2) || !near(g, 0x42) || !near(b, 0x36) {
		t.Errorf("stroke pixel = (%d, %d, %d), want vermilion", r, g, b)
	}
	// Far from any dot or stroke.
	if r, g, b := rgb(img, 160, 70); !near(r, 0xed) || !near(g, 0xea) || !near(b, 0xde) {
		t.Errorf("background pixel = (%d, %d, %d), want #EDEADE", r, g, b)
	}
}

func TestRenderScale(t *testing.T) {
	img, err := Render(snapshot(t), WithScale(2))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 200 {
		t.Fatalf("bounds = %v, want 400x200", b)
	}
	if r, g, b := rgb(img, 100, 23); !near(r, 0xf2) || !near(g, 0x42) || !near(b, 0x36) {
		t.Errorf("scaled stroke pixel = (%d, %d, %d), want vermilion", r, g, b)
	}
}

func TestRenderViewportOffset(t *testing.T) {
	snap := snapshot(t)
	snap.Viewport = grid.ViewportAt(50, 0, 200, 100)
	img, err := Render(snap, WithoutDots())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	// The stroke at y 11.5 is scrolled out of view.
	if r, g, b := rgb(img, 50, 11); !near(r, 0xed) || !near(g, 0xea) || !near(b, 0xde) {
		t.Errorf("pixel = (%d, %d, %d), want background", r, g, b)
	}
}

func TestRenderEmpty(t *testing.T) {
	_, err := Render(surface.Snapshot{})
	if !errors.Is(err, errors.ErrCodeRender) {
		t.Errorf("Render(empty) = %v, want RENDER_FAILED", err)
	}
}

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG(snapshot(t))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Errorf("decoded bounds = %v, want 200x100", b)
	}
}

func TestThumbnail(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 200))
	tests := []struct {
		name     string
		maxWidth int
		w, h     int
	}{
		{"halved", 200, 200, 100},
		{"already small", 800, 400, 200},
		{"disabled", 0, 400, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Thumbnail(img, tt.maxWidth).Bounds()
			if b.Dx() != tt.w || b.Dy() != tt.h {
				t.Errorf("Thumbnail(%d) = %dx%d, want %dx%d", tt.maxWidth, b.Dx(), b.Dy(), tt.w, tt.h)
			}
		})
	}
}
