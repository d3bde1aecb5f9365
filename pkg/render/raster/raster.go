// Package raster paints surface snapshots into images with gogpu/gg.
//
// Coordinates in a snapshot are content units. A scale factor maps them to
// device pixels, so a 1280x800 window rendered at scale 2 yields a
// 2560x1600 PNG with every dot and stroke drawn at full resolution.
package raster

import (
	"bytes"
	"image"
	"math"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/matzehuels/gridsketch/pkg/errors"
	"github.com/matzehuels/gridsketch/pkg/geom"
	"github.com/matzehuels/gridsketch/pkg/stroke"
	"github.com/matzehuels/gridsketch/pkg/surface"
)

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	scale    float64
	skipDots bool
}

// WithScale sets the device pixel ratio (default 1).
func WithScale(s float64) Option {
	return func(r *renderer) {
		if s > 0 && !math.IsInf(s, 0) {
			r.scale = s
		}
	}
}

// WithoutDots paints the stroke layer only.
func WithoutDots() Option {
	return func(r *renderer) { r.skipDots = true }
}

// Render paints snap into a new image.
func Render(snap surface.Snapshot, opts ...Option) (image.Image, error) {
	r := renderer{scale: 1}
	for _, opt := range opts {
		opt(&r)
	}

	w := int(math.Ceil(snap.Width * r.scale))
	h := int(math.Ceil(snap.Height * r.scale))
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeRender, "cannot render a %vx%v snapshot", snap.Width, snap.Height)
	}

	dc := gg.NewContext(w, h)
	defer dc.Close()

	dc.ClearWithColor(gg.Hex(snap.Background))
	dc.Scale(r.scale, r.scale)
	dc.Translate(-snap.Viewport.Left, -snap.Viewport.Top)

	if !r.skipDots && len(snap.Dots) > 0 {
		dc.SetHexColor(snap.DotColor)
		for _, d := range snap.Dots {
			dc.DrawCircle(d.X, d.Y, snap.DotRadius)
		}
		if err := dc.Fill(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeRender, err, "fill dots")
		}
	}

	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	for _, rec := range snap.Shapes {
		if err := drawStroke(dc, rec); err != nil {
			return nil, errors.Wrap(errors.ErrCodeRender, err, "stroke %s", rec.ID)
		}
	}
	return dc.Image(), nil
}

func drawStroke(dc *gg.Context, rec stroke.Record) error {
	if rec.Path.Empty() {
		return nil
	}
	c := gg.Hex(rec.Color)
	dc.SetRGBA(c.R, c.G, c.B, rec.Opacity)
	dc.SetLineWidth(rec.Width)
	for _, cmd := range rec.Path.Commands {
		switch cmd.Op {
		case geom.MoveTo:
			dc.MoveTo(cmd.Args[0], cmd.Args[1])
		case geom.LineTo:
			dc.LineTo(cmd.Args[0], cmd.Args[1])
		case geom.QuadTo:
			dc.QuadraticTo(cmd.Args[0], cmd.Args[1], cmd.Args[2], cmd.Args[3])
		}
	}
	return dc.Stroke()
}

// RenderPNG paints snap and encodes it as PNG.
func RenderPNG(snap surface.Snapshot, opts ...Option) ([]byte, error) {
	img, err := Render(snap, opts...)
	if err != nil {
		return nil, err
	}
	return EncodePNG(img)
}

// EncodePNG encodes img through gg's PNG writer.
func EncodePNG(img image.Image) ([]byte, error) {
	dc := gg.NewContextForImage(img)
	defer dc.Close()
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "encode png")
	}
	return buf.Bytes(), nil
}

// Thumbnail scales img down to at most maxWidth pixels wide, keeping its
// aspect ratio. Images already narrow enough are returned unchanged.
func Thumbnail(img image.Image, maxWidth int) image.Image {
	b := img.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return img
	}
	h := max(1, b.Dy()*maxWidth/b.Dx())
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
