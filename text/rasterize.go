package text

import (
	"image"
	"image/draw"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// GlyphMask is a rasterized glyph: one coverage byte per pixel.
type GlyphMask struct {
	// Coverage holds Bounds.Dx()*Bounds.Dy() bytes, row-major, 0 = empty, 255 = full.
	Coverage []byte

	// Bounds is the mask rectangle relative to the integer glyph origin.
	// The origin is on the baseline at the left edge; Y grows downward.
	Bounds image.Rectangle
}

// Empty reports whether the mask has no pixels.
func (m GlyphMask) Empty() bool {
	return m.Bounds.Empty() || len(m.Coverage) == 0
}

// Width returns the mask width in pixels.
func (m GlyphMask) Width() int { return m.Bounds.Dx() }

// Height returns the mask height in pixels.
func (m GlyphMask) Height() int { return m.Bounds.Dy() }

// Alpha wraps the coverage in an *image.Alpha without copying.
func (m GlyphMask) Alpha() *image.Alpha {
	return &image.Alpha{
		Pix:    m.Coverage,
		Stride: m.Bounds.Dx(),
		Rect:   m.Bounds,
	}
}

// rasterizeSegments fills a glyph outline with the vector rasterizer.
// The outline is shifted by (fx, fy) before its pixel bounds are taken.
func rasterizeSegments(segments sfnt.Segments, fx, fy float64) GlyphMask {
	if len(segments) == 0 {
		return GlyphMask{}
	}

	b := segments.Bounds()
	bounds := Rect{
		MinX: fixedToFloat64(b.Min.X) + fx,
		MinY: fixedToFloat64(b.Min.Y) + fy,
		MaxX: fixedToFloat64(b.Max.X) + fx,
		MaxY: fixedToFloat64(b.Max.Y) + fy,
	}.Pixels()
	if bounds.Empty() {
		return GlyphMask{}
	}

	w, h := bounds.Dx(), bounds.Dy()
	dx := float32(fx) - float32(bounds.Min.X)
	dy := float32(fy) - float32(bounds.Min.Y)
	pt := func(p fixed.Point26_6) (float32, float32) {
		return float32(p.X)/64 + dx, float32(p.Y)/64 + dy
	}

	rast := vector.NewRasterizer(w, h)
	rast.DrawOp = draw.Src
	started := false
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if started {
				rast.ClosePath()
			}
			started = true
			rast.MoveTo(pt(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			rast.LineTo(pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			x1, y1 := pt(seg.Args[0])
			x2, y2 := pt(seg.Args[1])
			rast.QuadTo(x1, y1, x2, y2)
		case sfnt.SegmentOpCubeTo:
			x1, y1 := pt(seg.Args[0])
			x2, y2 := pt(seg.Args[1])
			x3, y3 := pt(seg.Args[2])
			rast.CubeTo(x1, y1, x2, y2, x3, y3)
		}
	}
	if started {
		rast.ClosePath()
	}

	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	rast.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})

	return GlyphMask{Coverage: dst.Pix, Bounds: bounds}
}
