package mesh

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ClipRect is a rectangle in clip space. Because the y axis flips, a
// rectangle mapped from pixels has Min.Y() > Max.Y().
type ClipRect struct {
	Min, Max mgl32.Vec2
}

// ToClipPoint maps a pixel position in a w×h viewport (origin top-left,
// y down) to clip space. w and h must be positive.
func ToClipPoint(w, h float32, p mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{
		(p.X()/w - 0.5) * 2,
		(1 - p.Y()/h - 0.5) * 2,
	}
}

// FromClipPoint is the inverse of ToClipPoint.
func FromClipPoint(w, h float32, c mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{
		(c.X()/2 + 0.5) * w,
		(1 - (c.Y()/2 + 0.5)) * h,
	}
}

// ToClipRect maps both corners of a pixel rectangle independently.
func ToClipRect(w, h float32, r image.Rectangle) ClipRect {
	return ClipRect{
		Min: ToClipPoint(w, h, mgl32.Vec2{float32(r.Min.X), float32(r.Min.Y)}),
		Max: ToClipPoint(w, h, mgl32.Vec2{float32(r.Max.X), float32(r.Max.Y)}),
	}
}

// FromClipRect maps a clip rectangle back to pixels, rounding each corner
// to the nearest pixel.
func FromClipRect(w, h float32, r ClipRect) image.Rectangle {
	lo := FromClipPoint(w, h, r.Min)
	hi := FromClipPoint(w, h, r.Max)
	return image.Rect(roundInt(lo.X()), roundInt(lo.Y()), roundInt(hi.X()), roundInt(hi.Y()))
}

func roundInt(v float32) int {
	return int(math.Round(float64(v)))
}
