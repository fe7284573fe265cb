package text

import (
	"image"
	"math"
)

// Rect represents a rectangle for glyph bounds, in pixels.
// Y grows downward, so MinY is negative for the part of a glyph above the baseline.
type Rect struct {
	// Min is the top-left corner
	MinX, MinY float64
	// Max is the bottom-right corner
	MaxX, MaxY float64
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.MaxX - r.MinX
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.MaxY - r.MinY
}

// Empty reports whether the rectangle is empty.
func (r Rect) Empty() bool {
	return r.MinX >= r.MaxX || r.MinY >= r.MaxY
}

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{MinX: r.MinX + dx, MinY: r.MinY + dy, MaxX: r.MaxX + dx, MaxY: r.MaxY + dy}
}

// Pixels returns the smallest integer rectangle covering r.
// An empty r yields the zero rectangle.
func (r Rect) Pixels() image.Rectangle {
	if r.Empty() {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(r.MinX)),
		int(math.Floor(r.MinY)),
		int(math.Ceil(r.MaxX)),
		int(math.Ceil(r.MaxY)),
	)
}
