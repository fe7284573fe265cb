package text

import (
	"image"
	"math"
)

// GlyphID is a unique identifier for a glyph within a font.
// The glyph ID is assigned by the font file and is font-specific.
type GlyphID uint16

// GlyphKey identifies a glyph rendering: which font, which glyph, what size.
// It is comparable and used as a cache lookup key.
type GlyphKey struct {
	// FontID identifies the font (hash of the font data, see FontSource.ID).
	FontID uint64

	// GID is the glyph index within the font.
	GID GlyphID

	// Size is the pixel size (pixels per em) the glyph is rendered at.
	Size float32
}

// PositionedGlyph is a glyph placed on the page by LayoutParagraph.
// It is only meaningful for the frame that produced it.
type PositionedGlyph struct {
	// Source is the font the glyph comes from.
	Source *FontSource

	// Key identifies the glyph rendering.
	Key GlyphKey

	// Rune is the (NFC-normalized) character this glyph represents.
	Rune rune

	// X, Y is the caret origin on the baseline, in pixels.
	X, Y float64

	// Advance is the horizontal advance width of the glyph.
	Advance float64

	// Bounds is the pixel bounding box of the glyph's ink.
	// It is empty for blank glyphs such as space.
	Bounds image.Rectangle
}

// Blank reports whether the glyph has no ink to rasterize.
func (g PositionedGlyph) Blank() bool {
	return g.Bounds.Empty()
}

// Origin splits the caret origin into an integer pixel position and a
// sub-pixel remainder in [0, 1).
func (g PositionedGlyph) Origin() (px, py int, fx, fy float64) {
	ix, iy := math.Floor(g.X), math.Floor(g.Y)
	return int(ix), int(iy), g.X - ix, g.Y - iy
}
