package atlas

import (
	"math"

	"github.com/gogpu/glyphmesh/text"
)

// cacheKey identifies one rasterization in the atlas.
// Size and sub-pixel offset are binned by the configured tolerances, so
// glyphs that would rasterize almost identically share an entry.
type cacheKey struct {
	layer  int
	fontID uint64
	gid    text.GlyphID
	size   int64
	fx, fy int32
}

// keyFor bins g's size and sub-pixel position.
func (c *Cache) keyFor(layer int, g text.PositionedGlyph) cacheKey {
	_, _, fx, fy := g.Origin()
	return cacheKey{
		layer:  layer,
		fontID: g.Key.FontID,
		gid:    g.Key.GID,
		size:   int64(math.Round(float64(g.Key.Size) / c.cfg.ScaleTolerance)),
		fx:     binFraction(fx, c.cfg.PositionTolerance),
		fy:     binFraction(fy, c.cfg.PositionTolerance),
	}
}

// binFraction maps a sub-pixel offset in [0, 1) to a bin of width tol.
func binFraction(f, tol float64) int32 {
	bins := int32(math.Ceil(1 / tol))
	b := int32(math.Floor(f / tol))
	if b >= bins {
		b = bins - 1
	}
	if b < 0 {
		b = 0
	}
	return b
}
