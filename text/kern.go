package text

// KernGlyph names one side of a kerning pair.
type KernGlyph struct {
	Rune rune
	GID  GlyphID
}

// Kerner returns the horizontal adjustment, in pixels, to apply between
// two adjacent glyphs at the given size.
type Kerner interface {
	Kern(source *FontSource, ppem float64, left, right KernGlyph) float64
}

// FontKerner kerns with the font's own kern table.
type FontKerner struct{}

// Kern implements Kerner.
func (FontKerner) Kern(source *FontSource, ppem float64, left, right KernGlyph) float64 {
	p := source.Parsed()
	if p == nil {
		return 0
	}
	return p.Kern(uint16(left.GID), uint16(right.GID), ppem)
}

// NoKerning disables kerning.
type NoKerning struct{}

// Kern implements Kerner.
func (NoKerning) Kern(*FontSource, float64, KernGlyph, KernGlyph) float64 { return 0 }
