package text

import "sync"

// FontParser is an interface for font parsing backends.
// This abstraction allows swapping the font parsing library
// (e.g., golang.org/x/image/font/opentype vs a pure Go implementation).
//
// The default implementation uses golang.org/x/image/font/opentype.
type FontParser interface {
	// Parse parses font data (TTF or OTF) and returns a ParsedFont.
	Parse(data []byte) (ParsedFont, error)
}

// ParsedFont represents a parsed font file.
// All sizes are in pixels per em. Implementations must be safe for
// concurrent use.
type ParsedFont interface {
	// Name returns the font family name.
	// Returns empty string if not available.
	Name() string

	// FullName returns the full font name.
	// Returns empty string if not available.
	FullName() string

	// NumGlyphs returns the number of glyphs in the font.
	NumGlyphs() int

	// UnitsPerEm returns the units per em for the font.
	UnitsPerEm() int

	// GlyphIndex returns the glyph index for a rune.
	// Returns 0 (.notdef) if the font has no glyph for r.
	GlyphIndex(r rune) uint16

	// GlyphAdvance returns the advance width for a glyph.
	GlyphAdvance(glyphIndex uint16, ppem float64) float64

	// GlyphBounds returns the ink bounding box for a glyph relative to its
	// origin on the baseline. Blank glyphs return an empty Rect.
	GlyphBounds(glyphIndex uint16, ppem float64) Rect

	// Kern returns the horizontal kerning adjustment between two glyphs.
	// Fonts without kerning data return 0.
	Kern(left, right uint16, ppem float64) float64

	// Rasterize renders a glyph's coverage with its origin shifted by the
	// sub-pixel offset (fx, fy), each in [0, 1).
	Rasterize(glyphIndex uint16, ppem, fx, fy float64) GlyphMask

	// Metrics returns the font metrics at the given size.
	Metrics(ppem float64) FontMetrics
}

var (
	parserMu sync.RWMutex

	// parserRegistry holds registered font parsers.
	// The default parser is "ximage" (golang.org/x/image).
	parserRegistry = map[string]FontParser{
		defaultParserName: &ximageParser{},
	}
)

// defaultParserName is the name of the default parser.
const defaultParserName = "ximage"

// RegisterParser registers a custom font parser.
// This allows users to provide their own parsing implementation.
func RegisterParser(name string, parser FontParser) {
	parserMu.Lock()
	defer parserMu.Unlock()
	parserRegistry[name] = parser
}

// getParser returns the parser registered under name.
func getParser(name string) (FontParser, bool) {
	parserMu.RLock()
	defer parserMu.RUnlock()
	p, ok := parserRegistry[name]
	return p, ok
}
