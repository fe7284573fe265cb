package text

import (
	"fmt"
	"hash/fnv"
	"os"
	"sync"

	"github.com/gogpu/glyphmesh/internal/cache"
)

// FontSource represents a loaded font file.
// FontSource is heavyweight and should be shared across the application.
//
// FontSource is safe for concurrent use.
// FontSource must not be copied after creation (enforced by copyCheck).
type FontSource struct {
	// addr is used for copy protection (Ebitengine pattern).
	// It must point to the FontSource itself.
	addr *FontSource

	// mu guards data and parsed against Close.
	mu     sync.RWMutex
	data   []byte
	parsed ParsedFont

	id   uint64
	name string

	// Per-size glyph lookups. Layout asks for the same glyphs every frame.
	advances *cache.Cache[glyphSizeKey, float64]
	bounds   *cache.Cache[glyphSizeKey, Rect]
	present  *runeSet

	config sourceConfig
}

// glyphSizeKey keys glyph lookups that depend on the pixel size.
type glyphSizeKey struct {
	gid  uint16
	ppem float64
}

// NewFontSource creates a FontSource from font data (TTF or OTF).
// The data slice is copied internally and can be reused after this call.
func NewFontSource(data []byte, opts ...SourceOption) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	config := defaultSourceConfig()
	for _, opt := range opts {
		opt(&config)
	}

	parser, ok := getParser(config.parserName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownParser, config.parserName)
	}
	parsed, err := parser.Parse(data)
	if err != nil {
		return nil, err
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	h := fnv.New64a()
	_, _ = h.Write(dataCopy)

	s := &FontSource{
		data:     dataCopy,
		parsed:   parsed,
		id:       h.Sum64(),
		advances: cache.New[glyphSizeKey, float64](config.cacheLimit),
		bounds:   cache.New[glyphSizeKey, Rect](config.cacheLimit),
		present:  newRuneSet(),
		config:   config,
	}
	s.addr = s
	s.name = extractFontName(parsed)

	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string, opts ...SourceOption) (*FontSource, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}

	return NewFontSource(data, opts...)
}

// ID returns a stable identifier derived from the font data.
// Two sources loaded from identical bytes share an ID.
func (s *FontSource) ID() uint64 {
	s.copyCheck()
	return s.id
}

// Name returns the font name.
func (s *FontSource) Name() string {
	s.copyCheck()
	return s.name
}

// Data returns the raw font bytes. The slice must not be modified.
func (s *FontSource) Data() []byte {
	s.copyCheck()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// Parsed returns the parsed font, or nil after Close.
func (s *FontSource) Parsed() ParsedFont {
	s.copyCheck()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.parsed
}

// GlyphIndex maps r to a glyph. ok is false when the font has no glyph for r.
func (s *FontSource) GlyphIndex(r rune) (gid GlyphID, ok bool) {
	p := s.Parsed()
	if p == nil {
		return 0, false
	}
	if present, checked := s.present.get(r); checked && !present {
		return 0, false
	}
	idx := p.GlyphIndex(r)
	s.present.set(r, idx != 0)
	return GlyphID(idx), idx != 0
}

// HasGlyph reports whether the font maps r to a glyph.
func (s *FontSource) HasGlyph(r rune) bool {
	_, ok := s.GlyphIndex(r)
	return ok
}

// Advance returns the advance width of gid at ppem pixels per em.
func (s *FontSource) Advance(gid GlyphID, ppem float64) float64 {
	p := s.Parsed()
	if p == nil {
		return 0
	}
	return s.advances.GetOrCreate(glyphSizeKey{uint16(gid), ppem}, func() float64 {
		return p.GlyphAdvance(uint16(gid), ppem)
	})
}

// Bounds returns the ink bounds of gid relative to its origin.
func (s *FontSource) Bounds(gid GlyphID, ppem float64) Rect {
	p := s.Parsed()
	if p == nil {
		return Rect{}
	}
	return s.bounds.GetOrCreate(glyphSizeKey{uint16(gid), ppem}, func() Rect {
		return p.GlyphBounds(uint16(gid), ppem)
	})
}

// Metrics returns the vertical metrics at ppem pixels per em.
func (s *FontSource) Metrics(ppem float64) FontMetrics {
	p := s.Parsed()
	if p == nil {
		return FontMetrics{}
	}
	return p.Metrics(ppem)
}

// Rasterize renders gid at ppem with the sub-pixel offset (fx, fy).
func (s *FontSource) Rasterize(gid GlyphID, ppem, fx, fy float64) (GlyphMask, error) {
	p := s.Parsed()
	if p == nil {
		return GlyphMask{}, ErrSourceClosed
	}
	return p.Rasterize(uint16(gid), ppem, fx, fy), nil
}

// Close releases resources associated with the FontSource.
// Lookups on a closed source behave as if the font had no glyphs.
func (s *FontSource) Close() error {
	s.copyCheck()

	s.mu.Lock()
	s.data = nil
	s.parsed = nil
	s.mu.Unlock()

	s.advances.Clear()
	s.bounds.Clear()
	s.present.clear()

	return nil
}

// copyCheck panics if FontSource was copied by value.
// This is the Ebitengine pattern for preventing accidental copies.
func (s *FontSource) copyCheck() {
	if s.addr != s {
		panic("text: FontSource must not be copied by value")
	}
}

// extractFontName extracts the font family name from the parsed font.
func extractFontName(parsed ParsedFont) string {
	if name := parsed.Name(); name != "" {
		return name
	}
	if fullName := parsed.FullName(); fullName != "" {
		return fullName
	}
	return "Unknown Font"
}
