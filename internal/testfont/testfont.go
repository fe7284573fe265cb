// Package testfont provides fonts for tests: a synthetic monospace font with
// exact, size-proportional metrics and the Go Regular TrueType font.
package testfont

import (
	"sync"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/glyphmesh/text"
)

// ParserName is the name the synthetic font parser is registered under.
const ParserName = "testfont-mono"

// Metrics of the synthetic font in units of ppem/20, so that sizes that are
// multiples of 20 give exact integer pixel values.
// At 20 px: advance 10, ink x 1..9, ink y -14..2, ascent 16, descent -4, gap 2.
const (
	Advance = 10
	InkMinX = 1
	InkMaxX = 9
	InkMinY = -14
	InkMaxY = 2
	Ascent  = 16
	Descent = -4
	LineGap = 2
	KernAV  = -2
)

// unit converts a synthetic metric to pixels at ppem.
func unit(v, ppem float64) float64 { return v * ppem / 20 }

// LineHeight returns the baseline-to-baseline distance at ppem.
func LineHeight(ppem float64) float64 {
	return unit(Ascent-Descent+LineGap, ppem)
}

var registerOnce sync.Once

// Register installs the synthetic parser. It is safe to call repeatedly.
func Register() {
	registerOnce.Do(func() {
		text.RegisterParser(ParserName, parser{})
	})
}

// Mono returns a FontSource backed by the synthetic monospace font.
//
// The font maps printable ASCII and U+00E9 (é). Space has an advance but no ink.
// The only kerning pair is "AV".
func Mono(t testing.TB) *text.FontSource {
	t.Helper()
	Register()
	src, err := text.NewFontSource([]byte("testfont-mono"), text.WithParser(ParserName))
	if err != nil {
		t.Fatalf("testfont: %v", err)
	}
	t.Cleanup(func() { _ = src.Close() })
	return src
}

// GoRegular returns a FontSource for the Go Regular font.
func GoRegular(t testing.TB) *text.FontSource {
	t.Helper()
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		t.Fatalf("testfont: goregular: %v", err)
	}
	t.Cleanup(func() { _ = src.Close() })
	return src
}

type parser struct{}

func (parser) Parse([]byte) (text.ParsedFont, error) { return mono{}, nil }

type mono struct{}

func (mono) Name() string     { return "Test Mono" }
func (mono) FullName() string { return "Test Mono Regular" }
func (mono) NumGlyphs() int   { return 256 }
func (mono) UnitsPerEm() int  { return 1000 }

func (mono) GlyphIndex(r rune) uint16 {
	if (r >= 0x20 && r <= 0x7E) || r == 0xE9 {
		return uint16(r)
	}
	return 0
}

func (mono) GlyphAdvance(_ uint16, ppem float64) float64 {
	return unit(Advance, ppem)
}

func (mono) GlyphBounds(gid uint16, ppem float64) text.Rect {
	if gid == ' ' {
		return text.Rect{}
	}
	return text.Rect{
		MinX: unit(InkMinX, ppem),
		MinY: unit(InkMinY, ppem),
		MaxX: unit(InkMaxX, ppem),
		MaxY: unit(InkMaxY, ppem),
	}
}

func (mono) Kern(left, right uint16, ppem float64) float64 {
	if left == 'A' && right == 'V' {
		return unit(KernAV, ppem)
	}
	return 0
}

// Rasterize fills the ink box with the glyph index as coverage, so tests
// can tell glyphs apart in an atlas.
func (m mono) Rasterize(gid uint16, ppem, fx, fy float64) text.GlyphMask {
	bounds := m.GlyphBounds(gid, ppem).Offset(fx, fy).Pixels()
	if bounds.Empty() {
		return text.GlyphMask{}
	}
	cov := make([]byte, bounds.Dx()*bounds.Dy())
	for i := range cov {
		cov[i] = byte(gid)
	}
	return text.GlyphMask{Coverage: cov, Bounds: bounds}
}

func (mono) Metrics(ppem float64) text.FontMetrics {
	return text.FontMetrics{
		Ascent:    unit(Ascent, ppem),
		Descent:   unit(Descent, ppem),
		LineGap:   unit(LineGap, ppem),
		XHeight:   unit(10, ppem),
		CapHeight: unit(14, ppem),
	}
}
