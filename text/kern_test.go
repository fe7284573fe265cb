package text_test

import (
	"math"
	"testing"

	"github.com/gogpu/glyphmesh/internal/testfont"
	"github.com/gogpu/glyphmesh/text"
)

func TestFontKerner(t *testing.T) {
	src := testfont.Mono(t)
	a, _ := src.GlyphIndex('A')
	v, _ := src.GlyphIndex('V')

	k := text.FontKerner{}
	if got := k.Kern(src, 20, text.KernGlyph{Rune: 'A', GID: a}, text.KernGlyph{Rune: 'V', GID: v}); got != -2 {
		t.Errorf("Kern(A, V) = %v, want -2", got)
	}
	if got := k.Kern(src, 20, text.KernGlyph{Rune: 'V', GID: v}, text.KernGlyph{Rune: 'A', GID: a}); got != 0 {
		t.Errorf("Kern(V, A) = %v, want 0", got)
	}
	if got := (text.NoKerning{}).Kern(src, 20, text.KernGlyph{}, text.KernGlyph{}); got != 0 {
		t.Errorf("NoKerning = %v", got)
	}
}

func TestGoTextKerner(t *testing.T) {
	src := testfont.GoRegular(t)
	k := text.NewGoTextKerner(64)

	glyph := func(r rune) text.KernGlyph {
		gid, _ := src.GlyphIndex(r)
		return text.KernGlyph{Rune: r, GID: gid}
	}

	first := k.Kern(src, 24, glyph('A'), glyph('V'))
	if math.IsNaN(first) || math.Abs(first) > 24 {
		t.Fatalf("Kern(A, V) = %v, out of range", first)
	}
	if again := k.Kern(src, 24, glyph('A'), glyph('V')); again != first {
		t.Errorf("cached Kern(A, V) = %v, want %v", again, first)
	}

	k.RemoveSource(src)
	if after := k.Kern(src, 24, glyph('A'), glyph('V')); after != first {
		t.Errorf("Kern after RemoveSource = %v, want %v", after, first)
	}
}

func TestGoTextKernerInLayout(t *testing.T) {
	src := testfont.GoRegular(t)
	k := text.NewGoTextKerner(64)

	glyphs := text.LayoutParagraphWithOptions(src, 24, 0, "AV", text.LayoutOptions{Kerner: k})
	if len(glyphs) != 2 {
		t.Fatalf("got %d glyphs, want 2", len(glyphs))
	}
	left := text.KernGlyph{Rune: 'A', GID: glyphs[0].Key.GID}
	right := text.KernGlyph{Rune: 'V', GID: glyphs[1].Key.GID}

	want := glyphs[0].Advance + k.Kern(src, 24, left, right)
	if math.Abs(glyphs[1].X-want) > 1e-9 {
		t.Errorf("V at x=%v, want %v", glyphs[1].X, want)
	}
}
