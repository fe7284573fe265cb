package text_test

import (
	"image"
	"reflect"
	"testing"

	"github.com/gogpu/glyphmesh/internal/testfont"
	"github.com/gogpu/glyphmesh/text"
)

// At 20 px the synthetic font has advance 10, ink x 1..9, ink y -14..2,
// ascent 16 and a line height of 22.
const (
	ppem     = 20
	baseline = 16
	line2    = baseline + 22
	line3    = baseline + 44
)

type placed struct {
	r    rune
	x, y float64
}

func positions(glyphs []text.PositionedGlyph) []placed {
	out := make([]placed, len(glyphs))
	for i, g := range glyphs {
		out[i] = placed{g.Rune, g.X, g.Y}
	}
	return out
}

func TestLayoutParagraph(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth int
		want     []placed
	}{
		{
			name:     "single line",
			text:     "AB",
			maxWidth: 100,
			want:     []placed{{'A', 0, baseline}, {'B', 10, baseline}},
		},
		{
			name:     "kerning pair",
			text:     "AV",
			maxWidth: 100,
			want:     []placed{{'A', 0, baseline}, {'V', 8, baseline}},
		},
		{
			name:     "greedy wrap",
			text:     "ABC",
			maxWidth: 25,
			want:     []placed{{'A', 0, baseline}, {'B', 10, baseline}, {'C', 0, line2}},
		},
		{
			name:     "wrap drops kerning",
			text:     "AV",
			maxWidth: 15,
			want:     []placed{{'A', 0, baseline}, {'V', 0, line2}},
		},
		{
			name:     "wrapped glyph kerns nothing",
			text:     "BCAV",
			maxWidth: 25,
			want:     []placed{{'B', 0, baseline}, {'C', 10, baseline}, {'A', 0, line2}, {'V', 10, line2}},
		},
		{
			name:     "over-wide glyph wraps every time",
			text:     "AB",
			maxWidth: 5,
			want:     []placed{{'A', 0, line2}, {'B', 0, line3}},
		},
		{
			name:     "over-wide single glyph",
			text:     "A",
			maxWidth: 5,
			want:     []placed{{'A', 0, line2}},
		},
		{
			name:     "blank glyphs do not wrap",
			text:     "A B",
			maxWidth: 15,
			want:     []placed{{'A', 0, baseline}, {' ', 10, baseline}, {'B', 0, line2}},
		},
		{
			name:     "no limit",
			text:     "ABCDEFGH",
			maxWidth: 0,
			want: []placed{
				{'A', 0, baseline}, {'B', 10, baseline}, {'C', 20, baseline}, {'D', 30, baseline},
				{'E', 40, baseline}, {'F', 50, baseline}, {'G', 60, baseline}, {'H', 70, baseline},
			},
		},
		{
			name:     "line feed",
			text:     "A\nB",
			maxWidth: 100,
			want:     []placed{{'A', 0, baseline}, {'B', 0, line2}},
		},
		{
			name:     "carriage return",
			text:     "A\rB",
			maxWidth: 100,
			want:     []placed{{'A', 0, baseline}, {'B', 0, line2}},
		},
		{
			name:     "CRLF is one break",
			text:     "A\r\nB",
			maxWidth: 100,
			want:     []placed{{'A', 0, baseline}, {'B', 0, line2}},
		},
		{
			name:     "LFCR is two breaks",
			text:     "A\n\rB",
			maxWidth: 100,
			want:     []placed{{'A', 0, baseline}, {'B', 0, line3}},
		},
		{
			name:     "blank line",
			text:     "A\n\nB",
			maxWidth: 100,
			want:     []placed{{'A', 0, baseline}, {'B', 0, line3}},
		},
		{
			name:     "newline drops kerning",
			text:     "A\nAV",
			maxWidth: 100,
			want:     []placed{{'A', 0, baseline}, {'A', 0, line2}, {'V', 8, line2}},
		},
		{
			name:     "other controls are ignored",
			text:     "A\tB\x00C",
			maxWidth: 100,
			want:     []placed{{'A', 0, baseline}, {'B', 10, baseline}, {'C', 20, baseline}},
		},
		{
			name:     "ignored controls keep kerning",
			text:     "A\x01V",
			maxWidth: 100,
			want:     []placed{{'A', 0, baseline}, {'V', 8, baseline}},
		},
		{
			name:     "missing glyph is skipped and drops kerning",
			text:     "A一V",
			maxWidth: 100,
			want:     []placed{{'A', 0, baseline}, {'V', 10, baseline}},
		},
		{
			name:     "NFC composes combining marks",
			text:     "e\u0301",
			maxWidth: 100,
			want:     []placed{{'\u00e9', 0, baseline}},
		},
	}

	src := testfont.Mono(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := positions(text.LayoutParagraph(src, ppem, tt.maxWidth, tt.text))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("LayoutParagraph(%q, %d)\n got  %v\n want %v", tt.text, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestLayoutParagraphGlyphFields(t *testing.T) {
	src := testfont.Mono(t)

	glyphs := text.LayoutParagraph(src, ppem, 100, "A ")
	if len(glyphs) != 2 {
		t.Fatalf("got %d glyphs, want 2", len(glyphs))
	}

	a := glyphs[0]
	wantKey := text.GlyphKey{FontID: src.ID(), GID: 'A', Size: ppem}
	if a.Key != wantKey {
		t.Errorf("Key = %+v, want %+v", a.Key, wantKey)
	}
	if a.Source != src {
		t.Error("Source not set")
	}
	if a.Advance != 10 {
		t.Errorf("Advance = %v, want 10", a.Advance)
	}
	if want := image.Rect(1, 2, 9, 18); a.Bounds != want {
		t.Errorf("Bounds = %v, want %v", a.Bounds, want)
	}
	if a.Blank() {
		t.Error("A should not be blank")
	}
	if !glyphs[1].Blank() {
		t.Errorf("space should be blank, bounds %v", glyphs[1].Bounds)
	}
}

func TestLayoutParagraphLineStep(t *testing.T) {
	src := testfont.Mono(t)

	for _, size := range []float64{20, 40, 60} {
		glyphs := text.LayoutParagraph(src, size, 0, "A\nB\nC")
		if len(glyphs) != 3 {
			t.Fatalf("size %v: got %d glyphs", size, len(glyphs))
		}
		step := testfont.LineHeight(size)
		for i := 1; i < len(glyphs); i++ {
			if d := glyphs[i].Y - glyphs[i-1].Y; d != step {
				t.Errorf("size %v: line step %v, want %v", size, d, step)
			}
			if glyphs[i].X != 0 {
				t.Errorf("size %v: new line starts at x=%v", size, glyphs[i].X)
			}
		}
	}
}

func TestLayoutParagraphOptions(t *testing.T) {
	src := testfont.Mono(t)

	got := text.LayoutParagraphWithOptions(src, ppem, 100, "AV", text.LayoutOptions{DisableKerning: true})
	if got[1].X != 10 {
		t.Errorf("kerning disabled: V at %v, want 10", got[1].X)
	}

	got = text.LayoutParagraphWithOptions(src, ppem, 100, "AB", text.LayoutOptions{Kerner: constKerner(3)})
	if got[1].X != 13 {
		t.Errorf("custom kerner: B at %v, want 13", got[1].X)
	}
}

type constKerner float64

func (k constKerner) Kern(*text.FontSource, float64, text.KernGlyph, text.KernGlyph) float64 {
	return float64(k)
}

func TestLayoutParagraphDegenerate(t *testing.T) {
	src := testfont.Mono(t)

	if g := text.LayoutParagraph(src, ppem, 100, ""); g != nil {
		t.Errorf("empty text: got %d glyphs", len(g))
	}
	if g := text.LayoutParagraph(src, 0, 100, "A"); g != nil {
		t.Errorf("zero size: got %d glyphs", len(g))
	}
	if g := text.LayoutParagraph(nil, ppem, 100, "A"); g != nil {
		t.Errorf("nil source: got %d glyphs", len(g))
	}
	if g := text.LayoutParagraph(src, ppem, 100, "\n\n\x00"); len(g) != 0 {
		t.Errorf("control-only text: got %d glyphs", len(g))
	}
}

func TestLayoutParagraphDeterministic(t *testing.T) {
	src := testfont.GoRegular(t)
	const s = "The quick brown fox jumps over the lazy dog.\nAVATAR Wäffle"

	a := text.LayoutParagraph(src, 24, 200, s)
	b := text.LayoutParagraph(src, 24, 200, s)
	if !reflect.DeepEqual(a, b) {
		t.Error("layout is not deterministic")
	}
}

func TestLayoutParagraphGoRegular(t *testing.T) {
	src := testfont.GoRegular(t)
	m := src.Metrics(24)

	glyphs := text.LayoutParagraph(src, 24, 512, "Hello")
	if len(glyphs) != 5 {
		t.Fatalf("got %d glyphs, want 5", len(glyphs))
	}
	for i, g := range glyphs {
		if g.Y != m.Ascent {
			t.Errorf("glyph %d: y = %v, want ascent %v", i, g.Y, m.Ascent)
		}
		if i > 0 && g.X <= glyphs[i-1].X {
			t.Errorf("glyph %d: x = %v not after %v", i, g.X, glyphs[i-1].X)
		}
		if g.Blank() {
			t.Errorf("glyph %d (%q) has no ink", i, g.Rune)
		}
	}
}

func TestLayoutParagraphWrapsWithinWidth(t *testing.T) {
	src := testfont.GoRegular(t)
	const maxWidth = 120

	glyphs := text.LayoutParagraph(src, 24, maxWidth, "wrapping a long sentence into several lines")
	lines := map[float64]bool{}
	for _, g := range glyphs {
		lines[g.Y] = true
		if g.X > 0 && !g.Blank() && g.Bounds.Max.X > maxWidth {
			t.Errorf("glyph %q at x=%v overflows: %v", g.Rune, g.X, g.Bounds)
		}
	}
	if len(lines) < 2 {
		t.Errorf("expected several lines, got %d", len(lines))
	}
}

func TestExtent(t *testing.T) {
	src := testfont.Mono(t)

	glyphs := text.LayoutParagraph(src, ppem, 0, "AB\nC")
	got := text.Extent(glyphs)
	want := image.Rect(1, 2, 19, line2+2)
	if got != want {
		t.Errorf("Extent = %v, want %v", got, want)
	}
}
