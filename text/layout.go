package text

import (
	"image"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// LayoutParagraph lays out s as lines of glyphs at ppem pixels per em,
// wrapping greedily at maxWidth pixels. It kerns with the font's kern table.
//
// See LayoutParagraphWithOptions for the rules.
func LayoutParagraph(source *FontSource, ppem float64, maxWidth int, s string) []PositionedGlyph {
	return LayoutParagraphWithOptions(source, ppem, maxWidth, s, LayoutOptions{})
}

// LayoutParagraphWithOptions lays out s into positioned glyphs.
//
// The text is NFC-normalized first. The caret starts at (0, ascent).
// Line breaks:
//   - '\r' and '\n' each start a new line; "\r\n" counts as one break.
//   - Other control characters are ignored.
//   - A glyph whose ink would end past maxWidth moves to the next line.
//     It is placed there even if it still does not fit. Blank glyphs never wrap.
//   - maxWidth <= 0 disables wrapping.
//
// A new line resets x to 0 and moves y down by ascent - descent + lineGap.
// Characters without a glyph are skipped without advancing the caret.
// Kerning applies only between glyphs that were placed next to each other
// on the same line. A wrapped glyph is not kerned against its successor.
//
// The result is deterministic for the same inputs.
func LayoutParagraphWithOptions(source *FontSource, ppem float64, maxWidth int, s string, opts LayoutOptions) []PositionedGlyph {
	if source == nil || ppem <= 0 || s == "" {
		return nil
	}

	var kerner Kerner = FontKerner{}
	switch {
	case opts.DisableKerning:
		kerner = NoKerning{}
	case opts.Kerner != nil:
		kerner = opts.Kerner
	}

	s = norm.NFC.String(s)
	m := source.Metrics(ppem)
	l := &liner{
		x:          0,
		y:          m.Ascent,
		lineHeight: m.Height(),
	}
	fontID := source.ID()
	glyphs := make([]PositionedGlyph, 0, utf8.RuneCountInString(s))

	afterCR := false
	for _, r := range s {
		if unicode.IsControl(r) {
			switch {
			case r == '\r':
				l.newline()
			case r == '\n' && !afterCR:
				l.newline()
			}
			afterCR = r == '\r'
			continue
		}
		afterCR = false

		gid, ok := source.GlyphIndex(r)
		if !ok {
			l.hasPrev = false
			continue
		}
		cur := KernGlyph{Rune: r, GID: gid}

		if l.hasPrev {
			l.x += kerner.Kern(source, ppem, l.prev, cur)
		}

		ink := source.Bounds(gid, ppem)
		bounds := ink.Offset(l.x, l.y).Pixels()
		wrapped := false
		if maxWidth > 0 && !bounds.Empty() && bounds.Max.X > maxWidth {
			l.newline()
			bounds = ink.Offset(l.x, l.y).Pixels()
			wrapped = true
		}

		advance := source.Advance(gid, ppem)
		glyphs = append(glyphs, PositionedGlyph{
			Source:  source,
			Key:     GlyphKey{FontID: fontID, GID: gid, Size: float32(ppem)},
			Rune:    r,
			X:       l.x,
			Y:       l.y,
			Advance: advance,
			Bounds:  bounds,
		})

		l.x += advance
		l.prev = cur
		l.hasPrev = !wrapped
	}

	return glyphs
}

// liner is the caret state of one paragraph layout.
type liner struct {
	x, y       float64
	lineHeight float64

	prev    KernGlyph
	hasPrev bool
}

func (l *liner) newline() {
	l.x = 0
	l.y += l.lineHeight
	l.hasPrev = false
}

// Extent returns the union of the ink bounds of glyphs.
func Extent(glyphs []PositionedGlyph) image.Rectangle {
	var r image.Rectangle
	for i := range glyphs {
		r = r.Union(glyphs[i].Bounds)
	}
	return r
}
