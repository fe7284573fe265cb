// Package text loads fonts and lays out paragraphs into positioned glyphs.
//
// The package is the first stage of the glyphmesh pipeline:
//
//   - FontSource: heavyweight, shared font resource (parses TTF/OTF files)
//   - FontParser: pluggable font parsing backend (default: golang.org/x/image)
//   - Kerner: pairwise kerning provider (font kern table or HarfBuzz GPOS)
//   - LayoutParagraph: NFC normalization, kerning and greedy line wrapping
//
// # Example usage
//
//	source, err := text.NewFontSourceFromFile("Roboto-Regular.ttf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer source.Close()
//
//	glyphs := text.LayoutParagraph(source, 24, 512, "Hello, world")
//	for _, g := range glyphs {
//	    fmt.Println(g.Rune, g.X, g.Y, g.Bounds)
//	}
//
// # Pluggable Parser Backend
//
// Font parsing is abstracted through the FontParser interface.
// Custom parsers can be registered for alternative implementations:
//
//	text.RegisterParser("myparser", myCustomParser)
//	source, err := text.NewFontSource(data, text.WithParser("myparser"))
//
// Layout never fails: characters the font cannot map are skipped silently.
package text
