package text

// SourceOption configures FontSource creation.
type SourceOption func(*sourceConfig)

// sourceConfig holds configuration for FontSource.
type sourceConfig struct {
	cacheLimit int
	parserName string
}

// defaultSourceConfig returns the default source configuration.
func defaultSourceConfig() sourceConfig {
	return sourceConfig{
		cacheLimit: 1024,
		parserName: defaultParserName,
	}
}

// WithCacheLimit sets the maximum number of cached glyph advances and
// bounds per FontSource. A value of 0 disables the limit.
func WithCacheLimit(n int) SourceOption {
	return func(c *sourceConfig) {
		c.cacheLimit = n
	}
}

// WithParser specifies the font parser backend.
// The default is "ximage" which uses golang.org/x/image/font/opentype.
//
// Custom parsers can be registered with RegisterParser.
func WithParser(name string) SourceOption {
	return func(c *sourceConfig) {
		c.parserName = name
	}
}

// LayoutOptions configures LayoutParagraphWithOptions.
type LayoutOptions struct {
	// Kerner supplies pairwise kerning. Nil uses FontKerner.
	Kerner Kerner

	// DisableKerning turns off kerning entirely.
	DisableKerning bool
}
