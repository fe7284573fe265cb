package glyphmesh

import "github.com/gogpu/glyphmesh/text"

// Option configures a Pipeline during creation.
//
// Example:
//
//	p, err := glyphmesh.New(source, target,
//	    glyphmesh.WithTolerance(0.1, 0.25),
//	    glyphmesh.WithKerner(text.NewGoTextKerner(0)),
//	)
type Option func(*options)

// options holds optional configuration for Pipeline creation.
type options struct {
	scaleTolerance    float64
	positionTolerance float64
	padding           int
	layer             int
	layoutCacheSize   int
	kerner            text.Kerner
	disableKerning    bool
}

// defaultOptions returns the default pipeline options.
func defaultOptions() options {
	return options{
		scaleTolerance:    0.1,
		positionTolerance: 0.1,
		padding:           1,
		layoutCacheSize:   64,
	}
}

// WithTolerance sets how far a glyph's size (in pixels) and sub-pixel
// position (in fractions of a pixel) may differ from a cached rasterization
// before a new one is made. Larger values mean fewer rasterizations and
// slightly less precise glyphs.
func WithTolerance(scale, position float64) Option {
	return func(o *options) {
		o.scaleTolerance = scale
		o.positionTolerance = position
	}
}

// WithPadding sets the empty border in pixels kept around each glyph in
// the atlas, which stops neighbours bleeding in under linear filtering.
func WithPadding(px int) Option {
	return func(o *options) {
		o.padding = px
	}
}

// WithLayer sets the atlas layer the pipeline queues glyphs on. Glyph
// keys on different layers never collide, so callers queueing their own
// glyphs through Atlas should use another layer.
func WithLayer(layer int) Option {
	return func(o *options) {
		o.layer = layer
	}
}

// WithLayoutCacheSize sets how many laid-out strings are remembered.
// 0 disables layout caching.
func WithLayoutCacheSize(n int) Option {
	return func(o *options) {
		o.layoutCacheSize = n
	}
}

// WithKerner replaces the font's kern table with another kerning source,
// such as text.NewGoTextKerner for GPOS kerning.
func WithKerner(k text.Kerner) Option {
	return func(o *options) {
		o.kerner = k
	}
}

// WithoutKerning disables kerning.
func WithoutKerning() Option {
	return func(o *options) {
		o.disableKerning = true
	}
}
