// Package atlas keeps rasterized glyphs resident in a fixed-size coverage
// texture and tells the mesh builder where each glyph lives.
//
// A Cache is driven once per frame through three steps:
//
//	c.Queue(0, g)             // for every glyph the frame will draw
//	err := c.Flush(upload)    // rasterize and upload whatever is missing
//	res, err := c.Resolve(0, g)
//
// Flush calls upload once per newly placed glyph with the atlas rectangle
// and its coverage bytes; the caller copies them into the GPU texture.
// When the atlas is full, glyphs not queued in the current cycle are
// evicted and the queued set is packed again from scratch. If even that
// does not fit, Flush returns an error matching ErrCacheOverflow and the
// caller decides whether to Resize the atlas or draw less text.
//
// A Cache is not safe for concurrent use.
package atlas
