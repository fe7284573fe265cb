// Package cache provides a generic LRU cache used for laid-out paragraphs
// and per-font glyph lookups.
//
//	c := cache.New[string, int](100)
//	c.Set("key", 42)
//	value, ok := c.Get("key")
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
