package atlas

import (
	"errors"
	"fmt"
)

// Sentinel errors for atlas package.
var (
	// ErrCacheOverflow is matched by the error Flush returns when the
	// glyphs queued in one cycle cannot all fit in the atlas at once.
	ErrCacheOverflow = errors.New("atlas: queued glyphs do not fit in the cache")

	// ErrNotFlushed is returned by Resolve before the current cycle was flushed.
	ErrNotFlushed = errors.New("atlas: cycle not flushed")

	// ErrNotQueued is returned by Resolve for a glyph that was not queued
	// in the current cycle.
	ErrNotQueued = errors.New("atlas: glyph not queued in this cycle")
)

// OverflowError reports a queued set that could not be packed.
type OverflowError struct {
	// Glyphs is the number of distinct glyphs queued in the cycle.
	Glyphs int
	// Width, Height are the atlas dimensions.
	Width, Height int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("atlas: %d queued glyphs do not fit in %dx%d cache", e.Glyphs, e.Width, e.Height)
}

// Unwrap returns ErrCacheOverflow.
func (e *OverflowError) Unwrap() error { return ErrCacheOverflow }

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "atlas: invalid config." + e.Field + ": " + e.Reason
}
