package glyphmesh

import (
	"errors"

	"github.com/gogpu/glyphmesh/atlas"
	"github.com/gogpu/glyphmesh/mesh"
	"github.com/gogpu/glyphmesh/texsync"
)

// Errors returned by Pipeline, re-exported from the stage packages so
// callers can test them with errors.Is without importing every package.
var (
	// ErrCacheOverflow: the glyphs of one frame do not fit in the atlas.
	ErrCacheOverflow = atlas.ErrCacheOverflow

	// ErrInvalidViewport: Frame was called with a non-positive viewport.
	ErrInvalidViewport = mesh.ErrInvalidViewport

	// ErrNilSource is returned by New without a font source.
	ErrNilSource = errors.New("glyphmesh: nil font source")

	// ErrNilTarget is returned by New without a texture target.
	ErrNilTarget = errors.New("glyphmesh: nil texture target")

	// ErrNotResizable is returned by ResizeAtlas when the target cannot
	// change size.
	ErrNotResizable = errors.New("glyphmesh: texture target cannot be resized")
)

// TextureUploadError is the error type for failed atlas uploads.
type TextureUploadError = texsync.TextureUploadError

// OverflowError carries details of an atlas overflow.
type OverflowError = atlas.OverflowError
