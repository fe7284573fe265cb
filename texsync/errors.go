package texsync

import (
	"errors"
	"fmt"
	"image"
)

// Sentinel errors for texsync package.
var (
	// ErrCoverageSize is returned when a coverage buffer does not hold
	// exactly width*height bytes.
	ErrCoverageSize = errors.New("texsync: coverage size does not match region")

	// ErrRegionOutOfBounds is returned when a region is not inside the texture.
	ErrRegionOutOfBounds = errors.New("texsync: region outside texture")

	// ErrNotUpdatable is returned when a texture does not implement
	// gpucontext.TextureUpdater.
	ErrNotUpdatable = errors.New("texsync: texture does not support data updates")

	// ErrNoHAL is returned when a device provider does not expose wgpu/hal
	// device and queue objects.
	ErrNoHAL = errors.New("texsync: provider does not expose HAL types")
)

// TextureUploadError reports a failed write of one atlas region.
// Uploads are never retried by this package.
type TextureUploadError struct {
	Rect image.Rectangle
	Err  error
}

func (e *TextureUploadError) Error() string {
	return fmt.Sprintf("texsync: upload of region %v failed: %v", e.Rect, e.Err)
}

// Unwrap returns the underlying error.
func (e *TextureUploadError) Unwrap() error { return e.Err }
