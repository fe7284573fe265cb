package texsync

import (
	"image"

	"github.com/gogpu/glyphmesh/internal/logging"
)

// Target is a texture that accepts RGBA pixel regions.
type Target interface {
	// Size returns the texture dimensions in pixels.
	Size() (width, height int)

	// WriteRegion copies rgba (rect.Dx()*rect.Dy()*4 bytes, row-major)
	// into rect.
	WriteRegion(rect image.Rectangle, rgba []byte) error
}

// Syncer expands coverage uploads and writes them to a Target.
// Its Apply method has the shape of atlas.UploadFunc.
//
// A Syncer reuses one scratch buffer and is not safe for concurrent use.
type Syncer struct {
	target Target
	buf    []byte

	regions int
	bytes   int
}

// NewSyncer creates a Syncer writing to target.
func NewSyncer(target Target) *Syncer {
	return &Syncer{target: target}
}

// Target returns the texture the syncer writes to.
func (s *Syncer) Target() Target { return s.target }

// Apply writes one coverage region. Any failure is a *TextureUploadError.
func (s *Syncer) Apply(rect image.Rectangle, coverage []byte) error {
	w, h := s.target.Size()
	if rect.Empty() || !rect.In(image.Rect(0, 0, w, h)) {
		return &TextureUploadError{Rect: rect, Err: ErrRegionOutOfBounds}
	}

	rgba, err := AppendRGBA(s.buf, coverage, rect.Dx(), rect.Dy())
	s.buf = rgba
	if err != nil {
		return &TextureUploadError{Rect: rect, Err: err}
	}

	if err := s.target.WriteRegion(rect, rgba); err != nil {
		logging.L().Warn("texsync: region write failed", "rect", rect, "err", err)
		return &TextureUploadError{Rect: rect, Err: err}
	}
	s.regions++
	s.bytes += len(rgba)
	return nil
}

// Stats returns the number of regions and RGBA bytes written so far.
func (s *Syncer) Stats() (regions, bytes int) {
	return s.regions, s.bytes
}
