package texsync

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
)

// ImageTarget keeps the atlas texture in CPU memory.
type ImageTarget struct {
	img *image.NRGBA
}

// NewImageTarget creates a transparent w×h target.
func NewImageTarget(w, h int) *ImageTarget {
	return &ImageTarget{img: image.NewNRGBA(image.Rect(0, 0, w, h))}
}

// Size implements Target.
func (t *ImageTarget) Size() (width, height int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// WriteRegion implements Target.
func (t *ImageTarget) WriteRegion(rect image.Rectangle, rgba []byte) error {
	if !rect.In(t.img.Bounds()) {
		return ErrRegionOutOfBounds
	}
	row := rect.Dx() * 4
	if len(rgba) != row*rect.Dy() {
		return ErrCoverageSize
	}
	for y := 0; y < rect.Dy(); y++ {
		off := t.img.PixOffset(rect.Min.X, rect.Min.Y+y)
		copy(t.img.Pix[off:off+row], rgba[y*row:(y+1)*row])
	}
	return nil
}

// Image returns the backing image. It must not be modified.
func (t *ImageTarget) Image() *image.NRGBA { return t.img }

// Pixels returns the whole texture as tightly packed RGBA bytes.
func (t *ImageTarget) Pixels() []byte { return t.img.Pix }

// Resize replaces the texture with a transparent w×h one.
func (t *ImageTarget) Resize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("texsync: invalid texture size %dx%d", w, h)
	}
	t.img = image.NewNRGBA(image.Rect(0, 0, w, h))
	return nil
}

// EncodePNG writes the texture as PNG. Coverage is in the alpha channel,
// so the dump shows black glyphs on a transparent background.
func (t *ImageTarget) EncodePNG(w io.Writer) error {
	return png.Encode(w, t.img)
}

// SavePNG writes the texture to a PNG file.
func (t *ImageTarget) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path comes from the caller
	if err != nil {
		return fmt.Errorf("texsync: create %s: %w", path, err)
	}
	if err := t.EncodePNG(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("texsync: encode %s: %w", path, err)
	}
	return f.Close()
}
