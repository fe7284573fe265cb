package texsync

import (
	"image"

	"github.com/gogpu/gpucontext"
)

// UpdaterTarget writes through a texture that only supports whole-texture
// updates (gpucontext.TextureUpdater). Regions land in a CPU shadow copy;
// Commit pushes the shadow to the texture once per flush.
type UpdaterTarget struct {
	updater gpucontext.TextureUpdater
	shadow  *ImageTarget
	dirty   bool
}

// NewUpdaterTarget wraps texture, which must implement
// gpucontext.TextureUpdater and be w×h RGBA.
func NewUpdaterTarget(texture any, w, h int) (*UpdaterTarget, error) {
	updater, ok := texture.(gpucontext.TextureUpdater)
	if !ok {
		return nil, ErrNotUpdatable
	}
	return &UpdaterTarget{updater: updater, shadow: NewImageTarget(w, h)}, nil
}

// Size implements Target.
func (t *UpdaterTarget) Size() (width, height int) { return t.shadow.Size() }

// WriteRegion implements Target. The texture is not touched until Commit.
func (t *UpdaterTarget) WriteRegion(rect image.Rectangle, rgba []byte) error {
	if err := t.shadow.WriteRegion(rect, rgba); err != nil {
		return err
	}
	t.dirty = true
	return nil
}

// Dirty reports whether regions were written since the last Commit.
func (t *UpdaterTarget) Dirty() bool { return t.dirty }

// Commit uploads the shadow copy if anything changed. A rejected update
// is a *TextureUploadError covering the whole texture; the target stays
// dirty so the next Commit sends it again.
func (t *UpdaterTarget) Commit() error {
	if !t.dirty {
		return nil
	}
	if err := t.updater.UpdateData(t.shadow.Pixels()); err != nil {
		w, h := t.shadow.Size()
		return &TextureUploadError{Rect: image.Rect(0, 0, w, h), Err: err}
	}
	t.dirty = false
	return nil
}
