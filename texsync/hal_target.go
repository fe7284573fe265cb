//go:build !nogpu

package texsync

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// HALTarget is an RGBA8 texture on a wgpu/hal device. Regions are written
// with Queue.WriteTexture; the texture view is what the text shader binds.
type HALTarget struct {
	device hal.Device
	queue  hal.Queue

	texture hal.Texture
	view    hal.TextureView
	width   int
	height  int
	label   string
}

// NewHALTargetFromProvider creates a target on the device of a provider
// exposing HalDevice() any and HalQueue() any (for example a gogpu window).
func NewHALTargetFromProvider(provider any, label string, w, h int) (*HALTarget, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHAL)
	}
	return NewHALTarget(device, queue, label, w, h)
}

// NewHALTarget creates a w×h RGBA8 texture and its view.
func NewHALTarget(device hal.Device, queue hal.Queue, label string, w, h int) (*HALTarget, error) {
	t := &HALTarget{device: device, queue: queue, label: label}
	if err := t.create(w, h); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *HALTarget) create(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("texsync: invalid texture size %dx%d", w, h)
	}
	size := hal.Extent3D{
		Width:              uint32(w), //nolint:gosec // validated positive
		Height:             uint32(h), //nolint:gosec // validated positive
		DepthOrArrayLayers: 1,
	}

	tex, err := t.device.CreateTexture(&hal.TextureDescriptor{
		Label:         t.label,
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("texsync: create texture %q: %w", t.label, err)
	}

	view, err := t.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         t.label + "_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		t.device.DestroyTexture(tex)
		return fmt.Errorf("texsync: create texture view %q: %w", t.label, err)
	}

	t.texture, t.view = tex, view
	t.width, t.height = w, h
	return nil
}

// Size implements Target.
func (t *HALTarget) Size() (width, height int) { return t.width, t.height }

// WriteRegion implements Target.
func (t *HALTarget) WriteRegion(rect image.Rectangle, rgba []byte) error {
	if t.texture == nil {
		return fmt.Errorf("texsync: texture %q destroyed", t.label)
	}
	if !rect.In(image.Rect(0, 0, t.width, t.height)) {
		return ErrRegionOutOfBounds
	}
	w, h := uint32(rect.Dx()), uint32(rect.Dy()) //nolint:gosec // inside texture bounds
	if len(rgba) != int(w*h*4) {
		return ErrCoverageSize
	}

	t.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.texture,
			MipLevel: 0,
			Origin: hal.Origin3D{
				X: uint32(rect.Min.X), //nolint:gosec // inside texture bounds
				Y: uint32(rect.Min.Y), //nolint:gosec // inside texture bounds
			},
			Aspect: gputypes.TextureAspectAll,
		},
		rgba,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  w * 4,
			RowsPerImage: h,
		},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)
	return nil
}

// Resize destroys the texture and creates a new transparent w×h one.
// Views handed out earlier become invalid.
func (t *HALTarget) Resize(w, h int) error {
	t.Destroy()
	return t.create(w, h)
}

// View returns the texture view for binding.
func (t *HALTarget) View() hal.TextureView { return t.view }

// Texture returns the underlying texture.
func (t *HALTarget) Texture() hal.Texture { return t.texture }

// Destroy releases the texture and view. Safe to call more than once.
func (t *HALTarget) Destroy() {
	if t.view != nil {
		t.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.texture != nil {
		t.device.DestroyTexture(t.texture)
		t.texture = nil
	}
}
