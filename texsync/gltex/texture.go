// Package gltex provides an OpenGL texture usable as a texsync.Target.
//
// All methods must run on the thread that owns the GL context. Programs
// using faiface/mainthread call them from inside mainthread.Call.
package gltex

import (
	"errors"
	"fmt"
	"image"
	"runtime"

	"github.com/faiface/mainthread"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// ErrRegionOutOfBounds is returned for writes outside the texture.
var ErrRegionOutOfBounds = errors.New("gltex: region outside texture")

// Texture is an RGBA8 OpenGL texture holding the glyph atlas.
type Texture struct {
	id            uint32
	width, height int
}

// New creates a transparent w×h texture with linear filtering and
// edge clamping.
func New(w, h int) (*Texture, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("gltex: invalid size %dx%d", w, h)
	}
	t := &Texture{}
	gl.GenTextures(1, &t.id)
	t.allocate(w, h)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	if err := glError("create texture"); err != nil {
		gl.DeleteTextures(1, &t.id)
		return nil, err
	}
	runtime.SetFinalizer(t, (*Texture).finalize)
	return t, nil
}

// allocate binds the texture and gives it transparent w×h storage.
func (t *Texture) allocate(w, h int) {
	t.width, t.height = w, h
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	pixels := make([]uint8, w*h*4)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA8,
		int32(w), //nolint:gosec // validated positive
		int32(h), //nolint:gosec // validated positive
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(pixels),
	)
}

// Resize reallocates the texture as transparent w×h storage.
func (t *Texture) Resize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("gltex: invalid size %dx%d", w, h)
	}
	t.allocate(w, h)
	return glError("resize texture")
}

// ID returns the OpenGL texture name.
func (t *Texture) ID() uint32 { return t.id }

// Size implements texsync.Target.
func (t *Texture) Size() (width, height int) { return t.width, t.height }

// WriteRegion implements texsync.Target using glTexSubImage2D.
func (t *Texture) WriteRegion(rect image.Rectangle, rgba []byte) error {
	if !rect.In(image.Rect(0, 0, t.width, t.height)) {
		return ErrRegionOutOfBounds
	}
	if len(rgba) != rect.Dx()*rect.Dy()*4 {
		return fmt.Errorf("gltex: %d bytes for region %v", len(rgba), rect)
	}
	if len(rgba) == 0 {
		return nil
	}

	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexSubImage2D(
		gl.TEXTURE_2D,
		0,
		int32(rect.Min.X), //nolint:gosec // inside texture bounds
		int32(rect.Min.Y), //nolint:gosec // inside texture bounds
		int32(rect.Dx()),  //nolint:gosec // inside texture bounds
		int32(rect.Dy()),  //nolint:gosec // inside texture bounds
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(rgba),
	)
	return glError("write region")
}

// Bind binds the texture to the given texture unit.
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

// Delete releases the texture. It must run on the GL thread.
func (t *Texture) Delete() {
	if t.id == 0 {
		return
	}
	gl.DeleteTextures(1, &t.id)
	t.id = 0
	runtime.SetFinalizer(t, nil)
}

func (t *Texture) finalize() {
	id := t.id
	if id == 0 {
		return
	}
	mainthread.CallNonBlock(func() {
		gl.DeleteTextures(1, &id)
	})
}

// glError drains the GL error queue and reports the first error.
func glError(op string) error {
	var first uint32
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		if first == 0 {
			first = code
		}
	}
	if first == 0 {
		return nil
	}
	return fmt.Errorf("gltex: %s: %s", op, errorName(first))
}

func errorName(code uint32) string {
	switch code {
	case gl.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	default:
		return fmt.Sprintf("GL error 0x%04x", code)
	}
}
