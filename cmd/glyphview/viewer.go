package main

import (
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/glyphmesh"
	"github.com/gogpu/glyphmesh/mesh"
	"github.com/gogpu/glyphmesh/texsync/gltex"
	"github.com/gogpu/glyphmesh/text"
)

type config struct {
	fontPath      string
	size          float64
	width, height int
	atlasSize     int
	initial       string
}

// viewer owns the window, GL objects and the glyph pipeline.
type viewer struct {
	cfg    config
	win    *glfw.Window
	atlas  *gltex.Texture
	pipe   *glyphmesh.Pipeline
	edit   editor
	fbW    int
	fbH    int
	resize bool

	program  uint32
	vao      uint32
	vbo, ebo uint32
	colorLoc int32
	indices  int32
}

func newViewer(cfg config) (*viewer, error) {
	if err := glfw.Init(); err != nil {
		return nil, errors.Wrap(err, "glfw init")
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(cfg.width, cfg.height, "glyphview", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, errors.Wrap(err, "create window")
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)
	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, errors.Wrap(err, "gl init")
	}

	v := &viewer{cfg: cfg, win: win}
	v.fbW, v.fbH = win.GetFramebufferSize()
	v.edit.text = cfg.initial
	v.edit.dirty = true

	if err := v.initGL(); err != nil {
		v.close()
		return nil, err
	}
	if err := v.initPipeline(); err != nil {
		v.close()
		return nil, err
	}

	win.SetCharCallback(func(_ *glfw.Window, r rune) {
		v.edit.insert(r)
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press && action != glfw.Repeat {
			return
		}
		switch key {
		case glfw.KeyBackspace:
			v.edit.backspace()
		case glfw.KeyEnter, glfw.KeyKPEnter:
			v.edit.newline()
		case glfw.KeyEscape:
			v.win.SetShouldClose(true)
		}
	})
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		v.fbW, v.fbH = w, h
		v.resize = true
	})
	return v, nil
}

func (v *viewer) initGL() error {
	vs, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return err
	}
	fs, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return err
	}
	v.program, err = linkProgram(vs, fs)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)
	if err != nil {
		return err
	}
	gl.UseProgram(v.program)
	gl.Uniform1i(gl.GetUniformLocation(v.program, gl.Str("uAtlas\x00")), 0)
	v.colorLoc = gl.GetUniformLocation(v.program, gl.Str("uColor\x00"))

	gl.GenVertexArrays(1, &v.vao)
	gl.GenBuffers(1, &v.vbo)
	gl.GenBuffers(1, &v.ebo)
	gl.BindVertexArray(v.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, v.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, v.ebo)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, mesh.VertexStride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, mesh.VertexStride, 8)
	gl.BindVertexArray(0)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	v.atlas, err = gltex.New(v.cfg.atlasSize, v.cfg.atlasSize)
	return err
}

func (v *viewer) initPipeline() error {
	var src *text.FontSource
	var err error
	if v.cfg.fontPath == "" {
		src, err = text.NewFontSource(goregular.TTF)
	} else {
		src, err = text.NewFontSourceFromFile(v.cfg.fontPath)
	}
	if err != nil {
		return errors.Wrap(err, "load font")
	}
	v.pipe, err = glyphmesh.New(src, v.atlas, glyphmesh.WithLayoutCacheSize(16))
	return errors.Wrap(err, "create pipeline")
}

// frame handles events, rebuilds the mesh after edits and draws.
// It reports whether the window was closed.
func (v *viewer) frame() (bool, error) {
	glfw.PollEvents()
	if v.win.ShouldClose() {
		return true, nil
	}

	if v.edit.take() || v.resize {
		v.resize = false
		if err := v.rebuild(); err != nil {
			return false, err
		}
	}

	gl.Viewport(0, 0, int32(v.fbW), int32(v.fbH)) //nolint:gosec // window sizes fit int32
	gl.ClearColor(0.08, 0.08, 0.1, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	if v.indices > 0 {
		gl.UseProgram(v.program)
		gl.Uniform4f(v.colorLoc, 0.95, 0.95, 0.9, 1)
		v.atlas.Bind(0)
		gl.BindVertexArray(v.vao)
		gl.DrawElements(gl.TRIANGLES, v.indices, gl.UNSIGNED_INT, gl.PtrOffset(0))
		gl.BindVertexArray(0)
	}
	v.win.SwapBuffers()
	return false, nil
}

// rebuild runs the pipeline for the current text and uploads the mesh.
// An overflowing atlas is doubled once per attempt.
func (v *viewer) rebuild() error {
	if v.fbW <= 0 || v.fbH <= 0 {
		v.indices = 0 // minimized
		return nil
	}
	for {
		f, err := v.pipe.Frame(v.edit.text, v.cfg.size, v.fbW, v.fbW, v.fbH)
		if errors.Is(err, glyphmesh.ErrCacheOverflow) {
			w, h := v.atlas.Size()
			if rerr := v.pipe.ResizeAtlas(w*2, h*2); rerr != nil {
				return errors.Wrap(err, "atlas full")
			}
			continue
		}
		if err != nil {
			return errors.Wrap(err, "build frame")
		}

		gl.BindBuffer(gl.ARRAY_BUFFER, v.vbo)
		if vb := f.Mesh.VertexBytes(); len(vb) > 0 {
			gl.BufferData(gl.ARRAY_BUFFER, len(vb), gl.Ptr(vb), gl.DYNAMIC_DRAW)
		}
		gl.BindVertexArray(v.vao)
		if ib := f.Mesh.IndexBytes(); len(ib) > 0 {
			gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(ib), gl.Ptr(ib), gl.DYNAMIC_DRAW)
		}
		gl.BindVertexArray(0)
		v.indices = int32(len(f.Mesh.Indices)) //nolint:gosec // bounded by text length
		return nil
	}
}

func (v *viewer) close() {
	if v.atlas != nil {
		v.atlas.Delete()
	}
	if v.vao != 0 {
		gl.DeleteVertexArrays(1, &v.vao)
		gl.DeleteBuffers(1, &v.vbo)
		gl.DeleteBuffers(1, &v.ebo)
	}
	if v.program != 0 {
		gl.DeleteProgram(v.program)
	}
	v.win.Destroy()
	glfw.Terminate()
}

func compileShader(src string, kind uint32) (uint32, error) {
	sh := gl.CreateShader(kind)
	cs, free := gl.Strs(src)
	gl.ShaderSource(sh, 1, cs, nil)
	free()
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &n)
		log := strings.Repeat("\x00", int(n+1))
		gl.GetShaderInfoLog(sh, n, nil, gl.Str(log))
		gl.DeleteShader(sh)
		return 0, errors.Errorf("compile shader: %s", strings.TrimRight(log, "\x00"))
	}
	return sh, nil
}

func linkProgram(vs, fs uint32) (uint32, error) {
	p := gl.CreateProgram()
	gl.AttachShader(p, vs)
	gl.AttachShader(p, fs)
	gl.LinkProgram(p)

	var status int32
	gl.GetProgramiv(p, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetProgramiv(p, gl.INFO_LOG_LENGTH, &n)
		log := strings.Repeat("\x00", int(n+1))
		gl.GetProgramInfoLog(p, n, nil, gl.Str(log))
		gl.DeleteProgram(p)
		return 0, errors.Errorf("link program: %s", strings.TrimRight(log, "\x00"))
	}
	return p, nil
}
