package glyphmesh_test

import (
	"errors"
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/glyphmesh"
	"github.com/gogpu/glyphmesh/internal/testfont"
	"github.com/gogpu/glyphmesh/texsync"
)

func newPipeline(t *testing.T, w, h int, opts ...glyphmesh.Option) (*glyphmesh.Pipeline, *texsync.ImageTarget) {
	t.Helper()
	target := texsync.NewImageTarget(w, h)
	p, err := glyphmesh.New(testfont.Mono(t), target, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p, target
}

func TestFrameBuildsQuads(t *testing.T) {
	p, target := newPipeline(t, 64, 64)

	f, err := p.Frame("AB", 20, 0, 100, 100)
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if f.Build.Quads != 2 || f.Mesh.QuadCount() != 2 || len(f.Mesh.Indices) != 12 {
		t.Fatalf("quads = %d, indices = %d", f.Build.Quads, len(f.Mesh.Indices))
	}

	// 'A' has its caret at (0, 16) and ink at x 1..9, y -14..2, so its
	// screen rectangle is (1,2)-(9,18). Its first vertex is bottom-left.
	want := mgl32.Vec2{(0.01 - 0.5) * 2, (1 - 0.18 - 0.5) * 2}
	if got := f.Mesh.Vertices[0].Position; !got.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("first vertex = %v, want %v", got, want)
	}
	if f.Extent != image.Rect(1, 2, 19, 18) {
		t.Errorf("Extent = %v", f.Extent)
	}

	// The top-left UV must point at 'A' coverage in the texture.
	tl := f.Mesh.Vertices[1].UV
	px := target.Image().NRGBAAt(int(tl.X()*64), int(tl.Y()*64))
	if px.A != 'A' {
		t.Errorf("texture alpha at 'A' UV = %d, want %d", px.A, 'A')
	}
}

func TestFrameReusesAtlasAndLayout(t *testing.T) {
	p, _ := newPipeline(t, 64, 64)

	for range 3 {
		if _, err := p.Frame("hello", 20, 0, 200, 50); err != nil {
			t.Fatal(err)
		}
	}
	s := p.Stats()
	if s.Frames != 3 {
		t.Errorf("Frames = %d, want 3", s.Frames)
	}
	if s.LayoutMisses != 1 || s.LayoutHits != 2 {
		t.Errorf("layout hits/misses = %d/%d, want 2/1", s.LayoutHits, s.LayoutMisses)
	}
	// h, e, l, o are rasterized and uploaded once.
	if s.Regions != 4 || s.Atlas.Entries != 4 {
		t.Errorf("regions = %d, entries = %d, want 4 and 4", s.Regions, s.Atlas.Entries)
	}
}

func TestFrameSkipsBlankGlyphs(t *testing.T) {
	p, _ := newPipeline(t, 64, 64)
	f, err := p.Frame("A B", 20, 0, 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Glyphs) != 3 || f.Build.Quads != 2 || f.Build.Skipped != 1 {
		t.Errorf("glyphs = %d, build = %+v", len(f.Glyphs), f.Build)
	}
}

func TestFrameWraps(t *testing.T) {
	p, _ := newPipeline(t, 128, 128)
	f, err := p.Frame("ABCD", 20, 25, 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	// Two glyphs per 25px line: AB / CD.
	if f.Glyphs[2].X != 0 || f.Glyphs[2].Y != 16+testfont.LineHeight(20) {
		t.Errorf("third glyph at (%v, %v), want wrapped to (0, %v)",
			f.Glyphs[2].X, f.Glyphs[2].Y, 16+testfont.LineHeight(20))
	}
}

func TestFrameOverflowAndResize(t *testing.T) {
	p, _ := newPipeline(t, 16, 16)

	_, err := p.Frame("ABC", 20, 0, 100, 100)
	if !errors.Is(err, glyphmesh.ErrCacheOverflow) {
		t.Fatalf("error = %v, want ErrCacheOverflow", err)
	}
	var overflow *glyphmesh.OverflowError
	if !errors.As(err, &overflow) || overflow.Glyphs != 3 {
		t.Fatalf("OverflowError = %+v", overflow)
	}

	if err := p.ResizeAtlas(64, 64); err != nil {
		t.Fatalf("ResizeAtlas: %v", err)
	}
	if w, h := p.Target().Size(); w != 64 || h != 64 {
		t.Errorf("target size = %dx%d, want 64x64", w, h)
	}
	f, err := p.Frame("ABC", 20, 0, 100, 100)
	if err != nil {
		t.Fatalf("Frame after resize: %v", err)
	}
	if f.Build.Quads != 3 {
		t.Errorf("quads = %d, want 3", f.Build.Quads)
	}
}

func TestFrameRecoversWithLessText(t *testing.T) {
	p, _ := newPipeline(t, 16, 16)

	if _, err := p.Frame("ABC", 20, 0, 100, 100); !errors.Is(err, glyphmesh.ErrCacheOverflow) {
		t.Fatalf("error = %v, want ErrCacheOverflow", err)
	}
	f, err := p.Frame("A", 20, 0, 100, 100)
	if err != nil {
		t.Fatalf("Frame with one glyph: %v", err)
	}
	if f.Build.Quads != 1 {
		t.Errorf("quads = %d, want 1", f.Build.Quads)
	}
}

func TestResizeAtlasRejectsInvalid(t *testing.T) {
	p, target := newPipeline(t, 32, 32)
	if err := p.ResizeAtlas(0, 32); err == nil {
		t.Fatal("ResizeAtlas(0, 32) should fail")
	}
	if w, _ := target.Size(); w != 32 {
		t.Errorf("target resized to %d despite invalid size", w)
	}
}

// flakyTarget fails writes while broken is set.
type flakyTarget struct {
	*texsync.ImageTarget
	broken bool
}

func (f *flakyTarget) WriteRegion(rect image.Rectangle, rgba []byte) error {
	if f.broken {
		return errors.New("device lost")
	}
	return f.ImageTarget.WriteRegion(rect, rgba)
}

func TestFrameUploadError(t *testing.T) {
	target := &flakyTarget{ImageTarget: texsync.NewImageTarget(64, 64), broken: true}
	p, err := glyphmesh.New(testfont.Mono(t), target)
	if err != nil {
		t.Fatal(err)
	}

	_, err = p.Frame("AB", 20, 0, 100, 100)
	var uploadErr *glyphmesh.TextureUploadError
	if !errors.As(err, &uploadErr) {
		t.Fatalf("error = %v, want *TextureUploadError", err)
	}

	target.broken = false
	f, err := p.Frame("AB", 20, 0, 100, 100)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if f.Build.Quads != 2 {
		t.Errorf("quads after retry = %d, want 2", f.Build.Quads)
	}
}

// mockTexture implements gpucontext.TextureUpdater.
type mockTexture struct {
	updated int
	reject  bool
}

func (m *mockTexture) UpdateData([]byte) error {
	if m.reject {
		return errors.New("driver rejected upload")
	}
	m.updated++
	return nil
}

func TestFrameCommitError(t *testing.T) {
	tex := &mockTexture{reject: true}
	target, err := texsync.NewUpdaterTarget(tex, 64, 64)
	if err != nil {
		t.Fatal(err)
	}
	p, err := glyphmesh.New(testfont.Mono(t), target)
	if err != nil {
		t.Fatal(err)
	}

	_, err = p.Frame("AB", 20, 0, 100, 100)
	var uploadErr *glyphmesh.TextureUploadError
	if !errors.As(err, &uploadErr) {
		t.Fatalf("error = %v, want *TextureUploadError", err)
	}
	if uploadErr.Rect != image.Rect(0, 0, 64, 64) {
		t.Errorf("Rect = %v, want whole texture", uploadErr.Rect)
	}

	tex.reject = false
	f, err := p.Frame("AB", 20, 0, 100, 100)
	if err != nil {
		t.Fatalf("next frame: %v", err)
	}
	if tex.updated != 1 || f.Build.Quads != 2 {
		t.Errorf("updates = %d quads = %d, want 1 and 2", tex.updated, f.Build.Quads)
	}
}

func TestFrameCommitsUpdaterTarget(t *testing.T) {
	tex := &mockTexture{}
	target, err := texsync.NewUpdaterTarget(tex, 64, 64)
	if err != nil {
		t.Fatal(err)
	}
	p, err := glyphmesh.New(testfont.Mono(t), target)
	if err != nil {
		t.Fatal(err)
	}

	for range 2 {
		if _, err := p.Frame("xyz", 20, 0, 100, 100); err != nil {
			t.Fatal(err)
		}
	}
	if tex.updated != 1 {
		t.Errorf("texture updated %d times, want 1", tex.updated)
	}
	if err := p.ResizeAtlas(128, 128); !errors.Is(err, glyphmesh.ErrNotResizable) {
		t.Errorf("ResizeAtlas error = %v, want ErrNotResizable", err)
	}
}

func TestNewErrors(t *testing.T) {
	src := testfont.Mono(t)
	if _, err := glyphmesh.New(nil, texsync.NewImageTarget(8, 8)); !errors.Is(err, glyphmesh.ErrNilSource) {
		t.Errorf("nil source error = %v", err)
	}
	if _, err := glyphmesh.New(src, nil); !errors.Is(err, glyphmesh.ErrNilTarget) {
		t.Errorf("nil target error = %v", err)
	}
	if _, err := glyphmesh.New(src, texsync.NewImageTarget(8, 8), glyphmesh.WithTolerance(0, 0.1)); err == nil {
		t.Error("zero scale tolerance should be rejected")
	}
}

func TestFrameInvalidViewport(t *testing.T) {
	p, _ := newPipeline(t, 32, 32)
	if _, err := p.Frame("A", 20, 0, 0, 100); !errors.Is(err, glyphmesh.ErrInvalidViewport) {
		t.Errorf("error = %v, want ErrInvalidViewport", err)
	}
}

func TestOptions(t *testing.T) {
	p, _ := newPipeline(t, 64, 64,
		glyphmesh.WithLayoutCacheSize(0),
		glyphmesh.WithoutKerning(),
		glyphmesh.WithLayer(2),
		glyphmesh.WithPadding(0),
	)
	f, err := p.Frame("AV", 20, 0, 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	if f.Glyphs[1].X != testfont.Advance {
		t.Errorf("V at x = %v, want %v without kerning", f.Glyphs[1].X, float64(testfont.Advance))
	}
	if s := p.Stats(); s.LayoutHits+s.LayoutMisses != 0 {
		t.Errorf("layout cache used although disabled: %+v", s)
	}
	if p.Atlas().Config().Padding != 0 {
		t.Error("padding option not applied")
	}

	p.Reset()
	if p.Stats().Atlas.Entries != 0 {
		t.Error("Reset kept atlas entries")
	}
}

func TestFrameGoRegular(t *testing.T) {
	p, err := glyphmesh.New(testfont.GoRegular(t), texsync.NewImageTarget(256, 256))
	if err != nil {
		t.Fatal(err)
	}
	f, err := p.Frame("Hello, world", 24, 512, 800, 600)
	if err != nil {
		t.Fatal(err)
	}
	if f.Build.Quads != 11 || f.Build.Skipped != 1 {
		t.Errorf("build = %+v, want 11 quads and 1 skipped space", f.Build)
	}
	for i, v := range f.Mesh.Vertices {
		if v.Position.X() < -1 || v.Position.X() > 1 || v.Position.Y() < -1 || v.Position.Y() > 1 {
			t.Errorf("vertex %d outside the viewport: %v", i, v.Position)
		}
	}
}
