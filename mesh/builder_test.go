package mesh

import (
	"encoding/binary"
	"errors"
	"image"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/glyphmesh/atlas"
	"github.com/gogpu/glyphmesh/text"
)

// mapResolver resolves glyphs by rune.
type mapResolver struct {
	res  map[rune]atlas.Resolution
	err  map[rune]error
	seen []int
}

func (m *mapResolver) Resolve(layer int, g text.PositionedGlyph) (atlas.Resolution, error) {
	m.seen = append(m.seen, layer)
	if err := m.err[g.Rune]; err != nil {
		return atlas.Resolution{}, err
	}
	return m.res[g.Rune], nil
}

func glyphs(runes string) []text.PositionedGlyph {
	out := make([]text.PositionedGlyph, 0, len(runes))
	for _, r := range runes {
		out = append(out, text.PositionedGlyph{Rune: r})
	}
	return out
}

func resident(screen image.Rectangle, uv atlas.UVRect) atlas.Resolution {
	return atlas.Resolution{Resident: true, UV: uv, Screen: screen}
}

func TestBuildQuadLayout(t *testing.T) {
	r := &mapResolver{res: map[rune]atlas.Resolution{
		'a': resident(image.Rect(0, 0, 50, 50), atlas.UVRect{U0: 0.25, V0: 0.5, U1: 0.5, V1: 0.75}),
	}}

	var quads int
	stats, err := Build(glyphs("a"), 3, r, 100, 100, func(v [4]Vertex, idx [6]uint32) {
		quads++
		want := [4]Vertex{
			{Position: mgl32.Vec2{-1, 0}, UV: mgl32.Vec2{0.25, 0.75}}, // bottom-left
			{Position: mgl32.Vec2{-1, 1}, UV: mgl32.Vec2{0.25, 0.5}},  // top-left
			{Position: mgl32.Vec2{0, 1}, UV: mgl32.Vec2{0.5, 0.5}},    // top-right
			{Position: mgl32.Vec2{0, 0}, UV: mgl32.Vec2{0.5, 0.75}},   // bottom-right
		}
		for i := range want {
			if !v[i].Position.ApproxEqual(want[i].Position) || !v[i].UV.ApproxEqual(want[i].UV) {
				t.Errorf("vertex %d = %+v, want %+v", i, v[i], want[i])
			}
		}
		if idx != [6]uint32{0, 1, 2, 0, 2, 3} {
			t.Errorf("indices = %v", idx)
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	if quads != 1 || stats.Quads != 1 || stats.Skipped != 0 {
		t.Errorf("quads = %d, stats = %+v", quads, stats)
	}
	if len(r.seen) != 1 || r.seen[0] != 3 {
		t.Errorf("resolver saw layers %v, want [3]", r.seen)
	}
}

func TestBuildSkipsNonResident(t *testing.T) {
	uv := atlas.UVRect{U1: 1, V1: 1}
	r := &mapResolver{res: map[rune]atlas.Resolution{
		'a': resident(image.Rect(0, 0, 10, 10), uv),
		'c': resident(image.Rect(20, 0, 30, 10), uv),
	}}

	m, stats, err := BuildMesh(glyphs("a c"), 0, r, 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Quads != 2 || stats.Skipped != 1 {
		t.Errorf("stats = %+v, want 2 quads 1 skipped", stats)
	}
	if len(m.Vertices) != 8 || len(m.Indices) != 12 || m.QuadCount() != 2 {
		t.Fatalf("mesh has %d vertices, %d indices", len(m.Vertices), len(m.Indices))
	}
	want := []uint32{0, 1, 2, 0, 2, 3, 4, 5, 6, 4, 6, 7}
	for i, idx := range m.Indices {
		if idx != want[i] {
			t.Fatalf("indices = %v, want %v", m.Indices, want)
		}
	}
}

func TestBuildIndicesResetPerCall(t *testing.T) {
	r := &mapResolver{res: map[rune]atlas.Resolution{
		'x': resident(image.Rect(0, 0, 4, 4), atlas.UVRect{}),
	}}
	for range 2 {
		var first uint32 = math.MaxUint32
		_, err := Build(glyphs("x"), 0, r, 10, 10, func(_ [4]Vertex, idx [6]uint32) {
			first = idx[0]
		})
		if err != nil {
			t.Fatal(err)
		}
		if first != 0 {
			t.Errorf("first index = %d, want 0", first)
		}
	}
}

func TestBuildQuadsAreClockwise(t *testing.T) {
	r := &mapResolver{res: map[rune]atlas.Resolution{
		'q': resident(image.Rect(7, 3, 19, 21), atlas.UVRect{}),
	}}
	m, _, err := BuildMesh(glyphs("q"), 0, r, 64, 32)
	if err != nil {
		t.Fatal(err)
	}
	for tri := 0; tri < 2; tri++ {
		a := m.Vertices[m.Indices[tri*3]].Position
		b := m.Vertices[m.Indices[tri*3+1]].Position
		c := m.Vertices[m.Indices[tri*3+2]].Position
		cross := (b.X()-a.X())*(c.Y()-a.Y()) - (b.Y()-a.Y())*(c.X()-a.X())
		if cross >= 0 {
			t.Errorf("triangle %d is not clockwise (cross %v)", tri, cross)
		}
	}
}

func TestBuildErrors(t *testing.T) {
	r := &mapResolver{err: map[rune]error{'z': atlas.ErrNotQueued}}

	_, err := Build(glyphs("z"), 0, r, 0, 10, func([4]Vertex, [6]uint32) {})
	if !errors.Is(err, ErrInvalidViewport) {
		t.Errorf("zero width error = %v, want ErrInvalidViewport", err)
	}

	_, _, err = BuildMesh(glyphs("z"), 0, r, 10, 10)
	if !errors.Is(err, atlas.ErrNotQueued) {
		t.Errorf("resolve error = %v, want ErrNotQueued", err)
	}
}

func TestMeshBytes(t *testing.T) {
	m := Mesh{
		Vertices: []Vertex{{Position: mgl32.Vec2{1, -1}, UV: mgl32.Vec2{0.5, 0.25}}},
		Indices:  []uint32{7},
	}
	vb := m.VertexBytes()
	if len(vb) != VertexStride {
		t.Fatalf("vertex bytes = %d, want %d", len(vb), VertexStride)
	}
	want := []float32{1, -1, 0.5, 0.25}
	for i, f := range want {
		got := math.Float32frombits(binary.LittleEndian.Uint32(vb[i*4:]))
		if got != f {
			t.Errorf("float %d = %v, want %v", i, got, f)
		}
	}
	if ib := m.IndexBytes(); binary.LittleEndian.Uint32(ib) != 7 {
		t.Errorf("index bytes = %v", ib)
	}

	m.Reset()
	if !m.Empty() {
		t.Error("mesh not empty after Reset")
	}
}

func TestVertexLayout(t *testing.T) {
	layout := VertexLayout()
	if len(layout) != 1 {
		t.Fatalf("layouts = %d, want 1", len(layout))
	}
	if layout[0].ArrayStride != VertexStride {
		t.Errorf("stride = %d, want %d", layout[0].ArrayStride, VertexStride)
	}
	attrs := layout[0].Attributes
	if len(attrs) != 2 || attrs[0].Offset != 0 || attrs[1].Offset != 8 || attrs[1].ShaderLocation != 1 {
		t.Errorf("attributes = %+v", attrs)
	}
}
