package mesh

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/glyphmesh/atlas"
	"github.com/gogpu/glyphmesh/text"
)

// ErrInvalidViewport is returned when the viewport has no area.
var ErrInvalidViewport = errors.New("mesh: viewport width and height must be positive")

// Vertex is one corner of a glyph quad.
type Vertex struct {
	Position mgl32.Vec2 // clip space
	UV       mgl32.Vec2 // atlas texture coordinates
}

// Resolver reports where a glyph lives in the atlas. *atlas.Cache
// implements it.
type Resolver interface {
	Resolve(layer int, g text.PositionedGlyph) (atlas.Resolution, error)
}

// QuadSink receives each quad as it is built. The arrays are copied on
// every call, so the sink may keep them.
type QuadSink func(vertices [4]Vertex, indices [6]uint32)

// BuildStats summarizes one Build call.
type BuildStats struct {
	Quads   int // quads emitted
	Skipped int // glyphs with nothing resident in the atlas
}

// Build emits one quad per resident glyph. Index numbering starts at 0 on
// every call. Resolution errors abort the build; quads already sent to
// sink stay sent.
func Build(glyphs []text.PositionedGlyph, layer int, r Resolver, w, h int, sink QuadSink) (BuildStats, error) {
	var stats BuildStats
	if w <= 0 || h <= 0 {
		return stats, fmt.Errorf("%w: %dx%d", ErrInvalidViewport, w, h)
	}
	fw, fh := float32(w), float32(h)

	var base uint32
	for _, g := range glyphs {
		res, err := r.Resolve(layer, g)
		if err != nil {
			return stats, fmt.Errorf("mesh: resolve %q: %w", g.Rune, err)
		}
		if !res.Resident {
			stats.Skipped++
			continue
		}

		c := ToClipRect(fw, fh, res.Screen)
		uv := res.UV
		sink(
			[4]Vertex{
				{Position: mgl32.Vec2{c.Min.X(), c.Max.Y()}, UV: mgl32.Vec2{uv.U0, uv.V1}},
				{Position: mgl32.Vec2{c.Min.X(), c.Min.Y()}, UV: mgl32.Vec2{uv.U0, uv.V0}},
				{Position: mgl32.Vec2{c.Max.X(), c.Min.Y()}, UV: mgl32.Vec2{uv.U1, uv.V0}},
				{Position: mgl32.Vec2{c.Max.X(), c.Max.Y()}, UV: mgl32.Vec2{uv.U1, uv.V1}},
			},
			[6]uint32{base, base + 1, base + 2, base, base + 2, base + 3},
		)
		base += 4
		stats.Quads++
	}
	return stats, nil
}

// Mesh holds the vertex and index buffers of one frame.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Empty reports whether the mesh has nothing to draw.
func (m *Mesh) Empty() bool { return len(m.Indices) == 0 }

// QuadCount returns the number of glyph quads.
func (m *Mesh) QuadCount() int { return len(m.Indices) / 6 }

// Reset empties the mesh, keeping its buffers.
func (m *Mesh) Reset() {
	m.Vertices = m.Vertices[:0]
	m.Indices = m.Indices[:0]
}

// Append is a QuadSink that appends to the mesh.
func (m *Mesh) Append(vertices [4]Vertex, indices [6]uint32) {
	m.Vertices = append(m.Vertices, vertices[:]...)
	m.Indices = append(m.Indices, indices[:]...)
}

// BuildMesh is Build collecting into a fresh Mesh.
func BuildMesh(glyphs []text.PositionedGlyph, layer int, r Resolver, w, h int) (Mesh, BuildStats, error) {
	m := Mesh{
		Vertices: make([]Vertex, 0, len(glyphs)*4),
		Indices:  make([]uint32, 0, len(glyphs)*6),
	}
	stats, err := Build(glyphs, layer, r, w, h, m.Append)
	if err != nil {
		return Mesh{}, stats, err
	}
	return m, stats, nil
}

// VertexBytes packs the vertices as little-endian float32s in the order
// described by VertexLayout.
func (m *Mesh) VertexBytes() []byte {
	buf := make([]byte, len(m.Vertices)*VertexStride)
	for i, v := range m.Vertices {
		off := i * VertexStride
		putFloat(buf[off:], v.Position.X())
		putFloat(buf[off+4:], v.Position.Y())
		putFloat(buf[off+8:], v.UV.X())
		putFloat(buf[off+12:], v.UV.Y())
	}
	return buf
}

// IndexBytes packs the indices as little-endian uint32s.
func (m *Mesh) IndexBytes() []byte {
	buf := make([]byte, len(m.Indices)*4)
	for i, idx := range m.Indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}

func putFloat(b []byte, f float32) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(f))
}
