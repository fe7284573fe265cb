package mesh

import "github.com/gogpu/gputypes"

// VertexStride is the size of one packed Vertex in bytes.
const VertexStride = 16

// VertexLayout describes the packed vertex buffer for a render pipeline:
// position at location 0, uv at location 1.
func VertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1}, // uv
			},
		},
	}
}

// IndexFormat is the index buffer format of a Mesh.
const IndexFormat = gputypes.IndexFormatUint32
