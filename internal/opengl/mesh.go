package opengl

import (
	"github.com/cockroachdb/errors"
	gl "github.com/go-gl/gl/v4.1-core/gl"

	"gl-practice/gpu"
)

const floatSize = 4

// UploadMesh creates a VAO with one interleaved VBO, plus an EBO when the
// data is indexed, and records the attribute layout in the VAO.
func (d *Device) UploadMesh(data gpu.MeshData) (gpu.Mesh, error) {
	if data.VertexCount() == 0 {
		return gpu.Mesh{}, errors.Newf("mesh %q has no vertices", data.Name)
	}
	if len(data.Vertices)%data.Layout.Stride != 0 {
		return gpu.Mesh{}, errors.Newf("mesh %q: %d floats is not a multiple of stride %d",
			data.Name, len(data.Vertices), data.Layout.Stride)
	}

	m := gpu.Mesh{Count: int32(data.VertexCount())}
	gl.GenVertexArrays(1, &m.VAO)
	gl.GenBuffers(1, &m.VBO)
	gl.BindVertexArray(m.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, m.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(data.Vertices)*floatSize, gl.Ptr(data.Vertices), gl.STATIC_DRAW)

	stride := int32(data.Layout.Stride * floatSize)
	for _, a := range data.Layout.Attributes {
		gl.VertexAttribPointer(a.Slot, a.Components, gl.FLOAT, false, stride, gl.PtrOffset(a.Offset*floatSize))
		gl.EnableVertexAttribArray(a.Slot)
	}

	if len(data.Indices) > 0 {
		m.Indexed = true
		m.Count = int32(len(data.Indices))
		gl.GenBuffers(1, &m.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data.Indices)*4, gl.Ptr(data.Indices), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return m, nil
}

func (d *Device) ReleaseMesh(m *gpu.Mesh) {
	if m.VAO != 0 {
		gl.DeleteVertexArrays(1, &m.VAO)
	}
	if m.VBO != 0 {
		gl.DeleteBuffers(1, &m.VBO)
	}
	if m.EBO != 0 {
		gl.DeleteBuffers(1, &m.EBO)
	}
	*m = gpu.Mesh{}
}

// Draw issues one triangle draw of m with the current program.
func (d *Device) Draw(m gpu.Mesh) {
	gl.BindVertexArray(m.VAO)
	if m.Indexed {
		gl.DrawElements(gl.TRIANGLES, m.Count, gl.UNSIGNED_INT, gl.PtrOffset(0))
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, m.Count)
	}
	gl.BindVertexArray(0)
}
