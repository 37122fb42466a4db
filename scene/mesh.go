package scene

import (
	"github.com/chewxy/math32"

	"gl-practice/gpu"
)

// Attribute slots shared by the practice shaders.
const (
	SlotPosition uint32 = 0
	SlotUV       uint32 = 1
)

// PosLayout is three position floats per vertex.
var PosLayout = gpu.Layout{
	Stride: 3,
	Attributes: []gpu.Attribute{
		{Slot: SlotPosition, Components: 3, Offset: 0},
	},
}

// PosUVLayout interleaves a position with a texture coordinate.
var PosUVLayout = gpu.Layout{
	Stride: 5,
	Attributes: []gpu.Attribute{
		{Slot: SlotPosition, Components: 3, Offset: 0},
		{Slot: SlotUV, Components: 2, Offset: 3},
	},
}

// CreateTriangle returns the equilateral triangle with unit sides centred on
// the origin.
func CreateTriangle() gpu.MeshData {
	h := math32.Sqrt(3) / 2
	return gpu.MeshData{
		Name: "Triangle",
		Vertices: []float32{
			-0.5, -h / 3, 0,
			0.5, -h / 3, 0,
			0, h * 2 / 3, 0,
		},
		Layout: PosLayout,
	}
}

// CreateCube builds an indexed cube of the given edge length with one UV
// square per face.
func CreateCube(size float32) gpu.MeshData {
	s := size / 2

	type vert struct{ x, y, z, u, v float32 }
	faces := [6][4]vert{
		// front
		{{-s, -s, s, 0, 0}, {s, -s, s, 1, 0}, {s, s, s, 1, 1}, {-s, s, s, 0, 1}},
		// back
		{{-s, -s, -s, 1, 0}, {s, -s, -s, 0, 0}, {s, s, -s, 0, 1}, {-s, s, -s, 1, 1}},
		// top
		{{-s, s, -s, 0, 0}, {s, s, -s, 1, 0}, {s, s, s, 1, 1}, {-s, s, s, 0, 1}},
		// bottom
		{{-s, -s, -s, 0, 1}, {s, -s, -s, 1, 1}, {s, -s, s, 1, 0}, {-s, -s, s, 0, 0}},
		// right
		{{s, -s, -s, 0, 0}, {s, -s, s, 1, 0}, {s, s, s, 1, 1}, {s, s, -s, 0, 1}},
		// left
		{{-s, -s, -s, 1, 0}, {-s, -s, s, 0, 0}, {-s, s, s, 0, 1}, {-s, s, -s, 1, 1}},
	}

	vertices := make([]float32, 0, 24*PosUVLayout.Stride)
	indices := make([]uint32, 0, 36)
	for f, face := range faces {
		for _, v := range face {
			vertices = append(vertices, v.x, v.y, v.z, v.u, v.v)
		}
		base := uint32(f * 4)
		indices = append(indices, base, base+1, base+2, base+2, base+3, base)
	}

	return gpu.MeshData{
		Name:     "Cube",
		Vertices: vertices,
		Indices:  indices,
		Layout:   PosUVLayout,
	}
}
