package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVertexCount(t *testing.T) {
	layout := Layout{Stride: 5}
	assert.Equal(t, 2, MeshData{Vertices: make([]float32, 10), Layout: layout}.VertexCount())
	assert.Equal(t, 2, MeshData{Vertices: make([]float32, 12), Layout: layout}.VertexCount(), "partial vertices are dropped")
	assert.Zero(t, MeshData{Vertices: make([]float32, 10)}.VertexCount())
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "vertex", VertexStage.String())
	assert.Equal(t, "fragment", FragmentStage.String())
	assert.Equal(t, "unknown", Stage(7).String())
}

func TestColorRGBA8(t *testing.T) {
	assert.Equal(t, [4]uint8{255, 255, 255, 255}, ColorWhite.RGBA8())
	assert.Equal(t, [4]uint8{204, 77, 5, 255}, Color{0.8, 0.3, 0.02, 1}.RGBA8())
	assert.Equal(t, [4]uint8{0, 255, 0, 0}, Color{-1, 2, 0, 0}.RGBA8())
}
