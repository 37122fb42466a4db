// Package gpu describes the slice of the graphics API the practice scenes use.
// The OpenGL implementation lives in internal/opengl; gputest has a recorder
// for tests that run without a context.
package gpu

import "github.com/go-gl/mathgl/mgl32"

// Stage is one half of a shader program.
type Stage int

const (
	VertexStage Stage = iota
	FragmentStage
)

func (s Stage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	default:
		return "unknown"
	}
}

// Attribute is one vertex attribute: its shader slot, component count and
// offset (in floats) inside a vertex.
type Attribute struct {
	Slot       uint32
	Components int32
	Offset     int
}

// Layout describes interleaved float vertices. Stride is in floats.
type Layout struct {
	Stride     int
	Attributes []Attribute
}

// MeshData is CPU-side geometry waiting to be uploaded.
type MeshData struct {
	Name     string
	Vertices []float32
	Indices  []uint32
	Layout   Layout
}

// VertexCount returns the number of whole vertices in Vertices.
func (m MeshData) VertexCount() int {
	if m.Layout.Stride <= 0 {
		return 0
	}
	return len(m.Vertices) / m.Layout.Stride
}

// Mesh holds the buffer objects of an uploaded MeshData.
type Mesh struct {
	VAO     uint32
	VBO     uint32
	EBO     uint32
	Count   int32
	Indexed bool
}

// ShaderDevice is what a shader program needs from the graphics API.
type ShaderDevice interface {
	// CompileShader compiles one stage. The returned handle is valid even when
	// ok is false so the caller can delete it; log holds the compiler output.
	CompileShader(stage Stage, source string) (id uint32, ok bool, log string)
	// LinkProgram links two compiled stages into a program.
	LinkProgram(vertex, fragment uint32) (id uint32, ok bool, log string)
	DeleteShader(id uint32)
	DeleteProgram(id uint32)

	UseProgram(id uint32)
	// CurrentProgram reports the program bound by the last UseProgram, 0 if none.
	CurrentProgram() uint32

	// UniformLocation returns -1 when name is not an active uniform of program.
	UniformLocation(program uint32, name string) int32
	Uniform1i(loc int32, v int32)
	Uniform1f(loc int32, v float32)
	Uniform3f(loc int32, x, y, z float32)
	UniformMatrix4fv(loc int32, m mgl32.Mat4)
}

// Device is the full surface used by the frame loops.
type Device interface {
	ShaderDevice

	UploadMesh(data MeshData) (Mesh, error)
	ReleaseMesh(m *Mesh)

	// UploadTexture takes tightly packed RGBA8 rows, bottom row first.
	UploadTexture(width, height int, pixels []byte) (uint32, error)
	DeleteTexture(id uint32)
	BindTexture(unit uint32, id uint32)

	EnableDepthTest()
	SetViewport(width, height int)
	SetClearColor(r, g, b, a float32)
	// Clear clears the colour buffer, and the depth buffer when depth is true.
	Clear(depth bool)
	SetWireframe(enabled bool)
	Draw(m Mesh)
}
