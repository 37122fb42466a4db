// Package gputest provides a gpu.Device that records calls instead of
// talking to a driver.
package gputest

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"

	"gl-practice/gpu"
)

// Shader is a compiled stage as seen by the recorder.
type Shader struct {
	Stage   gpu.Stage
	Source  string
	Deleted bool
}

// Program is a linked program as seen by the recorder.
type Program struct {
	Vertex, Fragment uint32
	Deleted          bool
}

// UniformWrite is one uniform upload. Value is an int32, float32,
// [3]float32 or mgl32.Mat4.
type UniformWrite struct {
	Program uint32
	Name    string
	Value   interface{}
}

// DrawCall is one Draw issued while Program was bound.
type DrawCall struct {
	Program  uint32
	Mesh     gpu.Mesh
	Textures map[uint32]uint32
}

type uniformKey struct {
	program uint32
	name    string
}

// Device records every call. Configure the failure fields before use.
type Device struct {
	// FailCompile maps a stage to the compiler log it should fail with.
	FailCompile map[gpu.Stage]string
	// FailLink, when non-empty, makes LinkProgram fail with that log.
	FailLink string
	// Missing lists uniform names that resolve to -1.
	Missing map[string]bool

	Shaders  map[uint32]*Shader
	Programs map[uint32]*Program
	Textures map[uint32]bool
	Meshes   []gpu.MeshData

	Writes  []UniformWrite
	Draws   []DrawCall
	Lookups int
	// Ops is a coarse trace of call names in order.
	Ops []string

	Bound       map[uint32]uint32
	DepthTest   bool
	Wireframe   bool
	ViewportW   int
	ViewportH   int
	ClearColor  [4]float32
	Clears      int
	DepthClears int

	current   uint32
	nextID    uint32
	nextLoc   int32
	locations map[uniformKey]int32
	names     map[int32]string
}

// New returns an empty recorder.
func New() *Device {
	return &Device{
		FailCompile: make(map[gpu.Stage]string),
		Missing:     make(map[string]bool),
		Shaders:     make(map[uint32]*Shader),
		Programs:    make(map[uint32]*Program),
		Textures:    make(map[uint32]bool),
		Bound:       make(map[uint32]uint32),
		locations:   make(map[uniformKey]int32),
		names:       make(map[int32]string),
	}
}

// Reset forgets recorded writes, draws and ops, keeping objects and bindings.
func (d *Device) Reset() {
	d.Writes = nil
	d.Draws = nil
	d.Ops = nil
	d.Lookups = 0
	d.Clears = 0
	d.DepthClears = 0
}

// WritesOf returns the uploads made to the named uniform.
func (d *Device) WritesOf(name string) []UniformWrite {
	var out []UniformWrite
	for _, w := range d.Writes {
		if w.Name == name {
			out = append(out, w)
		}
	}
	return out
}

// LiveShaders counts stages that were compiled and not deleted.
func (d *Device) LiveShaders() int {
	n := 0
	for _, s := range d.Shaders {
		if !s.Deleted {
			n++
		}
	}
	return n
}

func (d *Device) id() uint32 {
	d.nextID++
	return d.nextID
}

func (d *Device) op(format string, args ...interface{}) {
	d.Ops = append(d.Ops, fmt.Sprintf(format, args...))
}

func (d *Device) CompileShader(stage gpu.Stage, source string) (uint32, bool, string) {
	id := d.id()
	d.Shaders[id] = &Shader{Stage: stage, Source: source}
	d.op("compile %s", stage)
	if log, ok := d.FailCompile[stage]; ok {
		return id, false, log
	}
	return id, true, ""
}

func (d *Device) LinkProgram(vertex, fragment uint32) (uint32, bool, string) {
	id := d.id()
	d.Programs[id] = &Program{Vertex: vertex, Fragment: fragment}
	d.op("link")
	if d.FailLink != "" {
		return id, false, d.FailLink
	}
	return id, true, ""
}

func (d *Device) DeleteShader(id uint32) {
	if s, ok := d.Shaders[id]; ok {
		s.Deleted = true
	}
	d.op("delete shader %d", id)
}

func (d *Device) DeleteProgram(id uint32) {
	if p, ok := d.Programs[id]; ok {
		p.Deleted = true
	}
	if d.current == id {
		d.current = 0
	}
	d.op("delete program %d", id)
}

func (d *Device) UseProgram(id uint32) {
	d.current = id
	d.op("use %d", id)
}

func (d *Device) CurrentProgram() uint32 { return d.current }

func (d *Device) UniformLocation(program uint32, name string) int32 {
	d.Lookups++
	p, ok := d.Programs[program]
	if !ok || p.Deleted || d.Missing[name] {
		return -1
	}
	key := uniformKey{program, name}
	if loc, ok := d.locations[key]; ok {
		return loc
	}
	loc := d.nextLoc
	d.nextLoc++
	d.locations[key] = loc
	d.names[loc] = name
	return loc
}

func (d *Device) write(loc int32, v interface{}) {
	d.Writes = append(d.Writes, UniformWrite{Program: d.current, Name: d.names[loc], Value: v})
	d.op("uniform %s", d.names[loc])
}

func (d *Device) Uniform1i(loc int32, v int32)         { d.write(loc, v) }
func (d *Device) Uniform1f(loc int32, v float32)       { d.write(loc, v) }
func (d *Device) Uniform3f(loc int32, x, y, z float32) { d.write(loc, [3]float32{x, y, z}) }

func (d *Device) UniformMatrix4fv(loc int32, m mgl32.Mat4) { d.write(loc, m) }

func (d *Device) UploadMesh(data gpu.MeshData) (gpu.Mesh, error) {
	if data.VertexCount() == 0 {
		return gpu.Mesh{}, errors.Newf("mesh %q has no vertices", data.Name)
	}
	d.Meshes = append(d.Meshes, data)
	m := gpu.Mesh{VAO: d.id(), VBO: d.id(), Count: int32(data.VertexCount())}
	if len(data.Indices) > 0 {
		m.EBO = d.id()
		m.Count = int32(len(data.Indices))
		m.Indexed = true
	}
	d.op("upload mesh %s", data.Name)
	return m, nil
}

func (d *Device) ReleaseMesh(m *gpu.Mesh) {
	d.op("release mesh %d", m.VAO)
	*m = gpu.Mesh{}
}

func (d *Device) UploadTexture(width, height int, pixels []byte) (uint32, error) {
	if len(pixels) != width*height*4 {
		return 0, errors.Newf("texture %dx%d: got %d bytes", width, height, len(pixels))
	}
	id := d.id()
	d.Textures[id] = true
	d.op("upload texture %d", id)
	return id, nil
}

func (d *Device) DeleteTexture(id uint32) {
	d.Textures[id] = false
	d.op("delete texture %d", id)
}

func (d *Device) BindTexture(unit uint32, id uint32) {
	d.Bound[unit] = id
	d.op("bind texture %d=%d", unit, id)
}

func (d *Device) EnableDepthTest() {
	d.DepthTest = true
	d.op("depth test")
}

func (d *Device) SetViewport(width, height int) {
	d.ViewportW, d.ViewportH = width, height
	d.op("viewport %dx%d", width, height)
}

func (d *Device) SetClearColor(r, g, b, a float32) {
	d.ClearColor = [4]float32{r, g, b, a}
}

func (d *Device) Clear(depth bool) {
	d.Clears++
	if depth {
		d.DepthClears++
	}
	d.op("clear")
}

func (d *Device) SetWireframe(enabled bool) {
	d.Wireframe = enabled
	d.op("wireframe %v", enabled)
}

func (d *Device) Draw(m gpu.Mesh) {
	bound := make(map[uint32]uint32, len(d.Bound))
	for k, v := range d.Bound {
		bound[k] = v
	}
	d.Draws = append(d.Draws, DrawCall{Program: d.current, Mesh: m, Textures: bound})
	d.op("draw %d", m.VAO)
}

var _ gpu.Device = (*Device)(nil)
