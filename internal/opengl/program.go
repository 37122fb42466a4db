package opengl

import (
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"gl-practice/gpu"
)

var stageTypes = map[gpu.Stage]uint32{
	gpu.VertexStage:   gl.VERTEX_SHADER,
	gpu.FragmentStage: gl.FRAGMENT_SHADER,
}

func (d *Device) CompileShader(stage gpu.Stage, source string) (uint32, bool, string) {
	shader := gl.CreateShader(stageTypes[stage])
	csrc, free := gl.Strs(terminate(source))
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		return shader, false, log
	}
	return shader, true, ""
}

func (d *Device) LinkProgram(vertex, fragment uint32) (uint32, bool, string) {
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vertex)
	gl.AttachShader(prog, fragment)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return prog, false, log
	}
	gl.DetachShader(prog, vertex)
	gl.DetachShader(prog, fragment)
	return prog, true, ""
}

func (d *Device) DeleteShader(id uint32) {
	if id != 0 {
		gl.DeleteShader(id)
	}
}

// DeleteProgram also unbinds the program if it is current, so CurrentProgram
// never reports a deleted handle.
func (d *Device) DeleteProgram(id uint32) {
	if id == 0 {
		return
	}
	if d.current == id {
		gl.UseProgram(0)
		d.current = 0
	}
	gl.DeleteProgram(id)
}

func (d *Device) UseProgram(id uint32) {
	gl.UseProgram(id)
	d.current = id
}

func (d *Device) CurrentProgram() uint32 { return d.current }

func (d *Device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(terminate(name)))
}

func (d *Device) Uniform1i(loc int32, v int32)         { gl.Uniform1i(loc, v) }
func (d *Device) Uniform1f(loc int32, v float32)       { gl.Uniform1f(loc, v) }
func (d *Device) Uniform3f(loc int32, x, y, z float32) { gl.Uniform3f(loc, x, y, z) }

func (d *Device) UniformMatrix4fv(loc int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

// terminate appends the NUL the C side expects.
func terminate(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}
