// Package opengl implements gpu.Device on an OpenGL 4.1 core context.
// Every method must be called from the goroutine that owns the context.
package opengl

import (
	"log/slog"

	"github.com/cockroachdb/errors"
	gl "github.com/go-gl/gl/v4.1-core/gl"

	"gl-practice/gpu"
)

// Device issues GL calls for the frame loop.
type Device struct {
	current uint32
}

// New loads the GL function pointers. The window's context must already be
// current.
func New() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, errors.Wrap(err, "initialize OpenGL")
	}
	slog.Info("OpenGL ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
		"glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)))
	return &Device{}, nil
}

func (d *Device) EnableDepthTest() {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
}

func (d *Device) SetViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (d *Device) SetClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *Device) Clear(depth bool) {
	mask := uint32(gl.COLOR_BUFFER_BIT)
	if depth {
		mask |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(mask)
}

func (d *Device) SetWireframe(enabled bool) {
	if enabled {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// ReadPixel returns the RGBA value of one framebuffer pixel, origin bottom left.
func (d *Device) ReadPixel(x, y int) [4]uint8 {
	var px [4]uint8
	gl.ReadPixels(int32(x), int32(y), 1, 1, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&px[0]))
	return px
}

// Finish blocks until queued commands have executed.
func (d *Device) Finish() { gl.Finish() }

var _ gpu.Device = (*Device)(nil)
