// Package camera implements a free-look fly camera driven by cursor, scroll
// and movement input.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultYaw         float32 = -90
	DefaultPitch       float32 = 0
	DefaultSpeed       float32 = 7.5
	DefaultSensitivity float32 = 0.1
	DefaultFovMin      float32 = 1
	DefaultFovMax      float32 = 45
	DefaultNear        float32 = 0.1
	DefaultFar         float32 = 1000

	// MaxPitch keeps the view away from the poles where look-at degenerates.
	MaxPitch float32 = 89
)

// WorldUp is the fixed up vector for every camera.
var WorldUp = mgl32.Vec3{0, 1, 0}

// Direction is a movement request for ApplyMovement.
type Direction int

const (
	Forward Direction = iota
	Backward
	StrafeLeft
	StrafeRight
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case StrafeLeft:
		return "strafe-left"
	case StrafeRight:
		return "strafe-right"
	default:
		return "unknown"
	}
}

// Camera holds position and orientation. Angles are in degrees.
type Camera struct {
	position mgl32.Vec3
	front    mgl32.Vec3
	yaw      float32
	pitch    float32
	fov      float32
	fovMin   float32
	fovMax   float32

	firstMouse bool
	lastX      float64
	lastY      float64
}

// New returns a camera at position looking down -Z with the widest fov.
func New(position mgl32.Vec3) *Camera {
	c := &Camera{
		position:   position,
		yaw:        DefaultYaw,
		pitch:      DefaultPitch,
		fov:        DefaultFovMax,
		fovMin:     DefaultFovMin,
		fovMax:     DefaultFovMax,
		firstMouse: true,
	}
	c.updateFront()
	return c
}

// SetFOVRange changes the zoom limits and clamps the current fov into them.
// Invalid ranges are ignored.
func (c *Camera) SetFOVRange(min, max float32) {
	if min <= 0 || min > max {
		return
	}
	c.fovMin, c.fovMax = min, max
	c.fov = mgl32.Clamp(c.fov, min, max)
}

func (c *Camera) Position() mgl32.Vec3 { return c.position }
func (c *Camera) Front() mgl32.Vec3    { return c.front }
func (c *Camera) Yaw() float32         { return c.yaw }
func (c *Camera) Pitch() float32       { return c.pitch }
func (c *Camera) FOV() float32         { return c.fov }

// Right is the horizontal strafe axis.
func (c *Camera) Right() mgl32.Vec3 {
	return c.front.Cross(WorldUp).Normalize()
}

// ResetMouse makes the next ApplyMouseDelta a baseline sample again, e.g.
// after the cursor was recaptured.
func (c *Camera) ResetMouse() {
	c.firstMouse = true
}

// ApplyMouseDelta turns the camera by the cursor movement since the previous
// sample. x and y are absolute cursor coordinates; screen y grows downward.
func (c *Camera) ApplyMouseDelta(x, y float64, sensitivity float32) {
	if c.firstMouse {
		c.lastX, c.lastY = x, y
		c.firstMouse = false
		return
	}
	dx := float32(x-c.lastX) * sensitivity
	dy := float32(c.lastY-y) * sensitivity
	c.lastX, c.lastY = x, y

	c.yaw += dx
	c.pitch = mgl32.Clamp(c.pitch+dy, -MaxPitch, MaxPitch)
	c.updateFront()
}

// ApplyScroll zooms: scrolling up narrows the field of view.
func (c *Camera) ApplyScroll(deltaY float64) {
	c.fov = mgl32.Clamp(c.fov-float32(deltaY), c.fovMin, c.fovMax)
}

// ApplyMovement moves speed*elapsed units in the given direction.
func (c *Camera) ApplyMovement(dir Direction, elapsed, speed float32) {
	step := speed * elapsed
	switch dir {
	case Forward:
		c.position = c.position.Add(c.front.Mul(step))
	case Backward:
		c.position = c.position.Sub(c.front.Mul(step))
	case StrafeLeft:
		c.position = c.position.Sub(c.Right().Mul(step))
	case StrafeRight:
		c.position = c.position.Add(c.Right().Mul(step))
	}
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.front), WorldUp)
}

// ProjectionMatrix returns a perspective projection with the current fov.
func (c *Camera) ProjectionMatrix(aspect, near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.fov), aspect, near, far)
}

func (c *Camera) updateFront() {
	yaw := mgl32.DegToRad(c.yaw)
	pitch := mgl32.DegToRad(c.pitch)
	c.front = mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}.Normalize()
}
