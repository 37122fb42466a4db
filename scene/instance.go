// Package scene holds the geometry and object placement of the practice
// scenes.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// DegreesPerSecond is how fast rotating instances spin, scaled by their index.
const DegreesPerSecond float32 = 3

// RotationAxis is shared by every rotating instance.
var RotationAxis = mgl32.Vec3{1, 0.3, 0.5}.Normalize()

// Instance is one placed copy of the shared mesh.
type Instance struct {
	Translation mgl32.Vec3
	Rotates     bool
}

// Model returns the model matrix at total seconds since start. index is the
// instance's position in the scene and scales its spin.
func (in Instance) Model(index int, total float32) mgl32.Mat4 {
	model := mgl32.Translate3D(in.Translation.X(), in.Translation.Y(), in.Translation.Z())
	if in.Rotates {
		angle := mgl32.DegToRad(float32(index) * total * DegreesPerSecond)
		model = model.Mul4(mgl32.HomogRotate3D(angle, RotationAxis))
	}
	return model
}

var cubePositions = []mgl32.Vec3{
	{0, 0, 0},
	{2, 5, -15},
	{-1.5, -2.2, -2.5},
	{-3.8, -2, -12.3},
	{2.4, -0.4, -3.5},
	{-1.7, 3, -7.5},
	{1.3, -2, -2.5},
	{1.5, 2, -2.5},
	{1.5, 0.2, -1.5},
	{-1.3, 1, -1.5},
}

// ReferenceInstances returns the ten cubes of the practice scene. Every third
// one, starting with the first, rotates.
func ReferenceInstances() []Instance {
	out := make([]Instance, len(cubePositions))
	for i, p := range cubePositions {
		out[i] = Instance{Translation: p, Rotates: i%3 == 0}
	}
	return out
}
