// Package camera provides the orbit camera used by the terrain viewer.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/hexterrain/pkg/hexmesh"
	"github.com/Faultbox/hexterrain/pkg/math"
)

// OrbitCamera orbits around a focus point on the terrain.
type OrbitCamera struct {
	Focus math.Vec3

	// Spherical coordinates
	Distance float32
	Pitch    float32 // radians above the horizon
	Yaw      float32 // radians around +Y

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	// Projection
	FOV  float32 // vertical, degrees
	Near float32
	Far  float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera(fov float32) *OrbitCamera {
	return &OrbitCamera{
		Distance:        150,
		Pitch:           0.9,
		MinDistance:     20,
		MaxDistance:     2000,
		MinPitch:        0.1,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		FOV:             fov,
		Near:            1,
		Far:             5000,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	pitch, yaw := float64(c.Pitch), float64(c.Yaw)
	offset := math.Vec3{
		X: c.Distance * float32(gomath.Cos(pitch)*gomath.Sin(yaw)),
		Y: c.Distance * float32(gomath.Sin(pitch)),
		Z: c.Distance * float32(gomath.Cos(pitch)*gomath.Cos(yaw)),
	}
	return c.Focus.Add(offset)
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(toMgl(c.Position()), toMgl(c.Focus), mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns the perspective projection for the viewport.
func (c *OrbitCamera) ProjectionMatrix(width, height int) mgl32.Mat4 {
	aspect := float32(width) / float32(max(height, 1))
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection(width, height int) mgl32.Mat4 {
	return c.ProjectionMatrix(width, height).Mul4(c.ViewMatrix())
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch = mgl32.Clamp(c.Pitch+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = mgl32.Clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// HandleMovement pans the focus on the XZ plane relative to the view
// direction. Speed scales with distance.
func (c *OrbitCamera) HandleMovement(forward, right float32) {
	speed := c.Distance * 0.01
	sin := float32(gomath.Sin(float64(c.Yaw)))
	cos := float32(gomath.Cos(float64(c.Yaw)))

	// W moves away from the camera.
	c.Focus.X += (-sin*forward + cos*right) * speed
	c.Focus.Z += (-cos*forward - sin*right) * speed
}

// FitToBounds centers the camera on b and backs off far enough to see it.
func (c *OrbitCamera) FitToBounds(b hexmesh.Bounds) {
	c.Focus = b.Center()
	size := b.Size()
	c.Distance = mgl32.Clamp(max(size.X, size.Z)*0.9, c.MinDistance, c.MaxDistance)
	c.Pitch = 0.9
	c.Yaw = 0
}

func toMgl(v math.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}
