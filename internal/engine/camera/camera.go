// Package camera provides camera rigs and projection settings for the viewer.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Lens describes the perspective projection of the main view.
type Lens struct {
	VFov float32 // vertical field of view, degrees
	Near float32
	Far  float32
}

// DefaultLens returns a 60 degree lens with a 0.01..1000 depth range.
func DefaultLens() Lens {
	return Lens{VFov: 60, Near: 0.01, Far: 1000}
}

// Projection returns the projection matrix for the given aspect ratio.
func (l Lens) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(l.VFov), aspect, l.Near, l.Far)
}

// View returns a view matrix looking from eye at the world origin with +Y up.
func View(eye mgl32.Vec3) mgl32.Mat4 {
	return mgl32.LookAtV(eye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
}

// Path flies the camera around the origin on a fixed Lissajous-like curve.
type Path struct {
	Radius float32
}

// PositionAt returns the camera position at elapsed seconds.
func (p Path) PositionAt(elapsed float32) mgl32.Vec3 {
	t := float64(elapsed)
	r := float64(p.Radius)
	return mgl32.Vec3{
		float32(r * math.Cos(0.5*t)),
		float32(r * math.Sin(0.3*t)),
		float32(r * math.Sin(0.5*t)),
	}
}

// OrbitCamera orbits around a center point under mouse control.
type OrbitCamera struct {
	Center mgl32.Vec3

	// Spherical coordinates
	Distance  float32
	RotationX float32 // pitch, radians
	RotationY float32 // yaw, radians

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates an orbit camera at the given distance from the origin.
func NewOrbitCamera(distance float32) *OrbitCamera {
	return &OrbitCamera{
		Distance:        distance,
		RotationX:       0.3,
		MinDistance:     distance * 0.25,
		MaxDistance:     distance * 4,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	pitch, yaw := float64(c.RotationX), float64(c.RotationY)
	d := float64(c.Distance)
	return c.Center.Add(mgl32.Vec3{
		float32(d * math.Cos(pitch) * math.Sin(yaw)),
		float32(d * math.Sin(pitch)),
		float32(d * math.Cos(pitch) * math.Cos(yaw)),
	})
}

// PositionAt ignores time; the orbit only moves on input.
func (c *OrbitCamera) PositionAt(float32) mgl32.Vec3 {
	return c.Position()
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity
	c.RotationX = mgl32.Clamp(c.RotationX, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = mgl32.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}
