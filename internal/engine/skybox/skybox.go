// Package skybox reconstructs per-pixel view rays for the full-screen
// background pass.
package skybox

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/envlight/internal/engine/envmap"
)

// Corners are the clip-space corners of the full-screen quad.
var Corners = [4]mgl32.Vec2{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}

// Indices select Corners for the two counter-clockwise triangles of the quad.
var Indices = [6]int{0, 1, 2, 3, 2, 1}

// Pass holds the inputs of one skybox draw.
type Pass struct {
	// Matrix rotates view-space rays into world space.
	Matrix mgl32.Mat4
	// Scale is the tangent of the half field of view, horizontally and vertically.
	Scale mgl32.Vec2
}

// TargetScale returns (aspect * tan(vfov/2), tan(vfov/2)) for a vertical field of view in degrees.
func TargetScale(vfov, aspect float32) mgl32.Vec2 {
	h := float32(math.Tan(0.5 * float64(mgl32.DegToRad(vfov))))
	return mgl32.Vec2{aspect * h, h}
}

// CameraMatrix returns the basis looking from cameraPos toward the origin.
func CameraMatrix(cameraPos mgl32.Vec3) mgl32.Mat4 {
	return envmap.LookTo(cameraPos.Mul(-1), mgl32.Vec3{0, 1, 0})
}

// ScreenPass returns the pass for the main view.
func ScreenPass(cameraPos mgl32.Vec3, vfov, aspect float32) Pass {
	return Pass{Matrix: CameraMatrix(cameraPos), Scale: TargetScale(vfov, aspect)}
}

// FacePass returns the pass for one capture face.
func FacePass(f envmap.Face) Pass {
	return Pass{Matrix: f.Basis(), Scale: TargetScale(envmap.CaptureFov, 1)}
}

// Ray returns the unnormalized world direction through clip-space point xy.
// It is linear in xy, so it can be interpolated across the quad.
func (p Pass) Ray(xy mgl32.Vec2) mgl32.Vec3 {
	v := mgl32.Vec4{xy[0] * p.Scale[0], xy[1] * p.Scale[1], -1, 0}
	return p.Matrix.Mul4x1(v).Vec3()
}

// Direction returns the normalized view direction through clip-space point xy.
func (p Pass) Direction(xy mgl32.Vec2) mgl32.Vec3 {
	return p.Ray(xy).Normalize()
}
