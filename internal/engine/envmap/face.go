// Package envmap models environment maps: the six cube faces and their view
// bases, the capture ordering contract, and CPU samplers for cube and
// equirectangular environments.
package envmap

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Face is one side of a cube map. Values follow the GL face target order,
// so gl.TEXTURE_CUBE_MAP_POSITIVE_X + uint32(f) is the face's target.
type Face int

const (
	PositiveX Face = iota
	NegativeX
	PositiveY
	NegativeY
	PositiveZ
	NegativeZ
)

// FaceCount is the number of cube faces.
const FaceCount = 6

// CaptureOrder is the order in which faces are rendered during a capture.
var CaptureOrder = [FaceCount]Face{PositiveX, PositiveY, PositiveZ, NegativeX, NegativeY, NegativeZ}

var faceBasis = [FaceCount]struct{ forward, up mgl32.Vec3 }{
	PositiveX: {mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, -1, 0}},
	NegativeX: {mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, -1, 0}},
	PositiveY: {mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}},
	NegativeY: {mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 0, -1}},
	PositiveZ: {mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, -1, 0}},
	NegativeZ: {mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, -1, 0}},
}

var faceNames = [FaceCount]string{"px", "nx", "py", "ny", "pz", "nz"}

func (f Face) String() string {
	if f < 0 || f >= FaceCount {
		return fmt.Sprintf("Face(%d)", int(f))
	}
	return faceNames[f]
}

// Valid reports whether f names one of the six faces.
func (f Face) Valid() bool {
	return f >= 0 && f < FaceCount
}

// Forward returns the direction the face looks along.
func (f Face) Forward() mgl32.Vec3 { return faceBasis[f].forward }

// Up returns the face's up vector.
func (f Face) Up() mgl32.Vec3 { return faceBasis[f].up }

// Basis returns the camera-to-world rotation for rendering the face.
func (f Face) Basis() mgl32.Mat4 {
	return LookTo(f.Forward(), f.Up())
}

// View returns the world-to-camera matrix for rendering the face from the origin.
func (f Face) View() mgl32.Mat4 {
	return f.Basis().Inv()
}

// CaptureFov is the vertical field of view of every capture face, in degrees.
const CaptureFov = 90

// CaptureProjection returns the square 90 degree projection shared by all faces.
func CaptureProjection(near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(CaptureFov), 1, near, far)
}

// LookTo returns a rotation whose -Z axis points along dir with Y as close to
// up as possible. Columns are the camera's right, up and back vectors.
func LookTo(dir, up mgl32.Vec3) mgl32.Mat4 {
	z := dir.Mul(-1).Normalize()
	x := up.Cross(z).Normalize()
	y := z.Cross(x)
	return mgl32.Mat4{
		x[0], x[1], x[2], 0,
		y[0], y[1], y[2], 0,
		z[0], z[1], z[2], 0,
		0, 0, 0, 1,
	}
}

// FaceOf returns the face a direction hits and the face coordinates (s, t) in [0, 1].
// t grows with the first image row, matching GL cube map addressing.
func FaceOf(dir mgl32.Vec3) (Face, float32, float32) {
	x, y, z := dir[0], dir[1], dir[2]
	ax, ay, az := abs(x), abs(y), abs(z)

	var f Face
	var sc, tc, ma float32
	switch {
	case ax >= ay && ax >= az:
		ma = ax
		if x > 0 {
			f, sc, tc = PositiveX, -z, -y
		} else {
			f, sc, tc = NegativeX, z, -y
		}
	case ay >= az:
		ma = ay
		if y > 0 {
			f, sc, tc = PositiveY, x, z
		} else {
			f, sc, tc = NegativeY, x, -z
		}
	default:
		ma = az
		if z > 0 {
			f, sc, tc = PositiveZ, x, -y
		} else {
			f, sc, tc = NegativeZ, -x, -y
		}
	}
	if ma == 0 {
		return PositiveX, 0.5, 0.5
	}
	return f, 0.5 * (sc/ma + 1), 0.5 * (tc/ma + 1)
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
