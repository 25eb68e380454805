package scene

import "github.com/go-gl/mathgl/mgl32"

// Transform places an object in the world.
// Rotation holds Euler angles in radians, applied X first, then Y, then Z.
type Transform struct {
	Position mgl32.Vec3
	Scale    mgl32.Vec3
	Rotation mgl32.Vec3
}

// Identity returns a transform that leaves geometry unchanged.
func Identity() Transform {
	return Transform{Scale: mgl32.Vec3{1, 1, 1}}
}

// At returns a unit-scale transform at position p with the given rotation.
func At(p, rotation mgl32.Vec3) Transform {
	return Transform{Position: p, Scale: mgl32.Vec3{1, 1, 1}, Rotation: rotation}
}

// ModelMatrix returns T * Rz * Ry * Rx * S.
func (t Transform) ModelMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(t.rotation()).
		Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}

func (t Transform) rotation() mgl32.Mat4 {
	return mgl32.HomogRotate3DZ(t.Rotation.Z()).
		Mul4(mgl32.HomogRotate3DY(t.Rotation.Y())).
		Mul4(mgl32.HomogRotate3DX(t.Rotation.X()))
}

// NormalMatrix returns the inverse-transpose of the model matrix's upper 3x3,
// embedded in a 4x4 matrix with no translation. A zero scale component makes
// the matrix singular and yields the zero matrix.
func (t Transform) NormalMatrix() mgl32.Mat4 {
	return t.ModelMatrix().Mat3().Inv().Transpose().Mat4()
}
