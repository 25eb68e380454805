package envmap

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Kind tells shading code how an environment is addressed.
type Kind int

const (
	KindCube Kind = iota
	KindEquirect
)

func (k Kind) String() string {
	if k == KindEquirect {
		return "equirect"
	}
	return "cube"
}

// Environment is a radiance source sampled by direction.
type Environment interface {
	// Sample returns linear RGB in [0, 1] seen along dir at the given mip level.
	Sample(dir mgl32.Vec3, lod float32) mgl32.Vec3
	// MaxLod is the coarsest mip level shading may request, log2 of the face size.
	MaxLod() float32
	Kind() Kind
}

// RemapStatic converts a shading direction into the storage convention of
// cube maps loaded from face images: a quarter turn about Y followed by a
// mirror of X. Captured cubes use native addressing and skip it.
func RemapStatic(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{-v[2], v[1], -v[0]}
}

// MaxLodFor returns log2(size), the coarsest level for a face of size texels.
func MaxLodFor(size int) float32 {
	return float32(math.Log2(float64(size)))
}
