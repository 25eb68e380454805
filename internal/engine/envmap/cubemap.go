package envmap

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/envlight/internal/engine/texture"
)

// ErrFaceSize is returned when cube faces are missing, not square or not the same size.
var ErrFaceSize = errors.New("cube faces must be square and equally sized")

// CubeMap is a CPU cube map. Static cubes built from face images carry a full
// mip chain and sample through RemapStatic; captured cubes have a single level
// and native addressing.
type CubeMap struct {
	faces [FaceCount][]*image.RGBA
	size  int
	remap bool
}

// NewStaticCube builds a mipmapped cube from six face images indexed by Face.
func NewStaticCube(faces [FaceCount]*image.RGBA) (*CubeMap, error) {
	size := 0
	for f, img := range faces {
		if img == nil {
			return nil, fmt.Errorf("face %s missing: %w", Face(f), ErrFaceSize)
		}
		b := img.Bounds()
		if b.Dx() != b.Dy() || b.Dx() == 0 {
			return nil, fmt.Errorf("face %s is %dx%d: %w", Face(f), b.Dx(), b.Dy(), ErrFaceSize)
		}
		if size != 0 && b.Dx() != size {
			return nil, fmt.Errorf("face %s is %d texels, expected %d: %w", Face(f), b.Dx(), size, ErrFaceSize)
		}
		size = b.Dx()
	}

	c := &CubeMap{size: size, remap: true}
	for f, img := range faces {
		c.faces[f] = texture.MipChain(texture.ToRGBA(img))
	}
	return c, nil
}

// NewCaptureCube allocates a single-level cube of size x size faces for capture.
func NewCaptureCube(size int) (*CubeMap, error) {
	if size <= 0 {
		return nil, fmt.Errorf("capture size %d: %w", size, ErrFaceSize)
	}
	c := &CubeMap{size: size}
	for f := range c.faces {
		c.faces[f] = []*image.RGBA{image.NewRGBA(image.Rect(0, 0, size, size))}
	}
	return c, nil
}

// Size returns the face edge length in texels.
func (c *CubeMap) Size() int { return c.size }

// Levels returns the number of mip levels per face.
func (c *CubeMap) Levels() int { return len(c.faces[0]) }

// Remapped reports whether lookups go through RemapStatic.
func (c *CubeMap) Remapped() bool { return c.remap }

// Face returns the finest level of face f. Rows run from t = 0 to t = 1.
func (c *CubeMap) Face(f Face) *image.RGBA { return c.faces[f][0] }

// Level returns mip level l of face f.
func (c *CubeMap) Level(f Face, l int) *image.RGBA { return c.faces[f][l] }

// MaxLod returns log2 of the face size. Captured cubes report the same value
// even though lookups never leave level 0.
func (c *CubeMap) MaxLod() float32 { return MaxLodFor(c.size) }

// Kind implements Environment.
func (c *CubeMap) Kind() Kind { return KindCube }

// Sample implements Environment with trilinear filtering. lod is clamped to
// the available levels; -Inf and NaN select level 0.
func (c *CubeMap) Sample(dir mgl32.Vec3, lod float32) mgl32.Vec3 {
	if c.remap {
		dir = RemapStatic(dir)
	}
	f, s, t := FaceOf(dir)

	top := float32(c.Levels() - 1)
	if !(lod > 0) {
		lod = 0
	}
	if lod > top {
		lod = top
	}
	l0 := float32(math.Floor(float64(lod)))
	frac := lod - l0
	col := bilinear(c.faces[f][int(l0)], s, t, false)
	if frac == 0 {
		return col
	}
	next := bilinear(c.faces[f][int(l0)+1], s, t, false)
	return col.Mul(1 - frac).Add(next.Mul(frac))
}
