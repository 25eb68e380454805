package envmap

import (
	"errors"
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Equirect is a latitude-longitude environment stored in one image. The top
// row looks straight up and the image wraps horizontally.
type Equirect struct {
	img *image.RGBA
}

// NewEquirect wraps img as an environment.
func NewEquirect(img *image.RGBA) (*Equirect, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, errors.New("equirect image is empty")
	}
	return &Equirect{img: img}, nil
}

// Image returns the backing image.
func (e *Equirect) Image() *image.RGBA { return e.img }

// EquirectUV maps a unit direction to image coordinates in [0, 1].
func EquirectUV(dir mgl32.Vec3) (s, t float32) {
	phi := math.Atan2(float64(dir[2]), float64(dir[0]))
	theta := math.Acos(math.Max(-1, math.Min(1, float64(dir[1]))))
	return float32(1 - (phi+math.Pi)/(2*math.Pi)), float32(theta / math.Pi)
}

// Sample implements Environment. The map has no mip chain, so lod is ignored.
func (e *Equirect) Sample(dir mgl32.Vec3, _ float32) mgl32.Vec3 {
	s, t := EquirectUV(dir.Normalize())
	return bilinear(e.img, s, t, true)
}

// MaxLod implements Environment.
func (e *Equirect) MaxLod() float32 { return 0 }

// Kind implements Environment.
func (e *Equirect) Kind() Kind { return KindEquirect }
