package envmap

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// bilinear samples img at normalized coordinates with texel centers at
// half-integers. Out-of-range texels clamp to the edge, or wrap horizontally
// when wrapX is set.
func bilinear(img *image.RGBA, s, t float32, wrapX bool) mgl32.Vec3 {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	u := float64(s)*float64(w) - 0.5
	v := float64(t)*float64(h) - 0.5
	x0, y0 := math.Floor(u), math.Floor(v)
	fx, fy := float32(u-x0), float32(v-y0)
	ix, iy := int(x0), int(y0)

	col := func(x int) int {
		if wrapX {
			return ((x % w) + w) % w
		}
		return clampInt(x, 0, w-1)
	}
	row := func(y int) int { return clampInt(y, 0, h-1) }

	c00 := texel(img, col(ix), row(iy))
	c10 := texel(img, col(ix+1), row(iy))
	c01 := texel(img, col(ix), row(iy+1))
	c11 := texel(img, col(ix+1), row(iy+1))

	top := c00.Mul(1 - fx).Add(c10.Mul(fx))
	bottom := c01.Mul(1 - fx).Add(c11.Mul(fx))
	return top.Mul(1 - fy).Add(bottom.Mul(fy))
}

func texel(img *image.RGBA, x, y int) mgl32.Vec3 {
	i := y*img.Stride + 4*x
	p := img.Pix[i : i+3 : i+3]
	return mgl32.Vec3{float32(p[0]) / 255, float32(p[1]) / 255, float32(p[2]) / 255}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
