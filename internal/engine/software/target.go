// Package software is a CPU implementation of the frame backend. It
// rasterizes the same draws the GPU renderer issues, which makes it usable
// headless and in tests.
package software

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Target is a color buffer with a depth buffer. Row 0 is the bottom of the
// viewport, as in a GL framebuffer.
type Target struct {
	Color *image.RGBA
	Depth []float32
}

// NewTarget allocates a target of the given size.
func NewTarget(width, height int) *Target {
	return wrapTarget(image.NewRGBA(image.Rect(0, 0, width, height)))
}

func wrapTarget(img *image.RGBA) *Target {
	b := img.Bounds()
	return &Target{Color: img, Depth: make([]float32, b.Dx()*b.Dy())}
}

// Width returns the target width in pixels.
func (t *Target) Width() int { return t.Color.Bounds().Dx() }

// Height returns the target height in pixels.
func (t *Target) Height() int { return t.Color.Bounds().Dy() }

// ClearDepth resets every depth sample to the far plane.
func (t *Target) ClearDepth() {
	n := len(t.Depth)
	if n == 0 {
		return
	}
	t.Depth[0] = float32(math.Inf(1))
	for i := 1; i < n; i *= 2 {
		copy(t.Depth[i:], t.Depth[:i])
	}
}

// set writes a linear color, clamped to [0, 1], at (x, y).
func (t *Target) set(x, y int, c mgl32.Vec3) {
	i := t.Color.PixOffset(x, y)
	p := t.Color.Pix[i : i+4 : i+4]
	p[0] = toByte(c[0])
	p[1] = toByte(c[1])
	p[2] = toByte(c[2])
	p[3] = 255
}

// Image returns a top-down copy of the color buffer.
func (t *Target) Image() *image.RGBA {
	w, h := t.Width(), t.Height()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := t.Color.Pix[(h-1-y)*t.Color.Stride:][:4*w]
		copy(out.Pix[y*out.Stride:], src)
	}
	return out
}

func toByte(v float32) uint8 {
	switch {
	case !(v > 0):
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}
