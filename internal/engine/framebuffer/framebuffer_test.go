package framebuffer

import (
	"image"
	"image/color"
	"testing"
)

func TestFlipRows(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	for y := 0; y < 3; y++ {
		img.SetRGBA(0, y, color.RGBA{uint8(y), 0, 0, 255})
	}
	FlipRows(img)
	for y := 0; y < 3; y++ {
		if got := img.RGBAAt(0, y).R; got != uint8(2-y) {
			t.Errorf("row %d: got %d, want %d", y, got, 2-y)
		}
	}
}
