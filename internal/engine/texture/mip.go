package texture

import (
	"image"

	"golang.org/x/image/draw"
)

// MipChain returns img followed by successively halved levels down to 1x1,
// each filtered from the previous one.
func MipChain(img *image.RGBA) []*image.RGBA {
	levels := []*image.RGBA{img}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	for w > 1 || h > 1 {
		w, h = max(1, w/2), max(1, h/2)
		prev := levels[len(levels)-1]
		next := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.BiLinear.Scale(next, next.Bounds(), prev, prev.Bounds(), draw.Src, nil)
		levels = append(levels, next)
	}
	return levels
}

// LevelCount returns the number of mip levels MipChain produces for a size.
func LevelCount(size int) int {
	n := 1
	for size > 1 {
		size /= 2
		n++
	}
	return n
}
