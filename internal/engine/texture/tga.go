// Package texture decodes environment images and prepares them for sampling.
package texture

import (
	"errors"
	"fmt"
	"image"
)

// TGA image types.
const (
	TGATypeUncompressed = 2  // uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

// ErrUnsupportedTGA is returned for TGA variants the decoder does not handle.
var ErrUnsupportedTGA = errors.New("unsupported TGA")

const tgaHeaderSize = 18

type tgaHeader struct {
	idLength     int
	colorMapType byte
	imageType    byte
	width        int
	height       int
	bitsPerPixel int
	topToBottom  bool
}

func parseTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < tgaHeaderSize {
		return tgaHeader{}, fmt.Errorf("TGA data too short (%d bytes)", len(data))
	}
	h := tgaHeader{
		idLength:     int(data[0]),
		colorMapType: data[1],
		imageType:    data[2],
		width:        int(data[12]) | int(data[13])<<8,
		height:       int(data[14]) | int(data[15])<<8,
		bitsPerPixel: int(data[16]),
		topToBottom:  data[17]&0x20 != 0,
	}
	switch {
	case h.colorMapType != 0:
		return h, fmt.Errorf("color-mapped image: %w", ErrUnsupportedTGA)
	case h.imageType != TGATypeUncompressed && h.imageType != TGATypeRLE:
		return h, fmt.Errorf("image type %d: %w", h.imageType, ErrUnsupportedTGA)
	case h.bitsPerPixel != 24 && h.bitsPerPixel != 32:
		return h, fmt.Errorf("bit depth %d: %w", h.bitsPerPixel, ErrUnsupportedTGA)
	}
	return h, nil
}

// DecodeTGA decodes an uncompressed or RLE compressed 24/32-bit TGA image.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}
	offset := tgaHeaderSize + h.idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}

	img := image.NewRGBA(image.Rect(0, 0, h.width, h.height))
	w := &tgaWriter{img: img, header: h, bpp: h.bitsPerPixel / 8}
	src := data[offset:]

	if h.imageType == TGATypeUncompressed {
		if len(src) < h.width*h.height*w.bpp {
			return nil, fmt.Errorf("TGA pixel data truncated")
		}
		for len(src) >= w.bpp && !w.done() {
			w.put(src[:w.bpp])
			src = src[w.bpp:]
		}
		return img, nil
	}

	for len(src) > 0 && !w.done() {
		packet := src[0]
		src = src[1:]
		count := int(packet&0x7F) + 1
		if packet&0x80 != 0 {
			if len(src) < w.bpp {
				break
			}
			for i := 0; i < count && !w.done(); i++ {
				w.put(src[:w.bpp])
			}
			src = src[w.bpp:]
			continue
		}
		for i := 0; i < count && len(src) >= w.bpp && !w.done(); i++ {
			w.put(src[:w.bpp])
			src = src[w.bpp:]
		}
	}
	return img, nil
}

// tgaWriter stores BGR(A) pixels in file order, flipping bottom-up images.
type tgaWriter struct {
	img    *image.RGBA
	header tgaHeader
	bpp    int
	n      int
}

func (w *tgaWriter) done() bool {
	return w.n >= w.header.width*w.header.height
}

func (w *tgaWriter) put(px []byte) {
	x, y := w.n%w.header.width, w.n/w.header.width
	if !w.header.topToBottom {
		y = w.header.height - 1 - y
	}
	i := w.img.PixOffset(x, y)
	w.img.Pix[i+0] = px[2]
	w.img.Pix[i+1] = px[1]
	w.img.Pix[i+2] = px[0]
	w.img.Pix[i+3] = 255
	if w.bpp == 4 {
		w.img.Pix[i+3] = px[3]
	}
	w.n++
}
