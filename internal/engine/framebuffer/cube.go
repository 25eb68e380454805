package framebuffer

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/envlight/internal/engine/envmap"
)

// Cube renders into the six faces of a cube map texture, one face at a time,
// sharing a single depth buffer.
type Cube struct {
	fbo      uint32
	texture  uint32
	depthRBO uint32
	size     int32
}

// NewCube allocates a size x size RGBA cube map with a bilinear, single
// level filter and an attached depth buffer.
func NewCube(size int32) (*Cube, error) {
	if size < 1 {
		return nil, fmt.Errorf("cube face size %d", size)
	}
	c := &Cube{size: size}

	gl.GenTextures(1, &c.texture)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, c.texture)
	for f := 0; f < envmap.FaceCount; f++ {
		gl.TexImage2D(FaceTarget(envmap.Face(f)), 0, gl.RGBA8, size, size, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAX_LEVEL, 0)

	gl.GenFramebuffers(1, &c.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, c.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, FaceTarget(envmap.PositiveX), c.texture, 0)
	c.depthRBO = attachDepth(size, size)

	if err := checkComplete(); err != nil {
		c.Destroy()
		return nil, fmt.Errorf("creating cube framebuffer: %w", err)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return c, nil
}

// FaceTarget maps a face to its GL texture target.
func FaceTarget(f envmap.Face) uint32 {
	return gl.TEXTURE_CUBE_MAP_POSITIVE_X + uint32(f)
}

// BindFace attaches face f as the color target, sets the viewport and
// clears color and depth.
func (c *Cube) BindFace(f envmap.Face) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, c.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, FaceTarget(f), c.texture, 0)
	gl.Viewport(0, 0, c.size, c.size)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Texture returns the cube map texture ID.
func (c *Cube) Texture() uint32 { return c.texture }

// Size returns the face edge length in pixels.
func (c *Cube) Size() int32 { return c.size }

// Face reads back the base level of face f. Row 0 holds t = 0, matching
// how face images are uploaded.
func (c *Cube) Face(f envmap.Face) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(c.size), int(c.size)))
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, c.texture)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.GetTexImage(FaceTarget(f), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return img
}

// Destroy releases all OpenGL resources.
func (c *Cube) Destroy() {
	if c.fbo != 0 {
		gl.DeleteFramebuffers(1, &c.fbo)
		c.fbo = 0
	}
	if c.texture != 0 {
		gl.DeleteTextures(1, &c.texture)
		c.texture = 0
	}
	if c.depthRBO != 0 {
		gl.DeleteRenderbuffers(1, &c.depthRBO)
		c.depthRBO = 0
	}
}
