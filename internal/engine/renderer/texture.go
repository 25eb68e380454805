package renderer

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/envlight/internal/engine/envmap"
	"github.com/Faultbox/envlight/internal/engine/framebuffer"
)

// envTexture is an environment resident on the GPU.
type envTexture struct {
	id     uint32
	target uint32
	kind   envmap.Kind
	remap  bool
	maxLod float32
}

func uploadEnvironment(env envmap.Environment) (envTexture, error) {
	switch e := env.(type) {
	case *envmap.CubeMap:
		return uploadCube(e), nil
	case *envmap.Equirect:
		return uploadEquirect(e.Image()), nil
	default:
		return envTexture{}, fmt.Errorf("unsupported environment %T", env)
	}
}

// uploadCube uploads every precomputed mip level so GPU and CPU sampling
// read the same texels.
func uploadCube(c *envmap.CubeMap) envTexture {
	t := envTexture{target: gl.TEXTURE_CUBE_MAP, kind: envmap.KindCube, remap: c.Remapped(), maxLod: c.MaxLod()}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	for f := 0; f < envmap.FaceCount; f++ {
		for l := 0; l < c.Levels(); l++ {
			texImage(framebuffer.FaceTarget(envmap.Face(f)), int32(l), c.Level(envmap.Face(f), l))
		}
	}
	minFilter := int32(gl.LINEAR_MIPMAP_LINEAR)
	if c.Levels() == 1 {
		minFilter = gl.LINEAR
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAX_LEVEL, int32(c.Levels()-1))
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return t
}

func uploadEquirect(img *image.RGBA) envTexture {
	t := envTexture{target: gl.TEXTURE_2D, kind: envmap.KindEquirect}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	texImage(gl.TEXTURE_2D, 0, img)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t
}

func texImage(target uint32, level int32, img *image.RGBA) {
	b := img.Bounds()
	gl.TexImage2D(target, level, gl.RGBA8, int32(b.Dx()), int32(b.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
}

// bind attaches the texture to unit 0 for p.
func (t envTexture) bind(p *program) {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(t.target, t.id)
	gl.Uniform1i(p.loc("u_env"), 0)
	if t.remap {
		gl.Uniform1i(p.loc("u_remap"), 1)
	} else {
		gl.Uniform1i(p.loc("u_remap"), 0)
	}
}

func (t *envTexture) destroy() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}
