package frame

import (
	"fmt"

	"github.com/Faultbox/envlight/internal/engine/envmap"
	"github.com/Faultbox/envlight/internal/engine/ibl"
	"github.com/Faultbox/envlight/internal/engine/scene"
	"github.com/Faultbox/envlight/internal/engine/skybox"
)

// EnvID names an environment owned by a backend.
type EnvID int

const (
	// EnvStatic is the environment loaded from images.
	EnvStatic EnvID = iota
	// EnvCaptured is the cube rewritten by the capture pass each frame.
	EnvCaptured
)

func (e EnvID) String() string {
	switch e {
	case EnvStatic:
		return "static"
	case EnvCaptured:
		return "captured"
	default:
		return fmt.Sprintf("EnvID(%d)", int(e))
	}
}

// Viewport is the size of the main render target in pixels.
type Viewport struct {
	Width, Height int
}

// Aspect returns width / height.
func (v Viewport) Aspect() float32 {
	return float32(v.Width) / float32(v.Height)
}

// DrawCall is one lit mesh draw.
type DrawCall struct {
	Kind     scene.ObjectKind
	Env      EnvID
	Uniforms ibl.Uniforms
}

// Backend executes draws. Implementations validate uniforms when binding them.
type Backend interface {
	// MaxLod returns the coarsest mip level shading may request from env.
	MaxLod(env EnvID) float32

	// BeginCapture binds face of the captured cube as the render target and clears depth.
	BeginCapture(face envmap.Face) error
	// EndCapture reports the face as fully written.
	EndCapture(face envmap.Face) error

	// BeginScreen binds the main target and clears depth.
	BeginScreen(vp Viewport) error
	DrawSkybox(env EnvID, pass skybox.Pass) error
	DrawObject(call DrawCall) error
	EndFrame() error
}
