package software

import (
	"errors"
	"fmt"

	"github.com/Faultbox/envlight/internal/engine/envmap"
	"github.com/Faultbox/envlight/internal/engine/frame"
	"github.com/Faultbox/envlight/internal/engine/scene"
	"github.com/Faultbox/envlight/internal/engine/skybox"
	"github.com/Faultbox/envlight/pkg/geometry"
)

// ErrNoTarget is returned when a draw arrives with no bound render target.
var ErrNoTarget = errors.New("no render target bound")

// Backend renders frames on the CPU.
type Backend struct {
	static   envmap.Environment
	captured *envmap.CubeMap
	meshes   map[scene.ObjectKind]*geometry.Mesh

	screen    *Target
	capture   [envmap.FaceCount]*Target
	current   *Target
	capturing bool
}

// NewBackend creates a backend lighting meshes from static. captureSize > 0
// allocates a captured cube of that face size for the dynamic variant.
func NewBackend(static envmap.Environment, meshes map[scene.ObjectKind]*geometry.Mesh, captureSize int) (*Backend, error) {
	if static == nil {
		return nil, errors.New("static environment required")
	}
	b := &Backend{static: static, meshes: meshes}
	if captureSize > 0 {
		cube, err := envmap.NewCaptureCube(captureSize)
		if err != nil {
			return nil, err
		}
		b.captured = cube
		for f := range b.capture {
			b.capture[f] = wrapTarget(cube.Face(envmap.Face(f)))
		}
	}
	return b, nil
}

// Captured returns the captured cube, or nil without one.
func (b *Backend) Captured() *envmap.CubeMap { return b.captured }

// Screen returns the main target of the last frame.
func (b *Backend) Screen() *Target { return b.screen }

func (b *Backend) env(id frame.EnvID) (envmap.Environment, error) {
	switch id {
	case frame.EnvStatic:
		return b.static, nil
	case frame.EnvCaptured:
		if b.captured == nil {
			return nil, errors.New("backend has no captured environment")
		}
		return b.captured, nil
	default:
		return nil, fmt.Errorf("unknown environment %s", id)
	}
}

// MaxLod implements frame.Backend.
func (b *Backend) MaxLod(id frame.EnvID) float32 {
	env, err := b.env(id)
	if err != nil {
		return 0
	}
	return env.MaxLod()
}

// BeginCapture implements frame.Backend.
func (b *Backend) BeginCapture(face envmap.Face) error {
	if b.captured == nil {
		return errors.New("backend has no captured environment")
	}
	if !face.Valid() {
		return fmt.Errorf("invalid face %d", int(face))
	}
	b.current = b.capture[face]
	b.current.ClearDepth()
	b.capturing = true
	return nil
}

// EndCapture implements frame.Backend.
func (b *Backend) EndCapture(envmap.Face) error {
	b.current = nil
	b.capturing = false
	return nil
}

// BeginScreen implements frame.Backend.
func (b *Backend) BeginScreen(vp frame.Viewport) error {
	if b.screen == nil || b.screen.Width() != vp.Width || b.screen.Height() != vp.Height {
		b.screen = NewTarget(vp.Width, vp.Height)
	}
	b.current = b.screen
	b.current.ClearDepth()
	return nil
}

// DrawSkybox implements frame.Backend.
func (b *Backend) DrawSkybox(id frame.EnvID, pass skybox.Pass) error {
	if b.current == nil {
		return ErrNoTarget
	}
	env, err := b.env(id)
	if err != nil {
		return err
	}
	b.current.drawSkybox(pass, env)
	return nil
}

// DrawObject implements frame.Backend.
func (b *Backend) DrawObject(call frame.DrawCall) error {
	if b.current == nil {
		return ErrNoTarget
	}
	if err := call.Uniforms.Validate(); err != nil {
		return err
	}
	if call.Env == frame.EnvCaptured && b.capturing {
		return fmt.Errorf("sampling the cube being captured: %w", envmap.ErrCaptureIncomplete)
	}
	mesh, ok := b.meshes[call.Kind]
	if !ok {
		return fmt.Errorf("no mesh for %s", call.Kind)
	}
	env, err := b.env(call.Env)
	if err != nil {
		return err
	}
	b.current.drawMesh(mesh, &call.Uniforms, env)
	return nil
}

// EndFrame implements frame.Backend.
func (b *Backend) EndFrame() error {
	b.current = nil
	return nil
}
