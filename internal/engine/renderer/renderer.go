// Package renderer draws frames with OpenGL 4.1.
package renderer

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/envlight/internal/engine/envmap"
	"github.com/Faultbox/envlight/internal/engine/frame"
	"github.com/Faultbox/envlight/internal/engine/framebuffer"
	"github.com/Faultbox/envlight/internal/engine/scene"
	"github.com/Faultbox/envlight/internal/engine/skybox"
	"github.com/Faultbox/envlight/internal/logger"
	"github.com/Faultbox/envlight/pkg/geometry"
)

// ErrNoTarget is returned when a draw arrives with no bound render target.
var ErrNoTarget = errors.New("no render target bound")

// Config holds renderer configuration.
type Config struct {
	Static      envmap.Environment
	Meshes      map[scene.ObjectKind]*geometry.Mesh
	CaptureSize int
	// Target receives the main view. Nil renders to the default framebuffer.
	Target *framebuffer.Framebuffer
}

// Renderer implements frame.Backend on top of OpenGL.
// IMPORTANT: Must be created AFTER the OpenGL context is current.
type Renderer struct {
	static   envTexture
	captured *framebuffer.Cube
	meshes   map[scene.ObjectKind]*gpuMesh
	target   *framebuffer.Framebuffer
	quad     *gpuQuad

	skybox map[envmap.Kind]*program
	lit    map[litKey]*program

	bound     bool
	capturing bool
	viewport  frame.Viewport
}

// New initializes OpenGL and uploads every resource the frame needs.
func New(cfg Config) (*Renderer, error) {
	if cfg.Static == nil {
		return nil, errors.New("static environment required")
	}
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.TEXTURE_CUBE_MAP_SEAMLESS)

	r := &Renderer{
		target: cfg.Target,
		meshes: make(map[scene.ObjectKind]*gpuMesh, len(cfg.Meshes)),
		skybox: make(map[envmap.Kind]*program),
		lit:    make(map[litKey]*program),
	}
	if err := r.init(cfg); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

func (r *Renderer) init(cfg Config) error {
	var err error
	if r.static, err = uploadEnvironment(cfg.Static); err != nil {
		return fmt.Errorf("uploading environment: %w", err)
	}
	if cfg.CaptureSize > 0 {
		if r.captured, err = framebuffer.NewCube(int32(cfg.CaptureSize)); err != nil {
			return err
		}
	}

	for kind, m := range cfg.Meshes {
		gm, err := uploadMesh(m)
		if err != nil {
			return fmt.Errorf("uploading %s: %w", kind, err)
		}
		r.meshes[kind] = gm
	}
	r.quad = newQuad()

	kinds := []envmap.Kind{r.static.kind}
	if r.captured != nil && r.static.kind != envmap.KindCube {
		kinds = append(kinds, envmap.KindCube)
	}
	for _, k := range kinds {
		if r.skybox[k], err = newSkyboxProgram(k); err != nil {
			return err
		}
		for _, m := range models {
			key := litKey{env: k, model: m}
			if r.lit[key], err = newLitProgram(key); err != nil {
				return err
			}
		}
	}

	logger.Debug("renderer ready",
		zap.Stringer("environment", r.static.kind),
		zap.Int("meshes", len(r.meshes)),
		zap.Int("capture_size", cfg.CaptureSize),
	)
	return nil
}

// Close releases all GPU resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for _, p := range r.skybox {
		p.destroy()
	}
	for _, p := range r.lit {
		p.destroy()
	}
	for _, m := range r.meshes {
		m.destroy()
	}
	if r.quad != nil {
		r.quad.destroy()
	}
	if r.captured != nil {
		r.captured.Destroy()
	}
	r.static.destroy()
}

// SetTarget redirects the main view. Nil selects the default framebuffer.
func (r *Renderer) SetTarget(fb *framebuffer.Framebuffer) { r.target = fb }

// CaptureCube returns the dynamic capture target, or nil when the renderer
// was built without one.
func (r *Renderer) CaptureCube() *framebuffer.Cube { return r.captured }

// MaxLod implements frame.Backend.
func (r *Renderer) MaxLod(id frame.EnvID) float32 {
	switch id {
	case frame.EnvStatic:
		return r.static.maxLod
	case frame.EnvCaptured:
		if r.captured != nil {
			return envmap.MaxLodFor(int(r.captured.Size()))
		}
	}
	return 0
}

// BeginCapture implements frame.Backend.
func (r *Renderer) BeginCapture(face envmap.Face) error {
	if r.captured == nil {
		return errors.New("renderer has no captured environment")
	}
	if !face.Valid() {
		return fmt.Errorf("invalid face %d", int(face))
	}
	r.captured.BindFace(face)
	r.bound, r.capturing = true, true
	return checkError("begin capture " + face.String())
}

// EndCapture implements frame.Backend.
func (r *Renderer) EndCapture(face envmap.Face) error {
	r.bound, r.capturing = false, false
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return checkError("end capture " + face.String())
}

// BeginScreen implements frame.Backend.
func (r *Renderer) BeginScreen(vp frame.Viewport) error {
	if r.target != nil {
		r.target.Resize(int32(vp.Width), int32(vp.Height))
		r.target.Bind()
	} else {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.Viewport(0, 0, int32(vp.Width), int32(vp.Height))
	}
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.bound, r.viewport = true, vp
	return nil
}

// DrawSkybox implements frame.Backend.
func (r *Renderer) DrawSkybox(id frame.EnvID, pass skybox.Pass) error {
	if !r.bound {
		return ErrNoTarget
	}
	env, err := r.env(id)
	if err != nil {
		return err
	}
	p := r.skybox[env.kind]

	gl.DepthMask(false)
	gl.Disable(gl.DEPTH_TEST)
	gl.UseProgram(p.id)
	env.bind(p)
	gl.UniformMatrix4fv(p.loc("u_matrix"), 1, false, &pass.Matrix[0])
	gl.Uniform2f(p.loc("u_scale"), pass.Scale[0], pass.Scale[1])
	r.quad.draw()
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthMask(true)

	return checkError("skybox")
}

// DrawObject implements frame.Backend.
func (r *Renderer) DrawObject(call frame.DrawCall) error {
	if !r.bound {
		return ErrNoTarget
	}
	u := &call.Uniforms
	if err := u.Validate(); err != nil {
		return err
	}
	if call.Env == frame.EnvCaptured && r.capturing {
		return fmt.Errorf("sampling the cube being captured: %w", envmap.ErrCaptureIncomplete)
	}
	mesh, ok := r.meshes[call.Kind]
	if !ok {
		return fmt.Errorf("no mesh for %s", call.Kind)
	}
	env, err := r.env(call.Env)
	if err != nil {
		return err
	}
	p, ok := r.lit[litKey{env: env.kind, model: u.Model}]
	if !ok {
		return fmt.Errorf("no program for %s/%s", env.kind, u.Model)
	}

	gl.UseProgram(p.id)
	env.bind(p)
	p.setUniforms(u)
	mesh.draw()

	return checkError("draw " + call.Kind.String())
}

// EndFrame implements frame.Backend.
func (r *Renderer) EndFrame() error {
	r.bound = false
	gl.BindVertexArray(0)
	gl.UseProgram(0)
	if r.target != nil {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	}
	return checkError("end frame")
}

// ReadScreen returns the last main view as a top-down image.
func (r *Renderer) ReadScreen() *image.RGBA {
	if r.target != nil {
		return r.target.ReadImage()
	}
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	return framebuffer.ReadPixels(0, 0, int32(r.viewport.Width), int32(r.viewport.Height))
}

func (r *Renderer) env(id frame.EnvID) (envTexture, error) {
	switch id {
	case frame.EnvStatic:
		return r.static, nil
	case frame.EnvCaptured:
		if r.captured == nil {
			return envTexture{}, errors.New("renderer has no captured environment")
		}
		return envTexture{id: r.captured.Texture(), target: gl.TEXTURE_CUBE_MAP, kind: envmap.KindCube}, nil
	default:
		return envTexture{}, fmt.Errorf("unknown environment %s", id)
	}
}

func checkError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%s: GL error 0x%x", op, code)
	}
	return nil
}
