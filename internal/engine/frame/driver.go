// Package frame orchestrates one rendered frame: the optional environment
// capture, the skybox and the lit objects.
package frame

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/envlight/internal/engine/camera"
	"github.com/Faultbox/envlight/internal/engine/envmap"
	"github.com/Faultbox/envlight/internal/engine/ibl"
	"github.com/Faultbox/envlight/internal/engine/scene"
	"github.com/Faultbox/envlight/internal/engine/skybox"
)

// Variant selects the environment source.
type Variant int

const (
	// Cubemap lights everything from six static face images.
	Cubemap Variant = iota
	// LatLong lights everything from one equirectangular image with mirror shading.
	LatLong
	// Dynamic re-captures the scene into a cube every frame for the sphere.
	Dynamic
)

var variantNames = map[Variant]string{Cubemap: "cubemap", LatLong: "latlong", Dynamic: "dynamic"}

func (v Variant) String() string {
	if s, ok := variantNames[v]; ok {
		return s
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// ParseVariant parses a variant name.
func ParseVariant(s string) (Variant, error) {
	for v, name := range variantNames {
		if strings.EqualFold(s, name) {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown variant %q (want cubemap, latlong or dynamic)", s)
}

// ShadingModel returns the lighting model used by the variant.
func (v Variant) ShadingModel() ibl.Model {
	if v == LatLong {
		return ibl.Mirror
	}
	return ibl.Split
}

// Parameters are the live shading controls.
type Parameters struct {
	Materials [3]ibl.Material // indexed by scene.ObjectKind
	Intensity ibl.Intensity
}

// Material returns the material of an object kind.
func (p *Parameters) Material(k scene.ObjectKind) ibl.Material {
	return p.Materials[k]
}

// ErrBadViewport is returned for zero or negative viewport sizes.
var ErrBadViewport = errors.New("viewport must have positive size")

// Driver renders frames through a Backend.
type Driver struct {
	backend Backend
	variant Variant
	lens    camera.Lens
	capture envmap.CaptureTracker
}

// NewDriver creates a driver for the given variant.
func NewDriver(b Backend, v Variant, lens camera.Lens) *Driver {
	return &Driver{backend: b, variant: v, lens: lens}
}

// Variant returns the driver's variant.
func (d *Driver) Variant() Variant { return d.variant }

// CheckCaptureReadable fails unless the current frame's capture is complete.
func (d *Driver) CheckCaptureReadable() error {
	return d.capture.CheckReadable()
}

// Frame renders state. In the dynamic variant all six capture faces are
// written before anything samples the captured cube.
func (d *Driver) Frame(state scene.State, params Parameters, vp Viewport) error {
	if vp.Width <= 0 || vp.Height <= 0 {
		return fmt.Errorf("%dx%d: %w", vp.Width, vp.Height, ErrBadViewport)
	}

	if d.variant == Dynamic {
		if err := d.captureEnvironment(state, &params); err != nil {
			return fmt.Errorf("capture: %w", err)
		}
	}

	if err := d.backend.BeginScreen(vp); err != nil {
		return fmt.Errorf("begin screen: %w", err)
	}
	aspect := vp.Aspect()
	if err := d.backend.DrawSkybox(EnvStatic, skybox.ScreenPass(state.Camera, d.lens.VFov, aspect)); err != nil {
		return fmt.Errorf("skybox: %w", err)
	}

	viewProj := d.lens.Projection(aspect).Mul4(camera.View(state.Camera))
	for _, obj := range state.Objects {
		env := EnvStatic
		if d.variant == Dynamic && obj.ReceivesCapture {
			if err := d.capture.CheckReadable(); err != nil {
				return fmt.Errorf("%s: %w", obj.Kind, err)
			}
			env = EnvCaptured
		}
		if err := d.drawObject(obj, env, viewProj, state.Camera, &params); err != nil {
			return err
		}
	}

	if err := d.backend.EndFrame(); err != nil {
		return fmt.Errorf("end frame: %w", err)
	}
	return nil
}

func (d *Driver) captureEnvironment(state scene.State, params *Parameters) error {
	d.capture.Begin()
	proj := envmap.CaptureProjection(d.lens.Near, d.lens.Far)

	for _, face := range envmap.CaptureOrder {
		if err := d.backend.BeginCapture(face); err != nil {
			return fmt.Errorf("face %s: %w", face, err)
		}
		if err := d.backend.DrawSkybox(EnvStatic, skybox.FacePass(face)); err != nil {
			return fmt.Errorf("face %s skybox: %w", face, err)
		}
		viewProj := proj.Mul4(face.View())
		for _, obj := range state.Objects {
			if !obj.CapturedInto() {
				continue
			}
			if err := d.drawObject(obj, EnvStatic, viewProj, state.Camera, params); err != nil {
				return fmt.Errorf("face %s: %w", face, err)
			}
		}
		if err := d.backend.EndCapture(face); err != nil {
			return fmt.Errorf("face %s: %w", face, err)
		}
		if err := d.capture.MarkWritten(face); err != nil {
			return err
		}
	}
	return d.capture.Finish()
}

// drawObject issues one lit draw. The eye position stays the main camera's
// even inside the capture pass.
func (d *Driver) drawObject(obj scene.Object, env EnvID, viewProj mgl32.Mat4, eye mgl32.Vec3, params *Parameters) error {
	model := obj.Transform.ModelMatrix()
	call := DrawCall{
		Kind: obj.Kind,
		Env:  env,
		Uniforms: ibl.Uniforms{
			Model:       d.variant.ShadingModel(),
			ModelMatrix: model,
			NormalMat:   obj.Transform.NormalMatrix(),
			MVP:         viewProj.Mul4(model),
			CameraPos:   eye,
			Material:    params.Material(obj.Kind),
			Intensity:   params.Intensity,
			MaxLod:      d.backend.MaxLod(env),
		},
	}
	if err := d.backend.DrawObject(call); err != nil {
		return fmt.Errorf("draw %s: %w", obj.Kind, err)
	}
	return nil
}
