package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/envlight/internal/engine/frame"
	"github.com/Faultbox/envlight/internal/logger"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		bad("window size %dx%d", c.Window.Width, c.Window.Height)
	}

	variant, err := frame.ParseVariant(c.Scene.Variant)
	if err != nil {
		bad("scene.variant: %v", err)
	}
	s := c.Scene
	if !(s.CameraVFov > 0 && s.CameraVFov < 180) {
		bad("scene.camera_vfov %v outside (0, 180)", s.CameraVFov)
	}
	if !(s.Near > 0 && s.Far > s.Near) {
		bad("scene depth range %v..%v", s.Near, s.Far)
	}
	if !(s.CameraRadius > 0) {
		bad("scene.camera_radius %v", s.CameraRadius)
	}
	if variant == frame.Dynamic && s.CaptureSize <= 0 {
		bad("scene.capture_size %d", s.CaptureSize)
	}

	m := c.Meshes
	if !(m.Sphere.Radius > 0) || m.Sphere.ThetaSegments < 2 || m.Sphere.PhiSegments < 1 {
		bad("meshes.sphere %+v", m.Sphere)
	}
	if !(m.Torus.Radius > 0) || !(m.Torus.Tube > 0) || m.Torus.RadialSegments < 1 || m.Torus.TubularSegments < 1 {
		bad("meshes.torus %+v", m.Torus)
	}
	b := m.Box
	if !(b.Width > 0 && b.Height > 0 && b.Depth > 0) || b.WidthSegments < 1 || b.HeightSegments < 1 || b.DepthSegments < 1 {
		bad("meshes.box %+v", b)
	}

	for name, mat := range map[string]MaterialConfig{"sphere": c.Materials.Sphere, "torus": c.Materials.Torus, "box": c.Materials.Box} {
		for _, ch := range mat.Albedo {
			if ch < 0 || ch > 255 {
				bad("materials.%s.albedo %v outside 0..255", name, mat.Albedo)
				break
			}
		}
		if mat.Metallic < 0 || mat.Metallic > 1 || mat.Roughness < 0 || mat.Roughness > 1 {
			bad("materials.%s metallic/roughness outside 0..1", name)
		}
	}
	if c.Materials.DiffuseIntensity < 0 || c.Materials.SpecularIntensity < 0 {
		bad("negative light intensity")
	}

	if variant == frame.LatLong {
		if c.Assets.Equirect == "" {
			bad("assets.equirect is required for the latlong variant")
		}
	} else {
		for face, p := range c.FaceFiles() {
			if p == "" {
				bad("assets.cube_faces: face %d has no path", face)
			}
		}
	}
	if c.Assets.Timeout < 0 {
		bad("assets.timeout %v", c.Assets.Timeout)
	}
	if c.Render.MaxFrameErrors < 1 {
		bad("render.max_frame_errors %d", c.Render.MaxFrameErrors)
	}
	if c.Render.SoftwareWidth <= 0 || c.Render.SoftwareHeight <= 0 {
		bad("render software size %dx%d", c.Render.SoftwareWidth, c.Render.SoftwareHeight)
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		bad("logging.level: %v", err)
	}

	return errors.Join(errs...)
}
