// Package config handles viewer configuration loading and management.
package config

import (
	"time"

	"github.com/Faultbox/envlight/internal/engine/camera"
	"github.com/Faultbox/envlight/internal/engine/envmap"
	"github.com/Faultbox/envlight/internal/engine/frame"
	"github.com/Faultbox/envlight/internal/engine/ibl"
	"github.com/Faultbox/envlight/internal/engine/scene"
)

// Config holds all viewer settings.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Scene     SceneConfig     `yaml:"scene"`
	Meshes    MeshConfig      `yaml:"meshes"`
	Materials MaterialsConfig `yaml:"materials"`
	Assets    AssetsConfig    `yaml:"assets"`
	Render    RenderConfig    `yaml:"render"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	Samples    int    `yaml:"samples"`
	Font       string `yaml:"font"`
}

// SceneConfig selects the environment variant and the camera.
type SceneConfig struct {
	Variant      string  `yaml:"variant"` // cubemap, latlong or dynamic
	CameraVFov   float32 `yaml:"camera_vfov"`
	Near         float32 `yaml:"near"`
	Far          float32 `yaml:"far"`
	CameraRadius float32 `yaml:"camera_radius"`
	CaptureSize  int     `yaml:"capture_size"`
}

// SphereConfig sizes the sphere mesh.
type SphereConfig struct {
	Radius        float64 `yaml:"radius"`
	ThetaSegments int     `yaml:"theta_segments"`
	PhiSegments   int     `yaml:"phi_segments"`
}

// TorusConfig sizes the torus mesh.
type TorusConfig struct {
	Radius          float64 `yaml:"radius"`
	Tube            float64 `yaml:"tube"`
	RadialSegments  int     `yaml:"radial_segments"`
	TubularSegments int     `yaml:"tubular_segments"`
}

// BoxConfig sizes the box mesh.
type BoxConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Depth          float64 `yaml:"depth"`
	WidthSegments  int     `yaml:"width_segments"`
	HeightSegments int     `yaml:"height_segments"`
	DepthSegments  int     `yaml:"depth_segments"`
}

// MeshConfig holds the procedural mesh parameters.
type MeshConfig struct {
	Sphere SphereConfig `yaml:"sphere"`
	Torus  TorusConfig  `yaml:"torus"`
	Box    BoxConfig    `yaml:"box"`
}

// MaterialConfig is one object's material with albedo on a 0-255 scale.
type MaterialConfig struct {
	Albedo    [3]float32 `yaml:"albedo,flow"`
	Metallic  float32    `yaml:"metallic"`
	Roughness float32    `yaml:"roughness"`
}

// MaterialsConfig holds the initial panel values.
type MaterialsConfig struct {
	Sphere            MaterialConfig `yaml:"sphere"`
	Torus             MaterialConfig `yaml:"torus"`
	Box               MaterialConfig `yaml:"box"`
	DiffuseIntensity  float32        `yaml:"diffuse_intensity"`
	SpecularIntensity float32        `yaml:"specular_intensity"`
}

// FacePaths names the six cube face images.
type FacePaths struct {
	PX string `yaml:"px"`
	NX string `yaml:"nx"`
	PY string `yaml:"py"`
	NY string `yaml:"ny"`
	PZ string `yaml:"pz"`
	NZ string `yaml:"nz"`
}

// AssetsConfig locates the environment images.
type AssetsConfig struct {
	Root      string    `yaml:"root"`
	CubeFaces FacePaths `yaml:"cube_faces"`
	Equirect  string    `yaml:"equirect"`
	// Timeout bounds the whole load. Zero waits forever.
	Timeout time.Duration `yaml:"timeout"`
	Workers int           `yaml:"workers"`
}

// RenderConfig holds frame loop and output settings.
type RenderConfig struct {
	MaxFrameErrors int    `yaml:"max_frame_errors"`
	ShowFPS        bool   `yaml:"show_fps"`
	ScreenshotDir  string `yaml:"screenshot_dir"`
	SoftwareWidth  int    `yaml:"software_width"`
	SoftwareHeight int    `yaml:"software_height"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns the configuration of the cubemap variant.
func Default() *Config {
	return DefaultFor(frame.Cubemap)
}

// DefaultFor returns defaults with the materials of variant v.
func DefaultFor(v frame.Variant) *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "envlight",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Scene: SceneConfig{
			Variant:      v.String(),
			CameraVFov:   60,
			Near:         0.01,
			Far:          1000,
			CameraRadius: 30,
			CaptureSize:  512,
		},
		Meshes: MeshConfig{
			Sphere: SphereConfig{Radius: 5, ThetaSegments: 16, PhiSegments: 32},
			Torus:  TorusConfig{Radius: 5, Tube: 2, RadialSegments: 32, TubularSegments: 16},
			Box:    BoxConfig{Width: 10, Height: 10, Depth: 10, WidthSegments: 10, HeightSegments: 10, DepthSegments: 10},
		},
		Materials: DefaultMaterials(v),
		Assets: AssetsConfig{
			Root: "assets",
			CubeFaces: FacePaths{
				PX: "cube/px.png", NX: "cube/nx.png",
				PY: "cube/py.png", NY: "cube/ny.png",
				PZ: "cube/pz.png", NZ: "cube/nz.png",
			},
			Equirect: "latlong.jpg",
			Workers:  6,
		},
		Render: RenderConfig{
			MaxFrameErrors: 30,
			ShowFPS:        true,
			ScreenshotDir:  "screenshots",
			SoftwareWidth:  640,
			SoftwareHeight: 360,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// DefaultMaterials returns the initial panel values of a variant. The
// static cube shows three white mirrors; the dynamic scene pairs a mirror
// sphere with a rough blue box and a rough red torus.
func DefaultMaterials(v frame.Variant) MaterialsConfig {
	mirror := MaterialConfig{Albedo: [3]float32{255, 255, 255}, Metallic: 1, Roughness: 0}
	m := MaterialsConfig{
		Sphere:            mirror,
		Torus:             mirror,
		Box:               mirror,
		DiffuseIntensity:  1,
		SpecularIntensity: 1,
	}
	if v == frame.Dynamic {
		m.Box = MaterialConfig{Albedo: [3]float32{0, 0, 255}, Metallic: 0, Roughness: 1}
		m.Torus = MaterialConfig{Albedo: [3]float32{255, 0, 0}, Metallic: 0, Roughness: 1}
	}
	return m
}

// Variant returns the parsed variant. Call Validate first.
func (c *Config) Variant() frame.Variant {
	v, _ := frame.ParseVariant(c.Scene.Variant)
	return v
}

// Lens returns the main camera projection settings.
func (c *Config) Lens() camera.Lens {
	return camera.Lens{VFov: c.Scene.CameraVFov, Near: c.Scene.Near, Far: c.Scene.Far}
}

// Parameters converts the materials to the shading parameters.
func (c *Config) Parameters() frame.Parameters {
	var p frame.Parameters
	for kind, m := range map[scene.ObjectKind]MaterialConfig{
		scene.Sphere: c.Materials.Sphere,
		scene.Torus:  c.Materials.Torus,
		scene.Box:    c.Materials.Box,
	} {
		p.Materials[kind] = ibl.MaterialFromRGB8(m.Albedo, m.Metallic, m.Roughness)
	}
	p.Intensity = ibl.Intensity{Diffuse: c.Materials.DiffuseIntensity, Specular: c.Materials.SpecularIntensity}
	return p
}

// FaceFiles returns the cube face names, indexed by envmap.Face. Relative
// names resolve against Assets.Root.
func (c *Config) FaceFiles() [envmap.FaceCount]string {
	f := c.Assets.CubeFaces
	var out [envmap.FaceCount]string
	out[envmap.PositiveX], out[envmap.NegativeX] = f.PX, f.NX
	out[envmap.PositiveY], out[envmap.NegativeY] = f.PY, f.NY
	out[envmap.PositiveZ], out[envmap.NegativeZ] = f.PZ, f.NZ
	return out
}
