package ibl

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidUniforms is returned by Validate.
var ErrInvalidUniforms = errors.New("invalid shading uniforms")

// Material is the per-object part of the shading parameters.
type Material struct {
	Albedo    mgl32.Vec3 // linear RGB in [0, 1]
	Metallic  float32
	Roughness float32
}

// MaterialFromRGB8 builds a material from a 0-255 albedo.
func MaterialFromRGB8(rgb [3]float32, metallic, roughness float32) Material {
	return Material{
		Albedo:    mgl32.Vec3{rgb[0] / 255, rgb[1] / 255, rgb[2] / 255},
		Metallic:  metallic,
		Roughness: roughness,
	}
}

// Intensity holds the global light scales shared by all objects.
type Intensity struct {
	Diffuse  float32
	Specular float32
}

// Uniforms is everything one lit draw needs, resolved on the CPU.
type Uniforms struct {
	Model       Model
	ModelMatrix mgl32.Mat4
	NormalMat   mgl32.Mat4
	MVP         mgl32.Mat4
	CameraPos   mgl32.Vec3
	Material    Material
	Intensity   Intensity
	MaxLod      float32
}

// Validate checks ranges before the uniforms are bound.
func (u *Uniforms) Validate() error {
	m := u.Material
	if !finiteVec(m.Albedo) || !inUnit(m.Albedo[0]) || !inUnit(m.Albedo[1]) || !inUnit(m.Albedo[2]) {
		return fmt.Errorf("albedo %v outside [0,1]: %w", m.Albedo, ErrInvalidUniforms)
	}
	if !inUnit(m.Metallic) {
		return fmt.Errorf("metallic %v outside [0,1]: %w", m.Metallic, ErrInvalidUniforms)
	}
	if !inUnit(m.Roughness) {
		return fmt.Errorf("roughness %v outside [0,1]: %w", m.Roughness, ErrInvalidUniforms)
	}
	if !finite(u.Intensity.Diffuse) || !finite(u.Intensity.Specular) || u.Intensity.Diffuse < 0 || u.Intensity.Specular < 0 {
		return fmt.Errorf("intensity %+v: %w", u.Intensity, ErrInvalidUniforms)
	}
	if !finite(u.MaxLod) || u.MaxLod < 0 {
		return fmt.Errorf("max lod %v: %w", u.MaxLod, ErrInvalidUniforms)
	}
	if !finiteVec(u.CameraPos) {
		return fmt.Errorf("camera position %v: %w", u.CameraPos, ErrInvalidUniforms)
	}
	if u.Model != Split && u.Model != Mirror {
		return fmt.Errorf("shading model %d: %w", int(u.Model), ErrInvalidUniforms)
	}
	return nil
}

func inUnit(v float32) bool { return v >= 0 && v <= 1 }

func finite(v float32) bool {
	return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
}

func finiteVec(v mgl32.Vec3) bool {
	return finite(v[0]) && finite(v[1]) && finite(v[2])
}
