// Package ibl implements the image-based lighting model shared by the GPU
// shaders and the software renderer.
package ibl

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/envlight/internal/engine/envmap"
)

// DielectricF0 is the base reflectance of non-metals.
const DielectricF0 = 0.04

// Model selects the shading equation.
type Model int

const (
	// Split lights with a diffuse term from the coarsest mip and a
	// roughness-selected specular term.
	Split Model = iota
	// Mirror is a pure Fresnel-weighted reflection, used with equirect maps.
	Mirror
)

func (m Model) String() string {
	if m == Mirror {
		return "mirror"
	}
	return "split"
}

// Surface is a shaded point in world space.
type Surface struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
}

// MipLevel returns log2(roughness * 2^maxLod). It is -Inf at zero roughness,
// which samplers treat as level 0.
func MipLevel(roughness, maxLod float32) float32 {
	return float32(math.Log2(float64(roughness) * math.Exp2(float64(maxLod))))
}

// FresnelSchlick returns f0 + (1 - f0)(1 - cosTheta)^5, written so that
// cosTheta = 1 yields f0 and cosTheta = 0 yields 1 exactly.
func FresnelSchlick(f0, cosTheta float32) float32 {
	x := 1 - cosTheta
	k := x * x * x * x * x
	return f0*(1-k) + k
}

// FresnelSchlickRGB applies FresnelSchlick per channel.
func FresnelSchlickRGB(f0 mgl32.Vec3, cosTheta float32) mgl32.Vec3 {
	return mgl32.Vec3{
		FresnelSchlick(f0[0], cosTheta),
		FresnelSchlick(f0[1], cosTheta),
		FresnelSchlick(f0[2], cosTheta),
	}
}

// Reflect reflects incident direction i about normal n.
func Reflect(i, n mgl32.Vec3) mgl32.Vec3 {
	return i.Sub(n.Mul(2 * n.Dot(i)))
}

// Shade evaluates the lighting model for one surface point.
func Shade(env envmap.Environment, s Surface, u *Uniforms) mgl32.Vec3 {
	n := s.Normal.Normalize()
	viewDir := u.CameraPos.Sub(s.Position).Normalize()
	reflectDir := Reflect(viewDir.Mul(-1), n)
	cosTheta := mgl32.Clamp(n.Dot(reflectDir), 0, 1)
	m := u.Material

	if u.Model == Mirror {
		return shadeMirror(env, reflectDir, cosTheta, u)
	}

	diffuseColor := m.Albedo.Mul(1 - m.Metallic)
	f0 := lerp(mgl32.Vec3{DielectricF0, DielectricF0, DielectricF0}, m.Albedo, m.Metallic)

	diffuse := env.Sample(n, u.MaxLod).Mul(u.Intensity.Diffuse)
	specular := env.Sample(reflectDir, MipLevel(m.Roughness, u.MaxLod)).Mul(u.Intensity.Specular)

	return mulVec(diffuse, diffuseColor).Add(mulVec(FresnelSchlickRGB(f0, cosTheta), specular))
}

// shadeMirror is the specular-only model: the reflection weighted by a
// Fresnel term whose F0 is the albedo. Material metallic and roughness and
// the diffuse intensity are ignored.
func shadeMirror(env envmap.Environment, r mgl32.Vec3, cosTheta float32, u *Uniforms) mgl32.Vec3 {
	spec := env.Sample(r, 0).Mul(u.Intensity.Specular)
	return mulVec(FresnelSchlickRGB(u.Material.Albedo, cosTheta), spec)
}

func lerp(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

func mulVec(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}
