// Package shaders provides embedded GLSL shader sources.
package shaders

import (
	_ "embed"
	"strings"
)

// SkyboxVertexShader is the vertex shader for the full-screen background.
//
//go:embed skybox.vert
var SkyboxVertexShader string

// SkyboxFragmentShader is the fragment shader for the full-screen background.
//
//go:embed skybox.frag
var SkyboxFragmentShader string

// IBLVertexShader is the vertex shader for environment-lit meshes.
//
//go:embed ibl.vert
var IBLVertexShader string

// IBLFragmentShader is the fragment shader for environment-lit meshes.
//
//go:embed ibl.frag
var IBLFragmentShader string

//go:embed env.glsl
var envLookup string

// SkyboxFragment returns the skybox fragment source with the environment
// lookup helpers spliced in.
func SkyboxFragment() string { return splice(SkyboxFragmentShader) }

// IBLFragment returns the lighting fragment source with the environment
// lookup helpers spliced in.
func IBLFragment() string { return splice(IBLFragmentShader) }

const includeMarker = "// @env\n"

func splice(src string) string {
	return strings.Replace(src, includeMarker, envLookup, 1)
}
