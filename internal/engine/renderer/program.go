package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/envlight/internal/engine/envmap"
	"github.com/Faultbox/envlight/internal/engine/ibl"
	"github.com/Faultbox/envlight/internal/engine/renderer/shaders"
	"github.com/Faultbox/envlight/internal/engine/shader"
)

var models = []ibl.Model{ibl.Split, ibl.Mirror}

type litKey struct {
	env   envmap.Kind
	model ibl.Model
}

type program struct {
	id   uint32
	locs map[string]int32
}

func (p *program) loc(name string) int32 {
	if l, ok := p.locs[name]; ok {
		return l
	}
	return -1
}

func (p *program) destroy() {
	if p != nil && p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

func envDefines(k envmap.Kind) []string {
	if k == envmap.KindEquirect {
		return []string{"ENV_EQUIRECT"}
	}
	return []string{"ENV_CUBE"}
}

// skyboxUniforms lists the uniforms a skybox program must expose.
func skyboxUniforms(k envmap.Kind) []string {
	names := []string{"u_matrix", "u_scale", "u_env"}
	if k == envmap.KindCube {
		names = append(names, "u_remap")
	}
	return names
}

// litUniforms lists the uniforms a lighting program must expose. The GLSL
// compiler strips the ones a variant never reads.
func litUniforms(key litKey) []string {
	names := []string{"u_mvp", "u_model", "u_normalMat", "u_cameraPos", "u_albedo", "u_specularIntensity", "u_env"}
	if key.model == ibl.Split {
		names = append(names, "u_metallic", "u_roughness", "u_diffuseIntensity", "u_maxLod")
	}
	if key.env == envmap.KindCube {
		names = append(names, "u_remap")
	}
	return names
}

func litDefines(key litKey) []string {
	defs := envDefines(key.env)
	if key.model == ibl.Mirror {
		defs = append(defs, "MODEL_MIRROR")
	}
	return defs
}

func newSkyboxProgram(k envmap.Kind) (*program, error) {
	return link(shader.Source{
		Name:     "skybox/" + k.String(),
		Vertex:   shaders.SkyboxVertexShader,
		Fragment: shaders.SkyboxFragment(),
		Defines:  envDefines(k),
	}, skyboxUniforms(k))
}

func newLitProgram(key litKey) (*program, error) {
	return link(shader.Source{
		Name:     "ibl/" + key.env.String() + "/" + key.model.String(),
		Vertex:   shaders.IBLVertexShader,
		Fragment: shaders.IBLFragment(),
		Defines:  litDefines(key),
	}, litUniforms(key))
}

func link(src shader.Source, uniforms []string) (*program, error) {
	id, err := shader.Compile(src)
	if err != nil {
		return nil, err
	}
	locs, err := shader.Locations(id, uniforms...)
	if err != nil {
		gl.DeleteProgram(id)
		return nil, err
	}
	return &program{id: id, locs: locs}, nil
}

// setUniforms binds validated uniforms. Locations a variant does not use
// resolve to -1, which GL ignores.
func (p *program) setUniforms(u *ibl.Uniforms) {
	gl.UniformMatrix4fv(p.loc("u_mvp"), 1, false, &u.MVP[0])
	gl.UniformMatrix4fv(p.loc("u_model"), 1, false, &u.ModelMatrix[0])
	gl.UniformMatrix4fv(p.loc("u_normalMat"), 1, false, &u.NormalMat[0])
	gl.Uniform3f(p.loc("u_cameraPos"), u.CameraPos[0], u.CameraPos[1], u.CameraPos[2])

	m := u.Material
	gl.Uniform3f(p.loc("u_albedo"), m.Albedo[0], m.Albedo[1], m.Albedo[2])
	gl.Uniform1f(p.loc("u_metallic"), m.Metallic)
	gl.Uniform1f(p.loc("u_roughness"), m.Roughness)
	gl.Uniform1f(p.loc("u_diffuseIntensity"), u.Intensity.Diffuse)
	gl.Uniform1f(p.loc("u_specularIntensity"), u.Intensity.Specular)
	gl.Uniform1f(p.loc("u_maxLod"), u.MaxLod)
}
