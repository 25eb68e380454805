package renderer

import (
	"slices"
	"testing"

	"github.com/Faultbox/envlight/internal/engine/envmap"
	"github.com/Faultbox/envlight/internal/engine/ibl"
)

func TestLitUniforms(t *testing.T) {
	tests := []struct {
		key      litKey
		want     []string
		excluded []string
	}{
		{litKey{envmap.KindCube, ibl.Split}, []string{"u_maxLod", "u_remap", "u_roughness"}, nil},
		{litKey{envmap.KindEquirect, ibl.Mirror}, []string{"u_albedo", "u_specularIntensity"}, []string{"u_remap", "u_maxLod", "u_diffuseIntensity"}},
		{litKey{envmap.KindCube, ibl.Mirror}, []string{"u_remap"}, []string{"u_metallic"}},
	}
	for _, tt := range tests {
		t.Run(tt.key.env.String()+"/"+tt.key.model.String(), func(t *testing.T) {
			names := litUniforms(tt.key)
			for _, n := range tt.want {
				if !slices.Contains(names, n) {
					t.Errorf("missing %s in %v", n, names)
				}
			}
			for _, n := range tt.excluded {
				if slices.Contains(names, n) {
					t.Errorf("%s must not be required, the variant never reads it", n)
				}
			}
		})
	}
}

func TestLitDefines(t *testing.T) {
	got := litDefines(litKey{envmap.KindEquirect, ibl.Mirror})
	if !slices.Equal(got, []string{"ENV_EQUIRECT", "MODEL_MIRROR"}) {
		t.Errorf("litDefines() = %v", got)
	}
	if got := litDefines(litKey{envmap.KindCube, ibl.Split}); !slices.Equal(got, []string{"ENV_CUBE"}) {
		t.Errorf("litDefines() = %v", got)
	}
}

func TestSkyboxUniforms(t *testing.T) {
	if slices.Contains(skyboxUniforms(envmap.KindEquirect), "u_remap") {
		t.Error("equirect skybox has no remap uniform")
	}
	if !slices.Contains(skyboxUniforms(envmap.KindCube), "u_remap") {
		t.Error("cube skybox needs the remap uniform")
	}
}
