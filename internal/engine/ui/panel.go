package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/envlight/internal/engine/frame"
	"github.com/Faultbox/envlight/internal/engine/ibl"
	"github.com/Faultbox/envlight/internal/engine/scene"
)

// IntensityMax is the upper bound of the light intensity sliders.
const IntensityMax = 2

// Action is a request raised by a panel button.
type Action int

const (
	ActionNone Action = iota
	ActionScreenshot
	ActionSaveScreenshotAs
	ActionDumpFaces
)

// Controls says which sliders an object shows.
type Controls struct {
	Color     bool
	Metallic  bool
	Roughness bool
}

// ControlsFor returns the controls for kind under variant. Mirror shading
// reads only the albedo, and the captured sphere is a fixed mirror in the
// dynamic variant.
func ControlsFor(v frame.Variant, kind scene.ObjectKind) Controls {
	switch {
	case v == frame.LatLong:
		return Controls{Color: true}
	case v == frame.Dynamic && kind == scene.Sphere:
		return Controls{Color: true}
	default:
		return Controls{Color: true, Metallic: true, Roughness: true}
	}
}

// Panel edits frame.Parameters in place.
type Panel struct {
	variant frame.Variant
	params  frame.Parameters
}

// NewPanel starts from params.
func NewPanel(v frame.Variant, params frame.Parameters) *Panel {
	return &Panel{variant: v, params: params}
}

// Parameters returns the current values.
func (p *Panel) Parameters() frame.Parameters { return p.params }

// Draw renders the panel docked to the right edge of the work area.
func (p *Panel) Draw(workPos, workSize imgui.Vec2) Action {
	const width = 280
	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+workSize.X-width, workPos.Y))
	imgui.SetNextWindowSizeV(imgui.NewVec2(width, 0), imgui.CondAlways)
	imgui.SetNextWindowBgAlpha(0.85)

	action := ActionNone
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsAlwaysAutoResize
	if imgui.BeginV("Parameters", nil, flags) {
		imgui.Text(fmt.Sprintf("Variant: %s", p.variant))
		imgui.Separator()

		for _, kind := range scene.Kinds {
			p.drawObject(kind)
		}

		if imgui.CollapsingHeaderTreeNodeFlagsV("Light", imgui.TreeNodeFlagsDefaultOpen) {
			if p.variant.ShadingModel() != ibl.Mirror {
				imgui.SliderFloatV("Diffuse", &p.params.Intensity.Diffuse, 0, IntensityMax, "%.2f", imgui.SliderFlagsNone)
			}
			imgui.SliderFloatV("Specular", &p.params.Intensity.Specular, 0, IntensityMax, "%.2f", imgui.SliderFlagsNone)
		}

		imgui.Separator()
		if imgui.Button("Screenshot") {
			action = ActionScreenshot
		}
		imgui.SameLine()
		if imgui.Button("Save as...") {
			action = ActionSaveScreenshotAs
		}
		if p.variant == frame.Dynamic {
			if imgui.Button("Dump capture faces") {
				action = ActionDumpFaces
			}
		}
	}
	imgui.End()
	return action
}

func (p *Panel) drawObject(kind scene.ObjectKind) {
	c := ControlsFor(p.variant, kind)
	m := &p.params.Materials[kind]
	if !imgui.CollapsingHeaderTreeNodeFlagsV(kind.String(), imgui.TreeNodeFlagsDefaultOpen) {
		return
	}
	imgui.PushIDStr(kind.String())
	if c.Color {
		col := [3]float32(m.Albedo)
		if imgui.ColorEdit3V("Color", &col, imgui.ColorEditFlagsDisplayRGB) {
			m.Albedo = clampColor(col)
		}
	}
	if c.Metallic {
		imgui.SliderFloatV("Metallic", &m.Metallic, 0, 1, "%.2f", imgui.SliderFlagsAlwaysClamp)
	}
	if c.Roughness {
		imgui.SliderFloatV("Roughness", &m.Roughness, 0, 1, "%.2f", imgui.SliderFlagsAlwaysClamp)
	}
	imgui.PopID()
}

func clampColor(c [3]float32) mgl32.Vec3 {
	return mgl32.Vec3{mgl32.Clamp(c[0], 0, 1), mgl32.Clamp(c[1], 0, 1), mgl32.Clamp(c[2], 0, 1)}
}

// DrawOverlay shows text in a small borderless window at the top-left
// corner of the work area.
func DrawOverlay(workPos imgui.Vec2, lines ...string) {
	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+10, workPos.Y+10))
	imgui.SetNextWindowBgAlpha(0.6)
	flags := imgui.WindowFlagsNoDecoration | imgui.WindowFlagsAlwaysAutoResize |
		imgui.WindowFlagsNoSavedSettings | imgui.WindowFlagsNoFocusOnAppearing | imgui.WindowFlagsNoNav | imgui.WindowFlagsNoInputs
	if imgui.BeginV("##Overlay", nil, flags) {
		for _, l := range lines {
			imgui.Text(l)
		}
	}
	imgui.End()
}
