// Package ui provides the ImGui window, parameter panel and overlays.
package ui

import (
	"fmt"
	"os"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/envlight/internal/logger"
)

// fallbackFonts are tried in order when no font is configured.
var fallbackFonts = []string{
	"/System/Library/Fonts/SFNS.ttf",
	"C:\\Windows\\Fonts\\segoeui.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
}

// latinGlyphRanges covers Basic Latin and Latin-1, terminated by 0.
var latinGlyphRanges = []imgui.Wchar{0x0020, 0x00FF, 0}

// Backend wraps the ImGui SDL backend.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
}

// NewBackend creates the window and GL context and initializes OpenGL.
func NewBackend(title string, width, height int, fontPath string) (*Backend, error) {
	b := &Backend{}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetAfterCreateContextHook(func() {
		loadFont(fontPath)
	})
	b.backend.SetBgColor(imgui.NewVec4(0, 0, 0, 1))
	b.backend.CreateWindow(title, width, height)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}
	return b, nil
}

func loadFont(path string) {
	candidates := fallbackFonts
	if path != "" {
		candidates = append([]string{path}, candidates...)
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		fontCfg := imgui.NewFontConfig()
		font := imgui.CurrentIO().Fonts().AddFontFromFileTTFV(p, 15.0, fontCfg, &latinGlyphRanges[0])
		fontCfg.Destroy()
		if font != nil {
			logger.Debug("loaded UI font", zap.String("path", p))
			return
		}
	}
	logger.Debug("using built-in UI font")
}

// Run starts the main render loop.
func (b *Backend) Run(renderFunc func()) {
	b.backend.Run(renderFunc)
}

// Close asks the loop started by Run to stop after the current frame.
func (b *Backend) Close() {
	b.backend.SetShouldClose(true)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// Viewport returns the main viewport work area in logical pixels and the
// framebuffer scale for HiDPI displays.
func Viewport() (pos, size, scale imgui.Vec2) {
	vp := imgui.MainViewport()
	return vp.WorkPos(), vp.WorkSize(), imgui.CurrentIO().DisplayFramebufferScale()
}

// IsKeyPressed checks if a key was pressed this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}

// DrawBackground fills the work area with a GL texture rendered offscreen.
// V is flipped because GL textures start at the bottom row.
func DrawBackground(texture uint32, pos, size imgui.Vec2) {
	imgui.SetNextWindowPos(pos)
	imgui.SetNextWindowSize(size)
	flags := imgui.WindowFlagsNoDecoration | imgui.WindowFlagsNoBringToFrontOnFocus |
		imgui.WindowFlagsNoSavedSettings | imgui.WindowFlagsNoInputs | imgui.WindowFlagsNoBackground
	if imgui.BeginV("##Scene", nil, flags) {
		imgui.SetCursorPos(imgui.NewVec2(0, 0))
		texRef := imgui.NewTextureRefTextureID(imgui.TextureID(texture))
		imgui.ImageWithBgV(
			*texRef,
			size,
			imgui.NewVec2(0, 1),
			imgui.NewVec2(1, 0),
			imgui.NewVec4(0, 0, 0, 1),
			imgui.NewVec4(1, 1, 1, 1),
		)
	}
	imgui.End()
}
