// Package player runs the scene in a plain SDL window without the panel.
package player

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/envlight/internal/config"
	"github.com/Faultbox/envlight/internal/engine/camera"
	"github.com/Faultbox/envlight/internal/engine/debug"
	"github.com/Faultbox/envlight/internal/engine/envmap"
	"github.com/Faultbox/envlight/internal/engine/frame"
	"github.com/Faultbox/envlight/internal/engine/input"
	"github.com/Faultbox/envlight/internal/engine/renderer"
	"github.com/Faultbox/envlight/internal/engine/window"
	"github.com/Faultbox/envlight/internal/logger"
	"github.com/Faultbox/envlight/internal/viewer"
)

// Player is the windowed viewer without UI.
type Player struct {
	cfg      *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	session  *viewer.Session
	params   frame.Parameters

	path   camera.Path
	orbit  *camera.OrbitCamera
	orbits bool

	fps         *debug.FPSCounter
	screenshots *debug.ScreenshotCapture
	titleTimer  time.Time
}

// New loads the environment, opens the window and uploads the scene.
func New(ctx context.Context, cfg *config.Config) (*Player, error) {
	logger.Info("initializing player",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Stringer("variant", cfg.Variant()),
	)

	env, err := viewer.LoadEnvironment(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}
	meshes, err := viewer.Meshes(cfg.Meshes)
	if err != nil {
		return nil, fmt.Errorf("generating meshes: %w", err)
	}

	p := &Player{
		cfg:         cfg,
		params:      cfg.Parameters(),
		path:        camera.Path{Radius: cfg.Scene.CameraRadius},
		orbit:       camera.NewOrbitCamera(cfg.Scene.CameraRadius),
		fps:         debug.NewFPSCounter(time.Second),
		screenshots: debug.NewScreenshotCapture(cfg.Render.ScreenshotDir, "envplayer"),
	}

	// Create window (this also creates OpenGL context)
	p.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		Samples:    cfg.Window.Samples,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	p.renderer, err = renderer.New(renderer.Config{
		Static:      env,
		Meshes:      meshes,
		CaptureSize: viewer.CaptureSize(cfg),
	})
	if err != nil {
		p.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	p.input = input.New()
	p.session = viewer.NewSession(p.renderer, cfg, p.path)

	logger.Info("player initialized")
	return p, nil
}

// Run renders until the window closes, Escape is pressed, ctx is done or the
// failure policy gives up.
func (p *Player) Run(ctx context.Context) error {
	p.running = true
	logger.Info("starting render loop")

	for p.running {
		if ctx.Err() != nil {
			return nil
		}

		// 1. Process input
		if p.input.Update() {
			break
		}
		p.handleEvents()

		// 2. Render
		w, h := p.window.DrawableSize()
		if err := p.session.Step(p.params, frame.Viewport{Width: w, Height: h}); err != nil {
			return fmt.Errorf("render: %w", err)
		}
		if p.input.IsKeyPressed(sdl.SCANCODE_F12) {
			p.screenshot()
		}

		// 3. Present (swap buffers)
		p.window.SwapBuffers()

		now := time.Now()
		p.fps.Tick(now)
		if now.Sub(p.titleTimer) >= time.Second {
			p.window.SetTitle(fmt.Sprintf("%s - %s - %s", p.cfg.Window.Title, p.cfg.Variant(), p.fps))
			p.titleTimer = now
		}
	}

	logger.Info("render loop stopped",
		zap.Uint64("frames", p.session.Frames()),
		zap.Int("skipped", p.session.Skipped()))
	return nil
}

func (p *Player) handleEvents() {
	for _, event := range p.input.Events() {
		switch event.Type {
		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				p.running = false
			case sdl.SCANCODE_C:
				p.toggleCamera()
			case sdl.SCANCODE_F:
				p.dumpFaces()
			}
		case input.EventDrag:
			if p.orbits {
				p.orbit.HandleDrag(event.DX, event.DY)
			}
		case input.EventWheel:
			if p.orbits {
				p.orbit.HandleZoom(event.Wheel)
			}
		}
	}
}

func (p *Player) toggleCamera() {
	p.orbits = !p.orbits
	if p.orbits {
		p.session.SetRig(p.orbit)
	} else {
		p.session.SetRig(p.path)
	}
	logger.Debug("camera switched", zap.Bool("orbit", p.orbits))
}

// screenshot reads the back buffer, so it must run after the frame is drawn
// and before the swap.
func (p *Player) screenshot() {
	path, err := p.screenshots.Capture(p.renderer.ReadScreen())
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

func (p *Player) dumpFaces() {
	cube := p.renderer.CaptureCube()
	if cube == nil {
		logger.Warn("no captured environment to dump", zap.Stringer("variant", p.cfg.Variant()))
		return
	}
	dir := filepath.Join(p.cfg.Render.ScreenshotDir, "faces-"+time.Now().Format("20060102-150405"))
	paths, err := debug.DumpFaces(dir, cube, envmap.CaptureOrder[:], envmap.Face.String)
	if err != nil {
		logger.Error("face dump failed", zap.Error(err))
		return
	}
	logger.Info("captured faces saved", zap.String("dir", dir), zap.Int("count", len(paths)))
}

// Close releases GPU and window resources.
func (p *Player) Close() {
	logger.Info("closing player")

	if p.renderer != nil {
		p.renderer.Close()
	}
	if p.window != nil {
		p.window.Close()
	}
}
