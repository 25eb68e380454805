package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/envlight/internal/config"
	"github.com/Faultbox/envlight/internal/engine/camera"
	"github.com/Faultbox/envlight/internal/engine/debug"
	"github.com/Faultbox/envlight/internal/engine/envmap"
	"github.com/Faultbox/envlight/internal/engine/frame"
	"github.com/Faultbox/envlight/internal/engine/framebuffer"
	"github.com/Faultbox/envlight/internal/engine/renderer"
	"github.com/Faultbox/envlight/internal/engine/ui"
	"github.com/Faultbox/envlight/internal/logger"
	"github.com/Faultbox/envlight/internal/viewer"
)

// notificationTime is how long a status message stays in the overlay.
const notificationTime = 3 * time.Second

// App is the interactive viewer: the scene renders into an offscreen target
// drawn behind the ImGui panel.
type App struct {
	cfg     *config.Config
	ctx     context.Context
	backend *ui.Backend

	target   *framebuffer.Framebuffer
	renderer *renderer.Renderer
	session  *viewer.Session
	panel    *ui.Panel

	fps         *debug.FPSCounter
	screenshots *debug.ScreenshotCapture

	// Screenshot state
	screenshotRequested bool

	// Paths picked in the save dialog; the dialog runs off the main thread.
	pendingSavePath chan string

	statusMsg  string
	statusTime time.Time

	err error
}

// NewApp loads the environment, then creates the window and GPU resources.
// The frame loop does not start until every face has loaded.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	env, err := viewer.LoadEnvironment(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}
	meshes, err := viewer.Meshes(cfg.Meshes)
	if err != nil {
		return nil, fmt.Errorf("generating meshes: %w", err)
	}

	app := &App{
		cfg:             cfg,
		ctx:             ctx,
		panel:           ui.NewPanel(cfg.Variant(), cfg.Parameters()),
		fps:             debug.NewFPSCounter(time.Second),
		screenshots:     debug.NewScreenshotCapture(cfg.Render.ScreenshotDir, "envlight"),
		pendingSavePath: make(chan string, 1),
	}

	app.backend, err = ui.NewBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, cfg.Window.Font)
	if err != nil {
		return nil, err
	}

	app.target, err = framebuffer.New(int32(cfg.Window.Width), int32(cfg.Window.Height))
	if err != nil {
		return nil, err
	}
	app.renderer, err = renderer.New(renderer.Config{
		Static:      env,
		Meshes:      meshes,
		CaptureSize: viewer.CaptureSize(cfg),
		Target:      app.target,
	})
	if err != nil {
		app.target.Destroy()
		return nil, err
	}
	app.session = viewer.NewSession(app.renderer, cfg, camera.Path{Radius: cfg.Scene.CameraRadius})
	return app, nil
}

// Run blocks until the window closes. It returns the error that stopped the
// loop, if any.
func (app *App) Run(ctx context.Context) error {
	app.backend.Run(app.render)
	if app.err == nil && ctx.Err() != nil {
		logger.Info("interrupted")
	}
	return app.err
}

// Close releases GPU resources.
func (app *App) Close() {
	if app.renderer != nil {
		app.renderer.Close()
		app.renderer = nil
	}
	if app.target != nil {
		app.target.Destroy()
		app.target = nil
	}
}

// render is called each frame by the ImGui backend.
func (app *App) render() {
	if app.ctx.Err() != nil {
		app.backend.Close()
		return
	}

	// Save dialog results are handled on the main thread, which owns GL.
	select {
	case path := <-app.pendingSavePath:
		app.saveScreenshot(path)
	default:
	}

	pos, size, scale := ui.Viewport()
	vp := frame.Viewport{
		Width:  max(int(size.X*scale.X), 1),
		Height: max(int(size.Y*scale.Y), 1),
	}
	if err := app.session.Step(app.panel.Parameters(), vp); err != nil {
		app.err = err
		app.backend.Close()
		return
	}
	app.fps.Tick(time.Now())

	// Captured after the scene pass so the target holds this frame.
	if app.screenshotRequested || ui.IsKeyPressed(imgui.KeyF12) {
		app.screenshotRequested = false
		app.screenshot()
	}

	ui.DrawBackground(app.target.ColorTexture(), pos, size)

	switch app.panel.Draw(pos, size) {
	case ui.ActionScreenshot:
		app.screenshotRequested = true
	case ui.ActionSaveScreenshotAs:
		app.openSaveDialog()
	case ui.ActionDumpFaces:
		app.dumpFaces()
	}

	app.drawOverlay(pos)
}

func (app *App) drawOverlay(pos imgui.Vec2) {
	var lines []string
	if app.cfg.Render.ShowFPS {
		lines = append(lines, app.fps.String())
	}
	if skipped := app.session.Skipped(); skipped > 0 {
		lines = append(lines, fmt.Sprintf("%d frames skipped", skipped))
	}
	if app.statusMsg != "" && time.Since(app.statusTime) < notificationTime {
		lines = append(lines, app.statusMsg)
	}
	if len(lines) > 0 {
		ui.DrawOverlay(pos, lines...)
	}
}

// showNotification displays a brief overlay message.
func (app *App) showNotification(msg string) {
	app.statusMsg = msg
	app.statusTime = time.Now()
}

func (app *App) screenshot() {
	path, err := app.screenshots.Capture(app.renderer.ReadScreen())
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		app.showNotification(fmt.Sprintf("Screenshot failed: %v", err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
	app.showNotification("Saved: " + filepath.Base(path))
}

func (app *App) saveScreenshot(path string) {
	if err := debug.WritePNG(path, app.renderer.ReadScreen()); err != nil {
		logger.Error("screenshot failed", zap.String("path", path), zap.Error(err))
		app.showNotification(fmt.Sprintf("Screenshot failed: %v", err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
	app.showNotification("Saved: " + filepath.Base(path))
}

// openSaveDialog shows a native save dialog without blocking the frame loop.
func (app *App) openSaveDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("PNG Images", "png").
			Title("Save Screenshot").
			SetStartDir(app.cfg.Render.ScreenshotDir).
			Save()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				logger.Warn("save dialog failed", zap.Error(err))
			}
			return
		}
		if filepath.Ext(filename) == "" {
			filename += ".png"
		}
		select {
		case app.pendingSavePath <- filename:
		default:
			logger.Warn("screenshot already pending", zap.String("path", filename))
		}
	}()
}

func (app *App) dumpFaces() {
	cube := app.renderer.CaptureCube()
	if cube == nil {
		app.showNotification("No captured environment in the " + app.cfg.Variant().String() + " variant")
		return
	}
	dir := filepath.Join(app.cfg.Render.ScreenshotDir, "faces-"+time.Now().Format("20060102-150405"))
	paths, err := debug.DumpFaces(dir, cube, envmap.CaptureOrder[:], envmap.Face.String)
	if err != nil {
		logger.Error("face dump failed", zap.Error(err))
		app.showNotification(fmt.Sprintf("Face dump failed: %v", err))
		return
	}
	logger.Info("captured faces saved", zap.String("dir", dir), zap.Int("count", len(paths)))
	app.showNotification(fmt.Sprintf("Saved %d faces to %s", len(paths), dir))
}
