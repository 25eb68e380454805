// envshot renders the scene on the CPU and writes the result as PNG.
//
// Usage:
//
//	envshot -variant dynamic -time 2.5 -out shot.png
//	envshot -frames 4 -faces ./faces
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/envlight/internal/config"
	"github.com/Faultbox/envlight/internal/engine/camera"
	"github.com/Faultbox/envlight/internal/engine/debug"
	"github.com/Faultbox/envlight/internal/engine/envmap"
	"github.com/Faultbox/envlight/internal/engine/frame"
	"github.com/Faultbox/envlight/internal/engine/software"
	"github.com/Faultbox/envlight/internal/logger"
	"github.com/Faultbox/envlight/internal/viewer"
)

// frameStep is the simulated time between frames when -frames > 1.
const frameStep = float32(1.0 / 60.0)

func main() {
	out := flag.String("out", "envshot.png", "Output PNG path")
	at := flag.Float64("time", 0, "Scene time in seconds")
	frames := flag.Int("frames", 1, "Frames to render; the last one is written")
	faces := flag.String("faces", "", "Directory for the captured cube faces (dynamic variant)")
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, *out, float32(*at), *frames, *faces); err != nil {
		logger.Error("envshot failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, out string, at float32, frames int, facesDir string) error {
	if frames < 1 {
		return fmt.Errorf("frames must be at least 1, got %d", frames)
	}

	env, err := viewer.LoadEnvironment(ctx, cfg)
	if err != nil {
		return fmt.Errorf("loading environment: %w", err)
	}
	meshes, err := viewer.Meshes(cfg.Meshes)
	if err != nil {
		return fmt.Errorf("generating meshes: %w", err)
	}
	b, err := software.NewBackend(env, meshes, viewer.CaptureSize(cfg))
	if err != nil {
		return err
	}

	s := viewer.NewSession(b, cfg, camera.Path{Radius: cfg.Scene.CameraRadius})
	vp := frame.Viewport{Width: cfg.Render.SoftwareWidth, Height: cfg.Render.SoftwareHeight}
	params := cfg.Parameters()

	start := time.Now()
	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		elapsed := at + float32(i-frames+1)*frameStep
		if err := s.RenderAt(elapsed, params, vp); err != nil {
			return err
		}
	}
	if b.Screen() == nil {
		return fmt.Errorf("no frame rendered")
	}
	logger.Info("rendered",
		zap.Int("frames", frames),
		zap.Int("skipped", s.Skipped()),
		zap.Duration("elapsed", time.Since(start)))

	if err := debug.WritePNG(out, b.Screen().Image()); err != nil {
		return err
	}
	logger.Info("image written", zap.String("path", out))

	if facesDir != "" {
		cube := b.Captured()
		if cube == nil {
			logger.Warn("variant has no captured environment", zap.Stringer("variant", cfg.Variant()))
			return nil
		}
		paths, err := debug.DumpFaces(facesDir, cube, envmap.CaptureOrder[:], envmap.Face.String)
		if err != nil {
			return err
		}
		logger.Info("captured faces written", zap.Strings("paths", paths))
	}
	return nil
}
