package viewer

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/envlight/internal/config"
	"github.com/Faultbox/envlight/internal/engine/envmap"
	"github.com/Faultbox/envlight/internal/engine/frame"
	"github.com/Faultbox/envlight/internal/engine/scene"
	"github.com/Faultbox/envlight/internal/engine/skybox"
	"github.com/Faultbox/envlight/internal/engine/software"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 128
	}
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func cubeConfig(t *testing.T, v frame.Variant) *config.Config {
	t.Helper()
	cfg := config.DefaultFor(v)
	cfg.Assets.Root = t.TempDir()
	for _, name := range cfg.FaceFiles() {
		writePNG(t, filepath.Join(cfg.Assets.Root, name), 8, 8)
	}
	return cfg
}

func TestMeshes(t *testing.T) {
	meshes, err := Meshes(config.Default().Meshes)
	if err != nil {
		t.Fatalf("Meshes: %v", err)
	}
	for _, kind := range scene.Kinds {
		m, ok := meshes[kind]
		if !ok {
			t.Fatalf("no %s mesh", kind)
		}
		if err := m.Validate(); err != nil {
			t.Errorf("%s: %v", kind, err)
		}
	}
}

func TestMeshesRejectsBadConfig(t *testing.T) {
	cfg := config.Default().Meshes
	cfg.Torus.Tube = 0
	if _, err := Meshes(cfg); err == nil {
		t.Error("Meshes with zero tube radius should fail")
	}
}

func TestLoadEnvironment(t *testing.T) {
	t.Run("cubemap", func(t *testing.T) {
		cfg := cubeConfig(t, frame.Cubemap)
		env, err := LoadEnvironment(context.Background(), cfg)
		if err != nil {
			t.Fatalf("LoadEnvironment: %v", err)
		}
		if env.Kind() != envmap.KindCube {
			t.Errorf("Kind() = %s, want cube", env.Kind())
		}
	})

	t.Run("latlong", func(t *testing.T) {
		cfg := config.DefaultFor(frame.LatLong)
		cfg.Assets.Root = t.TempDir()
		cfg.Assets.Equirect = "sky.png"
		writePNG(t, filepath.Join(cfg.Assets.Root, "sky.png"), 16, 8)

		env, err := LoadEnvironment(context.Background(), cfg)
		if err != nil {
			t.Fatalf("LoadEnvironment: %v", err)
		}
		if env.Kind() != envmap.KindEquirect {
			t.Errorf("Kind() = %s, want equirect", env.Kind())
		}
	})

	t.Run("missing root", func(t *testing.T) {
		cfg := config.Default()
		cfg.Assets.Root = filepath.Join(t.TempDir(), "nope")
		if _, err := LoadEnvironment(context.Background(), cfg); err == nil {
			t.Error("LoadEnvironment with missing root should fail")
		}
	})
}

func TestCaptureSize(t *testing.T) {
	tests := []struct {
		variant frame.Variant
		want    int
	}{
		{frame.Cubemap, 0},
		{frame.LatLong, 0},
		{frame.Dynamic, 512},
	}
	for _, tt := range tests {
		t.Run(tt.variant.String(), func(t *testing.T) {
			if got := CaptureSize(config.DefaultFor(tt.variant)); got != tt.want {
				t.Errorf("CaptureSize() = %d, want %d", got, tt.want)
			}
		})
	}
}

type orbit mgl32.Vec3

func (o orbit) PositionAt(float32) mgl32.Vec3 { return mgl32.Vec3(o) }

func TestSessionRendersDynamicScene(t *testing.T) {
	cfg := cubeConfig(t, frame.Dynamic)
	cfg.Scene.CaptureSize = 8
	cfg.Meshes.Sphere = config.SphereConfig{Radius: 5, ThetaSegments: 4, PhiSegments: 8}
	cfg.Meshes.Torus = config.TorusConfig{Radius: 5, Tube: 2, RadialSegments: 8, TubularSegments: 4}
	cfg.Meshes.Box = config.BoxConfig{Width: 10, Height: 10, Depth: 10, WidthSegments: 1, HeightSegments: 1, DepthSegments: 1}

	env, err := LoadEnvironment(context.Background(), cfg)
	if err != nil {
		t.Fatalf("LoadEnvironment: %v", err)
	}
	meshes, err := Meshes(cfg.Meshes)
	if err != nil {
		t.Fatalf("Meshes: %v", err)
	}
	b, err := software.NewBackend(env, meshes, CaptureSize(cfg))
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}

	s := NewSession(b, cfg, orbit{0, 0, 30})
	for i := 0; i < 2; i++ {
		if err := s.RenderAt(float32(i), cfg.Parameters(), frame.Viewport{Width: 16, Height: 12}); err != nil {
			t.Fatalf("RenderAt(%d): %v", i, err)
		}
	}
	if s.Frames() != 2 || s.Skipped() != 0 {
		t.Errorf("frames = %d, skipped = %d", s.Frames(), s.Skipped())
	}
	if got := b.Screen().Image().Bounds(); got.Dx() != 16 || got.Dy() != 12 {
		t.Errorf("screen = %v, want 16x12", got)
	}
}

var errBroken = errors.New("broken")

type brokenBackend struct{}

func (brokenBackend) MaxLod(frame.EnvID) float32 { return 0 }
func (brokenBackend) BeginCapture(envmap.Face) error { return errBroken }
func (brokenBackend) EndCapture(envmap.Face) error { return errBroken }
func (brokenBackend) BeginScreen(frame.Viewport) error { return errBroken }
func (brokenBackend) DrawSkybox(frame.EnvID, skybox.Pass) error { return errBroken }
func (brokenBackend) DrawObject(frame.DrawCall) error { return errBroken }
func (brokenBackend) EndFrame() error { return errBroken }

func TestSessionFailurePolicy(t *testing.T) {
	cfg := config.Default()
	cfg.Render.MaxFrameErrors = 2
	s := NewSession(brokenBackend{}, cfg, orbit{0, 0, 30})
	vp := frame.Viewport{Width: 4, Height: 4}

	for i := 0; i < 2; i++ {
		if err := s.RenderAt(0, cfg.Parameters(), vp); err != nil {
			t.Fatalf("failure %d should be skipped, got %v", i+1, err)
		}
	}
	err := s.RenderAt(0, cfg.Parameters(), vp)
	if !errors.Is(err, frame.ErrTooManyFailures) {
		t.Fatalf("third failure = %v, want ErrTooManyFailures", err)
	}
	if !errors.Is(err, errBroken) {
		t.Errorf("error should wrap the last frame error: %v", err)
	}
	if s.Skipped() != 3 {
		t.Errorf("Skipped() = %d, want 3", s.Skipped())
	}
}
