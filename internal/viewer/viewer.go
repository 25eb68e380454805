// Package viewer assembles the pieces shared by the viewer binaries: meshes,
// the static environment and the frame session.
package viewer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/envlight/internal/assets"
	"github.com/Faultbox/envlight/internal/config"
	"github.com/Faultbox/envlight/internal/engine/envmap"
	"github.com/Faultbox/envlight/internal/engine/frame"
	"github.com/Faultbox/envlight/internal/engine/scene"
	"github.com/Faultbox/envlight/internal/logger"
	"github.com/Faultbox/envlight/pkg/geometry"
)

// Meshes generates the sphere, torus and box described by cfg.
func Meshes(cfg config.MeshConfig) (map[scene.ObjectKind]*geometry.Mesh, error) {
	sphere, err := geometry.CreateSphere(cfg.Sphere.Radius, cfg.Sphere.ThetaSegments, cfg.Sphere.PhiSegments)
	if err != nil {
		return nil, fmt.Errorf("sphere: %w", err)
	}
	torus, err := geometry.CreateTorus(cfg.Torus.Radius, cfg.Torus.Tube, cfg.Torus.RadialSegments, cfg.Torus.TubularSegments)
	if err != nil {
		return nil, fmt.Errorf("torus: %w", err)
	}
	b := cfg.Box
	box, err := geometry.CreateBox(b.Width, b.Height, b.Depth, b.WidthSegments, b.HeightSegments, b.DepthSegments)
	if err != nil {
		return nil, fmt.Errorf("box: %w", err)
	}

	meshes := map[scene.ObjectKind]*geometry.Mesh{
		scene.Sphere: sphere,
		scene.Torus:  torus,
		scene.Box:    box,
	}
	for kind, m := range meshes {
		logger.Debug("mesh generated",
			zap.Stringer("kind", kind),
			zap.Int("vertices", m.VertexCount()),
			zap.Int("triangles", m.TriangleCount()))
	}
	return meshes, nil
}

// LoadEnvironment loads the static environment of the configured variant.
// Rendering must not start before it returns.
func LoadEnvironment(ctx context.Context, cfg *config.Config) (envmap.Environment, error) {
	m := assets.NewManager()
	defer m.Close()
	if err := m.AddDir(cfg.Assets.Root); err != nil {
		return nil, err
	}

	l := assets.NewLoader(m, cfg.Assets.Workers)
	defer l.Close()

	logger.Info("loading environment",
		zap.Stringer("variant", cfg.Variant()),
		zap.String("root", cfg.Assets.Root),
		zap.Duration("timeout", cfg.Assets.Timeout))

	if cfg.Variant() == frame.LatLong {
		eq, err := l.LoadEquirect(ctx, cfg.Assets.Equirect, cfg.Assets.Timeout)
		if err != nil {
			return nil, err
		}
		return eq, nil
	}
	cube, err := l.LoadCube(ctx, cfg.FaceFiles(), cfg.Assets.Timeout)
	if err != nil {
		return nil, err
	}
	return cube, nil
}

// CaptureSize returns the capture cube face size, or 0 when the variant
// does not capture.
func CaptureSize(cfg *config.Config) int {
	if cfg.Variant() != frame.Dynamic {
		return 0
	}
	return cfg.Scene.CaptureSize
}
