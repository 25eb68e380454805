package viewer

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/envlight/internal/config"
	"github.com/Faultbox/envlight/internal/engine/frame"
	"github.com/Faultbox/envlight/internal/engine/scene"
	"github.com/Faultbox/envlight/internal/logger"
)

// Session drives frames against one backend and applies the failure policy.
type Session struct {
	driver *frame.Driver
	rig    scene.CameraRig
	policy frame.FailurePolicy
	start  time.Time
	frames uint64
}

// NewSession creates a session whose clock starts now.
func NewSession(b frame.Backend, cfg *config.Config, rig scene.CameraRig) *Session {
	return &Session{
		driver: frame.NewDriver(b, cfg.Variant(), cfg.Lens()),
		rig:    rig,
		policy: frame.FailurePolicy{MaxConsecutive: cfg.Render.MaxFrameErrors},
		start:  time.Now(),
	}
}

// SetRig swaps the camera rig.
func (s *Session) SetRig(rig scene.CameraRig) { s.rig = rig }

// Elapsed returns seconds since the session started.
func (s *Session) Elapsed() float32 {
	return float32(time.Since(s.start).Seconds())
}

// Step renders the scene at the current time.
func (s *Session) Step(params frame.Parameters, vp frame.Viewport) error {
	return s.RenderAt(s.Elapsed(), params, vp)
}

// RenderAt renders the scene at elapsed seconds. A failed frame is logged and
// skipped; the error is returned only once the policy gives up.
func (s *Session) RenderAt(elapsed float32, params frame.Parameters, vp frame.Viewport) error {
	s.frames++
	err := s.driver.Frame(scene.Advance(elapsed, s.rig), params, vp)
	if err != nil {
		logger.Warn("frame skipped",
			zap.Uint64("frame", s.frames),
			zap.Error(err))
	}
	return s.policy.Observe(err)
}

// Frames returns the number of frames attempted.
func (s *Session) Frames() uint64 { return s.frames }

// Skipped returns the number of failed frames.
func (s *Session) Skipped() int { return s.policy.Skipped() }
