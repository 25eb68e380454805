package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPathStart(t *testing.T) {
	p := Path{Radius: 30}
	if got := p.PositionAt(0); !near(got, mgl32.Vec3{30, 0, 0}, 1e-5) {
		t.Errorf("PositionAt(0): got %v, want (30, 0, 0)", got)
	}
	// Quarter turn of the XZ component after pi seconds.
	got := p.PositionAt(math.Pi)
	if !near(got, mgl32.Vec3{0, float32(30 * math.Sin(0.3*math.Pi)), 30}, 1e-4) {
		t.Errorf("PositionAt(pi): got %v", got)
	}
}

func TestOrbitCameraClamps(t *testing.T) {
	c := NewOrbitCamera(30)
	c.HandleZoom(100)
	if c.Distance != c.MinDistance {
		t.Errorf("zoom in: distance %f, want %f", c.Distance, c.MinDistance)
	}
	c.HandleZoom(-1000)
	if c.Distance != c.MaxDistance {
		t.Errorf("zoom out: distance %f, want %f", c.Distance, c.MaxDistance)
	}
	c.HandleDrag(0, 10000)
	if c.RotationX != c.MaxPitch {
		t.Errorf("pitch: got %f, want %f", c.RotationX, c.MaxPitch)
	}
}

func TestOrbitCameraDistance(t *testing.T) {
	c := NewOrbitCamera(30)
	c.HandleDrag(123, -45)
	if d := c.PositionAt(5).Len(); math.Abs(float64(d)-30) > 1e-4 {
		t.Errorf("distance from center: got %f, want 30", d)
	}
}

func TestViewLooksAtOrigin(t *testing.T) {
	eye := mgl32.Vec3{0, 0, 30}
	v := View(eye)
	origin := v.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !near(origin.Vec3(), mgl32.Vec3{0, 0, -30}, 1e-4) {
		t.Errorf("origin in view space: got %v, want (0, 0, -30)", origin)
	}
}

func near(a, b mgl32.Vec3, eps float32) bool {
	return a.Sub(b).Len() <= eps
}
