package skybox

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/envlight/internal/engine/envmap"
)

func near(a, b mgl32.Vec3, eps float32) bool {
	return a.Sub(b).Len() <= eps
}

func TestIndicesFormCCWTriangles(t *testing.T) {
	for tri := 0; tri < 2; tri++ {
		a, b, c := Corners[Indices[3*tri]], Corners[Indices[3*tri+1]], Corners[Indices[3*tri+2]]
		e1, e2 := b.Sub(a), c.Sub(a)
		if cross := e1[0]*e2[1] - e1[1]*e2[0]; cross <= 0 {
			t.Errorf("triangle %d is not counter-clockwise", tri)
		}
	}
}

func TestTargetScale(t *testing.T) {
	s := TargetScale(60, 2)
	h := float32(math.Tan(math.Pi / 6))
	if math.Abs(float64(s[1]-h)) > 1e-6 || math.Abs(float64(s[0]-2*h)) > 1e-6 {
		t.Errorf("TargetScale(60, 2) = %v, want (%f, %f)", s, 2*h, h)
	}
	if s := TargetScale(90, 1); math.Abs(float64(s[0]-1)) > 1e-6 || math.Abs(float64(s[1]-1)) > 1e-6 {
		t.Errorf("TargetScale(90, 1) = %v, want (1, 1)", s)
	}
}

func TestScreenPassLooksAtOrigin(t *testing.T) {
	cam := mgl32.Vec3{30, 10, -5}
	p := ScreenPass(cam, 60, 16.0/9)
	if got, want := p.Direction(mgl32.Vec2{}), cam.Mul(-1).Normalize(); !near(got, want, 1e-5) {
		t.Errorf("center ray: got %v, want %v", got, want)
	}
	// The top edge of the screen tilts upward.
	if top, center := p.Direction(mgl32.Vec2{0, 1}), p.Direction(mgl32.Vec2{}); top.Y() <= center.Y() {
		t.Errorf("top ray %v not above center ray %v", top, center)
	}
}

func TestFacePassCornersStayOnFace(t *testing.T) {
	for _, f := range envmap.CaptureOrder {
		p := FacePass(f)
		for _, c := range Corners {
			inset := c.Mul(0.99)
			got, s, tc := envmap.FaceOf(p.Ray(inset))
			if got != f {
				t.Errorf("%s corner %v maps to face %s", f, c, got)
			}
			if ws, wt := 0.5*(inset[0]+1), 0.5*(inset[1]+1); math.Abs(float64(s-ws)) > 1e-5 || math.Abs(float64(tc-wt)) > 1e-5 {
				t.Errorf("%s corner %v: (s,t) = (%f,%f), want (%f,%f)", f, c, s, tc, ws, wt)
			}
		}
	}
}
