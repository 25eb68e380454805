package envmap

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func near(a, b mgl32.Vec3, eps float32) bool {
	return a.Sub(b).Len() <= eps
}

func solid(size int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

var faceColors = [FaceCount]color.RGBA{
	PositiveX: {255, 0, 0, 255},
	NegativeX: {0, 255, 0, 255},
	PositiveY: {0, 0, 255, 255},
	NegativeY: {255, 255, 0, 255},
	PositiveZ: {0, 255, 255, 255},
	NegativeZ: {255, 0, 255, 255},
}

func faceVec(f Face) mgl32.Vec3 {
	c := faceColors[f]
	return mgl32.Vec3{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}

func TestFaceBasis(t *testing.T) {
	for _, f := range CaptureOrder {
		b := f.Basis()
		x, y, z := b.Col(0).Vec3(), b.Col(1).Vec3(), b.Col(2).Vec3()
		if !near(z.Mul(-1), f.Forward(), 1e-6) {
			t.Errorf("%s: -Z axis %v, want forward %v", f, z.Mul(-1), f.Forward())
		}
		if !near(y, f.Up(), 1e-6) {
			t.Errorf("%s: Y axis %v, want up %v", f, y, f.Up())
		}
		if math.Abs(float64(x.Dot(y))) > 1e-6 || !near(x.Cross(y), z, 1e-6) {
			t.Errorf("%s: basis not right-handed orthonormal", f)
		}
		view := f.View().Mul4x1(f.Forward().Vec4(0)).Vec3()
		if !near(view, mgl32.Vec3{0, 0, -1}, 1e-6) {
			t.Errorf("%s: forward in view space %v, want (0,0,-1)", f, view)
		}
	}
}

func TestCaptureOrderCoversAllFaces(t *testing.T) {
	seen := map[Face]bool{}
	for _, f := range CaptureOrder {
		seen[f] = true
	}
	if len(seen) != FaceCount {
		t.Errorf("capture order covers %d faces", len(seen))
	}
	if CaptureOrder[0] != PositiveX || CaptureOrder[1] != PositiveY || CaptureOrder[5] != NegativeZ {
		t.Errorf("capture order: %v", CaptureOrder)
	}
}

// A pixel rendered through a face's basis must land at the same (s, t) when
// the resulting direction is looked up.
func TestFaceOfMatchesRenderBasis(t *testing.T) {
	for _, f := range CaptureOrder {
		for _, ndc := range [][2]float32{{0, 0}, {0.5, -0.25}, {-0.9, 0.8}} {
			dir := f.Basis().Mul4x1(mgl32.Vec4{ndc[0], ndc[1], -1, 0}).Vec3()
			got, s, tc := FaceOf(dir)
			if got != f {
				t.Errorf("%s ndc %v: FaceOf gave %s", f, ndc, got)
				continue
			}
			if ws, wt := 0.5*(ndc[0]+1), 0.5*(ndc[1]+1); math.Abs(float64(s-ws)) > 1e-5 || math.Abs(float64(tc-wt)) > 1e-5 {
				t.Errorf("%s ndc %v: (s,t) = (%f,%f), want (%f,%f)", f, ndc, s, tc, ws, wt)
			}
		}
	}
}

func TestCaptureProjectionIsSquare90(t *testing.T) {
	p := CaptureProjection(0.01, 1000)
	if math.Abs(float64(p.At(0, 0)-1)) > 1e-6 || math.Abs(float64(p.At(1, 1)-1)) > 1e-6 {
		t.Errorf("projection scale: (%f, %f), want (1, 1)", p.At(0, 0), p.At(1, 1))
	}
}

func TestRemapStatic(t *testing.T) {
	got := RemapStatic(mgl32.Vec3{1, 2, 3})
	if got != (mgl32.Vec3{-3, 2, -1}) {
		t.Errorf("RemapStatic: got %v", got)
	}
}

func TestStaticCubeSampling(t *testing.T) {
	var faces [FaceCount]*image.RGBA
	for f := range faces {
		faces[f] = solid(8, faceColors[f])
	}
	c, err := NewStaticCube(faces)
	if err != nil {
		t.Fatalf("NewStaticCube: %v", err)
	}
	if c.Levels() != 4 || c.MaxLod() != 3 || !c.Remapped() {
		t.Fatalf("levels %d maxLod %f remapped %v", c.Levels(), c.MaxLod(), c.Remapped())
	}
	// +X in shading space is -Z in storage.
	if got := c.Sample(mgl32.Vec3{1, 0, 0}, 0); !near(got, faceVec(NegativeZ), 1e-3) {
		t.Errorf("sample +X: got %v, want %v", got, faceVec(NegativeZ))
	}
	if got := c.Sample(mgl32.Vec3{0, 1, 0}, 2.5); !near(got, faceVec(PositiveY), 1e-2) {
		t.Errorf("sample +Y: got %v, want %v", got, faceVec(PositiveY))
	}
	base := c.Sample(mgl32.Vec3{0, 0, 1}, 0)
	for _, lod := range []float32{float32(math.Inf(-1)), float32(math.NaN()), -3} {
		if got := c.Sample(mgl32.Vec3{0, 0, 1}, lod); got != base {
			t.Errorf("lod %f: got %v, want level 0 %v", lod, got, base)
		}
	}
}

func TestStaticCubeFaceSize(t *testing.T) {
	var faces [FaceCount]*image.RGBA
	for f := range faces {
		faces[f] = solid(8, faceColors[f])
	}
	faces[NegativeY] = solid(4, faceColors[NegativeY])
	if _, err := NewStaticCube(faces); !errors.Is(err, ErrFaceSize) {
		t.Errorf("mismatched size: got %v", err)
	}
	faces[NegativeY] = nil
	if _, err := NewStaticCube(faces); !errors.Is(err, ErrFaceSize) {
		t.Errorf("missing face: got %v", err)
	}
}

func TestCaptureCubeHasNoMips(t *testing.T) {
	c, err := NewCaptureCube(512)
	if err != nil {
		t.Fatal(err)
	}
	if c.Levels() != 1 || c.Remapped() {
		t.Errorf("levels %d remapped %v", c.Levels(), c.Remapped())
	}
	if c.MaxLod() != 9 {
		t.Errorf("MaxLod: got %f, want 9", c.MaxLod())
	}
	face := c.Face(PositiveX)
	for i := 0; i < len(face.Pix); i += 4 {
		face.Pix[i], face.Pix[i+3] = 255, 255
	}
	sharp := c.Sample(mgl32.Vec3{1, 0, 0}, 0)
	blurred := c.Sample(mgl32.Vec3{1, 0, 0}, 9)
	if sharp != blurred || !near(sharp, mgl32.Vec3{1, 0, 0}, 1e-6) {
		t.Errorf("captured cube lod 0 %v, lod 9 %v", sharp, blurred)
	}
	if _, err := NewCaptureCube(0); !errors.Is(err, ErrFaceSize) {
		t.Errorf("size 0: got %v", err)
	}
}

func TestEquirect(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for x := 0; x < 4; x++ {
		img.SetRGBA(x, 0, color.RGBA{255, 0, 0, 255})
		img.SetRGBA(x, 1, color.RGBA{0, 0, 255, 255})
	}
	e, err := NewEquirect(img)
	if err != nil {
		t.Fatal(err)
	}
	if got := e.Sample(mgl32.Vec3{0, 1, 0}, 0); !near(got, mgl32.Vec3{1, 0, 0}, 1e-5) {
		t.Errorf("up: got %v", got)
	}
	if got := e.Sample(mgl32.Vec3{0, -1, 0}, 5); !near(got, mgl32.Vec3{0, 0, 1}, 1e-5) {
		t.Errorf("down: got %v", got)
	}

	s, tc := EquirectUV(mgl32.Vec3{1, 0, 0})
	if math.Abs(float64(s-0.5)) > 1e-6 || math.Abs(float64(tc-0.5)) > 1e-6 {
		t.Errorf("EquirectUV(+X): (%f, %f), want (0.5, 0.5)", s, tc)
	}
}

func TestEquirectWrapsAtSeam(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 1))
	for x := 0; x < 4; x++ {
		img.SetRGBA(x, 0, color.RGBA{uint8(60 * x), 0, 0, 255})
	}
	e, _ := NewEquirect(img)
	a := e.Sample(mgl32.Vec3{-1, 0, 0.001}, 0)
	b := e.Sample(mgl32.Vec3{-1, 0, -0.001}, 0)
	if !near(a, b, 0.01) {
		t.Errorf("seam discontinuity: %v vs %v", a, b)
	}
}

func TestCaptureTracker(t *testing.T) {
	var c CaptureTracker
	if err := c.CheckReadable(); !errors.Is(err, ErrCaptureIncomplete) {
		t.Fatalf("read before any capture: got %v", err)
	}

	c.Begin()
	for i, f := range CaptureOrder {
		if err := c.CheckReadable(); !errors.Is(err, ErrCaptureIncomplete) {
			t.Fatalf("interleaved read after %d faces: got %v", i, err)
		}
		if err := c.MarkWritten(f); err != nil {
			t.Fatalf("MarkWritten(%s): %v", f, err)
		}
	}
	if err := c.CheckReadable(); !errors.Is(err, ErrCaptureIncomplete) {
		t.Fatalf("read before Finish: got %v", err)
	}
	if err := c.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if err := c.CheckReadable(); err != nil {
		t.Fatalf("read after full capture: %v", err)
	}

	// A new capture invalidates the cube until it completes again.
	c.Begin()
	if err := c.CheckReadable(); !errors.Is(err, ErrCaptureIncomplete) {
		t.Errorf("read during next capture: got %v", err)
	}
	if err := c.MarkWritten(PositiveX); err != nil {
		t.Fatal(err)
	}
	if err := c.MarkWritten(PositiveX); !errors.Is(err, ErrCaptureOrder) {
		t.Errorf("double write: got %v", err)
	}
	if err := c.Finish(); !errors.Is(err, ErrCaptureIncomplete) {
		t.Errorf("Finish with one face: got %v", err)
	}
	if err := c.CheckReadable(); !errors.Is(err, ErrCaptureIncomplete) {
		t.Errorf("read after failed capture: got %v", err)
	}
	if err := c.MarkWritten(PositiveY); !errors.Is(err, ErrCaptureOrder) {
		t.Errorf("write outside capture: got %v", err)
	}
	if c.Frame() != 2 {
		t.Errorf("Frame: got %d, want 2", c.Frame())
	}
}
