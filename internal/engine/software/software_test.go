package software

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/envlight/internal/engine/camera"
	"github.com/Faultbox/envlight/internal/engine/envmap"
	"github.com/Faultbox/envlight/internal/engine/frame"
	"github.com/Faultbox/envlight/internal/engine/ibl"
	"github.com/Faultbox/envlight/internal/engine/scene"
	"github.com/Faultbox/envlight/internal/engine/skybox"
	"github.com/Faultbox/envlight/pkg/geometry"
)

const gray = 100

func flatCube(t *testing.T) *envmap.CubeMap {
	t.Helper()
	var faces [envmap.FaceCount]*image.RGBA
	for f := range faces {
		img := image.NewRGBA(image.Rect(0, 0, 8, 8))
		for i := 0; i < len(img.Pix); i += 4 {
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = gray, gray, gray, 255
		}
		faces[f] = img
	}
	c, err := envmap.NewStaticCube(faces)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func testMeshes(t *testing.T) map[scene.ObjectKind]*geometry.Mesh {
	t.Helper()
	sphere, err := geometry.CreateSphere(5, 16, 32)
	if err != nil {
		t.Fatal(err)
	}
	torus, err := geometry.CreateTorus(5, 2, 32, 16)
	if err != nil {
		t.Fatal(err)
	}
	box, err := geometry.CreateBox(10, 10, 10, 2, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	return map[scene.ObjectKind]*geometry.Mesh{scene.Sphere: sphere, scene.Torus: torus, scene.Box: box}
}

func diffuseOnly(albedo mgl32.Vec3) frame.Parameters {
	var p frame.Parameters
	for i := range p.Materials {
		p.Materials[i] = ibl.Material{Albedo: albedo, Roughness: 1}
	}
	p.Intensity = ibl.Intensity{Diffuse: 1, Specular: 0}
	return p
}

func closeTo(got uint8, want int, tol int) bool {
	d := int(got) - want
	return d >= -tol && d <= tol
}

func TestTargetClearAndImage(t *testing.T) {
	tg := NewTarget(3, 2)
	tg.ClearDepth()
	for i, d := range tg.Depth {
		if !math.IsInf(float64(d), 1) {
			t.Fatalf("depth %d: got %f, want +Inf", i, d)
		}
	}
	tg.set(0, 0, mgl32.Vec3{1, 0, 0})
	img := tg.Image()
	if c := img.RGBAAt(0, 1); c != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("bottom-left pixel after flip: got %v", c)
	}
}

func TestClipNear(t *testing.T) {
	in := []clipVertex{
		{clip: mgl32.Vec4{0, 0, 0, 1}},
		{clip: mgl32.Vec4{1, 0, 0, 1}},
		{clip: mgl32.Vec4{0, 1, 0, -1}},
	}
	out := clipNear(in)
	if len(out) != 4 {
		t.Fatalf("clipped polygon: got %d vertices, want 4", len(out))
	}
	for _, v := range out {
		if v.clip[3] < nearW-1e-7 {
			t.Errorf("vertex behind near plane: %v", v.clip)
		}
	}
	for i := range in {
		in[i].clip[3] = -1
	}
	if out := clipNear(in); len(out) != 0 {
		t.Errorf("fully clipped: got %d vertices", len(out))
	}
}

func TestRenderBoxInFront(t *testing.T) {
	b, err := NewBackend(flatCube(t), testMeshes(t), 0)
	if err != nil {
		t.Fatal(err)
	}
	d := frame.NewDriver(b, frame.Cubemap, camera.DefaultLens())
	state := scene.State{
		Camera:  mgl32.Vec3{0, 0, 30},
		Objects: []scene.Object{{Kind: scene.Box, Transform: scene.Identity()}},
	}
	if err := d.Frame(state, diffuseOnly(mgl32.Vec3{1, 0, 0}), frame.Viewport{Width: 64, Height: 64}); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	img := b.Screen().Color
	if c := img.RGBAAt(32, 32); !closeTo(c.R, gray, 2) || c.G != 0 || c.B != 0 {
		t.Errorf("box center: got %v, want (%d, 0, 0)", c, gray)
	}
	if c := img.RGBAAt(1, 1); !closeTo(c.R, gray, 2) || !closeTo(c.G, gray, 2) {
		t.Errorf("background: got %v, want gray", c)
	}
}

func TestBackFacesCulled(t *testing.T) {
	b, err := NewBackend(flatCube(t), testMeshes(t), 0)
	if err != nil {
		t.Fatal(err)
	}
	d := frame.NewDriver(b, frame.Cubemap, camera.DefaultLens())
	// Inside the box every face points away from the eye.
	state := scene.State{
		Camera:  mgl32.Vec3{0, 0, 1},
		Objects: []scene.Object{{Kind: scene.Box, Transform: scene.Identity()}},
	}
	if err := d.Frame(state, diffuseOnly(mgl32.Vec3{1, 0, 0}), frame.Viewport{Width: 16, Height: 16}); err != nil {
		t.Fatal(err)
	}
	if c := b.Screen().Color.RGBAAt(8, 8); !closeTo(c.G, gray, 2) {
		t.Errorf("center pixel: got %v, want background", c)
	}
}

func TestDynamicCaptureSeesNeighbours(t *testing.T) {
	b, err := NewBackend(flatCube(t), testMeshes(t), 32)
	if err != nil {
		t.Fatal(err)
	}
	d := frame.NewDriver(b, frame.Dynamic, camera.DefaultLens())
	state := scene.State{
		Camera: mgl32.Vec3{0, 0, 30},
		Objects: []scene.Object{
			{Kind: scene.Sphere, Transform: scene.Identity(), ReceivesCapture: true},
			{Kind: scene.Box, Transform: scene.At(mgl32.Vec3{-15, 0, 0}, mgl32.Vec3{})},
		},
	}
	if err := d.Frame(state, diffuseOnly(mgl32.Vec3{0, 0, 1}), frame.Viewport{Width: 32, Height: 32}); err != nil {
		t.Fatalf("Frame: %v", err)
	}

	cube := b.Captured()
	if c := cube.Face(envmap.NegativeX).RGBAAt(16, 16); c.R != 0 || !closeTo(c.B, gray, 2) {
		t.Errorf("-X face center: got %v, want the blue box", c)
	}
	if c := cube.Face(envmap.PositiveX).RGBAAt(16, 16); !closeTo(c.R, gray, 2) {
		t.Errorf("+X face center: got %v, want sky", c)
	}
	// The sphere is never captured: looking down +Y from its center sees sky.
	if c := cube.Face(envmap.PositiveY).RGBAAt(16, 16); !closeTo(c.R, gray, 2) {
		t.Errorf("+Y face center: got %v, want sky", c)
	}
}

func TestCapturedReadDuringCaptureFails(t *testing.T) {
	b, err := NewBackend(flatCube(t), testMeshes(t), 8)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.BeginCapture(envmap.PositiveX); err != nil {
		t.Fatal(err)
	}
	call := frame.DrawCall{
		Kind: scene.Sphere,
		Env:  frame.EnvCaptured,
		Uniforms: ibl.Uniforms{
			MVP:       mgl32.Ident4(),
			Material:  ibl.Material{Albedo: mgl32.Vec3{1, 1, 1}},
			Intensity: ibl.Intensity{Diffuse: 1, Specular: 1},
		},
	}
	if err := b.DrawObject(call); err == nil {
		t.Error("expected error sampling the cube being captured")
	}
}

func TestNoCaptureWithoutCube(t *testing.T) {
	b, err := NewBackend(flatCube(t), testMeshes(t), 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.BeginCapture(envmap.PositiveX); err == nil {
		t.Error("BeginCapture without a captured cube should fail")
	}
	if err := b.DrawSkybox(frame.EnvStatic, envmapPass()); err == nil {
		t.Error("DrawSkybox with no target should fail")
	}
}

func envmapPass() skybox.Pass {
	return skybox.FacePass(envmap.PositiveX)
}
