// Package scene holds the per-frame state of the IBL showcase: the camera
// position and the transforms of the three lit objects.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ObjectKind identifies one of the scene's meshes.
type ObjectKind int

const (
	Sphere ObjectKind = iota
	Torus
	Box
)

// Kinds lists every object kind in draw order.
var Kinds = []ObjectKind{Sphere, Torus, Box}

func (k ObjectKind) String() string {
	switch k {
	case Sphere:
		return "sphere"
	case Torus:
		return "torus"
	case Box:
		return "box"
	default:
		return fmt.Sprintf("ObjectKind(%d)", int(k))
	}
}

// Object is one placed mesh.
type Object struct {
	Kind      ObjectKind
	Transform Transform

	// ReceivesCapture marks the object lit by the dynamic environment. Such an
	// object is never drawn into the capture itself; every other object is, and
	// lights itself from the static environment only.
	ReceivesCapture bool
}

// CapturedInto reports whether the object is drawn into the dynamic capture.
func (o Object) CapturedInto() bool {
	return !o.ReceivesCapture
}

// CameraRig yields the camera position for a point in time.
type CameraRig interface {
	PositionAt(elapsed float32) mgl32.Vec3
}

// State is a snapshot of everything that moves, taken once per frame.
type State struct {
	Elapsed float32
	Camera  mgl32.Vec3
	Objects []Object
}

// Object returns the object of the given kind.
func (s State) Object(kind ObjectKind) (Object, bool) {
	for _, o := range s.Objects {
		if o.Kind == kind {
			return o, true
		}
	}
	return Object{}, false
}

var (
	torusOffset = mgl32.Vec3{15, 0, 0}
	boxOffset   = mgl32.Vec3{-15, 0, 0}
)

// Advance computes the scene at elapsed seconds since start. The sphere sits at
// the origin, the torus and box spin on either side of it.
func Advance(elapsed float32, rig CameraRig) State {
	return State{
		Elapsed: elapsed,
		Camera:  rig.PositionAt(elapsed),
		Objects: []Object{
			{Kind: Sphere, Transform: Identity(), ReceivesCapture: true},
			{Kind: Torus, Transform: At(torusOffset, mgl32.Vec3{0.5 * elapsed, 0.2 * elapsed, 0})},
			{Kind: Box, Transform: At(boxOffset, mgl32.Vec3{0.2 * elapsed, 0.5 * elapsed, 0})},
		},
	}
}
