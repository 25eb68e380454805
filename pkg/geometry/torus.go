package geometry

import (
	"fmt"
	"math"
)

// CreateTorus builds a torus around the Y axis. The outer loop walks the major
// angle around the ring, the inner loop the minor angle around the tube; both
// wrap so the lattice has no seam.
func CreateTorus(majorRadius, minorRadius float64, majorSegments, minorSegments int) (*Mesh, error) {
	if err := checkSize("torus major radius", majorRadius); err != nil {
		return nil, err
	}
	if err := checkSize("torus minor radius", minorRadius); err != nil {
		return nil, err
	}
	if err := checkSegments("torus major segments", majorSegments, 1); err != nil {
		return nil, err
	}
	if err := checkSegments("torus minor segments", minorSegments, 1); err != nil {
		return nil, err
	}

	vertexCount := int64(majorSegments) * int64(minorSegments)
	if err := checkVertexCount(vertexCount); err != nil {
		return nil, fmt.Errorf("torus: %w", err)
	}
	b := newBuilder(int(vertexCount), 6*int(vertexCount))

	majorStep := 2 * math.Pi / float64(majorSegments)
	minorStep := 2 * math.Pi / float64(minorSegments)

	for a := 0; a < majorSegments; a++ {
		sinA, cosA := math.Sincos(-float64(a) * majorStep)
		center := [3]float64{majorRadius * cosA, 0, majorRadius * sinA}
		for i := 0; i < minorSegments; i++ {
			sinM, cosM := math.Sincos(float64(i) * minorStep)
			reach := majorRadius + minorRadius*cosM
			p := [3]float64{reach * cosA, minorRadius * sinM, reach * sinA}
			b.vertex(p, normalize([3]float64{p[0] - center[0], p[1] - center[1], p[2] - center[2]}))
		}
	}

	major, minor := uint32(majorSegments), uint32(minorSegments)
	at := func(a, i uint32) uint32 { return i%minor + (a%major)*minor }
	for a := uint32(0); a < major; a++ {
		for i := uint32(0); i < minor; i++ {
			b.quad(at(a, i), at(a+1, i), at(a, i+1), at(a+1, i+1))
		}
	}

	return &b.mesh, nil
}
