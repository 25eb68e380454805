package geometry

import (
	"fmt"
	"math"
)

// CreateSphere builds a UV sphere centered at the origin with explicit pole vertices.
//
// Vertex 0 is the south pole (0, -radius, 0), followed by thetaSegments-1 rings of
// phiSegments vertices ordered from south to north, and finally the north pole.
// thetaSegments must be at least 2 and phiSegments at least 1.
func CreateSphere(radius float64, thetaSegments, phiSegments int) (*Mesh, error) {
	if err := checkSize("sphere radius", radius); err != nil {
		return nil, err
	}
	if err := checkSegments("sphere theta segments", thetaSegments, 2); err != nil {
		return nil, err
	}
	if err := checkSegments("sphere phi segments", phiSegments, 1); err != nil {
		return nil, err
	}

	rings := thetaSegments - 1
	vertexCount := 2 + int64(rings)*int64(phiSegments)
	if err := checkVertexCount(vertexCount); err != nil {
		return nil, fmt.Errorf("sphere: %w", err)
	}
	indexCount := 6*phiSegments + 6*phiSegments*(thetaSegments-2)
	b := newBuilder(int(vertexCount), indexCount)

	thetaStep := math.Pi / float64(thetaSegments)
	phiStep := 2 * math.Pi / float64(phiSegments)

	b.vertex([3]float64{0, -radius, 0}, [3]float64{0, -1, 0})
	for row := 1; row <= rings; row++ {
		theta := math.Pi - float64(row)*thetaStep
		sinT, cosT := math.Sincos(theta)
		for col := 0; col < phiSegments; col++ {
			sinP, cosP := math.Sincos(-float64(col) * phiStep)
			p := [3]float64{radius * sinT * cosP, radius * cosT, radius * sinT * sinP}
			b.vertex(p, normalize(p))
		}
	}
	b.vertex([3]float64{0, radius, 0}, [3]float64{0, 1, 0})

	phi := uint32(phiSegments)
	ring := func(row, col uint32) uint32 { return 1 + row*phi + col%phi }

	for col := uint32(0); col < phi; col++ {
		b.triangle(0, ring(0, col+1), ring(0, col))
	}
	for row := uint32(0); row+1 < uint32(rings); row++ {
		for col := uint32(0); col < phi; col++ {
			b.quad(ring(row, col), ring(row, col+1), ring(row+1, col), ring(row+1, col+1))
		}
	}
	north := uint32(vertexCount - 1)
	last := uint32(rings - 1)
	for col := uint32(0); col < phi; col++ {
		b.triangle(north, ring(last, col), ring(last, col+1))
	}

	return &b.mesh, nil
}
