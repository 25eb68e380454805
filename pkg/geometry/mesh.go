// Package geometry generates indexed triangle meshes for parametric solids.
//
// All generators produce counter-clockwise triangles when viewed from outside the
// surface, so a renderer can cull back faces uniformly across shapes.
package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrInvalidSegments is returned when a segment count is below the generator's minimum.
	ErrInvalidSegments = errors.New("invalid segment count")
	// ErrInvalidSize is returned for non-positive or non-finite dimensions.
	ErrInvalidSize = errors.New("invalid size")
	// ErrTooManyVertices is returned when a mesh cannot be addressed with 32-bit indices.
	ErrTooManyVertices = errors.New("too many vertices")
)

// Mesh is an indexed triangle list with per-vertex normals.
// Positions and Normals hold xyz triples; Indices holds three entries per triangle.
type Mesh struct {
	Positions []float32
	Normals   []float32
	Indices   []uint32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Position returns the position of vertex i.
func (m *Mesh) Position(i int) mgl32.Vec3 {
	return mgl32.Vec3{m.Positions[3*i], m.Positions[3*i+1], m.Positions[3*i+2]}
}

// Normal returns the normal of vertex i.
func (m *Mesh) Normal(i int) mgl32.Vec3 {
	return mgl32.Vec3{m.Normals[3*i], m.Normals[3*i+1], m.Normals[3*i+2]}
}

// Triangle returns the vertex indices of triangle t.
func (m *Mesh) Triangle(t int) [3]uint32 {
	return [3]uint32{m.Indices[3*t], m.Indices[3*t+1], m.Indices[3*t+2]}
}

// Bounds returns the axis-aligned bounding box of the mesh.
func (m *Mesh) Bounds() (lo, hi mgl32.Vec3) {
	if m.VertexCount() == 0 {
		return lo, hi
	}
	lo = m.Position(0)
	hi = lo
	for i := 1; i < m.VertexCount(); i++ {
		p := m.Position(i)
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], p[k])
			hi[k] = max(hi[k], p[k])
		}
	}
	return lo, hi
}

// Validate checks the structural invariants of the mesh.
func (m *Mesh) Validate() error {
	if len(m.Positions)%3 != 0 {
		return fmt.Errorf("positions length %d is not a multiple of 3", len(m.Positions))
	}
	if len(m.Normals) != len(m.Positions) {
		return fmt.Errorf("normals length %d does not match positions length %d", len(m.Normals), len(m.Positions))
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("indices length %d is not a multiple of 3", len(m.Indices))
	}
	n := uint32(m.VertexCount())
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("index %d at %d out of range (vertex count %d)", idx, i, n)
		}
	}
	return nil
}

// AddQuad appends the two triangles of a quad to indices.
// v10 is one column over from v00 and v01 one row over; the split is
// always (v00, v10, v01) followed by (v11, v01, v10).
func AddQuad(indices []uint32, v00, v10, v01, v11 uint32) []uint32 {
	return append(indices, v00, v10, v01, v11, v01, v10)
}

// builder accumulates vertex data for a mesh of known size.
type builder struct {
	mesh Mesh
}

func newBuilder(vertices, indices int) *builder {
	return &builder{mesh: Mesh{
		Positions: make([]float32, 0, 3*vertices),
		Normals:   make([]float32, 0, 3*vertices),
		Indices:   make([]uint32, 0, indices),
	}}
}

func (b *builder) vertex(p, n [3]float64) {
	b.mesh.Positions = append(b.mesh.Positions, float32(p[0]), float32(p[1]), float32(p[2]))
	b.mesh.Normals = append(b.mesh.Normals, float32(n[0]), float32(n[1]), float32(n[2]))
}

func (b *builder) triangle(v0, v1, v2 uint32) {
	b.mesh.Indices = append(b.mesh.Indices, v0, v1, v2)
}

func (b *builder) quad(v00, v10, v01, v11 uint32) {
	b.mesh.Indices = AddQuad(b.mesh.Indices, v00, v10, v01, v11)
}

func checkSize(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return fmt.Errorf("%s %v: %w", name, v, ErrInvalidSize)
	}
	return nil
}

func checkSegments(name string, v, minimum int) error {
	if v < minimum {
		return fmt.Errorf("%s %d (minimum %d): %w", name, v, minimum, ErrInvalidSegments)
	}
	return nil
}

func checkVertexCount(n int64) error {
	if n > math.MaxUint32 {
		return fmt.Errorf("%d vertices: %w", n, ErrTooManyVertices)
	}
	return nil
}

func normalize(v [3]float64) [3]float64 {
	l := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	return [3]float64{v[0] / l, v[1] / l, v[2] / l}
}
