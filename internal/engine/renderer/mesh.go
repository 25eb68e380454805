package renderer

import (
	"errors"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/envlight/internal/engine/skybox"
	"github.com/Faultbox/envlight/pkg/geometry"
)

// gpuMesh is an indexed mesh with positions at attribute 0 and normals at 1.
type gpuMesh struct {
	vao, vbo, ibo uint32
	count         int32
}

func uploadMesh(m *geometry.Mesh) (*gpuMesh, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if len(m.Indices) == 0 {
		return nil, errors.New("empty mesh")
	}

	// Interleave as position.xyz, normal.xyz.
	vertices := make([]float32, 0, 6*m.VertexCount())
	for i := 0; i < m.VertexCount(); i++ {
		vertices = append(vertices, m.Positions[3*i:3*i+3]...)
		vertices = append(vertices, m.Normals[3*i:3*i+3]...)
	}

	g := &gpuMesh{count: int32(len(m.Indices))}
	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &g.ibo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ibo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	const stride = 6 * 4
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 12)

	gl.BindVertexArray(0)
	return g, nil
}

func (g *gpuMesh) draw() {
	gl.BindVertexArray(g.vao)
	gl.DrawElements(gl.TRIANGLES, g.count, gl.UNSIGNED_INT, nil)
}

func (g *gpuMesh) destroy() {
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
	}
	if g.vbo != 0 {
		gl.DeleteBuffers(1, &g.vbo)
	}
	if g.ibo != 0 {
		gl.DeleteBuffers(1, &g.ibo)
	}
	*g = gpuMesh{}
}

// gpuQuad is the full-screen quad the skybox pass draws. It has no buffers:
// the vertex shader picks corners by gl_VertexID, but core profile still
// needs a bound VAO.
type gpuQuad struct {
	vao uint32
}

func newQuad() *gpuQuad {
	q := &gpuQuad{}
	gl.GenVertexArrays(1, &q.vao)
	return q
}

func (q *gpuQuad) draw() {
	gl.BindVertexArray(q.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(skybox.Indices)))
}

func (q *gpuQuad) destroy() {
	if q.vao != 0 {
		gl.DeleteVertexArrays(1, &q.vao)
	}
	*q = gpuQuad{}
}
