package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Every vertex type starts with position and normal; color follows at the
// same offset with 3 or 4 components.
const (
	offsetPosition = 0
	offsetNormal   = 3 * 4
	offsetColor    = 6 * 4
)

// gpuMesh is an indexed triangle mesh resident on the GPU.
type gpuMesh struct {
	vao, vbo, ebo uint32
	count         int32
	bytes         int
}

// newGPUMesh uploads interleaved vertices of the given stride and color width.
func newGPUMesh(data unsafe.Pointer, bytes int, stride, colorSize int32, indices []uint32, usage uint32) *gpuMesh {
	m := &gpuMesh{count: int32(len(indices)), bytes: bytes}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, bytes, data, usage)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, offsetPosition)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, offsetNormal)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, colorSize, gl.FLOAT, false, stride, offsetColor)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	return m
}

// update rewrites the vertex buffer in place. The size must not change.
func (m *gpuMesh) update(data unsafe.Pointer, bytes int) {
	if bytes != m.bytes {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, bytes, data)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (m *gpuMesh) draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

func (m *gpuMesh) destroy() {
	if m == nil {
		return
	}
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.ebo)
}
