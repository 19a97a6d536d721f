package renderer

import (
	"fmt"

	"github.com/spaghettifunk/arkanoop/engine/core"
	"github.com/spaghettifunk/arkanoop/engine/renderer/metadata"
)

func (r *Renderer) createBuffers() error {
	r.vao = r.backend.GenVertexArray()
	r.vbo = r.backend.GenBuffer()
	r.ebo = r.backend.GenBuffer()
	if r.vao == 0 || r.vbo == 0 || r.ebo == 0 {
		err := fmt.Errorf("failed to create the shared vertex array and buffers")
		core.LogError(err.Error())
		return err
	}
	return r.checkError("createBuffers")
}

func (r *Renderer) destroyBuffers() {
	r.backend.BindVertexArray(0)
	if r.ebo != 0 {
		r.backend.DeleteBuffer(r.ebo)
		r.ebo = 0
	}
	if r.vbo != 0 {
		r.backend.DeleteBuffer(r.vbo)
		r.vbo = 0
	}
	if r.vao != 0 {
		r.backend.DeleteVertexArray(r.vao)
		r.vao = 0
	}
}

/**
 * @brief Draws vertices as a non-indexed primitive list starting at vertex 0.
 * The whole vertex buffer is replaced by vertices before drawing and every
 * binding is reset afterwards.
 */
func (r *Renderer) Draw(mode metadata.DrawMode, vertices []metadata.Vertex) {
	if !r.initialized {
		core.LogWarn("Draw skipped: %v", core.ErrNotInitialized)
		return
	}
	r.fillVertexBuffer(vertices)
	r.backend.DrawArrays(mode, 0, int32(len(vertices)))
	r.unbindBuffers()
}

/**
 * @brief Draws vertices addressed by 32-bit indices. Both buffers are replaced
 * before drawing and every binding is reset afterwards.
 */
func (r *Renderer) DrawElements(mode metadata.DrawMode, vertices []metadata.Vertex, indices []uint32) {
	if !r.initialized {
		core.LogWarn("DrawElements skipped: %v", core.ErrNotInitialized)
		return
	}
	r.fillVertexBuffer(vertices)
	r.backend.BindBuffer(metadata.BufferTargetElementArray, r.ebo)
	r.backend.BufferData(metadata.BufferTargetElementArray, metadata.IndexBytes(indices), metadata.BufferUsageStream)
	r.backend.DrawElements(mode, int32(len(indices)), 0)
	r.unbindBuffers()
}

// fillVertexBuffer binds the shared vertex array and buffer, uploads vertices
// and points the three vertex attributes into the new store.
func (r *Renderer) fillVertexBuffer(vertices []metadata.Vertex) {
	r.backend.BindVertexArray(r.vao)
	r.backend.BindBuffer(metadata.BufferTargetArray, r.vbo)
	r.backend.BufferData(metadata.BufferTargetArray, metadata.VertexBytes(vertices), metadata.BufferUsageStream)

	r.backend.VertexAttribPointer(metadata.AttribPosition, metadata.VertexPositionComponents, metadata.VertexSize, metadata.VertexPositionOffset)
	r.backend.EnableVertexAttribArray(metadata.AttribPosition)
	r.backend.VertexAttribPointer(metadata.AttribTexcoord, metadata.VertexTexcoordComponents, metadata.VertexSize, metadata.VertexTexcoordOffset)
	r.backend.EnableVertexAttribArray(metadata.AttribTexcoord)
	r.backend.VertexAttribPointer(metadata.AttribColour, metadata.VertexColourComponents, metadata.VertexSize, metadata.VertexColourOffset)
	r.backend.EnableVertexAttribArray(metadata.AttribColour)
}

func (r *Renderer) unbindBuffers() {
	r.backend.BindBuffer(metadata.BufferTargetElementArray, 0)
	r.backend.BindBuffer(metadata.BufferTargetArray, 0)
	r.backend.BindVertexArray(0)
}
