package renderer

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spaghettifunk/arkanoop/engine/core"
	"github.com/spaghettifunk/arkanoop/engine/math"
	"github.com/spaghettifunk/arkanoop/engine/renderer/metadata"
)

const vec4Components int32 = 4
const vec4Size int32 = 16

/**
 * @brief Creates a static mesh with one buffer per attribute stream. arrays
 * must hold exactly bufferCount streams, all with the same number of vertices;
 * stream i is uploaded to its own buffer and fed to attribute location i as
 * a vec4.
 * @param mode The primitive topology used by DrawMesh.
 * @param arrays The attribute streams.
 * @param bufferCount The number of buffers the caller expects the mesh to own.
 */
func (r *Renderer) CreateMesh(mode metadata.DrawMode, arrays [][]math.Vec4, bufferCount int) (*metadata.Mesh, error) {
	if bufferCount <= 0 || len(arrays) != bufferCount {
		err := fmt.Errorf("mesh needs %d attribute streams, got %d: %w", bufferCount, len(arrays), core.ErrInvalidMesh)
		core.LogError(err.Error())
		return nil, err
	}
	count := len(arrays[0])
	for i, a := range arrays {
		if len(a) != count {
			err := fmt.Errorf("stream %d has %d vertices, stream 0 has %d: %w", i, len(a), count, core.ErrInvalidMesh)
			core.LogError(err.Error())
			return nil, err
		}
	}

	mesh := &metadata.Mesh{
		ID:          uuid.New(),
		Mode:        mode,
		VertexCount: int32(count),
		BufferIDs:   make([]uint32, 0, bufferCount),
	}
	mesh.VaoID = r.backend.GenVertexArray()
	if mesh.VaoID == 0 {
		err := fmt.Errorf("failed to create vertex array for mesh %s", mesh.ID)
		core.LogError(err.Error())
		return nil, err
	}

	r.backend.BindVertexArray(mesh.VaoID)
	for i, a := range arrays {
		id := r.backend.GenBuffer()
		if id == 0 {
			r.backend.BindBuffer(metadata.BufferTargetArray, 0)
			r.backend.BindVertexArray(0)
			r.DestroyMesh(mesh)
			err := fmt.Errorf("failed to create buffer %d for mesh", i)
			core.LogError(err.Error())
			return nil, err
		}
		mesh.BufferIDs = append(mesh.BufferIDs, id)

		r.backend.BindBuffer(metadata.BufferTargetArray, id)
		r.backend.BufferData(metadata.BufferTargetArray, metadata.Vec4Bytes(a), metadata.BufferUsageStatic)
		r.backend.VertexAttribPointer(uint32(i), vec4Components, vec4Size, 0)
		r.backend.EnableVertexAttribArray(uint32(i))
	}
	r.backend.BindBuffer(metadata.BufferTargetArray, 0)
	r.backend.BindVertexArray(0)

	core.LogDebug("mesh %s created with %d buffers and %d vertices", mesh.ID, mesh.BufferCount(), mesh.VertexCount)
	return mesh, nil
}

func (r *Renderer) DrawMesh(mesh *metadata.Mesh) {
	if mesh == nil || mesh.VaoID == 0 {
		return
	}
	r.backend.BindVertexArray(mesh.VaoID)
	r.backend.DrawArrays(mesh.Mode, 0, mesh.VertexCount)
	r.backend.BindVertexArray(0)
}

// DestroyMesh deletes the buffers, then the vertex array, and clears the record.
func (r *Renderer) DestroyMesh(mesh *metadata.Mesh) {
	if mesh == nil {
		return
	}
	for _, id := range mesh.BufferIDs {
		r.backend.DeleteBuffer(id)
	}
	if mesh.VaoID != 0 {
		r.backend.DeleteVertexArray(mesh.VaoID)
	}
	*mesh = metadata.Mesh{}
}
