package metadata

import "github.com/google/uuid"

/**
 * @brief A static drawable made of one vertex array object and any number of
 * buffers, one per attribute stream. Buffer i feeds attribute location i.
 */
type Mesh struct {
	/** @brief Unique identifier, used in diagnostics. */
	ID uuid.UUID
	/** @brief The number of vertices drawn by DrawMesh. */
	VertexCount int32
	/** @brief The primitive topology. */
	Mode DrawMode
	/** @brief The vertex array object. */
	VaoID uint32
	/** @brief The buffer objects, exactly as many as were requested. */
	BufferIDs []uint32
}

// BufferCount returns the number of attribute buffers owned by the mesh.
func (m *Mesh) BufferCount() int {
	return len(m.BufferIDs)
}
