package metadata

import (
	"unsafe"

	"github.com/spaghettifunk/arkanoop/engine/math"
)

/**
 * @brief A single vertex of the dynamic draw path. The field order and sizes
 * are the GPU attribute layout: position at 0, texture coordinate right after
 * the position, colour right after the texture coordinate.
 */
type Vertex struct {
	/** @brief The position of the vertex */
	Position math.Vec2
	/** @brief The texture coordinate of the vertex. */
	Texcoord math.Vec2
	/** @brief The colour of the vertex. */
	Colour math.Vec4
}

const (
	VertexSize           = int32(unsafe.Sizeof(Vertex{}))
	VertexPositionOffset = unsafe.Offsetof(Vertex{}.Position)
	VertexTexcoordOffset = unsafe.Offsetof(Vertex{}.Texcoord)
	VertexColourOffset   = unsafe.Offsetof(Vertex{}.Colour)

	VertexPositionComponents = int32(unsafe.Sizeof(math.Vec2{}) / 4)
	VertexTexcoordComponents = int32(unsafe.Sizeof(math.Vec2{}) / 4)
	VertexColourComponents   = int32(unsafe.Sizeof(math.Vec4{}) / 4)
)

/** @brief The vertex attribute locations the shaders are written against. */
const (
	AttribPosition uint32 = 0
	AttribTexcoord uint32 = 1
	AttribColour   uint32 = 2
)

// VertexBytes reinterprets vertices as the raw bytes uploaded to the GPU.
// The returned slice aliases the input.
func VertexBytes(vertices []Vertex) []byte {
	if len(vertices) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&vertices[0])), len(vertices)*int(VertexSize))
}

// IndexBytes reinterprets 32-bit indices as raw bytes. The result aliases the input.
func IndexBytes(indices []uint32) []byte {
	if len(indices) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&indices[0])), len(indices)*4)
}

// Vec4Bytes reinterprets a vec4 attribute stream as raw bytes. The result aliases the input.
func Vec4Bytes(values []math.Vec4) []byte {
	if len(values) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&values[0])), len(values)*int(unsafe.Sizeof(math.Vec4{})))
}
