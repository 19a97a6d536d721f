package metadata

/** @brief Primitive topology of a draw call. */
type DrawMode uint8

const (
	DrawModePoints DrawMode = iota
	DrawModeLines
	DrawModeLineStrip
	DrawModeTriangles
	DrawModeTriangleStrip
	DrawModeTriangleFan
)

func (m DrawMode) String() string {
	switch m {
	case DrawModePoints:
		return "points"
	case DrawModeLines:
		return "lines"
	case DrawModeLineStrip:
		return "line-strip"
	case DrawModeTriangles:
		return "triangles"
	case DrawModeTriangleStrip:
		return "triangle-strip"
	case DrawModeTriangleFan:
		return "triangle-fan"
	default:
		return "unknown"
	}
}

/** @brief Binding points for buffer objects. */
type BufferTarget uint8

const (
	/** @brief Vertex attribute data. */
	BufferTargetArray BufferTarget = iota
	/** @brief Index data, captured by the bound vertex array. */
	BufferTargetElementArray
)

/** @brief Usage hints passed with a buffer upload. */
type BufferUsage uint8

const (
	/** @brief Written once per draw and discarded. */
	BufferUsageStream BufferUsage = iota
	/** @brief Written once, drawn many times. */
	BufferUsageStatic
)

/**
 * @brief A vertex list paired with the indices that address it. Neither
 * slice is retained by the renderer after a draw call returns.
 */
type Elements struct {
	Vertices []Vertex
	Indices  []uint32
}
