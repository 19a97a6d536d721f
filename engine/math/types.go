package math

import "github.com/go-gl/mathgl/mgl32"

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// Vec4 represents a 4D vector, also used for RGBA colours.
type Vec4 struct {
	X, Y, Z, W float32
}

/** @brief a 4x4 column-major matrix, laid out the way glUniformMatrix4fv expects it. */
type Mat4 = mgl32.Mat4

/**
 * @brief An axis-aligned rectangle in texture space, used to address one
 * sprite of a sprite sheet.
 */
type Rect struct {
	/** @brief The top-left corner. */
	Min Vec2
	/** @brief The bottom-right corner. */
	Max Vec2
}
