package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/spaghettifunk/arkanoop/engine/renderer/metadata"
)

func bufferTarget(t metadata.BufferTarget) uint32 {
	if t == metadata.BufferTargetElementArray {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func bufferUsage(u metadata.BufferUsage) uint32 {
	if u == metadata.BufferUsageStatic {
		return gl.STATIC_DRAW
	}
	return gl.STREAM_DRAW
}

func drawMode(m metadata.DrawMode) uint32 {
	switch m {
	case metadata.DrawModePoints:
		return gl.POINTS
	case metadata.DrawModeLines:
		return gl.LINES
	case metadata.DrawModeLineStrip:
		return gl.LINE_STRIP
	case metadata.DrawModeTriangleStrip:
		return gl.TRIANGLE_STRIP
	case metadata.DrawModeTriangleFan:
		return gl.TRIANGLE_FAN
	default:
		return gl.TRIANGLES
	}
}

func textureFilter(f metadata.TextureFilter) int32 {
	if f == metadata.TextureFilterModeNearest {
		return gl.NEAREST
	}
	return gl.LINEAR
}

func textureRepeat(r metadata.TextureRepeat) int32 {
	switch r {
	case metadata.TextureRepeatMirroredRepeat:
		return gl.MIRRORED_REPEAT
	case metadata.TextureRepeatClampToEdge:
		return gl.CLAMP_TO_EDGE
	default:
		return gl.REPEAT
	}
}

func errorString(code uint32) string {
	switch code {
	case gl.NO_ERROR:
		return ""
	case gl.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	default:
		return fmt.Sprintf("GL error 0x%x", code)
	}
}
