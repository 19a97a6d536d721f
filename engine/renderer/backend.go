package renderer

import (
	"github.com/spaghettifunk/arkanoop/engine/math"
	"github.com/spaghettifunk/arkanoop/engine/renderer/metadata"
)

// RendererBackend is the thin layer over the graphics API. Object ids are the
// API's own names; 0 always means "none". Every call operates on the single
// context current on the calling thread.
type RendererBackend interface {
	// Vertex arrays and buffers.
	GenVertexArray() uint32
	DeleteVertexArray(id uint32)
	BindVertexArray(id uint32)
	GenBuffer() uint32
	DeleteBuffer(id uint32)
	BindBuffer(target metadata.BufferTarget, id uint32)
	// BufferData replaces the whole store of the buffer bound to target.
	BufferData(target metadata.BufferTarget, data []byte, usage metadata.BufferUsage)
	VertexAttribPointer(index uint32, components int32, stride int32, offset uintptr)
	EnableVertexAttribArray(index uint32)
	DrawArrays(mode metadata.DrawMode, first, count int32)
	// DrawElements reads 32-bit unsigned indices from the bound element buffer.
	DrawElements(mode metadata.DrawMode, count int32, offset uintptr)

	// Textures.
	GenTexture() uint32
	DeleteTexture(id uint32)
	ActiveTexture(unit uint32)
	BindTexture(id uint32)
	TexParameters(params metadata.TextureParams)
	TexImage2D(width, height int32, format metadata.PixelFormat, pixels []byte)
	GenerateMipmap()

	// Shaders and programs.
	CreateShader(stage metadata.ShaderStage) uint32
	ShaderSource(id uint32, source string)
	CompileShader(id uint32)
	CompileStatus(id uint32) bool
	// ShaderInfoLog returns at most maxLength-1 bytes of the compiler log.
	ShaderInfoLog(id uint32, maxLength int32) string
	DeleteShader(id uint32)
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(id uint32)
	ValidateProgram(id uint32)
	LinkStatus(id uint32) bool
	ValidateStatus(id uint32) bool
	ProgramInfoLog(id uint32, maxLength int32) string
	DeleteProgram(id uint32)
	UseProgram(id uint32)
	GetUniformLocation(program uint32, name string) int32
	UniformMatrix4(location int32, m math.Mat4)
	UniformVec4(location int32, v math.Vec4)
	UniformInt(location int32, v int32)

	// Frame state.
	PolygonModeLine(on bool)
	ClearColor(r, g, b, a float32)
	Clear()
	Viewport(x, y, width, height int32)
	// Error returns a readable description of the last API error, or "".
	Error() string
}
