// Package opengl implements the renderer backend over an OpenGL 4.1 core
// profile context. All methods must be called from the thread that owns the
// current context.
package opengl

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/spaghettifunk/arkanoop/engine/core"
	"github.com/spaghettifunk/arkanoop/engine/math"
	"github.com/spaghettifunk/arkanoop/engine/renderer"
	"github.com/spaghettifunk/arkanoop/engine/renderer/metadata"
)

type OpenGLBackend struct{}

// New loads the GL entry points for the current context.
func New() (*OpenGLBackend, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	b := &OpenGLBackend{}
	core.LogInfo("OpenGL %s", gl.GoStr(gl.GetString(gl.VERSION)))

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	return b, nil
}

func (b *OpenGLBackend) GenVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (b *OpenGLBackend) DeleteVertexArray(id uint32) {
	gl.DeleteVertexArrays(1, &id)
}

func (b *OpenGLBackend) BindVertexArray(id uint32) {
	gl.BindVertexArray(id)
}

func (b *OpenGLBackend) GenBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (b *OpenGLBackend) DeleteBuffer(id uint32) {
	gl.DeleteBuffers(1, &id)
}

func (b *OpenGLBackend) BindBuffer(target metadata.BufferTarget, id uint32) {
	gl.BindBuffer(bufferTarget(target), id)
}

func (b *OpenGLBackend) BufferData(target metadata.BufferTarget, data []byte, usage metadata.BufferUsage) {
	if len(data) == 0 {
		gl.BufferData(bufferTarget(target), 0, nil, bufferUsage(usage))
		return
	}
	gl.BufferData(bufferTarget(target), len(data), gl.Ptr(data), bufferUsage(usage))
}

func (b *OpenGLBackend) VertexAttribPointer(index uint32, components int32, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, components, gl.FLOAT, false, stride, offset)
}

func (b *OpenGLBackend) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (b *OpenGLBackend) DrawArrays(mode metadata.DrawMode, first, count int32) {
	gl.DrawArrays(drawMode(mode), first, count)
}

func (b *OpenGLBackend) DrawElements(mode metadata.DrawMode, count int32, offset uintptr) {
	gl.DrawElementsWithOffset(drawMode(mode), count, gl.UNSIGNED_INT, offset)
}

func (b *OpenGLBackend) GenTexture() uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	return id
}

func (b *OpenGLBackend) DeleteTexture(id uint32) {
	gl.DeleteTextures(1, &id)
}

func (b *OpenGLBackend) ActiveTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
}

func (b *OpenGLBackend) BindTexture(id uint32) {
	gl.BindTexture(gl.TEXTURE_2D, id)
}

func (b *OpenGLBackend) TexParameters(params metadata.TextureParams) {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, textureRepeat(params.RepeatS))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, textureRepeat(params.RepeatT))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, textureFilter(params.FilterMinify))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, textureFilter(params.FilterMagnify))
}

func (b *OpenGLBackend) TexImage2D(width, height int32, format metadata.PixelFormat, pixels []byte) {
	glFormat := uint32(gl.RGBA)
	if format == metadata.PixelFormatRGB {
		glFormat = gl.RGB
	}
	// RGB rows are not 4-byte aligned in general.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	var ptr unsafe.Pointer
	if len(pixels) > 0 {
		ptr = gl.Ptr(pixels)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, int32(glFormat), width, height, 0, glFormat, gl.UNSIGNED_BYTE, ptr)
}

func (b *OpenGLBackend) GenerateMipmap() {
	gl.GenerateMipmap(gl.TEXTURE_2D)
}

func (b *OpenGLBackend) CreateShader(stage metadata.ShaderStage) uint32 {
	if stage == metadata.ShaderStageFragment {
		return gl.CreateShader(gl.FRAGMENT_SHADER)
	}
	return gl.CreateShader(gl.VERTEX_SHADER)
}

func (b *OpenGLBackend) ShaderSource(id uint32, source string) {
	csource, free := gl.Strs(source + "\x00")
	defer free()
	gl.ShaderSource(id, 1, csource, nil)
}

func (b *OpenGLBackend) CompileShader(id uint32) {
	gl.CompileShader(id)
}

func (b *OpenGLBackend) CompileStatus(id uint32) bool {
	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (b *OpenGLBackend) ShaderInfoLog(id uint32, maxLength int32) string {
	if maxLength <= 0 {
		return ""
	}
	buf := make([]byte, maxLength)
	var length int32
	gl.GetShaderInfoLog(id, maxLength, &length, &buf[0])
	return strings.TrimRight(string(buf[:length]), "\x00\n")
}

func (b *OpenGLBackend) DeleteShader(id uint32) {
	gl.DeleteShader(id)
}

func (b *OpenGLBackend) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (b *OpenGLBackend) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (b *OpenGLBackend) DetachShader(program, shader uint32) {
	gl.DetachShader(program, shader)
}

func (b *OpenGLBackend) LinkProgram(id uint32) {
	gl.LinkProgram(id)
}

func (b *OpenGLBackend) ValidateProgram(id uint32) {
	gl.ValidateProgram(id)
}

func (b *OpenGLBackend) LinkStatus(id uint32) bool {
	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (b *OpenGLBackend) ValidateStatus(id uint32) bool {
	var status int32
	gl.GetProgramiv(id, gl.VALIDATE_STATUS, &status)
	return status != gl.FALSE
}

func (b *OpenGLBackend) ProgramInfoLog(id uint32, maxLength int32) string {
	if maxLength <= 0 {
		return ""
	}
	buf := make([]byte, maxLength)
	var length int32
	gl.GetProgramInfoLog(id, maxLength, &length, &buf[0])
	return strings.TrimRight(string(buf[:length]), "\x00\n")
}

func (b *OpenGLBackend) DeleteProgram(id uint32) {
	gl.DeleteProgram(id)
}

func (b *OpenGLBackend) UseProgram(id uint32) {
	gl.UseProgram(id)
}

func (b *OpenGLBackend) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (b *OpenGLBackend) UniformMatrix4(location int32, m math.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (b *OpenGLBackend) UniformVec4(location int32, v math.Vec4) {
	gl.Uniform4f(location, v.X, v.Y, v.Z, v.W)
}

func (b *OpenGLBackend) UniformInt(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (b *OpenGLBackend) PolygonModeLine(on bool) {
	if on {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		return
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
}

func (b *OpenGLBackend) ClearColor(r, g, bl, a float32) {
	gl.ClearColor(r, g, bl, a)
}

func (b *OpenGLBackend) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (b *OpenGLBackend) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (b *OpenGLBackend) Error() string {
	return errorString(gl.GetError())
}

var _ renderer.RendererBackend = (*OpenGLBackend)(nil)
