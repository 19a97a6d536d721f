// Package gltest provides an in-memory graphics device that records every
// call made by the renderer. It tracks live objects, bindings, buffer stores,
// attribute layouts and draw calls so tests can assert on GPU state without a
// context.
package gltest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spaghettifunk/arkanoop/engine/math"
	"github.com/spaghettifunk/arkanoop/engine/renderer/metadata"
)

// Source markers understood by the fake compiler and linker.
const (
	CompileErrorMarker  = "#error"
	LinkErrorMarker     = "#link-error"
	ValidateErrorMarker = "#validate-error"
)

type ObjectKind int

const (
	KindVertexArray ObjectKind = iota
	KindBuffer
	KindTexture
	KindShader
	KindProgram
)

func (k ObjectKind) String() string {
	switch k {
	case KindVertexArray:
		return "vertex-array"
	case KindBuffer:
		return "buffer"
	case KindTexture:
		return "texture"
	case KindShader:
		return "shader"
	case KindProgram:
		return "program"
	default:
		return "unknown"
	}
}

type Attrib struct {
	Components int32
	Stride     int32
	Offset     uintptr
	Enabled    bool
	Buffer     uint32
}

type BufferStore struct {
	Data  []byte
	Usage metadata.BufferUsage
}

type TextureState struct {
	Width  int32
	Height int32
	Format metadata.PixelFormat
	Params metadata.TextureParams
	Mipmap bool
	Pixels []byte
}

type shaderState struct {
	stage    metadata.ShaderStage
	source   string
	compiled bool
	log      string
}

type programState struct {
	attached  map[uint32]bool
	linked    bool
	validated bool
	log       string
	uniforms  map[string]int32
	values    map[int32]interface{}
}

// DrawCall is a snapshot of the binding state at the time of a draw.
type DrawCall struct {
	Mode          metadata.DrawMode
	Indexed       bool
	First         int32
	Count         int32
	Offset        uintptr
	VertexArray   uint32
	ArrayBuffer   uint32
	ElementBuffer uint32
	Program       uint32
	Attribs       map[uint32]Attrib
}

// Device implements the renderer backend in memory. The zero value is not
// usable, call NewDevice.
type Device struct {
	nextID uint32
	live   map[ObjectKind]map[uint32]bool

	// Created and Deleted count every successful creation and deletion.
	Created map[ObjectKind]int
	Deleted map[ObjectKind]int

	BoundVertexArray   uint32
	BoundArrayBuffer   uint32
	BoundElementBuffer uint32
	BoundProgram       uint32
	BoundTexture       uint32
	ActiveUnit         uint32
	Wireframe          bool
	ClearColour        math.Vec4
	Clears             int
	ViewportSize       [4]int32

	Buffers  map[uint32]*BufferStore
	Textures map[uint32]*TextureState
	// Attribs holds the attribute layout recorded per vertex array.
	Attribs map[uint32]map[uint32]Attrib

	shaders  map[uint32]*shaderState
	programs map[uint32]*programState

	Draws []DrawCall
	// Calls lists method names in call order.
	Calls []string

	// FailGen makes every Gen* call return 0.
	FailGen bool
	// LastError is returned by Error and then cleared.
	LastError string
}

func NewDevice() *Device {
	d := &Device{
		live:     make(map[ObjectKind]map[uint32]bool),
		Created:  make(map[ObjectKind]int),
		Deleted:  make(map[ObjectKind]int),
		Buffers:  make(map[uint32]*BufferStore),
		Textures: make(map[uint32]*TextureState),
		Attribs:  make(map[uint32]map[uint32]Attrib),
		shaders:  make(map[uint32]*shaderState),
		programs: make(map[uint32]*programState),
	}
	for _, k := range []ObjectKind{KindVertexArray, KindBuffer, KindTexture, KindShader, KindProgram} {
		d.live[k] = make(map[uint32]bool)
	}
	return d
}

// Live returns the number of objects of kind that exist right now.
func (d *Device) Live(kind ObjectKind) int {
	return len(d.live[kind])
}

// LiveTotal returns the number of objects of every kind that exist right now.
func (d *Device) LiveTotal() int {
	n := 0
	for _, m := range d.live {
		n += len(m)
	}
	return n
}

func (d *Device) IsLive(kind ObjectKind, id uint32) bool {
	return d.live[kind][id]
}

// Uniform returns the last value uploaded to name in program.
func (d *Device) Uniform(program uint32, name string) (interface{}, bool) {
	p, ok := d.programs[program]
	if !ok {
		return nil, false
	}
	loc, ok := p.uniforms[name]
	if !ok {
		return nil, false
	}
	v, ok := p.values[loc]
	return v, ok
}

// ProgramLinked reports whether program exists and linked successfully.
func (d *Device) ProgramLinked(program uint32) bool {
	p, ok := d.programs[program]
	return ok && p.linked
}

// ResetLog forgets recorded calls and draws, keeping objects alive.
func (d *Device) ResetLog() {
	d.Calls = nil
	d.Draws = nil
}

func (d *Device) record(name string, args ...interface{}) {
	if len(args) == 0 {
		d.Calls = append(d.Calls, name)
		return
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprint(a)
	}
	d.Calls = append(d.Calls, name+"("+strings.Join(parts, ",")+")")
}

func (d *Device) gen(kind ObjectKind) uint32 {
	if d.FailGen {
		return 0
	}
	d.nextID++
	id := d.nextID
	d.live[kind][id] = true
	d.Created[kind]++
	return id
}

func (d *Device) del(kind ObjectKind, id uint32) bool {
	if id == 0 || !d.live[kind][id] {
		return false
	}
	delete(d.live[kind], id)
	d.Deleted[kind]++
	return true
}

func (d *Device) GenVertexArray() uint32 {
	id := d.gen(KindVertexArray)
	d.record("GenVertexArray")
	return id
}

func (d *Device) DeleteVertexArray(id uint32) {
	d.record("DeleteVertexArray", id)
	if d.del(KindVertexArray, id) {
		delete(d.Attribs, id)
		if d.BoundVertexArray == id {
			d.BoundVertexArray = 0
		}
	}
}

func (d *Device) BindVertexArray(id uint32) {
	d.record("BindVertexArray", id)
	d.BoundVertexArray = id
}

func (d *Device) GenBuffer() uint32 {
	id := d.gen(KindBuffer)
	d.record("GenBuffer")
	return id
}

func (d *Device) DeleteBuffer(id uint32) {
	d.record("DeleteBuffer", id)
	if d.del(KindBuffer, id) {
		delete(d.Buffers, id)
		if d.BoundArrayBuffer == id {
			d.BoundArrayBuffer = 0
		}
		if d.BoundElementBuffer == id {
			d.BoundElementBuffer = 0
		}
	}
}

func (d *Device) BindBuffer(target metadata.BufferTarget, id uint32) {
	if target == metadata.BufferTargetElementArray {
		d.record("BindElementBuffer", id)
		d.BoundElementBuffer = id
		return
	}
	d.record("BindArrayBuffer", id)
	d.BoundArrayBuffer = id
}

func (d *Device) BufferData(target metadata.BufferTarget, data []byte, usage metadata.BufferUsage) {
	id := d.BoundArrayBuffer
	name := "ArrayBufferData"
	if target == metadata.BufferTargetElementArray {
		id = d.BoundElementBuffer
		name = "ElementBufferData"
	}
	d.record(name, len(data))
	if id == 0 {
		d.LastError = "GL_INVALID_OPERATION"
		return
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	d.Buffers[id] = &BufferStore{Data: cp, Usage: usage}
}

func (d *Device) VertexAttribPointer(index uint32, components int32, stride int32, offset uintptr) {
	d.record("VertexAttribPointer", index, components, stride, offset)
	if d.BoundVertexArray == 0 {
		d.LastError = "GL_INVALID_OPERATION"
		return
	}
	layout := d.Attribs[d.BoundVertexArray]
	if layout == nil {
		layout = make(map[uint32]Attrib)
		d.Attribs[d.BoundVertexArray] = layout
	}
	a := layout[index]
	a.Components = components
	a.Stride = stride
	a.Offset = offset
	a.Buffer = d.BoundArrayBuffer
	layout[index] = a
}

func (d *Device) EnableVertexAttribArray(index uint32) {
	d.record("EnableVertexAttribArray", index)
	if d.BoundVertexArray == 0 {
		d.LastError = "GL_INVALID_OPERATION"
		return
	}
	layout := d.Attribs[d.BoundVertexArray]
	if layout == nil {
		layout = make(map[uint32]Attrib)
		d.Attribs[d.BoundVertexArray] = layout
	}
	a := layout[index]
	a.Enabled = true
	layout[index] = a
}

func (d *Device) snapshot(mode metadata.DrawMode) DrawCall {
	attribs := make(map[uint32]Attrib)
	for k, v := range d.Attribs[d.BoundVertexArray] {
		attribs[k] = v
	}
	return DrawCall{
		Mode:          mode,
		VertexArray:   d.BoundVertexArray,
		ArrayBuffer:   d.BoundArrayBuffer,
		ElementBuffer: d.BoundElementBuffer,
		Program:       d.BoundProgram,
		Attribs:       attribs,
	}
}

func (d *Device) DrawArrays(mode metadata.DrawMode, first, count int32) {
	d.record("DrawArrays", mode, first, count)
	dc := d.snapshot(mode)
	dc.First = first
	dc.Count = count
	d.Draws = append(d.Draws, dc)
}

func (d *Device) DrawElements(mode metadata.DrawMode, count int32, offset uintptr) {
	d.record("DrawElements", mode, count, offset)
	dc := d.snapshot(mode)
	dc.Indexed = true
	dc.Count = count
	dc.Offset = offset
	d.Draws = append(d.Draws, dc)
}

func (d *Device) GenTexture() uint32 {
	id := d.gen(KindTexture)
	d.record("GenTexture")
	return id
}

func (d *Device) DeleteTexture(id uint32) {
	d.record("DeleteTexture", id)
	if d.del(KindTexture, id) {
		delete(d.Textures, id)
		if d.BoundTexture == id {
			d.BoundTexture = 0
		}
	}
}

func (d *Device) ActiveTexture(unit uint32) {
	d.record("ActiveTexture", unit)
	d.ActiveUnit = unit
}

func (d *Device) BindTexture(id uint32) {
	d.record("BindTexture", id)
	d.BoundTexture = id
}

func (d *Device) boundTexture() *TextureState {
	if d.BoundTexture == 0 {
		d.LastError = "GL_INVALID_OPERATION"
		return nil
	}
	ts := d.Textures[d.BoundTexture]
	if ts == nil {
		ts = &TextureState{}
		d.Textures[d.BoundTexture] = ts
	}
	return ts
}

func (d *Device) TexParameters(params metadata.TextureParams) {
	d.record("TexParameters")
	if ts := d.boundTexture(); ts != nil {
		ts.Params = params
	}
}

func (d *Device) TexImage2D(width, height int32, format metadata.PixelFormat, pixels []byte) {
	d.record("TexImage2D", width, height)
	if ts := d.boundTexture(); ts != nil {
		ts.Width = width
		ts.Height = height
		ts.Format = format
		ts.Pixels = append([]byte(nil), pixels...)
	}
}

func (d *Device) GenerateMipmap() {
	d.record("GenerateMipmap")
	if ts := d.boundTexture(); ts != nil {
		ts.Mipmap = true
	}
}

func (d *Device) CreateShader(stage metadata.ShaderStage) uint32 {
	d.record("CreateShader", stage)
	id := d.gen(KindShader)
	if id != 0 {
		d.shaders[id] = &shaderState{stage: stage}
	}
	return id
}

func (d *Device) ShaderSource(id uint32, source string) {
	d.record("ShaderSource", id)
	if s, ok := d.shaders[id]; ok {
		s.source = source
	}
}

func (d *Device) CompileShader(id uint32) {
	d.record("CompileShader", id)
	s, ok := d.shaders[id]
	if !ok {
		return
	}
	if i := strings.Index(s.source, CompileErrorMarker); i >= 0 {
		line := 1 + strings.Count(s.source[:i], "\n")
		s.compiled = false
		s.log = fmt.Sprintf("0:%d: error: %s", line, strings.TrimSpace(firstLine(s.source[i:])))
		return
	}
	s.compiled = true
	s.log = ""
}

func (d *Device) CompileStatus(id uint32) bool {
	s, ok := d.shaders[id]
	return ok && s.compiled
}

func (d *Device) ShaderInfoLog(id uint32, maxLength int32) string {
	s, ok := d.shaders[id]
	if !ok {
		return ""
	}
	return truncate(s.log, maxLength)
}

func (d *Device) DeleteShader(id uint32) {
	d.record("DeleteShader", id)
	if d.del(KindShader, id) {
		delete(d.shaders, id)
	}
}

func (d *Device) CreateProgram() uint32 {
	d.record("CreateProgram")
	id := d.gen(KindProgram)
	if id != 0 {
		d.programs[id] = &programState{
			attached: make(map[uint32]bool),
			uniforms: make(map[string]int32),
			values:   make(map[int32]interface{}),
		}
	}
	return id
}

func (d *Device) AttachShader(program, shader uint32) {
	d.record("AttachShader", program, shader)
	if p, ok := d.programs[program]; ok {
		p.attached[shader] = true
	}
}

func (d *Device) DetachShader(program, shader uint32) {
	d.record("DetachShader", program, shader)
	if p, ok := d.programs[program]; ok {
		delete(p.attached, shader)
	}
}

var uniformPattern = regexp.MustCompile(`uniform\s+\w+\s+(\w+)\s*;`)

func (d *Device) LinkProgram(id uint32) {
	d.record("LinkProgram", id)
	p, ok := d.programs[id]
	if !ok {
		return
	}
	p.linked = false
	p.uniforms = make(map[string]int32)
	p.values = make(map[int32]interface{})

	stages := map[metadata.ShaderStage]bool{}
	var sources []string
	for sid := range p.attached {
		s, ok := d.shaders[sid]
		if !ok || !s.compiled {
			p.log = fmt.Sprintf("error: shader %d is not compiled", sid)
			return
		}
		stages[s.stage] = true
		sources = append(sources, s.source)
	}
	if !stages[metadata.ShaderStageVertex] || !stages[metadata.ShaderStageFragment] {
		p.log = "error: program needs a vertex and a fragment stage"
		return
	}
	joined := strings.Join(sources, "\n")
	if i := strings.Index(joined, LinkErrorMarker); i >= 0 {
		p.log = "error: " + strings.TrimSpace(firstLine(joined[i:]))
		return
	}

	// Locations follow first-seen order so they are stable across runs.
	loc := int32(0)
	for _, m := range uniformPattern.FindAllStringSubmatch(joined, -1) {
		if _, ok := p.uniforms[m[1]]; !ok {
			p.uniforms[m[1]] = loc
			loc++
		}
	}
	p.linked = true
	p.log = ""
}

func (d *Device) ValidateProgram(id uint32) {
	d.record("ValidateProgram", id)
	p, ok := d.programs[id]
	if !ok {
		return
	}
	p.validated = p.linked
	for sid := range p.attached {
		if s, ok := d.shaders[sid]; ok && strings.Contains(s.source, ValidateErrorMarker) {
			p.validated = false
			p.log = "validation error: " + ValidateErrorMarker
		}
	}
}

func (d *Device) LinkStatus(id uint32) bool {
	p, ok := d.programs[id]
	return ok && p.linked
}

func (d *Device) ValidateStatus(id uint32) bool {
	p, ok := d.programs[id]
	return ok && p.validated
}

func (d *Device) ProgramInfoLog(id uint32, maxLength int32) string {
	p, ok := d.programs[id]
	if !ok {
		return ""
	}
	return truncate(p.log, maxLength)
}

func (d *Device) DeleteProgram(id uint32) {
	d.record("DeleteProgram", id)
	if d.del(KindProgram, id) {
		delete(d.programs, id)
		if d.BoundProgram == id {
			d.BoundProgram = 0
		}
	}
}

func (d *Device) UseProgram(id uint32) {
	d.record("UseProgram", id)
	d.BoundProgram = id
}

func (d *Device) GetUniformLocation(program uint32, name string) int32 {
	p, ok := d.programs[program]
	if !ok || !p.linked {
		return -1
	}
	loc, ok := p.uniforms[name]
	if !ok {
		return -1
	}
	return loc
}

func (d *Device) setUniform(name string, location int32, v interface{}) {
	d.record(name, location)
	// Location -1 is silently ignored, like the real API.
	if location < 0 {
		return
	}
	p, ok := d.programs[d.BoundProgram]
	if !ok {
		d.LastError = "GL_INVALID_OPERATION"
		return
	}
	p.values[location] = v
}

func (d *Device) UniformMatrix4(location int32, m math.Mat4) {
	d.setUniform("UniformMatrix4", location, m)
}

func (d *Device) UniformVec4(location int32, v math.Vec4) {
	d.setUniform("UniformVec4", location, v)
}

func (d *Device) UniformInt(location int32, v int32) {
	d.setUniform("UniformInt", location, v)
}

func (d *Device) PolygonModeLine(on bool) {
	d.record("PolygonModeLine", on)
	d.Wireframe = on
}

func (d *Device) ClearColor(r, g, b, a float32) {
	d.record("ClearColor")
	d.ClearColour = math.NewVec4(r, g, b, a)
}

func (d *Device) Clear() {
	d.record("Clear")
	d.Clears++
}

func (d *Device) Viewport(x, y, width, height int32) {
	d.record("Viewport", x, y, width, height)
	d.ViewportSize = [4]int32{x, y, width, height}
}

func (d *Device) Error() string {
	e := d.LastError
	d.LastError = ""
	return e
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func truncate(s string, maxLength int32) string {
	if maxLength <= 0 {
		return ""
	}
	if int32(len(s)) > maxLength-1 {
		return s[:maxLength-1]
	}
	return s
}
