package renderer

import (
	"strings"
	"testing"

	"github.com/spaghettifunk/arkanoop/engine/math"
	"github.com/spaghettifunk/arkanoop/engine/renderer/gltest"
	"github.com/spaghettifunk/arkanoop/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quad() ([]metadata.Vertex, []uint32) {
	white := math.NewVec4One()
	vertices := []metadata.Vertex{
		{Position: math.NewVec2(0, 0), Texcoord: math.NewVec2(0, 0), Colour: white},
		{Position: math.NewVec2(1, 0), Texcoord: math.NewVec2(1, 0), Colour: white},
		{Position: math.NewVec2(1, 1), Texcoord: math.NewVec2(1, 1), Colour: white},
		{Position: math.NewVec2(0, 1), Texcoord: math.NewVec2(0, 1), Colour: white},
	}
	return vertices, []uint32{0, 1, 2, 2, 3, 0}
}

func assertNothingBound(t *testing.T, dev *gltest.Device) {
	t.Helper()
	assert.Zero(t, dev.BoundVertexArray)
	assert.Zero(t, dev.BoundArrayBuffer)
	assert.Zero(t, dev.BoundElementBuffer)
}

func assertVertexLayout(t *testing.T, attribs map[uint32]gltest.Attrib) {
	t.Helper()
	require.Len(t, attribs, 3)
	assert.Equal(t, gltest.Attrib{Components: 2, Stride: 32, Offset: 0, Enabled: true, Buffer: attribs[0].Buffer}, attribs[0])
	assert.Equal(t, gltest.Attrib{Components: 2, Stride: 32, Offset: 8, Enabled: true, Buffer: attribs[1].Buffer}, attribs[1])
	assert.Equal(t, gltest.Attrib{Components: 4, Stride: 32, Offset: 16, Enabled: true, Buffer: attribs[2].Buffer}, attribs[2])
}

func TestDrawUploadsAndUnbinds(t *testing.T) {
	r, dev, _ := newTestRenderer(t, DefaultRendererConfig())
	require.NoError(t, r.Initialize(nil, nil))
	vertices, _ := quad()

	r.Draw(metadata.DrawModeTriangleFan, vertices)

	require.Len(t, dev.Draws, 1)
	dc := dev.Draws[0]
	assert.False(t, dc.Indexed)
	assert.Equal(t, metadata.DrawModeTriangleFan, dc.Mode)
	assert.Equal(t, int32(0), dc.First)
	assert.Equal(t, int32(4), dc.Count)
	assert.Equal(t, r.vao, dc.VertexArray)
	assert.Equal(t, r.vbo, dc.ArrayBuffer)
	assertVertexLayout(t, dc.Attribs)
	assert.Equal(t, r.vbo, dc.Attribs[0].Buffer)

	store := dev.Buffers[r.vbo]
	require.NotNil(t, store)
	assert.Equal(t, metadata.BufferUsageStream, store.Usage)
	assert.Len(t, store.Data, 4*32)

	assertNothingBound(t, dev)
}

func TestDrawElementsUploadsIndices(t *testing.T) {
	r, dev, _ := newTestRenderer(t, DefaultRendererConfig())
	require.NoError(t, r.Initialize(nil, nil))
	vertices, indices := quad()

	r.DrawElements(metadata.DrawModeTriangles, vertices, indices)

	require.Len(t, dev.Draws, 1)
	dc := dev.Draws[0]
	assert.True(t, dc.Indexed)
	assert.Equal(t, int32(6), dc.Count)
	assert.Equal(t, uintptr(0), dc.Offset)
	assert.Equal(t, r.ebo, dc.ElementBuffer)
	assertVertexLayout(t, dc.Attribs)

	store := dev.Buffers[r.ebo]
	require.NotNil(t, store)
	assert.Equal(t, metadata.BufferUsageStream, store.Usage)
	assert.Len(t, store.Data, 6*4)

	assertNothingBound(t, dev)
}

func TestEveryDrawReplacesTheWholeBuffer(t *testing.T) {
	r, dev, _ := newTestRenderer(t, DefaultRendererConfig())
	require.NoError(t, r.Initialize(nil, nil))
	vertices, indices := quad()

	r.DrawElements(metadata.DrawModeTriangles, vertices, indices)
	r.Draw(metadata.DrawModePoints, vertices[:1])

	assert.Len(t, dev.Buffers[r.vbo].Data, 32)
	require.Len(t, dev.Draws, 2)
	assert.Equal(t, int32(1), dev.Draws[1].Count)

	pointers := 0
	for _, c := range dev.Calls {
		if strings.HasPrefix(c, "VertexAttribPointer") {
			pointers++
		}
	}
	assert.Equal(t, 6, pointers, "layout is configured on every draw")
}

func TestEmptyDrawIsZeroCount(t *testing.T) {
	r, dev, _ := newTestRenderer(t, DefaultRendererConfig())
	require.NoError(t, r.Initialize(nil, nil))

	r.Draw(metadata.DrawModeTriangles, nil)
	r.DrawElements(metadata.DrawModeTriangles, nil, nil)

	require.Len(t, dev.Draws, 2)
	assert.Equal(t, int32(0), dev.Draws[0].Count)
	assert.Equal(t, int32(0), dev.Draws[1].Count)
	assert.Empty(t, dev.Error())
	assertNothingBound(t, dev)
}

func TestDrawBeforeInitializeIsIgnored(t *testing.T) {
	r, dev, _ := newTestRenderer(t, DefaultRendererConfig())
	vertices, indices := quad()

	r.Draw(metadata.DrawModeTriangles, vertices)
	r.DrawElements(metadata.DrawModeTriangles, vertices, indices)

	assert.Empty(t, dev.Draws)
	assert.Equal(t, 0, dev.LiveTotal())
}
