package renderer

import (
	"testing"

	"github.com/google/uuid"
	"github.com/spaghettifunk/arkanoop/engine/core"
	"github.com/spaghettifunk/arkanoop/engine/math"
	"github.com/spaghettifunk/arkanoop/engine/renderer/gltest"
	"github.com/spaghettifunk/arkanoop/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triangleStreams() [][]math.Vec4 {
	positions := []math.Vec4{
		math.NewVec4(0, 0, 0, 1),
		math.NewVec4(1, 0, 0, 1),
		math.NewVec4(0, 1, 0, 1),
	}
	colours := []math.Vec4{math.NewVec4One(), math.NewVec4One(), math.NewVec4One()}
	return [][]math.Vec4{positions, colours}
}

func TestCreateThenDestroyMeshLeavesNoObjects(t *testing.T) {
	r, dev, _ := newTestRenderer(t, DefaultRendererConfig())
	require.NoError(t, r.Initialize(nil, nil))
	buffersBefore := dev.Live(gltest.KindBuffer)
	arraysBefore := dev.Live(gltest.KindVertexArray)

	mesh, err := r.CreateMesh(metadata.DrawModeTriangles, triangleStreams(), 2)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, mesh.ID)
	assert.Equal(t, int32(3), mesh.VertexCount)
	assert.Equal(t, 2, mesh.BufferCount())
	assert.Equal(t, buffersBefore+2, dev.Live(gltest.KindBuffer))
	assert.Equal(t, arraysBefore+1, dev.Live(gltest.KindVertexArray))

	layout := dev.Attribs[mesh.VaoID]
	require.Len(t, layout, 2)
	for i, id := range mesh.BufferIDs {
		a := layout[uint32(i)]
		assert.Equal(t, gltest.Attrib{Components: 4, Stride: 16, Offset: 0, Enabled: true, Buffer: id}, a)
		assert.Equal(t, metadata.BufferUsageStatic, dev.Buffers[id].Usage)
		assert.Len(t, dev.Buffers[id].Data, 3*16)
	}
	assertNothingBound(t, dev)

	r.DestroyMesh(mesh)
	assert.Equal(t, buffersBefore, dev.Live(gltest.KindBuffer))
	assert.Equal(t, arraysBefore, dev.Live(gltest.KindVertexArray))
	assert.Zero(t, mesh.VaoID)
	assert.Zero(t, mesh.BufferCount())

	// Destroying twice is harmless.
	r.DestroyMesh(mesh)
	r.DestroyMesh(nil)
	assert.Equal(t, buffersBefore, dev.Live(gltest.KindBuffer))
}

func TestCreateMeshRejectsInconsistentInput(t *testing.T) {
	r, dev, _ := newTestRenderer(t, DefaultRendererConfig())
	streams := triangleStreams()

	tests := []struct {
		name        string
		arrays      [][]math.Vec4
		bufferCount int
	}{
		{name: "more buffers than streams", arrays: streams, bufferCount: 3},
		{name: "fewer buffers than streams", arrays: streams, bufferCount: 1},
		{name: "no buffers", arrays: nil, bufferCount: 0},
		{name: "uneven streams", arrays: [][]math.Vec4{streams[0], streams[1][:2]}, bufferCount: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh, err := r.CreateMesh(metadata.DrawModeTriangles, tt.arrays, tt.bufferCount)
			assert.ErrorIs(t, err, core.ErrInvalidMesh)
			assert.Nil(t, mesh)
			assert.Zero(t, dev.LiveTotal())
		})
	}
}

func TestDrawMesh(t *testing.T) {
	r, dev, _ := newTestRenderer(t, DefaultRendererConfig())
	mesh, err := r.CreateMesh(metadata.DrawModeLineStrip, triangleStreams(), 2)
	require.NoError(t, err)
	t.Cleanup(func() { r.DestroyMesh(mesh) })

	r.DrawMesh(mesh)

	require.Len(t, dev.Draws, 1)
	dc := dev.Draws[0]
	assert.Equal(t, mesh.VaoID, dc.VertexArray)
	assert.Equal(t, metadata.DrawModeLineStrip, dc.Mode)
	assert.Equal(t, int32(3), dc.Count)
	assert.False(t, dc.Indexed)
	assert.Zero(t, dev.BoundVertexArray)
}
