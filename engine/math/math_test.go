package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 3, Clamp(5, 0, 3))
	assert.Equal(t, 0, Clamp(-2, 0, 3))
	assert.Equal(t, float32(1.5), Clamp(float32(1.5), 0, 3))
}

func TestClampVec2(t *testing.T) {
	half := NewVec2(4, 4)
	got := ClampVec2(NewVec2(-10, 2), half.Negate(), half)
	assert.Equal(t, NewVec2(-4, 2), got)
}

func TestVec2Length(t *testing.T) {
	assert.InDelta(t, 5.0, NewVec2(3, 4).Length(), 1e-6)
	assert.True(t, NewVec2(1, 1).Add(NewVec2(1, -1)).Compare(NewVec2(2, 0), 1e-6))
	assert.Equal(t, NewVec2(2, 4), NewVec2(1, 2).MulScalar(2))
}

func TestOrthographic2DMapsCorners(t *testing.T) {
	proj := NewMat4Orthographic2D(800, 600)

	topLeft := proj.Mul4x1([4]float32{0, 0, 0, 1})
	assert.InDelta(t, -1.0, topLeft[0], 1e-6)
	assert.InDelta(t, 1.0, topLeft[1], 1e-6)

	bottomRight := proj.Mul4x1([4]float32{800, 600, 0, 1})
	assert.InDelta(t, 1.0, bottomRight[0], 1e-6)
	assert.InDelta(t, -1.0, bottomRight[1], 1e-6)
}
