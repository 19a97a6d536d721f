package game

import (
	"testing"

	"github.com/spaghettifunk/arkanoop/engine/core"
	"github.com/spaghettifunk/arkanoop/engine/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorld(t *testing.T) *World {
	t.Helper()
	config := DefaultConfig()
	config.Level.Layout = []string{"1"}
	config.Level.Lives = 2

	balls := newSheet(t, "balls", 3, 1, 48, 16)
	bricks := newSheet(t, "bricks", 2, 2, 64, 32)
	w, err := NewWorld(config, balls, bricks, view800x600)
	require.NoError(t, err)
	return w
}

// press simulates a key going down at the start of a frame.
func press(input *core.Input, key core.KeyCode) {
	input.Update()
	input.ProcessKey(key, true)
}

func release(input *core.Input, key core.KeyCode) {
	input.Update()
	input.ProcessKey(key, false)
}

func TestNewWorld(t *testing.T) {
	w := newTestWorld(t)
	assert.Equal(t, PlayStatePlaying, w.State)
	assert.Equal(t, 2, w.Lives)
	assert.Equal(t, 1, w.Remaining())
	assert.Equal(t, math.NewVec2(400, 60), w.Bricks[0].Origin)
	assert.Equal(t, math.NewVec2(400, 568), w.Paddle.Origin)
	assert.Equal(t, math.NewVec2(400, 300), w.Ball.Origin)
}

func TestWorldBallLostCostsLife(t *testing.T) {
	w := newTestWorld(t)
	input := core.NewInput()

	w.Ball.Origin = math.NewVec2(100, 599)
	w.Update(0, input)
	assert.Equal(t, 1, w.Lives)
	assert.Equal(t, PlayStatePlaying, w.State)
	assert.Equal(t, math.NewVec2(400, 300), w.Ball.Origin)

	w.Ball.Origin = math.NewVec2(100, 599)
	w.Update(0, input)
	assert.Zero(t, w.Lives)
	assert.Equal(t, PlayStateLost, w.State)

	// Nothing moves once the game is over.
	w.Update(1, input)
	assert.Equal(t, math.NewVec2(400, 300), w.Ball.Origin)
}

func TestWorldBreakBrick(t *testing.T) {
	w := newTestWorld(t)
	input := core.NewInput()

	// Just below the brick, moving up.
	w.Ball.Origin = math.NewVec2(400, 78)
	w.Ball.Velocity = math.NewVec2(0, -200)
	w.Update(0, input)

	assert.Equal(t, float32(200), w.Ball.Velocity.Y)
	assert.True(t, w.Bricks[0].Destroyed())
	assert.Equal(t, 10, w.Score)
	assert.Equal(t, PlayStateWon, w.State)
}

func TestWorldBrickSideHit(t *testing.T) {
	w := newTestWorld(t)
	w.Bricks[0].Hits = 2

	// Against the left side of the brick, moving right.
	w.Ball.Origin = math.NewVec2(362, 60)
	w.Ball.Velocity = math.NewVec2(150, 10)
	w.Update(0, core.NewInput())

	assert.Equal(t, float32(-150), w.Ball.Velocity.X)
	assert.Equal(t, float32(10), w.Ball.Velocity.Y)
	assert.Equal(t, 1, w.Bricks[0].Hits)
	assert.Zero(t, w.Score)
	assert.Equal(t, PlayStatePlaying, w.State)
}

func TestWorldPaddleBounce(t *testing.T) {
	w := newTestWorld(t)

	w.Ball.Origin = math.NewVec2(424, 556)
	w.Ball.Velocity = math.NewVec2(0, 200)
	w.Update(0, core.NewInput())

	assert.Equal(t, math.NewVec2(0.5*maxBounceSpeed, -200), w.Ball.Velocity)
	assert.Equal(t, float32(552), w.Ball.Origin.Y)

	// A ball already moving up passes through.
	w.Ball.Origin = math.NewVec2(400, 560)
	w.Ball.Velocity = math.NewVec2(0, -200)
	w.Update(0, core.NewInput())
	assert.Equal(t, float32(-200), w.Ball.Velocity.Y)
}

func TestWorldPaddleMovesWithInput(t *testing.T) {
	w := newTestWorld(t)
	input := core.NewInput()

	input.ProcessKey(core.KEY_RIGHT, true)
	w.Ball.Velocity = math.NewVec2Zero()
	w.Update(0.1, input)
	assert.InDelta(t, 442, w.Paddle.Origin.X, 1e-3)

	w.Update(10, input)
	assert.Equal(t, float32(752), w.Paddle.Origin.X)

	input.ProcessKey(core.KEY_RIGHT, false)
	input.ProcessKey(core.KEY_A, true)
	w.Update(100, input)
	assert.Equal(t, float32(48), w.Paddle.Origin.X)
}

func TestWorldPauseAndRestart(t *testing.T) {
	w := newTestWorld(t)
	input := core.NewInput()

	press(input, core.KEY_P)
	w.Update(0.5, input)
	assert.Equal(t, PlayStatePaused, w.State)
	assert.Equal(t, math.NewVec2(400, 300), w.Ball.Origin)

	release(input, core.KEY_P)
	w.Update(0.5, input)
	assert.Equal(t, PlayStatePaused, w.State)

	press(input, core.KEY_P)
	w.Update(0, input)
	assert.Equal(t, PlayStatePlaying, w.State)

	w.Score = 50
	w.Lives = 1
	w.Bricks[0].Hit()
	release(input, core.KEY_P)
	press(input, core.KEY_R)
	w.Update(0, input)
	assert.Zero(t, w.Score)
	assert.Equal(t, 2, w.Lives)
	assert.Equal(t, 1, w.Remaining())
	assert.Equal(t, PlayStatePlaying, w.State)
}
