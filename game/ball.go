package game

import (
	"fmt"

	"github.com/spaghettifunk/arkanoop/engine"
	"github.com/spaghettifunk/arkanoop/engine/math"
)

const (
	ballRadius = 8.0
	ballSpeed  = 200.0
)

/**
 * @brief A round sprite bouncing off the view edges. Its size is always twice
 * its radius. Leaving through the bottom edge respawns it in the middle of the
 * view with the next sprite of its sheet.
 */
type Ball struct {
	Sprite

	radius             float32
	currentSpriteIndex int
	sheet              *SpriteSheet
	view               engine.ViewSizer
}

func NewBall(sheet *SpriteSheet, view engine.ViewSizer) (*Ball, error) {
	if sheet == nil || sheet.Size() == 0 {
		return nil, fmt.Errorf("func NewBall - a non-empty sprite sheet is required")
	}
	if view == nil {
		return nil, fmt.Errorf("func NewBall - view is required")
	}
	b := &Ball{
		Sprite: NewSprite(math.NewVec2Zero(), math.NewVec2Zero()),
		sheet:  sheet,
		view:   view,
	}
	b.Texture = sheet.Texture
	b.Reset(0)
	return b, nil
}

func (b *Ball) Radius() float32 {
	return b.radius
}

func (b *Ball) SetRadius(radius float32) {
	b.SetSize(math.NewVec2(radius*2, radius*2))
	b.radius = radius
}

// SpriteIndex is the sheet cell the ball is currently drawn with.
func (b *Ball) SpriteIndex() int {
	return b.currentSpriteIndex
}

/**
 * @brief Reflects the ball off the view edges it crossed, then moves it by
 * velocity * dt. Crossing the right or left edge clamps the centre half a
 * size inside the view and points the horizontal velocity back inward; the
 * top edge does the same vertically. Crossing the bottom edge advances to the
 * next sprite and resets the ball.
 */
func (b *Ball) Update(dt float32) {
	view := b.view.ViewSize()

	if b.Right() > view.X {
		b.Origin.X = view.X - b.HalfSize.X
		b.Velocity.X = -math.Abs(b.Velocity.X)
	} else if b.Left() < 0 {
		b.Origin.X = b.HalfSize.X
		b.Velocity.X = math.Abs(b.Velocity.X)
	}

	if b.Bottom() > view.Y {
		b.Origin.Y = view.Y - b.HalfSize.Y
		b.Velocity.Y = -math.Abs(b.Velocity.Y)
		b.currentSpriteIndex++
		b.Reset(b.currentSpriteIndex)
		if b.currentSpriteIndex >= b.sheet.Size() {
			b.currentSpriteIndex = 0
		}
	} else if b.Top() < 0 {
		b.Origin.Y = b.HalfSize.Y
		b.Velocity.Y = math.Abs(b.Velocity.Y)
	}

	b.Origin = b.Origin.Add(b.Velocity.MulScalar(dt))
}

// IsIntersecting reports whether the circle of the ball touches the rectangle
// of other. The bounding boxes are compared first.
func (b *Ball) IsIntersecting(other *Sprite) bool {
	if !b.CheckAABBCollision(other) {
		return false
	}
	diff := b.Origin.Sub(other.Origin)
	closest := other.Origin.Add(math.ClampVec2(diff, other.HalfSize.Negate(), other.HalfSize))
	return closest.Sub(b.Origin).Length() < b.radius
}

// Reset puts the ball back in the middle of the view, moving down and to the
// right, drawn with sheet cell spriteIndex.
func (b *Ball) Reset(spriteIndex int) {
	view := b.view.ViewSize()
	b.UV = b.sheet.Sprite(spriteIndex % b.sheet.Size())
	b.Origin = math.NewVec2(view.X/2, view.Y/2)
	b.Velocity = math.NewVec2(ballSpeed, ballSpeed)
	b.SetRadius(ballRadius)
}
