package game

import (
	"github.com/spaghettifunk/arkanoop/engine/core"
	"github.com/spaghettifunk/arkanoop/engine/math"
)

// Paddle is steered with the arrow keys or A/D and stays inside the view.
type Paddle struct {
	Sprite
	Speed float32
}

func NewPaddle(size math.Vec2, speed float32) *Paddle {
	return &Paddle{Sprite: NewSprite(math.NewVec2Zero(), size), Speed: speed}
}

// Place centres the paddle horizontally, offset units above the bottom edge.
func (p *Paddle) Place(view math.Vec2, offset float32) {
	p.Origin = math.NewVec2(view.X/2, view.Y-offset-p.HalfSize.Y)
	p.Velocity = math.NewVec2Zero()
}

func (p *Paddle) Update(dt float32, input *core.Input, view math.Vec2) {
	var dir float32
	if input.IsKeyDown(core.KEY_LEFT) || input.IsKeyDown(core.KEY_A) {
		dir--
	}
	if input.IsKeyDown(core.KEY_RIGHT) || input.IsKeyDown(core.KEY_D) {
		dir++
	}
	p.Velocity.X = dir * p.Speed
	p.Origin.X = math.Clamp(p.Origin.X+p.Velocity.X*dt, p.HalfSize.X, view.X-p.HalfSize.X)
}
