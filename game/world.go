package game

import (
	"fmt"

	"github.com/spaghettifunk/arkanoop/engine"
	"github.com/spaghettifunk/arkanoop/engine/core"
	"github.com/spaghettifunk/arkanoop/engine/math"
)

type PlayState uint8

const (
	PlayStatePlaying PlayState = iota
	PlayStatePaused
	PlayStateWon
	PlayStateLost
)

func (s PlayState) String() string {
	switch s {
	case PlayStatePlaying:
		return "playing"
	case PlayStatePaused:
		return "paused"
	case PlayStateWon:
		return "won"
	case PlayStateLost:
		return "lost"
	default:
		return "unknown"
	}
}

// maxBounceSpeed is the horizontal speed of a ball leaving a paddle edge.
const maxBounceSpeed = 1.5 * ballSpeed

// World holds the objects of one game and steps them frame by frame.
type World struct {
	Ball   *Ball
	Paddle *Paddle
	Bricks []*Brick
	Score  int
	Lives  int
	State  PlayState

	config     Config
	brickSheet *SpriteSheet
	view       engine.ViewSizer
}

func NewWorld(config Config, balls, bricks *SpriteSheet, view engine.ViewSizer) (*World, error) {
	ball, err := NewBall(balls, view)
	if err != nil {
		return nil, err
	}
	w := &World{
		Ball:       ball,
		Paddle:     NewPaddle(math.NewVec2(config.Paddle.Width, config.Paddle.Height), config.Paddle.Speed),
		config:     config,
		brickSheet: bricks,
		view:       view,
	}
	if err := w.Restart(); err != nil {
		return nil, err
	}
	return w, nil
}

// Restart rebuilds the wall and puts everything back in place.
func (w *World) Restart() error {
	view := w.view.ViewSize()
	bricks, err := BuildLevel(w.config.Level, w.brickSheet, view)
	if err != nil {
		return fmt.Errorf("failed to build level: %w", err)
	}
	w.Bricks = bricks
	w.Score = 0
	w.Lives = w.config.Level.Lives
	w.State = PlayStatePlaying
	w.Ball.Reset(w.Ball.SpriteIndex())
	w.Paddle.Place(view, w.config.Paddle.Offset)
	return nil
}

// Remaining counts the bricks still standing.
func (w *World) Remaining() int {
	n := 0
	for _, b := range w.Bricks {
		if !b.Destroyed() {
			n++
		}
	}
	return n
}

func (w *World) Update(dt float32, input *core.Input) {
	switch {
	case input.WasKeyPressed(core.KEY_R):
		if err := w.Restart(); err != nil {
			core.LogError(err.Error())
		}
		return
	case input.WasKeyPressed(core.KEY_P):
		if w.State == PlayStatePlaying {
			w.State = PlayStatePaused
		} else if w.State == PlayStatePaused {
			w.State = PlayStatePlaying
		}
	}
	if w.State != PlayStatePlaying {
		return
	}

	view := w.view.ViewSize()
	w.Paddle.Update(dt, input, view)

	// Same test the ball uses to respawn itself.
	missed := w.Ball.Bottom() > view.Y
	w.Ball.Update(dt)
	if missed {
		w.Lives--
		core.LogDebug("ball lost, %d lives left", w.Lives)
		if w.Lives <= 0 {
			w.State = PlayStateLost
			return
		}
	}

	w.bounceOffPaddle()
	w.breakBricks()
	if w.Remaining() == 0 {
		w.State = PlayStateWon
	}
}

// bounceOffPaddle sends the ball back up. The further from the paddle centre
// it lands, the more it is deflected sideways.
func (w *World) bounceOffPaddle() {
	b, p := w.Ball, w.Paddle
	if b.Velocity.Y <= 0 || !b.IsIntersecting(&p.Sprite) {
		return
	}
	offset := math.Clamp((b.Origin.X-p.Origin.X)/p.HalfSize.X, -1, 1)
	b.Velocity.X = offset * maxBounceSpeed
	b.Velocity.Y = -math.Abs(b.Velocity.Y)
	b.Origin.Y = p.Top() - b.HalfSize.Y
}

// breakBricks hits at most one brick per frame and reflects the ball along
// the axis of smallest penetration.
func (w *World) breakBricks() {
	b := w.Ball
	for _, brick := range w.Bricks {
		if brick.Destroyed() || !b.IsIntersecting(&brick.Sprite) {
			continue
		}

		fromLeft := b.Right() - brick.Left()
		fromRight := brick.Right() - b.Left()
		fromTop := b.Bottom() - brick.Top()
		fromBottom := brick.Bottom() - b.Top()

		if min(fromLeft, fromRight) < min(fromTop, fromBottom) {
			if fromLeft < fromRight {
				b.Velocity.X = -math.Abs(b.Velocity.X)
			} else {
				b.Velocity.X = math.Abs(b.Velocity.X)
			}
		} else {
			if fromTop < fromBottom {
				b.Velocity.Y = -math.Abs(b.Velocity.Y)
			} else {
				b.Velocity.Y = math.Abs(b.Velocity.Y)
			}
		}

		if brick.Hit() {
			w.Score += w.config.Level.Points
		}
		return
	}
}
