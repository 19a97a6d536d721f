package game

// Brick takes Hits hits to destroy. Its sprite follows the hits left, so a
// damaged brick changes appearance.
type Brick struct {
	Sprite
	Hits int

	sheet *SpriteSheet
}

func NewBrick(sheet *SpriteSheet, hits int) *Brick {
	b := &Brick{Sprite: NewSprite(sheet.CellSize.MulScalar(0.5), sheet.CellSize), Hits: hits, sheet: sheet}
	b.Texture = sheet.Texture
	b.updateSprite()
	return b
}

// Hit reports whether the brick got destroyed by this hit.
func (b *Brick) Hit() bool {
	if b.Hits <= 0 {
		return false
	}
	b.Hits--
	b.updateSprite()
	return b.Hits == 0
}

func (b *Brick) Destroyed() bool {
	return b.Hits <= 0
}

func (b *Brick) updateSprite() {
	if b.Hits > 0 {
		b.UV = b.sheet.Sprite(b.Hits - 1)
	}
}
