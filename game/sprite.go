package game

import (
	"github.com/spaghettifunk/arkanoop/engine/containers"
	"github.com/spaghettifunk/arkanoop/engine/math"
	"github.com/spaghettifunk/arkanoop/engine/renderer/metadata"
)

/**
 * @brief A textured, axis-aligned rectangle positioned by its centre. The y
 * axis grows downward, so Top is the smaller y.
 */
type Sprite struct {
	/** @brief The centre of the sprite, in view units. */
	Origin   math.Vec2
	HalfSize math.Vec2
	/** @brief Units per second. */
	Velocity math.Vec2
	Colour   math.Vec4
	/** @brief The sprite sheet cell, in normalized texture coordinates. */
	UV math.Rect
	/** @brief The renderer texture table entry the UV rect addresses. */
	Texture containers.Handle
}

func NewSprite(origin, size math.Vec2) Sprite {
	return Sprite{
		Origin:   origin,
		HalfSize: size.MulScalar(0.5),
		Colour:   math.NewVec4One(),
		UV:       math.Rect{Max: math.NewVec2(1, 1)},
	}
}

func (s *Sprite) Size() math.Vec2 {
	return s.HalfSize.MulScalar(2)
}

func (s *Sprite) SetSize(size math.Vec2) {
	s.HalfSize = size.MulScalar(0.5)
}

func (s *Sprite) Left() float32   { return s.Origin.X - s.HalfSize.X }
func (s *Sprite) Right() float32  { return s.Origin.X + s.HalfSize.X }
func (s *Sprite) Top() float32    { return s.Origin.Y - s.HalfSize.Y }
func (s *Sprite) Bottom() float32 { return s.Origin.Y + s.HalfSize.Y }

// CheckAABBCollision reports whether the two rectangles overlap. Touching
// edges count as overlapping.
func (s *Sprite) CheckAABBCollision(other *Sprite) bool {
	return s.Right() >= other.Left() &&
		s.Left() <= other.Right() &&
		s.Bottom() >= other.Top() &&
		s.Top() <= other.Bottom()
}

// Quad returns the four corners of the sprite and the six indices of its two
// triangles.
func (s *Sprite) Quad() ([]metadata.Vertex, []uint32) {
	return s.AppendQuad(nil, nil)
}

// AppendQuad appends the sprite to a batch. Indices are offset by the number
// of vertices already in the batch.
func (s *Sprite) AppendQuad(vertices []metadata.Vertex, indices []uint32) ([]metadata.Vertex, []uint32) {
	base := uint32(len(vertices))
	vertices = append(vertices,
		metadata.Vertex{Position: math.NewVec2(s.Left(), s.Top()), Texcoord: s.UV.Min, Colour: s.Colour},
		metadata.Vertex{Position: math.NewVec2(s.Right(), s.Top()), Texcoord: math.NewVec2(s.UV.Max.X, s.UV.Min.Y), Colour: s.Colour},
		metadata.Vertex{Position: math.NewVec2(s.Right(), s.Bottom()), Texcoord: s.UV.Max, Colour: s.Colour},
		metadata.Vertex{Position: math.NewVec2(s.Left(), s.Bottom()), Texcoord: math.NewVec2(s.UV.Min.X, s.UV.Max.Y), Colour: s.Colour},
	)
	indices = append(indices, base, base+1, base+2, base+2, base+3, base)
	return vertices, indices
}
