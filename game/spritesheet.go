package game

import (
	"fmt"

	"github.com/spaghettifunk/arkanoop/engine/containers"
	"github.com/spaghettifunk/arkanoop/engine/math"
)

// SpriteSheetConfig describes a texture split into a grid of equally sized
// sprites. Cells are numbered row by row starting at the top-left one.
type SpriteSheetConfig struct {
	Name string `toml:"name"`
	// Index into the renderer texture table.
	Texture int `toml:"texture"`
	Columns int `toml:"columns"`
	Rows    int `toml:"rows"`
	// Number of cells in use, 0 means all of them.
	Count int `toml:"count"`
}

type SpriteSheet struct {
	Name    string
	Texture containers.Handle
	// Pixel size of one cell.
	CellSize math.Vec2

	sprites []math.Rect
}

// NewSpriteSheet slices a width x height texture according to config.
func NewSpriteSheet(config SpriteSheetConfig, width, height uint32) (*SpriteSheet, error) {
	if config.Columns <= 0 || config.Rows <= 0 {
		return nil, fmt.Errorf("sprite sheet '%s': columns and rows must be > 0", config.Name)
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("sprite sheet '%s': empty texture", config.Name)
	}
	cells := config.Columns * config.Rows
	count := config.Count
	if count == 0 {
		count = cells
	}
	if count < 0 || count > cells {
		return nil, fmt.Errorf("sprite sheet '%s': count %d outside of the %dx%d grid", config.Name, config.Count, config.Columns, config.Rows)
	}

	du := 1.0 / float32(config.Columns)
	dv := 1.0 / float32(config.Rows)
	sheet := &SpriteSheet{
		Name:     config.Name,
		Texture:  containers.Handle(config.Texture),
		CellSize: math.NewVec2(float32(width)*du, float32(height)*dv),
		sprites:  make([]math.Rect, 0, count),
	}
	for i := 0; i < count; i++ {
		col, row := i%config.Columns, i/config.Columns
		topLeft := math.NewVec2(float32(col)*du, float32(row)*dv)
		sheet.sprites = append(sheet.sprites, math.Rect{Min: topLeft, Max: topLeft.Add(math.NewVec2(du, dv))})
	}
	return sheet, nil
}

func (s *SpriteSheet) Size() int {
	return len(s.sprites)
}

// Sprite returns the UV rect of cell i. i wraps around the sheet size.
func (s *SpriteSheet) Sprite(i int) math.Rect {
	n := len(s.sprites)
	return s.sprites[((i%n)+n)%n]
}
