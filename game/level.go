package game

import (
	"fmt"

	"github.com/spaghettifunk/arkanoop/engine/math"
)

/**
 * @brief The brick wall of a level. Layout rows are read top to bottom; a
 * digit places a brick needing that many hits, '.' or ' ' leaves a gap. An
 * empty layout fills Rows x Columns with single-hit bricks.
 */
type LevelConfig struct {
	Columns     int      `toml:"columns"`
	Rows        int      `toml:"rows"`
	Layout      []string `toml:"layout"`
	BrickWidth  float32  `toml:"brick_width"`
	BrickHeight float32  `toml:"brick_height"`
	Spacing     float32  `toml:"spacing"`
	// Distance between the top of the view and the first row.
	Top float32 `toml:"top"`
	// Score awarded for every destroyed brick.
	Points int `toml:"points"`
	Lives  int `toml:"lives"`
}

func DefaultLevelConfig() LevelConfig {
	return LevelConfig{
		Columns:     10,
		Rows:        5,
		BrickWidth:  64,
		BrickHeight: 24,
		Spacing:     4,
		Top:         48,
		Points:      10,
		Lives:       3,
	}
}

func (c LevelConfig) layout() ([]string, error) {
	if len(c.Layout) > 0 {
		return c.Layout, nil
	}
	if c.Rows <= 0 || c.Columns <= 0 {
		return nil, fmt.Errorf("level needs either a layout or rows and columns > 0")
	}
	rows := make([]string, c.Rows)
	for i := range rows {
		row := make([]byte, c.Columns)
		for j := range row {
			row[j] = '1'
		}
		rows[i] = string(row)
	}
	return rows, nil
}

// BuildLevel places the bricks of config centred horizontally in view.
func BuildLevel(config LevelConfig, sheet *SpriteSheet, view math.Vec2) ([]*Brick, error) {
	if sheet == nil || sheet.Size() == 0 {
		return nil, fmt.Errorf("func BuildLevel - a non-empty brick sprite sheet is required")
	}
	if config.BrickWidth <= 0 || config.BrickHeight <= 0 {
		return nil, fmt.Errorf("brick size must be > 0, got %.1fx%.1f", config.BrickWidth, config.BrickHeight)
	}
	rows, err := config.layout()
	if err != nil {
		return nil, err
	}

	columns := 0
	for _, row := range rows {
		columns = max(columns, len(row))
	}
	size := math.NewVec2(config.BrickWidth, config.BrickHeight)
	step := size.Add(math.NewVec2(config.Spacing, config.Spacing))
	width := float32(columns)*step.X - config.Spacing
	start := math.NewVec2((view.X-width)/2, config.Top).Add(size.MulScalar(0.5))

	var bricks []*Brick
	for r, row := range rows {
		for c, ch := range row {
			switch {
			case ch == '.' || ch == ' ':
				continue
			case ch >= '1' && ch <= '9':
				b := NewBrick(sheet, int(ch-'0'))
				b.SetSize(size)
				b.Origin = start.Add(math.NewVec2(float32(c)*step.X, float32(r)*step.Y))
				bricks = append(bricks, b)
			default:
				return nil, fmt.Errorf("level row %d, column %d: unexpected %q", r, c, ch)
			}
		}
	}
	if len(bricks) == 0 {
		return nil, fmt.Errorf("level has no bricks")
	}
	return bricks, nil
}
