package game

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type PaddleConfig struct {
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
	// Units per second.
	Speed float32 `toml:"speed"`
	// Gap between the paddle and the bottom of the view.
	Offset float32 `toml:"offset"`
	Sheet  string  `toml:"sheet"`
	Cell   int     `toml:"cell"`
}

type HUDConfig struct {
	// A .fnt bitmap font or a .ttf/.otf face, relative to the assets dir.
	// Empty disables the HUD.
	Font   string     `toml:"font"`
	Size   float64    `toml:"size"`
	Scale  float32    `toml:"scale"`
	Colour [4]float32 `toml:"colour"`
}

// Config is the [game] table of the application config file.
type Config struct {
	// Shader table entries used for sprites and for the playfield border.
	SpriteShader int        `toml:"sprite_shader"`
	BorderShader int        `toml:"border_shader"`
	BallSheet    string     `toml:"ball_sheet"`
	BrickSheet   string     `toml:"brick_sheet"`
	BorderColour [4]float32 `toml:"border_colour"`

	SpriteSheets []SpriteSheetConfig `toml:"sprite_sheets"`
	Level        LevelConfig         `toml:"level"`
	Paddle       PaddleConfig        `toml:"paddle"`
	HUD          HUDConfig           `toml:"hud"`
}

func DefaultConfig() Config {
	return Config{
		SpriteShader: 0,
		BorderShader: 1,
		BallSheet:    "balls",
		BrickSheet:   "bricks",
		BorderColour: [4]float32{0.4, 0.4, 0.5, 1},
		Level:        DefaultLevelConfig(),
		Paddle: PaddleConfig{
			Width:  96,
			Height: 16,
			Speed:  420,
			Offset: 24,
			Sheet:  "bricks",
		},
		HUD: HUDConfig{
			Size:   18,
			Scale:  1,
			Colour: [4]float32{1, 1, 1, 1},
		},
	}
}

// LoadConfig reads the [game] table of a TOML file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	file := struct {
		Game Config `toml:"game"`
	}{Game: DefaultConfig()}
	if err := toml.Unmarshal(data, &file); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := file.Game.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return file.Game, nil
}

func (c *Config) Validate() error {
	names := make(map[string]bool, len(c.SpriteSheets))
	for _, s := range c.SpriteSheets {
		if names[s.Name] {
			return fmt.Errorf("sprite sheet '%s' declared twice", s.Name)
		}
		names[s.Name] = true
	}
	for _, want := range []string{c.BallSheet, c.BrickSheet, c.Paddle.Sheet} {
		if !names[want] {
			return fmt.Errorf("sprite sheet '%s' is not declared", want)
		}
	}
	if c.Paddle.Width <= 0 || c.Paddle.Height <= 0 || c.Paddle.Speed <= 0 {
		return fmt.Errorf("paddle width, height and speed must be > 0")
	}
	if c.Level.Lives <= 0 {
		return fmt.Errorf("level lives must be > 0")
	}
	if c.HUD.Font != "" && (c.HUD.Size <= 0 || c.HUD.Scale <= 0) {
		return fmt.Errorf("hud size and scale must be > 0")
	}
	return nil
}
