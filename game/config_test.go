package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "game.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sheetsTOML = `
[[game.sprite_sheets]]
name = "balls"
texture = 0
columns = 4
rows = 1

[[game.sprite_sheets]]
name = "bricks"
texture = 1
columns = 2
rows = 2
`

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
name = "ignored by the game section"

[game]
border_shader = 2

[game.level]
layout = ["11", "22"]
lives = 5

[game.paddle]
speed = 300

[game.hud]
font = "fonts/hud.fnt"
`+sheetsTOML)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.BorderShader)
	assert.Equal(t, 0, cfg.SpriteShader)
	require.Len(t, cfg.SpriteSheets, 2)
	assert.Equal(t, SpriteSheetConfig{Name: "bricks", Texture: 1, Columns: 2, Rows: 2}, cfg.SpriteSheets[1])

	assert.Equal(t, []string{"11", "22"}, cfg.Level.Layout)
	assert.Equal(t, 5, cfg.Level.Lives)
	// Keys left out keep their default.
	assert.Equal(t, DefaultLevelConfig().BrickWidth, cfg.Level.BrickWidth)
	assert.Equal(t, float32(300), cfg.Paddle.Speed)
	assert.Equal(t, float32(96), cfg.Paddle.Width)
	assert.Equal(t, "fonts/hud.fnt", cfg.HUD.Font)
	assert.Equal(t, 18.0, cfg.HUD.Size)
}

func TestLoadConfigValidation(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadConfig(writeConfig(t, "[game]\n"))
	assert.ErrorContains(t, err, "not declared")

	_, err = LoadConfig(writeConfig(t, sheetsTOML+sheetsTOML))
	assert.ErrorContains(t, err, "declared twice")

	_, err = LoadConfig(writeConfig(t, "[game.paddle]\nspeed = 0\n"+sheetsTOML))
	assert.ErrorContains(t, err, "paddle")

	_, err = LoadConfig(writeConfig(t, "[game.level]\nlives = 0\n"+sheetsTOML))
	assert.ErrorContains(t, err, "lives")

	_, err = LoadConfig(writeConfig(t, "[game.hud]\nfont = \"a.ttf\"\nsize = 0.0\n"+sheetsTOML))
	assert.ErrorContains(t, err, "hud")

	_, err = LoadConfig(writeConfig(t, "[game\n"))
	assert.Error(t, err)
}

func TestLoadShippedConfig(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "assets", "game.toml"))
	require.NoError(t, err)
	assert.Len(t, cfg.SpriteSheets, 2)
	assert.Len(t, cfg.Level.Layout, 5)
	assert.Equal(t, "fonts/hud.ttf", cfg.HUD.Font)
}
