package game

import (
	"testing"

	"github.com/spaghettifunk/arkanoop/engine/math"
	"github.com/stretchr/testify/require"
)

type fixedView math.Vec2

func (v fixedView) ViewSize() math.Vec2 {
	return math.Vec2(v)
}

var view800x600 = fixedView{X: 800, Y: 600}

func newSheet(t *testing.T, name string, columns, rows int, width, height uint32) *SpriteSheet {
	t.Helper()
	sheet, err := NewSpriteSheet(SpriteSheetConfig{Name: name, Columns: columns, Rows: rows}, width, height)
	require.NoError(t, err)
	return sheet
}
