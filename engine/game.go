package engine

import (
	"github.com/spaghettifunk/arkanoop/engine/assets"
	"github.com/spaghettifunk/arkanoop/engine/core"
	"github.com/spaghettifunk/arkanoop/engine/math"
	"github.com/spaghettifunk/arkanoop/engine/renderer"
)

// ViewSizer reports the logical size of the view the game draws into.
type ViewSizer interface {
	ViewSize() math.Vec2
}

/**
 * @brief The hooks a game plugs into the engine. The engine fills Renderer,
 * Assets, Input and View before FnInitialize is called.
 */
type Game struct {
	ApplicationConfig *ApplicationConfig
	Renderer          *renderer.Renderer
	Assets            *assets.AssetManager
	Input             *core.Input
	View              ViewSizer
	State             interface{}

	FnInitialize   Initialize
	FnUpdate       Update
	FnRender       Render
	FnOnResize     OnResize
	FnAssetChanged AssetChanged
	FnShutdown     Shutdown
}

type Initialize func() error
type Update func(deltaTime float64) error
type Render func(deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type AssetChanged func(change assets.AssetChange) error
type Shutdown func() error
