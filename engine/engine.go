package engine

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/spaghettifunk/arkanoop/engine/assets"
	"github.com/spaghettifunk/arkanoop/engine/core"
	"github.com/spaghettifunk/arkanoop/engine/platform"
	"github.com/spaghettifunk/arkanoop/engine/renderer"
	"github.com/spaghettifunk/arkanoop/engine/renderer/opengl"
)

// How long a suspended engine blocks waiting for window events.
const suspendedWaitSeconds = 0.1

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

func (s Stage) String() string {
	switch s {
	case EngineStageUninitialized:
		return "uninitialized"
	case EngineStageInitializing:
		return "initializing"
	case EngineStageInitialized:
		return "initialized"
	case EngineStageRunning:
		return "running"
	case EngineStageShuttingDown:
		return "shutting-down"
	default:
		return "unknown"
	}
}

type Engine struct {
	currentStage Stage
	gameInstance *Game
	isRunning    atomic.Bool
	isSuspended  bool
	platform     *platform.Platform
	input        *core.Input
	assetManager *assets.AssetManager
	renderer     *renderer.Renderer
	reloader     *reloader
	gameStarted  bool
	width        uint32
	height       uint32
	clock        *core.Clock
	metrics      *core.Metrics
	lastTime     float64
}

func New(g *Game) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		err := fmt.Errorf("func New - a game with an application config is required")
		core.LogError(err.Error())
		return nil, err
	}
	cfg := g.ApplicationConfig

	level, err := core.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		core.LogError("invalid log level '%s': %s", cfg.LogLevel, err)
		return nil, err
	}
	core.SetLogLevel(level)

	input := core.NewInput()
	p, err := platform.New(input)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	am, err := assets.NewAssetManager(cfg.AssetsDir)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		platform:     p,
		input:        input,
		assetManager: am,
		clock:        core.NewClock(),
		metrics:      core.NewMetrics(),
		width:        cfg.StartWidth,
		height:       cfg.StartHeight,
	}, nil
}

/**
 * @brief Opens the window, creates the OpenGL backend and the renderer with
 * the configured textures and shader programs, starts the asset watcher and
 * finally initializes the game. On error the caller still calls Shutdown to
 * release whatever was created.
 */
func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageUninitialized {
		return fmt.Errorf("engine cannot be initialized from stage %s", e.currentStage)
	}
	e.currentStage = EngineStageInitializing
	cfg := e.gameInstance.ApplicationConfig

	if err := e.platform.Startup(platform.WindowConfig{
		Title:  cfg.Name,
		X:      cfg.StartPosX,
		Y:      cfg.StartPosY,
		Width:  cfg.StartWidth,
		Height: cfg.StartHeight,
		VSync:  cfg.VSync,
	}); err != nil {
		return err
	}
	e.platform.OnResize(e.onResized)

	backend, err := opengl.New()
	if err != nil {
		core.LogError(err.Error())
		return err
	}

	r, err := renderer.New(backend, e.assetManager, cfg.Renderer)
	if err != nil {
		return err
	}
	textures, shaders := cfg.TexturePaths(), cfg.ShaderPrograms()
	if err := r.Initialize(textures, shaders); err != nil {
		return err
	}
	e.renderer = r
	e.reloader = &reloader{renderer: r, textures: textures, shaders: shaders}

	if cfg.HotReload {
		if err := e.assetManager.Initialize(); err != nil {
			return err
		}
	}

	e.gameInstance.Renderer = e.renderer
	e.gameInstance.Assets = e.assetManager
	e.gameInstance.Input = e.input
	e.gameInstance.View = e.platform

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(); err != nil {
			return err
		}
	}
	e.gameStarted = true

	w, h := e.platform.FramebufferSize()
	e.onResized(w, h)

	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("engine cannot run from stage %s", e.currentStage)
	}
	e.currentStage = EngineStageRunning
	e.isRunning.Store(true)

	e.clock.Start()
	e.holdClock()

	var reportTime float64 = 0.0
	cc := e.gameInstance.ApplicationConfig.ClearColour

	for e.isRunning.Load() {
		if !e.pumpMessages() {
			e.isRunning.Store(false)
			break
		}

		if e.input.WasKeyPressed(core.KEY_ESCAPE) {
			core.LogInfo("escape pressed, shutting down")
			e.isRunning.Store(false)
			break
		}

		if e.isSuspended {
			e.input.Update()
			e.reloadChangedAssets()
			e.holdClock()
			continue
		}

		var delta float64 = e.frameDelta()
		var frameStartTime float64 = e.platform.GetAbsoluteTime()

		if e.gameInstance.FnUpdate != nil {
			if err := e.gameInstance.FnUpdate(delta); err != nil {
				core.LogError("game update failed, shutting down: %s", err)
				e.isRunning.Store(false)
				return err
			}
		}

		e.renderer.Clear(cc[0], cc[1], cc[2], cc[3])
		if e.gameInstance.FnRender != nil {
			if err := e.gameInstance.FnRender(delta); err != nil {
				core.LogError("game render failed, shutting down: %s", err)
				e.isRunning.Store(false)
				return err
			}
		}
		e.platform.SwapBuffers()

		var frameElapsedTime float64 = e.platform.GetAbsoluteTime() - frameStartTime
		e.metrics.Update(frameElapsedTime)
		reportTime += delta
		if reportTime >= 5.0 {
			fps, ms := e.metrics.Frame()
			core.LogDebug("%.0f fps, %.3f ms/frame", fps, ms)
			reportTime = 0
		}

		e.input.Update()
		e.reloadChangedAssets()
	}
	return nil
}

// pumpMessages polls window events, or waits for them while suspended so a
// minimized window does not spin.
func (e *Engine) pumpMessages() bool {
	if e.isSuspended {
		return e.platform.WaitMessages(suspendedWaitSeconds)
	}
	return e.platform.PumpMessages()
}

// frameDelta advances the clock and returns the seconds since the previous frame.
func (e *Engine) frameDelta() float64 {
	e.clock.Update()
	current := e.clock.Elapsed()
	delta := current - e.lastTime
	e.lastTime = current
	return delta
}

// holdClock moves the previous frame time to now, so time spent suspended
// never shows up in the next delta.
func (e *Engine) holdClock() {
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()
}

// Stop asks the main loop to return. It is safe to call from any goroutine.
func (e *Engine) Stop() {
	e.isRunning.Store(false)
}

// Shutdown releases the game, the renderer, the asset watcher and the window,
// in that order. Every step runs even if an earlier one fails.
func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShuttingDown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	e.isRunning.Store(false)

	var errs []error
	if e.gameInstance.FnShutdown != nil && e.gameStarted {
		if err := e.gameInstance.FnShutdown(); err != nil {
			errs = append(errs, err)
		}
	}
	if e.renderer != nil {
		e.renderer.Terminate()
		e.renderer = nil
	}
	if err := e.assetManager.Shutdown(); err != nil {
		errs = append(errs, err)
	}
	if err := e.platform.Shutdown(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

// reloadChangedAssets drains the watcher without blocking the frame.
func (e *Engine) reloadChangedAssets() {
	for {
		select {
		case change, ok := <-e.assetManager.Changes():
			if !ok {
				return
			}
			if _, err := e.reloader.apply(change); err != nil {
				core.LogError("hot reload of '%s' failed: %s", change.Path, err)
			}
			if e.gameInstance.FnAssetChanged != nil {
				if err := e.gameInstance.FnAssetChanged(change); err != nil {
					core.LogError("game could not handle change of '%s': %s", change.Path, err)
				}
			}
		default:
			return
		}
	}
}

func (e *Engine) onResized(width, height int32) {
	if width == 0 || height == 0 {
		if !e.isSuspended {
			core.LogInfo("window minimized, suspending application")
		}
		e.isSuspended = true
		return
	}
	if e.isSuspended {
		core.LogInfo("window restored, resuming application")
		e.isSuspended = false
	}

	e.width = uint32(width)
	e.height = uint32(height)
	core.LogDebug("window resize: %d, %d", width, height)

	e.renderer.Resize(width, height)
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
			core.LogError(err.Error())
		}
	}
}
