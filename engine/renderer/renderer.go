package renderer

import (
	"fmt"
	"sync/atomic"

	"github.com/spaghettifunk/arkanoop/engine/containers"
	"github.com/spaghettifunk/arkanoop/engine/core"
	"github.com/spaghettifunk/arkanoop/engine/renderer/metadata"
)

const (
	/** @brief Default size of the texture table. */
	MaxTextures int = 16
	/** @brief Default size of the shader program table. */
	MaxShaders int = 8
	/** @brief Default size of the buffer that receives compiler and linker logs. */
	ErrorMsgBufferSize int = 512
)

// AssetSource decodes the files the renderer builds its tables from.
type AssetSource interface {
	LoadImage(path string, format metadata.PixelFormat) (*metadata.ImageResourceData, error)
	LoadShaderSource(path string) (string, error)
}

type RendererConfig struct {
	/** @brief The number of slots in the texture table. */
	MaxTextures int `toml:"max_textures"`
	/** @brief The number of slots in the shader program table. */
	MaxShaders int `toml:"max_shaders"`
	/** @brief The number of bytes kept from a compiler or linker log. */
	ErrorMsgBufferSize int `toml:"error_msg_buffer_size"`
}

func DefaultRendererConfig() RendererConfig {
	return RendererConfig{
		MaxTextures:        MaxTextures,
		MaxShaders:         MaxShaders,
		ErrorMsgBufferSize: ErrorMsgBufferSize,
	}
}

// active is set while a Renderer owns the shared buffers of this process.
var active atomic.Bool

/**
 * @brief The rendering core. It owns the texture and shader program tables and
 * the vertex array, vertex buffer and index buffer shared by every dynamic draw
 * call. Only one Renderer can be initialized per process at a time.
 */
type Renderer struct {
	backend RendererBackend
	assets  AssetSource
	config  RendererConfig

	vao uint32
	vbo uint32
	ebo uint32

	textures *containers.Table[metadata.Texture]
	shaders  *containers.Table[metadata.ShaderProgram]

	initialized bool
}

func New(backend RendererBackend, assets AssetSource, config RendererConfig) (*Renderer, error) {
	if backend == nil || assets == nil {
		err := fmt.Errorf("func New - backend and asset source are required")
		core.LogError(err.Error())
		return nil, err
	}
	if config.MaxTextures <= 0 || config.MaxShaders <= 0 {
		err := fmt.Errorf("func New - config.MaxTextures and config.MaxShaders must be > 0")
		core.LogError(err.Error())
		return nil, err
	}
	if config.ErrorMsgBufferSize <= 0 {
		config.ErrorMsgBufferSize = ErrorMsgBufferSize
	}
	return &Renderer{
		backend:  backend,
		assets:   assets,
		config:   config,
		textures: containers.NewTable[metadata.Texture](config.MaxTextures),
		shaders:  containers.NewTable[metadata.ShaderProgram](config.MaxShaders),
	}, nil
}

/**
 * @brief Creates the shared buffers, then the texture table, then the shader
 * program table. Either everything is created or, on the first failure,
 * everything created so far is released again and the error is returned.
 */
func (r *Renderer) Initialize(textures []string, programs []metadata.ShaderProgramConfig) (err error) {
	if r.initialized {
		return fmt.Errorf("renderer already initialized")
	}
	if !active.CompareAndSwap(false, true) {
		core.LogError("cannot initialize renderer: %v", core.ErrRendererActive)
		return core.ErrRendererActive
	}
	r.initialized = true

	defer func() {
		if err != nil {
			core.LogError("renderer initialization failed, releasing partial state")
			r.Terminate()
		}
	}()

	if err := r.createBuffers(); err != nil {
		return err
	}
	if err := r.CreateTextures(textures); err != nil {
		return err
	}
	if err := r.CreateShaders(programs); err != nil {
		return err
	}

	core.LogInfo("renderer initialized with %d textures and %d shader programs", r.textures.Len(), r.shaders.Len())
	return nil
}

// Terminate releases the shader programs, the textures and the shared buffers,
// in that order. It is a no-op when the renderer is not initialized.
func (r *Renderer) Terminate() {
	if !r.initialized {
		return
	}
	r.FreeShaders()
	r.FreeTextures()
	r.destroyBuffers()

	r.initialized = false
	active.Store(false)
	core.LogDebug("renderer terminated")
}

func (r *Renderer) Initialized() bool {
	return r.initialized
}

func (r *Renderer) Config() RendererConfig {
	return r.config
}

// SetWireframe switches polygon rasterization between lines and filled faces.
func (r *Renderer) SetWireframe(on bool) {
	r.backend.PolygonModeLine(on)
}

func (r *Renderer) Clear(red, green, blue, alpha float32) {
	r.backend.ClearColor(red, green, blue, alpha)
	r.backend.Clear()
}

func (r *Renderer) Resize(width, height int32) {
	r.backend.Viewport(0, 0, width, height)
}

// checkError logs and returns the pending backend error, if any.
func (r *Renderer) checkError(op string) error {
	if msg := r.backend.Error(); msg != "" {
		err := fmt.Errorf("%s: %s", op, msg)
		core.LogError(err.Error())
		return err
	}
	return nil
}
