package engine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/arkanoop/engine/core"
	"github.com/spaghettifunk/arkanoop/engine/renderer"
	"github.com/spaghettifunk/arkanoop/engine/renderer/metadata"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32 `toml:"start_pos_x"`
	// Window starting position y axis, if applicable.
	StartPosY uint32 `toml:"start_pos_y"`
	// Window starting width, if applicable.
	StartWidth uint32 `toml:"start_width"`
	// Window starting height, if applicable.
	StartHeight uint32 `toml:"start_height"`
	// The application name used in windowing, if applicable.
	Name  string `toml:"name"`
	VSync bool   `toml:"vsync"`
	// One of debug, info, warn, error, fatal.
	LogLevel string `toml:"log_level"`
	// Directory every asset path below is relative to.
	AssetsDir string `toml:"assets_dir"`
	// Reload shaders and textures when their files change on disk.
	HotReload   bool       `toml:"hot_reload"`
	ClearColour [4]float32 `toml:"clear_colour"`

	Renderer renderer.RendererConfig `toml:"renderer"`
	// Files loaded into the renderer texture table, in handle order.
	Textures []string `toml:"textures"`
	// Programs built into the renderer shader table, in handle order.
	Shaders []metadata.ShaderProgramConfig `toml:"shaders"`
}

// DefaultApplicationConfig is used for every value the config file leaves out.
func DefaultApplicationConfig() ApplicationConfig {
	return ApplicationConfig{
		StartPosX:   100,
		StartPosY:   100,
		StartWidth:  800,
		StartHeight: 600,
		Name:        "Arkanoop",
		VSync:       true,
		LogLevel:    "info",
		AssetsDir:   "assets",
		HotReload:   true,
		ClearColour: [4]float32{0, 0, 0, 1},
		Renderer:    renderer.DefaultRendererConfig(),
	}
}

/**
 * @brief Reads a TOML application config. Keys missing from the file keep
 * their default value, and a relative assets_dir is resolved against the
 * directory holding the file.
 */
func LoadConfig(path string) (*ApplicationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultApplicationConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return nil, fmt.Errorf("%s:%d:%d: %w", path, row, col, err)
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if !filepath.IsAbs(cfg.AssetsDir) {
		cfg.AssetsDir = filepath.Join(filepath.Dir(path), cfg.AssetsDir)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func (c *ApplicationConfig) Validate() error {
	if c.StartWidth == 0 || c.StartHeight == 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.StartWidth, c.StartHeight)
	}
	if _, err := core.ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level '%s': %w", c.LogLevel, err)
	}
	if c.Renderer.MaxTextures <= 0 || c.Renderer.MaxShaders <= 0 {
		return fmt.Errorf("renderer capacities must be positive")
	}
	if len(c.Textures) > c.Renderer.MaxTextures {
		return fmt.Errorf("%d textures configured, renderer holds %d: %w", len(c.Textures), c.Renderer.MaxTextures, core.ErrCapacityExceeded)
	}
	if len(c.Shaders) > c.Renderer.MaxShaders {
		return fmt.Errorf("%d shader programs configured, renderer holds %d: %w", len(c.Shaders), c.Renderer.MaxShaders, core.ErrCapacityExceeded)
	}
	for i, s := range c.Shaders {
		if s.VertexPath == "" || s.FragmentPath == "" {
			return fmt.Errorf("shader program %d needs both a vertex and a fragment file", i)
		}
	}
	return nil
}

// AssetPath resolves a config-relative asset name.
func (c *ApplicationConfig) AssetPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.AssetsDir, name)
}

// TexturePaths returns the texture table files resolved against AssetsDir.
func (c *ApplicationConfig) TexturePaths() []string {
	paths := make([]string, len(c.Textures))
	for i, t := range c.Textures {
		paths[i] = c.AssetPath(t)
	}
	return paths
}

// ShaderPrograms returns the shader table sources resolved against AssetsDir.
func (c *ApplicationConfig) ShaderPrograms() []metadata.ShaderProgramConfig {
	programs := make([]metadata.ShaderProgramConfig, len(c.Shaders))
	for i, s := range c.Shaders {
		programs[i] = metadata.ShaderProgramConfig{
			VertexPath:   c.AssetPath(s.VertexPath),
			FragmentPath: c.AssetPath(s.FragmentPath),
		}
	}
	return programs
}
