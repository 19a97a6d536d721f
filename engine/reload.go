package engine

import (
	"path/filepath"

	"github.com/spaghettifunk/arkanoop/engine/assets"
	"github.com/spaghettifunk/arkanoop/engine/renderer"
	"github.com/spaghettifunk/arkanoop/engine/renderer/metadata"
)

// reloader rebuilds the renderer table that a changed file belongs to.
type reloader struct {
	renderer *renderer.Renderer
	textures []string
	shaders  []metadata.ShaderProgramConfig
}

// apply reports whether change touched a file of the texture or shader table.
// The whole table is rebuilt so handles keep pointing at the same files.
func (rl *reloader) apply(change assets.AssetChange) (bool, error) {
	path := filepath.Clean(change.Path)

	switch change.Type {
	case metadata.ResourceTypeImage:
		for _, t := range rl.textures {
			if filepath.Clean(t) == path {
				return true, rl.renderer.ReloadTextures(rl.textures)
			}
		}
	case metadata.ResourceTypeShader:
		for _, s := range rl.shaders {
			if filepath.Clean(s.VertexPath) == path || filepath.Clean(s.FragmentPath) == path {
				return true, rl.renderer.ReloadShaders(rl.shaders)
			}
		}
	}
	return false, nil
}
