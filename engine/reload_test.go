package engine

import (
	"testing"

	"github.com/spaghettifunk/arkanoop/engine/assets"
	"github.com/spaghettifunk/arkanoop/engine/renderer"
	"github.com/spaghettifunk/arkanoop/engine/renderer/gltest"
	"github.com/spaghettifunk/arkanoop/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	reloadVertexSource   = "#version 410 core\nuniform mat4 projection;\nvoid main() {}\n"
	reloadFragmentSource = "#version 410 core\nuniform sampler2D tex;\nvoid main() {}\n"
)

func newReloader(t *testing.T) (*reloader, *gltest.Device, *gltest.Assets) {
	t.Helper()
	dev := gltest.NewDevice()
	src := gltest.NewAssets()
	src.AddImage("/assets/balls.png", 8, 8)
	src.AddSource("/assets/sprite.vert", reloadVertexSource)
	src.AddSource("/assets/sprite.frag", reloadFragmentSource)

	r, err := renderer.New(dev, src, renderer.DefaultRendererConfig())
	require.NoError(t, err)
	textures := []string{"/assets/balls.png"}
	shaders := []metadata.ShaderProgramConfig{{VertexPath: "/assets/sprite.vert", FragmentPath: "/assets/sprite.frag"}}
	require.NoError(t, r.Initialize(textures, shaders))
	t.Cleanup(r.Terminate)

	return &reloader{renderer: r, textures: textures, shaders: shaders}, dev, src
}

func TestReloadTexture(t *testing.T) {
	rl, dev, src := newReloader(t)

	hit, err := rl.apply(assets.AssetChange{Path: "/assets/./balls.png", Type: metadata.ResourceTypeImage})
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 2, src.Loads["/assets/balls.png"])
	assert.Equal(t, 1, dev.Live(gltest.KindTexture))
	assert.Equal(t, 1, dev.Deleted[gltest.KindTexture])
}

func TestReloadShaderFromEitherStage(t *testing.T) {
	rl, dev, src := newReloader(t)

	for _, path := range []string{"/assets/sprite.vert", "/assets/sprite.frag"} {
		hit, err := rl.apply(assets.AssetChange{Path: path, Type: metadata.ResourceTypeShader})
		require.NoError(t, err)
		assert.True(t, hit, path)
	}
	assert.Equal(t, 3, src.Loads["/assets/sprite.frag"])
	assert.Equal(t, 1, dev.Live(gltest.KindProgram))
	assert.Equal(t, 1, rl.renderer.ShaderCount())
}

func TestReloadIgnoresUnrelatedFiles(t *testing.T) {
	rl, _, src := newReloader(t)

	changes := []assets.AssetChange{
		{Path: "/assets/bricks.png", Type: metadata.ResourceTypeImage},
		{Path: "/assets/other.frag", Type: metadata.ResourceTypeShader},
		{Path: "/assets/balls.png", Type: metadata.ResourceTypeBitmapFont},
		{Path: "/assets/game.toml", Type: metadata.ResourceTypeConfig},
	}
	for _, c := range changes {
		hit, err := rl.apply(c)
		require.NoError(t, err)
		assert.False(t, hit, c.Path)
	}
	assert.Equal(t, 1, src.Loads["/assets/balls.png"])
}

func TestReloadBrokenShaderEmptiesTable(t *testing.T) {
	rl, dev, src := newReloader(t)
	src.AddSource("/assets/sprite.frag", "#version 410 core\n#error unterminated\n")

	hit, err := rl.apply(assets.AssetChange{Path: "/assets/sprite.frag", Type: metadata.ResourceTypeShader})
	assert.True(t, hit)
	assert.Error(t, err)
	assert.Zero(t, rl.renderer.ShaderCount())
	assert.Zero(t, dev.Live(gltest.KindProgram))
	assert.Zero(t, dev.Live(gltest.KindShader))
}
