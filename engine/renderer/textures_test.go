package renderer

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/spaghettifunk/arkanoop/engine/containers"
	"github.com/spaghettifunk/arkanoop/engine/core"
	"github.com/spaghettifunk/arkanoop/engine/renderer/gltest"
	"github.com/spaghettifunk/arkanoop/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTexturesKeepsInputOrder(t *testing.T) {
	r, dev, assets := newTestRenderer(t, DefaultRendererConfig())
	require.NoError(t, r.Initialize(nil, nil))

	var paths []string
	for i := 0; i < MaxTextures; i++ {
		p := fmt.Sprintf("sheet%02d.png", i)
		assets.AddImage(p, uint32(i+1), uint32(2*i+1))
		paths = append(paths, p)
	}

	require.NoError(t, r.CreateTextures(paths))
	require.Equal(t, MaxTextures, r.TextureCount())

	for i, p := range paths {
		tex, err := r.Texture(containers.Handle(i))
		require.NoError(t, err)
		assert.Equal(t, p, tex.Path)
		assert.Equal(t, uint32(i+1), tex.Width)
		assert.Equal(t, uint32(2*i+1), tex.Height)

		state := dev.Textures[tex.ID]
		require.NotNil(t, state)
		assert.Equal(t, metadata.PixelFormatRGB, state.Format)
		assert.Equal(t, tableTextureParams, state.Params)
		assert.True(t, state.Mipmap)
		assert.Len(t, state.Pixels, (i+1)*(2*i+1)*3)
	}
	assert.Zero(t, dev.BoundTexture)
}

func TestCreateTexturesOverCapacityCreatesNothing(t *testing.T) {
	r, dev, assets := newTestRenderer(t, RendererConfig{MaxTextures: 2, MaxShaders: 1})

	paths := []string{"a.png", "b.png", "c.png"}
	for _, p := range paths {
		assets.AddImage(p, 4, 4)
	}

	err := r.CreateTextures(paths)
	assert.ErrorIs(t, err, core.ErrCapacityExceeded)
	assert.Zero(t, dev.Created[gltest.KindTexture])
	assert.Empty(t, assets.Loads)
	assert.Zero(t, r.TextureCount())
}

func TestCreateTexturesReportsFailingPath(t *testing.T) {
	r, dev, assets := newTestRenderer(t, DefaultRendererConfig())
	require.NoError(t, r.Initialize(nil, nil))
	assets.AddImage("a.png", 4, 4)
	assets.AddImage("c.png", 4, 4)

	err := r.CreateTextures([]string{"a.png", "missing.png", "c.png"})

	var assetErr *core.AssetError
	require.True(t, errors.As(err, &assetErr))
	assert.Equal(t, "missing.png", assetErr.Path)
	assert.ErrorIs(t, err, core.ErrAssetLoad)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "missing.png")

	// No partial rollback: the first texture stays until teardown.
	assert.Equal(t, 1, r.TextureCount())
	assert.Equal(t, 1, dev.Live(gltest.KindTexture))
	assert.Zero(t, assets.Loads["c.png"])

	r.Terminate()
	assert.Zero(t, dev.Live(gltest.KindTexture))
}

func TestFreeTexturesUnbindsAndReleases(t *testing.T) {
	r, dev, assets := newTestRenderer(t, DefaultRendererConfig())
	assets.AddImage("a.png", 4, 4)
	assets.AddImage("b.png", 4, 4)
	require.NoError(t, r.Initialize([]string{"a.png", "b.png"}, nil))

	require.NoError(t, r.BindTexture(1, 3))
	tex, _ := r.Texture(1)
	assert.Equal(t, uint32(3), dev.ActiveUnit)
	assert.Equal(t, tex.ID, dev.BoundTexture)

	r.FreeTextures()
	assert.Zero(t, dev.BoundTexture)
	assert.Zero(t, dev.Live(gltest.KindTexture))
	assert.Zero(t, r.TextureCount())

	assert.ErrorIs(t, r.BindTexture(0, 0), core.ErrInvalidHandle)
}

func TestReloadTexturesReplacesTable(t *testing.T) {
	r, dev, assets := newTestRenderer(t, DefaultRendererConfig())
	assets.AddImage("a.png", 4, 4)
	require.NoError(t, r.Initialize([]string{"a.png"}, nil))

	assets.AddImage("a.png", 8, 2)
	require.NoError(t, r.ReloadTextures([]string{"a.png"}))

	tex, err := r.Texture(0)
	require.NoError(t, err)
	assert.Equal(t, uint32(8), tex.Width)
	assert.Equal(t, 1, dev.Live(gltest.KindTexture))
}
