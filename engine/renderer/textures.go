package renderer

import (
	"errors"
	"fmt"

	"github.com/spaghettifunk/arkanoop/engine/containers"
	"github.com/spaghettifunk/arkanoop/engine/core"
	"github.com/spaghettifunk/arkanoop/engine/renderer/metadata"
)

var tableTextureParams = metadata.TextureParams{
	FilterMinify:  metadata.TextureFilterModeLinear,
	FilterMagnify: metadata.TextureFilterModeLinear,
	RepeatS:       metadata.TextureRepeatRepeat,
	RepeatT:       metadata.TextureRepeatRepeat,
}

/**
 * @brief Decodes paths in order and uploads each one into the next slot of the
 * texture table, so the i-th path ends up behind the i-th new handle. A list
 * that does not fit is rejected before any texture is created. On a decode
 * error the textures created so far stay in the table; Terminate releases them.
 */
func (r *Renderer) CreateTextures(paths []string) error {
	if err := r.textures.Reserve(len(paths)); err != nil {
		core.LogError("Max textures: %d: %v", r.textures.Cap(), err)
		return err
	}

	for _, path := range paths {
		img, err := r.assets.LoadImage(path, metadata.PixelFormatRGB)
		if err != nil {
			var assetErr *core.AssetError
			if !errors.As(err, &assetErr) {
				err = &core.AssetError{Path: path, Err: err}
			}
			core.LogError(err.Error())
			return err
		}

		id := r.backend.GenTexture()
		if id == 0 {
			err := fmt.Errorf("failed to create texture for '%s'", path)
			core.LogError(err.Error())
			return err
		}
		if _, err := r.textures.Insert(metadata.Texture{ID: id, Width: img.Width, Height: img.Height, Path: path}); err != nil {
			r.backend.DeleteTexture(id)
			return err
		}

		r.backend.BindTexture(id)
		r.backend.TexParameters(tableTextureParams)
		r.backend.TexImage2D(int32(img.Width), int32(img.Height), img.Format, img.Pixels)
		r.backend.GenerateMipmap()
		core.LogDebug("texture %d loaded from '%s' (%dx%d)", r.textures.Len()-1, path, img.Width, img.Height)
	}
	r.backend.BindTexture(0)
	return r.checkError("CreateTextures")
}

// FreeTextures unbinds the current texture and releases every texture in the table.
func (r *Renderer) FreeTextures() {
	r.backend.BindTexture(0)
	r.textures.Each(func(_ containers.Handle, t metadata.Texture) bool {
		if t.ID != 0 {
			r.backend.DeleteTexture(t.ID)
		}
		return true
	})
	r.textures.Reset()
}

// ReloadTextures replaces the whole texture table.
func (r *Renderer) ReloadTextures(paths []string) error {
	r.FreeTextures()
	return r.CreateTextures(paths)
}

// BindTexture makes the table texture h current on the given texture unit.
func (r *Renderer) BindTexture(h containers.Handle, unit uint32) error {
	t, err := r.textures.Get(h)
	if err != nil {
		return err
	}
	r.backend.ActiveTexture(unit)
	r.backend.BindTexture(t.ID)
	return nil
}

func (r *Renderer) UnbindTexture() {
	r.backend.BindTexture(0)
}

func (r *Renderer) Texture(h containers.Handle) (metadata.Texture, error) {
	return r.textures.Get(h)
}

func (r *Renderer) TextureCount() int {
	return r.textures.Len()
}
