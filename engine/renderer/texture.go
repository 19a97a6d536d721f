package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/spaghettifunk/arkanoop/engine/core"
	"github.com/spaghettifunk/arkanoop/engine/renderer/metadata"
)

/** @brief Number of texture units handed out before the index wraps to 0. */
const MaxTextureIndex uint32 = 16

// TextureIndexAllocator hands out texture unit indices in rotation. It is safe
// for concurrent use.
type TextureIndexAllocator struct {
	mu      sync.Mutex
	next    uint32
	modulus uint32
}

// NewTextureIndexAllocator returns an allocator cycling through [0, modulus).
// A zero modulus falls back to MaxTextureIndex.
func NewTextureIndexAllocator(modulus uint32) *TextureIndexAllocator {
	if modulus == 0 {
		modulus = MaxTextureIndex
	}
	return &TextureIndexAllocator{modulus: modulus}
}

func (a *TextureIndexAllocator) Next() uint32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	index := a.next
	a.next = (a.next + 1) % a.modulus
	return index
}

var entityTextureParams = metadata.TextureParams{
	FilterMinify:  metadata.TextureFilterModeNearest,
	FilterMagnify: metadata.TextureFilterModeNearest,
	RepeatS:       metadata.TextureRepeatRepeat,
	RepeatT:       metadata.TextureRepeatRepeat,
}

/**
 * @brief A standalone RGBA texture living outside the renderer texture table.
 * It is bound to the texture unit given by Index.
 */
type Texture struct {
	ID     uint32
	Index  uint32
	Width  uint32
	Height uint32
	Path   string

	backend RendererBackend
}

/**
 * @brief Decodes path as RGBA and uploads it with nearest filtering and
 * repeat wrapping. The texture is unbound on return.
 * @return A *core.AssetError when the file cannot be decoded.
 */
func NewTexture(backend RendererBackend, assets AssetSource, alloc *TextureIndexAllocator, path string) (*Texture, error) {
	img, err := assets.LoadImage(path, metadata.PixelFormatRGBA)
	if err != nil {
		var assetErr *core.AssetError
		if !errors.As(err, &assetErr) {
			err = &core.AssetError{Path: path, Err: err}
		}
		core.LogError(err.Error())
		return nil, err
	}

	return NewTextureFromImage(backend, alloc, path, img)
}

// NewTextureFromImage uploads pixels that were decoded or generated elsewhere,
// such as a rasterized font atlas. name is only used for diagnostics.
func NewTextureFromImage(backend RendererBackend, alloc *TextureIndexAllocator, name string, img *metadata.ImageResourceData) (*Texture, error) {
	if img == nil || img.Width == 0 || img.Height == 0 {
		err := &core.AssetError{Path: name, Err: fmt.Errorf("empty image")}
		core.LogError(err.Error())
		return nil, err
	}
	if want := int(img.Width*img.Height) * img.Format.Channels(); len(img.Pixels) != want {
		err := &core.AssetError{Path: name, Err: fmt.Errorf("expected %d bytes of pixels, got %d", want, len(img.Pixels))}
		core.LogError(err.Error())
		return nil, err
	}

	id := backend.GenTexture()
	if id == 0 {
		err := fmt.Errorf("failed to create texture for '%s'", name)
		core.LogError(err.Error())
		return nil, err
	}

	t := &Texture{
		ID:      id,
		Index:   alloc.Next(),
		Width:   img.Width,
		Height:  img.Height,
		Path:    name,
		backend: backend,
	}
	backend.BindTexture(id)
	backend.TexParameters(entityTextureParams)
	backend.TexImage2D(int32(img.Width), int32(img.Height), img.Format, img.Pixels)
	backend.GenerateMipmap()
	backend.BindTexture(0)
	return t, nil
}

// NewTexture creates a standalone texture with the renderer's backend and assets.
func (r *Renderer) NewTexture(alloc *TextureIndexAllocator, path string) (*Texture, error) {
	return NewTexture(r.backend, r.assets, alloc, path)
}

func (r *Renderer) NewTextureFromImage(alloc *TextureIndexAllocator, name string, img *metadata.ImageResourceData) (*Texture, error) {
	return NewTextureFromImage(r.backend, alloc, name, img)
}

// Bind activates texture unit Index and binds the texture to it.
func (t *Texture) Bind() {
	t.backend.ActiveTexture(t.Index)
	t.backend.BindTexture(t.ID)
}

func (t *Texture) Unbind() {
	t.backend.ActiveTexture(t.Index)
	t.backend.BindTexture(0)
}

func (t *Texture) Destroy() {
	if t.ID == 0 {
		return
	}
	t.backend.DeleteTexture(t.ID)
	t.ID = 0
}
