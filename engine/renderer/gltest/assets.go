package gltest

import (
	"fmt"
	"os"

	"github.com/spaghettifunk/arkanoop/engine/renderer/metadata"
)

// Assets serves images and shader sources from memory.
type Assets struct {
	Images  map[string]*metadata.ImageResourceData
	Sources map[string]string
	// Loads counts every load attempt per path.
	Loads map[string]int
}

func NewAssets() *Assets {
	return &Assets{
		Images:  make(map[string]*metadata.ImageResourceData),
		Sources: make(map[string]string),
		Loads:   make(map[string]int),
	}
}

// AddImage registers a solid width x height image under path.
func (a *Assets) AddImage(path string, width, height uint32) {
	a.Images[path] = &metadata.ImageResourceData{
		Format: metadata.PixelFormatRGBA,
		Width:  width,
		Height: height,
		Pixels: make([]uint8, int(width*height)*metadata.PixelFormatRGBA.Channels()),
	}
}

func (a *Assets) AddSource(path, source string) {
	a.Sources[path] = source
}

func (a *Assets) LoadImage(path string, format metadata.PixelFormat) (*metadata.ImageResourceData, error) {
	a.Loads[path]++
	img, ok := a.Images[path]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, os.ErrNotExist)
	}
	out := &metadata.ImageResourceData{
		Format: format,
		Width:  img.Width,
		Height: img.Height,
		Pixels: make([]uint8, int(img.Width*img.Height)*format.Channels()),
	}
	return out, nil
}

func (a *Assets) LoadShaderSource(path string) (string, error) {
	a.Loads[path]++
	src, ok := a.Sources[path]
	if !ok {
		return "", fmt.Errorf("open %s: %w", path, os.ErrNotExist)
	}
	return src, nil
}
