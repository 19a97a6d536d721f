package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/spaghettifunk/arkanoop/engine/renderer/metadata"
)

type ImageLoader struct{}

// Load decodes a png, jpeg, bmp or webp file into tightly packed pixels.
// params must be a *metadata.ImageResourceParams or nil (RGBA, no flip).
func (il *ImageLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	typedParams := &metadata.ImageResourceParams{Format: metadata.PixelFormatRGBA}
	if params != nil {
		p, ok := params.(*metadata.ImageResourceParams)
		if !ok {
			return nil, fmt.Errorf("failed to cast params in image loader")
		}
		typedParams = p
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	data := DecodePixels(img, typedParams.Format, typedParams.FlipY)
	return &metadata.Resource{
		Name:     format,
		FullPath: path,
		Type:     metadata.ResourceTypeImage,
		DataSize: uint64(len(data.Pixels)),
		Data:     data,
	}, nil
}

func (il *ImageLoader) Unload(resource *metadata.Resource) error {
	if resource != nil {
		resource.Data = nil
		resource.DataSize = 0
	}
	return nil
}

// DecodePixels converts any image into rows of RGB or RGBA bytes, top row
// first unless flipY is set.
func DecodePixels(img image.Image, format metadata.PixelFormat, flipY bool) *metadata.ImageResourceData {
	b := img.Bounds()
	rgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(rgba, image.Point{}, img, b, draw.Src, nil)

	width, height := b.Dx(), b.Dy()
	channels := format.Channels()
	pixels := make([]uint8, width*height*channels)

	for y := 0; y < height; y++ {
		srcRow := rgba.Pix[y*rgba.Stride : y*rgba.Stride+width*4]
		dstY := y
		if flipY {
			dstY = height - 1 - y
		}
		dstRow := pixels[dstY*width*channels : (dstY+1)*width*channels]
		if channels == 4 {
			copy(dstRow, srcRow)
			continue
		}
		for x := 0; x < width; x++ {
			dstRow[x*3+0] = srcRow[x*4+0]
			dstRow[x*3+1] = srcRow[x*4+1]
			dstRow[x*3+2] = srcRow[x*4+2]
		}
	}

	return &metadata.ImageResourceData{
		Format: format,
		Width:  uint32(width),
		Height: uint32(height),
		Pixels: pixels,
	}
}
