package loaders

import (
	"fmt"
	"image"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/spaghettifunk/arkanoop/engine/renderer/metadata"
)

const (
	atlasColumns = 16
	glyphPadding = 1
)

// SystemFontLoader rasterizes a TrueType or OpenType face into a glyph atlas,
// producing the same layout data as a bitmap font.
type SystemFontLoader struct{}

func (fl *SystemFontLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	p := &metadata.SystemFontParams{Size: 16, First: ' ', Last: '~'}
	if params != nil {
		typed, ok := params.(*metadata.SystemFontParams)
		if !ok {
			return nil, fmt.Errorf("failed to cast params in system font loader")
		}
		p = typed
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fd, err := RasterizeFont(data, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &metadata.Resource{
		Name:     fd.Face,
		FullPath: path,
		Type:     metadata.ResourceTypeSystemFont,
		DataSize: uint64(len(fd.Atlas.Pixels)),
		Data:     fd,
	}, nil
}

func (fl *SystemFontLoader) Unload(resource *metadata.Resource) error {
	if resource != nil {
		resource.Data = nil
		resource.DataSize = 0
	}
	return nil
}

// RasterizeFont draws every codepoint of the requested range into a grid atlas
// with a fixed cell size. Codepoints the face does not cover are skipped.
func RasterizeFont(ttf []byte, params *metadata.SystemFontParams) (*metadata.FontData, error) {
	if params.Size <= 0 || params.Last < params.First {
		return nil, fmt.Errorf("invalid system font parameters: size %.1f, range %q-%q", params.Size, params.First, params.Last)
	}

	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	name, err := f.Name(nil, sfnt.NameIDFamily)
	if err != nil {
		name = ""
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    params.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face: %w", err)
	}
	defer face.Close()

	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	cellH := metrics.Height.Ceil() + 2*glyphPadding

	var runes []rune
	cellW := 0
	for r := params.First; r <= params.Last; r++ {
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			continue
		}
		runes = append(runes, r)
		if w := adv.Ceil() + 2*glyphPadding; w > cellW {
			cellW = w
		}
	}
	if len(runes) == 0 {
		return nil, fmt.Errorf("face '%s' covers none of %q-%q", name, params.First, params.Last)
	}

	rows := (len(runes) + atlasColumns - 1) / atlasColumns
	atlas := image.NewNRGBA(image.Rect(0, 0, atlasColumns*cellW, rows*cellH))
	drawer := &font.Drawer{
		Dst:  atlas,
		Src:  image.White,
		Face: face,
	}

	out := &metadata.FontData{
		Type:       metadata.FONT_TYPE_SYSTEM,
		Face:       name,
		Size:       uint32(params.Size),
		LineHeight: int32(cellH),
		Baseline:   int32(ascent + glyphPadding),
		AtlasSizeX: int32(atlas.Bounds().Dx()),
		AtlasSizeY: int32(atlas.Bounds().Dy()),
		Glyphs:     make(map[rune]metadata.FontGlyph, len(runes)),
		Kernings:   make(map[metadata.KerningPair]int16),
	}

	for i, r := range runes {
		x := (i % atlasColumns) * cellW
		y := (i / atlasColumns) * cellH
		drawer.Dot = fixed.P(x+glyphPadding, y+glyphPadding+ascent)
		adv, _ := face.GlyphAdvance(r)
		drawer.DrawString(string(r))

		out.Glyphs[r] = metadata.FontGlyph{
			Codepoint: r,
			X:         uint16(x),
			Y:         uint16(y),
			Width:     uint16(cellW),
			Height:    uint16(cellH),
			XAdvance:  int16(adv.Ceil()),
		}
	}

	for _, a := range runes {
		for _, b := range runes {
			if k := face.Kern(a, b).Round(); k != 0 {
				out.Kernings[metadata.KerningPair{First: a, Second: b}] = int16(k)
			}
		}
	}

	out.Atlas = DecodePixels(atlas, metadata.PixelFormatRGBA, false)
	return out, nil
}
