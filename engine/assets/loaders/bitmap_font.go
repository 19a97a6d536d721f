package loaders

import (
	"fmt"
	"path/filepath"

	"github.com/fzipp/bmfont"
	"github.com/spaghettifunk/arkanoop/engine/renderer/metadata"
)

type BitmapFontLoader struct{}

// Load imports an AngelCode .fnt descriptor. Page files are resolved relative
// to the descriptor.
func (fl *BitmapFontLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	if filepath.Ext(path) != ".fnt" {
		return nil, fmt.Errorf("unable to load bitmap font '%s': only .fnt is supported", path)
	}

	data, err := fl.importFNTFile(path)
	if err != nil {
		return nil, err
	}

	return &metadata.Resource{
		Name:     data.Face,
		FullPath: path,
		Type:     metadata.ResourceTypeBitmapFont,
		DataSize: uint64(len(data.Glyphs)),
		Data:     data,
	}, nil
}

func (fl *BitmapFontLoader) Unload(resource *metadata.Resource) error {
	if resource != nil && resource.Data != nil {
		if data, ok := resource.Data.(*metadata.FontData); ok {
			data.Glyphs = nil
			data.Kernings = nil
			data.Pages = nil
		}
		resource.Data = nil
		resource.DataSize = 0
	}
	return nil
}

func (fl *BitmapFontLoader) importFNTFile(fntFileName string) (*metadata.FontData, error) {
	font, err := bmfont.Load(fntFileName)
	if err != nil {
		return nil, err
	}
	d := font.Descriptor

	out := &metadata.FontData{
		Type:       metadata.FONT_TYPE_BITMAP,
		Face:       d.Info.Face,
		Size:       uint32(d.Info.Size),
		LineHeight: int32(d.Common.LineHeight),
		Baseline:   int32(d.Common.Base),
		AtlasSizeX: int32(d.Common.ScaleW),
		AtlasSizeY: int32(d.Common.ScaleH),
		Glyphs:     make(map[rune]metadata.FontGlyph, len(d.Chars)),
		Kernings:   make(map[metadata.KerningPair]int16, len(d.Kerning)),
	}

	maxPage := -1
	for _, p := range d.Pages {
		if int(p.ID) > maxPage {
			maxPage = int(p.ID)
		}
	}
	out.Pages = make([]string, maxPage+1)
	dir := filepath.Dir(fntFileName)
	for _, p := range d.Pages {
		out.Pages[int(p.ID)] = filepath.Join(dir, p.File)
	}

	for _, g := range d.Chars {
		codepoint := rune(g.ID)
		out.Glyphs[codepoint] = metadata.FontGlyph{
			Codepoint: codepoint,
			X:         uint16(g.X),
			Y:         uint16(g.Y),
			Width:     uint16(g.Width),
			Height:    uint16(g.Height),
			XOffset:   int16(g.XOffset),
			YOffset:   int16(g.YOffset),
			XAdvance:  int16(g.XAdvance),
			PageID:    uint8(g.Page),
		}
	}

	for p, k := range d.Kerning {
		out.Kernings[metadata.KerningPair{First: rune(p.First), Second: rune(p.Second)}] = int16(k.Amount)
	}

	return out, nil
}
