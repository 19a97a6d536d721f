package game

import (
	"fmt"

	"github.com/spaghettifunk/arkanoop/engine/containers"
	"github.com/spaghettifunk/arkanoop/engine/core"
	"github.com/spaghettifunk/arkanoop/engine/math"
	"github.com/spaghettifunk/arkanoop/engine/renderer"
	"github.com/spaghettifunk/arkanoop/engine/renderer/metadata"
)

// FontSource loads bitmap fonts and rasterizes system fonts.
type FontSource interface {
	LoadFont(path string, size float64) (*metadata.FontData, error)
}

/**
 * @brief Draws text with a bitmap or rasterized system font. The glyph atlas
 * lives in a standalone texture bound to its own texture unit, so it never
 * disturbs the texture table.
 */
type HUD struct {
	Path   string
	Scale  float32
	Colour math.Vec4

	font     *metadata.FontData
	texture  *renderer.Texture
	vertices []metadata.Vertex
	indices  []uint32
}

func LoadHUD(r *renderer.Renderer, fonts FontSource, alloc *renderer.TextureIndexAllocator, path string, config HUDConfig) (*HUD, error) {
	font, err := fonts.LoadFont(path, config.Size)
	if err != nil {
		return nil, err
	}

	var tex *renderer.Texture
	switch {
	case font.Atlas != nil:
		tex, err = r.NewTextureFromImage(alloc, path, font.Atlas)
	case len(font.Pages) > 0:
		if len(font.Pages) > 1 {
			core.LogWarn("font '%s' has %d pages, only the first one is used", path, len(font.Pages))
		}
		tex, err = r.NewTexture(alloc, font.Pages[0])
	default:
		err = fmt.Errorf("font '%s' has no atlas", path)
	}
	if err != nil {
		return nil, err
	}

	c := config.Colour
	return &HUD{
		Path:    path,
		Scale:   config.Scale,
		Colour:  math.NewVec4(c[0], c[1], c[2], c[3]),
		font:    font,
		texture: tex,
	}, nil
}

func (h *HUD) Font() *metadata.FontData {
	return h.font
}

// Begin discards the text queued during the previous frame.
func (h *HUD) Begin() {
	h.vertices = h.vertices[:0]
	h.indices = h.indices[:0]
}

// Text queues text with its top-left corner at pos.
func (h *HUD) Text(text string, pos math.Vec2) {
	h.vertices, h.indices = LayoutText(h.font, text, pos, h.Scale, h.Colour, h.vertices, h.indices)
}

// TextCentered queues text horizontally centred on x.
func (h *HUD) TextCentered(text string, x, y float32) {
	w := TextWidth(h.font, text, h.Scale)
	h.Text(text, math.NewVec2(x-w/2, y))
}

// Draw submits the queued text with the given sprite shader.
func (h *HUD) Draw(r *renderer.Renderer, shader containers.Handle) error {
	if len(h.indices) == 0 {
		return nil
	}
	if err := r.SetUniformInt(shader, int32(h.texture.Index), "tex"); err != nil {
		return err
	}
	h.texture.Bind()
	r.DrawElements(metadata.DrawModeTriangles, h.vertices, h.indices)
	h.texture.Unbind()
	return nil
}

func (h *HUD) Destroy() {
	if h.texture != nil {
		h.texture.Destroy()
		h.texture = nil
	}
}

/**
 * @brief Appends one quad per visible glyph of text. The pen starts at pos,
 * advances by the glyph advance plus kerning and moves down a line on '\n'.
 * Codepoints missing from the font are skipped.
 */
func LayoutText(font *metadata.FontData, text string, pos math.Vec2, scale float32, colour math.Vec4, vertices []metadata.Vertex, indices []uint32) ([]metadata.Vertex, []uint32) {
	atlas := math.NewVec2(float32(font.AtlasSizeX), float32(font.AtlasSizeY))
	pen := pos
	var prev rune
	for _, r := range text {
		if r == '\n' {
			pen = math.NewVec2(pos.X, pen.Y+float32(font.LineHeight)*scale)
			prev = 0
			continue
		}
		g, ok := font.Glyphs[r]
		if !ok {
			continue
		}
		if prev != 0 {
			pen.X += float32(font.Kerning(prev, r)) * scale
		}
		if g.Width > 0 && g.Height > 0 {
			quad := Sprite{Colour: colour}
			size := math.NewVec2(float32(g.Width), float32(g.Height))
			topLeft := pen.Add(math.NewVec2(float32(g.XOffset), float32(g.YOffset)).MulScalar(scale))
			quad.SetSize(size.MulScalar(scale))
			quad.Origin = topLeft.Add(quad.HalfSize)
			uvMin := math.NewVec2(float32(g.X)/atlas.X, float32(g.Y)/atlas.Y)
			quad.UV = math.Rect{Min: uvMin, Max: uvMin.Add(math.NewVec2(size.X/atlas.X, size.Y/atlas.Y))}
			vertices, indices = quad.AppendQuad(vertices, indices)
		}
		pen.X += float32(g.XAdvance) * scale
		prev = r
	}
	return vertices, indices
}

// TextWidth returns the advance of the longest line of text.
func TextWidth(font *metadata.FontData, text string, scale float32) float32 {
	var width, line float32
	var prev rune
	for _, r := range text {
		if r == '\n' {
			width = max(width, line)
			line, prev = 0, 0
			continue
		}
		g, ok := font.Glyphs[r]
		if !ok {
			continue
		}
		if prev != 0 {
			line += float32(font.Kerning(prev, r)) * scale
		}
		line += float32(g.XAdvance) * scale
		prev = r
	}
	return max(width, line)
}
