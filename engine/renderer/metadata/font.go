package metadata

type FontType int

const (
	FONT_TYPE_BITMAP FontType = iota
	FONT_TYPE_SYSTEM
)

func (t FontType) String() string {
	if t == FONT_TYPE_SYSTEM {
		return "system"
	}
	return "bitmap"
}

/** @brief Placement of one glyph inside the font atlas, in pixels. */
type FontGlyph struct {
	Codepoint rune
	X         uint16
	Y         uint16
	Width     uint16
	Height    uint16
	XOffset   int16
	YOffset   int16
	XAdvance  int16
	PageID    uint8
}

type KerningPair struct {
	First  rune
	Second rune
}

/**
 * @brief Everything needed to lay out text with a font. Bitmap fonts reference
 * their atlas pages by file; system fonts are rasterized at load time and carry
 * the atlas pixels in Atlas.
 */
type FontData struct {
	Type       FontType
	Face       string
	Size       uint32
	LineHeight int32
	Baseline   int32
	AtlasSizeX int32
	AtlasSizeY int32
	Glyphs     map[rune]FontGlyph
	Kernings   map[KerningPair]int16
	/** @brief Page files, indexed by FontGlyph.PageID. Bitmap fonts only. */
	Pages []string
	/** @brief The rasterized atlas. System fonts only. */
	Atlas *ImageResourceData
}

/** @brief Parameters used when loading a system font. */
type SystemFontParams struct {
	/** @brief The pixel size the face is rasterized at. */
	Size float64
	/** @brief First and last codepoint of the rasterized range. */
	First rune
	Last  rune
}

// Kerning returns the horizontal adjustment between two codepoints.
func (f *FontData) Kerning(first, second rune) int16 {
	if f.Kernings == nil {
		return 0
	}
	return f.Kernings[KerningPair{First: first, Second: second}]
}
