package loaders

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/spaghettifunk/arkanoop/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writePNG writes a 2x2 image: red, green on the top row; blue, half
// transparent white on the bottom row.
func writePNG(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(1, 0, color.NRGBA{G: 255, A: 255})
	img.Set(0, 1, color.NRGBA{B: 255, A: 255})
	img.Set(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 128})

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestImageLoaderRGBA(t *testing.T) {
	path := writePNG(t, t.TempDir(), "sheet.png")

	res, err := (&ImageLoader{}).Load(path, metadata.ResourceTypeImage, &metadata.ImageResourceParams{Format: metadata.PixelFormatRGBA})
	require.NoError(t, err)
	assert.Equal(t, "png", res.Name)

	data := res.Data.(*metadata.ImageResourceData)
	assert.Equal(t, uint32(2), data.Width)
	assert.Equal(t, uint32(2), data.Height)
	assert.Equal(t, metadata.PixelFormatRGBA, data.Format)
	assert.Equal(t, []uint8{
		255, 0, 0, 255, 0, 255, 0, 255,
		0, 0, 255, 255, 255, 255, 255, 128,
	}, data.Pixels)
}

func TestImageLoaderRGBFlipped(t *testing.T) {
	path := writePNG(t, t.TempDir(), "sheet.png")

	res, err := (&ImageLoader{}).Load(path, metadata.ResourceTypeImage, &metadata.ImageResourceParams{Format: metadata.PixelFormatRGB, FlipY: true})
	require.NoError(t, err)

	data := res.Data.(*metadata.ImageResourceData)
	assert.Equal(t, metadata.PixelFormatRGB, data.Format)
	assert.Equal(t, []uint8{
		0, 0, 255, 255, 255, 255,
		255, 0, 0, 0, 255, 0,
	}, data.Pixels)
	assert.Equal(t, uint64(12), res.DataSize)
}

func TestImageLoaderErrors(t *testing.T) {
	dir := t.TempDir()
	il := &ImageLoader{}

	_, err := il.Load(filepath.Join(dir, "missing.png"), metadata.ResourceTypeImage, nil)
	assert.ErrorIs(t, err, os.ErrNotExist)

	corrupt := filepath.Join(dir, "corrupt.png")
	require.NoError(t, os.WriteFile(corrupt, []byte("definitely not a png"), 0o644))
	_, err = il.Load(corrupt, metadata.ResourceTypeImage, nil)
	assert.ErrorIs(t, err, image.ErrFormat)

	_, err = il.Load(corrupt, metadata.ResourceTypeImage, "wrong params")
	assert.Error(t, err)
}

func TestShaderLoader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sprite.vert")
	src := "#version 410 core\nvoid main() {}\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	sl := &ShaderLoader{}
	res, err := sl.Load(path, metadata.ResourceTypeShader, nil)
	require.NoError(t, err)
	assert.Equal(t, src, res.Data)
	assert.Equal(t, uint64(len(src)), res.DataSize)

	require.NoError(t, sl.Unload(res))
	assert.Nil(t, res.Data)

	_, err = sl.Load(filepath.Join(dir, "nope.frag"), metadata.ResourceTypeShader, nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

const testFNT = `info face="Test" size=16 bold=0 italic=0 charset="" unicode=1 stretchH=100 smooth=1 aa=1 padding=0,0,0,0 spacing=1,1 outline=0
common lineHeight=18 base=14 scaleW=2 scaleH=2 pages=1 packed=0 alphaChnl=0 redChnl=0 greenChnl=0 blueChnl=0
page id=0 file="hud.png"
chars count=2
char id=65   x=0     y=0     width=1     height=2     xoffset=0     yoffset=4     xadvance=9     page=0  chnl=15
char id=66   x=1     y=0     width=1     height=2     xoffset=1     yoffset=4     xadvance=8     page=0  chnl=15
kernings count=1
kerning first=65  second=66  amount=-1
`

func TestBitmapFontLoader(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "hud.png")
	path := filepath.Join(dir, "hud.fnt")
	require.NoError(t, os.WriteFile(path, []byte(testFNT), 0o644))

	res, err := (&BitmapFontLoader{}).Load(path, metadata.ResourceTypeBitmapFont, nil)
	require.NoError(t, err)

	fd := res.Data.(*metadata.FontData)
	assert.Equal(t, metadata.FONT_TYPE_BITMAP, fd.Type)
	assert.Equal(t, "Test", fd.Face)
	assert.Equal(t, int32(18), fd.LineHeight)
	assert.Equal(t, int32(14), fd.Baseline)
	assert.Equal(t, []string{filepath.Join(dir, "hud.png")}, fd.Pages)

	require.Len(t, fd.Glyphs, 2)
	b := fd.Glyphs['B']
	assert.Equal(t, uint16(1), b.X)
	assert.Equal(t, int16(8), b.XAdvance)
	assert.Equal(t, int16(1), b.XOffset)
	assert.Equal(t, int16(-1), fd.Kerning('A', 'B'))
	assert.Zero(t, fd.Kerning('B', 'A'))

	_, err = (&BitmapFontLoader{}).Load(filepath.Join(dir, "hud.txt"), metadata.ResourceTypeBitmapFont, nil)
	assert.Error(t, err)
}

func TestRasterizeFont(t *testing.T) {
	fd, err := RasterizeFont(goregular.TTF, &metadata.SystemFontParams{Size: 12, First: '0', Last: '9'})
	require.NoError(t, err)

	assert.Equal(t, metadata.FONT_TYPE_SYSTEM, fd.Type)
	assert.Equal(t, "Go", fd.Face)
	require.Len(t, fd.Glyphs, 10)
	require.NotNil(t, fd.Atlas)
	assert.Equal(t, uint32(fd.AtlasSizeX), fd.Atlas.Width)
	assert.Equal(t, uint32(fd.AtlasSizeY), fd.Atlas.Height)
	assert.Len(t, fd.Atlas.Pixels, int(fd.AtlasSizeX*fd.AtlasSizeY)*4)

	// Second row starts after 16 glyphs; ten digits fit on the first row.
	assert.Equal(t, uint16(0), fd.Glyphs['0'].Y)
	assert.Greater(t, fd.Glyphs['1'].X, fd.Glyphs['0'].X)
	assert.Greater(t, fd.Glyphs['5'].XAdvance, int16(0))

	inked := false
	for i := 3; i < len(fd.Atlas.Pixels); i += 4 {
		if fd.Atlas.Pixels[i] != 0 {
			inked = true
			break
		}
	}
	assert.True(t, inked, "atlas has visible glyph pixels")

	_, err = RasterizeFont(goregular.TTF, &metadata.SystemFontParams{Size: 0, First: 'a', Last: 'z'})
	assert.Error(t, err)
	_, err = RasterizeFont([]byte("nope"), &metadata.SystemFontParams{Size: 12, First: 'a', Last: 'z'})
	assert.Error(t, err)
}
