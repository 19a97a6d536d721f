package metadata

/** @brief Pixel layouts understood by the texture upload path. */
type PixelFormat uint8

const (
	PixelFormatRGB PixelFormat = iota
	PixelFormatRGBA
)

// Channels returns the number of bytes per pixel.
func (f PixelFormat) Channels() int {
	if f == PixelFormatRGB {
		return 3
	}
	return 4
}

/**
 * @brief A structure to hold image resource data.
 */
type ImageResourceData struct {
	/** @brief The pixel layout of Pixels. */
	Format PixelFormat
	/** @brief The width of the image. */
	Width uint32
	/** @brief The height of the image. */
	Height uint32
	/** @brief Tightly packed rows of pixel data, top row first unless flipped. */
	Pixels []uint8
}

/** @brief Parameters used when loading an image. */
type ImageResourceParams struct {
	/** @brief Indicates if the image should be flipped on the y-axis when loaded. */
	FlipY bool
	/** @brief The pixel layout the decoded image is converted to. */
	Format PixelFormat
}
