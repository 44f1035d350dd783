package imagecache

import (
	"bytes"
	"image"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// decode sniffs the payload and picks a decoder. WebP is handled
// explicitly; everything else goes through imaging, which registers the
// common raster formats.
func decode(data []byte) (image.Image, error) {
	if isWebP(data) {
		return webp.Decode(bytes.NewReader(data))
	}
	return imaging.Decode(bytes.NewReader(data))
}

// isWebP checks for the RIFF....WEBP container header.
func isWebP(data []byte) bool {
	return len(data) >= 12 &&
		bytes.Equal(data[0:4], []byte("RIFF")) &&
		bytes.Equal(data[8:12], []byte("WEBP"))
}

// scale fits img inside width×height preserving aspect ratio. A
// non-positive dimension returns the image unscaled.
func scale(img image.Image, width, height int) image.Image {
	if width <= 0 || height <= 0 {
		return img
	}
	return imaging.Fit(img, width, height, imaging.Lanczos)
}
