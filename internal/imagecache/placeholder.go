package imagecache

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	defaultPlaceholderWidth  = 100
	defaultPlaceholderHeight = 140

	placeholderCaption = "No Image"
)

var (
	placeholderFill   = color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
	placeholderBorder = color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}
	placeholderText   = color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}
)

// Placeholder renders the "No Image" stand-in at the given size.
// Non-positive dimensions fall back to the default cover size.
func Placeholder(width, height int) image.Image {
	if width <= 0 {
		width = defaultPlaceholderWidth
	}
	if height <= 0 {
		height = defaultPlaceholderHeight
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(placeholderFill), image.Point{}, draw.Src)

	for x := 0; x < width; x++ {
		img.Set(x, 0, placeholderBorder)
		img.Set(x, height-1, placeholderBorder)
	}
	for y := 0; y < height; y++ {
		img.Set(0, y, placeholderBorder)
		img.Set(width-1, y, placeholderBorder)
	}

	face := basicfont.Face7x13
	textWidth := font.MeasureString(face, placeholderCaption).Ceil()
	if textWidth < width {
		drawer := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(placeholderText),
			Face: face,
			Dot: fixed.P(
				(width-textWidth)/2,
				height/2+face.Metrics().Ascent.Ceil()/2,
			),
		}
		drawer.DrawString(placeholderCaption)
	}
	return img
}
