package render

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	placeholderSize = 256
	margin          = 8
)

var placeholderBackground = color.RGBA{0x30, 0x30, 0x30, 0xFF}

// Placeholder draws msg on a dark gray image, used in place of pixels that
// could not be decoded. Non-positive dimensions fall back to 256x256.
func Placeholder(width, height int, msg string) *image.RGBA {
	if width <= 0 || height <= 0 {
		width, height = placeholderSize, placeholderSize
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(placeholderBackground), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	lines := wrap(face, msg, width-2*margin)
	lineHeight := face.Metrics().Height.Ceil()
	y := (height-len(lines)*lineHeight)/2 + face.Metrics().Ascent.Ceil()
	if y < margin {
		y = margin + face.Metrics().Ascent.Ceil()
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
	}
	for _, line := range lines {
		x := (width - font.MeasureString(face, line).Ceil()) / 2
		d.Dot = fixed.P(max(x, margin), y)
		d.DrawString(line)
		y += lineHeight
	}
	return img
}

// wrap splits msg into lines no wider than maxWidth where word breaks allow
func wrap(face font.Face, msg string, maxWidth int) []string {
	var lines []string
	var cur string
	for _, word := range strings.Fields(msg) {
		next := word
		if cur != "" {
			next = cur + " " + word
		}
		if cur != "" && font.MeasureString(face, next).Ceil() > maxWidth {
			lines = append(lines, cur)
			cur = word
			continue
		}
		cur = next
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}
