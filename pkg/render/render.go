// Package render rasterizes transcoded bitmaps for display
package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/draw"

	"github.com/jpfielding/dcmview/pkg/dcm"
)

// Options control how a bitmap is turned into an image
type Options struct {
	// MaxDim bounds the longest side; larger images are scaled down keeping
	// their aspect ratio. Zero disables scaling.
	MaxDim int
	// InvertMonochrome1 flips gray levels of MONOCHROME1 bitmaps so that
	// minimum sample values display white
	InvertMonochrome1 bool
	// Monochrome1 marks the bitmap as MONOCHROME1
	Monochrome1 bool
}

// ForMetadata returns a copy of o describing a bitmap with metadata m
func (o Options) ForMetadata(m dcm.Metadata) Options {
	o.Monochrome1 = m.IsMonochrome1()
	return o
}

// Image converts a bitmap to an image. The bitmap is never modified; the
// result shares its pixels only when no processing was needed.
func Image(b *dcm.Bitmap, o Options) *image.RGBA {
	img := b.Image()
	if o.InvertMonochrome1 && o.Monochrome1 {
		img = invert(img)
	}
	return Scale(img, o.MaxDim)
}

// Scale shrinks img so its longest side is at most maxDim
func Scale(img *image.RGBA, maxDim int) *image.RGBA {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return img
	}
	nw, nh := maxDim, maxDim
	if w >= h {
		nh = max(1, h*maxDim/w)
	} else {
		nw = max(1, w*maxDim/h)
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

func invert(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	for i := 0; i+3 < len(dst.Pix); i += 4 {
		dst.Pix[i] = 255 - dst.Pix[i]
		dst.Pix[i+1] = 255 - dst.Pix[i+1]
		dst.Pix[i+2] = 255 - dst.Pix[i+2]
	}
	return dst
}

// EncodePNG writes the bitmap as a PNG
func EncodePNG(w io.Writer, b *dcm.Bitmap, o Options) error {
	return WritePNG(w, Image(b, o))
}

// WritePNG encodes any image as PNG
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// Base64PNG returns the bitmap as a base64 encoded PNG
func Base64PNG(b *dcm.Bitmap, o Options) (string, error) {
	return Base64Image(Image(b, o))
}

// Base64Image returns img as a base64 encoded PNG
func Base64Image(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
