package render

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/font/basicfont"
	"github.com/stretchr/testify/require"

	"github.com/jpfielding/dcmview/pkg/dcm"
)

func gray(t *testing.T, cols, rows uint16) *dcm.Bitmap {
	src := make([]byte, int(cols)*int(rows))
	for i := range src {
		src[i] = byte(i)
	}
	b, err := dcm.Transcode(src, dcm.PixelFormat{Columns: cols, Rows: rows, BitsAllocated: 8, SamplesPerPixel: 1})
	require.NoError(t, err)
	return b
}

func TestEncodePNG_RoundTrip(t *testing.T) {
	b := gray(t, 4, 3)
	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, b, Options{}))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 3, img.Bounds().Dy())

	r, g, bl, a := img.At(1, 2).RGBA()
	assert.Equal(t, uint32(9)*0x101, r)
	assert.Equal(t, r, g)
	assert.Equal(t, r, bl)
	assert.Equal(t, uint32(0xFFFF), a)
}

func TestImage_InvertMonochrome1(t *testing.T) {
	b := gray(t, 2, 1)
	orig := bytes.Clone(b.Pix)

	img := Image(b, Options{InvertMonochrome1: true}.ForMetadata(dcm.Metadata{PhotometricInterpretation: "MONOCHROME1"}))
	assert.Equal(t, []byte{255, 255, 255, 255, 254, 254, 254, 255}, img.Pix)
	assert.Equal(t, orig, b.Pix, "bitmap untouched")

	img = Image(b, Options{InvertMonochrome1: true}.ForMetadata(dcm.Metadata{PhotometricInterpretation: "MONOCHROME2"}))
	assert.Equal(t, orig, img.Pix)

	img = Image(b, Options{Monochrome1: true})
	assert.Equal(t, orig, img.Pix, "inversion disabled")
}

func TestScale(t *testing.T) {
	b := gray(t, 200, 100)

	img := Image(b, Options{MaxDim: 50})
	assert.Equal(t, 50, img.Bounds().Dx())
	assert.Equal(t, 25, img.Bounds().Dy())

	tall := gray(t, 10, 40)
	img = Image(tall, Options{MaxDim: 20})
	assert.Equal(t, 5, img.Bounds().Dx())
	assert.Equal(t, 20, img.Bounds().Dy())

	img = Image(b, Options{MaxDim: 500})
	assert.Equal(t, 200, img.Bounds().Dx(), "no upscaling")
}

func TestPlaceholder(t *testing.T) {
	img := Placeholder(0, 0, "dcm: unsupported pixel encoding: samples per pixel 2 with bits allocated 8")
	assert.Equal(t, 256, img.Bounds().Dx())
	assert.Equal(t, 256, img.Bounds().Dy())

	// some text pixels are white on the dark background
	var white int
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] == 0xFF {
			white++
		}
	}
	assert.Greater(t, white, 0)
	assert.Equal(t, placeholderBackground, img.RGBAAt(0, 0))
}

func TestWrap(t *testing.T) {
	face := basicfont.Face7x13
	lines := wrap(face, "aaaa bbbb cccc", 7*9)
	assert.Equal(t, []string{"aaaa bbbb", "cccc"}, lines)
	assert.Empty(t, wrap(face, "   ", 100))
}

func TestBase64PNG(t *testing.T) {
	s, err := Base64PNG(gray(t, 2, 2), Options{})
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(s)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), raw[:4])
}
