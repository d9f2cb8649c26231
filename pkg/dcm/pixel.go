package dcm

import (
	"encoding/binary"
	"fmt"
	"image"

	"github.com/jpfielding/dcmview/pkg/dcm/tag"
)

// PixelFormat describes the layout of a native single-frame pixel payload
type PixelFormat struct {
	Columns         uint16
	Rows            uint16
	BitsAllocated   uint16
	SamplesPerPixel uint16
	// ByteOrder of 16-bit samples. Nil is read as little endian, the order of
	// every native transfer syntax except Explicit VR Big Endian; callers that
	// need the high-byte-first reading must set binary.BigEndian.
	ByteOrder binary.ByteOrder
}

// FrameSize returns the number of payload bytes one frame needs
func (f PixelFormat) FrameSize() int {
	return int(f.Columns) * int(f.Rows) * int(f.SamplesPerPixel) * (int(f.BitsAllocated) / 8)
}

func (f PixelFormat) String() string {
	return fmt.Sprintf("%dx%d samples=%d bits=%d", f.Columns, f.Rows, f.SamplesPerPixel, f.BitsAllocated)
}

// Bitmap is a row-major RGBA image, 4 bytes per pixel with no row padding
type Bitmap struct {
	Columns uint16
	Rows    uint16
	Pix     []byte
}

// Stride returns the number of bytes per row
func (b *Bitmap) Stride() int {
	return 4 * int(b.Columns)
}

// Image wraps the bitmap as an image.RGBA sharing Pix
func (b *Bitmap) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    b.Pix,
		Stride: b.Stride(),
		Rect:   image.Rect(0, 0, int(b.Columns), int(b.Rows)),
	}
}

// Transcode converts a native pixel payload into an RGBA bitmap. Supported
// layouts are 8-bit and 16-bit grayscale and 8-bit interleaved RGB; anything
// else fails with ErrUnsupportedEncoding. The payload is length checked
// before any sample is read, and trailing bytes beyond one frame are ignored.
func Transcode(pixels []byte, f PixelFormat) (*Bitmap, error) {
	var convert func(src, dst []byte, order binary.ByteOrder)
	switch {
	case f.SamplesPerPixel == 1 && f.BitsAllocated == 8:
		convert = gray8
	case f.SamplesPerPixel == 1 && f.BitsAllocated == 16:
		convert = gray16
	case f.SamplesPerPixel == 3 && f.BitsAllocated == 8:
		convert = rgb8
	default:
		return nil, unsupported(tag.PixelData, "samples per pixel %d with bits allocated %d", f.SamplesPerPixel, f.BitsAllocated)
	}

	need := f.FrameSize()
	if len(pixels) < need {
		return nil, &DecodeError{
			Kind:   ErrTruncatedPixelData,
			Tag:    tag.PixelData,
			Offset: -1,
			Length: len(pixels),
			Msg:    fmt.Sprintf("need %d bytes for %s", need, f),
		}
	}
	order := f.ByteOrder
	if order == nil {
		order = binary.LittleEndian
	}

	b := &Bitmap{
		Columns: f.Columns,
		Rows:    f.Rows,
		Pix:     make([]byte, 4*int(f.Columns)*int(f.Rows)),
	}
	convert(pixels[:need], b.Pix, order)
	return b, nil
}

func gray8(src, dst []byte, _ binary.ByteOrder) {
	for i, v := range src {
		d := dst[i*4 : i*4+4 : i*4+4]
		d[0], d[1], d[2], d[3] = v, v, v, 0xFF
	}
}

func gray16(src, dst []byte, order binary.ByteOrder) {
	for i := 0; i < len(src)/2; i++ {
		v := scale16(order.Uint16(src[i*2:]))
		d := dst[i*4 : i*4+4 : i*4+4]
		d[0], d[1], d[2], d[3] = v, v, v, 0xFF
	}
}

func rgb8(src, dst []byte, _ binary.ByteOrder) {
	for i := 0; i < len(src)/3; i++ {
		s := src[i*3 : i*3+3 : i*3+3]
		d := dst[i*4 : i*4+4 : i*4+4]
		d[0], d[1], d[2], d[3] = s[0], s[1], s[2], 0xFF
	}
}

// scale16 maps 0..65535 onto 0..255 rounding to nearest
func scale16(v uint16) byte {
	return byte((uint32(v)*255 + 32767) / 65535)
}
