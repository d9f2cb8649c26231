package dcm

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscode_Gray8(t *testing.T) {
	b, err := Transcode([]byte{10, 20, 30, 40}, PixelFormat{Columns: 2, Rows: 2, BitsAllocated: 8, SamplesPerPixel: 1})
	require.NoError(t, err)
	assert.Equal(t, uint16(2), b.Columns)
	assert.Equal(t, uint16(2), b.Rows)
	assert.Equal(t, []byte{
		10, 10, 10, 255,
		20, 20, 20, 255,
		30, 30, 30, 255,
		40, 40, 40, 255,
	}, b.Pix)
}

func TestTranscode_Gray8EveryValue(t *testing.T) {
	src := make([]byte, 256)
	for i := range src {
		src[i] = byte(i)
	}
	b, err := Transcode(src, PixelFormat{Columns: 16, Rows: 16, BitsAllocated: 8, SamplesPerPixel: 1})
	require.NoError(t, err)
	require.Len(t, b.Pix, 4*256)
	for i, v := range src {
		assert.Equal(t, []byte{v, v, v, 255}, b.Pix[i*4:i*4+4], "pixel %d", i)
	}
}

func TestTranscode_Gray16Rounding(t *testing.T) {
	values := []uint16{0, 1, 32768, 65534, 65535}
	expected := []byte{0, 0, 128, 255, 255}

	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		src := make([]byte, 2*len(values))
		for i, v := range values {
			order.PutUint16(src[i*2:], v)
		}
		b, err := Transcode(src, PixelFormat{Columns: uint16(len(values)), Rows: 1, BitsAllocated: 16, SamplesPerPixel: 1, ByteOrder: order})
		require.NoError(t, err)
		for i, v := range values {
			want := byte(math.Round(float64(v) / 65535 * 255))
			assert.Equal(t, expected[i], want)
			assert.Equal(t, []byte{want, want, want, 255}, b.Pix[i*4:i*4+4], "%s value %d", order, v)
		}
	}
}

func TestScale16_MatchesRound(t *testing.T) {
	for v := 0; v <= math.MaxUint16; v++ {
		want := byte(math.Round(float64(v) / 65535 * 255))
		if got := scale16(uint16(v)); got != want {
			t.Fatalf("scale16(%d) = %d, want %d", v, got, want)
		}
	}
}

func TestTranscode_Gray16DefaultsLittleEndian(t *testing.T) {
	b, err := Transcode([]byte{0x00, 0x80}, PixelFormat{Columns: 1, Rows: 1, BitsAllocated: 16, SamplesPerPixel: 1})
	require.NoError(t, err)
	assert.Equal(t, []byte{128, 128, 128, 255}, b.Pix)

	// high byte first only when asked for
	b, err = Transcode([]byte{0x00, 0x80}, PixelFormat{Columns: 1, Rows: 1, BitsAllocated: 16, SamplesPerPixel: 1, ByteOrder: binary.BigEndian})
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 255}, b.Pix)
}

func TestTranscode_RGB8(t *testing.T) {
	src := []byte{
		1, 2, 3, 4, 5, 6,
		250, 0, 7, 8, 9, 255,
	}
	b, err := Transcode(src, PixelFormat{Columns: 2, Rows: 2, BitsAllocated: 8, SamplesPerPixel: 3})
	require.NoError(t, err)
	assert.Equal(t, []byte{
		1, 2, 3, 255,
		4, 5, 6, 255,
		250, 0, 7, 255,
		8, 9, 255, 255,
	}, b.Pix)
}

func TestTranscode_Truncated(t *testing.T) {
	_, err := Transcode(make([]byte, 16), PixelFormat{Columns: 4, Rows: 4, BitsAllocated: 16, SamplesPerPixel: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTruncatedPixelData)

	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, 16, de.Length)

	_, err = Transcode(make([]byte, 11), PixelFormat{Columns: 2, Rows: 2, BitsAllocated: 8, SamplesPerPixel: 3})
	assert.ErrorIs(t, err, ErrTruncatedPixelData)
}

func TestTranscode_IgnoresTrailingBytes(t *testing.T) {
	b, err := Transcode([]byte{7, 8, 9}, PixelFormat{Columns: 2, Rows: 1, BitsAllocated: 8, SamplesPerPixel: 1})
	require.NoError(t, err)
	assert.Len(t, b.Pix, 8)
}

func TestTranscode_Unsupported(t *testing.T) {
	for _, bits := range []uint16{1, 8, 12, 16, 32} {
		b, err := Transcode(make([]byte, 1024), PixelFormat{Columns: 2, Rows: 2, BitsAllocated: bits, SamplesPerPixel: 2})
		assert.ErrorIs(t, err, ErrUnsupportedEncoding, "bits %d", bits)
		assert.Nil(t, b)
	}

	for _, f := range []PixelFormat{
		{Columns: 2, Rows: 2, BitsAllocated: 32, SamplesPerPixel: 1},
		{Columns: 2, Rows: 2, BitsAllocated: 16, SamplesPerPixel: 3},
		{Columns: 2, Rows: 2, BitsAllocated: 8, SamplesPerPixel: 4},
	} {
		_, err := Transcode(make([]byte, 1024), f)
		assert.ErrorIs(t, err, ErrUnsupportedEncoding, f.String())
	}
}

func TestTranscode_DoesNotModifyInput(t *testing.T) {
	src := []byte{1, 2, 3, 4}
	_, err := Transcode(src, PixelFormat{Columns: 2, Rows: 2, BitsAllocated: 8, SamplesPerPixel: 1})
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, src)
}

func TestBitmap_Image(t *testing.T) {
	b, err := Transcode([]byte{10, 20, 30, 40, 50, 60}, PixelFormat{Columns: 3, Rows: 2, BitsAllocated: 8, SamplesPerPixel: 1})
	require.NoError(t, err)

	img := b.Image()
	assert.Equal(t, 3, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
	assert.Equal(t, 12, img.Stride)

	c := img.RGBAAt(2, 1)
	assert.Equal(t, uint8(60), c.R)
	assert.Equal(t, uint8(255), c.A)
}
