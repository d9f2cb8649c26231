package dcm

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/jpfielding/dcmview/pkg/dcm/tag"
)

// Result is the outcome of decoding one file. Metadata is always populated
// once the dataset parsed; a pixel failure is carried in PixelErr and leaves
// Bitmap nil.
type Result struct {
	Dataset  *Dataset
	Metadata Metadata
	Bitmap   *Bitmap
	PixelErr error
}

// Decode parses a DICOM file (with or without the Part 10 preamble) and
// transcodes its pixel data. The returned error is only set when the dataset
// itself could not be read.
func Decode(buf []byte, opts ...ReadOption) (*Result, error) {
	ds, err := Parse(buf, opts...)
	if err != nil {
		return nil, err
	}
	return DecodeDataset(ds), nil
}

// DecodeDataset extracts metadata and transcodes the pixel data of ds
func DecodeDataset(ds *Dataset) *Result {
	res := &Result{
		Dataset:  ds,
		Metadata: NewMetadata(ds),
	}
	res.Bitmap, res.PixelErr = decodePixels(ds)
	if res.PixelErr != nil {
		slog.Debug("Pixel data not decoded", slog.String("error", res.PixelErr.Error()))
	}
	return res
}

func decodePixels(ds *Dataset) (*Bitmap, error) {
	// no pixel element outranks missing geometry
	if _, err := ds.PixelRange(); err != nil {
		return nil, err
	}
	f, err := ds.PixelFormat()
	if err != nil {
		return nil, err
	}
	pixels, err := ds.PixelData()
	if err != nil {
		return nil, err
	}
	return Transcode(pixels, f)
}

// PixelFormat collects the image pixel module attributes that drive Transcode.
// SamplesPerPixel defaults to 1 when absent. Multi-frame and planar RGB
// layouts are rejected with ErrUnsupportedEncoding.
func (ds *Dataset) PixelFormat() (PixelFormat, error) {
	f := PixelFormat{
		SamplesPerPixel: 1,
		ByteOrder:       ds.syntax.ByteOrder(),
	}
	var ok bool
	if f.Columns, ok = ds.Uint16(Columns); !ok {
		return f, unsupported(tag.Columns, "columns not available")
	}
	if f.Rows, ok = ds.Uint16(Rows); !ok {
		return f, unsupported(tag.Rows, "rows not available")
	}
	if f.BitsAllocated, ok = ds.Uint16(BitsAllocated); !ok {
		return f, unsupported(tag.BitsAllocated, "bits allocated not available")
	}
	if spp, ok := ds.Uint16(SamplesPerPixel); ok {
		f.SamplesPerPixel = spp
	}
	if f.Columns == 0 || f.Rows == 0 {
		return f, unsupported(tag.PixelData, "empty image %dx%d", f.Columns, f.Rows)
	}
	if s, ok := ds.Text(NumberOfFrames); ok && s != "" {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err == nil && n > 1 {
			return f, unsupported(tag.NumberOfFrames, "multi-frame image (%d frames)", n)
		}
	}
	if pc, ok := ds.Uint16(PlanarConfiguration); ok && pc == 1 && f.SamplesPerPixel == 3 {
		return f, unsupported(tag.PlanarConfiguration, "planar color layout")
	}
	return f, nil
}
