// Package sample writes synthetic single-frame DICOM images for exercising the
// decoder and viewer
package sample

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/frame"
	"github.com/suyashkumar/dicom/pkg/tag"
)

const secondaryCaptureSOPClass = "1.2.840.10008.5.1.4.1.1.7"

// Options describe the generated image
type Options struct {
	Columns         int
	Rows            int
	BitsAllocated   int // 8 or 16
	SamplesPerPixel int // 1 or 3 (RGB requires 8 bits)
	Monochrome1     bool
	PatientName     string
	PatientID       string
	Modality        string
	Institution     string
}

// DefaultOptions is a 256x256 8-bit grayscale gradient
func DefaultOptions() Options {
	return Options{
		Columns:         256,
		Rows:            256,
		BitsAllocated:   8,
		SamplesPerPixel: 1,
		PatientName:     "SAMPLE^GRADIENT",
		PatientID:       "DCMVIEW-0001",
		Modality:        "OT",
		Institution:     "dcmview",
	}
}

// Validate rejects layouts the generator cannot produce
func (o Options) Validate() error {
	switch {
	case o.Columns < 1 || o.Rows < 1 || o.Columns > 0xFFFF || o.Rows > 0xFFFF:
		return fmt.Errorf("sample: invalid dimensions %dx%d", o.Columns, o.Rows)
	case o.SamplesPerPixel != 1 && o.SamplesPerPixel != 3:
		return fmt.Errorf("sample: samples per pixel must be 1 or 3, got %d", o.SamplesPerPixel)
	case o.BitsAllocated != 8 && o.BitsAllocated != 16:
		return fmt.Errorf("sample: bits allocated must be 8 or 16, got %d", o.BitsAllocated)
	case o.SamplesPerPixel == 3 && o.BitsAllocated != 8:
		return fmt.Errorf("sample: RGB images must use 8 bits")
	}
	return nil
}

func (o Options) photometric() string {
	switch {
	case o.SamplesPerPixel == 3:
		return "RGB"
	case o.Monochrome1:
		return "MONOCHROME1"
	default:
		return "MONOCHROME2"
	}
}

// NewUID returns a UID under the 2.25 root derived from a random UUID
func NewUID() string {
	id := uuid.New()
	return "2.25." + new(big.Int).SetBytes(id[:]).String()
}

// Dataset builds the generated image as an Explicit VR Little Endian dataset
func Dataset(o Options) (dicom.Dataset, error) {
	if err := o.Validate(); err != nil {
		return dicom.Dataset{}, err
	}
	now := time.Now()
	sopInstance := NewUID()

	values := []struct {
		t tag.Tag
		v any
	}{
		{tag.MediaStorageSOPClassUID, []string{secondaryCaptureSOPClass}},
		{tag.MediaStorageSOPInstanceUID, []string{sopInstance}},
		{tag.TransferSyntaxUID, []string{"1.2.840.10008.1.2.1"}},
		{tag.SOPClassUID, []string{secondaryCaptureSOPClass}},
		{tag.SOPInstanceUID, []string{sopInstance}},
		{tag.StudyDate, []string{now.Format("20060102")}},
		{tag.StudyTime, []string{now.Format("150405")}},
		{tag.Modality, []string{o.Modality}},
		{tag.InstitutionName, []string{o.Institution}},
		{tag.SeriesDescription, []string{fmt.Sprintf("%d-bit %s gradient", o.BitsAllocated, o.photometric())}},
		{tag.PatientName, []string{o.PatientName}},
		{tag.PatientID, []string{o.PatientID}},
		{tag.StudyInstanceUID, []string{NewUID()}},
		{tag.SeriesInstanceUID, []string{NewUID()}},
		{tag.SeriesNumber, []string{"1"}},
		{tag.InstanceNumber, []string{"1"}},
		{tag.SamplesPerPixel, []int{o.SamplesPerPixel}},
		{tag.PhotometricInterpretation, []string{o.photometric()}},
		{tag.Rows, []int{o.Rows}},
		{tag.Columns, []int{o.Columns}},
		{tag.BitsAllocated, []int{o.BitsAllocated}},
		{tag.BitsStored, []int{o.BitsAllocated}},
		{tag.HighBit, []int{o.BitsAllocated - 1}},
		{tag.PixelRepresentation, []int{0}},
	}
	if o.SamplesPerPixel == 3 {
		values = append(values, struct {
			t tag.Tag
			v any
		}{tag.PlanarConfiguration, []int{0}})
	}

	elements := make([]*dicom.Element, 0, len(values)+1)
	for _, kv := range values {
		elem, err := dicom.NewElement(kv.t, kv.v)
		if err != nil {
			return dicom.Dataset{}, fmt.Errorf("sample: element %v: %w", kv.t, err)
		}
		elements = append(elements, elem)
	}

	sort.Slice(elements, func(i, j int) bool {
		a, b := elements[i].Tag, elements[j].Tag
		if a.Group != b.Group {
			return a.Group < b.Group
		}
		return a.Element < b.Element
	})

	pixels, err := dicom.NewElement(tag.PixelData, dicom.PixelDataInfo{
		Frames: []*frame.Frame{{Encapsulated: false, NativeData: nativeFrame(o)}},
	})
	if err != nil {
		return dicom.Dataset{}, fmt.Errorf("sample: pixel data: %w", err)
	}
	elements = append(elements, pixels)
	return dicom.Dataset{Elements: elements}, nil
}

func nativeFrame(o Options) frame.INativeFrame {
	pixelsPerFrame := o.Columns * o.Rows
	if o.BitsAllocated == 16 {
		f := frame.NewNativeFrame[uint16](16, o.Rows, o.Columns, pixelsPerFrame, 1)
		for y := 0; y < o.Rows; y++ {
			for x := 0; x < o.Columns; x++ {
				f.RawData[y*o.Columns+x] = uint16(sampleAt(o, x, y, 0))
			}
		}
		return f
	}
	f := frame.NewNativeFrame[uint8](8, o.Rows, o.Columns, pixelsPerFrame, o.SamplesPerPixel)
	for y := 0; y < o.Rows; y++ {
		for x := 0; x < o.Columns; x++ {
			for s := 0; s < o.SamplesPerPixel; s++ {
				f.RawData[(y*o.Columns+x)*o.SamplesPerPixel+s] = uint8(sampleAt(o, x, y, s))
			}
		}
	}
	return f
}

// sampleAt is the gradient value of sample s at (x, y). Grayscale ramps along
// the diagonal; RGB ramps red across, green down, with constant blue.
func sampleAt(o Options, x, y, s int) int {
	maxValue := 1<<o.BitsAllocated - 1
	ramp := func(v, n int) int {
		if n <= 1 {
			return 0
		}
		return v * maxValue / (n - 1)
	}
	if o.SamplesPerPixel == 1 {
		span := o.Columns + o.Rows - 1
		return ramp(x+y, span)
	}
	switch s {
	case 0:
		return ramp(x, o.Columns)
	case 1:
		return ramp(y, o.Rows)
	default:
		return maxValue / 2
	}
}

// Write encodes the generated image as a DICOM Part 10 stream
func Write(w io.Writer, o Options) error {
	ds, err := Dataset(o)
	if err != nil {
		return err
	}
	if err := dicom.Write(w, ds); err != nil {
		return fmt.Errorf("sample: writing dataset: %w", err)
	}
	return nil
}

// WriteFile writes the generated image to path
func WriteFile(path string, o Options) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Write(f, o)
}
