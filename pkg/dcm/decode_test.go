package dcm_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpfielding/dcmview/pkg/dcm"
	"github.com/jpfielding/dcmview/pkg/dcm/dcmtest"
	"github.com/jpfielding/dcmview/pkg/dcm/tag"
	"github.com/jpfielding/dcmview/pkg/dcm/transfer"
	"github.com/jpfielding/dcmview/pkg/dcm/vr"
)

func TestDecode_Gray8(t *testing.T) {
	buf := ctImage(dcmtest.New(transfer.ExplicitVRLittleEndian).Preamble().FileMeta(), []byte{10, 20, 30, 40}).Bytes()

	res, err := dcm.Decode(buf)
	require.NoError(t, err)
	require.NoError(t, res.PixelErr)
	assert.Equal(t, []byte{
		10, 10, 10, 255,
		20, 20, 20, 255,
		30, 30, 30, 255,
		40, 40, 40, 255,
	}, res.Bitmap.Pix)
	assert.Equal(t, "DOE^JANE", res.Metadata.PatientName)
	assert.Equal(t, "2", res.Metadata.Columns.String())
}

func TestDecode_RGB(t *testing.T) {
	buf := dcmtest.New(transfer.ExplicitVRLittleEndian).
		Uint16(tag.SamplesPerPixel, 3).
		String(tag.PhotometricInterpretation, vr.CS, "RGB").
		Uint16(tag.PlanarConfiguration, 0).
		Uint16(tag.Rows, 1).
		Uint16(tag.Columns, 2).
		Uint16(tag.BitsAllocated, 8).
		Raw(tag.PixelData, vr.OB, []byte{1, 2, 3, 4, 5, 6}).
		Bytes()

	res, err := dcm.Decode(buf)
	require.NoError(t, err)
	require.NoError(t, res.PixelErr)
	assert.Equal(t, []byte{1, 2, 3, 255, 4, 5, 6, 255}, res.Bitmap.Pix)
}

func TestDecode_PixelFailureKeepsMetadata(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want error
	}{
		{
			name: "truncated",
			buf: dcmtest.New(transfer.ExplicitVRLittleEndian).
				String(tag.PatientName, vr.PN, "TRUNC").
				Uint16(tag.Rows, 4).
				Uint16(tag.Columns, 4).
				Uint16(tag.BitsAllocated, 16).
				Raw(tag.PixelData, vr.OW, make([]byte, 16)).
				Bytes(),
			want: dcm.ErrTruncatedPixelData,
		},
		{
			name: "two samples",
			buf: dcmtest.New(transfer.ExplicitVRLittleEndian).
				String(tag.PatientName, vr.PN, "TWO").
				Uint16(tag.SamplesPerPixel, 2).
				Uint16(tag.Rows, 2).
				Uint16(tag.Columns, 2).
				Uint16(tag.BitsAllocated, 8).
				Raw(tag.PixelData, vr.OB, make([]byte, 8)).
				Bytes(),
			want: dcm.ErrUnsupportedEncoding,
		},
		{
			name: "missing pixel data",
			buf: dcmtest.New(transfer.ExplicitVRLittleEndian).
				String(tag.PatientName, vr.PN, "NONE").
				Uint16(tag.Rows, 2).
				Uint16(tag.Columns, 2).
				Uint16(tag.BitsAllocated, 8).
				Bytes(),
			want: dcm.ErrMissingPixelData,
		},
		{
			name: "missing pixel data, no geometry",
			buf: dcmtest.New(transfer.ExplicitVRLittleEndian).
				String(tag.PatientName, vr.PN, "REPORT^ONLY").
				String(tag.Modality, vr.CS, "SR").
				Bytes(),
			want: dcm.ErrMissingPixelData,
		},
		{
			name: "missing columns",
			buf: dcmtest.New(transfer.ExplicitVRLittleEndian).
				String(tag.PatientName, vr.PN, "NOCOLS").
				Uint16(tag.Rows, 2).
				Uint16(tag.BitsAllocated, 8).
				Raw(tag.PixelData, vr.OB, make([]byte, 4)).
				Bytes(),
			want: dcm.ErrUnsupportedEncoding,
		},
		{
			name: "zero rows",
			buf: dcmtest.New(transfer.ExplicitVRLittleEndian).
				String(tag.PatientName, vr.PN, "ZERO").
				Uint16(tag.Rows, 0).
				Uint16(tag.Columns, 2).
				Uint16(tag.BitsAllocated, 8).
				Raw(tag.PixelData, vr.OB, make([]byte, 4)).
				Bytes(),
			want: dcm.ErrUnsupportedEncoding,
		},
		{
			name: "multi-frame",
			buf: dcmtest.New(transfer.ExplicitVRLittleEndian).
				String(tag.PatientName, vr.PN, "FRAMES").
				String(tag.NumberOfFrames, vr.IS, "2").
				Uint16(tag.Rows, 1).
				Uint16(tag.Columns, 2).
				Uint16(tag.BitsAllocated, 8).
				Raw(tag.PixelData, vr.OB, make([]byte, 4)).
				Bytes(),
			want: dcm.ErrUnsupportedEncoding,
		},
		{
			name: "planar rgb",
			buf: dcmtest.New(transfer.ExplicitVRLittleEndian).
				String(tag.PatientName, vr.PN, "PLANAR").
				Uint16(tag.SamplesPerPixel, 3).
				Uint16(tag.PlanarConfiguration, 1).
				Uint16(tag.Rows, 1).
				Uint16(tag.Columns, 2).
				Uint16(tag.BitsAllocated, 8).
				Raw(tag.PixelData, vr.OB, make([]byte, 6)).
				Bytes(),
			want: dcm.ErrUnsupportedEncoding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := dcm.Decode(tt.buf)
			require.NoError(t, err)
			assert.ErrorIs(t, res.PixelErr, tt.want)
			assert.Nil(t, res.Bitmap)
			assert.NotEqual(t, dcm.NotAvailable, res.Metadata.PatientName)
		})
	}
}

func TestDecode_SingleFrameNumberOfFrames(t *testing.T) {
	buf := dcmtest.New(transfer.ExplicitVRLittleEndian).
		String(tag.NumberOfFrames, vr.IS, "1").
		Uint16(tag.Rows, 1).
		Uint16(tag.Columns, 2).
		Uint16(tag.BitsAllocated, 8).
		Raw(tag.PixelData, vr.OB, []byte{5, 6}).
		Bytes()

	res, err := dcm.Decode(buf)
	require.NoError(t, err)
	assert.NoError(t, res.PixelErr)
}

func TestDecode_MalformedDataset(t *testing.T) {
	res, err := dcm.Decode([]byte{0x08, 0x00, 0x60})
	assert.ErrorIs(t, err, dcm.ErrMalformedDataset)
	assert.Nil(t, res)
}

func TestMetadata_AbsentFields(t *testing.T) {
	buf := dcmtest.New(transfer.ExplicitVRLittleEndian).
		String(tag.PatientID, vr.LO, "PID-9").
		String(tag.Modality, vr.CS, "DX").
		Uint16(tag.Rows, 64).
		Bytes()

	ds, err := dcm.Read(buf)
	require.NoError(t, err)
	m := dcm.NewMetadata(ds)

	assert.Equal(t, dcm.NotAvailable, m.PatientName)
	assert.Equal(t, "PID-9", m.PatientID)
	assert.Equal(t, "DX", m.Modality)
	assert.Equal(t, dcm.NotAvailable, m.InstitutionName)
	assert.Equal(t, dcm.NotAvailable, m.Columns.String())
	assert.Equal(t, "64", m.Rows.String())

	rows, ok := m.Rows.Value()
	assert.True(t, ok)
	assert.Equal(t, uint16(64), rows)

	js, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Contains(t, string(js), `"patientName":"N/A"`)
	assert.Contains(t, string(js), `"patientID":"PID-9"`)
	assert.Contains(t, string(js), `"rows":"64"`)
	assert.Contains(t, string(js), `"columns":"N/A"`)
}

func TestMetadata_Fields(t *testing.T) {
	m := dcm.NewMetadata(nil)
	fields := m.Fields()
	require.Len(t, fields, 25)
	for _, f := range fields {
		assert.Equal(t, dcm.NotAvailable, f.Value, f.Label)
	}
}

func TestMetadata_IsMonochrome1(t *testing.T) {
	assert.True(t, dcm.Metadata{PhotometricInterpretation: "MONOCHROME1"}.IsMonochrome1())
	assert.False(t, dcm.Metadata{PhotometricInterpretation: "MONOCHROME2"}.IsMonochrome1())
	assert.False(t, dcm.Metadata{PhotometricInterpretation: dcm.NotAvailable}.IsMonochrome1())
}

func TestReadFile(t *testing.T) {
	buf := ctImage(dcmtest.New(transfer.ExplicitVRLittleEndian).Preamble().FileMeta(), []byte{1, 2, 3, 4}).Bytes()
	path := filepath.Join(t.TempDir(), "image.dcm")
	require.NoError(t, os.WriteFile(path, buf, 0o644))

	ds, err := dcm.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, ds.Has(dcm.PixelData))

	_, err = dcm.ReadFile(filepath.Join(t.TempDir(), "missing.dcm"))
	assert.Error(t, err)
}

func TestPart10Header(t *testing.T) {
	buf := dcmtest.New(transfer.ExplicitVRLittleEndian).Preamble().FileMeta().Bytes()
	assert.True(t, dcm.HasPart10Header(buf))
	assert.Equal(t, buf[132:], dcm.StripPreamble(buf))

	raw := []byte{1, 2, 3}
	assert.False(t, dcm.HasPart10Header(raw))
	assert.Equal(t, raw, dcm.StripPreamble(raw))
}
