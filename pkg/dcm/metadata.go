package dcm

import (
	"encoding/json"
	"strconv"
	"strings"
)

// NotAvailable marks a metadata field whose attribute was absent
const NotAvailable = "N/A"

// Number is an optional unsigned short metadata value
type Number struct {
	v  uint16
	ok bool
}

// Value returns the number and whether it was present
func (n Number) Value() (uint16, bool) {
	return n.v, n.ok
}

func (n Number) String() string {
	if !n.ok {
		return NotAvailable
	}
	return strconv.Itoa(int(n.v))
}

func (n Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.String())
}

// Metadata is the fixed set of descriptive fields shown alongside the image.
// Absent string fields hold NotAvailable.
type Metadata struct {
	PatientName               string `json:"patientName"`
	PatientID                 string `json:"patientID"`
	PatientBirthDate          string `json:"patientBirthDate"`
	PatientSex                string `json:"patientSex"`
	StudyDate                 string `json:"studyDate"`
	StudyTime                 string `json:"studyTime"`
	StudyInstanceUID          string `json:"studyInstanceUID"`
	SeriesInstanceUID         string `json:"seriesInstanceUID"`
	SeriesNumber              string `json:"seriesNumber"`
	Modality                  string `json:"modality"`
	InstitutionName           string `json:"institutionName"`
	SeriesDescription         string `json:"seriesDescription"`
	BodyPartExamined          string `json:"bodyPartExamined"`
	SOPInstanceUID            string `json:"sopInstanceUID"`
	SOPClassUID               string `json:"sopClassUID"`
	TransferSyntaxUID         string `json:"transferSyntaxUID"`
	InstanceNumber            string `json:"instanceNumber"`
	PhotometricInterpretation string `json:"photometricInterpretation"`
	SamplesPerPixel           Number `json:"samplesPerPixel"`
	PixelRepresentation       Number `json:"pixelRepresentation"`
	Columns                   Number `json:"columns"`
	Rows                      Number `json:"rows"`
	BitsAllocated             Number `json:"bitsAllocated"`
	BitsStored                Number `json:"bitsStored"`
	PixelSpacing              string `json:"pixelSpacing"`
}

// NewMetadata extracts the metadata record from a dataset. It never fails;
// every attribute missing from ds is reported as NotAvailable.
func NewMetadata(ds *Dataset) Metadata {
	text := func(a Attr) string {
		if s, ok := ds.Text(a); ok {
			return s
		}
		return NotAvailable
	}
	num := func(a Attr) Number {
		v, ok := ds.Uint16(a)
		return Number{v: v, ok: ok}
	}
	return Metadata{
		PatientName:               text(PatientName),
		PatientID:                 text(PatientID),
		PatientBirthDate:          text(PatientBirthDate),
		PatientSex:                text(PatientSex),
		StudyDate:                 text(StudyDate),
		StudyTime:                 text(StudyTime),
		StudyInstanceUID:          text(StudyInstanceUID),
		SeriesInstanceUID:         text(SeriesInstanceUID),
		SeriesNumber:              text(SeriesNumber),
		Modality:                  text(Modality),
		InstitutionName:           text(InstitutionName),
		SeriesDescription:         text(SeriesDescription),
		BodyPartExamined:          text(BodyPartExamined),
		SOPInstanceUID:            text(SOPInstanceUID),
		SOPClassUID:               text(SOPClassUID),
		TransferSyntaxUID:         text(TransferSyntaxUID),
		InstanceNumber:            text(InstanceNumber),
		PhotometricInterpretation: text(PhotometricInterpretation),
		SamplesPerPixel:           num(SamplesPerPixel),
		PixelRepresentation:       num(PixelRepresentation),
		Columns:                   num(Columns),
		Rows:                      num(Rows),
		BitsAllocated:             num(BitsAllocated),
		BitsStored:                num(BitsStored),
		PixelSpacing:              text(PixelSpacing),
	}
}

// Field is a labeled metadata value
type Field struct {
	Label string
	Value string
}

// Fields lists the metadata in display order
func (m Metadata) Fields() []Field {
	return []Field{
		{"Patient Name", m.PatientName},
		{"Patient ID", m.PatientID},
		{"Birth Date", m.PatientBirthDate},
		{"Sex", m.PatientSex},
		{"Study Date", m.StudyDate},
		{"Study Time", m.StudyTime},
		{"Study Instance UID", m.StudyInstanceUID},
		{"Series Instance UID", m.SeriesInstanceUID},
		{"Series Number", m.SeriesNumber},
		{"Modality", m.Modality},
		{"Institution", m.InstitutionName},
		{"Series Description", m.SeriesDescription},
		{"Body Part", m.BodyPartExamined},
		{"SOP Instance UID", m.SOPInstanceUID},
		{"SOP Class UID", m.SOPClassUID},
		{"Transfer Syntax UID", m.TransferSyntaxUID},
		{"Instance Number", m.InstanceNumber},
		{"Photometric Interpretation", m.PhotometricInterpretation},
		{"Samples per Pixel", m.SamplesPerPixel.String()},
		{"Pixel Representation", m.PixelRepresentation.String()},
		{"Columns", m.Columns.String()},
		{"Rows", m.Rows.String()},
		{"Bits Allocated", m.BitsAllocated.String()},
		{"Bits Stored", m.BitsStored.String()},
		{"Pixel Spacing", m.PixelSpacing},
	}
}

// IsMonochrome1 reports whether minimum sample values are meant to display white
func (m Metadata) IsMonochrome1() bool {
	return strings.EqualFold(strings.TrimSpace(m.PhotometricInterpretation), "MONOCHROME1")
}
