package dcm

import (
	"github.com/jpfielding/dcmview/pkg/dcm/tag"
)

// Attr enumerates the attributes the reader resolves. Any tag without an Attr
// is skipped while reading.
type Attr int

const (
	PatientName Attr = iota
	PatientID
	PatientBirthDate
	PatientSex
	StudyDate
	StudyTime
	StudyInstanceUID
	Modality
	InstitutionName
	SeriesDescription
	BodyPartExamined
	SeriesInstanceUID
	SeriesNumber
	InstanceNumber
	SOPClassUID
	SOPInstanceUID
	TransferSyntaxUID
	SpecificCharacterSet
	SamplesPerPixel
	PhotometricInterpretation
	PlanarConfiguration
	NumberOfFrames
	Rows
	Columns
	PixelSpacing
	BitsAllocated
	BitsStored
	PixelRepresentation
	PixelData

	numAttrs
)

// Kind is the value type an attribute decodes to
type Kind uint8

const (
	KindString Kind = iota
	KindUint16
	KindBytes
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindUint16:
		return "uint16"
	case KindBytes:
		return "bytes"
	}
	return "unknown"
}

type attrInfo struct {
	tag  tag.Tag
	kind Kind
}

var attrInfos = [numAttrs]attrInfo{
	PatientName:               {tag.PatientName, KindString},
	PatientID:                 {tag.PatientID, KindString},
	PatientBirthDate:          {tag.PatientBirthDate, KindString},
	PatientSex:                {tag.PatientSex, KindString},
	StudyDate:                 {tag.StudyDate, KindString},
	StudyTime:                 {tag.StudyTime, KindString},
	StudyInstanceUID:          {tag.StudyInstanceUID, KindString},
	Modality:                  {tag.Modality, KindString},
	InstitutionName:           {tag.InstitutionName, KindString},
	SeriesDescription:         {tag.SeriesDescription, KindString},
	BodyPartExamined:          {tag.BodyPartExamined, KindString},
	SeriesInstanceUID:         {tag.SeriesInstanceUID, KindString},
	SeriesNumber:              {tag.SeriesNumber, KindString},
	InstanceNumber:            {tag.InstanceNumber, KindString},
	SOPClassUID:               {tag.SOPClassUID, KindString},
	SOPInstanceUID:            {tag.SOPInstanceUID, KindString},
	TransferSyntaxUID:         {tag.TransferSyntaxUID, KindString},
	SpecificCharacterSet:      {tag.SpecificCharacterSet, KindString},
	SamplesPerPixel:           {tag.SamplesPerPixel, KindUint16},
	PhotometricInterpretation: {tag.PhotometricInterpretation, KindString},
	PlanarConfiguration:       {tag.PlanarConfiguration, KindUint16},
	NumberOfFrames:            {tag.NumberOfFrames, KindString},
	Rows:                      {tag.Rows, KindUint16},
	Columns:                   {tag.Columns, KindUint16},
	PixelSpacing:              {tag.PixelSpacing, KindString},
	BitsAllocated:             {tag.BitsAllocated, KindUint16},
	BitsStored:                {tag.BitsStored, KindUint16},
	PixelRepresentation:       {tag.PixelRepresentation, KindUint16},
	PixelData:                 {tag.PixelData, KindBytes},
}

var attrByTag = func() map[tag.Tag]Attr {
	m := make(map[tag.Tag]Attr, numAttrs)
	for a := Attr(0); a < numAttrs; a++ {
		m[attrInfos[a].tag] = a
	}
	return m
}()

// AttrForTag returns the attribute for a tag; ok is false for tags the reader ignores.
func AttrForTag(t tag.Tag) (Attr, bool) {
	a, ok := attrByTag[t]
	return a, ok
}

// Attrs returns every recognized attribute in declaration order
func Attrs() []Attr {
	out := make([]Attr, numAttrs)
	for i := range out {
		out[i] = Attr(i)
	}
	return out
}

// Tag returns the DICOM tag of the attribute
func (a Attr) Tag() tag.Tag {
	if !a.valid() {
		return tag.Tag{}
	}
	return attrInfos[a].tag
}

// Kind returns the value type the attribute decodes to
func (a Attr) Kind() Kind {
	if !a.valid() {
		return KindBytes
	}
	return attrInfos[a].kind
}

func (a Attr) String() string {
	if !a.valid() {
		return "Attr(?)"
	}
	return attrInfos[a].tag.LookupName()
}

func (a Attr) valid() bool {
	return a >= 0 && a < numAttrs
}
