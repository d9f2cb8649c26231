// Package vr defines DICOM Value Representations
package vr

import "github.com/jpfielding/dcmview/pkg/dcm/tag"

// VR represents a DICOM Value Representation
type VR string

// Standard DICOM Value Representations
const (
	AE VR = "AE" // Application Entity
	AS VR = "AS" // Age String
	AT VR = "AT" // Attribute Tag
	CS VR = "CS" // Code String
	DA VR = "DA" // Date
	DS VR = "DS" // Decimal String
	DT VR = "DT" // DateTime
	FL VR = "FL" // Floating Point Single
	FD VR = "FD" // Floating Point Double
	IS VR = "IS" // Integer String
	LO VR = "LO" // Long String
	LT VR = "LT" // Long Text
	OB VR = "OB" // Other Byte String
	OD VR = "OD" // Other Double String
	OF VR = "OF" // Other Float String
	OL VR = "OL" // Other Long
	OV VR = "OV" // Other 64-bit Very Long
	OW VR = "OW" // Other Word String
	PN VR = "PN" // Person Name
	SH VR = "SH" // Short String
	SL VR = "SL" // Signed Long
	SQ VR = "SQ" // Sequence of Items
	SS VR = "SS" // Signed Short
	ST VR = "ST" // Short Text
	SV VR = "SV" // Signed 64-bit Very Long
	TM VR = "TM" // Time
	UC VR = "UC" // Unlimited Characters
	UI VR = "UI" // Unique Identifier
	UL VR = "UL" // Unsigned Long
	UN VR = "UN" // Unknown
	UR VR = "UR" // Universal Resource Identifier
	US VR = "US" // Unsigned Short
	UT VR = "UT" // Unlimited Text
	UV VR = "UV" // Unsigned 64-bit Very Long
)

// IsLong returns true if the VR is encoded in explicit VR with 2 reserved bytes
// followed by a 4-byte length, instead of a 2-byte length
func (v VR) IsLong() bool {
	switch v {
	case OB, OD, OF, OL, OV, OW, SQ, SV, UC, UN, UR, UT, UV:
		return true
	default:
		return false
	}
}

// IsString returns true if this VR contains string data
func (v VR) IsString() bool {
	switch v {
	case AE, AS, CS, DA, DS, DT, IS, LO, LT, PN, SH, ST, TM, UC, UI, UR, UT:
		return true
	default:
		return false
	}
}

// IsSequence returns true if this is a sequence VR
func (v VR) IsSequence() bool {
	return v == SQ
}

// IsValid returns true if the two bytes read from an explicit VR stream name a known VR
func (v VR) IsValid() bool {
	switch v {
	case AE, AS, AT, CS, DA, DS, DT, FL, FD, IS, LO, LT, OB, OD, OF, OL, OV, OW,
		PN, SH, SL, SQ, SS, ST, SV, TM, UC, UI, UL, UN, UR, US, UT, UV:
		return true
	}
	return false
}

// ValueSize returns the fixed size in bytes for fixed-size VRs, or 0 for variable
func (v VR) ValueSize() int {
	switch v {
	case SS, US:
		return 2
	case AT, FL, SL, UL:
		return 4
	case FD, SV, UV:
		return 8
	default:
		return 0
	}
}

var implicit = map[tag.Tag]VR{
	tag.SpecificCharacterSet:      CS,
	tag.PatientName:               PN,
	tag.PatientID:                 LO,
	tag.PatientBirthDate:          DA,
	tag.PatientSex:                CS,
	tag.StudyDate:                 DA,
	tag.StudyTime:                 TM,
	tag.StudyInstanceUID:          UI,
	tag.Modality:                  CS,
	tag.InstitutionName:           LO,
	tag.SeriesDescription:         LO,
	tag.BodyPartExamined:          CS,
	tag.SeriesInstanceUID:         UI,
	tag.SeriesNumber:              IS,
	tag.InstanceNumber:            IS,
	tag.SOPClassUID:               UI,
	tag.SOPInstanceUID:            UI,
	tag.SamplesPerPixel:           US,
	tag.PhotometricInterpretation: CS,
	tag.PlanarConfiguration:       US,
	tag.NumberOfFrames:            IS,
	tag.Rows:                      US,
	tag.Columns:                   US,
	tag.PixelSpacing:              DS,
	tag.BitsAllocated:             US,
	tag.BitsStored:                US,
	tag.PixelRepresentation:       US,
	tag.PixelData:                 OW,
}

// ForTag returns the VR for a tag when using Implicit VR transfer syntax.
// Tags outside the recognized set are reported as UN.
func ForTag(t tag.Tag) VR {
	if v, ok := implicit[t]; ok {
		return v
	}
	switch {
	case t.IsFileMeta():
		return UL
	case t.Element == 0x0000:
		return UL // group length
	}
	return UN
}
