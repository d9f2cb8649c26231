// Package tag defines the DICOM tags dcmview reads
package tag

// Tag represents a DICOM tag with Group and Element
type Tag struct {
	Group   uint16
	Element uint16
}

// New creates a new Tag
func New(group, element uint16) Tag {
	return Tag{Group: group, Element: element}
}

// IsPrivate returns true if this is a private tag (odd group number)
func (t Tag) IsPrivate() bool {
	return t.Group%2 == 1
}

// IsFileMeta returns true if this tag is in the File Meta Information group
func (t Tag) IsFileMeta() bool {
	return t.Group == 0x0002
}

// IsDelimiter returns true for item and sequence delimitation tags (group FFFE)
func (t Tag) IsDelimiter() bool {
	return t.Group == 0xFFFE
}

// Less orders tags by group then element
func (t Tag) Less(other Tag) bool {
	if t.Group != other.Group {
		return t.Group < other.Group
	}
	return t.Element < other.Element
}

// File Meta Information (Group 0002)
var (
	FileMetaInformationGroupLength = Tag{0x0002, 0x0000}
	MediaStorageSOPClassUID        = Tag{0x0002, 0x0002}
	TransferSyntaxUID              = Tag{0x0002, 0x0010}
	SpecificCharacterSet           = Tag{0x0008, 0x0005}
)

// Patient Module
var (
	PatientName      = Tag{0x0010, 0x0010}
	PatientID        = Tag{0x0010, 0x0020}
	PatientBirthDate = Tag{0x0010, 0x0030}
	PatientSex       = Tag{0x0010, 0x0040}
)

// General Study Module
var (
	StudyDate        = Tag{0x0008, 0x0020}
	StudyTime        = Tag{0x0008, 0x0030}
	StudyInstanceUID = Tag{0x0020, 0x000D}
)

// General Series / Equipment Module
var (
	Modality          = Tag{0x0008, 0x0060}
	InstitutionName   = Tag{0x0008, 0x0080}
	SeriesDescription = Tag{0x0008, 0x103E}
	BodyPartExamined  = Tag{0x0018, 0x0015}
	SeriesInstanceUID = Tag{0x0020, 0x000E}
	SeriesNumber      = Tag{0x0020, 0x0011}
	InstanceNumber    = Tag{0x0020, 0x0013}
)

// SOP Common Module
var (
	SOPClassUID    = Tag{0x0008, 0x0016}
	SOPInstanceUID = Tag{0x0008, 0x0018}
)

// Image Pixel Module (Group 0028)
var (
	SamplesPerPixel           = Tag{0x0028, 0x0002}
	PhotometricInterpretation = Tag{0x0028, 0x0004}
	PlanarConfiguration       = Tag{0x0028, 0x0006} // 0=color-by-pixel, 1=color-by-plane
	NumberOfFrames            = Tag{0x0028, 0x0008}
	Rows                      = Tag{0x0028, 0x0010}
	Columns                   = Tag{0x0028, 0x0011}
	PixelSpacing              = Tag{0x0028, 0x0030}
	BitsAllocated             = Tag{0x0028, 0x0100}
	BitsStored                = Tag{0x0028, 0x0101}
	PixelRepresentation       = Tag{0x0028, 0x0103}
	PixelData                 = Tag{0x7FE0, 0x0010}
)

// Sequence delimiters
var (
	Item                     = Tag{0xFFFE, 0xE000}
	ItemDelimitationItem     = Tag{0xFFFE, 0xE00D}
	SequenceDelimitationItem = Tag{0xFFFE, 0xE0DD}
)

var names = map[Tag]string{
	FileMetaInformationGroupLength: "FileMetaInformationGroupLength",
	MediaStorageSOPClassUID:        "MediaStorageSOPClassUID",
	TransferSyntaxUID:              "TransferSyntaxUID",
	SpecificCharacterSet:           "SpecificCharacterSet",
	PatientName:                    "PatientName",
	PatientID:                      "PatientID",
	PatientBirthDate:               "PatientBirthDate",
	PatientSex:                     "PatientSex",
	StudyDate:                      "StudyDate",
	StudyTime:                      "StudyTime",
	StudyInstanceUID:               "StudyInstanceUID",
	Modality:                       "Modality",
	InstitutionName:                "InstitutionName",
	SeriesDescription:              "SeriesDescription",
	BodyPartExamined:               "BodyPartExamined",
	SeriesInstanceUID:              "SeriesInstanceUID",
	SeriesNumber:                   "SeriesNumber",
	InstanceNumber:                 "InstanceNumber",
	SOPClassUID:                    "SOPClassUID",
	SOPInstanceUID:                 "SOPInstanceUID",
	SamplesPerPixel:                "SamplesPerPixel",
	PhotometricInterpretation:      "PhotometricInterpretation",
	PlanarConfiguration:            "PlanarConfiguration",
	NumberOfFrames:                 "NumberOfFrames",
	Rows:                           "Rows",
	Columns:                        "Columns",
	PixelSpacing:                   "PixelSpacing",
	BitsAllocated:                  "BitsAllocated",
	BitsStored:                     "BitsStored",
	PixelRepresentation:            "PixelRepresentation",
	PixelData:                      "PixelData",
	Item:                           "Item",
	ItemDelimitationItem:           "ItemDelimitationItem",
	SequenceDelimitationItem:       "SequenceDelimitationItem",
}

// LookupName returns a human-readable name for the tags in this package
func (t Tag) LookupName() string {
	return names[t]
}
