package dcm

import (
	"sort"

	"github.com/jpfielding/dcmview/pkg/dcm/tag"
	"github.com/jpfielding/dcmview/pkg/dcm/transfer"
	"github.com/jpfielding/dcmview/pkg/dcm/vr"
)

// Dataset holds the recognized elements of one DICOM dataset. Pixel data is
// referenced by range into the buffer the dataset was read from.
type Dataset struct {
	elements map[tag.Tag]*Element
	syntax   transfer.Syntax
	buf      []byte
}

// Element represents a single recognized DICOM element
type Element struct {
	Tag  tag.Tag
	VR   vr.VR
	Kind Kind

	// Offset and Length locate the value within the dataset buffer. Length is
	// the byte span up to the sequence delimiter when the value had undefined
	// length (encapsulated pixel data).
	Offset    int
	Length    int
	Undefined bool

	str   string
	u16   uint16
	valid bool
}

// Text returns the decoded string value
func (e *Element) Text() (string, bool) {
	if e.Kind != KindString {
		return "", false
	}
	return e.str, true
}

// Uint16 returns the decoded unsigned short value. ok is false when the
// element is present but carries no usable value (zero length, unparsable).
func (e *Element) Uint16() (uint16, bool) {
	if e.Kind != KindUint16 || !e.valid {
		return 0, false
	}
	return e.u16, true
}

// Element returns the element for a recognized attribute
func (ds *Dataset) Element(a Attr) (*Element, bool) {
	return ds.FindElement(a.Tag())
}

// FindElement returns an element by tag
func (ds *Dataset) FindElement(t tag.Tag) (*Element, bool) {
	if ds == nil {
		return nil, false
	}
	elem, ok := ds.elements[t]
	return elem, ok
}

// Text returns the string value of a recognized string attribute
func (ds *Dataset) Text(a Attr) (string, bool) {
	if elem, ok := ds.Element(a); ok {
		return elem.Text()
	}
	return "", false
}

// Uint16 returns the value of a recognized unsigned short attribute
func (ds *Dataset) Uint16(a Attr) (uint16, bool) {
	if elem, ok := ds.Element(a); ok {
		return elem.Uint16()
	}
	return 0, false
}

// Has reports whether the attribute was present in the source buffer
func (ds *Dataset) Has(a Attr) bool {
	_, ok := ds.Element(a)
	return ok
}

// Len returns the number of recognized elements
func (ds *Dataset) Len() int {
	if ds == nil {
		return 0
	}
	return len(ds.elements)
}

// Tags returns the tags of the recognized elements in ascending order
func (ds *Dataset) Tags() []tag.Tag {
	if ds == nil {
		return nil
	}
	keys := make([]tag.Tag, 0, len(ds.elements))
	for k := range ds.elements {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// TransferSyntax returns the syntax the dataset body was read with
func (ds *Dataset) TransferSyntax() transfer.Syntax {
	return ds.syntax
}

// PixelRange returns the pixel data element's location within the dataset buffer
func (ds *Dataset) PixelRange() (*Element, error) {
	elem, ok := ds.Element(PixelData)
	if !ok {
		return nil, &DecodeError{Kind: ErrMissingPixelData, Tag: tag.PixelData, Offset: -1, Length: -1}
	}
	return elem, nil
}

// PixelData returns the native pixel payload as a sub-slice of the dataset
// buffer. The slice shares memory with the buffer and must not be modified.
func (ds *Dataset) PixelData() ([]byte, error) {
	elem, err := ds.PixelRange()
	if err != nil {
		return nil, err
	}
	if elem.Undefined {
		return nil, unsupported(tag.PixelData, "encapsulated pixel data (%s)", ds.syntax.Name())
	}
	return ds.buf[elem.Offset : elem.Offset+elem.Length : elem.Offset+elem.Length], nil
}
