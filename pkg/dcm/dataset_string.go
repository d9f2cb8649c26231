package dcm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Value returns the decoded value for display: a string, a uint16, or a short
// description of a byte range
func (e *Element) Value() any {
	switch e.Kind {
	case KindString:
		return e.str
	case KindUint16:
		if !e.valid {
			return NotAvailable
		}
		return e.u16
	default:
		if e.Undefined {
			return fmt.Sprintf("Encapsulated Data (%d bytes at %d)", e.Length, e.Offset)
		}
		return fmt.Sprintf("Binary Data (%d bytes at %d)", e.Length, e.Offset)
	}
}

// String returns a string representation of the Element
func (e *Element) String() string {
	// Format: [Tag] [VR] (Name) ... : Value
	tagName := e.Tag.LookupName()
	if tagName != "" {
		tagName = " " + tagName
	}
	return fmt.Sprintf("[%s] %s%s: %v", e.Tag, e.VR, tagName, e.Value())
}

// MarshalJSON returns a JSON representation of the Element
func (e *Element) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Tag    string `json:"tag"`
		Name   string `json:"name,omitempty"`
		VR     string `json:"vr"`
		Offset int    `json:"offset"`
		Length int    `json:"length"`
		Value  any    `json:"value"`
	}{
		Tag:    e.Tag.String(),
		Name:   e.Tag.LookupName(),
		VR:     string(e.VR),
		Offset: e.Offset,
		Length: e.Length,
		Value:  e.Value(),
	})
}

// String returns a string representation of the Dataset
func (ds *Dataset) String() string {
	if ds == nil {
		return "<nil>"
	}
	var b strings.Builder
	for _, k := range ds.Tags() {
		b.WriteString(ds.elements[k].String())
		b.WriteString("\n")
	}
	return b.String()
}

// MarshalJSON returns a JSON representation of the Dataset
// It returns a sorted array of Elements instead of a Map
func (ds *Dataset) MarshalJSON() ([]byte, error) {
	elements := make([]*Element, 0, ds.Len())
	for _, k := range ds.Tags() {
		elements = append(elements, ds.elements[k])
	}
	return json.Marshal(elements)
}
