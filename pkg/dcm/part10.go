package dcm

import "bytes"

const (
	preambleLen = 128
	magic       = "DICM"
)

// HasPart10Header checks if the data starts with a 128-byte preamble followed
// by the DICM prefix
func HasPart10Header(data []byte) bool {
	return len(data) >= preambleLen+len(magic) && bytes.Equal(data[preambleLen:preambleLen+len(magic)], []byte(magic))
}

// StripPreamble returns the bytes after the preamble and DICM prefix. Data
// without a Part 10 header is returned unchanged.
func StripPreamble(data []byte) []byte {
	if HasPart10Header(data) {
		return data[preambleLen+len(magic):]
	}
	return data
}

// Parse reads a DICOM Part 10 file held in memory: the preamble is skipped when
// present, then the file meta group and dataset are read as by Read. Element
// offsets are relative to the bytes following the DICM prefix.
func Parse(data []byte, opts ...ReadOption) (*Dataset, error) {
	return Read(StripPreamble(data), opts...)
}
