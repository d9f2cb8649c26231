package dcm

import (
	"fmt"
	"io"
	"os"
)

// ReadFile reads a DICOM file from disk
func ReadFile(path string, opts ...ReadOption) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return Parse(data, opts...)
}

// ReadAll buffers r and parses it. The dataset references the buffered bytes.
func ReadAll(r io.Reader, opts ...ReadOption) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return Parse(data, opts...)
}
