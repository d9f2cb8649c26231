package dcm

import (
	"errors"
	"fmt"

	"github.com/jpfielding/dcmview/pkg/dcm/tag"
)

// Decode failure kinds. Every error returned by this package matches exactly
// one of these with errors.Is.
var (
	ErrMalformedDataset    = errors.New("dcm: malformed dataset")
	ErrMissingPixelData    = errors.New("dcm: missing pixel data")
	ErrUnsupportedEncoding = errors.New("dcm: unsupported pixel encoding")
	ErrTruncatedPixelData  = errors.New("dcm: truncated pixel data")
)

// DecodeError describes where a decode failed: the element being read and the
// byte range involved. Offset and Length are -1 when not applicable.
type DecodeError struct {
	Kind   error
	Tag    tag.Tag
	Offset int
	Length int
	Msg    string
}

func (e *DecodeError) Error() string {
	msg := e.Kind.Error()
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Tag != (tag.Tag{}) {
		msg += fmt.Sprintf(" (tag %s)", e.Tag)
	}
	if e.Offset >= 0 {
		msg += fmt.Sprintf(" at offset %d", e.Offset)
		if e.Length >= 0 {
			msg += fmt.Sprintf(" length %d", e.Length)
		}
	}
	return msg
}

// Unwrap exposes the failure kind to errors.Is
func (e *DecodeError) Unwrap() error {
	return e.Kind
}

func malformed(t tag.Tag, offset, length int, format string, args ...any) *DecodeError {
	return &DecodeError{Kind: ErrMalformedDataset, Tag: t, Offset: offset, Length: length, Msg: fmt.Sprintf(format, args...)}
}

func unsupported(t tag.Tag, format string, args ...any) *DecodeError {
	return &DecodeError{Kind: ErrUnsupportedEncoding, Tag: t, Offset: -1, Length: -1, Msg: fmt.Sprintf(format, args...)}
}
