// Package dcmtest builds synthetic DICOM buffers for tests
package dcmtest

import (
	"bytes"
	"encoding/binary"

	"github.com/jpfielding/dcmview/pkg/dcm/tag"
	"github.com/jpfielding/dcmview/pkg/dcm/transfer"
	"github.com/jpfielding/dcmview/pkg/dcm/vr"
)

const undefinedLength = 0xFFFFFFFF

// Builder appends encoded elements to a buffer. Group 0002 elements are always
// written Explicit VR Little Endian, everything else in the builder's syntax.
// Elements are written in call order, so tests control the exact layout.
type Builder struct {
	buf      bytes.Buffer
	syntax   transfer.Syntax
	explicit bool
	order    binary.ByteOrder
}

// New returns a builder for a dataset body encoded with syntax
func New(syntax transfer.Syntax) *Builder {
	return &Builder{
		syntax:   syntax,
		explicit: syntax.IsExplicitVR(),
		order:    syntax.ByteOrder(),
	}
}

// Preamble writes the 128 zero bytes and the DICM prefix
func (b *Builder) Preamble() *Builder {
	b.buf.Write(make([]byte, 128))
	b.buf.WriteString("DICM")
	return b
}

// FileMeta writes a minimal file meta group naming the builder's syntax
func (b *Builder) FileMeta() *Builder {
	sopClass := pad("1.2.840.10008.5.1.4.1.1.7", 0) // Secondary Capture
	ts := pad(string(b.syntax), 0)
	groupLen := uint32(8 + len(sopClass) + 8 + len(ts))
	v := make([]byte, 4)
	binary.LittleEndian.PutUint32(v, groupLen)
	b.element(tag.FileMetaInformationGroupLength, vr.UL, v)
	b.element(tag.MediaStorageSOPClassUID, vr.UI, sopClass)
	b.element(tag.TransferSyntaxUID, vr.UI, ts)
	return b
}

// String writes a string element padded to even length
func (b *Builder) String(t tag.Tag, v vr.VR, s string) *Builder {
	padChar := byte(' ')
	if v == vr.UI {
		padChar = 0
	}
	b.element(t, v, pad(s, padChar))
	return b
}

// Uint16 writes a US element
func (b *Builder) Uint16(t tag.Tag, n uint16) *Builder {
	v := make([]byte, 2)
	b.orderFor(t).PutUint16(v, n)
	b.element(t, vr.US, v)
	return b
}

// Raw writes an element with the given value bytes as is
func (b *Builder) Raw(t tag.Tag, v vr.VR, value []byte) *Builder {
	b.element(t, v, value)
	return b
}

// Header writes only an element header declaring length, letting tests
// describe values that run past the end of the buffer
func (b *Builder) Header(t tag.Tag, v vr.VR, length uint32) *Builder {
	b.header(t, v, length)
	return b
}

// Sequence writes an undefined length sequence. Each item is an undefined
// length item holding the encoded elements, closed by an item delimiter.
func (b *Builder) Sequence(t tag.Tag, items ...[]byte) *Builder {
	b.header(t, vr.SQ, undefinedLength)
	for _, item := range items {
		b.header(tag.Item, "", undefinedLength)
		b.buf.Write(item)
		b.header(tag.ItemDelimitationItem, "", 0)
	}
	b.header(tag.SequenceDelimitationItem, "", 0)
	return b
}

// EncapsulatedPixelData writes undefined length pixel data: an empty basic
// offset table followed by one item per fragment
func (b *Builder) EncapsulatedPixelData(fragments ...[]byte) *Builder {
	b.header(tag.PixelData, vr.OB, undefinedLength)
	b.header(tag.Item, "", 0)
	for _, f := range fragments {
		b.header(tag.Item, "", uint32(len(f)))
		b.buf.Write(f)
	}
	b.header(tag.SequenceDelimitationItem, "", 0)
	return b
}

// Len returns the number of bytes written so far
func (b *Builder) Len() int {
	return b.buf.Len()
}

// Bytes returns a copy of the encoded buffer
func (b *Builder) Bytes() []byte {
	return bytes.Clone(b.buf.Bytes())
}

func (b *Builder) element(t tag.Tag, v vr.VR, value []byte) {
	b.header(t, v, uint32(len(value)))
	b.buf.Write(value)
}

func (b *Builder) orderFor(t tag.Tag) binary.ByteOrder {
	if t.IsFileMeta() {
		return binary.LittleEndian
	}
	return b.order
}

func (b *Builder) header(t tag.Tag, v vr.VR, length uint32) {
	order := b.orderFor(t)
	explicit := b.explicit || t.IsFileMeta()

	var hdr [12]byte
	order.PutUint16(hdr[0:], t.Group)
	order.PutUint16(hdr[2:], t.Element)
	switch {
	case t.IsDelimiter() || !explicit:
		order.PutUint32(hdr[4:], length)
		b.buf.Write(hdr[:8])
	case v.IsLong():
		copy(hdr[4:], v)
		// hdr[6:8] reserved
		order.PutUint32(hdr[8:], length)
		b.buf.Write(hdr[:12])
	default:
		copy(hdr[4:], v)
		order.PutUint16(hdr[6:], uint16(length))
		b.buf.Write(hdr[:8])
	}
}

func pad(s string, c byte) []byte {
	out := []byte(s)
	if len(out)%2 != 0 {
		out = append(out, c)
	}
	return out
}
