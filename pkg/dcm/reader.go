package dcm

import (
	"encoding/binary"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jpfielding/dcmview/pkg/dcm/charset"
	"github.com/jpfielding/dcmview/pkg/dcm/tag"
	"github.com/jpfielding/dcmview/pkg/dcm/transfer"
	"github.com/jpfielding/dcmview/pkg/dcm/vr"
)

const undefinedLength = 0xFFFFFFFF

// ReadOption configures Read
type ReadOption func(*reader)

// WithTransferSyntax sets the syntax of the dataset body when the buffer carries
// no file meta group. Without it the reader sniffs explicit vs implicit VR
// little endian from the first element.
func WithTransferSyntax(s transfer.Syntax) ReadOption {
	return func(r *reader) {
		r.syntax = s
	}
}

// Read parses a dataset from buf, which must start at the first element (the
// 128-byte preamble and DICM magic already stripped, see Parse). A leading file
// meta group (0002,xxxx) is read as Explicit VR Little Endian and its Transfer
// Syntax UID selects the encoding of the rest of the buffer.
//
// Only recognized attributes (see Attr) are kept. Pixel data is recorded by
// offset and length into buf; buf is never copied or modified, and must not be
// modified while the Dataset is in use.
func Read(buf []byte, opts ...ReadOption) (*Dataset, error) {
	r := &reader{
		buf: buf,
		ds: &Dataset{
			elements: make(map[tag.Tag]*Element),
			buf:      buf,
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.readAll(); err != nil {
		return nil, err
	}
	slog.Debug("Read dataset",
		slog.Int("elements", len(r.ds.elements)),
		slog.String("transferSyntax", string(r.ds.syntax)),
		slog.Int("bytes", len(buf)))
	return r.ds, nil
}

// encoding is the element encoding in effect for a stretch of the buffer
type encoding struct {
	explicit bool
	order    binary.ByteOrder
}

// Group 0002 (File Meta Information) is ALWAYS Explicit VR Little Endian
var metaEncoding = encoding{explicit: true, order: binary.LittleEndian}

var implicitEncoding = encoding{explicit: false, order: binary.LittleEndian}

type header struct {
	tag    tag.Tag
	vr     vr.VR
	length uint32
	start  int // offset of the tag
}

type reader struct {
	buf    []byte
	pos    int
	syntax transfer.Syntax
	enc    encoding
	chars  *charset.Decoder
	ds     *Dataset
}

func (r *reader) readAll() error {
	if len(r.buf) == 0 {
		return malformed(tag.Tag{}, 0, 0, "empty dataset")
	}
	for r.pos+2 <= len(r.buf) && binary.LittleEndian.Uint16(r.buf[r.pos:]) == 0x0002 {
		if err := r.readElement(metaEncoding, 0); err != nil {
			return err
		}
	}
	if err := r.enterBody(); err != nil {
		return err
	}
	for r.pos < len(r.buf) {
		if err := r.readElement(r.enc, 0); err != nil {
			return err
		}
	}
	return nil
}

// enterBody switches from the file meta encoding to the dataset encoding
func (r *reader) enterBody() error {
	if ts, ok := r.ds.Text(TransferSyntaxUID); ok && ts != "" {
		r.syntax = transfer.FromUID(ts)
	}
	if r.syntax == "" {
		r.syntax = r.sniff()
	}
	if r.syntax.IsDeflated() {
		return malformed(tag.TransferSyntaxUID, r.pos, -1, "deflated transfer syntax not supported")
	}
	r.ds.syntax = r.syntax
	r.enc = encoding{explicit: r.syntax.IsExplicitVR(), order: r.syntax.ByteOrder()}
	return nil
}

// sniff guesses the encoding of a dataset without file meta information
func (r *reader) sniff() transfer.Syntax {
	if r.pos+6 <= len(r.buf) && vr.VR(r.buf[r.pos+4:r.pos+6]).IsValid() {
		return transfer.ExplicitVRLittleEndian
	}
	return transfer.ImplicitVRLittleEndian
}

func (r *reader) remaining() int {
	return len(r.buf) - r.pos
}

func (r *reader) fits(length uint32) bool {
	return uint64(length) <= uint64(r.remaining())
}

func (r *reader) readHeader(enc encoding) (header, error) {
	h := header{start: r.pos}
	if r.remaining() < 8 {
		return h, malformed(tag.Tag{}, r.pos, r.remaining(), "truncated element header")
	}
	h.tag = tag.New(enc.order.Uint16(r.buf[r.pos:]), enc.order.Uint16(r.buf[r.pos+2:]))
	r.pos += 4

	switch {
	case h.tag.IsDelimiter():
		// items and delimiters never carry a VR
		h.length = enc.order.Uint32(r.buf[r.pos:])
		r.pos += 4
	case enc.explicit:
		h.vr = vr.VR(r.buf[r.pos : r.pos+2])
		if !h.vr.IsValid() {
			return h, malformed(h.tag, h.start, -1, "invalid VR %q", string(h.vr))
		}
		r.pos += 2
		if h.vr.IsLong() {
			// 2 reserved bytes then a 4-byte length
			if r.remaining() < 6 {
				return h, malformed(h.tag, h.start, -1, "truncated element header")
			}
			h.length = enc.order.Uint32(r.buf[r.pos+2:])
			r.pos += 6
		} else {
			h.length = uint32(enc.order.Uint16(r.buf[r.pos:]))
			r.pos += 2
		}
	default:
		h.vr = vr.ForTag(h.tag)
		h.length = enc.order.Uint32(r.buf[r.pos:])
		r.pos += 4
	}
	return h, nil
}

func (r *reader) peekTag(enc encoding) (tag.Tag, bool) {
	if r.remaining() < 4 {
		return tag.Tag{}, false
	}
	return tag.New(enc.order.Uint16(r.buf[r.pos:]), enc.order.Uint16(r.buf[r.pos+2:])), true
}

// readElement reads one element. Elements nested in sequences (depth > 0) are
// walked for structure only.
func (r *reader) readElement(enc encoding, depth int) error {
	h, err := r.readHeader(enc)
	if err != nil {
		return err
	}

	if h.tag.IsDelimiter() {
		if depth == 0 && h.tag != tag.Item {
			slog.Debug("Skipping stray delimiter", slog.String("tag", h.tag.String()), slog.Int("offset", h.start))
			return nil
		}
		return malformed(h.tag, h.start, -1, "unexpected delimiter")
	}

	if h.length == undefinedLength {
		switch {
		case h.tag == tag.PixelData:
			offset := r.pos
			span, err := r.walkFragments(h, enc)
			if err != nil || depth > 0 {
				return err
			}
			return r.store(PixelData, h, offset, span, true, nil, enc)
		case h.vr == vr.UN:
			// undefined length UN is always encoded as implicit VR little endian
			return r.skipSequence(h, implicitEncoding, depth+1)
		case h.vr == vr.SQ:
			return r.skipSequence(h, enc, depth+1)
		default:
			return malformed(h.tag, h.start, -1, "undefined length on VR %s", h.vr)
		}
	}

	if !r.fits(h.length) {
		return malformed(h.tag, r.pos, int(h.length), "value exceeds buffer (%d bytes remaining)", r.remaining())
	}
	offset := r.pos
	value := r.buf[offset : offset+int(h.length)]
	r.pos += int(h.length)

	if depth > 0 {
		return nil
	}
	a, ok := AttrForTag(h.tag)
	if !ok {
		return nil
	}
	return r.store(a, h, offset, len(value), false, value, enc)
}

// skipSequence walks the items of an undefined length sequence up to and
// including its Sequence Delimitation Item (FFFE,E0DD)
func (r *reader) skipSequence(seq header, enc encoding, depth int) error {
	for {
		if r.remaining() == 0 {
			return malformed(seq.tag, seq.start, -1, "sequence not terminated")
		}
		ih, err := r.readHeader(enc)
		if err != nil {
			return err
		}
		switch ih.tag {
		case tag.SequenceDelimitationItem:
			return nil
		case tag.Item:
			if ih.length == undefinedLength {
				if err := r.skipItem(seq, enc, depth); err != nil {
					return err
				}
				continue
			}
			if !r.fits(ih.length) {
				return malformed(seq.tag, r.pos, int(ih.length), "item exceeds buffer")
			}
			r.pos += int(ih.length)
		default:
			return malformed(ih.tag, ih.start, -1, "expected item in sequence %s", seq.tag)
		}
	}
}

// skipItem walks the elements of an undefined length item up to and including
// its Item Delimitation Item (FFFE,E00D)
func (r *reader) skipItem(seq header, enc encoding, depth int) error {
	for {
		t, ok := r.peekTag(enc)
		if !ok {
			return malformed(seq.tag, seq.start, -1, "item not terminated")
		}
		if t == tag.ItemDelimitationItem {
			_, err := r.readHeader(enc)
			return err
		}
		if err := r.readElement(enc, depth); err != nil {
			return err
		}
	}
}

// walkFragments walks encapsulated pixel data items up to the Sequence
// Delimitation Item and returns the byte span of the items
func (r *reader) walkFragments(h header, enc encoding) (int, error) {
	start := r.pos
	for {
		if r.remaining() == 0 {
			return 0, malformed(h.tag, start, -1, "encapsulated pixel data not terminated")
		}
		ih, err := r.readHeader(enc)
		if err != nil {
			return 0, err
		}
		switch ih.tag {
		case tag.SequenceDelimitationItem:
			return ih.start - start, nil
		case tag.Item:
			if ih.length == undefinedLength || !r.fits(ih.length) {
				return 0, malformed(h.tag, ih.start, -1, "invalid fragment length")
			}
			r.pos += int(ih.length)
		default:
			return 0, malformed(ih.tag, ih.start, -1, "expected fragment item in pixel data")
		}
	}
}

func (r *reader) store(a Attr, h header, offset, length int, undefined bool, value []byte, enc encoding) error {
	if _, dup := r.ds.elements[h.tag]; dup {
		slog.Debug("Ignoring duplicate element", slog.String("tag", h.tag.String()), slog.Int("offset", h.start))
		return nil
	}
	elem := &Element{
		Tag:       h.tag,
		VR:        h.vr,
		Kind:      a.Kind(),
		Offset:    offset,
		Length:    length,
		Undefined: undefined,
	}
	switch elem.Kind {
	case KindString:
		elem.str = r.decodeString(h.vr, value)
		elem.valid = true
		if a == SpecificCharacterSet {
			chars, err := charset.NewDecoder(elem.str)
			if err != nil {
				slog.Debug("Unknown character set, using default repertoire", slog.String("value", elem.str))
			}
			r.chars = chars
		}
	case KindUint16:
		elem.u16, elem.valid = decodeUint16(h.vr, value, enc.order)
	}
	r.ds.elements[h.tag] = elem
	return nil
}

func (r *reader) decodeString(v vr.VR, value []byte) string {
	var s string
	switch v {
	case vr.PN, vr.LO, vr.SH, vr.ST, vr.LT, vr.UT, vr.UC:
		s = r.chars.Decode(value)
	default:
		s = string(value)
	}
	// strip NUL/space padding
	s = strings.TrimRight(s, " \x00")
	return strings.TrimLeft(s, " ")
}

func decodeUint16(v vr.VR, value []byte, order binary.ByteOrder) (uint16, bool) {
	if v.IsString() {
		n, err := strconv.ParseUint(strings.TrimSpace(strings.TrimRight(string(value), "\x00")), 10, 16)
		if err != nil {
			return 0, false
		}
		return uint16(n), true
	}
	if len(value) < 2 {
		return 0, false
	}
	return order.Uint16(value), true
}
