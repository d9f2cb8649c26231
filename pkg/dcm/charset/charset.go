// Package charset decodes DICOM string values according to Specific Character Set (0008,0005).
package charset

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
)

// byTerm maps specific character set defined terms to encodings.
// http://dicom.nema.org/medical/dicom/current/output/chtml/part02/sect_D.6.2.html
var byTerm = map[string]encoding.Encoding{
	"ISO_IR 100": charmap.ISO8859_1,
	"ISO_IR 101": charmap.ISO8859_2,
	"ISO_IR 109": charmap.ISO8859_3,
	"ISO_IR 110": charmap.ISO8859_4,
	"ISO_IR 144": charmap.ISO8859_5,
	"ISO_IR 127": charmap.ISO8859_6,
	"ISO_IR 126": charmap.ISO8859_7,
	"ISO_IR 138": charmap.ISO8859_8,
	"ISO_IR 148": charmap.ISO8859_9,
	"ISO_IR 13":  japanese.ShiftJIS,
	"ISO_IR 166": charmap.Windows874,
	"ISO_IR 192": unicode.UTF8,
	"GB18030":    simplifiedchinese.GB18030,
	"GBK":        simplifiedchinese.GBK,
	// ISO 2022 code extensions are approximated by their base repertoire
	"ISO 2022 IR 100": charmap.ISO8859_1,
	"ISO 2022 IR 101": charmap.ISO8859_2,
	"ISO 2022 IR 109": charmap.ISO8859_3,
	"ISO 2022 IR 110": charmap.ISO8859_4,
	"ISO 2022 IR 144": charmap.ISO8859_5,
	"ISO 2022 IR 127": charmap.ISO8859_6,
	"ISO 2022 IR 126": charmap.ISO8859_7,
	"ISO 2022 IR 138": charmap.ISO8859_8,
	"ISO 2022 IR 148": charmap.ISO8859_9,
	"ISO 2022 IR 13":  japanese.ShiftJIS,
	"ISO 2022 IR 166": charmap.Windows874,
	"ISO 2022 IR 87":  japanese.ISO2022JP,
	"ISO 2022 IR 159": japanese.ISO2022JP,
	"ISO 2022 IR 149": korean.EUCKR,
}

// Lookup returns the encoding for a Specific Character Set value. Multi-valued
// values use their first term that extends the default repertoire, so
// `ISO 2022 IR 6\ISO 2022 IR 87` resolves to ISO-2022-JP. An empty value is the
// default repertoire.
func Lookup(value string) (encoding.Encoding, error) {
	term := ""
	for _, t := range strings.Split(value, `\`) {
		if t = strings.TrimSpace(t); t != "" && !isDefaultRepertoire(t) {
			term = t
			break
		}
	}
	if term == "" {
		return encoding.Nop, nil
	}
	enc, ok := byTerm[term]
	if !ok {
		return nil, fmt.Errorf("specific character set defined term not found: %v", term)
	}
	return enc, nil
}

func isDefaultRepertoire(term string) bool {
	return term == "ISO_IR 6" || term == "ISO 2022 IR 6"
}

// Decoder converts raw string bytes to UTF-8
type Decoder struct {
	enc encoding.Encoding
}

// NewDecoder returns a Decoder for a Specific Character Set value, falling back
// to the default repertoire when the term is unknown.
func NewDecoder(value string) (*Decoder, error) {
	enc, err := Lookup(value)
	if err != nil {
		return &Decoder{enc: encoding.Nop}, err
	}
	return &Decoder{enc: enc}, nil
}

// Decode converts raw bytes to a UTF-8 string. Bytes the encoding rejects are
// passed through unchanged.
func (d *Decoder) Decode(raw []byte) string {
	if d == nil || d.enc == encoding.Nop {
		return string(raw)
	}
	out, err := d.enc.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(out)
}
