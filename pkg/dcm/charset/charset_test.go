package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
)

func TestDecoder_Latin1(t *testing.T) {
	d, err := NewDecoder("ISO_IR 100")
	require.NoError(t, err)
	assert.Equal(t, "Müller^Zoë", d.Decode([]byte{'M', 0xFC, 'l', 'l', 'e', 'r', '^', 'Z', 'o', 0xEB}))
}

func TestDecoder_DefaultRepertoire(t *testing.T) {
	d, err := NewDecoder("")
	require.NoError(t, err)
	assert.Equal(t, "DOE^JOHN", d.Decode([]byte("DOE^JOHN")))

	var nilDecoder *Decoder
	assert.Equal(t, "abc", nilDecoder.Decode([]byte("abc")))
}

func TestDecoder_UTF8(t *testing.T) {
	d, err := NewDecoder("ISO_IR 192")
	require.NoError(t, err)
	assert.Equal(t, "Éric", d.Decode([]byte("Éric")))
}

func TestLookup_MultiValued(t *testing.T) {
	enc, err := Lookup(`\ISO 2022 IR 100`)
	require.NoError(t, err)
	assert.NotNil(t, enc)
}

func TestNewDecoder_UnknownTermFallsBack(t *testing.T) {
	d, err := NewDecoder("ISO_IR 999")
	assert.Error(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "plain", d.Decode([]byte("plain")))
}

func TestLookup_SkipsDefaultRepertoire(t *testing.T) {
	enc, err := Lookup(`ISO 2022 IR 6\ISO 2022 IR 87`)
	require.NoError(t, err)
	assert.Equal(t, japanese.ISO2022JP, enc)

	enc, err = Lookup(`ISO 2022 IR 6`)
	require.NoError(t, err)
	assert.Equal(t, encoding.Nop, enc)
}

func TestDecoder_ISO2022Japanese(t *testing.T) {
	const name = "YAMADA^TARO=山田^太郎"
	raw, err := japanese.ISO2022JP.NewEncoder().String(name)
	require.NoError(t, err)
	require.Contains(t, raw, "\x1b$B")

	d, err := NewDecoder(`ISO 2022 IR 6\ISO 2022 IR 87`)
	require.NoError(t, err)
	assert.Equal(t, name, d.Decode([]byte(raw)))
}
