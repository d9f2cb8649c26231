package util

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMd5ThenHex(t *testing.T) {
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", Md5ThenHex(nil))
}

func TestContentID(t *testing.T) {
	a := ContentID([]byte("DICM"))
	b := ContentID([]byte("DICM"))
	c := ContentID([]byte("DICN"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	_, err := uuid.Parse(a)
	require.NoError(t, err)
}

func TestRequestID(t *testing.T) {
	assert.NotEqual(t, RequestID(), RequestID())
}
