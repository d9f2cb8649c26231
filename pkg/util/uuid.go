package util

import (
	"crypto/md5"
	"encoding/hex"

	"github.com/google/uuid"
)

// Md5ThenHex is a quick hasher
func Md5ThenHex(value []byte) string {
	sum := md5.Sum(value)
	return hex.EncodeToString(sum[:])
}

// ContentID derives a stable UUID from the md5 of an upload, so identical
// files map to the same ID
func ContentID(content []byte) string {
	sum := md5.Sum(content)
	id, err := uuid.FromBytes(sum[:])
	if err != nil {
		return ""
	}
	return id.String()
}

// RequestID returns a random ID for correlating log lines of one request
func RequestID() string {
	return uuid.NewString()
}
