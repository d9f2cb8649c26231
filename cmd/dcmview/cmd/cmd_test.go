package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRoot(context.Background(), "test-sha")
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "test-sha\n", out)
}

func TestSampleDecodeDump(t *testing.T) {
	dir := t.TempDir()
	dcmPath := filepath.Join(dir, "gray.dcm")
	pngPath := filepath.Join(dir, "gray.png")

	_, err := run(t, "sample", "-o", dcmPath, "--cols", "40", "--rows", "20", "--bits", "16")
	require.NoError(t, err)

	out, err := run(t, "decode", "-u", dcmPath, "--png", pngPath, "--max-dim", "10")
	require.NoError(t, err)
	var doc struct {
		Metadata map[string]string `json:"metadata"`
		Error    string            `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "40", doc.Metadata["columns"])
	assert.Equal(t, "16", doc.Metadata["bitsAllocated"])
	assert.Empty(t, doc.Error)

	f, err := os.Open(pngPath)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 10, img.Bounds().Dx())
	assert.Equal(t, 5, img.Bounds().Dy())

	out, err = run(t, "decode", "-u", "file://"+dcmPath, "-f", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Patient Name")
	assert.Contains(t, out, "SAMPLE^GRADIENT")

	out, err = run(t, "dump", "-u", dcmPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Explicit VR Little Endian")
	assert.Contains(t, out, "PatientName: SAMPLE^GRADIENT")
}

func TestDecode_Errors(t *testing.T) {
	_, err := run(t, "decode")
	assert.ErrorContains(t, err, "uri is required")

	_, err = run(t, "decode", "-u", filepath.Join(t.TempDir(), "missing.dcm"))
	assert.ErrorContains(t, err, "failed to open file")

	bad := filepath.Join(t.TempDir(), "bad.dcm")
	require.NoError(t, os.WriteFile(bad, []byte("nope"), 0o644))
	_, err = run(t, "decode", "-u", bad)
	assert.ErrorContains(t, err, "malformed dataset")
}

func TestSample_RequiresOutput(t *testing.T) {
	_, err := run(t, "sample")
	assert.Error(t, err)
}
