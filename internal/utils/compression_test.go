package utils

import (
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

var sample = []byte("PKGNAME=pkgtest-1.0\nCOMMENT=This is a test\n\n")

func TestOpenReaderPlain(t *testing.T) {
	r, err := OpenReader(bytes.NewReader(sample))
	require.NoError(t, err)

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, sample, out)
}

func TestOpenReaderGzip(t *testing.T) {
	compressed, err := GzipCompress(sample)
	require.NoError(t, err)

	r, err := OpenReader(bytes.NewReader(compressed))
	require.NoError(t, err)

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, sample, out)
}

func TestOpenReaderXz(t *testing.T) {
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(sample)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := OpenReader(&buf)
	require.NoError(t, err)

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, sample, out)
}

func TestOpenReaderZstd(t *testing.T) {
	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(sample)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := OpenReader(&buf)
	require.NoError(t, err)

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, sample, out)
}

func TestOpenReaderShortInput(t *testing.T) {
	r, err := OpenReader(bytes.NewReader([]byte("x")))
	require.NoError(t, err)

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), out)
}

func TestGzipRoundTrip(t *testing.T) {
	compressed, err := GzipCompress(sample)
	require.NoError(t, err)

	out, err := GzipDecompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, sample, out)
}
