package utils

import (
	"bufio"
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Magic bytes for compression detection. pkg_summary files are published
// as pkg_summary.gz, .xz or .zst alongside the plain text form.
var (
	gzipMagic = []byte{0x1F, 0x8B}
	xzMagic   = []byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00}
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
)

// OpenReader wraps r with the matching decompressor based on magic bytes.
// Plain text input is passed through untouched.
func OpenReader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	// Peek returns what is available on short input; a genuine read error
	// resurfaces on the first read.
	header, _ := br.Peek(6)

	switch {
	case bytes.HasPrefix(header, gzipMagic):
		return gzip.NewReader(br)
	case bytes.HasPrefix(header, xzMagic):
		return xz.NewReader(br)
	case bytes.HasPrefix(header, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	}

	return br, nil
}

// GzipCompress compresses data using gzip
func GzipCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)

	if _, err := w.Write(data); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// GzipDecompress decompresses gzip data
func GzipDecompress(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}
