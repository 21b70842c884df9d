package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyChecksum(t *testing.T) {
	data := []byte("BUILD_DATE=2019-08-14\n")

	digest, err := CalculateChecksum(data, "sha512")
	require.NoError(t, err)

	assert.NoError(t, VerifyChecksum(data, "sha512:"+digest))
}

func TestVerifyChecksumMismatch(t *testing.T) {
	err := VerifyChecksum([]byte("data"), "sha256:deadbeef")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mismatch")
}

func TestVerifyChecksumBadSpec(t *testing.T) {
	err := VerifyChecksum([]byte("data"), "nodigest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "algo:hexdigest")
}

func TestVerifyChecksumCaseInsensitive(t *testing.T) {
	data := []byte("data")
	digest, err := CalculateChecksum(data, "sha256")
	require.NoError(t, err)

	assert.NoError(t, VerifyChecksum(data, "sha256:"+strings.ToUpper(digest)))
}
