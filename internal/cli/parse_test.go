package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ralt/pkgsum/internal/models"
	"github.com/ralt/pkgsum/internal/utils"
)

const testSummary = `BUILD_DATE=2019-08-14 01:23:45 +0000
CATEGORIES=test
COMMENT=This is a test
DESCRIPTION=A test description.
MACHINE_ARCH=x86_64
OPSYS=Darwin
OS_VERSION=18.7.0
PKGNAME=pkgtest-1.0
PKGPATH=category/pkgtest
PKGTOOLS_VERSION=20190405
SIZE_PKG=1234

`

func writeSummaryFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pkg_summary")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestRunIngestPlainFile(t *testing.T) {
	path := writeSummaryFile(t, []byte(testSummary))

	stream, err := runIngest(&models.IngestConfig{InputPath: path})
	require.NoError(t, err)

	require.Len(t, stream.Entries(), 1)
	assert.Equal(t, "pkgtest-1.0", stream.Entries()[0].Pkgname)
}

func TestRunIngestGzipFile(t *testing.T) {
	compressed, err := utils.GzipCompress([]byte(testSummary))
	require.NoError(t, err)
	path := writeSummaryFile(t, compressed)

	stream, err := runIngest(&models.IngestConfig{InputPath: path})
	require.NoError(t, err)
	assert.Len(t, stream.Entries(), 1)
}

func TestRunIngestChecksum(t *testing.T) {
	path := writeSummaryFile(t, []byte(testSummary))

	digest, err := utils.CalculateChecksum([]byte(testSummary), "sha256")
	require.NoError(t, err)

	_, err = runIngest(&models.IngestConfig{InputPath: path, Checksum: "sha256:" + digest})
	require.NoError(t, err)

	_, err = runIngest(&models.IngestConfig{InputPath: path, Checksum: "sha256:deadbeef"})
	assert.Error(t, err)
}

func TestRunIngestMissingFile(t *testing.T) {
	_, err := runIngest(&models.IngestConfig{InputPath: filepath.Join(t.TempDir(), "nope")})
	assert.Error(t, err)
}

func TestParseCommandList(t *testing.T) {
	path := writeSummaryFile(t, []byte(testSummary))

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"parse", "--list", path})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "pkgtest-1.0 This is a test")
}
