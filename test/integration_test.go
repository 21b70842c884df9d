package test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ralt/pkgsum/internal/cli"
	"github.com/ralt/pkgsum/internal/store"
	"github.com/ralt/pkgsum/internal/utils"
)

// summaryRecord builds one pkg_summary(5) record for pkgname, terminated by
// the blank-line separator.
func summaryRecord(pkgname, pkgpath string) string {
	return strings.Join([]string{
		"BUILD_DATE=2024-01-15 12:00:00 +0000",
		"CATEGORIES=" + strings.Split(pkgpath, "/")[0],
		"COMMENT=Integration test package",
		"DEPENDS=libfixture>=1.0",
		"DESCRIPTION=A package used by the end-to-end test.",
		"DESCRIPTION=",
		"DESCRIPTION=It is not real.",
		"MACHINE_ARCH=x86_64",
		"OPSYS=NetBSD",
		"OS_VERSION=10.0",
		"PKGNAME=" + pkgname,
		"PKGPATH=" + pkgpath,
		"PKGTOOLS_VERSION=20240108",
		"SIZE_PKG=4096",
	}, "\n") + "\n\n"
}

// TestLoadCompressedSummary drives the load command over a gzip-compressed
// pkg_summary file and checks the resulting database contents.
func TestLoadCompressedSummary(t *testing.T) {
	tmpDir := t.TempDir()

	input := summaryRecord("fixture-one-1.0", "devel/fixture-one") +
		summaryRecord("fixture-two-2.3.1", "net/fixture-two") +
		// Record missing COMMENT, must be rejected without breaking the rest.
		"BUILD_DATE=2024-01-15 12:00:00 +0000\nCATEGORIES=broken\nPKGNAME=broken-1.0\n\n" +
		summaryRecord("fixture-three-0.9nb2", "www/fixture-three")

	compressed, err := utils.GzipCompress([]byte(input))
	require.NoError(t, err)

	summaryPath := filepath.Join(tmpDir, "pkg_summary.gz")
	require.NoError(t, os.WriteFile(summaryPath, compressed, 0644))
	dbPath := filepath.Join(tmpDir, "pkgsum.db")

	cmd := cli.NewRootCmd()
	cmd.SetArgs([]string{"load", "--db", dbPath, summaryPath})
	require.NoError(t, cmd.Execute())

	st, err := store.New(dbPath)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	count, err := st.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	got, err := st.Get(ctx, "fixture-two-2.3.1")
	require.NoError(t, err)
	assert.Equal(t, "fixture-two", got.Pkgbase)
	assert.Equal(t, "2.3.1", got.Pkgversion)
	assert.Len(t, got.Description, 3)
	assert.Equal(t, int64(4096), got.SizePkg.Int64)

	_, err = st.Get(ctx, "broken-1.0")
	assert.Error(t, err)
}

// TestParseVerifiedChecksum drives the parse command with an integrity check.
func TestParseVerifiedChecksum(t *testing.T) {
	tmpDir := t.TempDir()

	input := []byte(summaryRecord("fixture-one-1.0", "devel/fixture-one"))
	summaryPath := filepath.Join(tmpDir, "pkg_summary")
	require.NoError(t, os.WriteFile(summaryPath, input, 0644))

	digest, err := utils.CalculateChecksum(input, "sha512")
	require.NoError(t, err)

	cmd := cli.NewRootCmd()
	cmd.SetArgs([]string{"parse", "--cksum", "sha512:" + digest, summaryPath})
	require.NoError(t, cmd.Execute())

	// Corrupted digest must fail the run.
	cmd = cli.NewRootCmd()
	cmd.SetArgs([]string{"parse", "--cksum", "sha512:0000", summaryPath})
	assert.Error(t, cmd.Execute())
}
