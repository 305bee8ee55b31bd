package dataset

import (
	"archive/zip"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnpackArchivePlainFile(t *testing.T) {
	path := writeCSV(t, "claims.csv", claimsCSV)

	got, err := unpackArchive(path)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestUnpackGzipArchive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "claims.csv.gz")

	f, err := os.Create(path)
	require.NoError(t, err)
	gw := gzip.NewWriter(f)
	_, err = gw.Write([]byte(claimsCSV))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, f.Close())

	got, err := unpackArchive(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "claims.csv"), got)

	// the archive is replaced by its content
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	table, err := LoadTable(context.Background(), got)
	require.NoError(t, err)
	assert.Equal(t, 4, table.NumRows())
}

func TestUnpackZipArchivePicksLargestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "claims.zip")

	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)

	small, err := zw.Create("readme.txt")
	require.NoError(t, err)
	_, err = small.Write([]byte("notes"))
	require.NoError(t, err)

	large, err := zw.Create("claims.csv")
	require.NoError(t, err)
	_, err = large.Write([]byte(claimsCSV))
	require.NoError(t, err)

	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	got, err := unpackArchive(path)
	require.NoError(t, err)
	assert.Equal(t, "claims.csv", filepath.Base(got))
}
