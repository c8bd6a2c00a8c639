package fs_test

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mup.dev/mup/internal/adapters/fs"
	"go.mup.dev/mup/internal/core/domain"
)

func sha256Of(data []byte) domain.Checksum {
	sum := sha256.Sum256(data)
	return domain.Checksum{Algorithm: domain.ChecksumSHA256, Hex: hex.EncodeToString(sum[:])}
}

func TestChecksumReader_Match(t *testing.T) {
	data := []byte("artifact bytes")
	r, err := fs.NewChecksumReader(bytes.NewReader(data), sha256Of(data))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, data, got)
	require.NoError(t, r.Verify())
}

func TestChecksumReader_Mismatch(t *testing.T) {
	r, err := fs.NewChecksumReader(bytes.NewReader([]byte("actual")), sha256Of([]byte("expected")))
	require.NoError(t, err)

	_, err = io.ReadAll(r)
	require.NoError(t, err)

	err = r.Verify()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrChecksumMismatch))
}

func TestChecksumReader_UnsupportedAlgorithm(t *testing.T) {
	_, err := fs.NewChecksumReader(bytes.NewReader(nil), domain.Checksum{Algorithm: "md5", Hex: "abc"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidChecksum))
}

func TestVerifyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plugin.jar")
	data := []byte("installed content")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	ok, err := fs.VerifyFile(path, sha256Of(data))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = fs.VerifyFile(path, sha256Of([]byte("other content")))
	require.NoError(t, err)
	assert.False(t, ok)

	// A missing file is not an error, just unverified.
	ok, err = fs.VerifyFile(filepath.Join(dir, "missing.jar"), sha256Of(data))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "mup.lock")

	require.NoError(t, fs.WriteFileAtomic(path, []byte("first")))
	require.NoError(t, fs.WriteFileAtomic(path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestDirLock_MutualExclusion(t *testing.T) {
	dir := t.TempDir()

	lock, err := fs.AcquireDirLock(dir)
	require.NoError(t, err)

	_, err = fs.AcquireDirLock(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDirectoryLocked))

	require.NoError(t, lock.Release())

	again, err := fs.AcquireDirLock(dir)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestDirLock_StaleHolderReplaced(t *testing.T) {
	dir := t.TempDir()

	// A lock left behind by a process that no longer exists is taken over.
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".mup.pid"), []byte("999999999\n"), 0o644))

	lock, err := fs.AcquireDirLock(dir)
	require.NoError(t, err)
	require.NoError(t, lock.Release())
}
