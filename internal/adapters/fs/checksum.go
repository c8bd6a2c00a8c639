// Package fs provides filesystem primitives shared by the stores and the
// synchronizer: content hashing, atomic writes and the advisory directory
// lock.
package fs

import (
	"crypto/sha1" //nolint:gosec // Mojang publishes sha1 digests
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"io"
	"os"

	"go.mup.dev/mup/internal/core/domain"
	"go.trai.ch/zerr"
)

// NewDigest returns a hash.Hash for the checksum's algorithm.
func NewDigest(algo domain.ChecksumAlgorithm) (hash.Hash, error) {
	switch algo {
	case domain.ChecksumSHA1:
		return sha1.New(), nil //nolint:gosec // Mojang publishes sha1 digests
	case domain.ChecksumSHA256:
		return sha256.New(), nil
	case domain.ChecksumSHA512:
		return sha512.New(), nil
	default:
		return nil, zerr.With(domain.ErrInvalidChecksum, "algorithm", string(algo))
	}
}

// ChecksumReader tees a stream through a digest so the caller can verify the
// content hash after copying.
type ChecksumReader struct {
	reader io.Reader
	digest hash.Hash
	want   domain.Checksum
}

// NewChecksumReader wraps r so that every byte read is also hashed with the
// checksum's algorithm.
func NewChecksumReader(r io.Reader, want domain.Checksum) (*ChecksumReader, error) {
	digest, err := NewDigest(want.Algorithm)
	if err != nil {
		return nil, err
	}
	return &ChecksumReader{
		reader: io.TeeReader(r, digest),
		digest: digest,
		want:   want,
	}, nil
}

func (c *ChecksumReader) Read(p []byte) (int, error) {
	return c.reader.Read(p)
}

// Verify compares the accumulated digest against the expected checksum. It
// must be called after the stream has been fully consumed.
func (c *ChecksumReader) Verify() error {
	got := hex.EncodeToString(c.digest.Sum(nil))
	if got != c.want.Hex {
		err := zerr.With(domain.ErrChecksumMismatch, "expected", c.want.String())
		return zerr.With(err, "actual", string(c.want.Algorithm)+":"+got)
	}
	return nil
}

// VerifyFile checks an existing file against an expected checksum. It returns
// false without error when the file does not exist, and an error only for
// read failures or unsupported algorithms; a content mismatch reports false.
func VerifyFile(path string, want domain.Checksum) (bool, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	digest, err := NewDigest(want.Algorithm)
	if err != nil {
		return false, err
	}
	if _, err := io.Copy(digest, f); err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hex.EncodeToString(digest.Sum(nil)) == want.Hex, nil
}
