package loaderjar

import (
	"context"
	"io"
	"os"
	"path/filepath"

	mupfs "go.mup.dev/mup/internal/adapters/fs"
	"go.mup.dev/mup/internal/adapters/repo"
	"go.mup.dev/mup/internal/core/domain"
	"go.trai.ch/zerr"
)

// downloadJar streams url into dir/filename via a temp file. When want is
// non-zero the stream is hashed and a mismatch discards the temp file
// without touching any existing jar.
func downloadJar(ctx context.Context, client *repo.HTTPClient, url, dir, filename string, want domain.Checksum) error {
	body, err := client.Get(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close() //nolint:errcheck // Best effort close in defer

	if err := os.MkdirAll(dir, mupfs.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create server directory")
	}

	var reader io.Reader = body
	var checked *mupfs.ChecksumReader
	if !want.IsZero() {
		checked, err = mupfs.NewChecksumReader(body, want)
		if err != nil {
			return err
		}
		reader = checked
	}

	tmpFile, err := os.CreateTemp(dir, ".mup-jar-*")
	if err != nil {
		return zerr.Wrap(err, "failed to create temp file")
	}
	tmpName := tmpFile.Name()
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmpFile, reader); err != nil {
		_ = tmpFile.Close()
		netErr := zerr.With(domain.ErrNetwork, "cause", err.Error())
		return zerr.With(netErr, "url", url)
	}
	if err := tmpFile.Close(); err != nil {
		return zerr.Wrap(err, "failed to close temp file")
	}

	if checked != nil {
		if err := checked.Verify(); err != nil {
			return zerr.With(err, "url", url)
		}
	}

	if err := os.Chmod(tmpName, mupfs.FilePerm); err != nil {
		return zerr.Wrap(err, "failed to chmod server jar")
	}
	finalPath := filepath.Join(dir, filename)
	if err := os.Rename(tmpName, finalPath); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to install server jar"), "path", finalPath)
	}
	return nil
}
