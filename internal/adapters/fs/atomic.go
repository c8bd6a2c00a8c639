package fs

import (
	"os"
	"path/filepath"
)

const (
	// DirPerm is the permission mode for created directories.
	DirPerm = 0o750
	// FilePerm is the permission mode for written files.
	FilePerm = 0o644
)

// WriteFileAtomic writes data to path by writing a temp file in the same
// directory and renaming it into place, so readers never observe a partial
// file.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, ".mup-write-*")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, FilePerm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
