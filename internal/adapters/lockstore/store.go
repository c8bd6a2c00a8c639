// Package lockstore persists the lockfile as human-diffable YAML with an
// atomic commit.
package lockstore

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	mupfs "go.mup.dev/mup/internal/adapters/fs"
	"go.mup.dev/mup/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Filename is the lockfile name inside a server directory.
const Filename = "mup.lock"

const header = `# This file is @generated by mup.
# Do not edit it manually; it always describes a fully verified install.
`

// Store implements ports.LockfileStore over a file in the server directory.
type Store struct {
	path string
}

// NewStore creates a lockfile store rooted at the given server directory.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, Filename)}
}

// Load reads and validates the committed lockfile. Returns nil, nil when no
// lockfile exists yet.
func (s *Store) Load() (*domain.Lockfile, error) {
	data, err := os.ReadFile(s.path) //nolint:gosec // Path is inside the managed directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read lockfile"), "path", s.path)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var lf domain.Lockfile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, zerr.Wrap(err, domain.ErrInvalidLockfile.Error())
	}
	if err := lf.Validate(); err != nil {
		return nil, err
	}
	return &lf, nil
}

// Commit validates, canonicalizes and atomically writes the lockfile. A
// failed commit leaves the previous lockfile untouched.
func (s *Store) Commit(lf *domain.Lockfile) error {
	if err := lf.Validate(); err != nil {
		return err
	}
	lf.Canonicalize()

	body, err := yaml.Marshal(lf)
	if err != nil {
		return zerr.Wrap(err, "failed to marshal lockfile")
	}

	data := append([]byte(header), body...)
	if err := mupfs.WriteFileAtomic(s.path, data); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write lockfile"), "path", s.path)
	}
	return nil
}
