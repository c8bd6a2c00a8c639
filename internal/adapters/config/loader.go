// Package config provides the manifest store for mup.yaml.
package config

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

// Filename is the manifest name inside a server directory.
const Filename = "mup.yaml"

// manifestVersion is the manifest schema version written by Save.
const manifestVersion = "1"

// FileManifestStore implements ports.ManifestStore over mup.yaml in a server
// directory.
type FileManifestStore struct {
	path string
}

// NewStore creates a manifest store rooted at the given server directory.
func NewStore(dir string) *FileManifestStore {
	return &FileManifestStore{path: filepath.Join(dir, Filename)}
}

// Load reads and validates the manifest. Returns nil, nil when none exists.
func (s *FileManifestStore) Load() (*domain.Manifest, error) {
	data, err := os.ReadFile(s.path) //nolint:gosec // Path is inside the managed directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read manifest"), "path", s.path)
	}

	var file Mupfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, domain.ErrInvalidManifest.Error())
	}

	m := &domain.Manifest{
		Profile: domain.ServerProfile{
			Loader:    domain.LoaderKind(file.Server.Loader),
			Minecraft: file.Server.Minecraft,
		},
	}
	for _, dto := range file.Plugins {
		version := dto.Version
		if version == "" {
			version = domain.VersionLatest
		}
		m.Requirements = append(m.Requirements, domain.Requirement{
			Repository: domain.Repository(dto.Repository),
			Project:    dto.Project,
			Version:    version,
		})
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Save validates and atomically writes the manifest in canonical order.
func (s *FileManifestStore) Save(m *domain.Manifest) error {
	if err := m.Validate(); err != nil {
		return err
	}
	m.Canonicalize()

	file := Mupfile{
		Version: manifestVersion,
		Server: ServerDTO{
			Loader:    string(m.Profile.Loader),
			Minecraft: m.Profile.Minecraft,
		},
	}
	for _, r := range m.Requirements {
		file.Plugins = append(file.Plugins, RequirementDTO{
			Repository: string(r.Repository),
			Project:    r.Project,
			Version:    r.Version,
		})
	}

	data, err := yaml.Marshal(&file)
	if err != nil {
		return zerr.Wrap(err, "failed to marshal manifest")
	}
	if err := mupfs.WriteFileAtomic(s.path, data); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write manifest"), "path", s.path)
	}
	return nil
}
