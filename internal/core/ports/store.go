package ports

import "go.mup.dev/mup/internal/core/domain"

// LockfileStore persists the pinned manifest. Commit is all-or-nothing: the
// on-disk lockfile always describes a previously fully-verified state.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type LockfileStore interface {
	// Load reads the committed lockfile. Returns nil, nil when none exists.
	Load() (*domain.Lockfile, error)

	// Commit validates, canonicalizes and atomically writes the lockfile.
	Commit(lf *domain.Lockfile) error
}

// ManifestStore persists the user-declared manifest.
type ManifestStore interface {
	// Load reads the manifest. Returns nil, nil when none exists.
	Load() (*domain.Manifest, error)

	// Save validates and atomically writes the manifest.
	Save(m *domain.Manifest) error
}
