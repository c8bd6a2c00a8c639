// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"
	"time"

	"github.com/Masterminds/semver/v3"
	"go.mup.dev/mup/internal/core/domain"
)

// VersionSummary is one entry of a project's version listing. Listings are
// ordered newest-first by publish time and carry enough compatibility
// metadata to filter candidates without a per-version metadata fetch.
type VersionSummary struct {
	ID           string
	PublishedAt  time.Time
	Loaders      []domain.LoaderKind
	GameVersions []string
}

// Compatible reports whether the summary declares compatibility with the
// given profile.
func (s VersionSummary) Compatible(profile domain.ServerProfile) bool {
	loaderOK := false
	for _, l := range s.Loaders {
		if l == profile.Loader {
			loaderOK = true
			break
		}
	}
	if !loaderOK {
		return false
	}
	for _, gv := range s.GameVersions {
		if gameVersionMatches(gv, profile.Minecraft) {
			return true
		}
	}
	return false
}

// gameVersionMatches compares declared game versions leniently: exact string
// match, or semver equality so "1.21" and "1.21.0" are the same release.
func gameVersionMatches(declared, wanted string) bool {
	if declared == wanted {
		return true
	}
	dv, errD := semver.NewVersion(declared)
	wv, errW := semver.NewVersion(wanted)
	return errD == nil && errW == nil && dv.Equal(wv)
}

// DependencyRef is a dependency declared by a version's metadata. An empty
// Version means "latest compatible".
type DependencyRef struct {
	Project  string
	Version  string
	Required bool
}

// VersionMetadata is the full description of one project version.
type VersionMetadata struct {
	ID           string
	Project      string
	Loaders      []domain.LoaderKind
	GameVersions []string
	Dependencies []DependencyRef
	Filename     string
	URL          string
	Checksum     domain.Checksum
	PublishedAt  time.Time
}

// Summary converts the metadata to its listing form.
func (m VersionMetadata) Summary() VersionSummary {
	return VersionSummary{
		ID:           m.ID,
		PublishedAt:  m.PublishedAt,
		Loaders:      m.Loaders,
		GameVersions: m.GameVersions,
	}
}

// RepositoryClient is the capability set over one repository variant. All
// operations may fail with domain.ErrNotFound, domain.ErrNetwork (retried
// internally, surfaced only after exhaustion) or
// domain.ErrRepositoryUnavailable. No caller outside the repo adapters may
// branch on repository identity except to pick the variant.
//
//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mocks/mock_repository.go -package=mocks
type RepositoryClient interface {
	// Repository names the variant this client serves.
	Repository() domain.Repository

	// ListVersions returns the project's versions, newest first.
	ListVersions(ctx context.Context, project string) ([]VersionSummary, error)

	// GetVersionMetadata fetches the full metadata of one version.
	GetVersionMetadata(ctx context.Context, project, versionID string) (VersionMetadata, error)

	// Download opens a byte stream for the given artifact URL.
	Download(ctx context.Context, url string) (io.ReadCloser, error)
}

// RepositoryRegistry selects the client for a repository variant.
type RepositoryRegistry interface {
	// Client returns the client for the repository, or
	// domain.ErrRepositoryUnavailable for unimplemented variants.
	Client(repo domain.Repository) (RepositoryClient, error)
}
