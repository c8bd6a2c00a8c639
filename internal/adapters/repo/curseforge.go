package repo

import (
	"context"
	"io"

	"go.mup.dev/mup/internal/core/domain"
	"go.mup.dev/mup/internal/core/ports"
	"go.trai.ch/zerr"
)

// CurseForge is a placeholder repository variant. Every operation reports
// the repository as unavailable.
type CurseForge struct{}

// NewCurseForge creates the CurseForge stub.
func NewCurseForge() *CurseForge {
	return &CurseForge{}
}

// Repository names the variant.
func (c *CurseForge) Repository() domain.Repository {
	return domain.RepositoryCurseForge
}

func (c *CurseForge) unavailable() error {
	err := zerr.With(domain.ErrRepositoryUnavailable, "repository", string(domain.RepositoryCurseForge))
	return zerr.With(err, "reason", "curseforge support is not implemented")
}

// ListVersions reports the repository as unavailable.
func (c *CurseForge) ListVersions(_ context.Context, _ string) ([]ports.VersionSummary, error) {
	return nil, c.unavailable()
}

// GetVersionMetadata reports the repository as unavailable.
func (c *CurseForge) GetVersionMetadata(_ context.Context, _, _ string) (ports.VersionMetadata, error) {
	return ports.VersionMetadata{}, c.unavailable()
}

// Download reports the repository as unavailable.
func (c *CurseForge) Download(_ context.Context, _ string) (io.ReadCloser, error) {
	return nil, c.unavailable()
}
