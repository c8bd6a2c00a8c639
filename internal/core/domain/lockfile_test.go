package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mup.dev/mup/internal/core/domain"
	"go.trai.ch/zerr"
)

func paperProfile() domain.ServerProfile {
	return domain.ServerProfile{Loader: domain.LoaderPaper, Minecraft: "1.21.1"}
}

func artifact(project, version, path string) domain.ResolvedArtifact {
	return domain.ResolvedArtifact{
		Repository: domain.RepositoryModrinth,
		Project:    project,
		Version:    version,
		Filename:   project + ".jar",
		Checksum:   "sha512:deadbeef",
		URL:        "https://cdn.example/" + project + ".jar",
		Path:       path,
		Origin:     domain.OriginDirect,
	}
}

func TestLockfileValidate_Valid(t *testing.T) {
	lf := domain.NewLockfile(paperProfile())
	lf.Artifacts = []domain.ResolvedArtifact{
		artifact("alpha", "1.0.0", "plugins/alpha.jar"),
		artifact("beta", "2.0.0", "plugins/beta.jar"),
	}
	lf.Edges = []domain.DependencyEdge{
		{FromRepository: domain.RepositoryModrinth, FromProject: "alpha", ToProject: "beta", Constraint: "latest"},
	}

	require.NoError(t, lf.Validate())
}

func TestLockfileValidate_DuplicateEntry(t *testing.T) {
	lf := domain.NewLockfile(paperProfile())
	lf.Artifacts = []domain.ResolvedArtifact{
		artifact("alpha", "1.0.0", "plugins/alpha-1.jar"),
		artifact("alpha", "2.0.0", "plugins/alpha-2.jar"),
	}

	err := lf.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidLockfile))
}

func TestLockfileValidate_DuplicatePath(t *testing.T) {
	lf := domain.NewLockfile(paperProfile())
	lf.Artifacts = []domain.ResolvedArtifact{
		artifact("alpha", "1.0.0", "plugins/same.jar"),
		artifact("beta", "2.0.0", "plugins/same.jar"),
	}

	err := lf.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidLockfile))
}

func TestLockfileValidate_DanglingEdge(t *testing.T) {
	lf := domain.NewLockfile(paperProfile())
	lf.Artifacts = []domain.ResolvedArtifact{
		artifact("alpha", "1.0.0", "plugins/alpha.jar"),
	}
	lf.Edges = []domain.DependencyEdge{
		{FromRepository: domain.RepositoryModrinth, FromProject: "alpha", ToProject: "ghost", Constraint: "latest"},
	}

	err := lf.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidLockfile))
}

func TestLockfileValidate_BadChecksum(t *testing.T) {
	lf := domain.NewLockfile(paperProfile())
	bad := artifact("alpha", "1.0.0", "plugins/alpha.jar")
	bad.Checksum = "not-a-checksum"
	lf.Artifacts = []domain.ResolvedArtifact{bad}

	err := lf.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidChecksum))
}

func TestLockfileValidate_Cycle(t *testing.T) {
	lf := domain.NewLockfile(paperProfile())
	lf.Artifacts = []domain.ResolvedArtifact{
		artifact("alpha", "1.0.0", "plugins/alpha.jar"),
		artifact("beta", "2.0.0", "plugins/beta.jar"),
	}
	lf.Edges = []domain.DependencyEdge{
		{FromRepository: domain.RepositoryModrinth, FromProject: "alpha", ToProject: "beta", Constraint: "latest"},
		{FromRepository: domain.RepositoryModrinth, FromProject: "beta", ToProject: "alpha", Constraint: "latest"},
	}

	err := lf.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	// The cycle path names every participant.
	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	cycle := fmt.Sprintf("%v", zErr.Metadata()["cycle"])
	assert.Contains(t, cycle, "modrinth:alpha")
	assert.Contains(t, cycle, "modrinth:beta")
}

func TestLockfileCanonicalize_StableOrder(t *testing.T) {
	lf := domain.NewLockfile(paperProfile())
	lf.Artifacts = []domain.ResolvedArtifact{
		artifact("zeta", "1.0.0", "plugins/zeta.jar"),
		artifact("alpha", "1.0.0", "plugins/alpha.jar"),
	}
	hangar := artifact("alpha", "1.0.0", "plugins/hangar-alpha.jar")
	hangar.Repository = domain.RepositoryHangar
	lf.Artifacts = append(lf.Artifacts, hangar)

	lf.Canonicalize()

	require.Len(t, lf.Artifacts, 3)
	assert.Equal(t, domain.RepositoryHangar, lf.Artifacts[0].Repository)
	assert.Equal(t, "alpha", lf.Artifacts[1].Project)
	assert.Equal(t, "zeta", lf.Artifacts[2].Project)
}

func TestLockfileArtifact_Lookup(t *testing.T) {
	lf := domain.NewLockfile(paperProfile())
	lf.Artifacts = []domain.ResolvedArtifact{artifact("alpha", "1.0.0", "plugins/alpha.jar")}

	got, ok := lf.Artifact(domain.ProjectKey{Repository: domain.RepositoryModrinth, Project: "alpha"})
	require.True(t, ok)
	assert.Equal(t, "1.0.0", got.Version)

	_, ok = lf.Artifact(domain.ProjectKey{Repository: domain.RepositoryModrinth, Project: "ghost"})
	assert.False(t, ok)
}
