package lockstore_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mup.dev/mup/internal/adapters/lockstore"
	"go.mup.dev/mup/internal/core/domain"
)

func sampleLockfile() *domain.Lockfile {
	lf := domain.NewLockfile(domain.ServerProfile{Loader: domain.LoaderPaper, Minecraft: "1.21.1"})
	lf.Fingerprint = "0123456789abcdef"
	lf.Generation = 3
	lf.Artifacts = []domain.ResolvedArtifact{
		{
			Repository: domain.RepositoryModrinth,
			Project:    "zeta",
			Version:    "2.0.0",
			Filename:   "zeta.jar",
			Checksum:   "sha512:beef",
			URL:        "https://cdn.example/zeta.jar",
			Path:       "plugins/zeta.jar",
			Origin:     domain.OriginDirect,
		},
		{
			Repository: domain.RepositoryModrinth,
			Project:    "alpha",
			Version:    "1.0.0",
			Filename:   "alpha.jar",
			Checksum:   "sha512:dead",
			URL:        "https://cdn.example/alpha.jar",
			Path:       "plugins/alpha.jar",
			Origin:     domain.OriginTransitive,
		},
	}
	lf.Edges = []domain.DependencyEdge{
		{FromRepository: domain.RepositoryModrinth, FromProject: "zeta", ToProject: "alpha", Constraint: "latest"},
	}
	return lf
}

func TestStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := lockstore.NewStore(dir)

	require.NoError(t, store.Commit(sampleLockfile()))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, domain.LockfileSchema, loaded.Schema)
	assert.Equal(t, uint64(3), loaded.Generation)
	assert.Equal(t, "0123456789abcdef", loaded.Fingerprint)
	require.Len(t, loaded.Artifacts, 2)
	// Commit canonicalizes: alpha sorts before zeta.
	assert.Equal(t, "alpha", loaded.Artifacts[0].Project)
	assert.Equal(t, "zeta", loaded.Artifacts[1].Project)
	require.Len(t, loaded.Edges, 1)
}

func TestStore_GeneratedHeader(t *testing.T) {
	dir := t.TempDir()
	store := lockstore.NewStore(dir)
	require.NoError(t, store.Commit(sampleLockfile()))

	data, err := os.ReadFile(filepath.Join(dir, lockstore.Filename))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# This file is @generated by mup."))
}

func TestStore_LoadAbsent(t *testing.T) {
	store := lockstore.NewStore(t.TempDir())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStore_LoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, lockstore.Filename), []byte("{{not yaml"), 0o644))

	_, err := lockstore.NewStore(dir).Load()
	require.Error(t, err)
}

func TestStore_CommitRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	store := lockstore.NewStore(dir)
	require.NoError(t, store.Commit(sampleLockfile()))

	bad := sampleLockfile()
	bad.Artifacts = append(bad.Artifacts, bad.Artifacts[0])

	err := store.Commit(bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidLockfile))

	// The previous commit is untouched.
	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Len(t, loaded.Artifacts, 2)
}
