package repo_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mup.dev/mup/internal/adapters/repo"
	"go.mup.dev/mup/internal/core/domain"
)

const hangarVersionList = `{
  "result": [
    {
      "name": "2.21.0",
      "createdAt": "2026-03-01T00:00:00Z",
      "platformDependencies": {"PAPER": ["1.21", "1.21.1"]},
      "downloads": {},
      "pluginDependencies": {}
    },
    {
      "name": "0.9.0-velocity",
      "createdAt": "2026-02-01T00:00:00Z",
      "platformDependencies": {"VELOCITY": ["3.3"]},
      "downloads": {},
      "pluginDependencies": {}
    },
    {
      "name": "2.20.1",
      "createdAt": "2025-11-01T00:00:00Z",
      "platformDependencies": {"PAPER": ["1.20.4"]},
      "downloads": {},
      "pluginDependencies": {}
    }
  ]
}`

const hangarVersion = `{
  "name": "2.21.0",
  "createdAt": "2026-03-01T00:00:00Z",
  "platformDependencies": {"PAPER": ["1.21.1"]},
  "downloads": {
    "PAPER": {
      "fileInfo": {"name": "Essentials-2.21.0.jar", "sha256Hash": "CAFE01"},
      "downloadUrl": "https://hangarcdn.example/Essentials-2.21.0.jar"
    }
  },
  "pluginDependencies": {
    "PAPER": [
      {"name": "Vault", "required": true},
      {"name": "PlaceholderAPI", "required": false}
    ]
  }
}`

func TestHangarListVersions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/projects/essentialsx/versions", r.URL.Path)
		_, _ = io.WriteString(w, hangarVersionList)
	}))
	defer srv.Close()

	client := repo.NewHangarWithBaseURL(srv.URL)
	versions, err := client.ListVersions(context.Background(), "essentialsx")
	require.NoError(t, err)

	// Versions without a PAPER platform entry are dropped; newest first.
	require.Len(t, versions, 2)
	assert.Equal(t, "2.21.0", versions[0].ID)
	assert.Equal(t, "2.20.1", versions[1].ID)
	assert.Equal(t, []string{"1.21", "1.21.1"}, versions[0].GameVersions)
	assert.Equal(t, []domain.LoaderKind{domain.LoaderPaper}, versions[0].Loaders)
}

func TestHangarGetVersionMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/projects/essentialsx/versions/2.21.0", r.URL.Path)
		_, _ = io.WriteString(w, hangarVersion)
	}))
	defer srv.Close()

	client := repo.NewHangarWithBaseURL(srv.URL)
	meta, err := client.GetVersionMetadata(context.Background(), "essentialsx", "2.21.0")
	require.NoError(t, err)

	assert.Equal(t, "2.21.0", meta.ID)
	assert.Equal(t, "Essentials-2.21.0.jar", meta.Filename)
	assert.Equal(t, "https://hangarcdn.example/Essentials-2.21.0.jar", meta.URL)
	assert.Equal(t, domain.ChecksumSHA256, meta.Checksum.Algorithm)
	assert.Equal(t, "cafe01", meta.Checksum.Hex)

	require.Len(t, meta.Dependencies, 2)
	assert.Equal(t, "vault", meta.Dependencies[0].Project)
	assert.True(t, meta.Dependencies[0].Required)
	assert.False(t, meta.Dependencies[1].Required)
}

func TestHangarGetVersionMetadata_NoPaperDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{
  "name": "0.9.0",
  "createdAt": "2026-02-01T00:00:00Z",
  "platformDependencies": {"VELOCITY": ["3.3"]},
  "downloads": {"VELOCITY": {"fileInfo": {"name": "x.jar"}, "downloadUrl": "https://x"}},
  "pluginDependencies": {}
}`)
	}))
	defer srv.Close()

	client := repo.NewHangarWithBaseURL(srv.URL)
	_, err := client.GetVersionMetadata(context.Background(), "someproxy", "0.9.0")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrIncompatibleLoader))
}

func TestCurseForgeUnavailable(t *testing.T) {
	client := repo.NewCurseForge()

	_, err := client.ListVersions(context.Background(), "jei")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRepositoryUnavailable))

	_, err = client.GetVersionMetadata(context.Background(), "jei", "123")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRepositoryUnavailable))
}

func TestRegistryLookup(t *testing.T) {
	registry := repo.NewDefaultRegistry()

	client, err := registry.Client(domain.RepositoryModrinth)
	require.NoError(t, err)
	assert.Equal(t, domain.RepositoryModrinth, client.Repository())

	_, err = registry.Client(domain.Repository("spigotmc"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownRepository))
}
