package loaderjar

import (
	"context"
	"crypto/sha1" //nolint:gosec // Mojang publishes sha1 digests
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mup.dev/mup/internal/adapters/logger"
	"go.mup.dev/mup/internal/adapters/repo"
	"go.mup.dev/mup/internal/core/domain"
)

func testLogger() *logger.Logger {
	return logger.NewWithOutput(io.Discard)
}

func TestPaperFetcher(t *testing.T) {
	jar := []byte("paper server bytes")
	sum := sha256.Sum256(jar)

	mux := http.NewServeMux()
	mux.HandleFunc("/versions/1.21.1/builds", func(w http.ResponseWriter, _ *http.Request) {
		resp := map[string]any{
			"builds": []map[string]any{
				{"build": 100, "downloads": map[string]any{"application": map[string]any{"name": "paper-1.21.1-100.jar", "sha256": "00"}}},
				{"build": 131, "downloads": map[string]any{"application": map[string]any{"name": "paper-1.21.1-131.jar", "sha256": hex.EncodeToString(sum[:])}}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	})
	mux.HandleFunc("/versions/1.21.1/builds/131/downloads/paper-1.21.1-131.jar", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(jar)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	dir := t.TempDir()
	f := newPaperFetcher(repo.NewHTTPClient(), testLogger())
	f.baseURL = srv.URL

	require.NoError(t, f.fetch(context.Background(), "1.21.1", dir))

	data, err := os.ReadFile(filepath.Join(dir, "paper-1.21.1-131.jar"))
	require.NoError(t, err)
	assert.Equal(t, jar, data)
}

func TestPaperFetcher_ChecksumMismatch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/versions/1.21.1/builds", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"builds": [{"build": 7, "downloads": {"application": {"name": "paper-1.21.1-7.jar", "sha256": "deadbeef"}}}]}`)
	})
	mux.HandleFunc("/versions/1.21.1/builds/7/downloads/paper-1.21.1-7.jar", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "tampered bytes")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	dir := t.TempDir()
	f := newPaperFetcher(repo.NewHTTPClient(), testLogger())
	f.baseURL = srv.URL

	err := f.fetch(context.Background(), "1.21.1", dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrChecksumMismatch))

	// Nothing landed in the directory.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFabricFetcher(t *testing.T) {
	var jarServed bool
	mux := http.NewServeMux()
	mux.HandleFunc("/game", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[{"version": "1.21.1"}, {"version": "1.21"}]`)
	})
	mux.HandleFunc("/loader", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[{"version": "0.16.5"}, {"version": "0.16.4"}]`)
	})
	mux.HandleFunc("/installer", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[{"version": "1.0.1"}]`)
	})
	mux.HandleFunc("/loader/1.21.1/0.16.5/1.0.1/server/jar", func(w http.ResponseWriter, _ *http.Request) {
		jarServed = true
		_, _ = io.WriteString(w, "fabric launcher bytes")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	dir := t.TempDir()
	f := newFabricFetcher(repo.NewHTTPClient(), testLogger())
	f.baseURL = srv.URL

	require.NoError(t, f.fetch(context.Background(), "1.21.1", dir))
	assert.True(t, jarServed)

	data, err := os.ReadFile(filepath.Join(dir, "fabric-1.21.1.jar"))
	require.NoError(t, err)
	assert.Equal(t, "fabric launcher bytes", string(data))
}

func TestFabricFetcher_UnsupportedGameVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[{"version": "1.21.1"}]`)
	}))
	defer srv.Close()

	f := newFabricFetcher(repo.NewHTTPClient(), testLogger())
	f.baseURL = srv.URL

	err := f.fetch(context.Background(), "1.99", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestForgeFetcher_PrefersRecommended(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/promos", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"promos": {"1.21.1-latest": "52.0.9", "1.21.1-recommended": "52.0.2"}}`)
	})
	mux.HandleFunc("/maven/1.21.1-52.0.2/forge-1.21.1-52.0.2-installer.jar", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "forge installer bytes")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	dir := t.TempDir()
	f := newForgeFetcher(repo.NewHTTPClient(), testLogger())
	f.promosURL = srv.URL + "/promos"
	f.mavenURL = srv.URL + "/maven"

	require.NoError(t, f.fetch(context.Background(), "1.21.1", dir))

	_, err := os.Stat(filepath.Join(dir, "forge-1.21.1-52.0.2-installer.jar"))
	require.NoError(t, err)
}

func TestNeoForgeFetcher(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "21.1", r.URL.Query().Get("filter"))
		_, _ = io.WriteString(w, `{"version": "21.1.72"}`)
	})
	mux.HandleFunc("/maven/21.1.72/neoforge-21.1.72-installer.jar", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "neoforge installer bytes")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	dir := t.TempDir()
	f := newNeoForgeFetcher(repo.NewHTTPClient(), testLogger())
	f.apiURL = srv.URL + "/api"
	f.mavenURL = srv.URL + "/maven"

	require.NoError(t, f.fetch(context.Background(), "1.21.1", dir))

	_, err := os.Stat(filepath.Join(dir, "neoforge-21.1.72-installer.jar"))
	require.NoError(t, err)
}

func TestNeoForgeFetcher_PreCutoff(t *testing.T) {
	f := newNeoForgeFetcher(repo.NewHTTPClient(), testLogger())

	err := f.fetch(context.Background(), "1.19.2", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrIncompatibleLoader))
}

func sha1Of(data []byte) string {
	sum := sha1.Sum(data) //nolint:gosec // Mojang publishes sha1 digests
	return hex.EncodeToString(sum[:])
}

func TestVanillaFetcher(t *testing.T) {
	jar := []byte("vanilla server bytes")

	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/manifest", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprintf(w, `{"versions": [{"id": "1.21.1", "url": "%s/version/1.21.1"}, {"id": "1.21", "url": "%s/version/1.21"}]}`, srv.URL, srv.URL)
	})
	mux.HandleFunc("/version/1.21.1", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprintf(w, `{"downloads": {"server": {"url": "%s/server.jar", "sha1": "%s"}}}`, srv.URL, sha1Of(jar))
	})
	mux.HandleFunc("/server.jar", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(jar)
	})
	srv = httptest.NewServer(mux)
	defer srv.Close()

	dir := t.TempDir()
	f := newVanillaFetcher(repo.NewHTTPClient(), testLogger())
	f.manifestURL = srv.URL + "/manifest"

	require.NoError(t, f.fetch(context.Background(), "1.21.1", dir))

	data, err := os.ReadFile(filepath.Join(dir, "vanilla-1.21.1-server.jar"))
	require.NoError(t, err)
	assert.Equal(t, jar, data)
}

func TestInstaller_UnknownLoader(t *testing.T) {
	installer := New(repo.NewHTTPClient(), testLogger())

	err := installer.Install(context.Background(), domain.ServerProfile{Loader: "bukkit", Minecraft: "1.21.1"}, t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownLoader))
}
