package loaderjar

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"go.mup.dev/mup/internal/adapters/repo"
	"go.mup.dev/mup/internal/core/domain"
	"go.mup.dev/mup/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// DefaultNeoForgeAPIURL resolves the latest release, optionally filtered
	// by a game version prefix.
	DefaultNeoForgeAPIURL = "https://maven.neoforged.net/api/maven/latest/version/releases/net/neoforged/neoforge"
	// DefaultNeoForgeMavenURL hosts the installer jars.
	DefaultNeoForgeMavenURL = "https://maven.neoforged.net/releases/net/neoforged/neoforge"
)

// neoForgeCutoff is the first game version NeoForge ships for.
var neoForgeCutoff = semver.MustParse("1.20.2")

type neoForgeFetcher struct {
	client   *repo.HTTPClient
	logger   ports.Logger
	apiURL   string
	mavenURL string
}

func newNeoForgeFetcher(client *repo.HTTPClient, logger ports.Logger) *neoForgeFetcher {
	return &neoForgeFetcher{
		client:   client,
		logger:   logger,
		apiURL:   DefaultNeoForgeAPIURL,
		mavenURL: DefaultNeoForgeMavenURL,
	}
}

type neoForgeInstaller struct {
	Version string `json:"version"`
}

// fetch downloads the newest NeoForge installer jar for the game version.
// NeoForge versions track the game version without the leading major, so
// minecraft 1.21.1 maps to installer versions prefixed 21.1.
func (f *neoForgeFetcher) fetch(ctx context.Context, minecraft, dir string) error {
	version, err := semver.NewVersion(minecraft)
	if err != nil {
		return zerr.With(domain.ErrInvalidMinecraftVersion, "minecraft", minecraft)
	}
	if version.LessThan(neoForgeCutoff) {
		err := zerr.With(domain.ErrIncompatibleLoader, "reason", "use forge for minecraft versions before 1.20.2")
		return zerr.With(err, "minecraft", minecraft)
	}

	endpoint := fmt.Sprintf("%s?filter=%d.%d", f.apiURL, version.Minor(), version.Patch())
	f.logger.Info("fetching latest installer version", "minecraft", minecraft)

	var installer neoForgeInstaller
	if err := f.client.GetJSON(ctx, endpoint, &installer); err != nil {
		return err
	}
	if installer.Version == "" {
		return zerr.With(domain.ErrNotFound, "reason", "no neoforge installer for minecraft "+minecraft)
	}

	url := fmt.Sprintf("%s/%s/neoforge-%s-installer.jar", f.mavenURL, installer.Version, installer.Version)
	filename := fmt.Sprintf("neoforge-%s-installer.jar", installer.Version)

	f.logger.Info("downloading installer jar", "filename", filename)
	if err := downloadJar(ctx, f.client, url, dir, filename, domain.Checksum{}); err != nil {
		return err
	}

	f.logger.Warn("neoforge servers must be installed by running the downloaded installer jar")
	return nil
}
