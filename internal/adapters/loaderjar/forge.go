package loaderjar

import (
	"context"
	"fmt"

	"go.mup.dev/mup/internal/adapters/repo"
	"go.mup.dev/mup/internal/core/domain"
	"go.mup.dev/mup/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// DefaultForgePromosURL lists the promoted installer build per game
	// version.
	DefaultForgePromosURL = "https://files.minecraftforge.net/maven/net/minecraftforge/forge/promotions_slim.json"
	// DefaultForgeMavenURL hosts the installer jars.
	DefaultForgeMavenURL = "https://maven.minecraftforge.net/net/minecraftforge/forge"
)

type forgeFetcher struct {
	client    *repo.HTTPClient
	logger    ports.Logger
	promosURL string
	mavenURL  string
}

func newForgeFetcher(client *repo.HTTPClient, logger ports.Logger) *forgeFetcher {
	return &forgeFetcher{
		client:    client,
		logger:    logger,
		promosURL: DefaultForgePromosURL,
		mavenURL:  DefaultForgeMavenURL,
	}
}

type forgePromos struct {
	Promos map[string]string `json:"promos"`
}

// fetch downloads the promoted Forge installer jar for the game version.
// Forge servers are installed by running the installer manually; the jar is
// only fetched here. The recommended build wins over the latest one when
// both are promoted.
func (f *forgeFetcher) fetch(ctx context.Context, minecraft, dir string) error {
	f.logger.Info("fetching forge promotions", "minecraft", minecraft)

	var promos forgePromos
	if err := f.client.GetJSON(ctx, f.promosURL, &promos); err != nil {
		return err
	}

	installer, ok := promos.Promos[minecraft+"-recommended"]
	if !ok {
		installer, ok = promos.Promos[minecraft+"-latest"]
	}
	if !ok {
		return zerr.With(domain.ErrNotFound, "reason", "no forge installer promoted for minecraft "+minecraft)
	}

	tag := fmt.Sprintf("%s-%s", minecraft, installer)
	url := fmt.Sprintf("%s/%s/forge-%s-installer.jar", f.mavenURL, tag, tag)
	filename := fmt.Sprintf("forge-%s-installer.jar", tag)

	f.logger.Info("downloading installer jar", "filename", filename)
	if err := downloadJar(ctx, f.client, url, dir, filename, domain.Checksum{}); err != nil {
		return err
	}

	f.logger.Warn("forge servers must be installed by running the downloaded installer jar")
	return nil
}
