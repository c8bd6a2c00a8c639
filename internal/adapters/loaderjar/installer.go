// Package loaderjar fetches the server runtime jar matching a profile from
// the loader's distribution endpoints. Where the upstream API publishes a
// digest the download is verified against it before landing on disk.
package loaderjar

import (
	"context"

	"go.mup.dev/mup/internal/adapters/repo"
	"go.mup.dev/mup/internal/core/domain"
	"go.mup.dev/mup/internal/core/ports"
	"go.trai.ch/zerr"
)

// fetcher downloads the server jar for one loader into dir.
type fetcher interface {
	fetch(ctx context.Context, minecraft, dir string) error
}

// Installer dispatches to the per-loader fetchers.
type Installer struct {
	logger   ports.Logger
	fetchers map[domain.LoaderKind]fetcher
}

// New creates an Installer backed by the default distribution endpoints.
func New(client *repo.HTTPClient, logger ports.Logger) *Installer {
	return &Installer{
		logger: logger,
		fetchers: map[domain.LoaderKind]fetcher{
			domain.LoaderVanilla:  newVanillaFetcher(client, logger),
			domain.LoaderFabric:   newFabricFetcher(client, logger),
			domain.LoaderForge:    newForgeFetcher(client, logger),
			domain.LoaderNeoForge: newNeoForgeFetcher(client, logger),
			domain.LoaderPaper:    newPaperFetcher(client, logger),
		},
	}
}

// Install fetches the server jar for the profile's loader into dir.
func (i *Installer) Install(ctx context.Context, profile domain.ServerProfile, dir string) error {
	f, ok := i.fetchers[profile.Loader]
	if !ok {
		return zerr.With(domain.ErrUnknownLoader, "loader", string(profile.Loader))
	}

	i.logger.Info("installing server jar", "loader", string(profile.Loader), "minecraft", profile.Minecraft)
	if err := f.fetch(ctx, profile.Minecraft, dir); err != nil {
		return zerr.With(err, "loader", string(profile.Loader))
	}
	return nil
}
