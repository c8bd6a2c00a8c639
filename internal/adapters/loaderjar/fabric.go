package loaderjar

import (
	"context"
	"fmt"

	"go.mup.dev/mup/internal/adapters/repo"
	"go.mup.dev/mup/internal/core/domain"
	"go.mup.dev/mup/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultFabricBaseURL is the Fabric meta API endpoint.
const DefaultFabricBaseURL = "https://meta.fabricmc.net/v2/versions"

type fabricFetcher struct {
	client  *repo.HTTPClient
	logger  ports.Logger
	baseURL string
}

func newFabricFetcher(client *repo.HTTPClient, logger ports.Logger) *fabricFetcher {
	return &fabricFetcher{client: client, logger: logger, baseURL: DefaultFabricBaseURL}
}

type fabricVersion struct {
	Version string `json:"version"`
}

// fetch resolves the newest loader and installer for the game version, then
// downloads the launcher jar baked by the meta service. Fabric does not
// publish digests for these jars.
func (f *fabricFetcher) fetch(ctx context.Context, minecraft, dir string) error {
	if err := f.checkGameVersion(ctx, minecraft); err != nil {
		return err
	}

	loader, err := f.latest(ctx, "loader")
	if err != nil {
		return err
	}
	installer, err := f.latest(ctx, "installer")
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/loader/%s/%s/%s/server/jar", f.baseURL, minecraft, loader, installer)
	filename := fmt.Sprintf("fabric-%s.jar", minecraft)

	f.logger.Info("downloading server jar", "filename", filename, "fabric_loader", loader)
	return downloadJar(ctx, f.client, url, dir, filename, domain.Checksum{})
}

func (f *fabricFetcher) checkGameVersion(ctx context.Context, minecraft string) error {
	var versions []fabricVersion
	if err := f.client.GetJSON(ctx, f.baseURL+"/game", &versions); err != nil {
		return err
	}
	for _, v := range versions {
		if v.Version == minecraft {
			return nil
		}
	}
	return zerr.With(domain.ErrNotFound, "reason", "fabric does not support minecraft "+minecraft)
}

func (f *fabricFetcher) latest(ctx context.Context, kind string) (string, error) {
	var versions []fabricVersion
	if err := f.client.GetJSON(ctx, f.baseURL+"/"+kind, &versions); err != nil {
		return "", err
	}
	if len(versions) == 0 {
		return "", zerr.With(domain.ErrNotFound, "reason", "no fabric "+kind+" versions published")
	}
	return versions[0].Version, nil
}
