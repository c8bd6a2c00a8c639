package loaderjar

import (
	"context"
	"fmt"
	"strings"

	"go.mup.dev/mup/internal/adapters/repo"
	"go.mup.dev/mup/internal/core/domain"
	"go.mup.dev/mup/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultVanillaManifestURL is the Mojang launcher version manifest.
const DefaultVanillaManifestURL = "https://launchermeta.mojang.com/mc/game/version_manifest.json"

type vanillaFetcher struct {
	client      *repo.HTTPClient
	logger      ports.Logger
	manifestURL string
}

func newVanillaFetcher(client *repo.HTTPClient, logger ports.Logger) *vanillaFetcher {
	return &vanillaFetcher{client: client, logger: logger, manifestURL: DefaultVanillaManifestURL}
}

type vanillaManifest struct {
	Versions []vanillaManifestVersion `json:"versions"`
}

type vanillaManifestVersion struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type vanillaVersionData struct {
	Downloads struct {
		Server struct {
			URL  string `json:"url"`
			SHA1 string `json:"sha1"`
		} `json:"server"`
	} `json:"downloads"`
}

// fetch walks the two-step Mojang manifest and downloads the server jar,
// verified against the published sha1.
func (f *vanillaFetcher) fetch(ctx context.Context, minecraft, dir string) error {
	var manifest vanillaManifest
	if err := f.client.GetJSON(ctx, f.manifestURL, &manifest); err != nil {
		return err
	}

	var versionURL string
	for _, v := range manifest.Versions {
		if v.ID == minecraft {
			versionURL = v.URL
			break
		}
	}
	if versionURL == "" {
		return zerr.With(domain.ErrNotFound, "reason", "minecraft version "+minecraft+" not in the mojang manifest")
	}

	var data vanillaVersionData
	if err := f.client.GetJSON(ctx, versionURL, &data); err != nil {
		return err
	}
	if data.Downloads.Server.URL == "" {
		return zerr.With(domain.ErrNotFound, "reason", "no server distribution for minecraft "+minecraft)
	}

	filename := fmt.Sprintf("vanilla-%s-server.jar", minecraft)
	want := domain.Checksum{Algorithm: domain.ChecksumSHA1, Hex: strings.ToLower(data.Downloads.Server.SHA1)}

	f.logger.Info("downloading server jar", "filename", filename, "url", data.Downloads.Server.URL)
	return downloadJar(ctx, f.client, data.Downloads.Server.URL, dir, filename, want)
}
