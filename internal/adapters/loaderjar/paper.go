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

// DefaultPaperBaseURL is the PaperMC builds API endpoint.
const DefaultPaperBaseURL = "https://api.papermc.io/v2/projects/paper"

type paperFetcher struct {
	client  *repo.HTTPClient
	logger  ports.Logger
	baseURL string
}

func newPaperFetcher(client *repo.HTTPClient, logger ports.Logger) *paperFetcher {
	return &paperFetcher{client: client, logger: logger, baseURL: DefaultPaperBaseURL}
}

type paperBuilds struct {
	Builds []paperBuild `json:"builds"`
}

type paperBuild struct {
	Build     int `json:"build"`
	Downloads struct {
		Application struct {
			Name   string `json:"name"`
			SHA256 string `json:"sha256"`
		} `json:"application"`
	} `json:"downloads"`
}

func (f *paperFetcher) fetch(ctx context.Context, minecraft, dir string) error {
	f.logger.Info("fetching latest paper build", "minecraft", minecraft)

	var builds paperBuilds
	if err := f.client.GetJSON(ctx, fmt.Sprintf("%s/versions/%s/builds", f.baseURL, minecraft), &builds); err != nil {
		return err
	}
	if len(builds.Builds) == 0 {
		return zerr.With(domain.ErrNotFound, "reason", "no paper builds for minecraft "+minecraft)
	}

	// Builds are listed oldest first; the last entry is the newest.
	build := builds.Builds[len(builds.Builds)-1]

	filename := build.Downloads.Application.Name
	if filename == "" {
		filename = fmt.Sprintf("paper-%s-%d.jar", minecraft, build.Build)
	}
	url := fmt.Sprintf("%s/versions/%s/builds/%d/downloads/%s", f.baseURL, minecraft, build.Build, filename)
	want := domain.Checksum{Algorithm: domain.ChecksumSHA256, Hex: strings.ToLower(build.Downloads.Application.SHA256)}

	f.logger.Info("downloading server jar", "filename", filename, "build", build.Build)
	return downloadJar(ctx, f.client, url, dir, filename, want)
}
