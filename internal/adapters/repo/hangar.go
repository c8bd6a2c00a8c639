package repo

import (
	"context"
	"io"
	"sort"
	"strings"
	"time"

	"go.mup.dev/mup/internal/core/domain"
	"go.mup.dev/mup/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultHangarBaseURL is the production Hangar v1 API.
const DefaultHangarBaseURL = "https://hangar.papermc.io/api/v1"

// hangarPlatform is the only platform mup targets on Hangar.
const hangarPlatform = "PAPER"

// Hangar implements ports.RepositoryClient for PaperMC's Hangar repository.
// Hangar's channel/platform model is flattened onto the uniform client shape:
// every version exposes the PAPER platform's compatibility list and download.
type Hangar struct {
	baseURL string
	http    *retryClient
}

// NewHangar creates a Hangar client against the production API.
func NewHangar() *Hangar {
	return NewHangarWithBaseURL(DefaultHangarBaseURL)
}

// NewHangarWithBaseURL creates a Hangar client against a custom endpoint
// (used for testing).
func NewHangarWithBaseURL(baseURL string) *Hangar {
	return &Hangar{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    newRetryClient(),
	}
}

// Repository names the variant.
func (h *Hangar) Repository() domain.Repository {
	return domain.RepositoryHangar
}

type hangarVersionList struct {
	Result []hangarVersion `json:"result"`
}

type hangarVersion struct {
	Name                 string                        `json:"name"`
	CreatedAt            time.Time                     `json:"createdAt"`
	Downloads            map[string]hangarDownload     `json:"downloads"`
	PluginDependencies   map[string][]hangarDependency `json:"pluginDependencies"`
	PlatformDependencies map[string][]string           `json:"platformDependencies"`
}

type hangarDownload struct {
	FileInfo    hangarFileInfo `json:"fileInfo"`
	DownloadURL string         `json:"downloadUrl"`
	ExternalURL string         `json:"externalUrl"`
}

type hangarFileInfo struct {
	Name   string `json:"name"`
	SHA256 string `json:"sha256Hash"`
}

type hangarDependency struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
}

// ListVersions returns the project's versions, newest first.
func (h *Hangar) ListVersions(ctx context.Context, project string) ([]ports.VersionSummary, error) {
	var list hangarVersionList
	url := h.baseURL + "/projects/" + project + "/versions"
	if err := h.http.getJSON(ctx, url, &list); err != nil {
		return nil, withProject(err, domain.RepositoryHangar, project)
	}

	summaries := make([]ports.VersionSummary, 0, len(list.Result))
	for _, v := range list.Result {
		if _, ok := v.PlatformDependencies[hangarPlatform]; !ok {
			continue
		}
		summaries = append(summaries, ports.VersionSummary{
			ID:           v.Name,
			PublishedAt:  v.CreatedAt,
			Loaders:      []domain.LoaderKind{domain.LoaderPaper},
			GameVersions: v.PlatformDependencies[hangarPlatform],
		})
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].PublishedAt.After(summaries[j].PublishedAt)
	})
	return summaries, nil
}

// GetVersionMetadata fetches the full metadata of one version.
func (h *Hangar) GetVersionMetadata(ctx context.Context, project, versionID string) (ports.VersionMetadata, error) {
	var v hangarVersion
	url := h.baseURL + "/projects/" + project + "/versions/" + versionID
	if err := h.http.getJSON(ctx, url, &v); err != nil {
		return ports.VersionMetadata{}, withProject(err, domain.RepositoryHangar, project)
	}

	download, ok := v.Downloads[hangarPlatform]
	if !ok {
		err := zerr.With(domain.ErrIncompatibleLoader, "version", versionID)
		err = zerr.With(err, "reason", "no paper download")
		return ports.VersionMetadata{}, withProject(err, domain.RepositoryHangar, project)
	}

	downloadURL := download.DownloadURL
	if downloadURL == "" {
		downloadURL = download.ExternalURL
	}
	filename := download.FileInfo.Name
	if filename == "" {
		filename = downloadURL[strings.LastIndexByte(downloadURL, '/')+1:]
	}

	meta := ports.VersionMetadata{
		ID:           v.Name,
		Project:      project,
		Loaders:      []domain.LoaderKind{domain.LoaderPaper},
		GameVersions: v.PlatformDependencies[hangarPlatform],
		Filename:     filename,
		URL:          downloadURL,
		Checksum:     domain.Checksum{Algorithm: domain.ChecksumSHA256, Hex: strings.ToLower(download.FileInfo.SHA256)},
		PublishedAt:  v.CreatedAt,
	}
	for _, d := range v.PluginDependencies[hangarPlatform] {
		meta.Dependencies = append(meta.Dependencies, ports.DependencyRef{
			Project:  strings.ToLower(d.Name),
			Required: d.Required,
		})
	}
	return meta, nil
}

// Download opens the artifact byte stream.
func (h *Hangar) Download(ctx context.Context, url string) (io.ReadCloser, error) {
	return h.http.get(ctx, url)
}
