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

// DefaultModrinthBaseURL is the production Modrinth v2 API.
const DefaultModrinthBaseURL = "https://api.modrinth.com/v2"

// Modrinth implements ports.RepositoryClient for the Modrinth repository.
type Modrinth struct {
	baseURL string
	http    *retryClient
}

// NewModrinth creates a Modrinth client against the production API.
func NewModrinth() *Modrinth {
	return NewModrinthWithBaseURL(DefaultModrinthBaseURL)
}

// NewModrinthWithBaseURL creates a Modrinth client against a custom endpoint
// (used for testing).
func NewModrinthWithBaseURL(baseURL string) *Modrinth {
	return &Modrinth{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    newRetryClient(),
	}
}

// Repository names the variant.
func (m *Modrinth) Repository() domain.Repository {
	return domain.RepositoryModrinth
}

type modrinthVersion struct {
	ID            string               `json:"id"`
	ProjectID     string               `json:"project_id"`
	GameVersions  []string             `json:"game_versions"`
	Loaders       []string             `json:"loaders"`
	DatePublished time.Time            `json:"date_published"`
	Files         []modrinthFile       `json:"files"`
	Dependencies  []modrinthDependency `json:"dependencies"`
}

type modrinthFile struct {
	URL      string         `json:"url"`
	Filename string         `json:"filename"`
	Primary  bool           `json:"primary"`
	Hashes   modrinthHashes `json:"hashes"`
}

type modrinthHashes struct {
	SHA512 string `json:"sha512"`
}

type modrinthDependency struct {
	ProjectID      string `json:"project_id"`
	VersionID      string `json:"version_id"`
	DependencyType string `json:"dependency_type"`
}

type modrinthProject struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
}

// ListVersions returns the project's versions, newest first.
func (m *Modrinth) ListVersions(ctx context.Context, project string) ([]ports.VersionSummary, error) {
	var versions []modrinthVersion
	url := m.baseURL + "/project/" + project + "/version"
	if err := m.http.getJSON(ctx, url, &versions); err != nil {
		return nil, withProject(err, domain.RepositoryModrinth, project)
	}

	summaries := make([]ports.VersionSummary, 0, len(versions))
	for _, v := range versions {
		summaries = append(summaries, ports.VersionSummary{
			ID:           v.ID,
			PublishedAt:  v.DatePublished,
			Loaders:      loaderKinds(v.Loaders),
			GameVersions: v.GameVersions,
		})
	}
	// The API serves newest-first already; keep the contract regardless.
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].PublishedAt.After(summaries[j].PublishedAt)
	})
	return summaries, nil
}

// GetVersionMetadata fetches one version and checks it belongs to the given
// project, accepting either the project id or its slug.
func (m *Modrinth) GetVersionMetadata(ctx context.Context, project, versionID string) (ports.VersionMetadata, error) {
	var v modrinthVersion
	if err := m.http.getJSON(ctx, m.baseURL+"/version/"+versionID, &v); err != nil {
		return ports.VersionMetadata{}, withProject(err, domain.RepositoryModrinth, project)
	}

	if v.ProjectID != project {
		var p modrinthProject
		if err := m.http.getJSON(ctx, m.baseURL+"/project/"+v.ProjectID, &p); err != nil {
			return ports.VersionMetadata{}, withProject(err, domain.RepositoryModrinth, project)
		}
		if p.Slug != project {
			err := zerr.With(domain.ErrNotFound, "version", versionID)
			err = zerr.With(err, "reason", "version does not belong to project")
			return ports.VersionMetadata{}, withProject(err, domain.RepositoryModrinth, project)
		}
	}

	file, ok := primaryJar(v.Files)
	if !ok {
		err := zerr.With(domain.ErrNotFound, "version", versionID)
		err = zerr.With(err, "reason", "version has no jar file")
		return ports.VersionMetadata{}, withProject(err, domain.RepositoryModrinth, project)
	}

	meta := ports.VersionMetadata{
		ID:           v.ID,
		Project:      project,
		Loaders:      loaderKinds(v.Loaders),
		GameVersions: v.GameVersions,
		Filename:     file.Filename,
		URL:          file.URL,
		Checksum:     domain.Checksum{Algorithm: domain.ChecksumSHA512, Hex: strings.ToLower(file.Hashes.SHA512)},
		PublishedAt:  v.DatePublished,
	}
	for _, d := range v.Dependencies {
		meta.Dependencies = append(meta.Dependencies, ports.DependencyRef{
			Project:  d.ProjectID,
			Version:  d.VersionID,
			Required: d.DependencyType == "required",
		})
	}
	return meta, nil
}

// Download opens the artifact byte stream.
func (m *Modrinth) Download(ctx context.Context, url string) (io.ReadCloser, error) {
	return m.http.get(ctx, url)
}

// primaryJar picks the primary file, falling back to the first jar.
func primaryJar(files []modrinthFile) (modrinthFile, bool) {
	for _, f := range files {
		if f.Primary {
			return f, true
		}
	}
	for _, f := range files {
		if strings.HasSuffix(f.Filename, ".jar") {
			return f, true
		}
	}
	return modrinthFile{}, false
}

// loaderKinds maps repository loader tags onto the known loader kinds,
// dropping tags mup does not model.
func loaderKinds(tags []string) []domain.LoaderKind {
	kinds := make([]domain.LoaderKind, 0, len(tags))
	for _, t := range tags {
		if k, err := domain.ParseLoaderKind(t); err == nil {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// withProject attaches the standard repository/project metadata carried by
// every repository error.
func withProject(err error, repo domain.Repository, project string) error {
	err = zerr.With(err, "repository", string(repo))
	return zerr.With(err, "project", project)
}
