package domain

import "go.trai.ch/zerr"

// Repository identifies a plugin/mod repository variant.
type Repository string

const (
	// RepositoryModrinth is the Modrinth mod repository.
	RepositoryModrinth Repository = "modrinth"
	// RepositoryHangar is PaperMC's Hangar plugin repository.
	RepositoryHangar Repository = "hangar"
	// RepositoryCurseForge is the CurseForge repository. Not implemented
	// yet; selecting it yields ErrRepositoryUnavailable.
	RepositoryCurseForge Repository = "curseforge"
)

// Repositories lists every known repository variant.
var Repositories = []Repository{RepositoryModrinth, RepositoryHangar, RepositoryCurseForge}

// ParseRepository validates a user-supplied repository name.
func ParseRepository(name string) (Repository, error) {
	for _, r := range Repositories {
		if string(r) == name {
			return r, nil
		}
	}
	return "", zerr.With(ErrUnknownRepository, "repository", name)
}

// VersionLatest is the version constraint meaning "newest version compatible
// with the server profile".
const VersionLatest = "latest"

// Requirement is a user's request for one project, with a version constraint.
// Requirements are unique by project identifier per repository.
type Requirement struct {
	Repository Repository `yaml:"repository"`
	Project    string     `yaml:"project"`
	Version    string     `yaml:"version"`
}

// Key returns the identity of the requirement's target project.
func (r Requirement) Key() ProjectKey {
	return ProjectKey{Repository: r.Repository, Project: r.Project}
}

// Pinned reports whether the requirement names an exact version id rather
// than the floating "latest" constraint.
func (r Requirement) Pinned() bool {
	return r.Version != "" && r.Version != VersionLatest
}

// Constraint renders the requirement as the canonical constraint string
// recorded in lockfile entries, e.g. "modrinth:ferrite-core@latest".
func (r Requirement) Constraint() string {
	v := r.Version
	if v == "" {
		v = VersionLatest
	}
	return string(r.Repository) + ":" + r.Project + "@" + v
}

// Validate checks the requirement's repository and project fields.
func (r Requirement) Validate() error {
	if _, err := ParseRepository(string(r.Repository)); err != nil {
		return err
	}
	if r.Project == "" {
		return zerr.With(ErrInvalidManifest, "reason", "requirement has empty project id")
	}
	return nil
}
