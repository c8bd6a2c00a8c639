package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// ProjectKey identifies a project within one repository. It is the memo and
// uniqueness key used throughout resolution.
type ProjectKey struct {
	Repository Repository
	Project    string
}

func (k ProjectKey) String() string {
	return string(k.Repository) + ":" + k.Project
}

// ChecksumAlgorithm names a supported content hash algorithm.
type ChecksumAlgorithm string

const (
	// ChecksumSHA1 is used by the Mojang version manifest.
	ChecksumSHA1 ChecksumAlgorithm = "sha1"
	// ChecksumSHA256 is used by Hangar and the loader jar endpoints.
	ChecksumSHA256 ChecksumAlgorithm = "sha256"
	// ChecksumSHA512 is used by Modrinth.
	ChecksumSHA512 ChecksumAlgorithm = "sha512"
)

// Checksum is an algorithm-tagged content hash, serialized as
// "<algorithm>:<hex>".
type Checksum struct {
	Algorithm ChecksumAlgorithm
	Hex       string
}

// ParseChecksum parses the "<algorithm>:<hex>" form.
func ParseChecksum(s string) (Checksum, error) {
	algo, hexDigest, ok := strings.Cut(s, ":")
	if !ok || hexDigest == "" {
		return Checksum{}, zerr.With(ErrInvalidChecksum, "checksum", s)
	}
	switch ChecksumAlgorithm(algo) {
	case ChecksumSHA1, ChecksumSHA256, ChecksumSHA512:
	default:
		return Checksum{}, zerr.With(ErrInvalidChecksum, "algorithm", algo)
	}
	return Checksum{Algorithm: ChecksumAlgorithm(algo), Hex: strings.ToLower(hexDigest)}, nil
}

func (c Checksum) String() string {
	return string(c.Algorithm) + ":" + c.Hex
}

// IsZero reports whether the checksum is unset.
func (c Checksum) IsZero() bool {
	return c.Algorithm == "" && c.Hex == ""
}

// Origin records whether an artifact was requested directly or discovered as
// a transitive dependency.
type Origin string

const (
	// OriginDirect marks artifacts produced by a manifest requirement.
	OriginDirect Origin = "direct"
	// OriginTransitive marks artifacts discovered through dependency edges.
	OriginTransitive Origin = "transitive"
)

// ResolvedArtifact is one pinned, downloadable unit in a lockfile. Produced
// only by the resolver.
type ResolvedArtifact struct {
	Repository Repository `yaml:"repository"`
	Project    string     `yaml:"project_id"`
	Version    string     `yaml:"version_id"`
	Filename   string     `yaml:"filename"`
	Checksum   string     `yaml:"content_hash"`
	URL        string     `yaml:"download_url"`
	Path       string     `yaml:"path"`
	Origin     Origin     `yaml:"origin"`
	Source     string     `yaml:"source_requirement"`
}

// Key returns the artifact's project identity.
func (a ResolvedArtifact) Key() ProjectKey {
	return ProjectKey{Repository: a.Repository, Project: a.Project}
}

// Identity returns the full identity used by the synchronizer's diff:
// repository, project and version.
func (a ResolvedArtifact) Identity() string {
	return a.Key().String() + "@" + a.Version
}

// ContentHash parses the artifact's recorded checksum.
func (a ResolvedArtifact) ContentHash() (Checksum, error) {
	return ParseChecksum(a.Checksum)
}

// DependencyEdge is a directed relation from a resolved artifact to a project
// it requires, discovered transitively during resolution.
type DependencyEdge struct {
	FromRepository Repository `yaml:"from_repository"`
	FromProject    string     `yaml:"from_project"`
	ToProject      string     `yaml:"to_project"`
	Constraint     string     `yaml:"constraint"`
}

// From returns the edge's originating project identity.
func (e DependencyEdge) From() ProjectKey {
	return ProjectKey{Repository: e.FromRepository, Project: e.FromProject}
}

// To returns the edge's target project identity. Dependencies never cross
// repositories, so the target lives in the originating repository.
func (e DependencyEdge) To() ProjectKey {
	return ProjectKey{Repository: e.FromRepository, Project: e.ToProject}
}
