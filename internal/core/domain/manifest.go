package domain

import (
	"sort"

	"go.trai.ch/zerr"
)

// Manifest is the user-declared desired state: the server profile plus the
// set of direct requirements. It is authored through the CLI and persisted as
// mup.yaml.
type Manifest struct {
	Profile      ServerProfile
	Requirements []Requirement
}

// Validate checks the profile and every requirement, including requirement
// uniqueness by project identifier per repository.
func (m *Manifest) Validate() error {
	if err := m.Profile.Validate(); err != nil {
		return err
	}
	seen := make(map[ProjectKey]struct{}, len(m.Requirements))
	for _, r := range m.Requirements {
		if err := r.Validate(); err != nil {
			return err
		}
		if _, dup := seen[r.Key()]; dup {
			return zerr.With(ErrInvalidManifest, "duplicate_requirement", r.Key().String())
		}
		seen[r.Key()] = struct{}{}
	}
	return nil
}

// Requirement looks up a requirement by project id across repositories.
// Project ids are expected to be unambiguous across repositories in one
// manifest; the first match wins.
func (m *Manifest) Requirement(project string) (Requirement, bool) {
	for _, r := range m.Requirements {
		if r.Project == project {
			return r, true
		}
	}
	return Requirement{}, false
}

// Upsert adds the requirement, or replaces an existing one with the same
// project identity. It reports whether an existing requirement was replaced.
func (m *Manifest) Upsert(req Requirement) bool {
	for i, r := range m.Requirements {
		if r.Key() == req.Key() {
			m.Requirements[i] = req
			return true
		}
	}
	m.Requirements = append(m.Requirements, req)
	return false
}

// Remove drops the requirement with the given project id. It reports whether
// a requirement was removed.
func (m *Manifest) Remove(project string) bool {
	for i, r := range m.Requirements {
		if r.Project == project {
			m.Requirements = append(m.Requirements[:i], m.Requirements[i+1:]...)
			return true
		}
	}
	return false
}

// Canonicalize sorts requirements by (repository, project) for stable
// serialization and fingerprinting.
func (m *Manifest) Canonicalize() {
	sort.Slice(m.Requirements, func(i, j int) bool {
		a, b := m.Requirements[i], m.Requirements[j]
		if a.Repository != b.Repository {
			return a.Repository < b.Repository
		}
		return a.Project < b.Project
	})
}
