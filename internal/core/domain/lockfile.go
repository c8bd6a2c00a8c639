package domain

import (
	"sort"

	"go.trai.ch/zerr"
)

// LockfileSchema is the current lockfile format version.
const LockfileSchema = 1

// Lockfile is the fully resolved, pinned, content-hashed artifact set for one
// server directory. It is the sole source of truth for what is installed, and
// is persisted only after a successful resolve+sync cycle.
type Lockfile struct {
	Schema      int                `yaml:"schema"`
	Profile     ServerProfile      `yaml:"server"`
	Fingerprint string             `yaml:"manifest_fingerprint"`
	Generation  uint64             `yaml:"generation"`
	Artifacts   []ResolvedArtifact `yaml:"entries"`
	Edges       []DependencyEdge   `yaml:"edges,omitempty"`
}

// NewLockfile returns an empty lockfile for the given profile.
func NewLockfile(profile ServerProfile) *Lockfile {
	return &Lockfile{
		Schema:  LockfileSchema,
		Profile: profile,
	}
}

// Artifact looks up the entry for a project, if present.
func (l *Lockfile) Artifact(key ProjectKey) (ResolvedArtifact, bool) {
	for _, a := range l.Artifacts {
		if a.Key() == key {
			return a, true
		}
	}
	return ResolvedArtifact{}, false
}

// Canonicalize sorts entries by (repository, project id) and edges by
// (from, to) so that serialized lockfiles are stable regardless of the order
// resolution happened to complete in.
func (l *Lockfile) Canonicalize() {
	sort.Slice(l.Artifacts, func(i, j int) bool {
		a, b := l.Artifacts[i], l.Artifacts[j]
		if a.Repository != b.Repository {
			return a.Repository < b.Repository
		}
		return a.Project < b.Project
	})
	sort.Slice(l.Edges, func(i, j int) bool {
		a, b := l.Edges[i], l.Edges[j]
		if a.From().String() != b.From().String() {
			return a.From().String() < b.From().String()
		}
		return a.ToProject < b.ToProject
	})
}

// Validate checks the lockfile's structural invariants: entries unique by
// project identity, no two entries targeting the same install path, no
// dangling dependency edges, and an acyclic dependency graph.
func (l *Lockfile) Validate() error {
	if l.Schema != LockfileSchema {
		return zerr.With(ErrInvalidLockfile, "schema", l.Schema)
	}

	byKey := make(map[ProjectKey]ResolvedArtifact, len(l.Artifacts))
	byPath := make(map[string]ProjectKey, len(l.Artifacts))
	for _, a := range l.Artifacts {
		key := a.Key()
		if _, dup := byKey[key]; dup {
			return zerr.With(ErrInvalidLockfile, "duplicate_entry", key.String())
		}
		byKey[key] = a

		if owner, taken := byPath[a.Path]; taken {
			err := zerr.With(ErrInvalidLockfile, "duplicate_path", a.Path)
			err = zerr.With(err, "entry", key.String())
			return zerr.With(err, "conflicting_entry", owner.String())
		}
		byPath[a.Path] = key

		if _, err := a.ContentHash(); err != nil {
			return zerr.With(err, "entry", key.String())
		}
	}

	adjacency := make(map[ProjectKey][]ProjectKey)
	for _, e := range l.Edges {
		if _, ok := byKey[e.From()]; !ok {
			return zerr.With(ErrInvalidLockfile, "dangling_edge_from", e.From().String())
		}
		if _, ok := byKey[e.To()]; !ok {
			err := zerr.With(ErrInvalidLockfile, "dangling_edge_to", e.To().String())
			return zerr.With(err, "from", e.From().String())
		}
		adjacency[e.From()] = append(adjacency[e.From()], e.To())
	}

	return checkAcyclic(byKey, adjacency)
}

// checkAcyclic runs a three-color depth-first search over the dependency
// edges. A back edge means a cycle, reported with the full cycle path.
func checkAcyclic(nodes map[ProjectKey]ResolvedArtifact, adjacency map[ProjectKey][]ProjectKey) error {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[ProjectKey]int, len(nodes))
	var path []ProjectKey

	var visit func(u ProjectKey) error
	visit = func(u ProjectKey) error {
		state[u] = visiting
		path = append(path, u)

		for _, v := range adjacency[u] {
			if state[v] == visiting {
				return cycleError(path, v)
			}
			if state[v] == unvisited {
				if err := visit(v); err != nil {
					return err
				}
			}
		}

		state[u] = done
		path = path[:len(path)-1]
		return nil
	}

	keys := make([]ProjectKey, 0, len(nodes))
	for k := range nodes {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

	for _, k := range keys {
		if state[k] == unvisited {
			if err := visit(k); err != nil {
				return err
			}
		}
	}
	return nil
}

// cycleError constructs a conflict error carrying the cycle path.
func cycleError(path []ProjectKey, repeated ProjectKey) error {
	start := 0
	for i, node := range path {
		if node == repeated {
			start = i
			break
		}
	}
	cyclePath := ""
	for _, node := range path[start:] {
		cyclePath += node.String() + " -> "
	}
	cyclePath += repeated.String()
	return zerr.With(ErrConflict, "cycle", cyclePath)
}
