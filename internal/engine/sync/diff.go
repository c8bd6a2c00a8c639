package sync

import "go.mup.dev/mup/internal/core/domain"

// Plan is the minimal set of changes turning the previous install state into
// the next one. Identity is (repository, project id, version id): a version
// change shows up as the old entry in Remove and the new one in Install.
type Plan struct {
	// Install are entries of the next lockfile with no identical counterpart
	// in the previous one.
	Install []domain.ResolvedArtifact

	// Keep are entries present with identical identity in both lockfiles.
	// They are verified during apply and reinstalled when the file on disk
	// diverged (supports recovery after an interrupted or uncommitted run).
	Keep []domain.ResolvedArtifact

	// Remove are previous entries absent from the next lockfile, including
	// the old halves of version updates.
	Remove []domain.ResolvedArtifact
}

// Empty reports whether the plan changes nothing.
func (p Plan) Empty() bool {
	return len(p.Install) == 0 && len(p.Remove) == 0
}

// Diff computes the plan between two lockfiles. Either side may be nil,
// meaning an empty artifact set.
func Diff(previous, next *domain.Lockfile) Plan {
	prevByIdentity := make(map[string]domain.ResolvedArtifact)
	if previous != nil {
		for _, a := range previous.Artifacts {
			prevByIdentity[a.Identity()] = a
		}
	}

	var plan Plan
	nextPaths := make(map[string]struct{})
	if next != nil {
		for _, a := range next.Artifacts {
			nextPaths[a.Path] = struct{}{}
			if _, same := prevByIdentity[a.Identity()]; same {
				plan.Keep = append(plan.Keep, a)
				delete(prevByIdentity, a.Identity())
			} else {
				plan.Install = append(plan.Install, a)
			}
		}
	}

	if previous != nil {
		for _, a := range previous.Artifacts {
			if _, kept := prevByIdentity[a.Identity()]; !kept {
				continue
			}
			// A file path claimed by the next lockfile is owned by it now;
			// the atomic install already replaced the content.
			if _, claimed := nextPaths[a.Path]; claimed {
				continue
			}
			plan.Remove = append(plan.Remove, a)
		}
	}
	return plan
}
