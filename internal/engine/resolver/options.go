package resolver

import "go.mup.dev/mup/internal/core/domain"

// defaultParallelism bounds concurrent outbound repository operations.
const defaultParallelism = 4

// Options steer one resolve invocation.
type Options struct {
	// Previous is the committed lockfile, used as an update-preference hint:
	// a "latest" requirement whose project already has a compatible pinned
	// selection keeps that selection instead of floating forward.
	Previous *domain.Lockfile

	// Refresh names project ids whose "latest" requirements should ignore the
	// previous selection and float to the newest compatible version.
	Refresh map[string]bool

	// RefreshAll ignores previous selections for every "latest" requirement.
	RefreshAll bool

	// Parallelism bounds concurrent repository operations. Zero means the
	// default.
	Parallelism int
}

// refreshes reports whether the project's previous selection should be
// ignored.
func (o Options) refreshes(project string) bool {
	return o.RefreshAll || o.Refresh[project]
}

func (o Options) parallelism() int {
	if o.Parallelism > 0 {
		return o.Parallelism
	}
	return defaultParallelism
}
