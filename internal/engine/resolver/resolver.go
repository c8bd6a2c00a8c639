// Package resolver turns a manifest into a fully pinned, dependency-complete
// lockfile.
//
// Resolution is a breadth-first worklist: each wave fetches candidate
// versions for every pending requirement concurrently under a bounded worker
// pool, then a single coordinating goroutine applies selections to the memo
// table, performs conflict checks and enqueues the next wave. Workers never
// touch the bookkeeping, which keeps the selection deterministic and
// independent of network response arrival order.
package resolver

import (
	"context"
	"path/filepath"
	"sort"

	"go.mup.dev/mup/internal/core/domain"
	"go.mup.dev/mup/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Resolver computes lockfiles from manifests and remote repository metadata.
type Resolver struct {
	registry ports.RepositoryRegistry
	logger   ports.Logger
	tracer   ports.Tracer

	// listGroup deduplicates concurrent version listings per project.
	listGroup singleflight.Group
}

// New creates a Resolver.
func New(registry ports.RepositoryRegistry, logger ports.Logger, tracer ports.Tracer) *Resolver {
	return &Resolver{
		registry: registry,
		logger:   logger,
		tracer:   tracer,
	}
}

// selection is one memoized resolution result.
type selection struct {
	meta   ports.VersionMetadata
	source domain.Requirement
	origin domain.Origin
}

// workItem is one pending requirement, carrying the edge that discovered it.
type workItem struct {
	req    domain.Requirement
	origin domain.Origin
}

// Resolve produces a new lockfile for the manifest, or a conflict/not-found
// error naming the offending requirements. It never mutates opts.Previous.
func (r *Resolver) Resolve(ctx context.Context, manifest *domain.Manifest, opts Options) (*domain.Lockfile, error) {
	if err := manifest.Validate(); err != nil {
		return nil, err
	}

	memo := make(map[domain.ProjectKey]selection)
	edgeSet := make(map[domain.DependencyEdge]struct{})

	wave := make([]workItem, 0, len(manifest.Requirements))
	for _, req := range manifest.Requirements {
		wave = append(wave, workItem{req: req, origin: domain.OriginDirect})
	}

	for len(wave) > 0 {
		next, err := r.resolveWave(ctx, manifest.Profile, wave, memo, edgeSet, opts)
		if err != nil {
			if ctx.Err() != nil {
				return nil, zerr.Wrap(ctx.Err(), domain.ErrCancelled.Error())
			}
			return nil, err
		}
		wave = next
	}

	lf := r.buildLockfile(manifest, memo, edgeSet, opts.Previous)
	if err := lf.Validate(); err != nil {
		return nil, err
	}
	return lf, nil
}

// resolveWave fetches selections for one wave concurrently, then applies them
// sequentially and returns the next wave.
func (r *Resolver) resolveWave(
	ctx context.Context,
	profile domain.ServerProfile,
	wave []workItem,
	memo map[domain.ProjectKey]selection,
	edgeSet map[domain.DependencyEdge]struct{},
	opts Options,
) ([]workItem, error) {
	pending, err := dedupeWave(wave, memo)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return nil, nil
	}

	// Fetch phase: bounded parallel repository operations, results written
	// only to the per-item slot.
	results := make([]ports.VersionMetadata, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.parallelism())
	for i, item := range pending {
		g.Go(func() error {
			meta, err := r.resolveOne(gctx, profile, item.req, opts)
			if err != nil {
				return err
			}
			results[i] = meta
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Apply phase: single writer over memo/edges, in deterministic order
	// (pending is sorted by project key).
	var next []workItem
	for i, item := range pending {
		meta := results[i]
		key := item.req.Key()
		memo[key] = selection{meta: meta, source: item.req, origin: item.origin}
		r.logger.Info("resolved", "project", key.String(), "version", meta.ID)

		for _, dep := range meta.Dependencies {
			if !dep.Required {
				continue
			}
			depReq := domain.Requirement{
				Repository: key.Repository,
				Project:    dep.Project,
				Version:    dep.Version,
			}
			if depReq.Version == "" {
				depReq.Version = domain.VersionLatest
			}
			edge := domain.DependencyEdge{
				FromRepository: key.Repository,
				FromProject:    key.Project,
				ToProject:      dep.Project,
				Constraint:     depReq.Constraint(),
			}
			edgeSet[edge] = struct{}{}
			next = append(next, workItem{req: depReq, origin: domain.OriginTransitive})
		}
	}
	return next, nil
}

// dedupeWave folds the wave against the memo table and against itself,
// surfacing conflicts between exact pins. The returned slice is sorted by
// project key so every later step is deterministic.
func dedupeWave(wave []workItem, memo map[domain.ProjectKey]selection) ([]workItem, error) {
	sort.SliceStable(wave, func(i, j int) bool {
		a, b := wave[i].req, wave[j].req
		if a.Key() != b.Key() {
			return a.Key().String() < b.Key().String()
		}
		// Within a key, pinned requirements come first so they win the slot.
		return a.Pinned() && !b.Pinned()
	})

	byKey := make(map[domain.ProjectKey]workItem)
	var order []domain.ProjectKey
	for _, item := range wave {
		key := item.req.Key()

		// Already resolved earlier: reuse for "latest", conflict on a
		// disagreeing exact pin.
		if prev, done := memo[key]; done {
			if item.req.Pinned() && item.req.Version != prev.meta.ID {
				return nil, conflictError(key, prev.source, item.req, prev.meta.ID)
			}
			continue
		}

		first, seen := byKey[key]
		if !seen {
			byKey[key] = item
			order = append(order, key)
			continue
		}
		// Two pins in the same wave must agree; a pin beats "latest".
		if item.req.Pinned() && first.req.Pinned() && item.req.Version != first.req.Version {
			return nil, conflictError(key, first.req, item.req, first.req.Version)
		}
		// Direct origin wins over transitive for bookkeeping purposes.
		if first.origin == domain.OriginTransitive && item.origin == domain.OriginDirect && !first.req.Pinned() {
			byKey[key] = item
		}
	}

	pending := make([]workItem, 0, len(order))
	for _, key := range order {
		pending = append(pending, byKey[key])
	}
	return pending, nil
}

// conflictError reports two requirements imposing incompatible selections.
func conflictError(key domain.ProjectKey, first, second domain.Requirement, chosen string) error {
	err := zerr.With(domain.ErrConflict, "project", key.String())
	err = zerr.With(err, "first_requirement", first.Constraint())
	err = zerr.With(err, "second_requirement", second.Constraint())
	return zerr.With(err, "selected_version", chosen)
}

// resolveOne picks the version satisfying one requirement.
func (r *Resolver) resolveOne(
	ctx context.Context,
	profile domain.ServerProfile,
	req domain.Requirement,
	opts Options,
) (meta ports.VersionMetadata, err error) {
	_, span := r.tracer.Start(ctx, "resolve "+req.Constraint())
	defer func() { span.Complete(err) }()

	client, err := r.registry.Client(req.Repository)
	if err != nil {
		return ports.VersionMetadata{}, err
	}

	if req.Pinned() {
		return r.resolvePinned(ctx, client, profile, req)
	}
	return r.resolveLatest(ctx, client, profile, req, opts)
}

// resolvePinned fetches an exact version id. The id must exist and must be
// compatible; it is never silently substituted.
func (r *Resolver) resolvePinned(
	ctx context.Context,
	client ports.RepositoryClient,
	profile domain.ServerProfile,
	req domain.Requirement,
) (ports.VersionMetadata, error) {
	meta, err := client.GetVersionMetadata(ctx, req.Project, req.Version)
	if err != nil {
		return ports.VersionMetadata{}, zerr.With(err, "requirement", req.Constraint())
	}
	if !meta.Summary().Compatible(profile) {
		err := zerr.With(domain.ErrIncompatibleLoader, "requirement", req.Constraint())
		err = zerr.With(err, "loader", string(profile.Loader))
		return ports.VersionMetadata{}, zerr.With(err, "minecraft_version", profile.Minecraft)
	}
	return meta, nil
}

// resolveLatest selects the newest compatible version, preferring the
// previous lockfile's still-compatible selection unless a refresh was
// requested.
func (r *Resolver) resolveLatest(
	ctx context.Context,
	client ports.RepositoryClient,
	profile domain.ServerProfile,
	req domain.Requirement,
	opts Options,
) (ports.VersionMetadata, error) {
	key := req.Key()

	if opts.Previous != nil && !opts.refreshes(req.Project) {
		if prev, ok := opts.Previous.Artifact(key); ok {
			meta, err := client.GetVersionMetadata(ctx, req.Project, prev.Version)
			if err == nil && meta.Summary().Compatible(profile) {
				return meta, nil
			}
			// The previous selection is gone or incompatible; fall through to
			// a fresh selection.
		}
	}

	summaries, err := r.listVersions(ctx, client, req.Project)
	if err != nil {
		return ports.VersionMetadata{}, zerr.With(err, "requirement", req.Constraint())
	}

	candidates := make([]ports.VersionSummary, 0, len(summaries))
	for _, s := range summaries {
		if s.Compatible(profile) {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		reason := "project has no versions"
		if len(summaries) > 0 {
			reason = "no version is compatible with the server profile"
		}
		nf := zerr.With(domain.ErrNotFound, "requirement", req.Constraint())
		nf = zerr.With(nf, "reason", reason)
		nf = zerr.With(nf, "loader", string(profile.Loader))
		return ports.VersionMetadata{}, zerr.With(nf, "minecraft_version", profile.Minecraft)
	}

	chosen := pickNewest(candidates)
	meta, err := client.GetVersionMetadata(ctx, req.Project, chosen.ID)
	if err != nil {
		return ports.VersionMetadata{}, zerr.With(err, "requirement", req.Constraint())
	}
	return meta, nil
}

// listVersions wraps ListVersions in singleflight so concurrent workers
// asking for the same project share one request.
func (r *Resolver) listVersions(ctx context.Context, client ports.RepositoryClient, project string) ([]ports.VersionSummary, error) {
	sfKey := string(client.Repository()) + ":" + project
	v, err, _ := r.listGroup.Do(sfKey, func() (any, error) {
		return client.ListVersions(ctx, project)
	})
	if err != nil {
		return nil, err
	}
	summaries, _ := v.([]ports.VersionSummary)
	return summaries, nil
}

// pickNewest selects the newest candidate by publish time, breaking ties by
// lexicographically greatest version id for determinism.
func pickNewest(candidates []ports.VersionSummary) ports.VersionSummary {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.PublishedAt.After(best.PublishedAt) {
			best = c
			continue
		}
		if c.PublishedAt.Equal(best.PublishedAt) && c.ID > best.ID {
			best = c
		}
	}
	return best
}

// buildLockfile assembles the final lockfile from the memo table and edge
// set. Entry order is canonicalized, so it is independent of resolution
// order.
func (r *Resolver) buildLockfile(
	manifest *domain.Manifest,
	memo map[domain.ProjectKey]selection,
	edgeSet map[domain.DependencyEdge]struct{},
	previous *domain.Lockfile,
) *domain.Lockfile {
	lf := domain.NewLockfile(manifest.Profile)
	lf.Fingerprint = manifest.Fingerprint()
	lf.Generation = 1
	if previous != nil {
		lf.Generation = previous.Generation + 1
	}

	for key, sel := range memo {
		lf.Artifacts = append(lf.Artifacts, domain.ResolvedArtifact{
			Repository: key.Repository,
			Project:    key.Project,
			Version:    sel.meta.ID,
			Filename:   sel.meta.Filename,
			Checksum:   sel.meta.Checksum.String(),
			URL:        sel.meta.URL,
			Path:       filepath.Join(manifest.Profile.InstallDir(), sel.meta.Filename),
			Origin:     sel.origin,
			Source:     sel.source.Constraint(),
		})
	}
	for edge := range edgeSet {
		lf.Edges = append(lf.Edges, edge)
	}

	lf.Canonicalize()
	return lf
}
