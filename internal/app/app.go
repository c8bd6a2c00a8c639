// Package app implements the application layer for mup: each method is one
// user-facing operation over the manifest, the resolver, the synchronizer
// and the lockfile store.
package app

import (
	"context"

	mupfs "go.mup.dev/mup/internal/adapters/fs"
	"go.mup.dev/mup/internal/core/domain"
	"go.mup.dev/mup/internal/core/ports"
	"go.mup.dev/mup/internal/engine/resolver"
	"go.mup.dev/mup/internal/engine/sync"
	"go.trai.ch/zerr"
)

// App wires the stores and engines into the operations the CLI exposes.
type App struct {
	dir       string
	manifests ports.ManifestStore
	lockfiles ports.LockfileStore
	resolver  *resolver.Resolver
	syncer    *sync.Syncer
	jars      ports.ServerJarInstaller
	logger    ports.Logger
	tracer    ports.Tracer
}

// New creates an App operating on the current working directory.
func New(
	manifests ports.ManifestStore,
	lockfiles ports.LockfileStore,
	res *resolver.Resolver,
	syncer *sync.Syncer,
	jars ports.ServerJarInstaller,
	logger ports.Logger,
	tracer ports.Tracer,
) *App {
	return &App{
		dir:       ".",
		manifests: manifests,
		lockfiles: lockfiles,
		resolver:  res,
		syncer:    syncer,
		jars:      jars,
		logger:    logger,
		tracer:    tracer,
	}
}

// SetDir points the App at another server directory. Used for testing.
func (a *App) SetDir(dir string) {
	a.dir = dir
}

// Init creates the manifest for a fresh server directory, fetches the server
// jar and signs the eula.
func (a *App) Init(ctx context.Context, loaderName, minecraft string) error {
	loader, err := domain.ParseLoaderKind(loaderName)
	if err != nil {
		return err
	}
	profile := domain.ServerProfile{Loader: loader, Minecraft: minecraft}
	if err := profile.Validate(); err != nil {
		return err
	}

	lock, err := mupfs.AcquireDirLock(a.dir)
	if err != nil {
		return err
	}
	defer lock.Release() //nolint:errcheck // Best effort release in defer

	existing, err := a.manifests.Load()
	if err != nil {
		return err
	}
	if existing != nil {
		return zerr.With(domain.ErrAlreadyInitialized, "dir", a.dir)
	}

	manifest := &domain.Manifest{Profile: profile}
	if err := a.manifests.Save(manifest); err != nil {
		return err
	}

	if err := a.jars.Install(ctx, profile, a.dir); err != nil {
		return err
	}
	if err := a.Sign(); err != nil {
		return err
	}

	a.logger.Info("initialized server", "loader", loaderName, "minecraft", minecraft)
	return nil
}

// Add upserts a plugin requirement, re-resolves and syncs. The manifest is
// only saved after the new state is fully installed and committed.
func (a *App) Add(ctx context.Context, repositoryName, project, version string) error {
	repository, err := domain.ParseRepository(repositoryName)
	if err != nil {
		return err
	}
	if version == "" {
		version = domain.VersionLatest
	}
	req := domain.Requirement{Repository: repository, Project: project, Version: version}
	if err := req.Validate(); err != nil {
		return err
	}

	lock, err := mupfs.AcquireDirLock(a.dir)
	if err != nil {
		return err
	}
	defer lock.Release() //nolint:errcheck // Best effort release in defer

	manifest, err := a.loadManifest()
	if err != nil {
		return err
	}
	manifest.Upsert(req)

	if err := a.reconcile(ctx, manifest, resolver.Options{}, sync.ApplyOptions{}); err != nil {
		return err
	}
	return a.manifests.Save(manifest)
}

// Remove drops a plugin requirement, re-resolves and syncs. Files owned only
// by the removed subtree are pruned unless keepJar is set.
func (a *App) Remove(ctx context.Context, project string, keepJar bool) error {
	lock, err := mupfs.AcquireDirLock(a.dir)
	if err != nil {
		return err
	}
	defer lock.Release() //nolint:errcheck // Best effort release in defer

	manifest, err := a.loadManifest()
	if err != nil {
		return err
	}
	if !manifest.Remove(project) {
		return zerr.With(domain.ErrNotFound, "reason", "plugin "+project+" is not declared in the manifest")
	}

	if err := a.reconcile(ctx, manifest, resolver.Options{}, sync.ApplyOptions{SkipRemovals: keepJar}); err != nil {
		return err
	}
	return a.manifests.Save(manifest)
}

// Update re-resolves requirements toward the newest compatible versions.
// With an empty project every non-pinned requirement floats forward;
// otherwise only the named one does. Pinned requirements stay pinned.
func (a *App) Update(ctx context.Context, project string) error {
	lock, err := mupfs.AcquireDirLock(a.dir)
	if err != nil {
		return err
	}
	defer lock.Release() //nolint:errcheck // Best effort release in defer

	manifest, err := a.loadManifest()
	if err != nil {
		return err
	}

	opts := resolver.Options{RefreshAll: project == ""}
	if project != "" {
		if _, ok := manifest.Requirement(project); !ok {
			return zerr.With(domain.ErrNotFound, "reason", "plugin "+project+" is not declared in the manifest")
		}
		opts.Refresh = map[string]bool{project: true}
	}

	return a.reconcile(ctx, manifest, opts, sync.ApplyOptions{})
}

// Install reconciles the directory against the committed lockfile, fetching
// the server jar when asked. When the manifest changed since the last commit
// the lockfile is re-derived first.
func (a *App) Install(ctx context.Context, withServerJar bool) error {
	lock, err := mupfs.AcquireDirLock(a.dir)
	if err != nil {
		return err
	}
	defer lock.Release() //nolint:errcheck // Best effort release in defer

	manifest, err := a.loadManifest()
	if err != nil {
		return err
	}

	if withServerJar {
		if err := a.jars.Install(ctx, manifest.Profile, a.dir); err != nil {
			return err
		}
	}

	previous, err := a.lockfiles.Load()
	if err != nil {
		return err
	}
	if previous != nil && previous.Fingerprint == manifest.Fingerprint() {
		// Manifest unchanged: verify the directory against the committed
		// lockfile without touching the network for metadata.
		return a.syncer.Apply(ctx, previous, previous, a.dir, sync.ApplyOptions{})
	}

	return a.reconcile(ctx, manifest, resolver.Options{}, sync.ApplyOptions{})
}

// Sign writes eula.txt accepting the Minecraft EULA.
func (a *App) Sign() error {
	a.logger.Info("signing eula.txt")
	return signEula(a.dir)
}

func (a *App) loadManifest() (*domain.Manifest, error) {
	manifest, err := a.manifests.Load()
	if err != nil {
		return nil, err
	}
	if manifest == nil {
		return nil, zerr.With(domain.ErrNotInitialized, "dir", a.dir)
	}
	return manifest, nil
}

// reconcile runs resolve, apply, commit in that order. The lockfile is only
// committed after every artifact is installed and verified, so a failure at
// any step leaves the previous lockfile authoritative.
func (a *App) reconcile(ctx context.Context, manifest *domain.Manifest, ropts resolver.Options, sopts sync.ApplyOptions) error {
	previous, err := a.lockfiles.Load()
	if err != nil {
		return err
	}
	ropts.Previous = previous

	next, err := a.resolver.Resolve(ctx, manifest, ropts)
	if err != nil {
		return err
	}

	if err := a.syncer.Apply(ctx, previous, next, a.dir, sopts); err != nil {
		return err
	}
	if err := a.lockfiles.Commit(next); err != nil {
		return err
	}

	a.logger.Info("committed lockfile", "generation", next.Generation, "artifacts", len(next.Artifacts))
	return nil
}
