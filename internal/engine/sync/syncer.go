// Package sync reconciles a server directory with a lockfile: it downloads,
// verifies and atomically installs missing artifacts, then prunes files no
// longer present in the lockfile.
package sync

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	mupfs "go.mup.dev/mup/internal/adapters/fs"
	"go.mup.dev/mup/internal/core/domain"
	"go.mup.dev/mup/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// tempPrefix marks in-progress downloads inside the install directory. Stale
// temp files from interrupted runs are discarded on the next apply.
const tempPrefix = ".mup-dl-"

// defaultParallelism bounds concurrent downloads.
const defaultParallelism = 4

// ApplyOptions steer one apply invocation.
type ApplyOptions struct {
	// SkipRemovals leaves files of removed artifacts in place (the
	// --keep-jarfile behavior of plugin remove).
	SkipRemovals bool

	// Parallelism bounds concurrent downloads. Zero means the default.
	Parallelism int
}

func (o ApplyOptions) parallelism() int {
	if o.Parallelism > 0 {
		return o.Parallelism
	}
	return defaultParallelism
}

// Syncer applies lockfile diffs to a server directory.
type Syncer struct {
	registry ports.RepositoryRegistry
	logger   ports.Logger
	tracer   ports.Tracer
}

// New creates a Syncer.
func New(registry ports.RepositoryRegistry, logger ports.Logger, tracer ports.Tracer) *Syncer {
	return &Syncer{
		registry: registry,
		logger:   logger,
		tracer:   tracer,
	}
}

// Apply mutates dir to match next. It is safe to re-run after a partial
// failure: already-correct files are detected by checksum and skipped, stale
// temp files are discarded, and removals only run after every install
// verified. Apply never touches the persisted lockfile; committing is the
// caller's responsibility and must happen only after Apply returns nil.
func (s *Syncer) Apply(ctx context.Context, previous, next *domain.Lockfile, dir string, opts ApplyOptions) error {
	plan := Diff(previous, next)

	s.discardStaleTemp(filepath.Join(dir, next.Profile.InstallDir()))

	// Keep entries are re-verified so an earlier interrupted or uncommitted
	// run converges; a diverged file is reinstalled like a fresh one.
	work := make([]domain.ResolvedArtifact, 0, len(plan.Install)+len(plan.Keep))
	work = append(work, plan.Install...)
	work = append(work, plan.Keep...)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.parallelism())
	for _, artifact := range work {
		g.Go(func() error {
			return s.installOne(gctx, artifact, dir)
		})
	}
	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return zerr.Wrap(ctx.Err(), domain.ErrCancelled.Error())
		}
		return err
	}

	if opts.SkipRemovals {
		return nil
	}
	for _, artifact := range plan.Remove {
		s.removeOne(artifact, dir)
	}
	return nil
}

// installOne ensures one artifact's file exists with the recorded content:
// verify-skip, or download to a temp file, verify the stream and atomically
// rename into place.
func (s *Syncer) installOne(ctx context.Context, artifact domain.ResolvedArtifact, dir string) (err error) {
	_, span := s.tracer.Start(ctx, "install "+artifact.Identity())
	defer func() {
		if err != nil {
			span.Complete(err)
		}
	}()

	want, err := artifact.ContentHash()
	if err != nil {
		return zerr.With(err, "project", artifact.Key().String())
	}

	finalPath := filepath.Join(dir, artifact.Path)
	ok, err := mupfs.VerifyFile(finalPath, want)
	if err != nil {
		return err
	}
	if ok {
		span.Cached()
		return nil
	}

	client, err := s.registry.Client(artifact.Repository)
	if err != nil {
		return err
	}

	s.logger.Info("downloading", "project", artifact.Key().String(), "version", artifact.Version, "url", artifact.URL)
	body, err := client.Download(ctx, artifact.URL)
	if err != nil {
		return zerr.With(err, "project", artifact.Key().String())
	}
	defer body.Close() //nolint:errcheck // Best effort close in defer

	if err := s.writeVerified(body, finalPath, want, artifact); err != nil {
		return err
	}
	span.Complete(nil)
	return nil
}

// writeVerified streams body through the checksum into a temp file next to
// the final path and renames it into place on a hash match. On mismatch the
// temp file is discarded and the previous install state is untouched.
func (s *Syncer) writeVerified(body io.Reader, finalPath string, want domain.Checksum, artifact domain.ResolvedArtifact) error {
	installDir := filepath.Dir(finalPath)
	if err := os.MkdirAll(installDir, mupfs.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create install directory")
	}

	checked, err := mupfs.NewChecksumReader(body, want)
	if err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(installDir, tempPrefix+"*")
	if err != nil {
		return zerr.Wrap(err, "failed to create temp file")
	}
	tmpName := tmpFile.Name()
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmpFile, checked); err != nil {
		_ = tmpFile.Close()
		netErr := zerr.With(domain.ErrNetwork, "cause", err.Error())
		return zerr.With(netErr, "project", artifact.Key().String())
	}
	if err := tmpFile.Close(); err != nil {
		return zerr.Wrap(err, "failed to close temp file")
	}

	if err := checked.Verify(); err != nil {
		err = zerr.With(err, "project", artifact.Key().String())
		return zerr.With(err, "version", artifact.Version)
	}

	if err := os.Chmod(tmpName, mupfs.FilePerm); err != nil {
		return zerr.Wrap(err, "failed to chmod artifact")
	}
	if err := os.Rename(tmpName, finalPath); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to install artifact"), "path", finalPath)
	}
	return nil
}

// removeOne deletes a pruned artifact's file. Best effort: a missing file is
// fine, anything else is only logged so one stubborn file does not abort the
// run after installs already succeeded.
func (s *Syncer) removeOne(artifact domain.ResolvedArtifact, dir string) {
	path := filepath.Join(dir, artifact.Path)
	err := os.Remove(path)
	switch {
	case err == nil:
		s.logger.Info("removed", "project", artifact.Key().String(), "path", artifact.Path)
	case os.IsNotExist(err):
	default:
		s.logger.Warn("failed to remove file", "path", artifact.Path, "error", err.Error())
	}
}

// discardStaleTemp removes leftover temp files from interrupted downloads.
func (s *Syncer) discardStaleTemp(installDir string) {
	entries, err := os.ReadDir(installDir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), tempPrefix) {
			_ = os.Remove(filepath.Join(installDir, e.Name()))
		}
	}
}
