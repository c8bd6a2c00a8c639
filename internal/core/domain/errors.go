package domain

import "go.trai.ch/zerr"

var (
	// ErrNotFound is returned when a requested project or version does not
	// exist in its repository.
	ErrNotFound = zerr.New("not found")

	// ErrNetwork is returned for transient transport failures. Repository
	// clients retry these internally and surface the error only after retry
	// exhaustion.
	ErrNetwork = zerr.New("network error")

	// ErrRepositoryUnavailable is returned when a repository is reachable but
	// refusing service, or when the variant is not implemented.
	ErrRepositoryUnavailable = zerr.New("repository unavailable")

	// ErrConflict is returned when two requirements impose incompatible
	// version selections on the same project, or when the dependency graph
	// contains a cycle.
	ErrConflict = zerr.New("conflicting requirements")

	// ErrIncompatibleLoader is returned when a version exists but declares no
	// compatibility with the active server profile.
	ErrIncompatibleLoader = zerr.New("incompatible with server profile")

	// ErrChecksumMismatch is returned when downloaded bytes do not match the
	// recorded content hash.
	ErrChecksumMismatch = zerr.New("checksum mismatch")

	// ErrCancelled is returned when a resolve or sync run is aborted by the
	// user or a deadline before committing.
	ErrCancelled = zerr.New("cancelled")

	// ErrNotInitialized is returned when an operation requires an initialized
	// server directory and none exists.
	ErrNotInitialized = zerr.New("server is not initialized")

	// ErrAlreadyInitialized is returned by init when a manifest already
	// exists in the target directory.
	ErrAlreadyInitialized = zerr.New("server is already initialized")

	// ErrDirectoryLocked is returned when another mup invocation holds the
	// advisory lock on the target directory.
	ErrDirectoryLocked = zerr.New("server directory is locked")

	// ErrInvalidLockfile is returned when a persisted lockfile fails schema
	// or invariant validation.
	ErrInvalidLockfile = zerr.New("invalid lockfile")

	// ErrInvalidManifest is returned when the manifest fails validation.
	ErrInvalidManifest = zerr.New("invalid manifest")

	// ErrUnknownRepository is returned for repository names outside the
	// supported set.
	ErrUnknownRepository = zerr.New("unknown repository")

	// ErrUnknownLoader is returned for loader names outside the supported set.
	ErrUnknownLoader = zerr.New("unknown loader")

	// ErrInvalidMinecraftVersion is returned when a profile names a Minecraft
	// version that does not parse as a release version.
	ErrInvalidMinecraftVersion = zerr.New("invalid minecraft version")

	// ErrInvalidChecksum is returned when an algorithm-tagged checksum string
	// cannot be parsed or names an unsupported algorithm.
	ErrInvalidChecksum = zerr.New("invalid checksum")
)
