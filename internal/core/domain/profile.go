// Package domain contains the core domain models for mup: server profiles,
// requirements, resolved artifacts and the lockfile.
package domain

import (
	"github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"
)

// LoaderKind identifies the server runtime variant a profile targets.
type LoaderKind string

const (
	// LoaderVanilla is the unmodified Mojang server.
	LoaderVanilla LoaderKind = "vanilla"
	// LoaderFabric is the Fabric mod loader.
	LoaderFabric LoaderKind = "fabric"
	// LoaderForge is the Forge mod loader.
	LoaderForge LoaderKind = "forge"
	// LoaderNeoForge is the NeoForge mod loader.
	LoaderNeoForge LoaderKind = "neoforge"
	// LoaderPaper is the Paper plugin server.
	LoaderPaper LoaderKind = "paper"
)

// LoaderKinds lists every supported loader, in display order.
var LoaderKinds = []LoaderKind{LoaderVanilla, LoaderFabric, LoaderForge, LoaderNeoForge, LoaderPaper}

// ParseLoaderKind validates a user-supplied loader name.
func ParseLoaderKind(name string) (LoaderKind, error) {
	for _, k := range LoaderKinds {
		if string(k) == name {
			return k, nil
		}
	}
	return "", zerr.With(ErrUnknownLoader, "loader", name)
}

// ServerProfile describes the runtime a server directory is pinned to.
// It is immutable once a server is initialized; changing it forces
// re-resolution of every requirement.
type ServerProfile struct {
	Loader    LoaderKind `yaml:"loader"`
	Minecraft string     `yaml:"minecraft_version"`
}

// Validate checks that the loader is known and the Minecraft version is a
// plain release version (e.g. "1.21.1"), not a range or partial version.
func (p ServerProfile) Validate() error {
	if _, err := ParseLoaderKind(string(p.Loader)); err != nil {
		return err
	}
	// NewVersion coerces two-part releases such as "1.21".
	if _, err := semver.NewVersion(p.Minecraft); err != nil {
		invalid := zerr.Wrap(err, ErrInvalidMinecraftVersion.Error())
		return zerr.With(invalid, "minecraft_version", p.Minecraft)
	}
	return nil
}

// InstallDir returns the directory, relative to the server root, that
// artifacts for this profile are installed into.
func (p ServerProfile) InstallDir() string {
	if p.Loader == LoaderPaper {
		return "plugins"
	}
	return "mods"
}
