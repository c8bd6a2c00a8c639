package ports

import (
	"context"

	"go.mup.dev/mup/internal/core/domain"
)

// ServerJarInstaller fetches the server runtime jar matching a profile into
// the target directory. Implementations verify published checksums where the
// upstream API provides them.
type ServerJarInstaller interface {
	Install(ctx context.Context, profile domain.ServerProfile, dir string) error
}
