package repo

import (
	"context"

	"github.com/grindlemire/graft"
	"go.mup.dev/mup/internal/core/ports"
)

// NodeID is the unique identifier for the repository registry Graft node.
const NodeID graft.ID = "adapter.repository_registry"

func init() {
	graft.Register(graft.Node[ports.RepositoryRegistry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RepositoryRegistry, error) {
			return NewDefaultRegistry(), nil
		},
	})
}
