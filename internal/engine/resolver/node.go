package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.mup.dev/mup/internal/adapters/logger"
	"go.mup.dev/mup/internal/adapters/repo"
	"go.mup.dev/mup/internal/adapters/telemetry"
	"go.mup.dev/mup/internal/core/ports"
)

// NodeID is the unique identifier for the resolver Graft node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{repo.NodeID, logger.NodeID, telemetry.NodeID},
		Run: func(ctx context.Context) (*Resolver, error) {
			registry, err := graft.Dep[ports.RepositoryRegistry](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			return New(registry, log, tracer), nil
		},
	})
}
