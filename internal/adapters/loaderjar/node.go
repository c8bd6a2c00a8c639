package loaderjar

import (
	"context"

	"github.com/grindlemire/graft"
	"go.mup.dev/mup/internal/adapters/logger"
	"go.mup.dev/mup/internal/adapters/repo"
	"go.mup.dev/mup/internal/core/ports"
)

// NodeID is the unique identifier for the server jar installer Graft node.
const NodeID graft.ID = "adapter.loaderjar"

func init() {
	graft.Register(graft.Node[ports.ServerJarInstaller]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ServerJarInstaller, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(repo.NewHTTPClient(), log), nil
		},
	})
}
