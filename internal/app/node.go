package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.mup.dev/mup/internal/adapters/config"
	"go.mup.dev/mup/internal/adapters/loaderjar"
	"go.mup.dev/mup/internal/adapters/lockstore"
	"go.mup.dev/mup/internal/adapters/logger"
	"go.mup.dev/mup/internal/adapters/telemetry"
	"go.mup.dev/mup/internal/core/ports"
	"go.mup.dev/mup/internal/engine/resolver"
	"go.mup.dev/mup/internal/engine/sync"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			lockstore.NodeID,
			resolver.NodeID,
			sync.NodeID,
			loaderjar.NodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	manifests, err := graft.Dep[ports.ManifestStore](ctx)
	if err != nil {
		return nil, err
	}
	lockfiles, err := graft.Dep[ports.LockfileStore](ctx)
	if err != nil {
		return nil, err
	}
	res, err := graft.Dep[*resolver.Resolver](ctx)
	if err != nil {
		return nil, err
	}
	syncer, err := graft.Dep[*sync.Syncer](ctx)
	if err != nil {
		return nil, err
	}
	jars, err := graft.Dep[ports.ServerJarInstaller](ctx)
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
	return New(manifests, lockfiles, res, syncer, jars, log, tracer), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
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
	return &Components{
		App:    application,
		Logger: log,
		Tracer: tracer,
	}, nil
}
