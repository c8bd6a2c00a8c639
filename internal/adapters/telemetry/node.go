package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.mup.dev/mup/internal/adapters/telemetry/progrock"
	"go.mup.dev/mup/internal/core/ports"
)

// NodeID is the unique identifier for the tracer adapter Graft node.
const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Tracer, error) {
			if os.Getenv("MUP_PROGRESS") == "off" {
				return NewNoOpTracer(), nil
			}
			return progrock.New(), nil
		},
	})
}
