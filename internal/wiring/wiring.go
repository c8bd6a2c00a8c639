// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.mup.dev/mup/internal/adapters/config"
	_ "go.mup.dev/mup/internal/adapters/loaderjar"
	_ "go.mup.dev/mup/internal/adapters/lockstore"
	_ "go.mup.dev/mup/internal/adapters/logger"
	_ "go.mup.dev/mup/internal/adapters/repo"
	_ "go.mup.dev/mup/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.mup.dev/mup/internal/app"
	_ "go.mup.dev/mup/internal/engine/resolver"
	_ "go.mup.dev/mup/internal/engine/sync"
)
