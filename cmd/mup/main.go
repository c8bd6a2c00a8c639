// Package main is the entry point for the mup server manager.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.mup.dev/mup/cmd/mup/commands"
	"go.mup.dev/mup/internal/app"
	"go.mup.dev/mup/internal/core/domain"
	_ "go.mup.dev/mup/internal/wiring"
)

// Exit codes distinguish the failure classes scripts care about.
const (
	exitOK          = 0
	exitGeneric     = 1
	exitConflict    = 2
	exitNotFound    = 3
	exitNetwork     = 4
	exitChecksum    = 5
	exitInterrupted = 130
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return exitGeneric
	}
	defer components.Tracer.Close() //nolint:errcheck // Best effort close on exit

	cli := commands.New(components.App)
	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		return exitCode(err)
	}
	return exitOK
}

// exitCode maps an error to its exit code by failure class.
func exitCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrCancelled), errors.Is(err, context.Canceled):
		return exitInterrupted
	case errors.Is(err, domain.ErrConflict):
		return exitConflict
	case errors.Is(err, domain.ErrNotFound):
		return exitNotFound
	case errors.Is(err, domain.ErrChecksumMismatch):
		return exitChecksum
	case errors.Is(err, domain.ErrNetwork), errors.Is(err, domain.ErrRepositoryUnavailable):
		return exitNetwork
	default:
		return exitGeneric
	}
}
