// Package telemetry provides progress tracer implementations.
package telemetry

import (
	"context"

	"go.mup.dev/mup/internal/core/ports"
)

// NoOpTracer is a no-op implementation of ports.Tracer.
type NoOpTracer struct{}

// NewNoOpTracer creates a new NoOpTracer.
func NewNoOpTracer() *NoOpTracer {
	return &NoOpTracer{}
}

// Start creates a new no-op span.
func (t *NoOpTracer) Start(ctx context.Context, _ string) (context.Context, ports.Span) {
	return ctx, &NoOpSpan{}
}

// Close does nothing.
func (t *NoOpTracer) Close() error { return nil }

// NoOpSpan is a no-op implementation of ports.Span.
type NoOpSpan struct{}

// Write does nothing and reports the full length as written.
func (s *NoOpSpan) Write(p []byte) (int, error) { return len(p), nil }

// Complete does nothing.
func (s *NoOpSpan) Complete(_ error) {}

// Cached does nothing.
func (s *NoOpSpan) Cached() {}
