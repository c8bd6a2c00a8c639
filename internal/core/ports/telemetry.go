package ports

import (
	"context"
	"io"
)

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer is the entry point for recording units of work (resolution steps,
// downloads) for progress display.
type Tracer interface {
	// Start begins recording a new span.
	Start(ctx context.Context, name string) (context.Context, Span)
	// Close flushes and closes the recording session.
	Close() error
}

// Span represents one unit of work. Writes are surfaced as the span's output.
type Span interface {
	io.Writer
	// Complete marks the span finished, with err non-nil on failure.
	Complete(err error)
	// Cached marks the span as skipped because the work was already done.
	Cached()
}
