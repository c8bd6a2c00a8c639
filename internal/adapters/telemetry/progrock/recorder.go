// Package progrock provides the Progrock implementation of the progress
// tracer.
package progrock

import (
	"context"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.mup.dev/mup/internal/core/ports"
)

// Recorder implements ports.Tracer using the vito/progrock library. Every
// span becomes a progrock vertex, so resolution steps and downloads show up
// as individually tracked units of work.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

// New creates a Recorder with a default tape.
func New() ports.Tracer {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Start begins recording a vertex named after the unit of work.
func (r *Recorder) Start(ctx context.Context, name string) (context.Context, ports.Span) {
	d := digest.FromString(name)
	v := r.rec.Vertex(d, name)
	return ctx, &Vertex{vertex: v}
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
