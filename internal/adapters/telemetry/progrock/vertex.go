package progrock

import (
	"github.com/vito/progrock"
)

// Vertex implements ports.Span wrapping *progrock.VertexRecorder.
type Vertex struct {
	vertex *progrock.VertexRecorder
}

// Write records span output on the vertex's stdout stream.
func (v *Vertex) Write(p []byte) (int, error) {
	return v.vertex.Stdout().Write(p)
}

// Complete marks the vertex as finished, successfully or with an error.
func (v *Vertex) Complete(err error) {
	v.vertex.Done(err)
}

// Cached marks the vertex as already satisfied.
func (v *Vertex) Cached() {
	v.vertex.Cached()
}
