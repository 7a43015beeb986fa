// Package progrock records build progress on a progrock tape.
package progrock

import (
	"context"
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/lathe/internal/core/domain"
	"go.trai.ch/lathe/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements ports.Telemetry. Every task is one vertex on the tape,
// identified by the digest of its task name.
type Recorder struct {
	tape *progrock.Tape
	out  *output
	rec  *progrock.Recorder

	mu       sync.Mutex
	vertices map[digest.Digest]*Vertex
}

// New creates a Recorder backed by an in-memory tape.
func New() *Recorder {
	tape := progrock.NewTape()
	out := &output{tape: tape}
	return &Recorder{
		tape:     tape,
		out:      out,
		rec:      progrock.NewRecorder(out),
		vertices: make(map[digest.Digest]*Vertex),
	}
}

// Record starts the vertex for the named task. Recording the same name twice
// returns the vertex started first.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	d := digest.FromString(name)

	r.mu.Lock()
	v, ok := r.vertices[d]
	if !ok {
		v = &Vertex{name: name, vertex: r.rec.Vertex(d, name)}
		r.vertices[d] = v
	}
	r.mu.Unlock()

	return ports.ContextWithVertex(ctx, v), v
}

// Journal starts copying every update to a progrock journal at path.
// A journal opened earlier is closed first.
func (r *Recorder) Journal(path string) error {
	journal, err := progrock.CreateJournal(path)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrJournalCreateFailed, err.Error()), "path", path)
	}
	return r.out.attach(journal)
}

// Summary counts the vertices on the tape.
func (r *Recorder) Summary() ports.Summary {
	summary := ports.Summary{Duration: r.tape.Duration()}
	for _, v := range r.tape.Vertices() {
		summary.Total++
		switch {
		case v.Error != nil, v.Canceled:
			summary.Failed++
		case v.Cached:
			summary.Cached++
		case v.Completed != nil:
			summary.Built++
		}
	}
	return summary
}

// Pending returns the names of vertices that were started but never completed.
func (r *Recorder) Pending() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var names []string
	for _, v := range r.vertices {
		if !v.finished() {
			names = append(names, v.name)
		}
	}
	return names
}

// Close completes any vertex left open, then closes the tape and the journal.
func (r *Recorder) Close() error {
	r.mu.Lock()
	for _, v := range r.vertices {
		v.Complete(nil)
	}
	r.mu.Unlock()

	return r.out.Close()
}
