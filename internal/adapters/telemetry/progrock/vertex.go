package progrock

import (
	"fmt"
	"io"
	"sync"

	"github.com/vito/progrock"
	"go.trai.ch/lathe/internal/core/domain"
)

// Vertex implements ports.Vertex on top of *progrock.VertexRecorder.
type Vertex struct {
	name   string
	vertex *progrock.VertexRecorder

	once sync.Once
	done bool
	mu   sync.Mutex
}

// Stdout returns the standard output stream of the vertex.
func (v *Vertex) Stdout() io.Writer {
	return v.vertex.Stdout()
}

// Stderr returns the error output stream of the vertex.
func (v *Vertex) Stderr() io.Writer {
	return v.vertex.Stderr()
}

// Log writes a leveled line to the vertex output.
func (v *Vertex) Log(level domain.LogLevel, msg string) {
	w := v.vertex.Stdout()
	if level >= domain.LogLevelWarn {
		w = v.vertex.Stderr()
	}
	_, _ = fmt.Fprintf(w, "[%s] %s\n", level.String(), msg)
}

// Complete finishes the vertex. Only the first call has an effect.
func (v *Vertex) Complete(err error) {
	v.once.Do(func() {
		v.vertex.Done(err)
		v.mu.Lock()
		v.done = true
		v.mu.Unlock()
	})
}

// Cached marks the vertex as up to date and finishes it.
func (v *Vertex) Cached() {
	v.vertex.Cached()
	v.Complete(nil)
}

func (v *Vertex) finished() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.done
}
