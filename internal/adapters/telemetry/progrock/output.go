package progrock

import (
	"errors"
	"sync"

	"github.com/vito/progrock"
)

var _ progrock.Writer = (*output)(nil)

// output feeds the tape and, once attached, a journal.
type output struct {
	tape *progrock.Tape

	mu      sync.Mutex
	journal progrock.Writer
}

func (o *output) attach(journal progrock.Writer) error {
	o.mu.Lock()
	prev := o.journal
	o.journal = journal
	o.mu.Unlock()

	if prev != nil {
		return prev.Close()
	}
	return nil
}

// WriteStatus implements progrock.Writer.
func (o *output) WriteStatus(update *progrock.StatusUpdate) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	w := progrock.MultiWriter{o.tape}
	if o.journal != nil {
		w = append(w, o.journal)
	}
	return w.WriteStatus(update)
}

// Close implements progrock.Writer. The journal is detached so the
// recorder can keep feeding the tape afterwards.
func (o *output) Close() error {
	o.mu.Lock()
	journal := o.journal
	o.journal = nil
	o.mu.Unlock()

	err := o.tape.Close()
	if journal != nil {
		err = errors.Join(err, journal.Close())
	}
	return err
}
