package shell

import (
	"bytes"
	"sync"
)

// logWriter forwards complete lines to a log function and buffers partial ones.
type logWriter struct {
	log func(string)
	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadBytes('\n')
		if err != nil {
			// Incomplete line, keep it for the next write.
			w.buf.Reset()
			w.buf.Write(line)
			break
		}
		w.log(string(bytes.TrimSuffix(line, []byte("\n"))))
	}
	return len(p), nil
}

// Flush logs whatever partial line is left.
func (w *logWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf.Len() > 0 {
		w.log(w.buf.String())
		w.buf.Reset()
	}
}
