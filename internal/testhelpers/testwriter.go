package testhelpers

import (
	"io"
	"strings"
	"sync/atomic"
	"testing"
)

// Writer sends every line to t.Log so that logs only show up for failing tests.
type Writer struct {
	t    *testing.T
	done atomic.Bool
}

// NewWriter creates a Writer bound to t. Writing after t has finished panics, which points at a server or background
// goroutine that outlives its test.
func NewWriter(t *testing.T) io.Writer {
	w := &Writer{t: t, done: atomic.Bool{}}
	t.Cleanup(func() { w.done.Store(true) })
	return w
}

func (w *Writer) Write(p []byte) (int, error) {
	if w.done.Load() {
		panic("testhelpers: write after test completion, is the server shut down in t.Cleanup?")
	}
	for line := range strings.Lines(string(p)) {
		if line = strings.TrimRight(line, "\n"); line != "" {
			w.t.Log(line)
		}
	}
	return len(p), nil
}
