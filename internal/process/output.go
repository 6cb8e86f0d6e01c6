package process

import (
	"bytes"
	"io"
	"sync"
)

// Buffers accumulates a child's stdout and stderr in memory. Writes arrive
// from the drain goroutines while Snapshot may be called from the
// supervising goroutine (e.g. to collect partial output when a run times
// out), so all access goes through one mutex.
type Buffers struct {
	mu     sync.Mutex
	stdout bytes.Buffer
	stderr bytes.Buffer
}

// NewBuffers returns an empty capture pair.
func NewBuffers() *Buffers {
	return &Buffers{}
}

// Stdout returns the writer the child's stdout drain should copy into.
func (b *Buffers) Stdout() io.Writer {
	return lockedWriter{mu: &b.mu, buf: &b.stdout}
}

// Stderr returns the writer the child's stderr drain should copy into.
func (b *Buffers) Stderr() io.Writer {
	return lockedWriter{mu: &b.mu, buf: &b.stderr}
}

// Snapshot returns the bytes captured so far, decoded as UTF-8 text.
// Safe to call while the child is still writing.
func (b *Buffers) Snapshot() (stdout, stderr string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stdout.String(), b.stderr.String()
}

// lockedWriter serializes writes into a shared buffer.
type lockedWriter struct {
	mu  *sync.Mutex
	buf *bytes.Buffer
}

func (w lockedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}
