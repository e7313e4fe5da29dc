package util

import (
	"io"
	"sync"
)

// NewReleaseOnceReader wraps source so that Close reaches it at most once,
// however many times and from whichever exit path Close is called.
// Only Read is exposed, so io.Copy style helpers always go through the
// caller's buffer.
func NewReleaseOnceReader(source io.ReadCloser) *ReleaseOnceReader {
	return &ReleaseOnceReader{source: source}
}

type ReleaseOnceReader struct {
	source  io.ReadCloser
	once    sync.Once
	err     error
	readErr error
	n       int64
}

func (r *ReleaseOnceReader) Read(p []byte) (int, error) {
	n, err := r.source.Read(p)
	r.n += int64(n)
	if err != nil && err != io.EOF {
		r.readErr = err
	}
	return n, err
}

// Close releases the source. Later calls return the first result.
func (r *ReleaseOnceReader) Close() error {
	r.once.Do(func() {
		r.err = r.source.Close()
	})
	return r.err
}

// BytesRead is the number of bytes handed out by Read so far.
func (r *ReleaseOnceReader) BytesRead() int64 {
	return r.n
}

// ReadErr is the last non-EOF error returned by the source.
func (r *ReleaseOnceReader) ReadErr() error {
	return r.readErr
}
