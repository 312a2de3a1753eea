package dispatch

import (
	"net/http"
)

// responseWriter wraps http.ResponseWriter for the pipeline: it tracks
// whether a response has been committed, so error and panic paths never
// double-write, and counts body bytes for request logging.
type responseWriter struct {
	http.ResponseWriter
	status  int
	bytes   int
	written bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w}
}

func (w *responseWriter) WriteHeader(status int) {
	if !w.written {
		w.status = status
		w.written = true
		w.ResponseWriter.WriteHeader(status)
	}
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// Written reports whether the response has been committed.
func (w *responseWriter) Written() bool {
	return w.written
}

// Status returns the committed HTTP status code, zero before commit.
func (w *responseWriter) Status() int {
	return w.status
}

// BytesWritten returns the number of body bytes written so far.
func (w *responseWriter) BytesWritten() int {
	return w.bytes
}

// Flush implements http.Flusher when the underlying writer supports it.
func (w *responseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
