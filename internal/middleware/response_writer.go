package middleware

import (
	"github.com/gin-gonic/gin"
)

// countingWriter counts body bytes written through gin, including WriteString,
// which the embedded writer would otherwise handle without being counted.
type countingWriter struct {
	gin.ResponseWriter
	written int
}

func newResponseWriter(w gin.ResponseWriter) *countingWriter {
	return &countingWriter{ResponseWriter: w}
}

func (w *countingWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.written += n
	return n, err
}

func (w *countingWriter) WriteString(s string) (int, error) {
	n, err := w.ResponseWriter.WriteString(s)
	w.written += n
	return n, err
}

// Size returns the body size in bytes.
func (w *countingWriter) Size() int {
	return w.written
}
