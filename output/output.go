// Package output collects newline-delimited objects produced by query
// execution. A writer lives for one query instance; the two implementations
// cover the delimited and the formatted presentation.
package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Writer is the record-append interface consumed by query execution.
type Writer interface {
	// NewObject opens the next output record.
	NewObject()
	// NewField appends one named field to the current record.
	NewField(name, format string, args ...any)
	// Close terminates the current record and flushes the sink.
	Close() error
}

// NewWriter creates a writer over the sink, in formatted or delimited mode.
func NewWriter(w io.Writer, formatted bool) Writer {
	if formatted {
		return &formattedWriter{w: bufio.NewWriter(w)}
	}
	return &delimitedWriter{w: bufio.NewWriter(w)}
}

// delimitedWriter emits one line per object with ";"-joined field values.
type delimitedWriter struct {
	w          *bufio.Writer
	objectOpen bool
	fieldOpen  bool
}

func (w *delimitedWriter) NewObject() {
	if w.objectOpen {
		_ = w.w.WriteByte('\n')
	}
	w.objectOpen = true
	w.fieldOpen = false
}

func (w *delimitedWriter) NewField(name, format string, args ...any) {
	if w.fieldOpen {
		_ = w.w.WriteByte(';')
	}
	w.fieldOpen = true
	_, _ = fmt.Fprintf(w.w, format, args...)
}

func (w *delimitedWriter) Close() error {
	if w.objectOpen {
		_ = w.w.WriteByte('\n')
		w.objectOpen = false
	}
	return errors.WithStack(w.w.Flush())
}

// formattedWriter emits "--- N ---" blocks with one "name: value" line per
// field and a blank line between objects.
type formattedWriter struct {
	w       *bufio.Writer
	objects int
}

func (w *formattedWriter) NewObject() {
	w.objects++
	if w.objects > 1 {
		_ = w.w.WriteByte('\n')
	}
	_, _ = fmt.Fprintf(w.w, "--- %d ---\n", w.objects)
}

func (w *formattedWriter) NewField(name, format string, args ...any) {
	_, _ = w.w.WriteString(name)
	_, _ = w.w.WriteString(": ")
	_, _ = fmt.Fprintf(w.w, format, args...)
	_ = w.w.WriteByte('\n')
}

func (w *formattedWriter) Close() error {
	return errors.WithStack(w.w.Flush())
}
