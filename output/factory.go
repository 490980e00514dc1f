package output

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

// NewFileFactory creates a factory writing each query's output to
// command<line>_output.txt inside dir.
func NewFileFactory(dir string) (*FileFactory, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating output directory %q", dir)
	}
	return &FileFactory{dir: dir}, nil
}

// FileFactory hands out per-line file writers. Files are keyed by source
// line, so the on-disk set is ordered by line number regardless of the
// order queries executed in.
type FileFactory struct {
	dir string
}

// Writer opens the output file for the given source line. The file exists
// even when the query emits nothing.
func (f *FileFactory) Writer(line uint32, formatted bool) (Writer, error) {
	file, err := os.Create(filepath.Join(f.dir, fmt.Sprintf("command%d_output.txt", line)))
	if err != nil {
		return nil, errors.Wrapf(err, "creating output file for line %d", line)
	}
	return &closingWriter{Writer: NewWriter(file, formatted), file: file}, nil
}

type closingWriter struct {
	Writer
	file *os.File
}

func (w *closingWriter) Close() error {
	if err := w.Writer.Close(); err != nil {
		_ = w.file.Close()
		return err
	}
	return errors.WithStack(w.file.Close())
}

// NewBufferFactory creates a factory keeping each query's output in memory,
// keyed by source line.
func NewBufferFactory() *BufferFactory {
	return &BufferFactory{buffers: map[uint32]*bytes.Buffer{}}
}

// BufferFactory hands out per-line in-memory writers.
type BufferFactory struct {
	buffers map[uint32]*bytes.Buffer
}

// Writer returns the writer for the given source line.
func (f *BufferFactory) Writer(line uint32, formatted bool) (Writer, error) {
	buf := &bytes.Buffer{}
	f.buffers[line] = buf
	return NewWriter(buf, formatted), nil
}

// Output returns the collected output of the given source line.
func (f *BufferFactory) Output(line uint32) string {
	buf := f.buffers[line]
	if buf == nil {
		return ""
	}
	return buf.String()
}

// Lines returns the source lines with collected output, ascending.
func (f *BufferFactory) Lines() []uint32 {
	lines := make([]uint32, 0, len(f.buffers))
	for line := range f.buffers {
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i] < lines[j]
	})
	return lines
}
