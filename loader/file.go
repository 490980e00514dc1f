package loader

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// mmapFile maps the file read-only and returns the mapping together with its
// unmapping function. An empty file yields a nil mapping.
func mmapFile(path string) ([]byte, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}
	if info.Size() == 0 {
		return nil, func() error { return nil }, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(info.Size()), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "mmapping %q failed", path)
	}
	return data, func() error {
		return errors.WithStack(unix.Munmap(data))
	}, nil
}

// rowScanner tokenises a mapped csv file in place. Field slices alias the
// mapping and stay valid only until it is unmapped.
type rowScanner struct {
	data   []byte
	fields [][]byte
}

// newRowScanner skips the header line and positions the scanner on the first
// data row.
func newRowScanner(data []byte) *rowScanner {
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		data = data[i+1:]
	} else {
		data = nil
	}
	return &rowScanner{data: data}
}

// Next returns the fields of the next non-empty row. The returned slice is
// reused by the following call.
func (s *rowScanner) Next() ([][]byte, bool) {
	for len(s.data) > 0 {
		line := s.data
		if i := bytes.IndexByte(s.data, '\n'); i >= 0 {
			line = s.data[:i]
			s.data = s.data[i+1:]
		} else {
			s.data = nil
		}
		if len(line) > 0 && line[len(line)-1] == '\r' {
			line = line[:len(line)-1]
		}
		if len(line) == 0 {
			continue
		}

		s.fields = s.fields[:0]
		for {
			i := bytes.IndexByte(line, ',')
			if i < 0 {
				s.fields = append(s.fields, line)
				break
			}
			s.fields = append(s.fields, line[:i])
			line = line[i+1:]
		}
		return s.fields, true
	}
	return nil, false
}
