//go:build unix

package shio

import (
	"bytes"

	"golang.org/x/sys/unix"

	"github.com/toshproject/tosh/value"
)

const readChunk = 4096

// FdLineReader reads lines from a file descriptor, buffering in native
// memory. Lines include their trailing newline; the final line of a
// stream that does not end in one is returned as-is.
type FdLineReader struct {
	fd      int
	pending []byte
	eof     bool
}

var _ LineReader = (*FdLineReader)(nil)

// NewFdLineReader wraps an open file descriptor.
func NewFdLineReader(fd int) *FdLineReader {
	return &FdLineReader{fd: fd}
}

// Readline returns the next line, or the interned empty string at EOF.
func (r *FdLineReader) Readline() (value.Str, error) {
	for {
		if idx := bytes.IndexByte(r.pending, '\n'); idx >= 0 {
			line := value.StrFromBytes(r.pending[:idx+1])
			r.pending = r.pending[idx+1:]
			return line, nil
		}
		if r.eof {
			if len(r.pending) == 0 {
				return value.EmptyStr, nil
			}
			line := value.StrFromBytes(r.pending)
			r.pending = nil
			return line, nil
		}

		buf := make([]byte, readChunk)
		n, err := unix.Read(r.fd, buf)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return value.EmptyStr, &value.IOError{Errno: errnoOf(err)}
		}
		if n == 0 {
			r.eof = true
			continue
		}
		r.pending = append(r.pending, buf[:n]...)
	}
}

// ReadlineRequired returns the next line, treating end of stream as an
// EOFError rather than an empty string.
func (r *FdLineReader) ReadlineRequired() (value.Str, error) {
	line, err := r.Readline()
	if err != nil {
		return value.EmptyStr, err
	}
	if line.Len() == 0 {
		return value.EmptyStr, &value.EOFError{}
	}
	return line, nil
}

// Close closes the underlying descriptor.
func (r *FdLineReader) Close() error {
	if err := unix.Close(r.fd); err != nil {
		return &value.IOError{Errno: errnoOf(err)}
	}
	return nil
}
