//go:build unix

package shio

import (
	"errors"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/toshproject/tosh/value"
)

// FdWriter writes managed strings straight to a file descriptor.
type FdWriter struct {
	fd int
}

var _ Writer = (*FdWriter)(nil)

// Stdout and Stderr are the process-wide writers transpiled print calls
// use.
var (
	Stdout = NewFdWriter(1)
	Stderr = NewFdWriter(2)
)

// NewFdWriter wraps an open file descriptor. The caller keeps ownership
// of the descriptor.
func NewFdWriter(fd int) *FdWriter {
	return &FdWriter{fd: fd}
}

// Write writes all of s, retrying short writes and EINTR.
func (w *FdWriter) Write(s value.Str) error {
	return w.writeAll(s.Data())
}

// WriteString writes all of a native string.
func (w *FdWriter) WriteString(s string) error {
	return w.writeAll([]byte(s))
}

func (w *FdWriter) writeAll(b []byte) error {
	for len(b) > 0 {
		n, err := unix.Write(w.fd, b)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return &value.IOError{Errno: errnoOf(err)}
		}
		b = b[n:]
	}
	return nil
}

// Flush is a no-op: fd writes are unbuffered.
func (w *FdWriter) Flush() error {
	return nil
}

// IsAtty reports whether the descriptor is a terminal.
func (w *FdWriter) IsAtty() bool {
	return isTerminal(w.fd)
}

// Print writes s and a newline to stdout, like the source language's
// print().
func Print(s value.Str) {
	_ = Stdout.Write(s)
	_ = Stdout.WriteString("\n")
}

// PrintlnStderr writes s and a newline to stderr.
func PrintlnStderr(s value.Str) {
	_ = Stderr.Write(s)
	_ = Stderr.WriteString("\n")
}

func errnoOf(err error) syscall.Errno {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno
	}
	return syscall.EIO
}
