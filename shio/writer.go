package shio

import (
	"strconv"

	"github.com/toshproject/tosh/value"
)

// Writer is the minimal sink transpiled code writes to.
type Writer interface {
	Write(s value.Str) error
	WriteString(s string) error
	Flush() error
}

// BufWriter accumulates writes in a native buffer and hands the result
// back as a managed string. The formatting helpers mirror the runtime's
// %d / %s / %r directives.
type BufWriter struct {
	buf []byte
}

var _ Writer = (*BufWriter)(nil)

// Write appends a managed string.
func (w *BufWriter) Write(s value.Str) error {
	w.buf = append(w.buf, s.Data()...)
	return nil
}

// WriteString appends a native string.
func (w *BufWriter) WriteString(s string) error {
	w.buf = append(w.buf, s...)
	return nil
}

// FormatD appends an integer in decimal.
func (w *BufWriter) FormatD(i int) {
	w.buf = strconv.AppendInt(w.buf, int64(i), 10)
}

// FormatS appends the string itself.
func (w *BufWriter) FormatS(s value.Str) {
	w.buf = append(w.buf, s.Data()...)
}

// FormatR appends the quoted representation of s.
func (w *BufWriter) FormatR(s value.Str) {
	w.buf = value.AppendRepr(w.buf, s.Data())
}

// GetValue copies the accumulated bytes into a managed string.
func (w *BufWriter) GetValue() value.Str {
	return value.StrFromBytes(w.buf)
}

// Len returns the number of accumulated bytes.
func (w *BufWriter) Len() int {
	return len(w.buf)
}

// Reset drops the accumulated bytes.
func (w *BufWriter) Reset() {
	w.buf = w.buf[:0]
}

// Flush is a no-op; the buffer is only emptied by Reset.
func (w *BufWriter) Flush() error {
	return nil
}
