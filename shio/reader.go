package shio

import (
	"bytes"

	"github.com/toshproject/tosh/heap"
	"github.com/toshproject/tosh/value"
)

// LineReader yields lines including their trailing newline. At end of
// stream it returns the interned empty string, which is unambiguous
// because an empty line still carries its newline.
type LineReader interface {
	Readline() (value.Str, error)
}

// BufLineReader reads lines out of an in-memory managed string. It roots
// the string for its own lifetime; Close releases the root and must be
// called LIFO with any other root scopes.
type BufLineReader struct {
	s   value.Str
	pos int
}

var _ LineReader = (*BufLineReader)(nil)

// NewBufLineReader returns a reader over s, rooting it.
func NewBufLineReader(s value.Str) *BufLineReader {
	r := &BufLineReader{s: s}
	heap.PushRoot(refOf(&r.s))
	return r
}

// Close releases the root.
func (r *BufLineReader) Close() {
	heap.PopRoot()
}

// Readline returns the next line.
func (r *BufLineReader) Readline() (value.Str, error) {
	n := r.s.Len()
	if r.pos >= n {
		return value.EmptyStr, nil
	}
	idx := bytes.IndexByte(r.s.Data()[r.pos:], '\n')
	var end int
	if idx >= 0 {
		end = r.pos + idx + 1 // past the newline
	} else {
		end = n // leftover line
	}
	line := r.s.Slice(r.pos, end)
	r.pos = end
	return line, nil
}

// refOf converts a managed string local into a root slot.
func refOf(p *value.Str) *heap.Ref {
	return (*heap.Ref)(p)
}
