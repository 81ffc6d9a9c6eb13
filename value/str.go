package value

import (
	"github.com/toshproject/tosh/heap"
	"github.com/toshproject/tosh/internal/format"
)

// Str is a managed byte string. Layout: opaque header, a 4-byte byte
// length, the data, and a trailing NUL so syscall wrappers can hand the
// buffer to C APIs. The NUL is not part of the string.
type Str heap.Ref

// EmptyStr is the interned empty string: a global object with process
// lifetime. Every operation that produces an empty result returns it.
var EmptyStr = newEmptyStr()

func newEmptyStr() Str {
	objLen := format.Align8(format.StrHeaderSize + 1)
	r := heap.AllocGlobal(objLen)
	format.WriteHeader(heap.Bytes(r), 0, format.TagGlobal, 0, 0, objLen)
	return Str(r)
}

// GlobalStr interns a program constant in the global arena: the returned
// string has process lifetime and is never moved or freed. Transpiled
// code calls this once per string literal, at program start.
func GlobalStr(s string) Str {
	if len(s) == 0 {
		return EmptyStr
	}
	objLen := format.Align8(format.StrHeaderSize + len(s) + 1)
	r := heap.AllocGlobal(objLen)
	b := heap.Bytes(r)
	format.WriteHeader(b, 0, format.TagGlobal, 0, 0, objLen)
	format.PutU32(b, format.StrLenOff, uint32(len(s)))
	copy(b[format.StrDataOff:], s)
	return Str(r)
}

// AllocStr allocates a zeroed string buffer for n bytes plus the NUL.
// Allocating zero bytes yields the interned empty string.
func AllocStr(n int) Str {
	assertf(n >= 0, "AllocStr: negative length %d", n)
	if n == 0 {
		return EmptyStr
	}
	objLen := format.Align8(format.StrHeaderSize + n + 1)
	r := heap.Allocate(objLen)
	b := heap.Bytes(r)
	format.WriteHeader(b, 0, format.TagOpaque, 0, 0, objLen)
	format.PutU32(b, format.StrLenOff, uint32(n))
	return Str(r)
}

// AllocStrOver allocates a string buffer that may end up shorter than n:
// the caller writes at most n bytes, then trims with SetLen. Used when
// the final length is only known after formatting into the buffer.
func AllocStrOver(n int) Str {
	return AllocStr(n)
}

// SetLen shrinks the logical length after writing into an over-allocated
// buffer. The allocation (and obj_len) are unchanged; only the length
// field and the NUL move.
func (s Str) SetLen(n int) {
	b := heap.Bytes(heap.Ref(s))
	capacity := format.ObjLen(b, 0) - format.StrHeaderSize - 1
	assertf(n >= 0 && n <= capacity, "SetLen: %d out of range for capacity %d", n, capacity)
	format.PutU32(b, format.StrLenOff, uint32(n))
	b[format.StrDataOff+n] = 0
}

// NewStr copies a native Go string onto the managed heap.
func NewStr(s string) Str {
	r := AllocStr(len(s))
	copy(r.data(), s)
	return r
}

// StrFromBytes copies b onto the managed heap.
func StrFromBytes(b []byte) Str {
	r := AllocStr(len(b))
	copy(r.data(), b)
	return r
}

// IsNull reports whether s is the null reference (distinct from the empty
// string).
func (s Str) IsNull() bool {
	return s == 0
}

// Len returns the byte length.
func (s Str) Len() int {
	return int(format.ReadU32(heap.Bytes(heap.Ref(s)), format.StrLenOff))
}

// Data returns a view of the string's bytes. The view is invalidated by
// the next possible allocation; callers must not hold it across one.
func (s Str) Data() []byte {
	return s.data()
}

// DataWithNul returns the bytes plus the trailing NUL, for syscalls that
// need a C string.
func (s Str) DataWithNul() []byte {
	b := heap.Bytes(heap.Ref(s))
	n := s.Len()
	return b[format.StrDataOff : format.StrDataOff+n+1]
}

func (s Str) data() []byte {
	b := heap.Bytes(heap.Ref(s))
	n := int(format.ReadU32(b, format.StrLenOff))
	return b[format.StrDataOff : format.StrDataOff+n]
}

// String copies the contents out as a native Go string.
func (s Str) String() string {
	if s.IsNull() {
		return "<null>"
	}
	return string(s.data())
}

// Obj widens s for storage in a heterogeneous slot.
func (s Str) Obj() Obj {
	return Obj(s)
}

// AsStr narrows an Obj known to be a string.
func (o Obj) AsStr() Str {
	return Str(o)
}
