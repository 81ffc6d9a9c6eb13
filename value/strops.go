package value

import (
	"bytes"

	"github.com/toshproject/tosh/heap"
)

// String operations. Anything that allocates roots its locals first, so a
// collection inside the allocation rewrites them in place; views are
// re-read after every allocation point.

// Index returns the one-byte string at i. Negative i counts from the end.
func (s Str) Index(i int) (Str, error) {
	n := s.Len()
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, &IndexError{}
	}
	c := s.data()[i]
	res := AllocStr(1)
	res.data()[0] = c
	return res, nil
}

// Slice returns a copy of bytes [b, e). Negative indices count from the
// end; both are clamped to [0, len].
func (s Str) Slice(b, e int) Str {
	n := s.Len()
	if b < 0 {
		b += n
	}
	if e < 0 {
		e += n
	}
	b = min(max(b, 0), n)
	e = min(max(e, 0), n)
	if e-b <= 0 {
		return EmptyStr
	}
	rs := heap.PushRoots(slot(&s))
	defer rs.Pop()

	res := AllocStr(e - b)
	copy(res.data(), s.data()[b:e])
	return res
}

// SliceFrom is s[b:].
func (s Str) SliceFrom(b int) Str {
	if b == 0 {
		return s
	}
	return s.Slice(b, s.Len())
}

// Split cuts s on a one-byte separator. The empty string splits to one
// empty piece; a trailing separator yields a trailing empty piece.
func (s Str) Split(sep Str) List[Str] {
	assertf(sep.Len() == 1, "split: separator must be one byte")
	sepByte := sep.data()[0]

	if s.Len() == 0 {
		// Consistent with Python: ''.split(':') == [''].
		return NewList[Str](EmptyStr)
	}

	var result List[Str]
	rs := heap.PushRoots(slot(&s), slot(&result))
	defer rs.Pop()

	result = NewList[Str]()
	pos := 0
	for {
		idx := bytes.IndexByte(s.data()[pos:], sepByte)
		if idx < 0 {
			piece := s.Slice(pos, s.Len()) // rest of the string
			result.Append(piece)
			break
		}
		piece := s.Slice(pos, pos+idx) // may move result; it is rooted
		result.Append(piece)
		pos += idx + 1
		if pos >= s.Len() { // separator was at end of string
			result.Append(EmptyStr)
			break
		}
	}
	return result
}

// Join concatenates parts with s between consecutive parts.
func (s Str) Join(parts List[Str]) Str {
	numParts := parts.Len()
	if numParts == 0 { // " ".join([]) == ""
		return EmptyStr
	}
	rs := heap.PushRoots(slot(&s), slot(&parts))
	defer rs.Pop()

	total := s.Len() * (numParts - 1)
	for i := 0; i < numParts; i++ {
		p, _ := parts.Index(i)
		total += p.Len()
	}

	result := AllocStr(total)
	out := result.data()
	off := 0
	for i := 0; i < numParts; i++ {
		if i != 0 {
			off += copy(out[off:], s.data())
		}
		p, _ := parts.Index(i)
		off += copy(out[off:], p.data())
	}
	return result
}

// Replace substitutes every non-overlapping left-to-right occurrence of
// old. With zero occurrences the receiver itself is returned.
func (s Str) Replace(old, repl Str) Str {
	assertf(old.Len() >= 1, "replace: old must be non-empty")

	count := bytes.Count(s.data(), old.data())
	if count == 0 {
		return s // reuse the string when there is nothing to replace
	}
	resultLen := s.Len() + count*(repl.Len()-old.Len())
	if resultLen == 0 {
		return EmptyStr
	}

	rs := heap.PushRoots(slot(&s), slot(&old), slot(&repl))
	defer rs.Pop()

	result := AllocStr(resultLen)
	out := result.data()
	src := s.data()
	oldB, replB := old.data(), repl.data()
	off := 0
	for {
		idx := bytes.Index(src, oldB)
		if idx < 0 {
			copy(out[off:], src)
			break
		}
		off += copy(out[off:], src[:idx])
		off += copy(out[off:], replB)
		src = src[idx+len(oldB):]
	}
	return result
}

func isShellSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

func (s Str) stripWhere(left, right bool) Str {
	n := s.Len()
	if n == 0 {
		return s
	}
	data := s.data()
	lo, hi := 0, n
	if left {
		for lo < hi && isShellSpace(data[lo]) {
			lo++
		}
	}
	if right {
		for hi > lo && isShellSpace(data[hi-1]) {
			hi--
		}
	}
	if lo == 0 && hi == n {
		return s // nothing stripped
	}
	return s.Slice(lo, hi)
}

// Strip removes whitespace from both ends.
func (s Str) Strip() Str {
	return s.stripWhere(true, true)
}

// LStrip removes leading whitespace.
func (s Str) LStrip() Str {
	return s.stripWhere(true, false)
}

// RStrip removes trailing whitespace.
func (s Str) RStrip() Str {
	return s.stripWhere(false, true)
}

func (s Str) stripCharsWhere(chars Str, left, right bool) Str {
	n := s.Len()
	if n == 0 || chars.Len() == 0 {
		return s
	}
	data, set := s.data(), chars.data()
	lo, hi := 0, n
	if left {
		for lo < hi && bytes.IndexByte(set, data[lo]) >= 0 {
			lo++
		}
	}
	if right {
		for hi > lo && bytes.IndexByte(set, data[hi-1]) >= 0 {
			hi--
		}
	}
	if lo == 0 && hi == n {
		return s
	}
	return s.Slice(lo, hi)
}

// StripChars removes any of chars from both ends.
func (s Str) StripChars(chars Str) Str {
	return s.stripCharsWhere(chars, true, true)
}

// LStripChars removes any of chars from the left end.
func (s Str) LStripChars(chars Str) Str {
	return s.stripCharsWhere(chars, true, false)
}

// RStripChars removes any of chars from the right end.
func (s Str) RStripChars(chars Str) Str {
	return s.stripCharsWhere(chars, false, true)
}

// Ljust pads s on the right with fill to at least width bytes.
func (s Str) Ljust(width int, fill Str) Str {
	assertf(fill.Len() == 1, "ljust: fill must be one byte")
	n := s.Len()
	if width <= n {
		return s
	}
	c := fill.data()[0]
	rs := heap.PushRoots(slot(&s))
	defer rs.Pop()

	result := AllocStr(width)
	out := result.data()
	copy(out, s.data())
	for i := n; i < width; i++ {
		out[i] = c
	}
	return result
}

// Rjust pads s on the left with fill to at least width bytes.
func (s Str) Rjust(width int, fill Str) Str {
	assertf(fill.Len() == 1, "rjust: fill must be one byte")
	n := s.Len()
	if width <= n {
		return s
	}
	c := fill.data()[0]
	rs := heap.PushRoots(slot(&s))
	defer rs.Pop()

	result := AllocStr(width)
	out := result.data()
	numFill := width - n
	for i := 0; i < numFill; i++ {
		out[i] = c
	}
	copy(out[numFill:], s.data())
	return result
}

// StartsWith reports whether prefix begins s.
func (s Str) StartsWith(prefix Str) bool {
	return bytes.HasPrefix(s.data(), prefix.data())
}

// EndsWith reports whether suffix ends s.
func (s Str) EndsWith(suffix Str) bool {
	return bytes.HasSuffix(s.data(), suffix.data())
}

// Find returns the index of the first occurrence of needle, or -1.
func (s Str) Find(needle Str) int {
	return bytes.Index(s.data(), needle.data())
}

// Upper returns a copy with ASCII letters uppercased.
func (s Str) Upper() Str {
	return s.mapASCII(func(c byte) byte {
		if 'a' <= c && c <= 'z' {
			return c - ('a' - 'A')
		}
		return c
	})
}

// Lower returns a copy with ASCII letters lowercased.
func (s Str) Lower() Str {
	return s.mapASCII(func(c byte) byte {
		if 'A' <= c && c <= 'Z' {
			return c + ('a' - 'A')
		}
		return c
	})
}

func (s Str) mapASCII(f func(byte) byte) Str {
	n := s.Len()
	if n == 0 {
		return s
	}
	rs := heap.PushRoots(slot(&s))
	defer rs.Pop()

	result := AllocStr(n)
	out, in := result.data(), s.data()
	for i := 0; i < n; i++ {
		out[i] = f(in[i])
	}
	return result
}

// IsDigit reports whether s is non-empty and all ASCII digits.
func (s Str) IsDigit() bool {
	return s.all(func(c byte) bool { return '0' <= c && c <= '9' })
}

// IsAlpha reports whether s is non-empty and all ASCII letters.
func (s Str) IsAlpha() bool {
	return s.all(func(c byte) bool {
		return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
	})
}

// IsUpper reports whether s is non-empty and all ASCII uppercase.
func (s Str) IsUpper() bool {
	return s.all(func(c byte) bool { return 'A' <= c && c <= 'Z' })
}

func (s Str) all(pred func(byte) bool) bool {
	n := s.Len()
	if n == 0 {
		return false // special case
	}
	for _, c := range s.data() {
		if !pred(c) {
			return false
		}
	}
	return true
}
