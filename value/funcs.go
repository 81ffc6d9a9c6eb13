package value

import (
	"bytes"
	"errors"
	"strconv"

	"github.com/toshproject/tosh/heap"
)

// Free functions over the managed types: concatenation, repetition,
// comparison, numeric conversion.

// Measurable is anything with a length: Str, List, Dict.
type Measurable interface {
	Len() int
}

// Len is the polymorphic length function.
func Len(x Measurable) int {
	return x.Len()
}

// StrEquals compares two managed strings by bytes.
func StrEquals(a, b Str) bool {
	if a.Len() != b.Len() {
		return false
	}
	return bytes.Equal(a.data(), b.data())
}

// StrEqualsGo compares a managed string against a native one.
func StrEqualsGo(s Str, gs string) bool {
	return string(s.data()) == gs
}

// StrCmp orders strings bytewise, with length as the tiebreaker when one
// is a prefix of the other.
func StrCmp(a, b Str) int {
	return bytes.Compare(a.data(), b.data())
}

// IntCmp is the three-way integer comparison.
func IntCmp(a, b int) int {
	if a == b {
		return 0
	}
	if a < b {
		return -1
	}
	return 1
}

// StrConcat is a + b.
func StrConcat(a, b Str) Str {
	rs := heap.PushRoots(slot(&a), slot(&b))
	defer rs.Pop()

	lenA, lenB := a.Len(), b.Len()
	result := AllocStr(lenA + lenB)
	out := result.data()
	copy(out, a.data())
	copy(out[lenA:], b.data())
	return result
}

// StrConcat3 is a + b + c, for path joining.
func StrConcat3(a, b, c Str) Str {
	rs := heap.PushRoots(slot(&a), slot(&b), slot(&c))
	defer rs.Pop()

	lenA, lenB, lenC := a.Len(), b.Len(), c.Len()
	result := AllocStr(lenA + lenB + lenC)
	out := result.data()
	copy(out, a.data())
	copy(out[lenA:], b.data())
	copy(out[lenA+lenB:], c.data())
	return result
}

// StrRepeat is s * times. Zero or negative times yields the empty string.
func StrRepeat(s Str, times int) Str {
	if times <= 0 {
		return EmptyStr
	}
	rs := heap.PushRoots(slot(&s))
	defer rs.Pop()

	partLen := s.Len()
	result := AllocStr(partLen * times)
	out := result.data()
	for i := 0; i < times; i++ {
		copy(out[i*partLen:], s.data())
	}
	return result
}

// StrContains reports whether needle occurs in haystack.
func StrContains(haystack, needle Str) bool {
	return bytes.Contains(haystack.data(), needle.data())
}

// trimSpaceView narrows a byte view past ASCII whitespace on both ends.
func trimSpaceView(b []byte) []byte {
	lo, hi := 0, len(b)
	for lo < hi && isASCIISpace(b[lo]) {
		lo++
	}
	for hi > lo && isASCIISpace(b[hi-1]) {
		hi--
	}
	return b[lo:hi]
}

func isASCIISpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	}
	return false
}

// ToInt parses a signed integer. Whitespace on either end is permitted,
// like the C string-to-long the shell inherited. Base 0 infers the base
// from a 0x/0o/0b prefix. Empty, malformed or overflowing input is a
// ValueError.
func ToInt(s Str, base int) (int, error) {
	if base != 0 && (base < 2 || base > 36) {
		return 0, &ValueError{Msg: strconv.Itoa(base) + " is not a valid integer base"}
	}
	trimmed := trimSpaceView(s.data())
	if len(trimmed) == 0 {
		return 0, &ValueError{Msg: "cannot convert empty string to integer"}
	}
	v, err := strconv.ParseInt(string(trimmed), base, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, &ValueError{Msg: "integer out of range: " + string(trimmed)}
		}
		return 0, &ValueError{Msg: "invalid integer: " + string(trimmed)}
	}
	return int(v), nil
}

// ToInt10 is ToInt in base 10.
func ToInt10(s Str) (int, error) {
	return ToInt(s, 10)
}

// ToFloat parses a floating-point number, with the same whitespace
// tolerance as ToInt.
func ToFloat(s Str) (float64, error) {
	trimmed := trimSpaceView(s.data())
	if len(trimmed) == 0 {
		return 0, &ValueError{Msg: "cannot convert empty string to float"}
	}
	v, err := strconv.ParseFloat(string(trimmed), 64)
	if err != nil {
		return 0, &ValueError{Msg: "invalid float: " + string(trimmed)}
	}
	return v, nil
}

// StrFromInt renders i in decimal.
func StrFromInt(i int) Str {
	var buf [20]byte
	return StrFromBytes(strconv.AppendInt(buf[:0], int64(i), 10))
}

// StrFromFloat renders f in the shortest form that round-trips.
func StrFromFloat(f float64) Str {
	var buf [32]byte
	return StrFromBytes(strconv.AppendFloat(buf[:0], f, 'g', -1, 64))
}

// Chr returns the one-byte string for a byte value.
func Chr(i int) (Str, error) {
	if i < 0 || i > 255 {
		return 0, &ValueError{Msg: "chr: byte out of range"}
	}
	res := AllocStr(1)
	res.data()[0] = byte(i)
	return res, nil
}

// Ord returns the byte value of a one-byte string.
func Ord(s Str) (int, error) {
	if s.Len() != 1 {
		return 0, &ValueError{Msg: "ord: expected a one-byte string"}
	}
	return int(s.data()[0]), nil
}

// ToBool is the truthiness of a string: non-empty.
func ToBool(s Str) bool {
	return s.Len() != 0
}

// Sorted returns the keys of d in sorted order.
func Sorted[K Key, V Elem](d Dict[K, V]) List[K] {
	keys := d.Keys()
	keys.Sort()
	return keys
}
