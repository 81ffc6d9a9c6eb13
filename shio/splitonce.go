package shio

import (
	"bytes"

	"github.com/toshproject/tosh/heap"
	"github.com/toshproject/tosh/value"
)

// SplitOnce cuts s at the first occurrence of a one-byte delimiter,
// returning the pair (before, after). When the delimiter is absent the
// pair is (s, null).
func SplitOnce(s, delim value.Str) value.Tuple2[value.Str, value.Str] {
	if delim.Len() != 1 {
		panic(&value.AssertionError{Msg: "split_once: delimiter must be one byte"})
	}
	idx := bytes.IndexByte(s.Data(), delim.Data()[0])
	if idx < 0 {
		return value.NewTuple2(s, value.Str(0))
	}

	var before, after value.Str
	rs := heap.PushRoots(refOf(&s), refOf(&before), refOf(&after))
	defer rs.Pop()

	before = s.Slice(0, idx)
	after = s.Slice(idx+1, s.Len())
	return value.NewTuple2(before, after)
}
