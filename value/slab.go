package value

import (
	"github.com/toshproject/tosh/heap"
	"github.com/toshproject/tosh/internal/format"
)

// A slab is the separately allocated storage behind a list or dict: a
// homogeneous array of 8-byte words. An opaque slab holds scalars the
// collector skips; a scanned slab holds refs it traces. Unused capacity
// is zero, which a scan reads as null.

// newSlab allocates a zeroed slab with room for n words.
func newSlab(n int, scanned bool) heap.Ref {
	objLen := format.HeaderSize + n*format.WordSize
	if objLen < format.MinObjSize {
		objLen = format.MinObjSize
	}
	tag := uint8(format.TagOpaque)
	if scanned {
		tag = format.TagScanned
	}
	r := heap.Allocate(objLen)
	format.WriteHeader(heap.Bytes(r), 0, tag, 0, 0, objLen)
	return r
}

func slabGet(slab heap.Ref, i int) uint64 {
	return format.ReadU64(heap.Bytes(slab), format.FieldOff(i))
}

func slabSet(slab heap.Ref, i int, w uint64) {
	format.PutU64(heap.Bytes(slab), format.FieldOff(i), w)
}

func slabGetI64(slab heap.Ref, i int) int64 {
	return format.ReadI64(heap.Bytes(slab), format.FieldOff(i))
}

func slabSetI64(slab heap.Ref, i int, v int64) {
	format.PutI64(heap.Bytes(slab), format.FieldOff(i), v)
}
