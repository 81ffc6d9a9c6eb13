package heap

import (
	"github.com/toshproject/tosh/internal/format"
)

// Test object constructors. The real container types live in the value
// package; the collector only sees headers, so these raw objects exercise
// it without that dependency.

// allocOpaque allocates an opaque object holding payload.
func allocOpaque(h Collector, payload []byte) Ref {
	objLen := format.Align8(format.HeaderSize + len(payload))
	r := h.Allocate(objLen)
	b := h.Bytes(r)
	format.WriteHeader(b, 0, format.TagOpaque, 0, 0, objLen)
	copy(b[format.HeaderSize:], payload)
	return r
}

// allocFixed allocates a fixed-size object whose slots all hold refs, with
// the field mask covering every slot. Callers must root the field refs if
// the allocation can collect.
func allocFixed(h Collector, fields ...Ref) Ref {
	objLen := format.HeaderSize + len(fields)*format.WordSize
	r := h.Allocate(objLen)
	b := h.Bytes(r)
	mask := uint16(0)
	for i := range fields {
		mask |= format.MaskBit(i)
	}
	format.WriteHeader(b, 0, format.TagFixedSize, 0, mask, objLen)
	for i, f := range fields {
		format.PutU64(b, format.FieldOff(i), uint64(f))
	}
	return r
}

// allocScanned allocates a scanned slab holding the given refs.
func allocScanned(h Collector, refs ...Ref) Ref {
	objLen := format.HeaderSize + len(refs)*format.WordSize
	r := h.Allocate(objLen)
	b := h.Bytes(r)
	format.WriteHeader(b, 0, format.TagScanned, 0, 0, objLen)
	for i, f := range refs {
		format.PutU64(b, format.FieldOff(i), uint64(f))
	}
	return r
}

// payload returns the bytes after the header, bounded by obj_len.
func payload(h Collector, r Ref) []byte {
	b := h.Bytes(r)
	return b[format.HeaderSize:format.ObjLen(b, 0)]
}

// fieldRef reads field slot i of a fixed-size or scanned object.
func fieldRef(h Collector, r Ref, i int) Ref {
	return Ref(format.ReadU64(h.Bytes(r), format.FieldOff(i)))
}
