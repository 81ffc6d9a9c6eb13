package value

import (
	"github.com/toshproject/tosh/heap"
	"github.com/toshproject/tosh/internal/format"
)

// Sum-type node support: the primitives a schema compiler targets. Each
// schema product becomes a fixed-size node whose header carries the
// variant's type tag and a field mask computed at type-definition time.
// Variants of one sum share no Go type; dispatch is by tag, through a
// guarded cast that returns null on mismatch.

// MaskOf computes a field mask from the slots that hold managed refs.
//
//	var literalMask = value.MaskOf(0)       // field 0 is a ref
//	var pairMask    = value.MaskOf(0, 2)    // fields 0 and 2 are refs
func MaskOf(refFields ...int) uint16 {
	mask := uint16(0)
	for _, i := range refFields {
		assertf(i >= 0 && i < format.MaxFields, "MaskOf: field %d out of range", i)
		mask |= format.MaskBit(i)
	}
	return mask
}

// NewNode allocates a node of numFields word slots, all zero. The caller
// fills the fields; any managed arguments must be rooted across this call.
func NewNode(typeTag uint8, fieldMask uint16, numFields int) Obj {
	objLen := format.HeaderSize + numFields*format.WordSize
	if objLen < format.MinObjSize {
		objLen = format.MinObjSize
	}
	r := heap.Allocate(objLen)
	format.WriteHeader(heap.Bytes(r), 0, format.TagFixedSize, typeTag, fieldMask, objLen)
	return Obj(r)
}

// TypeTag returns the variant discriminator, stable for the node's
// lifetime.
func (o Obj) TypeTag() uint8 {
	return format.TypeTag(heap.Bytes(heap.Ref(o)), 0)
}

// CastTag is the guarded cast: o when its tag matches, null otherwise.
func CastTag(o Obj, typeTag uint8) Obj {
	if o.IsNull() || o.TypeTag() != typeTag {
		return 0
	}
	return o
}

// Field reads slot i as a managed ref.
func (o Obj) Field(i int) Obj {
	return Obj(format.ReadU64(heap.Bytes(heap.Ref(o)), format.FieldOff(i)))
}

// SetField writes slot i as a managed ref. The slot must be covered by
// the node's field mask.
func (o Obj) SetField(i int, v Obj) {
	format.PutU64(heap.Bytes(heap.Ref(o)), format.FieldOff(i), uint64(v))
}

// Word reads slot i as a scalar.
func (o Obj) Word(i int) uint64 {
	return format.ReadU64(heap.Bytes(heap.Ref(o)), format.FieldOff(i))
}

// SetWord writes slot i as a scalar. The slot must not be covered by the
// node's field mask.
func (o Obj) SetWord(i int, w uint64) {
	format.PutU64(heap.Bytes(heap.Ref(o)), format.FieldOff(i), w)
}

// IntField and BoolField decode common scalar slots.
func (o Obj) IntField(i int) int {
	return int(o.Word(i))
}

func (o Obj) BoolField(i int) bool {
	return o.Word(i) != 0
}

func (o Obj) SetIntField(i, v int) {
	o.SetWord(i, uint64(v))
}

func (o Obj) SetBoolField(i int, v bool) {
	w := uint64(0)
	if v {
		w = 1
	}
	o.SetWord(i, w)
}
