package value

import (
	"github.com/toshproject/tosh/heap"
	"github.com/toshproject/tosh/internal/format"
)

// Small value tuples, arity 2 to 4: a fixed-size object with one word per
// slot. The field mask is computed from which slot types are managed, the
// same way the schema compiler computes node masks.

// Tuple2 is a managed pair.
type Tuple2[A, B Elem] heap.Ref

// NewTuple2 builds a pair.
func NewTuple2[A, B Elem](a A, b B) Tuple2[A, B] {
	aw := heap.Ref(wordOf(a))
	bw := heap.Ref(wordOf(b))
	rs := heap.RootScope{}
	defer rs.Pop()
	mask := uint16(0)
	if isManaged[A]() {
		mask |= format.MaskBit(0)
		rs.Push(&aw)
	}
	if isManaged[B]() {
		mask |= format.MaskBit(1)
		rs.Push(&bw)
	}

	objLen := format.HeaderSize + 2*format.WordSize
	r := heap.Allocate(objLen)
	bb := heap.Bytes(r)
	format.WriteHeader(bb, 0, format.TagFixedSize, 0, mask, objLen)
	format.PutU64(bb, format.FieldOff(0), uint64(aw))
	format.PutU64(bb, format.FieldOff(1), uint64(bw))
	return Tuple2[A, B](r)
}

// At0 returns the first slot.
func (t Tuple2[A, B]) At0() A {
	return elemAt[A](format.ReadU64(heap.Bytes(heap.Ref(t)), format.FieldOff(0)))
}

// At1 returns the second slot.
func (t Tuple2[A, B]) At1() B {
	return elemAt[B](format.ReadU64(heap.Bytes(heap.Ref(t)), format.FieldOff(1)))
}

// Tuple3 is a managed triple.
type Tuple3[A, B, C Elem] heap.Ref

// NewTuple3 builds a triple.
func NewTuple3[A, B, C Elem](a A, b B, c C) Tuple3[A, B, C] {
	aw := heap.Ref(wordOf(a))
	bw := heap.Ref(wordOf(b))
	cw := heap.Ref(wordOf(c))
	rs := heap.RootScope{}
	defer rs.Pop()
	mask := uint16(0)
	if isManaged[A]() {
		mask |= format.MaskBit(0)
		rs.Push(&aw)
	}
	if isManaged[B]() {
		mask |= format.MaskBit(1)
		rs.Push(&bw)
	}
	if isManaged[C]() {
		mask |= format.MaskBit(2)
		rs.Push(&cw)
	}

	objLen := format.HeaderSize + 3*format.WordSize
	r := heap.Allocate(objLen)
	bb := heap.Bytes(r)
	format.WriteHeader(bb, 0, format.TagFixedSize, 0, mask, objLen)
	format.PutU64(bb, format.FieldOff(0), uint64(aw))
	format.PutU64(bb, format.FieldOff(1), uint64(bw))
	format.PutU64(bb, format.FieldOff(2), uint64(cw))
	return Tuple3[A, B, C](r)
}

func (t Tuple3[A, B, C]) At0() A {
	return elemAt[A](format.ReadU64(heap.Bytes(heap.Ref(t)), format.FieldOff(0)))
}

func (t Tuple3[A, B, C]) At1() B {
	return elemAt[B](format.ReadU64(heap.Bytes(heap.Ref(t)), format.FieldOff(1)))
}

func (t Tuple3[A, B, C]) At2() C {
	return elemAt[C](format.ReadU64(heap.Bytes(heap.Ref(t)), format.FieldOff(2)))
}

// Tuple4 is a managed quadruple.
type Tuple4[A, B, C, D Elem] heap.Ref

// NewTuple4 builds a quadruple.
func NewTuple4[A, B, C, D Elem](a A, b B, c C, d D) Tuple4[A, B, C, D] {
	aw := heap.Ref(wordOf(a))
	bw := heap.Ref(wordOf(b))
	cw := heap.Ref(wordOf(c))
	dw := heap.Ref(wordOf(d))
	rs := heap.RootScope{}
	defer rs.Pop()
	mask := uint16(0)
	if isManaged[A]() {
		mask |= format.MaskBit(0)
		rs.Push(&aw)
	}
	if isManaged[B]() {
		mask |= format.MaskBit(1)
		rs.Push(&bw)
	}
	if isManaged[C]() {
		mask |= format.MaskBit(2)
		rs.Push(&cw)
	}
	if isManaged[D]() {
		mask |= format.MaskBit(3)
		rs.Push(&dw)
	}

	objLen := format.HeaderSize + 4*format.WordSize
	r := heap.Allocate(objLen)
	bb := heap.Bytes(r)
	format.WriteHeader(bb, 0, format.TagFixedSize, 0, mask, objLen)
	format.PutU64(bb, format.FieldOff(0), uint64(aw))
	format.PutU64(bb, format.FieldOff(1), uint64(bw))
	format.PutU64(bb, format.FieldOff(2), uint64(cw))
	format.PutU64(bb, format.FieldOff(3), uint64(dw))
	return Tuple4[A, B, C, D](r)
}

func (t Tuple4[A, B, C, D]) At0() A {
	return elemAt[A](format.ReadU64(heap.Bytes(heap.Ref(t)), format.FieldOff(0)))
}

func (t Tuple4[A, B, C, D]) At1() B {
	return elemAt[B](format.ReadU64(heap.Bytes(heap.Ref(t)), format.FieldOff(1)))
}

func (t Tuple4[A, B, C, D]) At2() C {
	return elemAt[C](format.ReadU64(heap.Bytes(heap.Ref(t)), format.FieldOff(2)))
}

func (t Tuple4[A, B, C, D]) At3() D {
	return elemAt[D](format.ReadU64(heap.Bytes(heap.Ref(t)), format.FieldOff(3)))
}
