package value

import (
	"cmp"
	"math"
	"unsafe"

	"github.com/toshproject/tosh/heap"
)

// Obj is a reference to any managed object. Heterogeneous containers and
// sum-type fields store Obj and recover the concrete type with a guarded
// cast.
type Obj heap.Ref

// IsNull reports whether o is the null reference.
func (o Obj) IsNull() bool {
	return o == 0
}

// Elem enumerates the types a container slot can hold. Scalars are stored
// by value; Str and Obj are managed refs the collector traces.
type Elem interface {
	int | bool | float64 | Str | Obj
}

// Key enumerates dict key types.
type Key interface {
	int | Str
}

// slot converts a typed managed local into a root slot.
func slot[T ~uint64](p *T) *heap.Ref {
	return (*heap.Ref)(unsafe.Pointer(p))
}

// wordOf encodes an element into its 8-byte slot representation.
func wordOf[T Elem](v T) uint64 {
	switch x := any(v).(type) {
	case int:
		return uint64(x)
	case bool:
		if x {
			return 1
		}
		return 0
	case float64:
		return math.Float64bits(x)
	case Str:
		return uint64(x)
	case Obj:
		return uint64(x)
	}
	panic(&AssertionError{Msg: "unreachable element type"})
}

// elemAt decodes an 8-byte slot into an element.
func elemAt[T Elem](w uint64) T {
	var zero T
	switch any(zero).(type) {
	case int:
		return any(int(w)).(T)
	case bool:
		return any(w != 0).(T)
	case float64:
		return any(math.Float64frombits(w)).(T)
	case Str:
		return any(Str(w)).(T)
	case Obj:
		return any(Obj(w)).(T)
	}
	panic(&AssertionError{Msg: "unreachable element type"})
}

// isManaged reports whether T's slots hold refs the collector must trace.
func isManaged[T Elem]() bool {
	var zero T
	switch any(zero).(type) {
	case Str, Obj:
		return true
	}
	return false
}

func isManagedKey[K Key]() bool {
	var zero K
	_, ok := any(zero).(Str)
	return ok
}

// elemsEqual is the equality containers use: bytewise for strings, slot
// equality (which is pointer equality for Obj) otherwise.
func elemsEqual[T Elem](a, b T) bool {
	if sa, ok := any(a).(Str); ok {
		return StrEquals(sa, any(b).(Str))
	}
	return wordOf(a) == wordOf(b)
}

func keysEqual[K Key](a, b K) bool {
	if sa, ok := any(a).(Str); ok {
		return StrEquals(sa, any(b).(Str))
	}
	return any(a).(int) == any(b).(int)
}

// elemCmp orders elements for sort: numeric order for scalars, bytewise
// with length tiebreak for strings. Obj elements order by raw ref; sorting
// a heterogeneous list is the caller's mistake.
func elemCmp[T Elem](a, b T) int {
	switch x := any(a).(type) {
	case int:
		return cmp.Compare(x, any(b).(int))
	case bool:
		return cmp.Compare(wordOf(a), wordOf(b))
	case float64:
		return cmp.Compare(x, any(b).(float64))
	case Str:
		return StrCmp(x, any(b).(Str))
	case Obj:
		return cmp.Compare(uint64(x), uint64(any(b).(Obj)))
	}
	panic(&AssertionError{Msg: "unreachable element type"})
}
