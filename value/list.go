package value

import (
	"slices"

	"github.com/toshproject/tosh/heap"
	"github.com/toshproject/tosh/internal/format"
)

// List is a growable array backed by a separately allocated slab. The
// list object itself is fixed-size: a packed length/capacity word and the
// slab ref. The slab may be replaced by any operation that can allocate,
// so callers must never cache element views across one.
type List[T Elem] heap.Ref

const (
	listLenOff  = format.HeaderSize     // uint32 length
	listCapOff  = format.HeaderSize + 4 // uint32 capacity
	listSlabIdx = 1                     // field slot of the slab ref
	listObjLen  = format.HeaderSize + 2*format.WordSize

	initialListCap = 4
)

var listMask = format.MaskBit(listSlabIdx)

// NewList builds a list holding items.
func NewList[T Elem](items ...T) List[T] {
	var l List[T]
	rs := heap.PushRoots(slot(&l))
	defer rs.Pop()

	// Snapshot the items as rooted words: constructing the list can
	// collect, and managed items would go stale otherwise.
	words := make([]heap.Ref, len(items))
	for i, it := range items {
		words[i] = heap.Ref(wordOf(it))
	}
	if isManaged[T]() {
		for i := range words {
			rs.Push(&words[i])
		}
	}

	l = newListWithCap[T](len(items))
	for i, w := range words {
		slabSet(l.slab(), i, uint64(w))
	}
	l.setLen(len(items))
	return l
}

// ListRepeat builds the list [item] * times.
func ListRepeat[T Elem](item T, times int) List[T] {
	var l List[T]
	rs := heap.PushRoots(slot(&l))
	defer rs.Pop()

	w := heap.Ref(wordOf(item))
	if isManaged[T]() {
		rs.Push(&w)
	}

	if times < 0 {
		times = 0
	}
	l = newListWithCap[T](times)
	for i := 0; i < times; i++ {
		slabSet(l.slab(), i, uint64(w))
	}
	l.setLen(times)
	return l
}

func newListWithCap[T Elem](capacity int) List[T] {
	r := heap.Allocate(listObjLen)
	format.WriteHeader(heap.Bytes(r), 0, format.TagFixedSize, 0, listMask, listObjLen)
	l := List[T](r)
	if capacity > 0 {
		rs := heap.PushRoots(slot(&l))
		defer rs.Pop()
		sl := newSlab(capacity, isManaged[T]())
		l.setSlab(sl)
		l.setCap(capacity)
	}
	return l
}

// Len returns the number of elements in use.
func (l List[T]) Len() int {
	return int(format.ReadU32(heap.Bytes(heap.Ref(l)), listLenOff))
}

func (l List[T]) setLen(n int) {
	format.PutU32(heap.Bytes(heap.Ref(l)), listLenOff, uint32(n))
}

func (l List[T]) capacity() int {
	return int(format.ReadU32(heap.Bytes(heap.Ref(l)), listCapOff))
}

func (l List[T]) setCap(n int) {
	format.PutU32(heap.Bytes(heap.Ref(l)), listCapOff, uint32(n))
}

func (l List[T]) slab() heap.Ref {
	return heap.Ref(format.ReadU64(heap.Bytes(heap.Ref(l)), format.FieldOff(listSlabIdx)))
}

func (l List[T]) setSlab(sl heap.Ref) {
	format.PutU64(heap.Bytes(heap.Ref(l)), format.FieldOff(listSlabIdx), uint64(sl))
}

// Obj widens l for storage in a heterogeneous slot.
func (l List[T]) Obj() Obj {
	return Obj(l)
}

// ListFromObj narrows an Obj known to be a list of T.
func ListFromObj[T Elem](o Obj) List[T] {
	return List[T](o)
}

// wrap applies negative-index wrapping and bounds-checks the result.
func (l List[T]) wrap(i int) (int, error) {
	n := l.Len()
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, &IndexError{}
	}
	return i, nil
}

// Index returns the element at i. Negative i counts from the end.
func (l List[T]) Index(i int) (T, error) {
	i, err := l.wrap(i)
	if err != nil {
		var zero T
		return zero, err
	}
	return elemAt[T](slabGet(l.slab(), i)), nil
}

// Set replaces the element at i.
func (l List[T]) Set(i int, v T) error {
	i, err := l.wrap(i)
	if err != nil {
		return err
	}
	slabSet(l.slab(), i, wordOf(v))
	return nil
}

// Append adds x at the end, growing the slab by doubling when full.
func (l List[T]) Append(x T) {
	rs := heap.PushRoots(slot(&l))
	defer rs.Pop()

	xw := heap.Ref(wordOf(x))
	if isManaged[T]() {
		rs.Push(&xw)
	}

	l.ensure(l.Len() + 1)
	n := l.Len()
	slabSet(l.slab(), n, uint64(xw))
	l.setLen(n + 1)
}

// Extend appends every element of other.
func (l List[T]) Extend(other List[T]) {
	rs := heap.PushRoots(slot(&l), slot(&other))
	defer rs.Pop()

	n, m := l.Len(), other.Len()
	l.ensure(n + m)
	for i := 0; i < m; i++ {
		slabSet(l.slab(), n+i, slabGet(other.slab(), i))
	}
	l.setLen(n + m)
}

// ensure grows the slab to hold at least n elements.
func (l List[T]) ensure(n int) {
	c := l.capacity()
	if n <= c {
		return
	}
	newCap := max(initialListCap, 2*c)
	for newCap < n {
		newCap *= 2
	}

	// The receiver is a copy; it needs its own root across the slab
	// allocation even when the caller rooted its own.
	rs := heap.PushRoots(slot(&l))
	defer rs.Pop()

	sl := newSlab(newCap, isManaged[T]()) // may move l and the old slab
	old := l.slab()
	if !old.IsNull() {
		for i := 0; i < l.Len(); i++ {
			slabSet(sl, i, slabGet(old, i))
		}
	}
	l.setSlab(sl)
	l.setCap(newCap)
}

// Pop removes and returns the last element.
func (l List[T]) Pop() (T, error) {
	return l.PopAt(-1)
}

// PopAt removes and returns the element at i, shifting the tail down.
func (l List[T]) PopAt(i int) (T, error) {
	i, err := l.wrap(i)
	if err != nil {
		var zero T
		return zero, err
	}
	n := l.Len()
	sl := l.slab()
	v := slabGet(sl, i)
	for j := i; j < n-1; j++ {
		slabSet(sl, j, slabGet(sl, j+1))
	}
	slabSet(sl, n-1, 0) // zero the vacated slot for the collector
	l.setLen(n - 1)
	return elemAt[T](v), nil
}

// Reverse reverses the list in place.
func (l List[T]) Reverse() {
	sl := l.slab()
	for i, j := 0, l.Len()-1; i < j; i, j = i+1, j-1 {
		wi, wj := slabGet(sl, i), slabGet(sl, j)
		slabSet(sl, i, wj)
		slabSet(sl, j, wi)
	}
}

// Sort orders the elements: numeric for scalars, bytewise with a length
// tiebreaker for strings. Sorting allocates nothing, so element refs stay
// put while the comparator runs.
func (l List[T]) Sort() {
	n := l.Len()
	sl := l.slab()
	elems := make([]T, n)
	for i := range elems {
		elems[i] = elemAt[T](slabGet(sl, i))
	}
	slices.SortFunc(elems, elemCmp[T])
	for i, v := range elems {
		slabSet(sl, i, wordOf(v))
	}
}

// ListContains reports whether needle is in haystack, comparing strings
// by bytes and everything else by slot value.
func ListContains[T Elem](haystack List[T], needle T) bool {
	n := haystack.Len()
	for i := 0; i < n; i++ {
		v, _ := haystack.Index(i)
		if elemsEqual(v, needle) {
			return true
		}
	}
	return false
}
