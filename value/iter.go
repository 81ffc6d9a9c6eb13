package value

import (
	"github.com/toshproject/tosh/heap"
)

// Iterators register their target as a GC root for their own lifetime, so
// a collection in the middle of a loop body updates the iterator rather
// than stranding it. Close must be called on every exit path, and
// iterators close LIFO, like the root scopes they sit on.
//
// Mutating the target through another alias while iterating is
// unspecified: the position may skip or repeat.

// StrIter yields the one-byte strings of s in order.
type StrIter struct {
	s Str
	i int
}

// NewStrIter returns an iterator over s, rooting it.
func NewStrIter(s Str) *StrIter {
	it := &StrIter{s: s}
	heap.PushRoot(slot(&it.s))
	return it
}

// Close releases the root.
func (it *StrIter) Close() {
	heap.PopRoot()
}

// Done reports whether iteration is finished.
func (it *StrIter) Done() bool {
	return it.i >= it.s.Len()
}

// Next advances the iterator.
func (it *StrIter) Next() {
	it.i++
}

// Value returns the current byte as a one-byte string. It allocates.
func (it *StrIter) Value() Str {
	res, err := it.s.Index(it.i)
	if err != nil {
		panic(&AssertionError{Msg: "StrIter past the end"})
	}
	return res
}

// ListIter yields the elements of a list in order.
type ListIter[T Elem] struct {
	l List[T]
	i int
}

// NewListIter returns an iterator over l, rooting it.
func NewListIter[T Elem](l List[T]) *ListIter[T] {
	it := &ListIter[T]{l: l}
	heap.PushRoot(slot(&it.l))
	return it
}

// Close releases the root.
func (it *ListIter[T]) Close() {
	heap.PopRoot()
}

// Done reports whether iteration is finished.
func (it *ListIter[T]) Done() bool {
	return it.i >= it.l.Len()
}

// Next advances the iterator.
func (it *ListIter[T]) Next() {
	it.i++
}

// Value returns the current element.
func (it *ListIter[T]) Value() T {
	return elemAt[T](slabGet(it.l.slab(), it.i))
}

// ReverseListIter yields the elements of a list back to front.
type ReverseListIter[T Elem] struct {
	l List[T]
	i int
}

// NewReverseListIter returns a reverse iterator over l, rooting it.
func NewReverseListIter[T Elem](l List[T]) *ReverseListIter[T] {
	it := &ReverseListIter[T]{l: l, i: l.Len() - 1}
	heap.PushRoot(slot(&it.l))
	return it
}

// Close releases the root.
func (it *ReverseListIter[T]) Close() {
	heap.PopRoot()
}

// Done reports whether iteration is finished.
func (it *ReverseListIter[T]) Done() bool {
	return it.i < 0
}

// Next advances the iterator.
func (it *ReverseListIter[T]) Next() {
	it.i--
}

// Value returns the current element.
func (it *ReverseListIter[T]) Value() T {
	return elemAt[T](slabGet(it.l.slab(), it.i))
}

// DictIter yields the live entries of a dict in slot order, skipping
// empty and deleted slots.
type DictIter[K Key, V Elem] struct {
	d   Dict[K, V]
	pos int
}

// NewDictIter returns an iterator over d, rooting it.
func NewDictIter[K Key, V Elem](d Dict[K, V]) *DictIter[K, V] {
	it := &DictIter[K, V]{d: d}
	heap.PushRoot(slot(&it.d))
	it.pos = it.d.validPosAfter(0)
	return it
}

// Close releases the root.
func (it *DictIter[K, V]) Close() {
	heap.PopRoot()
}

// Done reports whether iteration is finished.
func (it *DictIter[K, V]) Done() bool {
	return it.pos == -1
}

// Next advances to the next live entry.
func (it *DictIter[K, V]) Next() {
	it.pos = it.d.validPosAfter(it.pos + 1)
}

// Key returns the current key.
func (it *DictIter[K, V]) Key() K {
	return elemAt[K](slabGet(it.d.keysSlab(), it.pos))
}

// Value returns the current value.
func (it *DictIter[K, V]) Value() V {
	return elemAt[V](slabGet(it.d.valsSlab(), it.pos))
}
