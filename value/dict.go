package value

import (
	"fmt"

	"github.com/toshproject/tosh/heap"
	"github.com/toshproject/tosh/internal/format"
)

// Dict is a map backed by three parallel slabs sharing one capacity: an
// index slab of per-slot states, a keys slab and a values slab. Lookup is
// a linear probe over the index slab: deleted entries are skipped, an
// empty entry terminates the scan. Iteration follows slot order, which is
// insertion order until a removal; a new key then fills the first
// tombstone, ahead of keys inserted earlier.
//
// TODO: replace the linear probe with a hash probe; the slot states are
// already what open addressing needs.
type Dict[K Key, V Elem] heap.Ref

const (
	dictLenOff   = format.HeaderSize
	dictCapOff   = format.HeaderSize + 4
	dictIndexIdx = 1
	dictKeysIdx  = 2
	dictValsIdx  = 3
	dictObjLen   = format.HeaderSize + 4*format.WordSize

	// Index slab states. Any other value means the slot is occupied.
	emptyEntry   int64 = -1
	deletedEntry int64 = -2

	// Capacity rounding: the next power of two of n+adjust, minus adjust.
	dictCapAdjust = 2
)

var dictMask = format.MaskBit(dictIndexIdx) | format.MaskBit(dictKeysIdx) | format.MaskBit(dictValsIdx)

// NewDict builds an empty dict. Slabs are allocated on first insert.
func NewDict[K Key, V Elem]() Dict[K, V] {
	r := heap.Allocate(dictObjLen)
	format.WriteHeader(heap.Bytes(r), 0, format.TagFixedSize, 0, dictMask, dictObjLen)
	return Dict[K, V](r)
}

// Len returns the number of live entries.
func (d Dict[K, V]) Len() int {
	return int(format.ReadU32(heap.Bytes(heap.Ref(d)), dictLenOff))
}

func (d Dict[K, V]) setLen(n int) {
	format.PutU32(heap.Bytes(heap.Ref(d)), dictLenOff, uint32(n))
}

func (d Dict[K, V]) capacity() int {
	return int(format.ReadU32(heap.Bytes(heap.Ref(d)), dictCapOff))
}

func (d Dict[K, V]) setCap(n int) {
	format.PutU32(heap.Bytes(heap.Ref(d)), dictCapOff, uint32(n))
}

func (d Dict[K, V]) slabAt(idx int) heap.Ref {
	return heap.Ref(format.ReadU64(heap.Bytes(heap.Ref(d)), format.FieldOff(idx)))
}

func (d Dict[K, V]) setSlabAt(idx int, sl heap.Ref) {
	format.PutU64(heap.Bytes(heap.Ref(d)), format.FieldOff(idx), uint64(sl))
}

func (d Dict[K, V]) indexSlab() heap.Ref { return d.slabAt(dictIndexIdx) }
func (d Dict[K, V]) keysSlab() heap.Ref  { return d.slabAt(dictKeysIdx) }
func (d Dict[K, V]) valsSlab() heap.Ref  { return d.slabAt(dictValsIdx) }

// Obj widens d for storage in a heterogeneous slot.
func (d Dict[K, V]) Obj() Obj {
	return Obj(d)
}

// DictFromObj narrows an Obj known to be a dict.
func DictFromObj[K Key, V Elem](o Obj) Dict[K, V] {
	return Dict[K, V](o)
}

// positionOfKey scans the index slab for key. Returns the slot, or -1.
func (d Dict[K, V]) positionOfKey(key K) int {
	c := d.capacity()
	if c == 0 {
		return -1
	}
	idx, keys := d.indexSlab(), d.keysSlab()
	for i := 0; i < c; i++ {
		switch slabGetI64(idx, i) {
		case deletedEntry:
			continue // keep searching
		case emptyEntry:
			return -1 // not found
		}
		if keysEqual(elemAt[K](slabGet(keys, i)), key) {
			return i
		}
	}
	return -1
}

// Index returns the value at key, or a KeyError.
func (d Dict[K, V]) Index(key K) (V, error) {
	pos := d.positionOfKey(key)
	if pos == -1 {
		var zero V
		return zero, &KeyError{Key: keyString(key)}
	}
	return elemAt[V](slabGet(d.valsSlab(), pos)), nil
}

// Get returns the value at key, or the zero value (the null sentinel for
// managed types).
func (d Dict[K, V]) Get(key K) V {
	pos := d.positionOfKey(key)
	if pos == -1 {
		var zero V
		return zero
	}
	return elemAt[V](slabGet(d.valsSlab(), pos))
}

// GetDefault returns the value at key, or def.
func (d Dict[K, V]) GetDefault(key K, def V) V {
	pos := d.positionOfKey(key)
	if pos == -1 {
		return def
	}
	return elemAt[V](slabGet(d.valsSlab(), pos))
}

// Contains reports whether key is present.
func (d Dict[K, V]) Contains(key K) bool {
	return d.positionOfKey(key) != -1
}

// Set inserts or overwrites. Overwriting an existing key keeps its slot,
// so iteration order is unchanged.
func (d Dict[K, V]) Set(key K, val V) {
	rs := heap.PushRoots(slot(&d))
	defer rs.Pop()

	kw := heap.Ref(wordOf(key))
	vw := heap.Ref(wordOf(val))
	if isManagedKey[K]() {
		rs.Push(&kw)
	}
	if isManaged[V]() {
		rs.Push(&vw)
	}

	if pos := d.positionOfKey(key); pos != -1 {
		slabSet(d.valsSlab(), pos, uint64(vw))
		return
	}

	d.reserve(d.Len() + 1) // may rebuild all three slabs

	// First reusable slot: a tombstone or the empty tail.
	idx := d.indexSlab()
	c := d.capacity()
	pos := -1
	for i := 0; i < c; i++ {
		if e := slabGetI64(idx, i); e == emptyEntry || e == deletedEntry {
			pos = i
			break
		}
	}
	assertf(pos >= 0, "dict: no free slot after reserve")

	slabSetI64(idx, pos, 0)
	slabSet(d.keysSlab(), pos, uint64(kw))
	slabSet(d.valsSlab(), pos, uint64(vw))
	d.setLen(d.Len() + 1)
}

// reserve grows the three slabs in lockstep so they can hold at least n
// entries.
func (d Dict[K, V]) reserve(n int) {
	if d.capacity() >= n {
		return
	}
	newCap := roundCapacity(n)

	// The receiver copy roots itself across the three allocations.
	var ni, nk, nv heap.Ref
	rs := heap.PushRoots(slot(&d), &ni, &nk, &nv)
	defer rs.Pop()

	ni = newSlab(newCap, false)
	for i := 0; i < newCap; i++ {
		slabSetI64(ni, i, emptyEntry) // the linear probe needs the tail empty
	}
	nk = newSlab(newCap, isManagedKey[K]())
	nv = newSlab(newCap, isManaged[V]())

	oldCap := d.capacity()
	if oldCap > 0 {
		oi, ok, ov := d.indexSlab(), d.keysSlab(), d.valsSlab()
		for i := 0; i < oldCap; i++ {
			slabSet(ni, i, slabGet(oi, i))
			slabSet(nk, i, slabGet(ok, i))
			slabSet(nv, i, slabGet(ov, i))
		}
	}

	d.setSlabAt(dictIndexIdx, ni)
	d.setSlabAt(dictKeysIdx, nk)
	d.setSlabAt(dictValsIdx, nv)
	d.setCap(newCap)
}

// roundCapacity rounds n up the way reserve grows: to the next power of
// two of n+adjust, minus adjust (2, 6, 14, 30, ...).
func roundCapacity(n int) int {
	p := 2
	for p < n+dictCapAdjust {
		p *= 2
	}
	return p - dictCapAdjust
}

// Remove deletes key if present: the slot becomes a tombstone and the
// key/value words are zeroed so the collector sees no refs.
func (d Dict[K, V]) Remove(key K) {
	pos := d.positionOfKey(key)
	if pos == -1 {
		return
	}
	slabSetI64(d.indexSlab(), pos, deletedEntry)
	slabSet(d.keysSlab(), pos, 0)
	slabSet(d.valsSlab(), pos, 0)
	d.setLen(d.Len() - 1)
}

// Clear drops every entry but keeps the slabs.
func (d Dict[K, V]) Clear() {
	c := d.capacity()
	if c == 0 {
		return
	}
	idx, keys, vals := d.indexSlab(), d.keysSlab(), d.valsSlab()
	for i := 0; i < c; i++ {
		slabSetI64(idx, i, emptyEntry)
		slabSet(keys, i, 0)
		slabSet(vals, i, 0)
	}
	d.setLen(0)
}

// Keys returns the live keys in slot order.
func (d Dict[K, V]) Keys() List[K] {
	var result List[K]
	rs := heap.PushRoots(slot(&d), slot(&result))
	defer rs.Pop()

	result = newListWithCap[K](d.Len())
	for i := 0; ; i++ {
		pos := d.validPosAfter(i)
		if pos < 0 {
			break
		}
		i = pos
		result.Append(elemAt[K](slabGet(d.keysSlab(), pos)))
	}
	return result
}

// Values returns the live values in slot order.
func (d Dict[K, V]) Values() List[V] {
	var result List[V]
	rs := heap.PushRoots(slot(&d), slot(&result))
	defer rs.Pop()

	result = newListWithCap[V](d.Len())
	for i := 0; ; i++ {
		pos := d.validPosAfter(i)
		if pos < 0 {
			break
		}
		i = pos
		result.Append(elemAt[V](slabGet(d.valsSlab(), pos)))
	}
	return result
}

// validPosAfter returns the first occupied slot at or after pos, or -1.
func (d Dict[K, V]) validPosAfter(pos int) int {
	c := d.capacity()
	for {
		if pos >= c {
			return -1
		}
		switch slabGetI64(d.indexSlab(), pos) {
		case deletedEntry:
			pos++
			continue
		case emptyEntry:
			return -1
		}
		return pos
	}
}

// DictContains reports whether needle is a key of haystack.
func DictContains[K Key, V Elem](haystack Dict[K, V], needle K) bool {
	return haystack.Contains(needle)
}

func keyString[K Key](key K) string {
	switch k := any(key).(type) {
	case int:
		return fmt.Sprintf("%d", k)
	case Str:
		return k.String()
	}
	return "?"
}
