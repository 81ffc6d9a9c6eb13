package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toshproject/tosh/heap"
)

func TestDict_SetGet(t *testing.T) {
	initHeap(t)

	d := NewDict[Str, int]()
	rs := heap.PushRoots(slot(&d))
	defer rs.Pop()

	d.Set(NewStr("a"), 10)
	d.Set(NewStr("b"), 11)

	assert.Equal(t, 10, d.Get(NewStr("a")))
	assert.Equal(t, 11, d.Get(NewStr("b")))
	assert.True(t, d.Contains(NewStr("a")))
	assert.Equal(t, 2, d.Len())

	// Overwrite keeps the slot and the length.
	d.Set(NewStr("a"), 100)
	assert.Equal(t, 100, d.Get(NewStr("a")))
	assert.Equal(t, 2, d.Len())
}

func TestDict_IndexMissIsKeyError(t *testing.T) {
	initHeap(t)

	d := NewDict[Str, int]()
	rs := heap.PushRoots(slot(&d))
	defer rs.Pop()

	d.Set(NewStr("present"), 1)

	v, err := d.Index(NewStr("present"))
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = d.Index(NewStr("absent"))
	var ke *KeyError
	require.ErrorAs(t, err, &ke)
	assert.Contains(t, ke.Error(), "absent")
}

func TestDict_GetMissReturnsZero(t *testing.T) {
	initHeap(t)

	d := NewDict[Str, Str]()
	rs := heap.PushRoots(slot(&d))
	defer rs.Pop()

	got := d.Get(NewStr("missing"))
	assert.True(t, got.IsNull(), "a managed value misses to the null sentinel")

	d2 := NewDict[Str, int]()
	rs.Push(slot(&d2))
	assert.Equal(t, 0, d2.Get(NewStr("missing")))
	assert.Equal(t, 42, d2.GetDefault(NewStr("missing"), 42))
}

func TestDict_RemoveWritesTombstone(t *testing.T) {
	initHeap(t)

	d := NewDict[Str, int]()
	rs := heap.PushRoots(slot(&d))
	defer rs.Pop()

	d.Set(NewStr("a"), 10)
	d.Set(NewStr("b"), 11)
	d.Set(NewStr("c"), 12)

	d.Remove(NewStr("b"))
	assert.False(t, d.Contains(NewStr("b")))
	assert.Equal(t, 2, d.Len())

	// Entries on both sides of the tombstone stay reachable.
	assert.Equal(t, 10, d.Get(NewStr("a")))
	assert.Equal(t, 12, d.Get(NewStr("c")))

	// Removing a missing key is a no-op.
	d.Remove(NewStr("zzz"))
	assert.Equal(t, 2, d.Len())
}

func TestDict_TombstoneSlotIsReused(t *testing.T) {
	initHeap(t)

	d := NewDict[Str, int]()
	rs := heap.PushRoots(slot(&d))
	defer rs.Pop()

	d.Set(NewStr("a"), 1)
	d.Set(NewStr("b"), 2)
	capBefore := d.capacity()

	d.Remove(NewStr("a"))
	d.Set(NewStr("x"), 9)

	assert.Equal(t, capBefore, d.capacity(), "a reinsert fills the tombstone, no growth")
	assert.Equal(t, 9, d.Get(NewStr("x")))
	assert.Equal(t, 2, d.Get(NewStr("b")))
}

func TestDict_KeysValuesInSlotOrder(t *testing.T) {
	initHeap(t)

	d := NewDict[Str, int]()
	rs := heap.PushRoots(slot(&d))
	defer rs.Pop()

	for i, k := range []string{"one", "two", "three"} {
		d.Set(NewStr(k), i)
	}

	keys := d.Keys()
	rs.Push(slot(&keys))
	require.Equal(t, d.Len(), keys.Len())
	for i, want := range []string{"one", "two", "three"} {
		k, err := keys.Index(i)
		require.NoError(t, err)
		assert.Equal(t, want, k.String())
		assert.True(t, d.Contains(k), "every returned key is still present")
	}

	vals := d.Values()
	require.Equal(t, 3, vals.Len())
	for i := 0; i < 3; i++ {
		v, _ := vals.Index(i)
		assert.Equal(t, i, v)
	}
}

func TestDict_SortedKeys(t *testing.T) {
	initHeap(t)

	d := NewDict[Str, int]()
	rs := heap.PushRoots(slot(&d))
	defer rs.Pop()

	d.Set(NewStr("c"), 12)
	d.Set(NewStr("a"), 10)
	d.Set(NewStr("b"), 11)

	sorted := Sorted(d)
	want := []string{"a", "b", "c"}
	require.Equal(t, 3, sorted.Len())
	for i, w := range want {
		k, _ := sorted.Index(i)
		assert.Equal(t, w, k.String())
	}
}

func TestDict_Clear(t *testing.T) {
	initHeap(t)

	d := NewDict[Str, Str]()
	rs := heap.PushRoots(slot(&d))
	defer rs.Pop()

	d.Set(NewStr("k"), NewStr("v"))
	d.Clear()

	assert.Equal(t, 0, d.Len())
	assert.False(t, d.Contains(NewStr("k")))

	// The dict stays usable after Clear.
	d.Set(NewStr("k2"), NewStr("v2"))
	assert.Equal(t, "v2", d.Get(NewStr("k2")).String())
}

func TestDict_GrowthKeepsEntries(t *testing.T) {
	initHeap(t)

	d := NewDict[int, int]()
	rs := heap.PushRoots(slot(&d))
	defer rs.Pop()

	for i := 0; i < 200; i++ {
		d.Set(i, i*3)
	}
	require.Equal(t, 200, d.Len())
	for i := 0; i < 200; i++ {
		require.Equal(t, i*3, d.Get(i), "key %d after rehash", i)
	}
}

func TestDict_IntKeys(t *testing.T) {
	initHeap(t)

	d := NewDict[int, Str]()
	rs := heap.PushRoots(slot(&d))
	defer rs.Pop()

	d.Set(7, NewStr("seven"))
	assert.Equal(t, "seven", d.Get(7).String())
	assert.True(t, DictContains(d, 7))
	assert.False(t, DictContains(d, 8))
}

func TestRoundCapacity(t *testing.T) {
	assert.Equal(t, 2, roundCapacity(1))
	assert.Equal(t, 2, roundCapacity(2))
	assert.Equal(t, 6, roundCapacity(3))
	assert.Equal(t, 6, roundCapacity(6))
	assert.Equal(t, 14, roundCapacity(7))
	assert.Equal(t, 30, roundCapacity(15))
}
