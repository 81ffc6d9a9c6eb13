package heap

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toshproject/tosh/internal/format"
)

func TestCheney_AllocateZeroed(t *testing.T) {
	h := NewCheney(1 << 14)

	// Dirty a region, collect so the spaces swap, then check fresh
	// allocations still come back zeroed.
	r := allocOpaque(h, bytes.Repeat([]byte{0xAB}, 64))
	h.PushRoot(&r)
	h.Collect()
	h.PopRoot()

	got := h.Allocate(48)
	b := h.Bytes(got)
	for i := 0; i < 48; i++ {
		require.Zero(t, b[i], "byte %d of a fresh allocation must be zero", i)
	}
}

func TestCheney_RootPreservation(t *testing.T) {
	h := NewCheney(1 << 14)

	r := allocOpaque(h, []byte("hello, heap"))
	h.PushRoot(&r)
	defer h.PopRoot()

	before := r
	h.Collect()

	// Refs are offsets into the active space and both spaces reserve their
	// first word, so the sole survivor keeps its offset; the move shows as a
	// forwarding header left at the old location.
	assert.Equal(t, uint8(format.TagForwarded), format.HeapTag(h.to, int(before)),
		"a live object moves on every cycle")
	assert.Equal(t, []byte("hello, heap"), payload(h, r)[:11])
}

func TestCheney_UnreachableReclaimed(t *testing.T) {
	h := NewCheney(1 << 16)

	keep := allocOpaque(h, []byte("keep"))
	h.PushRoot(&keep)
	defer h.PopRoot()

	h.Collect()
	baseline := h.Stats().NumLive

	for i := 0; i < 10000; i++ {
		allocOpaque(h, []byte("garbage string payload"))
	}
	h.Collect()

	assert.Equal(t, baseline, h.Stats().NumLive,
		"live-object count must return to the pre-loop baseline")
	assert.Equal(t, []byte("keep"), payload(h, keep)[:4])
}

func TestCheney_SharedChildForwardedOnce(t *testing.T) {
	h := NewCheney(1 << 14)

	child := allocOpaque(h, []byte("shared"))
	h.PushRoot(&child)
	a := allocFixed(h, child)
	h.PushRoot(&a)
	b := allocFixed(h, child)
	h.PushRoot(&b)
	defer func() {
		h.PopRoot()
		h.PopRoot()
		h.PopRoot()
	}()

	h.Collect()

	// Both parents must point at the same relocated child.
	assert.Equal(t, fieldRef(h, a, 0), fieldRef(h, b, 0))
	assert.Equal(t, child, fieldRef(h, a, 0))
}

func TestCheney_CyclesTerminate(t *testing.T) {
	h := NewCheney(1 << 14)

	a := allocFixed(h, NullRef)
	h.PushRoot(&a)
	b := allocFixed(h, NullRef)
	h.PushRoot(&b)
	defer func() {
		h.PopRoot()
		h.PopRoot()
	}()

	// a <-> b
	format.PutU64(h.Bytes(a), format.FieldOff(0), uint64(b))
	format.PutU64(h.Bytes(b), format.FieldOff(0), uint64(a))

	h.Collect()

	assert.Equal(t, b, fieldRef(h, a, 0))
	assert.Equal(t, a, fieldRef(h, b, 0))
	assert.Equal(t, 2, h.Stats().NumLive)
}

func TestCheney_ScannedSlabSparse(t *testing.T) {
	h := NewCheney(1 << 14)

	s := allocOpaque(h, []byte("elem"))
	h.PushRoot(&s)
	slab := allocScanned(h, s, NullRef, s)
	h.PushRoot(&slab)
	defer func() {
		h.PopRoot()
		h.PopRoot()
	}()

	h.Collect()

	assert.Equal(t, s, fieldRef(h, slab, 0))
	assert.Equal(t, NullRef, fieldRef(h, slab, 1))
	assert.Equal(t, s, fieldRef(h, slab, 2))
}

func TestCheney_GlobalsNeverMove(t *testing.T) {
	h := NewCheney(1 << 14)

	g := AllocGlobal(format.HeaderSize + 8)
	gb := globalBytes(g)
	format.WriteHeader(gb, 0, format.TagGlobal, 0, 0, format.NoObjLen)

	holder := allocFixed(h, g)
	h.PushRoot(&holder)
	defer h.PopRoot()

	h.Collect()

	assert.Equal(t, g, fieldRef(h, holder, 0), "global refs pass through unchanged")
	assert.True(t, g.IsGlobal())
}

func TestCheney_GrowsUnderPressure(t *testing.T) {
	h := NewCheney(minSpaceSize)

	// Hold a growing set live so collections cannot recover the space.
	refs := make([]Ref, 256)
	for i := range refs {
		h.PushRoot(&refs[i])
	}
	defer func() {
		for range refs {
			h.PopRoot()
		}
	}()
	for i := range refs {
		refs[i] = allocOpaque(h, bytes.Repeat([]byte{byte(i)}, 64))
	}

	st := h.Stats()
	assert.Greater(t, st.Growths, 0, "the heap must grow rather than fail")
	assert.Equal(t, 256, st.NumLive, "every rooted object survives")
	for i, r := range refs {
		require.Equal(t, byte(i), payload(h, r)[0], "object %d content", i)
	}
}

func TestCheney_HugeAllocationGrows(t *testing.T) {
	h := NewCheney(minSpaceSize)

	big := h.Allocate(3 * minSpaceSize)
	b := h.Bytes(big)
	format.WriteHeader(b, 0, format.TagOpaque, 0, 0, format.Align8(3*minSpaceSize))

	h.PushRoot(&big)
	defer h.PopRoot()
	h.Collect()

	assert.GreaterOrEqual(t, h.Stats().HeapSize, 3*minSpaceSize)
}

func TestCheney_ProcessExit(t *testing.T) {
	h := NewCheney(1 << 14)
	allocOpaque(h, []byte("x"))

	h.ProcessExit(false)
	assert.Nil(t, h.from)
	assert.Nil(t, h.to)
}
