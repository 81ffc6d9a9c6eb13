package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toshproject/tosh/internal/format"
)

func TestMarkSweep_AllocateZeroed(t *testing.T) {
	h := NewMarkSweep(100)

	r := h.Allocate(40)
	b := h.Bytes(r)
	require.Len(t, b, 40)
	for i, v := range b {
		require.Zero(t, v, "byte %d of a fresh allocation must be zero", i)
	}
}

func TestMarkSweep_RefsAreStable(t *testing.T) {
	h := NewMarkSweep(1 << 20)

	r := allocOpaque(h, []byte("stable"))
	h.PushRoot(&r)
	defer h.PopRoot()

	before := r
	h.Collect()

	assert.Equal(t, before, r, "mark-sweep never moves objects")
	assert.Equal(t, []byte("stable"), payload(h, r)[:6])
}

func TestMarkSweep_UnreachableFreedExactlyOnce(t *testing.T) {
	h := NewMarkSweep(1 << 20)

	keep := allocFixed(h, NullRef)
	h.PushRoot(&keep)
	defer h.PopRoot()

	const garbage = 10000
	for i := 0; i < garbage; i++ {
		allocOpaque(h, []byte("doomed"))
	}
	freedBefore := h.Stats().NumFreed

	h.Collect()

	st := h.Stats()
	assert.Equal(t, freedBefore+garbage, st.NumFreed, "each dead block is freed once")
	assert.Equal(t, 1, st.NumLive)

	// A second cycle must not free anything further.
	h.Collect()
	assert.Equal(t, freedBefore+garbage, h.Stats().NumFreed)
}

func TestMarkSweep_TracesThroughGraph(t *testing.T) {
	h := NewMarkSweep(1 << 20)

	leaf := allocOpaque(h, []byte("leaf"))
	slab := allocScanned(h, leaf, NullRef)
	root := allocFixed(h, slab)
	h.PushRoot(&root)
	defer h.PopRoot()

	h.Collect()

	st := h.Stats()
	assert.Equal(t, 3, st.NumLive, "root, slab and leaf all survive")
	assert.Equal(t, []byte("leaf"), payload(h, leaf)[:4])
}

func TestMarkSweep_CyclesAreCollected(t *testing.T) {
	h := NewMarkSweep(1 << 20)

	a := allocFixed(h, NullRef)
	b := allocFixed(h, a)
	format.PutU64(h.Bytes(a), format.FieldOff(0), uint64(b))

	// No roots: the cycle is garbage despite the mutual references.
	h.Collect()

	assert.Equal(t, 0, h.Stats().NumLive)
	assert.Equal(t, int64(2), h.Stats().NumFreed)
}

func TestMarkSweep_ThresholdTriggersCollection(t *testing.T) {
	h := NewMarkSweep(64)

	for i := 0; i < 200; i++ {
		allocOpaque(h, []byte("short-lived"))
	}

	st := h.Stats()
	assert.Greater(t, st.Collections, 0, "allocation pressure must trigger collections")
	assert.Greater(t, st.NumFreed, int64(0))
}

func TestMarkSweep_ThresholdBacksOffWhenMostlyLive(t *testing.T) {
	h := NewMarkSweep(64)

	refs := make([]Ref, 200)
	for i := range refs {
		h.PushRoot(&refs[i])
	}
	defer func() {
		for range refs {
			h.PopRoot()
		}
	}()
	for i := range refs {
		refs[i] = allocOpaque(h, []byte("long-lived"))
	}

	assert.Greater(t, h.gcThreshold, 64, "a mostly-live cycle must raise the threshold")
}

func TestMarkSweep_FrameRootsKeepValuesAlive(t *testing.T) {
	h := NewMarkSweep(1 << 20)
	rs := h.RootSet()

	rs.PushScope()
	r := allocOpaque(h, []byte("framed"))
	rs.RootInCurrentFrame(r)

	h.Collect()
	assert.Equal(t, 1, h.Stats().NumLive)
	assert.Equal(t, []byte("framed"), payload(h, r)[:6])

	rs.PopScope()
	h.Collect()
	assert.Equal(t, 0, h.Stats().NumLive, "popping the scope drops the root")
}

func TestMarkSweep_ProcessExitFreesEverything(t *testing.T) {
	h := NewMarkSweep(1 << 20)

	r := allocOpaque(h, []byte("x"))
	h.PushRoot(&r)
	h.ProcessExit(false)
	h.PopRoot()

	st := h.Stats()
	assert.Equal(t, 0, st.NumLive)
	assert.Equal(t, int64(1), st.NumFreed)
}
