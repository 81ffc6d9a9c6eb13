package heap

import (
	"fmt"

	set3 "github.com/TomTonic/Set3"
	"github.com/toshproject/tosh/internal/format"
)

// MarkSweepHeap is the non-moving collector. Every object gets its own
// block; a collection marks the graph reachable from the roots and frees
// every live block that went unmarked. Because nothing moves, this backend
// also supports the frame-based RootSet, which roots values rather than
// slots.
type MarkSweepHeap struct {
	blocks map[Ref][]byte
	live   []Ref

	roots   rootStack
	rootSet *RootSet

	marked *set3.Set3[uint64]

	// nextOff hands out unique, aligned refs. The offsets do not address
	// a contiguous arena, they are just stable identities.
	nextOff Ref

	// gcThreshold triggers a collection every that many allocations. A
	// cycle that leaves most objects live raises it to amortize future
	// work.
	gcThreshold   int
	allocsSinceGC int

	liveBytes int
	stats     Stats
}

var _ Collector = (*MarkSweepHeap)(nil)

// NewMarkSweep returns a mark-sweep heap collecting every gcThreshold
// allocations.
func NewMarkSweep(gcThreshold int) *MarkSweepHeap {
	if gcThreshold <= 0 {
		gcThreshold = format.DefaultGCThreshold
	}
	return &MarkSweepHeap{
		blocks:      make(map[Ref][]byte),
		rootSet:     NewRootSet(32),
		nextOff:     Ref(format.WordSize),
		gcThreshold: gcThreshold,
	}
}

// Allocate returns a ref to n zeroed bytes.
func (h *MarkSweepHeap) Allocate(n int) Ref {
	if n < format.MinObjSize {
		n = format.MinObjSize
	}
	n = format.Align8(n)

	if h.allocsSinceGC >= h.gcThreshold {
		h.Collect()
	}

	r := h.nextOff
	h.nextOff += Ref(n)
	h.blocks[r] = make([]byte, n)
	h.live = append(h.live, r)

	h.allocsSinceGC++
	h.liveBytes += n
	h.stats.NumAllocated++
	h.stats.BytesAllocated += int64(n)
	h.stats.NumLive++
	h.stats.HeapSize = h.liveBytes
	return r
}

// Bytes returns the block backing a local object.
func (h *MarkSweepHeap) Bytes(r Ref) []byte {
	b, ok := h.blocks[r]
	if !ok {
		panic(fmt.Sprintf("heap: bad ref %#x", uint64(r)))
	}
	return b
}

// Collect marks everything reachable from the local root stack and the
// frame root set, then sweeps the rest.
func (h *MarkSweepHeap) Collect() {
	h.marked = set3.Empty[uint64]()

	h.roots.forEach(func(slot *Ref) {
		h.mark(*slot)
	})
	h.rootSet.forEach(func(r Ref) {
		h.mark(r)
	})

	h.sweep()
	h.marked = nil
	h.allocsSinceGC = 0
	h.stats.Collections++
	h.stats.HeapSize = h.liveBytes

	// Mostly-live heap: back off so the next cycle has something to do.
	if h.stats.NumLive > h.gcThreshold/2 {
		h.gcThreshold = 2 * h.stats.NumLive
		h.stats.Growths++
	}

	logger.Debug("collect",
		"live", h.stats.NumLive,
		"freed_total", h.stats.NumFreed,
		"threshold", h.gcThreshold)
}

// mark traverses the object graph from r, using the same header rules the
// copying collector uses.
func (h *MarkSweepHeap) mark(r Ref) {
	if r.IsNull() || r.IsGlobal() {
		return
	}
	if h.marked.Contains(uint64(r)) {
		return
	}
	h.marked.Add(uint64(r))

	b := h.blocks[r]
	switch format.HeapTag(b, 0) {
	case format.TagFixedSize:
		mask := format.FieldMask(b, 0)
		for i := 0; i < format.MaxFields; i++ {
			if mask&format.MaskBit(i) != 0 {
				h.mark(Ref(format.ReadU64(b, format.FieldOff(i))))
			}
		}
	case format.TagScanned:
		n := (format.ObjLen(b, 0) - format.HeaderSize) / format.WordSize
		for i := 0; i < n; i++ {
			h.mark(Ref(format.ReadU64(b, format.FieldOff(i))))
		}
	}
}

// sweep frees every live block the mark phase did not reach, then adopts
// the marked set as the new live set.
func (h *MarkSweepHeap) sweep() {
	kept := h.live[:0]
	for _, r := range h.live {
		if h.marked.Contains(uint64(r)) {
			kept = append(kept, r)
			continue
		}
		h.liveBytes -= len(h.blocks[r])
		delete(h.blocks, r)
		h.stats.NumFreed++
	}
	h.live = kept
	h.stats.NumLive = len(kept)
}

// PushRoot registers a slot holding a managed ref.
func (h *MarkSweepHeap) PushRoot(slot *Ref) {
	h.roots.push(slot)
}

// PopRoot removes the most recently pushed slot.
func (h *MarkSweepHeap) PopRoot() {
	h.roots.pop()
}

// RootSet exposes the frame-based rooting API.
func (h *MarkSweepHeap) RootSet() *RootSet {
	return h.rootSet
}

// ProcessExit frees every remaining block unless fast is set.
func (h *MarkSweepHeap) ProcessExit(fast bool) {
	if fast {
		return
	}
	for _, r := range h.live {
		delete(h.blocks, r)
		h.stats.NumFreed++
	}
	h.live = nil
	h.liveBytes = 0
	h.stats.NumLive = 0
}

// Stats reports the collector's counters.
func (h *MarkSweepHeap) Stats() Stats {
	return h.stats
}
