package heap

import (
	"fmt"

	"github.com/toshproject/tosh/internal/format"
)

// CheneyHeap is the semi-space collector. Allocation bumps a pointer
// through the from-space; when it runs out, a collection copies every
// reachable object into the to-space (Cheney's algorithm: a scan pointer
// trails the free pointer, so the graph is traced iteratively with no mark
// stack) and the spaces swap roles.
//
// Influences: femtolisp's collector, which also grows the empty to-space
// under memory pressure so the next cycle settles into the larger space.
type CheneyHeap struct {
	from []byte // space we allocate from
	to   []byte // space the collector copies to

	free  int // next allocation offset in from
	limit int // end of the allocatable region of from

	// spaceSize is the target size of a space. It can run ahead of
	// len(from) for one cycle after a growth decision.
	spaceSize int

	roots rootStack
	stats Stats

	toFree int // copy cursor in to, valid during a collection
}

const minSpaceSize = 1 << 12

var _ Collector = (*CheneyHeap)(nil)

// NewCheney returns a semi-space heap with spaceSize bytes available for
// the first cycle.
func NewCheney(spaceSize int) *CheneyHeap {
	if spaceSize < minSpaceSize {
		spaceSize = minSpaceSize
	}
	spaceSize = format.Align8(spaceSize)

	h := &CheneyHeap{
		from:      make([]byte, spaceSize),
		to:        make([]byte, spaceSize),
		spaceSize: spaceSize,
	}
	// Reserve the first word so no object lives at the null ref.
	h.free = format.WordSize
	h.limit = spaceSize
	h.stats.HeapSize = spaceSize
	return h
}

// Allocate returns a ref to n zeroed bytes, collecting and growing as
// needed. It only fails by panicking, and callers rely on that.
func (h *CheneyHeap) Allocate(n int) Ref {
	if n < format.MinObjSize {
		// Forwarding needs header + one word, so never hand out less.
		n = format.MinObjSize
	}
	n = format.Align8(n)

	if h.free+n <= h.limit { // common case: we have space for it
		return h.bump(n)
	}

	h.collect(0)
	if h.free+n <= h.limit {
		return h.bump(n)
	}

	// Still too small: a single allocation larger than the space. Grow
	// until the survivors plus this allocation fit.
	h.collect(2 * (h.spaceSize + n))
	if h.free+n > h.limit {
		panic(fmt.Sprintf("heap: cannot allocate %d bytes", n))
	}
	return h.bump(n)
}

func (h *CheneyHeap) bump(n int) Ref {
	off := h.free
	h.free += n
	// The region may hold garbage from a pre-swap cycle.
	clear(h.from[off : off+n])

	h.stats.NumAllocated++
	h.stats.BytesAllocated += int64(n)
	h.stats.NumLive++
	return Ref(off)
}

// Bytes returns the view from the object's header to the end of the
// from-space. The header's obj_len bounds the valid region.
func (h *CheneyHeap) Bytes(r Ref) []byte {
	return h.from[int(r):]
}

// Collect reclaims unreachable objects now.
func (h *CheneyHeap) Collect() {
	h.collect(0)
}

// collect runs one copying cycle. minSize, when non-zero, forces the
// to-space (and the space size) to grow at least that large first.
func (h *CheneyHeap) collect(minSize int) {
	need := h.spaceSize
	for need < minSize {
		need *= 2
	}
	if need > h.spaceSize {
		h.spaceSize = need
		h.stats.Growths++
	}
	if len(h.to) < need {
		h.to = make([]byte, need)
	}
	h.toFree = format.WordSize
	h.stats.NumLive = 0

	// Copy the roots, rewriting each registered slot, then chase the
	// copied graph with the scan pointer.
	h.roots.forEach(func(slot *Ref) {
		*slot = h.relocate(*slot)
	})

	scan := format.WordSize
	for scan < h.toFree {
		objLen := format.ObjLen(h.to, scan)
		switch format.HeapTag(h.to, scan) {
		case format.TagFixedSize:
			mask := format.FieldMask(h.to, scan)
			for i := 0; i < format.MaxFields; i++ {
				if mask&format.MaskBit(i) == 0 {
					continue
				}
				off := scan + format.FieldOff(i)
				if child := Ref(format.ReadU64(h.to, off)); !child.IsNull() {
					format.PutU64(h.to, off, uint64(h.relocate(child)))
				}
			}
		case format.TagScanned:
			n := (objLen - format.HeaderSize) / format.WordSize
			for i := 0; i < n; i++ {
				off := scan + format.FieldOff(i)
				// Slabs are sparse: unused capacity is null.
				if child := Ref(format.ReadU64(h.to, off)); !child.IsNull() {
					format.PutU64(h.to, off, uint64(h.relocate(child)))
				}
			}
		}
		// Opaque objects have no children to trace.
		scan += objLen
	}

	h.from, h.to = h.to, h.from
	h.free = h.toFree
	h.limit = need
	h.stats.Collections++
	h.stats.HeapSize = h.spaceSize

	// Less than 20% free after collecting: grow the now-empty to-space
	// and settle into it at the next collection.
	if h.limit-h.free < h.spaceSize/5 {
		h.spaceSize *= 2
		h.stats.Growths++
	}
	if len(h.to) < h.spaceSize {
		h.to = make([]byte, h.spaceSize)
	}

	logger.Debug("collect",
		"live", h.stats.NumLive,
		"free", h.limit-h.free,
		"space_size", h.spaceSize)
}

// relocate moves one object into the to-space and returns its new ref,
// following the forwarding ref if it already moved this cycle.
func (h *CheneyHeap) relocate(r Ref) Ref {
	if r.IsNull() || r.IsGlobal() {
		return r
	}
	off := int(r)
	switch format.HeapTag(h.from, off) {
	case format.TagForwarded:
		return Ref(format.ReadU64(h.from, off+format.HeaderSize))

	case format.TagGlobal:
		return r

	default:
		n := format.ObjLen(h.from, off)
		if n < format.MinObjSize {
			panic(fmt.Sprintf("heap: relocating object at %#x with bad obj_len %d", off, n))
		}
		newOff := h.toFree
		copy(h.to[newOff:newOff+n], h.from[off:off+n])
		h.toFree += n

		format.SetHeapTag(h.from, off, format.TagForwarded)
		format.PutU64(h.from, off+format.HeaderSize, uint64(newOff))

		h.stats.NumLive++
		return Ref(newOff)
	}
}

// PushRoot registers a slot holding a managed ref.
func (h *CheneyHeap) PushRoot(slot *Ref) {
	h.roots.push(slot)
}

// PopRoot removes the most recently pushed slot.
func (h *CheneyHeap) PopRoot() {
	h.roots.pop()
}

// ProcessExit releases both spaces unless fast is set.
func (h *CheneyHeap) ProcessExit(fast bool) {
	if fast {
		return
	}
	h.from = nil
	h.to = nil
	h.free = 0
	h.limit = 0
}

// Stats reports the collector's counters.
func (h *CheneyHeap) Stats() Stats {
	return h.stats
}
