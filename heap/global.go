package heap

import (
	"fmt"

	"github.com/toshproject/tosh/internal/format"
)

// The global arena holds TagGlobal objects: the interned empty string and
// the string constants of a transpiled program. It is chunked so that
// growing it never invalidates a previously returned byte view, and it is
// never collected; globals have process lifetime.

const globalChunkSize = 1 << 16

type globalArena struct {
	chunks [][]byte
	bases  []uint64 // arena offset of chunks[i]
	used   int      // bytes used within the last chunk
	total  uint64   // arena offset one past the last allocation
}

var globals globalArena

// AllocGlobal carves n zeroed bytes out of the global arena and returns a
// ref addressing them. The caller writes the object header (TagGlobal) and
// payload once, at program start; the object is never moved or freed.
func AllocGlobal(n int) Ref {
	n = format.Align8(n)

	last := len(globals.chunks) - 1
	if last < 0 || globals.used+n > len(globals.chunks[last]) {
		size := globalChunkSize
		if n > size {
			size = n
		}
		globals.chunks = append(globals.chunks, make([]byte, size))
		globals.bases = append(globals.bases, globals.total)
		globals.used = 0
		last++
	}

	off := globals.bases[last] + uint64(globals.used)
	globals.used += n
	globals.total = off + uint64(n)
	return globalBase + Ref(off)
}

// globalBytes returns the byte view of a global object, from its header to
// the end of its chunk. The object's obj_len bounds the valid region.
func globalBytes(r Ref) []byte {
	off := uint64(r - globalBase)
	for i := len(globals.chunks) - 1; i >= 0; i-- {
		if off >= globals.bases[i] {
			return globals.chunks[i][off-globals.bases[i]:]
		}
	}
	panic(fmt.Sprintf("heap: bad global ref %#x", uint64(r)))
}
