package heap

import (
	"io"
	"log/slog"

	"github.com/toshproject/tosh/internal/format"
)

// Collector is the contract both collector back-ends satisfy. Callers treat
// Allocate as infallible: it either returns zeroed, aligned storage or the
// process dies.
type Collector interface {
	// Allocate returns a ref to n zeroed bytes, rounded up to word
	// alignment. Any call may trigger a collection first.
	Allocate(n int) Ref

	// Bytes returns the byte view of a local (non-global) object,
	// starting at its header. The view is valid until the next possible
	// collection point.
	Bytes(r Ref) []byte

	// Collect reclaims unreachable objects now.
	Collect()

	// PushRoot and PopRoot maintain the local root stack. Prefer the
	// package-level PushRoots scope helper.
	PushRoot(slot *Ref)
	PopRoot()

	// ProcessExit tears the heap down. fast leaves everything to the OS;
	// slow releases every allocation for leak-checker cleanliness.
	ProcessExit(fast bool)

	// Stats reports counters for tests and diagnostics.
	Stats() Stats
}

// The heap is a process-wide singleton, initialized once at program start.
var gc Collector

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// SetLogger routes collector diagnostics (collections, growths) somewhere
// visible. The default logger discards everything.
func SetLogger(l *slog.Logger) {
	logger = l
}

// Init installs the semi-space collector with the given initial space size
// and makes it the active heap.
func Init(spaceSize int) {
	gc = NewCheney(spaceSize)
}

// InitMarkSweep installs the mark-sweep collector, triggering a collection
// every gcThreshold allocations.
func InitMarkSweep(gcThreshold int) {
	gc = NewMarkSweep(gcThreshold)
}

// Active returns the installed collector, installing the default semi-space
// collector on first use.
func Active() Collector {
	if gc == nil {
		Init(format.DefaultSpaceSize)
	}
	return gc
}

// Allocate allocates from the active collector.
func Allocate(n int) Ref {
	return Active().Allocate(n)
}

// Bytes returns the byte view of any object, global or local.
func Bytes(r Ref) []byte {
	if r.IsGlobal() {
		return globalBytes(r)
	}
	return Active().Bytes(r)
}

// Collect runs a collection on the active collector.
func Collect() {
	Active().Collect()
}

// PushRoot registers a slot on the active collector's root stack.
func PushRoot(slot *Ref) {
	Active().PushRoot(slot)
}

// PopRoot removes the most recently pushed slot.
func PopRoot() {
	Active().PopRoot()
}

// ProcessExit tears down the active heap.
func ProcessExit(fast bool) {
	if gc != nil {
		gc.ProcessExit(fast)
	}
}

// CurrentStats reports the active collector's counters.
func CurrentStats() Stats {
	return Active().Stats()
}

// Frames returns the frame-based RootSet when the active collector is the
// mark-sweep one, or nil. The semi-space collector supports only the local
// root stack.
func Frames() *RootSet {
	if ms, ok := Active().(*MarkSweepHeap); ok {
		return ms.rootSet
	}
	return nil
}
