package heap

// Stats carries collector counters for tests and the toshgc CLI.
type Stats struct {
	// Collections is the number of completed collection cycles.
	Collections int

	// Growths is the number of times the heap grew.
	Growths int

	// NumAllocated and BytesAllocated are cumulative.
	NumAllocated   int64
	BytesAllocated int64

	// NumLive is the live-object count: survivors of the last collection
	// plus everything allocated since.
	NumLive int

	// NumFreed is cumulative frees (mark-sweep only; the semi-space
	// collector reclaims by abandoning the from-space).
	NumFreed int64

	// HeapSize is the current capacity in bytes of one semi-space, or the
	// live byte total under mark-sweep.
	HeapSize int
}
