package format

// Runtime sizing constants.
const (
	// DefaultSpaceSize is the initial size of each semi-space. The heap
	// grows by doubling under memory pressure, so the initial size only
	// affects how soon the first collections happen.
	DefaultSpaceSize = 1 << 20

	// MaxRoots bounds the local root stack. Related to the native call
	// stack depth: each frame roots a handful of locals, so 4K roots
	// covers any realistic shell-script call stack.
	MaxRoots = 4 * 1024

	// MinObjSize is the smallest allocation the heap hands out. Pointer
	// forwarding repurposes the first word after the header, so every
	// object must have room for header + one word.
	MinObjSize = HeaderSize + WordSize

	// DefaultGCThreshold is the mark-sweep trigger, in allocations since
	// the last collection.
	DefaultGCThreshold = 10000

	// StrHeaderSize is the fixed prefix of a string object: the object
	// header plus the 4-byte byte-length field. String data follows,
	// terminated by a NUL that is not part of the string.
	StrHeaderSize = HeaderSize + 4

	// StrLenOff is the offset of the string byte-length field.
	StrLenOff = HeaderSize

	// StrDataOff is the offset of the first data byte.
	StrDataOff = StrHeaderSize
)
