package format

// Alignment utilities. Every object on the managed heap starts on an 8-byte
// boundary and occupies a multiple of 8 bytes, so the collector can walk a
// space object-by-object using obj_len alone.

const alignMask = WordSize - 1

// Align8 returns n aligned up to the next 8-byte boundary.
//
// Example:
//
//	Align8(1)  = 8
//	Align8(8)  = 8
//	Align8(9)  = 16
func Align8(n int) int {
	return (n + alignMask) &^ alignMask
}
