package format

// Object header layout.
//
// Every heap-managed object begins with an 8-byte header:
//
//	byte 0    heap_tag    how the collector treats the object
//	byte 1    type_tag    sum-type discriminator; 0 for built-in containers
//	bytes 2-3 field_mask  bit i set = word i after the header is a managed ref
//	bytes 4-7 obj_len     total object size in bytes, including the header
//
// All multi-byte fields are little-endian. Heap tags are odd so a header
// byte can never be mistaken for the low byte of an aligned pointer.
const (
	HeapTagOff   = 0
	TypeTagOff   = 1
	FieldMaskOff = 2
	ObjLenOff    = 4

	HeaderSize = 8

	// WordSize is the width of a field slot. Field-mask bit i covers the
	// word at HeaderSize + i*WordSize.
	WordSize = 8

	// MaxFields is the number of bits in field_mask.
	MaxFields = 16
)

// Heap tags. Odd values, per the header comment above.
const (
	TagForwarded = 1 // object moved; first word after the header is the new ref
	TagGlobal    = 3 // neither copied nor scanned nor freed
	TagOpaque    = 5 // copied but not scanned (strings, int slabs)
	TagFixedSize = 7 // heterogeneous layout, consult field_mask
	TagScanned   = 9 // homogeneous array of refs, scan every word
)

// NoObjLen is the obj_len sentinel for global objects whose size is never
// needed because they are never copied.
const NoObjLen = 0x0eadbeef

// WriteHeader writes a complete object header at off.
func WriteHeader(b []byte, off int, heapTag, typeTag uint8, fieldMask uint16, objLen int) {
	b[off+HeapTagOff] = heapTag
	b[off+TypeTagOff] = typeTag
	PutU16(b, off+FieldMaskOff, fieldMask)
	PutU32(b, off+ObjLenOff, uint32(objLen))
}

// HeapTag reads the heap tag byte at off.
func HeapTag(b []byte, off int) uint8 {
	return b[off+HeapTagOff]
}

// SetHeapTag overwrites the heap tag byte at off. The only legal transition
// after construction is to TagForwarded during a collection.
func SetHeapTag(b []byte, off int, tag uint8) {
	b[off+HeapTagOff] = tag
}

// TypeTag reads the sum-type discriminator at off.
func TypeTag(b []byte, off int) uint8 {
	return b[off+TypeTagOff]
}

// FieldMask reads the 16-bit pointer bitmap at off.
func FieldMask(b []byte, off int) uint16 {
	return ReadU16(b, off+FieldMaskOff)
}

// ObjLen reads the total object size at off.
func ObjLen(b []byte, off int) int {
	return int(ReadU32(b, off+ObjLenOff))
}

// MaskBit returns the field-mask bit for field slot i.
func MaskBit(i int) uint16 {
	return 1 << i
}

// FieldOff returns the byte offset of field slot i relative to the object
// start.
func FieldOff(i int) int {
	return HeaderSize + i*WordSize
}
