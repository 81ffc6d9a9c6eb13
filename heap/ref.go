package heap

// Ref is a managed reference: a byte offset into the active space, or into
// the global arena for refs at or above globalBase. The zero Ref is the
// null reference; offset 0 is never handed out (each space reserves its
// first word), so a valid Ref is always non-zero.
type Ref uint64

// NullRef is the null managed reference.
const NullRef Ref = 0

// globalBase splits the ref space: refs below it address the collector's
// space, refs at or above it address the non-moving global arena. The
// active space would have to exceed a terabyte before the ranges could
// collide.
const globalBase Ref = 1 << 40

// IsNull reports whether r is the null reference.
func (r Ref) IsNull() bool {
	return r == NullRef
}

// IsGlobal reports whether r addresses the global arena.
func (r Ref) IsGlobal() bool {
	return r >= globalBase
}
