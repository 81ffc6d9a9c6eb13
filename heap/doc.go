// Package heap implements the managed heap of the tosh runtime.
//
// # Overview
//
// Transpiled shell code does not use Go values for its strings, lists and
// dicts. Instead every managed object lives inside a byte arena and is
// addressed by a Ref, a 64-bit byte offset. Object headers and fields are
// read and written through internal/format, so the collector can move an
// object with a plain copy and fix up references by rewriting 8-byte words.
//
// # Object graph
//
// Every object starts with an 8-byte header (heap tag, type tag, 16-bit
// field mask, 32-bit obj_len). The heap tag tells the collector how to
// treat the object:
//
//   - TagOpaque: copy obj_len bytes, no children (strings, int slabs)
//   - TagScanned: every word after the header is a child ref (ref slabs)
//   - TagFixedSize: consult the field mask to find child refs
//   - TagGlobal: process-lifetime, never moved, never freed
//   - TagForwarded: already moved; the first word holds the new ref
//
// # Collectors
//
// Two interchangeable back-ends satisfy the Collector contract. Init
// installs the Cheney semi-space collector: allocation bumps a pointer
// through the from-space, and a collection copies the reachable graph into
// the to-space, leaving forwarding refs behind. InitMarkSweep installs a
// mark-sweep collector that gives every object its own block and frees the
// unmarked ones; nothing moves, which the frame-based RootSet relies on.
//
// # Rooting
//
// A collection may happen inside any allocation, and the semi-space
// collector moves objects, so every local variable holding a Ref across a
// possible allocation must be registered:
//
//	var s heap.Ref = ...
//	rs := heap.PushRoots(&s)
//	defer rs.Pop()
//	... allocate; s is rewritten in place if the object moved ...
//
// Root registration is strictly LIFO. The collector dereferences every
// registered slot and rewrites it with the object's new location.
package heap
