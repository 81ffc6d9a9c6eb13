// Package value implements the runtime data types of transpiled shell
// code: strings, lists, dicts, tuples and schema-generated sum-type nodes,
// all living on the managed heap.
//
// # Representation
//
// Every type in this package is a typed wrapper over heap.Ref with
// underlying type uint64, so a local variable can be registered as a GC
// root with a plain pointer conversion:
//
//	var s value.Str = ...
//	rs := heap.PushRoots((*heap.Ref)(&s))
//	defer rs.Pop()
//
// Container elements are 8-byte words. The Elem constraint enumerates the
// element types: int, bool and float64 are stored by value in opaque
// slabs; Str and Obj are managed refs stored in scanned slabs the
// collector traces. Nested containers are stored as Obj and recovered
// with a conversion.
//
// # Collection points
//
// Any constructor or growing operation can trigger a collection, which
// moves objects under the semi-space collector. Operations in this
// package root their own locals; callers are responsible for their own.
// Raw byte views (Str.Data, and every element read) are invalidated by
// the next possible allocation and must not be cached across one.
//
// # Errors
//
// Data-driven failures (index out of range, missing key, malformed
// number) are returned as typed errors: IndexError, KeyError, ValueError.
// Contract violations by the transpiler (a multi-byte split separator, a
// bad fill char) panic with AssertionError, which is fatal by design.
package value
