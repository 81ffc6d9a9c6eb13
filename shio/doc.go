// Package shio provides the I/O collaborators of the runtime: buffered
// writers that accumulate into managed strings, fd-backed writers and
// line readers over raw syscalls, and split_once-style helpers.
//
// Readers return the interned empty string at end of stream, and a final
// line without a newline as-is; FdLineReader.ReadlineRequired reports end
// of stream as an EOFError. Syscall failures surface as IOError with the
// errno attached.
package shio
