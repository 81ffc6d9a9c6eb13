package value

import "bytes"

// Python-style string representation: single-quoted, or double-quoted
// when the string contains a single quote but no double quote. Tab,
// newline and carriage return escape as \t, \n and \r; other control and
// non-ASCII bytes escape as \xNN.

const hexDigits = "0123456789abcdef"

// AppendRepr appends the quoted representation of raw to dst and returns
// the extended buffer.
func AppendRepr(dst, raw []byte) []byte {
	quote := byte('\'')
	if bytes.IndexByte(raw, '\'') >= 0 && bytes.IndexByte(raw, '"') < 0 {
		quote = '"'
	}
	dst = append(dst, quote)
	for _, c := range raw {
		switch {
		case c == quote || c == '\\':
			dst = append(dst, '\\', c)
		case c == '\t':
			dst = append(dst, '\\', 't')
		case c == '\n':
			dst = append(dst, '\\', 'n')
		case c == '\r':
			dst = append(dst, '\\', 'r')
		case c < ' ' || c >= 0x7f:
			dst = append(dst, '\\', 'x', hexDigits[c>>4], hexDigits[c&0xf])
		default:
			dst = append(dst, c)
		}
	}
	return append(dst, quote)
}

// Repr returns the quoted representation of s as a managed string.
func Repr(s Str) Str {
	// Build in a native buffer first; the single managed allocation then
	// happens after the last read of s.
	buf := AppendRepr(make([]byte, 0, s.Len()+8), s.data())
	return StrFromBytes(buf)
}
