package shio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toshproject/tosh/heap"
	"github.com/toshproject/tosh/value"
)

func initHeap(t *testing.T) {
	t.Helper()
	heap.Init(1 << 16)
}

func TestBufWriter_Accumulates(t *testing.T) {
	initHeap(t)

	var w BufWriter
	require.NoError(t, w.Write(value.NewStr("hello")))
	require.NoError(t, w.WriteString(", "))
	require.NoError(t, w.Write(value.NewStr("world")))

	assert.Equal(t, "hello, world", w.GetValue().String())
	assert.Equal(t, 12, w.Len())

	// GetValue does not drain the buffer; Reset does.
	assert.Equal(t, "hello, world", w.GetValue().String())
	w.Reset()
	assert.Equal(t, 0, w.Len())
	assert.Equal(t, value.EmptyStr, w.GetValue())
}

func TestBufWriter_Formats(t *testing.T) {
	initHeap(t)

	var w BufWriter
	w.WriteString("d=")
	w.FormatD(-42)
	w.WriteString(" s=")
	w.FormatS(value.NewStr("plain"))
	w.WriteString(" r=")
	w.FormatR(value.NewStr("q'\n"))

	assert.Equal(t, `d=-42 s=plain r="q'\n"`, w.GetValue().String())
}

func TestBufWriter_Flush(t *testing.T) {
	initHeap(t)

	var w BufWriter
	w.WriteString("x")
	require.NoError(t, w.Flush())
	assert.Equal(t, "x", w.GetValue().String(), "flush does not drop the buffer")
}
