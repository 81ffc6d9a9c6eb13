//go:build unix

package shio

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toshproject/tosh/value"
)

func TestFdLineReader_Pipe(t *testing.T) {
	initHeap(t)

	pr, pw, err := os.Pipe()
	require.NoError(t, err)
	_, err = pw.WriteString("alpha\nbeta")
	require.NoError(t, err)
	require.NoError(t, pw.Close())

	r := NewFdLineReader(int(pr.Fd()))
	defer pr.Close()

	line, err := r.Readline()
	require.NoError(t, err)
	assert.Equal(t, "alpha\n", line.String())

	line, err = r.Readline()
	require.NoError(t, err)
	assert.Equal(t, "beta", line.String(), "the last unterminated line comes through")

	line, err = r.Readline()
	require.NoError(t, err)
	assert.Equal(t, value.EmptyStr, line)

	_, err = r.ReadlineRequired()
	var eof *value.EOFError
	assert.ErrorAs(t, err, &eof, "end of stream where a record is required is an EOFError")
}

func TestFdLineReader_BadFd(t *testing.T) {
	initHeap(t)

	r := NewFdLineReader(-1)
	_, err := r.Readline()
	var ioErr *value.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.NotZero(t, ioErr.Errno)
}

func TestFdWriter_Pipe(t *testing.T) {
	initHeap(t)

	pr, pw, err := os.Pipe()
	require.NoError(t, err)
	defer pr.Close()

	w := NewFdWriter(int(pw.Fd()))
	require.NoError(t, w.Write(value.NewStr("out")))
	require.NoError(t, w.WriteString("!\n"))
	require.NoError(t, w.Flush())
	require.NoError(t, pw.Close())

	buf := make([]byte, 16)
	n, err := pr.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "out!\n", string(buf[:n]))

	assert.False(t, w.IsAtty(), "a pipe is not a terminal")
}

func TestFdWriter_BadFd(t *testing.T) {
	initHeap(t)

	w := NewFdWriter(-1)
	err := w.Write(value.NewStr("x"))
	var ioErr *value.IOError
	require.ErrorAs(t, err, &ioErr)
}
