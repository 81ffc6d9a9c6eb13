package syntax

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

func TestVariant_TagsAndCasts(t *testing.T) {
	initHeap(t)

	lit := NewLiteral(value.NewStr("echo"))
	o := value.Obj(lit)

	assert.Equal(t, TagLiteral, o.TypeTag())

	got, ok := AsLiteral(o)
	require.True(t, ok)
	assert.Equal(t, "echo", got.S().String())

	_, ok = AsVarSub(o)
	assert.False(t, ok, "a mismatched cast fails")
	_, ok = AsLiteral(0)
	assert.False(t, ok, "casting null fails")
}

func TestVarSub_ScalarField(t *testing.T) {
	initHeap(t)

	v := NewVarSub(value.NewStr("HOME"), true)
	assert.Equal(t, "HOME", v.Name().String())
	assert.True(t, v.Quoted())

	v2 := NewVarSub(value.NewStr("PATH"), false)
	assert.False(t, v2.Quoted())
}

func TestTree_SurvivesCollection(t *testing.T) {
	initHeap(t)

	var cmd value.Obj
	rs := heap.PushRoots((*heap.Ref)(&cmd))
	defer rs.Pop()

	// echo "$HOME" | wc, negated.
	var words value.List[value.Obj]
	var part, echo, wc value.Obj
	wrs := heap.PushRoots((*heap.Ref)(&words), (*heap.Ref)(&part),
		(*heap.Ref)(&echo), (*heap.Ref)(&wc))

	words = value.NewList[value.Obj]()
	part = value.Obj(NewLiteral(value.NewStr("echo")))
	words.Append(part)
	part = value.Obj(NewVarSub(value.NewStr("HOME"), true))
	words.Append(part)
	echo = value.Obj(NewSimple(words))

	words = value.NewList[value.Obj]()
	part = value.Obj(NewLiteral(value.NewStr("wc")))
	words.Append(part)
	wc = value.Obj(NewSimple(words))

	words = value.NewList[value.Obj](echo, wc)
	cmd = value.Obj(NewPipeline(words, true))
	wrs.Pop()

	heap.Collect()
	heap.Collect()

	pipe, ok := AsPipeline(cmd)
	require.True(t, ok)
	assert.True(t, pipe.Negated())

	kids := pipe.Children()
	require.Equal(t, 2, kids.Len())

	first, err := kids.Index(0)
	require.NoError(t, err)
	simple, ok := AsSimple(first)
	require.True(t, ok)

	w0, _ := simple.Words().Index(0)
	lit, ok := AsLiteral(w0)
	require.True(t, ok)
	assert.Equal(t, "echo", lit.S().String())

	w1, _ := simple.Words().Index(1)
	sub, ok := AsVarSub(w1)
	require.True(t, ok)
	assert.Equal(t, "HOME", sub.Name().String())
	assert.True(t, sub.Quoted())
}

func TestVariant_TagStableAcrossMoves(t *testing.T) {
	initHeap(t)

	var v value.Obj
	rs := heap.PushRoots((*heap.Ref)(&v))
	defer rs.Pop()

	v = value.Obj(NewVarSub(value.NewStr("X"), false))
	for i := 0; i < 5; i++ {
		heap.Collect()
		require.Equal(t, TagVarSub, v.TypeTag(), "cycle %d", i)
	}
}
