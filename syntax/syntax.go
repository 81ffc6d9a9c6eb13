// Package syntax holds managed node types for the shell's word and
// command language, in the shape the schema compiler emits them: one
// fixed-size variant per product, a type tag per variant, and a field
// mask computed at definition time from the ref-holding slots.
//
//	word_part = Literal(s Str)
//	          | VarSub(name Str, quoted bool)
//	command   = Simple(words List[word_part])
//	          | Pipeline(children List[command], negated bool)
package syntax

import (
	"github.com/toshproject/tosh/heap"
	"github.com/toshproject/tosh/value"
)

// Variant tags. Zero is reserved for built-in containers.
const (
	TagLiteral uint8 = iota + 1
	TagVarSub
	TagSimple
	TagPipeline
)

// Field masks, one per variant layout.
var (
	literalMask  = value.MaskOf(0) // s
	varSubMask   = value.MaskOf(0) // name; quoted is a scalar
	simpleMask   = value.MaskOf(0) // words
	pipelineMask = value.MaskOf(0) // children; negated is a scalar
)

// Literal is a fixed word part.
type Literal value.Obj

// NewLiteral builds a Literal(s).
func NewLiteral(s value.Str) Literal {
	rs := heap.PushRoots((*heap.Ref)(&s))
	defer rs.Pop()
	n := value.NewNode(TagLiteral, literalMask, 1)
	n.SetField(0, s.Obj())
	return Literal(n)
}

// S returns the literal text.
func (p Literal) S() value.Str {
	return value.Obj(p).Field(0).AsStr()
}

// AsLiteral is the guarded cast from a word part.
func AsLiteral(o value.Obj) (Literal, bool) {
	c := value.CastTag(o, TagLiteral)
	return Literal(c), !c.IsNull()
}

// VarSub is a variable substitution word part.
type VarSub value.Obj

// NewVarSub builds a VarSub(name, quoted).
func NewVarSub(name value.Str, quoted bool) VarSub {
	rs := heap.PushRoots((*heap.Ref)(&name))
	defer rs.Pop()
	n := value.NewNode(TagVarSub, varSubMask, 2)
	n.SetField(0, name.Obj())
	n.SetBoolField(1, quoted)
	return VarSub(n)
}

// Name returns the variable name.
func (p VarSub) Name() value.Str {
	return value.Obj(p).Field(0).AsStr()
}

// Quoted reports whether the substitution was quoted.
func (p VarSub) Quoted() bool {
	return value.Obj(p).BoolField(1)
}

// AsVarSub is the guarded cast from a word part.
func AsVarSub(o value.Obj) (VarSub, bool) {
	c := value.CastTag(o, TagVarSub)
	return VarSub(c), !c.IsNull()
}

// Simple is a simple command: a list of word parts.
type Simple value.Obj

// NewSimple builds a Simple(words).
func NewSimple(words value.List[value.Obj]) Simple {
	rs := heap.PushRoots((*heap.Ref)(&words))
	defer rs.Pop()
	n := value.NewNode(TagSimple, simpleMask, 1)
	n.SetField(0, words.Obj())
	return Simple(n)
}

// Words returns the command's word parts.
func (c Simple) Words() value.List[value.Obj] {
	return value.ListFromObj[value.Obj](value.Obj(c).Field(0))
}

// AsSimple is the guarded cast from a command.
func AsSimple(o value.Obj) (Simple, bool) {
	c := value.CastTag(o, TagSimple)
	return Simple(c), !c.IsNull()
}

// Pipeline is a sequence of commands, possibly negated.
type Pipeline value.Obj

// NewPipeline builds a Pipeline(children, negated).
func NewPipeline(children value.List[value.Obj], negated bool) Pipeline {
	rs := heap.PushRoots((*heap.Ref)(&children))
	defer rs.Pop()
	n := value.NewNode(TagPipeline, pipelineMask, 2)
	n.SetField(0, children.Obj())
	n.SetBoolField(1, negated)
	return Pipeline(n)
}

// Children returns the pipeline's commands.
func (c Pipeline) Children() value.List[value.Obj] {
	return value.ListFromObj[value.Obj](value.Obj(c).Field(0))
}

// Negated reports whether the pipeline's exit status is inverted.
func (c Pipeline) Negated() bool {
	return value.Obj(c).BoolField(1)
}

// AsPipeline is the guarded cast from a command.
func AsPipeline(o value.Obj) (Pipeline, bool) {
	c := value.CastTag(o, TagPipeline)
	return Pipeline(c), !c.IsNull()
}
