package heap

import (
	"github.com/toshproject/tosh/internal/format"
)

// The local root stack: an array of pointers to Go locals that hold Refs.
// An array rather than a linked structure for locality; the stack depth
// tracks the native call stack, which is bounded.
type rootStack struct {
	slots [format.MaxRoots]*Ref
	top   int
}

func (rs *rootStack) push(slot *Ref) {
	if rs.top >= format.MaxRoots {
		panic("heap: root stack overflow")
	}
	rs.slots[rs.top] = slot
	rs.top++
}

func (rs *rootStack) pop() {
	rs.top--
	rs.slots[rs.top] = nil
}

// forEach visits every registered slot.
func (rs *rootStack) forEach(f func(slot *Ref)) {
	for i := 0; i < rs.top; i++ {
		f(rs.slots[i])
	}
}

// RootScope tracks a batch of root registrations so they can be released
// together on function exit. Scopes must nest LIFO; pair every PushRoots
// with a deferred Pop.
type RootScope struct {
	n int
}

// PushRoots registers each slot on the active collector's root stack and
// returns a scope that releases all of them.
//
//	rs := heap.PushRoots(&a, &b)
//	defer rs.Pop()
func PushRoots(slots ...*Ref) RootScope {
	for _, s := range slots {
		PushRoot(s)
	}
	return RootScope{n: len(slots)}
}

// Push registers one more slot under this scope.
func (s *RootScope) Push(slot *Ref) {
	PushRoot(slot)
	s.n++
}

// Pop releases every slot registered under this scope.
func (s RootScope) Pop() {
	for i := 0; i < s.n; i++ {
		PopRoot()
	}
}
