package codegen

import (
	"github.com/pattyshack/ershov/architecture"
)

// RegisterStack tracks the free registers of a fixed pool.  The register on
// top of the stack is the one that receives the next result.
//
// A stack is owned by a single code generation session and is not safe for
// concurrent use.
type RegisterStack struct {
	pool   []*architecture.Register
	inPool map[*architecture.Register]struct{}

	entries []*architecture.Register // top is the last entry
	onStack map[*architecture.Register]struct{}
}

// The pool's first register starts on top of the stack.
func NewRegisterStack(pool []*architecture.Register) *RegisterStack {
	stack := &RegisterStack{
		pool:    pool,
		inPool:  make(map[*architecture.Register]struct{}, len(pool)),
		entries: make([]*architecture.Register, 0, len(pool)),
		onStack: make(map[*architecture.Register]struct{}, len(pool)),
	}

	for _, reg := range pool {
		_, ok := stack.inPool[reg]
		if ok {
			panic("duplicate register in pool: " + reg.Name)
		}
		stack.inPool[reg] = struct{}{}
	}

	stack.Reset()
	return stack
}

// Restores the stack to its initial state, with the full pool pushed in
// canonical order.
func (stack *RegisterStack) Reset() {
	stack.entries = stack.entries[:0]
	clear(stack.onStack)
	for i := len(stack.pool) - 1; i >= 0; i-- {
		stack.Push(stack.pool[i])
	}
}

func (stack *RegisterStack) Depth() int {
	return len(stack.entries)
}

func (stack *RegisterStack) Capacity() int {
	return len(stack.pool)
}

// Returns the registers currently on the stack, bottom first.
func (stack *RegisterStack) Registers() []*architecture.Register {
	result := make([]*architecture.Register, len(stack.entries))
	copy(result, stack.entries)
	return result
}

func (stack *RegisterStack) Top() (*architecture.Register, error) {
	if len(stack.entries) == 0 {
		return nil, ErrEmptyStack
	}
	return stack.entries[len(stack.entries)-1], nil
}

func (stack *RegisterStack) Pop() (*architecture.Register, error) {
	if len(stack.entries) == 0 {
		return nil, ErrEmptyStack
	}

	last := len(stack.entries) - 1
	reg := stack.entries[last]
	stack.entries = stack.entries[:last]
	delete(stack.onStack, reg)
	return reg, nil
}

// Returns a register to the top of the stack.  Pushing a register outside
// the pool, a register already on the stack, or beyond the pool's size is a
// caller bug.
func (stack *RegisterStack) Push(reg *architecture.Register) {
	_, ok := stack.inPool[reg]
	if !ok {
		panic("pushed register not in pool: " + reg.Name)
	}

	_, ok = stack.onStack[reg]
	if ok {
		panic("pushed register already on stack: " + reg.Name)
	}

	if len(stack.entries) >= len(stack.pool) {
		panic("register stack overflow")
	}

	stack.entries = append(stack.entries, reg)
	stack.onStack[reg] = struct{}{}
}

// Exchanges the two topmost registers.  Swapping a single entry stack is a
// no-op.
func (stack *RegisterStack) SwapTop() error {
	size := len(stack.entries)
	if size == 0 {
		return ErrInsufficientDepth
	}

	if size == 1 {
		return nil
	}

	stack.entries[size-1], stack.entries[size-2] =
		stack.entries[size-2], stack.entries[size-1]
	return nil
}
