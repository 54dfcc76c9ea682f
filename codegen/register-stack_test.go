package codegen

import (
	"errors"
	"testing"

	"github.com/pattyshack/ershov/architecture"
)

func testPool(names ...string) []*architecture.Register {
	pool := make([]*architecture.Register, 0, len(names))
	for _, name := range names {
		pool = append(pool, architecture.NewGeneralRegister(name))
	}
	return pool
}

func registerNames(regs []*architecture.Register) []string {
	names := make([]string, 0, len(regs))
	for _, reg := range regs {
		names = append(names, reg.Name)
	}
	return names
}

func expectNames(t *testing.T, actual []string, expected ...string) {
	t.Helper()
	if len(actual) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, actual)
	}
	for idx := range expected {
		if actual[idx] != expected[idx] {
			t.Fatalf("expected %v, got %v", expected, actual)
		}
	}
}

func TestRegisterStackInitialOrder(t *testing.T) {
	stack := NewRegisterStack(testPool("r0", "r1", "r2"))

	if stack.Depth() != 3 || stack.Capacity() != 3 {
		t.Fatalf(
			"unexpected depth/capacity: %d/%d",
			stack.Depth(),
			stack.Capacity())
	}

	// bottom first
	expectNames(t, registerNames(stack.Registers()), "r2", "r1", "r0")

	top, err := stack.Top()
	if err != nil {
		t.Fatal(err)
	}
	if top.Name != "r0" {
		t.Fatalf("expected r0 on top, got %s", top.Name)
	}

	// Top does not remove the register
	if stack.Depth() != 3 {
		t.Fatalf("top mutated the stack")
	}
}

func TestRegisterStackPopPush(t *testing.T) {
	stack := NewRegisterStack(testPool("r0", "r1"))

	first, err := stack.Pop()
	if err != nil {
		t.Fatal(err)
	}
	second, err := stack.Pop()
	if err != nil {
		t.Fatal(err)
	}
	expectNames(t, registerNames([]*architecture.Register{first, second}), "r0", "r1")

	_, err = stack.Pop()
	if !errors.Is(err, ErrEmptyStack) {
		t.Fatalf("expected ErrEmptyStack, got %v", err)
	}

	_, err = stack.Top()
	if !errors.Is(err, ErrEmptyStack) {
		t.Fatalf("expected ErrEmptyStack, got %v", err)
	}

	stack.Push(second)
	stack.Push(first)
	expectNames(t, registerNames(stack.Registers()), "r1", "r0")
}

func TestRegisterStackSwapTop(t *testing.T) {
	stack := NewRegisterStack(testPool("r0", "r1", "r2"))

	err := stack.SwapTop()
	if err != nil {
		t.Fatal(err)
	}
	expectNames(t, registerNames(stack.Registers()), "r2", "r0", "r1")

	err = stack.SwapTop()
	if err != nil {
		t.Fatal(err)
	}
	expectNames(t, registerNames(stack.Registers()), "r2", "r1", "r0")
}

func TestRegisterStackSwapTopShallow(t *testing.T) {
	stack := NewRegisterStack(testPool("r0"))

	err := stack.SwapTop()
	if err != nil {
		t.Fatalf("single entry swap should be a no-op: %v", err)
	}
	expectNames(t, registerNames(stack.Registers()), "r0")

	_, err = stack.Pop()
	if err != nil {
		t.Fatal(err)
	}

	err = stack.SwapTop()
	if !errors.Is(err, ErrInsufficientDepth) {
		t.Fatalf("expected ErrInsufficientDepth, got %v", err)
	}
}

func TestRegisterStackReset(t *testing.T) {
	stack := NewRegisterStack(testPool("r0", "r1", "r2"))

	_, _ = stack.Pop()
	_ = stack.SwapTop()
	stack.Reset()

	expectNames(t, registerNames(stack.Registers()), "r2", "r1", "r0")
}

func expectPanic(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	f()
}

func TestRegisterStackPushMisuse(t *testing.T) {
	pool := testPool("r0", "r1")
	stack := NewRegisterStack(pool)

	// already on the stack / overflow
	expectPanic(t, func() { stack.Push(pool[0]) })

	// not part of the pool
	_, _ = stack.Pop()
	expectPanic(t, func() {
		stack.Push(architecture.NewGeneralRegister("r0"))
	})

	expectPanic(t, func() {
		NewRegisterStack([]*architecture.Register{pool[0], pool[0]})
	})
}
