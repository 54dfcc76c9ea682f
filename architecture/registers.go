package architecture

import (
	"fmt"
)

type RegisterClass string

const (
	StackPointerClass = RegisterClass("stack-pointer")
	FramePointerClass = RegisterClass("frame-pointer")
	GeneralClass      = RegisterClass("general")
	FloatClass        = RegisterClass("float")
)

type Register struct {
	Name  string
	Class RegisterClass
}

func NewStackPointerRegister(name string) *Register {
	return &Register{
		Name:  name,
		Class: StackPointerClass,
	}
}

func NewFramePointerRegister(name string) *Register {
	return &Register{
		Name:  name,
		Class: FramePointerClass,
	}
}

func NewGeneralRegister(name string) *Register {
	return &Register{
		Name:  name,
		Class: GeneralClass,
	}
}

func NewFloatRegister(name string) *Register {
	return &Register{
		Name:  name,
		Class: FloatClass,
	}
}

func (reg *Register) String() string {
	return reg.Name
}

// Assumptions:
//
// 1. When a portion (e.g., EAX) of a register is used, the entire
// register (e.g., RAX) is considered occupied.
//
// 2. Each architecture have exactly one stack pointer register.  The stack
// pointer and the frame pointer are never handed out for expression
// evaluation.
//
// 3. Expression evaluation only uses general registers.  The order in which
// general registers are added is the canonical allocation order.
type RegisterSet struct {
	StackPointer *Register
	FramePointer *Register // optional

	General []*Register
	Float   []*Register

	byName map[string]*Register
}

func NewRegisterSet(registers ...*Register) *RegisterSet {
	set := &RegisterSet{
		byName: map[string]*Register{},
	}

	for _, register := range registers {
		if register.Name == "" {
			panic("no register name")
		}

		_, ok := set.byName[register.Name]
		if ok {
			panic("added duplicate register: " + register.Name)
		}
		set.byName[register.Name] = register

		set.add(register)
	}

	if set.StackPointer == nil {
		panic("no stack pointer register specified")
	}

	return set
}

func (set *RegisterSet) add(register *Register) {
	switch register.Class {
	case StackPointerClass:
		if set.StackPointer != nil {
			panic("multiple stack pointer register specified")
		}
		set.StackPointer = register
	case FramePointerClass:
		if set.FramePointer != nil {
			panic("multiple frame pointer register specified")
		}
		set.FramePointer = register
	case GeneralClass:
		set.General = append(set.General, register)
	case FloatClass:
		set.Float = append(set.Float, register)
	default:
		panic("added unusable register: " + register.Name)
	}
}

func (set *RegisterSet) Lookup(name string) (*Register, bool) {
	reg, ok := set.byName[name]
	return reg, ok
}

// Returns the first size general registers in canonical order.  A
// non-positive size selects every general register.
func (set *RegisterSet) Pool(size int) ([]*Register, error) {
	if size <= 0 {
		size = len(set.General)
	}

	if size > len(set.General) {
		return nil, fmt.Errorf(
			"requested %d registers, but only %d general registers available",
			size,
			len(set.General))
	}

	pool := make([]*Register, size)
	copy(pool, set.General[:size])
	return pool, nil
}

// Returns the named general registers in the given order.
func (set *RegisterSet) NamedPool(names []string) ([]*Register, error) {
	seen := map[string]struct{}{}
	pool := make([]*Register, 0, len(names))
	for _, name := range names {
		reg, ok := set.byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown register (%s)", name)
		}

		if reg.Class != GeneralClass {
			return nil, fmt.Errorf(
				"register %s is a %s register, not a general register",
				name,
				reg.Class)
		}

		_, ok = seen[name]
		if ok {
			return nil, fmt.Errorf("duplicate register (%s)", name)
		}
		seen[name] = struct{}{}

		pool = append(pool, reg)
	}

	return pool, nil
}
