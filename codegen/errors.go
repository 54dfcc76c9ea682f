package codegen

import (
	"errors"
)

var (
	// Register stack misuse.  These indicate a malformed tree or incorrectly
	// computed register requirements, never a user error.
	ErrEmptyStack        = errors.New("register stack is empty")
	ErrInsufficientDepth = errors.New("register stack has insufficient depth")

	// The expression needs more registers than the pool provides.  Spilling
	// to memory is not supported.
	ErrRegisterPoolExhausted = errors.New("register pool exhausted")

	ErrMalformedExpression = errors.New("malformed expression")
	ErrRecursionLimit      = errors.New("expression nesting exceeds limit")
)
