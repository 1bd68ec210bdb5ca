// Released under an MIT license. See LICENSE.

// Package condition defines the errors raised by the reader, the evaluator
// and the object store.
package condition

import (
	"errors"
	"fmt"
)

// Class groups codes by the component that raised them.
type Class uint16

const (
	Reader Class = iota + 1
	Eval
	Resource
)

// Code identifies a specific failure.
type Code uint32

const (
	Syntax Code = iota + 1
	Incomplete
	Delimiter
	Unbound
	NotProcedure
	Arity
	Type
	Range
	Capacity
	Address
	Depth
	Interrupted
	Foreign
)

//nolint:gochecknoglobals
var (
	ErrSyntax       = &T{Class: Reader, Code: Syntax, Msg: "syntax error"}
	ErrIncomplete   = &T{Class: Reader, Code: Incomplete, Msg: "unexpected end of input"}
	ErrDelimiter    = &T{Class: Reader, Code: Delimiter, Msg: "missing delimiter"}
	ErrNesting      = &T{Class: Reader, Code: Depth, Msg: "nesting too deep"}
	ErrForm         = &T{Class: Eval, Code: Syntax, Msg: "malformed special form"}
	ErrUnbound      = &T{Class: Eval, Code: Unbound, Msg: "unbound variable"}
	ErrNotProcedure = &T{Class: Eval, Code: NotProcedure, Msg: "not a procedure"}
	ErrArity        = &T{Class: Eval, Code: Arity, Msg: "wrong number of arguments"}
	ErrType         = &T{Class: Eval, Code: Type, Msg: "wrong type"}
	ErrRange        = &T{Class: Eval, Code: Range, Msg: "out of range"}
	ErrDepth        = &T{Class: Eval, Code: Depth, Msg: "evaluation too deep"}
	ErrInterrupted  = &T{Class: Eval, Code: Interrupted, Msg: "interrupted"}
	ErrCapacity     = &T{Class: Resource, Code: Capacity, Msg: "pool capacity exhausted"}
	ErrAddress      = &T{Class: Resource, Code: Address, Msg: "unrepresentable address"}
	ErrForeign      = &T{Class: Resource, Code: Foreign, Msg: "handle from another store"}
)

// T (condition) is a classified error.
type T struct {
	Class
	Code
	Msg string
}

// New creates a condition with the same class and code as kind and a
// formatted message.
func New(kind *T, format string, args ...interface{}) *T {
	return &T{
		Class: kind.Class,
		Code:  kind.Code,
		Msg:   fmt.Sprintf(format, args...),
	}
}

// Error returns the condition's message prefixed by its class.
func (c *T) Error() string {
	return c.Class.String() + ": " + c.Msg
}

// Is reports whether target has the same class and code as c.
func (c *T) Is(target error) bool {
	var t *T
	if !errors.As(target, &t) {
		return false
	}

	return t.Class == c.Class && t.Code == c.Code
}

// String returns the name of the class.
func (c Class) String() string {
	switch c {
	case Reader:
		return "reader"
	case Eval:
		return "eval"
	case Resource:
		return "resource"
	}

	return "unknown"
}

//nolint:gochecknoglobals
var codes = [...]string{
	"unknown",
	"syntax",
	"incomplete",
	"delimiter",
	"unbound",
	"not-procedure",
	"arity",
	"type",
	"range",
	"capacity",
	"address",
	"depth",
	"interrupted",
	"foreign",
}

func (c Code) String() string {
	if int(c) >= len(codes) {
		return codes[0]
	}

	return codes[c]
}

// From extracts a condition from err. Errors that are not conditions are
// classified as evaluation type errors.
func From(err error) *T {
	var c *T
	if errors.As(err, &c) {
		return c
	}

	return New(ErrType, "%s", err.Error())
}

// Raise panics with a condition. Used by helpers whose callers recover.
func Raise(kind *T, format string, args ...interface{}) {
	panic(New(kind, format, args...))
}
