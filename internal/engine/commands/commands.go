// Released under an MIT license. See LICENSE.

// Package commands provides the native procedures bound in the base
// environment. Each receives the list of its evaluated arguments.
package commands

import (
	"io"

	"github.com/michaelmacinnis/nanscheme/internal/common/condition"
	"github.com/michaelmacinnis/nanscheme/internal/common/store"
	"github.com/michaelmacinnis/nanscheme/internal/common/validate"
	"github.com/michaelmacinnis/nanscheme/internal/common/value"
)

func Functions() map[string]store.Native {
	return map[string]store.Native{
		// Predicates.
		"bool?":      is(isBoolean),
		"boolean?":   is(isBoolean),
		"char?":      is(isChar),
		"double?":    is(isDouble),
		"error?":     is(isError),
		"float?":     is(isFloat),
		"integer?":   is(isInteger),
		"null?":      is(isNull),
		"number?":    is(isNumber),
		"pair?":      is((*store.T).IsCons),
		"procedure?": is((*store.T).IsProcedure),
		"string?":    is((*store.T).IsString),
		"symbol?":    is((*store.T).IsSymbol),
		"buffer?":    is((*store.T).IsBuffer),

		// Conversions.
		"char->integer":  charToInteger,
		"integer->char":  integerToChar,
		"number->string": numberToString,
		"string->number": stringToNumber,
		"string->symbol": stringToSymbol,
		"symbol->string": symbolToString,

		// Arithmetic.
		"*":         mul,
		"+":         add,
		"-":         sub,
		"/":         div,
		"modulo":    modulo,
		"quotient":  quotient,
		"remainder": remainder,

		// Relational.
		"<":  lt,
		"<=": le,
		"=":  eq,
		">":  gt,
		">=": ge,

		// Pairs and lists.
		"car":      car,
		"cdr":      cdr,
		"cons":     cons,
		"length":   length,
		"list":     list,
		"reverse":  reverse,
		"set-car!": setCar,
		"set-cdr!": setCdr,

		// Equivalence.
		"eq?":    same,
		"equal?": equal,
		"eqv?":   same,

		// Strings.
		"string-append": stringAppend,
		"string-length": stringLength,
		"string-ref":    stringRef,
		"string=?":      stringEqual,

		// Buffers.
		"buffer-length": bufferLength,
		"buffer-ref":    bufferRef,
		"buffer-set!":   bufferSet,
		"make-buffer":   makeBuffer,
	}
}

// Output returns the procedures that write to w.
func Output(w io.Writer) map[string]store.Native {
	return map[string]store.Native{
		"display": display(w),
		"newline": newline(w),
		"write":   write(w),
	}
}

func is(p func(*store.T, value.T) bool) store.Native {
	return func(s *store.T, args value.T) (value.T, error) {
		v := validate.Fixed(s, args, 1, 1)

		return value.Bool(p(s, v[0])), nil
	}
}

func integer(v value.T) int32 {
	if !value.IsBox(value.Integer, v) {
		condition.Raise(condition.ErrType, "expected integer, got %s", value.Name(v))
	}

	return value.IntOf(v)
}

func number(v value.T) float64 {
	if !value.IsNumber(v) {
		condition.Raise(condition.ErrType, "expected number, got %s", value.Name(v))
	}

	return value.Number(v)
}
