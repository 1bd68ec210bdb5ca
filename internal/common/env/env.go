// Released under an MIT license. See LICENSE.

// Package env implements environments as lists of (symbol . value) pairs.
//
// Each frame begins with a marker pair, (() . ()), so an environment is
//
//	(marker binding ... marker binding ...)
//
// with the innermost frame first. Definitions are spliced in directly after
// the innermost marker. Every holder of the environment sees them, which
// is what lets a closure call itself after it has been defined.
package env

import (
	"github.com/michaelmacinnis/nanscheme/internal/common/condition"
	"github.com/michaelmacinnis/nanscheme/internal/common/store"
	"github.com/michaelmacinnis/nanscheme/internal/common/value"
)

// New creates an empty frame whose parent is parent.
// Use value.Nil as the parent of the base environment.
func New(s *store.T, parent value.T) (value.T, error) {
	marker, err := s.Cons(value.Nil, value.Nil)
	if err != nil {
		return value.Nil, err
	}

	return s.Cons(marker, parent)
}

// Define binds sym to v in the innermost frame of e.
// An earlier binding for sym is shadowed, not replaced.
func Define(s *store.T, e, sym, v value.T) error {
	b, err := s.Cons(sym, v)
	if err != nil {
		return err
	}

	link, err := s.Cons(b, s.Cdr(e))
	if err != nil {
		return err
	}

	s.SetCdr(e, link)

	return nil
}

// Binding returns the nearest (symbol . value) pair for sym, or nil.
func Binding(s *store.T, e, sym value.T) value.T {
	for ; e != value.Nil; e = s.Cdr(e) {
		b := s.Car(e)
		if s.Car(b) == sym {
			return b
		}
	}

	return value.Nil
}

// Lookup returns the value bound to sym.
func Lookup(s *store.T, e, sym value.T) (value.T, bool) {
	b := Binding(s, e, sym)
	if b == value.Nil {
		return value.Nil, false
	}

	return s.Cdr(b), true
}

// Set changes the nearest binding for sym to v.
func Set(s *store.T, e, sym, v value.T) error {
	b := Binding(s, e, sym)
	if b == value.Nil {
		return condition.New(condition.ErrUnbound, "%s", s.Text(sym))
	}

	s.SetCdr(b, v)

	return nil
}

// Extend creates a frame below e binding params to args.
// Params may be a proper list of symbols, a dotted list whose final cdr
// collects the remaining arguments, or a single symbol that collects all
// of them.
func Extend(s *store.T, e, params, args value.T) (value.T, error) {
	frame, err := New(s, e)
	if err != nil {
		return value.Nil, err
	}

	passed := 0

	for params != value.Nil {
		if s.IsSymbol(params) {
			return frame, Define(s, frame, params, args)
		}

		param, rest, ok := s.Pair(params)
		if !ok {
			return value.Nil, condition.New(condition.ErrForm,
				"invalid parameter list element: %s", value.Name(params))
		}

		if !s.IsSymbol(param) {
			return value.Nil, condition.New(condition.ErrForm,
				"parameter must be a symbol, got %s", value.Name(param))
		}

		arg, more, ok := s.Pair(args)
		if !ok {
			return value.Nil, condition.New(condition.ErrArity,
				"expected at least %d arguments, passed %d", required(s, params)+passed, passed)
		}

		err = Define(s, frame, param, arg)
		if err != nil {
			return value.Nil, err
		}

		passed++

		params = rest
		args = more
	}

	if args != value.Nil {
		return value.Nil, condition.New(condition.ErrArity,
			"expected %d arguments, passed more", passed)
	}

	return frame, nil
}

func required(s *store.T, params value.T) int {
	n := 0

	for {
		_, rest, ok := s.Pair(params)
		if !ok {
			return n
		}

		n++

		params = rest
	}
}
