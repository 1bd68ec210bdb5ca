// Released under an MIT license. See LICENSE.

package env

import (
	"errors"
	"testing"

	"github.com/michaelmacinnis/nanscheme/internal/common/condition"
	"github.com/michaelmacinnis/nanscheme/internal/common/list"
	"github.com/michaelmacinnis/nanscheme/internal/common/store"
	"github.com/michaelmacinnis/nanscheme/internal/common/value"
)

func symbols(s *store.T, t *testing.T, names ...string) []value.T {
	t.Helper()

	syms := make([]value.T, len(names))

	for i, name := range names {
		sym, err := s.Symbol(name)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		syms[i] = sym
	}

	return syms
}

func lookup(s *store.T, t *testing.T, e, sym value.T) value.T {
	t.Helper()

	v, ok := Lookup(s, e, sym)
	if !ok {
		t.Fatalf("%s is unbound", s.Text(sym))
	}

	return v
}

func TestShadowing(t *testing.T) {
	s := newStore(t, store.Defaults())
	syms := symbols(s, t, "x", "y")
	x, y := syms[0], syms[1]

	e, err := New(s, value.Nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := Lookup(s, e, x); ok {
		t.Fatalf("x should be unbound")
	}

	if err := Define(s, e, x, value.Int(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := Define(s, e, x, value.Int(2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v := lookup(s, t, e, x); value.IntOf(v) != 2 {
		t.Fatalf("expected newest binding, got %#x", v)
	}

	inner, err := New(s, e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := Define(s, inner, x, value.Int(3)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if value.IntOf(lookup(s, t, inner, x)) != 3 || value.IntOf(lookup(s, t, e, x)) != 2 {
		t.Fatalf("inner frame leaked into outer frame")
	}

	// Definitions in an outer frame are visible to frames created earlier.
	if err := Define(s, e, y, value.True); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if lookup(s, t, inner, y) != value.True {
		t.Fatalf("expected late definition to be visible")
	}
}

func TestSet(t *testing.T) {
	s := newStore(t, store.Defaults())
	syms := symbols(s, t, "x", "unbound")

	e, _ := New(s, value.Nil)
	_ = Define(s, e, syms[0], value.Int(1))

	inner, _ := New(s, e)

	if err := Set(s, inner, syms[0], value.Int(5)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if value.IntOf(lookup(s, t, e, syms[0])) != 5 {
		t.Fatalf("set! did not update the outer binding")
	}

	err := Set(s, e, syms[1], value.Nil)
	if !errors.Is(err, condition.ErrUnbound) {
		t.Fatalf("expected unbound error, got %v", err)
	}
}

func TestExtend(t *testing.T) {
	s := newStore(t, store.Defaults())
	syms := symbols(s, t, "a", "b", "rest")
	a, b, rest := syms[0], syms[1], syms[2]

	args, _ := list.New(s, value.Int(1), value.Int(2), value.Int(3))

	params, _ := list.Dotted(s, rest, a, b)

	frame, err := Extend(s, value.Nil, params, args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if value.IntOf(lookup(s, t, frame, a)) != 1 || value.IntOf(lookup(s, t, frame, b)) != 2 {
		t.Fatalf("wrong positional bindings")
	}

	if r := lookup(s, t, frame, rest); list.Length(s, r) != 1 {
		t.Fatalf("expected one remaining argument")
	}

	frame, err = Extend(s, value.Nil, rest, args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if list.Length(s, lookup(s, t, frame, rest)) != 3 {
		t.Fatalf("expected all arguments")
	}

	fixed, _ := list.New(s, a, b)

	short, _ := list.New(s, value.Int(1))
	if _, err := Extend(s, value.Nil, fixed, short); !errors.Is(err, condition.ErrArity) {
		t.Fatalf("expected arity error, got %v", err)
	}

	if _, err := Extend(s, value.Nil, fixed, args); !errors.Is(err, condition.ErrArity) {
		t.Fatalf("expected arity error, got %v", err)
	}

	bad, _ := list.New(s, a, value.Int(1))
	if _, err := Extend(s, value.Nil, bad, short); !errors.Is(err, condition.ErrForm) {
		t.Fatalf("expected malformed form error, got %v", err)
	}
}

func newStore(t *testing.T, c store.Config) *store.T {
	t.Helper()

	s, err := store.New(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return s
}
