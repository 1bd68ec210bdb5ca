// Released under an MIT license. See LICENSE.

package store

import (
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/michaelmacinnis/nanscheme/internal/common/condition"
	"github.com/michaelmacinnis/nanscheme/internal/common/value"
)

func raises(t *testing.T, kind *condition.T, f func()) {
	t.Helper()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic with %v", kind)
		}

		c, ok := r.(*condition.T)
		if !ok {
			t.Fatalf("expected condition, got %v", r)
		}

		if !errors.Is(c, kind) {
			t.Fatalf("expected %v, got %v", kind, c)
		}
	}()

	f()
}

func TestCons(t *testing.T) {
	s := newStore(t, Config{Cons: 1})

	a, err := s.Cons(value.Int(1), value.Nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, err := s.Cons(value.Int(2), a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if value.IntOf(s.Car(b)) != 2 || s.Cdr(b) != a {
		t.Fatalf("wrong contents for %#x", b)
	}

	s.SetCar(a, value.True)
	s.SetCdr(a, b)

	if s.Car(a) != value.True || s.Cdr(a) != b {
		t.Fatalf("SetCar/SetCdr did not update %#x", a)
	}

	if !s.IsCons(a) || s.IsCons(value.Nil) {
		t.Fatalf("IsCons is wrong")
	}

	if st := s.Stats(); st.Pairs != 2 || st.PairCapacity < 2 {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestConsLimit(t *testing.T) {
	s := newStore(t, Config{Cons: 2, ConsLimit: 3})

	for i := 0; i < 3; i++ {
		_, err := s.Cons(value.Int(int32(i)), value.Nil)
		if err != nil {
			t.Fatalf("pair %d: unexpected error: %v", i, err)
		}
	}

	_, err := s.Cons(value.Nil, value.Nil)
	if !errors.Is(err, condition.ErrCapacity) {
		t.Fatalf("expected capacity error, got %v", err)
	}
}

func TestAccessorsCheck(t *testing.T) {
	s := newStore(t, Defaults())

	raises(t, condition.ErrType, func() { s.Car(value.Int(1)) })
	raises(t, condition.ErrType, func() { s.Cdr(value.Nil) })

	// Never allocated.
	raises(t, condition.ErrRange, func() {
		s.Car(value.NewHandle(value.Cons, s.ID(), 10))
	})

	other := newStore(t, Defaults())

	c, err := other.Cons(value.Nil, value.Nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Owns(c) || !other.Owns(c) {
		t.Fatalf("ownership is wrong")
	}

	raises(t, condition.ErrForeign, func() { s.Car(c) })
}

func TestStrings(t *testing.T) {
	s := newStore(t, Config{Bytes: 1})

	for _, text := range []string{"", "hello", "with\x00nul", "snowman ☃"} {
		v, err := s.String([]byte(text))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !s.IsString(v) || s.IsSymbol(v) {
			t.Fatalf("%q: wrong kind", text)
		}

		if got := s.Text(v); got != text {
			t.Fatalf("expected %q, got %q", text, got)
		}
	}

	a, _ := s.String([]byte("same"))
	b, _ := s.String([]byte("same"))

	if a == b {
		t.Fatalf("strings should not be interned")
	}
}

func TestStringLimit(t *testing.T) {
	s := newStore(t, Config{Bytes: 8, BytesLimit: 16})

	_, err := s.String([]byte("0123456789"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = s.String([]byte("0123456789"))
	if !errors.Is(err, condition.ErrCapacity) {
		t.Fatalf("expected capacity error, got %v", err)
	}
}

func TestIntern(t *testing.T) {
	// A single bucket forces every symbol onto one chain.
	s := newStore(t, Config{Symbols: 1})

	names := []string{"a", "b", "lambda", "define", "b"}
	syms := map[string]value.T{}

	for _, name := range names {
		sym, err := s.Symbol(name)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if prev, ok := syms[name]; ok && prev != sym {
			t.Fatalf("%s interned twice: %#x and %#x", name, prev, sym)
		}

		syms[name] = sym

		if !s.IsSymbol(sym) || s.Text(sym) != name {
			t.Fatalf("wrong symbol for %s", name)
		}
	}

	if n := s.Stats().Symbols; n != 4 {
		t.Fatalf("expected 4 symbols, got %d", n)
	}

	if syms["a"] == syms["b"] {
		t.Fatalf("different names share a symbol")
	}
}

func TestProcedures(t *testing.T) {
	s := newStore(t, Defaults())

	id := func(_ *T, args value.T) (value.T, error) {
		return args, nil
	}

	p, err := s.Primitive("id", id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !s.IsProcedure(p) {
		t.Fatalf("expected procedure")
	}

	e := s.Procedure(p)
	if !e.IsNative() || s.Text(e.Name) != "id" {
		t.Fatalf("wrong entry %+v", e)
	}

	c, err := s.Closure(value.Nil, value.Nil, value.Nil, value.Nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Procedure(c).IsNative() {
		t.Fatalf("closure reported as native")
	}

	raises(t, condition.ErrType, func() { s.Procedure(value.Int(0)) })
}

func TestBuffers(t *testing.T) {
	s := newStore(t, Defaults())
	defer s.Free()

	v, err := s.Buffer(16, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !value.IsPointerOf(value.Buffer, v) || !s.IsBuffer(v) {
		t.Fatalf("expected buffer, got %#x", v)
	}

	b := s.BufferBytes(v)
	if len(b) != 16 || b[15] != 7 {
		t.Fatalf("unexpected contents %v", b)
	}

	b[0] = 42
	if s.BufferBytes(v)[0] != 42 {
		t.Fatalf("buffer writes are not visible")
	}

	empty, err := s.Buffer(0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(s.BufferBytes(empty)) != 0 {
		t.Fatalf("expected empty buffer")
	}

	if _, err := s.Buffer(-1, 0); !errors.Is(err, condition.ErrRange) {
		t.Fatalf("expected range error, got %v", err)
	}

	raises(t, condition.ErrType, func() { s.BufferBytes(value.Nil) })
}

func TestPoolExhaustion(t *testing.T) {
	saved := atomic.LoadUint32(&ids)
	defer atomic.StoreUint32(&ids, saved)

	atomic.StoreUint32(&ids, math.MaxUint16-1)

	s := newStore(t, Defaults())
	if s.id != math.MaxUint16 {
		t.Fatalf("expected pool id %d, got %d", math.MaxUint16, s.id)
	}

	_, err := New(Defaults())
	if !errors.Is(err, condition.ErrCapacity) {
		t.Fatalf("expected %v, got %v", condition.ErrCapacity, err)
	}

	if id := atomic.LoadUint32(&ids); id != math.MaxUint16 {
		t.Fatalf("expected ids to stay at %d, got %d", math.MaxUint16, id)
	}
}

func newStore(t *testing.T, c Config) *T {
	t.Helper()

	s, err := New(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return s
}
