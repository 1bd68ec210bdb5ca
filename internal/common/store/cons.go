// Released under an MIT license. See LICENSE.

package store

import (
	"github.com/michaelmacinnis/nanscheme/internal/common/condition"
	"github.com/michaelmacinnis/nanscheme/internal/common/value"
)

// Cons appends the pair (car . cdr) to the cons pool.
// The pool grows geometrically until it reaches its limit.
func (s *T) Cons(car, cdr value.T) (value.T, error) {
	if s.pairs == len(s.cons)/2 {
		err := s.grow()
		if err != nil {
			return value.Nil, err
		}
	}

	offset := 2 * s.pairs

	s.cons[offset] = car
	s.cons[offset+1] = cdr
	s.pairs++

	return value.NewHandle(value.Cons, s.id, uint32(offset)), nil
}

// IsCons returns true if v is a pair in this store.
func (s *T) IsCons(v value.T) bool {
	return value.IsHandle(value.Cons, v) &&
		value.Pool(v) == s.id && int(value.Offset(v)) < 2*s.pairs
}

// Pair returns the car and cdr of v, if v is a pair.
func (s *T) Pair(v value.T) (car, cdr value.T, ok bool) {
	if !s.IsCons(v) {
		return value.Nil, value.Nil, false
	}

	offset := value.Offset(v)

	return s.cons[offset], s.cons[offset+1], true
}

// Car returns the car/head/first member of the pair c.
// If c is not a pair, this function will panic.
func (s *T) Car(c value.T) value.T {
	return s.cons[s.check(value.Cons, c, 2*s.pairs)]
}

// Cdr returns the cdr/tail/rest member of the pair c.
// If c is not a pair, this function will panic.
func (s *T) Cdr(c value.T) value.T {
	return s.cons[s.check(value.Cons, c, 2*s.pairs)+1]
}

// Cadr returns the car of the cdr of the pair c.
// A non-pair value where a pair is expected will cause a panic.
func (s *T) Cadr(c value.T) value.T {
	return s.Car(s.Cdr(c))
}

// Cddr returns the cdr of the cdr of the pair c.
// A non-pair value where a pair is expected will cause a panic.
func (s *T) Cddr(c value.T) value.T {
	return s.Cdr(s.Cdr(c))
}

// SetCar sets the car/head/first of the pair c to v.
// If c is not a pair, this function will panic.
func (s *T) SetCar(c, v value.T) {
	s.cons[s.check(value.Cons, c, 2*s.pairs)] = v
}

// SetCdr sets the cdr/tail/rest of the pair c to v.
// If c is not a pair, this function will panic.
func (s *T) SetCdr(c, v value.T) {
	s.cons[s.check(value.Cons, c, 2*s.pairs)+1] = v
}

func (s *T) grow() error {
	n := len(s.cons) / 2

	limit := s.consLimit
	if limit <= 0 || limit > maxPairs {
		limit = maxPairs
	}

	if n >= limit {
		return condition.New(condition.ErrCapacity, "cons pool is full (%d pairs)", n)
	}

	m := 2 * n
	if m == 0 {
		m = 1
	}

	if m > limit {
		m = limit
	}

	grown := make([]value.T, 2*m)
	copy(grown, s.cons)
	fill(grown[len(s.cons):])

	s.cons = grown

	return nil
}
