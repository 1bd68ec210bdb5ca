// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/nanscheme/internal/common/store"
	"github.com/michaelmacinnis/nanscheme/internal/common/validate"
	"github.com/michaelmacinnis/nanscheme/internal/common/value"
)

func eq(s *store.T, args value.T) (value.T, error) {
	return compare(s, args, func(a, b float64) bool { return a == b }), nil
}

func ge(s *store.T, args value.T) (value.T, error) {
	return compare(s, args, func(a, b float64) bool { return a >= b }), nil
}

func gt(s *store.T, args value.T) (value.T, error) {
	return compare(s, args, func(a, b float64) bool { return a > b }), nil
}

func le(s *store.T, args value.T) (value.T, error) {
	return compare(s, args, func(a, b float64) bool { return a <= b }), nil
}

func lt(s *store.T, args value.T) (value.T, error) {
	return compare(s, args, func(a, b float64) bool { return a < b }), nil
}

// compare checks that every adjacent pair of arguments is ordered by op.
// Every argument is checked, even after the result is known.
func compare(s *store.T, args value.T, op func(a, b float64) bool) value.T {
	v, args := validate.Variadic(s, args, 1, 1)

	ok := true
	prev := number(v[0])

	for ; args != value.Nil; args = s.Cdr(args) {
		n := number(s.Car(args))
		if !op(prev, n) {
			ok = false
		}

		prev = n
	}

	return value.Bool(ok)
}
