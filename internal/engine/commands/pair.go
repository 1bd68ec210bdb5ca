// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/nanscheme/internal/common/store"
	"github.com/michaelmacinnis/nanscheme/internal/common/validate"
	"github.com/michaelmacinnis/nanscheme/internal/common/value"
)

func car(s *store.T, args value.T) (value.T, error) {
	v := validate.Fixed(s, args, 1, 1)

	return s.Car(v[0]), nil
}

func cdr(s *store.T, args value.T) (value.T, error) {
	v := validate.Fixed(s, args, 1, 1)

	return s.Cdr(v[0]), nil
}

func cons(s *store.T, args value.T) (value.T, error) {
	v := validate.Fixed(s, args, 2, 2)

	return s.Cons(v[0], v[1])
}

func isNull(_ *store.T, v value.T) bool {
	return v == value.Nil
}

func setCar(s *store.T, args value.T) (value.T, error) {
	v := validate.Fixed(s, args, 2, 2)

	s.SetCar(v[0], v[1])

	return v[1], nil
}

func setCdr(s *store.T, args value.T) (value.T, error) {
	v := validate.Fixed(s, args, 2, 2)

	s.SetCdr(v[0], v[1])

	return v[1], nil
}
