// Released under an MIT license. See LICENSE.

// Package list provides common list operations. A list is not a true type.
// Lists are more of a type by convention. They are composed of cons cells.
package list

import (
	"github.com/michaelmacinnis/nanscheme/internal/common/condition"
	"github.com/michaelmacinnis/nanscheme/internal/common/store"
	"github.com/michaelmacinnis/nanscheme/internal/common/value"
)

// New creates a new list composed of all of the elements in elements.
func New(s *store.T, elements ...value.T) (value.T, error) {
	return Dotted(s, value.Nil, elements...)
}

// Dotted creates a list of elements whose final cdr is tail.
func Dotted(s *store.T, tail value.T, elements ...value.T) (value.T, error) {
	l := tail

	for i := len(elements) - 1; i >= 0; i-- {
		p, err := s.Cons(elements[i], l)
		if err != nil {
			return value.Nil, err
		}

		l = p
	}

	return l, nil
}

// Length returns the number of elements in list.
// A non-pair value where a pair is expected will cause a panic.
// The list must be non-circular.
func Length(s *store.T, list value.T) int {
	n := 0

	for list != value.Nil {
		n++

		list = s.Cdr(list)
	}

	return n
}

// IsProper returns true if list is nil-terminated and non-circular.
func IsProper(s *store.T, list value.T) bool {
	slow := list

	for {
		_, cdr, ok := s.Pair(list)
		if !ok {
			return list == value.Nil
		}

		list = cdr

		_, cdr, ok = s.Pair(list)
		if !ok {
			return list == value.Nil
		}

		list = cdr
		slow = s.Cdr(slow)

		if list == slow {
			return false
		}
	}
}

// Slice returns the elements of list as a Go slice.
// If list is not proper, this function will panic.
func Slice(s *store.T, list value.T) []value.T {
	var elements []value.T

	for list != value.Nil {
		car, cdr, ok := s.Pair(list)
		if !ok {
			condition.Raise(condition.ErrType, "expected list, got improper tail %s", value.Name(list))
		}

		elements = append(elements, car)

		list = cdr
	}

	return elements
}

// Reverse returns a new list with the elements of list in reverse order.
// A non-pair value where a pair is expected will cause a panic.
// The list must be non-circular.
func Reverse(s *store.T, list value.T) (value.T, error) {
	reversed := value.Nil

	for list != value.Nil {
		p, err := s.Cons(s.Car(list), reversed)
		if err != nil {
			return value.Nil, err
		}

		reversed = p

		list = s.Cdr(list)
	}

	return reversed, nil
}

// Tail returns the sublist of list starting at element index.
// If index is out of range, this function will panic.
func Tail(s *store.T, list value.T, index int) value.T {
	if index < 0 {
		condition.Raise(condition.ErrRange, "index %d before first element", index)
	}

	for ; index > 0; index-- {
		if list == value.Nil {
			condition.Raise(condition.ErrRange, "index after last element")
		}

		list = s.Cdr(list)
	}

	return list
}
