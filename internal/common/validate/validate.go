// Released under an MIT license. See LICENSE.

package validate

import (
	"fmt"

	"github.com/michaelmacinnis/nanscheme/internal/common/condition"
	"github.com/michaelmacinnis/nanscheme/internal/common/list"
	"github.com/michaelmacinnis/nanscheme/internal/common/store"
	"github.com/michaelmacinnis/nanscheme/internal/common/value"
)

// Variadic returns between min and max leading arguments and whatever
// remains of actual.
func Variadic(s *store.T, actual value.T, min, max int) ([]value.T, value.T) {
	expected := make([]value.T, 0, max)

	for i := 0; i < max; i++ {
		if actual == value.Nil {
			if i < min {
				c := Count(min, "argument", "s")
				condition.Raise(condition.ErrArity, "expected %s, passed %d", c, i)
			}

			break
		}

		expected = append(expected, s.Car(actual))

		actual = s.Cdr(actual)
	}

	return expected, actual
}

// Fixed returns the arguments in actual and panics unless there are
// between min and max of them.
func Fixed(s *store.T, actual value.T, min, max int) []value.T {
	expected, rest := Variadic(s, actual, min, max)
	if rest != value.Nil {
		c := Count(max, "argument", "s")
		n := list.Length(s, actual)

		condition.Raise(condition.ErrArity, "expected %s, passed %d", c, n)
	}

	return expected
}

// Count returns n followed by label, pluralized with p if n is not 1.
func Count(n int, label string, p string) string {
	if n == 1 {
		p = ""
	}

	return fmt.Sprintf("%d %s%s", n, label, p)
}
