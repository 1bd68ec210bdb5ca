// Released under an MIT license. See LICENSE.

package commands

import (
	bs "bytes"

	"github.com/michaelmacinnis/nanscheme/internal/common/store"
	"github.com/michaelmacinnis/nanscheme/internal/common/validate"
	"github.com/michaelmacinnis/nanscheme/internal/common/value"
)

// Every value is a single word and NaNs are canonical, so identity and
// equivalence are both word equality.
func same(s *store.T, args value.T) (value.T, error) {
	v := validate.Fixed(s, args, 2, 2)

	return value.Bool(v[0] == v[1]), nil
}

func equal(s *store.T, args value.T) (value.T, error) {
	v := validate.Fixed(s, args, 2, 2)

	return value.Bool(equivalent(s, v[0], v[1])), nil
}

// equivalent compares pairs by structure and strings and buffers by
// content. Pairs already being compared are assumed equal so that
// circular structures terminate.
func equivalent(s *store.T, a, b value.T) bool {
	type couple struct {
		a, b value.T
	}

	seen := map[couple]bool{}
	work := []couple{{a, b}}

	for len(work) > 0 {
		c := work[len(work)-1]
		work = work[:len(work)-1]

		switch {
		case c.a == c.b:
		case s.IsCons(c.a) && s.IsCons(c.b):
			if seen[c] {
				continue
			}

			seen[c] = true

			work = append(work,
				couple{s.Cdr(c.a), s.Cdr(c.b)},
				couple{s.Car(c.a), s.Car(c.b)},
			)
		case s.IsString(c.a) && s.IsString(c.b):
			if !bs.Equal(s.Bytes(c.a), s.Bytes(c.b)) {
				return false
			}
		case s.IsBuffer(c.a) && s.IsBuffer(c.b):
			if !bs.Equal(s.BufferBytes(c.a), s.BufferBytes(c.b)) {
				return false
			}
		default:
			return false
		}
	}

	return true
}
