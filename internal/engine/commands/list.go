// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/nanscheme/internal/common/condition"
	lists "github.com/michaelmacinnis/nanscheme/internal/common/list"
	"github.com/michaelmacinnis/nanscheme/internal/common/store"
	"github.com/michaelmacinnis/nanscheme/internal/common/validate"
	"github.com/michaelmacinnis/nanscheme/internal/common/value"
)

func length(s *store.T, args value.T) (value.T, error) {
	v := validate.Fixed(s, args, 1, 1)

	return value.Int(int32(lists.Length(s, proper(s, v[0])))), nil
}

// The argument list is freshly allocated for each call so it can be
// returned as is.
func list(_ *store.T, args value.T) (value.T, error) {
	return args, nil
}

func reverse(s *store.T, args value.T) (value.T, error) {
	v := validate.Fixed(s, args, 1, 1)

	return lists.Reverse(s, proper(s, v[0]))
}

func proper(s *store.T, l value.T) value.T {
	if !lists.IsProper(s, l) {
		condition.Raise(condition.ErrType, "expected list, got %s", value.Name(l))
	}

	return l
}
