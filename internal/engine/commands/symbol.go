// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/nanscheme/internal/common/condition"
	"github.com/michaelmacinnis/nanscheme/internal/common/store"
	"github.com/michaelmacinnis/nanscheme/internal/common/validate"
	"github.com/michaelmacinnis/nanscheme/internal/common/value"
)

func stringToSymbol(s *store.T, args value.T) (value.T, error) {
	v := validate.Fixed(s, args, 1, 1)

	return s.Intern(bytes(s, v[0]))
}

func symbolToString(s *store.T, args value.T) (value.T, error) {
	v := validate.Fixed(s, args, 1, 1)

	if !s.IsSymbol(v[0]) {
		condition.Raise(condition.ErrType, "expected symbol, got %s", value.Name(v[0]))
	}

	// The arena may move when it grows.
	b := append([]byte(nil), s.Bytes(v[0])...)

	return s.String(b)
}
