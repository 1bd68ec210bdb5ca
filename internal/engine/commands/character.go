// Released under an MIT license. See LICENSE.

package commands

import (
	"unicode/utf8"

	"github.com/michaelmacinnis/nanscheme/internal/common/condition"
	"github.com/michaelmacinnis/nanscheme/internal/common/store"
	"github.com/michaelmacinnis/nanscheme/internal/common/validate"
	"github.com/michaelmacinnis/nanscheme/internal/common/value"
)

func charToInteger(s *store.T, args value.T) (value.T, error) {
	v := validate.Fixed(s, args, 1, 1)

	return value.Int(character(v[0])), nil
}

func integerToChar(s *store.T, args value.T) (value.T, error) {
	v := validate.Fixed(s, args, 1, 1)

	r := rune(integer(v[0]))
	if !utf8.ValidRune(r) {
		condition.Raise(condition.ErrRange, "%d is not a character", r)
	}

	return value.Char(r), nil
}

func isChar(_ *store.T, v value.T) bool {
	return value.IsBox(value.Character, v)
}

func character(v value.T) rune {
	if !value.IsBox(value.Character, v) {
		condition.Raise(condition.ErrType, "expected character, got %s", value.Name(v))
	}

	return value.Rune(v)
}
