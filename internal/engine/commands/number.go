// Released under an MIT license. See LICENSE.

package commands

import (
	"strconv"

	"github.com/michaelmacinnis/nanscheme/internal/common/condition"
	"github.com/michaelmacinnis/nanscheme/internal/common/store"
	"github.com/michaelmacinnis/nanscheme/internal/common/validate"
	"github.com/michaelmacinnis/nanscheme/internal/common/value"
	"github.com/michaelmacinnis/nanscheme/internal/printer"
	"github.com/michaelmacinnis/nanscheme/internal/reader"
)

func isDouble(_ *store.T, v value.T) bool {
	return value.IsDouble(v) || value.IsSpecial(v)
}

func isFloat(_ *store.T, v value.T) bool {
	return value.IsBox(value.Float32, v)
}

func isInteger(_ *store.T, v value.T) bool {
	return value.IsBox(value.Integer, v)
}

func isNumber(_ *store.T, v value.T) bool {
	return value.IsNumber(v)
}

func numberToString(s *store.T, args value.T) (value.T, error) {
	v := validate.Fixed(s, args, 1, 1)

	text := ""

	switch {
	case value.IsBox(value.Integer, v[0]):
		text = strconv.FormatInt(int64(value.IntOf(v[0])), 10)
	case value.IsNumber(v[0]):
		text = printer.String(s, v[0])
	default:
		condition.Raise(condition.ErrType, "expected number, got %s", value.Name(v[0]))
	}

	return s.String([]byte(text))
}

// stringToNumber returns #f if the string is not a number.
func stringToNumber(s *store.T, args value.T) (value.T, error) {
	v := validate.Fixed(s, args, 1, 1)

	n, ok := reader.Number(text(s, v[0]))
	if !ok {
		return value.False, nil
	}

	return n, nil
}
