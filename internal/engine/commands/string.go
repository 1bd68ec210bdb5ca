// Released under an MIT license. See LICENSE.

package commands

import (
	bs "bytes"
	"unicode/utf8"

	"github.com/michaelmacinnis/nanscheme/internal/common/condition"
	"github.com/michaelmacinnis/nanscheme/internal/common/store"
	"github.com/michaelmacinnis/nanscheme/internal/common/validate"
	"github.com/michaelmacinnis/nanscheme/internal/common/value"
)

func stringAppend(s *store.T, args value.T) (value.T, error) {
	var b []byte

	for ; args != value.Nil; args = s.Cdr(args) {
		b = append(b, bytes(s, s.Car(args))...)
	}

	return s.String(b)
}

func stringEqual(s *store.T, args value.T) (value.T, error) {
	v, args := validate.Variadic(s, args, 1, 1)

	ok := true
	first := bytes(s, v[0])

	for ; args != value.Nil; args = s.Cdr(args) {
		if !bs.Equal(first, bytes(s, s.Car(args))) {
			ok = false
		}
	}

	return value.Bool(ok), nil
}

// stringLength counts characters, not bytes.
func stringLength(s *store.T, args value.T) (value.T, error) {
	v := validate.Fixed(s, args, 1, 1)

	return value.Int(int32(utf8.RuneCount(bytes(s, v[0])))), nil
}

func stringRef(s *store.T, args value.T) (value.T, error) {
	v := validate.Fixed(s, args, 2, 2)

	b := bytes(s, v[0])
	k := integer(v[1])

	for i := int32(0); len(b) > 0; i++ {
		r, n := utf8.DecodeRune(b)
		if i == k {
			return value.Char(r), nil
		}

		b = b[n:]
	}

	condition.Raise(condition.ErrRange, "index %d is out of range", k)

	return value.Nil, nil
}

func bytes(s *store.T, v value.T) []byte {
	if !s.IsString(v) {
		condition.Raise(condition.ErrType, "expected string, got %s", value.Name(v))
	}

	return s.Bytes(v)
}

func text(s *store.T, v value.T) string {
	return string(bytes(s, v))
}
