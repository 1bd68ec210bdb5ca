// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/nanscheme/internal/common/condition"
	"github.com/michaelmacinnis/nanscheme/internal/common/store"
	"github.com/michaelmacinnis/nanscheme/internal/common/validate"
	"github.com/michaelmacinnis/nanscheme/internal/common/value"
)

func bufferLength(s *store.T, args value.T) (value.T, error) {
	v := validate.Fixed(s, args, 1, 1)

	return value.Int(int32(len(s.BufferBytes(v[0])))), nil
}

func bufferRef(s *store.T, args value.T) (value.T, error) {
	v := validate.Fixed(s, args, 2, 2)

	b := s.BufferBytes(v[0])

	return value.Int(int32(b[index(b, v[1])])), nil
}

func bufferSet(s *store.T, args value.T) (value.T, error) {
	v := validate.Fixed(s, args, 3, 3)

	b := s.BufferBytes(v[0])
	b[index(b, v[1])] = octet(v[2])

	return v[2], nil
}

// makeBuffer allocates (make-buffer size [fill]).
func makeBuffer(s *store.T, args value.T) (value.T, error) {
	v := validate.Fixed(s, args, 1, 2)

	fill := byte(0)
	if len(v) == 2 {
		fill = octet(v[1])
	}

	return s.Buffer(int(integer(v[0])), fill)
}

func index(b []byte, v value.T) int {
	i := int(integer(v))
	if i < 0 || i >= len(b) {
		condition.Raise(condition.ErrRange, "index %d is out of range", i)
	}

	return i
}

func octet(v value.T) byte {
	n := integer(v)
	if n < 0 || n > 255 {
		condition.Raise(condition.ErrRange, "%d is not a byte", n)
	}

	return byte(n)
}
