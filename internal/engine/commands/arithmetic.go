// Released under an MIT license. See LICENSE.

package commands

import (
	"math"

	"github.com/michaelmacinnis/nanscheme/internal/common/condition"
	"github.com/michaelmacinnis/nanscheme/internal/common/store"
	"github.com/michaelmacinnis/nanscheme/internal/common/validate"
	"github.com/michaelmacinnis/nanscheme/internal/common/value"
)

// Integers stay integers until a result no longer fits in 32 bits or a
// double takes part. Either way the result is a double from then on.

func add(s *store.T, args value.T) (value.T, error) {
	return fold(s, args, value.Int(0),
		func(a, b int64) int64 { return a + b },
		func(a, b float64) float64 { return a + b },
	), nil
}

func div(s *store.T, args value.T) (value.T, error) {
	v, rest := validate.Variadic(s, args, 1, 1)

	acc := v[0]
	if rest == value.Nil {
		acc, rest = value.Int(1), args
	}

	number(acc)

	for ; rest != value.Nil; rest = s.Cdr(rest) {
		d := s.Car(rest)
		number(d)

		if value.IsBox(value.Integer, acc) && value.IsBox(value.Integer, d) {
			a, b := int64(value.IntOf(acc)), int64(value.IntOf(d))
			if b == 0 {
				condition.Raise(condition.ErrRange, "division by zero")
			}

			if a%b == 0 {
				acc = fromInt64(a / b)

				continue
			}
		}

		acc = value.Float(value.Number(acc) / value.Number(d))
	}

	return acc, nil
}

func modulo(s *store.T, args value.T) (value.T, error) {
	a, b := divisible(s, args)

	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}

	return fromInt64(m), nil
}

func mul(s *store.T, args value.T) (value.T, error) {
	return fold(s, args, value.Int(1),
		func(a, b int64) int64 { return a * b },
		func(a, b float64) float64 { return a * b },
	), nil
}

func quotient(s *store.T, args value.T) (value.T, error) {
	a, b := divisible(s, args)

	return fromInt64(a / b), nil
}

func remainder(s *store.T, args value.T) (value.T, error) {
	a, b := divisible(s, args)

	return fromInt64(a % b), nil
}

func sub(s *store.T, args value.T) (value.T, error) {
	v, rest := validate.Variadic(s, args, 1, 1)

	start := value.Int(0)
	if rest != value.Nil {
		number(v[0])

		start, args = v[0], rest
	}

	return fold(s, args, start,
		func(a, b int64) int64 { return a - b },
		func(a, b float64) float64 { return a - b },
	), nil
}

func divisible(s *store.T, args value.T) (int64, int64) {
	v := validate.Fixed(s, args, 2, 2)

	a, b := int64(integer(v[0])), int64(integer(v[1]))
	if b == 0 {
		condition.Raise(condition.ErrRange, "division by zero")
	}

	return a, b
}

func fold(
	s *store.T, args, acc value.T,
	iop func(a, b int64) int64,
	fop func(a, b float64) float64,
) value.T {
	for ; args != value.Nil; args = s.Cdr(args) {
		v := s.Car(args)
		number(v)

		if value.IsBox(value.Integer, acc) && value.IsBox(value.Integer, v) {
			acc = fromInt64(iop(int64(value.IntOf(acc)), int64(value.IntOf(v))))
		} else {
			acc = value.Float(fop(value.Number(acc), value.Number(v)))
		}
	}

	return acc
}

func fromInt64(i int64) value.T {
	if i < math.MinInt32 || i > math.MaxInt32 {
		return value.Float(float64(i))
	}

	return value.Int(int32(i))
}
