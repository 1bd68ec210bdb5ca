// Released under an MIT license. See LICENSE.

package commands

import (
	"io"

	"github.com/michaelmacinnis/nanscheme/internal/common/store"
	"github.com/michaelmacinnis/nanscheme/internal/common/validate"
	"github.com/michaelmacinnis/nanscheme/internal/common/value"
	"github.com/michaelmacinnis/nanscheme/internal/printer"
)

func display(w io.Writer) store.Native {
	return func(s *store.T, args value.T) (value.T, error) {
		v := validate.Fixed(s, args, 1, 1)

		_, err := io.WriteString(w, printer.Display(s, v[0]))

		return value.Nil, err
	}
}

func newline(w io.Writer) store.Native {
	return func(s *store.T, args value.T) (value.T, error) {
		validate.Fixed(s, args, 0, 0)

		_, err := io.WriteString(w, "\n")

		return value.Nil, err
	}
}

func write(w io.Writer) store.Native {
	return func(s *store.T, args value.T) (value.T, error) {
		v := validate.Fixed(s, args, 1, 1)

		return value.Nil, printer.Fprint(w, s, v[0])
	}
}
