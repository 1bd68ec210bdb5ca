// Released under an MIT license. See LICENSE.

// Package input wraps a rune reader with unlimited pushback and tracks the
// location of the next rune.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// EOF is returned by Next and Peek at the end of input.
const EOF = -1

// Loc is a position in named input. Line and Char start at 1.
type Loc struct {
	Name string
	Line int
	Char int
}

func (l Loc) String() string {
	return fmt.Sprintf("%s:%d:%d", l.Name, l.Line, l.Char)
}

// T holds the state of the input stream.
type T struct {
	err    error
	reader io.RuneReader
	pushed []rune // Runes waiting to be read again, last first.
	widths []int  // Line lengths for lines that could still be unread.

	loc Loc
}

// New creates a new T. Label can be a file name or other identifier.
func New(label string, r io.Reader) *T {
	rr, ok := r.(io.RuneReader)
	if !ok {
		rr = bufio.NewReader(r)
	}

	return &T{
		reader: rr,
		loc: Loc{
			Name: label,
			Line: 1,
			Char: 1,
		},
	}
}

// Err returns the first error, other than io.EOF, from the underlying reader.
func (in *T) Err() error {
	return in.err
}

// Loc returns the location of the next rune.
func (in *T) Loc() Loc {
	return in.loc
}

// Next consumes and returns the next rune.
func (in *T) Next() rune {
	r := in.get()
	if r == EOF {
		return r
	}

	if r == '\n' {
		in.widths = append(in.widths, in.loc.Char)
		if len(in.widths) > 64 {
			in.widths = append(in.widths[:0], in.widths[32:]...)
		}

		in.loc.Line++
		in.loc.Char = 1
	} else {
		in.loc.Char++
	}

	return r
}

// Peek returns the next rune without consuming it.
func (in *T) Peek() rune {
	r := in.Next()
	in.Unread(r)

	return r
}

// Unread pushes r back so that it is the next rune returned.
// Unreading EOF does nothing.
func (in *T) Unread(r rune) {
	if r == EOF {
		return
	}

	in.pushed = append(in.pushed, r)

	if r != '\n' {
		in.loc.Char--

		return
	}

	in.loc.Line--

	if n := len(in.widths); n > 0 {
		in.loc.Char = in.widths[n-1]
		in.widths = in.widths[:n-1]
	}
}

// Accept consumes s if it is next in the input.
// Otherwise, it leaves the input as it was and returns false.
func (in *T) Accept(s string) bool {
	var read []rune

	for _, want := range s {
		r := in.Next()
		if r != want {
			in.Unread(r)

			for i := len(read) - 1; i >= 0; i-- {
				in.Unread(read[i])
			}

			return false
		}

		read = append(read, r)
	}

	return true
}

func (in *T) get() rune {
	if n := len(in.pushed); n > 0 {
		r := in.pushed[n-1]
		in.pushed = in.pushed[:n-1]

		return r
	}

	if in.reader == nil {
		return EOF
	}

	r, _, err := in.reader.ReadRune()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			in.err = err
		}

		in.reader = nil

		return EOF
	}

	return r
}
