// Released under an MIT license. See LICENSE.

// Package reader converts text into values.
package reader

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/michaelmacinnis/adapted"
	"github.com/michaelmacinnis/nanscheme/internal/common/condition"
	"github.com/michaelmacinnis/nanscheme/internal/common/list"
	"github.com/michaelmacinnis/nanscheme/internal/common/store"
	"github.com/michaelmacinnis/nanscheme/internal/common/value"
	"github.com/michaelmacinnis/nanscheme/internal/reader/input"
)

// Config bounds the reader.
type Config struct {
	MaxDepth int `yaml:"depth"` // Maximum list nesting. Zero means the default.
}

// DefaultDepth is the nesting limit used when Config.MaxDepth is zero.
// It is also the most the reader allows: the printer renders this deep
// before eliding, so everything read can be printed and read back.
const DefaultDepth = 100000

// Names maps named characters to their runes.
//
//nolint:gochecknoglobals
var Names = map[string]rune{
	"backspace": '\b',
	"newline":   '\n',
	"space":     ' ',
	"tab":       '\t',
}

// T (reader) reads data from an input stream.
type T struct {
	depth int
	in    *input.T
	max   int
	quote value.T
	s     *store.T
}

// New creates a reader that reads from in and allocates in s.
func New(s *store.T, in *input.T, c Config) *T {
	if c.MaxDepth <= 0 || c.MaxDepth > DefaultDepth {
		c.MaxDepth = DefaultDepth
	}

	return &T{
		in:    in,
		max:   c.MaxDepth,
		quote: value.Nil,
		s:     s,
	}
}

// ReadString reads every datum in text.
func ReadString(s *store.T, text string) ([]value.T, error) {
	r := New(s, input.New("string", strings.NewReader(text)), Config{})

	var vs []value.T

	for {
		v, err := r.Read()
		if err == io.EOF { //nolint:errorlint
			return vs, nil
		} else if err != nil {
			return vs, err
		}

		vs = append(vs, v)
	}
}

// Read reads the next datum. It returns io.EOF when the input is
// exhausted before a datum begins.
func (r *T) Read() (v value.T, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			c, ok := recovered.(*condition.T)
			if !ok {
				panic(recovered)
			}

			v, err = value.Nil, c
		}
	}()

	r.depth = 0

	r.skip()

	if r.in.Peek() == input.EOF {
		if err := r.in.Err(); err != nil {
			return value.Nil, err
		}

		return value.Nil, io.EOF
	}

	return r.datum()
}

func (r *T) datum() (value.T, error) {
	r.skip()

	c := r.in.Next()
	switch c {
	case input.EOF:
		return value.Nil, r.incomplete()
	case '(':
		return r.list(')')
	case '[':
		return r.list(']')
	case ')', ']':
		return value.Nil, r.fail(condition.ErrSyntax, "unexpected %q", c)
	case '\'':
		return r.quoted()
	case '"':
		return r.str()
	case '\\':
		return r.character()
	case '#':
		return r.hash()
	}

	r.in.Unread(c)

	return r.atom()
}

func (r *T) list(closer rune) (value.T, error) {
	r.nest()
	defer func() { r.depth-- }()

	var items []value.T

	tail := value.Nil

	for {
		r.skip()

		c := r.in.Next()
		switch {
		case c == input.EOF:
			return value.Nil, r.incomplete()
		case c == closer:
			return list.Dotted(r.s, tail, items...)
		case c == ')' || c == ']':
			return value.Nil, r.fail(condition.ErrSyntax, "expected %q, got %q", closer, c)
		case c == '.' && delimiter(r.in.Peek()):
			if len(items) == 0 {
				return value.Nil, r.fail(condition.ErrSyntax, "nothing before '.'")
			}

			v, err := r.datum()
			if err != nil {
				return value.Nil, err
			}

			tail = v

			r.skip()

			c = r.in.Next()
			if c == input.EOF {
				return value.Nil, r.incomplete()
			} else if c != closer {
				return value.Nil, r.fail(condition.ErrSyntax, "expected %q after dotted tail", closer)
			}

			return list.Dotted(r.s, tail, items...)
		}

		r.in.Unread(c)

		v, err := r.datum()
		if err != nil {
			return value.Nil, err
		}

		items = append(items, v)
	}
}

// quoted reads 'datum as (quote datum), which nests like a list.
func (r *T) quoted() (value.T, error) {
	r.nest()
	defer func() { r.depth-- }()

	v, err := r.datum()
	if err != nil {
		return value.Nil, err
	}

	if r.quote == value.Nil {
		r.quote, err = r.s.Symbol("quote")
		if err != nil {
			return value.Nil, err
		}
	}

	return list.New(r.s, r.quote, v)
}

func (r *T) str() (value.T, error) {
	var raw strings.Builder

	for {
		c := r.in.Next()
		switch c {
		case input.EOF:
			return value.Nil, r.incomplete()
		case '"':
			text, err := adapted.ActualBytes(raw.String())
			if err != nil {
				return value.Nil, r.fail(condition.ErrSyntax, "invalid escape in %q", raw.String())
			}

			err = r.delimited()
			if err != nil {
				return value.Nil, err
			}

			return r.s.String([]byte(text))
		case '\\':
			raw.WriteRune(c)

			c = r.in.Next()
			if c == input.EOF {
				return value.Nil, r.incomplete()
			}
		}

		raw.WriteRune(c)
	}
}

func (r *T) character() (value.T, error) {
	for name, c := range Names {
		if r.in.Accept(name) {
			if delimiter(r.in.Peek()) {
				return value.Char(c), nil
			}

			for i := len(name) - 1; i >= 0; i-- {
				r.in.Unread(rune(name[i]))
			}

			break
		}
	}

	c := r.in.Next()
	if c == input.EOF {
		return value.Nil, r.incomplete()
	}

	err := r.delimited()
	if err != nil {
		return value.Nil, err
	}

	return value.Char(c), nil
}

func (r *T) hash() (value.T, error) {
	var v value.T

	switch {
	case r.in.Accept(`\`):
		return r.character()
	case r.in.Accept("t"):
		v = value.True
	case r.in.Accept("f"):
		v = value.False
	case r.in.Peek() == input.EOF:
		return value.Nil, r.incomplete()
	default:
		return value.Nil, r.fail(condition.ErrSyntax, "unknown syntax #%c", r.in.Peek())
	}

	err := r.delimited()
	if err != nil {
		return value.Nil, err
	}

	return v, nil
}

func (r *T) atom() (value.T, error) {
	var b strings.Builder

	for {
		c := r.in.Next()
		if delimiter(c) {
			r.in.Unread(c)

			break
		}

		b.WriteRune(c)
	}

	text := b.String()

	if numeric(text) {
		v, ok := Number(text)
		if !ok {
			return value.Nil, r.fail(condition.ErrDelimiter, "malformed number %q", text)
		}

		return v, nil
	}

	if text == "." {
		return value.Nil, r.fail(condition.ErrSyntax, "unexpected '.'")
	}

	return r.s.Symbol(text)
}

// delimited checks that the next rune ends the current atom.
func (r *T) delimited() error {
	c := r.in.Peek()
	if !delimiter(c) {
		return r.fail(condition.ErrDelimiter, "unexpected %q", c)
	}

	return nil
}

func (r *T) fail(kind *condition.T, format string, args ...interface{}) error {
	c := condition.New(kind, format, args...)
	c.Msg = r.in.Loc().String() + ": " + c.Msg

	return c
}

func (r *T) incomplete() error {
	return r.fail(condition.ErrIncomplete, "unexpected end of input")
}

func (r *T) nest() {
	r.depth++
	if r.depth > r.max {
		panic(r.fail(condition.ErrNesting, "lists nested more than %d deep", r.max))
	}
}

func (r *T) skip() {
	for {
		c := r.in.Next()
		switch {
		case c == ';':
			for c != '\n' && c != input.EOF {
				c = r.in.Next()
			}
		case c == input.EOF:
			return
		case !space(c):
			r.in.Unread(c)

			return
		}
	}
}

func delimiter(c rune) bool {
	return c == input.EOF || space(c) || strings.ContainsRune(`()[]";`, c)
}

func space(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

// numeric returns true if text must be a number.
func numeric(text string) bool {
	if text == "" {
		return false
	}

	switch text {
	case "+inf.0", "-inf.0", "+nan.0", "-nan.0":
		return true
	}

	c := text[0]
	if c == '+' || c == '-' || c == '.' {
		if len(text) == 1 {
			return false
		}

		c = text[1]
	}

	return '0' <= c && c <= '9'
}

// Number converts text to an integer or double, if it is one.
func Number(text string) (value.T, bool) {
	if !numeric(text) {
		return value.Nil, false
	}

	switch text {
	case "+inf.0":
		return value.PositiveInfinity, true
	case "-inf.0":
		return value.NegativeInfinity, true
	case "+nan.0", "-nan.0":
		return value.QuietNaN, true
	}

	sign := ""
	digits := text

	if digits[0] == '+' || digits[0] == '-' {
		sign = digits[:1]
		digits = digits[1:]
	}

	base := 10

	if len(digits) > 2 && digits[0] == '0' {
		switch digits[1] {
		case 'b', 'B':
			base = 2
		case 'x', 'X':
			base = 16
		}
	}

	if base != 10 {
		digits = digits[2:]
		if strings.ContainsAny(digits, "_+-") {
			return value.Nil, false
		}
	}

	i, err := strconv.ParseInt(sign+digits, base, 64)
	if err == nil {
		if i >= math.MinInt32 && i <= math.MaxInt32 {
			return value.Int(int32(i)), true
		}

		return value.Float(float64(i)), true
	}

	if base != 10 {
		return value.Nil, false
	}

	if strings.Trim(digits, "0123456789.eE+-") != "" {
		return value.Nil, false
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !isRange(err) {
		return value.Nil, false
	}

	return value.Float(f), true
}

func isRange(err error) bool {
	ne, ok := err.(*strconv.NumError) //nolint:errorlint
	return ok && ne.Err == strconv.ErrRange
}
