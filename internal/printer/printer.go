// Released under an MIT license. See LICENSE.

// Package printer renders values in the syntax the reader accepts.
package printer

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/michaelmacinnis/nanscheme/internal/adapted"
	"github.com/michaelmacinnis/nanscheme/internal/common/condition"
	"github.com/michaelmacinnis/nanscheme/internal/common/store"
	"github.com/michaelmacinnis/nanscheme/internal/common/value"
	"github.com/michaelmacinnis/nanscheme/internal/reader"
)

// MaxDepth is the deepest nesting printed before eliding with "...".
// It matches the deepest nesting the reader accepts.
const MaxDepth = reader.DefaultDepth

//nolint:gochecknoglobals
var names = func() map[rune]string {
	m := map[rune]string{}
	for name, r := range reader.Names {
		m[r] = name
	}

	return m
}()

type printer struct {
	b       strings.Builder
	depth   int
	display bool
	path    map[value.T]bool
	s       *store.T
}

// String returns the external representation of v.
func String(s *store.T, v value.T) string {
	return render(s, v, false)
}

// Display returns v as display shows it: strings and characters
// appear as their raw text.
func Display(s *store.T, v value.T) string {
	return render(s, v, true)
}

// Fprint writes the external representation of v to w.
func Fprint(w io.Writer, s *store.T, v value.T) error {
	_, err := io.WriteString(w, String(s, v))

	return err
}

func render(s *store.T, v value.T, display bool) string {
	p := &printer{
		display: display,
		path:    map[value.T]bool{},
		s:       s,
	}

	p.value(v)

	return p.b.String()
}

func (p *printer) value(v value.T) {
	switch value.Classify(v) {
	case value.KindNil:
		p.b.WriteString("()")
	case value.KindDouble, value.KindSpecial:
		p.b.WriteString(Double(value.Number(v)))
	case value.KindPointer:
		p.pointer(v)
	case value.KindHandle:
		p.handle(v)
	case value.KindBox:
		p.box(v)
	case value.KindInvalid:
		p.b.WriteString("#<invalid>")
	}
}

func (p *printer) box(v value.T) {
	switch value.BoxOf(v) {
	case value.Boolean:
		if v == value.True {
			p.b.WriteString("#t")
		} else {
			p.b.WriteString("#f")
		}
	case value.Character:
		p.character(value.Rune(v))
	case value.Integer:
		p.b.WriteString(strconv.FormatInt(int64(value.IntOf(v)), 10))
	case value.Float32:
		p.b.WriteString("#f32:")
		p.b.WriteString(strconv.FormatFloat(float64(value.SingleOf(v)), 'g', -1, 32))
	case value.Error:
		class, code := value.Condition(v)
		p.b.WriteString("#<error " + class.String() + ":" + code.String() + ">")
	default:
		p.b.WriteString("#<" + value.Name(v) + ">")
	}
}

func (p *printer) character(r rune) {
	if p.display {
		p.b.WriteRune(r)

		return
	}

	p.b.WriteByte('\\')

	if name, ok := names[r]; ok {
		p.b.WriteString(name)
	} else {
		p.b.WriteRune(r)
	}
}

func (p *printer) handle(v value.T) {
	if !p.s.Owns(v) {
		p.b.WriteString("#<foreign " + value.Name(v) + ">")

		return
	}

	switch value.HandleOf(v) {
	case value.Cons:
		p.cons(v)
	case value.Symbol:
		p.b.Write(p.s.Bytes(v))
	case value.String:
		if p.display {
			p.b.Write(p.s.Bytes(v))
		} else {
			p.b.WriteString(adapted.Quote(p.s.Text(v)))
		}
	case value.Procedure:
		p.procedure(v)
	default:
		p.b.WriteString("#<" + value.Name(v) + ">")
	}
}

func (p *printer) procedure(v value.T) {
	e := p.s.Procedure(v)

	kind := "procedure"
	if e.IsNative() {
		kind = "primitive"
	}

	p.b.WriteString("#<" + kind)

	if p.s.IsSymbol(e.Name) {
		p.b.WriteByte(' ')
		p.b.Write(p.s.Bytes(e.Name))
	}

	p.b.WriteByte('>')
}

func (p *printer) pointer(v value.T) {
	if !p.s.IsBuffer(v) {
		p.b.WriteString("#<foreign buffer>")

		return
	}

	p.b.WriteString("#<buffer " + strconv.Itoa(len(p.s.BufferBytes(v))) + ">")
}

func (p *printer) cons(v value.T) {
	if p.path[v] || p.depth >= MaxDepth {
		p.b.WriteString("...")

		return
	}

	p.depth++

	var seen []value.T

	p.b.WriteByte('(')

	for {
		p.path[v] = true
		seen = append(seen, v)

		car, cdr, _ := p.s.Pair(v)

		p.value(car)

		if cdr == value.Nil {
			break
		}

		if !p.s.IsCons(cdr) {
			p.b.WriteString(" . ")
			p.value(cdr)

			break
		}

		if p.path[cdr] {
			p.b.WriteString(" . ...")

			break
		}

		p.b.WriteByte(' ')

		v = cdr
	}

	p.b.WriteByte(')')

	for _, c := range seen {
		delete(p.path, c)
	}

	p.depth--
}

// Double formats f so that the reader reads it back as the same double.
func Double(f float64) string {
	switch {
	case math.IsNaN(f):
		return "+nan.0"
	case math.IsInf(f, 1):
		return "+inf.0"
	case math.IsInf(f, -1):
		return "-inf.0"
	}

	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}

	return s
}

// Error renders a condition the way the driver reports it.
func Error(err error) string {
	return "error: " + condition.From(err).Error()
}
