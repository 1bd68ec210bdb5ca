// Released under an MIT license. See LICENSE.

package commands

import (
	"errors"
	"strings"
	"testing"

	"github.com/michaelmacinnis/nanscheme/internal/common/condition"
	"github.com/michaelmacinnis/nanscheme/internal/common/env"
	"github.com/michaelmacinnis/nanscheme/internal/common/store"
	"github.com/michaelmacinnis/nanscheme/internal/common/value"
	"github.com/michaelmacinnis/nanscheme/internal/engine/machine"
	"github.com/michaelmacinnis/nanscheme/internal/printer"
	"github.com/michaelmacinnis/nanscheme/internal/reader"
)

type harness struct {
	*testing.T
	env value.T
	m   *machine.T
	out *strings.Builder
	s   *store.T
}

func setup(t *testing.T) *harness {
	s := newStore(t, store.Config{})

	m, err := machine.New(s, machine.Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e, err := env.New(s, value.Nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	h := &harness{T: t, env: e, m: m, out: &strings.Builder{}, s: s}

	for _, fns := range []map[string]store.Native{Functions(), Output(h.out)} {
		for name, fn := range fns {
			p, err := s.Primitive(name, fn)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			sym, err := s.Symbol(name)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if err := env.Define(s, e, sym, p); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
	}

	return h
}

func (h *harness) run(text string) (value.T, error) {
	h.Helper()

	vs, err := reader.ReadString(h.s, text)
	if err != nil {
		h.Fatalf("%q: read failed: %v", text, err)
	}

	v := value.Nil
	for _, e := range vs {
		v, err = h.m.Evaluate(e, h.env)
		if err != nil {
			return v, err
		}
	}

	return v, nil
}

func (h *harness) eval(text, expected string) {
	h.Helper()

	v, err := h.run(text)
	if err != nil {
		h.Fatalf("%q: unexpected error: %v", text, err)
	}

	if p := printer.String(h.s, v); p != expected {
		h.Fatalf("%q: expected %s, got %s", text, expected, p)
	}
}

func (h *harness) fails(text string, kind *condition.T) {
	h.Helper()

	_, err := h.run(text)
	if !errors.Is(err, kind) {
		h.Fatalf("%q: expected %v, got %v", text, kind, err)
	}
}

func TestArithmetic(t *testing.T) {
	h := setup(t)

	h.eval("(+ 1 2)", "3")
	h.eval("(+)", "0")
	h.eval("(*)", "1")
	h.eval("(* 2 3 4)", "24")
	h.eval("(- 5)", "-5")
	h.eval("(- 10 1 2)", "7")
	h.eval("(+ 1 1.5)", "2.5")
	h.eval("(/ 6 3)", "2")
	h.eval("(/ 1 2)", "0.5")
	h.eval("(/ 2)", "0.5")
	h.eval("(quotient 7 2)", "3")
	h.eval("(remainder -7 2)", "-1")
	h.eval("(modulo -7 2)", "1")
	h.eval("(modulo 7 -2)", "-1")

	// Overflow promotes to double.
	h.eval("(integer? (+ 2147483647 1))", "#f")
	h.eval("(double? (+ 2147483647 1))", "#t")
	h.eval("(= (+ 2147483647 1) 2147483648.0)", "#t")
	h.eval("(integer? (* 65536 -32768))", "#t")

	h.fails("(+ 1 'a)", condition.ErrType)
	h.fails("(-)", condition.ErrArity)
	h.fails("(quotient 1 0)", condition.ErrRange)
	h.fails("(/ 1 0)", condition.ErrRange)
	h.fails("(modulo 1.5 1)", condition.ErrType)
}

func TestRelational(t *testing.T) {
	h := setup(t)

	h.eval("(< 1 2 3)", "#t")
	h.eval("(< 1 3 2)", "#f")
	h.eval("(<= 1 1 2)", "#t")
	h.eval("(> 3 2 1)", "#t")
	h.eval("(>= 1 2)", "#f")
	h.eval("(= 1 1.0)", "#t")
	h.eval("(= 1)", "#t")

	h.fails("(<)", condition.ErrArity)
	h.fails("(< 1 \"2\")", condition.ErrType)
}

func TestPredicates(t *testing.T) {
	h := setup(t)

	h.eval("(null? '())", "#t")
	h.eval("(null? '(1))", "#f")
	h.eval("(pair? '(1))", "#t")
	h.eval("(pair? '())", "#f")
	h.eval("(boolean? #f)", "#t")
	h.eval("(boolean? 0)", "#f")
	h.eval("(bool? #t)", "#t")
	h.eval("(bool? 1)", "#f")
	h.eval("(symbol? 'a)", "#t")
	h.eval(`(symbol? "a")`, "#f")
	h.eval(`(string? "a")`, "#t")
	h.eval("(integer? 1)", "#t")
	h.eval("(integer? 1.0)", "#f")
	h.eval("(double? 1.5)", "#t")
	h.eval("(double? +inf.0)", "#t")
	h.eval("(number? 'a)", "#f")
	h.eval(`(char? \a)`, "#t")
	h.eval("(procedure? car)", "#t")
	h.eval("(procedure? (lambda () 1))", "#t")
	h.eval("(procedure? 'car)", "#f")
	h.eval("(error? 1)", "#f")
	h.eval("(buffer? (make-buffer 1))", "#t")

	h.fails("(null?)", condition.ErrArity)
}

func TestConversions(t *testing.T) {
	h := setup(t)

	h.eval(`(char->integer \a)`, "97")
	h.eval("(integer->char 65)", `\A`)
	h.eval("(number->string 42)", `"42"`)
	h.eval("(number->string 1.5)", `"1.5"`)
	h.eval(`(string->number "1.5")`, "1.5")
	h.eval(`(string->number "-12")`, "-12")
	h.eval(`(string->number "x")`, "#f")
	h.eval("(symbol->string 'abc)", `"abc"`)
	h.eval(`(string->symbol "abc")`, "abc")
	h.eval(`(eq? (string->symbol "abc") 'abc)`, "#t")

	h.fails("(integer->char -1)", condition.ErrRange)
	h.fails(`(symbol->string "abc")`, condition.ErrType)
	h.fails("(string->symbol 'abc)", condition.ErrType)
}

func TestLists(t *testing.T) {
	h := setup(t)

	h.eval("(cons 1 2)", "(1 . 2)")
	h.eval("(cons 1 '())", "(1)")
	h.eval("(car '(1 2))", "1")
	h.eval("(cdr '(1 2))", "(2)")
	h.eval("(list)", "()")
	h.eval("(list 1 2 3)", "(1 2 3)")
	h.eval("(length '())", "0")
	h.eval("(length '(1 2 3))", "3")
	h.eval("(reverse '(1 2 3))", "(3 2 1)")
	h.eval("(define p (list 1 2)) (set-car! p 3) p", "(3 2)")
	h.eval("(set-cdr! p 4) p", "(3 . 4)")

	h.fails("(car '())", condition.ErrType)
	h.fails("(cdr 1)", condition.ErrType)
	h.fails("(length '(1 . 2))", condition.ErrType)
	h.fails("(reverse 1)", condition.ErrType)
}

func TestEquivalence(t *testing.T) {
	h := setup(t)

	h.eval("(eq? 'a 'a)", "#t")
	h.eval("(eq? 1 1)", "#t")
	h.eval("(eq? 1 1.0)", "#f")
	h.eval("(eq? '() '())", "#t")
	h.eval(`(eq? "a" "a")`, "#f")
	h.eval("(eqv? 1.5 1.5)", "#t")
	h.eval("(eqv? +nan.0 +nan.0)", "#t")
	h.eval(`(equal? "a" "a")`, "#t")
	h.eval(`(equal? '(1 (2 "a")) (list 1 (list 2 "a")))`, "#t")
	h.eval("(equal? '(1 2) '(1 3))", "#f")
	h.eval("(equal? '(1 2) '(1 2 3))", "#f")

	h.eval(`
		(define a (list 1 2))
		(set-cdr! (cdr a) a)
		(define b (list 1 2))
		(set-cdr! (cdr b) b)
		(equal? a b)
	`, "#t")
}

func TestStrings(t *testing.T) {
	h := setup(t)

	h.eval(`(string-length "")`, "0")
	h.eval(`(string-length "héllo")`, "5")
	h.eval(`(string-append)`, `""`)
	h.eval(`(string-append "a" "b" "c")`, `"abc"`)
	h.eval(`(string-ref "abc" 1)`, `\b`)
	h.eval(`(string=? "a" "a" "a")`, "#t")
	h.eval(`(string=? "a" "b")`, "#f")

	h.fails(`(string-ref "abc" 3)`, condition.ErrRange)
	h.fails("(string-length 'a)", condition.ErrType)
	h.fails(`(string-append "a" 1)`, condition.ErrType)
}

func TestBuffers(t *testing.T) {
	h := setup(t)

	h.eval("(define b (make-buffer 4 7)) b", "#<buffer 4>")
	h.eval("(buffer-length b)", "4")
	h.eval("(buffer-ref b 3)", "7")
	h.eval("(buffer-set! b 1 255) (buffer-ref b 1)", "255")
	h.eval("(buffer-ref (make-buffer 2) 0)", "0")
	h.eval("(equal? (make-buffer 2 1) (make-buffer 2 1))", "#t")
	h.eval("(equal? (make-buffer 2 1) (make-buffer 2 2))", "#f")

	h.fails("(buffer-ref b 4)", condition.ErrRange)
	h.fails("(buffer-ref b -1)", condition.ErrRange)
	h.fails("(buffer-set! b 0 256)", condition.ErrRange)
	h.fails("(buffer-length 1)", condition.ErrType)
}

func TestOutput(t *testing.T) {
	h := setup(t)

	h.eval(`(display "hi") (newline) (write "hi") (display \x) (write \x)`, "()")

	expected := "hi\n\"hi\"x\\x"
	if s := h.out.String(); s != expected {
		t.Fatalf("expected %q, got %q", expected, s)
	}
}

func newStore(t *testing.T, c store.Config) *store.T {
	t.Helper()

	s, err := store.New(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return s
}
