// Released under an MIT license. See LICENSE.

package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/michaelmacinnis/nanscheme/internal/common/condition"
	"github.com/michaelmacinnis/nanscheme/internal/common/store"
	"github.com/michaelmacinnis/nanscheme/internal/common/value"
	"github.com/michaelmacinnis/nanscheme/internal/engine/machine"
	"github.com/michaelmacinnis/nanscheme/internal/reader"
)

type harness struct {
	*testing.T
	e   *T
	out *strings.Builder
}

func setup(t *testing.T, c Config) *harness {
	out := &strings.Builder{}

	e, err := New(c, out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Cleanup(e.Close)

	return &harness{T: t, e: e, out: out}
}

func (h *harness) eval(text, expected string) {
	h.Helper()

	v, err := h.e.EvalString(text)
	if err != nil {
		h.Fatalf("%q: unexpected error: %v", text, err)
	}

	if p := h.e.Print(v); p != expected {
		h.Fatalf("%q: expected %s, got %s", text, expected, p)
	}
}

func (h *harness) fails(text string, kind *condition.T) {
	h.Helper()

	v, err := h.e.EvalString(text)
	if !errors.Is(err, kind) {
		h.Fatalf("%q: expected %v, got %v", text, kind, err)
	}

	if kind.Class != condition.Reader && !value.IsBox(value.Error, v) {
		h.Fatalf("%q: expected an error value, got %s", text, h.e.Print(v))
	}
}

func TestReadEvalPrint(t *testing.T) {
	h := setup(t, Config{})

	h.eval("(quote (1 2 3))", "(1 2 3)")
	h.eval("(+ 1 2)", "3")
	h.eval("(define x 5) x", "5")
	h.eval("x", "5")
	h.eval(`"a\tb"`, `"a\tb"`)
	h.eval("'(a . (b . (c)))", "(a b c)")
	h.eval("(car (cdr '(1 2 3)))", "2")
	h.eval("", "()")

	h.fails("(", condition.ErrIncomplete)
	h.fails(")", condition.ErrSyntax)
	h.fails("y", condition.ErrUnbound)
	h.fails("(if)", condition.ErrForm)

	deep := reader.DefaultDepth + 1
	h.fails(strings.Repeat("(", deep)+strings.Repeat(")", deep), condition.ErrNesting)

	_, err := h.e.EvalString("(if)")
	if err == nil || !strings.HasPrefix(err.Error(), "eval: ") {
		t.Fatalf("expected an evaluation error, got %v", err)
	}

	// Earlier definitions survive a failure.
	h.eval("x", "5")
}

func TestRead(t *testing.T) {
	h := setup(t, Config{})

	vs, err := h.e.Read("1 (2 3) four")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(vs) != 3 {
		t.Fatalf("expected 3 values, got %d", len(vs))
	}

	if p := h.e.Print(vs[1]); p != "(2 3)" {
		t.Fatalf("expected (2 3), got %s", p)
	}

	v, err := h.e.Evaluate(vs[0])
	if err != nil || v != value.Int(1) {
		t.Fatalf("expected 1, got %s (%v)", h.e.Print(v), err)
	}
}

func TestBoot(t *testing.T) {
	h := setup(t, Config{})

	h.eval("(not #f)", "#t")
	h.eval("(not 0)", "#f")
	h.eval("(caar '((1) 2))", "1")
	h.eval("(cadr '(1 2 3))", "2")
	h.eval("(cdar '((1 . 4) 2))", "4")
	h.eval("(cddr '(1 2 3))", "(3)")
	h.eval("(caddr '(1 2 3))", "3")
	h.eval("(list-tail '(1 2 3 4) 2)", "(3 4)")
	h.eval("(map (lambda (x) (* x x)) '(1 2 3))", "(1 4 9)")
	h.eval("(map car '())", "()")
	h.eval("(append)", "()")
	h.eval("(append '(1))", "(1)")
	h.eval("(append '(1 2) '(3) '() '(4 5))", "(1 2 3 4 5)")
	h.eval("(append '(1) 2)", "(1 . 2)")
	h.eval("(assq 'b '((a 1) (b 2)))", "(b 2)")
	h.eval("(assq 'c '((a 1) (b 2)))", "#f")

	h.eval("(for-each display '(1 2 3))", "()")

	if s := h.out.String(); s != "123" {
		t.Fatalf("expected 123, got %q", s)
	}
}

func TestNoBoot(t *testing.T) {
	h := setup(t, Config{NoBoot: true})

	h.eval("(car '(1))", "1")
	h.fails("(not #f)", condition.ErrUnbound)
}

func TestRecursion(t *testing.T) {
	h := setup(t, Config{})

	h.eval(`
		(define (count n) (if (= n 0) 0 (+ 1 (count (- n 1)))))
		(count 100000)
	`, "100000")

	h.eval(`
		(define (build n acc) (if (= n 0) acc (build (- n 1) (cons n acc))))
		(length (build 100000 '()))
	`, "100000")

	h.eval("(length (map (lambda (x) x) (build 100000 '())))", "100000")

	small := setup(t, Config{Machine: machine.Config{MaxDepth: 500}})

	small.fails(`
		(define (count n) (if (= n 0) 0 (+ 1 (count (- n 1)))))
		(count 100000)
	`, condition.ErrDepth)
}

func TestCapacity(t *testing.T) {
	h := setup(t, Config{
		NoBoot: true,
		Store:  store.Config{Cons: 1024, ConsLimit: 1024},
	})

	h.fails(`
		(define (build n acc) (if (= n 0) acc (build (- n 1) (cons n acc))))
		(build 100000 '())
	`, condition.ErrCapacity)

	st := h.e.Store().Stats()
	if st.Pairs != 1024 || st.PairCapacity != 1024 {
		t.Fatalf("expected a full pool of 1024 pairs, got %d of %d", st.Pairs, st.PairCapacity)
	}

	// Values that need no allocation can still be evaluated.
	h.eval("42", "42")
}
