// Released under an MIT license. See LICENSE.

package history

import (
	"io"
	"strings"
	"testing"

	"github.com/peterh/liner"
)

func TestRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	// Nothing saved yet.
	err := Load(func(r io.Reader) (int, error) {
		t.Fatalf("unexpected read of missing history")

		return 0, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := liner.NewLiner()
	s.AppendHistory("(+ 1 2)")
	s.AppendHistory("(define x 5)")

	err = Save(s.WriteHistory)
	s.Close()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var b strings.Builder

	err = Load(func(r io.Reader) (int, error) {
		n, err := io.Copy(&b, r)

		return int(n), err
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "(+ 1 2)\n(define x 5)\n"
	if b.String() != expected {
		t.Fatalf("expected %q, got %q", expected, b.String())
	}
}
