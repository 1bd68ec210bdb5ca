// Released under an MIT license. See LICENSE.

/*
Nanscheme is a small Scheme interpreter. Every value is a single 64-bit
word: doubles are stored as themselves and everything else is packed into
the payload of a NaN.

	nanscheme                  Start an interactive session.
	nanscheme file.scm         Evaluate every expression in file.scm.
	nanscheme -c '(+ 1 2)'     Evaluate an expression and print the result.

Nanscheme is released under an MIT-style license.
*/
package main

import (
	"fmt"
	"os"

	"github.com/michaelmacinnis/nanscheme/internal/common/store"
	"github.com/michaelmacinnis/nanscheme/internal/engine"
	"github.com/michaelmacinnis/nanscheme/internal/printer"
	"github.com/michaelmacinnis/nanscheme/internal/system/options"
	"github.com/michaelmacinnis/nanscheme/internal/system/signals"
	"github.com/michaelmacinnis/nanscheme/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	err := options.Parse()
	if err != nil {
		return fail(err)
	}

	e, err := engine.New(options.Config(), os.Stdout)
	if err != nil {
		return fail(err)
	}
	defer e.Close()

	stop := signals.Notify(e.Interrupt)
	defer stop()

	if options.Stats() {
		defer stats(e.Store())
	}

	switch {
	case options.Command() != "":
		v, err := e.EvalString(options.Command())
		if err != nil {
			return fail(err)
		}

		fmt.Println(e.Print(v))

	case options.Script() != "":
		f, err := os.Open(options.Script())
		if err != nil {
			return fail(err)
		}
		defer f.Close()

		err = ui.Script(e, options.Script(), f)
		if err != nil {
			return fail(err)
		}

	case options.Interactive():
		err = ui.Run(e)
		if err != nil {
			return fail(err)
		}

	default:
		err = ui.Script(e, "stdin", os.Stdin)
		if err != nil {
			return fail(err)
		}
	}

	return 0
}

func fail(err error) int {
	fmt.Fprintln(os.Stderr, printer.Error(err))

	return 1
}

func stats(s *store.T) {
	st := s.Stats()

	fmt.Fprintf(os.Stderr, "pairs:      %d/%d\n", st.Pairs, st.PairCapacity)
	fmt.Fprintf(os.Stderr, "bytes:      %d/%d\n", st.Bytes, st.ByteCapacity)
	fmt.Fprintf(os.Stderr, "symbols:    %d\n", st.Symbols)
	fmt.Fprintf(os.Stderr, "procedures: %d\n", st.Procedures)
	fmt.Fprintf(os.Stderr, "buffers:    %d\n", st.Buffers)
}
