// Released under an MIT license. See LICENSE.

// Package ui provides a command-line interface for the language.
package ui

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/peterh/liner"

	"github.com/michaelmacinnis/nanscheme/internal/common/value"
	"github.com/michaelmacinnis/nanscheme/internal/printer"
	"github.com/michaelmacinnis/nanscheme/internal/reader"
	"github.com/michaelmacinnis/nanscheme/internal/system/history"
)

// Prompts shown before the first line of an expression and before each
// line that continues one.
const (
	Prompt       = "> "
	Continuation = ". "
)

// Evaluator is the interface for things that read and evaluate expressions.
type Evaluator interface {
	Evaluate(v value.T) (value.T, error)
	Print(v value.T) string
	Reader(name string, r io.Reader) *reader.T
}

// Run launches the UI which sends expressions to the Evaluator.
// It returns when the user ends input.
func Run(e Evaluator) error {
	cooked, err := liner.TerminalMode()
	if err != nil {
		return err
	}

	cli := liner.NewLiner()
	defer cli.Close()

	uncooked, err := liner.TerminalMode()
	if err != nil {
		return err
	}

	err = history.Load(cli.ReadHistory)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
	}

	cli.SetCtrlCAborts(true)

	l := NewLines(func(p string) (string, error) {
		err := uncooked.ApplyMode()
		if err != nil {
			return "", err
		}

		line, err := cli.Prompt(p)

		merr := cooked.ApplyMode()
		if err == nil {
			err = merr
		}

		if err == nil && line != "" {
			cli.AppendHistory(line)
		}

		return line, err
	})

	Loop(e, l, os.Stdout, os.Stderr)

	return history.Save(cli.WriteHistory)
}

// Loop reads and evaluates expressions from l, writing results to out and
// diagnostics to diag, until l is exhausted. Errors do not end the loop.
func Loop(e Evaluator, l *Lines, out, diag io.Writer) {
	for {
		l.aborted = false
		l.pending = nil

		r := e.Reader("stdin", l)

		for {
			l.next = Prompt

			v, err := r.Read()
			if l.aborted {
				break
			}

			if err != nil {
				if errors.Is(err, io.EOF) || l.eof {
					fmt.Fprintln(out)

					return
				}

				// Discard the rest of the line.
				fmt.Fprintln(diag, printer.Error(err))

				break
			}

			v, err = e.Evaluate(v)
			if err != nil {
				fmt.Fprintln(diag, printer.Error(err))

				continue
			}

			fmt.Fprintln(out, e.Print(v))
		}
	}
}

// Script reads and evaluates every expression from r. It stops at the
// first error.
func Script(e Evaluator, name string, r io.Reader) error {
	rd := e.Reader(name, r)

	for {
		v, err := rd.Read()
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}

		_, err = e.Evaluate(v)
		if err != nil {
			return err
		}
	}
}

// Lines is an io.Reader that prompts for a line whenever the reader
// needs more input. The first line of each expression is requested with
// Prompt and the rest with Continuation.
type Lines struct {
	aborted bool
	eof     bool
	next    string
	pending []byte
	prompt  func(p string) (string, error)
}

// NewLines creates a Lines that gets each line by calling prompt.
// Prompt returns liner.ErrPromptAborted to abandon the current expression
// and any other error to end input.
func NewLines(prompt func(p string) (string, error)) *Lines {
	return &Lines{next: Prompt, prompt: prompt}
}

func (l *Lines) Read(b []byte) (int, error) {
	if len(l.pending) == 0 {
		line, err := l.prompt(l.next)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				l.aborted = true
			} else {
				l.eof = true
			}

			return 0, io.EOF
		}

		l.next = Continuation
		l.pending = []byte(line + "\n")
	}

	n := copy(b, l.pending)
	l.pending = l.pending[n:]

	return n, nil
}
