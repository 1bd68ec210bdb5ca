// Released under an MIT license. See LICENSE.

// Package engine provides an evaluator for Scheme expressions.
package engine

import (
	"io"
	"strings"

	"github.com/michaelmacinnis/nanscheme/internal/common/env"
	"github.com/michaelmacinnis/nanscheme/internal/common/store"
	"github.com/michaelmacinnis/nanscheme/internal/common/value"
	"github.com/michaelmacinnis/nanscheme/internal/engine/boot"
	"github.com/michaelmacinnis/nanscheme/internal/engine/commands"
	"github.com/michaelmacinnis/nanscheme/internal/engine/machine"
	"github.com/michaelmacinnis/nanscheme/internal/printer"
	"github.com/michaelmacinnis/nanscheme/internal/reader"
	"github.com/michaelmacinnis/nanscheme/internal/reader/input"
)

// Config gathers the configuration of every part of the engine.
type Config struct {
	Machine machine.Config `yaml:"machine"`
	NoBoot  bool           `yaml:"no-boot"`
	Reader  reader.Config  `yaml:"reader"`
	Store   store.Config   `yaml:"store"`
}

// T (engine) is a facade in front of the machinery for evaluating code.
type T struct {
	config Config
	env    value.T
	m      *machine.T
	out    io.Writer
	s      *store.T
}

// New creates an engine whose output procedures write to out.
func New(c Config, out io.Writer) (*T, error) {
	s, err := store.New(c.Store)
	if err != nil {
		return nil, err
	}

	m, err := machine.New(s, c.Machine)
	if err != nil {
		return nil, err
	}

	e, err := env.New(s, value.Nil)
	if err != nil {
		return nil, err
	}

	t := &T{config: c, env: e, m: m, out: out, s: s}

	for _, fns := range []map[string]store.Native{
		commands.Functions(),
		commands.Output(out),
	} {
		for name, fn := range fns {
			err = t.define(name, fn)
			if err != nil {
				return nil, err
			}
		}
	}

	if !c.NoBoot {
		_, err = t.EvalString(boot.Script())
		if err != nil {
			return nil, err
		}
	}

	return t, nil
}

// Close releases the memory held by buffers. The engine must not be
// used afterwards.
func (t *T) Close() {
	t.s.Free()
}

// Env returns the top-level environment.
func (t *T) Env() value.T {
	return t.env
}

// Evaluate evaluates v in the top-level environment.
func (t *T) Evaluate(v value.T) (value.T, error) {
	return t.m.Evaluate(v, t.env)
}

// EvalString reads and evaluates every expression in text, returning the
// result of the last. Evaluation stops at the first failure.
func (t *T) EvalString(text string) (value.T, error) {
	r := t.Reader("string", strings.NewReader(text))

	v := value.Nil

	for {
		e, err := r.Read()
		if err == io.EOF { //nolint:errorlint
			return v, nil
		} else if err != nil {
			return value.Nil, err
		}

		v, err = t.Evaluate(e)
		if err != nil {
			return v, err
		}
	}
}

// Interrupt stops the current evaluation.
func (t *T) Interrupt() {
	t.m.Interrupt()
}

// Print returns the external representation of v.
func (t *T) Print(v value.T) string {
	return printer.String(t.s, v)
}

// Read reads every datum in text.
func (t *T) Read(text string) ([]value.T, error) {
	r := t.Reader("string", strings.NewReader(text))

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

// Reader returns a reader for rd that allocates in the engine's store.
func (t *T) Reader(name string, rd io.Reader) *reader.T {
	return reader.New(t.s, input.New(name, rd), t.config.Reader)
}

// Store returns the engine's store.
func (t *T) Store() *store.T {
	return t.s
}

func (t *T) define(name string, fn store.Native) error {
	p, err := t.s.Primitive(name, fn)
	if err != nil {
		return err
	}

	sym, err := t.s.Symbol(name)
	if err != nil {
		return err
	}

	return env.Define(t.s, t.env, sym, p)
}
