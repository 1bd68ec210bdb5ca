// Released under an MIT license. See LICENSE.

// Package machine provides the evaluator: an explicit register machine
// whose stack of pending operations replaces host recursion.
package machine

import (
	"fmt"
	"sync/atomic"

	"github.com/michaelmacinnis/nanscheme/internal/common/condition"
	"github.com/michaelmacinnis/nanscheme/internal/common/store"
	"github.com/michaelmacinnis/nanscheme/internal/common/value"
	"github.com/michaelmacinnis/nanscheme/internal/printer"
)

const debug = false

// DefaultDepth is the operation stack limit used when Config.MaxDepth is zero.
const DefaultDepth = 10000000

// Config bounds the machine.
type Config struct {
	MaxDepth int `yaml:"depth"` // Maximum pending operations.
}

// T (machine) evaluates expressions against environments in a store.
type T struct {
	*registers
	*keywords

	err         error
	interrupted atomic.Bool
	s           *store.T
}

// New creates a machine that allocates in s.
func New(s *store.T, c Config) (*T, error) {
	if c.MaxDepth <= 0 {
		c.MaxDepth = DefaultDepth
	}

	k, err := intern(s)
	if err != nil {
		return nil, err
	}

	m := &T{
		keywords: k,
		registers: &registers{
			code:  value.Nil,
			env:   value.Nil,
			max:   c.MaxDepth,
			stack: done,
		},
		s: s,
	}

	return m, nil
}

// Evaluate evaluates v in the environment e.
// On failure it returns an error value along with the Go error.
func (m *T) Evaluate(v, e value.T) (value.T, error) {
	m.interrupted.Store(false)

	m.code = v
	m.dump = m.dump[:0]
	m.env = e
	m.err = nil
	m.stack = done

	op := m.PushOp(Action(eval))

	for op != nil {
		if m.interrupted.Swap(false) {
			m.err = condition.New(condition.ErrInterrupted, "evaluation interrupted")

			break
		}

		op = m.Step(op)
	}

	m.stack = done

	if m.err != nil {
		c := condition.From(m.err)

		return value.Fail(c.Class, c.Code), m.err
	}

	return m.Result(), nil
}

// Interrupt stops the current evaluation. It is safe to call from
// another goroutine.
func (m *T) Interrupt() {
	m.interrupted.Store(true)
}

// Step performs a single action and determines the next action.
func (m *T) Step(s Op) (op Op) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		switch r := r.(type) {
		case *condition.T:
			m.err = r
		case error:
			m.err = condition.New(condition.ErrType, "%v", r)
		default:
			m.err = fmt.Errorf("%v", r)
		}

		op = nil
	}()

	if debug {
		print("Stack: ")

		for p := m.stack; p != done; p = p.stack {
			print(opString(p.op))
			print(" ")
		}

		println("")
		print("Dump: ")

		for _, v := range m.dump {
			print(printer.String(m.s, v))
			print(" ")
		}

		println("")
		print("Code: ")

		println(printer.String(m.s, m.code))

		println("")
	}

	return s.Perform(m)
}

// Store returns the store the machine allocates in.
func (m *T) Store() *store.T {
	return m.s
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}
