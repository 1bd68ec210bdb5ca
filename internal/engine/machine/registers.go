// Released under an MIT license. See LICENSE.

package machine

import (
	"github.com/michaelmacinnis/nanscheme/internal/common/condition"
	"github.com/michaelmacinnis/nanscheme/internal/common/value"
)

// The registers type holds the state of the stack-based abstract machine.
type registers struct {
	*stack
	code value.T
	dump []value.T
	env  value.T
	max  int
}

// Completed returns true if there are no operations left.
func (m *registers) Completed() bool {
	return m.stack == done
}

// Op returns the abstract machine's current operation.
func (m *registers) Op() Op {
	return m.stack.op
}

// PopResult removes the top result from dump.
func (m *registers) PopResult() value.T {
	n := len(m.dump) - 1
	r := m.dump[n]
	m.dump = m.dump[:n]

	return r
}

// PushOp pushes a new operation onto the stack.
func (m *registers) PushOp(s Op) Op {
	if m.stack.depth >= m.max {
		condition.Raise(condition.ErrDepth, "more than %d pending operations", m.max)
	}

	m.stack = &stack{m.stack, s, m.stack.depth + 1}

	return s
}

// PushResult adds the result r to dump.
func (m *registers) PushResult(r value.T) {
	m.dump = append(m.dump, r)
}

// PreviousOp pops the current operation and returns the previous operation.
func (m *registers) PreviousOp() Op {
	m.RemoveOp()

	return m.Op()
}

// RemoveOp pops the current operation off the stack.
func (m *registers) RemoveOp() {
	m.stack = m.stack.stack
}

// ReplaceOp replaces the operation at the top of the stack.
// Operations in tail position use it so the stack does not grow.
func (m *registers) ReplaceOp(s Op) Op {
	m.stack.op = s

	return s
}

// Result returns the current result.
func (m *registers) Result() value.T {
	return m.dump[len(m.dump)-1]
}

// Return completes the current operation with the result r.
func (m *registers) Return(r value.T) Op {
	m.PushResult(r)

	return m.PreviousOp()
}

// The stack type is a machine's execution stack.
type stack struct {
	*stack
	op    Op
	depth int
}

//nolint:gochecknoglobals
var (
	done = &stack{}
)

func init() { //nolint:gochecknoinits
	done.stack = done
}
