// Released under an MIT license. See LICENSE.

package machine

import (
	"reflect"
	"runtime"
	"strings"
)

// Op represents a single step of the machine.
type Op interface {
	Perform(*T) Op
}

// Action performs a single step of the machine and returns the next operation.
type Action func(*T) Op

// Perform is required for an action to be an operation.
func (a Action) Perform(m *T) Op {
	return a(m)
}

func opString(o Op) string {
	switch o := o.(type) {
	case nil:
		return "<nil>"
	case Action:
		return funcName(o)
	case *apply:
		return "apply"
	case *arguments:
		return "arguments"
	case *bind:
		return "bind"
	case *branch:
		return "branch"
	case *clauses:
		return "clauses"
	case *definition:
		return "definition"
	case *logic:
		if o.or {
			return "or"
		}

		return "and"
	case *sequence:
		return "sequence"
	}

	return "<unknown>"
}

// Get the function i's name. Useful for debugging.
func funcName(i interface{}) string {
	n := runtime.FuncForPC(reflect.ValueOf(i).Pointer()).Name()

	a := strings.Split(n, ".")

	l := len(a)
	if l == 0 {
		return n
	}

	return a[l-1]
}
