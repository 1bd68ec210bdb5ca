// Released under an MIT license. See LICENSE.

package store

import (
	"github.com/michaelmacinnis/nanscheme/internal/common/condition"
	"github.com/michaelmacinnis/nanscheme/internal/common/value"
)

// Native is the signature shared by every primitive procedure.
// Args is the list of already evaluated arguments.
type Native func(s *T, args value.T) (value.T, error)

// Procedure is an entry in the procedure pool. Native procedures have a
// non-nil Native. Compound procedures (closures) have Params, Body and Env.
type Procedure struct {
	Name   value.T
	Native Native

	Params value.T
	Body   value.T
	Env    value.T
}

// IsNative returns true if p is a primitive.
func (p *Procedure) IsNative() bool {
	return p.Native != nil
}

// Primitive adds the native function fn, named name, to the procedure pool.
func (s *T) Primitive(name string, fn Native) (value.T, error) {
	sym, err := s.Symbol(name)
	if err != nil {
		return value.Nil, err
	}

	return s.procedure(&Procedure{Name: sym, Native: fn})
}

// Closure adds a compound procedure to the procedure pool.
// The body is a list of expressions evaluated in order.
func (s *T) Closure(name, params, body, env value.T) (value.T, error) {
	return s.procedure(&Procedure{
		Name:   name,
		Params: params,
		Body:   body,
		Env:    env,
	})
}

// Procedure returns the procedure referenced by v.
// If v is not a procedure, this function will panic.
func (s *T) Procedure(v value.T) *Procedure {
	return s.procedures[s.check(value.Procedure, v, len(s.procedures))]
}

// IsProcedure returns true if v is a procedure in this store.
func (s *T) IsProcedure(v value.T) bool {
	return value.IsHandle(value.Procedure, v) &&
		value.Pool(v) == s.id && int(value.Offset(v)) < len(s.procedures)
}

func (s *T) procedure(p *Procedure) (value.T, error) {
	n := len(s.procedures)
	if n >= maxOffset {
		return value.Nil, condition.New(condition.ErrCapacity, "procedure pool is full")
	}

	s.procedures = append(s.procedures, p)

	return value.NewHandle(value.Procedure, s.id, uint32(n)), nil
}
