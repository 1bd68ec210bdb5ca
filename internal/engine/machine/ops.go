// Released under an MIT license. See LICENSE.

package machine

import (
	"github.com/michaelmacinnis/nanscheme/internal/common/condition"
	"github.com/michaelmacinnis/nanscheme/internal/common/env"
	"github.com/michaelmacinnis/nanscheme/internal/common/list"
	"github.com/michaelmacinnis/nanscheme/internal/common/value"
)

// Each operation below carries the environment its next expression must
// be evaluated in. Evaluating a subexpression can leave any environment
// in the env register, so nothing relies on the register surviving.

// apply calls the procedure at dump[base] with the arguments above it.
type apply struct {
	base int
}

func (a *apply) Perform(m *T) Op {
	f := m.dump[a.base]

	args, err := list.New(m.s, m.dump[a.base+1:]...)
	check(err)

	m.dump = m.dump[:a.base]

	if !m.s.IsProcedure(f) {
		condition.Raise(condition.ErrNotProcedure, "cannot apply %s", value.Name(f))
	}

	p := m.s.Procedure(f)
	if p.IsNative() {
		v, err := p.Native(m.s, args)
		check(err)

		return m.Return(v)
	}

	frame, err := env.Extend(m.s, p.Env, p.Params, args)
	check(err)

	if p.Body == value.Nil {
		return m.Return(value.Nil)
	}

	// The body is in tail position.
	return m.ReplaceOp(&sequence{body: p.Body, env: frame})
}

// arguments evaluates each remaining expression in rest, leaving the
// results on the dump.
type arguments struct {
	env  value.T
	rest value.T
}

func (a *arguments) Perform(m *T) Op {
	if a.rest == value.Nil {
		return m.PreviousOp()
	}

	m.code = m.s.Car(a.rest)
	m.env = a.env

	a.rest = m.s.Cdr(a.rest)

	return m.PushOp(Action(eval))
}

// bind extends env with params bound to the values above base and
// evaluates body in the new frame.
type bind struct {
	base   int
	body   value.T
	env    value.T
	params value.T
}

func (b *bind) Perform(m *T) Op {
	args, err := list.New(m.s, m.dump[b.base:]...)
	check(err)

	m.dump = m.dump[:b.base]

	frame, err := env.Extend(m.s, b.env, b.params, args)
	check(err)

	return m.ReplaceOp(&sequence{body: b.body, env: frame})
}

// branch selects the consequent or alternative of an if.
type branch struct {
	alternative value.T
	consequent  value.T
	env         value.T
}

func (b *branch) Perform(m *T) Op {
	m.code = b.alternative
	if value.IsTruthy(m.PopResult()) {
		m.code = b.consequent
	}

	m.env = b.env

	return m.ReplaceOp(Action(eval))
}

// clauses tries each cond clause in turn.
type clauses struct {
	current value.T
	env     value.T
	pending bool
	rest    value.T
}

func (c *clauses) Perform(m *T) Op {
	if c.pending {
		c.pending = false

		v := m.Result()
		if value.IsTruthy(v) {
			body := m.s.Cdr(c.current)
			if body == value.Nil {
				return m.PreviousOp()
			}

			m.PopResult()

			return m.ReplaceOp(&sequence{body: body, env: c.env})
		}

		m.PopResult()
	}

	if c.rest == value.Nil {
		return m.Return(value.False)
	}

	c.current = m.s.Car(c.rest)
	c.rest = m.s.Cdr(c.rest)

	test := m.s.Car(c.current)
	if test == m.elseSym {
		body := m.s.Cdr(c.current)
		if body == value.Nil {
			return m.Return(value.True)
		}

		return m.ReplaceOp(&sequence{body: body, env: c.env})
	}

	c.pending = true

	m.code = test
	m.env = c.env

	return m.PushOp(Action(eval))
}

// definition binds or rebinds sym to the current result.
type definition struct {
	env value.T
	set bool
	sym value.T
}

func (d *definition) Perform(m *T) Op {
	v := m.Result()

	if d.set {
		check(env.Set(m.s, d.env, d.sym, v))

		return m.PreviousOp()
	}

	if m.s.IsProcedure(v) {
		if p := m.s.Procedure(v); !p.IsNative() && p.Name == value.Nil {
			p.Name = d.sym
		}
	}

	check(env.Define(m.s, d.env, d.sym, v))

	return m.PreviousOp()
}

// logic evaluates the operands of and/or until one decides the result.
// The last operand is in tail position.
type logic struct {
	env     value.T
	or      bool
	pending bool
	rest    value.T
}

func (l *logic) Perform(m *T) Op {
	if l.pending {
		if value.IsTruthy(m.Result()) == l.or {
			return m.PreviousOp()
		}

		m.PopResult()
	}

	m.code = m.s.Car(l.rest)
	m.env = l.env

	l.rest = m.s.Cdr(l.rest)
	if l.rest == value.Nil {
		return m.ReplaceOp(Action(eval))
	}

	l.pending = true

	return m.PushOp(Action(eval))
}

// sequence evaluates each expression in body, discarding all results but
// the last. The last expression is in tail position.
type sequence struct {
	body    value.T
	env     value.T
	pending bool
}

func (q *sequence) Perform(m *T) Op {
	if q.pending {
		m.PopResult()
	}

	m.code = m.s.Car(q.body)
	m.env = q.env

	q.body = m.s.Cdr(q.body)
	if q.body == value.Nil {
		return m.ReplaceOp(Action(eval))
	}

	q.pending = true

	return m.PushOp(Action(eval))
}
