// Released under an MIT license. See LICENSE.

package machine

import (
	"github.com/michaelmacinnis/nanscheme/internal/common/condition"
	"github.com/michaelmacinnis/nanscheme/internal/common/env"
	"github.com/michaelmacinnis/nanscheme/internal/common/list"
	"github.com/michaelmacinnis/nanscheme/internal/common/store"
	"github.com/michaelmacinnis/nanscheme/internal/common/value"
)

// The keywords type holds the symbols that introduce special forms.
type keywords struct {
	forms map[value.T]Action

	elseSym value.T
}

func intern(s *store.T) (*keywords, error) {
	k := &keywords{forms: map[value.T]Action{}}

	for name, a := range map[string]Action{
		"and":    evalAnd,
		"begin":  evalBegin,
		"cond":   evalCond,
		"define": evalDefine,
		"if":     evalIf,
		"lambda": evalLambda,
		"let":    evalLet,
		"or":     evalOr,
		"quote":  evalQuote,
		"set!":   evalSet,
	} {
		sym, err := s.Symbol(name)
		if err != nil {
			return nil, err
		}

		k.forms[sym] = a
	}

	sym, err := s.Symbol("else")
	if err != nil {
		return nil, err
	}

	k.elseSym = sym

	return k, nil
}

// Actions.

// eval evaluates the expression in the code register.
//
// Symbols are looked up. Pairs are special forms or applications.
// Everything else evaluates to itself.
func eval(m *T) Op {
	switch {
	case m.s.IsSymbol(m.code):
		v, ok := env.Lookup(m.s, m.env, m.code)
		if !ok {
			condition.Raise(condition.ErrUnbound, "%s", m.s.Text(m.code))
		}

		return m.Return(v)

	case m.s.IsCons(m.code):
		if a, ok := m.forms[m.s.Car(m.code)]; ok {
			return a(m)
		}

		return evalCall(m)
	}

	return m.Return(m.code)
}

// evalCall arranges for the operator and each operand to be evaluated,
// left to right, and then applied.
//
// Result:
//
//	code:  Operator
//	stack: eval arguments(Operand_0 ... Operand_N) apply Previous ...
func evalCall(m *T) Op {
	args := m.s.Cdr(m.code)
	if !list.IsProper(m.s, args) {
		condition.Raise(condition.ErrForm, "improper argument list")
	}

	m.ReplaceOp(&apply{base: len(m.dump)})
	m.PushOp(&arguments{rest: args, env: m.env})

	m.code = m.s.Car(m.code)

	return m.PushOp(Action(eval))
}

func evalQuote(m *T) Op {
	return m.Return(m.s.Car(m.operands(1, 1)))
}

// evalIf evaluates the test and leaves the choice of branch to branch.
// A missing alternative is #f.
func evalIf(m *T) Op {
	l := m.operands(2, 3)

	alternative := value.False
	if rest := m.s.Cddr(l); rest != value.Nil {
		alternative = m.s.Car(rest)
	}

	m.ReplaceOp(&branch{
		alternative: alternative,
		consequent:  m.s.Cadr(l),
		env:         m.env,
	})

	m.code = m.s.Car(l)

	return m.PushOp(Action(eval))
}

// evalDefine binds a symbol in the innermost frame. The form
// (define (name . params) body ...) defines a procedure.
func evalDefine(m *T) Op {
	l := m.operands(2, -1)
	target := m.s.Car(l)

	if car, cdr, ok := m.s.Pair(target); ok {
		m.symbol(car)
		m.parameters(cdr)

		p, err := m.s.Closure(car, cdr, m.s.Cdr(l), m.env)
		check(err)

		check(env.Define(m.s, m.env, car, p))

		return m.Return(p)
	}

	m.symbol(target)

	if list.Length(m.s, l) != 2 {
		condition.Raise(condition.ErrForm, "define expects a symbol and one expression")
	}

	m.ReplaceOp(&definition{env: m.env, sym: target})

	m.code = m.s.Cadr(l)

	return m.PushOp(Action(eval))
}

// evalSet changes an existing binding.
func evalSet(m *T) Op {
	l := m.operands(2, 2)
	target := m.s.Car(l)

	m.symbol(target)

	m.ReplaceOp(&definition{env: m.env, set: true, sym: target})

	m.code = m.s.Cadr(l)

	return m.PushOp(Action(eval))
}

func evalLambda(m *T) Op {
	l := m.operands(2, -1)
	params := m.s.Car(l)

	m.parameters(params)

	p, err := m.s.Closure(value.Nil, params, m.s.Cdr(l), m.env)
	check(err)

	return m.Return(p)
}

func evalBegin(m *T) Op {
	body := m.operands(0, -1)
	if body == value.Nil {
		return m.Return(value.Nil)
	}

	return m.ReplaceOp(&sequence{body: body, env: m.env})
}

// evalLet handles both (let ((var init) ...) body ...) and the named
// form (let name ((var init) ...) body ...), which binds name to a
// procedure over the variables in a frame of its own.
func evalLet(m *T) Op {
	l := m.operands(1, -1)

	name := value.Nil
	if m.s.IsSymbol(m.s.Car(l)) {
		name = m.s.Car(l)
		l = m.s.Cdr(l)

		if l == value.Nil {
			condition.Raise(condition.ErrForm, "named let is missing its bindings")
		}
	}

	bindings := m.s.Car(l)

	body := m.s.Cdr(l)
	if body == value.Nil {
		condition.Raise(condition.ErrForm, "let has no body")
	}

	if !list.IsProper(m.s, bindings) {
		condition.Raise(condition.ErrForm, "let bindings must be a list")
	}

	vars := make([]value.T, 0, list.Length(m.s, bindings))
	inits := make([]value.T, 0, cap(vars))

	for _, b := range list.Slice(m.s, bindings) {
		if !list.IsProper(m.s, b) || list.Length(m.s, b) != 2 {
			condition.Raise(condition.ErrForm, "let binding must be (variable init)")
		}

		m.symbol(m.s.Car(b))

		vars = append(vars, m.s.Car(b))
		inits = append(inits, m.s.Cadr(b))
	}

	params, err := list.New(m.s, vars...)
	check(err)

	args, err := list.New(m.s, inits...)
	check(err)

	base := len(m.dump)

	if name == value.Nil {
		m.ReplaceOp(&bind{base: base, body: body, env: m.env, params: params})
	} else {
		frame, err := env.New(m.s, m.env)
		check(err)

		p, err := m.s.Closure(name, params, body, frame)
		check(err)

		check(env.Define(m.s, frame, name, p))

		m.PushResult(p)
		m.ReplaceOp(&apply{base: base})
	}

	return m.PushOp(&arguments{rest: args, env: m.env})
}

func evalAnd(m *T) Op {
	return evalLogic(m, false)
}

func evalOr(m *T) Op {
	return evalLogic(m, true)
}

func evalLogic(m *T, or bool) Op {
	rest := m.operands(0, -1)
	if rest == value.Nil {
		return m.Return(value.Bool(!or))
	}

	return m.ReplaceOp(&logic{env: m.env, or: or, rest: rest})
}

func evalCond(m *T) Op {
	rest := m.operands(0, -1)

	for _, c := range list.Slice(m.s, rest) {
		if !m.s.IsCons(c) || !list.IsProper(m.s, c) {
			condition.Raise(condition.ErrForm, "cond clause must be a non-empty list")
		}
	}

	return m.ReplaceOp(&clauses{env: m.env, rest: rest})
}

// Helpers.

// operands returns the operands of the special form in the code register
// after checking there are at least min and, unless max is negative, at
// most max of them.
func (m *T) operands(min, max int) value.T {
	l := m.s.Cdr(m.code)

	name := m.s.Text(m.s.Car(m.code))

	if !list.IsProper(m.s, l) {
		condition.Raise(condition.ErrForm, "malformed %s", name)
	}

	n := list.Length(m.s, l)
	if n < min || (max >= 0 && n > max) {
		condition.Raise(condition.ErrForm, "malformed %s: %d operands", name, n)
	}

	return l
}

// parameters checks that params is a symbol or a possibly dotted list
// of symbols.
func (m *T) parameters(params value.T) {
	for params != value.Nil {
		if m.s.IsSymbol(params) {
			return
		}

		car, cdr, ok := m.s.Pair(params)
		if !ok {
			condition.Raise(condition.ErrForm, "malformed parameter list")
		}

		m.symbol(car)

		params = cdr
	}
}

func (m *T) symbol(v value.T) {
	if !m.s.IsSymbol(v) {
		condition.Raise(condition.ErrForm, "expected symbol, got %s", value.Name(v))
	}
}
