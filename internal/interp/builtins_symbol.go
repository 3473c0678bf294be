package interp

import (
	"github.com/go-joy/joy/internal/diag"
	"github.com/go-joy/joy/internal/env"
	"github.com/go-joy/joy/internal/value"
)

// primName implements `name`: `sym -> "sym"`.
func primName(ev env.Evaluator) error {
	it := self(ev)
	v, err := it.Pop()
	if err != nil {
		return err
	}
	sym, ok := v.(value.Symbol)
	if !ok {
		it.Push(v)
		return diag.TypeErr("name", v, "SYMBOL").WithStack(it.Stack())
	}
	it.Push(value.String{Val: sym.Name})
	return nil
}

// primIntern implements `intern`: `"sym" -> sym`.
func primIntern(ev env.Evaluator) error {
	it := self(ev)
	v, err := it.Pop()
	if err != nil {
		return err
	}
	s, ok := v.(value.String)
	if !ok {
		it.Push(v)
		return diag.TypeErr("intern", v, "STRING").WithStack(it.Stack())
	}
	it.Push(value.Intern(s.Val))
	return nil
}

// primBody implements `body`: `U -> [P]`. It returns the quotation body of
// a user-defined symbol.
func primBody(ev env.Evaluator) error {
	it := self(ev)
	v, err := it.Pop()
	if err != nil {
		return err
	}
	sym, ok := v.(value.Symbol)
	if !ok {
		it.Push(v)
		return diag.TypeErr("body", v, "SYMBOL").WithStack(it.Stack())
	}
	def, ok := it.Env().Lookup(sym.Name)
	if !ok || !def.IsUser {
		it.Push(v)
		return diag.Newf(diag.DomainError, "body: %s is not a user-defined symbol", sym.Name).WithStack(it.Stack())
	}
	it.Push(def.Body)
	return nil
}

func registerSymbolPrimitives(e *env.Environment) {
	e.DefinePrimitive("name", primName)
	e.DefinePrimitive("intern", primIntern)
	e.DefinePrimitive("body", primBody)
}
