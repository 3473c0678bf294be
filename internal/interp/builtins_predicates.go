package interp

import (
	"github.com/go-joy/joy/internal/env"
	"github.com/go-joy/joy/internal/value"
)

// typePredicate builds a type-tag predicate primitive: `X -> BOOLEAN`,
// never consuming more than it needs and never failing on type mismatch.
func typePredicate(check func(value.Value) bool) func(env.Evaluator) error {
	return func(ev env.Evaluator) error {
		it := self(ev)
		v, err := it.Pop()
		if err != nil {
			return err
		}
		it.Push(value.NewBool(check(v)))
		return nil
	}
}

// primLeaf implements `leaf`: true for anything that is not a LIST.
func primLeaf(ev env.Evaluator) error {
	it := self(ev)
	v, err := it.Pop()
	if err != nil {
		return err
	}
	_, isList := v.(value.ListValue)
	it.Push(value.NewBool(!isList))
	return nil
}

// primUser implements `user`: true if the operand is a SYMBOL bound to a
// user-defined (not primitive) word.
func primUser(ev env.Evaluator) error {
	it := self(ev)
	v, err := it.Pop()
	if err != nil {
		return err
	}
	sym, ok := v.(value.Symbol)
	if !ok {
		it.Push(value.NewBool(false))
		return nil
	}
	def, ok := it.Env().Lookup(sym.Name)
	it.Push(value.NewBool(ok && def.IsUser))
	return nil
}

func registerPredicatePrimitives(e *env.Environment) {
	e.DefinePrimitive("integer", typePredicate(func(v value.Value) bool { return v.Kind() == value.Int }))
	e.DefinePrimitive("char", typePredicate(func(v value.Value) bool { return v.Kind() == value.Char }))
	e.DefinePrimitive("logical", typePredicate(func(v value.Value) bool { return v.Kind() == value.Bool }))
	e.DefinePrimitive("set", typePredicate(func(v value.Value) bool { return v.Kind() == value.SetKind }))
	e.DefinePrimitive("string", typePredicate(func(v value.Value) bool { return v.Kind() == value.Str }))
	e.DefinePrimitive("list", typePredicate(func(v value.Value) bool { return v.Kind() == value.List }))
	e.DefinePrimitive("float", typePredicate(func(v value.Value) bool { return v.Kind() == value.Float }))
	e.DefinePrimitive("file", typePredicate(func(v value.Value) bool { return v.Kind() == value.FileKind }))
	e.DefinePrimitive("leaf", primLeaf)
	e.DefinePrimitive("user", primUser)
}
