package interp

import (
	"github.com/go-joy/joy/internal/diag"
	"github.com/go-joy/joy/internal/env"
	"github.com/go-joy/joy/internal/value"
)

// dualLogic implements `and`/`or`/`xor`'s dual meaning: logical on
// booleans, and the matching set operation on sets (intersection, union,
// symmetric difference).
func dualLogic(primitive string, ev env.Evaluator, boolOp func(a, b bool) bool, setOp func(a, b uint64) uint64) error {
	it := self(ev)
	b, err := it.Pop()
	if err != nil {
		return err
	}
	a, err := it.Pop()
	if err != nil {
		it.Push(b)
		return err
	}
	switch av := a.(type) {
	case value.Boolean:
		bv, ok := b.(value.Boolean)
		if !ok {
			it.Push(a)
			it.Push(b)
			return diag.TypeErr(primitive, b, "BOOLEAN").WithStack(it.Stack())
		}
		it.Push(value.NewBool(boolOp(av.Val, bv.Val)))
		return nil
	case value.SetValue:
		bv, ok := b.(value.SetValue)
		if !ok {
			it.Push(a)
			it.Push(b)
			return diag.TypeErr(primitive, b, "SET").WithStack(it.Stack())
		}
		it.Push(value.SetValue{Bits: setOp(av.Bits, bv.Bits)})
		return nil
	default:
		it.Push(a)
		it.Push(b)
		return diag.TypeErr(primitive, a, "BOOLEAN or SET").WithStack(it.Stack())
	}
}

func primAnd(ev env.Evaluator) error {
	return dualLogic("and", ev,
		func(a, b bool) bool { return a && b },
		func(a, b uint64) uint64 { return a & b })
}

func primOr(ev env.Evaluator) error {
	return dualLogic("or", ev,
		func(a, b bool) bool { return a || b },
		func(a, b uint64) uint64 { return a | b })
}

func primXor(ev env.Evaluator) error {
	return dualLogic("xor", ev,
		func(a, b bool) bool { return a != b },
		func(a, b uint64) uint64 { return a ^ b })
}

// primNot implements `not`: logical negation on BOOLEAN, and on SET
// returns the bitwise complement masked down to setsize bits.
func primNot(ev env.Evaluator) error {
	it := self(ev)
	v, err := it.Pop()
	if err != nil {
		return err
	}
	switch tv := v.(type) {
	case value.Boolean:
		it.Push(value.NewBool(!tv.Val))
	case value.SetValue:
		it.Push(value.SetValue{Bits: (^tv.Bits) & value.FullMask})
	default:
		it.Push(v)
		return diag.TypeErr("not", v, "BOOLEAN or SET").WithStack(it.Stack())
	}
	return nil
}

// primSetsize implements `setsize`: the fixed bit width N.
func primSetsize(ev env.Evaluator) error {
	it := self(ev)
	it.Push(value.Integer{Val: value.SetSize})
	return nil
}

func registerLogicPrimitives(e *env.Environment) {
	e.DefinePrimitive("and", primAnd)
	e.DefinePrimitive("or", primOr)
	e.DefinePrimitive("xor", primXor)
	e.DefinePrimitive("not", primNot)
	e.DefinePrimitive("setsize", primSetsize)
}
