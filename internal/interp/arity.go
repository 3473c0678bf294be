package interp

import (
	"github.com/go-joy/joy/internal/diag"
	"github.com/go-joy/joy/internal/env"
	"github.com/go-joy/joy/internal/value"
)

// arityCombinator implements the shared shape of nullary/unary/binary/
// ternary: [P] is evaluated against a *copy* of the stack, and the live
// stack is then set to (live stack minus k elements) followed by the new
// top of the copy.
func arityCombinator(ev env.Evaluator, primitive string, k int) error {
	it := self(ev)
	p, err := it.quotationArg(primitive)
	if err != nil {
		return err
	}
	live := it.Stack()
	if len(live) < k {
		return diag.StackUnderflowErr(primitive, k, len(live)).WithStack(live)
	}
	it.SetStack(append([]value.Value(nil), live...))
	err = it.Run(p)
	result := it.Stack()
	it.SetStack(live)
	if err != nil {
		return err
	}
	if len(result) == 0 {
		return diag.StackUnderflowErr(primitive, 1, 0)
	}
	top := result[len(result)-1]
	newStack := append(append([]value.Value(nil), live[:len(live)-k]...), top)
	it.SetStack(newStack)
	return nil
}

func primNullary(ev env.Evaluator) error { return arityCombinator(ev, "nullary", 0) }
func primUnary(ev env.Evaluator) error   { return arityCombinator(ev, "unary", 1) }
func primBinary(ev env.Evaluator) error  { return arityCombinator(ev, "binary", 2) }
func primTernary(ev env.Evaluator) error { return arityCombinator(ev, "ternary", 3) }

// unaryKCombinator implements `unary2`/`unary3`/`unary4`: re-execute [P]
// once per argument, each against a stack identical to the ambient one but
// with that single argument on top, collecting each invocation's new top.
func unaryKCombinator(ev env.Evaluator, primitive string, k int) error {
	it := self(ev)
	p, err := it.quotationArg(primitive)
	if err != nil {
		return err
	}
	args := make([]value.Value, k)
	for i := k - 1; i >= 0; i-- {
		v, err := it.Pop()
		if err != nil {
			return err
		}
		args[i] = v
	}
	results := make([]value.Value, k)
	for i, a := range args {
		r, err := applyOne(it, a, p, primitive)
		if err != nil {
			return err
		}
		results[i] = r
	}
	for _, r := range results {
		it.Push(r)
	}
	return nil
}

func primUnary2(ev env.Evaluator) error { return unaryKCombinator(ev, "unary2", 2) }
func primUnary3(ev env.Evaluator) error { return unaryKCombinator(ev, "unary3", 3) }
func primUnary4(ev env.Evaluator) error { return unaryKCombinator(ev, "unary4", 4) }

// primApp1 implements `app1`: `X [P] -> R`. It applies P to X and returns
// its single result: the base case unary/unaryK and cleave are built
// from.
func primApp1(ev env.Evaluator) error {
	it := self(ev)
	p, err := it.quotationArg("app1")
	if err != nil {
		return err
	}
	x, err := it.Pop()
	if err != nil {
		return err
	}
	r, err := applyOne(it, x, p, "app1")
	if err != nil {
		return err
	}
	it.Push(r)
	return nil
}

// primApp2 implements `app2`: `X Y [P] -> R1 R2`. It applies the same P
// to X and then to Y.
func primApp2(ev env.Evaluator) error { return unaryKCombinator(ev, "app2", 2) }

// primApp11 implements `app11`: `X [P1] [P2] -> R1 R2`. It applies two
// different programs to the same X.
func primApp11(ev env.Evaluator) error {
	it := self(ev)
	p2, err := it.quotationArg("app11")
	if err != nil {
		return err
	}
	p1, err := it.quotationArg("app11")
	if err != nil {
		return err
	}
	x, err := it.Pop()
	if err != nil {
		return err
	}
	r1, err := applyOne(it, x, p1, "app11")
	if err != nil {
		return err
	}
	r2, err := applyOne(it, x, p2, "app11")
	if err != nil {
		return err
	}
	it.Push(r1)
	it.Push(r2)
	return nil
}

// primApp12 implements `app12`: `X Y [P1] [P2] -> R1 R2`. It applies P1 to
// X and P2 to Y.
func primApp12(ev env.Evaluator) error {
	it := self(ev)
	p2, err := it.quotationArg("app12")
	if err != nil {
		return err
	}
	p1, err := it.quotationArg("app12")
	if err != nil {
		return err
	}
	y, err := it.Pop()
	if err != nil {
		return err
	}
	x, err := it.Pop()
	if err != nil {
		return err
	}
	r1, err := applyOne(it, x, p1, "app12")
	if err != nil {
		return err
	}
	r2, err := applyOne(it, y, p2, "app12")
	if err != nil {
		return err
	}
	it.Push(r1)
	it.Push(r2)
	return nil
}

func registerArityCombinators(e *env.Environment) {
	e.DefinePrimitive("nullary", primNullary)
	e.DefinePrimitive("unary", primUnary)
	e.DefinePrimitive("binary", primBinary)
	e.DefinePrimitive("ternary", primTernary)
	e.DefinePrimitive("unary2", primUnary2)
	e.DefinePrimitive("unary3", primUnary3)
	e.DefinePrimitive("unary4", primUnary4)
	e.DefinePrimitive("app1", primApp1)
	e.DefinePrimitive("app2", primApp2)
	e.DefinePrimitive("app11", primApp11)
	e.DefinePrimitive("app12", primApp12)
}

// registerAggregateCombinators wires the aggregate-traversal combinators
// (step/map/fold/filter/split/some/all) declared in aggregate.go; kept as
// a thin alias so combinators.go's registerCombinators call reads as one
// family per primitive group.
func registerAggregateCombinators(e *env.Environment) {
	registerAggregates(e)
}
