package interp

import (
	"github.com/go-joy/joy/internal/diag"
	"github.com/go-joy/joy/internal/env"
	"github.com/go-joy/joy/internal/value"
)

// primDup implements `dup`: `X -> X X`.
func primDup(ev env.Evaluator) error {
	it := self(ev)
	x, err := it.Peek()
	if err != nil {
		return err
	}
	it.Push(x)
	return nil
}

// primSwap implements `swap`: `X Y -> Y X`.
func primSwap(ev env.Evaluator) error {
	it := self(ev)
	y, err := it.Pop()
	if err != nil {
		return err
	}
	x, err := it.Pop()
	if err != nil {
		it.Push(y)
		return err
	}
	it.Push(y)
	it.Push(x)
	return nil
}

// primPop implements `pop`: `X -> `. It discards the top.
func primPop(ev env.Evaluator) error {
	it := self(ev)
	_, err := it.Pop()
	return err
}

// primId implements `id`: the empty program.
func primId(env.Evaluator) error { return nil }

// primOver implements `over`: `X Y -> X Y X`.
func primOver(ev env.Evaluator) error {
	it := self(ev)
	y, err := it.Pop()
	if err != nil {
		return err
	}
	x, err := it.Pop()
	if err != nil {
		it.Push(y)
		return err
	}
	it.Push(x)
	it.Push(y)
	it.Push(x)
	return nil
}

// primDup2 implements `dup2`: `X Y -> X Y X Y`.
func primDup2(ev env.Evaluator) error {
	it := self(ev)
	y, err := it.Pop()
	if err != nil {
		return err
	}
	x, err := it.Pop()
	if err != nil {
		it.Push(y)
		return err
	}
	it.Push(x)
	it.Push(y)
	it.Push(x)
	it.Push(y)
	return nil
}

// primRollup implements `rollup`: `X Y Z -> Z X Y`.
func primRollup(ev env.Evaluator) error {
	it := self(ev)
	z, err := it.Pop()
	if err != nil {
		return err
	}
	y, err := it.Pop()
	if err != nil {
		it.Push(z)
		return err
	}
	x, err := it.Pop()
	if err != nil {
		it.Push(y)
		it.Push(z)
		return err
	}
	it.Push(z)
	it.Push(x)
	it.Push(y)
	return nil
}

// primRolldown implements `rolldown`: `X Y Z -> Y Z X`.
func primRolldown(ev env.Evaluator) error {
	it := self(ev)
	z, err := it.Pop()
	if err != nil {
		return err
	}
	y, err := it.Pop()
	if err != nil {
		it.Push(z)
		return err
	}
	x, err := it.Pop()
	if err != nil {
		it.Push(y)
		it.Push(z)
		return err
	}
	it.Push(y)
	it.Push(z)
	it.Push(x)
	return nil
}

// primRotate implements `rotate`: `X Y Z -> Z Y X`. A full reversal of the
// top three, distinct from rollup/rolldown's cyclic permutations.
func primRotate(ev env.Evaluator) error {
	it := self(ev)
	z, err := it.Pop()
	if err != nil {
		return err
	}
	y, err := it.Pop()
	if err != nil {
		it.Push(z)
		return err
	}
	x, err := it.Pop()
	if err != nil {
		it.Push(y)
		it.Push(z)
		return err
	}
	it.Push(z)
	it.Push(y)
	it.Push(x)
	return nil
}

// primRollupd, primRolldownd and primRotated apply the corresponding
// three-element permutation one slot beneath the top: `X Y Z W -> ... W`.
func primRollupd(ev env.Evaluator) error {
	it := self(ev)
	w, err := it.Pop()
	if err != nil {
		return err
	}
	if err := primRollup(ev); err != nil {
		it.Push(w)
		return err
	}
	it.Push(w)
	return nil
}

func primRolldownd(ev env.Evaluator) error {
	it := self(ev)
	w, err := it.Pop()
	if err != nil {
		return err
	}
	if err := primRolldown(ev); err != nil {
		it.Push(w)
		return err
	}
	it.Push(w)
	return nil
}

func primRotated(ev env.Evaluator) error {
	it := self(ev)
	w, err := it.Pop()
	if err != nil {
		return err
	}
	if err := primRotate(ev); err != nil {
		it.Push(w)
		return err
	}
	it.Push(w)
	return nil
}

// primChoice implements `choice`: `B T F -> T|F`. It picks between two
// already-evaluated values, unlike branch which executes quotations.
func primChoice(ev env.Evaluator) error {
	it := self(ev)
	f, err := it.Pop()
	if err != nil {
		return err
	}
	t, err := it.Pop()
	if err != nil {
		it.Push(f)
		return err
	}
	b, err := it.Pop()
	if err != nil {
		it.Push(t)
		it.Push(f)
		return err
	}
	bv, ok := b.(value.Boolean)
	if !ok {
		it.Push(b)
		it.Push(t)
		it.Push(f)
		return diag.TypeErr("choice", b, "BOOLEAN").WithStack(it.Stack())
	}
	if bv.Val {
		it.Push(t)
	} else {
		it.Push(f)
	}
	return nil
}

// primStackOp implements `stack`: pushes a LIST holding every stack
// element, most-recent (top) first, mirroring how Joy prints a stack
// listing.
func primStackOp(ev env.Evaluator) error {
	it := self(ev)
	cur := it.Stack()
	items := make([]value.Value, len(cur))
	for i, v := range cur {
		items[len(cur)-1-i] = v
	}
	it.Push(value.ListValue{Items: items})
	return nil
}

// primUnstack implements `unstack`: replaces the entire stack with the
// contents of a LIST, undoing `stack`. The upstream behavior of
// `stack`/`unstack` on non-list values is under-specified; this
// implementation raises TypeError rather than guessing a shape.
func primUnstack(ev env.Evaluator) error {
	it := self(ev)
	v, err := it.Pop()
	if err != nil {
		return err
	}
	lst, ok := v.(value.ListValue)
	if !ok {
		it.Push(v)
		return diag.TypeErr("unstack", v, "LIST").WithStack(it.Stack())
	}
	newStack := make([]value.Value, len(lst.Items))
	for i, x := range lst.Items {
		newStack[len(lst.Items)-1-i] = x
	}
	it.SetStack(newStack)
	return nil
}

// primConts implements `conts`: explicitly marked buggy in the upstream
// Joy manual; this implementation always pushes an empty list and does not
// inspect the continuation stack.
func primConts(ev env.Evaluator) error {
	it := self(ev)
	it.Push(value.ListValue{})
	return nil
}

func registerStackPrimitives(e *env.Environment) {
	e.DefinePrimitive("dup", primDup)
	e.DefinePrimitive("swap", primSwap)
	e.DefinePrimitive("pop", primPop)
	e.DefinePrimitive("id", primId)
	e.DefinePrimitive("over", primOver)
	e.DefinePrimitive("dup2", primDup2)
	e.DefinePrimitive("rollup", primRollup)
	e.DefinePrimitive("rolldown", primRolldown)
	e.DefinePrimitive("rotate", primRotate)
	e.DefinePrimitive("rollupd", primRollupd)
	e.DefinePrimitive("rolldownd", primRolldownd)
	e.DefinePrimitive("rotated", primRotated)
	e.DefinePrimitive("choice", primChoice)
	e.DefinePrimitive("stack", primStackOp)
	e.DefinePrimitive("unstack", primUnstack)
	e.DefinePrimitive("conts", primConts)
}
