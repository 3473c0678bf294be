package interp

import (
	"github.com/go-joy/joy/internal/diag"
	"github.com/go-joy/joy/internal/env"
	"github.com/go-joy/joy/internal/value"
)

// self type-asserts the Evaluator back to the concrete Interpreter so
// combinators can use RunSaved/CloneStack/quotationArg, which aren't part
// of the narrower env.Evaluator surface primitives are declared against.
func self(ev env.Evaluator) *Interpreter { return ev.(*Interpreter) }

// combI implements `i`: `[P] -> ...`. It evaluates P against the
// remaining stack.
func combI(ev env.Evaluator) error {
	it := self(ev)
	p, err := it.quotationArg("i")
	if err != nil {
		return err
	}
	return it.Run(p)
}

// combX implements `x`: `[P] -> [P] ...`. It evaluates P without consuming
// it, equivalent to `dup i`.
func combX(ev env.Evaluator) error {
	it := self(ev)
	p, err := it.quotationArg("x")
	if err != nil {
		return err
	}
	it.Push(p)
	return it.Run(p)
}

// combDip implements `dip`: `X [P] -> ... X`. It removes X, evaluates P,
// then restores X on top.
func combDip(ev env.Evaluator) error {
	it := self(ev)
	p, err := it.quotationArg("dip")
	if err != nil {
		return err
	}
	x, err := it.Pop()
	if err != nil {
		return err
	}
	if err := it.Run(p); err != nil {
		return err
	}
	it.Push(x)
	return nil
}

// combDipd implements `dipd`: `X Y [P] -> ... X Y`, dipping two deep.
func combDipd(ev env.Evaluator) error {
	it := self(ev)
	p, err := it.quotationArg("dipd")
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
	if err := it.Run(p); err != nil {
		return err
	}
	it.Push(x)
	it.Push(y)
	return nil
}

// combBranch implements `branch`: `B [T] [F] -> ...`.
func combBranch(ev env.Evaluator) error {
	it := self(ev)
	f, err := it.quotationArg("branch")
	if err != nil {
		return err
	}
	t, err := it.quotationArg("branch")
	if err != nil {
		return err
	}
	b, err := popBoolValue(it, "branch")
	if err != nil {
		return err
	}
	if b {
		return it.Run(t)
	}
	return it.Run(f)
}

func popBoolValue(it *Interpreter, primitive string) (bool, error) {
	v, err := it.Pop()
	if err != nil {
		return false, err
	}
	b, ok := v.(value.Boolean)
	if !ok {
		return false, diag.TypeErr(primitive, v, "BOOLEAN").WithStack(it.Stack())
	}
	return b.Val, nil
}

// combIfte implements `ifte`: `[B] [T] [F] -> ...`. It saves the stack,
// evaluates B, inspects the result, discards that copy, then runs T or F
// against the original.
func combIfte(ev env.Evaluator) error {
	it := self(ev)
	f, err := it.quotationArg("ifte")
	if err != nil {
		return err
	}
	t, err := it.quotationArg("ifte")
	if err != nil {
		return err
	}
	b, err := it.quotationArg("ifte")
	if err != nil {
		return err
	}
	result, err := it.RunSaved(b)
	if err != nil {
		return err
	}
	cond, err := popBool(result, "ifte")
	if err != nil {
		return err
	}
	if cond {
		return it.Run(t)
	}
	return it.Run(f)
}

// combCond implements `cond`: a chain of [[Bi] Ti] clauses plus a final
// default [D].
func combCond(ev env.Evaluator) error {
	it := self(ev)
	clauses, err := it.quotationArg("cond")
	if err != nil {
		return err
	}
	for idx, c := range clauses.Items {
		clause, ok := c.(value.ListValue)
		if !ok {
			return diag.TypeErr("cond", c, "LIST clause").WithStack(it.Stack())
		}
		if idx == len(clauses.Items)-1 {
			// Final default clause: [D], run unconditionally.
			return it.Run(clause)
		}
		if len(clause.Items) != 2 {
			return diag.Newf(diag.TypeError, "cond clause must be [[B] T], got %s", clause).WithStack(it.Stack())
		}
		b, ok := clause.Items[0].(value.ListValue)
		if !ok {
			return diag.TypeErr("cond", clause.Items[0], "LIST predicate").WithStack(it.Stack())
		}
		t, ok := clause.Items[1].(value.ListValue)
		if !ok {
			return diag.TypeErr("cond", clause.Items[1], "LIST body").WithStack(it.Stack())
		}
		result, err := it.RunSaved(b)
		if err != nil {
			return err
		}
		matched, err := popBool(result, "cond")
		if err != nil {
			return err
		}
		if matched {
			return it.Run(t)
		}
	}
	return nil
}

// combWhile implements `while`: `[B] [D] -> ...`. It repeats D while B is
// true, evaluating B against a saved stack each iteration.
func combWhile(ev env.Evaluator) error {
	it := self(ev)
	d, err := it.quotationArg("while")
	if err != nil {
		return err
	}
	b, err := it.quotationArg("while")
	if err != nil {
		return err
	}
	for {
		result, err := it.RunSaved(b)
		if err != nil {
			return err
		}
		cond, err := popBool(result, "while")
		if err != nil {
			return err
		}
		if !cond {
			return nil
		}
		if err := it.Run(d); err != nil {
			return err
		}
	}
}

// combTimes implements `times`: `N [P] -> ...`. It executes P exactly N
// times.
func combTimes(ev env.Evaluator) error {
	it := self(ev)
	p, err := it.quotationArg("times")
	if err != nil {
		return err
	}
	n, err := popInt(it, "times")
	if err != nil {
		return err
	}
	if n < 0 {
		return diag.Newf(diag.DomainError, "times requires N >= 0, got %d", n).WithStack(it.Stack())
	}
	for i := int64(0); i < n; i++ {
		if err := it.Run(p); err != nil {
			return err
		}
	}
	return nil
}

func popInt(it *Interpreter, primitive string) (int64, error) {
	v, err := it.Pop()
	if err != nil {
		return 0, err
	}
	n, ok := v.(value.Integer)
	if !ok {
		it.Push(v)
		return 0, diag.TypeErr(primitive, v, "INTEGER").WithStack(it.Stack())
	}
	return n.Val, nil
}

// combLinrec implements `linrec`: `[P] [T] [R1] [R2] -> ...`.
func combLinrec(ev env.Evaluator) error {
	it := self(ev)
	r2, err := it.quotationArg("linrec")
	if err != nil {
		return err
	}
	r1, err := it.quotationArg("linrec")
	if err != nil {
		return err
	}
	t, err := it.quotationArg("linrec")
	if err != nil {
		return err
	}
	p, err := it.quotationArg("linrec")
	if err != nil {
		return err
	}
	return runLinrec(it, p, t, r1, r2)
}

func runLinrec(it *Interpreter, p, t, r1, r2 value.ListValue) error {
	result, err := it.RunSaved(p)
	if err != nil {
		return err
	}
	cond, err := popBool(result, "linrec")
	if err != nil {
		return err
	}
	if cond {
		return it.Run(t)
	}
	if err := it.Run(r1); err != nil {
		return err
	}
	if err := runLinrec(it, p, t, r1, r2); err != nil {
		return err
	}
	return it.Run(r2)
}

// combTailrec implements `tailrec`: `[P] [T] [R1] -> ...`, i.e. linrec
// with an implicit R2=[]. Unlike linrec it is implemented as a Go loop, not
// a recursive call, so Joy-level recursion depth never grows the Go call
// stack.
func combTailrec(ev env.Evaluator) error {
	it := self(ev)
	r1, err := it.quotationArg("tailrec")
	if err != nil {
		return err
	}
	t, err := it.quotationArg("tailrec")
	if err != nil {
		return err
	}
	p, err := it.quotationArg("tailrec")
	if err != nil {
		return err
	}
	for {
		result, err := it.RunSaved(p)
		if err != nil {
			return err
		}
		cond, err := popBool(result, "tailrec")
		if err != nil {
			return err
		}
		if cond {
			return it.Run(t)
		}
		if err := it.Run(r1); err != nil {
			return err
		}
	}
}

// combBinrec implements `binrec`: `[P] [T] [R1] [R2] -> ...`. If P then T;
// else R1 produces two new top values, recurse on each, then R2 combines
// the two results.
func combBinrec(ev env.Evaluator) error {
	it := self(ev)
	r2, err := it.quotationArg("binrec")
	if err != nil {
		return err
	}
	r1, err := it.quotationArg("binrec")
	if err != nil {
		return err
	}
	t, err := it.quotationArg("binrec")
	if err != nil {
		return err
	}
	p, err := it.quotationArg("binrec")
	if err != nil {
		return err
	}
	return runBinrec(it, p, t, r1, r2)
}

func runBinrec(it *Interpreter, p, t, r1, r2 value.ListValue) error {
	result, err := it.RunSaved(p)
	if err != nil {
		return err
	}
	cond, err := popBool(result, "binrec")
	if err != nil {
		return err
	}
	if cond {
		return it.Run(t)
	}
	if err := it.Run(r1); err != nil {
		return err
	}
	second, err := it.Pop()
	if err != nil {
		return err
	}
	first, err := it.Pop()
	if err != nil {
		return err
	}
	it.Push(first)
	if err := runBinrec(it, p, t, r1, r2); err != nil {
		return err
	}
	firstResult, err := it.Pop()
	if err != nil {
		return err
	}
	it.Push(second)
	if err := runBinrec(it, p, t, r1, r2); err != nil {
		return err
	}
	secondResult, err := it.Pop()
	if err != nil {
		return err
	}
	it.Push(firstResult)
	it.Push(secondResult)
	return it.Run(r2)
}

// combGenrec implements `genrec`: `[P] [T] [R1] [R2] -> ...`. If P then T;
// else R1, then push `[[P] [T] [R1] [R2] genrec]`, then R2.
func combGenrec(ev env.Evaluator) error {
	it := self(ev)
	r2, err := it.quotationArg("genrec")
	if err != nil {
		return err
	}
	r1, err := it.quotationArg("genrec")
	if err != nil {
		return err
	}
	t, err := it.quotationArg("genrec")
	if err != nil {
		return err
	}
	p, err := it.quotationArg("genrec")
	if err != nil {
		return err
	}
	return runGenrec(it, p, t, r1, r2)
}

func runGenrec(it *Interpreter, p, t, r1, r2 value.ListValue) error {
	result, err := it.RunSaved(p)
	if err != nil {
		return err
	}
	cond, err := popBool(result, "genrec")
	if err != nil {
		return err
	}
	if cond {
		return it.Run(t)
	}
	if err := it.Run(r1); err != nil {
		return err
	}
	recur := value.ListValue{Items: []value.Value{
		p, t, r1, r2, value.Intern("genrec"),
	}}
	it.Push(recur)
	return it.Run(r2)
}

// combCondlinrec implements `condlinrec`: a cond-like chain of
// [[B] [T]] (terminal) or [[B] [R1] [R2]] (recurse) clauses, with the
// final clause treated as the unconditional default.
func combCondlinrec(ev env.Evaluator) error {
	it := self(ev)
	clauses, err := it.quotationArg("condlinrec")
	if err != nil {
		return err
	}
	return runCondlinrec(it, clauses)
}

func runCondlinrec(it *Interpreter, clauses value.ListValue) error {
	for idx, c := range clauses.Items {
		clause, ok := c.(value.ListValue)
		if !ok {
			return diag.TypeErr("condlinrec", c, "LIST clause").WithStack(it.Stack())
		}
		isDefault := idx == len(clauses.Items)-1
		if isDefault {
			return runCondlinrecBody(it, clause, clauses)
		}
		if len(clause.Items) == 0 {
			return diag.Newf(diag.TypeError, "condlinrec clause must not be empty").WithStack(it.Stack())
		}
		b, ok := clause.Items[0].(value.ListValue)
		if !ok {
			return diag.TypeErr("condlinrec", clause.Items[0], "LIST predicate").WithStack(it.Stack())
		}
		result, err := it.RunSaved(b)
		if err != nil {
			return err
		}
		matched, err := popBool(result, "condlinrec")
		if err != nil {
			return err
		}
		if matched {
			return runCondlinrecBody(it, clause, clauses)
		}
	}
	return nil
}

// runCondlinrecBody executes one matched (or default) clause's body: a
// per-clause [[T]] terminal form executes T and stops; an [[R1] [R2]] form
// executes R1, recurses on the whole chain, then R2.
func runCondlinrecBody(it *Interpreter, clause value.ListValue, all value.ListValue) error {
	body := clause.Items[1:]
	if len(body) == 1 {
		t, ok := body[0].(value.ListValue)
		if !ok {
			return diag.TypeErr("condlinrec", body[0], "LIST body").WithStack(it.Stack())
		}
		return it.Run(t)
	}
	if len(body) != 2 {
		return diag.Newf(diag.TypeError, "condlinrec clause must have 1 or 2 bodies after the predicate").WithStack(it.Stack())
	}
	r1, ok := body[0].(value.ListValue)
	if !ok {
		return diag.TypeErr("condlinrec", body[0], "LIST R1").WithStack(it.Stack())
	}
	r2, ok := body[1].(value.ListValue)
	if !ok {
		return diag.TypeErr("condlinrec", body[1], "LIST R2").WithStack(it.Stack())
	}
	if err := it.Run(r1); err != nil {
		return err
	}
	if err := runCondlinrec(it, all); err != nil {
		return err
	}
	return it.Run(r2)
}

// combPrimrec implements `primrec`: `X [I] [C] -> R`.
func combPrimrec(ev env.Evaluator) error {
	it := self(ev)
	c, err := it.quotationArg("primrec")
	if err != nil {
		return err
	}
	i, err := it.quotationArg("primrec")
	if err != nil {
		return err
	}
	x, err := it.Pop()
	if err != nil {
		return err
	}
	return runPrimrec(it, x, i, c)
}

func runPrimrec(it *Interpreter, x value.Value, i, c value.ListValue) error {
	switch xv := x.(type) {
	case value.Integer:
		if xv.Val == 0 {
			return it.Run(i)
		}
		it.Push(x)
		if err := runPrimrec(it, value.Integer{Val: xv.Val - 1}, i, c); err != nil {
			return err
		}
		return it.Run(c)
	default:
		seq, ok := value.AsSequence(x)
		if !ok {
			return diag.TypeErr("primrec", x, "INTEGER or aggregate").WithStack(it.Stack())
		}
		if seq.Len() == 0 {
			return it.Run(i)
		}
		first := seq.ElemAt(0)
		rest := value.SeqToValue(seq.Slice(1, seq.Len()))
		it.Push(first)
		if err := runPrimrec(it, rest, i, c); err != nil {
			return err
		}
		return it.Run(c)
	}
}

// combInfra implements `infra`: `A [P] -> B`. It runs P with A (reversed
// to stack order) as the ambient stack, then repackages the result as an
// aggregate of A's kind.
func combInfra(ev env.Evaluator) error {
	it := self(ev)
	p, err := it.quotationArg("infra")
	if err != nil {
		return err
	}
	a, err := it.Pop()
	if err != nil {
		return err
	}
	seq, ok := value.AsSequence(a)
	if !ok {
		return diag.TypeErr("infra", a, "aggregate").WithStack(it.Stack())
	}
	tempStack := make([]value.Value, seq.Len())
	for i := 0; i < seq.Len(); i++ {
		tempStack[i] = seq.ElemAt(seq.Len() - 1 - i)
	}
	saved := it.Stack()
	it.SetStack(tempStack)
	err = it.Run(p)
	result := it.Stack()
	it.SetStack(saved)
	if err != nil {
		return err
	}
	items := make([]value.Value, len(result))
	for i, v := range result {
		items[len(result)-1-i] = v
	}
	like, _ := value.AsSequence(a)
	out := value.NewEmptySequence(like)
	for _, v := range items {
		out = value.AppendElem(out, v)
	}
	it.Push(value.SeqToValue(out))
	return nil
}

// combCleave implements `cleave`: `A [P1] [P2] -> R1 R2`. It applies P1
// and P2 each to (a copy of the stack with) A, collecting both tops: for
// example, `A [first] [rest] cleave cons` reconstructs A.
func combCleave(ev env.Evaluator) error {
	it := self(ev)
	p2, err := it.quotationArg("cleave")
	if err != nil {
		return err
	}
	p1, err := it.quotationArg("cleave")
	if err != nil {
		return err
	}
	a, err := it.Pop()
	if err != nil {
		return err
	}
	r1, err := applyOne(it, a, p1, "cleave")
	if err != nil {
		return err
	}
	r2, err := applyOne(it, a, p2, "cleave")
	if err != nil {
		return err
	}
	it.Push(r1)
	it.Push(r2)
	return nil
}

// applyOne pushes x onto a saved copy of the stack, runs p, and returns the
// new top: the shared "app1" shape that cleave, map, app1/app2/app11/app12
// and unary2-4 are built from (filter, split, some and all use
// predicateOne instead).
func applyOne(it *Interpreter, x value.Value, p value.ListValue, primitive string) (value.Value, error) {
	saved := it.Stack()
	it.SetStack(append(append([]value.Value(nil), saved...), x))
	err := it.Run(p)
	result := it.Stack()
	it.SetStack(saved)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, diag.StackUnderflowErr(primitive, 1, 0)
	}
	return result[len(result)-1], nil
}

// combDupd/combPopd/combSwapd implement the "...d" dip-once-beneath-the-top
// family alongside rollup/rolldown.
func combDupd(ev env.Evaluator) error {
	it := self(ev)
	top, err := it.Pop()
	if err != nil {
		return err
	}
	second, err := it.Pop()
	if err != nil {
		it.Push(top)
		return err
	}
	it.Push(second)
	it.Push(second)
	it.Push(top)
	return nil
}

func combPopd(ev env.Evaluator) error {
	it := self(ev)
	top, err := it.Pop()
	if err != nil {
		return err
	}
	if _, err := it.Pop(); err != nil {
		it.Push(top)
		return err
	}
	it.Push(top)
	return nil
}

func combSwapd(ev env.Evaluator) error {
	it := self(ev)
	top, err := it.Pop()
	if err != nil {
		return err
	}
	second, err := it.Pop()
	if err != nil {
		it.Push(top)
		return err
	}
	third, err := it.Pop()
	if err != nil {
		it.Push(second)
		it.Push(top)
		return err
	}
	it.Push(second)
	it.Push(third)
	it.Push(top)
	return nil
}

// registerCombinators installs every combinator primitive into e.
func registerCombinators(e *env.Environment) {
	e.DefinePrimitive("i", combI)
	e.DefinePrimitive("x", combX)
	e.DefinePrimitive("dip", combDip)
	e.DefinePrimitive("dipd", combDipd)
	e.DefinePrimitive("branch", combBranch)
	e.DefinePrimitive("ifte", combIfte)
	e.DefinePrimitive("cond", combCond)
	e.DefinePrimitive("while", combWhile)
	e.DefinePrimitive("times", combTimes)
	e.DefinePrimitive("linrec", combLinrec)
	e.DefinePrimitive("tailrec", combTailrec)
	e.DefinePrimitive("binrec", combBinrec)
	e.DefinePrimitive("genrec", combGenrec)
	e.DefinePrimitive("condlinrec", combCondlinrec)
	e.DefinePrimitive("condnestrec", combCondlinrec)
	e.DefinePrimitive("primrec", combPrimrec)
	e.DefinePrimitive("infra", combInfra)
	e.DefinePrimitive("cleave", combCleave)
	e.DefinePrimitive("dupd", combDupd)
	e.DefinePrimitive("popd", combPopd)
	e.DefinePrimitive("swapd", combSwapd)

	registerAggregateCombinators(e)
	registerArityCombinators(e)
}
