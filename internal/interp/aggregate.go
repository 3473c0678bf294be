package interp

import (
	"strings"

	"github.com/go-joy/joy/internal/diag"
	"github.com/go-joy/joy/internal/env"
	"github.com/go-joy/joy/internal/value"
)

// aggKind names the three aggregate shapes step/map/fold/filter/split treat
// uniformly: lists, strings and sets.
type aggKind int

const (
	aggList aggKind = iota
	aggString
	aggSet
)

// aggElements returns the ordered elements of an aggregate value (ascending
// integer order for sets) and its kind, or false if v is not an aggregate.
func aggElements(v value.Value) ([]value.Value, aggKind, bool) {
	switch tv := v.(type) {
	case value.ListValue:
		return tv.Items, aggList, true
	case value.String:
		elems := make([]value.Value, len(tv.Val))
		for i := 0; i < len(tv.Val); i++ {
			elems[i] = value.CharValue{Val: tv.Val[i]}
		}
		return elems, aggString, true
	case value.SetValue:
		var elems []value.Value
		for i := 0; i < value.SetSize; i++ {
			if tv.Has(i) {
				elems = append(elems, value.Integer{Val: int64(i)})
			}
		}
		return elems, aggSet, true
	}
	return nil, 0, false
}

// aggBuilder accumulates a result aggregate of one fixed kind, used by
// map/filter/split to build a new aggregate of the same kind as the input.
type aggBuilder struct {
	kind  aggKind
	items []value.Value
	str   strings.Builder
	set   value.SetValue
}

func newAggBuilder(kind aggKind) *aggBuilder { return &aggBuilder{kind: kind} }

func (b *aggBuilder) add(primitive string, v value.Value) error {
	switch b.kind {
	case aggList:
		b.items = append(b.items, v)
	case aggString:
		c, ok := v.(value.CharValue)
		if !ok {
			return diag.TypeErr(primitive, v, "CHAR")
		}
		b.str.WriteByte(c.Val)
	case aggSet:
		n, ok := v.(value.Integer)
		if !ok {
			return diag.TypeErr(primitive, v, "INTEGER")
		}
		if n.Val < 0 || n.Val >= value.SetSize {
			return diag.Newf(diag.DomainError, "%s: set member %d out of range", primitive, n.Val)
		}
		b.set = b.set.With(int(n.Val))
	}
	return nil
}

func (b *aggBuilder) value() value.Value {
	switch b.kind {
	case aggList:
		return value.ListValue{Items: b.items}
	case aggString:
		return value.String{Val: b.str.String()}
	case aggSet:
		return b.set
	}
	panic("interp: unknown aggregate kind")
}

// primStep implements `step`: `A [P] -> ...`.
func primStep(ev env.Evaluator) error {
	it := self(ev)
	p, err := it.quotationArg("step")
	if err != nil {
		return err
	}
	a, err := it.Pop()
	if err != nil {
		return err
	}
	elems, _, ok := aggElements(a)
	if !ok {
		return diag.TypeErr("step", a, "aggregate").WithStack(it.Stack())
	}
	for _, e := range elems {
		it.Push(e)
		if err := it.Run(p); err != nil {
			return err
		}
	}
	return nil
}

// primMap implements `map`: `A [P] -> B`.
func primMap(ev env.Evaluator) error {
	it := self(ev)
	p, err := it.quotationArg("map")
	if err != nil {
		return err
	}
	a, err := it.Pop()
	if err != nil {
		return err
	}
	elems, kind, ok := aggElements(a)
	if !ok {
		return diag.TypeErr("map", a, "aggregate").WithStack(it.Stack())
	}
	out := newAggBuilder(kind)
	for _, e := range elems {
		top, err := applyOne(it, e, p, "map")
		if err != nil {
			return err
		}
		if err := out.add("map", top); err != nil {
			return err
		}
	}
	it.Push(out.value())
	return nil
}

// primFold implements `fold`: `A V0 [P] -> V`.
func primFold(ev env.Evaluator) error {
	it := self(ev)
	p, err := it.quotationArg("fold")
	if err != nil {
		return err
	}
	v0, err := it.Pop()
	if err != nil {
		return err
	}
	a, err := it.Pop()
	if err != nil {
		return err
	}
	elems, _, ok := aggElements(a)
	if !ok {
		return diag.TypeErr("fold", a, "aggregate").WithStack(it.Stack())
	}
	it.Push(v0)
	for _, e := range elems {
		it.Push(e)
		if err := it.Run(p); err != nil {
			return err
		}
	}
	return nil
}

// primFilter implements `filter`: `A [P] -> B`. It keeps the elements whose
// predicate is true.
func primFilter(ev env.Evaluator) error {
	it := self(ev)
	p, err := it.quotationArg("filter")
	if err != nil {
		return err
	}
	a, err := it.Pop()
	if err != nil {
		return err
	}
	elems, kind, ok := aggElements(a)
	if !ok {
		return diag.TypeErr("filter", a, "aggregate").WithStack(it.Stack())
	}
	out := newAggBuilder(kind)
	for _, e := range elems {
		keep, err := predicateOne(it, e, p, "filter")
		if err != nil {
			return err
		}
		if keep {
			if err := out.add("filter", e); err != nil {
				return err
			}
		}
	}
	it.Push(out.value())
	return nil
}

// primSplit implements `split`: `A [P] -> Kept Rejected`.
func primSplit(ev env.Evaluator) error {
	it := self(ev)
	p, err := it.quotationArg("split")
	if err != nil {
		return err
	}
	a, err := it.Pop()
	if err != nil {
		return err
	}
	elems, kind, ok := aggElements(a)
	if !ok {
		return diag.TypeErr("split", a, "aggregate").WithStack(it.Stack())
	}
	kept := newAggBuilder(kind)
	rejected := newAggBuilder(kind)
	for _, e := range elems {
		ok, err := predicateOne(it, e, p, "split")
		if err != nil {
			return err
		}
		if ok {
			if err := kept.add("split", e); err != nil {
				return err
			}
		} else {
			if err := rejected.add("split", e); err != nil {
				return err
			}
		}
	}
	it.Push(kept.value())
	it.Push(rejected.value())
	return nil
}

// primSome implements `some`: `A [P] -> BOOLEAN`. True if P holds for any
// element.
func primSome(ev env.Evaluator) error {
	return aggQuantifier(ev, "some", false)
}

// primAll implements `all`: `A [P] -> BOOLEAN`. True if P holds for every
// element.
func primAll(ev env.Evaluator) error {
	return aggQuantifier(ev, "all", true)
}

func aggQuantifier(ev env.Evaluator, primitive string, wantAll bool) error {
	it := self(ev)
	p, err := it.quotationArg(primitive)
	if err != nil {
		return err
	}
	a, err := it.Pop()
	if err != nil {
		return err
	}
	elems, _, ok := aggElements(a)
	if !ok {
		return diag.TypeErr(primitive, a, "aggregate").WithStack(it.Stack())
	}
	result := wantAll
	for _, e := range elems {
		v, err := predicateOne(it, e, p, primitive)
		if err != nil {
			return err
		}
		if wantAll && !v {
			result = false
			break
		}
		if !wantAll && v {
			result = true
			break
		}
	}
	it.Push(value.NewBool(result))
	return nil
}

// predicateOne applies a predicate to x against a saved stack copy, the
// stack-save semantics map/filter/split/some/all all share, and returns the
// resulting boolean top.
func predicateOne(it *Interpreter, x value.Value, p value.ListValue, primitive string) (bool, error) {
	saved := it.Stack()
	it.SetStack(append(append([]value.Value(nil), saved...), x))
	err := it.Run(p)
	result := it.Stack()
	it.SetStack(saved)
	if err != nil {
		return false, err
	}
	return popBool(result, primitive)
}

func aggSize(v value.Value) (int, bool) {
	elems, _, ok := aggElements(v)
	if !ok {
		return 0, false
	}
	return len(elems), true
}

// primSize implements `size`.
func primSize(ev env.Evaluator) error {
	it := self(ev)
	a, err := it.Pop()
	if err != nil {
		return err
	}
	n, ok := aggSize(a)
	if !ok {
		return diag.TypeErr("size", a, "aggregate").WithStack(it.Stack())
	}
	it.Push(value.Integer{Val: int64(n)})
	return nil
}

// primNull implements `null`: true if the aggregate (or integer zero) is
// empty/zero.
func primNull(ev env.Evaluator) error {
	it := self(ev)
	v, err := it.Pop()
	if err != nil {
		return err
	}
	switch tv := v.(type) {
	case value.Integer:
		it.Push(value.NewBool(tv.Val == 0))
	default:
		n, ok := aggSize(v)
		if !ok {
			return diag.TypeErr("null", v, "aggregate or INTEGER").WithStack(it.Stack())
		}
		it.Push(value.NewBool(n == 0))
	}
	return nil
}

// primSmall implements `small`: true if the aggregate has 0 or 1 members
// (the upstream manual's sense of "small enough to recurse no further").
func primSmall(ev env.Evaluator) error {
	it := self(ev)
	v, err := it.Pop()
	if err != nil {
		return err
	}
	n, ok := aggSize(v)
	if !ok {
		return diag.TypeErr("small", v, "aggregate").WithStack(it.Stack())
	}
	it.Push(value.NewBool(n <= 1))
	return nil
}

// primCons implements `cons`: `X A -> A'`. It prepends X to A, or for a
// set, adds X as a member.
func primCons(ev env.Evaluator) error {
	it := self(ev)
	a, err := it.Pop()
	if err != nil {
		return err
	}
	x, err := it.Pop()
	if err != nil {
		return err
	}
	result, err := consInto(x, a)
	if err != nil {
		return err
	}
	it.Push(result)
	return nil
}

func consInto(x, a value.Value) (value.Value, error) {
	if set, ok := a.(value.SetValue); ok {
		n, ok := x.(value.Integer)
		if !ok {
			return nil, diag.TypeErr("cons", x, "INTEGER")
		}
		if n.Val < 0 || n.Val >= value.SetSize {
			return nil, diag.Newf(diag.DomainError, "cons: set member %d out of range", n.Val)
		}
		return set.With(int(n.Val)), nil
	}
	seq, ok := value.AsSequence(a)
	if !ok {
		return nil, diag.TypeErr("cons", a, "LIST, STRING or SET")
	}
	if _, isChar := x.(value.CharValue); seq.Kind() == value.Str && !isChar {
		return nil, diag.TypeErr("cons", x, "CHAR")
	}
	result := seq.Cons(x)
	return value.SeqToValue(result), nil
}

// primSwons implements `swons`: `A X -> A'`. Cons with arguments swapped.
func primSwons(ev env.Evaluator) error {
	it := self(ev)
	x, err := it.Pop()
	if err != nil {
		return err
	}
	a, err := it.Pop()
	if err != nil {
		return err
	}
	result, err := consInto(x, a)
	if err != nil {
		return err
	}
	it.Push(result)
	return nil
}

// primFirst implements `first`: minimum member for sets, head element for
// sequences.
func primFirst(ev env.Evaluator) error {
	it := self(ev)
	a, err := it.Pop()
	if err != nil {
		return err
	}
	if set, ok := a.(value.SetValue); ok {
		n, ok := set.Min()
		if !ok {
			return diag.Newf(diag.DomainError, "first: empty set").WithStack(it.Stack())
		}
		it.Push(value.Integer{Val: int64(n)})
		return nil
	}
	seq, ok := value.AsSequence(a)
	if !ok {
		return diag.TypeErr("first", a, "aggregate").WithStack(it.Stack())
	}
	if seq.Len() == 0 {
		return diag.Newf(diag.DomainError, "first: empty %s", a.Kind()).WithStack(it.Stack())
	}
	it.Push(seq.ElemAt(0))
	return nil
}

// primRest implements `rest`: remove the minimum member for sets, drop the
// head element for sequences.
func primRest(ev env.Evaluator) error {
	it := self(ev)
	a, err := it.Pop()
	if err != nil {
		return err
	}
	if set, ok := a.(value.SetValue); ok {
		n, ok := set.Min()
		if !ok {
			return diag.Newf(diag.DomainError, "rest: empty set").WithStack(it.Stack())
		}
		it.Push(set.Without(n))
		return nil
	}
	seq, ok := value.AsSequence(a)
	if !ok {
		return diag.TypeErr("rest", a, "aggregate").WithStack(it.Stack())
	}
	if seq.Len() == 0 {
		return diag.Newf(diag.DomainError, "rest: empty %s", a.Kind()).WithStack(it.Stack())
	}
	it.Push(value.SeqToValue(seq.Slice(1, seq.Len())))
	return nil
}

// primUncons implements `uncons`: `A -> First Rest`.
func primUncons(ev env.Evaluator) error {
	it := self(ev)
	a, err := it.Peek()
	if err != nil {
		return err
	}
	if err := primFirst(it); err != nil {
		return err
	}
	first, _ := it.Pop()
	it.Push(a)
	if err := primRest(it); err != nil {
		return err
	}
	rest, _ := it.Pop()
	it.Push(first)
	it.Push(rest)
	return nil
}

// primUnswons implements `unswons`: `A -> Rest First`.
func primUnswons(ev env.Evaluator) error {
	it := self(ev)
	if err := primUncons(it); err != nil {
		return err
	}
	rest, _ := it.Pop()
	first, _ := it.Pop()
	it.Push(rest)
	it.Push(first)
	return nil
}

// primConcat implements `concat`: `A B -> C`. It appends sequences and
// unions sets.
func primConcat(ev env.Evaluator) error {
	it := self(ev)
	b, err := it.Pop()
	if err != nil {
		return err
	}
	a, err := it.Pop()
	if err != nil {
		return err
	}
	if setA, ok := a.(value.SetValue); ok {
		setB, ok := b.(value.SetValue)
		if !ok {
			return diag.TypeErr("concat", b, "SET").WithStack(it.Stack())
		}
		it.Push(value.SetValue{Bits: setA.Bits | setB.Bits})
		return nil
	}
	seqA, ok := value.AsSequence(a)
	if !ok {
		return diag.TypeErr("concat", a, "LIST or STRING").WithStack(it.Stack())
	}
	seqB, ok := value.AsSequence(b)
	if !ok || seqB.Kind() != seqA.Kind() {
		return diag.TypeErr("concat", b, a.Kind().String()).WithStack(it.Stack())
	}
	result := value.Sequence(seqA)
	for i := 0; i < seqB.Len(); i++ {
		result = value.AppendElem(result, seqB.ElemAt(i))
	}
	it.Push(value.SeqToValue(result))
	return nil
}

// primEnconcat implements `enconcat`: `X A B -> C`. It conses X onto A then
// concats the result with B.
func primEnconcat(ev env.Evaluator) error {
	it := self(ev)
	b, err := it.Pop()
	if err != nil {
		return err
	}
	a, err := it.Pop()
	if err != nil {
		return err
	}
	x, err := it.Pop()
	if err != nil {
		return err
	}
	a2, err := consInto(x, a)
	if err != nil {
		return err
	}
	it.Push(a2)
	it.Push(b)
	return primConcat(it)
}

// primAt implements `at`: `A I -> X`.
func primAt(ev env.Evaluator) error {
	it := self(ev)
	i, err := popInt(it, "at")
	if err != nil {
		return err
	}
	a, err := it.Pop()
	if err != nil {
		return err
	}
	x, err := elemAt(a, i, "at")
	if err != nil {
		return err
	}
	it.Push(x)
	return nil
}

// primOf implements `of`: `I A -> X` (swapped args of `at`).
func primOf(ev env.Evaluator) error {
	it := self(ev)
	a, err := it.Pop()
	if err != nil {
		return err
	}
	i, err := popInt(it, "of")
	if err != nil {
		return err
	}
	x, err := elemAt(a, i, "of")
	if err != nil {
		return err
	}
	it.Push(x)
	return nil
}

func elemAt(a value.Value, i int64, primitive string) (value.Value, error) {
	elems, _, ok := aggElements(a)
	if !ok {
		return nil, diag.TypeErr(primitive, a, "aggregate")
	}
	if i < 0 || int(i) >= len(elems) {
		return nil, diag.Newf(diag.DomainError, "%s: index %d out of range (size %d)", primitive, i, len(elems))
	}
	return elems[i], nil
}

// primDrop implements `drop`: `A N -> A'`. It drops the first N elements.
func primDrop(ev env.Evaluator) error {
	it := self(ev)
	n, err := popInt(it, "drop")
	if err != nil {
		return err
	}
	a, err := it.Pop()
	if err != nil {
		return err
	}
	seq, ok := value.AsSequence(a)
	if !ok {
		return diag.TypeErr("drop", a, "LIST or STRING").WithStack(it.Stack())
	}
	if n < 0 || int(n) > seq.Len() {
		return diag.Newf(diag.DomainError, "drop: N %d out of range (size %d)", n, seq.Len())
	}
	it.Push(value.SeqToValue(seq.Slice(int(n), seq.Len())))
	return nil
}

// primTake implements `take`: `A N -> A'`. It keeps the first N elements.
func primTake(ev env.Evaluator) error {
	it := self(ev)
	n, err := popInt(it, "take")
	if err != nil {
		return err
	}
	a, err := it.Pop()
	if err != nil {
		return err
	}
	seq, ok := value.AsSequence(a)
	if !ok {
		return diag.TypeErr("take", a, "LIST or STRING").WithStack(it.Stack())
	}
	if n < 0 || int(n) > seq.Len() {
		return diag.Newf(diag.DomainError, "take: N %d out of range (size %d)", n, seq.Len())
	}
	it.Push(value.SeqToValue(seq.Slice(0, int(n))))
	return nil
}

// primCompare implements `compare`: `A B -> -1|0|1`.
func primCompare(ev env.Evaluator) error {
	it := self(ev)
	b, err := it.Pop()
	if err != nil {
		return err
	}
	a, err := it.Pop()
	if err != nil {
		return err
	}
	c, ok := value.Compare(a, b)
	if !ok {
		return diag.Newf(diag.TypeError, "compare: incomparable %s and %s", a.Kind(), b.Kind()).WithStack(it.Stack())
	}
	it.Push(value.Integer{Val: int64(c)})
	return nil
}

// primEqual implements `equal`: recursive structural equality.
func primEqual(ev env.Evaluator) error {
	it := self(ev)
	b, err := it.Pop()
	if err != nil {
		return err
	}
	a, err := it.Pop()
	if err != nil {
		return err
	}
	it.Push(value.NewBool(value.Equal(a, b)))
	return nil
}

// primHas implements `has`: `A X -> BOOLEAN`.
func primHas(ev env.Evaluator) error {
	it := self(ev)
	x, err := it.Pop()
	if err != nil {
		return err
	}
	a, err := it.Pop()
	if err != nil {
		return err
	}
	ok, err := aggHas(a, x)
	if err != nil {
		return err
	}
	it.Push(value.NewBool(ok))
	return nil
}

// primIn implements `in`: `X A -> BOOLEAN` (swapped args of `has`).
func primIn(ev env.Evaluator) error {
	it := self(ev)
	a, err := it.Pop()
	if err != nil {
		return err
	}
	x, err := it.Pop()
	if err != nil {
		return err
	}
	ok, err := aggHas(a, x)
	if err != nil {
		return err
	}
	it.Push(value.NewBool(ok))
	return nil
}

func aggHas(a, x value.Value) (bool, error) {
	if set, ok := a.(value.SetValue); ok {
		n, ok := x.(value.Integer)
		if !ok {
			return false, diag.TypeErr("has", x, "INTEGER")
		}
		return set.Has(int(n.Val)), nil
	}
	elems, _, ok := aggElements(a)
	if !ok {
		return false, diag.TypeErr("has", a, "aggregate")
	}
	for _, e := range elems {
		if value.Equal(e, x) {
			return true, nil
		}
	}
	return false, nil
}

func registerAggregates(e *env.Environment) {
	e.DefinePrimitive("step", primStep)
	e.DefinePrimitive("map", primMap)
	e.DefinePrimitive("fold", primFold)
	e.DefinePrimitive("filter", primFilter)
	e.DefinePrimitive("split", primSplit)
	e.DefinePrimitive("some", primSome)
	e.DefinePrimitive("all", primAll)
	e.DefinePrimitive("size", primSize)
	e.DefinePrimitive("null", primNull)
	e.DefinePrimitive("small", primSmall)
	e.DefinePrimitive("cons", primCons)
	e.DefinePrimitive("swons", primSwons)
	e.DefinePrimitive("first", primFirst)
	e.DefinePrimitive("rest", primRest)
	e.DefinePrimitive("uncons", primUncons)
	e.DefinePrimitive("unswons", primUnswons)
	e.DefinePrimitive("concat", primConcat)
	e.DefinePrimitive("enconcat", primEnconcat)
	e.DefinePrimitive("at", primAt)
	e.DefinePrimitive("of", primOf)
	e.DefinePrimitive("drop", primDrop)
	e.DefinePrimitive("take", primTake)
	e.DefinePrimitive("compare", primCompare)
	e.DefinePrimitive("equal", primEqual)
	e.DefinePrimitive("has", primHas)
	e.DefinePrimitive("in", primIn)
}
