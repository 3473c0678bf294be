package interp

import (
	"github.com/go-joy/joy/internal/diag"
	"github.com/go-joy/joy/internal/env"
	"github.com/go-joy/joy/internal/value"
)

// numPair extracts two operands for a binary numeric primitive, promoting
// to float if either operand is a FLOAT.
type numPair struct {
	isFloat    bool
	ai, bi     int64
	af, bf     float64
}

func toNumPair(primitive string, a, b value.Value) (numPair, *diag.Diagnostic) {
	ai, aIsInt := a.(value.Integer)
	bi, bIsInt := b.(value.Integer)
	if aIsInt && bIsInt {
		return numPair{ai: ai.Val, bi: bi.Val}, nil
	}
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if !aok {
		return numPair{}, diag.TypeErr(primitive, a, "INTEGER or FLOAT")
	}
	if !bok {
		return numPair{}, diag.TypeErr(primitive, b, "INTEGER or FLOAT")
	}
	return numPair{isFloat: true, af: af, bf: bf}, nil
}

func asFloat(v value.Value) (float64, bool) {
	switch tv := v.(type) {
	case value.Integer:
		return float64(tv.Val), true
	case value.FloatValue:
		return tv.Val, true
	}
	return 0, false
}

func binNumeric(primitive string, ev env.Evaluator, intOp func(a, b int64) (value.Value, error), floatOp func(a, b float64) (value.Value, error)) error {
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
	pair, derr := toNumPair(primitive, a, b)
	if derr != nil {
		it.Push(a)
		it.Push(b)
		return derr.WithStack(it.Stack())
	}
	var result value.Value
	if pair.isFloat {
		result, err = floatOp(pair.af, pair.bf)
	} else {
		result, err = intOp(pair.ai, pair.bi)
	}
	if err != nil {
		it.Push(a)
		it.Push(b)
		return err
	}
	it.Push(result)
	return nil
}

func primAdd(ev env.Evaluator) error {
	return binNumeric("+", ev,
		func(a, b int64) (value.Value, error) { return value.Integer{Val: a + b}, nil },
		func(a, b float64) (value.Value, error) { return value.FloatValue{Val: a + b}, nil })
}

func primSub(ev env.Evaluator) error {
	return binNumeric("-", ev,
		func(a, b int64) (value.Value, error) { return value.Integer{Val: a - b}, nil },
		func(a, b float64) (value.Value, error) { return value.FloatValue{Val: a - b}, nil })
}

func primMul(ev env.Evaluator) error {
	return binNumeric("*", ev,
		func(a, b int64) (value.Value, error) { return value.Integer{Val: a * b}, nil },
		func(a, b float64) (value.Value, error) { return value.FloatValue{Val: a * b}, nil })
}

func primDiv(ev env.Evaluator) error {
	return binNumeric("/", ev,
		func(a, b int64) (value.Value, error) {
			if b == 0 {
				return nil, diag.New(diag.DomainError, "/ by zero")
			}
			if a%b == 0 {
				return value.Integer{Val: a / b}, nil
			}
			return value.FloatValue{Val: float64(a) / float64(b)}, nil
		},
		func(a, b float64) (value.Value, error) {
			if b == 0 {
				return nil, diag.New(diag.DomainError, "/ by zero")
			}
			return value.FloatValue{Val: a / b}, nil
		})
}

func primRem(ev env.Evaluator) error {
	return binNumeric("rem", ev,
		func(a, b int64) (value.Value, error) {
			if b == 0 {
				return nil, diag.New(diag.DomainError, "rem by zero")
			}
			return value.Integer{Val: a % b}, nil
		},
		func(a, b float64) (value.Value, error) {
			if b == 0 {
				return nil, diag.New(diag.DomainError, "rem by zero")
			}
			q := float64(int64(a / b))
			return value.FloatValue{Val: a - q*b}, nil
		})
}

// primDivMod implements `div`: `A B -> Q R`. It returns the integer
// quotient and remainder together, INTEGER-only.
func primDivMod(ev env.Evaluator) error {
	it := self(ev)
	b, err := popInt(it, "div")
	if err != nil {
		return err
	}
	a, err := popInt(it, "div")
	if err != nil {
		it.Push(value.Integer{Val: b})
		return err
	}
	if b == 0 {
		it.Push(value.Integer{Val: a})
		it.Push(value.Integer{Val: b})
		return diag.New(diag.DomainError, "div by zero").WithStack(it.Stack())
	}
	it.Push(value.Integer{Val: a / b})
	it.Push(value.Integer{Val: a % b})
	return nil
}

func primSign(ev env.Evaluator) error {
	it := self(ev)
	v, err := it.Pop()
	if err != nil {
		return err
	}
	switch tv := v.(type) {
	case value.Integer:
		switch {
		case tv.Val < 0:
			it.Push(value.Integer{Val: -1})
		case tv.Val > 0:
			it.Push(value.Integer{Val: 1})
		default:
			it.Push(value.Integer{Val: 0})
		}
	case value.FloatValue:
		switch {
		case tv.Val < 0:
			it.Push(value.FloatValue{Val: -1})
		case tv.Val > 0:
			it.Push(value.FloatValue{Val: 1})
		default:
			it.Push(value.FloatValue{Val: 0})
		}
	default:
		it.Push(v)
		return diag.TypeErr("sign", v, "INTEGER or FLOAT").WithStack(it.Stack())
	}
	return nil
}

func primNeg(ev env.Evaluator) error {
	it := self(ev)
	v, err := it.Pop()
	if err != nil {
		return err
	}
	switch tv := v.(type) {
	case value.Integer:
		it.Push(value.Integer{Val: -tv.Val})
	case value.FloatValue:
		it.Push(value.FloatValue{Val: -tv.Val})
	default:
		it.Push(v)
		return diag.TypeErr("neg", v, "INTEGER or FLOAT").WithStack(it.Stack())
	}
	return nil
}

func primAbs(ev env.Evaluator) error {
	it := self(ev)
	v, err := it.Pop()
	if err != nil {
		return err
	}
	switch tv := v.(type) {
	case value.Integer:
		if tv.Val < 0 {
			it.Push(value.Integer{Val: -tv.Val})
		} else {
			it.Push(tv)
		}
	case value.FloatValue:
		if tv.Val < 0 {
			it.Push(value.FloatValue{Val: -tv.Val})
		} else {
			it.Push(tv)
		}
	default:
		it.Push(v)
		return diag.TypeErr("abs", v, "INTEGER or FLOAT").WithStack(it.Stack())
	}
	return nil
}

func primPred(ev env.Evaluator) error {
	it := self(ev)
	v, err := it.Pop()
	if err != nil {
		return err
	}
	switch tv := v.(type) {
	case value.Integer:
		it.Push(value.Integer{Val: tv.Val - 1})
	case value.FloatValue:
		it.Push(value.FloatValue{Val: tv.Val - 1})
	default:
		it.Push(v)
		return diag.TypeErr("pred", v, "INTEGER or FLOAT").WithStack(it.Stack())
	}
	return nil
}

func primSucc(ev env.Evaluator) error {
	it := self(ev)
	v, err := it.Pop()
	if err != nil {
		return err
	}
	switch tv := v.(type) {
	case value.Integer:
		it.Push(value.Integer{Val: tv.Val + 1})
	case value.FloatValue:
		it.Push(value.FloatValue{Val: tv.Val + 1})
	default:
		it.Push(v)
		return diag.TypeErr("succ", v, "INTEGER or FLOAT").WithStack(it.Stack())
	}
	return nil
}

func primMax(ev env.Evaluator) error {
	return binNumeric("max", ev,
		func(a, b int64) (value.Value, error) {
			if a > b {
				return value.Integer{Val: a}, nil
			}
			return value.Integer{Val: b}, nil
		},
		func(a, b float64) (value.Value, error) {
			if a > b {
				return value.FloatValue{Val: a}, nil
			}
			return value.FloatValue{Val: b}, nil
		})
}

func primMin(ev env.Evaluator) error {
	return binNumeric("min", ev,
		func(a, b int64) (value.Value, error) {
			if a < b {
				return value.Integer{Val: a}, nil
			}
			return value.Integer{Val: b}, nil
		},
		func(a, b float64) (value.Value, error) {
			if a < b {
				return value.FloatValue{Val: a}, nil
			}
			return value.FloatValue{Val: b}, nil
		})
}

// relational implements the six comparison primitives, accepting mixed
// numerics and same-kind char or string operands.
func relational(primitive string, ev env.Evaluator, keep func(c int, ok bool) bool) error {
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
	c, ok := value.Compare(a, b)
	if !ok {
		it.Push(a)
		it.Push(b)
		return diag.Newf(diag.TypeError, "%s: cannot compare %s and %s", primitive, a.Kind(), b.Kind()).WithStack(it.Stack())
	}
	it.Push(value.NewBool(keep(c, ok)))
	return nil
}

func primLt(ev env.Evaluator) error {
	return relational("<", ev, func(c int, ok bool) bool { return c < 0 })
}
func primGt(ev env.Evaluator) error {
	return relational(">", ev, func(c int, ok bool) bool { return c > 0 })
}
func primLe(ev env.Evaluator) error {
	return relational("<=", ev, func(c int, ok bool) bool { return c <= 0 })
}
func primGe(ev env.Evaluator) error {
	return relational(">=", ev, func(c int, ok bool) bool { return c >= 0 })
}

// primEq implements `=`: recursive structural equality, delegating to the
// same logic as `equal`.
func primEq(ev env.Evaluator) error {
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
	it.Push(value.NewBool(value.Equal(a, b)))
	return nil
}

// primNe implements `<>`/`!=`.
func primNe(ev env.Evaluator) error {
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
	it.Push(value.NewBool(!value.Equal(a, b)))
	return nil
}

func registerArithPrimitives(e *env.Environment) {
	e.DefinePrimitive("+", primAdd)
	e.DefinePrimitive("-", primSub)
	e.DefinePrimitive("*", primMul)
	e.DefinePrimitive("/", primDiv)
	e.DefinePrimitive("rem", primRem)
	e.DefinePrimitive("div", primDivMod)
	e.DefinePrimitive("sign", primSign)
	e.DefinePrimitive("neg", primNeg)
	e.DefinePrimitive("abs", primAbs)
	e.DefinePrimitive("pred", primPred)
	e.DefinePrimitive("succ", primSucc)
	e.DefinePrimitive("max", primMax)
	e.DefinePrimitive("min", primMin)
	e.DefinePrimitive("<", primLt)
	e.DefinePrimitive(">", primGt)
	e.DefinePrimitive("<=", primLe)
	e.DefinePrimitive(">=", primGe)
	e.DefinePrimitive("=", primEq)
	e.DefinePrimitive("<>", primNe)
	e.DefinePrimitive("!=", primNe)
}
