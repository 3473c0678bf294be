package interp

import (
	"math"

	"github.com/go-joy/joy/internal/diag"
	"github.com/go-joy/joy/internal/env"
	"github.com/go-joy/joy/internal/value"
)

// floatUnary wraps a 1-argument math.Something function as a primitive
// accepting INTEGER or FLOAT and always returning FLOAT.
func floatUnary(primitive string, fn func(float64) float64) func(env.Evaluator) error {
	return func(ev env.Evaluator) error {
		it := self(ev)
		v, err := it.Pop()
		if err != nil {
			return err
		}
		f, ok := asFloat(v)
		if !ok {
			it.Push(v)
			return diag.TypeErr(primitive, v, "INTEGER or FLOAT").WithStack(it.Stack())
		}
		it.Push(value.FloatValue{Val: fn(f)})
		return nil
	}
}

func floatBinary(primitive string, fn func(float64, float64) float64) func(env.Evaluator) error {
	return func(ev env.Evaluator) error {
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
		af, aok := asFloat(a)
		bf, bok := asFloat(b)
		if !aok || !bok {
			bad := a
			if aok {
				bad = b
			}
			it.Push(a)
			it.Push(b)
			return diag.TypeErr(primitive, bad, "INTEGER or FLOAT").WithStack(it.Stack())
		}
		it.Push(value.FloatValue{Val: fn(af, bf)})
		return nil
	}
}

// primFrexp implements `frexp`: `F -> Mantissa Exponent`.
func primFrexp(ev env.Evaluator) error {
	it := self(ev)
	v, err := it.Pop()
	if err != nil {
		return err
	}
	f, ok := asFloat(v)
	if !ok {
		it.Push(v)
		return diag.TypeErr("frexp", v, "INTEGER or FLOAT").WithStack(it.Stack())
	}
	frac, exp := math.Frexp(f)
	it.Push(value.FloatValue{Val: frac})
	it.Push(value.Integer{Val: int64(exp)})
	return nil
}

// primLdexp implements `ldexp`: `Frac Exp -> F`.
func primLdexp(ev env.Evaluator) error {
	it := self(ev)
	exp, err := popInt(it, "ldexp")
	if err != nil {
		return err
	}
	fracV, err := it.Pop()
	if err != nil {
		it.Push(value.Integer{Val: exp})
		return err
	}
	frac, ok := asFloat(fracV)
	if !ok {
		it.Push(fracV)
		it.Push(value.Integer{Val: exp})
		return diag.TypeErr("ldexp", fracV, "INTEGER or FLOAT").WithStack(it.Stack())
	}
	it.Push(value.FloatValue{Val: math.Ldexp(frac, int(exp))})
	return nil
}

// primModf implements `modf`: `F -> IntPart FracPart`.
func primModf(ev env.Evaluator) error {
	it := self(ev)
	v, err := it.Pop()
	if err != nil {
		return err
	}
	f, ok := asFloat(v)
	if !ok {
		it.Push(v)
		return diag.TypeErr("modf", v, "INTEGER or FLOAT").WithStack(it.Stack())
	}
	ip, fp := math.Modf(f)
	it.Push(value.FloatValue{Val: ip})
	it.Push(value.FloatValue{Val: fp})
	return nil
}

func registerFloatPrimitives(e *env.Environment) {
	e.DefinePrimitive("sin", floatUnary("sin", math.Sin))
	e.DefinePrimitive("cos", floatUnary("cos", math.Cos))
	e.DefinePrimitive("tan", floatUnary("tan", math.Tan))
	e.DefinePrimitive("asin", floatUnary("asin", math.Asin))
	e.DefinePrimitive("acos", floatUnary("acos", math.Acos))
	e.DefinePrimitive("atan", floatUnary("atan", math.Atan))
	e.DefinePrimitive("atan2", floatBinary("atan2", math.Atan2))
	e.DefinePrimitive("exp", floatUnary("exp", math.Exp))
	e.DefinePrimitive("log", floatUnary("log", math.Log))
	e.DefinePrimitive("log10", floatUnary("log10", math.Log10))
	e.DefinePrimitive("pow", floatBinary("pow", math.Pow))
	e.DefinePrimitive("sqrt", floatUnary("sqrt", math.Sqrt))
	e.DefinePrimitive("floor", floatUnary("floor", math.Floor))
	e.DefinePrimitive("ceil", floatUnary("ceil", math.Ceil))
	e.DefinePrimitive("trunc", floatUnary("trunc", math.Trunc))
	e.DefinePrimitive("sinh", floatUnary("sinh", math.Sinh))
	e.DefinePrimitive("cosh", floatUnary("cosh", math.Cosh))
	e.DefinePrimitive("tanh", floatUnary("tanh", math.Tanh))
	e.DefinePrimitive("frexp", primFrexp)
	e.DefinePrimitive("ldexp", primLdexp)
	e.DefinePrimitive("modf", primModf)
}
