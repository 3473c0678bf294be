package interp

import (
	"github.com/go-joy/joy/internal/diag"
	"github.com/go-joy/joy/internal/env"
	"github.com/go-joy/joy/internal/value"
)

// primOrd implements `ord`: `C -> I` (also accepts an already-INTEGER
// operand as a no-op convenience, since `ord`/`chr` round-trip through
// small integers in the upstream library).
func primOrd(ev env.Evaluator) error {
	it := self(ev)
	v, err := it.Pop()
	if err != nil {
		return err
	}
	switch tv := v.(type) {
	case value.CharValue:
		it.Push(value.Integer{Val: int64(tv.Val)})
	case value.Integer:
		it.Push(tv)
	default:
		it.Push(v)
		return diag.TypeErr("ord", v, "CHAR").WithStack(it.Stack())
	}
	return nil
}

// primChr implements `chr`: `I -> C`.
func primChr(ev env.Evaluator) error {
	it := self(ev)
	n, err := popInt(it, "chr")
	if err != nil {
		return err
	}
	if n < 0 || n > 255 {
		return diag.Newf(diag.DomainError, "chr: %d out of CHAR range", n).WithStack(it.Stack())
	}
	it.Push(value.CharValue{Val: byte(n)})
	return nil
}

func registerCharPrimitives(e *env.Environment) {
	e.DefinePrimitive("ord", primOrd)
	e.DefinePrimitive("chr", primChr)
}
