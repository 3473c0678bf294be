package interp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-joy/joy/internal/diag"
	"github.com/go-joy/joy/internal/env"
	"github.com/go-joy/joy/internal/value"
)

// primStrtol implements `strtol`: `"123" Base -> I`.
func primStrtol(ev env.Evaluator) error {
	it := self(ev)
	base, err := popInt(it, "strtol")
	if err != nil {
		return err
	}
	v, err := it.Pop()
	if err != nil {
		it.Push(value.Integer{Val: base})
		return err
	}
	s, ok := v.(value.String)
	if !ok {
		it.Push(v)
		it.Push(value.Integer{Val: base})
		return diag.TypeErr("strtol", v, "STRING").WithStack(it.Stack())
	}
	n, perr := strconv.ParseInt(strings.TrimSpace(s.Val), int(base), 64)
	if perr != nil {
		it.Push(s)
		it.Push(value.Integer{Val: base})
		return diag.Newf(diag.DomainError, "strtol: cannot parse %q", s.Val).WithStack(it.Stack())
	}
	it.Push(value.Integer{Val: n})
	return nil
}

// primStrtod implements `strtod`: `"1.5" -> F`.
func primStrtod(ev env.Evaluator) error {
	it := self(ev)
	v, err := it.Pop()
	if err != nil {
		return err
	}
	s, ok := v.(value.String)
	if !ok {
		it.Push(v)
		return diag.TypeErr("strtod", v, "STRING").WithStack(it.Stack())
	}
	f, perr := strconv.ParseFloat(strings.TrimSpace(s.Val), 64)
	if perr != nil {
		it.Push(s)
		return diag.Newf(diag.DomainError, "strtod: cannot parse %q", s.Val).WithStack(it.Stack())
	}
	it.Push(value.FloatValue{Val: f})
	return nil
}

// primFormat implements `format`: `I Width -> "padded"`. It right-justifies
// an INTEGER's decimal rendering to Width columns.
func primFormat(ev env.Evaluator) error {
	it := self(ev)
	width, err := popInt(it, "format")
	if err != nil {
		return err
	}
	v, err := it.Pop()
	if err != nil {
		it.Push(value.Integer{Val: width})
		return err
	}
	n, ok := v.(value.Integer)
	if !ok {
		it.Push(v)
		it.Push(value.Integer{Val: width})
		return diag.TypeErr("format", v, "INTEGER").WithStack(it.Stack())
	}
	it.Push(value.String{Val: fmt.Sprintf("%*d", width, n.Val)})
	return nil
}

// primFormatf implements `formatf`: `F Width Prec -> "padded"`.
func primFormatf(ev env.Evaluator) error {
	it := self(ev)
	prec, err := popInt(it, "formatf")
	if err != nil {
		return err
	}
	width, err := popInt(it, "formatf")
	if err != nil {
		it.Push(value.Integer{Val: prec})
		return err
	}
	v, err := it.Pop()
	if err != nil {
		it.Push(value.Integer{Val: width})
		it.Push(value.Integer{Val: prec})
		return err
	}
	f, ok := asFloat(v)
	if !ok {
		it.Push(v)
		it.Push(value.Integer{Val: width})
		it.Push(value.Integer{Val: prec})
		return diag.TypeErr("formatf", v, "INTEGER or FLOAT").WithStack(it.Stack())
	}
	it.Push(value.String{Val: fmt.Sprintf("%*.*f", width, prec, f)})
	return nil
}

func registerConvPrimitives(e *env.Environment) {
	e.DefinePrimitive("strtol", primStrtol)
	e.DefinePrimitive("strtod", primStrtod)
	e.DefinePrimitive("format", primFormat)
	e.DefinePrimitive("formatf", primFormatf)
}
