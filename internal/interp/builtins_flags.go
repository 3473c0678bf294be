package interp

import (
	"github.com/go-joy/joy/internal/env"
	"github.com/go-joy/joy/internal/value"
)

// primSetautoput implements `setautoput`: `I -> `.
func primSetautoput(ev env.Evaluator) error {
	it := self(ev)
	n, err := popInt(it, "setautoput")
	if err != nil {
		return err
	}
	it.Env().AutoPut = n != 0
	return nil
}

// primSetundeferror implements `setundeferror`: `I -> `.
func primSetundeferror(ev env.Evaluator) error {
	it := self(ev)
	n, err := popInt(it, "setundeferror")
	if err != nil {
		return err
	}
	it.Env().UndefError = n != 0
	return nil
}

// primSetecho implements `setecho`: `I -> `, where I is 0, 1 or 2.
func primSetecho(ev env.Evaluator) error {
	it := self(ev)
	n, err := popInt(it, "setecho")
	if err != nil {
		return err
	}
	it.Env().Echo = int(n)
	return nil
}

func primAutoput(ev env.Evaluator) error {
	it := self(ev)
	it.Push(boolToInt(it.Env().AutoPut))
	return nil
}

func primUndeferror(ev env.Evaluator) error {
	it := self(ev)
	it.Push(boolToInt(it.Env().UndefError))
	return nil
}

func primEcho(ev env.Evaluator) error {
	it := self(ev)
	it.Push(value.Integer{Val: int64(it.Env().Echo)})
	return nil
}

func boolToInt(b bool) value.Integer {
	if b {
		return value.Integer{Val: 1}
	}
	return value.Integer{Val: 0}
}

func registerFlagPrimitives(e *env.Environment) {
	e.DefinePrimitive("setautoput", primSetautoput)
	e.DefinePrimitive("setundeferror", primSetundeferror)
	e.DefinePrimitive("setecho", primSetecho)
	e.DefinePrimitive("autoput", primAutoput)
	e.DefinePrimitive("undeferror", primUndeferror)
	e.DefinePrimitive("echo", primEcho)
}
