package interp

import (
	"github.com/go-joy/joy/internal/diag"
	"github.com/go-joy/joy/internal/env"
	"github.com/go-joy/joy/internal/value"
)

// primPut implements `put`: writes a value in its literal form.
func primPut(ev env.Evaluator) error {
	it := self(ev)
	v, err := it.Pop()
	if err != nil {
		return err
	}
	it.stdout.WriteString(v.String())
	return nil
}

// primPutch implements `putch`: `C -> `. It writes the raw character.
func primPutch(ev env.Evaluator) error {
	it := self(ev)
	v, err := it.Pop()
	if err != nil {
		return err
	}
	c, ok := v.(value.CharValue)
	if !ok {
		it.Push(v)
		return diag.TypeErr("putch", v, "CHAR").WithStack(it.Stack())
	}
	it.stdout.WriteByte(c.Val)
	return nil
}

// primPutchars implements `putchars`: `S -> `. It writes the raw string
// content, with no surrounding quotes, unlike `put`.
func primPutchars(ev env.Evaluator) error {
	it := self(ev)
	v, err := it.Pop()
	if err != nil {
		return err
	}
	s, ok := v.(value.String)
	if !ok {
		it.Push(v)
		return diag.TypeErr("putchars", v, "STRING").WithStack(it.Stack())
	}
	it.stdout.WriteString(s.Raw())
	return nil
}

// primNewline implements `.`/`newline`: emits one line terminator.
func primNewline(ev env.Evaluator) error {
	it := self(ev)
	it.stdout.WriteByte('\n')
	return nil
}

// primGet implements `get`: reads one top-level factor, any literal or
// identifier, from the current input.
func primGet(ev env.Evaluator) error {
	it := self(ev)
	it.ensureInputReader()
	v, done, err := it.inputReader.ReadOneFactor()
	if err != nil {
		return diag.Newf(diag.ParseError, "get: %v", err).WithStack(it.Stack())
	}
	if done {
		return diag.New(diag.FileError, "get: end of input").WithStack(it.Stack())
	}
	it.Push(v)
	return nil
}

func registerIOPrimitives(e *env.Environment) {
	e.DefinePrimitive("put", primPut)
	e.DefinePrimitive("putch", primPutch)
	e.DefinePrimitive("putchars", primPutchars)
	e.DefinePrimitive(".", primNewline)
	e.DefinePrimitive("newline", primNewline)
	e.DefinePrimitive("get", primGet)
}
