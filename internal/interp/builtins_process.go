package interp

import (
	"os"
	"os/exec"

	"github.com/go-joy/joy/internal/diag"
	"github.com/go-joy/joy/internal/env"
	"github.com/go-joy/joy/internal/value"
)

// primSystem implements `system`: `"cmd" -> I`. It runs a shell command
// and pushes its exit code.
func primSystem(ev env.Evaluator) error {
	it := self(ev)
	v, err := it.Pop()
	if err != nil {
		return err
	}
	s, ok := v.(value.String)
	if !ok {
		it.Push(v)
		return diag.TypeErr("system", v, "STRING").WithStack(it.Stack())
	}
	cmd := exec.Command("/bin/sh", "-c", s.Val)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	code := 0
	if runErr := cmd.Run(); runErr != nil {
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			code = exitErr.ExitCode()
		} else {
			code = -1
		}
	}
	it.Push(value.Integer{Val: int64(code)})
	return nil
}

// primGetenv implements `getenv`: `"NAME" -> "value"`, empty string if
// unset. Process environment variables are only ever visible through this
// primitive.
func primGetenv(ev env.Evaluator) error {
	it := self(ev)
	v, err := it.Pop()
	if err != nil {
		return err
	}
	s, ok := v.(value.String)
	if !ok {
		it.Push(v)
		return diag.TypeErr("getenv", v, "STRING").WithStack(it.Stack())
	}
	it.Push(value.String{Val: os.Getenv(s.Val)})
	return nil
}

// primArgv implements `argv`: `-> [args...]`.
func primArgv(ev env.Evaluator) error {
	it := self(ev)
	items := make([]value.Value, len(it.args))
	for i, a := range it.args {
		items[i] = value.String{Val: a}
	}
	it.Push(value.ListValue{Items: items})
	return nil
}

// primArgc implements `argc`: `-> I`.
func primArgc(ev env.Evaluator) error {
	it := self(ev)
	it.Push(value.Integer{Val: int64(len(it.args))})
	return nil
}

// primInclude implements `include`: `"path" -> `. It re-enters the
// reader/evaluator pipeline for the named file against the same
// environment and stack.
func primInclude(ev env.Evaluator) error {
	it := self(ev)
	v, err := it.Pop()
	if err != nil {
		return err
	}
	s, ok := v.(value.String)
	if !ok {
		it.Push(v)
		return diag.TypeErr("include", v, "STRING").WithStack(it.Stack())
	}
	if it.includeDir == nil {
		it.Push(v)
		return diag.Newf(diag.FileError, "include: not available in this context").WithStack(it.Stack())
	}
	src, rerr := it.includeDir(s.Val)
	if rerr != nil {
		it.Push(v)
		return diag.New(diag.FileError, "include: "+rerr.Error()).WithCause(rerr).WithStack(it.Stack())
	}
	return it.RunSource(src, s.Val)
}

// primAbort implements `abort`: raising an error whose message is empty.
func primAbort(env.Evaluator) error {
	return diag.Abort()
}

// primQuit implements `quit`: `Code -> `. It terminates the process.
func primQuit(ev env.Evaluator) error {
	it := self(ev)
	code := 0
	if v, err := it.Pop(); err == nil {
		if n, ok := v.(value.Integer); ok {
			code = int(n.Val)
		} else {
			it.Push(v)
		}
	}
	return diag.Quit(code)
}

func registerProcessPrimitives(e *env.Environment) {
	e.DefinePrimitive("system", primSystem)
	e.DefinePrimitive("getenv", primGetenv)
	e.DefinePrimitive("argv", primArgv)
	e.DefinePrimitive("argc", primArgc)
	e.DefinePrimitive("include", primInclude)
	e.DefinePrimitive("abort", primAbort)
	e.DefinePrimitive("quit", primQuit)
}
