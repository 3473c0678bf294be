// Package interp is the Joy evaluator: the stack machine, the dispatch of
// symbols to primitives or user bodies, and the execution of combinators.
// The primitive library itself lives alongside it in the builtins_*.go
// files, split one file per concern: arithmetic, stack shuffling, strings,
// I/O, and so on.
package interp

import (
	"bufio"
	"io"
	"os"

	"github.com/go-joy/joy/internal/diag"
	"github.com/go-joy/joy/internal/env"
	"github.com/go-joy/joy/internal/reader"
	"github.com/go-joy/joy/internal/token"
	"github.com/go-joy/joy/internal/value"
)

// Interpreter is the Joy stack machine: one stack, one environment, one
// set of global flags, executed synchronously.
type Interpreter struct {
	environment *env.Environment
	stack       []value.Value

	stdout *bufio.Writer
	stdin  *bufio.Reader

	stdoutFile *value.File
	stderrFile *value.File
	stdinFile  *value.File

	// currentPos/currentPrimitive feed diagnostics; they track the token
	// that is about to be dispatched, not a full call stack.
	currentPos       token.Position
	currentPrimitive string

	includeDir func(name string) (string, error) // set by the CLI layer; nil disables `include`
	args       []string                          // program arguments exposed via `argv`/`argc`

	// inputReader backs the `get` primitive, which reads one top-level
	// factor: built lazily on first use by draining stdin, since the reader
	// works over a complete in-memory token stream rather than an
	// incremental one.
	inputReader *reader.Reader
}

// ensureInputReader lazily materializes inputReader from whatever remains
// of stdin.
func (it *Interpreter) ensureInputReader() {
	if it.inputReader != nil {
		return
	}
	data, _ := io.ReadAll(it.stdin)
	it.inputReader = reader.New(string(data), "<stdin>")
}

// Option configures an Interpreter at construction time.
type Option func(*Interpreter)

// WithOutput redirects stdout (used by the fixture tests to capture
// output).
func WithOutput(w io.Writer) Option {
	return func(it *Interpreter) { it.stdout = bufio.NewWriter(w) }
}

// WithInput redirects stdin (for example to feed `get`/`fgets stdin`).
func WithInput(r io.Reader) Option {
	return func(it *Interpreter) { it.stdin = bufio.NewReader(r) }
}

// WithIncludeResolver installs the function `include` uses to turn a
// program-supplied path into readable source text. The CLI wires this to
// an os.ReadFile-backed resolver with search-path support; without it,
// `include` reports a FileError.
func WithIncludeResolver(read func(name string) (string, error)) Option {
	return func(it *Interpreter) { it.includeDir = read }
}

// WithArgs exposes program arguments via the `argv`/`argc` primitives.
func WithArgs(args []string) Option {
	return func(it *Interpreter) { it.args = args }
}

// New creates an Interpreter with all ~200 primitives installed and the
// handful of library-defined user words (like `reverse`) pre-loaded.
func New(opts ...Option) *Interpreter {
	it := &Interpreter{
		environment: env.New(),
		stdout:      bufio.NewWriter(os.Stdout),
		stdin:       bufio.NewReader(os.Stdin),
	}
	for _, opt := range opts {
		opt(it)
	}
	it.stdoutFile = &value.File{Name: "stdout", Handle: it.stdout}
	it.stderrFile = &value.File{Name: "stderr", Handle: os.Stderr}
	it.stdinFile = &value.File{Name: "stdin", Handle: it.stdin}

	registerPrimitives(it.environment)
	loadLibraryWords(it.environment)
	return it
}

// Env returns the interpreter's environment, satisfying env.Evaluator.
func (it *Interpreter) Env() *env.Environment { return it.environment }

// Push places v on top of the stack.
func (it *Interpreter) Push(v value.Value) { it.stack = append(it.stack, v) }

// Pop removes and returns the top of the stack, or a StackUnderflow
// diagnostic if empty.
func (it *Interpreter) Pop() (value.Value, error) {
	if len(it.stack) == 0 {
		return nil, it.underflow(1, 0)
	}
	v := it.stack[len(it.stack)-1]
	it.stack = it.stack[:len(it.stack)-1]
	return v, nil
}

// Peek returns the top of the stack without removing it.
func (it *Interpreter) Peek() (value.Value, error) {
	if len(it.stack) == 0 {
		return nil, it.underflow(1, 0)
	}
	return it.stack[len(it.stack)-1], nil
}

// Stack returns the live stack slice, bottom first. Primitives that need a
// *copy* for stack-save semantics must clone it themselves; Stack never
// clones.
func (it *Interpreter) Stack() []value.Value { return it.stack }

// SetStack replaces the live stack wholesale (used by combinators that
// restore a saved copy, and by arity combinators that splice in a single
// result).
func (it *Interpreter) SetStack(s []value.Value) { it.stack = s }

// CloneStack returns an independent copy of the current stack, for the
// stack-save semantics combinators: ifte, cond, while, map, filter, split,
// some, all, nullary, unary, binary, ternary, condlinrec.
func (it *Interpreter) CloneStack() []value.Value {
	return append([]value.Value(nil), it.stack...)
}

func (it *Interpreter) underflow(need, have int) error {
	name := it.currentPrimitive
	if name == "" {
		name = "?"
	}
	return diag.StackUnderflowErr(name, need, have).WithPos(it.currentPos).WithStack(it.stack)
}

// frame is one pending term sequence in the explicit continuation stack
// that backs Run. Replacing the top frame instead of pushing a new one
// when about to execute the last element of a sequence gives tail-call
// behavior for chains of user-word invocations without growing Go's call
// stack.
type frame struct {
	items []value.Value
	idx   int
}

// Run executes prog against the live stack. Combinators that need to
// evaluate a quotation, including against a saved copy of the stack, call
// Run recursively; only chains of plain user-word calls benefit from the
// tail-call flattening performed here.
func (it *Interpreter) Run(prog value.ListValue) error {
	frames := []frame{{items: prog.Items}}
	for len(frames) > 0 {
		top := len(frames) - 1
		f := &frames[top]
		if f.idx >= len(f.items) {
			frames = frames[:top]
			continue
		}
		term := f.items[f.idx]
		isLast := f.idx == len(f.items)-1
		f.idx++

		sym, ok := term.(value.Symbol)
		if !ok {
			it.Push(term)
			continue
		}

		def, ok := it.environment.Lookup(sym.Name)
		if !ok {
			if it.environment.UndefError {
				return diag.UndefinedSymbolErr(sym.Name).WithPos(it.currentPos).WithStack(it.stack)
			}
			continue
		}

		if def.Primitive != nil {
			prevPrim, prevPos := it.currentPrimitive, it.currentPos
			it.currentPrimitive = sym.Name
			err := def.Primitive(it)
			it.currentPrimitive, it.currentPos = prevPrim, prevPos
			if err != nil {
				return err
			}
			continue
		}

		// User body: tail call. Replace the current frame if this was its
		// last term, otherwise push a new one.
		if isLast {
			frames[top] = frame{items: def.Body.Items}
		} else {
			frames = append(frames, frame{items: def.Body.Items})
		}
	}
	return nil
}

// RunSaved evaluates prog against a private copy of the stack and returns
// that copy's final state without touching the live stack: the stack-save
// semantics required for predicates in ifte, cond, while, map, filter,
// split and the arity combinators.
func (it *Interpreter) RunSaved(prog value.ListValue) ([]value.Value, error) {
	saved := it.stack
	it.stack = append([]value.Value(nil), saved...)
	err := it.Run(prog)
	result := it.stack
	it.stack = saved
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RunPhrase executes one reader.Phrase: installing definitions, or
// evaluating a term sequence against the live stack and honoring the
// autoput/echo flags. This is the unit the CLI and `include` both operate
// on.
func (it *Interpreter) RunPhrase(p reader.Phrase) error {
	if p.IsDefinitions() {
		for _, d := range p.Definitions {
			it.environment.DefineUser(d.Name, d.Body)
		}
		return nil
	}
	if err := it.Run(p.Terms); err != nil {
		return err
	}
	if it.environment.AutoPut {
		if v, err := it.Peek(); err == nil {
			it.stdout.WriteString(v.String())
			it.stdout.WriteByte('\n')
		}
	}
	if it.environment.Echo >= 2 {
		it.stdout.WriteString(stackEcho(it.stack))
		it.stdout.WriteByte('\n')
	}
	return nil
}

// stackEcho renders the live stack, bottom to top, for the echo>=2
// "show the stack" behavior: the stack is not shown automatically unless
// the echo flag is 2 or higher.
func stackEcho(stack []value.Value) string {
	parts := make([]string, len(stack))
	for i, v := range stack {
		parts[i] = v.String()
	}
	out := "["
	for i, p := range parts {
		if i > 0 {
			out += " "
		}
		out += p
	}
	return out + "]"
}

// RunSource parses src in full and executes each phrase in order, stopping
// at and returning the first error. This is the pipeline `include`
// re-enters against the same environment and stack.
func (it *Interpreter) RunSource(src, filename string) error {
	r := reader.New(src, filename)
	phrases, rerr := r.ReadProgram()
	if rerr != nil {
		return diag.Newf(diag.ParseError, "%v", rerr)
	}
	for _, p := range phrases {
		if err := it.RunPhrase(p); err != nil {
			return err
		}
	}
	return nil
}

// RunTopLevel is the top-level evaluation loop: it reads every phrase of
// src in turn and executes it, reporting every error except QuitRequested
// and proceeding to the next phrase. This is what the REPL prompt and file
// execution both are: thin wrappers around this loop.
//
// It returns non-nil only when a QuitRequested diagnostic is seen, so the
// caller can terminate the process with the requested exit code.
func (it *Interpreter) RunTopLevel(src, filename string, report func(error)) error {
	r := reader.New(src, filename)
	phrases, rerr := r.ReadProgram()
	if rerr != nil {
		report(diag.Newf(diag.ParseError, "%v", rerr))
	}
	for _, p := range phrases {
		if err := it.RunPhrase(p); err != nil {
			if _, ok := diag.IsQuit(err); ok {
				return err
			}
			report(err)
			continue
		}
	}
	return nil
}

// Flush flushes buffered stdout; callers should call this after each
// top-level phrase or before the process exits.
func (it *Interpreter) Flush() { it.stdout.Flush() }

// quotationArg pops a value expected to be a LIST used as a quotation and
// returns it, or a TypeError if the top is not a list.
func (it *Interpreter) quotationArg(primitive string) (value.ListValue, error) {
	v, err := it.Pop()
	if err != nil {
		return value.ListValue{}, err
	}
	lst, ok := v.(value.ListValue)
	if !ok {
		return value.ListValue{}, diag.TypeErr(primitive, v, "LIST (quotation)").WithStack(it.stack)
	}
	return lst, nil
}

// popBool is the common "evaluate predicate, inspect result" tail used by
// every stack-save combinator.
func popBool(stack []value.Value, primitive string) (bool, error) {
	if len(stack) == 0 {
		return false, diag.StackUnderflowErr(primitive, 1, 0)
	}
	top := stack[len(stack)-1]
	b, ok := top.(value.Boolean)
	if !ok {
		return false, diag.TypeErr(primitive, top, "BOOLEAN")
	}
	return b.Val, nil
}
