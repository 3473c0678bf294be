// Package joy is a small public facade over internal/interp: it lets a
// host Go program embed the Joy core (construct an interpreter, feed it
// source, inspect flags) without reaching into internal packages.
package joy

import (
	"io"

	"github.com/go-joy/joy/internal/diag"
	"github.com/go-joy/joy/internal/interp"
)

// Engine wraps an Interpreter for external embedding.
type Engine struct {
	it *interp.Interpreter
}

// Option configures an Engine at construction time.
type Option = interp.Option

// WithOutput redirects the engine's stdout.
func WithOutput(w io.Writer) Option { return interp.WithOutput(w) }

// WithInput redirects the engine's stdin (backs `get`/`fgets stdin`).
func WithInput(r io.Reader) Option { return interp.WithInput(r) }

// WithIncludeResolver installs the resolver `include` uses to turn a
// program-supplied path into source text.
func WithIncludeResolver(read func(name string) (string, error)) Option {
	return interp.WithIncludeResolver(read)
}

// WithArgs exposes program arguments via `argv`/`argc`.
func WithArgs(args []string) Option { return interp.WithArgs(args) }

// New builds an Engine with the full primitive library installed.
func New(opts ...Option) *Engine {
	return &Engine{it: interp.New(opts...)}
}

// Run parses and executes src as a sequence of top-level phrases against
// the engine's live stack and environment, stopping at the first error.
// filename is cosmetic and appears in diagnostics. Prefer RunTopLevel for
// REPL/CLI-style execution where later phrases should still run after an
// earlier one fails.
func (e *Engine) Run(src, filename string) error {
	err := e.it.RunSource(src, filename)
	e.it.Flush()
	return err
}

// RunTopLevel executes src phrase by phrase, invoking report for every
// non-fatal diagnostic and continuing to the next phrase. It returns
// non-nil only when the program executed `quit`.
func (e *Engine) RunTopLevel(src, filename string, report func(error)) error {
	err := e.it.RunTopLevel(src, filename, report)
	e.it.Flush()
	return err
}

// ExitCode extracts the exit code a QuitRequested error carries (the
// argument given to `quit`) and reports true; for any other error,
// including parse and runtime errors, it returns 0 and false.
func ExitCode(err error) (int, bool) { return diag.IsQuit(err) }

// SetUndefError toggles the undeferror flag before running a program, the
// programmatic equivalent of `1 setundeferror`.
func (e *Engine) SetUndefError(v bool) { e.it.Env().UndefError = v }

// SetAutoPut toggles the autoput flag.
func (e *Engine) SetAutoPut(v bool) { e.it.Env().AutoPut = v }

// SetEcho sets the echo level: 0, 1 or 2.
func (e *Engine) SetEcho(v int) { e.it.Env().Echo = v }
