// Package diag classifies and formats Joy evaluation errors: turning an
// internal failure into a single-line, source-positioned diagnostic the
// CLI prints.
package diag

import (
	"errors"
	"fmt"

	"github.com/go-joy/joy/internal/token"
	"github.com/go-joy/joy/internal/value"
	pkgerrors "github.com/pkg/errors"
)

// Kind classifies a Joy evaluation error.
type Kind string

// The closed set of error kinds a Joy evaluation can raise.
const (
	ParseError      Kind = "ParseError"
	StackUnderflow  Kind = "StackUnderflow"
	TypeError       Kind = "TypeError"
	UndefinedSymbol Kind = "UndefinedSymbol"
	DomainError     Kind = "DomainError"
	FileError       Kind = "FileError"
	AbortRequested  Kind = "AbortRequested"
	QuitRequested   Kind = "QuitRequested"
)

// maxStackSnapshot bounds how many top-of-stack tags a Diagnostic records.
const maxStackSnapshot = 8

// Diagnostic is a classified Joy error. It carries the error kind, the
// triggering primitive or combinator name, a source position when known,
// and a bounded tag-only snapshot of the stack at the point of failure.
type Diagnostic struct {
	DiagKind  Kind
	Detail    string
	Primitive string
	Pos       token.Position
	HasPos    bool
	StackTags []value.Kind
	ExitCode  int // meaningful only for QuitRequested
	cause     error
}

// Error implements the error interface so Diagnostic can flow through
// ordinary Go error returns.
func (d *Diagnostic) Error() string { return d.Format() }

// Unwrap exposes an underlying cause (e.g. an *os.PathError wrapped by a
// file primitive) for errors.As/errors.Is.
func (d *Diagnostic) Unwrap() error { return d.cause }

// Format renders the single-line diagnostic shape:
// "error: <kind>: <detail> (at <file>:<line>)". When no position is known
// the "(at ...)" suffix is omitted.
func (d *Diagnostic) Format() string {
	if !d.HasPos {
		return fmt.Sprintf("error: %s: %s", d.DiagKind, d.Detail)
	}
	return fmt.Sprintf("error: %s: %s (at %s)", d.DiagKind, d.Detail, d.Pos)
}

// New builds a Diagnostic with no position information.
func New(kind Kind, detail string) *Diagnostic {
	return &Diagnostic{DiagKind: kind, Detail: detail}
}

// Newf is New with Printf-style formatting.
func Newf(kind Kind, format string, args ...any) *Diagnostic {
	return New(kind, fmt.Sprintf(format, args...))
}

// WithPos attaches a source position.
func (d *Diagnostic) WithPos(pos token.Position) *Diagnostic {
	d.Pos = pos
	d.HasPos = true
	return d
}

// WithPrimitive records which primitive or combinator raised the error.
func (d *Diagnostic) WithPrimitive(name string) *Diagnostic {
	d.Primitive = name
	return d
}

// WithStack snapshots the tags (not the values) of the top of stack, most
// recent last, bounded to maxStackSnapshot entries.
func (d *Diagnostic) WithStack(stack []value.Value) *Diagnostic {
	n := len(stack)
	start := 0
	if n > maxStackSnapshot {
		start = n - maxStackSnapshot
	}
	tags := make([]value.Kind, 0, n-start)
	for _, v := range stack[start:] {
		tags = append(tags, v.Kind())
	}
	d.StackTags = tags
	return d
}

// WithCause wraps an underlying error (e.g. from the os package) using
// github.com/pkg/errors so the full cause chain survives for debugging,
// while Diagnostic.Error() still reports the single-line, user-facing
// form.
func (d *Diagnostic) WithCause(err error) *Diagnostic {
	d.cause = pkgerrors.WithStack(err)
	return d
}

// StackUnderflowErr builds the standard "needs K items but fewer are
// present" diagnostic.
func StackUnderflowErr(primitive string, need, have int) *Diagnostic {
	return Newf(StackUnderflow, "%s needs %d argument(s), found %d", primitive, need, have).WithPrimitive(primitive)
}

// TypeErr builds the standard "top-of-stack values do not match" diagnostic,
// naming the primitive and the actual top-of-stack tag.
func TypeErr(primitive string, got value.Value, want string) *Diagnostic {
	return Newf(TypeError, "%s expects %s, got %s", primitive, want, got.Kind()).WithPrimitive(primitive)
}

// UndefinedSymbolErr builds the diagnostic raised when undeferror=1 and a
// symbol resolves to nothing.
func UndefinedSymbolErr(name string) *Diagnostic {
	return Newf(UndefinedSymbol, "undefined symbol: %s", name)
}

// Abort is the sentinel AbortRequested diagnostic: executing `abort` is
// equivalent to raising an error whose message is empty.
func Abort() *Diagnostic {
	return New(AbortRequested, "")
}

// Quit is the sentinel QuitRequested diagnostic carrying the process exit
// code.
func Quit(code int) *Diagnostic {
	return &Diagnostic{DiagKind: QuitRequested, ExitCode: code}
}

// IsQuit reports whether err is (or wraps) a QuitRequested diagnostic, and
// returns its exit code.
func IsQuit(err error) (int, bool) {
	var d *Diagnostic
	if errors.As(err, &d) && d.DiagKind == QuitRequested {
		return d.ExitCode, true
	}
	return 0, false
}
