package diag_test

import (
	"errors"
	"os"
	"testing"

	"github.com/go-joy/joy/internal/diag"
	"github.com/go-joy/joy/internal/token"
	"github.com/go-joy/joy/internal/value"
)

func TestFormatWithoutPosition(t *testing.T) {
	d := diag.New(diag.DomainError, "division by zero")
	want := "error: DomainError: division by zero"
	if got := d.Format(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatWithPosition(t *testing.T) {
	d := diag.New(diag.TypeError, "+ expects INTEGER").WithPos(token.Position{File: "a.joy", Line: 3, Column: 5})
	want := "error: TypeError: + expects INTEGER (at a.joy:3:5)"
	if got := d.Format(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestStackUnderflowMessage(t *testing.T) {
	d := diag.StackUnderflowErr("dup", 1, 0)
	if d.DiagKind != diag.StackUnderflow {
		t.Fatalf("wrong kind: %s", d.DiagKind)
	}
	if d.Primitive != "dup" {
		t.Errorf("primitive = %q", d.Primitive)
	}
}

func TestTypeErrUsesActualKind(t *testing.T) {
	d := diag.TypeErr("+", value.String{Val: "x"}, "INTEGER or FLOAT")
	if d.DiagKind != diag.TypeError {
		t.Fatalf("wrong kind")
	}
	want := "error: TypeError: + expects INTEGER or FLOAT, got STRING"
	if got := d.Format(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestStackSnapshotIsBounded(t *testing.T) {
	var stack []value.Value
	for i := 0; i < 20; i++ {
		stack = append(stack, value.Integer{Val: int64(i)})
	}
	d := diag.New(diag.TypeError, "x").WithStack(stack)
	if len(d.StackTags) != 8 {
		t.Fatalf("expected bounded snapshot of 8, got %d", len(d.StackTags))
	}
}

func TestAbortHasEmptyDetail(t *testing.T) {
	d := diag.Abort()
	if d.DiagKind != diag.AbortRequested || d.Detail != "" {
		t.Fatalf("unexpected abort diagnostic: %+v", d)
	}
}

func TestQuitRoundTrip(t *testing.T) {
	err := error(diag.Quit(3))
	code, ok := diag.IsQuit(err)
	if !ok || code != 3 {
		t.Fatalf("IsQuit = %d,%v want 3,true", code, ok)
	}
}

func TestNotQuit(t *testing.T) {
	if _, ok := diag.IsQuit(diag.New(diag.DomainError, "x")); ok {
		t.Fatal("expected non-quit diagnostic to report ok=false")
	}
}

func TestWithCausePreservesUnwrap(t *testing.T) {
	underlying := &os.PathError{Op: "open", Path: "missing.txt", Err: os.ErrNotExist}
	d := diag.New(diag.FileError, "cannot open").WithCause(underlying)
	if !errors.Is(d, underlying) && errors.Unwrap(d) == nil {
		t.Fatal("expected cause chain to be preserved")
	}
}
