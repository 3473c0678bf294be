package reader_test

import (
	"testing"

	"github.com/go-joy/joy/internal/reader"
	"github.com/go-joy/joy/internal/value"
)

func TestReadTermPhrase(t *testing.T) {
	r := reader.New("2 3 + .", "<test>")
	phrases, err := r.ReadProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(phrases) != 1 || phrases[0].IsDefinitions() {
		t.Fatalf("expected one term phrase, got %+v", phrases)
	}
	terms := phrases[0].Terms.Items
	if len(terms) != 3 {
		t.Fatalf("expected 3 terms, got %d: %v", len(terms), terms)
	}
	if terms[0].(value.Integer).Val != 2 {
		t.Errorf("terms[0] = %v", terms[0])
	}
}

func TestReadNestedQuotation(t *testing.T) {
	r := reader.New("[1 [2 3] 4] .", "<test>")
	phrases, err := r.ReadProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	terms := phrases[0].Terms.Items
	lst := terms[0].(value.ListValue)
	if len(lst.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(lst.Items))
	}
	inner, ok := lst.Items[1].(value.ListValue)
	if !ok || len(inner.Items) != 2 {
		t.Fatalf("expected nested list of 2, got %v", lst.Items[1])
	}
}

func TestReadSetLiteral(t *testing.T) {
	r := reader.New("{1 3 5 7} .", "<test>")
	phrases, _ := r.ReadProgram()
	s := phrases[0].Terms.Items[0].(value.SetValue)
	if !s.Has(3) || s.Has(2) {
		t.Fatalf("unexpected set contents: %v", s)
	}
}

func TestReadDefineBlock(t *testing.T) {
	src := "DEFINE sq == dup * ; cube == dup dup * * ; END"
	r := reader.New(src, "<test>")
	phrases, err := r.ReadProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(phrases) != 1 || !phrases[0].IsDefinitions() {
		t.Fatalf("expected one definition phrase, got %+v", phrases)
	}
	defs := phrases[0].Definitions
	if len(defs) != 2 || defs[0].Name != "sq" || defs[1].Name != "cube" {
		t.Fatalf("unexpected definitions: %+v", defs)
	}
	if len(defs[0].Body.Items) != 2 {
		t.Fatalf("sq body = %v, want 2 items", defs[0].Body.Items)
	}
}

func TestReadHideBlock(t *testing.T) {
	src := "DEFINE main == HIDE aux == 1 + IN 5 aux END END"
	r := reader.New(src, "<test>")
	phrases, err := r.ReadProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defs := phrases[0].Definitions
	names := map[string]bool{}
	for _, d := range defs {
		names[d.Name] = true
	}
	if !names["main"] || !names["aux"] {
		t.Fatalf("expected main and aux defined, got %+v", defs)
	}
}

func TestReadMalformedNumericLiteral(t *testing.T) {
	r := reader.New("3.14.15 .", "<test>")
	_, err := r.ReadProgram()
	if err == nil {
		t.Fatal("expected error for malformed numeric literal")
	}
}

func TestReadUnterminatedList(t *testing.T) {
	r := reader.New("[1 2 3", "<test>")
	_, err := r.ReadProgram()
	if err == nil {
		t.Fatal("expected error for unterminated list")
	}
}

func TestReadTransparentModuleMarker(t *testing.T) {
	r := reader.New("MODULE 2 3 + .", "<test>")
	phrases, err := r.ReadProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(phrases) != 1 || len(phrases[0].Terms.Items) != 3 {
		t.Fatalf("expected MODULE marker to be transparent, got %+v", phrases)
	}
}
