package env_test

import (
	"testing"

	"github.com/go-joy/joy/internal/env"
	"github.com/go-joy/joy/internal/value"
)

func TestDefineAndLookup(t *testing.T) {
	e := env.New()
	body := value.ListValue{Items: []value.Value{value.Integer{Val: 1}}}
	e.DefineUser("one", body)

	d, ok := e.Lookup("one")
	if !ok {
		t.Fatal("expected to find 'one'")
	}
	if !d.IsUser || d.Primitive != nil {
		t.Fatalf("unexpected definition: %+v", d)
	}
}

func TestRedefinitionReplaces(t *testing.T) {
	e := env.New()
	e.DefineUser("f", value.ListValue{Items: []value.Value{value.Integer{Val: 1}}})
	e.DefineUser("f", value.ListValue{Items: []value.Value{value.Integer{Val: 2}}})

	d, _ := e.Lookup("f")
	if len(d.Body.Items) != 1 || d.Body.Items[0].(value.Integer).Val != 2 {
		t.Fatalf("expected replaced body, got %+v", d.Body)
	}
}

func TestUndefinedLookup(t *testing.T) {
	e := env.New()
	if _, ok := e.Lookup("nope"); ok {
		t.Fatal("expected lookup to fail for unbound symbol")
	}
}

func TestIsPrimitive(t *testing.T) {
	e := env.New()
	e.DefinePrimitive("dup", func(ev env.Evaluator) error { return nil })
	e.DefineUser("user", value.ListValue{})

	if !e.IsPrimitive("dup") {
		t.Error("expected 'dup' to be a primitive")
	}
	if e.IsPrimitive("user") {
		t.Error("expected 'user' not to be a primitive")
	}
}

func TestFlagsDefaultToZero(t *testing.T) {
	e := env.New()
	if e.UndefError || e.AutoPut || e.Echo != 0 {
		t.Errorf("expected zero-value flags, got %+v %+v %d", e.UndefError, e.AutoPut, e.Echo)
	}
}

func TestSrandDeterminism(t *testing.T) {
	e1 := env.New()
	e2 := env.New()
	e1.Srand(42)
	e2.Srand(42)
	for i := 0; i < 5; i++ {
		if e1.NextRand() != e2.NextRand() {
			t.Fatal("expected identical sequences from identical seeds")
		}
	}
}
