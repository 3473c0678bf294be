package value_test

import (
	"testing"

	"github.com/go-joy/joy/internal/value"
)

func TestValueStringForms(t *testing.T) {
	tests := []struct {
		v    value.Value
		want string
	}{
		{value.NewBool(true), "true"},
		{value.NewBool(false), "false"},
		{value.Integer{Val: 42}, "42"},
		{value.FloatValue{Val: 1.5}, "1.5"},
		{value.FloatValue{Val: 2.0}, "2.0"},
		{value.String{Val: "hi"}, `"hi"`},
		{value.CharValue{Val: 'a'}, "'a"},
		{value.ListValue{Items: []value.Value{value.Integer{Val: 1}, value.Integer{Val: 2}}}, "[1 2]"},
		{value.EmptyList, "[]"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestSetOperations(t *testing.T) {
	s := value.SetValue{}.With(1).With(3).With(5)
	if !s.Has(3) || s.Has(2) {
		t.Fatalf("unexpected membership in %v", s)
	}
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	min, ok := s.Min()
	if !ok || min != 1 {
		t.Fatalf("Min() = %d,%v want 1,true", min, ok)
	}
	s2 := s.Without(1)
	if s2.Has(1) {
		t.Fatalf("Without did not remove member")
	}
}

func TestEqualStructural(t *testing.T) {
	a := value.ListValue{Items: []value.Value{value.Integer{Val: 1}, value.String{Val: "x"}}}
	b := value.ListValue{Items: []value.Value{value.Integer{Val: 1}, value.String{Val: "x"}}}
	c := value.ListValue{Items: []value.Value{value.Integer{Val: 1}, value.String{Val: "y"}}}
	if !value.Equal(a, b) {
		t.Error("expected a == b")
	}
	if value.Equal(a, c) {
		t.Error("expected a != c")
	}
}

func TestCompareMixedNumeric(t *testing.T) {
	c, ok := value.Compare(value.Integer{Val: 2}, value.FloatValue{Val: 2.5})
	if !ok || c != -1 {
		t.Fatalf("Compare(2, 2.5) = %d,%v want -1,true", c, ok)
	}
}

func TestCompareLists(t *testing.T) {
	a := value.ListValue{Items: []value.Value{value.Integer{Val: 1}, value.Integer{Val: 2}}}
	b := value.ListValue{Items: []value.Value{value.Integer{Val: 1}, value.Integer{Val: 3}}}
	c, ok := value.Compare(a, b)
	if !ok || c != -1 {
		t.Fatalf("Compare(a, b) = %d,%v want -1,true", c, ok)
	}
}

func TestCompareListsIncomparableElement(t *testing.T) {
	a := value.ListValue{Items: []value.Value{value.Intern("foo")}}
	b := value.ListValue{Items: []value.Value{value.NewBool(true)}}
	c, ok := value.Compare(a, b)
	if ok {
		t.Fatalf("Compare(a, b) = %d,%v want _,false for incomparable elements", c, ok)
	}
}

func TestCompareListsIncomparablePrefixIsNotSkipped(t *testing.T) {
	a := value.ListValue{Items: []value.Value{value.Intern("foo"), value.Integer{Val: 1}}}
	b := value.ListValue{Items: []value.Value{value.Intern("bar"), value.Integer{Val: 2}}}
	c, ok := value.Compare(a, b)
	if ok {
		t.Fatalf("Compare(a, b) = %d,%v want _,false once any position is incomparable", c, ok)
	}
}

func TestSequenceViewRoundTrip(t *testing.T) {
	s := value.String{Val: "abc"}
	seq, ok := value.AsSequence(s)
	if !ok {
		t.Fatal("expected string to be a Sequence")
	}
	if seq.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", seq.Len())
	}
	consed := seq.Cons(value.CharValue{Val: 'z'})
	if got := value.SeqToValue(consed).(value.String).Val; got != "zabc" {
		t.Errorf("Cons result = %q, want %q", got, "zabc")
	}
}
