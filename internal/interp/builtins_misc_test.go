package interp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStackPrimitives(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []string
	}{
		{"swap", "1 2 swap.", []string{"2", "1"}},
		{"dup", "1 dup.", []string{"1", "1"}},
		{"pop", "1 2 pop.", []string{"1"}},
		{"id is a no-op", "1 id.", []string{"1"}},
		{"over", "1 2 over.", []string{"1", "2", "1"}},
		{"dup2", "1 2 dup2.", []string{"1", "2", "1", "2"}},
		{"rollup", "1 2 3 rollup.", []string{"3", "1", "2"}},
		{"rolldown", "1 2 3 rolldown.", []string{"2", "3", "1"}},
		{"rotate", "1 2 3 rotate.", []string{"3", "2", "1"}},
		{"rollupd", "1 2 3 4 rollupd.", []string{"3", "1", "2", "4"}},
		{"rolldownd", "1 2 3 4 rolldownd.", []string{"2", "3", "1", "4"}},
		{"rotated", "1 2 3 4 rotated.", []string{"3", "2", "1", "4"}},
		{"choice true", "true 1 2 choice.", []string{"1"}},
		{"choice false", "false 1 2 choice.", []string{"2"}},
		{"stack captures top first", "1 2 3 stack.", []string{"1", "2", "3", "[3 2 1]"}},
		{"stack then unstack round-trips", "1 2 3 stack unstack.", []string{"1", "2", "3"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, runStack(t, tc.src))
		})
	}
}

func TestArithPrimitives(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []string
	}{
		{"add", "2 3 +.", []string{"5"}},
		{"sub computes A-B", "10 3 -.", []string{"7"}},
		{"mul", "6 7 *.", []string{"42"}},
		{"exact int division stays integer", "6 3 /.", []string{"2"}},
		{"inexact int division promotes to float", "7 2 /.", []string{"3.5"}},
		{"div yields quotient and remainder", "7 2 div.", []string{"3", "1"}},
		{"rem", "7 2 rem.", []string{"1"}},
		{"neg", "5 neg.", []string{"-5"}},
		{"abs", "-5 abs.", []string{"5"}},
		{"sign of negative", "-5 sign.", []string{"-1"}},
		{"sign of zero", "0 sign.", []string{"0"}},
		{"pred", "5 pred.", []string{"4"}},
		{"succ", "5 succ.", []string{"6"}},
		{"max", "3 7 max.", []string{"7"}},
		{"min", "3 7 min.", []string{"3"}},
		{"comparisons", "3 7 < 7 3 > and.", []string{"true"}},
		{"equal", "3 3 =.", []string{"true"}},
		{"not equal", "3 4 <>.", []string{"true"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, runStack(t, tc.src))
		})
	}
}

func TestLogicPrimitives(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []string
	}{
		{"and on booleans", "true false and.", []string{"false"}},
		{"or on booleans", "true false or.", []string{"true"}},
		{"xor on booleans", "true true xor.", []string{"false"}},
		{"not on boolean", "true not.", []string{"false"}},
		{"and on sets intersects", "{1 3 5 7} {2 3 5 8} and.", []string{"{3 5}"}},
		{"or on sets unions", "{1 3 5 7} {2 3 5 8} or.", []string{"{1 2 3 5 7 8}"}},
		{"xor on identical sets is empty", "{1 3 5 7} {1 3 5 7} xor.", []string{"{}"}},
		{"not on a set complements to setsize", "{} not setsize.", []string{"{0 1 2 3 4 5 6 7 8 9 10 11 12 13 14 15 16 17 18 19 20 21 22 23 24 25 26 27 28 29 30 31 32 33 34 35 36 37 38 39 40 41 42 43 44 45 46 47 48 49 50 51 52 53 54 55 56 57 58 59 60 61 62 63}", "64"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, runStack(t, tc.src))
		})
	}
}

func TestPredicatePrimitives(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []string
	}{
		{"integer", "1 integer.", []string{"true"}},
		{"char", "'a char.", []string{"true"}},
		{"logical", "true logical.", []string{"true"}},
		{"set", "{1} set.", []string{"true"}},
		{"string", `"hi" string.`, []string{"true"}},
		{"list", "[1] list.", []string{"true"}},
		{"float", "1.5 float.", []string{"true"}},
		{"leaf is true for non-lists", "1 leaf.", []string{"true"}},
		{"leaf is false for lists", "[1] leaf.", []string{"false"}},
		{"user is false for a primitive", `"dup" intern user.`, []string{"false"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, runStack(t, tc.src))
		})
	}
}

func TestUserPredicateOnDefinedWord(t *testing.T) {
	got := runStack(t, "DEFINE foo == 1 END \"foo\" intern user.")
	require.Equal(t, []string{"true"}, got)
}

func TestConvPrimitives(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []string
	}{
		{"strtol parses base 10", `"123" 10 strtol.`, []string{"123"}},
		{"strtol parses a given base", `"ff" 16 strtol.`, []string{"255"}},
		{"strtod parses a float", `"1.5" strtod.`, []string{"1.5"}},
		{"format right-justifies", "123 5 format.", []string{`"  123"`}},
		{"formatf pads width and precision", "3.14159 8 2 formatf.", []string{`"    3.14"`}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, runStack(t, tc.src))
		})
	}
}

func TestCharAndSymbolPrimitives(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []string
	}{
		{"ord of a char", "'a ord.", []string{"97"}},
		{"chr of an integer", "97 chr.", []string{"'a"}},
		{"ord is a no-op on an integer", "97 ord.", []string{"97"}},
		{"name unwraps an interned symbol", `"foo" intern name.`, []string{`"foo"`}},
		{"name round-trips a different symbol", `"bar" intern name.`, []string{`"bar"`}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, runStack(t, tc.src))
		})
	}
}

func TestBodyReturnsUserDefinitionQuotation(t *testing.T) {
	got := runStack(t, `DEFINE foo == 1 2 + END "foo" intern body.`)
	require.Equal(t, []string{"[1 2 +]"}, got)
}
