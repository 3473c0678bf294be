package interp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// runStack parses and executes src against a fresh Interpreter and returns
// the literal-form rendering of the final stack, bottom to top.
func runStack(t *testing.T, src string) []string {
	t.Helper()
	it := New()
	err := it.RunSource(src, "<test>")
	require.NoError(t, err, "unexpected error running %q", src)
	stack := it.Stack()
	out := make([]string, len(stack))
	for i, v := range stack {
		out[i] = v.String()
	}
	return out
}

func TestCombinators_Recursive(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "i evaluates quotation",
			src:  "1 [2 +] i.",
			want: []string{"3"},
		},
		{
			name: "x dup-i's the quotation without consuming it",
			src:  "[dup] x pop.",
			want: []string{"[dup]"},
		},
		{
			name: "dip restores the dipped value on top",
			src:  "1 2 [3 +] dip.",
			want: []string{"4", "2"},
		},
		{
			name: "ifte saves the stack across the predicate",
			src:  "500 [1000 >] [2 /] [3 *] ifte.",
			want: []string{"1500"},
		},
		{
			name: "linrec flattens a list of lists",
			src:  "[[1 2] [3] [4 5 6]] [null] [] [uncons] [concat] linrec.",
			want: []string{"[1 2 3 4 5 6]"},
		},
		{
			name: "tailrec counts down to zero without growing host depth",
			src:  "200000 [0 =] [] [1 -] tailrec.",
			want: []string{"0"},
		},
		{
			name: "primrec computes factorial",
			src:  "5 [1] [*] primrec.",
			want: []string{"120"},
		},
		{
			name: "genrec computes factorial via self-reference",
			src:  "5 [null] [pop 1] [dup pred] [i *] genrec.",
			want: []string{"120"},
		},
		{
			name: "binrec takes the base-case branch on a small aggregate",
			src:  "[1] [small] [pop 99] [] [] binrec.",
			want: []string{"99"},
		},
		{
			name: "while executes body while predicate holds",
			src:  "0 [dup 5 <] [1 +] while.",
			want: []string{"5"},
		},
		{
			name: "times runs the body exactly N times",
			src:  "0 3 [1 +] times.",
			want: []string{"3"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, runStack(t, tc.src))
		})
	}
}

func TestCombinators_Aggregate(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "step sums integers via fold-like accumulation",
			src:  "0 [1 2 3 4] [+] step.",
			want: []string{"10"},
		},
		{
			name: "map preserves aggregate kind and size",
			src:  "[1 2 3 4] [dup *] map.",
			want: []string{"[1 4 9 16]"},
		},
		{
			name: "fold computes a sum from an explicit seed",
			src:  "[1 2 3 4] 0 [+] fold.",
			want: []string{"10"},
		},
		{
			name: "filter keeps only matching elements",
			src:  "[1 2 3 4 5 6] [2 rem 0 =] filter.",
			want: []string{"[2 4 6]"},
		},
		{
			name: "split yields kept and rejected aggregates",
			src:  "[1 2 3 4 5 6] [2 rem 0 =] split.",
			want: []string{"[2 4 6]", "[1 3 5]"},
		},
		{
			name: "powerlist enumerates sublists",
			src:  "[1 2 3] powerlist [size 2 =] filter.",
			want: []string{"[[1 2] [1 3] [2 3]]"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, runStack(t, tc.src))
		})
	}
}

func TestCombinators_StackSaveSemantics(t *testing.T) {
	// ifte must evaluate its predicate against a COPY of the stack: any
	// extra values the predicate pushes must not leak into the branch
	// taken afterwards (spec.md §4.3 "Stack-save semantics").
	got := runStack(t, "1 2 [dup dup dup true] [pop] [pop pop] ifte.")
	require.Equal(t, []string{"1"}, got)
}

func TestCombinators_DipdAndCleave(t *testing.T) {
	require.Equal(t, []string{"9", "2", "3"}, runStack(t, "1 2 3 [pop 9] dipd."))
	require.Equal(t, []string{"1", "3"}, runStack(t, "[1 2 3] [first] [size] cleave."))
}
