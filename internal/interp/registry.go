package interp

import (
	"github.com/go-joy/joy/internal/env"
	"github.com/go-joy/joy/internal/value"
)

// registerPrimitives installs the full primitive library into e, grouped
// by role across the builtins_*.go files: arithmetic, stack shuffling,
// strings, I/O, and so on each get their own file.
func registerPrimitives(e *env.Environment) {
	registerCombinators(e)
	registerStackPrimitives(e)
	registerArithPrimitives(e)
	registerFloatPrimitives(e)
	registerCharPrimitives(e)
	registerLogicPrimitives(e)
	registerPredicatePrimitives(e)
	registerSymbolPrimitives(e)
	registerIOPrimitives(e)
	registerFilePrimitives(e)
	registerTimePrimitives(e)
	registerConvPrimitives(e)
	registerFlagPrimitives(e)
	registerProcessPrimitives(e)
}

func sym(name string) value.Value { return value.Intern(name) }

func list(items ...value.Value) value.ListValue { return value.ListValue{Items: items} }

// loadLibraryWords installs the handful of words that are conventionally
// library-defined rather than primitive: `reverse` and `powerlist`.
func loadLibraryWords(e *env.Environment) {
	// reverse == [] swap [swons] step
	e.DefineUser("reverse", list(
		value.ListValue{},
		sym("swap"),
		list(sym("swons")),
		sym("step"),
	))

	// powerlist == [null] [pop [[]]] [uncons]
	//              [i swap [swap cons] cons over swap map swap concat]
	//              genrec
	//
	// The mapped quotation must read "X swap cons" rather than bare "X
	// cons": map leaves the element S under the pushed literal X, and
	// cons wants the aggregate on top, so the swap is required to put S
	// back above X before cons runs.
	e.DefineUser("powerlist", list(
		list(sym("null")),
		list(sym("pop"), list(value.ListValue{})),
		list(sym("uncons")),
		list(sym("i"), sym("swap"), list(sym("swap"), sym("cons")), sym("cons"),
			sym("over"), sym("swap"), sym("map"), sym("swap"), sym("concat")),
		sym("genrec"),
	))
}
