// Package env implements the Joy environment: the mapping from symbol to
// definition, plus the small set of global evaluation flags that control
// how the evaluator reports undefined symbols and echoes its output.
package env

import "github.com/go-joy/joy/internal/value"

// PrimitiveFunc is the signature every primitive implementation has. It is
// declared here (rather than in internal/interp) so that Environment can
// hold primitive definitions without importing the evaluator.
type PrimitiveFunc func(ev Evaluator) error

// Evaluator is the minimal surface internal/interp's Interpreter exposes to
// a primitive implementation: the live stack plus the ability to evaluate a
// quotation (needed by combinators). Kept as an interface here to avoid a
// circular import between env and interp.
type Evaluator interface {
	Push(v value.Value)
	Pop() (value.Value, error)
	Peek() (value.Value, error)
	Stack() []value.Value
	SetStack(s []value.Value)
	Run(prog value.ListValue) error
	Env() *Environment
}

// Definition is either a primitive or a user-defined quotation body.
type Definition struct {
	Name      string
	Primitive PrimitiveFunc  // non-nil for primitives
	Body      value.ListValue // used when Primitive is nil
	IsUser    bool
}

// Environment holds the symbol table and the global flags. It is
// populated once at startup with all primitives; DEFINE/LIBRA blocks only
// ever add or replace user words afterward.
type Environment struct {
	defs map[string]Definition

	// Flags are kept as ordinary environment state rather than hidden
	// globals, so the evaluator stays a pure function of its program,
	// environment and stack.
	UndefError bool // fail with an undefined-symbol error instead of ignoring unresolved symbols
	AutoPut    bool // print the top of stack after every top-level phrase
	Echo       int  // 0, 1 or 2; 2 also prints the whole stack after every phrase

	rngSeed int64
}

// New creates an empty environment with default flags (undeferror=0,
// autoput=0, echo=0).
func New() *Environment {
	return &Environment{defs: make(map[string]Definition)}
}

// DefinePrimitive installs a primitive. Called only during bootstrap.
func (e *Environment) DefinePrimitive(name string, fn PrimitiveFunc) {
	e.defs[name] = Definition{Name: name, Primitive: fn}
}

// DefineUser installs or replaces a user word; redefinition is always
// allowed and replaces the previous body.
func (e *Environment) DefineUser(name string, body value.ListValue) {
	e.defs[name] = Definition{Name: name, Body: body, IsUser: true}
}

// Lookup returns the definition bound to name, if any, in constant time.
func (e *Environment) Lookup(name string) (Definition, bool) {
	d, ok := e.defs[name]
	return d, ok
}

// IsPrimitive reports whether name is bound to a primitive.
func (e *Environment) IsPrimitive(name string) bool {
	d, ok := e.defs[name]
	return ok && d.Primitive != nil
}

// Names returns every bound symbol, for introspection primitives and
// tests. The order is unspecified.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.defs))
	for n := range e.defs {
		names = append(names, n)
	}
	return names
}

// NextRand advances and returns the process-global pseudo-random stream
// backing the `rand` primitive.
func (e *Environment) NextRand() int64 {
	// A small xorshift generator: deterministic, seedable, and good
	// enough for a scripting language's `rand`. Joy does not specify a
	// particular PRNG algorithm, only that `srand` resets this state.
	x := e.rngSeed
	if x == 0 {
		x = 0x2545F4914F6CDD1D
	}
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	e.rngSeed = x
	if x < 0 {
		x = -x
	}
	return x
}

// Srand reseeds the random stream.
func (e *Environment) Srand(seed int64) {
	e.rngSeed = seed
}
