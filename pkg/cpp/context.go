package cpp

import "github.com/lcc-lang/lcc/pkg/strintern"

// Context bundles the state a single preprocessing run needs: the macro
// table, the in-progress expansion stack, and the string-intern table
// that backs the stringify operator's token payloads. Passing it
// explicitly through Expand and the directive handlers, rather than
// reaching for package-level state, is what lets a program run several
// independent preprocessing sessions — concurrently, or with different
// predefined macros — without them stepping on one another.
type Context struct {
	Macros  *MacroTable
	Stack   *ExpansionStack
	Strings *strintern.Table
}

// NewContext returns a Context with an empty expansion stack, a fresh
// string-intern table, and the engine's standard predefined macros
// already registered.
func NewContext() *Context {
	mt := NewMacroTable()
	RegisterBuiltins(mt)
	return &Context{Macros: mt, Stack: NewExpansionStack(), Strings: strintern.New()}
}
