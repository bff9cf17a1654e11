// Package symbols implements the lexically scoped identifier map, the
// function overload registry, and the type registry.
package symbols

import (
	"fmt"

	"github.com/proveland/prove/internal/types"
)

// Symbol is one entry in a scope: a variable, constant, or parameter.
// Functions live in the separate FunctionRegistry; the
// symbol table only ever holds one Symbol per (scope, name) pair, matching
// the invariant that within a scope, symbol names are unique.
type Symbol struct {
	Name     string
	Type     types.Type
	IsConst  bool
	ReadOnly bool
	Value    any
	Used     bool
}

// Scope is one ordered map from name to Symbol, with a link to its
// enclosing scope (nil for the module scope, which is never popped).
type Scope struct {
	symbols map[string]*Symbol
	outer   *Scope
}

func newScope(outer *Scope) *Scope {
	return &Scope{symbols: make(map[string]*Symbol), outer: outer}
}

// Table is a stack of scopes: the module scope at the bottom, pushed and
// popped as the checker enters and leaves function bodies, match arms, and
// blocks.
type Table struct {
	current *Scope
}

// NewTable creates a Table with just the module scope.
func NewTable() *Table {
	return &Table{current: newScope(nil)}
}

// Push enters a new nested scope.
func (t *Table) Push() {
	t.current = newScope(t.current)
}

// Pop leaves the current scope, returning the symbols it held so the
// checker can emit unused-variable warnings at teardown. Popping the module scope panics — it is never
// popped.
func (t *Table) Pop() []*Symbol {
	if t.current.outer == nil {
		panic("symbols: cannot pop the module scope")
	}
	syms := make([]*Symbol, 0, len(t.current.symbols))
	for _, s := range t.current.symbols {
		syms = append(syms, s)
	}
	t.current = t.current.outer
	return syms
}

// Define adds a new symbol to the current scope. Returns an error if the
// name already exists in the current scope (E301 at the call site).
func (t *Table) Define(sym *Symbol) error {
	if _, exists := t.current.symbols[sym.Name]; exists {
		return fmt.Errorf("'%s' is already defined in this scope", sym.Name)
	}
	t.current.symbols[sym.Name] = sym
	return nil
}

// Resolve walks the scope stack from innermost outward and returns the
// first matching symbol, or (nil, false).
func (t *Table) Resolve(name string) (*Symbol, bool) {
	for s := t.current; s != nil; s = s.outer {
		if sym, ok := s.symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// MarkUsed flips a symbol's Used flag the first time any code reads it.
func (s *Symbol) MarkUsed() { s.Used = true }
