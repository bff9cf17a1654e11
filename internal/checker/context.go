package checker

import (
	"github.com/proveland/prove/internal/ast"
	"github.com/proveland/prove/internal/source"
	"github.com/proveland/prove/internal/symbols"
	"github.com/proveland/prove/internal/types"
)

// Context is the shared state threaded through every checker pass,
// grounded on go-dws's PassContext (internal/semantic/pass_context.go):
// registries built in pass 1 are read by pass 2, diagnostics accumulate in
// one place, and CurrentFunction tracks the function currently being
// checked so the contract pass can resolve `result` and parameter names.
type Context struct {
	Symbols     *symbols.Table
	Functions   *symbols.FunctionRegistry
	Types       *symbols.TypeRegistry
	Diagnostics *source.Bag

	CurrentFunction *ast.FunctionDecl
	// ExprTypes caches the inferred type of every expression node checked so
	// far, keyed by pointer identity. Only the checker reads it; the
	// emitter runs its own inference over the optimized tree.
	ExprTypes map[ast.Expr]types.Type

	// InvariantNetworks holds each declared network's conditions by name,
	// for the proof verifier to cross-reference.
	InvariantNetworks map[string][]ast.Condition
}

// NewContext creates a Context with fresh, built-in-populated registries.
func NewContext() *Context {
	ctx := &Context{
		Symbols:     symbols.NewTable(),
		Functions:   symbols.NewFunctionRegistry(),
		Types:       symbols.NewTypeRegistry(),
		Diagnostics:       &source.Bag{},
		ExprTypes:         make(map[ast.Expr]types.Type),
		InvariantNetworks: make(map[string][]ast.Condition),
	}
	for _, sig := range []*symbols.Signature{
		{Name: "println", Params: []types.Type{types.StringT}, Return: types.UnitT},
		{Name: "print", Params: []types.Type{types.StringT}, Return: types.UnitT},
		{Name: "readln", Return: types.StringT},
		{Name: "clamp", Params: []types.Type{types.Integer, types.Integer, types.Integer}, Return: types.Integer},
	} {
		ctx.Functions.Register(sig)
	}
	return ctx
}

// TypeOf returns the cached inferred type of expr, or the error type if it
// was never checked.
func (c *Context) TypeOf(expr ast.Expr) types.Type {
	if t, ok := c.ExprTypes[expr]; ok {
		return t
	}
	return types.Error
}

// SetType records the inferred type of expr.
func (c *Context) SetType(expr ast.Expr, t types.Type) {
	c.ExprTypes[expr] = t
}
