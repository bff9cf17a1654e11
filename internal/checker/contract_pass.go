package checker

import (
	"github.com/proveland/prove/internal/ast"
	"github.com/proveland/prove/internal/symbols"
	"github.com/proveland/prove/internal/types"
)

// ContractPass is Pass 3: for each
// function's contract clauses, check that every boolean-valued clause
// actually is boolean and that `satisfies` resolves. Proof blocks are not
// examined here; package proof verifies them separately. Grounded on go-dws's
// contract_pass.go, which runs after the main type-check pass for the same
// reason: contract clauses reference `result`, only known once the
// function's return type is settled.
type ContractPass struct{}

func (p *ContractPass) Name() string { return "contract" }

func (p *ContractPass) Run(module *ast.Module, ctx *Context) {
	for _, d := range module.Decls {
		p.checkDecl(d, ctx)
	}
}

func (p *ContractPass) checkDecl(d ast.Decl, ctx *Context) {
	switch decl := d.(type) {
	case *ast.FunctionDecl:
		p.checkFunction(decl, ctx)
	case *ast.ModuleDecl:
		for _, nested := range decl.Decls {
			p.checkDecl(nested, ctx)
		}
	}
}

func (p *ContractPass) checkFunction(decl *ast.FunctionDecl, ctx *Context) {
	c := &checkPass{}
	contracts := decl.Contracts

	ctx.CurrentFunction = decl
	defer func() { ctx.CurrentFunction = nil }()

	returnT := resolveTypeExpr(ctx, decl.ReturnType)
	if decl.Verb == ast.VerbValidates && decl.ReturnType == nil {
		returnT = types.Boolean
	}

	// requires/know/assume: parameter scope only.
	ctx.Symbols.Push()
	for _, param := range decl.Parameters {
		_ = ctx.Symbols.Define(&symbols.Symbol{Name: param.Name, Type: resolveTypeExpr(ctx, param.Type)})
	}
	for _, cond := range contracts.Requires {
		p.checkBoolean(c, ctx, cond.Test, "E381", "requires")
		if cond.Message != nil {
			c.inferExpr(ctx, cond.Message)
		}
	}
	for _, e := range contracts.Know {
		p.checkBoolean(c, ctx, e, "E384", "know")
	}
	for _, e := range contracts.Assume {
		p.checkBoolean(c, ctx, e, "E385", "assume")
	}
	ctx.Symbols.Pop()

	// ensures/believe: parameter scope plus `result`.
	ctx.Symbols.Push()
	for _, param := range decl.Parameters {
		_ = ctx.Symbols.Define(&symbols.Symbol{Name: param.Name, Type: resolveTypeExpr(ctx, param.Type)})
	}
	_ = ctx.Symbols.Define(&symbols.Symbol{Name: "result", Type: returnT})
	for _, cond := range contracts.Ensures {
		p.checkBoolean(c, ctx, cond.Test, "E380", "ensures")
		if cond.Message != nil {
			c.inferExpr(ctx, cond.Message)
		}
	}
	for _, e := range contracts.Believe {
		p.checkBoolean(c, ctx, e, "E386", "believe")
	}
	ctx.Symbols.Pop()

	if contracts.Satisfies != "" {
		if _, ok := ctx.Types.Resolve(contracts.Satisfies); !ok {
			ctx.Diagnostics.Addf("E382", "function %q: `satisfies %s` does not resolve to a known type", decl.Name, contracts.Satisfies)
		}
	}
}

func (p *ContractPass) checkBoolean(c *checkPass, ctx *Context, expr ast.Expr, code, clause string) {
	if expr == nil {
		return
	}
	t := c.inferExpr(ctx, expr)
	if !types.Compatible(t, types.Boolean) {
		ctx.Diagnostics.Addf(code, "%s expression must be boolean, got %s", clause, t)
	}
}
