package checker

import (
	"github.com/proveland/prove/internal/ast"
	"github.com/proveland/prove/internal/symbols"
	"github.com/proveland/prove/internal/types"
)

// checkPass is Pass 2: for each function, push a fresh
// scope, bind parameters, then check the body statement by statement;
// infer and validate every top-level constant.
type checkPass struct{}

// CheckPass returns Pass 2 as a Pass, so it can be slotted into a
// PassManager alongside RegistrationPass and the contract pass.
func CheckPass() Pass { return &checkPassAdapter{} }

type checkPassAdapter struct{}

func (a *checkPassAdapter) Name() string { return "check" }

func (a *checkPassAdapter) Run(module *ast.Module, ctx *Context) {
	c := &checkPass{}
	for _, d := range module.Decls {
		c.checkDecl(d, ctx)
	}
}

func (c *checkPass) checkDecl(d ast.Decl, ctx *Context) {
	switch decl := d.(type) {
	case *ast.FunctionDecl:
		c.checkFunction(decl, ctx)
	case *ast.MainDecl:
		ctx.Symbols.Push()
		c.inferExpr(ctx, decl.Body)
		c.warnUnused(ctx, ctx.Symbols.Pop())
	case *ast.ConstDecl:
		c.checkConst(decl, ctx)
	case *ast.ModuleDecl:
		for _, nested := range decl.Decls {
			c.checkDecl(nested, ctx)
		}
	}
}

func (c *checkPass) checkConst(decl *ast.ConstDecl, ctx *Context) {
	initT := c.inferExpr(ctx, decl.Init)
	if decl.Type != nil {
		declared := resolveTypeExpr(ctx, decl.Type)
		if !types.Compatible(declared, initT) {
			ctx.Diagnostics.Addf("E322", "constant %q: declared type %s is incompatible with initializer type %s",
				decl.Name, declared, initT)
		}
	}
	if sym, ok := ctx.Symbols.Resolve(decl.Name); ok && sym.Type == types.Error {
		sym.Type = initT
	}
}

func (c *checkPass) checkFunction(decl *ast.FunctionDecl, ctx *Context) {
	prevFn := ctx.CurrentFunction
	ctx.CurrentFunction = decl
	defer func() { ctx.CurrentFunction = prevFn }()

	if decl.Verb == ast.VerbValidates && decl.ReturnType != nil {
		ctx.Diagnostics.Addf("E360", "validates function %q must not declare an explicit return type", decl.Name)
	}
	if decl.Verb.Pure() && decl.CanFail {
		ctx.Diagnostics.Addf("E361", "pure function %q may not be failable", decl.Name)
	}

	ctx.Symbols.Push()
	for _, param := range decl.Parameters {
		_ = ctx.Symbols.Define(&symbols.Symbol{Name: param.Name, Type: resolveTypeExpr(ctx, param.Type)})
	}

	c.checkIOPurity(decl, ctx)

	bodyT := c.inferExpr(ctx, decl.Body)
	c.warnUnused(ctx, ctx.Symbols.Pop())

	declared := resolveTypeExpr(ctx, decl.ReturnType)
	if decl.Verb == ast.VerbValidates && decl.ReturnType == nil {
		declared = types.Boolean
	}
	if !c.returnCompatible(declared, bodyT, decl.CanFail) {
		ctx.Diagnostics.Addf("E322", "function %q: body type %s is incompatible with declared return type %s",
			decl.Name, bodyT, declared)
	}
}

// returnCompatible allows a failable function returning Result<T,E> to
// also accept a body of type T directly.
func (c *checkPass) returnCompatible(declared, body types.Type, canFail bool) bool {
	if types.Compatible(declared, body) {
		return true
	}
	if canFail {
		if gi, ok := declared.(*types.GenericInstance); ok && gi.BaseName == "Result" && len(gi.Args) > 0 {
			return types.Compatible(gi.Args[0], body)
		}
	}
	return false
}

// checkIOPurity walks the body looking for direct calls to a known I/O
// function (one registered under an I/O verb) from a pure function.
func (c *checkPass) checkIOPurity(decl *ast.FunctionDecl, ctx *Context) {
	if !decl.Verb.Pure() {
		return
	}
	reported := make(map[string]bool)
	report := func(call *ast.CallExpr) {
		id, ok := call.Callee.(*ast.Identifier)
		if !ok || reported[id.Name] {
			return
		}
		for _, verb := range []string{"", "inputs", "outputs", "reads", "creates"} {
			for _, cand := range ctx.Functions.Candidates(verb, id.Name) {
				if isIOVerb(cand.Verb) {
					ctx.Diagnostics.Addf("E362", "pure function %q may not call I/O function %q", decl.Name, id.Name)
					reported[id.Name] = true
				}
			}
		}
	}
	walkCallsInExpr(decl.Body, report)
}

// walkCallsInExpr visits every CallExpr reachable from expr, recursing into
// the handful of node shapes a prove function body can contain.
func walkCallsInExpr(expr ast.Expr, visit func(*ast.CallExpr)) {
	switch e := expr.(type) {
	case nil:
	case *ast.CallExpr:
		visit(e)
		walkCallsInExpr(e.Callee, visit)
		for _, a := range e.Args {
			walkCallsInExpr(a, visit)
		}
	case *ast.BinaryExpr:
		walkCallsInExpr(e.Left, visit)
		walkCallsInExpr(e.Right, visit)
	case *ast.UnaryExpr:
		walkCallsInExpr(e.Operand, visit)
	case *ast.FieldAccess:
		walkCallsInExpr(e.Target, visit)
	case *ast.IndexExpr:
		walkCallsInExpr(e.Target, visit)
		walkCallsInExpr(e.Index, visit)
	case *ast.PipeExpr:
		walkCallsInExpr(e.Left, visit)
		walkCallsInExpr(e.Right, visit)
	case *ast.FailPropExpr:
		walkCallsInExpr(e.Operand, visit)
	case *ast.LambdaExpr:
		walkCallsInExpr(e.Body, visit)
	case *ast.ListLiteral:
		for _, el := range e.Elements {
			walkCallsInExpr(el, visit)
		}
	case *ast.IfExpr:
		walkCallsInExpr(e.Cond, visit)
		walkCallsInExpr(e.Then, visit)
		walkCallsInExpr(e.Else, visit)
	case *ast.MatchExpr:
		walkCallsInExpr(e.Subject, visit)
		for _, arm := range e.Arms {
			walkCallsInExpr(arm.Guard, visit)
			walkCallsInExpr(arm.Body, visit)
		}
	case *ast.ComptimeBlock:
		walkCallsInExpr(e.Body, visit)
	case *ast.InterpolatedString:
		for _, seg := range e.Segments {
			walkCallsInExpr(seg.Expr, visit)
		}
	case *ast.BlockExpr:
		for _, stmt := range e.Stmts {
			switch s := stmt.(type) {
			case *ast.VarDecl:
				walkCallsInExpr(s.Init, visit)
			case *ast.AssignStmt:
				walkCallsInExpr(s.Target, visit)
				walkCallsInExpr(s.Value, visit)
			case *ast.ExprStmt:
				walkCallsInExpr(s.X, visit)
			}
		}
	}
}

func isIOVerb(verb string) bool {
	switch ast.Verb(verb) {
	case ast.VerbInputs, ast.VerbOutputs, ast.VerbReads, ast.VerbCreates:
		return true
	default:
		return false
	}
}

func (c *checkPass) warnUnused(ctx *Context, popped []*symbols.Symbol) {
	for _, sym := range popped {
		if !sym.IsConst && !sym.Used {
			ctx.Diagnostics.Warnf("W300", "%q is never used", sym.Name)
		}
	}
}

func (c *checkPass) checkBlock(ctx *Context, block *ast.BlockExpr) types.Type {
	var last types.Type = types.UnitT
	for _, stmt := range block.Stmts {
		last = c.checkStmt(ctx, stmt)
	}
	return last
}

func (c *checkPass) checkStmt(ctx *Context, stmt ast.Stmt) types.Type {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		initT := c.inferExpr(ctx, s.Init)
		declared := initT
		if s.Type != nil {
			declared = resolveTypeExpr(ctx, s.Type)
			if !types.Compatible(declared, initT) {
				ctx.Diagnostics.Addf("E322", "%q: declared type %s is incompatible with initializer type %s", s.Name, declared, initT)
			}
		}
		if err := ctx.Symbols.Define(&symbols.Symbol{Name: s.Name, Type: declared}); err != nil {
			ctx.Diagnostics.Addf("E300", "%s", err.Error())
		}
		return types.UnitT
	case *ast.AssignStmt:
		c.inferExpr(ctx, s.Target)
		c.inferExpr(ctx, s.Value)
		return types.UnitT
	case *ast.ExprStmt:
		return c.inferExpr(ctx, s.X)
	default:
		return types.UnitT
	}
}
