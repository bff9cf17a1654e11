package optimizer

import "github.com/proveland/prove/internal/ast"

// TailCallPass lowers self-tail-recursive functions into a TailLoop/
// TailContinue pair. A function is eligible when it carries a
// `terminates` annotation, contains a direct call to itself, and that call
// stands in tail position — the last statement of the body, or the last
// statement of every arm of a tail-position match. Non-tail recursive
// calls are left alone.
type TailCallPass struct{}

func (p *TailCallPass) Name() string { return "tail-call-lowering" }

func (p *TailCallPass) Run(module *ast.Module) *ast.Module {
	return &ast.Module{Decls: mapDecls(module.Decls, p.rewriteDecl), SpanValue: module.SpanValue}
}

func (p *TailCallPass) rewriteDecl(d ast.Decl) ast.Decl {
	decl, ok := d.(*ast.FunctionDecl)
	if !ok {
		if md, ok := d.(*ast.ModuleDecl); ok {
			return &ast.ModuleDecl{Name: md.Name, Decls: mapDecls(md.Decls, p.rewriteDecl), SpanValue: md.SpanValue}
		}
		return d
	}
	if decl.Terminates == "" || !hasTailSelfCall(decl.Body, decl.Name) {
		return decl
	}

	params := make([]string, len(decl.Parameters))
	for i, param := range decl.Parameters {
		params[i] = param.Name
	}

	newBody := lowerTailPosition(decl.Body, decl.Name, params)
	out := *decl
	out.Body = &ast.TailLoop{Params: params, Body: newBody, SpanValue: decl.Body.Span()}
	return &out
}

// hasTailSelfCall reports whether body contains a direct self-call in tail
// position.
func hasTailSelfCall(body ast.Expr, name string) bool {
	switch e := body.(type) {
	case *ast.BlockExpr:
		if len(e.Stmts) == 0 {
			return false
		}
		last, ok := e.Stmts[len(e.Stmts)-1].(*ast.ExprStmt)
		if !ok {
			return false
		}
		return hasTailSelfCall(last.X, name)
	case *ast.IfExpr:
		if hasTailSelfCall(e.Then, name) {
			return true
		}
		return e.Else != nil && hasTailSelfCall(e.Else, name)
	case *ast.MatchExpr:
		for _, arm := range e.Arms {
			if hasTailSelfCall(arm.Body, name) {
				return true
			}
		}
		return false
	case *ast.CallExpr:
		id, ok := e.Callee.(*ast.Identifier)
		return ok && id.Name == name
	default:
		return false
	}
}

// lowerTailPosition replaces every tail-position self-call with a
// TailContinue carrying the parallel-assignment argument values.
func lowerTailPosition(body ast.Expr, name string, params []string) ast.Expr {
	switch e := body.(type) {
	case *ast.BlockExpr:
		if len(e.Stmts) == 0 {
			return e
		}
		stmts := append([]ast.Stmt(nil), e.Stmts...)
		last := len(stmts) - 1
		if exprStmt, ok := stmts[last].(*ast.ExprStmt); ok {
			stmts[last] = &ast.ExprStmt{X: lowerTailPosition(exprStmt.X, name, params), SpanValue: exprStmt.SpanValue}
		}
		return &ast.BlockExpr{Stmts: stmts, SpanValue: e.SpanValue}
	case *ast.IfExpr:
		var elseExpr ast.Expr
		if e.Else != nil {
			elseExpr = lowerTailPosition(e.Else, name, params)
		}
		return &ast.IfExpr{Cond: e.Cond, Then: lowerTailPosition(e.Then, name, params), Else: elseExpr, SpanValue: e.SpanValue}
	case *ast.MatchExpr:
		arms := make([]ast.MatchArm, len(e.Arms))
		for i, arm := range e.Arms {
			arms[i] = ast.MatchArm{Pattern: arm.Pattern, Guard: arm.Guard, Body: lowerTailPosition(arm.Body, name, params)}
		}
		return &ast.MatchExpr{Subject: e.Subject, Arms: arms, SpanValue: e.SpanValue}
	case *ast.CallExpr:
		id, ok := e.Callee.(*ast.Identifier)
		if !ok || id.Name != name {
			return e
		}
		return &ast.TailContinue{Params: params, Values: e.Args, SpanValue: e.SpanValue}
	default:
		return body
	}
}

func mapDecls(decls []ast.Decl, f func(ast.Decl) ast.Decl) []ast.Decl {
	out := make([]ast.Decl, len(decls))
	for i, d := range decls {
		out[i] = f(d)
	}
	return out
}
