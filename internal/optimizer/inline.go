package optimizer

import "github.com/proveland/prove/internal/ast"

// InliningPass substitutes calls to small pure functions with their body.
// A candidate is a single-expression pure function: verb in the pure set,
// exactly one expression-statement body, non-recursive, no `terminates`
// annotation. Substitution recurses into the replaced expression with the
// same candidate table so cascaded inlining (an inlined call that itself
// calls another candidate) is resolved in one pass.
type InliningPass struct{}

func (p *InliningPass) Name() string { return "small-function-inlining" }

type inlineCandidate struct {
	params []string
	body   ast.Expr
}

func (p *InliningPass) Run(module *ast.Module) *ast.Module {
	candidates := collectCandidates(module.Decls)
	return &ast.Module{Decls: mapDecls(module.Decls, func(d ast.Decl) ast.Decl {
		return rewriteDeclInline(d, candidates)
	}), SpanValue: module.SpanValue}
}

func collectCandidates(decls []ast.Decl) map[string]inlineCandidate {
	out := make(map[string]inlineCandidate)
	var walk func([]ast.Decl)
	walk = func(ds []ast.Decl) {
		for _, d := range ds {
			switch decl := d.(type) {
			case *ast.FunctionDecl:
				if c, ok := asCandidate(decl); ok {
					out[decl.Name] = c
				}
			case *ast.ModuleDecl:
				walk(decl.Decls)
			}
		}
	}
	walk(decls)
	return out
}

func asCandidate(decl *ast.FunctionDecl) (inlineCandidate, bool) {
	if !decl.Verb.Pure() || decl.Terminates != "" || decl.CanFail {
		return inlineCandidate{}, false
	}
	block, ok := decl.Body.(*ast.BlockExpr)
	if !ok || len(block.Stmts) != 1 {
		return inlineCandidate{}, false
	}
	exprStmt, ok := block.Stmts[0].(*ast.ExprStmt)
	if !ok {
		return inlineCandidate{}, false
	}
	if callsName(exprStmt.X, decl.Name) {
		return inlineCandidate{}, false
	}
	params := make([]string, len(decl.Parameters))
	for i, param := range decl.Parameters {
		params[i] = param.Name
	}
	return inlineCandidate{params: params, body: exprStmt.X}, true
}

func callsName(e ast.Expr, name string) bool {
	found := false
	var walk func(ast.Expr)
	walk = func(expr ast.Expr) {
		if found || expr == nil {
			return
		}
		if call, ok := expr.(*ast.CallExpr); ok {
			if id, ok := call.Callee.(*ast.Identifier); ok && id.Name == name {
				found = true
				return
			}
			for _, a := range call.Args {
				walk(a)
			}
			return
		}
		switch e2 := expr.(type) {
		case *ast.BinaryExpr:
			walk(e2.Left)
			walk(e2.Right)
		case *ast.UnaryExpr:
			walk(e2.Operand)
		case *ast.FieldAccess:
			walk(e2.Target)
		case *ast.IndexExpr:
			walk(e2.Target)
			walk(e2.Index)
		case *ast.IfExpr:
			walk(e2.Cond)
			walk(e2.Then)
			walk(e2.Else)
		}
	}
	walk(e)
	return found
}

func rewriteDeclInline(d ast.Decl, candidates map[string]inlineCandidate) ast.Decl {
	switch decl := d.(type) {
	case *ast.FunctionDecl:
		out := *decl
		out.Body = rewriteExprInline(decl.Body, candidates)
		return &out
	case *ast.MainDecl:
		return &ast.MainDecl{Body: rewriteExprInline(decl.Body, candidates), SpanValue: decl.SpanValue}
	case *ast.ModuleDecl:
		return &ast.ModuleDecl{Name: decl.Name, Decls: mapDecls(decl.Decls, func(nd ast.Decl) ast.Decl {
			return rewriteDeclInline(nd, candidates)
		}), SpanValue: decl.SpanValue}
	default:
		return d
	}
}

func rewriteExprInline(e ast.Expr, candidates map[string]inlineCandidate) ast.Expr {
	if e == nil {
		return nil
	}
	switch expr := e.(type) {
	case *ast.BlockExpr:
		stmts := make([]ast.Stmt, len(expr.Stmts))
		for i, s := range expr.Stmts {
			stmts[i] = rewriteStmtInline(s, candidates)
		}
		return &ast.BlockExpr{Stmts: stmts, SpanValue: expr.SpanValue}
	case *ast.IfExpr:
		return &ast.IfExpr{
			Cond:      rewriteExprInline(expr.Cond, candidates),
			Then:      rewriteExprInline(expr.Then, candidates),
			Else:      rewriteExprInline(expr.Else, candidates),
			SpanValue: expr.SpanValue,
		}
	case *ast.MatchExpr:
		arms := make([]ast.MatchArm, len(expr.Arms))
		for i, arm := range expr.Arms {
			arms[i] = ast.MatchArm{Pattern: arm.Pattern, Guard: arm.Guard, Body: rewriteExprInline(arm.Body, candidates)}
		}
		var subj ast.Expr
		if expr.Subject != nil {
			subj = rewriteExprInline(expr.Subject, candidates)
		}
		return &ast.MatchExpr{Subject: subj, Arms: arms, SpanValue: expr.SpanValue}
	case *ast.CallExpr:
		args := make([]ast.Expr, len(expr.Args))
		for i, a := range expr.Args {
			args[i] = rewriteExprInline(a, candidates)
		}
		if id, ok := expr.Callee.(*ast.Identifier); ok {
			if cand, ok := candidates[id.Name]; ok && len(cand.params) == len(args) {
				subst := substitute(cand.body, cand.params, args)
				return rewriteExprInline(subst, candidates)
			}
		}
		return &ast.CallExpr{Callee: expr.Callee, Args: args, SpanValue: expr.SpanValue}
	default:
		return e
	}
}

func rewriteStmtInline(s ast.Stmt, candidates map[string]inlineCandidate) ast.Stmt {
	switch stmt := s.(type) {
	case *ast.ExprStmt:
		return &ast.ExprStmt{X: rewriteExprInline(stmt.X, candidates), SpanValue: stmt.SpanValue}
	case *ast.VarDecl:
		return &ast.VarDecl{Name: stmt.Name, Type: stmt.Type, Init: rewriteExprInline(stmt.Init, candidates), SpanValue: stmt.SpanValue}
	case *ast.AssignStmt:
		return &ast.AssignStmt{Target: stmt.Target, Value: rewriteExprInline(stmt.Value, candidates), SpanValue: stmt.SpanValue}
	default:
		return s
	}
}

// substitute replaces every Identifier in body matching a name in params
// with the corresponding argument expression.
func substitute(body ast.Expr, params []string, args []ast.Expr) ast.Expr {
	bind := make(map[string]ast.Expr, len(params))
	for i, p := range params {
		bind[p] = args[i]
	}
	var walk func(ast.Expr) ast.Expr
	walk = func(e ast.Expr) ast.Expr {
		switch expr := e.(type) {
		case nil:
			return nil
		case *ast.Identifier:
			if repl, ok := bind[expr.Name]; ok {
				return repl
			}
			return expr
		case *ast.BinaryExpr:
			return &ast.BinaryExpr{Op: expr.Op, Left: walk(expr.Left), Right: walk(expr.Right), SpanValue: expr.SpanValue}
		case *ast.UnaryExpr:
			return &ast.UnaryExpr{Op: expr.Op, Operand: walk(expr.Operand), SpanValue: expr.SpanValue}
		case *ast.FieldAccess:
			return &ast.FieldAccess{Target: walk(expr.Target), Field: expr.Field, SpanValue: expr.SpanValue}
		case *ast.IndexExpr:
			return &ast.IndexExpr{Target: walk(expr.Target), Index: walk(expr.Index), SpanValue: expr.SpanValue}
		case *ast.CallExpr:
			args := make([]ast.Expr, len(expr.Args))
			for i, a := range expr.Args {
				args[i] = walk(a)
			}
			return &ast.CallExpr{Callee: walk(expr.Callee), Args: args, SpanValue: expr.SpanValue}
		case *ast.IfExpr:
			return &ast.IfExpr{Cond: walk(expr.Cond), Then: walk(expr.Then), Else: walk(expr.Else), SpanValue: expr.SpanValue}
		default:
			return e
		}
	}
	return walk(body)
}
