package optimizer

import "github.com/proveland/prove/internal/ast"

// DeadBranchPass drops unreachable match arms: when a match's subject is a
// boolean literal, only the arms whose literal pattern matches the known
// value survive, plus any wildcard arm.
type DeadBranchPass struct{}

func (p *DeadBranchPass) Name() string { return "dead-branch-elimination" }

func (p *DeadBranchPass) Run(module *ast.Module) *ast.Module {
	return &ast.Module{Decls: mapDecls(module.Decls, p.rewriteDecl), SpanValue: module.SpanValue}
}

func (p *DeadBranchPass) rewriteDecl(d ast.Decl) ast.Decl {
	switch decl := d.(type) {
	case *ast.FunctionDecl:
		out := *decl
		out.Body = p.rewriteExpr(decl.Body)
		return &out
	case *ast.MainDecl:
		return &ast.MainDecl{Body: p.rewriteExpr(decl.Body), SpanValue: decl.SpanValue}
	case *ast.ModuleDecl:
		return &ast.ModuleDecl{Name: decl.Name, Decls: mapDecls(decl.Decls, p.rewriteDecl), SpanValue: decl.SpanValue}
	default:
		return d
	}
}

func (p *DeadBranchPass) rewriteExpr(e ast.Expr) ast.Expr {
	switch expr := e.(type) {
	case nil:
		return nil
	case *ast.BlockExpr:
		stmts := make([]ast.Stmt, len(expr.Stmts))
		for i, s := range expr.Stmts {
			stmts[i] = p.rewriteStmt(s)
		}
		return &ast.BlockExpr{Stmts: stmts, SpanValue: expr.SpanValue}
	case *ast.IfExpr:
		return &ast.IfExpr{Cond: expr.Cond, Then: p.rewriteExpr(expr.Then), Else: p.rewriteExpr(expr.Else), SpanValue: expr.SpanValue}
	case *ast.MatchExpr:
		arms := make([]ast.MatchArm, len(expr.Arms))
		for i, arm := range expr.Arms {
			arms[i] = ast.MatchArm{Pattern: arm.Pattern, Guard: arm.Guard, Body: p.rewriteExpr(arm.Body)}
		}
		if lit, ok := expr.Subject.(*ast.BooleanLiteral); ok {
			arms = keepReachable(arms, lit.Value)
		}
		return &ast.MatchExpr{Subject: expr.Subject, Arms: arms, SpanValue: expr.SpanValue}
	default:
		return e
	}
}

func (p *DeadBranchPass) rewriteStmt(s ast.Stmt) ast.Stmt {
	switch stmt := s.(type) {
	case *ast.ExprStmt:
		return &ast.ExprStmt{X: p.rewriteExpr(stmt.X), SpanValue: stmt.SpanValue}
	case *ast.VarDecl:
		return &ast.VarDecl{Name: stmt.Name, Type: stmt.Type, Init: p.rewriteExpr(stmt.Init), SpanValue: stmt.SpanValue}
	case *ast.AssignStmt:
		return &ast.AssignStmt{Target: stmt.Target, Value: p.rewriteExpr(stmt.Value), SpanValue: stmt.SpanValue}
	default:
		return s
	}
}

// keepReachable keeps arms whose literal pattern text matches the known
// boolean value, plus any wildcard or binding arm (which always matches).
func keepReachable(arms []ast.MatchArm, value bool) []ast.MatchArm {
	want := "false"
	if value {
		want = "true"
	}
	kept := make([]ast.MatchArm, 0, len(arms))
	for _, arm := range arms {
		switch pat := arm.Pattern.(type) {
		case *ast.LiteralPattern:
			if pat.Text == want {
				kept = append(kept, arm)
			}
		default:
			kept = append(kept, arm)
		}
	}
	return kept
}
