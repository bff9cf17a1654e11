package optimizer

import "github.com/proveland/prove/internal/ast"

// MatchMergePass merges consecutive top-level match statements on the same
// identifier subject into one match with the concatenated arm lists.
type MatchMergePass struct{}

func (p *MatchMergePass) Name() string { return "match-compilation" }

func (p *MatchMergePass) Run(module *ast.Module) *ast.Module {
	return &ast.Module{Decls: mapDecls(module.Decls, p.rewriteDecl), SpanValue: module.SpanValue}
}

func (p *MatchMergePass) rewriteDecl(d ast.Decl) ast.Decl {
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

func (p *MatchMergePass) rewriteExpr(e ast.Expr) ast.Expr {
	block, ok := e.(*ast.BlockExpr)
	if !ok {
		return e
	}
	return &ast.BlockExpr{Stmts: mergeStmts(block.Stmts), SpanValue: block.SpanValue}
}

func mergeStmts(stmts []ast.Stmt) []ast.Stmt {
	out := make([]ast.Stmt, 0, len(stmts))
	i := 0
	for i < len(stmts) {
		subject, arms, ok := asMatchStmt(stmts[i])
		if !ok {
			out = append(out, stmts[i])
			i++
			continue
		}
		merged := append([]ast.MatchArm(nil), arms...)
		j := i + 1
		for j < len(stmts) {
			nextSubject, nextArms, ok := asMatchStmt(stmts[j])
			if !ok || !sameIdentifier(subject, nextSubject) {
				break
			}
			merged = append(merged, nextArms...)
			j++
		}
		exprStmt := stmts[i].(*ast.ExprStmt)
		matchExpr := exprStmt.X.(*ast.MatchExpr)
		out = append(out, &ast.ExprStmt{
			X:         &ast.MatchExpr{Subject: matchExpr.Subject, Arms: merged, SpanValue: matchExpr.SpanValue},
			SpanValue: exprStmt.SpanValue,
		})
		i = j
	}
	return out
}

func asMatchStmt(s ast.Stmt) (ast.Expr, []ast.MatchArm, bool) {
	exprStmt, ok := s.(*ast.ExprStmt)
	if !ok {
		return nil, nil, false
	}
	matchExpr, ok := exprStmt.X.(*ast.MatchExpr)
	if !ok || matchExpr.Subject == nil {
		return nil, nil, false
	}
	return matchExpr.Subject, matchExpr.Arms, true
}

func sameIdentifier(a, b ast.Expr) bool {
	ai, ok := a.(*ast.Identifier)
	if !ok {
		return false
	}
	bi, ok := b.(*ast.Identifier)
	return ok && ai.Name == bi.Name
}
