package emitter

import (
	"fmt"

	"github.com/proveland/prove/internal/ast"
)

func (e *Emitter) emitStmt(s ast.Stmt) {
	switch stmt := s.(type) {
	case *ast.VarDecl:
		e.emitVarDecl(stmt)
	case *ast.AssignStmt:
		e.emitAssign(stmt)
	case *ast.ExprStmt:
		e.emitExprStmt(stmt)
	}
}

func (e *Emitter) emitVarDecl(vd *ast.VarDecl) {
	ty := e.inferExprType(vd.Init)
	e.locals[vd.Name] = ty
	ct := MapType(ty)
	val := e.emitExpr(vd.Init)
	e.line(fmt.Sprintf("%s %s = %s;", ct.Decl, vd.Name, val))
}

func (e *Emitter) emitAssign(a *ast.AssignStmt) {
	val := e.emitExpr(a.Value)
	target := e.emitExpr(a.Target)
	e.line(fmt.Sprintf("%s = %s;", target, val))
}

func (e *Emitter) emitExprStmt(s *ast.ExprStmt) {
	// A bare match statement compiles to a real switch, its value (if
	// any) discarded; everything else is a value-discarding expression
	// statement.
	if m, ok := s.X.(*ast.MatchExpr); ok && m.Subject != nil {
		e.emitMatch(m, false)
		return
	}
	if tc, ok := s.X.(*ast.TailContinue); ok {
		e.emitTailContinue(tc)
		return
	}
	val := e.emitExpr(s.X)
	e.line(fmt.Sprintf("%s;", val))
}

// emitTailContinue reassigns the loop-carried parameters via a temp-backed
// parallel assignment (so `f(b, a)`-style swaps stay correct) and loops
// back to the top of the enclosing TailLoop's while(1).
func (e *Emitter) emitTailContinue(tc *ast.TailContinue) {
	tmps := make([]string, len(tc.Values))
	for i, v := range tc.Values {
		ty := e.inferExprType(v)
		ct := MapType(ty)
		tmps[i] = e.tmp()
		e.line(fmt.Sprintf("%s %s = %s;", ct.Decl, tmps[i], e.emitExpr(v)))
	}
	for i, p := range tc.Params {
		if i < len(tmps) {
			e.line(fmt.Sprintf("%s = %s;", p, tmps[i]))
		}
	}
	e.line("continue;")
}
