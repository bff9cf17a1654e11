package emitter

import (
	"fmt"

	"github.com/proveland/prove/internal/ast"
	"github.com/proveland/prove/internal/types"
)

// emitFunction emits one top-level function definition.
func (e *Emitter) emitFunction(decl *ast.FunctionDecl) {
	sig := e.signatureFor(decl)
	e.returnType = sig.Return

	retCType := MapType(sig.Return)
	retDecl := retCType.Decl
	if decl.CanFail {
		if gi, ok := sig.Return.(*types.GenericInstance); ok && gi.BaseName == "Result" {
			retDecl = "Prove_Result"
		} else if retCType.Decl == "void" {
			retDecl = "Prove_Result"
		}
	}

	mangled := MangleName(string(decl.Verb), decl.Name, sig.Params)

	params := make([]string, len(decl.Parameters))
	for i, p := range decl.Parameters {
		ct := MapType(sig.Params[i])
		params[i] = fmt.Sprintf("%s %s", ct.Decl, p.Name)
	}
	paramStr := "void"
	if len(params) > 0 {
		paramStr = joinComma(params)
	}

	e.line(fmt.Sprintf("%s %s(%s) {", retDecl, mangled, paramStr))
	e.indent++

	e.locals = make(map[string]types.Type, len(decl.Parameters))
	for i, p := range decl.Parameters {
		e.locals[p.Name] = sig.Params[i]
	}

	e.emitBody(decl.Body, sig.Return, decl.CanFail)

	e.indent--
	e.line("}")
	e.line("")
}

func (e *Emitter) emitMain(decl *ast.MainDecl) {
	e.returnType = types.UnitT
	e.locals = make(map[string]types.Type)

	e.line("int main(int argc, char **argv) {")
	e.indent++

	if block, ok := decl.Body.(*ast.BlockExpr); ok {
		for _, stmt := range block.Stmts {
			e.emitStmt(stmt)
		}
	}

	e.line("return 0;")
	e.indent--
	e.line("}")
	e.line("")
}

// emitBody emits a function body's statements; the last statement becomes
// the function's return value unless the function is Unit-returning.
func (e *Emitter) emitBody(body ast.Expr, retType types.Type, isFailable bool) {
	if tl, ok := body.(*ast.TailLoop); ok {
		e.emitTailLoop(tl, retType, isFailable)
		return
	}
	block, ok := body.(*ast.BlockExpr)
	if !ok {
		return
	}
	for i, stmt := range block.Stmts {
		isLast := i == len(block.Stmts)-1
		if !isLast {
			e.emitStmt(stmt)
			continue
		}
		if _, isVarDecl := stmt.(*ast.VarDecl); isVarDecl {
			e.emitStmt(stmt)
			continue
		}
		if es, ok := stmt.(*ast.ExprStmt); ok {
			if _, isTC := es.X.(*ast.TailContinue); isTC {
				e.emitStmt(stmt)
				continue
			}
		}
		if _, isUnit := retType.(*types.Unit); isUnit && !isFailable {
			e.emitStmt(stmt)
			continue
		}
		if isFailable {
			if _, isUnitRet := retType.(*types.Unit); isUnitRet {
				e.emitStmt(stmt)
				e.line("return prove_result_ok();")
				continue
			}
			if expr, ok := stmtExpr(stmt); ok {
				if m, ok := expr.(*ast.MatchExpr); ok && m.Subject != nil {
					tmp := e.emitMatch(m, true)
					if tmp != "" {
						e.line(fmt.Sprintf("return prove_result_ok(%s);", tmp))
					}
					continue
				}
				bodyT := e.inferExprType(expr)
				val := e.emitExpr(expr)
				if gi, ok := retType.(*types.GenericInstance); ok && gi.BaseName == "Result" && types.Compatible(bodyT, gi) {
					e.line(fmt.Sprintf("return %s;", val))
				} else {
					e.line(fmt.Sprintf("return prove_result_ok(%s);", val))
				}
				continue
			}
			e.emitStmt(stmt)
			continue
		}
		if expr, ok := stmtExpr(stmt); ok {
			if m, ok := expr.(*ast.MatchExpr); ok && m.Subject != nil {
				tmp := e.emitMatch(m, true)
				if tmp != "" {
					e.line(fmt.Sprintf("return %s;", tmp))
				}
				continue
			}
			e.line(fmt.Sprintf("return %s;", e.emitExpr(expr)))
		} else {
			e.emitStmt(stmt)
		}
	}
}

// emitTailLoop emits the `while (1) { ... }` replacing a tail-recursive
// function body after TCO lowering.
// Params are the loop-carried C locals, already declared as the function's
// parameters; TailContinue statements inside Body reassign them and loop.
func (e *Emitter) emitTailLoop(tl *ast.TailLoop, retType types.Type, isFailable bool) {
	e.line("while (1) {")
	e.indent++
	e.emitBody(tl.Body, retType, isFailable)
	e.indent--
	e.line("}")
}

// stmtExpr extracts the expression carried by an ExprStmt; any other
// statement kind reports false.
func stmtExpr(s ast.Stmt) (ast.Expr, bool) {
	if es, ok := s.(*ast.ExprStmt); ok {
		return es.X, true
	}
	return nil, false
}
