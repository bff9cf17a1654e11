package emitter

import (
	"fmt"

	"github.com/proveland/prove/internal/ast"
	"github.com/proveland/prove/internal/types"
)

// emitMatch compiles a match expression to a tagged-union switch. When wantValue is true the match is used in
// expression position: a result temporary is allocated before the switch
// and returned; when false (statement position) no result temporary is
// produced and the return value is the empty string.
func (e *Emitter) emitMatch(m *ast.MatchExpr, wantValue bool) string {
	if m.Subject == nil {
		// Implicit match (no subject): only reachable as a statement-level
		// construct: emit the first arm's body directly.
		for _, arm := range m.Arms {
			e.emitArmAsStmts(arm.Body)
			break
		}
		return ""
	}

	subj := e.emitExpr(m.Subject)
	subjType := e.inferExprType(m.Subject)

	alg, isAlgebraic := subjType.(*types.Algebraic)
	if !isAlgebraic {
		return e.emitScalarMatch(m, subj, subjType, wantValue)
	}

	resultType := e.inferMatchResultType(m)
	resultIsUnit := isUnitType(resultType)

	var resultTmp string
	if wantValue && !resultIsUnit {
		resultTmp = e.tmp()
		rct := MapType(resultType)
		e.line(fmt.Sprintf("%s %s;", rct.Decl, resultTmp))
	}

	subjTmp := e.tmp()
	sct := MapType(subjType)
	cname := MangleTypeName(alg.Name)
	e.line(fmt.Sprintf("%s %s = %s;", sct.Decl, subjTmp, subj))
	e.line(fmt.Sprintf("switch (%s.tag) {", subjTmp))

	for _, arm := range m.Arms {
		switch pat := arm.Pattern.(type) {
		case *ast.VariantPattern:
			tag := fmt.Sprintf("%s_TAG_%s", cname, upper(pat.Constructor))
			e.line(fmt.Sprintf("case %s: {", tag))
			e.indent++
			variant, ok := alg.Variant(pat.Constructor)
			if ok {
				for i, fieldPat := range pat.Fields {
					bp, ok := fieldPat.(*ast.BindingPattern)
					if !ok || i >= len(variant.Fields) {
						continue
					}
					fname := variant.Fields[i].Name
					ft := variant.Fields[i].Type
					fct := MapType(ft)
					e.locals[bp.Name] = ft
					e.line(fmt.Sprintf("%s %s = %s.%s.%s;", fct.Decl, bp.Name, subjTmp, pat.Constructor, fname))
				}
			}
			e.emitArmBody(arm.Body, resultTmp, resultIsUnit)
			e.line("break;")
			e.indent--
			e.line("}")
		case *ast.WildcardPattern, *ast.BindingPattern:
			e.line("default: {")
			e.indent++
			if bp, ok := pat.(*ast.BindingPattern); ok {
				e.locals[bp.Name] = subjType
				e.line(fmt.Sprintf("%s %s = %s;", sct.Decl, bp.Name, subjTmp))
			}
			e.emitArmBody(arm.Body, resultTmp, resultIsUnit)
			e.line("break;")
			e.indent--
			e.line("}")
		}
	}
	e.line("}")

	if wantValue && !resultIsUnit {
		return resultTmp
	}
	return ""
}

// emitScalarMatch lowers a match over a non-algebraic subject (an Integer,
// Boolean, Char or String literal pattern list) to an if/else-if chain
// comparing the already-evaluated subject against each literal, falling
// through to the first wildcard/binding arm as the else branch.
func (e *Emitter) emitScalarMatch(m *ast.MatchExpr, subj string, subjType types.Type, wantValue bool) string {
	resultType := e.inferMatchResultType(m)
	resultIsUnit := isUnitType(resultType)

	var resultTmp string
	if wantValue && !resultIsUnit {
		resultTmp = e.tmp()
		rct := MapType(resultType)
		e.line(fmt.Sprintf("%s %s;", rct.Decl, resultTmp))
	}

	subjTmp := e.tmp()
	sct := MapType(subjType)
	e.line(fmt.Sprintf("%s %s = %s;", sct.Decl, subjTmp, subj))

	wrote := false
	for _, arm := range m.Arms {
		switch pat := arm.Pattern.(type) {
		case *ast.LiteralPattern:
			kw := "if"
			if wrote {
				kw = "} else if"
			}
			e.line(fmt.Sprintf("%s (%s) {", kw, e.scalarPatternCond(subjTmp, subjType, pat.Text)))
			e.indent++
			e.emitArmBody(arm.Body, resultTmp, resultIsUnit)
			e.indent--
			wrote = true
		case *ast.WildcardPattern, *ast.BindingPattern:
			kw := "if (1) {"
			if wrote {
				kw = "} else {"
			}
			e.line(kw)
			e.indent++
			if bp, ok := pat.(*ast.BindingPattern); ok {
				e.locals[bp.Name] = subjType
				e.line(fmt.Sprintf("%s %s = %s;", sct.Decl, bp.Name, subjTmp))
			}
			e.emitArmBody(arm.Body, resultTmp, resultIsUnit)
			e.indent--
			wrote = true
		}
	}
	if wrote {
		e.line("}")
	}

	if wantValue && !resultIsUnit {
		return resultTmp
	}
	return ""
}

// scalarPatternCond builds the C condition testing subjTmp against a
// literal pattern's text. String subjects dispatch through
// prove_string_eq, the same way emitBinary handles `==` over strings;
// every other scalar kind compares directly.
func (e *Emitter) scalarPatternCond(subjTmp string, subjType types.Type, text string) string {
	if types.Compatible(subjType, types.StringT) {
		return fmt.Sprintf("prove_string_eq(%s, prove_string_from_cstr(%q))", subjTmp, e.escapeC(text))
	}
	return fmt.Sprintf("%s == %s", subjTmp, text)
}

// emitArmBody emits one match arm's body, writing its value into
// resultTmp when the match produces a value.
func (e *Emitter) emitArmBody(body ast.Expr, resultTmp string, resultIsUnit bool) {
	if tc, ok := body.(*ast.TailContinue); ok {
		e.emitTailContinue(tc)
		return
	}
	block, ok := body.(*ast.BlockExpr)
	if !ok {
		if resultTmp != "" {
			e.line(fmt.Sprintf("%s = %s;", resultTmp, e.emitExpr(body)))
		} else {
			e.line(fmt.Sprintf("%s;", e.emitExpr(body)))
		}
		return
	}
	for i, stmt := range block.Stmts {
		isLast := i == len(block.Stmts)-1
		if isLast && resultTmp != "" && !resultIsUnit {
			if expr, ok := stmtExpr(stmt); ok {
				if _, isTC := expr.(*ast.TailContinue); isTC {
					e.emitStmt(stmt)
					continue
				}
				e.line(fmt.Sprintf("%s = %s;", resultTmp, e.emitExpr(expr)))
				continue
			}
		}
		e.emitStmt(stmt)
	}
}

func (e *Emitter) emitArmAsStmts(body ast.Expr) {
	if block, ok := body.(*ast.BlockExpr); ok {
		for _, s := range block.Stmts {
			e.emitStmt(s)
		}
		return
	}
	e.line(fmt.Sprintf("%s;", e.emitExpr(body)))
}

func isUnitType(t types.Type) bool {
	_, ok := t.(*types.Unit)
	return ok
}
