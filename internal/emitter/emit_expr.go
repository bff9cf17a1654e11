package emitter

import (
	"fmt"
	"strings"

	"github.com/proveland/prove/internal/ast"
	"github.com/proveland/prove/internal/types"
)

// emitExpr is the general expression-emission dispatcher,
// returning a C expression fragment. Constructs that need statements of
// their own (If in statement position, Match, Lambda hoisting) emit those
// statements as a side effect and return the fragment that reads the
// resulting value.
func (e *Emitter) emitExpr(expr ast.Expr) string {
	switch ex := expr.(type) {
	case *ast.IntegerLiteral:
		return ex.Text + "L"
	case *ast.DecimalLiteral:
		return ex.Text
	case *ast.BooleanLiteral:
		if ex.Value {
			return "true"
		}
		return "false"
	case *ast.CharLiteral:
		return fmt.Sprintf("'%s'", e.escapeC(string(ex.Value)))
	case *ast.StringLiteral:
		return fmt.Sprintf("prove_string_from_cstr(%q)", e.escapeC(ex.Value))
	case *ast.TripleStringLiteral:
		return fmt.Sprintf("prove_string_from_cstr(%q)", e.escapeC(ex.Value))
	case *ast.RawStringLiteral:
		return fmt.Sprintf("prove_string_from_cstr(%q)", e.escapeC(ex.Value))
	case *ast.RegexLiteral:
		return fmt.Sprintf("prove_string_from_cstr(%q)", e.escapeC(ex.Pattern))
	case *ast.PathLiteral:
		return fmt.Sprintf("prove_string_from_cstr(%q)", e.escapeC(ex.Path))
	case *ast.InterpolatedString:
		return e.emitStringInterp(ex)
	case *ast.Identifier:
		return ex.Name
	case *ast.BinaryExpr:
		return e.emitBinary(ex)
	case *ast.UnaryExpr:
		return fmt.Sprintf("%s%s", ex.Op, e.emitExpr(ex.Operand))
	case *ast.CallExpr:
		return e.emitCall(ex)
	case *ast.FieldAccess:
		return e.emitField(ex)
	case *ast.IndexExpr:
		return e.emitIndex(ex)
	case *ast.PipeExpr:
		return e.emitPipe(ex)
	case *ast.FailPropExpr:
		return e.emitFailProp(ex)
	case *ast.IfExpr:
		return e.emitIf(ex)
	case *ast.MatchExpr:
		return e.emitMatch(ex, true)
	case *ast.LambdaExpr:
		return e.emitLambda(ex)
	case *ast.ListLiteral:
		return e.emitListLiteral(ex)
	case *ast.TailContinue:
		e.emitTailContinue(ex)
		return ""
	case *ast.BlockExpr:
		for i, stmt := range ex.Stmts {
			if i == len(ex.Stmts)-1 {
				if v, ok := stmtExpr(stmt); ok {
					return e.emitExpr(v)
				}
			}
			e.emitStmt(stmt)
		}
		return ""
	default:
		return "/* unsupported expr */"
	}
}

func (e *Emitter) emitBinary(b *ast.BinaryExpr) string {
	leftType := e.inferExprType(b.Left)
	left := e.emitExpr(b.Left)
	right := e.emitExpr(b.Right)

	if types.Compatible(leftType, types.StringT) {
		switch b.Op {
		case "+":
			return fmt.Sprintf("prove_string_concat(%s, %s)", left, right)
		case "==":
			return fmt.Sprintf("prove_string_eq(%s, %s)", left, right)
		case "!=":
			return fmt.Sprintf("!prove_string_eq(%s, %s)", left, right)
		}
	}
	return fmt.Sprintf("(%s %s %s)", left, b.Op, right)
}

func (e *Emitter) emitCall(c *ast.CallExpr) string {
	id, ok := c.Callee.(*ast.Identifier)
	if !ok {
		return fmt.Sprintf("%s(%s)", e.emitExpr(c.Callee), joinComma(e.emitArgs(c.Args)))
	}

	if id.IsType {
		// Variant constructor call: <Variant>(args...), the static inline
		// constructor function emit_types.go names after the variant.
		return fmt.Sprintf("%s(%s)", id.Name, joinComma(e.emitArgs(c.Args)))
	}

	if rt, isFn := builtinMap[id.Name]; isFn {
		return fmt.Sprintf("%s(%s)", rt, joinComma(e.emitArgs(c.Args)))
	}

	switch id.Name {
	case "to_string":
		if len(c.Args) == 1 {
			return e.emitToString(c.Args[0])
		}
	case "len":
		if len(c.Args) == 1 {
			argT := e.inferExprType(c.Args[0])
			if types.Compatible(argT, types.StringT) {
				return fmt.Sprintf("prove_string_len(%s)", e.emitExpr(c.Args[0]))
			}
			return fmt.Sprintf("prove_list_len(%s)", e.emitExpr(c.Args[0]))
		}
	}

	argTypes := make([]types.Type, len(c.Args))
	for i, a := range c.Args {
		argTypes[i] = e.inferExprType(a)
	}
	mangled := id.Name
	if sig, _ := e.functions.Resolve("", id.Name, argTypes); sig != nil {
		mangled = MangleName(sig.Verb, sig.Name, sig.Params)
	}
	return fmt.Sprintf("%s(%s)", mangled, joinComma(e.emitArgs(c.Args)))
}

func (e *Emitter) emitArgs(args []ast.Expr) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = e.emitExpr(a)
	}
	return out
}

func (e *Emitter) emitToString(arg ast.Expr) string {
	t := e.inferExprType(arg)
	v := e.emitExpr(arg)
	switch {
	case types.Compatible(t, types.Integer):
		return fmt.Sprintf("prove_string_from_int(%s)", v)
	case types.Compatible(t, types.Decimal):
		return fmt.Sprintf("prove_string_from_double(%s)", v)
	case types.Compatible(t, types.Boolean):
		return fmt.Sprintf("prove_string_from_bool(%s)", v)
	case types.Compatible(t, types.CharT):
		return fmt.Sprintf("prove_string_from_char(%s)", v)
	default:
		return v
	}
}

func (e *Emitter) emitField(f *ast.FieldAccess) string {
	targetType := e.inferExprType(f.Target)
	op := "."
	if MapType(targetType).IsPointer {
		op = "->"
	}
	return fmt.Sprintf("%s%s%s", e.emitExpr(f.Target), op, f.Field)
}

func (e *Emitter) emitIndex(ix *ast.IndexExpr) string {
	return fmt.Sprintf("prove_list_get(%s, %s)", e.emitExpr(ix.Target), e.emitExpr(ix.Index))
}

func (e *Emitter) emitPipe(p *ast.PipeExpr) string {
	switch rhs := p.Right.(type) {
	case *ast.Identifier:
		call := &ast.CallExpr{Callee: rhs, Args: []ast.Expr{p.Left}}
		return e.emitCall(call)
	case *ast.CallExpr:
		call := &ast.CallExpr{Callee: rhs.Callee, Args: append([]ast.Expr{p.Left}, rhs.Args...)}
		return e.emitCall(call)
	default:
		return e.emitExpr(p.Right)
	}
}

func (e *Emitter) emitFailProp(f *ast.FailPropExpr) string {
	tmp := e.tmp()
	inner := e.inferExprType(f.Operand)
	ct := MapType(inner)
	e.line(fmt.Sprintf("%s %s = %s;", ct.Decl, tmp, e.emitExpr(f.Operand)))
	e.line(fmt.Sprintf("if (%s.is_error) {", tmp))
	e.indent++
	if gi, ok := e.returnType.(*types.GenericInstance); ok && gi.BaseName == "Result" {
		e.line(fmt.Sprintf("return prove_result_err(%s.error);", tmp))
	} else {
		e.line(fmt.Sprintf("return %s;", tmp))
	}
	e.indent--
	e.line("}")
	return fmt.Sprintf("%s.value", tmp)
}

func (e *Emitter) emitIf(i *ast.IfExpr) string {
	resultType := e.inferIfType(i)
	if isUnitType(resultType) || i.Else == nil {
		e.line(fmt.Sprintf("if (%s) {", e.emitExpr(i.Cond)))
		e.indent++
		e.emitArmAsStmts(i.Then)
		e.indent--
		if i.Else != nil {
			e.line("} else {")
			e.indent++
			e.emitArmAsStmts(i.Else)
			e.indent--
		}
		e.line("}")
		return ""
	}

	tmp := e.tmp()
	ct := MapType(resultType)
	e.line(fmt.Sprintf("%s %s;", ct.Decl, tmp))
	e.line(fmt.Sprintf("if (%s) {", e.emitExpr(i.Cond)))
	e.indent++
	e.assignArmResult(i.Then, tmp)
	e.indent--
	e.line("} else {")
	e.indent++
	e.assignArmResult(i.Else, tmp)
	e.indent--
	e.line("}")
	return tmp
}

func (e *Emitter) assignArmResult(body ast.Expr, tmp string) {
	block, ok := body.(*ast.BlockExpr)
	if !ok {
		e.line(fmt.Sprintf("%s = %s;", tmp, e.emitExpr(body)))
		return
	}
	for i, stmt := range block.Stmts {
		if i == len(block.Stmts)-1 {
			if v, ok := stmtExpr(stmt); ok {
				e.line(fmt.Sprintf("%s = %s;", tmp, e.emitExpr(v)))
				continue
			}
		}
		e.emitStmt(stmt)
	}
}

func (e *Emitter) emitLambda(l *ast.LambdaExpr) string {
	name := fmt.Sprintf("_prove_lambda%d", len(e.lambdas))

	savedOut, savedIndent, savedLocals := e.out, e.indent, e.locals
	e.out = nil
	e.indent = 1
	e.locals = make(map[string]types.Type, len(l.Params))
	for _, p := range l.Params {
		e.locals[p] = types.Error
	}

	params := make([]string, len(l.Params))
	for i, p := range l.Params {
		params[i] = fmt.Sprintf("void *%s", p)
	}
	paramStr := "void"
	if len(params) > 0 {
		paramStr = joinComma(params)
	}

	header := fmt.Sprintf("static void *%s(%s) {", name, paramStr)
	if block, ok := l.Body.(*ast.BlockExpr); ok {
		for i, stmt := range block.Stmts {
			if i == len(block.Stmts)-1 {
				if v, ok := stmtExpr(stmt); ok {
					e.line(fmt.Sprintf("return (void *) %s;", e.emitExpr(v)))
					continue
				}
			}
			e.emitStmt(stmt)
		}
	} else {
		e.line(fmt.Sprintf("return (void *) %s;", e.emitExpr(l.Body)))
	}
	body := e.out

	e.out, e.indent, e.locals = savedOut, savedIndent, savedLocals

	fn := append([]string{header}, body...)
	fn = append(fn, "}", "")
	e.lambdas = append(e.lambdas, strings.Join(fn, "\n"))

	return name
}

func (e *Emitter) emitListLiteral(l *ast.ListLiteral) string {
	tmp := e.tmp()
	e.line(fmt.Sprintf("Prove_List *%s = prove_list_new();", tmp))
	for _, el := range l.Elements {
		e.line(fmt.Sprintf("prove_list_push(%s, (void *) (intptr_t) %s);", tmp, e.emitExpr(el)))
	}
	return tmp
}

func (e *Emitter) emitStringInterp(s *ast.InterpolatedString) string {
	tmp := e.tmp()
	e.line(fmt.Sprintf("Prove_String *%s = prove_string_from_cstr(\"\");", tmp))
	for _, seg := range s.Segments {
		if seg.Expr == nil {
			e.line(fmt.Sprintf("%s = prove_string_concat(%s, prove_string_from_cstr(%q));", tmp, tmp, e.escapeC(seg.Text)))
			continue
		}
		frag := e.emitToString(seg.Expr)
		e.line(fmt.Sprintf("%s = prove_string_concat(%s, %s);", tmp, tmp, frag))
	}
	return tmp
}
