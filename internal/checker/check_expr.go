package checker

import (
	"github.com/proveland/prove/internal/ast"
	"github.com/proveland/prove/internal/symbols"
	"github.com/proveland/prove/internal/types"
)

// inferExpr infers expr's type, recording it
// in ctx.ExprTypes and emitting diagnostics for anything unresolvable. It
// never returns nil — an unrecognized shape yields the poison error type so
// one bad expression cannot cascade into a wall of further mismatches.
func (c *checkPass) inferExpr(ctx *Context, expr ast.Expr) types.Type {
	if expr == nil {
		return types.UnitT
	}
	t := c.inferExprUncached(ctx, expr)
	ctx.SetType(expr, t)
	return t
}

func (c *checkPass) inferExprUncached(ctx *Context, expr ast.Expr) types.Type {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return types.Integer
	case *ast.DecimalLiteral:
		return types.Decimal
	case *ast.StringLiteral, *ast.TripleStringLiteral, *ast.RawStringLiteral, *ast.InterpolatedString:
		if ie, ok := expr.(*ast.InterpolatedString); ok {
			for _, seg := range ie.Segments {
				if seg.Expr != nil {
					c.inferExpr(ctx, seg.Expr)
				}
			}
		}
		return types.StringT
	case *ast.CharLiteral:
		return types.CharT
	case *ast.BooleanLiteral:
		return types.Boolean
	case *ast.RegexLiteral:
		return types.StringT
	case *ast.PathLiteral:
		return types.StringT
	case *ast.Identifier:
		return c.inferIdentifier(ctx, e)
	case *ast.BinaryExpr:
		return c.inferBinary(ctx, e)
	case *ast.UnaryExpr:
		operand := c.inferExpr(ctx, e.Operand)
		if e.Op == "!" {
			return types.Boolean
		}
		return operand
	case *ast.CallExpr:
		return c.inferCall(ctx, e)
	case *ast.FieldAccess:
		return c.inferFieldAccess(ctx, e)
	case *ast.IndexExpr:
		c.inferExpr(ctx, e.Index)
		listT := c.inferExpr(ctx, e.Target)
		if lt, ok := listT.(*types.List); ok {
			return lt.Elem
		}
		return types.Error
	case *ast.PipeExpr:
		return c.inferPipe(ctx, e)
	case *ast.FailPropExpr:
		return c.inferFailProp(ctx, e)
	case *ast.LambdaExpr:
		params := make([]types.Type, len(e.Params))
		for i := range e.Params {
			params[i] = &types.TypeVariable{Name: e.Params[i]}
		}
		ctx.Symbols.Push()
		for _, pname := range e.Params {
			_ = ctx.Symbols.Define(&symbols.Symbol{Name: pname, Type: &types.TypeVariable{Name: pname}})
		}
		ret := c.inferExpr(ctx, e.Body)
		ctx.Symbols.Pop()
		return &types.Function{Params: params, Return: ret}
	case *ast.ListLiteral:
		if len(e.Elements) == 0 {
			return &types.List{Elem: types.Error}
		}
		first := c.inferExpr(ctx, e.Elements[0])
		for _, el := range e.Elements[1:] {
			c.inferExpr(ctx, el)
		}
		return &types.List{Elem: first}
	case *ast.IfExpr:
		c.inferExpr(ctx, e.Cond)
		thenT := c.inferExpr(ctx, e.Then)
		if e.Else == nil {
			return types.UnitT
		}
		elseT := c.inferExpr(ctx, e.Else)
		if types.Compatible(thenT, elseT) {
			return thenT
		}
		return types.Error
	case *ast.MatchExpr:
		return c.inferMatch(ctx, e)
	case *ast.ComptimeBlock:
		return c.inferExpr(ctx, e.Body)
	case *ast.ValidRef:
		return types.Boolean
	case *ast.BlockExpr:
		return c.checkBlock(ctx, e)
	default:
		return types.Error
	}
}
