package emitter

import (
	"github.com/proveland/prove/internal/ast"
	"github.com/proveland/prove/internal/types"
)

// inferExprType is the emitter's own lightweight type inference, mirroring
// checker.inferExpr closely enough to pick the right C representation and
// runtime call, but independent of the checker's cached results so it
// stays correct over AST shapes the optimizer introduces.
func (e *Emitter) inferExprType(expr ast.Expr) types.Type {
	switch ex := expr.(type) {
	case *ast.IntegerLiteral:
		return types.Integer
	case *ast.DecimalLiteral:
		return types.Decimal
	case *ast.StringLiteral, *ast.TripleStringLiteral, *ast.RawStringLiteral, *ast.InterpolatedString:
		return types.StringT
	case *ast.BooleanLiteral:
		return types.Boolean
	case *ast.CharLiteral:
		return types.CharT
	case *ast.RegexLiteral, *ast.PathLiteral:
		return types.StringT
	case *ast.Identifier:
		if t, ok := e.locals[ex.Name]; ok {
			return t
		}
		if ex.IsType {
			if t, ok := e.types.Resolve(ex.Name); ok {
				return t
			}
		}
		return types.Error
	case *ast.BinaryExpr:
		if isComparisonOp(ex.Op) {
			return types.Boolean
		}
		if ex.Op == ".." {
			return &types.List{Elem: e.inferExprType(ex.Left)}
		}
		return e.inferExprType(ex.Left)
	case *ast.UnaryExpr:
		if ex.Op == "!" {
			return types.Boolean
		}
		return e.inferExprType(ex.Operand)
	case *ast.CallExpr:
		return e.inferCallType(ex)
	case *ast.FieldAccess:
		objT := e.inferExprType(ex.Target)
		if rec, ok := objT.(*types.Record); ok {
			if ft := rec.FieldType(ex.Field); ft != nil {
				return ft
			}
		}
		return types.Error
	case *ast.PipeExpr:
		return e.inferPipeType(ex)
	case *ast.FailPropExpr:
		inner := e.inferExprType(ex.Operand)
		if gi, ok := inner.(*types.GenericInstance); ok && gi.BaseName == "Result" && len(gi.Args) > 0 {
			return gi.Args[0]
		}
		return types.Error
	case *ast.IfExpr:
		return e.inferIfType(ex)
	case *ast.MatchExpr:
		return e.inferMatchResultType(ex)
	case *ast.ListLiteral:
		if len(ex.Elements) > 0 {
			return &types.List{Elem: e.inferExprType(ex.Elements[0])}
		}
		return &types.List{Elem: types.Integer}
	case *ast.LambdaExpr:
		return &types.Function{Params: nil, Return: types.UnitT}
	case *ast.IndexExpr:
		if lt, ok := e.inferExprType(ex.Target).(*types.List); ok {
			return lt.Elem
		}
		return types.Error
	default:
		return types.Error
	}
}

func isComparisonOp(op string) bool {
	switch op {
	case "==", "!=", "<", ">", "<=", ">=", "&&", "||":
		return true
	default:
		return false
	}
}

func (e *Emitter) inferCallType(expr *ast.CallExpr) types.Type {
	id, ok := expr.Callee.(*ast.Identifier)
	if !ok {
		return types.Error
	}
	if sig, _ := e.functions.Resolve("", id.Name, make([]types.Type, len(expr.Args))); sig != nil {
		return sig.Return
	}
	if sig, _ := e.functions.ResolveAny(id.Name, make([]types.Type, len(expr.Args))); sig != nil {
		return sig.Return
	}
	return types.Error
}

func (e *Emitter) inferPipeType(expr *ast.PipeExpr) types.Type {
	switch rhs := expr.Right.(type) {
	case *ast.Identifier:
		if sig, _ := e.functions.Resolve("", rhs.Name, make([]types.Type, 1)); sig != nil {
			return sig.Return
		}
	case *ast.CallExpr:
		if id, ok := rhs.Callee.(*ast.Identifier); ok {
			total := make([]types.Type, 1+len(rhs.Args))
			if sig, _ := e.functions.Resolve("", id.Name, total); sig != nil {
				return sig.Return
			}
		}
	}
	return types.Error
}

func (e *Emitter) inferIfType(expr *ast.IfExpr) types.Type {
	if block, ok := expr.Then.(*ast.BlockExpr); ok && len(block.Stmts) > 0 {
		if es, ok := block.Stmts[len(block.Stmts)-1].(*ast.ExprStmt); ok {
			return e.inferExprType(es.X)
		}
	}
	return types.UnitT
}

func (e *Emitter) inferMatchResultType(m *ast.MatchExpr) types.Type {
	for _, arm := range m.Arms {
		return e.inferExprType(arm.Body)
	}
	return types.UnitT
}
