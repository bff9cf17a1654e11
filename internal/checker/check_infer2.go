package checker

import (
	"github.com/proveland/prove/internal/ast"
	"github.com/proveland/prove/internal/symbols"
	"github.com/proveland/prove/internal/types"
)

var comparisonOps = map[string]bool{
	"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true,
	"&&": true, "||": true,
}

func (c *checkPass) inferIdentifier(ctx *Context, id *ast.Identifier) types.Type {
	if sym, ok := ctx.Symbols.Resolve(id.Name); ok {
		sym.MarkUsed()
		return sym.Type
	}
	if id.IsType {
		if t, ok := ctx.Types.Resolve(id.Name); ok {
			return t
		}
	}
	ctx.Diagnostics.Addf("E310", "undefined name %q", id.Name)
	return types.Error
}

func (c *checkPass) inferBinary(ctx *Context, e *ast.BinaryExpr) types.Type {
	left := c.inferExpr(ctx, e.Left)
	right := c.inferExpr(ctx, e.Right)

	if e.Op == ".." {
		return &types.List{Elem: left}
	}
	if comparisonOps[e.Op] {
		return types.Boolean
	}
	if e.Op == "+" {
		if types.Compatible(left, types.StringT) && types.Compatible(right, types.StringT) {
			return types.StringT
		}
	}
	return left
}

func (c *checkPass) inferCall(ctx *Context, e *ast.CallExpr) types.Type {
	argTypes := make([]types.Type, len(e.Args))
	for i, a := range e.Args {
		argTypes[i] = c.inferExpr(ctx, a)
	}

	id, ok := e.Callee.(*ast.Identifier)
	if !ok {
		c.inferExpr(ctx, e.Callee)
		return types.Error
	}

	sig, ok := ctx.Functions.Resolve("", id.Name, argTypes)
	if sig == nil {
		ctx.Diagnostics.Addf("E310", "undefined function %q", id.Name)
		return types.Error
	}
	if !ok {
		ctx.Diagnostics.Addf("E330", "%q expects %d argument(s), got %d", id.Name, len(sig.Params), len(argTypes))
	}
	return sig.Return
}

func (c *checkPass) inferFieldAccess(ctx *Context, e *ast.FieldAccess) types.Type {
	targetT := c.inferExpr(ctx, e.Target)
	rec, ok := targetT.(*types.Record)
	if !ok {
		ctx.Diagnostics.Addf("E340", "field access %q on non-record type %s", e.Field, targetT)
		return types.Error
	}
	ft := rec.FieldType(e.Field)
	if ft == nil {
		ctx.Diagnostics.Addf("E340", "record %s has no field %q", rec.Name, e.Field)
		return types.Error
	}
	return ft
}

func (c *checkPass) inferPipe(ctx *Context, e *ast.PipeExpr) types.Type {
	leftT := c.inferExpr(ctx, e.Left)
	switch rhs := e.Right.(type) {
	case *ast.Identifier:
		sig, ok := ctx.Functions.Resolve("", rhs.Name, []types.Type{leftT})
		if sig == nil {
			ctx.Diagnostics.Addf("E310", "undefined function %q", rhs.Name)
			return types.Error
		}
		if !ok {
			ctx.Diagnostics.Addf("E330", "%q expects %d argument(s), got 1", rhs.Name, len(sig.Params))
		}
		return sig.Return
	case *ast.CallExpr:
		argTypes := make([]types.Type, 0, len(rhs.Args)+1)
		argTypes = append(argTypes, leftT)
		for _, a := range rhs.Args {
			argTypes = append(argTypes, c.inferExpr(ctx, a))
		}
		id, ok := rhs.Callee.(*ast.Identifier)
		if !ok {
			return types.Error
		}
		sig, ok := ctx.Functions.Resolve("", id.Name, argTypes)
		if sig == nil {
			ctx.Diagnostics.Addf("E310", "undefined function %q", id.Name)
			return types.Error
		}
		if !ok {
			ctx.Diagnostics.Addf("E330", "%q expects %d argument(s), got %d", id.Name, len(sig.Params), len(argTypes))
		}
		return sig.Return
	default:
		return c.inferExpr(ctx, e.Right)
	}
}

func (c *checkPass) inferFailProp(ctx *Context, e *ast.FailPropExpr) types.Type {
	if ctx.CurrentFunction == nil || !ctx.CurrentFunction.CanFail {
		ctx.Diagnostics.Addf("E350", "fail-propagation `!` is only permitted in a failable function")
	}
	operandT := c.inferExpr(ctx, e.Operand)
	if gi, ok := operandT.(*types.GenericInstance); ok && gi.BaseName == "Result" && len(gi.Args) > 0 {
		return gi.Args[0]
	}
	return operandT
}

func (c *checkPass) inferMatch(ctx *Context, e *ast.MatchExpr) types.Type {
	var subjectT types.Type = types.Error
	if e.Subject != nil {
		subjectT = c.inferExpr(ctx, e.Subject)
	}
	alg, isAlgebraic := subjectT.(*types.Algebraic)

	var resultT types.Type
	sawWildcard := false
	covered := make(map[string]bool)

	for _, arm := range e.Arms {
		if sawWildcard {
			ctx.Diagnostics.Warnf("W301", "unreachable match arm after a wildcard or binding pattern")
		}
		switch pat := arm.Pattern.(type) {
		case *ast.WildcardPattern, *ast.BindingPattern:
			sawWildcard = true
			if bp, ok := pat.(*ast.BindingPattern); ok {
				ctx.Symbols.Push()
				_ = ctx.Symbols.Define(&symbols.Symbol{Name: bp.Name, Type: subjectT})
				c.bindArm(ctx, arm, &resultT)
				ctx.Symbols.Pop()
				continue
			}
		case *ast.VariantPattern:
			if isAlgebraic {
				variant, ok := alg.Variant(pat.Constructor)
				if !ok {
					ctx.Diagnostics.Addf("E370", "unknown variant %q for type %s", pat.Constructor, alg.Name)
				} else {
					covered[pat.Constructor] = true
					ctx.Symbols.Push()
					for i, fieldPat := range pat.Fields {
						if bp, ok := fieldPat.(*ast.BindingPattern); ok && i < len(variant.Fields) {
							_ = ctx.Symbols.Define(&symbols.Symbol{Name: bp.Name, Type: variant.Fields[i].Type})
						}
					}
					c.bindArm(ctx, arm, &resultT)
					ctx.Symbols.Pop()
					continue
				}
			}
		}
		c.bindArm(ctx, arm, &resultT)
	}

	if isAlgebraic && !sawWildcard {
		for _, name := range alg.VariantNames() {
			if !covered[name] {
				ctx.Diagnostics.Addf("E371", "match on %s is not exhaustive: missing variant %q", alg.Name, name)
			}
		}
	}

	if resultT == nil {
		return types.UnitT
	}
	return resultT
}

// bindArm checks one arm's guard and body, folding the body type into the
// running match-result type.
func (c *checkPass) bindArm(ctx *Context, arm ast.MatchArm, resultT *types.Type) {
	if arm.Guard != nil {
		c.inferExpr(ctx, arm.Guard)
	}
	bodyT := c.inferExpr(ctx, arm.Body)
	if *resultT == nil {
		*resultT = bodyT
		return
	}
	if !types.Compatible(*resultT, bodyT) {
		*resultT = types.Error
	}
}
