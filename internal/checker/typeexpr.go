package checker

import (
	"github.com/proveland/prove/internal/ast"
	"github.com/proveland/prove/internal/source"
	"github.com/proveland/prove/internal/types"
)

// resolveTypeExpr turns a syntactic ast.TypeExpr into a resolved
// types.Type, looking up named types in the registry and recursing into
// generic arguments. A nil TypeExpr (no annotation) resolves to Unit.
func resolveTypeExpr(ctx *Context, te ast.TypeExpr) types.Type {
	switch t := te.(type) {
	case nil:
		return types.UnitT
	case *ast.SimpleType:
		if rt, ok := ctx.Types.Resolve(t.Name); ok {
			return rt
		}
		ctx.Diagnostics.Addf("E340", "unknown type %q", t.Name)
		return types.Error
	case *ast.GenericType:
		args := make([]types.Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = resolveTypeExpr(ctx, a)
		}
		if t.Name == "List" && len(args) == 1 {
			return &types.List{Elem: args[0]}
		}
		return &types.GenericInstance{BaseName: t.Name, Args: args}
	case *ast.ModifiedType:
		mods := make([]string, 0, len(t.Modifiers))
		for _, m := range t.Modifiers {
			if m.Name != "" {
				mods = append(mods, m.Name+":"+m.Value)
				continue
			}
			mods = append(mods, m.Value)
		}
		return &types.Primitive{Name: t.Name, Modifiers: mods}
	default:
		ctx.Diagnostics.Add(source.Newf("E340", "unrecognized type expression"))
		return types.Error
	}
}
