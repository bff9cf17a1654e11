package emitter

import (
	"github.com/proveland/prove/internal/ast"
	"github.com/proveland/prove/internal/symbols"
	"github.com/proveland/prove/internal/types"
)

// resolveTypeExpr turns a syntactic type expression into a resolved type
// using the emitter's own copy of the type registry — mirrors
// checker.resolveTypeExpr but kept independent so package emitter never
// needs to import package checker.
func (e *Emitter) resolveTypeExpr(te ast.TypeExpr) types.Type {
	switch t := te.(type) {
	case nil:
		return types.UnitT
	case *ast.SimpleType:
		if rt, ok := e.types.Resolve(t.Name); ok {
			return rt
		}
		return types.Error
	case *ast.GenericType:
		args := make([]types.Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = e.resolveTypeExpr(a)
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
		return types.Error
	}
}

// signatureFor resolves the registered signature for a function
// declaration by its declared parameter count, used to recover each
// parameter's and the return value's resolved type for code generation.
func (e *Emitter) signatureFor(decl *ast.FunctionDecl) *symbols.Signature {
	paramTypes := make([]types.Type, len(decl.Parameters))
	for i, p := range decl.Parameters {
		paramTypes[i] = e.resolveTypeExpr(p.Type)
	}
	var ret types.Type
	switch {
	case decl.ReturnType != nil:
		ret = e.resolveTypeExpr(decl.ReturnType)
	case decl.Verb == ast.VerbValidates:
		ret = types.Boolean
	default:
		ret = types.UnitT
	}
	return &symbols.Signature{Verb: string(decl.Verb), Name: decl.Name, Params: paramTypes, Return: ret}
}
