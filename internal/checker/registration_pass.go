package checker

import (
	"github.com/proveland/prove/internal/ast"
	"github.com/proveland/prove/internal/stdlib"
	"github.com/proveland/prove/internal/symbols"
	"github.com/proveland/prove/internal/types"
)

// RegistrationPass is Pass 1: walk every declaration and
// populate the type registry, the function registry, and the module-scope
// symbol table, before any body is type-checked.
type RegistrationPass struct{}

func (p *RegistrationPass) Name() string { return "registration" }

func (p *RegistrationPass) Run(module *ast.Module, ctx *Context) {
	for _, d := range module.Decls {
		p.registerDecl(d, ctx)
	}
}

func (p *RegistrationPass) registerDecl(d ast.Decl, ctx *Context) {
	switch decl := d.(type) {
	case *ast.TypeDecl:
		p.registerType(decl, ctx)
	case *ast.FunctionDecl:
		p.registerFunction(decl, ctx)
	case *ast.ConstDecl:
		p.registerConst(decl, ctx)
	case *ast.ImportDecl:
		p.registerImport(decl, ctx)
	case *ast.ModuleDecl:
		for _, nested := range decl.Decls {
			p.registerDecl(nested, ctx)
		}
	case *ast.InvariantNetworkDecl:
		ctx.InvariantNetworks[decl.Name] = decl.Invariants
	case *ast.MainDecl:
		// Checked in pass 2; nothing to register.
	}
}

func (p *RegistrationPass) registerType(decl *ast.TypeDecl, ctx *Context) {
	if _, exists := ctx.Types.Resolve(decl.Name); exists {
		ctx.Diagnostics.Addf("E301", "type %q is already defined", decl.Name)
		return
	}

	switch body := decl.Body.(type) {
	case *ast.RecordBody:
		fields := make([]types.Field, len(body.Fields))
		for i, f := range body.Fields {
			fields[i] = types.Field{Name: f.Name, Type: resolveTypeExpr(ctx, f.Type)}
		}
		rec := &types.Record{Name: decl.Name, Fields: fields, Params: decl.Params}
		ctx.Types.Register(decl.Name, rec)

	case *ast.AlgebraicBody:
		variants := make([]types.AlgebraicVariant, len(body.Variants))
		for i, v := range body.Variants {
			fields := make([]types.Field, len(v.Fields))
			for j, f := range v.Fields {
				fields[j] = types.Field{Name: f.Name, Type: resolveTypeExpr(ctx, f.Type)}
			}
			variants[i] = types.AlgebraicVariant{Name: v.Name, Fields: fields}
		}
		alg := &types.Algebraic{Name: decl.Name, Variants: variants, Params: decl.Params}
		ctx.Types.Register(decl.Name, alg)

		for _, v := range alg.Variants {
			paramTypes := make([]types.Type, len(v.Fields))
			for i, f := range v.Fields {
				paramTypes[i] = f.Type
			}
			ctx.Functions.Register(&symbols.Signature{Verb: "", Name: v.Name, Params: paramTypes, Return: alg})
		}

	case *ast.RefinementBody:
		base := resolveTypeExpr(ctx, body.Base)
		ref := &types.Refinement{Name: decl.Name, Base: base}
		ctx.Types.Register(decl.Name, ref)
	}
}

func (p *RegistrationPass) registerFunction(decl *ast.FunctionDecl, ctx *Context) {
	params := make([]types.Type, len(decl.Parameters))
	for i, param := range decl.Parameters {
		params[i] = resolveTypeExpr(ctx, param.Type)
	}

	var ret types.Type
	switch {
	case decl.ReturnType != nil:
		ret = resolveTypeExpr(ctx, decl.ReturnType)
	case decl.Verb == ast.VerbValidates:
		ret = types.Boolean
	default:
		ret = types.UnitT
	}

	for _, existing := range ctx.Functions.Candidates(string(decl.Verb), decl.Name) {
		if existing.Verb != string(decl.Verb) || len(existing.Params) != len(params) {
			continue
		}
		match := true
		for i := range params {
			if !types.Compatible(existing.Params[i], params[i]) {
				match = false
				break
			}
		}
		if match {
			ctx.Diagnostics.Addf("E301", "function %q is already defined for this parameter list", decl.Name)
			return
		}
	}

	ctx.Functions.Register(&symbols.Signature{Verb: string(decl.Verb), Name: decl.Name, Params: params, Return: ret})
}

func (p *RegistrationPass) registerConst(decl *ast.ConstDecl, ctx *Context) {
	var declared types.Type
	if decl.Type != nil {
		declared = resolveTypeExpr(ctx, decl.Type)
	} else {
		declared = types.Error
	}
	if err := ctx.Symbols.Define(&symbols.Symbol{Name: decl.Name, Type: declared, IsConst: true, ReadOnly: true}); err != nil {
		ctx.Diagnostics.Addf("E301", "constant %q is already defined", decl.Name)
	}
}

func (p *RegistrationPass) registerImport(decl *ast.ImportDecl, ctx *Context) {
	name := decl.Alias
	if name == "" && len(decl.Path) > 0 {
		name = decl.Path[len(decl.Path)-1]
	}
	if name == "" {
		return
	}

	if len(decl.Path) > 0 && stdlib.IsModule(decl.Path[0]) {
		if err := stdlib.RegisterInto(ctx.Functions, decl.Path[0]); err != nil {
			ctx.Diagnostics.Addf("E302", "loading stdlib module %q: %s", decl.Path[0], err)
		}
		return
	}

	_ = ctx.Symbols.Define(&symbols.Symbol{Name: name, Type: types.Error, ReadOnly: true})
	ctx.Functions.Register(&symbols.Signature{Verb: "", Name: name, Params: nil, Return: types.Error})
}
