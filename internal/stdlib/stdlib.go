// Package stdlib loads bundled declarations-only .prv files and registers
// their function signatures, grounded on
// original_source/prove-py/src/prove/stdlib_loader.py. Bodies in the
// bundled files are placeholders; only signatures (verb, name, parameter
// types, return type, can_fail) are kept.
package stdlib

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/proveland/prove/internal/ast"
	"github.com/proveland/prove/internal/lexer"
	"github.com/proveland/prove/internal/parser"
	"github.com/proveland/prove/internal/source"
	"github.com/proveland/prove/internal/symbols"
	"github.com/proveland/prove/internal/types"
)

//go:embed prv/*.prv
var bundled embed.FS

// modules maps a normalized (lowercased) module name to its bundled
// filename; several display names may alias the same file.
var modules = map[string]string{
	"io":          "input_output.prv",
	"inputoutput": "input_output.prv",
	"text":        "text.prv",
	"table":       "table.prv",
	"parse":       "parse.prv",
	"character":   "character.prv",
}

// displayNames maps a canonical module key to the name used in `with
// <Name> use ...` import clauses.
var displayNames = map[string]string{
	"io":          "InputOutput",
	"inputoutput": "InputOutput",
	"text":        "Text",
	"table":       "Table",
	"parse":       "Parse",
	"character":   "Character",
}

// aliasKeys are skipped when building the reverse import index, so an
// aliased module isn't suggested twice under two different display names.
var aliasKeys = map[string]bool{"inputoutput": true}

// binaryCNames maps (module, verb, name) to the runtime C function an
// emitted call should invoke directly, bypassing the usual prv_ mangled
// name dispatch.
var binaryCNames = map[[3]string]string{
	{"io", "outputs", "console"}: "prove_println",
	{"io", "inputs", "console"}:  "prove_readln",
	{"io", "inputs", "file"}:     "prove_file_read",
	{"io", "outputs", "file"}:    "prove_file_write",
}

// BinaryCName looks up the runtime C function name for a binary stdlib
// function, or "" if none is registered.
func BinaryCName(module, verb, name string) string {
	return binaryCNames[[3]string{strings.ToLower(module), verb, name}]
}

// IsModule reports whether name (case-insensitively) names a bundled
// stdlib module.
func IsModule(name string) bool {
	_, ok := modules[strings.ToLower(name)]
	return ok
}

// AvailableModules returns the canonical (lowercase) keys of every bundled
// module.
func AvailableModules() []string {
	out := make([]string, 0, len(modules))
	for k := range modules {
		out = append(out, k)
	}
	return out
}

var cacheMu sync.Mutex
var cache = map[string][]*symbols.Signature{}

// Load parses a bundled stdlib module's declarations and returns its
// function signatures, caching the result for the lifetime of the process.
// Returns an empty slice, not an error, for an unknown module name — it is
// never a compile error to ask for a module that does not exist; the
// caller reports "unknown module" itself with full source position.
func Load(moduleName string) ([]*symbols.Signature, error) {
	normalized := strings.ToLower(moduleName)

	cacheMu.Lock()
	if sigs, ok := cache[normalized]; ok {
		cacheMu.Unlock()
		return sigs, nil
	}
	cacheMu.Unlock()

	filename, ok := modules[normalized]
	if !ok {
		return nil, nil
	}

	module, err := parseModule(moduleName, filename)
	if err != nil {
		return nil, err
	}

	sigs := extractSignatures(module, normalized)

	cacheMu.Lock()
	cache[normalized] = sigs
	cacheMu.Unlock()

	return sigs, nil
}

// RegisterInto loads moduleName and registers every signature it declares
// into reg.
func RegisterInto(reg *symbols.FunctionRegistry, moduleName string) error {
	sigs, err := Load(moduleName)
	if err != nil {
		return err
	}
	for _, sig := range sigs {
		reg.Register(sig)
	}
	return nil
}

func parseModule(moduleName, filename string) (*ast.Module, error) {
	src, err := bundled.ReadFile("prv/" + filename)
	if err != nil {
		return nil, fmt.Errorf("stdlib: reading bundled module %s: %w", moduleName, err)
	}
	label := fmt.Sprintf("<stdlib:%s>", moduleName)
	tokens, diags := lexer.New(string(src), label).Lex()
	if diags != nil && diags.HasErrors() {
		return nil, fmt.Errorf("stdlib: lexing bundled module %s: %s", moduleName, summarize(diags))
	}
	p := parser.New(tokens, label)
	module := p.ParseModule()
	if p.Diagnostics().HasErrors() {
		return nil, fmt.Errorf("stdlib: parsing bundled module %s: %s", moduleName, summarize(p.Diagnostics()))
	}
	return module, nil
}

func summarize(bag interface{ All() []source.Diagnostic }) string {
	var parts []string
	for _, d := range bag.All() {
		parts = append(parts, fmt.Sprintf("%s: %s", d.Code, d.Message))
	}
	return strings.Join(parts, "; ")
}

// ImportSuggestion names a stdlib function, type, or variant constructor
// that could satisfy an unresolved identifier via a `with <Module> use
// ...` import.
type ImportSuggestion struct {
	Module string // display name, e.g. "InputOutput"
	Verb   string // "" for a type/constructor suggestion
	Name   string
}

var importIndexOnce sync.Once
var importIndex map[string][]ImportSuggestion

// BuildImportIndex returns a reverse index from a bare name to every
// stdlib module that declares a function, type, or variant constructor
// with that name, built once and cached for the process lifetime.
func BuildImportIndex() map[string][]ImportSuggestion {
	importIndexOnce.Do(func() {
		importIndex = make(map[string][]ImportSuggestion)
		for key, filename := range modules {
			if aliasKeys[key] {
				continue
			}
			display := displayNames[key]
			module, err := parseModule(key, filename)
			if err != nil {
				continue
			}
			indexModule(module, display)
		}
	})
	return importIndex
}

func indexModule(module *ast.Module, display string) {
	for _, decl := range allFunctionDecls(module) {
		importIndex[decl.Name] = append(importIndex[decl.Name], ImportSuggestion{
			Module: display, Verb: string(decl.Verb), Name: decl.Name,
		})
	}
	for _, td := range allTypeDecls(module) {
		importIndex[td.Name] = append(importIndex[td.Name], ImportSuggestion{
			Module: display, Verb: "types", Name: td.Name,
		})
		if alg, ok := td.Body.(*ast.AlgebraicBody); ok {
			for _, v := range alg.Variants {
				importIndex[v.Name] = append(importIndex[v.Name], ImportSuggestion{
					Module: display, Verb: "types", Name: v.Name,
				})
			}
		}
	}
}

func allTypeDecls(module *ast.Module) []*ast.TypeDecl {
	var out []*ast.TypeDecl
	var walk func(decls []ast.Decl)
	walk = func(decls []ast.Decl) {
		for _, d := range decls {
			switch decl := d.(type) {
			case *ast.TypeDecl:
				out = append(out, decl)
			case *ast.ModuleDecl:
				walk(decl.Decls)
			}
		}
	}
	walk(module.Decls)
	return out
}

func allFunctionDecls(module *ast.Module) []*ast.FunctionDecl {
	var out []*ast.FunctionDecl
	var walk func(decls []ast.Decl)
	walk = func(decls []ast.Decl) {
		for _, d := range decls {
			switch decl := d.(type) {
			case *ast.FunctionDecl:
				out = append(out, decl)
			case *ast.ModuleDecl:
				walk(decl.Decls)
			}
		}
	}
	walk(module.Decls)
	return out
}

func extractSignatures(module *ast.Module, moduleKey string) []*symbols.Signature {
	decls := allFunctionDecls(module)
	sigs := make([]*symbols.Signature, 0, len(decls))
	for _, decl := range decls {
		params := make([]types.Type, len(decl.Parameters))
		for i, p := range decl.Parameters {
			params[i] = resolveTypeExpr(p.Type)
		}
		ret := types.UnitT
		if decl.ReturnType != nil {
			ret = resolveTypeExpr(decl.ReturnType)
		} else if decl.Verb == ast.VerbValidates {
			ret = types.Boolean
		}
		sigs = append(sigs, &symbols.Signature{
			Verb:   string(decl.Verb),
			Name:   decl.Name,
			Params: params,
			Return: ret,
		})
	}
	return sigs
}

var primitiveNames = map[string]types.Type{
	"Integer": types.Integer,
	"Decimal": types.Decimal,
	"Float":   types.Decimal,
	"Boolean": types.Boolean,
	"String":  types.StringT,
	"Char":    types.CharT,
	"Byte":    types.ByteT,
	"Unit":    types.UnitT,
}

// resolveTypeExpr is the stdlib loader's own minimal type resolver: the
// bundled files only ever reference built-in primitives and the List,
// Table, Result, and Option generics, so unlike the checker's or emitter's
// resolver this one never needs to consult a project's type registry.
func resolveTypeExpr(te ast.TypeExpr) types.Type {
	switch t := te.(type) {
	case nil:
		return types.UnitT
	case *ast.SimpleType:
		if pt, ok := primitiveNames[t.Name]; ok {
			return pt
		}
		return &types.Primitive{Name: t.Name}
	case *ast.GenericType:
		args := make([]types.Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = resolveTypeExpr(a)
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
		if pt, ok := primitiveNames[t.Name]; ok {
			if prim, ok := pt.(*types.Primitive); ok {
				return &types.Primitive{Name: prim.Name, Modifiers: mods}
			}
		}
		return &types.Primitive{Name: t.Name, Modifiers: mods}
	default:
		return types.Error
	}
}
