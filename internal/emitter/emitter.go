package emitter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/proveland/prove/internal/ast"
	"github.com/proveland/prove/internal/symbols"
	"github.com/proveland/prove/internal/types"
)

// builtinMap names prove built-ins that map directly to a runtime function,
// bypassing the prv_ mangled-name dispatch.
var builtinMap = map[string]string{
	"println": "prove_println",
	"print":   "prove_print",
	"readln":  "prove_readln",
	"clamp":   "prove_clamp",
}

// Emitter generates C source for a checked module. It keeps its own
// lightweight type inference over locals rather than reusing the
// checker's cached expression types, so it stays correct over AST shapes
// the optimizer introduces or rewrites after checking completes.
type Emitter struct {
	module     *ast.Module
	functions  *symbols.FunctionRegistry
	types      *symbols.TypeRegistry
	out        []string
	indent     int
	tmpCounter int
	lambdas    []string
	locals     map[string]types.Type
	headers    map[string]bool
	returnType types.Type
}

// New creates an Emitter for module, using the function and type registries
// built by the checker.
func New(module *ast.Module, functions *symbols.FunctionRegistry, typeRegistry *symbols.TypeRegistry) *Emitter {
	return &Emitter{
		module:    module,
		functions: functions,
		types:     typeRegistry,
		locals:    make(map[string]types.Type),
		headers:   make(map[string]bool),
	}
}

// Emit generates the complete C source for the module.
func (e *Emitter) Emit() string {
	e.collectHeaders()

	e.emitIncludes()
	e.line("")
	e.emitTypeForwards()

	for _, d := range e.module.Decls {
		if td, ok := d.(*ast.TypeDecl); ok {
			e.emitTypeDecl(td)
		}
	}

	lambdaPos := len(e.out)

	for _, d := range e.module.Decls {
		if fd, ok := d.(*ast.FunctionDecl); ok {
			e.emitFunction(fd)
		}
	}

	for _, d := range e.module.Decls {
		if md, ok := d.(*ast.MainDecl); ok {
			e.emitMain(md)
			break
		}
	}

	if len(e.lambdas) > 0 {
		rest := append([]string{}, e.out[lambdaPos:]...)
		e.out = append(e.out[:lambdaPos], e.lambdas...)
		e.out = append(e.out, rest...)
	}

	return strings.Join(e.out, "\n") + "\n"
}

func (e *Emitter) line(text string) {
	if text == "" {
		e.out = append(e.out, "")
		return
	}
	e.out = append(e.out, strings.Repeat("    ", e.indent)+text)
}

func (e *Emitter) tmp() string {
	e.tmpCounter++
	return fmt.Sprintf("_tmp%d", e.tmpCounter)
}

// collectHeaders pre-scans every registered function signature to discover
// which runtime headers the emitted source needs.
func (e *Emitter) collectHeaders() {
	e.headers["prove_runtime.h"] = true
	e.headers["prove_string.h"] = true

	for _, sig := range e.functions.All() {
		for _, pt := range sig.Params {
			if h := MapType(pt).Header; h != "" {
				e.headers[h] = true
			}
		}
		if h := MapType(sig.Return).Header; h != "" {
			e.headers[h] = true
		}
	}
}

func (e *Emitter) emitIncludes() {
	e.line("#include <stdint.h>")
	e.line("#include <stdbool.h>")
	e.line("#include <stdlib.h>")
	names := make([]string, 0, len(e.headers))
	for h := range e.headers {
		names = append(names, h)
	}
	sort.Strings(names)
	for _, h := range names {
		e.line(fmt.Sprintf("#include %q", h))
	}
}

func (e *Emitter) emitTypeForwards() {
	for _, d := range e.module.Decls {
		if td, ok := d.(*ast.TypeDecl); ok {
			if _, isRefinement := td.Body.(*ast.RefinementBody); isRefinement {
				continue
			}
			cname := MangleTypeName(td.Name)
			e.line(fmt.Sprintf("typedef struct %s %s;", cname, cname))
		}
	}
	e.line("")
}

func (e *Emitter) escapeC(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`, "\t", `\t`)
	return r.Replace(s)
}

func (e *Emitter) fieldCType(te ast.TypeExpr) CType {
	simple, ok := te.(*ast.SimpleType)
	if !ok {
		return CType{Decl: "int64_t"}
	}
	if rt, ok := e.types.Resolve(simple.Name); ok {
		return MapType(rt)
	}
	return CType{Decl: "int64_t"}
}

func upper(s string) string { return strings.ToUpper(s) }
