package parser

import (
	"testing"

	"github.com/proveland/prove/internal/ast"
	"github.com/proveland/prove/internal/lexer"
)

func parse(t *testing.T, src string) *ast.Module {
	t.Helper()
	tokens, lexDiags := lexer.New(src, "<test>").Lex()
	if lexDiags.HasErrors() {
		t.Fatalf("unexpected lex diagnostics: %v", lexDiags.All())
	}
	p := New(tokens, "<test>")
	module := p.ParseModule()
	if p.Diagnostics().HasErrors() {
		t.Fatalf("unexpected parse diagnostics: %v", p.Diagnostics().All())
	}
	return module
}

func TestParseAdditionFunction(t *testing.T) {
	src := "transforms add(a: Integer, b: Integer) Integer\n    from a + b\n"
	module := parse(t, src)
	if len(module.Decls) != 1 {
		t.Fatalf("expected one declaration, got %d", len(module.Decls))
	}
	fn, ok := module.Decls[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected a FunctionDecl, got %T", module.Decls[0])
	}
	if fn.Verb != ast.VerbTransforms || fn.Name != "add" {
		t.Fatalf("unexpected function: %+v", fn)
	}
	if len(fn.Parameters) != 2 {
		t.Fatalf("expected two parameters, got %d", len(fn.Parameters))
	}
}

func TestParseFailableFunction(t *testing.T) {
	src := "inputs risky() Integer!\n    from 42\n"
	module := parse(t, src)
	fn, ok := module.Decls[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected a FunctionDecl, got %T", module.Decls[0])
	}
	if !fn.CanFail {
		t.Fatal("expected CanFail to be true")
	}
}

func TestParseAlgebraicType(t *testing.T) {
	src := "type Color is Red | Green | Blue\n"
	module := parse(t, src)
	td, ok := module.Decls[0].(*ast.TypeDecl)
	if !ok {
		t.Fatalf("expected a TypeDecl, got %T", module.Decls[0])
	}
	body, ok := td.Body.(*ast.AlgebraicBody)
	if !ok {
		t.Fatalf("expected an AlgebraicBody, got %T", td.Body)
	}
	if len(body.Variants) != 3 {
		t.Fatalf("expected three variants, got %d", len(body.Variants))
	}
}

func TestParseRefinementType(t *testing.T) {
	src := "type Port is Integer where >= 0\n"
	module := parse(t, src)
	td, ok := module.Decls[0].(*ast.TypeDecl)
	if !ok {
		t.Fatalf("expected a TypeDecl, got %T", module.Decls[0])
	}
	if _, ok := td.Body.(*ast.RefinementBody); !ok {
		t.Fatalf("expected a RefinementBody, got %T", td.Body)
	}
}

func TestParseMain(t *testing.T) {
	src := "main from\n    println(\"Hello from Prove!\")\n"
	module := parse(t, src)
	if _, ok := module.Decls[0].(*ast.MainDecl); !ok {
		t.Fatalf("expected a MainDecl, got %T", module.Decls[0])
	}
}
