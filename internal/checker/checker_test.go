package checker

import (
	"testing"

	"github.com/proveland/prove/internal/ast"
	"github.com/proveland/prove/internal/lexer"
	"github.com/proveland/prove/internal/parser"
	"github.com/proveland/prove/internal/source"
)

func checkSource(t *testing.T, src string) *Context {
	t.Helper()
	tokens, lexDiags := lexer.New(src, "<test>").Lex()
	if lexDiags.HasErrors() {
		t.Fatalf("unexpected lex diagnostics: %v", lexDiags.All())
	}
	p := parser.New(tokens, "<test>")
	module := p.ParseModule()
	if p.Diagnostics().HasErrors() {
		t.Fatalf("unexpected parse diagnostics: %v", p.Diagnostics().All())
	}
	return Check(module)
}

func codesOf(diags *source.Bag) []string {
	var out []string
	for _, d := range diags.All() {
		out = append(out, d.Code)
	}
	return out
}

func hasCode(diags *source.Bag, code string) bool {
	for _, c := range codesOf(diags) {
		if c == code {
			return true
		}
	}
	return false
}

func TestCheckAdditionFunctionAccepted(t *testing.T) {
	src := "transforms add(a: Integer, b: Integer) Integer\n    from a + b\n"
	ctx := checkSource(t, src)
	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("expected no errors, got %v", ctx.Diagnostics.All())
	}
}

func TestCheckDuplicateFunctionIsE301(t *testing.T) {
	src := "transforms add(a: Integer, b: Integer) Integer\n    from a + b\n" +
		"transforms add(a: Integer, b: Integer) Integer\n    from b + a\n"
	ctx := checkSource(t, src)
	if !hasCode(ctx.Diagnostics, "E301") {
		t.Fatalf("expected E301, got %v", codesOf(ctx.Diagnostics))
	}
}

func TestCheckPureFunctionMayNotFail(t *testing.T) {
	src := "transforms risky(a: Integer) Integer!\n    from a\n"
	ctx := checkSource(t, src)
	if !hasCode(ctx.Diagnostics, "E361") {
		t.Fatalf("expected E361, got %v", codesOf(ctx.Diagnostics))
	}
}

func TestCheckValidatesMayNotDeclareReturnType(t *testing.T) {
	src := "validates nonNegative(a: Integer) Boolean\n    from a >= 0\n"
	ctx := checkSource(t, src)
	if !hasCode(ctx.Diagnostics, "E360") {
		t.Fatalf("expected E360, got %v", codesOf(ctx.Diagnostics))
	}
}

func TestCheckUndefinedNameIsE310(t *testing.T) {
	src := "transforms f(a: Integer) Integer\n    from a + bogus\n"
	ctx := checkSource(t, src)
	if !hasCode(ctx.Diagnostics, "E310") {
		t.Fatalf("expected E310, got %v", codesOf(ctx.Diagnostics))
	}
}

func TestCheckAlgebraicMatchExhaustive(t *testing.T) {
	src := "type Color is Red | Green | Blue\n" +
		"transforms name(c: Color) String\n" +
		"    from match c\n" +
		"        Red => \"red\"\n" +
		"        Green => \"green\"\n" +
		"        Blue => \"blue\"\n"
	ctx := checkSource(t, src)
	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("expected no errors, got %v", ctx.Diagnostics.All())
	}
}

func TestCheckAlgebraicMatchNonExhaustiveIsE371(t *testing.T) {
	src := "type Color is Red | Green | Blue\n" +
		"transforms name(c: Color) String\n" +
		"    from match c\n" +
		"        Red => \"red\"\n" +
		"        Green => \"green\"\n"
	ctx := checkSource(t, src)
	if !hasCode(ctx.Diagnostics, "E371") {
		t.Fatalf("expected E371, got %v", codesOf(ctx.Diagnostics))
	}
}

func TestCheckStdlibImportRegistersFunctions(t *testing.T) {
	src := "use InputOutput\n" +
		"main from\n" +
		"    42\n"
	ctx := checkSource(t, src)
	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("expected no errors, got %v", ctx.Diagnostics.All())
	}
	if len(ctx.Functions.Candidates(string(ast.VerbOutputs), "console")) == 0 {
		t.Fatal("expected `use InputOutput` to register outputs console")
	}
}

func TestCheckBareCallResolvesAcrossVerbs(t *testing.T) {
	src := "use InputOutput\n" +
		"main from\n" +
		"    console(\"hi\")\n"
	ctx := checkSource(t, src)
	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("expected a bare call to a verb-qualified stdlib function to resolve, got %v", ctx.Diagnostics.All())
	}
}

func TestCheckUserFunctionCallsAnotherByBareName(t *testing.T) {
	src := "inputs risky(a: Integer) Result<Integer, Error>!\n    from a\n" +
		"inputs useIt(a: Integer) Result<Integer, Error>!\n    from risky(a)!\n"
	ctx := checkSource(t, src)
	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("expected one failable function to call another by bare name, got %v", ctx.Diagnostics.All())
	}
}
