package emitter

import (
	"strings"
	"testing"

	"github.com/proveland/prove/internal/checker"
	"github.com/proveland/prove/internal/lexer"
	"github.com/proveland/prove/internal/optimizer"
	"github.com/proveland/prove/internal/parser"
)

// emit runs a source string through the full front end plus the optimizer
// and returns the emitted C source.
func emit(t *testing.T, src string) string {
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
	ctx := checker.Check(module)
	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("unexpected check diagnostics: %v", ctx.Diagnostics.All())
	}
	optimized := optimizer.Optimize(module)
	return New(optimized, ctx.Functions, ctx.Types).Emit()
}

func TestEmitHelloMain(t *testing.T) {
	src := "main from\n    println(\"Hello, prove!\")\n"
	out := emit(t, src)
	if !strings.Contains(out, "int main(int argc, char **argv) {") {
		t.Fatalf("expected a C main function, got:\n%s", out)
	}
	if !strings.Contains(out, `prove_println(prove_string_from_cstr("Hello, prove!"));`) {
		t.Fatalf("expected a println call lowered to the runtime, got:\n%s", out)
	}
	if !strings.Contains(out, "return 0;") {
		t.Fatalf("expected main to return 0, got:\n%s", out)
	}
}

func TestEmitAdditionFunction(t *testing.T) {
	src := "transforms add(a: Integer, b: Integer) Integer\n    from a + b\n"
	out := emit(t, src)
	if !strings.Contains(out, "int64_t prv_transforms_add_Integer_Integer(int64_t a, int64_t b) {") {
		t.Fatalf("expected a mangled addition function signature, got:\n%s", out)
	}
	if !strings.Contains(out, "return (a + b);") {
		t.Fatalf("expected the body to return the sum, got:\n%s", out)
	}
}

func TestEmitAlgebraicDispatch(t *testing.T) {
	src := "type Color is Red | Green | Blue\n" +
		"transforms name(c: Color) String\n" +
		"    from match c\n" +
		"        Red => \"red\"\n" +
		"        Green => \"green\"\n" +
		"        Blue => \"blue\"\n"
	out := emit(t, src)
	if !strings.Contains(out, "Prove_Color_TAG_RED = 0,") {
		t.Fatalf("expected a tag enum for the algebraic type, got:\n%s", out)
	}
	if !strings.Contains(out, "switch (") {
		t.Fatalf("expected the match to lower to a switch, got:\n%s", out)
	}
	if !strings.Contains(out, "case Prove_Color_TAG_RED: {") {
		t.Fatalf("expected a case per variant, got:\n%s", out)
	}
}

func TestEmitRefinementMapsToBaseType(t *testing.T) {
	src := "type Port is Integer where >= 0\n" +
		"transforms identity(p: Port) Port\n    from p\n"
	out := emit(t, src)
	if strings.Contains(out, "struct Prove_Port") {
		t.Fatalf("did not expect a refinement type to emit its own struct, got:\n%s", out)
	}
	if !strings.Contains(out, "int64_t prv_transforms_identity_Port(int64_t p) {") {
		t.Fatalf("expected the refinement to map to its base integer type, got:\n%s", out)
	}
}

func TestEmitFailPropagation(t *testing.T) {
	src := "inputs risky(a: Integer) Result<Integer, Error>!\n    from a\n" +
		"inputs useIt(a: Integer) Result<Integer, Error>!\n    from risky(a)!\n"
	out := emit(t, src)
	if !strings.Contains(out, ".is_error") {
		t.Fatalf("expected the `!` propagation to check is_error, got:\n%s", out)
	}
	if !strings.Contains(out, "Prove_Result") {
		t.Fatalf("expected a failable function to return Prove_Result, got:\n%s", out)
	}
}

func TestEmitTailCallLowersToWhileLoop(t *testing.T) {
	src := "transforms count(n: Integer, acc: Integer) Integer\n" +
		"    terminates: n\n" +
		"    from match n\n" +
		"        0 => acc\n" +
		"        _ => count(n - 1, acc + 1)\n"
	out := emit(t, src)
	if !strings.Contains(out, "while (1) {") {
		t.Fatalf("expected tail-call optimization to lower to a while(1) loop, got:\n%s", out)
	}
	if !strings.Contains(out, "continue;") {
		t.Fatalf("expected the recursive call to lower to a continue, got:\n%s", out)
	}
	if strings.Count(out, "prv_transforms_count_Integer_Integer(") != 1 {
		t.Fatalf("did not expect a residual recursive call after TCO, got:\n%s", out)
	}
}
