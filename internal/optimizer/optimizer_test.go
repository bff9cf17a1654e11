package optimizer

import (
	"testing"

	"github.com/proveland/prove/internal/ast"
	"github.com/proveland/prove/internal/lexer"
	"github.com/proveland/prove/internal/parser"
)

func parseModule(t *testing.T, src string) *ast.Module {
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
	return module
}

func TestTailCallLoweringRewritesSelfRecursion(t *testing.T) {
	src := "transforms count(n: Integer, acc: Integer) Integer\n" +
		"    terminates: n\n" +
		"    from match n\n" +
		"        0 => acc\n" +
		"        _ => count(n - 1, acc + 1)\n"
	module := parseModule(t, src)

	out := Optimize(module, WithPasses(&TailCallPass{}))
	fn := out.Decls[0].(*ast.FunctionDecl)
	loop, ok := fn.Body.(*ast.TailLoop)
	if !ok {
		t.Fatalf("expected body to be lowered to a TailLoop, got %T", fn.Body)
	}

	match := loop.Body.(*ast.BlockExpr).Stmts[0].(*ast.ExprStmt).X.(*ast.MatchExpr)
	wildcardArm := match.Arms[1]
	if _, ok := wildcardArm.Body.(*ast.TailContinue); !ok {
		t.Fatalf("expected the recursive arm's body to become a TailContinue, got %T", wildcardArm.Body)
	}
}

func TestTailCallLoweringSkipsFunctionsWithoutTerminates(t *testing.T) {
	src := "transforms count(n: Integer, acc: Integer) Integer\n" +
		"    from match n\n" +
		"        0 => acc\n" +
		"        _ => count(n - 1, acc + 1)\n"
	module := parseModule(t, src)

	out := Optimize(module, WithPasses(&TailCallPass{}))
	fn := out.Decls[0].(*ast.FunctionDecl)
	if _, ok := fn.Body.(*ast.TailLoop); ok {
		t.Fatal("did not expect lowering without a `terminates` annotation")
	}
}

func TestDeadBranchEliminationDropsUnreachableArm(t *testing.T) {
	src := "transforms pick() Integer\n" +
		"    from match true\n" +
		"        true => 1\n" +
		"        false => 2\n"
	module := parseModule(t, src)

	out := Optimize(module, WithPasses(&DeadBranchPass{}))
	fn := out.Decls[0].(*ast.FunctionDecl)
	match := fn.Body.(*ast.BlockExpr).Stmts[0].(*ast.ExprStmt).X.(*ast.MatchExpr)
	if len(match.Arms) != 1 {
		t.Fatalf("expected exactly one reachable arm, got %d", len(match.Arms))
	}
	if match.Arms[0].Pattern.(*ast.LiteralPattern).Text != "true" {
		t.Fatalf("expected the surviving arm to be the true arm, got %+v", match.Arms[0].Pattern)
	}
}

func TestOptimizeIsIdempotent(t *testing.T) {
	src := "transforms add(a: Integer, b: Integer) Integer\n    from a + b\n"
	module := parseModule(t, src)

	once := Optimize(module)
	twice := Optimize(once)

	fn1 := once.Decls[0].(*ast.FunctionDecl)
	fn2 := twice.Decls[0].(*ast.FunctionDecl)
	if fn1.Name != fn2.Name || fn1.Verb != fn2.Verb {
		t.Fatalf("expected a second optimizer pass to be a no-op, got %+v vs %+v", fn1, fn2)
	}
}
