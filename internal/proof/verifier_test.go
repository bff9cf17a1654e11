package proof

import (
	"testing"

	"github.com/proveland/prove/internal/lexer"
	"github.com/proveland/prove/internal/parser"
	"github.com/proveland/prove/internal/source"
)

func verifySource(t *testing.T, src string) *source.Bag {
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
	bag := &source.Bag{}
	Verify(module, bag)
	return bag
}

func hasCode(bag *source.Bag, code string) bool {
	for _, d := range bag.All() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestVerifyEnsuresWithoutProofWarns(t *testing.T) {
	src := "transforms add(a: Integer, b: Integer) Integer\n" +
		"    ensures result >= a\n" +
		"    from a + b\n"
	bag := verifySource(t, src)
	if !hasCode(bag, "W390") {
		t.Fatalf("expected W390, got %v", bag.All())
	}
}

func TestVerifyProofSatisfiesEnsures(t *testing.T) {
	src := "transforms add(a: Integer, b: Integer) Integer\n" +
		"    ensures result >= a\n" +
		"    proof\n" +
		"        non_negative: \"a and b are both non-negative, so result cannot be smaller than a\"\n" +
		"    from a + b\n"
	bag := verifySource(t, src)
	if hasCode(bag, "W390") {
		t.Fatalf("did not expect W390 when a proof block is present, got %v", bag.All())
	}
}

func TestVerifyDuplicateObligationNameIsError(t *testing.T) {
	src := "transforms add(a: Integer, b: Integer) Integer\n" +
		"    ensures result >= a\n" +
		"    proof\n" +
		"        same: \"first justification mentions a and result\"\n" +
		"        same: \"second justification mentions b and result\"\n" +
		"    from a + b\n"
	bag := verifySource(t, src)
	if !hasCode(bag, "E391") {
		t.Fatalf("expected E391 for a duplicate obligation name, got %v", bag.All())
	}
}

func TestVerifyBelieveWithoutEnsuresWarns(t *testing.T) {
	src := "transforms add(a: Integer, b: Integer) Integer\n" +
		"    believe a >= 0\n" +
		"    from a + b\n"
	bag := verifySource(t, src)
	if !hasCode(bag, "W323") {
		t.Fatalf("expected W323, got %v", bag.All())
	}
}
