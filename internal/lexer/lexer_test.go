package lexer

import (
	"testing"

	"github.com/proveland/prove/internal/token"
)

func TestLexBalancesIndentAndDedent(t *testing.T) {
	src := "transforms add(a Integer, b Integer) Integer\n    from a + b\n"
	tokens, diags := New(src, "<test>").Lex()
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.All())
	}

	var indents, dedents int
	for _, tok := range tokens {
		switch tok.Kind {
		case token.INDENT:
			indents++
		case token.DEDENT:
			dedents++
		}
	}
	if indents != dedents {
		t.Fatalf("expected balanced INDENT/DEDENT, got %d/%d", indents, dedents)
	}
	if tokens[len(tokens)-1].Kind != token.EOF {
		t.Fatalf("expected last token to be EOF, got %v", tokens[len(tokens)-1].Kind)
	}
}

func TestLexTabIsHardError(t *testing.T) {
	src := "transforms add(a Integer) Integer\n\tfrom a\n"
	_, diags := New(src, "<test>").Lex()
	if !diags.HasErrors() {
		t.Fatal("expected a diagnostic for a tab-indented line")
	}
	if diags.All()[0].Code != "E100" {
		t.Fatalf("expected E100, got %s", diags.All()[0].Code)
	}
}

func TestIdentifierClassification(t *testing.T) {
	src := "transforms f(x Integer) Integer\n    from MAX_VALUE\n"
	tokens, diags := New(src, "<test>").Lex()
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.All())
	}

	var found bool
	for _, tok := range tokens {
		if tok.Lexeme == "MAX_VALUE" {
			found = true
			if tok.Kind != token.IDENT_CONST {
				t.Fatalf("expected MAX_VALUE to classify as a constant identifier, got %v", tok.Kind)
			}
		}
	}
	if !found {
		t.Fatal("expected to find MAX_VALUE token")
	}
}
