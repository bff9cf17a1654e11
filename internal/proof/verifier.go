// Package proof implements the structural proof/epistemic verifier: pure
// bookkeeping checks over a function's proof block and near-miss list
// that need no type information, run as the final stage
// after checker.Check so contract well-typedness is already settled.
// Grounded on go-dws's internal/semantic pass family in shape — one
// self-contained pass over the module, diagnostics collected into a
// shared bag — but verifying a concern the type checker never touches.
package proof

import (
	"github.com/proveland/prove/internal/ast"
	"github.com/proveland/prove/internal/source"
)

// Verify walks every function declaration in module and appends its
// findings to bag.
func Verify(module *ast.Module, bag *source.Bag) {
	verifyDecls(module.Decls, bag)
}

func verifyDecls(decls []ast.Decl, bag *source.Bag) {
	for _, d := range decls {
		switch decl := d.(type) {
		case *ast.FunctionDecl:
			verifyFunction(decl, bag)
		case *ast.ModuleDecl:
			verifyDecls(decl.Decls, bag)
		}
	}
}

func verifyFunction(decl *ast.FunctionDecl, bag *source.Bag) {
	contracts := decl.Contracts

	if len(contracts.Ensures) > 0 && contracts.Proof == nil {
		bag.Warnf("W390", "function %q has `ensures` but no `proof` block", decl.Name)
	}

	if contracts.Proof != nil {
		seen := make(map[string]bool)
		for _, ob := range contracts.Proof.Obligations {
			if seen[ob.Name] {
				bag.Addf("E391", "duplicate proof obligation name %q in function %q", ob.Name, decl.Name)
			}
			seen[ob.Name] = true

			if !mentionsRelevantName(ob.Text, decl) {
				bag.Warnf("W321", "obligation %q in function %q mentions neither the function name, a parameter, nor `result`", ob.Name, decl.Name)
			}
		}

		obligationCount := len(contracts.Proof.Obligations)
		ensuresCount := len(contracts.Ensures)
		if obligationCount < ensuresCount {
			if ensuresCount-obligationCount > 1 {
				bag.Addf("E392", "function %q: %d proof obligation(s) cannot justify %d `ensures` clause(s)", decl.Name, obligationCount, ensuresCount)
			} else {
				bag.Warnf("W320", "function %q: proof obligation count (%d) is lower than `ensures` count (%d)", decl.Name, obligationCount, ensuresCount)
			}
		}
	}

	if len(contracts.Believe) > 0 && len(contracts.Ensures) == 0 {
		if len(contracts.Believe) > 1 {
			bag.Addf("E393", "function %q: `believe` without any `ensures` clause", decl.Name)
		} else {
			bag.Warnf("W323", "function %q: `believe` without any `ensures` clause", decl.Name)
		}
	}

	seenNearMiss := make([]ast.Expr, 0, len(contracts.NearMiss))
	for _, nm := range contracts.NearMiss {
		for _, prior := range seenNearMiss {
			if exprEqual(prior, nm.Alternative) {
				bag.Warnf("W322", "function %q: duplicate `near_miss` alternative", decl.Name)
				break
			}
		}
		seenNearMiss = append(seenNearMiss, nm.Alternative)
	}
}

// mentionsRelevantName reports whether text contains the function's own
// name, one of its parameter names, or the literal token "result" — a
// crude but effective signal that an obligation's free text is actually
// about this function rather than boilerplate.
func mentionsRelevantName(text string, decl *ast.FunctionDecl) bool {
	if containsWord(text, decl.Name) || containsWord(text, "result") {
		return true
	}
	for _, param := range decl.Parameters {
		if containsWord(text, param.Name) {
			return true
		}
	}
	return false
}

func containsWord(text, word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i+len(word) <= len(text); i++ {
		if text[i:i+len(word)] != word {
			continue
		}
		before := i == 0 || !isIdentByte(text[i-1])
		after := i+len(word) == len(text) || !isIdentByte(text[i+len(word)])
		if before && after {
			return true
		}
	}
	return false
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// exprEqual is a shallow structural-equality check over the expression
// shapes near_miss alternatives are likely to take: literals and simple
// identifiers. It is intentionally conservative — a false negative (two
// alternatives that are equal but not recognized as such) only costs a
// missed W322, never a false diagnostic.
func exprEqual(a, b ast.Expr) bool {
	switch av := a.(type) {
	case *ast.Identifier:
		bv, ok := b.(*ast.Identifier)
		return ok && av.Name == bv.Name
	case *ast.IntegerLiteral:
		bv, ok := b.(*ast.IntegerLiteral)
		return ok && av.Text == bv.Text
	case *ast.StringLiteral:
		bv, ok := b.(*ast.StringLiteral)
		return ok && av.Value == bv.Value
	case *ast.BooleanLiteral:
		bv, ok := b.(*ast.BooleanLiteral)
		return ok && av.Value == bv.Value
	default:
		return false
	}
}
