package checker

import "github.com/proveland/prove/internal/ast"

// Check runs the full semantic analyzer over module: registration, then
// per-function/const checking, then contract well-typedness, in that fixed
// order. It returns the Context so callers — the
// optimizer, the emitter, the proof verifier — can read back resolved
// types, registries, and the accumulated diagnostics.
func Check(module *ast.Module) *Context {
	ctx := NewContext()
	pm := NewPassManager(&RegistrationPass{}, CheckPass(), &ContractPass{})
	pm.RunAll(module, ctx)
	return ctx
}
