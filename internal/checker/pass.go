// Package checker implements prove's two-pass semantic analyzer: registration, then per-function checking, then contract
// well-typedness — grounded on go-dws's internal/semantic Pass/PassManager
// architecture (internal/semantic/pass.go).
package checker

import "github.com/proveland/prove/internal/ast"

// Pass is one stage of semantic analysis. A pass reads and writes the
// shared Context, collecting diagnostics there rather than returning them,
// so later passes still run and can report further problems in the same
// compilation.
type Pass interface {
	Name() string
	Run(module *ast.Module, ctx *Context)
}

// PassManager runs a fixed ordered list of passes.
type PassManager struct {
	passes []Pass
}

// NewPassManager creates a manager over the given passes, run in order.
func NewPassManager(passes ...Pass) *PassManager {
	return &PassManager{passes: passes}
}

// RunAll executes every pass in order.
func (pm *PassManager) RunAll(module *ast.Module, ctx *Context) {
	for _, p := range pm.passes {
		p.Run(module, ctx)
	}
}
