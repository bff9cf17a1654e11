// Package optimizer implements prove's six AST-to-AST optimization passes.
// Every pass takes a module and returns a new module — no
// node is ever mutated in place, matching "every AST node is
// frozen after construction" and the referential-transparency requirement
// that optimize(m) == optimize(optimize(m)). Grounded on go-dws's
// OptimizationPass/OptimizeOption shape (internal/optimize), adapted from a
// bytecode-level optimizer to an AST-level one.
package optimizer

import "github.com/proveland/prove/internal/ast"

// Pass is one optimization stage.
type Pass interface {
	Name() string
	Run(module *ast.Module) *ast.Module
}

// Option configures which passes Optimize runs, mirroring go-dws's
// functional-options style for optimizer configuration.
type Option func(*config)

type config struct {
	passes []Pass
}

// defaultPasses is the full fixed pass order. Copy elision and iterator
// fusion are present as named no-ops, reserved for a later version: they
// run and change nothing, rather than being silently absent from the
// pipeline.
func defaultPasses() []Pass {
	return []Pass{
		&TailCallPass{},
		&DeadBranchPass{},
		&InliningPass{},
		&MatchMergePass{},
		&CopyElisionPass{},
		&IteratorFusionPass{},
	}
}

// WithPasses overrides the default pass list, for tests that want to
// isolate a single pass.
func WithPasses(passes ...Pass) Option {
	return func(c *config) { c.passes = passes }
}

// Optimize runs the configured passes over module in order, threading the
// result of each into the next.
func Optimize(module *ast.Module, opts ...Option) *ast.Module {
	c := &config{passes: defaultPasses()}
	for _, opt := range opts {
		opt(c)
	}
	for _, p := range c.passes {
		module = p.Run(module)
	}
	return module
}
