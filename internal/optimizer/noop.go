package optimizer

import "github.com/proveland/prove/internal/ast"

// CopyElisionPass is reserved for a later version: it runs as a no-op so
// the pass list stays complete and in order even though it changes
// nothing yet.
type CopyElisionPass struct{}

func (p *CopyElisionPass) Name() string               { return "copy-elision" }
func (p *CopyElisionPass) Run(m *ast.Module) *ast.Module { return m }

// IteratorFusionPass is reserved for a later version, a no-op for the
// same reason as CopyElisionPass.
type IteratorFusionPass struct{}

func (p *IteratorFusionPass) Name() string               { return "iterator-fusion" }
func (p *IteratorFusionPass) Run(m *ast.Module) *ast.Module { return m }
