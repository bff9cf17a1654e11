// Package ast defines the frozen AST node family for prove: type
// expressions, patterns, expressions, statements, declarations, and the
// top-level Module. Every node is immutable once constructed — the
// optimizer produces new nodes rather than mutating existing ones.
package ast

import "github.com/proveland/prove/internal/source"

// Node is implemented by every AST node.
type Node interface {
	Span() source.Span
}

// TypeExpr is a syntactic type expression, distinct from a resolved
// types.Type produced by the checker.
type TypeExpr interface {
	Node
	typeExprNode()
}

// Pattern is a match-arm pattern.
type Pattern interface {
	Node
	patternNode()
}

// Expr is any expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Decl is any top-level or nested declaration node.
type Decl interface {
	Node
	declNode()
}

// Module is the root AST node: an ordered list of declarations.
type Module struct {
	Decls     []Decl
	SpanValue source.Span
}

func (m *Module) Span() source.Span { return m.SpanValue }
