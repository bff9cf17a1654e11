package ast

import "github.com/proveland/prove/internal/source"

// VarDecl is `name [: Type] = init` (or bare `name = init` with inference).
type VarDecl struct {
	Name      string
	Type      TypeExpr
	Init      Expr
	SpanValue source.Span
}

func (s *VarDecl) Span() source.Span { return s.SpanValue }
func (*VarDecl) stmtNode()           {}

// AssignStmt is `target = value`.
type AssignStmt struct {
	Target    Expr
	Value     Expr
	SpanValue source.Span
}

func (s *AssignStmt) Span() source.Span { return s.SpanValue }
func (*AssignStmt) stmtNode()           {}

// ExprStmt wraps an expression used for its side effect (a call, typically).
type ExprStmt struct {
	X         Expr
	SpanValue source.Span
}

func (s *ExprStmt) Span() source.Span { return s.SpanValue }
func (*ExprStmt) stmtNode()           {}
