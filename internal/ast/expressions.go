package ast

import "github.com/proveland/prove/internal/source"

// Literal expressions. Kept as one struct per literal form (rather than a
// single "Literal" node with a kind tag) so the checker's type-inference
// switch and the emitter's per-kind dispatch
// can both exhaustively pattern-match on Go's type system.

type IntegerLiteral struct {
	Text      string
	SpanValue source.Span
}

func (e *IntegerLiteral) Span() source.Span { return e.SpanValue }
func (*IntegerLiteral) exprNode()           {}

type DecimalLiteral struct {
	Text      string
	SpanValue source.Span
}

func (e *DecimalLiteral) Span() source.Span { return e.SpanValue }
func (*DecimalLiteral) exprNode()           {}

type StringLiteral struct {
	Value     string
	SpanValue source.Span
}

func (e *StringLiteral) Span() source.Span { return e.SpanValue }
func (*StringLiteral) exprNode()           {}

type TripleStringLiteral struct {
	Value     string
	SpanValue source.Span
}

func (e *TripleStringLiteral) Span() source.Span { return e.SpanValue }
func (*TripleStringLiteral) exprNode()           {}

type RawStringLiteral struct {
	Value     string
	SpanValue source.Span
}

func (e *RawStringLiteral) Span() source.Span { return e.SpanValue }
func (*RawStringLiteral) exprNode()           {}

type CharLiteral struct {
	Value     rune
	SpanValue source.Span
}

func (e *CharLiteral) Span() source.Span { return e.SpanValue }
func (*CharLiteral) exprNode()           {}

type BooleanLiteral struct {
	Value     bool
	SpanValue source.Span
}

func (e *BooleanLiteral) Span() source.Span { return e.SpanValue }
func (*BooleanLiteral) exprNode()           {}

type RegexLiteral struct {
	Pattern   string
	SpanValue source.Span
}

func (e *RegexLiteral) Span() source.Span { return e.SpanValue }
func (*RegexLiteral) exprNode()           {}

type PathLiteral struct {
	Path      string
	SpanValue source.Span
}

func (e *PathLiteral) Span() source.Span { return e.SpanValue }
func (*PathLiteral) exprNode()           {}

// InterpSegment is one piece of a string interpolation: either literal text
// (Expr == nil) or an embedded expression (Text == "").
type InterpSegment struct {
	Text string
	Expr Expr
}

// InterpolatedString is a string literal with one or more embedded
// expressions, e.g. `"total: {a + b}"`.
type InterpolatedString struct {
	Segments  []InterpSegment
	SpanValue source.Span
}

func (e *InterpolatedString) Span() source.Span { return e.SpanValue }
func (*InterpolatedString) exprNode()           {}

// Identifier is a value-level or type-level name reference. IsType
// distinguishes a type-level identifier used in an expression position
// (e.g. naming a constructor) from an ordinary value reference.
type Identifier struct {
	Name      string
	IsType    bool
	SpanValue source.Span
}

func (e *Identifier) Span() source.Span { return e.SpanValue }
func (*Identifier) exprNode()           {}

// BinaryExpr is `left op right`.
type BinaryExpr struct {
	Left      Expr
	Op        string
	Right     Expr
	SpanValue source.Span
}

func (e *BinaryExpr) Span() source.Span { return e.SpanValue }
func (*BinaryExpr) exprNode()           {}

// UnaryExpr is a prefix `!` or `-`.
type UnaryExpr struct {
	Op        string
	Operand   Expr
	SpanValue source.Span
}

func (e *UnaryExpr) Span() source.Span { return e.SpanValue }
func (*UnaryExpr) exprNode()           {}

// CallExpr is `callee(args...)`.
type CallExpr struct {
	Callee    Expr
	Args      []Expr
	SpanValue source.Span
}

func (e *CallExpr) Span() source.Span { return e.SpanValue }
func (*CallExpr) exprNode()           {}

// FieldAccess is `target.Field`.
type FieldAccess struct {
	Target    Expr
	Field     string
	SpanValue source.Span
}

func (e *FieldAccess) Span() source.Span { return e.SpanValue }
func (*FieldAccess) exprNode()           {}

// IndexExpr is `target[index]`.
type IndexExpr struct {
	Target    Expr
	Index     Expr
	SpanValue source.Span
}

func (e *IndexExpr) Span() source.Span { return e.SpanValue }
func (*IndexExpr) exprNode()           {}

// PipeExpr is `lhs |> rhs` (rhs is normally a Call or Identifier; the
// checker desugars it into a call with lhs prepended — ).
type PipeExpr struct {
	Left      Expr
	Right     Expr
	SpanValue source.Span
}

func (e *PipeExpr) Span() source.Span { return e.SpanValue }
func (*PipeExpr) exprNode()           {}

// FailPropExpr is postfix `expr!`.
type FailPropExpr struct {
	Operand   Expr
	SpanValue source.Span
}

func (e *FailPropExpr) Span() source.Span { return e.SpanValue }
func (*FailPropExpr) exprNode()           {}

// LambdaExpr is `|params| body`.
type LambdaExpr struct {
	Params    []string
	Body      Expr
	SpanValue source.Span
}

func (e *LambdaExpr) Span() source.Span { return e.SpanValue }
func (*LambdaExpr) exprNode()           {}

// ListLiteral is `[e1, e2, ...]`.
type ListLiteral struct {
	Elements  []Expr
	SpanValue source.Span
}

func (e *ListLiteral) Span() source.Span { return e.SpanValue }
func (*ListLiteral) exprNode()           {}

// IfExpr is `if cond { then } else { alt }`. Else is nil for a statement-
// position if with no else branch.
type IfExpr struct {
	Cond      Expr
	Then      Expr
	Else      Expr
	SpanValue source.Span
}

func (e *IfExpr) Span() source.Span { return e.SpanValue }
func (*IfExpr) exprNode()           {}

// MatchArm is one `pattern => body` arm, optionally guarded.
type MatchArm struct {
	Pattern Pattern
	Guard   Expr
	Body    Expr
}

// MatchExpr is `match subject { arms... }`; Subject is nil for an implicit
// match.
type MatchExpr struct {
	Subject   Expr
	Arms      []MatchArm
	SpanValue source.Span
}

func (e *MatchExpr) Span() source.Span { return e.SpanValue }
func (*MatchExpr) exprNode()           {}

// ComptimeBlock is a compile-time-evaluated block expression.
type ComptimeBlock struct {
	Body      Expr
	SpanValue source.Span
}

func (e *ComptimeBlock) Span() source.Span { return e.SpanValue }
func (*ComptimeBlock) exprNode()           {}

// ValidRef is a `valid` reference used inside contract clauses.
type ValidRef struct {
	SpanValue source.Span
}

func (e *ValidRef) Span() source.Span { return e.SpanValue }
func (*ValidRef) exprNode()           {}

// BlockExpr is an ordered sequence of statements making up a function or
// block body. Its value (for expression position) is the last statement
// when that statement is an ExprStmt; callers needing a value in non-final
// position must bind it with a VarDecl first.
type BlockExpr struct {
	Stmts     []Stmt
	SpanValue source.Span
}

func (e *BlockExpr) Span() source.Span { return e.SpanValue }
func (*BlockExpr) exprNode()           {}

// --- optimizer-introduced nodes ---

// TailLoop replaces a tail-recursive function body after TCO lowering. The
// parameter vector names the loop-carried variables.
type TailLoop struct {
	Params    []string
	Body      Expr
	SpanValue source.Span
}

func (e *TailLoop) Span() source.Span { return e.SpanValue }
func (*TailLoop) exprNode()           {}

// TailContinue replaces a tail call inside a TailLoop: parallel assignment
// of new parameter values, then loop back to the top.
type TailContinue struct {
	Params    []string
	Values    []Expr
	SpanValue source.Span
}

func (e *TailContinue) Span() source.Span { return e.SpanValue }
func (*TailContinue) exprNode()           {}
