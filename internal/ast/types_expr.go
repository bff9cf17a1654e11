package ast

import "github.com/proveland/prove/internal/source"

// SimpleType is a bare type name, e.g. `Integer` or `Port`.
type SimpleType struct {
	Name      string
	SpanValue source.Span
}

func (t *SimpleType) Span() source.Span { return t.SpanValue }
func (*SimpleType) typeExprNode()       {}

// GenericType is a type name applied to type-expression arguments, e.g.
// `List<Integer>` or `Result<T, Error>`.
type GenericType struct {
	Name      string
	Args      []TypeExpr
	SpanValue source.Span
}

func (t *GenericType) Span() source.Span { return t.SpanValue }
func (*GenericType) typeExprNode()       {}

// TypeModifier is one entry of a `:[...]` modifier list: either a bare
// positional modifier (Name == "") or a `name: value` pair.
type TypeModifier struct {
	Name  string
	Value string
}

// ModifiedType is a type name with structural modifiers, e.g.
// `Integer:["Unsigned", width: "32"]`.
type ModifiedType struct {
	Name      string
	Modifiers []TypeModifier
	SpanValue source.Span
}

func (t *ModifiedType) Span() source.Span { return t.SpanValue }
func (*ModifiedType) typeExprNode()       {}
