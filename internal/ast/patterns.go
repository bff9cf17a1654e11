package ast

import "github.com/proveland/prove/internal/source"

// VariantPattern matches an algebraic constructor, e.g. `Some(x)` or
// `Red`.
type VariantPattern struct {
	Constructor string
	Fields      []Pattern
	SpanValue   source.Span
}

func (p *VariantPattern) Span() source.Span { return p.SpanValue }
func (*VariantPattern) patternNode()        {}

// WildcardPattern matches anything, binding nothing: `_`.
type WildcardPattern struct {
	SpanValue source.Span
}

func (p *WildcardPattern) Span() source.Span { return p.SpanValue }
func (*WildcardPattern) patternNode()        {}

// LiteralPattern matches a literal value by its textual form, e.g. `0` or
// `"x"`.
type LiteralPattern struct {
	Text      string
	SpanValue source.Span
}

func (p *LiteralPattern) Span() source.Span { return p.SpanValue }
func (*LiteralPattern) patternNode()        {}

// BindingPattern introduces a fresh name bound to the matched value.
type BindingPattern struct {
	Name      string
	SpanValue source.Span
}

func (p *BindingPattern) Span() source.Span { return p.SpanValue }
func (*BindingPattern) patternNode()        {}
