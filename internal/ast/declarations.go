package ast

import "github.com/proveland/prove/internal/source"

// Verb classifies a function declaration's purity/IO permissions.
type Verb string

const (
	VerbTransforms Verb = "transforms"
	VerbInputs     Verb = "inputs"
	VerbOutputs    Verb = "outputs"
	VerbValidates  Verb = "validates"
	VerbReads      Verb = "reads"
	VerbCreates    Verb = "creates"
	VerbMatches    Verb = "matches"
)

// Pure reports whether functions with this verb may not directly call a
// known I/O function and may not be failable: transforms and validates
// are pure built-ins; matches carries the same purity rule.
func (v Verb) Pure() bool {
	return v == VerbTransforms || v == VerbValidates || v == VerbMatches
}

// Param is one function parameter: a name and its declared type.
type Param struct {
	Name string
	Type TypeExpr
}

// Condition is one `requires`/`ensures` clause: a boolean test and an
// optional message expression, grounded on go-dws's Condition{Test,
// Message} shape (internal/semantic/contract_pass.go).
type Condition struct {
	Test    Expr
	Message Expr
}

// Obligation is one named, free-text justification inside a `proof` block,
// optionally guarded by a `when` expression.
type Obligation struct {
	Name string
	Text string
	When Expr
}

// ProofBlock is the full set of obligations attached to a function.
type ProofBlock struct {
	Obligations []Obligation
	SpanValue   source.Span
}

// NearMiss is one `near_miss` entry: an alternative expression paired with
// the reason it was rejected.
type NearMiss struct {
	Alternative Expr
	Reason      Expr
}

// Contracts bundles every contract clause a function declaration may carry.
// Kept as one struct (rather than fields directly on FunctionDecl) so the
// checker's contract pass and the proof verifier can both take a single
// *Contracts and ignore FunctionDecl's other fields.
type Contracts struct {
	Requires  []Condition
	Ensures   []Condition
	Proof     *ProofBlock
	Know      []Expr
	Assume    []Expr
	Believe   []Expr
	WhyNot    string
	Chosen    string
	NearMiss  []NearMiss
	Intent    string
	Satisfies string
}

// FunctionDecl is a top-level function declaration: verb, name, parameters,
// optional return type, optional fail marker, contract clauses, and a body.
type FunctionDecl struct {
	Verb       Verb
	Name       string
	Parameters []Param
	ReturnType TypeExpr
	CanFail    bool
	// Terminates names the parameter the optimizer's TCO pass treats as the
	// decreasing measure; empty means no `terminates` annotation.
	Terminates string
	Contracts  Contracts
	Body       Expr
	SpanValue  source.Span
}

func (d *FunctionDecl) Span() source.Span { return d.SpanValue }
func (*FunctionDecl) declNode()           {}

// MainDecl is the program entry point: `main from <body>`.
type MainDecl struct {
	Body      Expr
	SpanValue source.Span
}

func (d *MainDecl) Span() source.Span { return d.SpanValue }
func (*MainDecl) declNode()           {}

// RecordField is one named, ordered field of a record type.
type RecordField struct {
	Name string
	Type TypeExpr
}

// Variant is one constructor of an algebraic type: a name and zero or more
// typed fields.
type Variant struct {
	Name   string
	Fields []RecordField
}

// TypeBody is implemented by the three forms a `type` declaration's body
// can take: record, algebraic, refinement.
type TypeBody interface {
	typeBodyNode()
}

// RecordBody is `(field: Type, ...)`.
type RecordBody struct {
	Fields []RecordField
}

func (*RecordBody) typeBodyNode() {}

// AlgebraicBody is `Variant1 | Variant2(...) | ...`.
type AlgebraicBody struct {
	Variants []Variant
}

func (*AlgebraicBody) typeBodyNode() {}

// RefinementBody is `BaseType where <predicate>`.
type RefinementBody struct {
	Base  TypeExpr
	Where Expr
}

func (*RefinementBody) typeBodyNode() {}

// TypeDecl is `type Name[<params>] is <body>`.
type TypeDecl struct {
	Name       string
	Params     []string
	Body       TypeBody
	SpanValue  source.Span
}

func (d *TypeDecl) Span() source.Span { return d.SpanValue }
func (*TypeDecl) declNode()           {}

// ConstDecl is `CONST_NAME [: Type] = init`.
type ConstDecl struct {
	Name      string
	Type      TypeExpr
	Init      Expr
	SpanValue source.Span
}

func (d *ConstDecl) Span() source.Span { return d.SpanValue }
func (*ConstDecl) declNode()           {}

// ImportDecl is `use Module.Path [as Alias]`; imports are declarative
// hints for name resolution only.
type ImportDecl struct {
	Path      []string
	Alias     string
	SpanValue source.Span
}

func (d *ImportDecl) Span() source.Span { return d.SpanValue }
func (*ImportDecl) declNode()           {}

// ModuleDecl wraps a nested group of declarations under a `module Name`
// block.
type ModuleDecl struct {
	Name      string
	Decls     []Decl
	SpanValue source.Span
}

func (d *ModuleDecl) Span() source.Span { return d.SpanValue }
func (*ModuleDecl) declNode()           {}

// InvariantNetworkDecl groups a set of named invariant expressions that
// epistemic annotations may reference collectively.
type InvariantNetworkDecl struct {
	Name      string
	Invariants []Condition
	SpanValue source.Span
}

func (d *InvariantNetworkDecl) Span() source.Span { return d.SpanValue }
func (*InvariantNetworkDecl) declNode()           {}
