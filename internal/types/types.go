// Package types defines prove's resolved type model, distinct from the
// syntactic type expressions in package ast.
package types

import "strings"

// Type is implemented by every resolved type kind.
type Type interface {
	String() string
	typeNode()
}

// Primitive is a built-in scalar type with optional string modifiers, e.g.
// Integer:["Unsigned", "32"].
type Primitive struct {
	Name      string
	Modifiers []string
}

func (t *Primitive) typeNode() {}
func (t *Primitive) String() string {
	if len(t.Modifiers) == 0 {
		return t.Name
	}
	return t.Name + ":[" + strings.Join(t.Modifiers, ", ") + "]"
}

// HasModifier reports whether t carries the given modifier string.
func (t *Primitive) HasModifier(m string) bool {
	for _, mod := range t.Modifiers {
		if mod == m {
			return true
		}
	}
	return false
}

// Unit is the zero-information type (`()`), emitted as C `void` in return
// position.
type Unit struct{}

func (t *Unit) typeNode()      {}
func (t *Unit) String() string { return "Unit" }

// Field is one ordered, named field of a Record.
type Field struct {
	Name string
	Type Type
}

// Record is a named product type with ordered fields and optional formal
// generic parameters.
type Record struct {
	Name   string
	Fields []Field
	Params []string
}

func (t *Record) typeNode() {}
func (t *Record) String() string { return t.Name }

// FieldType returns the type of the named field, or nil if absent.
func (t *Record) FieldType(name string) Type {
	for _, f := range t.Fields {
		if f.Name == name {
			return f.Type
		}
	}
	return nil
}

// AlgebraicVariant is one constructor of an Algebraic type.
type AlgebraicVariant struct {
	Name   string
	Fields []Field
}

// Algebraic is a named sum type: an ordered list of variants, each with
// zero or more typed fields, exhaustively matched.
type Algebraic struct {
	Name     string
	Variants []AlgebraicVariant
	Params   []string
}

func (t *Algebraic) typeNode() {}
func (t *Algebraic) String() string { return t.Name }

// VariantNames returns the declared variant names in declaration order.
func (t *Algebraic) VariantNames() []string {
	names := make([]string, len(t.Variants))
	for i, v := range t.Variants {
		names[i] = v.Name
	}
	return names
}

// Variant looks up a variant by name, or returns (nil, false).
func (t *Algebraic) Variant(name string) (AlgebraicVariant, bool) {
	for _, v := range t.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return AlgebraicVariant{}, false
}

// Refinement is a named base type with a predicate-expression body used to
// express intent; compatible with its base type for flow-typing checks.
type Refinement struct {
	Name string
	Base Type
}

func (t *Refinement) typeNode() {}
func (t *Refinement) String() string { return t.Name }

// GenericInstance is a generic type applied to concrete arguments, e.g.
// List<Integer> or Result<Integer, Error>.
type GenericInstance struct {
	BaseName string
	Args     []Type
}

func (t *GenericInstance) typeNode() {}
func (t *GenericInstance) String() string {
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return t.BaseName + "<" + strings.Join(parts, ", ") + ">"
}

// TypeVariable is an unbound generic placeholder, compatible with
// everything.
type TypeVariable struct {
	Name string
}

func (t *TypeVariable) typeNode() {}
func (t *TypeVariable) String() string { return t.Name }

// Function is a resolved function signature.
type Function struct {
	Params []Type
	Return Type
}

func (t *Function) typeNode() {}
func (t *Function) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	ret := "Unit"
	if t.Return != nil {
		ret = t.Return.String()
	}
	return "(" + strings.Join(parts, ", ") + ") -> " + ret
}

// List is a homogeneous list type.
type List struct {
	Elem Type
}

func (t *List) typeNode() {}
func (t *List) String() string { return "List<" + t.Elem.String() + ">" }

// ErrorType is the poison type: injected whenever the checker cannot
// determine a real type, and compatible with every other type so a single
// earlier error cannot cascade into a shower of later mismatches.
type ErrorType struct{}

func (t *ErrorType) typeNode() {}
func (t *ErrorType) String() string { return "<error>" }

// Error is the shared poison-type instance; compare by pointer or by
// type-switching on *ErrorType.
var Error Type = &ErrorType{}

// Built-in primitive instances used throughout the checker and emitter.
var (
	Integer = &Primitive{Name: "Integer"}
	Decimal = &Primitive{Name: "Decimal"}
	Boolean = &Primitive{Name: "Boolean"}
	StringT = &Primitive{Name: "String"}
	CharT   = &Primitive{Name: "Char"}
	ByteT   = &Primitive{Name: "Byte", Modifiers: []string{"Unsigned", "8"}}
	UnitT   Type = &Unit{}

	// ErrorDomain is the built-in `Error` type used as the failure-channel
	// argument of Result<T,E>. It is a normal,
	// named primitive and distinct from the poison ErrorType above, which
	// exists only to suppress cascading diagnostics.
	ErrorDomain = &Primitive{Name: "Error"}
)

// IsError reports whether t is the poison error type or an unbound type
// variable (both compatible with everything).
func IsError(t Type) bool {
	if t == nil {
		return true
	}
	switch t.(type) {
	case *ErrorType, *TypeVariable:
		return true
	default:
		return false
	}
}

// Compatible implements the structural compatibility relation:
// identical kinds with matching names and recursively compatible
// arguments; the error type and unbound type variables are compatible with
// everything; a Refinement is compatible with its Base and vice versa.
func Compatible(a, b Type) bool {
	if IsError(a) || IsError(b) {
		return true
	}
	if a == nil || b == nil {
		return a == b
	}

	if ra, ok := a.(*Refinement); ok {
		if Compatible(ra.Base, b) {
			return true
		}
	}
	if rb, ok := b.(*Refinement); ok {
		if Compatible(a, rb.Base) {
			return true
		}
	}

	switch av := a.(type) {
	case *Primitive:
		bv, ok := b.(*Primitive)
		return ok && av.Name == bv.Name
	case *Unit:
		_, ok := b.(*Unit)
		return ok
	case *Record:
		bv, ok := b.(*Record)
		return ok && av.Name == bv.Name
	case *Algebraic:
		bv, ok := b.(*Algebraic)
		return ok && av.Name == bv.Name
	case *Refinement:
		bv, ok := b.(*Refinement)
		return ok && av.Name == bv.Name
	case *GenericInstance:
		bv, ok := b.(*GenericInstance)
		if !ok || av.BaseName != bv.BaseName || len(av.Args) != len(bv.Args) {
			return false
		}
		for i := range av.Args {
			if !Compatible(av.Args[i], bv.Args[i]) {
				return false
			}
		}
		return true
	case *Function:
		bv, ok := b.(*Function)
		if !ok || len(av.Params) != len(bv.Params) {
			return false
		}
		for i := range av.Params {
			if !Compatible(av.Params[i], bv.Params[i]) {
				return false
			}
		}
		return Compatible(av.Return, bv.Return)
	case *List:
		bv, ok := b.(*List)
		return ok && Compatible(av.Elem, bv.Elem)
	default:
		return false
	}
}
