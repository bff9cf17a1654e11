// Package emitter generates C source from a checked prove module, grounded on original_source/prove/src/prove/c_emitter.py and
// c_types.py: the emitter's own lightweight type inference (rather than
// the checker's cached ExprTypes) so it stays correct even after the
// optimizer rewrites or substitutes expressions the checker never saw.
package emitter

import (
	"strconv"
	"strings"

	"github.com/proveland/prove/internal/types"
)

// CType is a C type representation: the declaration text, whether it is a
// pointer type, and the runtime header it requires (if any).
type CType struct {
	Decl     string
	IsPointer bool
	Header   string
}

var intSizeMap = map[[2]int]string{
	{0, 8}: "int8_t", {0, 16}: "int16_t", {0, 32}: "int32_t", {0, 64}: "int64_t",
	{1, 8}: "uint8_t", {1, 16}: "uint16_t", {1, 32}: "uint32_t", {1, 64}: "uint64_t",
}

func mapInteger(modifiers []string) CType {
	unsigned := 0
	size := 64
	for _, m := range modifiers {
		if m == "Unsigned" {
			unsigned = 1
		}
		if n, err := strconv.Atoi(m); err == nil {
			size = n
		}
	}
	name, ok := intSizeMap[[2]int{unsigned, size}]
	if !ok {
		name = "int64_t"
	}
	return CType{Decl: name}
}

func mapFloat(modifiers []string) CType {
	for _, m := range modifiers {
		if m == "32" {
			return CType{Decl: "float"}
		}
	}
	return CType{Decl: "double"}
}

// MapType maps a resolved prove type to its C representation.
func MapType(t types.Type) CType {
	switch ty := t.(type) {
	case *types.Primitive:
		switch ty.Name {
		case "Integer":
			return mapInteger(ty.Modifiers)
		case "Decimal", "Float":
			return mapFloat(ty.Modifiers)
		case "Boolean":
			return CType{Decl: "bool"}
		case "Char":
			return CType{Decl: "char"}
		case "Byte":
			return CType{Decl: "uint8_t"}
		case "String", "Error":
			return CType{Decl: "Prove_String*", IsPointer: true, Header: "prove_string.h"}
		default:
			return CType{Decl: "int64_t"}
		}
	case *types.Unit:
		return CType{Decl: "void"}
	case *types.Record:
		return CType{Decl: MangleTypeName(ty.Name)}
	case *types.Algebraic:
		return CType{Decl: MangleTypeName(ty.Name)}
	case *types.Refinement:
		if ty.Base != nil {
			return MapType(ty.Base)
		}
		return CType{Decl: "int64_t"}
	case *types.List:
		return CType{Decl: "Prove_List*", IsPointer: true, Header: "prove_list.h"}
	case *types.GenericInstance:
		switch ty.BaseName {
		case "Result":
			return CType{Decl: "Prove_Result", Header: "prove_result.h"}
		case "Table":
			return CType{Decl: "Prove_Table*", IsPointer: true, Header: "prove_table.h"}
		case "Option":
			if len(ty.Args) > 0 {
				inner := MapType(ty.Args[0])
				safe := strings.ReplaceAll(strings.ReplaceAll(inner.Decl, "*", "ptr"), " ", "_")
				return CType{Decl: "Prove_Option_" + safe, Header: "prove_option.h"}
			}
			return CType{Decl: "Prove_Option_int64_t", Header: "prove_option.h"}
		default:
			return CType{Decl: MangleTypeName(ty.BaseName)}
		}
	case *types.Function:
		return CType{Decl: "void*", IsPointer: true}
	case *types.TypeVariable:
		return CType{Decl: "void*", IsPointer: true}
	case *types.ErrorType:
		return CType{Decl: "int64_t"}
	default:
		return CType{Decl: "int64_t"}
	}
}

// MangleName builds the `prv_<verb>_<name>_<tags>` C symbol name for a
// function. verb is "" for unverbbed
// built-ins.
func MangleName(verb, name string, paramTypes []types.Type) string {
	parts := []string{"prv"}
	if verb != "" {
		parts = append(parts, verb)
	}
	parts = append(parts, name)
	for _, pt := range paramTypes {
		parts = append(parts, typeTag(pt))
	}
	return strings.Join(parts, "_")
}

// MangleTypeName prefixes a prove type name with Prove_ for its C name.
func MangleTypeName(name string) string {
	return "Prove_" + name
}

func typeTag(t types.Type) string {
	switch ty := t.(type) {
	case *types.Primitive:
		return ty.Name
	case *types.Record:
		return ty.Name
	case *types.Algebraic:
		return ty.Name
	case *types.List:
		return "List"
	case *types.GenericInstance:
		return ty.BaseName
	case *types.Unit:
		return "Unit"
	case *types.TypeVariable:
		return ty.Name
	case *types.Refinement:
		return ty.Name
	default:
		return "unknown"
	}
}
