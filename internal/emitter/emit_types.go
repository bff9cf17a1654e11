package emitter

import (
	"fmt"

	"github.com/proveland/prove/internal/ast"
)

// emitTypeDecl emits a record or algebraic type declaration. Refinement types need no struct of their own — they
// map to their base type everywhere MapType is consulted.
func (e *Emitter) emitTypeDecl(td *ast.TypeDecl) {
	cname := MangleTypeName(td.Name)

	switch body := td.Body.(type) {
	case *ast.RecordBody:
		e.line(fmt.Sprintf("struct %s {", cname))
		e.indent++
		for _, f := range body.Fields {
			ct := e.fieldCType(f.Type)
			e.line(fmt.Sprintf("%s %s;", ct.Decl, f.Name))
		}
		e.indent--
		e.line("};")
		e.line("")

	case *ast.AlgebraicBody:
		e.line("enum {")
		e.indent++
		for i, v := range body.Variants {
			e.line(fmt.Sprintf("%s_TAG_%s = %d,", cname, upper(v.Name), i))
		}
		e.indent--
		e.line("};")
		e.line("")

		e.line(fmt.Sprintf("struct %s {", cname))
		e.indent++
		e.line("uint8_t tag;")
		e.line("union {")
		e.indent++
		for _, v := range body.Variants {
			if len(v.Fields) > 0 {
				e.line("struct {")
				e.indent++
				for _, f := range v.Fields {
					ct := e.fieldCType(f.Type)
					e.line(fmt.Sprintf("%s %s;", ct.Decl, f.Name))
				}
				e.indent--
				e.line(fmt.Sprintf("} %s;", v.Name))
			} else {
				e.line(fmt.Sprintf("uint8_t _%s; /* unit variant */", v.Name))
			}
		}
		e.indent--
		e.line("};")
		e.indent--
		e.line("};")
		e.line("")

		for _, v := range body.Variants {
			tag := fmt.Sprintf("%s_TAG_%s", cname, upper(v.Name))
			params := make([]string, len(v.Fields))
			for i, f := range v.Fields {
				ct := e.fieldCType(f.Type)
				params[i] = fmt.Sprintf("%s %s", ct.Decl, f.Name)
			}
			paramStr := "void"
			if len(params) > 0 {
				paramStr = joinComma(params)
			}
			e.line(fmt.Sprintf("static inline %s %s(%s) {", cname, v.Name, paramStr))
			e.indent++
			e.line(fmt.Sprintf("%s _v;", cname))
			e.line(fmt.Sprintf("_v.tag = %s;", tag))
			for _, f := range v.Fields {
				e.line(fmt.Sprintf("_v.%s.%s = %s;", v.Name, f.Name, f.Name))
			}
			e.line("return _v;")
			e.indent--
			e.line("}")
			e.line("")
		}
	}
}

func joinComma(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += ", " + p
	}
	return out
}
