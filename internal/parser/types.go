package parser

import (
	"github.com/proveland/prove/internal/ast"
	"github.com/proveland/prove/internal/token"
)

// parseTypeExpr parses a type expression: a bare name, optionally followed
// by `<args>` (generic) or `:[...]` (modifiers) — never both.
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	name, _ := p.expect(token.IDENT_TYPE, "type name")

	if p.is(token.LANGLE) {
		return p.parseGenericArgs(name)
	}
	if p.is(token.COLON) && p.peekAt(1).Kind == token.LBRACKET {
		return p.parseModifiers(name)
	}
	return &ast.SimpleType{Name: name.Lexeme, SpanValue: name.Span}
}

func (p *Parser) parseGenericArgs(name token.Token) ast.TypeExpr {
	p.advance() // '<'
	var args []ast.TypeExpr
	for !p.is(token.RANGLE) && !p.is(token.EOF) {
		args = append(args, p.parseTypeExpr())
		if p.is(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RANGLE, "to close generic argument list")
	return &ast.GenericType{Name: name.Lexeme, Args: args, SpanValue: name.Span}
}

func (p *Parser) parseModifiers(name token.Token) ast.TypeExpr {
	p.advance() // ':'
	p.advance() // '['
	var mods []ast.TypeModifier
	for !p.is(token.RBRACKET) && !p.is(token.EOF) {
		mods = append(mods, p.parseModifier())
		if p.is(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBRACKET, "to close modifier list")
	return &ast.ModifiedType{Name: name.Lexeme, Modifiers: mods, SpanValue: name.Span}
}

// parseModifier parses one entry of a `:[...]` list: either a bare
// positional value (a string literal or type name) or a `name: value` pair.
func (p *Parser) parseModifier() ast.TypeModifier {
	if p.is(token.IDENT_VALUE) && p.peekAt(1).Kind == token.COLON {
		name := p.advance()
		p.advance() // ':'
		value := p.advance()
		return ast.TypeModifier{Name: name.Lexeme, Value: value.Lexeme}
	}
	value := p.advance()
	return ast.TypeModifier{Value: value.Lexeme}
}

// formalTypeParams parses an optional `<T, U, ...>` list of bare generic
// formal-parameter names attached to a `type` declaration.
func (p *Parser) formalTypeParams() []string {
	if !p.is(token.LANGLE) {
		return nil
	}
	p.advance()
	var names []string
	for !p.is(token.RANGLE) && !p.is(token.EOF) {
		name, _ := p.expect(token.IDENT_TYPE, "generic parameter")
		names = append(names, name.Lexeme)
		if p.is(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RANGLE, "to close generic parameter list")
	return names
}
