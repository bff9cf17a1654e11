// Package parser turns a prove token stream into a Module AST: recursive
// descent for declarations, indentation-driven block parsing for function
// bodies and match arms, and a Pratt parser for expressions.
package parser

import (
	"github.com/proveland/prove/internal/source"
	"github.com/proveland/prove/internal/token"
)

// Parser holds the full pre-lexed token stream and a cursor into it. Unlike
// go-dws's streaming TokenCursor (which pulls from a live Lexer), prove's
// lexer always produces its whole token vector up front, so the parser just indexes into a slice —
// the simpler half of the same cursor idea.
type Parser struct {
	tokens []token.Token
	pos    int
	file   string
	diags  *source.Bag
}

// New creates a Parser over a complete token stream.
func New(tokens []token.Token, file string) *Parser {
	return &Parser{tokens: tokens, file: file, diags: &source.Bag{}}
}

// Diagnostics returns the diagnostics recorded while parsing.
func (p *Parser) Diagnostics() *source.Bag { return p.diags }

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) advance() token.Token {
	tok := p.cur()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) is(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) isAny(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.is(k) {
			return true
		}
	}
	return false
}

// expect advances past the current token if it has kind k, otherwise
// records a diagnostic and does not advance (so the caller's
// synchronization logic can still make progress).
func (p *Parser) expect(k token.Kind, context string) (token.Token, bool) {
	if p.is(k) {
		return p.advance(), true
	}
	p.diags.Add(source.Newf("E200", "expected %s %s, found %s", k, context, p.cur().Kind).
		WithLabel(p.cur().Span, ""))
	return token.Token{}, false
}

// skipNewlines advances past any run of NEWLINE tokens.
func (p *Parser) skipNewlines() {
	for p.is(token.NEWLINE) {
		p.advance()
	}
}

// synchronize implements "Error recovery": advance until a
// synchronization point (a NEWLINE at top level or a DEDENT), then return
// so the caller can keep parsing subsequent declarations.
func (p *Parser) synchronize() {
	for !p.isAny(token.EOF, token.NEWLINE, token.DEDENT) {
		p.advance()
	}
	if p.isAny(token.NEWLINE, token.DEDENT) {
		p.advance()
	}
}
