package parser

import (
	"github.com/proveland/prove/internal/ast"
	"github.com/proveland/prove/internal/token"
)

// parseBody parses a function/main body: an INDENT-delimited run of
// statements, or a single same-line statement for a trivial one-liner. An
// implicit match is recognized when a run
// of top-level lines each look like `pattern => ...`.
func (p *Parser) parseBody() ast.Expr {
	start := p.cur().Span
	p.skipNewlines()
	if !p.is(token.INDENT) {
		stmt := p.parseStatement()
		return &ast.BlockExpr{Stmts: []ast.Stmt{stmt}, SpanValue: start}
	}
	p.advance() // INDENT
	stmts := p.parseStatements(func() bool { return p.is(token.DEDENT) || p.is(token.EOF) })
	if p.is(token.DEDENT) {
		p.advance()
	}
	return &ast.BlockExpr{Stmts: stmts, SpanValue: start}
}

func (p *Parser) parseStatements(stop func() bool) []ast.Stmt {
	var stmts []ast.Stmt
	for {
		p.skipNewlines()
		if stop() {
			break
		}
		if p.looksLikeImplicitMatchArm() {
			stmts = append(stmts, p.parseImplicitMatchRun())
			continue
		}
		before := p.pos
		stmts = append(stmts, p.parseStatement())
		p.skipNewlines()
		if p.pos == before {
			// No progress: avoid an infinite loop on malformed input.
			p.synchronize()
		}
	}
	return stmts
}

// looksLikeImplicitMatchArm reports whether the tokens starting at the
// cursor form a `pattern => ...` line: scan ahead (without consuming) for
// an ARROW before the line ends.
func (p *Parser) looksLikeImplicitMatchArm() bool {
	for i := 0; ; i++ {
		k := p.peekAt(i).Kind
		switch k {
		case token.ARROW:
			return true
		case token.NEWLINE, token.DEDENT, token.EOF, token.INDENT:
			return false
		}
	}
}

// parseImplicitMatchRun consumes a run of consecutive `pattern => body`
// lines and wraps them in a subject-less MatchExpr
func (p *Parser) parseImplicitMatchRun() ast.Stmt {
	start := p.cur().Span
	var arms []ast.MatchArm
	for p.looksLikeImplicitMatchArm() {
		arms = append(arms, p.parseMatchArm())
		p.skipNewlines()
	}
	match := &ast.MatchExpr{Subject: nil, Arms: arms, SpanValue: start}
	return &ast.ExprStmt{X: match, SpanValue: start}
}

// parseStatement parses one variable declaration, assignment, or expression
// statement.
func (p *Parser) parseStatement() ast.Stmt {
	start := p.cur().Span

	if p.is(token.IDENT_VALUE) {
		next := p.peekAt(1).Kind
		if next == token.ASSIGN {
			name := p.advance()
			p.advance() // '='
			init := p.ParseExpression(precLowest)
			return &ast.VarDecl{Name: name.Lexeme, Init: init, SpanValue: start}
		}
		if next == token.COLON && p.peekAt(2).Kind == token.IDENT_TYPE {
			name := p.advance()
			p.advance() // ':'
			typ := p.parseTypeExpr()
			p.expect(token.ASSIGN, "in variable declaration")
			init := p.ParseExpression(precLowest)
			return &ast.VarDecl{Name: name.Lexeme, Type: typ, Init: init, SpanValue: start}
		}
	}

	expr := p.ParseExpression(precLowest)
	if p.is(token.ASSIGN) {
		p.advance()
		value := p.ParseExpression(precLowest)
		return &ast.AssignStmt{Target: expr, Value: value, SpanValue: start}
	}
	return &ast.ExprStmt{X: expr, SpanValue: start}
}
