package parser

import (
	"github.com/proveland/prove/internal/ast"
	"github.com/proveland/prove/internal/source"
	"github.com/proveland/prove/internal/token"
)

var verbKinds = map[token.Kind]ast.Verb{
	token.TRANSFORMS: ast.VerbTransforms,
	token.INPUTS:     ast.VerbInputs,
	token.OUTPUTS:    ast.VerbOutputs,
	token.VALIDATES:  ast.VerbValidates,
	token.READS:      ast.VerbReads,
	token.CREATES:    ast.VerbCreates,
	token.MATCHES:    ast.VerbMatches,
}

var contractKeywords = map[token.Kind]bool{
	token.ENSURES: true, token.REQUIRES: true, token.PROOF: true,
	token.KNOW: true, token.ASSUME: true, token.BELIEVE: true,
	token.WHY_NOT: true, token.CHOSEN: true, token.NEAR_MISS: true,
	token.INTENT: true, token.SATISFIES: true,
}

// ParseModule parses a complete token stream into a Module, recording
// diagnostics for anything it cannot recognize and resynchronizing so a
// single bad declaration does not abort the rest of the file.
func (p *Parser) ParseModule() *ast.Module {
	start := p.cur().Span
	var decls []ast.Decl
	for {
		p.skipNewlines()
		if p.is(token.EOF) {
			break
		}
		before := p.pos
		if d := p.parseDecl(); d != nil {
			decls = append(decls, d)
		}
		if p.pos == before {
			p.synchronize()
		}
	}
	return &ast.Module{Decls: decls, SpanValue: start}
}

func (p *Parser) parseDecl() ast.Decl {
	switch p.cur().Kind {
	case token.USE:
		return p.parseImportDecl()
	case token.TYPE:
		return p.parseTypeDecl()
	case token.CONST:
		return p.parseConstDecl()
	case token.MODULE:
		return p.parseModuleDecl()
	case token.MAIN:
		return p.parseMainDecl()
	case token.INVARIANT_NETWORK:
		return p.parseInvariantNetworkDecl()
	default:
		if _, ok := verbKinds[p.cur().Kind]; ok {
			return p.parseFunctionDecl()
		}
		p.diags.Add(source.Newf("E210", "expected a declaration, found %s", p.cur().Kind).
			WithLabel(p.cur().Span, ""))
		p.advance()
		return nil
	}
}

func (p *Parser) parseImportDecl() ast.Decl {
	start := p.cur().Span
	p.advance() // 'use'
	var path []string
	for {
		name := p.advance()
		path = append(path, name.Lexeme)
		if p.is(token.DOT) {
			p.advance()
			continue
		}
		break
	}
	var alias string
	if p.is(token.AS) {
		p.advance()
		aliasTok := p.advance()
		alias = aliasTok.Lexeme
	}
	return &ast.ImportDecl{Path: path, Alias: alias, SpanValue: start}
}

func (p *Parser) parseConstDecl() ast.Decl {
	start := p.cur().Span
	p.advance() // 'const'
	name, _ := p.expect(token.IDENT_CONST, "constant name")
	var typ ast.TypeExpr
	if p.is(token.COLON) {
		p.advance()
		typ = p.parseTypeExpr()
	}
	p.expect(token.ASSIGN, "in constant declaration")
	init := p.ParseExpression(precLowest)
	return &ast.ConstDecl{Name: name.Lexeme, Type: typ, Init: init, SpanValue: start}
}

func (p *Parser) parseModuleDecl() ast.Decl {
	start := p.cur().Span
	p.advance() // 'module'
	name, _ := p.expect(token.IDENT_TYPE, "module name")
	p.skipNewlines()
	var decls []ast.Decl
	if p.is(token.INDENT) {
		p.advance()
		for !p.is(token.DEDENT) && !p.is(token.EOF) {
			p.skipNewlines()
			if p.is(token.DEDENT) || p.is(token.EOF) {
				break
			}
			before := p.pos
			if d := p.parseDecl(); d != nil {
				decls = append(decls, d)
			}
			if p.pos == before {
				p.synchronize()
			}
		}
		if p.is(token.DEDENT) {
			p.advance()
		}
	}
	return &ast.ModuleDecl{Name: name.Lexeme, Decls: decls, SpanValue: start}
}

func (p *Parser) parseMainDecl() ast.Decl {
	start := p.cur().Span
	p.advance() // 'main'
	p.expect(token.FROM, "introducing the main body")
	body := p.parseBody()
	return &ast.MainDecl{Body: body, SpanValue: start}
}

func (p *Parser) parseInvariantNetworkDecl() ast.Decl {
	start := p.cur().Span
	p.advance() // 'invariant_network'
	name, _ := p.expect(token.IDENT_TYPE, "invariant network name")
	p.skipNewlines()
	var invariants []ast.Condition
	if p.is(token.INDENT) {
		p.advance()
		for !p.is(token.DEDENT) && !p.is(token.EOF) {
			p.skipNewlines()
			if p.is(token.DEDENT) || p.is(token.EOF) {
				break
			}
			invariants = append(invariants, p.parseCondition())
			p.skipNewlines()
		}
		if p.is(token.DEDENT) {
			p.advance()
		}
	}
	return &ast.InvariantNetworkDecl{Name: name.Lexeme, Invariants: invariants, SpanValue: start}
}

func (p *Parser) parseCondition() ast.Condition {
	test := p.ParseExpression(precLowest)
	var msg ast.Expr
	if p.is(token.COMMA) {
		p.advance()
		msg = p.ParseExpression(precLowest)
	}
	return ast.Condition{Test: test, Message: msg}
}

// parseTypeDecl parses `type Name[<params>] is <body>`, disambiguating the
// body: a leading `(` is a record body;
// otherwise scan ahead for `where` (refinement) versus `|`/newline
// (algebraic).
func (p *Parser) parseTypeDecl() ast.Decl {
	start := p.cur().Span
	p.advance() // 'type'
	name, _ := p.expect(token.IDENT_TYPE, "type name")
	params := p.formalTypeParams()
	p.expect(token.IS, "introducing the type body")

	var body ast.TypeBody
	if p.is(token.LPAREN) {
		body = p.parseRecordBody()
	} else if p.scanForWhereBeforePipeOrNewline() {
		body = p.parseRefinementBody()
	} else {
		body = p.parseAlgebraicBody()
	}
	return &ast.TypeDecl{Name: name.Lexeme, Params: params, Body: body, SpanValue: start}
}

// scanForWhereBeforePipeOrNewline implements the lookahead rule verbatim:
// from the current position, does WHERE appear before LPAREN, BAR (`|`), or
// a line-ending token?
func (p *Parser) scanForWhereBeforePipeOrNewline() bool {
	for i := 0; ; i++ {
		switch p.peekAt(i).Kind {
		case token.WHERE:
			return true
		case token.LPAREN, token.BAR, token.NEWLINE, token.DEDENT, token.EOF:
			return false
		}
	}
}

func (p *Parser) parseRecordBody() ast.TypeBody {
	p.advance() // '('
	var fields []ast.RecordField
	for !p.is(token.RPAREN) && !p.is(token.EOF) {
		fields = append(fields, p.parseRecordField())
		if p.is(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN, "to close record fields")
	return &ast.RecordBody{Fields: fields}
}

func (p *Parser) parseRecordField() ast.RecordField {
	name, _ := p.expect(token.IDENT_VALUE, "field name")
	p.expect(token.COLON, "before field type")
	typ := p.parseTypeExpr()
	return ast.RecordField{Name: name.Lexeme, Type: typ}
}

func (p *Parser) parseRefinementBody() ast.TypeBody {
	base := p.parseTypeExpr()
	p.expect(token.WHERE, "introducing the refinement predicate")
	var pred ast.Expr
	if infixPrecedence[p.cur().Kind] == precCompare {
		// A predicate opening with a comparison operator (`where >= 0`)
		// compares the refined value itself; its BinaryExpr has a nil Left.
		pred = p.parseInfix(nil)
		for p.peekPrecedence() > precLowest && pred != nil {
			pred = p.parseInfix(pred)
		}
	} else {
		pred = p.ParseExpression(precLowest)
	}
	return &ast.RefinementBody{Base: base, Where: pred}
}

// parseAlgebraicBody parses `Variant1 | Variant2(Type, ...) | ...`, allowing
// a lone variant with no `|` at all.
func (p *Parser) parseAlgebraicBody() ast.TypeBody {
	var variants []ast.Variant
	variants = append(variants, p.parseVariant())
	for p.is(token.BAR) {
		p.advance()
		variants = append(variants, p.parseVariant())
	}
	return &ast.AlgebraicBody{Variants: variants}
}

func (p *Parser) parseVariant() ast.Variant {
	name, _ := p.expect(token.IDENT_TYPE, "variant name")
	var fields []ast.RecordField
	if p.is(token.LPAREN) {
		p.advance()
		for !p.is(token.RPAREN) && !p.is(token.EOF) {
			typ := p.parseTypeExpr()
			fields = append(fields, ast.RecordField{Type: typ})
			if p.is(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.RPAREN, "to close variant fields")
	}
	return ast.Variant{Name: name.Lexeme, Fields: fields}
}

// parseFunctionDecl parses a verb-led function declaration: signature,
// contract clauses in any order, then a `from`-introduced body.
func (p *Parser) parseFunctionDecl() ast.Decl {
	start := p.cur().Span
	verb := verbKinds[p.cur().Kind]
	p.advance()
	name, _ := p.expect(token.IDENT_VALUE, "function name")

	p.expect(token.LPAREN, "to open parameter list")
	var params []ast.Param
	for !p.is(token.RPAREN) && !p.is(token.EOF) {
		pname, _ := p.expect(token.IDENT_VALUE, "parameter name")
		p.expect(token.COLON, "before parameter type")
		ptyp := p.parseTypeExpr()
		params = append(params, ast.Param{Name: pname.Lexeme, Type: ptyp})
		if p.is(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN, "to close parameter list")

	var ret ast.TypeExpr
	if p.is(token.IDENT_TYPE) {
		ret = p.parseTypeExpr()
	}
	var canFail bool
	if p.is(token.BANG) {
		canFail = true
		p.advance()
	}

	var terminates string
	contracts := ast.Contracts{}
	p.skipNewlines()
	if p.is(token.INDENT) {
		p.advance()
		for contractKeywords[p.cur().Kind] || p.is(token.TERMINATES) {
			if p.is(token.TERMINATES) {
				p.advance()
				p.expect(token.COLON, "after terminates")
				tname, _ := p.expect(token.IDENT_VALUE, "terminating parameter name")
				terminates = tname.Lexeme
			} else {
				p.parseContractClause(&contracts)
			}
			p.skipNewlines()
		}
		p.expect(token.FROM, "introducing the function body")
		body := p.parseBody()
		p.skipNewlines()
		if p.is(token.DEDENT) {
			p.advance()
		}
		return &ast.FunctionDecl{
			Verb: verb, Name: name.Lexeme, Parameters: params, ReturnType: ret,
			CanFail: canFail, Terminates: terminates, Contracts: contracts,
			Body: body, SpanValue: start,
		}
	}

	// Same-line `from body` with no contract clauses.
	p.expect(token.FROM, "introducing the function body")
	body := p.parseBody()
	return &ast.FunctionDecl{
		Verb: verb, Name: name.Lexeme, Parameters: params, ReturnType: ret,
		CanFail: canFail, Terminates: terminates, Contracts: contracts,
		Body: body, SpanValue: start,
	}
}

// parseContractClause parses one clause of a function's contract block and
// folds it into contracts.
func (p *Parser) parseContractClause(contracts *ast.Contracts) {
	switch p.cur().Kind {
	case token.ENSURES:
		p.advance()
		contracts.Ensures = append(contracts.Ensures, p.parseCondition())
	case token.REQUIRES:
		p.advance()
		contracts.Requires = append(contracts.Requires, p.parseCondition())
	case token.PROOF:
		contracts.Proof = p.parseProofBlock()
	case token.KNOW:
		p.advance()
		contracts.Know = append(contracts.Know, p.parseEpistemicList()...)
	case token.ASSUME:
		p.advance()
		contracts.Assume = append(contracts.Assume, p.parseEpistemicList()...)
	case token.BELIEVE:
		p.advance()
		contracts.Believe = append(contracts.Believe, p.parseEpistemicList()...)
	case token.WHY_NOT:
		p.advance()
		tok, _ := p.expect(token.STRING_LIT, "why_not text")
		contracts.WhyNot = tok.Lexeme
	case token.CHOSEN:
		p.advance()
		tok, _ := p.expect(token.STRING_LIT, "chosen text")
		contracts.Chosen = tok.Lexeme
	case token.INTENT:
		p.advance()
		tok, _ := p.expect(token.STRING_LIT, "intent text")
		contracts.Intent = tok.Lexeme
	case token.SATISFIES:
		p.advance()
		tok, _ := p.expect(token.IDENT_TYPE, "satisfies type name")
		contracts.Satisfies = tok.Lexeme
	case token.NEAR_MISS:
		p.advance()
		contracts.NearMiss = append(contracts.NearMiss, p.parseNearMissList()...)
	default:
		p.synchronize()
	}
}

// parseEpistemicList parses either a single same-line expression or, when
// the clause keyword is followed directly by a newline, an indented block
// of one expression per line.
func (p *Parser) parseEpistemicList() []ast.Expr {
	if p.is(token.NEWLINE) && p.peekAt(1).Kind == token.INDENT {
		p.advance() // NEWLINE
		p.advance() // INDENT
		var exprs []ast.Expr
		for !p.is(token.DEDENT) && !p.is(token.EOF) {
			exprs = append(exprs, p.ParseExpression(precLowest))
			p.skipNewlines()
		}
		if p.is(token.DEDENT) {
			p.advance()
		}
		return exprs
	}
	return []ast.Expr{p.ParseExpression(precLowest)}
}

func (p *Parser) parseNearMissList() []ast.NearMiss {
	parseOne := func() ast.NearMiss {
		alt := p.ParseExpression(precLowest)
		p.expect(token.ARROW, "in near_miss entry")
		reason := p.ParseExpression(precLowest)
		return ast.NearMiss{Alternative: alt, Reason: reason}
	}
	if p.is(token.NEWLINE) && p.peekAt(1).Kind == token.INDENT {
		p.advance()
		p.advance()
		var out []ast.NearMiss
		for !p.is(token.DEDENT) && !p.is(token.EOF) {
			out = append(out, parseOne())
			p.skipNewlines()
		}
		if p.is(token.DEDENT) {
			p.advance()
		}
		return out
	}
	return []ast.NearMiss{parseOne()}
}

// parseProofBlock parses `proof` followed by an indented run of obligations
// `name: text [when condition]`.
func (p *Parser) parseProofBlock() *ast.ProofBlock {
	start := p.cur().Span
	p.advance() // 'proof'
	var obligations []ast.Obligation
	p.skipNewlines()
	if p.is(token.INDENT) {
		p.advance()
		for !p.is(token.DEDENT) && !p.is(token.EOF) {
			obligations = append(obligations, p.parseObligation())
			p.skipNewlines()
		}
		if p.is(token.DEDENT) {
			p.advance()
		}
	}
	return &ast.ProofBlock{Obligations: obligations, SpanValue: start}
}

func (p *Parser) parseObligation() ast.Obligation {
	name := p.advance()
	p.expect(token.COLON, "after obligation name")
	text := p.advance()
	var when ast.Expr
	if p.is(token.IDENT_VALUE) && p.cur().Lexeme == "when" {
		p.advance()
		when = p.ParseExpression(precLowest)
	}
	return ast.Obligation{Name: name.Lexeme, Text: text.Lexeme, When: when}
}
