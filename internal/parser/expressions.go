package parser

import (
	"github.com/proveland/prove/internal/ast"
	"github.com/proveland/prove/internal/source"
	"github.com/proveland/prove/internal/token"
)

// Binding powers, lowest to highest. Pipe
// binds loosest; postfix forms (call, index, field, fail-prop) bind
// tightest of all and are handled structurally rather than through this
// table.
const (
	precLowest = iota
	precPipe
	precOr
	precAnd
	precCompare
	precRange
	precAdd
	precMul
	precUnary
	precPostfix
)

var infixPrecedence = map[token.Kind]int{
	token.PIPE:    precPipe,
	token.OR_OR:   precOr,
	token.AND_AND: precAnd,
	token.EQ:      precCompare, token.NEQ: precCompare,
	token.LANGLE: precCompare, token.RANGLE: precCompare,
	token.LE: precCompare, token.GE: precCompare,
	token.DOTDOT: precRange,
	token.PLUS:   precAdd, token.MINUS: precAdd,
	token.STAR: precMul, token.SLASH: precMul, token.PERCENT: precMul,
	token.BANG: precPostfix, token.DOT: precPostfix,
	token.LPAREN: precPostfix, token.LBRACKET: precPostfix,
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := infixPrecedence[p.cur().Kind]; ok {
		return prec
	}
	return precLowest
}

// ParseExpression parses an expression via precedence climbing: a prefix
// term, followed by zero or more infix/postfix extensions bound at least as
// tightly as minPrec.
func (p *Parser) ParseExpression(minPrec int) ast.Expr {
	left := p.parsePrefix()
	for p.peekPrecedence() > minPrec && left != nil {
		left = p.parseInfix(left)
	}
	return left
}

func (p *Parser) parsePrefix() ast.Expr {
	tok := p.cur()
	switch tok.Kind {
	case token.BANG:
		p.advance()
		operand := p.ParseExpression(precUnary)
		return &ast.UnaryExpr{Op: "!", Operand: operand, SpanValue: tok.Span}
	case token.MINUS:
		p.advance()
		operand := p.ParseExpression(precUnary)
		return &ast.UnaryExpr{Op: "-", Operand: operand, SpanValue: tok.Span}
	case token.INT_LIT:
		p.advance()
		return &ast.IntegerLiteral{Text: tok.Lexeme, SpanValue: tok.Span}
	case token.DECIMAL_LIT:
		p.advance()
		return &ast.DecimalLiteral{Text: tok.Lexeme, SpanValue: tok.Span}
	case token.STRING_LIT:
		return p.parseMaybeInterpolated()
	case token.TRIPLE_STRING_LIT:
		p.advance()
		return &ast.TripleStringLiteral{Value: tok.Lexeme, SpanValue: tok.Span}
	case token.RAW_STRING_LIT:
		p.advance()
		return &ast.RawStringLiteral{Value: tok.Lexeme, SpanValue: tok.Span}
	case token.CHAR_LIT:
		p.advance()
		r, _ := utf8DecodeFirst(tok.Lexeme)
		return &ast.CharLiteral{Value: r, SpanValue: tok.Span}
	case token.BOOL_LIT:
		p.advance()
		return &ast.BooleanLiteral{Value: tok.Lexeme == "true", SpanValue: tok.Span}
	case token.REGEX_LIT:
		p.advance()
		return &ast.RegexLiteral{Pattern: tok.Lexeme, SpanValue: tok.Span}
	case token.PATH_LIT:
		p.advance()
		return &ast.PathLiteral{Path: tok.Lexeme, SpanValue: tok.Span}
	case token.IDENT_VALUE:
		p.advance()
		return &ast.Identifier{Name: tok.Lexeme, SpanValue: tok.Span}
	case token.IDENT_TYPE, token.IDENT_CONST:
		p.advance()
		return &ast.Identifier{Name: tok.Lexeme, IsType: tok.Kind == token.IDENT_TYPE, SpanValue: tok.Span}
	case token.VALID:
		p.advance()
		return &ast.ValidRef{SpanValue: tok.Span}
	case token.COMPTIME:
		p.advance()
		body := p.parseBody()
		return &ast.ComptimeBlock{Body: body, SpanValue: tok.Span}
	case token.IF:
		return p.parseIfExpr()
	case token.MATCH:
		return p.parseMatchExpr(true)
	case token.LBRACKET:
		return p.parseListLiteral()
	case token.BAR:
		return p.parseLambda()
	case token.LPAREN:
		p.advance()
		inner := p.ParseExpression(precLowest)
		p.expect(token.RPAREN, "to close grouped expression")
		return inner
	default:
		p.diags.Add(source.Newf("E201", "unexpected token %s in expression", tok.Kind).WithLabel(tok.Span, ""))
		p.advance()
		return nil
	}
}

func (p *Parser) parseInfix(left ast.Expr) ast.Expr {
	tok := p.cur()
	switch tok.Kind {
	case token.BANG:
		p.advance()
		return &ast.FailPropExpr{Operand: left, SpanValue: tok.Span}
	case token.DOT:
		p.advance()
		name, _ := p.expect(token.IDENT_VALUE, "field name")
		if name.Lexeme == "" {
			name = p.cur()
		}
		return &ast.FieldAccess{Target: left, Field: name.Lexeme, SpanValue: tok.Span}
	case token.LPAREN:
		p.advance()
		var args []ast.Expr
		for !p.is(token.RPAREN) && !p.is(token.EOF) {
			args = append(args, p.ParseExpression(precLowest))
			if p.is(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.RPAREN, "to close call arguments")
		return &ast.CallExpr{Callee: left, Args: args, SpanValue: tok.Span}
	case token.LBRACKET:
		p.advance()
		idx := p.ParseExpression(precLowest)
		p.expect(token.RBRACKET, "to close index")
		return &ast.IndexExpr{Target: left, Index: idx, SpanValue: tok.Span}
	case token.PIPE:
		p.advance()
		rhs := p.ParseExpression(precPipe)
		return &ast.PipeExpr{Left: left, Right: rhs, SpanValue: tok.Span}
	default:
		prec := p.peekPrecedence()
		op := tok.Lexeme
		p.advance()
		rhs := p.ParseExpression(prec)
		return &ast.BinaryExpr{Left: left, Op: op, Right: rhs, SpanValue: tok.Span}
	}
}

func (p *Parser) parseLambda() ast.Expr {
	start := p.cur().Span
	p.advance() // opening '|'
	var params []string
	for !p.is(token.BAR) && !p.is(token.EOF) {
		name, _ := p.expect(token.IDENT_VALUE, "lambda parameter")
		params = append(params, name.Lexeme)
		if p.is(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.BAR, "to close lambda parameter list")
	body := p.ParseExpression(precLowest)
	return &ast.LambdaExpr{Params: params, Body: body, SpanValue: start}
}

func (p *Parser) parseListLiteral() ast.Expr {
	start := p.cur().Span
	p.advance() // '['
	var elems []ast.Expr
	for !p.is(token.RBRACKET) && !p.is(token.EOF) {
		elems = append(elems, p.ParseExpression(precLowest))
		if p.is(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBRACKET, "to close list literal")
	return &ast.ListLiteral{Elements: elems, SpanValue: start}
}

func (p *Parser) parseIfExpr() ast.Expr {
	start := p.cur().Span
	p.advance() // 'if'
	cond := p.ParseExpression(precLowest)
	then := p.parseBody()
	var alt ast.Expr
	p.skipNewlines()
	if p.is(token.ELSE) {
		p.advance()
		if p.is(token.IF) {
			alt = p.parseIfExpr()
		} else {
			alt = p.parseBody()
		}
	}
	return &ast.IfExpr{Cond: cond, Then: then, Else: alt, SpanValue: start}
}

// parseMatchExpr parses `match subject { arms }` when explicit is true, or
// an implicit match when called from
// statement-sequence parsing with explicit=false and the subject already
// known to be absent.
func (p *Parser) parseMatchExpr(explicit bool) ast.Expr {
	start := p.cur().Span
	var subject ast.Expr
	if explicit {
		p.advance() // 'match'
		subject = p.ParseExpression(precLowest)
	}
	p.skipNewlines()
	var arms []ast.MatchArm
	hasIndent := p.is(token.INDENT)
	if hasIndent {
		p.advance()
	}
	for p.looksLikeMatchArm() {
		arms = append(arms, p.parseMatchArm())
		p.skipNewlines()
	}
	if hasIndent && p.is(token.DEDENT) {
		p.advance()
	}
	return &ast.MatchExpr{Subject: subject, Arms: arms, SpanValue: start}
}

func (p *Parser) looksLikeMatchArm() bool {
	return !p.isAny(token.DEDENT, token.EOF)
}

func (p *Parser) parseMatchArm() ast.MatchArm {
	pat := p.parsePattern()
	var guard ast.Expr
	if p.is(token.IF) {
		p.advance()
		guard = p.ParseExpression(precLowest)
	}
	p.expect(token.ARROW, "in match arm")
	body := p.ParseExpression(precLowest)
	return ast.MatchArm{Pattern: pat, Guard: guard, Body: body}
}

func (p *Parser) parsePattern() ast.Pattern {
	tok := p.cur()
	switch tok.Kind {
	case token.IDENT_VALUE:
		if tok.Lexeme == "_" {
			p.advance()
			return &ast.WildcardPattern{SpanValue: tok.Span}
		}
		p.advance()
		return &ast.BindingPattern{Name: tok.Lexeme, SpanValue: tok.Span}
	case token.IDENT_TYPE:
		p.advance()
		var fields []ast.Pattern
		if p.is(token.LPAREN) {
			p.advance()
			for !p.is(token.RPAREN) && !p.is(token.EOF) {
				fields = append(fields, p.parsePattern())
				if p.is(token.COMMA) {
					p.advance()
					continue
				}
				break
			}
			p.expect(token.RPAREN, "to close variant pattern")
		}
		return &ast.VariantPattern{Constructor: tok.Lexeme, Fields: fields, SpanValue: tok.Span}
	default:
		p.advance()
		return &ast.LiteralPattern{Text: tok.Lexeme, SpanValue: tok.Span}
	}
}

// parseMaybeInterpolated consumes a STRING_LIT token and, if the lexer
// queued INTERP_START/.../INTERP_END runs right after it, builds an
// InterpolatedString; otherwise returns a plain StringLiteral.
func (p *Parser) parseMaybeInterpolated() ast.Expr {
	first := p.advance()
	if !p.is(token.INTERP_START) {
		return &ast.StringLiteral{Value: first.Lexeme, SpanValue: first.Span}
	}

	segs := []ast.InterpSegment{{Text: first.Lexeme}}
	for p.is(token.INTERP_START) {
		p.advance() // INTERP_START
		expr := p.ParseExpression(precLowest)
		segs = append(segs, ast.InterpSegment{Expr: expr})
		p.expect(token.INTERP_END, "to close interpolation")
		if p.is(token.STRING_LIT) {
			seg := p.advance()
			segs = append(segs, ast.InterpSegment{Text: seg.Lexeme})
		}
	}
	return &ast.InterpolatedString{Segments: segs, SpanValue: first.Span}
}

func utf8DecodeFirst(s string) (rune, int) {
	for _, r := range s {
		return r, 1
	}
	return 0, 0
}
