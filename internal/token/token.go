package token

import "github.com/proveland/prove/internal/source"

// Token is a tagged value: kind, textual lexeme, and the span it occupies.
type Token struct {
	Kind   Kind
	Lexeme string
	Span   source.Span
}

// New builds a Token.
func New(kind Kind, lexeme string, span source.Span) Token {
	return Token{Kind: kind, Lexeme: lexeme, Span: span}
}

func (t Token) String() string {
	return t.Kind.String() + " " + t.Lexeme
}
