// Package token defines the token kinds and token record produced by the
// prove lexer and consumed by the parser.
package token

// Kind identifies the lexical category of a Token. Kinds are grouped by
// concern for readability; the grouping carries no semantic weight.
type Kind int

const (
	ILLEGAL Kind = iota
	EOF
	COMMENT

	// Structural markers. Indentation is significant: every
	// INDENT has a matching DEDENT, and NEWLINE is suppressed inside
	// brackets and after continuation tokens.
	NEWLINE
	INDENT
	DEDENT

	// Identifier classes, decided once by the lexer after scanning an
	// identifier: value (lowercase-leading), type (uppercase-leading with
	// any lowercase, or a single uppercase letter), constant (all-caps).
	IDENT_VALUE
	IDENT_TYPE
	IDENT_CONST

	// Literal forms.
	INT_LIT
	DECIMAL_LIT
	STRING_LIT
	TRIPLE_STRING_LIT
	RAW_STRING_LIT
	CHAR_LIT
	BOOL_LIT
	REGEX_LIT
	PATH_LIT

	// String interpolation boundaries. Between INTERP_START and INTERP_END
	// the lexer emits ordinary expression tokens for the embedded
	// expression; STRING_LIT segments carry the literal text in between.
	INTERP_START
	INTERP_END

	// Verbs: the leading classifier of a function
	// declaration. transforms/validates/matches are pure; inputs/outputs/
	// reads/creates may perform I/O.
	TRANSFORMS
	INPUTS
	OUTPUTS
	VALIDATES
	READS
	CREATES
	MATCHES

	// Keywords.
	MAIN
	FROM
	TYPE
	CONST
	IS
	AS
	WITH
	USE
	WHERE
	MATCH
	IF
	ELSE
	COMPTIME
	VALID
	MODULE
	DOMAIN
	TERMINATES

	// Contract clause keywords.
	ENSURES
	REQUIRES
	PROOF
	WHY_NOT
	CHOSEN
	NEAR_MISS
	KNOW
	ASSUME
	BELIEVE
	INTENT
	SATISFIES
	INVARIANT_NETWORK

	// Operators and punctuation.
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	EQ
	NEQ
	LT
	GT
	LE
	GE
	AND_AND
	OR_OR
	BANG
	PIPE
	DOTDOT
	ARROW    // =>
	ASSIGN   // =
	DOT
	COMMA
	COLON
	LPAREN
	RPAREN
	LBRACKET
	RBRACKET
	LBRACE
	RBRACE
	LANGLE  // <  reused for generics where disambiguated by the parser
	RANGLE  // >
	BAR     // |  lambda parameter-list delimiter
)

// continuationSet is the set of kinds after which a NEWLINE is suppressed:
// binary operators, commas, colons, open brackets, pipes, dots, range,
// arrow forms, assignment.
var continuationSet = map[Kind]bool{
	PLUS: true, MINUS: true, STAR: true, SLASH: true, PERCENT: true,
	EQ: true, NEQ: true, LT: true, GT: true, LE: true, GE: true,
	AND_AND: true, OR_OR: true, PIPE: true, DOTDOT: true, ARROW: true,
	ASSIGN: true, COMMA: true, COLON: true, DOT: true,
	LPAREN: true, LBRACKET: true, LBRACE: true,
}

// IsContinuation reports whether a line ending in a token of this kind
// should not emit NEWLINE.
func IsContinuation(k Kind) bool { return continuationSet[k] }

// valueProducing is the set of kinds after which a bare '/' is division,
// not the start of a regex literal.
var valueProducing = map[Kind]bool{
	IDENT_VALUE: true, IDENT_TYPE: true, IDENT_CONST: true,
	INT_LIT: true, DECIMAL_LIT: true, STRING_LIT: true, TRIPLE_STRING_LIT: true,
	RAW_STRING_LIT: true, CHAR_LIT: true, BOOL_LIT: true, REGEX_LIT: true, PATH_LIT: true,
	RPAREN: true, RBRACKET: true, RBRACE: true, BANG: true, INTERP_END: true,
}

// IsValueProducing reports whether a token of this kind can end an
// expression (so a following '/' is division, not regex).
func IsValueProducing(k Kind) bool { return valueProducing[k] }

// Keywords maps reserved-word lexemes to their Kind, used by the lexer
// after scanning a lowercase-leading identifier.
var Keywords = map[string]Kind{
	"transforms": TRANSFORMS,
	"inputs":     INPUTS,
	"outputs":    OUTPUTS,
	"validates":  VALIDATES,
	"reads":      READS,
	"creates":    CREATES,
	"matches":    MATCHES,

	"main":       MAIN,
	"from":       FROM,
	"type":       TYPE,
	"const":      CONST,
	"is":         IS,
	"as":         AS,
	"with":       WITH,
	"use":        USE,
	"where":      WHERE,
	"match":      MATCH,
	"if":         IF,
	"else":       ELSE,
	"comptime":   COMPTIME,
	"valid":      VALID,
	"module":     MODULE,
	"domain":     DOMAIN,
	"terminates": TERMINATES,

	"ensures":          ENSURES,
	"requires":         REQUIRES,
	"proof":            PROOF,
	"why_not":          WHY_NOT,
	"chosen":           CHOSEN,
	"near_miss":        NEAR_MISS,
	"know":             KNOW,
	"assume":           ASSUME,
	"believe":          BELIEVE,
	"intent":           INTENT,
	"satisfies":        SATISFIES,
	"invariant_network": INVARIANT_NETWORK,

	"true":  BOOL_LIT,
	"false": BOOL_LIT,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

var kindNames = map[Kind]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF", COMMENT: "COMMENT",
	NEWLINE: "NEWLINE", INDENT: "INDENT", DEDENT: "DEDENT",
	IDENT_VALUE: "IDENT_VALUE", IDENT_TYPE: "IDENT_TYPE", IDENT_CONST: "IDENT_CONST",
	INT_LIT: "INT_LIT", DECIMAL_LIT: "DECIMAL_LIT", STRING_LIT: "STRING_LIT",
	TRIPLE_STRING_LIT: "TRIPLE_STRING_LIT", RAW_STRING_LIT: "RAW_STRING_LIT",
	CHAR_LIT: "CHAR_LIT", BOOL_LIT: "BOOL_LIT", REGEX_LIT: "REGEX_LIT", PATH_LIT: "PATH_LIT",
	INTERP_START: "INTERP_START", INTERP_END: "INTERP_END",
	TRANSFORMS: "TRANSFORMS", INPUTS: "INPUTS", OUTPUTS: "OUTPUTS", VALIDATES: "VALIDATES",
	READS: "READS", CREATES: "CREATES", MATCHES: "MATCHES",
	MAIN: "MAIN", FROM: "FROM", TYPE: "TYPE", CONST: "CONST", IS: "IS", AS: "AS", WITH: "WITH", USE: "USE",
	WHERE: "WHERE", MATCH: "MATCH", IF: "IF", ELSE: "ELSE", COMPTIME: "COMPTIME", VALID: "VALID",
	MODULE: "MODULE", DOMAIN: "DOMAIN", TERMINATES: "TERMINATES",
	ENSURES: "ENSURES", REQUIRES: "REQUIRES", PROOF: "PROOF", WHY_NOT: "WHY_NOT",
	CHOSEN: "CHOSEN", NEAR_MISS: "NEAR_MISS", KNOW: "KNOW", ASSUME: "ASSUME",
	BELIEVE: "BELIEVE", INTENT: "INTENT", SATISFIES: "SATISFIES",
	INVARIANT_NETWORK: "INVARIANT_NETWORK",
	PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/", PERCENT: "%",
	EQ: "==", NEQ: "!=", LT: "<", GT: ">", LE: "<=", GE: ">=",
	AND_AND: "&&", OR_OR: "||", BANG: "!", PIPE: "|>", DOTDOT: "..", ARROW: "=>", ASSIGN: "=",
	DOT: ".", COMMA: ",", COLON: ":",
	LPAREN: "(", RPAREN: ")", LBRACKET: "[", RBRACKET: "]", LBRACE: "{", RBRACE: "}",
	LANGLE: "<", RANGLE: ">", BAR: "|",
}
