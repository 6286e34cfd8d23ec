package lexer

import "fmt"

// TokenType represents the type of a token
type TokenType int

// String returns a string representation of the token type
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(tt))
}

// Token types - Aeon token definitions
const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenError

	// Literals
	TokenIdentifier
	TokenInteger
	TokenFloat
	TokenString
	TokenBool
	TokenNull

	// Keywords
	TokenModule
	TokenImport
	TokenFn
	TokenStruct
	TokenReturn
	TokenIf
	TokenElse

	// Operators
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenEq
	TokenNe
	TokenLt
	TokenLe
	TokenGt
	TokenGe
	TokenReassign    // =
	TokenDeclare     // :=
	TokenDeclareMut  // :mut
	TokenAnd         // &&
	TokenOr          // ||
	TokenNot         // !
	TokenAmpersand   // &
	TokenQuestion    // ?
	TokenOptionalPtr // ?*
	TokenDot         // .
	TokenDoubleColon // ::

	// Punctuation
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenComma
	TokenColon
)

// Position represents a position in the source code
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset in source
}

// String returns a "line:column" rendering used in diagnostics
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span represents a range in the source code
type Span struct {
	Start Position
	End   Position
}

// Token represents a lexical token with position information
type Token struct {
	Type    TokenType
	Literal string
	Span    Span
}

// Pos returns the start position of the token
func (t Token) Pos() Position {
	return t.Span.Start
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("{Type: %s, Literal: %q, Line: %d, Column: %d}",
		t.Type, t.Literal, t.Span.Start.Line, t.Span.Start.Column)
}

// tokenNames provides string representations for token types
var tokenNames = map[TokenType]string{
	TokenEOF:   "EOF",
	TokenError: "ERROR",

	TokenIdentifier: "IDENTIFIER",
	TokenInteger:    "INTEGER",
	TokenFloat:      "FLOAT",
	TokenString:     "STRING",
	TokenBool:       "BOOL",
	TokenNull:       "NULL",

	TokenModule: "MODULE",
	TokenImport: "IMPORT",
	TokenFn:     "FN",
	TokenStruct: "STRUCT",
	TokenReturn: "RETURN",
	TokenIf:     "IF",
	TokenElse:   "ELSE",

	TokenPlus:        "PLUS",
	TokenMinus:       "MINUS",
	TokenStar:        "STAR",
	TokenSlash:       "SLASH",
	TokenEq:          "EQ",
	TokenNe:          "NE",
	TokenLt:          "LT",
	TokenLe:          "LE",
	TokenGt:          "GT",
	TokenGe:          "GE",
	TokenReassign:    "REASSIGN",
	TokenDeclare:     "DECLARE",
	TokenDeclareMut:  "DECLARE_MUT",
	TokenAnd:         "AND",
	TokenOr:          "OR",
	TokenNot:         "NOT",
	TokenAmpersand:   "AMPERSAND",
	TokenQuestion:    "QUESTION",
	TokenOptionalPtr: "OPTIONAL_PTR",
	TokenDot:         "DOT",
	TokenDoubleColon: "DOUBLE_COLON",

	TokenLParen:   "LPAREN",
	TokenRParen:   "RPAREN",
	TokenLBrace:   "LBRACE",
	TokenRBrace:   "RBRACE",
	TokenLBracket: "LBRACKET",
	TokenRBracket: "RBRACKET",
	TokenComma:    "COMMA",
	TokenColon:    "COLON",
}

// keywords maps string keywords to their token types
var keywords = map[string]TokenType{
	"module": TokenModule,
	"import": TokenImport,
	"fn":     TokenFn,
	"struct": TokenStruct,
	"return": TokenReturn,
	"if":     TokenIf,
	"else":   TokenElse,
	"true":   TokenBool,
	"false":  TokenBool,
	"null":   TokenNull,
}

// lookupIdent checks if identifier is a keyword
func lookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdentifier
}
