// Package lexer implements the Aeon lexical analyzer.
package lexer

import (
	"fmt"
	"strings"
)

// LexErrorKind discriminates lexical error conditions
type LexErrorKind int

const (
	UnexpectedCharacter LexErrorKind = iota
	UnterminatedString
)

// String returns a string representation of the error kind
func (k LexErrorKind) String() string {
	switch k {
	case UnterminatedString:
		return "UnterminatedString"
	default:
		return "UnexpectedCharacter"
	}
}

// LexError represents a lexical error with its source position
type LexError struct {
	Kind LexErrorKind
	Char byte
	Pos  Position
}

func (e *LexError) Error() string {
	switch e.Kind {
	case UnterminatedString:
		return fmt.Sprintf("%s: unterminated string literal", e.Pos)
	default:
		return fmt.Sprintf("%s: unexpected character %q", e.Pos, e.Char)
	}
}

// Lexer represents the lexical analyzer
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int  // current line number
	column       int  // current column number

	err *LexError // structured error backing the last TokenError
}

// New creates a new lexer instance
func New(input string) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
	}
	l.readChar()
	return l
}

// Lex scans the entire input and returns the token sequence terminated by an
// end-of-input token, or the first lexical error encountered.
func Lex(source string) ([]Token, error) {
	l := New(source)
	tokens := make([]Token, 0, 64)
	for {
		tok := l.NextToken()
		if tok.Type == TokenError {
			return nil, l.err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

// readChar reads the next character and advances position
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII NUL character represents "EOF"
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++

	if l.ch == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
}

// peekChar returns the next character without advancing position
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// pos returns the current source position
func (l *Lexer) pos() Position {
	return Position{Line: l.line, Column: l.column, Offset: l.position}
}

// skipTrivia skips whitespace (including newlines) and line comments
func (l *Lexer) skipTrivia() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		default:
			return
		}
	}
}

// isLetter checks if character is ASCII letter
func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

// isDigit checks if character is ASCII digit
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}

func isIdentChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_'
}

// NextToken scans the input and returns the next token with position
// information. Lexical errors are reported as TokenError tokens; the
// structured error is retained for Lex to surface.
func (l *Lexer) NextToken() Token {
	l.skipTrivia()

	start := l.pos()

	switch l.ch {
	case 0:
		return l.token(TokenEOF, "", start)
	case '+':
		return l.single(TokenPlus, start)
	case '-':
		return l.single(TokenMinus, start)
	case '*':
		return l.single(TokenStar, start)
	case '/':
		return l.single(TokenSlash, start)
	case '=':
		if l.peekChar() == '=' {
			return l.double(TokenEq, start)
		}
		return l.single(TokenReassign, start)
	case '!':
		if l.peekChar() == '=' {
			return l.double(TokenNe, start)
		}
		return l.single(TokenNot, start)
	case '<':
		if l.peekChar() == '=' {
			return l.double(TokenLe, start)
		}
		return l.single(TokenLt, start)
	case '>':
		if l.peekChar() == '=' {
			return l.double(TokenGe, start)
		}
		return l.single(TokenGt, start)
	case '&':
		if l.peekChar() == '&' {
			return l.double(TokenAnd, start)
		}
		return l.single(TokenAmpersand, start)
	case '|':
		if l.peekChar() == '|' {
			return l.double(TokenOr, start)
		}
		return l.errorToken(UnexpectedCharacter, start)
	case '?':
		if l.peekChar() == '*' {
			return l.double(TokenOptionalPtr, start)
		}
		return l.single(TokenQuestion, start)
	case ':':
		if l.peekChar() == '=' {
			return l.double(TokenDeclare, start)
		}
		if l.peekChar() == ':' {
			return l.double(TokenDoubleColon, start)
		}
		if l.hasMutSuffix() {
			for i := 0; i < 4; i++ {
				l.readChar()
			}
			return l.token(TokenDeclareMut, ":mut", start)
		}
		return l.single(TokenColon, start)
	case '.':
		return l.single(TokenDot, start)
	case '(':
		return l.single(TokenLParen, start)
	case ')':
		return l.single(TokenRParen, start)
	case '{':
		return l.single(TokenLBrace, start)
	case '}':
		return l.single(TokenRBrace, start)
	case '[':
		return l.single(TokenLBracket, start)
	case ']':
		return l.single(TokenRBracket, start)
	case ',':
		return l.single(TokenComma, start)
	case '"':
		return l.readString(start)
	default:
		if isLetter(l.ch) || l.ch == '_' {
			literal := l.readIdentifier()
			return l.token(lookupIdent(literal), literal, start)
		}
		if isDigit(l.ch) {
			return l.readNumber(start)
		}
		return l.errorToken(UnexpectedCharacter, start)
	}
}

// hasMutSuffix reports whether the current ':' begins a ':mut' operator.
// The word must end there; ':mutate' is a colon followed by an identifier.
func (l *Lexer) hasMutSuffix() bool {
	rest := l.input[l.readPosition:]
	if !strings.HasPrefix(rest, "mut") {
		return false
	}
	return len(rest) == 3 || !isIdentChar(rest[3])
}

// readIdentifier reads an identifier starting at the current character
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isIdentChar(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readNumber reads an integer or float literal
func (l *Lexer) readNumber(start Position) Token {
	position := l.position

	// Prefixed integer forms: 0x / 0b / 0o. A prefix with no digits after
	// it is an error at the character following the prefix.
	if l.ch == '0' {
		var digit func(byte) bool
		switch l.peekChar() {
		case 'x', 'X':
			digit = isHexDigit
		case 'b', 'B':
			digit = func(ch byte) bool { return ch == '0' || ch == '1' }
		case 'o', 'O':
			digit = func(ch byte) bool { return '0' <= ch && ch <= '7' }
		}
		if digit != nil {
			l.readChar()
			l.readChar()
			if !digit(l.ch) {
				return l.errorToken(UnexpectedCharacter, l.pos())
			}
			for digit(l.ch) {
				l.readChar()
			}
			return l.token(TokenInteger, l.input[position:l.position], start)
		}
	}

	for isDigit(l.ch) {
		l.readChar()
	}

	// A '.' followed by a digit promotes to float
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // consume '.'
		for isDigit(l.ch) {
			l.readChar()
		}
		return l.token(TokenFloat, l.input[position:l.position], start)
	}

	return l.token(TokenInteger, l.input[position:l.position], start)
}

// readString reads a double-quoted string literal, decoding escape sequences.
// The token literal holds the decoded value, not the raw source text.
func (l *Lexer) readString(start Position) Token {
	l.readChar() // consume opening quote

	var sb strings.Builder
	for {
		switch l.ch {
		case '"':
			l.readChar() // consume closing quote
			return l.token(TokenString, sb.String(), start)
		case 0, '\n':
			l.err = &LexError{Kind: UnterminatedString, Pos: start}
			return l.token(TokenError, "unterminated string literal", start)
		case '\\':
			l.readChar()
			switch l.ch {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			default:
				// Unknown escape, keep verbatim
				sb.WriteByte('\\')
				sb.WriteByte(l.ch)
			}
			l.readChar()
		default:
			sb.WriteByte(l.ch)
			l.readChar()
		}
	}
}

// single consumes the current character and builds a one-character token
func (l *Lexer) single(tt TokenType, start Position) Token {
	literal := string(l.ch)
	l.readChar()
	return l.token(tt, literal, start)
}

// double consumes the current and next characters and builds a two-character token
func (l *Lexer) double(tt TokenType, start Position) Token {
	literal := string(l.ch) + string(l.peekChar())
	l.readChar()
	l.readChar()
	return l.token(tt, literal, start)
}

// token builds a token spanning from start to the current position
func (l *Lexer) token(tt TokenType, literal string, start Position) Token {
	return Token{
		Type:    tt,
		Literal: literal,
		Span:    Span{Start: start, End: l.pos()},
	}
}

// errorToken records an unexpected-character error and consumes the character
func (l *Lexer) errorToken(kind LexErrorKind, start Position) Token {
	l.err = &LexError{Kind: kind, Char: l.ch, Pos: start}
	tok := l.token(TokenError, fmt.Sprintf("unexpected character %q", l.ch), start)
	l.readChar()
	return tok
}
