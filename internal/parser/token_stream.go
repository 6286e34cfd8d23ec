package parser

import (
	"github.com/aeon-lang/aeon/internal/lexer"
)

// Checkpoint is a saved cursor position in a TokenStream. Restoring is O(1)
// and never invalidates other checkpoints.
type Checkpoint int

// TokenStream owns a token sequence and a cursor over it. Reads past the end
// return the terminating end-of-input token instead of faulting, so the
// parser never has to bounds-check lookahead.
type TokenStream struct {
	tokens []lexer.Token
	cursor int
	eof    lexer.Token
}

// NewTokenStream creates a stream over the given tokens. A terminating
// end-of-input token is synthesized when the sequence lacks one.
func NewTokenStream(tokens []lexer.Token) *TokenStream {
	s := &TokenStream{tokens: tokens}
	if n := len(tokens); n > 0 && tokens[n-1].Type == lexer.TokenEOF {
		s.eof = tokens[n-1]
		s.tokens = tokens[:n-1]
	} else if n > 0 {
		last := tokens[n-1]
		s.eof = lexer.Token{Type: lexer.TokenEOF, Span: lexer.Span{Start: last.Span.End, End: last.Span.End}}
	} else {
		s.eof = lexer.Token{Type: lexer.TokenEOF, Span: lexer.Span{Start: lexer.Position{Line: 1, Column: 1}, End: lexer.Position{Line: 1, Column: 1}}}
	}
	return s
}

// Peek returns the token at the given offset from the cursor without
// consuming anything. Offsets past the end yield the end-of-input token.
func (s *TokenStream) Peek(offset int) lexer.Token {
	idx := s.cursor + offset
	if idx >= len(s.tokens) {
		return s.eof
	}
	return s.tokens[idx]
}

// Current returns the token under the cursor
func (s *TokenStream) Current() lexer.Token {
	return s.Peek(0)
}

// Advance returns the current token and moves the cursor forward by one,
// clamped at the end of the sequence.
func (s *TokenStream) Advance() lexer.Token {
	tok := s.Current()
	if s.cursor < len(s.tokens) {
		s.cursor++
	}
	return tok
}

// AtEnd reports whether the cursor has reached the end-of-input token
func (s *TokenStream) AtEnd() bool {
	return s.cursor >= len(s.tokens)
}

// Position returns the cursor index
func (s *TokenStream) Position() int {
	return s.cursor
}

// Checkpoint saves the current cursor position
func (s *TokenStream) Checkpoint() Checkpoint {
	return Checkpoint(s.cursor)
}

// Restore rewinds (or forwards) the cursor to a previous checkpoint
func (s *TokenStream) Restore(cp Checkpoint) {
	s.cursor = int(cp)
}

// Expect consumes and returns the current token when its type matches.
// On a mismatch the cursor does not move and a ParseError is returned.
func (s *TokenStream) Expect(tt lexer.TokenType) (lexer.Token, error) {
	if s.Current().Type == tt {
		return s.Advance(), nil
	}
	return lexer.Token{}, unexpected(tt.String(), s.Current())
}

// Match consumes the current token and reports true when its type matches;
// otherwise the cursor stays put.
func (s *TokenStream) Match(tt lexer.TokenType) bool {
	if s.Current().Type == tt {
		s.Advance()
		return true
	}
	return false
}
