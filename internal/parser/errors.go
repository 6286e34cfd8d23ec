package parser

import (
	"fmt"

	"github.com/aeon-lang/aeon/internal/lexer"
)

// ParseErrorKind discriminates parse error conditions
type ParseErrorKind int

const (
	KindUnexpectedToken ParseErrorKind = iota
	KindUnexpectedEndOfInput
	KindExpectedIdentifier
	KindExpectedType
	KindMalformedStructLiteral
	KindUnbalancedScope
	KindModuleRequired
)

// String returns a string representation of the error kind
func (k ParseErrorKind) String() string {
	switch k {
	case KindUnexpectedToken:
		return "UnexpectedToken"
	case KindUnexpectedEndOfInput:
		return "UnexpectedEndOfInput"
	case KindExpectedIdentifier:
		return "ExpectedIdentifier"
	case KindExpectedType:
		return "ExpectedType"
	case KindMalformedStructLiteral:
		return "MalformedStructLiteral"
	case KindUnbalancedScope:
		return "UnbalancedScope"
	case KindModuleRequired:
		return "ModuleRequired"
	default:
		return fmt.Sprintf("ParseErrorKind(%d)", int(k))
	}
}

// ParseError represents a parsing error with an expected-vs-found description
// and the offending source position.
type ParseError struct {
	Kind     ParseErrorKind
	Expected string
	Found    string
	Pos      lexer.Position
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case KindUnexpectedEndOfInput:
		return fmt.Sprintf("parse error at %s: unexpected end of input, expected %s", e.Pos, e.Expected)
	case KindExpectedIdentifier:
		return fmt.Sprintf("parse error at %s: expected identifier, got %s", e.Pos, e.Found)
	case KindExpectedType:
		return fmt.Sprintf("parse error at %s: expected type, got %s", e.Pos, e.Found)
	case KindMalformedStructLiteral:
		return fmt.Sprintf("parse error at %s: malformed struct literal: expected %s, got %s", e.Pos, e.Expected, e.Found)
	case KindUnbalancedScope:
		return "parser context: leave without matching enter"
	case KindModuleRequired:
		return fmt.Sprintf("parse error at %s: file must begin with a module declaration", e.Pos)
	default:
		return fmt.Sprintf("parse error at %s: expected %s, got %s", e.Pos, e.Expected, e.Found)
	}
}

// unexpected builds the error for a token that does not fit the grammar at
// the current position. End-of-input gets its own kind so callers can tell
// a truncated file from a malformed one.
func unexpected(expected string, found lexer.Token) *ParseError {
	kind := KindUnexpectedToken
	if found.Type == lexer.TokenEOF {
		kind = KindUnexpectedEndOfInput
	}
	return &ParseError{
		Kind:     kind,
		Expected: expected,
		Found:    found.Type.String(),
		Pos:      found.Pos(),
	}
}

// expectedIdentifier builds the error for a missing name
func expectedIdentifier(found lexer.Token) *ParseError {
	return &ParseError{
		Kind:     KindExpectedIdentifier,
		Expected: "identifier",
		Found:    found.Type.String(),
		Pos:      found.Pos(),
	}
}

// expectedType builds the error for a missing type reference
func expectedType(found lexer.Token) *ParseError {
	return &ParseError{
		Kind:     KindExpectedType,
		Expected: "type",
		Found:    found.Type.String(),
		Pos:      found.Pos(),
	}
}

// malformedStructLiteral builds the error for a struct literal that matched
// the opening shape but went wrong inside.
func malformedStructLiteral(expected string, found lexer.Token) *ParseError {
	return &ParseError{
		Kind:     KindMalformedStructLiteral,
		Expected: expected,
		Found:    found.Type.String(),
		Pos:      found.Pos(),
	}
}
