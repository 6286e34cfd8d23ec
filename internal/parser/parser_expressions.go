package parser

import (
	"github.com/aeon-lang/aeon/internal/lexer"
)

// Binding powers, lowest to highest. Assignment is absent on purpose: '='
// is handled by the statement parser.
const (
	precLowest = iota
	precOr
	precAnd
	precEquality
	precComparison
	precSum
	precProduct
)

var binaryPrec = map[lexer.TokenType]int{
	lexer.TokenOr:    precOr,
	lexer.TokenAnd:   precAnd,
	lexer.TokenEq:    precEquality,
	lexer.TokenNe:    precEquality,
	lexer.TokenLt:    precComparison,
	lexer.TokenLe:    precComparison,
	lexer.TokenGt:    precComparison,
	lexer.TokenGe:    precComparison,
	lexer.TokenPlus:  precSum,
	lexer.TokenMinus: precSum,
	lexer.TokenStar:  precProduct,
	lexer.TokenSlash: precProduct,
}

// parseExpression parses a full expression via precedence climbing
func (p *Parser) parseExpression() (Expression, error) {
	return p.parseBinary(precLowest + 1)
}

// parseBinary climbs through the binary operator tiers. All binary
// operators are left-associative.
func (p *Parser) parseBinary(minPrec int) (Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		op := p.stream.Current()
		prec, ok := binaryPrec[op.Type]
		if !ok || prec < minPrec {
			return left, nil
		}
		p.stream.Advance()

		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &Binary{
			Span:  lexer.Span{Start: left.GetSpan().Start, End: right.GetSpan().End},
			Op:    op.Literal,
			Left:  left,
			Right: right,
		}
	}
}

// parseUnary parses prefix operators. '&' builds an address-of node; the
// other prefixes stay generic unary nodes.
func (p *Parser) parseUnary() (Expression, error) {
	tok := p.stream.Current()
	switch tok.Type {
	case lexer.TokenMinus, lexer.TokenNot, lexer.TokenQuestion:
		p.stream.Advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{
			Span:    lexer.Span{Start: tok.Span.Start, End: operand.GetSpan().End},
			Op:      tok.Literal,
			Operand: operand,
		}, nil
	case lexer.TokenAmpersand:
		p.stream.Advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &AddressOf{
			Span:    lexer.Span{Start: tok.Span.Start, End: operand.GetSpan().End},
			Operand: operand,
		}, nil
	}
	return p.parsePostfix()
}

// parsePostfix parses field access, calls and indexing, tightest-binding
// and freely chainable.
func (p *Parser) parsePostfix() (Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.stream.Current().Type {
		case lexer.TokenDot:
			p.stream.Advance()
			field, err := p.stream.Expect(lexer.TokenIdentifier)
			if err != nil {
				return nil, expectedIdentifier(p.stream.Current())
			}
			expr = &FieldAccess{
				Span:     lexer.Span{Start: expr.GetSpan().Start, End: field.Span.End},
				Receiver: expr,
				Field:    field.Literal,
			}
		case lexer.TokenLParen:
			call, err := p.parseCall(expr)
			if err != nil {
				return nil, err
			}
			expr = call
		case lexer.TokenLBracket:
			p.stream.Advance()
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			end, err := p.stream.Expect(lexer.TokenRBracket)
			if err != nil {
				return nil, unexpected("']'", p.stream.Current())
			}
			expr = &Index{
				Span:     lexer.Span{Start: expr.GetSpan().Start, End: end.Span.End},
				Receiver: expr,
				Index:    index,
			}
		default:
			return expr, nil
		}
	}
}

// parseCall parses the argument list of a call expression
func (p *Parser) parseCall(callee Expression) (Expression, error) {
	p.stream.Advance() // (

	// struct literals regain validity inside argument lists
	saved := p.structLitOK
	p.structLitOK = true
	defer func() { p.structLitOK = saved }()

	call := &Call{Callee: callee}
	for p.stream.Current().Type != lexer.TokenRParen {
		if len(call.Args) > 0 {
			if _, err := p.stream.Expect(lexer.TokenComma); err != nil {
				return nil, unexpected("',' or ')'", p.stream.Current())
			}
		}
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)
	}
	end, err := p.stream.Expect(lexer.TokenRParen)
	if err != nil {
		return nil, err
	}
	call.Span = lexer.Span{Start: callee.GetSpan().Start, End: end.Span.End}
	return call, nil
}

// parsePrimary parses literals, identifiers, grouping and struct literals
func (p *Parser) parsePrimary() (Expression, error) {
	tok := p.stream.Current()
	switch tok.Type {
	case lexer.TokenInteger:
		p.stream.Advance()
		return &Literal{Span: tok.Span, Kind: LiteralInt, Value: tok.Literal}, nil
	case lexer.TokenFloat:
		p.stream.Advance()
		return &Literal{Span: tok.Span, Kind: LiteralFloat, Value: tok.Literal}, nil
	case lexer.TokenString:
		p.stream.Advance()
		return &Literal{Span: tok.Span, Kind: LiteralString, Value: tok.Literal}, nil
	case lexer.TokenBool:
		p.stream.Advance()
		return &Literal{Span: tok.Span, Kind: LiteralBool, Value: tok.Literal}, nil
	case lexer.TokenNull:
		p.stream.Advance()
		return &Literal{Span: tok.Span, Kind: LiteralNull, Value: tok.Literal}, nil
	case lexer.TokenLParen:
		p.stream.Advance()
		saved := p.structLitOK
		p.structLitOK = true
		inner, err := p.parseExpression()
		p.structLitOK = saved
		if err != nil {
			return nil, err
		}
		end, err := p.stream.Expect(lexer.TokenRParen)
		if err != nil {
			return nil, unexpected("')'", p.stream.Current())
		}
		return &Grouping{
			Span:  lexer.Span{Start: tok.Span.Start, End: end.Span.End},
			Inner: inner,
		}, nil
	case lexer.TokenIdentifier:
		return p.parseNameExpr()
	}
	return nil, unexpected("expression", tok)
}

// parseNameExpr parses an identifier, following '::' qualification, and
// decides whether a trailing '{' opens a struct literal.
func (p *Parser) parseNameExpr() (Expression, error) {
	first := p.stream.Advance()
	name := first.Literal
	end := first.Span.End

	for p.stream.Current().Type == lexer.TokenDoubleColon {
		p.stream.Advance()
		part, err := p.stream.Expect(lexer.TokenIdentifier)
		if err != nil {
			return nil, expectedIdentifier(p.stream.Current())
		}
		name += "::" + part.Literal
		end = part.Span.End
	}

	span := lexer.Span{Start: first.Span.Start, End: end}
	if p.structLitOK && p.stream.Current().Type == lexer.TokenLBrace {
		cp := p.stream.Checkpoint()
		p.stream.Advance() // {
		if p.structLiteralShape() {
			return p.parseStructLiteral(name, span.Start)
		}
		// not a field list: roll back and leave the brace for the
		// enclosing construct
		p.stream.Restore(cp)
	}
	return &Identifier{Span: span, Name: name}, nil
}

// structLiteralShape reports whether the tokens after a consumed '{' open
// a field list: either an immediate '}' or `Ident :`.
func (p *Parser) structLiteralShape() bool {
	if p.stream.Current().Type == lexer.TokenRBrace {
		return true
	}
	return p.stream.Current().Type == lexer.TokenIdentifier &&
		p.stream.Peek(1).Type == lexer.TokenColon
}

// parseStructLiteral parses the field list after a matched `Name {`. The
// shape probe has committed us: malformed content from here on is a
// struct-literal error, not a rollback.
func (p *Parser) parseStructLiteral(typeName string, start lexer.Position) (Expression, error) {
	lit := &StructLiteral{TypeName: typeName}
	for p.stream.Current().Type != lexer.TokenRBrace {
		if len(lit.Fields) > 0 {
			if !p.stream.Match(lexer.TokenComma) {
				return nil, malformedStructLiteral("',' or '}'", p.stream.Current())
			}
			if p.stream.Current().Type == lexer.TokenRBrace {
				break // trailing comma
			}
		}

		name, err := p.stream.Expect(lexer.TokenIdentifier)
		if err != nil {
			return nil, malformedStructLiteral("field name", p.stream.Current())
		}
		if _, err := p.stream.Expect(lexer.TokenColon); err != nil {
			return nil, malformedStructLiteral("':'", p.stream.Current())
		}

		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		lit.Fields = append(lit.Fields, &FieldInit{
			Span:  lexer.Span{Start: name.Span.Start, End: value.GetSpan().End},
			Name:  name.Literal,
			Value: value,
		})
	}

	end, err := p.stream.Expect(lexer.TokenRBrace)
	if err != nil {
		return nil, err
	}
	lit.Span = lexer.Span{Start: start, End: end.Span.End}
	return lit, nil
}
