package parser

import (
	"github.com/aeon-lang/aeon/internal/lexer"
)

// parseBlock parses `{ stmt* }`. Blocks introduce a shadowing scope for
// later semantic phases but never push a context frame.
func (p *Parser) parseBlock() (*Block, error) {
	open, err := p.stream.Expect(lexer.TokenLBrace)
	if err != nil {
		return nil, unexpected("'{'", p.stream.Current())
	}

	block := &Block{}
	for p.stream.Current().Type != lexer.TokenRBrace {
		if p.stream.Current().Type == lexer.TokenEOF {
			return nil, unexpected("'}'", p.stream.Current())
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}

	end, err := p.stream.Expect(lexer.TokenRBrace)
	if err != nil {
		return nil, err
	}
	block.Span = lexer.Span{Start: open.Span.Start, End: end.Span.End}
	return block, nil
}

// parseStatement dispatches on the leading token
func (p *Parser) parseStatement() (Statement, error) {
	switch p.stream.Current().Type {
	case lexer.TokenReturn:
		return p.parseReturn()
	case lexer.TokenIf:
		return p.parseIf()
	case lexer.TokenLBrace:
		return p.parseBlock()
	case lexer.TokenIdentifier:
		// a declaration only when ':=' or ':mut' follows directly;
		// anything else is an expression statement
		switch p.stream.Peek(1).Type {
		case lexer.TokenDeclare, lexer.TokenDeclareMut:
			return p.parseVarDecl()
		}
		return p.parseExprStatement()
	default:
		return p.parseExprStatement()
	}
}

// parseReturn parses `return [expr]`; the value is omitted only when the
// closing brace follows immediately.
func (p *Parser) parseReturn() (Statement, error) {
	kw := p.stream.Advance()
	ret := &Return{Span: kw.Span}
	if p.stream.Current().Type == lexer.TokenRBrace {
		return ret, nil
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	ret.Value = value
	ret.Span = lexer.Span{Start: kw.Span.Start, End: value.GetSpan().End}
	return ret, nil
}

// parseIf parses `if cond block [else (block | if)]`. Struct literals are
// disabled while the condition is parsed so its brace always opens the
// then-block.
func (p *Parser) parseIf() (Statement, error) {
	kw := p.stream.Advance()

	saved := p.structLitOK
	p.structLitOK = false
	cond, err := p.parseExpression()
	p.structLitOK = saved
	if err != nil {
		return nil, err
	}

	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	stmt := &If{Cond: cond, Then: then}
	end := then.Span.End

	if p.stream.Match(lexer.TokenElse) {
		switch p.stream.Current().Type {
		case lexer.TokenIf:
			chained, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			stmt.Else = chained
		case lexer.TokenLBrace:
			alt, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			stmt.Else = alt
		default:
			return nil, unexpected("'if' or '{'", p.stream.Current())
		}
		end = stmt.Else.GetSpan().End
	}

	stmt.Span = lexer.Span{Start: kw.Span.Start, End: end}
	return stmt, nil
}

// parseExprStatement parses an expression statement, turning a trailing
// right-associative '=' chain into an assignment. Assignment lives here and
// nowhere else; it is not an expression-precedence operator.
func (p *Parser) parseExprStatement() (Statement, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if p.stream.Current().Type == lexer.TokenReassign {
		p.stream.Advance()
		value, err := p.parseAssignRHS()
		if err != nil {
			return nil, err
		}
		expr = &Assign{
			Span:   lexer.Span{Start: expr.GetSpan().Start, End: value.GetSpan().End},
			Target: expr,
			Value:  value,
		}
	}

	return &ExprStatement{Span: expr.GetSpan(), Expr: expr}, nil
}

// parseAssignRHS parses the right side of '=', recursing on a further '='
// so chains associate to the right: a = b = c is a = (b = c).
func (p *Parser) parseAssignRHS() (Expression, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.stream.Current().Type != lexer.TokenReassign {
		return expr, nil
	}
	p.stream.Advance()
	value, err := p.parseAssignRHS()
	if err != nil {
		return nil, err
	}
	return &Assign{
		Span:   lexer.Span{Start: expr.GetSpan().Start, End: value.GetSpan().End},
		Target: expr,
		Value:  value,
	}, nil
}
