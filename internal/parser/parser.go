package parser

import (
	"github.com/aeon-lang/aeon/internal/lexer"
)

// Config controls parser behavior
type Config struct {
	// RequireModule rejects files whose first declaration is not a module
	RequireModule bool
}

// Parser represents the recursive descent parser
type Parser struct {
	stream *TokenStream
	ctx    *Context
	cfg    Config

	// structLitOK gates `Ident {` struct literals; it is cleared while
	// parsing an if condition so the block brace is not consumed.
	structLitOK bool
}

// New creates a parser over an already-lexed token sequence
func New(tokens []lexer.Token, cfg Config) *Parser {
	return &Parser{
		stream:      NewTokenStream(tokens),
		ctx:         NewContext(),
		cfg:         cfg,
		structLitOK: true,
	}
}

// ParseSource lexes and parses a source string in one step
func ParseSource(source string) (*Ast, error) {
	return ParseSourceWithConfig(source, Config{})
}

// ParseSourceWithConfig lexes and parses with explicit configuration
func ParseSourceWithConfig(source string, cfg Config) (*Ast, error) {
	tokens, err := lexer.Lex(source)
	if err != nil {
		return nil, err
	}
	return New(tokens, cfg).Parse()
}

// Parse consumes the whole token stream and returns the file's AST.
// Parsing is fail-fast: the first error aborts with no partial tree.
func (p *Parser) Parse() (*Ast, error) {
	ast := &Ast{}
	start := p.stream.Current().Span.Start

	if p.cfg.RequireModule && p.stream.Current().Type != lexer.TokenModule {
		return nil, &ParseError{
			Kind:     KindModuleRequired,
			Expected: "module declaration",
			Found:    p.stream.Current().Type.String(),
			Pos:      p.stream.Current().Pos(),
		}
	}

	if p.stream.Current().Type == lexer.TokenModule {
		mod, err := p.parseTopLevelModule()
		if err != nil {
			return nil, err
		}
		ast.Root = mod
	}
	if err := p.parseBody(&ast.Decls); err != nil {
		return nil, err
	}
	if p.stream.Current().Type != lexer.TokenEOF {
		return nil, unexpected("declaration", p.stream.Current())
	}

	ast.Span = lexer.Span{Start: start, End: p.stream.Current().Span.End}
	return ast, nil
}

// parseBody parses declarations until a closing brace or EOF
func (p *Parser) parseBody(body *Body) error {
	for {
		tok := p.stream.Current()
		switch tok.Type {
		case lexer.TokenEOF, lexer.TokenRBrace:
			return nil
		case lexer.TokenModule:
			mod, err := p.parseModule()
			if err != nil {
				return err
			}
			body.Modules = append(body.Modules, mod)
		case lexer.TokenImport:
			imp, err := p.parseImport()
			if err != nil {
				return err
			}
			body.Imports = append(body.Imports, imp)
		case lexer.TokenFn:
			fn, err := p.parseFunction()
			if err != nil {
				return err
			}
			body.Functions = append(body.Functions, fn)
		case lexer.TokenStruct:
			st, err := p.parseStruct()
			if err != nil {
				return err
			}
			body.Structs = append(body.Structs, st)
		case lexer.TokenIdentifier:
			decl, err := p.parseVarDecl()
			if err != nil {
				return err
			}
			body.Variables = append(body.Variables, decl)
		default:
			return unexpected("declaration", tok)
		}
	}
}

// parseTopLevelModule parses the file's leading module declaration. It may
// carry an explicit `{ ... }` body, or none at all, in which case the body
// runs implicitly to end of input.
func (p *Parser) parseTopLevelModule() (*Module, error) {
	start := p.stream.Current().Span.Start
	p.stream.Advance() // module
	name, err := p.stream.Expect(lexer.TokenIdentifier)
	if err != nil {
		return nil, expectedIdentifier(p.stream.Current())
	}

	mod := &Module{
		Name:          name.Literal,
		QualifiedName: p.ctx.QualifiedName(name.Literal),
	}
	p.ctx.Enter(FrameModule, name.Literal)
	defer p.ctx.Leave()

	if p.stream.Match(lexer.TokenLBrace) {
		if err := p.parseBody(&mod.Body); err != nil {
			return nil, err
		}
		end, err := p.stream.Expect(lexer.TokenRBrace)
		if err != nil {
			return nil, err
		}
		mod.Span = lexer.Span{Start: start, End: end.Span.End}
		return mod, nil
	}

	// implicit body to EOF
	if err := p.parseBody(&mod.Body); err != nil {
		return nil, err
	}
	mod.Span = lexer.Span{Start: start, End: p.stream.Current().Span.End}
	return mod, nil
}

// parseModule parses a nested `module Name { ... }`; the braces are
// mandatory here.
func (p *Parser) parseModule() (*Module, error) {
	start := p.stream.Current().Span.Start
	if _, err := p.stream.Expect(lexer.TokenModule); err != nil {
		return nil, err
	}
	name, err := p.stream.Expect(lexer.TokenIdentifier)
	if err != nil {
		return nil, expectedIdentifier(p.stream.Current())
	}
	if _, err := p.stream.Expect(lexer.TokenLBrace); err != nil {
		return nil, err
	}

	mod := &Module{
		Name:          name.Literal,
		QualifiedName: p.ctx.QualifiedName(name.Literal),
	}
	p.ctx.Enter(FrameModule, name.Literal)
	if err := p.parseBody(&mod.Body); err != nil {
		return nil, err
	}
	p.ctx.Leave()

	end, err := p.stream.Expect(lexer.TokenRBrace)
	if err != nil {
		return nil, err
	}
	mod.Span = lexer.Span{Start: start, End: end.Span.End}
	return mod, nil
}

// parseImport parses `import "path"`
func (p *Parser) parseImport() (*Import, error) {
	start := p.stream.Current().Span.Start
	if _, err := p.stream.Expect(lexer.TokenImport); err != nil {
		return nil, err
	}
	path, err := p.stream.Expect(lexer.TokenString)
	if err != nil {
		return nil, unexpected("import path string", p.stream.Current())
	}
	return &Import{
		Span: lexer.Span{Start: start, End: path.Span.End},
		Path: path.Literal,
	}, nil
}

// parseFunction parses `fn name(params) Type { ... }` where the return
// type is optional. A trailing _mut on the name marks the function as
// mutating; the suffix stays part of the name.
func (p *Parser) parseFunction() (*Function, error) {
	start := p.stream.Current().Span.Start
	if _, err := p.stream.Expect(lexer.TokenFn); err != nil {
		return nil, err
	}
	name, err := p.stream.Expect(lexer.TokenIdentifier)
	if err != nil {
		return nil, expectedIdentifier(p.stream.Current())
	}

	fn := &Function{
		Name:          name.Literal,
		QualifiedName: p.ctx.QualifiedName(name.Literal),
		SelfMut:       hasMutSuffix(name.Literal),
	}

	if _, err := p.stream.Expect(lexer.TokenLParen); err != nil {
		return nil, err
	}
	for p.stream.Current().Type != lexer.TokenRParen {
		if len(fn.Parameters) > 0 {
			if _, err := p.stream.Expect(lexer.TokenComma); err != nil {
				return nil, unexpected("',' or ')'", p.stream.Current())
			}
		}
		param, err := p.parseParameter()
		if err != nil {
			return nil, err
		}
		fn.Parameters = append(fn.Parameters, param)
	}
	if _, err := p.stream.Expect(lexer.TokenRParen); err != nil {
		return nil, err
	}

	// a return type, when present, sits between ')' and the body brace
	switch p.stream.Current().Type {
	case lexer.TokenOptionalPtr, lexer.TokenQuestion, lexer.TokenStar, lexer.TokenIdentifier:
		ret, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		fn.ReturnType = ret
	}

	p.ctx.Enter(FrameFunction, name.Literal)
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	p.ctx.Leave()

	fn.Body = body
	fn.Span = lexer.Span{Start: start, End: body.Span.End}
	return fn, nil
}

// parseParameter parses `name: Type`
func (p *Parser) parseParameter() (*Parameter, error) {
	name, err := p.stream.Expect(lexer.TokenIdentifier)
	if err != nil {
		return nil, expectedIdentifier(p.stream.Current())
	}
	if _, err := p.stream.Expect(lexer.TokenColon); err != nil {
		return nil, unexpected("':'", p.stream.Current())
	}
	typ, err := p.parseTypeRef()
	if err != nil {
		return nil, err
	}
	return &Parameter{
		Span: lexer.Span{Start: name.Span.Start, End: typ.Span.End},
		Name: name.Literal,
		Type: typ,
	}, nil
}

// parseStruct parses a named struct or, inside a named module, the
// anonymous default form `struct { ... }`.
func (p *Parser) parseStruct() (*StructDecl, error) {
	start := p.stream.Current().Span.Start
	if _, err := p.stream.Expect(lexer.TokenStruct); err != nil {
		return nil, err
	}

	st := &StructDecl{}
	if p.stream.Current().Type == lexer.TokenIdentifier {
		name := p.stream.Advance()
		st.Name = name.Literal
		st.QualifiedName = p.ctx.QualifiedName(name.Literal)
	} else {
		owner, ok := p.ctx.EnclosingModule()
		if !ok {
			return nil, expectedIdentifier(p.stream.Current())
		}
		st.Name = owner
		st.QualifiedName = p.ctx.Path()
		st.IsDefault = true
	}

	if _, err := p.stream.Expect(lexer.TokenLBrace); err != nil {
		return nil, err
	}
	for p.stream.Current().Type != lexer.TokenRBrace {
		if len(st.Fields) > 0 && !p.stream.Match(lexer.TokenComma) {
			break
		}
		// allow a trailing comma before the brace
		if p.stream.Current().Type == lexer.TokenRBrace {
			break
		}
		field, err := p.parseField()
		if err != nil {
			return nil, err
		}
		st.Fields = append(st.Fields, field)
	}
	end, err := p.stream.Expect(lexer.TokenRBrace)
	if err != nil {
		return nil, err
	}
	st.Span = lexer.Span{Start: start, End: end.Span.End}
	return st, nil
}

// parseField parses `name: Type`
func (p *Parser) parseField() (*Field, error) {
	name, err := p.stream.Expect(lexer.TokenIdentifier)
	if err != nil {
		return nil, expectedIdentifier(p.stream.Current())
	}
	if _, err := p.stream.Expect(lexer.TokenColon); err != nil {
		return nil, unexpected("':'", p.stream.Current())
	}
	typ, err := p.parseTypeRef()
	if err != nil {
		return nil, err
	}
	return &Field{
		Span: lexer.Span{Start: name.Span.Start, End: typ.Span.End},
		Name: name.Literal,
		Type: typ,
	}, nil
}

// parseVarDecl parses `name := expr` or `name :mut = expr` at declaration
// position. It is only entered when the current token is an identifier.
func (p *Parser) parseVarDecl() (*VarDecl, error) {
	name, err := p.stream.Expect(lexer.TokenIdentifier)
	if err != nil {
		return nil, expectedIdentifier(p.stream.Current())
	}

	decl := &VarDecl{
		Name:          name.Literal,
		QualifiedName: p.ctx.QualifiedName(name.Literal),
	}

	switch p.stream.Current().Type {
	case lexer.TokenDeclare:
		p.stream.Advance()
	case lexer.TokenDeclareMut:
		p.stream.Advance()
		if _, err := p.stream.Expect(lexer.TokenReassign); err != nil {
			return nil, unexpected("'='", p.stream.Current())
		}
		decl.Mutable = true
	default:
		return nil, unexpected("':=' or ':mut ='", p.stream.Current())
	}

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	decl.Value = value
	decl.Span = lexer.Span{Start: name.Span.Start, End: value.GetSpan().End}
	return decl, nil
}

// parseTypeRef parses an optional/pointer-prefixed, possibly ::-qualified
// type name. Self resolves to the nearest enclosing module.
func (p *Parser) parseTypeRef() (*TypeRef, error) {
	start := p.stream.Current().Span.Start
	typ := &TypeRef{}

	switch p.stream.Current().Type {
	case lexer.TokenOptionalPtr:
		p.stream.Advance()
		typ.Optional = true
		typ.Pointer = true
	case lexer.TokenQuestion:
		p.stream.Advance()
		typ.Optional = true
	case lexer.TokenStar:
		p.stream.Advance()
		typ.Pointer = true
	}

	name, err := p.stream.Expect(lexer.TokenIdentifier)
	if err != nil {
		return nil, expectedType(p.stream.Current())
	}

	if name.Literal == "Self" {
		owner, ok := p.ctx.EnclosingModule()
		if !ok {
			return nil, expectedType(name)
		}
		typ.Name = owner
		typ.IsSelf = true
		typ.Span = lexer.Span{Start: start, End: name.Span.End}
		return typ, nil
	}

	qualified := name.Literal
	end := name.Span.End
	for p.stream.Current().Type == lexer.TokenDoubleColon {
		p.stream.Advance()
		part, err := p.stream.Expect(lexer.TokenIdentifier)
		if err != nil {
			return nil, expectedType(p.stream.Current())
		}
		qualified += "::" + part.Literal
		end = part.Span.End
	}

	typ.Name = qualified
	typ.Span = lexer.Span{Start: start, End: end}
	return typ, nil
}

// hasMutSuffix reports whether a function name ends in _mut
func hasMutSuffix(name string) bool {
	const suffix = "_mut"
	return len(name) > len(suffix) && name[len(name)-len(suffix):] == suffix
}
