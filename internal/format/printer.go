// Package format reconstructs source text from a parsed AST. Printing a
// file and reparsing the output yields a structurally identical tree.
package format

import (
	"fmt"
	"strings"

	"github.com/aeon-lang/aeon/internal/parser"
)

// Options controls printer layout
type Options struct {
	// IndentSize is the number of spaces per nesting level
	IndentSize int
	// EmptyLineBetweenKinds separates declaration groups of different
	// kinds with a blank line
	EmptyLineBetweenKinds bool
}

// DefaultOptions returns the canonical layout: two-space indent, blank
// lines between declaration kinds.
func DefaultOptions() Options {
	return Options{
		IndentSize:            2,
		EmptyLineBetweenKinds: true,
	}
}

// Printer renders an AST back to source text
type Printer struct {
	opts Options
	sb   strings.Builder
	// depth is the current indent level
	depth int
}

// NewPrinter creates a printer with the given options
func NewPrinter(opts Options) *Printer {
	return &Printer{opts: opts}
}

// Print renders a whole parsed file, ending with a trailing newline
func Print(ast *parser.Ast) string {
	return NewPrinter(DefaultOptions()).Print(ast)
}

// Print renders a whole parsed file
func (p *Printer) Print(ast *parser.Ast) string {
	p.sb.Reset()
	p.depth = 0

	if ast.Root != nil {
		p.printModule(ast.Root)
		if !ast.Decls.Empty() {
			p.newline()
			p.printBody(&ast.Decls)
		}
	} else {
		p.printBody(&ast.Decls)
	}
	return p.sb.String()
}

func (p *Printer) printModule(m *parser.Module) {
	p.indent()
	p.write("module %s {", m.Name)
	p.newline()
	p.depth++
	p.printBody(&m.Body)
	p.depth--
	p.indent()
	p.write("}")
	p.newline()
}

// printBody renders the declaration groups of a body in a fixed order:
// imports, nested modules, structs, variables, functions. Order within each
// group is declaration order.
func (p *Printer) printBody(b *parser.Body) {
	first := true
	gap := func() {
		if !first && p.opts.EmptyLineBetweenKinds {
			p.newline()
		}
		first = false
	}

	if len(b.Imports) > 0 {
		gap()
		for _, imp := range b.Imports {
			p.indent()
			p.write("import %s", quote(imp.Path))
			p.newline()
		}
	}
	for _, m := range b.Modules {
		gap()
		p.printModule(m)
	}
	for _, st := range b.Structs {
		gap()
		p.printStruct(st)
	}
	if len(b.Variables) > 0 {
		gap()
		for _, v := range b.Variables {
			p.indent()
			p.printVarDecl(v)
			p.newline()
		}
	}
	for _, fn := range b.Functions {
		gap()
		p.printFunction(fn)
	}
}

func (p *Printer) printStruct(st *parser.StructDecl) {
	p.indent()
	if st.IsDefault {
		p.write("struct {")
	} else {
		p.write("struct %s {", st.Name)
	}
	p.newline()
	p.depth++
	for _, f := range st.Fields {
		p.indent()
		p.write("%s: %s,", f.Name, typeRef(f.Type))
		p.newline()
	}
	p.depth--
	p.indent()
	p.write("}")
	p.newline()
}

func (p *Printer) printFunction(fn *parser.Function) {
	p.indent()
	p.write("fn %s(", fn.Name)
	for i, param := range fn.Parameters {
		if i > 0 {
			p.write(", ")
		}
		p.write("%s: %s", param.Name, typeRef(param.Type))
	}
	p.write(")")
	if fn.ReturnType != nil {
		p.write(" %s", typeRef(fn.ReturnType))
	}
	p.write(" ")
	p.printBlock(fn.Body)
	p.newline()
}

func (p *Printer) printVarDecl(v *parser.VarDecl) {
	if v.Mutable {
		p.write("%s :mut = %s", v.Name, expr(v.Value))
	} else {
		p.write("%s := %s", v.Name, expr(v.Value))
	}
}

// printBlock renders `{ ... }` starting at the current output position;
// the caller owns the trailing newline.
func (p *Printer) printBlock(b *parser.Block) {
	p.write("{")
	p.newline()
	p.depth++
	for _, stmt := range b.Statements {
		p.printStatement(stmt)
	}
	p.depth--
	p.indent()
	p.write("}")
}

func (p *Printer) printStatement(stmt parser.Statement) {
	switch s := stmt.(type) {
	case *parser.VarDecl:
		p.indent()
		p.printVarDecl(s)
		p.newline()
	case *parser.Return:
		p.indent()
		if s.Value == nil {
			p.write("return")
		} else {
			p.write("return %s", expr(s.Value))
		}
		p.newline()
	case *parser.If:
		p.indent()
		p.printIf(s)
		p.newline()
	case *parser.Block:
		p.indent()
		p.printBlock(s)
		p.newline()
	case *parser.ExprStatement:
		p.indent()
		p.write("%s", expr(s.Expr))
		p.newline()
	}
}

// printIf renders an if statement and its else chain starting at the
// current output position.
func (p *Printer) printIf(s *parser.If) {
	p.write("if %s ", expr(s.Cond))
	p.printBlock(s.Then)
	switch alt := s.Else.(type) {
	case nil:
	case *parser.If:
		p.write(" else ")
		p.printIf(alt)
	case *parser.Block:
		p.write(" else ")
		p.printBlock(alt)
	}
}

// expr renders an expression as a single line. Grouping nodes carry the
// parentheses; everything else prints bare, which reparses identically
// because the tree shape already encodes the precedence.
func expr(e parser.Expression) string {
	switch x := e.(type) {
	case *parser.Literal:
		if x.Kind == parser.LiteralString {
			return quote(x.Value)
		}
		return x.Value
	case *parser.Identifier:
		return x.Name
	case *parser.Binary:
		return fmt.Sprintf("%s %s %s", expr(x.Left), x.Op, expr(x.Right))
	case *parser.Unary:
		return x.Op + expr(x.Operand)
	case *parser.AddressOf:
		return "&" + expr(x.Operand)
	case *parser.Grouping:
		return "(" + expr(x.Inner) + ")"
	case *parser.FieldAccess:
		return expr(x.Receiver) + "." + x.Field
	case *parser.Call:
		args := make([]string, len(x.Args))
		for i, arg := range x.Args {
			args[i] = expr(arg)
		}
		return expr(x.Callee) + "(" + strings.Join(args, ", ") + ")"
	case *parser.Index:
		return expr(x.Receiver) + "[" + expr(x.Index) + "]"
	case *parser.StructLiteral:
		if len(x.Fields) == 0 {
			return x.TypeName + " {}"
		}
		fields := make([]string, len(x.Fields))
		for i, f := range x.Fields {
			fields[i] = f.Name + ": " + expr(f.Value)
		}
		return x.TypeName + " { " + strings.Join(fields, ", ") + " }"
	case *parser.Assign:
		return expr(x.Target) + " = " + expr(x.Value)
	}
	return ""
}

// typeRef renders a type reference, keeping the Self spelling
func typeRef(t *parser.TypeRef) string {
	var sb strings.Builder
	if t.Optional && t.Pointer {
		sb.WriteString("?*")
	} else if t.Optional {
		sb.WriteString("?")
	} else if t.Pointer {
		sb.WriteString("*")
	}
	if t.IsSelf {
		sb.WriteString("Self")
	} else {
		sb.WriteString(t.Name)
	}
	return sb.String()
}

// quote renders a string literal with the escapes the lexer decodes
func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		default:
			sb.WriteByte(s[i])
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func (p *Printer) write(format string, args ...any) {
	fmt.Fprintf(&p.sb, format, args...)
}

func (p *Printer) indent() {
	p.sb.WriteString(strings.Repeat(" ", p.depth*p.opts.IndentSize))
}

func (p *Printer) newline() {
	p.sb.WriteByte('\n')
}
